package sos

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/safespeak/safespeak/server/logger"
	"github.com/safespeak/safespeak/server/models"
	"github.com/safespeak/safespeak/server/push"
)

var logg = logger.NewLogger()

// Engine records SOS events and fans notifications out to the
// sender's emergency contacts.
type Engine struct {
	dispatcher *push.Dispatcher
}

func NewEngine(dispatcher *push.Dispatcher) *Engine {
	return &Engine{dispatcher: dispatcher}
}

// Dispatch persists the alert and attempts one push delivery per
// reachable contact. The event is written before anything else - the
// audit trail outranks notification success, so it survives even a
// broken owner reference. Delivery failures are logged by the
// dispatcher and never fail the call; only event persistence and
// owner/contact lookups can.
func (e *Engine) Dispatch(ownerID uint, location string, sentAt time.Time) (*models.SOSEvent, error) {
	event := &models.SOSEvent{UserID: ownerID, Location: location, SentAt: sentAt}
	if err := models.CreateSOSEvent(event); err != nil {
		return nil, errors.Wrap(err, "sos: record event")
	}

	owner, err := models.FindUserBy("id", ownerID)
	if err != nil {
		return nil, err
	}

	contacts, err := models.FindContactsByOwner(ownerID)
	if err != nil {
		return nil, err
	}

	senderName := owner.DisplayName
	if senderName == "" {
		senderName = "a family member"
	}

	attempted := 0
	for _, contact := range contacts {
		if contact.FcmToken == "" {
			continue
		}

		attempted++
		e.dispatcher.Notify(
			contact.FcmToken,
			fmt.Sprintf("SOS Alert from %v", senderName),
			fmt.Sprintf("Location: %v. Immediate help may be needed.", location),
			map[string]string{
				"type":      "sos_alert",
				"location":  location,
				"user_id":   fmt.Sprint(ownerID),
				"timestamp": sentAt.Format(time.RFC3339),
			},
		)
	}

	logg.Infof("SOS event %v recorded, %v of %v contact(s) notified for user %v",
		event.ID, attempted, len(contacts), ownerID)

	return event, nil
}
