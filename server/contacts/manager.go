package contacts

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/safespeak/safespeak/server/logger"
	"github.com/safespeak/safespeak/server/models"
	"github.com/safespeak/safespeak/server/push"
	"github.com/safespeak/safespeak/server/work"
)

// ContactInviteHandler is the worker-pool handler that delivers the
// out-of-band invite to a newly provisioned contact.
const ContactInviteHandler = "contact_invite"

// ErrMissingContactField is returned when a contact has no way to be
// reached at all.
var ErrMissingContactField = errors.New("at least one of phone or email is required")

// ErrMissingContactName is returned when a contact is created without
// a name. The name doubles as the display name of any account
// provisioned for the contact, so it can't be blank.
var ErrMissingContactName = errors.New("contact name is required")

var logg = logger.NewLogger()

// Enqueuer hands background jobs off to the worker pool.
type Enqueuer interface {
	Perform(job work.JobParams) error
}

type AddParams struct {
	Name         string
	Email        string
	Phone        string
	Relationship string
}

// Manager links emergency contacts to their owner, provisioning a
// placeholder account when the contact isn't a user yet.
type Manager struct {
	dispatcher *push.Dispatcher
	enqueuer   Enqueuer
}

func NewManager(dispatcher *push.Dispatcher, enqueuer Enqueuer) *Manager {
	return &Manager{dispatcher: dispatcher, enqueuer: enqueuer}
}

// Add creates an emergency contact for ownerID. The contact is linked
// to an existing account matching the email (preferred) or phone, or
// to a freshly auto-created one. Invite and confirmation deliveries
// are best-effort: their failure never rolls the contact back.
func (m *Manager) Add(ownerID uint, params AddParams) (*models.EmergencyContact, error) {
	if strings.TrimSpace(params.Name) == "" {
		return nil, ErrMissingContactName
	}

	if params.Email == "" && params.Phone == "" {
		return nil, ErrMissingContactField
	}

	owner, err := models.FindUserBy("id", ownerID)
	if err != nil {
		return nil, err
	}

	linked, err := models.FindUserByEmailOrPhone(params.Email, params.Phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		linked, err = m.provisionContactUser(params)
	}
	if err != nil {
		return nil, err
	}

	contact := &models.EmergencyContact{
		Name:         params.Name,
		Relationship: params.Relationship,
		PhoneNumber:  params.Phone,
		Email:        params.Email,
		UserID:       ownerID,
		LinkedUserID: &linked.ID,
	}
	if err := models.CreateContact(contact); err != nil {
		return nil, err
	}

	if owner.FcmToken != "" {
		m.dispatcher.Notify(
			owner.FcmToken,
			"Emergency contact added",
			fmt.Sprintf("%v is now one of your emergency contacts.", params.Name),
			nil,
		)
	}

	return contact, nil
}

func (m *Manager) Update(contactID interface{}, patch map[string]interface{}) (*models.EmergencyContact, error) {
	return models.UpdateContact(contactID, patch)
}

// Delete removes the contact record. The linked user account, if any,
// is left alone.
func (m *Manager) Delete(contactID interface{}) (*models.EmergencyContact, error) {
	return models.DeleteContact(contactID)
}

func (m *Manager) List(ownerID interface{}) ([]models.EmergencyContact, error) {
	return models.FindContactsByOwner(ownerID)
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

// provisionContactUser creates a placeholder account for a contact who
// hasn't signed up, with a throwaway random credential - a usable
// password is only set if the person registers properly later.
func (m *Manager) provisionContactUser(params AddParams) (*models.User, error) {
	credential, err := randomCredential()
	if err != nil {
		return nil, err
	}

	user := &models.User{
		DisplayName: params.Name,
		Email:       params.Email,
		PhoneNumber: params.Phone,
		Password:    credential,
		AutoCreated: true,
	}
	if err := models.CreateUser(user); err != nil {
		return nil, err
	}

	if m.enqueuer != nil {
		err = m.enqueuer.Perform(work.JobParams{
			Name:    fmt.Sprintf("%v_%v", ContactInviteHandler, user.ID),
			Handler: ContactInviteHandler,
			Args: map[string]interface{}{
				"name":  params.Name,
				"email": params.Email,
				"phone": params.Phone,
			},
		})
		if err != nil {
			logg.Errorf("failed to enqueue invite for contact user %v: %v", user.ID, err)
		}
	}

	return user, nil
}

func randomCredential() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
