package sos

import (
	"errors"
	"testing"
	"time"

	"github.com/safespeak/safespeak/server/models"
	"github.com/safespeak/safespeak/server/push"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestDispatchNotifiesEveryReachableContact(t *testing.T) {
	models.InitializeTestDb()

	stub := &push.SenderStub{}
	engine := NewEngine(push.NewDispatcher(stub))

	owner := &models.User{
		DisplayName: "tony stark",
		Email:       "stark@avengers.com",
		PhoneNumber: "+12345678900",
		Password:    "very-secure",
	}
	err := models.CreateUser(owner)
	assert.Nil(t, err, "Should create owner record")

	withToken := &models.EmergencyContact{Name: "pepper", PhoneNumber: "+22345678900", UserID: owner.ID, FcmToken: "T1"}
	withoutToken := &models.EmergencyContact{Name: "happy", PhoneNumber: "+32345678900", UserID: owner.ID}
	assert.Nil(t, models.CreateContact(withToken))
	assert.Nil(t, models.CreateContact(withoutToken))

	sentAt := time.Date(2024, 5, 1, 9, 30, 0, 0, time.UTC)
	event, err := engine.Dispatch(owner.ID, "12.9,77.6", sentAt)
	assert.Nil(t, err)

	// Exactly one delivery attempt, to the contact with a token
	assert.Equal(t, 1, len(stub.Messages))
	assert.Equal(t, "T1", stub.Messages[0].To)
	assert.Equal(t, "SOS Alert from tony stark", stub.Messages[0].Title)
	assert.Contains(t, stub.Messages[0].Body, "12.9,77.6")

	// Exactly one event, with the caller's timestamp preserved verbatim
	events, _, err := models.FetchSOSEvents(owner.ID, 1)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(events))
	assert.Equal(t, sentAt.Unix(), events[0].SentAt.Unix())
	assert.Equal(t, event.ID, events[0].ID)
}

func TestDispatchAttemptsAllDeliveriesDespiteFailures(t *testing.T) {
	models.InitializeTestDb()

	stub := &push.SenderStub{Errs: map[string]error{"T1": errors.New("unregistered device")}}
	engine := NewEngine(push.NewDispatcher(stub))

	owner := &models.User{DisplayName: "spider man", Email: "web@avengers.com", Password: "secure???"}
	assert.Nil(t, models.CreateUser(owner))

	for _, token := range []string{"T1", "T2", "T3"} {
		contact := &models.EmergencyContact{Name: token, Email: token + "@avengers.com", UserID: owner.ID, FcmToken: token}
		assert.Nil(t, models.CreateContact(contact))
	}

	_, err := engine.Dispatch(owner.ID, "43.6,-79.3", time.Now())
	assert.Nil(t, err, "delivery failures must not surface to the caller")
	assert.Equal(t, 3, len(stub.Messages), "one failing delivery must not block the others")
}

func TestDispatchWithZeroContacts(t *testing.T) {
	models.InitializeTestDb()

	stub := &push.SenderStub{}
	engine := NewEngine(push.NewDispatcher(stub))

	owner := &models.User{DisplayName: "loner", Email: "loner@example.com", Password: "pw-loner"}
	assert.Nil(t, models.CreateUser(owner))

	_, err := engine.Dispatch(owner.ID, "0,0", time.Now())
	assert.Nil(t, err)
	assert.Empty(t, stub.Messages)

	events, _, err := models.FetchSOSEvents(owner.ID, 1)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(events))
}

func TestDispatchForUnknownOwnerStillRecordsEvent(t *testing.T) {
	models.InitializeTestDb()

	stub := &push.SenderStub{}
	engine := NewEngine(push.NewDispatcher(stub))

	const unknownOwnerID = 42
	_, err := engine.Dispatch(unknownOwnerID, "12.9,77.6", time.Now())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, stub.Messages)

	// The audit record is written before the owner lookup, so it must
	// survive the failure
	events, _, err := models.FetchSOSEvents(unknownOwnerID, 1)
	assert.Nil(t, err)
	assert.Equal(t, 1, len(events))
}
