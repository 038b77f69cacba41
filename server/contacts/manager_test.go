package contacts

import (
	"testing"

	"github.com/safespeak/safespeak/server/auth"
	"github.com/safespeak/safespeak/server/models"
	"github.com/safespeak/safespeak/server/push"
	"github.com/safespeak/safespeak/server/work"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type enqueuerStub struct {
	jobs []work.JobParams
	err  error
}

func (stub *enqueuerStub) Perform(job work.JobParams) error {
	stub.jobs = append(stub.jobs, job)
	return stub.err
}

func createTestOwner(t *testing.T) *models.User {
	owner := &models.User{
		DisplayName: "tony stark",
		Email:       "stark@avengers.com",
		PhoneNumber: "+12345678900",
		Password:    "very-secure",
		FcmToken:    "owner-token",
	}
	err := models.CreateUser(owner)
	assert.Nil(t, err, "Should create owner record")
	return owner
}

func TestAddProvisionsAccountAndQueuesInvite(t *testing.T) {
	models.InitializeTestDb()

	stub := &push.SenderStub{}
	enqueuer := &enqueuerStub{}
	manager := NewManager(push.NewDispatcher(stub), enqueuer)
	owner := createTestOwner(t)

	contact, err := manager.Add(owner.ID, AddParams{
		Name:         "pepper",
		Email:        "pepper@avengers.com",
		Phone:        "+22345678900",
		Relationship: "partner",
	})
	assert.Nil(t, err)
	assert.NotNil(t, contact.LinkedUserID)

	linked, err := models.FindUserBy("id", *contact.LinkedUserID)
	assert.Nil(t, err)
	assert.True(t, linked.AutoCreated)

	// Placeholder account gets its own throwaway credential, never a
	// copy of the owner's
	linkedHash, err := models.FindUserPassword("pepper@avengers.com")
	assert.Nil(t, err)
	assert.NotEmpty(t, linkedHash)
	assert.False(t, auth.CheckPasswordHash("very-secure", linkedHash))

	// Invite goes through the worker pool, not inline
	assert.Equal(t, 1, len(enqueuer.jobs))
	assert.Equal(t, ContactInviteHandler, enqueuer.jobs[0].Handler)
	assert.Equal(t, "+22345678900", enqueuer.jobs[0].Args["phone"])

	// Owner carries a device token, so a confirmation push goes out
	assert.Equal(t, 1, stub.SentTo("owner-token"))
}

func TestAddLinksExistingAccountWithoutInvite(t *testing.T) {
	models.InitializeTestDb()

	enqueuer := &enqueuerStub{}
	manager := NewManager(push.NewDispatcher(&push.SenderStub{}), enqueuer)
	owner := createTestOwner(t)

	existing := &models.User{
		DisplayName: "pepper potts",
		Email:       "pepper@avengers.com",
		Password:    "pepper-pw",
	}
	assert.Nil(t, models.CreateUser(existing))

	contact, err := manager.Add(owner.ID, AddParams{Name: "pepper", Email: "pepper@avengers.com"})
	assert.Nil(t, err)
	assert.Equal(t, existing.ID, *contact.LinkedUserID)
	assert.Empty(t, enqueuer.jobs, "existing accounts don't get invites")
}

func TestAddPrefersEmailMatchOverPhoneMatch(t *testing.T) {
	models.InitializeTestDb()

	manager := NewManager(push.NewDispatcher(&push.SenderStub{}), &enqueuerStub{})
	owner := createTestOwner(t)

	byEmail := &models.User{DisplayName: "a", Email: "match@avengers.com", Password: "pw-aaaaa"}
	byPhone := &models.User{DisplayName: "b", Email: "other@avengers.com", PhoneNumber: "+32345678900", Password: "pw-bbbbb"}
	assert.Nil(t, models.CreateUser(byEmail))
	assert.Nil(t, models.CreateUser(byPhone))

	contact, err := manager.Add(owner.ID, AddParams{
		Name:  "ambiguous",
		Email: "match@avengers.com",
		Phone: "+32345678900",
	})
	assert.Nil(t, err)
	assert.Equal(t, byEmail.ID, *contact.LinkedUserID)
}

func TestAddRequiresEmailOrPhone(t *testing.T) {
	models.InitializeTestDb()

	manager := NewManager(push.NewDispatcher(&push.SenderStub{}), &enqueuerStub{})
	owner := createTestOwner(t)

	_, err := manager.Add(owner.ID, AddParams{Name: "unreachable"})
	assert.ErrorIs(t, err, ErrMissingContactField)
}

func TestAddRequiresName(t *testing.T) {
	models.InitializeTestDb()

	manager := NewManager(push.NewDispatcher(&push.SenderStub{}), &enqueuerStub{})
	owner := createTestOwner(t)

	_, err := manager.Add(owner.ID, AddParams{Phone: "+42345678900"})
	assert.ErrorIs(t, err, ErrMissingContactName)

	_, err = manager.Add(owner.ID, AddParams{Name: "   ", Phone: "+42345678900"})
	assert.ErrorIs(t, err, ErrMissingContactName, "a whitespace-only name is still missing")

	// Nothing should have been persisted for the rejected contact
	list, err := manager.List(owner.ID)
	assert.Nil(t, err)
	assert.Empty(t, list)
}

func TestAddForUnknownOwner(t *testing.T) {
	models.InitializeTestDb()

	manager := NewManager(push.NewDispatcher(&push.SenderStub{}), &enqueuerStub{})

	_, err := manager.Add(9999, AddParams{Name: "pepper", Phone: "+22345678900"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateAndDeleteContact(t *testing.T) {
	models.InitializeTestDb()

	manager := NewManager(push.NewDispatcher(&push.SenderStub{}), &enqueuerStub{})
	owner := createTestOwner(t)

	contact, err := manager.Add(owner.ID, AddParams{Name: "happy", Phone: "+42345678900"})
	assert.Nil(t, err)

	updated, err := manager.Update(contact.ID, map[string]interface{}{"relationship": "driver"})
	assert.Nil(t, err)
	assert.Equal(t, "driver", updated.Relationship)

	_, err = manager.Update(99999, map[string]interface{}{"name": "nobody"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound, "updating an unknown contact id should fail")

	deleted, err := manager.Delete(contact.ID)
	assert.Nil(t, err)
	assert.Equal(t, contact.ID, deleted.ID)

	list, err := manager.List(owner.ID)
	assert.Nil(t, err)
	assert.Empty(t, list)

	_, err = manager.Delete(contact.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
