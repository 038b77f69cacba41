package models

import (
	"testing"

	"github.com/safespeak/safespeak/server/auth"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestCreateUser(t *testing.T) {
	InitializeTestDb()

	user := &User{
		DisplayName: "tony stark",
		Email:       "stark@avengers.com",
		PhoneNumber: "+12345678900",
		Password:    "very-secure",
	}
	err := CreateUser(user)
	assert.Nil(t, err, "Should create user record")

	hash, err := FindUserPassword(user.Email)
	assert.Nil(t, err)
	assert.NotEqual(t, "very-secure", hash, "password must be stored hashed")
	assert.True(t, auth.CheckPasswordHash("very-secure", hash))
}

func TestCreateUserWithTakenEmail(t *testing.T) {
	InitializeTestDb()

	first := &User{DisplayName: "tony stark", Email: "stark@avengers.com", Password: "very-secure"}
	assert.Nil(t, CreateUser(first))

	second := &User{DisplayName: "impostor", Email: "stark@avengers.com", Password: "also-secure"}
	assert.ErrorIs(t, CreateUser(second), ErrEmailTaken)
}

func TestCreateUsersWithoutEmail(t *testing.T) {
	InitializeTestDb()

	// Phone-only placeholder accounts all carry an empty email, which
	// must not trip the uniqueness check
	first := &User{DisplayName: "a", PhoneNumber: "+12345678900", Password: "pw-aaaaa", AutoCreated: true}
	second := &User{DisplayName: "b", PhoneNumber: "+22345678900", Password: "pw-bbbbb", AutoCreated: true}
	assert.Nil(t, CreateUser(first))
	assert.Nil(t, CreateUser(second))
}

func TestFindUserByEmailOrPhone(t *testing.T) {
	InitializeTestDb()

	byEmail := &User{DisplayName: "a", Email: "match@avengers.com", Password: "pw-aaaaa"}
	byPhone := &User{DisplayName: "b", Email: "other@avengers.com", PhoneNumber: "+32345678900", Password: "pw-bbbbb"}
	assert.Nil(t, CreateUser(byEmail))
	assert.Nil(t, CreateUser(byPhone))

	found, err := FindUserByEmailOrPhone("match@avengers.com", "+32345678900")
	assert.Nil(t, err)
	assert.Equal(t, byEmail.ID, found.ID, "email match wins over phone match")

	found, err = FindUserByEmailOrPhone("", "+32345678900")
	assert.Nil(t, err)
	assert.Equal(t, byPhone.ID, found.ID)

	_, err = FindUserByEmailOrPhone("nobody@avengers.com", "+99999999999")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateUser(t *testing.T) {
	InitializeTestDb()

	user := &User{DisplayName: "tony stark", Email: "stark@avengers.com", Password: "very-secure"}
	assert.Nil(t, CreateUser(user))

	err := UpdateUser(user.ID, map[string]interface{}{
		"display_name": "iron man",
		"email":        "should-be-ignored@avengers.com",
	})
	assert.Nil(t, err)

	updated, err := FindUserBy("id", user.ID)
	assert.Nil(t, err)
	assert.Equal(t, "iron man", updated.DisplayName)
	assert.Equal(t, "stark@avengers.com", updated.Email, "email is not an updatable field")
}
