package models

import (
	"errors"
	"fmt"

	"github.com/safespeak/safespeak/server/auth"
	"gorm.io/gorm"
)

// ErrEmailTaken is returned when a write would violate email uniqueness.
// Uniqueness is enforced here at write time, so auto-created accounts
// without an email address don't collide on an empty column value.
var ErrEmailTaken = errors.New("email is already registered")

var (
	allFieldsExceptPassword = []string{"id",
		"display_name",
		"phone_number",
		"email",
		"fcm_token",
		"auto_created",
		"role_id",
		"created_at",
		"updated_at",
	}

	updatableUserFields = []string{"display_name",
		"phone_number",
		"fcm_token",
		"password",
	}
)

type User struct {
	BaseModel
	DisplayName string             `json:"display_name" validate:"required"`
	PhoneNumber string             `json:"phone_number" validate:"omitempty,e164"`
	Email       string             `json:"email" validate:"required,email"`
	Password    string             `json:"password,omitempty" validate:"required,password" gorm:"not null"`
	FcmToken    string             `json:"fcm_token,omitempty"`
	AutoCreated bool               `json:"auto_created" gorm:"default:false"`
	RoleID      uint               `json:"role_id" gorm:"null"`
	Contacts    []EmergencyContact `json:"contacts,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (user *User) Update(data map[string]interface{}) error {
	if data["password"] != nil {
		passwordHash, err := auth.HashPassword(data["password"].(string))
		if err != nil {
			return err
		}
		data["password"] = passwordHash
	}

	return db.Model(&User{}).Where("id = ?", user.ID).Select(updatableUserFields).Updates(data).Error
}

func (user *User) IsAdmin() (bool, error) {
	if user.RoleID == 0 {
		return false, nil
	}

	adminRole, err := FindRole(ADMIN_USER_ROLE)
	if err != nil {
		return false, err
	}

	return adminRole.ID == user.RoleID, nil
}

func FindUserBy(field string, value interface{}) (*User, error) {
	user := User{}
	err := db.Select(allFieldsExceptPassword).First(&user, fmt.Sprintf("%v = ?", field), value).Error
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindUserByEmailOrPhone looks up the user a contact resolves to.
// Email takes precedence when both fields match different users.
func FindUserByEmailOrPhone(email, phone string) (*User, error) {
	if email != "" {
		user, err := FindUserBy("email", email)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if phone != "" {
		user, err := FindUserBy("phone_number", phone)
		if err == nil {
			return user, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	return nil, gorm.ErrRecordNotFound
}

func FindUserPassword(email string) (string, error) {
	user := &User{}
	err := db.Select("Password").First(user, "email = ?", email).Error

	if err != nil {
		return "", err
	}
	return user.Password, nil
}

func CreateUser(user *User) error {
	if user.Email != "" {
		_, err := FindUserBy("email", user.Email)
		if err == nil {
			return ErrEmailTaken
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	passwordHash, err := auth.HashPassword(user.Password)
	if err != nil {
		return err
	}
	user.Password = passwordHash

	return db.Create(user).Error
}

func UpdateUser(id interface{}, data map[string]interface{}) error {
	user := User{}
	err := db.Select("id").First(&user, "id = ?", id).Error
	if err != nil {
		return err
	}

	return user.Update(data)
}

func DeleteUser(id interface{}) error {
	return db.Delete(&User{}, id).Error
}

func AtLeastOneUserExists() (bool, error) {
	err := db.First(&User{}).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
