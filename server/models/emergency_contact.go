package models

import "gorm.io/gorm"

var updatableContactFields = []string{"name",
	"relationship",
	"phone_number",
	"email",
	"fcm_token",
}

type EmergencyContact struct {
	BaseModel
	Name         string `json:"name" validate:"required"`
	Relationship string `json:"relationship"`
	PhoneNumber  string `json:"phone_number" validate:"omitempty,e164"`
	Email        string `json:"email" validate:"omitempty,email"`
	FcmToken     string `json:"fcm_token,omitempty"`
	UserID       uint   `json:"user_id" gorm:"not null"`
	// LinkedUserID references the User record the contact resolves to.
	// Deleting the contact never touches the linked account.
	LinkedUserID *uint `json:"linked_user_id"`
}

func CreateContact(contact *EmergencyContact) error {
	return db.Create(contact).Error
}

func FindContact(id interface{}) (*EmergencyContact, error) {
	contact := EmergencyContact{}
	err := db.First(&contact, "id = ?", id).Error
	if err != nil {
		return nil, err
	}

	return &contact, nil
}

func FindContactsByOwner(ownerID interface{}) ([]EmergencyContact, error) {
	contacts := []EmergencyContact{}

	// TODO: Add pagination
	err := db.Limit(500).Find(&contacts, "user_id = ?", ownerID).Error
	if err != nil {
		return nil, err
	}

	return contacts, nil
}

func UpdateContact(id interface{}, data map[string]interface{}) (*EmergencyContact, error) {
	res := db.Model(&EmergencyContact{}).Where("id = ?", id).
		Select(updatableContactFields).Updates(data)
	if res.Error != nil {
		return nil, res.Error
	}

	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	return FindContact(id)
}

func DeleteContact(id interface{}) (*EmergencyContact, error) {
	contact, err := FindContact(id)
	if err != nil {
		return nil, err
	}

	err = db.Delete(&EmergencyContact{}, contact.ID).Error
	if err != nil {
		return nil, err
	}

	return contact, nil
}
