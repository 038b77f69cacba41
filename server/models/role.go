package models

const (
	ADMIN_USER_ROLE = "admin"
	BASIC_USER_ROLE = "basic"
)

// Role gates access to the admin surface. Accounts with no role at
// all are treated as basic users.
type Role struct {
	BaseModel
	Name  string `json:"name"`
	Users []User `json:"users,omitempty" gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;"`
}

// FindRole looks up one of the seeded roles by name.
func FindRole(name string) (*Role, error) {
	role := &Role{}

	err := db.Select("id", "name").First(role, "name = ?", name).Error
	if err != nil {
		return nil, err
	}

	return role, nil
}
