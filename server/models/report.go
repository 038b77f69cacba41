package models

type Report struct {
	BaseModel
	ReportType string `json:"report_type" validate:"required"`
	Message    string `json:"message" validate:"required"`
	UserID     uint   `json:"user_id" gorm:"not null"`
}

func CreateReport(report *Report) error {
	return db.Create(report).Error
}

// ReportingUsers returns the distinct users that have submitted
// at least one report.
func ReportingUsers() ([]User, error) {
	users := []User{}

	err := db.Select(allFieldsExceptPassword).Distinct().
		Joins("INNER JOIN reports ON reports.user_id = users.id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	return users, nil
}
