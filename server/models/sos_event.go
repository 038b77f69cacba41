package models

import "time"

// SOSEvent is an append-only audit record of a triggered alert.
// There are deliberately no update or delete helpers, and no db-level
// constraint on UserID - an event must survive a broken user reference.
type SOSEvent struct {
	BaseModel
	UserID   uint      `json:"user_id" gorm:"not null"`
	Location string    `json:"location"`
	SentAt   time.Time `json:"sent_at"`
}

func CreateSOSEvent(event *SOSEvent) error {
	return db.Create(event).Error
}

func FetchSOSEvents(ownerID interface{}, page int) ([]SOSEvent, *Paging, error) {
	var total int64
	events := []SOSEvent{}

	err := db.Model(&SOSEvent{}).Where("user_id = ?", ownerID).Count(&total).Error
	if err != nil {
		return nil, nil, err
	}

	err = db.Scopes(paginate(page, MAX_PAGE_SIZE)).
		Order("sos_events.id desc").
		Find(&events, "user_id = ?", ownerID).Error
	if err != nil {
		return nil, nil, err
	}

	return events, newPaging(int64(page), MAX_PAGE_SIZE, total), nil
}
