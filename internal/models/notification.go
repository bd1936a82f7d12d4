package models

// Notification is append-only; rows are created as a side effect of state
// transitions and only ever mutated to toggle IsRead.
type Notification struct {
	Base

	UserID  string `gorm:"not null;index" json:"user_id"`
	Message string `gorm:"type:text;not null" json:"message"`
	Type    string `gorm:"not null" json:"type"`
	Link    string `json:"link"`
	IsRead  bool   `gorm:"default:false" json:"is_read"`
}
