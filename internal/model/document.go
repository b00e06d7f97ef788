package model

import "time"

// UserDocument is the whole per-user planner state. It is loaded and saved
// as one unit; dated tasks are keyed by Gregorian YYYY-MM-DD strings.
type UserDocument struct {
	DailyTasks        []Task            `json:"daily_tasks"`
	DatedTasks        map[string][]Task `json:"dated_tasks"`
	CreatedAt         string            `json:"created_at"`
	UserName          string            `json:"user_name"`
	LastChecklistDate string            `json:"last_checklist_date,omitempty"`
}

// NewUserDocument creates an empty document for a first-time user.
func NewUserDocument(userName, createdAt string) *UserDocument {
	return &UserDocument{
		DailyTasks: []Task{},
		DatedTasks: map[string][]Task{},
		CreatedAt:  createdAt,
		UserName:   userName,
	}
}

// UserRecord is the storage row holding a serialized UserDocument.
type UserRecord struct {
	ID         uint  `gorm:"primaryKey"`
	TelegramID int64 `gorm:"uniqueIndex"`
	Document   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
