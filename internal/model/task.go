package model

// Task origin tags used by checklist bookkeeping.
const (
	TaskTypeDaily   = "daily"
	TaskTypeSpecial = "special"
)

// Task represents a single item in the planner.
type Task struct {
	Name      string `json:"name"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
	Type      string `json:"type,omitempty"`
}
