package storage

import "time"

type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      string
	DueDate     string
	Reminder    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Reminder struct {
	ID          string
	UserID      string
	TaskID      string
	Title       string
	Description string
	Clock       string
	Date        string
	Type        string
	IsRead      bool
	CreatedAt   time.Time
}

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type TaskListFilter struct {
	UserID  string
	Status  string
	DueDate string
	Limit   int
	Offset  int
}

type ReminderListFilter struct {
	UserID string
	TaskID string
	Type   string
	IsRead *bool
	Limit  int
	Offset int
}
