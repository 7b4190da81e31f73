package dto

import "time"

// CreatePreventiveTaskRequest alta de tarea de mantenimiento preventivo.
type CreatePreventiveTaskRequest struct {
	Title               string     `json:"title"`
	Description         string     `json:"description"`
	AssetLocation       string     `json:"asset_location"`
	Frequency           string     `json:"frequency"` // daily | weekly | monthly | yearly
	StartDate           *time.Time `json:"start_date,omitempty"`
	AssignedTechnicians []string   `json:"assigned_technicians"`
}

// PreventiveTaskResponse tarea preventiva.
type PreventiveTaskResponse struct {
	ID                  string     `json:"id"`
	CompanyID           string     `json:"company_id"`
	Title               string     `json:"title"`
	Description         string     `json:"description,omitempty"`
	AssetLocation       string     `json:"asset_location,omitempty"`
	Frequency           string     `json:"frequency"`
	NextDueDate         time.Time  `json:"next_due_date"`
	AssignedTechnicians []string   `json:"assigned_technicians"`
	LastCompletedDate   *time.Time `json:"last_completed_date,omitempty"`
	Status              string     `json:"status"`
	CreatedAt           time.Time  `json:"created_at"`
}

// CompleteTaskResponse resultado de completar una tarea.
type CompleteTaskResponse struct {
	Message     string    `json:"message"`
	NextDueDate time.Time `json:"next_due_date"`
}

// NotificationResponse notificación in-app.
type NotificationResponse struct {
	ID        string         `json:"id"`
	UserID    string         `json:"user_id"`
	CompanyID string         `json:"company_id"`
	Type      string         `json:"type"`
	Payload   map[string]any `json:"payload"`
	ReadAt    *time.Time     `json:"read_at,omitempty"`
	SentAt    time.Time      `json:"sent_at"`
	Channel   string         `json:"channel"`
}
