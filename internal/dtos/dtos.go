package dtos

import "github.com/applytrack/applytrack/internal/models"

type SignUpRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignInRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Token  string `json:"token"`
}

type ApplicationCreateRequest struct {
	Company  string                   `json:"company" binding:"required"`
	Position string                   `json:"position" binding:"required"`
	Status   models.ApplicationStatus `json:"status"` // defaults to "applied" if empty
	Notes    string                   `json:"notes"`
}

type ApplicationUpdateRequest struct {
	Company  *string                   `json:"company"`
	Position *string                   `json:"position"`
	Status   *models.ApplicationStatus `json:"status"`
	Notes    *string                   `json:"notes"`
}

type TaskCreateRequest struct {
	ApplicationID string `json:"application_id" binding:"required"`
	Title         string `json:"title" binding:"required"`
	DueDate       string `json:"due_date"` // YYYY-MM-DD, empty for none
	Notes         string `json:"notes"`
}

type TaskUpdateRequest struct {
	ApplicationID *string `json:"application_id"`
	Title         *string `json:"title"`
	DueDate       *string `json:"due_date"` // YYYY-MM-DD, "" clears it
	Completed     *bool   `json:"completed"`
	Notes         *string `json:"notes"`
}
