package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ApplicationStatus string

const (
	StatusApplied   ApplicationStatus = "applied"
	StatusInterview ApplicationStatus = "interview"
	StatusOffer     ApplicationStatus = "offer"
	StatusRejected  ApplicationStatus = "rejected"
)

// Profile mirrors one identity-provider user. Created on first sign-up,
// never mutated by the record store.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
}

type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Set once at creation, never reassigned.
	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	Company  string            `gorm:"not null" json:"company"`
	Position string            `gorm:"not null" json:"position"`
	Status   ApplicationStatus `gorm:"default:'applied'" json:"status"`
	Notes    string            `gorm:"type:text" json:"notes"`

	// 'omitempty' prevents infinite loops when fetching an Application -> Tasks -> ...
	Tasks []Task `gorm:"constraint:OnDelete:CASCADE" json:"tasks,omitempty"`
}

type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	OwnerID uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`

	// Foreign Key: must reference an application owned by the same user.
	ApplicationID uuid.UUID `gorm:"type:uuid;not null;index" json:"application_id"`

	Title     string     `gorm:"not null" json:"title"`
	DueDate   *time.Time `json:"due_date"`
	Completed bool       `gorm:"default:false" json:"completed"`
	Notes     string     `gorm:"type:text" json:"notes"`
}

func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
