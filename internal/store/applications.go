package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/apperr"
	"github.com/applytrack/applytrack/internal/models"
	"github.com/applytrack/applytrack/internal/validate"
)

// ApplicationInput carries the user-supplied fields for a create.
// Owner, id, and timestamps are assigned here, never taken from input.
type ApplicationInput struct {
	Company  string
	Position string
	Status   models.ApplicationStatus
	Notes    string
}

// ApplicationUpdate carries a partial update; nil fields are left
// unchanged. Owner and id are immutable and have no field here.
type ApplicationUpdate struct {
	Company  *string
	Position *string
	Status   *models.ApplicationStatus
	Notes    *string
}

// ListApplications returns the caller's applications, newest first.
func (s *Store) ListApplications(ctx context.Context) ([]models.Application, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	// Non-nil so an empty collection serializes as [], not null.
	apps := make([]models.Application, 0)
	err = s.scoped(ctx, owner, func(tx *gorm.DB) error {
		return tx.
			Where("owner_id = ?", owner).
			Order("created_at DESC").
			Find(&apps).Error
	})
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// CreateApplication validates, then persists. Validation failures
// never touch storage.
func (s *Store) CreateApplication(ctx context.Context, in ApplicationInput) (*models.Application, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	if in.Status == "" {
		in.Status = models.StatusApplied
	}
	if err := validate.Application(in.Company, in.Position, in.Status, in.Notes); err != nil {
		return nil, err
	}

	app := &models.Application{
		OwnerID:  owner,
		Company:  in.Company,
		Position: in.Position,
		Status:   in.Status,
		Notes:    in.Notes,
	}
	err = s.scoped(ctx, owner, func(tx *gorm.DB) error {
		return tx.Create(app).Error
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

func (s *Store) GetApplication(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	var app *models.Application
	err = s.scoped(ctx, owner, func(tx *gorm.DB) error {
		app, err = getApplication(tx, owner, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// getApplication applies ownership as a query predicate, so "missing"
// and "not owned" are one code path and one error.
func getApplication(tx *gorm.DB, owner, id uuid.UUID) (*models.Application, error) {
	var app models.Application
	err := tx.
		Where("id = ? AND owner_id = ?", id, owner).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Resource: "application"}
		}
		return nil, err
	}
	return &app, nil
}

// UpdateApplication applies a partial update, re-validating the merged
// record before anything is written. updated_at advances on success.
func (s *Store) UpdateApplication(ctx context.Context, id uuid.UUID, upd ApplicationUpdate) (*models.Application, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	var app *models.Application
	err = s.scoped(ctx, owner, func(tx *gorm.DB) error {
		var err error
		app, err = getApplication(tx, owner, id)
		if err != nil {
			return err
		}

		if upd.Company != nil {
			app.Company = *upd.Company
		}
		if upd.Position != nil {
			app.Position = *upd.Position
		}
		if upd.Status != nil {
			app.Status = *upd.Status
		}
		if upd.Notes != nil {
			app.Notes = *upd.Notes
		}
		if err := validate.Application(app.Company, app.Position, app.Status, app.Notes); err != nil {
			return err
		}
		return tx.Save(app).Error
	})
	if err != nil {
		return nil, err
	}
	return app, nil
}

// DeleteApplication removes the application and all its tasks in one
// transaction. Either both collections change or neither does.
func (s *Store) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}
	return s.scoped(ctx, owner, func(tx *gorm.DB) error {
		if err := tx.
			Where("application_id = ? AND owner_id = ?", id, owner).
			Delete(&models.Task{}).Error; err != nil {
			return err
		}
		res := tx.
			Where("id = ? AND owner_id = ?", id, owner).
			Delete(&models.Application{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Resource: "application"}
		}
		return nil
	})
}
