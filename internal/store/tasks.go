package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/applytrack/applytrack/internal/apperr"
	"github.com/applytrack/applytrack/internal/models"
	"github.com/applytrack/applytrack/internal/validate"
)

type TaskInput struct {
	Title   string
	DueDate *time.Time
	Notes   string
}

// TaskUpdate carries a partial update; nil fields are left unchanged.
// ClearDueDate removes the due date (a nil DueDate alone means "leave
// as is"). Reassigning ApplicationID re-checks that the new parent is
// caller-owned.
type TaskUpdate struct {
	ApplicationID *uuid.UUID
	Title         *string
	DueDate       *time.Time
	ClearDueDate  bool
	Completed     *bool
	Notes         *string
}

// TaskWithApplication is a task joined with its parent application's
// summary fields for list rendering.
type TaskWithApplication struct {
	models.Task
	Company  string `json:"company"`
	Position string `json:"position"`
}

// dateOnly strips the time component; due dates are calendar dates.
func dateOnly(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}

// ListTasks returns the caller's tasks joined with parent company and
// position, due-date ascending with undated tasks last, then newest
// created first.
func (s *Store) ListTasks(ctx context.Context) ([]TaskWithApplication, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	// Non-nil so an empty collection serializes as [], not null.
	out := make([]TaskWithApplication, 0)
	err = s.scoped(ctx, owner, func(tx *gorm.DB) error {
		return tx.
			Table("tasks").
			Select("tasks.*, applications.company AS company, applications.position AS position").
			Joins("JOIN applications ON applications.id = tasks.application_id").
			Where("tasks.owner_id = ?", owner).
			Order("tasks.due_date ASC NULLS LAST").
			Order("tasks.created_at DESC").
			Scan(&out).Error
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTask links a new task to a caller-owned application. A parent
// id belonging to someone else fails exactly like a missing one.
func (s *Store) CreateTask(ctx context.Context, applicationID uuid.UUID, in TaskInput) (*models.Task, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	if err := validate.Task(in.Title, in.Notes); err != nil {
		return nil, err
	}

	task := &models.Task{
		OwnerID:       owner,
		ApplicationID: applicationID,
		Title:         in.Title,
		DueDate:       dateOnly(in.DueDate),
		Notes:         in.Notes,
	}
	err = s.scoped(ctx, owner, func(tx *gorm.DB) error {
		if _, err := getApplication(tx, owner, applicationID); err != nil {
			return err
		}
		return tx.Create(task).Error
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Store) GetTask(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	var task *models.Task
	err = s.scoped(ctx, owner, func(tx *gorm.DB) error {
		task, err = getTask(tx, owner, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func getTask(tx *gorm.DB, owner, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := tx.
		Where("id = ? AND owner_id = ?", id, owner).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &apperr.NotFoundError{Resource: "task"}
		}
		return nil, err
	}
	return &task, nil
}

func (s *Store) UpdateTask(ctx context.Context, id uuid.UUID, upd TaskUpdate) (*models.Task, error) {
	owner, err := s.owner(ctx)
	if err != nil {
		return nil, err
	}
	var task *models.Task
	err = s.scoped(ctx, owner, func(tx *gorm.DB) error {
		var err error
		task, err = getTask(tx, owner, id)
		if err != nil {
			return err
		}

		if upd.ApplicationID != nil {
			// The new parent must be caller-owned too.
			if _, err := getApplication(tx, owner, *upd.ApplicationID); err != nil {
				return err
			}
			task.ApplicationID = *upd.ApplicationID
		}
		if upd.Title != nil {
			task.Title = *upd.Title
		}
		if upd.ClearDueDate {
			task.DueDate = nil
		} else if upd.DueDate != nil {
			task.DueDate = dateOnly(upd.DueDate)
		}
		if upd.Completed != nil {
			task.Completed = *upd.Completed
		}
		if upd.Notes != nil {
			task.Notes = *upd.Notes
		}
		if err := validate.Task(task.Title, task.Notes); err != nil {
			return err
		}
		return tx.Save(task).Error
	})
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (s *Store) DeleteTask(ctx context.Context, id uuid.UUID) error {
	owner, err := s.owner(ctx)
	if err != nil {
		return err
	}
	return s.scoped(ctx, owner, func(tx *gorm.DB) error {
		res := tx.
			Where("id = ? AND owner_id = ?", id, owner).
			Delete(&models.Task{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return &apperr.NotFoundError{Resource: "task"}
		}
		return nil
	})
}

// ToggleTaskCompleted flips the completed flag. Convenience wrapper
// over UpdateTask with no extra contract.
func (s *Store) ToggleTaskCompleted(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	completed := !task.Completed
	return s.UpdateTask(ctx, id, TaskUpdate{Completed: &completed})
}
