// Package store is the persistence boundary: typed CRUD over the
// Application and Task collections, always scoped to the caller's
// owner identity. Missing records and records owned by someone else
// are indistinguishable to callers.
package store

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity resolves the caller behind an operation. The session
// manager satisfies this for in-process consumers; the HTTP layer
// satisfies it with a request-context lookup.
type Identity interface {
	UserID(ctx context.Context) (uuid.UUID, error)
}

type Store struct {
	DB    *gorm.DB
	Ident Identity
}

func New(db *gorm.DB, ident Identity) *Store {
	return &Store{DB: db, Ident: ident}
}

// owner resolves the caller or fails with PermissionError. Every
// operation goes through here; there is no unscoped path.
func (s *Store) owner(ctx context.Context) (uuid.UUID, error) {
	return s.Ident.UserID(ctx)
}

// scoped runs fn inside a transaction bound to the caller. On
// postgres it also sets app.current_owner so the row-level policies
// apply: even a buggy query cannot read another owner's rows.
func (s *Store) scoped(ctx context.Context, owner uuid.UUID, fn func(tx *gorm.DB) error) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tx.Dialector.Name() == "postgres" {
			if err := tx.Exec("SELECT set_config('app.current_owner', ?, true)", owner.String()).Error; err != nil {
				return err
			}
		}
		return fn(tx)
	})
}
