package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/applytrack/applytrack/internal/apperr"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// WithUserID stamps the verified caller identity onto a request
// context. Only the bearer middleware writes this.
func WithUserID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// ContextIdentity resolves the caller from the request context. It is
// the per-request counterpart of the session manager's accessor: both
// satisfy the record store's Identity contract.
type ContextIdentity struct{}

func (ContextIdentity) UserID(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(userIDKey).(uuid.UUID)
	if !ok {
		return uuid.Nil, &apperr.PermissionError{Reason: "no authenticated session"}
	}
	return id, nil
}
