package repository

import (
	"context"
	"errors"

	"github.com/emartsoft/login-service/internal/domain/entity"
)

// ErrNotFound is returned when no account matches the given key.
var ErrNotFound = errors.New("account not found")

// DuplicateKeyError reports a unique-constraint violation on save.
// Field names the colliding key ("email" or "phone"). The database is
// the final arbiter of uniqueness; callers must handle this even after
// a passing existence pre-check.
type DuplicateKeyError struct {
	Field string
}

func (e *DuplicateKeyError) Error() string {
	return "duplicate key: " + e.Field
}

// AccountRepository defines the persistence operations the auth engine
// depends on. Create assigns ID and timestamps; Update bumps UpdatedAt.
type AccountRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.Account, error)
	GetByEmail(ctx context.Context, email string) (*entity.Account, error)
	Create(ctx context.Context, a *entity.Account) error
	Update(ctx context.Context, a *entity.Account) error
}
