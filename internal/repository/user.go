package repository

import (
	"context"
	"errors"

	"github.com/dcamposl/resilient-auth/internal/models"
)

// ErrDuplicateEmail is returned by Save when the email unique constraint is
// violated. It is the persistence-level safety net for concurrent
// registrations that both pass the advisory existence check.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines persistence operations for User records. Lookups
// report absence through a nil result, not an error.
type UserRepository interface {
	Save(ctx context.Context, user *models.User) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
	FindAllByIDs(ctx context.Context, ids []int64) ([]*models.User, error)
}
