package ports

import (
	"context"

	"github.com/agencydesk/agency-platform/internal/core/domain"
)

// UserRepository defines persistence operations for user records.
type UserRepository interface {
	// Create inserts a new user. Returns domain.ErrUserExists when the
	// email unique index rejects the insert.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// FindByIDs returns the users matching ids; unknown ids are skipped.
	FindByIDs(ctx context.Context, ids []string) ([]*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
