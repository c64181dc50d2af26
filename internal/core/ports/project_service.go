package ports

import (
	"context"

	"github.com/agencydesk/agency-platform/internal/core/domain"
)

// ProjectInput carries all writable project fields. Used for both create
// and full update (PUT semantics).
type ProjectInput struct {
	Name          string
	Description   string
	ClientName    string
	Status        string // defaults to planning when empty
	TeamMemberIDs []string
}

// ProjectService defines use-case operations for projects.
type ProjectService interface {
	Create(ctx context.Context, in ProjectInput, createdBy string) (*domain.Project, error)
	Get(ctx context.Context, id string) (*domain.Project, error)
	List(ctx context.Context) ([]*domain.Project, error)
	Update(ctx context.Context, id string, in ProjectInput) (*domain.Project, error)
	// Delete removes the project and cascades to all of its tasks.
	Delete(ctx context.Context, id string) error
}
