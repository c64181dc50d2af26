package ports

import (
	"context"

	"github.com/agencydesk/agency-platform/internal/core/domain"
)

// TaskRepository defines persistence operations for tasks.
type TaskRepository interface {
	Create(ctx context.Context, t *domain.Task) error
	// FindByID retrieves a task scoped to its project; a task id under a
	// different project resolves to domain.ErrTaskNotFound.
	FindByID(ctx context.Context, projectID, taskID string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, projectID, taskID string) error
	// DeleteByProject removes every task of a project (cascade delete).
	DeleteByProject(ctx context.Context, projectID string) error
}
