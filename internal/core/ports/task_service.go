package ports

import (
	"context"

	"github.com/agencydesk/agency-platform/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task on a board.
type CreateTaskInput struct {
	Title       string
	Description string
	Status      string // defaults to todo when empty
	AssignedTo  string // optional user id
	Priority    string // defaults to medium when empty
}

// UpdateTaskInput carries a partial update; nil fields are left untouched.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
	AssignedTo  *string // empty string clears the assignee
	Priority    *string
}

// TaskService defines use-case operations for tasks. Every successful
// mutation publishes a task lifecycle event to the owning project's room
// after the document-store write committed.
type TaskService interface {
	Create(ctx context.Context, projectID string, in CreateTaskInput, createdBy string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	Update(ctx context.Context, projectID, taskID string, in UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, projectID, taskID string) error
}
