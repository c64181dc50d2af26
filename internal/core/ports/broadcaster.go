package ports

import "github.com/agencydesk/agency-platform/internal/core/domain"

// EventKind identifies a task lifecycle event.
type EventKind string

const (
	EventTaskCreated EventKind = "task_created"
	EventTaskUpdated EventKind = "task_updated"
	EventTaskDeleted EventKind = "task_deleted"
)

// TaskEvent is the transient payload fanned out to a project's room.
// Task is nil for deletions; TaskID is always set.
type TaskEvent struct {
	Kind      EventKind
	ProjectID string
	TaskID    string
	Task      *domain.Task
}

// EventPublisher delivers task events to a project's subscribers,
// fire-and-forget: a call never blocks on slow subscribers and never
// reports delivery failure to the caller.
type EventPublisher interface {
	Publish(event TaskEvent)
}
