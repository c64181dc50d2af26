package ws

import (
	"github.com/agencydesk/agency-platform/internal/core/domain"
	"github.com/agencydesk/agency-platform/internal/core/ports"
)

// Inbound message types clients may send.
const (
	TypeJoinProject  = "join_project"  // subscribe to a project's room
	TypeLeaveProject = "leave_project" // unsubscribe from a project's room
)

// Outbound message types.
const (
	TypeMessage     = "message" // informational text (connect/join acks)
	TypeTaskCreated = "task_created"
	TypeTaskUpdated = "task_updated"
	TypeTaskDeleted = "task_deleted"
)

type Message struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

type RoomPayload struct {
	ProjectID string `json:"project_id"`
}

type InfoPayload struct {
	Data string `json:"data"`
}

// TaskEventPayload is sent for created and updated tasks.
type TaskEventPayload struct {
	Task      *domain.Task `json:"task"`
	ProjectID string       `json:"project_id"`
}

// TaskDeletedPayload is sent for deletions; the task document no longer
// exists so only its id travels.
type TaskDeletedPayload struct {
	TaskID    string `json:"task_id"`
	ProjectID string `json:"project_id"`
}

// eventMessage maps a broadcaster event onto its wire representation.
func eventMessage(event ports.TaskEvent) Message {
	switch event.Kind {
	case ports.EventTaskDeleted:
		return Message{
			Type:    TypeTaskDeleted,
			Payload: TaskDeletedPayload{TaskID: event.TaskID, ProjectID: event.ProjectID},
		}
	default:
		return Message{
			Type:    string(event.Kind),
			Payload: TaskEventPayload{Task: event.Task, ProjectID: event.ProjectID},
		}
	}
}
