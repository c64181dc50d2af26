package ws

import (
	"encoding/json"
	"testing"

	"github.com/agencydesk/agency-platform/internal/core/domain"
	"github.com/agencydesk/agency-platform/internal/core/ports"
)

func TestEventMessage_CreatedCarriesTask(t *testing.T) {
	task := &domain.Task{ID: "t1", ProjectID: "p1", Title: "Design homepage", Status: domain.TaskTodo}
	msg := eventMessage(ports.TaskEvent{
		Kind: ports.EventTaskCreated, ProjectID: "p1", TaskID: "t1", Task: task,
	})

	if msg.Type != TypeTaskCreated {
		t.Fatalf("expected type %q, got %q", TypeTaskCreated, msg.Type)
	}

	raw, err := json.Marshal(msg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Type    string `json:"type"`
		Payload struct {
			Task      *domain.Task `json:"task"`
			ProjectID string       `json:"project_id"`
		} `json:"payload"`
	}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Payload.Task == nil || decoded.Payload.Task.ID != "t1" {
		t.Fatalf("task missing from payload: %s", raw)
	}
	if decoded.Payload.ProjectID != "p1" {
		t.Fatalf("project_id missing from payload: %s", raw)
	}
}

func TestEventMessage_DeletedCarriesOnlyIDs(t *testing.T) {
	msg := eventMessage(ports.TaskEvent{
		Kind: ports.EventTaskDeleted, ProjectID: "p1", TaskID: "t1",
	})

	if msg.Type != TypeTaskDeleted {
		t.Fatalf("expected type %q, got %q", TypeTaskDeleted, msg.Type)
	}
	payload, ok := msg.Payload.(TaskDeletedPayload)
	if !ok {
		t.Fatalf("unexpected payload type: %T", msg.Payload)
	}
	if payload.TaskID != "t1" || payload.ProjectID != "p1" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestWsConn_DeliverDropsWhenQueueFull(t *testing.T) {
	c := &wsConn{send: make(chan Message, 2), closed: make(chan struct{})}

	// Deliver must never block, even with no writer draining the queue.
	for i := 0; i < sendBuffer+10; i++ {
		c.Deliver(ports.TaskEvent{Kind: ports.EventTaskUpdated, ProjectID: "p1", TaskID: "t1"})
	}

	if len(c.send) != 2 {
		t.Fatalf("expected queue capped at 2, got %d", len(c.send))
	}
}
