package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/agencydesk/agency-platform/internal/core/domain"
	"github.com/agencydesk/agency-platform/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubPublisher struct {
	events []ports.TaskEvent
}

func (p *stubPublisher) Publish(event ports.TaskEvent) {
	p.events = append(p.events, event)
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func newTaskFixture() (*TaskService, *stubProjectRepo, *stubTaskRepo, *stubUserRepo, *stubPublisher) {
	projects := newStubProjectRepo()
	tasks := newStubTaskRepo()
	users := newStubUserRepo()
	pub := &stubPublisher{}
	svc := NewTaskService(tasks, projects, users, pub, zerolog.Nop())
	return svc, projects, tasks, users, pub
}

func seedProject(repo *stubProjectRepo, id string) {
	repo.byID[id] = &domain.Project{
		ID: id, Name: "Website Redesign", ClientName: "Acme",
		Status: domain.ProjectPlanning, CreatedAt: time.Now().UTC(),
	}
}

func strPtr(s string) *string { return &s }

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

func TestTaskService_Create_Success(t *testing.T) {
	svc, projects, _, _, pub := newTaskFixture()
	seedProject(projects, "p1")

	task, err := svc.Create(context.Background(), "p1", ports.CreateTaskInput{
		Title: "Design homepage", Description: "hero + nav",
	}, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Status != domain.TaskTodo {
		t.Fatalf("expected default status todo, got %q", task.Status)
	}
	if task.Priority != domain.PriorityMedium {
		t.Fatalf("expected default priority medium, got %q", task.Priority)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Kind != ports.EventTaskCreated || ev.ProjectID != "p1" || ev.TaskID != task.ID {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Task == nil {
		t.Fatal("created event must carry the task payload")
	}
}

func TestTaskService_Create_ProjectNotFound(t *testing.T) {
	svc, _, _, _, pub := newTaskFixture()

	_, err := svc.Create(context.Background(), "missing", ports.CreateTaskInput{Title: "x"}, "u1")
	if !errors.Is(err, domain.ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
	if len(pub.events) != 0 {
		t.Fatal("no event may be published when the write never happened")
	}
}

func TestTaskService_Create_ResolvesAssignee(t *testing.T) {
	svc, projects, _, users, _ := newTaskFixture()
	seedProject(projects, "p1")
	seedUser(users, "u7", "gina", "g@x.com", domain.RoleDesigner)

	task, err := svc.Create(context.Background(), "p1", ports.CreateTaskInput{
		Title: "Logo", AssignedTo: "u7",
	}, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.AssignedTo == nil || task.AssignedTo.Name != "gina" {
		t.Fatalf("assignee not resolved: %+v", task.AssignedTo)
	}
}

func TestTaskService_Create_UnknownAssigneeIsNil(t *testing.T) {
	svc, projects, _, _, _ := newTaskFixture()
	seedProject(projects, "p1")

	task, err := svc.Create(context.Background(), "p1", ports.CreateTaskInput{
		Title: "Logo", AssignedTo: "ghost",
	}, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.AssignedTo != nil {
		t.Fatalf("expected nil assignee for unknown user, got %+v", task.AssignedTo)
	}
}

// ---------------------------------------------------------------------------
// Update
// ---------------------------------------------------------------------------

func TestTaskService_Update_PartialFields(t *testing.T) {
	svc, projects, _, _, pub := newTaskFixture()
	seedProject(projects, "p1")

	task, _ := svc.Create(context.Background(), "p1", ports.CreateTaskInput{Title: "Design homepage"}, "u1")
	pub.events = nil

	updated, err := svc.Update(context.Background(), "p1", task.ID, ports.UpdateTaskInput{
		Status: strPtr(string(domain.TaskInProgress)),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.TaskInProgress {
		t.Fatalf("status not updated: %q", updated.Status)
	}
	if updated.Title != "Design homepage" {
		t.Fatalf("untouched field changed: %q", updated.Title)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected exactly 1 updated event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Kind != ports.EventTaskUpdated || ev.TaskID != task.ID {
		t.Fatalf("unexpected event: %+v", ev)
	}
	if ev.Task.Status != domain.TaskInProgress {
		t.Fatalf("event must carry the new status, got %q", ev.Task.Status)
	}
}

func TestTaskService_Update_ClearAssignee(t *testing.T) {
	svc, projects, _, users, _ := newTaskFixture()
	seedProject(projects, "p1")
	seedUser(users, "u7", "gina", "g@x.com", domain.RoleDesigner)

	task, _ := svc.Create(context.Background(), "p1", ports.CreateTaskInput{Title: "x", AssignedTo: "u7"}, "u1")

	updated, err := svc.Update(context.Background(), "p1", task.ID, ports.UpdateTaskInput{AssignedTo: strPtr("")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.AssignedTo != nil {
		t.Fatalf("expected assignee cleared, got %+v", updated.AssignedTo)
	}
}

func TestTaskService_Update_WrongProjectScope(t *testing.T) {
	svc, projects, _, _, _ := newTaskFixture()
	seedProject(projects, "p1")
	seedProject(projects, "p2")

	task, _ := svc.Create(context.Background(), "p1", ports.CreateTaskInput{Title: "x"}, "u1")

	// The same task id under a different project must not resolve.
	if _, err := svc.Update(context.Background(), "p2", task.ID, ports.UpdateTaskInput{}); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}
}

// ---------------------------------------------------------------------------
// Delete / list
// ---------------------------------------------------------------------------

func TestTaskService_Delete_PublishesDeleted(t *testing.T) {
	svc, projects, _, _, pub := newTaskFixture()
	seedProject(projects, "p1")

	task, _ := svc.Create(context.Background(), "p1", ports.CreateTaskInput{Title: "x"}, "u1")
	pub.events = nil

	if err := svc.Delete(context.Background(), "p1", task.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	if len(pub.events) != 1 {
		t.Fatalf("expected 1 deleted event, got %d", len(pub.events))
	}
	ev := pub.events[0]
	if ev.Kind != ports.EventTaskDeleted || ev.TaskID != task.ID || ev.Task != nil {
		t.Fatalf("unexpected deleted event: %+v", ev)
	}

	list, _ := svc.ListByProject(context.Background(), "p1")
	if len(list) != 0 {
		t.Fatalf("expected empty board after delete, got %d tasks", len(list))
	}
}

func TestTaskService_ListByProject_EmptyAfterCascade(t *testing.T) {
	svc, projects, tasks, users, _ := newTaskFixture()
	seedProject(projects, "p1")
	_, _ = svc.Create(context.Background(), "p1", ports.CreateTaskInput{Title: "x"}, "u1")

	projectSvc := NewProjectService(projects, tasks, users, zerolog.Nop())
	if err := projectSvc.Delete(context.Background(), "p1"); err != nil {
		t.Fatalf("project delete failed: %v", err)
	}

	list, err := svc.ListByProject(context.Background(), "p1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("expected no tasks after cascade, got %d", len(list))
	}
}
