package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agencydesk/agency-platform/internal/core/domain"
	"github.com/agencydesk/agency-platform/internal/core/ports"
)

// TaskService implements the Kanban board operations. Every successful
// mutation publishes a lifecycle event to the owning project's room; the
// publish happens strictly after the document-store write committed and is
// fire-and-forget.
type TaskService struct {
	tasks     ports.TaskRepository
	projects  ports.ProjectRepository
	users     ports.UserRepository
	publisher ports.EventPublisher
	log       zerolog.Logger
}

func NewTaskService(tasks ports.TaskRepository, projects ports.ProjectRepository, users ports.UserRepository, publisher ports.EventPublisher, log zerolog.Logger) *TaskService {
	return &TaskService{tasks: tasks, projects: projects, users: users, publisher: publisher, log: log}
}

func (s *TaskService) Create(ctx context.Context, projectID string, in ports.CreateTaskInput, createdBy string) (*domain.Task, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}

	status := domain.TaskStatus(in.Status)
	if status == "" {
		status = domain.TaskTodo
	}
	priority := domain.TaskPriority(in.Priority)
	if priority == "" {
		priority = domain.PriorityMedium
	}

	task := &domain.Task{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		Title:       in.Title,
		Description: in.Description,
		Status:      status,
		AssignedTo:  s.resolveAssignee(ctx, in.AssignedTo),
		Priority:    priority,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   createdBy,
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	s.publisher.Publish(ports.TaskEvent{
		Kind:      ports.EventTaskCreated,
		ProjectID: projectID,
		TaskID:    task.ID,
		Task:      task,
	})

	s.log.Info().Str("task_id", task.ID).Str("project_id", projectID).Msg("task created")
	return task, nil
}

func (s *TaskService) ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error) {
	return s.tasks.ListByProject(ctx, projectID)
}

func (s *TaskService) Update(ctx context.Context, projectID, taskID string, in ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.tasks.FindByID(ctx, projectID, taskID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Status != nil {
		task.Status = domain.TaskStatus(*in.Status)
	}
	if in.Priority != nil {
		task.Priority = domain.TaskPriority(*in.Priority)
	}
	if in.AssignedTo != nil {
		task.AssignedTo = s.resolveAssignee(ctx, *in.AssignedTo)
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.tasks.Update(ctx, task); err != nil {
		return nil, err
	}

	s.publisher.Publish(ports.TaskEvent{
		Kind:      ports.EventTaskUpdated,
		ProjectID: projectID,
		TaskID:    task.ID,
		Task:      task,
	})

	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, projectID, taskID string) error {
	if _, err := s.tasks.FindByID(ctx, projectID, taskID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, projectID, taskID); err != nil {
		return err
	}

	s.publisher.Publish(ports.TaskEvent{
		Kind:      ports.EventTaskDeleted,
		ProjectID: projectID,
		TaskID:    taskID,
	})

	s.log.Info().Str("task_id", taskID).Str("project_id", projectID).Msg("task deleted")
	return nil
}

// resolveAssignee turns a user id into an embedded summary. A missing or
// deleted user resolves to no assignee rather than an error.
func (s *TaskService) resolveAssignee(ctx context.Context, userID string) *domain.UserSummary {
	if userID == "" {
		return nil
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Err(err).Str("user_id", userID).Msg("assignee lookup failed")
		}
		return nil
	}
	summary := user.Summary()
	return &summary
}
