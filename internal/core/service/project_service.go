package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agencydesk/agency-platform/internal/core/domain"
	"github.com/agencydesk/agency-platform/internal/core/ports"
)

// ProjectService implements project CRUD with cascade delete of tasks.
type ProjectService struct {
	projects ports.ProjectRepository
	tasks    ports.TaskRepository
	users    ports.UserRepository
	log      zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, tasks ports.TaskRepository, users ports.UserRepository, log zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, tasks: tasks, users: users, log: log}
}

func (s *ProjectService) Create(ctx context.Context, in ports.ProjectInput, createdBy string) (*domain.Project, error) {
	members, err := s.resolveTeam(ctx, in.TeamMemberIDs)
	if err != nil {
		return nil, err
	}

	status := domain.ProjectStatus(in.Status)
	if status == "" {
		status = domain.ProjectPlanning
	}

	project := &domain.Project{
		ID:          uuid.NewString(),
		Name:        in.Name,
		Description: in.Description,
		ClientName:  in.ClientName,
		Status:      status,
		TeamMembers: members,
		CreatedAt:   time.Now().UTC(),
		CreatedBy:   createdBy,
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	s.log.Info().Str("project_id", project.ID).Str("client", project.ClientName).Msg("project created")
	return project, nil
}

func (s *ProjectService) Get(ctx context.Context, id string) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context) ([]*domain.Project, error) {
	return s.projects.List(ctx)
}

func (s *ProjectService) Update(ctx context.Context, id string, in ports.ProjectInput) (*domain.Project, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	members, err := s.resolveTeam(ctx, in.TeamMemberIDs)
	if err != nil {
		return nil, err
	}

	project.Name = in.Name
	project.Description = in.Description
	project.ClientName = in.ClientName
	if in.Status != "" {
		project.Status = domain.ProjectStatus(in.Status)
	}
	project.TeamMembers = members
	project.UpdatedAt = time.Now().UTC()

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project and every task on its board. Once the cascade
// completes no further events can be published to the project's room since
// there is nothing left to mutate.
func (s *ProjectService) Delete(ctx context.Context, id string) error {
	if _, err := s.projects.FindByID(ctx, id); err != nil {
		return err
	}

	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.tasks.DeleteByProject(ctx, id); err != nil {
		// Project document is gone; orphaned tasks are unreachable via
		// the API but should not fail the request.
		s.log.Warn().Err(err).Str("project_id", id).Msg("cascade task delete failed")
	}

	s.log.Info().Str("project_id", id).Msg("project deleted")
	return nil
}

// resolveTeam expands user ids into embedded summaries, skipping ids that
// do not resolve (mirrors how assignments tolerate deleted users).
func (s *ProjectService) resolveTeam(ctx context.Context, ids []string) ([]domain.UserSummary, error) {
	members := []domain.UserSummary{}
	if len(ids) == 0 {
		return members, nil
	}
	users, err := s.users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		members = append(members, u.Summary())
	}
	return members, nil
}
