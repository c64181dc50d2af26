package handler

import "github.com/agencydesk/agency-platform/internal/core/domain"

type projectRequest struct {
	Name        string   `json:"name"         validate:"required"`
	Description string   `json:"description"`
	ClientName  string   `json:"client_name"  validate:"required"`
	Status      string   `json:"status"       validate:"omitempty,oneof=planning in_progress review completed"`
	TeamMembers []string `json:"team_members"`
}

type createProjectResponse struct {
	Message string          `json:"message"`
	Project *domain.Project `json:"project"`
}
