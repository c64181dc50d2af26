package handler

import "github.com/agencydesk/agency-platform/internal/core/domain"

type createTaskRequest struct {
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"      validate:"omitempty,oneof=todo in_progress done"`
	AssignedTo  string `json:"assigned_to"`
	Priority    string `json:"priority"    validate:"omitempty,oneof=low medium high"`
}

// updateTaskRequest distinguishes "absent" from "empty" with pointers so a
// PUT can change a single column without clobbering the rest.
type updateTaskRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=1"`
	Description *string `json:"description"`
	Status      *string `json:"status"      validate:"omitempty,oneof=todo in_progress done"`
	AssignedTo  *string `json:"assigned_to"`
	Priority    *string `json:"priority"    validate:"omitempty,oneof=low medium high"`
}

type createTaskResponse struct {
	Message string       `json:"message"`
	Task    *domain.Task `json:"task"`
}
