package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/agency-platform/internal/api/metrics"
	"github.com/agencydesk/agency-platform/internal/core/domain"
	"github.com/agencydesk/agency-platform/internal/core/ports"
)

// ProjectHandler handles HTTP requests for project operations.
type ProjectHandler struct {
	service ports.ProjectService
}

func NewProjectHandler(service ports.ProjectService) *ProjectHandler {
	return &ProjectHandler{service: service}
}

// Create handles POST /api/projects.
//
// @Summary      Create a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      projectRequest  true  "Project details"
// @Success      201   {object}  createProjectResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /api/projects [post]
func (h *ProjectHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	project, err := h.service.Create(c.Request().Context(), ports.ProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		ClientName:    req.ClientName,
		Status:        req.Status,
		TeamMemberIDs: req.TeamMembers,
	}, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	metrics.ProjectsCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, createProjectResponse{
		Message: "Project created successfully",
		Project: project,
	})
}

// List handles GET /api/projects.
//
// @Summary      List projects
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Project
// @Failure      401  {object}  errorResponse
// @Router       /api/projects [get]
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.service.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
	if projects == nil {
		projects = []*domain.Project{}
	}
	return c.JSON(http.StatusOK, projects)
}

// Get handles GET /api/projects/:project_id.
//
// @Summary      Get a project
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      string  true  "Project id"
// @Success      200         {object}  domain.Project
// @Failure      404         {object}  errorResponse
// @Router       /api/projects/{project_id} [get]
func (h *ProjectHandler) Get(c echo.Context) error {
	project, err := h.service.Get(c.Request().Context(), c.Param("project_id"))
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, project)
}

// Update handles PUT /api/projects/:project_id.
//
// @Summary      Update a project
// @Tags         projects
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      string          true  "Project id"
// @Param        body        body      projectRequest  true  "Project details"
// @Success      200         {object}  domain.Project
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /api/projects/{project_id} [put]
func (h *ProjectHandler) Update(c echo.Context) error {
	var req projectRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	project, err := h.service.Update(c.Request().Context(), c.Param("project_id"), ports.ProjectInput{
		Name:          req.Name,
		Description:   req.Description,
		ClientName:    req.ClientName,
		Status:        req.Status,
		TeamMemberIDs: req.TeamMembers,
	})
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, project)
}

// Delete handles DELETE /api/projects/:project_id. Tasks on the project's
// board are removed with it.
//
// @Summary      Delete a project and its tasks
// @Tags         projects
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      string  true  "Project id"
// @Success      200         {object}  messageResponse
// @Failure      403         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /api/projects/{project_id} [delete]
func (h *ProjectHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("project_id")); err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Project deleted successfully"})
}
