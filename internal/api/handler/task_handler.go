package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/agencydesk/agency-platform/internal/api/metrics"
	"github.com/agencydesk/agency-platform/internal/core/domain"
	"github.com/agencydesk/agency-platform/internal/core/ports"
)

// TaskHandler handles HTTP requests for the Kanban board.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

// Create handles POST /api/projects/:project_id/tasks.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      string             true  "Project id"
// @Param        body        body      createTaskRequest  true  "Task details"
// @Success      201         {object}  createTaskResponse
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /api/projects/{project_id}/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	task, err := h.service.Create(c.Request().Context(), c.Param("project_id"), ports.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		Priority:    req.Priority,
	}, user.ID)
	if err != nil {
		if errors.Is(err, domain.ErrProjectNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "project not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Priority)).Inc()
	return c.JSON(http.StatusCreated, createTaskResponse{
		Message: "Task created successfully",
		Task:    task,
	})
}

// List handles GET /api/projects/:project_id/tasks.
//
// @Summary      List a project's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      string  true  "Project id"
// @Success      200         {array}   domain.Task
// @Failure      401         {object}  errorResponse
// @Router       /api/projects/{project_id}/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	tasks, err := h.service.ListByProject(c.Request().Context(), c.Param("project_id"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
	if tasks == nil {
		tasks = []*domain.Task{}
	}
	return c.JSON(http.StatusOK, tasks)
}

// Update handles PUT /api/projects/:project_id/tasks/:task_id.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      string             true  "Project id"
// @Param        task_id     path      string             true  "Task id"
// @Param        body        body      updateTaskRequest  true  "Fields to change"
// @Success      200         {object}  domain.Task
// @Failure      400         {object}  errorResponse
// @Failure      404         {object}  errorResponse
// @Router       /api/projects/{project_id}/tasks/{task_id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
	}

	task, err := h.service.Update(c.Request().Context(), c.Param("project_id"), c.Param("task_id"), ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		AssignedTo:  req.AssignedTo,
		Priority:    req.Priority,
	})
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/projects/:project_id/tasks/:task_id.
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        project_id  path      string  true  "Project id"
// @Param        task_id     path      string  true  "Task id"
// @Success      200         {object}  messageResponse
// @Failure      404         {object}  errorResponse
// @Router       /api/projects/{project_id}/tasks/{task_id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("project_id"), c.Param("task_id")); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: "task not found"})
		}
		return c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Task deleted successfully"})
}
