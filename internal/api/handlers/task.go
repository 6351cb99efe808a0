package handlers

import (
	"net/http"

	"task-manager-backend/internal/auth"
	"task-manager-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// TaskHandler handles task lifecycle endpoints
type TaskHandler struct {
	taskService     service.TaskServiceInterface
	defaultPageSize int
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(taskService service.TaskServiceInterface, defaultPageSize int) *TaskHandler {
	return &TaskHandler{taskService: taskService, defaultPageSize: defaultPageSize}
}

// List handles GET /Tasks
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Envelope{data=service.TaskListResponse}
// @Security BearerAuth
// @Router /Tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	page, pageSize := pagination(c, h.defaultPageSize)
	resp, err := h.taskService.List(page, pageSize)
	if err != nil {
		handleError(c, "task.list", err)
		return
	}
	respondSuccess(c, http.StatusOK, "tasks retrieved successfully", resp)
}

// Get handles GET /Tasks/:id
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} Envelope{data=service.TaskResponse}
// @Failure 404 {object} ErrorEnvelope "Task not found"
// @Security BearerAuth
// @Router /Tasks/{id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.taskService.Get(id)
	if err != nil {
		handleError(c, "task.get", err)
		return
	}
	respondSuccess(c, http.StatusOK, "task retrieved successfully", resp)
}

// Create handles POST /Tasks
// @Summary Create a task
// @Description Create a task in a project; the caller needs the manager role there and the assignee must hold a developer membership
// @Tags tasks
// @Accept json
// @Produce json
// @Param task body service.CreateTaskRequest true "Task payload"
// @Success 201 {object} Envelope{data=service.TaskResponse}
// @Failure 401 {object} ErrorEnvelope "Role not allowed"
// @Failure 404 {object} ErrorEnvelope "Project not found"
// @Failure 422 {object} ErrorEnvelope "Validation error"
// @Security BearerAuth
// @Router /Tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	actor, ok := auth.GetActor(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req service.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
		return
	}

	resp, err := h.taskService.Create(actor, &req)
	if err != nil {
		handleError(c, "task.create", err)
		return
	}
	respondSuccess(c, http.StatusCreated, "task created successfully", resp)
}

// Update handles PUT /Tasks/:id
// @Summary Update a task
// @Description Partial update by the task's creator (manager role) or an admin; project is immutable, reassignment re-checks the assignee
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param task body service.UpdateTaskRequest true "Fields to update"
// @Success 200 {object} Envelope{data=service.TaskResponse}
// @Failure 401 {object} ErrorEnvelope "Role not allowed or not the creator"
// @Failure 404 {object} ErrorEnvelope "Task not found"
// @Failure 422 {object} ErrorEnvelope "Validation error"
// @Security BearerAuth
// @Router /Tasks/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	actor, ok := auth.GetActor(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req service.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
		return
	}

	resp, err := h.taskService.Update(actor, id, &req)
	if err != nil {
		handleError(c, "task.update", err)
		return
	}
	respondSuccess(c, http.StatusOK, "task updated successfully", resp)
}

// ChangeStatus handles PUT /change-status-task/:id
// @Summary Advance a task's status
// @Description Move the task one step forward (new→in_progress→completed); only the assignee with the developer role, or an admin
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param status body service.ChangeStatusRequest true "Target status"
// @Success 200 {object} Envelope{data=service.TaskResponse}
// @Failure 401 {object} ErrorEnvelope "Role not allowed or not the assignee"
// @Failure 404 {object} ErrorEnvelope "Task not found"
// @Failure 422 {object} ErrorEnvelope "Invalid transition"
// @Security BearerAuth
// @Router /change-status-task/{id} [put]
func (h *TaskHandler) ChangeStatus(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	actor, ok := auth.GetActor(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req service.ChangeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
		return
	}

	resp, err := h.taskService.ChangeStatus(actor, id, &req)
	if err != nil {
		handleError(c, "task.change_status", err)
		return
	}
	respondSuccess(c, http.StatusOK, "task status changed successfully", resp)
}

// AddNotes handles PUT /add-notes-task/:id
// @Summary Add notes to a task
// @Description Attach notes of at least 25 characters; the caller needs the tester role on the task's project
// @Tags tasks
// @Accept json
// @Produce json
// @Param id path string true "Task ID"
// @Param notes body service.AddNotesRequest true "Notes payload"
// @Success 200 {object} Envelope{data=service.TaskResponse}
// @Failure 401 {object} ErrorEnvelope "Role not allowed"
// @Failure 404 {object} ErrorEnvelope "Task not found"
// @Failure 422 {object} ErrorEnvelope "Validation error"
// @Security BearerAuth
// @Router /add-notes-task/{id} [put]
func (h *TaskHandler) AddNotes(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	actor, ok := auth.GetActor(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req service.AddNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
		return
	}

	resp, err := h.taskService.AddNotes(actor, id, &req)
	if err != nil {
		handleError(c, "task.add_notes", err)
		return
	}
	respondSuccess(c, http.StatusOK, "task notes added successfully", resp)
}

// ListMyProjects handles GET /tasks-in-my-projects
// @Summary List tasks in the caller's projects
// @Description Tasks of every project the caller holds a membership on
// @Tags tasks
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Envelope{data=service.TaskListResponse}
// @Security BearerAuth
// @Router /tasks-in-my-projects [get]
func (h *TaskHandler) ListMyProjects(c *gin.Context) {
	actor, ok := auth.GetActor(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	page, pageSize := pagination(c, h.defaultPageSize)
	resp, err := h.taskService.ListMyProjects(actor, page, pageSize)
	if err != nil {
		handleError(c, "task.list_my_projects", err)
		return
	}
	respondSuccess(c, http.StatusOK, "tasks retrieved successfully", resp)
}

// Delete handles DELETE /Tasks-delete/:id
// @Summary Soft-delete a task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} ErrorEnvelope "Task not found"
// @Security BearerAuth
// @Router /Tasks-delete/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.taskService.Delete(id); err != nil {
		handleError(c, "task.delete", err)
		return
	}
	respondSuccess(c, http.StatusOK, "task deleted successfully", nil)
}

// Trashed handles GET /Tasks/trashed
// @Summary List soft-deleted tasks
// @Tags tasks
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Envelope{data=service.TaskListResponse}
// @Security BearerAuth
// @Router /Tasks/trashed [get]
func (h *TaskHandler) Trashed(c *gin.Context) {
	page, pageSize := pagination(c, h.defaultPageSize)
	resp, err := h.taskService.Trashed(page, pageSize)
	if err != nil {
		handleError(c, "task.trashed", err)
		return
	}
	respondSuccess(c, http.StatusOK, "trashed tasks retrieved successfully", resp)
}

// Restore handles POST /Tasks/:id/restore
// @Summary Restore a soft-deleted task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} Envelope{data=service.TaskResponse}
// @Failure 404 {object} ErrorEnvelope "Task not found among trashed"
// @Security BearerAuth
// @Router /Tasks/{id}/restore [post]
func (h *TaskHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.taskService.Restore(id)
	if err != nil {
		handleError(c, "task.restore", err)
		return
	}
	respondSuccess(c, http.StatusOK, "task restored successfully", resp)
}

// ForceDelete handles DELETE /Tasks/:id/forceDelete
// @Summary Permanently delete a trashed task
// @Tags tasks
// @Produce json
// @Param id path string true "Task ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} ErrorEnvelope "Task not found among trashed"
// @Security BearerAuth
// @Router /Tasks/{id}/forceDelete [delete]
func (h *TaskHandler) ForceDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.taskService.ForceDelete(id); err != nil {
		handleError(c, "task.force_delete", err)
		return
	}
	respondSuccess(c, http.StatusOK, "task deleted permanently", nil)
}
