package handlers

import (
	"net/http"

	"task-manager-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// UserHandler handles the admin user management endpoints
type UserHandler struct {
	userService     service.UserServiceInterface
	defaultPageSize int
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService service.UserServiceInterface, defaultPageSize int) *UserHandler {
	return &UserHandler{userService: userService, defaultPageSize: defaultPageSize}
}

// List handles GET /Users
// @Summary List users
// @Description List users with pagination; optional status/priority filters narrow to users holding a matching assigned task
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param status query string false "Assigned task status filter" Enums(new, in_progress, completed)
// @Param priority query string false "Assigned task priority filter" Enums(low, medium, high)
// @Success 200 {object} Envelope{data=service.UserListResponse}
// @Failure 422 {object} ErrorEnvelope "Invalid filter"
// @Security BearerAuth
// @Router /Users [get]
func (h *UserHandler) List(c *gin.Context) {
	page, pageSize := pagination(c, h.defaultPageSize)
	resp, err := h.userService.List(page, pageSize, c.Query("status"), c.Query("priority"))
	if err != nil {
		handleError(c, "user.list", err)
		return
	}
	respondSuccess(c, http.StatusOK, "users retrieved successfully", resp)
}

// ListAssignedTasks handles GET /Users/assigned-tasks
// @Summary List users with assigned tasks
// @Description List users that have at least one assigned task, tasks included
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Envelope{data=service.UserListResponse}
// @Security BearerAuth
// @Router /Users/assigned-tasks [get]
func (h *UserHandler) ListAssignedTasks(c *gin.Context) {
	page, pageSize := pagination(c, h.defaultPageSize)
	resp, err := h.userService.ListWithAssignedTasks(page, pageSize)
	if err != nil {
		handleError(c, "user.list_assigned_tasks", err)
		return
	}
	respondSuccess(c, http.StatusOK, "users retrieved successfully", resp)
}

// Get handles GET /Users/:id
// @Summary Get a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Envelope{data=service.UserResponse}
// @Failure 404 {object} ErrorEnvelope "User not found"
// @Security BearerAuth
// @Router /Users/{id} [get]
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.userService.GetByID(id)
	if err != nil {
		handleError(c, "user.get", err)
		return
	}
	respondSuccess(c, http.StatusOK, "user retrieved successfully", resp)
}

// Create handles POST /Users
// @Summary Create a user
// @Tags users
// @Accept json
// @Produce json
// @Param user body service.CreateUserRequest true "User payload"
// @Success 201 {object} Envelope{data=service.UserResponse}
// @Failure 422 {object} ErrorEnvelope "Validation error"
// @Security BearerAuth
// @Router /Users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
		return
	}

	resp, err := h.userService.Create(&req)
	if err != nil {
		handleError(c, "user.create", err)
		return
	}
	respondSuccess(c, http.StatusCreated, "user created successfully", resp)
}

// Update handles PUT /Users/:id
// @Summary Update a user
// @Tags users
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param user body service.UpdateUserRequest true "Fields to update"
// @Success 200 {object} Envelope{data=service.UserResponse}
// @Failure 404 {object} ErrorEnvelope "User not found"
// @Failure 422 {object} ErrorEnvelope "Validation error"
// @Security BearerAuth
// @Router /Users/{id} [put]
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
		return
	}

	resp, err := h.userService.Update(id, &req)
	if err != nil {
		handleError(c, "user.update", err)
		return
	}
	respondSuccess(c, http.StatusOK, "user updated successfully", resp)
}

// Delete handles DELETE /Users/:id
// @Summary Soft-delete a user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} ErrorEnvelope "User not found"
// @Security BearerAuth
// @Router /Users/{id} [delete]
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.Delete(id); err != nil {
		handleError(c, "user.delete", err)
		return
	}
	respondSuccess(c, http.StatusOK, "user deleted successfully", nil)
}

// Trashed handles GET /Users/trashed
// @Summary List soft-deleted users
// @Tags users
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Envelope{data=service.UserListResponse}
// @Security BearerAuth
// @Router /Users/trashed [get]
func (h *UserHandler) Trashed(c *gin.Context) {
	page, pageSize := pagination(c, h.defaultPageSize)
	resp, err := h.userService.Trashed(page, pageSize)
	if err != nil {
		handleError(c, "user.trashed", err)
		return
	}
	respondSuccess(c, http.StatusOK, "trashed users retrieved successfully", resp)
}

// Restore handles POST /Users/:id/restore
// @Summary Restore a soft-deleted user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Envelope{data=service.UserResponse}
// @Failure 404 {object} ErrorEnvelope "User not found among trashed"
// @Security BearerAuth
// @Router /Users/{id}/restore [post]
func (h *UserHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.userService.Restore(id)
	if err != nil {
		handleError(c, "user.restore", err)
		return
	}
	respondSuccess(c, http.StatusOK, "user restored successfully", resp)
}

// ForceDelete handles DELETE /Users/:id/forceDelete
// @Summary Permanently delete a trashed user
// @Tags users
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} ErrorEnvelope "User not found among trashed"
// @Security BearerAuth
// @Router /Users/{id}/forceDelete [delete]
func (h *UserHandler) ForceDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.userService.ForceDelete(id); err != nil {
		handleError(c, "user.force_delete", err)
		return
	}
	respondSuccess(c, http.StatusOK, "user deleted permanently", nil)
}
