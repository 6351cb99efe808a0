package handlers

import (
	"net/http"

	"task-manager-backend/internal/auth"
	"task-manager-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// ProjectHandler handles project and project membership endpoints
type ProjectHandler struct {
	projectService    service.ProjectServiceInterface
	membershipService service.MembershipServiceInterface
	defaultPageSize   int
}

// NewProjectHandler creates a new project handler
func NewProjectHandler(projectService service.ProjectServiceInterface, membershipService service.MembershipServiceInterface, defaultPageSize int) *ProjectHandler {
	return &ProjectHandler{
		projectService:    projectService,
		membershipService: membershipService,
		defaultPageSize:   defaultPageSize,
	}
}

// List handles GET /Projects
// @Summary List projects
// @Description List projects with pagination; latest_task/oldest_task decorate each project with the newest/oldest task
// @Tags projects
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Param latest_task query bool false "Include the most recently created task of each project"
// @Param oldest_task query bool false "Include the oldest task of each project"
// @Success 200 {object} Envelope{data=service.ProjectListResponse}
// @Security BearerAuth
// @Router /Projects [get]
func (h *ProjectHandler) List(c *gin.Context) {
	page, pageSize := pagination(c, h.defaultPageSize)
	withLatest := c.Query("latest_task") == "true"
	withOldest := c.Query("oldest_task") == "true"

	resp, err := h.projectService.List(page, pageSize, withLatest, withOldest)
	if err != nil {
		handleError(c, "project.list", err)
		return
	}
	respondSuccess(c, http.StatusOK, "projects retrieved successfully", resp)
}

// Get handles GET /Projects/:id
// @Summary Get a project
// @Description Get a project with members and tasks; the title filter swaps the task list for the highest-priority matching task
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Param title query string false "Task title filter for the highest priority task"
// @Success 200 {object} Envelope{data=service.ProjectDetailResponse}
// @Failure 404 {object} ErrorEnvelope "Project not found"
// @Security BearerAuth
// @Router /Projects/{id} [get]
func (h *ProjectHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.projectService.Get(id, c.Query("title"))
	if err != nil {
		handleError(c, "project.get", err)
		return
	}
	respondSuccess(c, http.StatusOK, "project retrieved successfully", resp)
}

// Create handles POST /Projects
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body service.CreateProjectRequest true "Project payload"
// @Success 201 {object} Envelope{data=service.ProjectResponse}
// @Failure 422 {object} ErrorEnvelope "Validation error"
// @Security BearerAuth
// @Router /Projects [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req service.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
		return
	}

	resp, err := h.projectService.Create(&req)
	if err != nil {
		handleError(c, "project.create", err)
		return
	}
	respondSuccess(c, http.StatusCreated, "project created successfully", resp)
}

// Update handles PUT /Projects/:id
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body service.UpdateProjectRequest true "Fields to update"
// @Success 200 {object} Envelope{data=service.ProjectResponse}
// @Failure 404 {object} ErrorEnvelope "Project not found"
// @Security BearerAuth
// @Router /Projects/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
		return
	}

	resp, err := h.projectService.Update(id, &req)
	if err != nil {
		handleError(c, "project.update", err)
		return
	}
	respondSuccess(c, http.StatusOK, "project updated successfully", resp)
}

// Delete handles DELETE /Projects/:id
// @Summary Soft-delete a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} ErrorEnvelope "Project not found"
// @Security BearerAuth
// @Router /Projects/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.projectService.Delete(id); err != nil {
		handleError(c, "project.delete", err)
		return
	}
	respondSuccess(c, http.StatusOK, "project deleted successfully", nil)
}

// Trashed handles GET /Projects/trashed
// @Summary List soft-deleted projects
// @Tags projects
// @Produce json
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} Envelope{data=service.ProjectListResponse}
// @Security BearerAuth
// @Router /Projects/trashed [get]
func (h *ProjectHandler) Trashed(c *gin.Context) {
	page, pageSize := pagination(c, h.defaultPageSize)
	resp, err := h.projectService.Trashed(page, pageSize)
	if err != nil {
		handleError(c, "project.trashed", err)
		return
	}
	respondSuccess(c, http.StatusOK, "trashed projects retrieved successfully", resp)
}

// Restore handles POST /Projects/:id/restore
// @Summary Restore a soft-deleted project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} Envelope{data=service.ProjectResponse}
// @Failure 404 {object} ErrorEnvelope "Project not found among trashed"
// @Security BearerAuth
// @Router /Projects/{id}/restore [post]
func (h *ProjectHandler) Restore(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.projectService.Restore(id)
	if err != nil {
		handleError(c, "project.restore", err)
		return
	}
	respondSuccess(c, http.StatusOK, "project restored successfully", resp)
}

// ForceDelete handles DELETE /Projects/:id/forceDelete
// @Summary Permanently delete a trashed project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} Envelope
// @Failure 404 {object} ErrorEnvelope "Project not found among trashed"
// @Security BearerAuth
// @Router /Projects/{id}/forceDelete [delete]
func (h *ProjectHandler) ForceDelete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.projectService.ForceDelete(id); err != nil {
		handleError(c, "project.force_delete", err)
		return
	}
	respondSuccess(c, http.StatusOK, "project deleted permanently", nil)
}

// AssignMembers handles POST /assign-project-members/:id
// @Summary Assign users to a project
// @Description Grant roles to a batch of users; the whole batch is validated together and rejected as a unit on any violation
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param users body service.AssignMembersRequest true "Users and roles to assign"
// @Success 200 {object} Envelope{data=[]service.MembershipResponse}
// @Failure 404 {object} ErrorEnvelope "Project not found"
// @Failure 422 {object} ErrorEnvelope "Validation error"
// @Security BearerAuth
// @Router /assign-project-members/{id} [post]
func (h *ProjectHandler) AssignMembers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.AssignMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
		return
	}

	resp, err := h.membershipService.Assign(id, &req)
	if err != nil {
		handleError(c, "membership.assign", err)
		return
	}
	respondSuccess(c, http.StatusOK, "members assigned successfully", resp)
}

// UnassignMembers handles POST /unassign-project-members/:id
// @Summary Unassign users from a project
// @Description Remove the named users from the project; users without a membership are skipped
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param users body service.UnassignMembersRequest true "Users to unassign"
// @Success 200 {object} Envelope
// @Failure 404 {object} ErrorEnvelope "Project not found"
// @Security BearerAuth
// @Router /unassign-project-members/{id} [post]
func (h *ProjectHandler) UnassignMembers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req service.UnassignMembersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
		return
	}

	if err := h.membershipService.Unassign(id, &req); err != nil {
		handleError(c, "membership.unassign", err)
		return
	}
	respondSuccess(c, http.StatusOK, "members unassigned successfully", nil)
}

// AddContributionHours handles PUT /add-contribution-hours/:id
// @Summary Record contribution hours
// @Description Add contribution hours for the caller on the project; any project role qualifies
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param hours body service.AddContributionHoursRequest true "Hours to add"
// @Success 200 {object} Envelope{data=[]service.MembershipResponse}
// @Failure 401 {object} ErrorEnvelope "Not a project member"
// @Failure 404 {object} ErrorEnvelope "Project or membership not found"
// @Security BearerAuth
// @Router /add-contribution-hours/{id} [put]
func (h *ProjectHandler) AddContributionHours(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	actor, ok := auth.GetActor(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	var req service.AddContributionHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
		return
	}

	resp, err := h.membershipService.AddContribution(actor, id, &req)
	if err != nil {
		handleError(c, "membership.add_contribution", err)
		return
	}
	respondSuccess(c, http.StatusOK, "contribution hours recorded successfully", resp)
}
