package handlers

import (
	"net/http"

	"task-manager-backend/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuthHandler handles login and logout
type AuthHandler struct {
	authService *auth.Service
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *auth.Service) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents the login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /login
// @Summary Authenticate a user
// @Description Verify credentials and issue a JWT
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} Envelope "Logged in"
// @Failure 401 {object} ErrorEnvelope "Invalid credentials"
// @Router /login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Validation error", []string{err.Error()})
		return
	}

	user, token, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		handleError(c, "auth.login", err)
		return
	}

	respondSuccess(c, http.StatusOK, "logged in successfully", gin.H{
		"user": gin.H{
			"id":       user.ID,
			"name":     user.Name,
			"email":    user.Email,
			"is_admin": user.IsAdmin,
		},
		"token": token,
	})
}

// Logout handles POST /logout
// @Summary Log out
// @Description Revoke every token held by the caller
// @Tags auth
// @Produce json
// @Success 200 {object} Envelope "Logged out"
// @Failure 401 {object} ErrorEnvelope "Unauthenticated"
// @Security BearerAuth
// @Router /logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	actor, ok := auth.GetActor(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, "Unauthorized", nil)
		return
	}

	h.authService.Logout(actor.UserID)
	respondSuccess(c, http.StatusOK, "Logged out successfully", nil)
}

// parseID parses a UUID path parameter
func parseID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondError(c, http.StatusNotFound, "not found", nil)
		return uuid.Nil, false
	}
	return id, true
}
