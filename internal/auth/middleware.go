package auth

import (
	"net/http"
	"strings"

	"task-manager-backend/internal/authz"

	"github.com/gin-gonic/gin"
)

const actorContextKey = "actor"

// Middleware provides JWT authentication middleware
type Middleware struct {
	service *Service
}

// NewMiddleware creates a new authentication middleware
func NewMiddleware(service *Service) *Middleware {
	return &Middleware{service: service}
}

// RequireAuth validates JWT tokens and sets the actor context
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "Authorization header is required")
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			abortUnauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := m.service.ValidateJWT(tokenString)
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}

		c.Set(actorContextKey, authz.Actor{UserID: claims.UserID, IsAdmin: claims.IsAdmin})
		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)

		c.Next()
	}
}

// RequireAdmin restricts a route group to admin users. Must run after
// RequireAuth.
func (m *Middleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok || !actor.IsAdmin {
			abortUnauthorized(c, "Unauthorized")
			return
		}
		c.Next()
	}
}

// GetActor extracts the actor context set by RequireAuth
func GetActor(c *gin.Context) (authz.Actor, bool) {
	v, exists := c.Get(actorContextKey)
	if !exists {
		return authz.Actor{}, false
	}
	actor, ok := v.(authz.Actor)
	return actor, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"status":  false,
		"message": message,
	})
}
