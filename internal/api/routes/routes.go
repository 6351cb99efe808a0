package routes

import (
	"time"

	"task-manager-backend/internal/api/handlers"
	"task-manager-backend/internal/api/middleware"
	"task-manager-backend/internal/auth"
	"task-manager-backend/internal/authz"
	"task-manager-backend/internal/config"
	"task-manager-backend/internal/repository"
	"task-manager-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes wires repositories, services and handlers and registers every
// route group on the router.
func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	validate := validator.New()

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	engine := authz.NewEngine(projectRepo, taskRepo, membershipRepo)

	authService := auth.NewService(cfg.JWTSecret, time.Duration(cfg.JWTTTLHours)*time.Hour, userRepo)
	userService := service.NewUserService(userRepo, validate)
	projectService := service.NewProjectService(projectRepo, validate)
	membershipService := service.NewMembershipService(db, membershipRepo, projectRepo, userRepo, engine, validate)
	taskService := service.NewTaskService(db, taskRepo, membershipRepo, userRepo, engine, validate)

	authMiddleware := auth.NewMiddleware(authService)

	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(db)
	userHandler := handlers.NewUserHandler(userService, cfg.DefaultPageSize)
	projectHandler := handlers.NewProjectHandler(projectService, membershipService, cfg.DefaultPageSize)
	taskHandler := handlers.NewTaskHandler(taskService, cfg.DefaultPageSize)

	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := router.Group("/api/v1")
	v1.POST("/login", authHandler.Login)

	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.RequireAuth())
	{
		authenticated.POST("/logout", authHandler.Logout)

		authenticated.GET("/Projects", projectHandler.List)
		authenticated.GET("/Projects/:id", projectHandler.Get)
		authenticated.PUT("/add-contribution-hours/:id", projectHandler.AddContributionHours)

		authenticated.GET("/Tasks", taskHandler.List)
		authenticated.GET("/Tasks/:id", taskHandler.Get)
		authenticated.GET("/tasks-in-my-projects", taskHandler.ListMyProjects)
		authenticated.POST("/Tasks", taskHandler.Create)
		authenticated.PUT("/Tasks/:id", taskHandler.Update)
		authenticated.PUT("/change-status-task/:id", taskHandler.ChangeStatus)
		authenticated.PUT("/add-notes-task/:id", taskHandler.AddNotes)
	}

	admin := v1.Group("")
	admin.Use(authMiddleware.RequireAuth(), authMiddleware.RequireAdmin())
	{
		admin.GET("/Users", userHandler.List)
		admin.GET("/Users/assigned-tasks", userHandler.ListAssignedTasks)
		admin.GET("/Users/trashed", userHandler.Trashed)
		admin.GET("/Users/:id", userHandler.Get)
		admin.POST("/Users", userHandler.Create)
		admin.POST("/Users/:id/restore", userHandler.Restore)
		admin.PUT("/Users/:id", userHandler.Update)
		admin.DELETE("/Users/:id", userHandler.Delete)
		admin.DELETE("/Users/:id/forceDelete", userHandler.ForceDelete)

		admin.POST("/Projects", projectHandler.Create)
		admin.POST("/Projects/:id/restore", projectHandler.Restore)
		admin.PUT("/Projects/:id", projectHandler.Update)
		admin.DELETE("/Projects/:id", projectHandler.Delete)
		admin.DELETE("/Projects/:id/forceDelete", projectHandler.ForceDelete)
		admin.GET("/Projects/trashed", projectHandler.Trashed)
		admin.POST("/assign-project-members/:id", projectHandler.AssignMembers)
		admin.POST("/unassign-project-members/:id", projectHandler.UnassignMembers)

		admin.DELETE("/Tasks-delete/:id", taskHandler.Delete)
		admin.GET("/Tasks/trashed", taskHandler.Trashed)
		admin.POST("/Tasks/:id/restore", taskHandler.Restore)
		admin.DELETE("/Tasks/:id/forceDelete", taskHandler.ForceDelete)
	}
}
