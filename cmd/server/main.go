package main

import (
	"task-manager-backend/internal/api/routes"
	"task-manager-backend/internal/config"
	"task-manager-backend/internal/database"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	gormlogger "gorm.io/gorm/logger"
)

// @title Task Manager API
// @version 1.0
// @description Project and task management API with per-project roles
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env is optional, real deployments configure via environment
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	setupLogging(cfg)

	dbOpts := &database.Options{}
	if cfg.IsDevelopment() {
		dbOpts.LogLevel = gormlogger.Warn
	}
	db, err := database.Initialize(cfg.DatabaseURL, dbOpts)
	if err != nil {
		logrus.WithError(err).Fatal("failed to initialize database")
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg)

	logrus.WithFields(logrus.Fields{
		"port":        cfg.Port,
		"environment": cfg.Environment,
	}).Info("starting server")

	if err := router.Run(":" + cfg.Port); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}

func setupLogging(cfg *config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
