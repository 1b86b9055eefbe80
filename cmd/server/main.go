package main

import (
	"os"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yukikurage/labor-report-api/internal/config"
	"github.com/yukikurage/labor-report-api/internal/constants"
	"github.com/yukikurage/labor-report-api/internal/database"
	"github.com/yukikurage/labor-report-api/internal/handlers"
	"github.com/yukikurage/labor-report-api/internal/logging"
	"github.com/yukikurage/labor-report-api/internal/middleware"
	"github.com/yukikurage/labor-report-api/internal/repository"
	"github.com/yukikurage/labor-report-api/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fallback := zerolog.New(os.Stderr).With().Timestamp().Logger()
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(logging.Options{
		ServiceName: "labor-report-api",
		Level:       cfg.LogLevel,
		Console:     !cfg.IsProduction(),
	})

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal().Err(err).Msg("failed to run migrations")
	}
	if err := database.Seed(cfg); err != nil {
		logger.Fatal().Err(err).Msg("failed to seed database")
	}

	r := gin.Default()

	store, err := redisStore.NewStore(
		10,               // Redis pool size
		"tcp",            // network type
		cfg.Redis.Addr(), // Redis address from config
		"",               // password (empty = no password)
		[]byte(cfg.Session.Secret),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create Redis session store")
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	submissionRepo := repository.NewSubmissionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	auditService := services.NewAuditService(auditRepo, logger)
	authService := services.NewAuthService(userRepo, auditService)
	userService := services.NewUserService(userRepo, auditService)
	taskService := services.NewTaskService(taskRepo, userRepo, auditService, cfg.AllowStatusRollback)
	submissionService := services.NewSubmissionService(submissionRepo, taskRepo, auditService, cfg.AllowStatusRollback)
	summaryService := services.NewSummaryService(submissionRepo, summaryRepo, auditService)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	taskHandler := handlers.NewTaskHandler(taskService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	summaryHandler := handlers.NewSummaryHandler(summaryService, auditService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Labor Report API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
			auth.POST("/change-password", middleware.RequireAuth(), middleware.RequirePrincipal(), authHandler.ChangePassword)
		}

		// User management (administrator only)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth(), middleware.RequirePrincipal(), middleware.RequireAdmin())
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.POST("/:id/toggle-active", userHandler.ToggleActive)
			users.POST("/:id/reset-password", userHandler.ResetPassword)
		}

		// Task routes
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(), middleware.RequirePrincipal())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.POST("", middleware.RequireAdmin(), taskHandler.CreateTasks)
			tasks.PATCH("/:id", middleware.RequireAdmin(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireAdmin(), taskHandler.DeleteTask)
			tasks.POST("/:id/status", taskHandler.SetStatus)
			tasks.POST("/:id/note", middleware.RequireAdmin(), taskHandler.Annotate)
		}

		// Labor report routes
		submissions := api.Group("/submissions")
		submissions.Use(middleware.RequireAuth(), middleware.RequirePrincipal())
		{
			submissions.GET("", submissionHandler.ListSubmissions)
			submissions.GET("/:id", submissionHandler.GetSubmission)
			submissions.POST("", submissionHandler.CreateSubmission)
			submissions.PATCH("/:id", submissionHandler.UpdateSubmission)
			submissions.DELETE("/:id", submissionHandler.DeleteSubmission)
			submissions.POST("/:id/validation", middleware.RequireAdmin(), submissionHandler.SetValidation)
		}

		// Summary and audit trail (administrator only)
		summary := api.Group("/summary")
		summary.Use(middleware.RequireAuth(), middleware.RequirePrincipal(), middleware.RequireAdmin())
		{
			summary.GET("", summaryHandler.GetSummary)
			summary.POST("/recompute", summaryHandler.Recompute)
		}

		logs := api.Group("/logs")
		logs.Use(middleware.RequireAuth(), middleware.RequirePrincipal(), middleware.RequireAdmin())
		{
			logs.GET("", summaryHandler.ListAuditLog)
		}
	}

	logger.Info().Str("port", cfg.Port).Msg("server starting")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("failed to start server")
	}
}
