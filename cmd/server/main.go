package main

import (
	"os"

	"github.com/gin-gonic/gin"

	"github.com/projectmate/backend/internal/config"
	"github.com/projectmate/backend/internal/handlers"
	"github.com/projectmate/backend/internal/middleware"
	"github.com/projectmate/backend/internal/models"
	"github.com/projectmate/backend/internal/services"
	"github.com/projectmate/backend/internal/utils"
	"github.com/projectmate/backend/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	logger.Init(cfg.Server.LogLevel)

	// Initialize JWT secret
	utils.SetJWTSecret(cfg.JWT.Secret)

	// Initialize database
	if err := models.InitDB(&cfg.Database); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate database
	if err := models.AutoMigrate(); err != nil {
		logger.Fatalf("Failed to migrate database: %v", err)
	}

	db := models.GetDB()

	// Start AI usage log retention cleanup
	cleanup := services.NewUsageCleanupService(db, cfg.Usage.LogRetentionDays)
	cleanup.StartScheduler()
	defer cleanup.StopScheduler()

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Create router
	r := gin.New()
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.Use(middleware.CORS(cfg.CORS.Origins))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "service": "projectmate"})
	})

	aiService := services.NewAIService(db, &cfg.AI)

	authHandler := handlers.NewAuthHandler(db, cfg)
	userHandler := handlers.NewUserHandler(db)
	projectHandler := handlers.NewProjectHandler(db)
	chatHandler := handlers.NewChatHandler(db)
	aiHandler := handlers.NewAIHandler(db, cfg, aiService)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// Users
		users := api.Group("/users")
		users.Use(middleware.AuthRequired())
		{
			users.GET("/me", userHandler.GetMe)
			users.PATCH("/me", userHandler.UpdateMe)
			users.GET("/:id", userHandler.GetUser)
		}

		// Projects
		projects := api.Group("/projects")
		projects.Use(middleware.AuthRequired())
		{
			projects.GET("", projectHandler.List)
			projects.GET("/:id", projectHandler.Get)
			projects.GET("/:id/team", projectHandler.Team)

			// Mutations require an active, non-penalized account
			active := projects.Group("")
			active.Use(middleware.ActiveUserRequired())
			{
				active.POST("", middleware.LeaderRequired(), projectHandler.Create)
				active.PATCH("/:id", projectHandler.Update)
				active.POST("/:id/apply", projectHandler.Apply)
				active.GET("/:id/applications", projectHandler.ListApplications)
				active.POST("/:id/applications/:app_id/accept", projectHandler.AcceptApplication)
				active.POST("/:id/applications/:app_id/reject", projectHandler.RejectApplication)
				active.POST("/:id/start", projectHandler.Start)
			}
		}

		// Chat
		chat := api.Group("/chat")
		chat.Use(middleware.AuthRequired(), middleware.ActiveUserRequired())
		{
			chat.POST("/projects/:id/chatrooms", chatHandler.CreateRoom)
			chat.GET("/projects/:id/chatrooms", chatHandler.ListRooms)
			chat.GET("/chatrooms/:room_id/messages", chatHandler.GetMessages)
			chat.POST("/chatrooms/:room_id/messages", chatHandler.SendMessage)
			chat.POST("/projects/:id/meeting-notes/ai-summarize", chatHandler.SummarizeMeeting)
			chat.GET("/projects/:id/meeting-notes", chatHandler.ListMeetingNotes)
		}

		// AI features, rate limited per client IP
		ai := api.Group("/ai")
		ai.Use(middleware.AuthRequired(), middleware.ActiveUserRequired(), middleware.RateLimit(1, 5))
		{
			ai.POST("/projects/feasibility", aiHandler.AnalyzeFeasibility)
			ai.POST("/projects/:id/timeline", aiHandler.GenerateTimeline)
			ai.POST("/learning-path", aiHandler.GenerateLearningPath)
			ai.POST("/projects/:id/monitor", aiHandler.MonitorProject)
			ai.POST("/projects/:id/portfolio", aiHandler.GeneratePortfolio)
		}
	}

	// Start server
	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Infof("Server starting on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
