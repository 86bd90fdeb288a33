package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/shiomura/team-task-api/internal/config"
	"github.com/shiomura/team-task-api/internal/constants"
	"github.com/shiomura/team-task-api/internal/database"
	"github.com/shiomura/team-task-api/internal/handlers"
	"github.com/shiomura/team-task-api/internal/mailer"
	"github.com/shiomura/team-task-api/internal/middleware"
	"github.com/shiomura/team-task-api/internal/repository"
	"github.com/shiomura/team-task-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed the initial super admin if none exists
	if err := database.SeedSuperAdmin(database.GetDB(), cfg); err != nil {
		log.Fatalf("Failed to seed super admin: %v", err)
	}

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	// Configure session options based on environment
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax (1=Strict, 2=Lax, 3=None)
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Email notifications are optional; nil Mailer disables them
	m := mailer.New(cfg)
	if m == nil {
		log.Println("SMTP not configured, email notifications disabled")
	}

	// Initialize repositories and services
	userRepo := repository.NewUserRepository(database.GetDB())
	taskRepo := repository.NewTaskRepository(database.GetDB())

	authService := services.NewAuthService(userRepo, m)
	taskService := services.NewTaskService(taskRepo, userRepo)
	userService := services.NewUserService(userRepo, m, cfg.AdminContact)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Team Task API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.POST("/forgot-password", authHandler.ForgotPassword)
			auth.POST("/reset-password", authHandler.ResetPassword)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Profile routes (any authenticated user)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.PUT("/me", authHandler.UpdateProfile)
		}

		// Task routes (active users only)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth(), middleware.RequireActiveUser())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/assignable", taskHandler.ListAssignableUsers)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
		}

		// User administration (super admin only)
		admin := api.Group("/admin/users")
		admin.Use(middleware.RequireAuth(), middleware.RequireActiveUser(), middleware.RequireSuperAdmin())
		{
			admin.GET("", userHandler.ListUsers)
			admin.GET("/pending", userHandler.ListPendingUsers)
			admin.POST("/:id/approve", userHandler.ApproveUser)
			admin.POST("/:id/reject", userHandler.RejectUser)
			admin.PATCH("/:id/role", userHandler.ChangeUserRole)
			admin.DELETE("/:id", userHandler.DeleteUser)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
