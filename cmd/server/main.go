package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"

	"github.com/HongNam0207/taskhome-api/internal/config"
	"github.com/HongNam0207/taskhome-api/internal/constants"
	"github.com/HongNam0207/taskhome-api/internal/database"
	"github.com/HongNam0207/taskhome-api/internal/handlers"
	"github.com/HongNam0207/taskhome-api/internal/middleware"
	"github.com/HongNam0207/taskhome-api/internal/repository"
	"github.com/HongNam0207/taskhome-api/internal/services"
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

	// Initialize Gin router
	r := gin.Default()

	// Setup session middleware with Redis
	redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
	store, err := redisStore.NewStore(
		10,        // Redis pool size
		"tcp",     // network type
		redisAddr, // Redis address from config
		"",        // username (empty for default user)
		"",        // password (empty = no password)
		[]byte(cfg.SessionSecret), // authentication key
	)
	if err != nil {
		log.Fatalf("Failed to create Redis store: %v", err)
	}
	isProduction := cfg.GinMode == "release"
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	familyRepo := repository.NewFamilyRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	assignmentRepo := repository.NewAssignmentRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	commentRepo := repository.NewCommentRepository(db)

	// Services
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}
	authService := services.NewAuthService(userRepo)
	familyService := services.NewFamilyService(familyRepo)
	memberService := services.NewMemberService(familyRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, familyRepo, projectRepo)
	assignmentService := services.NewAssignmentService(assignmentRepo, taskRepo, familyRepo, userRepo)
	projectService := services.NewProjectService(projectRepo, familyRepo)
	commentService := services.NewCommentService(commentRepo, taskRepo, familyRepo)
	suggestionService := services.NewSuggestionService(aiService)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	familyHandler := handlers.NewFamilyHandler(familyService)
	memberHandler := handlers.NewMemberHandler(memberService)
	taskHandler := handlers.NewTaskHandler(taskService, suggestionService)
	assignmentHandler := handlers.NewAssignmentHandler(assignmentService)
	projectHandler := handlers.NewProjectHandler(projectService)
	commentHandler := handlers.NewCommentHandler(commentService)

	// Role gates come from configuration.
	requireMutate := middleware.RequireRoles(cfg.Authz.Mutate)
	requireCrossFamilyRead := middleware.RequireRoles(cfg.Authz.CrossFamilyRead)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Home Task Management API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
		}

		// Profile routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.GET("/me", userHandler.GetMe)
			users.PUT("/me", userHandler.UpdateMe)
			users.DELETE("/me", userHandler.DeactivateMe)
		}

		// Family routes (protected)
		families := api.Group("/families")
		families.Use(middleware.RequireAuth())
		{
			families.GET("", requireCrossFamilyRead, familyHandler.ListFamilies)
			families.GET("/mine", familyHandler.ListMyFamilies)
			families.POST("", requireMutate, familyHandler.CreateFamily)
			families.POST("/join", requireMutate, familyHandler.JoinFamily)
			families.GET("/:id", familyHandler.GetFamily)
			families.PUT("/:id", requireMutate, familyHandler.UpdateFamily)
			families.DELETE("/:id", requireMutate, familyHandler.DeleteFamily)
		}

		// Membership routes (protected)
		members := api.Group("/members")
		members.Use(middleware.RequireAuth())
		{
			members.GET("/myfamily", memberHandler.ListMyFamilyMembers)
			members.POST("", requireMutate, memberHandler.AddMember)
			members.PUT("/:id", requireMutate, memberHandler.UpdateMember)
			members.DELETE("/:id", requireMutate, memberHandler.RemoveMember)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.GET("/mine", taskHandler.ListMyTasks)
			tasks.POST("", requireMutate, taskHandler.CreateTask)
			tasks.POST("/suggest", taskHandler.SuggestTasks)
			tasks.GET("/:id", middleware.RequireTaskAccess(), taskHandler.GetTask)
			tasks.PATCH("/:id", requireMutate, taskHandler.UpdateTask)
			tasks.DELETE("/:id", requireMutate, taskHandler.DeleteTask)
			tasks.GET("/:id/comments", commentHandler.ListComments)
			tasks.POST("/:id/comments", requireMutate, commentHandler.CreateComment)
		}

		// Comment routes (protected)
		comments := api.Group("/comments")
		comments.Use(middleware.RequireAuth())
		{
			comments.DELETE("/:id", requireMutate, commentHandler.DeleteComment)
		}

		// Assignment routes (protected)
		assignments := api.Group("/assignments")
		assignments.Use(middleware.RequireAuth())
		{
			assignments.GET("", requireCrossFamilyRead, assignmentHandler.ListAssignments)
			assignments.POST("", requireMutate, assignmentHandler.CreateAssignment)
			assignments.PUT("/:task_id/:user_id", requireMutate, assignmentHandler.UpdateAssignment)
			assignments.DELETE("/:task_id/:user_id", requireMutate, assignmentHandler.DeleteAssignment)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.GET("", projectHandler.ListMyProjects)
			projects.POST("", requireMutate, projectHandler.CreateProject)
			projects.PUT("/:id", requireMutate, projectHandler.UpdateProject)
			projects.DELETE("/:id", requireMutate, projectHandler.DeleteProject)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
