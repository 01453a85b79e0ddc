package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/edulearn-platform/learning-service/internal/auth"
	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/services"
	"github.com/edulearn-platform/learning-service/internal/utils"
)

type HandlerManager struct {
	authHandler     *AuthHandler
	studentHandler  *StudentHandler
	moduleHandler   *ModuleHandler
	progressHandler *ProgressHandler
	aiHandler       *AIHandler
	teacherHandler  *TeacherHandler
	adminHandler    *AdminHandler
	authMiddleware  *TokenAuthMiddleware
	healthCheck     func(ctx context.Context) error
}

func NewHandlerManager(
	serviceManager services.ServiceManager,
	tokens *auth.TokenService,
	aiEnabled bool,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		authHandler:     NewAuthHandler(serviceManager.Auth(), logger),
		studentHandler:  NewStudentHandler(serviceManager.Student(), logger),
		moduleHandler:   NewModuleHandler(serviceManager.Module(), logger),
		progressHandler: NewProgressHandler(serviceManager.Progress(), logger),
		aiHandler:       NewAIHandler(serviceManager.AI(), aiEnabled, logger),
		teacherHandler:  NewTeacherHandler(serviceManager.Teacher(), logger),
		adminHandler:    NewAdminHandler(serviceManager.Admin(), logger),
		authMiddleware:  NewTokenAuthMiddleware(tokens),
		healthCheck:     serviceManager.HealthCheck,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.health)

	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", hm.authHandler.Register)
		authRoutes.POST("/login", hm.authHandler.Login)
	}

	// Everything below requires a bearer token.
	protected := api.Group("")
	protected.Use(hm.authMiddleware.AuthMiddleware())
	{
		student := protected.Group("/student")
		{
			student.GET("/profile", hm.studentHandler.Profile)
			student.GET("/assigned-quizzes", hm.studentHandler.AssignedQuizzes)
			student.GET("/courses", hm.studentHandler.Courses)
			student.POST("/enroll", hm.studentHandler.Enroll)
			student.PUT("/update-profile", hm.authHandler.UpdateProfile)
		}

		modules := protected.Group("/modules")
		{
			modules.GET("", hm.moduleHandler.List)
			modules.POST("/create", hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher, models.RoleAdmin), hm.moduleHandler.Create)
		}

		ai := protected.Group("/ai")
		{
			ai.POST("/chat", hm.aiHandler.Chat)
			ai.POST("/generate-quiz", hm.aiHandler.GenerateQuiz)
			ai.GET("/recommendation", hm.aiHandler.Recommendation)
			ai.POST("/generate-adaptive-quiz", hm.aiHandler.AdaptiveQuiz)
		}

		progress := protected.Group("/progress")
		{
			progress.POST("/update", hm.progressHandler.Update)
			progress.GET("", hm.progressHandler.History)
		}

		performance := protected.Group("/performance")
		{
			performance.GET("/summary", hm.progressHandler.Summary)
		}

		teacher := protected.Group("/teacher")
		teacher.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleTeacher))
		{
			teacher.GET("/analytics", hm.teacherHandler.Analytics)
			teacher.GET("/analytics/export", hm.teacherHandler.ExportAnalytics)
			teacher.POST("/create-quiz", hm.teacherHandler.CreateQuiz)
			teacher.GET("/students", hm.teacherHandler.Students)
		}

		admin := protected.Group("/admin")
		admin.Use(hm.authMiddleware.RequireRoleMiddleware(models.RoleAdmin))
		{
			admin.GET("/stats", hm.adminHandler.Stats)
			admin.GET("/users", hm.adminHandler.Users)
			admin.DELETE("/users/:id", hm.adminHandler.DeleteUser)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status": http.StatusNotFound,
			"error":  "Route not found",
		})
	})
}

func (hm *HandlerManager) health(c *gin.Context) {
	if hm.healthCheck != nil {
		if err := hm.healthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "learning-service",
	})
}
