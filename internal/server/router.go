package server

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/wordnest/wordnest-backend/internal/handlers"
	"github.com/wordnest/wordnest-backend/internal/middleware"
	"github.com/wordnest/wordnest-backend/internal/utils"
)

type RouterConfig struct {
	AuthMiddleware    *middleware.AuthMiddleware
	AuthHandler       *handlers.AuthHandler
	VocabularyHandler *handlers.VocabularyHandler
	LessonHandler     *handlers.LessonHandler
	TopicHandler      *handlers.TopicHandler
	ProgressHandler   *handlers.ProgressHandler
	NotebookHandler   *handlers.NotebookHandler
	ProfileHandler    *handlers.ProfileHandler
	AdminHandler      *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()
	router.Use(otelgin.Middleware("wordnest-backend"))

	allowOrigins := strings.Split(utils.GetEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173", nil), ",")
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.HandleMethodNotAllowed = true
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"status": http.StatusNotFound, "message": "route not found"})
	})
	router.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"status": http.StatusMethodNotAllowed, "message": "method not allowed"})
	})

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)
	router.POST("/forgot-password", cfg.AuthHandler.ForgotPassword)
	router.POST("/verify-otp", cfg.AuthHandler.VerifyOTP)
	router.POST("/reset-password", cfg.AuthHandler.ResetPassword)

	// ===============
	// || Browsing  ||
	// ===============
	// Anonymous callers get base records; a bearer token adds progress
	// annotations.
	browse := router.Group("/")
	browse.Use(cfg.AuthMiddleware.OptionalAuth())
	browse.GET("/vocabulary", cfg.VocabularyHandler.List)
	browse.GET("/vocabulary/:id", cfg.VocabularyHandler.Get)
	browse.GET("/search-vocabulary", cfg.VocabularyHandler.Search)
	browse.GET("/random-vocabulary", cfg.VocabularyHandler.Random)
	browse.GET("/lessons", cfg.LessonHandler.List)
	browse.GET("/lessons/:id", cfg.LessonHandler.Get)
	browse.GET("/lesson-vocabulary", cfg.LessonHandler.LessonVocabulary)
	browse.GET("/topics", cfg.TopicHandler.List)
	browse.GET("/topics/:id", cfg.TopicHandler.Get)
	browse.GET("/topic-lessons", cfg.TopicHandler.TopicLessons)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	protected.POST("/update-vocab-progress", cfg.ProgressHandler.UpdateVocabProgress)
	protected.POST("/complete-lesson", cfg.ProgressHandler.CompleteLesson)
	protected.POST("/update-topic-progress", cfg.ProgressHandler.UpdateTopicProgress)
	protected.POST("/reset-progress", cfg.ProgressHandler.ResetProgress)
	protected.GET("/words-to-review", cfg.ProgressHandler.WordsToReview)
	protected.GET("/overall-progress", cfg.ProgressHandler.OverallProgress)
	protected.GET("/topics-with-progress", cfg.ProgressHandler.TopicsWithProgress)
	protected.GET("/notebook-words", cfg.NotebookHandler.Words)
	protected.GET("/notebook-stats", cfg.NotebookHandler.Stats)
	protected.GET("/profile", cfg.ProfileHandler.Get)
	protected.PUT("/profile", cfg.ProfileHandler.Update)

	// ===============
	// || Admin     ||
	// ===============
	admin := router.Group("/admin")
	admin.Use(cfg.AuthMiddleware.RequireAuth(), cfg.AuthMiddleware.RequireAdmin())
	admin.GET("/topics", cfg.AdminHandler.ListTopics)
	admin.POST("/topics", cfg.AdminHandler.CreateTopic)
	admin.PUT("/topics/:id", cfg.AdminHandler.UpdateTopic)
	admin.DELETE("/topics/:id", cfg.AdminHandler.DeleteTopic)
	admin.GET("/lessons", cfg.AdminHandler.ListLessons)
	admin.POST("/lessons", cfg.AdminHandler.CreateLesson)
	admin.PUT("/lessons/:id", cfg.AdminHandler.UpdateLesson)
	admin.DELETE("/lessons/:id", cfg.AdminHandler.DeleteLesson)
	admin.POST("/vocabulary", cfg.AdminHandler.CreateVocabulary)
	admin.PUT("/vocabulary/:id", cfg.AdminHandler.UpdateVocabulary)
	admin.DELETE("/vocabulary/:id", cfg.AdminHandler.DeleteVocabulary)
	admin.POST("/lesson-vocabulary", cfg.AdminHandler.AttachLessonVocabulary)
	admin.PUT("/lesson-vocabulary/:lid/:vid", cfg.AdminHandler.UpdateLessonVocabulary)
	admin.DELETE("/lesson-vocabulary/:lid/:vid", cfg.AdminHandler.DetachLessonVocabulary)
	admin.POST("/add-existing-vocabulary", cfg.AdminHandler.AddExistingVocabulary)
	admin.POST("/topic-lessons", cfg.AdminHandler.AttachTopicLesson)
	admin.DELETE("/topic-lessons/:tid/:lid", cfg.AdminHandler.DetachTopicLesson)
	admin.GET("/statistics", cfg.AdminHandler.Statistics)
	admin.POST("/upload-audio", cfg.AdminHandler.UploadAudio)
	admin.POST("/import-vocabulary", cfg.AdminHandler.ImportVocabulary)

	return router
}
