package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/wordnest/wordnest-backend/internal/db"
	"github.com/wordnest/wordnest-backend/internal/handlers"
	"github.com/wordnest/wordnest-backend/internal/middleware"
	"github.com/wordnest/wordnest-backend/internal/observability"
	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/platform/rediscache"
	"github.com/wordnest/wordnest-backend/internal/platform/sendgrid"
	"github.com/wordnest/wordnest-backend/internal/repos"
	"github.com/wordnest/wordnest-backend/internal/server"
	"github.com/wordnest/wordnest-backend/internal/services"
	"github.com/wordnest/wordnest-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Tracing
	otelShutdown := observability.InitOTel(context.Background(), log, observability.OtelConfig{
		ServiceName: "wordnest-backend",
		Environment: utils.GetEnv("APP_ENV", "development", log),
		Version:     utils.GetEnv("APP_VERSION", "dev", log),
	})

	// Database
	dbService, err := db.New(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err := dbService.AutoMigrateAll(); err != nil {
		log.Error("Auto migration failed", "error", err)
		os.Exit(1)
	}
	gdb := dbService.DB()

	// Cache
	cache, err := rediscache.NewFromEnv(log)
	if err != nil {
		log.Warn("Redis unavailable, running without cache", "error", err.Error())
		cache = rediscache.Noop()
	}
	defer cache.Close()

	// Mail
	mailer, err := sendgrid.NewFromEnv(log)
	if err != nil {
		log.Warn("SendGrid unavailable, reset codes will not be emailed", "error", err.Error())
		mailer = nil
	}

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(gdb, log)
	passwordResetRepo := repos.NewPasswordResetRepo(gdb, log)
	vocabRepo := repos.NewVocabularyRepo(gdb, log)
	vocabProgressRepo := repos.NewVocabProgressRepo(gdb, log)
	lessonRepo := repos.NewLessonRepo(gdb, log)
	lessonVocabRepo := repos.NewLessonVocabularyRepo(gdb, log)
	lessonProgressRepo := repos.NewLessonProgressRepo(gdb, log)
	topicRepo := repos.NewTopicRepo(gdb, log)
	topicLessonRepo := repos.NewTopicLessonRepo(gdb, log)
	topicProgressRepo := repos.NewTopicProgressRepo(gdb, log)
	profileRepo := repos.NewStudentProfileRepo(gdb, log)

	// Services
	log.Info("Setting up Services from main...")
	authService, err := services.NewAuthService(gdb, log, userRepo)
	if err != nil {
		log.Error("Could not init AuthService", "error", err)
		os.Exit(1)
	}
	resetService := services.NewPasswordResetService(gdb, log, userRepo, passwordResetRepo, mailer)
	vocabService := services.NewVocabularyService(gdb, log, vocabRepo, vocabProgressRepo, cache)
	lessonService := services.NewLessonService(gdb, log, lessonRepo, lessonVocabRepo, lessonProgressRepo, vocabRepo, vocabProgressRepo)
	topicService := services.NewTopicService(gdb, log, topicRepo, topicLessonRepo, topicProgressRepo, lessonRepo, lessonProgressRepo)
	progressService := services.NewProgressService(
		gdb, log,
		vocabRepo, vocabProgressRepo,
		lessonRepo, lessonVocabRepo, lessonProgressRepo,
		topicRepo, topicLessonRepo, topicProgressRepo,
	)
	notebookService := services.NewNotebookService(gdb, log, vocabProgressRepo)
	profileService := services.NewProfileService(gdb, log, profileRepo)
	statisticsService := services.NewStatisticsService(gdb, log, userRepo, vocabRepo, lessonRepo, topicRepo, vocabProgressRepo, cache)
	importService := services.NewImportService(gdb, log, vocabRepo)

	bucketService, err := services.NewBucketService(log)
	if err != nil {
		log.Warn("Could not init BucketService, audio upload disabled", "error", err.Error())
		bucketService = nil
	}
	audioService := services.NewAudioService(gdb, log, bucketService, vocabRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService, resetService)
	vocabHandler := handlers.NewVocabularyHandler(vocabService)
	lessonHandler := handlers.NewLessonHandler(lessonService)
	topicHandler := handlers.NewTopicHandler(topicService)
	progressHandler := handlers.NewProgressHandler(progressService)
	notebookHandler := handlers.NewNotebookHandler(notebookService)
	profileHandler := handlers.NewProfileHandler(profileService)
	adminHandler := handlers.NewAdminHandler(topicService, lessonService, vocabService, statisticsService, importService, audioService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthMiddleware:    authMiddleware,
		AuthHandler:       authHandler,
		VocabularyHandler: vocabHandler,
		LessonHandler:     lessonHandler,
		TopicHandler:      topicHandler,
		ProgressHandler:   progressHandler,
		NotebookHandler:   notebookHandler,
		ProfileHandler:    profileHandler,
		AdminHandler:      adminHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	srv := &http.Server{
		Addr:    ":" + port,
		Handler: router,
	}

	go func() {
		log.Info("Server listening", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Warn("Server shutdown failed", "error", err)
	}
	if otelShutdown != nil {
		if err := otelShutdown(ctx); err != nil {
			log.Warn("Tracer shutdown failed", "error", err)
		}
	}
}
