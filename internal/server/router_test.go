package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wordnest/wordnest-backend/internal/handlers"
	"github.com/wordnest/wordnest-backend/internal/middleware"
	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/platform/rediscache"
	"github.com/wordnest/wordnest-backend/internal/repos"
	"github.com/wordnest/wordnest-backend/internal/services"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type apiTest struct {
	router *gin.Engine
	db     *gorm.DB
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "api.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(
		&types.User{},
		&types.PasswordReset{},
		&types.Vocabulary{},
		&types.Lesson{},
		&types.LessonVocabulary{},
		&types.Topic{},
		&types.TopicLesson{},
		&types.VocabProgress{},
		&types.LessonProgress{},
		&types.TopicProgress{},
		&types.StudentProfile{},
	); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}

	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	cache := rediscache.Noop()

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

	authService, err := services.NewAuthService(gdb, log, userRepo)
	if err != nil {
		t.Fatalf("init auth service: %v", err)
	}
	resetService := services.NewPasswordResetService(gdb, log, userRepo, passwordResetRepo, nil)
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
	audioService := services.NewAudioService(gdb, log, nil, vocabRepo)

	router := NewRouter(RouterConfig{
		AuthMiddleware:    middleware.NewAuthMiddleware(log, authService),
		AuthHandler:       handlers.NewAuthHandler(authService, resetService),
		VocabularyHandler: handlers.NewVocabularyHandler(vocabService),
		LessonHandler:     handlers.NewLessonHandler(lessonService),
		TopicHandler:      handlers.NewTopicHandler(topicService),
		ProgressHandler:   handlers.NewProgressHandler(progressService),
		NotebookHandler:   handlers.NewNotebookHandler(notebookService),
		ProfileHandler:    handlers.NewProfileHandler(profileService),
		AdminHandler:      handlers.NewAdminHandler(topicService, lessonService, vocabService, statisticsService, importService, audioService),
	})
	return &apiTest{router: router, db: gdb}
}

func (at *apiTest) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	at.router.ServeHTTP(rec, req)

	var parsed map[string]any
	if len(rec.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &parsed); err != nil {
			t.Fatalf("response not JSON (%d): %s", rec.Code, rec.Body.String())
		}
	}
	return rec, parsed
}

func (at *apiTest) registerAndLogin(t *testing.T, email string) string {
	t.Helper()
	rec, _ := at.do(t, http.MethodPost, "/register", "", gin.H{
		"email": email, "password": "password123", "display_name": "Tester",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register status = %d: %s", rec.Code, rec.Body.String())
	}
	rec, body := at.do(t, http.MethodPost, "/login", "", gin.H{
		"email": email, "password": "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rec.Code, rec.Body.String())
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatal("no token in login response")
	}
	return token
}

func TestHealthcheck(t *testing.T) {
	at := newAPITest(t)
	rec, body := at.do(t, http.MethodGet, "/healthcheck", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body["status"] != float64(http.StatusOK) {
		t.Fatalf("body status = %v", body["status"])
	}
}

func TestRegisterMissingFieldNamesIt(t *testing.T) {
	at := newAPITest(t)
	rec, body := at.do(t, http.MethodPost, "/register", "", gin.H{"password": "password123"})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	msg, _ := body["message"].(string)
	if msg != "missing required field: email" {
		t.Fatalf("message = %q", msg)
	}
}

func TestProtectedRouteRequiresToken(t *testing.T) {
	at := newAPITest(t)

	rec, _ := at.do(t, http.MethodGet, "/words-to-review", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous status = %d, want 401", rec.Code)
	}

	token := at.registerAndLogin(t, "learner@example.com")
	rec, body := at.do(t, http.MethodGet, "/words-to-review", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("authed status = %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := body["words"]; !ok {
		t.Fatalf("missing words key: %v", body)
	}
}

func TestAdminRouteForbiddenForStudents(t *testing.T) {
	at := newAPITest(t)
	token := at.registerAndLogin(t, "learner@example.com")

	rec, _ := at.do(t, http.MethodGet, "/admin/statistics", token, nil)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("student admin access status = %d, want 403", rec.Code)
	}
}

func TestAdminRouteAllowsAdmins(t *testing.T) {
	at := newAPITest(t)
	at.registerAndLogin(t, "admin@example.com")
	if err := at.db.Model(&types.User{}).
		Where("email = ?", "admin@example.com").
		Update("role", types.RoleAdmin).Error; err != nil {
		t.Fatalf("promote admin: %v", err)
	}
	// Token must carry the admin role claim, so log in again.
	rec, body := at.do(t, http.MethodPost, "/login", "", gin.H{
		"email": "admin@example.com", "password": "password123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("relogin status = %d", rec.Code)
	}
	token, _ := body["token"].(string)

	rec, body = at.do(t, http.MethodGet, "/admin/statistics", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin statistics status = %d: %s", rec.Code, rec.Body.String())
	}
	if _, ok := body["statistics"]; !ok {
		t.Fatalf("missing statistics key: %v", body)
	}
}

func TestUnknownRouteAndMethod(t *testing.T) {
	at := newAPITest(t)

	rec, body := at.do(t, http.MethodGet, "/no-such-route", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if body["status"] != float64(http.StatusNotFound) {
		t.Fatalf("body status = %v", body["status"])
	}

	rec, _ = at.do(t, http.MethodDelete, "/register", "", nil)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
}

func TestVocabProgressEndToEnd(t *testing.T) {
	at := newAPITest(t)
	token := at.registerAndLogin(t, "learner@example.com")

	// Seed a word directly; vocabulary creation is an admin operation.
	vocab := &types.Vocabulary{ID: uuid.New(), Word: "apple", Meaning: "a fruit", DifficultyLevel: 1}
	if err := at.db.Create(vocab).Error; err != nil {
		t.Fatalf("seed vocab: %v", err)
	}

	rec, body := at.do(t, http.MethodPost, "/update-vocab-progress", token, gin.H{
		"vocabulary_id": vocab.ID.String(),
		"is_memorized":  true,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	progress, _ := body["progress"].(map[string]any)
	if progress == nil {
		t.Fatalf("missing progress: %v", body)
	}
	if progress["review_count"] != float64(1) {
		t.Fatalf("review_count = %v, want 1", progress["review_count"])
	}

	// Anonymous browsing sees the word without annotations.
	rec, body = at.do(t, http.MethodGet, "/vocabulary/"+vocab.ID.String(), "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("anonymous get status = %d", rec.Code)
	}
	item, _ := body["vocabulary"].(map[string]any)
	if _, ok := item["review_count"]; ok {
		t.Fatal("anonymous response carries progress annotation")
	}
}
