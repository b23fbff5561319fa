package services

import (
	"path/filepath"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/platform/rediscache"
	"github.com/wordnest/wordnest-backend/internal/repos"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type testEnv struct {
	db *gorm.DB

	userRepo           repos.UserRepo
	passwordResetRepo  repos.PasswordResetRepo
	vocabRepo          repos.VocabularyRepo
	vocabProgressRepo  repos.VocabProgressRepo
	lessonRepo         repos.LessonRepo
	lessonVocabRepo    repos.LessonVocabularyRepo
	lessonProgressRepo repos.LessonProgressRepo
	topicRepo          repos.TopicRepo
	topicLessonRepo    repos.TopicLessonRepo
	topicProgressRepo  repos.TopicProgressRepo
	profileRepo        repos.StudentProfileRepo

	auth     AuthService
	reset    PasswordResetService
	vocab    VocabularyService
	lesson   LessonService
	topic    TopicService
	progress ProgressService
	notebook NotebookService
	profile  ProfileService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	gdb, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
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

	env := &testEnv{
		db:                 gdb,
		userRepo:           repos.NewUserRepo(gdb, log),
		passwordResetRepo:  repos.NewPasswordResetRepo(gdb, log),
		vocabRepo:          repos.NewVocabularyRepo(gdb, log),
		vocabProgressRepo:  repos.NewVocabProgressRepo(gdb, log),
		lessonRepo:         repos.NewLessonRepo(gdb, log),
		lessonVocabRepo:    repos.NewLessonVocabularyRepo(gdb, log),
		lessonProgressRepo: repos.NewLessonProgressRepo(gdb, log),
		topicRepo:          repos.NewTopicRepo(gdb, log),
		topicLessonRepo:    repos.NewTopicLessonRepo(gdb, log),
		topicProgressRepo:  repos.NewTopicProgressRepo(gdb, log),
		profileRepo:        repos.NewStudentProfileRepo(gdb, log),
	}

	env.auth, err = NewAuthService(gdb, log, env.userRepo)
	if err != nil {
		t.Fatalf("init auth service: %v", err)
	}
	env.reset = NewPasswordResetService(gdb, log, env.userRepo, env.passwordResetRepo, nil)
	env.vocab = NewVocabularyService(gdb, log, env.vocabRepo, env.vocabProgressRepo, rediscache.Noop())
	env.lesson = NewLessonService(gdb, log, env.lessonRepo, env.lessonVocabRepo, env.lessonProgressRepo, env.vocabRepo, env.vocabProgressRepo)
	env.topic = NewTopicService(gdb, log, env.topicRepo, env.topicLessonRepo, env.topicProgressRepo, env.lessonRepo, env.lessonProgressRepo)
	env.progress = NewProgressService(
		gdb, log,
		env.vocabRepo, env.vocabProgressRepo,
		env.lessonRepo, env.lessonVocabRepo, env.lessonProgressRepo,
		env.topicRepo, env.topicLessonRepo, env.topicProgressRepo,
	)
	env.notebook = NewNotebookService(gdb, log, env.vocabProgressRepo)
	env.profile = NewProfileService(gdb, log, env.profileRepo)
	return env
}

func (env *testEnv) mustRegister(t *testing.T, email string) *types.User {
	t.Helper()
	user, err := env.auth.Register(t.Context(), email, "password123", "Test User")
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func (env *testEnv) mustCreateVocab(t *testing.T, word string) *types.Vocabulary {
	t.Helper()
	vocab, err := env.vocab.Create(t.Context(), CreateVocabularyInput{
		Word:    word,
		Meaning: "meaning of " + word,
	})
	if err != nil {
		t.Fatalf("create vocab %s: %v", word, err)
	}
	return vocab
}

func (env *testEnv) mustCreateLesson(t *testing.T, title string) *types.Lesson {
	t.Helper()
	lesson, err := env.lesson.Create(t.Context(), CreateLessonInput{Title: title})
	if err != nil {
		t.Fatalf("create lesson %s: %v", title, err)
	}
	return lesson
}

func (env *testEnv) mustCreateTopic(t *testing.T, name string) *types.Topic {
	t.Helper()
	topic, err := env.topic.Create(t.Context(), CreateTopicInput{Name: name})
	if err != nil {
		t.Fatalf("create topic %s: %v", name, err)
	}
	return topic
}
