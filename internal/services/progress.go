package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/repos"
	"github.com/wordnest/wordnest-backend/internal/types"
)

const (
	defaultReviewLimit = 10
	maxReviewLimit     = 100
)

type ProgressService interface {
	// RecordVocabReview bumps the review counter and overwrites the
	// memorized flag. The counter never decreases.
	RecordVocabReview(ctx context.Context, userID, vocabularyID uuid.UUID, memorized bool) (*types.VocabProgress, error)
	WordsToReview(ctx context.Context, userID uuid.UUID, limit int) ([]types.VocabularyWithProgress, error)
	LessonCompletionPercentage(ctx context.Context, userID, lessonID uuid.UUID) (float64, error)
	CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) error
	UpdateTopicProgress(ctx context.Context, userID, topicID uuid.UUID) (*types.TopicProgress, error)
	ResetUserProgress(ctx context.Context, userID uuid.UUID) error
	OverallProgress(ctx context.Context, userID uuid.UUID) (*types.OverallProgress, error)
	TopicsWithProgress(ctx context.Context, userID uuid.UUID) ([]types.TopicWithProgress, error)
}

type progressService struct {
	db              *gorm.DB
	log             *logger.Logger
	vocabRepo       repos.VocabularyRepo
	vocabProgRepo   repos.VocabProgressRepo
	lessonRepo      repos.LessonRepo
	lessonVocabRepo repos.LessonVocabularyRepo
	lessonProgRepo  repos.LessonProgressRepo
	topicRepo       repos.TopicRepo
	topicLessonRepo repos.TopicLessonRepo
	topicProgRepo   repos.TopicProgressRepo
}

func NewProgressService(
	db *gorm.DB,
	log *logger.Logger,
	vocabRepo repos.VocabularyRepo,
	vocabProgRepo repos.VocabProgressRepo,
	lessonRepo repos.LessonRepo,
	lessonVocabRepo repos.LessonVocabularyRepo,
	lessonProgRepo repos.LessonProgressRepo,
	topicRepo repos.TopicRepo,
	topicLessonRepo repos.TopicLessonRepo,
	topicProgRepo repos.TopicProgressRepo,
) ProgressService {
	return &progressService{
		db:              db,
		log:             log.With("service", "ProgressService"),
		vocabRepo:       vocabRepo,
		vocabProgRepo:   vocabProgRepo,
		lessonRepo:      lessonRepo,
		lessonVocabRepo: lessonVocabRepo,
		lessonProgRepo:  lessonProgRepo,
		topicRepo:       topicRepo,
		topicLessonRepo: topicLessonRepo,
		topicProgRepo:   topicProgRepo,
	}
}

// completionPercent clamps to [0, 100] and rounds to one decimal.
// An empty denominator is 0, not a division error.
func completionPercent(completed, total int64) float64 {
	if total <= 0 {
		return 0
	}
	pct := float64(completed) / float64(total) * 100
	if pct > 100 {
		pct = 100
	}
	return math.Round(pct*10) / 10
}

func (s *progressService) RecordVocabReview(ctx context.Context, userID, vocabularyID uuid.UUID, memorized bool) (*types.VocabProgress, error) {
	vocab, err := s.vocabRepo.GetByID(ctx, nil, vocabularyID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if vocab == nil {
		return nil, apierr.NotFound(errors.New("vocabulary not found"))
	}

	now := time.Now().UTC()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row, err := s.vocabProgRepo.Get(ctx, tx, userID, vocabularyID)
		if err != nil {
			return err
		}
		if row == nil {
			row = &types.VocabProgress{
				ID:           uuid.New(),
				UserID:       userID,
				VocabularyID: vocabularyID,
				IsMemorized:  false,
				ReviewCount:  0,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := s.vocabProgRepo.Create(ctx, tx, row); err != nil {
				return err
			}
		}
		return s.vocabProgRepo.IncrementReview(ctx, tx, userID, vocabularyID, memorized, now)
	})
	if err != nil {
		return nil, apierr.Internal(err)
	}

	updated, err := s.vocabProgRepo.Get(ctx, nil, userID, vocabularyID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return updated, nil
}

func (s *progressService) WordsToReview(ctx context.Context, userID uuid.UUID, limit int) ([]types.VocabularyWithProgress, error) {
	if limit <= 0 {
		limit = defaultReviewLimit
	}
	if limit > maxReviewLimit {
		limit = maxReviewLimit
	}

	rows, err := s.vocabProgRepo.ListUnmemorized(ctx, nil, userID, limit)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	out := make([]types.VocabularyWithProgress, 0, len(rows))
	for _, row := range rows {
		if row.Vocabulary == nil {
			continue
		}
		out = append(out, annotatedVocabulary(*row.Vocabulary, row))
	}
	return out, nil
}

func (s *progressService) LessonCompletionPercentage(ctx context.Context, userID, lessonID uuid.UUID) (float64, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, nil, lessonID)
	if err != nil {
		return 0, apierr.Internal(err)
	}
	if lesson == nil {
		return 0, apierr.NotFound(errors.New("lesson not found"))
	}
	return s.lessonPercent(ctx, userID, lessonID)
}

// lessonPercent derives the caller's completion of a lesson from the
// memorized share of its vocabulary. Never stored.
func (s *progressService) lessonPercent(ctx context.Context, userID, lessonID uuid.UUID) (float64, error) {
	vocabIDs, err := s.lessonVocabRepo.VocabularyIDsByLesson(ctx, nil, lessonID)
	if err != nil {
		return 0, apierr.Internal(err)
	}
	if len(vocabIDs) == 0 {
		return 0, nil
	}
	memorized, err := s.vocabProgRepo.CountMemorizedIn(ctx, nil, userID, vocabIDs)
	if err != nil {
		return 0, apierr.Internal(err)
	}
	return completionPercent(memorized, int64(len(vocabIDs))), nil
}

// CompleteLesson is an explicit learner action; it does not require the
// derived percentage to be 100.
func (s *progressService) CompleteLesson(ctx context.Context, userID, lessonID uuid.UUID) error {
	lesson, err := s.lessonRepo.GetByID(ctx, nil, lessonID)
	if err != nil {
		return apierr.Internal(err)
	}
	if lesson == nil {
		return apierr.NotFound(errors.New("lesson not found"))
	}
	if err := s.lessonProgRepo.UpsertCompleted(ctx, nil, userID, lessonID, time.Now().UTC()); err != nil {
		return apierr.Internal(err)
	}
	return nil
}

func (s *progressService) UpdateTopicProgress(ctx context.Context, userID, topicID uuid.UUID) (*types.TopicProgress, error) {
	topic, err := s.topicRepo.GetByID(ctx, nil, topicID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if topic == nil {
		return nil, apierr.NotFound(errors.New("topic not found"))
	}

	lessonIDs, err := s.topicLessonRepo.LessonIDsByTopic(ctx, nil, topicID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	completed, err := s.lessonProgRepo.CountCompletedIn(ctx, nil, userID, lessonIDs)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	now := time.Now().UTC()
	row := &types.TopicProgress{
		ID:                  uuid.New(),
		UserID:              userID,
		TopicID:             topicID,
		CompletedLessons:    int(completed),
		TotalLessons:        len(lessonIDs),
		CompletedPercentage: completionPercent(completed, int64(len(lessonIDs))),
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := s.topicProgRepo.Upsert(ctx, nil, row); err != nil {
		return nil, apierr.Internal(err)
	}

	stored, err := s.topicProgRepo.Get(ctx, nil, userID, topicID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return stored, nil
}

func (s *progressService) ResetUserProgress(ctx context.Context, userID uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.vocabProgRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		if err := s.lessonProgRepo.DeleteByUser(ctx, tx, userID); err != nil {
			return err
		}
		return s.topicProgRepo.DeleteByUser(ctx, tx, userID)
	})
	if err != nil {
		return apierr.Internal(err)
	}
	s.log.Info("Reset user progress", "user_id", userID.String())
	return nil
}

func (s *progressService) OverallProgress(ctx context.Context, userID uuid.UUID) (*types.OverallProgress, error) {
	started, memorized, _, err := s.vocabProgRepo.CountsByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	totalWords, err := s.vocabRepo.Count(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	lessonsCompleted, err := s.lessonProgRepo.CountCompletedByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	totalLessons, err := s.lessonRepo.Count(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	topics, err := s.TopicsWithProgress(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &types.OverallProgress{
		WordsStarted:     int(started),
		WordsMemorized:   int(memorized),
		TotalWords:       int(totalWords),
		LessonsCompleted: int(lessonsCompleted),
		TotalLessons:     int(totalLessons),
		Topics:           topics,
	}, nil
}

func (s *progressService) TopicsWithProgress(ctx context.Context, userID uuid.UUID) ([]types.TopicWithProgress, error) {
	topics, err := s.topicRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	topicIDs := make([]uuid.UUID, 0, len(topics))
	for _, t := range topics {
		topicIDs = append(topicIDs, t.ID)
	}
	rows, err := s.topicProgRepo.GetByUserAndTopicIDs(ctx, nil, userID, topicIDs)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	byTopic := make(map[uuid.UUID]*types.TopicProgress, len(rows))
	for _, row := range rows {
		byTopic[row.TopicID] = row
	}

	out := make([]types.TopicWithProgress, 0, len(topics))
	for _, t := range topics {
		item := types.TopicWithProgress{Topic: *t}
		completed, total := 0, 0
		pct := 0.0
		if row, ok := byTopic[t.ID]; ok {
			completed = row.CompletedLessons
			total = row.TotalLessons
			pct = row.CompletedPercentage
		}
		item.CompletedLessons = &completed
		item.TotalLessons = &total
		item.CompletedPercentage = &pct
		out = append(out, item)
	}
	return out, nil
}

// annotatedVocabulary copies a caller's progress row onto the read shape.
func annotatedVocabulary(vocab types.Vocabulary, row *types.VocabProgress) types.VocabularyWithProgress {
	out := types.VocabularyWithProgress{Vocabulary: vocab}
	if row == nil {
		memorized := false
		count := 0
		out.IsMemorized = &memorized
		out.ReviewCount = &count
		return out
	}
	memorized := row.IsMemorized
	count := row.ReviewCount
	out.IsMemorized = &memorized
	out.ReviewCount = &count
	out.LastReviewedAt = row.LastReviewedAt
	return out
}
