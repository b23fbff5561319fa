package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/normalization"
	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/repos"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type LessonService interface {
	Get(ctx context.Context, id, userID uuid.UUID) (*types.LessonWithProgress, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]types.LessonWithProgress, error)
	// LessonVocabulary returns the lesson's items in display order with
	// per-lesson overrides applied.
	LessonVocabulary(ctx context.Context, lessonID, userID uuid.UUID) ([]types.LessonVocabularyItem, error)

	ListAll(ctx context.Context) ([]*types.Lesson, error)
	Create(ctx context.Context, input CreateLessonInput) (*types.Lesson, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateLessonInput) (*types.Lesson, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AttachVocabulary(ctx context.Context, input AttachVocabularyInput) (*types.LessonVocabulary, error)
	UpdateVocabularyLink(ctx context.Context, lessonID, vocabularyID uuid.UUID, input UpdateVocabularyLinkInput) (*types.LessonVocabulary, error)
	DetachVocabulary(ctx context.Context, lessonID, vocabularyID uuid.UUID) error
}

type CreateLessonInput struct {
	Title        string
	Description  string
	DisplayOrder int
	IsActive     *bool
}

type UpdateLessonInput struct {
	Title        *string
	Description  *string
	DisplayOrder *int
	IsActive     *bool
}

type AttachVocabularyInput struct {
	LessonID        uuid.UUID
	VocabularyID    uuid.UUID
	DisplayOrder    int
	MeaningOverride *string
	ExampleOverride *string
}

type UpdateVocabularyLinkInput struct {
	DisplayOrder    *int
	MeaningOverride *string
	ExampleOverride *string
}

type lessonService struct {
	db              *gorm.DB
	log             *logger.Logger
	lessonRepo      repos.LessonRepo
	lessonVocabRepo repos.LessonVocabularyRepo
	lessonProgRepo  repos.LessonProgressRepo
	vocabRepo       repos.VocabularyRepo
	vocabProgRepo   repos.VocabProgressRepo
}

func NewLessonService(
	db *gorm.DB,
	log *logger.Logger,
	lessonRepo repos.LessonRepo,
	lessonVocabRepo repos.LessonVocabularyRepo,
	lessonProgRepo repos.LessonProgressRepo,
	vocabRepo repos.VocabularyRepo,
	vocabProgRepo repos.VocabProgressRepo,
) LessonService {
	return &lessonService{
		db:              db,
		log:             log.With("service", "LessonService"),
		lessonRepo:      lessonRepo,
		lessonVocabRepo: lessonVocabRepo,
		lessonProgRepo:  lessonProgRepo,
		vocabRepo:       vocabRepo,
		vocabProgRepo:   vocabProgRepo,
	}
}

func (s *lessonService) Get(ctx context.Context, id, userID uuid.UUID) (*types.LessonWithProgress, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if lesson == nil {
		return nil, apierr.NotFound(errors.New("lesson not found"))
	}

	out := types.LessonWithProgress{Lesson: *lesson}
	if userID == uuid.Nil {
		return &out, nil
	}

	row, err := s.lessonProgRepo.Get(ctx, nil, userID, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	completed := row != nil && row.IsCompleted
	out.IsCompleted = &completed

	pct, err := s.derivedPercent(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	out.CompletionPercentage = &pct
	return &out, nil
}

func (s *lessonService) derivedPercent(ctx context.Context, userID, lessonID uuid.UUID) (float64, error) {
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

func (s *lessonService) ListActive(ctx context.Context, userID uuid.UUID) ([]types.LessonWithProgress, error) {
	lessons, err := s.lessonRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	out := make([]types.LessonWithProgress, 0, len(lessons))
	if userID == uuid.Nil {
		for _, l := range lessons {
			out = append(out, types.LessonWithProgress{Lesson: *l})
		}
		return out, nil
	}

	// List views only annotate the completion flag; the derived
	// percentage is a per-lesson detail query.
	ids := make([]uuid.UUID, 0, len(lessons))
	for _, l := range lessons {
		ids = append(ids, l.ID)
	}
	rows, err := s.lessonProgRepo.GetByUserAndLessonIDs(ctx, nil, userID, ids)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	byLesson := make(map[uuid.UUID]*types.LessonProgress, len(rows))
	for _, row := range rows {
		byLesson[row.LessonID] = row
	}
	for _, l := range lessons {
		item := types.LessonWithProgress{Lesson: *l}
		completed := false
		if row, ok := byLesson[l.ID]; ok {
			completed = row.IsCompleted
		}
		item.IsCompleted = &completed
		out = append(out, item)
	}
	return out, nil
}

func (s *lessonService) LessonVocabulary(ctx context.Context, lessonID, userID uuid.UUID) ([]types.LessonVocabularyItem, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, nil, lessonID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if lesson == nil {
		return nil, apierr.NotFound(errors.New("lesson not found"))
	}

	links, err := s.lessonVocabRepo.ListByLesson(ctx, nil, lessonID)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	var byVocab map[uuid.UUID]*types.VocabProgress
	if userID != uuid.Nil {
		ids := make([]uuid.UUID, 0, len(links))
		for _, link := range links {
			ids = append(ids, link.VocabularyID)
		}
		rows, err := s.vocabProgRepo.GetByUserAndVocabIDs(ctx, nil, userID, ids)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		byVocab = make(map[uuid.UUID]*types.VocabProgress, len(rows))
		for _, row := range rows {
			byVocab[row.VocabularyID] = row
		}
	}

	out := make([]types.LessonVocabularyItem, 0, len(links))
	for _, link := range links {
		if link.Vocabulary == nil {
			continue
		}
		vocab := *link.Vocabulary
		if link.MeaningOverride != nil && *link.MeaningOverride != "" {
			vocab.Meaning = *link.MeaningOverride
		}

		item := types.LessonVocabularyItem{
			DisplayOrder:    link.DisplayOrder,
			ExampleOverride: link.ExampleOverride,
		}
		if userID != uuid.Nil {
			item.VocabularyWithProgress = annotatedVocabulary(vocab, byVocab[link.VocabularyID])
		} else {
			item.VocabularyWithProgress = types.VocabularyWithProgress{Vocabulary: vocab}
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *lessonService) ListAll(ctx context.Context) ([]*types.Lesson, error) {
	lessons, err := s.lessonRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return lessons, nil
}

func (s *lessonService) Create(ctx context.Context, input CreateLessonInput) (*types.Lesson, error) {
	title := normalization.TrimInputString(input.Title)
	if title == "" {
		return nil, apierr.MissingField("title")
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	lesson := &types.Lesson{
		ID:           uuid.New(),
		Title:        title,
		Description:  normalization.TrimInputString(input.Description),
		DisplayOrder: input.DisplayOrder,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.lessonRepo.Create(ctx, nil, lesson); err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("Created lesson", "lesson_id", lesson.ID.String())
	return lesson, nil
}

func (s *lessonService) Update(ctx context.Context, id uuid.UUID, input UpdateLessonInput) (*types.Lesson, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if lesson == nil {
		return nil, apierr.NotFound(errors.New("lesson not found"))
	}

	if input.Title != nil {
		title := normalization.TrimInputString(*input.Title)
		if title == "" {
			return nil, apierr.MissingField("title")
		}
		lesson.Title = title
	}
	if input.Description != nil {
		lesson.Description = normalization.TrimInputString(*input.Description)
	}
	if input.DisplayOrder != nil {
		lesson.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		lesson.IsActive = *input.IsActive
	}
	lesson.UpdatedAt = time.Now().UTC()

	if err := s.lessonRepo.Update(ctx, nil, lesson); err != nil {
		return nil, apierr.Internal(err)
	}
	return lesson, nil
}

func (s *lessonService) Delete(ctx context.Context, id uuid.UUID) error {
	lesson, err := s.lessonRepo.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.Internal(err)
	}
	if lesson == nil {
		return apierr.NotFound(errors.New("lesson not found"))
	}
	if err := s.lessonRepo.Delete(ctx, nil, id); err != nil {
		return apierr.Internal(err)
	}
	s.log.Info("Deleted lesson", "lesson_id", id.String())
	return nil
}

func (s *lessonService) AttachVocabulary(ctx context.Context, input AttachVocabularyInput) (*types.LessonVocabulary, error) {
	lesson, err := s.lessonRepo.GetByID(ctx, nil, input.LessonID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if lesson == nil {
		return nil, apierr.NotFound(errors.New("lesson not found"))
	}
	vocab, err := s.vocabRepo.GetByID(ctx, nil, input.VocabularyID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if vocab == nil {
		return nil, apierr.NotFound(errors.New("vocabulary not found"))
	}

	existing, err := s.lessonVocabRepo.Get(ctx, nil, input.LessonID, input.VocabularyID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if existing != nil {
		return nil, apierr.Conflict(errors.New("vocabulary already attached to lesson"))
	}

	now := time.Now().UTC()
	link := &types.LessonVocabulary{
		ID:              uuid.New(),
		LessonID:        input.LessonID,
		VocabularyID:    input.VocabularyID,
		DisplayOrder:    input.DisplayOrder,
		MeaningOverride: input.MeaningOverride,
		ExampleOverride: input.ExampleOverride,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.lessonVocabRepo.Attach(ctx, nil, link); err != nil {
		return nil, apierr.Internal(err)
	}
	return link, nil
}

func (s *lessonService) UpdateVocabularyLink(ctx context.Context, lessonID, vocabularyID uuid.UUID, input UpdateVocabularyLinkInput) (*types.LessonVocabulary, error) {
	link, err := s.lessonVocabRepo.Get(ctx, nil, lessonID, vocabularyID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if link == nil {
		return nil, apierr.NotFound(errors.New("lesson vocabulary link not found"))
	}

	if input.DisplayOrder != nil {
		link.DisplayOrder = *input.DisplayOrder
	}
	if input.MeaningOverride != nil {
		if *input.MeaningOverride == "" {
			link.MeaningOverride = nil
		} else {
			link.MeaningOverride = input.MeaningOverride
		}
	}
	if input.ExampleOverride != nil {
		if *input.ExampleOverride == "" {
			link.ExampleOverride = nil
		} else {
			link.ExampleOverride = input.ExampleOverride
		}
	}
	link.UpdatedAt = time.Now().UTC()

	if err := s.lessonVocabRepo.Update(ctx, nil, link); err != nil {
		return nil, apierr.Internal(err)
	}
	return link, nil
}

func (s *lessonService) DetachVocabulary(ctx context.Context, lessonID, vocabularyID uuid.UUID) error {
	link, err := s.lessonVocabRepo.Get(ctx, nil, lessonID, vocabularyID)
	if err != nil {
		return apierr.Internal(err)
	}
	if link == nil {
		return apierr.NotFound(errors.New("lesson vocabulary link not found"))
	}
	if err := s.lessonVocabRepo.Detach(ctx, nil, lessonID, vocabularyID); err != nil {
		return apierr.Internal(err)
	}
	return nil
}
