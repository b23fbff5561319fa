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

type TopicService interface {
	Get(ctx context.Context, id, userID uuid.UUID) (*types.TopicWithProgress, error)
	ListActive(ctx context.Context, userID uuid.UUID) ([]types.TopicWithProgress, error)
	TopicLessons(ctx context.Context, topicID, userID uuid.UUID) ([]types.LessonWithProgress, error)

	ListAll(ctx context.Context) ([]*types.Topic, error)
	Create(ctx context.Context, input CreateTopicInput) (*types.Topic, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateTopicInput) (*types.Topic, error)
	Delete(ctx context.Context, id uuid.UUID) error

	AttachLesson(ctx context.Context, topicID, lessonID uuid.UUID, displayOrder int) (*types.TopicLesson, error)
	DetachLesson(ctx context.Context, topicID, lessonID uuid.UUID) error
}

type CreateTopicInput struct {
	Name         string
	Description  string
	DisplayOrder int
	IsActive     *bool
}

type UpdateTopicInput struct {
	Name         *string
	Description  *string
	DisplayOrder *int
	IsActive     *bool
}

type topicService struct {
	db              *gorm.DB
	log             *logger.Logger
	topicRepo       repos.TopicRepo
	topicLessonRepo repos.TopicLessonRepo
	topicProgRepo   repos.TopicProgressRepo
	lessonRepo      repos.LessonRepo
	lessonProgRepo  repos.LessonProgressRepo
}

func NewTopicService(
	db *gorm.DB,
	log *logger.Logger,
	topicRepo repos.TopicRepo,
	topicLessonRepo repos.TopicLessonRepo,
	topicProgRepo repos.TopicProgressRepo,
	lessonRepo repos.LessonRepo,
	lessonProgRepo repos.LessonProgressRepo,
) TopicService {
	return &topicService{
		db:              db,
		log:             log.With("service", "TopicService"),
		topicRepo:       topicRepo,
		topicLessonRepo: topicLessonRepo,
		topicProgRepo:   topicProgRepo,
		lessonRepo:      lessonRepo,
		lessonProgRepo:  lessonProgRepo,
	}
}

func (s *topicService) Get(ctx context.Context, id, userID uuid.UUID) (*types.TopicWithProgress, error) {
	topic, err := s.topicRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if topic == nil {
		return nil, apierr.NotFound(errors.New("topic not found"))
	}

	out := types.TopicWithProgress{Topic: *topic}
	if userID == uuid.Nil {
		return &out, nil
	}

	row, err := s.topicProgRepo.Get(ctx, nil, userID, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	completed, total := 0, 0
	pct := 0.0
	if row != nil {
		completed = row.CompletedLessons
		total = row.TotalLessons
		pct = row.CompletedPercentage
	}
	out.CompletedLessons = &completed
	out.TotalLessons = &total
	out.CompletedPercentage = &pct
	return &out, nil
}

func (s *topicService) ListActive(ctx context.Context, userID uuid.UUID) ([]types.TopicWithProgress, error) {
	topics, err := s.topicRepo.ListActive(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	out := make([]types.TopicWithProgress, 0, len(topics))
	if userID == uuid.Nil {
		for _, t := range topics {
			out = append(out, types.TopicWithProgress{Topic: *t})
		}
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, t.ID)
	}
	rows, err := s.topicProgRepo.GetByUserAndTopicIDs(ctx, nil, userID, ids)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	byTopic := make(map[uuid.UUID]*types.TopicProgress, len(rows))
	for _, row := range rows {
		byTopic[row.TopicID] = row
	}
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

func (s *topicService) TopicLessons(ctx context.Context, topicID, userID uuid.UUID) ([]types.LessonWithProgress, error) {
	topic, err := s.topicRepo.GetByID(ctx, nil, topicID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if topic == nil {
		return nil, apierr.NotFound(errors.New("topic not found"))
	}

	links, err := s.topicLessonRepo.ListByTopic(ctx, nil, topicID)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	var byLesson map[uuid.UUID]*types.LessonProgress
	if userID != uuid.Nil {
		ids := make([]uuid.UUID, 0, len(links))
		for _, link := range links {
			ids = append(ids, link.LessonID)
		}
		rows, err := s.lessonProgRepo.GetByUserAndLessonIDs(ctx, nil, userID, ids)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		byLesson = make(map[uuid.UUID]*types.LessonProgress, len(rows))
		for _, row := range rows {
			byLesson[row.LessonID] = row
		}
	}

	out := make([]types.LessonWithProgress, 0, len(links))
	for _, link := range links {
		if link.Lesson == nil {
			continue
		}
		item := types.LessonWithProgress{Lesson: *link.Lesson}
		if userID != uuid.Nil {
			completed := false
			if row, ok := byLesson[link.LessonID]; ok {
				completed = row.IsCompleted
			}
			item.IsCompleted = &completed
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *topicService) ListAll(ctx context.Context) ([]*types.Topic, error) {
	topics, err := s.topicRepo.ListAll(ctx, nil)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return topics, nil
}

func (s *topicService) Create(ctx context.Context, input CreateTopicInput) (*types.Topic, error) {
	name := normalization.TrimInputString(input.Name)
	if name == "" {
		return nil, apierr.MissingField("name")
	}

	active := true
	if input.IsActive != nil {
		active = *input.IsActive
	}

	now := time.Now().UTC()
	topic := &types.Topic{
		ID:           uuid.New(),
		Name:         name,
		Description:  normalization.TrimInputString(input.Description),
		DisplayOrder: input.DisplayOrder,
		IsActive:     active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.topicRepo.Create(ctx, nil, topic); err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("Created topic", "topic_id", topic.ID.String())
	return topic, nil
}

func (s *topicService) Update(ctx context.Context, id uuid.UUID, input UpdateTopicInput) (*types.Topic, error) {
	topic, err := s.topicRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if topic == nil {
		return nil, apierr.NotFound(errors.New("topic not found"))
	}

	if input.Name != nil {
		name := normalization.TrimInputString(*input.Name)
		if name == "" {
			return nil, apierr.MissingField("name")
		}
		topic.Name = name
	}
	if input.Description != nil {
		topic.Description = normalization.TrimInputString(*input.Description)
	}
	if input.DisplayOrder != nil {
		topic.DisplayOrder = *input.DisplayOrder
	}
	if input.IsActive != nil {
		topic.IsActive = *input.IsActive
	}
	topic.UpdatedAt = time.Now().UTC()

	if err := s.topicRepo.Update(ctx, nil, topic); err != nil {
		return nil, apierr.Internal(err)
	}
	return topic, nil
}

func (s *topicService) Delete(ctx context.Context, id uuid.UUID) error {
	topic, err := s.topicRepo.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.Internal(err)
	}
	if topic == nil {
		return apierr.NotFound(errors.New("topic not found"))
	}
	if err := s.topicRepo.Delete(ctx, nil, id); err != nil {
		return apierr.Internal(err)
	}
	s.log.Info("Deleted topic", "topic_id", id.String())
	return nil
}

func (s *topicService) AttachLesson(ctx context.Context, topicID, lessonID uuid.UUID, displayOrder int) (*types.TopicLesson, error) {
	topic, err := s.topicRepo.GetByID(ctx, nil, topicID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if topic == nil {
		return nil, apierr.NotFound(errors.New("topic not found"))
	}
	lesson, err := s.lessonRepo.GetByID(ctx, nil, lessonID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if lesson == nil {
		return nil, apierr.NotFound(errors.New("lesson not found"))
	}

	existing, err := s.topicLessonRepo.Get(ctx, nil, topicID, lessonID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if existing != nil {
		return nil, apierr.Conflict(errors.New("lesson already attached to topic"))
	}

	link := &types.TopicLesson{
		ID:           uuid.New(),
		TopicID:      topicID,
		LessonID:     lessonID,
		DisplayOrder: displayOrder,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.topicLessonRepo.Attach(ctx, nil, link); err != nil {
		return nil, apierr.Internal(err)
	}
	return link, nil
}

func (s *topicService) DetachLesson(ctx context.Context, topicID, lessonID uuid.UUID) error {
	link, err := s.topicLessonRepo.Get(ctx, nil, topicID, lessonID)
	if err != nil {
		return apierr.Internal(err)
	}
	if link == nil {
		return apierr.NotFound(errors.New("topic lesson link not found"))
	}
	if err := s.topicLessonRepo.Detach(ctx, nil, topicID, lessonID); err != nil {
		return apierr.Internal(err)
	}
	return nil
}
