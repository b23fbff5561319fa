package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type TopicLessonRepo interface {
	Attach(ctx context.Context, tx *gorm.DB, link *types.TopicLesson) error
	Get(ctx context.Context, tx *gorm.DB, topicID, lessonID uuid.UUID) (*types.TopicLesson, error)
	Detach(ctx context.Context, tx *gorm.DB, topicID, lessonID uuid.UUID) error
	ListByTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.TopicLesson, error)
	LessonIDsByTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]uuid.UUID, error)
	CountByTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (int64, error)
}

type topicLessonRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicLessonRepo(db *gorm.DB, baseLog *logger.Logger) TopicLessonRepo {
	return &topicLessonRepo{db: db, log: baseLog.With("repo", "TopicLessonRepo")}
}

func (r *topicLessonRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *topicLessonRepo) Attach(ctx context.Context, tx *gorm.DB, link *types.TopicLesson) error {
	return r.conn(tx).WithContext(ctx).Create(link).Error
}

func (r *topicLessonRepo) Get(ctx context.Context, tx *gorm.DB, topicID, lessonID uuid.UUID) (*types.TopicLesson, error) {
	var link types.TopicLesson
	err := r.conn(tx).WithContext(ctx).
		Where("topic_id = ? AND lesson_id = ?", topicID, lessonID).
		First(&link).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &link, nil
}

func (r *topicLessonRepo) Detach(ctx context.Context, tx *gorm.DB, topicID, lessonID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("topic_id = ? AND lesson_id = ?", topicID, lessonID).
		Delete(&types.TopicLesson{}).Error
}

func (r *topicLessonRepo) ListByTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]*types.TopicLesson, error) {
	var results []*types.TopicLesson
	err := r.conn(tx).WithContext(ctx).
		Where("topic_id = ?", topicID).
		Preload("Lesson").
		Order("display_order ASC, created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *topicLessonRepo) LessonIDsByTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.conn(tx).WithContext(ctx).
		Model(&types.TopicLesson{}).
		Where("topic_id = ?", topicID).
		Pluck("lesson_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *topicLessonRepo) CountByTopic(ctx context.Context, tx *gorm.DB, topicID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.TopicLesson{}).
		Where("topic_id = ?", topicID).
		Count(&count).Error
	return count, err
}
