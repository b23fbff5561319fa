package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type TopicRepo interface {
	Create(ctx context.Context, tx *gorm.DB, topic *types.Topic) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Topic, error)
	ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error)
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error)
	Update(ctx context.Context, tx *gorm.DB, topic *types.Topic) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type topicRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicRepo(db *gorm.DB, baseLog *logger.Logger) TopicRepo {
	return &topicRepo{db: db, log: baseLog.With("repo", "TopicRepo")}
}

func (r *topicRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *topicRepo) Create(ctx context.Context, tx *gorm.DB, topic *types.Topic) error {
	return r.conn(tx).WithContext(ctx).Create(topic).Error
}

func (r *topicRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Topic, error) {
	var topic types.Topic
	err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&topic).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &topic, nil
}

func (r *topicRepo) ListActive(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error) {
	var results []*types.Topic
	err := r.conn(tx).WithContext(ctx).
		Where("is_active = ?", true).
		Order("display_order ASC, created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *topicRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.Topic, error) {
	var results []*types.Topic
	err := r.conn(tx).WithContext(ctx).
		Order("display_order ASC, created_at ASC").
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *topicRepo) Update(ctx context.Context, tx *gorm.DB, topic *types.Topic) error {
	return r.conn(tx).WithContext(ctx).Save(topic).Error
}

func (r *topicRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Where("id = ?", id).Delete(&types.Topic{}).Error
}

func (r *topicRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&types.Topic{}).Count(&count).Error
	return count, err
}
