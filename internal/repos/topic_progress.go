package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type TopicProgressRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID) (*types.TopicProgress, error)
	GetByUserAndTopicIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, topicIDs []uuid.UUID) ([]*types.TopicProgress, error)
	// Upsert is an atomic insert-or-update on the (user, topic) key;
	// concurrent recomputations cannot lose each other's writes.
	Upsert(ctx context.Context, tx *gorm.DB, row *types.TopicProgress) error
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type topicProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTopicProgressRepo(db *gorm.DB, baseLog *logger.Logger) TopicProgressRepo {
	return &topicProgressRepo{db: db, log: baseLog.With("repo", "TopicProgressRepo")}
}

func (r *topicProgressRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *topicProgressRepo) Get(ctx context.Context, tx *gorm.DB, userID, topicID uuid.UUID) (*types.TopicProgress, error) {
	var row types.TopicProgress
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND topic_id = ?", userID, topicID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *topicProgressRepo) GetByUserAndTopicIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, topicIDs []uuid.UUID) ([]*types.TopicProgress, error) {
	var results []*types.TopicProgress
	if len(topicIDs) == 0 {
		return results, nil
	}
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND topic_id IN ?", userID, topicIDs).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *topicProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.TopicProgress) error {
	return r.conn(tx).WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "topic_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"completed_lessons", "total_lessons", "completed_percentage", "updated_at",
			}),
		}).
		Create(row).Error
}

func (r *topicProgressRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.TopicProgress{}).Error
}
