package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type VocabProgressRepo interface {
	Get(ctx context.Context, tx *gorm.DB, userID, vocabularyID uuid.UUID) (*types.VocabProgress, error)
	GetByUserAndVocabIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, vocabularyIDs []uuid.UUID) ([]*types.VocabProgress, error)
	Create(ctx context.Context, tx *gorm.DB, row *types.VocabProgress) error
	// IncrementReview bumps review_count by one in SQL so concurrent
	// reviews from two devices cannot lose a count.
	IncrementReview(ctx context.Context, tx *gorm.DB, userID, vocabularyID uuid.UUID, memorized bool, now time.Time) error
	CountMemorizedIn(ctx context.Context, tx *gorm.DB, userID uuid.UUID, vocabularyIDs []uuid.UUID) (int64, error)
	ListUnmemorized(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.VocabProgress, error)
	ListMemorized(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.VocabProgress, error)
	CountsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (started, memorized, totalReviews int64, err error)
	CountDistinctUsers(ctx context.Context, tx *gorm.DB) (int64, error)
	MostReviewed(ctx context.Context, tx *gorm.DB, limit int) ([]types.WordReviewStat, error)
	DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error
}

type vocabProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVocabProgressRepo(db *gorm.DB, baseLog *logger.Logger) VocabProgressRepo {
	return &vocabProgressRepo{db: db, log: baseLog.With("repo", "VocabProgressRepo")}
}

func (r *vocabProgressRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *vocabProgressRepo) Get(ctx context.Context, tx *gorm.DB, userID, vocabularyID uuid.UUID) (*types.VocabProgress, error) {
	var row types.VocabProgress
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND vocabulary_id = ?", userID, vocabularyID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

func (r *vocabProgressRepo) GetByUserAndVocabIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, vocabularyIDs []uuid.UUID) ([]*types.VocabProgress, error) {
	var results []*types.VocabProgress
	if len(vocabularyIDs) == 0 {
		return results, nil
	}
	err := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND vocabulary_id IN ?", userID, vocabularyIDs).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vocabProgressRepo) Create(ctx context.Context, tx *gorm.DB, row *types.VocabProgress) error {
	return r.conn(tx).WithContext(ctx).Create(row).Error
}

func (r *vocabProgressRepo) IncrementReview(ctx context.Context, tx *gorm.DB, userID, vocabularyID uuid.UUID, memorized bool, now time.Time) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.VocabProgress{}).
		Where("user_id = ? AND vocabulary_id = ?", userID, vocabularyID).
		Updates(map[string]interface{}{
			"review_count":     gorm.Expr("review_count + 1"),
			"is_memorized":     memorized,
			"last_reviewed_at": now,
			"updated_at":       now,
		}).Error
}

func (r *vocabProgressRepo) CountMemorizedIn(ctx context.Context, tx *gorm.DB, userID uuid.UUID, vocabularyIDs []uuid.UUID) (int64, error) {
	if len(vocabularyIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.VocabProgress{}).
		Where("user_id = ? AND is_memorized = ? AND vocabulary_id IN ?", userID, true, vocabularyIDs).
		Count(&count).Error
	return count, err
}

// ListUnmemorized is the review queue: stalest first.
func (r *vocabProgressRepo) ListUnmemorized(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.VocabProgress, error) {
	var results []*types.VocabProgress
	q := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND is_memorized = ?", userID, false).
		Preload("Vocabulary").
		Order("last_reviewed_at ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vocabProgressRepo) ListMemorized(ctx context.Context, tx *gorm.DB, userID uuid.UUID, limit int) ([]*types.VocabProgress, error) {
	var results []*types.VocabProgress
	q := r.conn(tx).WithContext(ctx).
		Where("user_id = ? AND is_memorized = ?", userID, true).
		Preload("Vocabulary").
		Order("last_reviewed_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vocabProgressRepo) CountsByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (started, memorized, totalReviews int64, err error) {
	conn := r.conn(tx).WithContext(ctx)

	if err = conn.Model(&types.VocabProgress{}).
		Where("user_id = ?", userID).
		Count(&started).Error; err != nil {
		return 0, 0, 0, err
	}
	if err = conn.Model(&types.VocabProgress{}).
		Where("user_id = ? AND is_memorized = ?", userID, true).
		Count(&memorized).Error; err != nil {
		return 0, 0, 0, err
	}
	var sum struct{ Total int64 }
	if err = conn.Model(&types.VocabProgress{}).
		Select("COALESCE(SUM(review_count), 0) AS total").
		Where("user_id = ?", userID).
		Scan(&sum).Error; err != nil {
		return 0, 0, 0, err
	}
	return started, memorized, sum.Total, nil
}

func (r *vocabProgressRepo) CountDistinctUsers(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).
		Model(&types.VocabProgress{}).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

func (r *vocabProgressRepo) MostReviewed(ctx context.Context, tx *gorm.DB, limit int) ([]types.WordReviewStat, error) {
	if limit <= 0 {
		limit = 10
	}
	var stats []types.WordReviewStat
	err := r.conn(tx).WithContext(ctx).
		Table("vocab_progress").
		Select("vocabulary.id AS vocabulary_id, vocabulary.word AS word, SUM(vocab_progress.review_count) AS review_count").
		Joins("JOIN vocabulary ON vocabulary.id = vocab_progress.vocabulary_id").
		Group("vocabulary.id, vocabulary.word").
		Order("review_count DESC").
		Limit(limit).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *vocabProgressRepo) DeleteByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&types.VocabProgress{}).Error
}
