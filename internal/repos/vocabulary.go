package repos

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type VocabularyRepo interface {
	Create(ctx context.Context, tx *gorm.DB, vocab *types.Vocabulary) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Vocabulary, error)
	GetByWord(ctx context.Context, tx *gorm.DB, word string) (*types.Vocabulary, error)
	List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Vocabulary, error)
	Search(ctx context.Context, tx *gorm.DB, keyword string, limit int) ([]*types.Vocabulary, error)
	Random(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Vocabulary, error)
	Update(ctx context.Context, tx *gorm.DB, vocab *types.Vocabulary) error
	SetAudio(ctx context.Context, tx *gorm.DB, id uuid.UUID, key, url string) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type vocabularyRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewVocabularyRepo(db *gorm.DB, baseLog *logger.Logger) VocabularyRepo {
	return &vocabularyRepo{db: db, log: baseLog.With("repo", "VocabularyRepo")}
}

func (r *vocabularyRepo) conn(tx *gorm.DB) *gorm.DB {
	if tx != nil {
		return tx
	}
	return r.db
}

func (r *vocabularyRepo) Create(ctx context.Context, tx *gorm.DB, vocab *types.Vocabulary) error {
	return r.conn(tx).WithContext(ctx).Create(vocab).Error
}

func (r *vocabularyRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Vocabulary, error) {
	var vocab types.Vocabulary
	err := r.conn(tx).WithContext(ctx).Where("id = ?", id).First(&vocab).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vocab, nil
}

func (r *vocabularyRepo) GetByWord(ctx context.Context, tx *gorm.DB, word string) (*types.Vocabulary, error) {
	var vocab types.Vocabulary
	err := r.conn(tx).WithContext(ctx).
		Where("LOWER(word) = ?", strings.ToLower(strings.TrimSpace(word))).
		First(&vocab).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &vocab, nil
}

func (r *vocabularyRepo) List(ctx context.Context, tx *gorm.DB, limit, offset int) ([]*types.Vocabulary, error) {
	var results []*types.Vocabulary
	q := r.conn(tx).WithContext(ctx).Order("word ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Search matches keyword against word and meaning, case-insensitively.
// LOWER/LIKE rather than ILIKE so the query also runs on SQLite.
func (r *vocabularyRepo) Search(ctx context.Context, tx *gorm.DB, keyword string, limit int) ([]*types.Vocabulary, error) {
	var results []*types.Vocabulary
	pattern := "%" + strings.ToLower(strings.TrimSpace(keyword)) + "%"
	q := r.conn(tx).WithContext(ctx).
		Where("LOWER(word) LIKE ? OR LOWER(meaning) LIKE ?", pattern, pattern).
		Order("word ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vocabularyRepo) Random(ctx context.Context, tx *gorm.DB, limit int) ([]*types.Vocabulary, error) {
	var results []*types.Vocabulary
	if limit <= 0 {
		limit = 10
	}
	// RANDOM() is understood by both Postgres and SQLite.
	err := r.conn(tx).WithContext(ctx).
		Order("RANDOM()").
		Limit(limit).
		Find(&results).Error
	if err != nil {
		return nil, err
	}
	return results, nil
}

func (r *vocabularyRepo) Update(ctx context.Context, tx *gorm.DB, vocab *types.Vocabulary) error {
	return r.conn(tx).WithContext(ctx).Save(vocab).Error
}

func (r *vocabularyRepo) SetAudio(ctx context.Context, tx *gorm.DB, id uuid.UUID, key, url string) error {
	return r.conn(tx).WithContext(ctx).
		Model(&types.Vocabulary{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"audio_key": key, "audio_url": url}).Error
}

func (r *vocabularyRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	return r.conn(tx).WithContext(ctx).Where("id = ?", id).Delete(&types.Vocabulary{}).Error
}

func (r *vocabularyRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	var count int64
	err := r.conn(tx).WithContext(ctx).Model(&types.Vocabulary{}).Count(&count).Error
	return count, err
}
