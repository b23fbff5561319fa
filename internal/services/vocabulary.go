package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/normalization"
	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/platform/rediscache"
	"github.com/wordnest/wordnest-backend/internal/repos"
	"github.com/wordnest/wordnest-backend/internal/types"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100

	// Search results are cached briefly; admin edits become visible when
	// the entry expires.
	searchCacheTTL = 60 * time.Second
)

// VocabularyService is the browsing surface plus the admin CRUD behind
// it. A uuid.Nil userID means the caller is anonymous and progress
// annotations are skipped.
type VocabularyService interface {
	Get(ctx context.Context, id, userID uuid.UUID) (*types.VocabularyWithProgress, error)
	List(ctx context.Context, limit, offset int, userID uuid.UUID) ([]types.VocabularyWithProgress, error)
	Search(ctx context.Context, keyword string, limit int, userID uuid.UUID) ([]types.VocabularyWithProgress, error)
	Random(ctx context.Context, limit int, userID uuid.UUID) ([]types.VocabularyWithProgress, error)

	Create(ctx context.Context, input CreateVocabularyInput) (*types.Vocabulary, error)
	Update(ctx context.Context, id uuid.UUID, input UpdateVocabularyInput) (*types.Vocabulary, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CreateVocabularyInput struct {
	Word            string
	Meaning         string
	Pronunciation   string
	Examples        datatypes.JSON
	WordType        string
	DifficultyLevel int
}

type UpdateVocabularyInput struct {
	Word            *string
	Meaning         *string
	Pronunciation   *string
	Examples        datatypes.JSON
	WordType        *string
	DifficultyLevel *int
}

type vocabularyService struct {
	db            *gorm.DB
	log           *logger.Logger
	vocabRepo     repos.VocabularyRepo
	vocabProgRepo repos.VocabProgressRepo
	cache         rediscache.Cache
}

func NewVocabularyService(
	db *gorm.DB,
	log *logger.Logger,
	vocabRepo repos.VocabularyRepo,
	vocabProgRepo repos.VocabProgressRepo,
	cache rediscache.Cache,
) VocabularyService {
	return &vocabularyService{
		db:            db,
		log:           log.With("service", "VocabularyService"),
		vocabRepo:     vocabRepo,
		vocabProgRepo: vocabProgRepo,
		cache:         cache,
	}
}

func clampLimit(limit, def, max int) int {
	if limit <= 0 {
		return def
	}
	if limit > max {
		return max
	}
	return limit
}

func (s *vocabularyService) Get(ctx context.Context, id, userID uuid.UUID) (*types.VocabularyWithProgress, error) {
	vocab, err := s.vocabRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if vocab == nil {
		return nil, apierr.NotFound(errors.New("vocabulary not found"))
	}

	out := types.VocabularyWithProgress{Vocabulary: *vocab}
	if userID != uuid.Nil {
		row, err := s.vocabProgRepo.Get(ctx, nil, userID, id)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		out = annotatedVocabulary(*vocab, row)
	}
	return &out, nil
}

func (s *vocabularyService) List(ctx context.Context, limit, offset int, userID uuid.UUID) ([]types.VocabularyWithProgress, error) {
	limit = clampLimit(limit, defaultPageSize, maxPageSize)
	if offset < 0 {
		offset = 0
	}
	rows, err := s.vocabRepo.List(ctx, nil, limit, offset)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return s.annotateAll(ctx, rows, userID)
}

func (s *vocabularyService) Search(ctx context.Context, keyword string, limit int, userID uuid.UUID) ([]types.VocabularyWithProgress, error) {
	keyword = normalization.ParseInputString(keyword)
	if keyword == "" {
		return nil, apierr.MissingField("keyword")
	}
	limit = clampLimit(limit, defaultPageSize, maxPageSize)

	// Only the base records are cached; per-user annotations are applied
	// after the cache so entries stay shareable between callers.
	cacheKey := fmt.Sprintf("vocab:search:%s:%d", keyword, limit)
	var rows []*types.Vocabulary
	hit, err := s.cache.GetJSON(ctx, cacheKey, &rows)
	if err != nil {
		s.log.Debug("Cache read failed", "key", cacheKey, "error", err.Error())
	}
	if !hit {
		rows, err = s.vocabRepo.Search(ctx, nil, keyword, limit)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		if err := s.cache.SetJSON(ctx, cacheKey, rows, searchCacheTTL); err != nil {
			s.log.Debug("Cache write failed", "key", cacheKey, "error", err.Error())
		}
	}
	return s.annotateAll(ctx, rows, userID)
}

func (s *vocabularyService) Random(ctx context.Context, limit int, userID uuid.UUID) ([]types.VocabularyWithProgress, error) {
	limit = clampLimit(limit, defaultReviewLimit, maxPageSize)
	rows, err := s.vocabRepo.Random(ctx, nil, limit)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return s.annotateAll(ctx, rows, userID)
}

func (s *vocabularyService) annotateAll(ctx context.Context, rows []*types.Vocabulary, userID uuid.UUID) ([]types.VocabularyWithProgress, error) {
	out := make([]types.VocabularyWithProgress, 0, len(rows))
	if userID == uuid.Nil {
		for _, v := range rows {
			out = append(out, types.VocabularyWithProgress{Vocabulary: *v})
		}
		return out, nil
	}

	ids := make([]uuid.UUID, 0, len(rows))
	for _, v := range rows {
		ids = append(ids, v.ID)
	}
	progRows, err := s.vocabProgRepo.GetByUserAndVocabIDs(ctx, nil, userID, ids)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	byVocab := make(map[uuid.UUID]*types.VocabProgress, len(progRows))
	for _, row := range progRows {
		byVocab[row.VocabularyID] = row
	}
	for _, v := range rows {
		out = append(out, annotatedVocabulary(*v, byVocab[v.ID]))
	}
	return out, nil
}

func (s *vocabularyService) Create(ctx context.Context, input CreateVocabularyInput) (*types.Vocabulary, error) {
	word := normalization.ParseInputString(input.Word)
	if word == "" {
		return nil, apierr.MissingField("word")
	}
	if normalization.TrimInputString(input.Meaning) == "" {
		return nil, apierr.MissingField("meaning")
	}

	existing, err := s.vocabRepo.GetByWord(ctx, nil, word)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if existing != nil {
		return nil, apierr.Conflict(fmt.Errorf("word %q already exists", word))
	}

	difficulty := input.DifficultyLevel
	if difficulty <= 0 {
		difficulty = 1
	}

	now := time.Now().UTC()
	vocab := &types.Vocabulary{
		ID:              uuid.New(),
		Word:            word,
		Meaning:         normalization.TrimInputString(input.Meaning),
		Pronunciation:   normalization.TrimInputString(input.Pronunciation),
		Examples:        input.Examples,
		WordType:        normalization.ParseInputString(input.WordType),
		DifficultyLevel: difficulty,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := s.vocabRepo.Create(ctx, nil, vocab); err != nil {
		return nil, apierr.Internal(err)
	}
	s.log.Info("Created vocabulary", "vocabulary_id", vocab.ID.String())
	return vocab, nil
}

func (s *vocabularyService) Update(ctx context.Context, id uuid.UUID, input UpdateVocabularyInput) (*types.Vocabulary, error) {
	vocab, err := s.vocabRepo.GetByID(ctx, nil, id)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if vocab == nil {
		return nil, apierr.NotFound(errors.New("vocabulary not found"))
	}

	if input.Word != nil {
		word := normalization.ParseInputString(*input.Word)
		if word == "" {
			return nil, apierr.MissingField("word")
		}
		if word != vocab.Word {
			dup, err := s.vocabRepo.GetByWord(ctx, nil, word)
			if err != nil {
				return nil, apierr.Internal(err)
			}
			if dup != nil {
				return nil, apierr.Conflict(fmt.Errorf("word %q already exists", word))
			}
		}
		vocab.Word = word
	}
	if input.Meaning != nil {
		vocab.Meaning = normalization.TrimInputString(*input.Meaning)
	}
	if input.Pronunciation != nil {
		vocab.Pronunciation = normalization.TrimInputString(*input.Pronunciation)
	}
	if input.Examples != nil {
		vocab.Examples = input.Examples
	}
	if input.WordType != nil {
		vocab.WordType = normalization.ParseInputString(*input.WordType)
	}
	if input.DifficultyLevel != nil && *input.DifficultyLevel > 0 {
		vocab.DifficultyLevel = *input.DifficultyLevel
	}
	vocab.UpdatedAt = time.Now().UTC()

	if err := s.vocabRepo.Update(ctx, nil, vocab); err != nil {
		return nil, apierr.Internal(err)
	}
	return vocab, nil
}

func (s *vocabularyService) Delete(ctx context.Context, id uuid.UUID) error {
	vocab, err := s.vocabRepo.GetByID(ctx, nil, id)
	if err != nil {
		return apierr.Internal(err)
	}
	if vocab == nil {
		return apierr.NotFound(errors.New("vocabulary not found"))
	}
	if err := s.vocabRepo.Delete(ctx, nil, id); err != nil {
		return apierr.Internal(err)
	}
	s.log.Info("Deleted vocabulary", "vocabulary_id", id.String())
	return nil
}
