package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/repos"
	"github.com/wordnest/wordnest-backend/internal/types"
)

// NotebookService is the learner's personal word list: everything they
// have marked memorized, most recently reviewed first.
type NotebookService interface {
	Words(ctx context.Context, userID uuid.UUID, limit int) ([]types.VocabularyWithProgress, error)
	Stats(ctx context.Context, userID uuid.UUID) (*types.NotebookStats, error)
}

type notebookService struct {
	db            *gorm.DB
	log           *logger.Logger
	vocabProgRepo repos.VocabProgressRepo
}

func NewNotebookService(db *gorm.DB, log *logger.Logger, vocabProgRepo repos.VocabProgressRepo) NotebookService {
	return &notebookService{
		db:            db,
		log:           log.With("service", "NotebookService"),
		vocabProgRepo: vocabProgRepo,
	}
}

func (s *notebookService) Words(ctx context.Context, userID uuid.UUID, limit int) ([]types.VocabularyWithProgress, error) {
	limit = clampLimit(limit, defaultPageSize, maxPageSize)

	rows, err := s.vocabProgRepo.ListMemorized(ctx, nil, userID, limit)
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

func (s *notebookService) Stats(ctx context.Context, userID uuid.UUID) (*types.NotebookStats, error) {
	started, memorized, totalReviews, err := s.vocabProgRepo.CountsByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return &types.NotebookStats{
		WordsStarted:   int(started),
		WordsMemorized: int(memorized),
		TotalReviews:   int(totalReviews),
	}, nil
}
