package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/importer"
	"github.com/wordnest/wordnest-backend/internal/normalization"
	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/repos"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type ImportResult struct {
	TotalRows int      `json:"total_rows"`
	Created   int      `json:"created"`
	Skipped   int      `json:"skipped"`
	Warnings  []string `json:"warnings,omitempty"`
}

// ImportService loads vocabulary in bulk from an admin-uploaded xlsx
// workbook. Existing words are skipped, never overwritten.
type ImportService interface {
	ImportVocabulary(ctx context.Context, file io.Reader) (*ImportResult, error)
}

type importService struct {
	db        *gorm.DB
	log       *logger.Logger
	vocabRepo repos.VocabularyRepo
}

func NewImportService(db *gorm.DB, log *logger.Logger, vocabRepo repos.VocabularyRepo) ImportService {
	return &importService{
		db:        db,
		log:       log.With("service", "ImportService"),
		vocabRepo: vocabRepo,
	}
}

func (s *importService) ImportVocabulary(ctx context.Context, file io.Reader) (*ImportResult, error) {
	rows, warnings, err := importer.ParseWorkbook(file)
	if err != nil {
		return nil, apierr.BadRequest(err)
	}

	result := &ImportResult{
		TotalRows: len(rows),
		Warnings:  warnings,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		seen := make(map[string]bool, len(rows))

		for _, row := range rows {
			word := normalization.ParseInputString(row.Word)
			if seen[word] {
				result.Skipped++
				result.Warnings = append(result.Warnings, fmt.Sprintf("row %d: duplicate word %q in workbook", row.Line, word))
				continue
			}
			seen[word] = true

			existing, err := s.vocabRepo.GetByWord(ctx, tx, word)
			if err != nil {
				return err
			}
			if existing != nil {
				result.Skipped++
				continue
			}

			var examples datatypes.JSON
			if row.Example != "" {
				raw, err := json.Marshal([]string{row.Example})
				if err != nil {
					return err
				}
				examples = raw
			}

			vocab := &types.Vocabulary{
				ID:              uuid.New(),
				Word:            word,
				Meaning:         row.Meaning,
				Pronunciation:   row.Pronunciation,
				Examples:        examples,
				WordType:        normalization.ParseInputString(row.WordType),
				DifficultyLevel: row.DifficultyLevel,
				CreatedAt:       now,
				UpdatedAt:       now,
			}
			if err := s.vocabRepo.Create(ctx, tx, vocab); err != nil {
				return err
			}
			result.Created++
		}
		return nil
	})
	if err != nil {
		return nil, apierr.Internal(err)
	}

	s.log.Info("Imported vocabulary workbook",
		"total_rows", result.TotalRows,
		"created", result.Created,
		"skipped", result.Skipped,
	)
	return result, nil
}
