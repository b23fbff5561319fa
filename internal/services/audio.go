package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/repos"
)

var allowedAudioExts = map[string]bool{
	".mp3": true,
	".wav": true,
	".ogg": true,
	".m4a": true,
}

// AudioService uploads pronunciation audio to the bucket and stamps the
// vocabulary row with the resulting public URL.
type AudioService interface {
	UploadVocabularyAudio(ctx context.Context, vocabularyID uuid.UUID, filename string, file io.Reader) (string, error)
}

type audioService struct {
	db        *gorm.DB
	log       *logger.Logger
	bucket    BucketService
	vocabRepo repos.VocabularyRepo
}

func NewAudioService(db *gorm.DB, log *logger.Logger, bucket BucketService, vocabRepo repos.VocabularyRepo) AudioService {
	return &audioService{
		db:        db,
		log:       log.With("service", "AudioService"),
		bucket:    bucket,
		vocabRepo: vocabRepo,
	}
}

func (s *audioService) UploadVocabularyAudio(ctx context.Context, vocabularyID uuid.UUID, filename string, file io.Reader) (string, error) {
	if s.bucket == nil {
		return "", apierr.Internal(errors.New("audio storage not configured"))
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedAudioExts[ext] {
		return "", apierr.BadRequest(fmt.Errorf("unsupported audio format %q", ext))
	}

	vocab, err := s.vocabRepo.GetByID(ctx, nil, vocabularyID)
	if err != nil {
		return "", apierr.Internal(err)
	}
	if vocab == nil {
		return "", apierr.NotFound(errors.New("vocabulary not found"))
	}

	key := fmt.Sprintf("audio/vocabulary/%s/%s%s", vocabularyID, uuid.New(), ext)
	if err := s.bucket.UploadFile(ctx, key, file); err != nil {
		return "", apierr.Internal(err)
	}

	url := s.bucket.GetPublicURL(key)
	if err := s.vocabRepo.SetAudio(ctx, nil, vocabularyID, key, url); err != nil {
		// The row still points at the old audio; the orphaned object is
		// cleaned up best-effort.
		if delErr := s.bucket.DeleteFile(ctx, key); delErr != nil {
			s.log.Warn("Failed to clean up orphaned audio object", "key", key, "error", delErr.Error())
		}
		return "", apierr.Internal(err)
	}

	// Old audio object is replaced, not kept.
	if vocab.AudioKey != "" && vocab.AudioKey != key {
		if err := s.bucket.DeleteFile(ctx, vocab.AudioKey); err != nil {
			s.log.Warn("Failed to delete previous audio object", "key", vocab.AudioKey, "error", err.Error())
		}
	}

	s.log.Info("Uploaded vocabulary audio", "vocabulary_id", vocabularyID.String())
	return url, nil
}
