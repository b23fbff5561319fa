package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/normalization"
	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/repos"
	"github.com/wordnest/wordnest-backend/internal/types"
)

type ProfileService interface {
	// Get returns an empty, unsaved profile when the user has not filled
	// one in yet; the row is only written on the first update.
	Get(ctx context.Context, userID uuid.UUID) (*types.StudentProfile, error)
	Upsert(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*types.StudentProfile, error)
}

type UpdateProfileInput struct {
	FullName  *string
	BirthDate *time.Time
	Address   *string
	Bio       *string
	Metadata  datatypes.JSON
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.StudentProfileRepo
}

func NewProfileService(db *gorm.DB, log *logger.Logger, profileRepo repos.StudentProfileRepo) ProfileService {
	return &profileService{
		db:          db,
		log:         log.With("service", "ProfileService"),
		profileRepo: profileRepo,
	}
}

func (s *profileService) Get(ctx context.Context, userID uuid.UUID) (*types.StudentProfile, error) {
	profile, err := s.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if profile == nil {
		return &types.StudentProfile{UserID: userID}, nil
	}
	return profile, nil
}

func (s *profileService) Upsert(ctx context.Context, userID uuid.UUID, input UpdateProfileInput) (*types.StudentProfile, error) {
	existing, err := s.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	now := time.Now().UTC()
	profile := existing
	if profile == nil {
		profile = &types.StudentProfile{
			ID:        uuid.New(),
			UserID:    userID,
			CreatedAt: now,
		}
	}

	if input.FullName != nil {
		profile.FullName = normalization.TrimInputString(*input.FullName)
	}
	if input.BirthDate != nil {
		profile.BirthDate = input.BirthDate
	}
	if input.Address != nil {
		profile.Address = normalization.TrimInputString(*input.Address)
	}
	if input.Bio != nil {
		profile.Bio = normalization.TrimInputString(*input.Bio)
	}
	if input.Metadata != nil {
		profile.Metadata = input.Metadata
	}
	profile.UpdatedAt = now

	if err := s.profileRepo.Upsert(ctx, nil, profile); err != nil {
		return nil, apierr.Internal(err)
	}
	return profile, nil
}
