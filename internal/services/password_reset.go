package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/normalization"
	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/platform/envutil"
	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/platform/sendgrid"
	"github.com/wordnest/wordnest-backend/internal/repos"
	"github.com/wordnest/wordnest-backend/internal/types"
	"github.com/wordnest/wordnest-backend/internal/utils"
)

type PasswordResetService interface {
	// ForgotPassword never reveals whether the email has an account;
	// unknown addresses return the same nil as known ones.
	ForgotPassword(ctx context.Context, email string) error
	VerifyOTP(ctx context.Context, code string) error
	ResetPassword(ctx context.Context, code, newPassword string) error
	PurgeExpired(ctx context.Context) (int64, error)
}

type passwordResetService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  repos.UserRepo
	resetRepo repos.PasswordResetRepo
	mailer    sendgrid.Client
	ttl       time.Duration
}

// NewPasswordResetService accepts a nil mailer; codes are then only
// logged at debug level, which is how local development runs.
func NewPasswordResetService(
	db *gorm.DB,
	log *logger.Logger,
	userRepo repos.UserRepo,
	resetRepo repos.PasswordResetRepo,
	mailer sendgrid.Client,
) PasswordResetService {
	return &passwordResetService{
		db:        db,
		log:       log.With("service", "PasswordResetService"),
		userRepo:  userRepo,
		resetRepo: resetRepo,
		mailer:    mailer,
		ttl:       envutil.Duration("PASSWORD_RESET_TTL", 15*time.Minute),
	}
}

func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *passwordResetService) ForgotPassword(ctx context.Context, email string) error {
	email = normalization.ParseInputString(email)
	if !utils.ValidEmail(email) {
		return apierr.BadRequest(errors.New("invalid email address"))
	}

	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return apierr.Internal(err)
	}
	if user == nil {
		s.log.Debug("Forgot-password request for unknown email")
		return nil
	}

	code, err := generateOTP()
	if err != nil {
		return apierr.Internal(err)
	}

	now := time.Now().UTC()
	reset := &types.PasswordReset{
		ID:        uuid.New(),
		UserID:    user.ID,
		Kind:      types.ResetKindOTP,
		Code:      code,
		ExpiresAt: now.Add(s.ttl),
		CreatedAt: now,
	}
	if err := s.resetRepo.Upsert(ctx, nil, reset); err != nil {
		return apierr.Internal(err)
	}

	if s.mailer == nil {
		s.log.Debug("No mailer configured, skipping reset email", "user_id", user.ID.String())
		return nil
	}

	// Mail failures are logged, never surfaced: the caller's response is
	// identical either way.
	_, err = s.mailer.Send(ctx, sendgrid.SendEmailRequest{
		To:      []sendgrid.EmailAddress{{Email: user.Email, Name: user.DisplayName}},
		Subject: "Your password reset code",
		Text: fmt.Sprintf(
			"Your password reset code is %s. It expires in %d minutes. If you did not request this, you can ignore this email.",
			code, int(s.ttl.Minutes()),
		),
	})
	if err != nil {
		s.log.Error("Failed to send reset email", "user_id", user.ID.String(), "error", err.Error())
	}
	return nil
}

func (s *passwordResetService) VerifyOTP(ctx context.Context, code string) error {
	code = normalization.TrimInputString(code)
	if code == "" {
		return apierr.MissingField("otp")
	}

	reset, err := s.resetRepo.GetActiveByCode(ctx, nil, code, time.Now().UTC())
	if err != nil {
		return apierr.Internal(err)
	}
	if reset == nil {
		return apierr.InvalidOrExpiredToken()
	}
	return nil
}

func (s *passwordResetService) ResetPassword(ctx context.Context, code, newPassword string) error {
	code = normalization.TrimInputString(code)
	if code == "" {
		return apierr.MissingField("otp")
	}
	if len(newPassword) < minPasswordLength {
		return apierr.BadRequest(fmt.Errorf("password must be at least %d characters", minPasswordLength))
	}

	hash, err := utils.HashPassword(newPassword)
	if err != nil {
		return apierr.Internal(err)
	}

	// Validation, password write and code consumption commit together;
	// a failed write leaves the code usable.
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		reset, err := s.resetRepo.GetActiveByCode(ctx, tx, code, time.Now().UTC())
		if err != nil {
			return apierr.Internal(err)
		}
		if reset == nil {
			return apierr.InvalidOrExpiredToken()
		}
		if err := s.userRepo.UpdatePassword(ctx, tx, reset.UserID, hash); err != nil {
			return apierr.Internal(err)
		}
		if err := s.resetRepo.DeleteByUserID(ctx, tx, reset.UserID); err != nil {
			return apierr.Internal(err)
		}
		s.log.Info("Password reset completed", "user_id", reset.UserID.String())
		return nil
	})
	return err
}

func (s *passwordResetService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.resetRepo.DeleteExpired(ctx, nil, time.Now().UTC())
	if err != nil {
		return 0, apierr.Internal(err)
	}
	if n > 0 {
		s.log.Debug("Purged expired password resets", "count", n)
	}
	return n, nil
}
