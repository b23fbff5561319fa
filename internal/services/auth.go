package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/wordnest/wordnest-backend/internal/normalization"
	"github.com/wordnest/wordnest-backend/internal/platform/apierr"
	"github.com/wordnest/wordnest-backend/internal/platform/envutil"
	"github.com/wordnest/wordnest-backend/internal/platform/logger"
	"github.com/wordnest/wordnest-backend/internal/repos"
	"github.com/wordnest/wordnest-backend/internal/types"
	"github.com/wordnest/wordnest-backend/internal/utils"
)

const minPasswordLength = 6

type AuthService interface {
	Register(ctx context.Context, email, password, displayName string) (*types.User, error)
	Login(ctx context.Context, email, password string) (string, *types.UserSummary, error)
	// Authenticate validates a bearer token and returns the subject's
	// user id and role.
	Authenticate(ctx context.Context, tokenString string) (uuid.UUID, string, error)
}

type authService struct {
	db        *gorm.DB
	log       *logger.Logger
	userRepo  repos.UserRepo
	jwtSecret []byte
	accessTTL time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) (AuthService, error) {
	secret := utils.GetEnv("JWT_SECRET", "", log)
	if secret == "" {
		return nil, fmt.Errorf("missing env var JWT_SECRET")
	}
	return &authService{
		db:        db,
		log:       log.With("service", "AuthService"),
		userRepo:  userRepo,
		jwtSecret: []byte(secret),
		accessTTL: envutil.Duration("ACCESS_TOKEN_TTL", 4*time.Hour),
	}, nil
}

// accessClaims carries the role alongside the registered subject so the
// admin middleware does not need a user lookup per request.
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *authService) Register(ctx context.Context, email, password, displayName string) (*types.User, error) {
	email = normalization.ParseInputString(email)
	if !utils.ValidEmail(email) {
		return nil, apierr.BadRequest(errors.New("invalid email address"))
	}
	if len(password) < minPasswordLength {
		return nil, apierr.BadRequest(fmt.Errorf("password must be at least %d characters", minPasswordLength))
	}

	exists, err := s.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if exists {
		return nil, apierr.Conflict(errors.New("email already registered"))
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	now := time.Now().UTC()
	user := &types.User{
		ID:          uuid.New(),
		Email:       email,
		Password:    hash,
		DisplayName: normalization.TrimInputString(displayName),
		Role:        types.RoleStudent,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.userRepo.Create(ctx, nil, user); err != nil {
		return nil, apierr.Internal(err)
	}

	s.log.Info("Registered user", "user_id", user.ID.String())
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (string, *types.UserSummary, error) {
	email = normalization.ParseInputString(email)

	user, err := s.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		return "", nil, apierr.Internal(err)
	}
	// Unknown email and wrong password return the same error.
	if user == nil || !utils.CheckPassword(user.Password, password) {
		return "", nil, apierr.InvalidCredentials()
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, apierr.Internal(err)
	}

	summary := user.Summary()
	s.log.Info("User logged in", "user_id", user.ID.String())
	return token, &summary, nil
}

func (s *authService) issueToken(user *types.User) (string, error) {
	now := time.Now().UTC()
	claims := accessClaims{
		Role: user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (uuid.UUID, string, error) {
	if tokenString == "" {
		return uuid.Nil, "", apierr.Unauthorized(errors.New("missing token"))
	}

	claims := &accessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, "", apierr.Unauthorized(errors.New("invalid or expired token"))
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, "", apierr.Unauthorized(errors.New("invalid token subject"))
	}

	role := claims.Role
	if role == "" {
		role = types.RoleStudent
	}
	return userID, role, nil
}
