package user

import (
	"context"
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/todotracker/backend/pkg/config"
	"github.com/todotracker/backend/pkg/security/auth"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

const minPasswordLength = 8

// RegisterInput carries the fields for a new account.
type RegisterInput struct {
	Email       string
	Password    string
	DisplayName string
	IPAddress   string
}

// Service defines the interface for user business operations
type Service interface {
	Register(ctx context.Context, input RegisterInput) (*User, error)
	Authenticate(ctx context.Context, email, password, ipAddress string) (*User, string, error)
	Logout(ctx context.Context, userID uuid.UUID, token string) error
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)

	GetPreferences(ctx context.Context, userID uuid.UUID) (*UserPreferences, error)
	UpdatePreferences(ctx context.Context, userID uuid.UUID, settings json.RawMessage) (*UserPreferences, error)
	ListActivity(ctx context.Context, userID uuid.UUID, limit int) ([]UserActivityLog, error)
}

type userService struct {
	repo UserRepository
	cfg  *config.Config
	log  *zap.Logger
}

func NewService(repo UserRepository, cfg *config.Config, log *zap.Logger) Service {
	return &userService{
		repo: repo,
		cfg:  cfg,
		log:  log,
	}
}

func (s *userService) Register(ctx context.Context, input RegisterInput) (*User, error) {
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return nil, fmt.Errorf("%w: invalid email address", ErrInvalidInput)
	}
	if len(input.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrInvalidInput, minPasswordLength)
	}

	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return nil, ErrEmailTaken
	} else if err != ErrUserNotFound {
		return nil, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &User{
		ID:           uuid.New(),
		Email:        input.Email,
		PasswordHash: hash,
		DisplayName:  input.DisplayName,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		s.log.Error("Failed to create user", zap.Error(err))
		return nil, err
	}

	// Every account starts with an empty preferences document.
	prefs := &UserPreferences{
		UserID:   user.ID,
		Settings: datatypes.JSON([]byte(`{}`)),
	}
	if err := s.repo.SavePreferences(ctx, prefs); err != nil {
		s.log.Error("Failed to create default preferences",
			zap.String("user_id", user.ID.String()),
			zap.Error(err))
	}

	s.recordActivity(ctx, user.ID, "registered", input.IPAddress)

	s.log.Info("User registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

func (s *userService) Authenticate(ctx context.Context, email, password, ipAddress string) (*User, string, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if err == ErrUserNotFound {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		s.recordActivity(ctx, user.ID, "login_failed", ipAddress)
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(
		user.ID,
		user.Email,
		s.cfg.Auth.JWTSecret,
		s.cfg.Auth.JWTIssuer,
		s.cfg.Auth.JWTExpiryHours,
	)
	if err != nil {
		return nil, "", err
	}

	s.recordActivity(ctx, user.ID, "login", ipAddress)
	return user, token, nil
}

// Logout blacklists the presented token until its natural expiry.
func (s *userService) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	// The token carries its own exp claim; a token issued earlier
	// expires earlier than now plus the configured lifetime.
	expiry := time.Now().Add(time.Duration(s.cfg.Auth.JWTExpiryHours) * time.Hour)
	if claims, err := auth.ValidateToken(token, s.cfg.Auth.JWTSecret); err == nil && claims.ExpiresAt != nil {
		expiry = claims.ExpiresAt.Time
	}
	auth.GetTokenBlacklist().AddToBlacklist(token, expiry)
	s.recordActivity(ctx, userID, "logout", "")
	return nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) GetPreferences(ctx context.Context, userID uuid.UUID) (*UserPreferences, error) {
	prefs, err := s.repo.FindPreferences(ctx, userID)
	if err == ErrUserNotFound {
		return &UserPreferences{
			UserID:   userID,
			Settings: datatypes.JSON([]byte(`{}`)),
		}, nil
	}
	return prefs, err
}

func (s *userService) UpdatePreferences(ctx context.Context, userID uuid.UUID, settings json.RawMessage) (*UserPreferences, error) {
	if !json.Valid(settings) {
		return nil, fmt.Errorf("%w: settings must be a JSON document", ErrInvalidInput)
	}

	prefs := &UserPreferences{
		UserID:    userID,
		Settings:  datatypes.JSON(settings),
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.repo.SavePreferences(ctx, prefs); err != nil {
		return nil, err
	}
	return prefs, nil
}

func (s *userService) ListActivity(ctx context.Context, userID uuid.UUID, limit int) ([]UserActivityLog, error) {
	return s.repo.FindActivity(ctx, userID, limit)
}

func (s *userService) recordActivity(ctx context.Context, userID uuid.UUID, action, ip string) {
	entry := &UserActivityLog{
		UserID:    userID,
		Action:    action,
		IPAddress: ip,
	}
	if err := s.repo.RecordActivity(ctx, entry); err != nil {
		s.log.Error("Failed to record user activity",
			zap.String("user_id", userID.String()),
			zap.String("action", action),
			zap.Error(err))
	}
}
