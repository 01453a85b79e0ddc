package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/edulearn-platform/learning-service/internal/auth"
	"github.com/edulearn-platform/learning-service/internal/events"
	"github.com/edulearn-platform/learning-service/internal/models"
	"github.com/edulearn-platform/learning-service/internal/repositories"
	"github.com/edulearn-platform/learning-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenService
	hasher    auth.PasswordHasher
	publisher events.EventPublisher
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(
	repo repositories.Repository,
	tokens *auth.TokenService,
	hasher auth.PasswordHasher,
	publisher events.EventPublisher,
	logger *slog.Logger,
	validator *validator.Validator,
) AuthService {
	return &authService{
		repo:      repo,
		tokens:    tokens,
		hasher:    hasher,
		publisher: publisher,
		logger:    logger,
		validator: validator,
	}
}

// Register creates a Student or Teacher account. Admin accounts can only
// come from out-of-band seeding, never public registration.
func (s *authService) Register(ctx context.Context, req *RegisterRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	role := models.RoleStudent
	if req.Role != "" {
		parsed, ok := models.ParseRole(req.Role)
		if !ok {
			return "", fmt.Errorf("%w: unknown role %q", ErrValidationFailed, req.Role)
		}
		if parsed == models.RoleAdmin {
			return "", ErrAdminRegistration
		}
		role = parsed
	}

	exists, err := s.repo.User().ExistsByEmail(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return "", ErrEmailExists
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.User().Create(ctx, user); err != nil {
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "role", user.Role)
	s.publish(ctx, events.NewEvent(events.TypeUserRegistered, map[string]string{
		"user_id": user.ID,
		"role":    string(user.Role),
	}))

	return user.ID, nil
}

// Login verifies credentials and issues a token. Unknown email and wrong
// password produce the same error so nothing leaks about which failed.
func (s *authService) Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.hasher.Compare(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &LoginResponse{Token: token, User: user.Public()}, nil
}

// UpdateProfile applies a partial update; omitted fields are untouched and
// an empty patch is a successful no-op.
func (s *authService) UpdateProfile(ctx context.Context, userID string, req *UpdateProfileRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return fmt.Errorf("%w: %s", ErrValidationFailed, err)
	}

	user, err := s.repo.User().GetByID(ctx, userID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to load user: %w", err)
	}

	changed := false
	if req.Name != nil && *req.Name != "" {
		user.Name = *req.Name
		changed = true
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}
		user.PasswordHash = hash
		changed = true
	}

	if !changed {
		return nil
	}
	if err := s.repo.User().Update(ctx, user); err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("profile updated", "user_id", userID)
	return nil
}

func (s *authService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Warn("failed to publish event", "type", event.Type, "error", err)
	}
}
