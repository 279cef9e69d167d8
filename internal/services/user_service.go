package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/strollapp/stroll-backend/internal/models"
	"github.com/strollapp/stroll-backend/internal/token"
	"gorm.io/gorm"
)

var usernamePattern = regexp.MustCompile(`^[a-z0-9_]+$`)

// UserService owns user identity, soft-delete state and the uniqueness
// invariants over username and (provider, provider_id) among active rows.
type UserService struct {
	db     *gorm.DB
	tokens *token.Service
	now    func() time.Time
}

func NewUserService(db *gorm.DB, tokens *token.Service) *UserService {
	return &UserService{db: db, tokens: tokens, now: time.Now}
}

type CreateUserInput struct {
	Provider         string
	ProviderID       string
	Username         *string
	Nickname         string
	ProfileImageCode *int
}

// Authenticate verifies the raw token, loads the referenced active user and
// requires the embedded token version to match the stored counter. Every
// failure mode collapses into ErrUnauthenticated.
func (s *UserService) Authenticate(ctx context.Context, raw string) (*models.User, error) {
	claims, err := s.tokens.Verify(raw)
	if err != nil {
		return nil, ErrUnauthenticated
	}
	return s.AuthenticateClaims(ctx, claims.UserID, claims.TokenVersion)
}

// AuthenticateClaims resolves already-verified token claims to an active
// user. Soft-deleted rows are invisible here, so a deleted account and a bad
// token are indistinguishable to the caller.
func (s *UserService) AuthenticateClaims(ctx context.Context, userID uint, tokenVersion int) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUnauthenticated
	}
	if user.TokenVersion != tokenVersion {
		return nil, ErrUnauthenticated
	}
	return &user, nil
}

// IssueToken mints an access token bound to the user's current token version.
func (s *UserService) IssueToken(user *models.User) (string, error) {
	return s.tokens.Issue(user.ID, user.TokenVersion)
}

// FindByID looks up an active user by id. Returns (nil, nil) when no active
// user matches.
func (s *UserService) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

// FindBySocialIdentity looks up an active user by provider identity.
// Returns (nil, nil) when no active user matches.
func (s *UserService) FindBySocialIdentity(ctx context.Context, provider, providerID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("provider = ? AND provider_id = ?", provider, providerID).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up social identity: %w", err)
	}
	return &user, nil
}

// Create registers a new social user. Field violations come back as a
// *ValidationError; uniqueness clashes among active users come back as
// ErrUsernameTaken / ErrIdentityTaken. The partial unique indexes close the
// race between two concurrent signups with the same identity.
func (s *UserService) Create(ctx context.Context, input CreateUserInput) (*models.User, error) {
	if err := validateCreateUser(input); err != nil {
		return nil, err
	}

	if input.Username != nil {
		taken, err := s.usernameTaken(ctx, *input.Username)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrUsernameTaken
		}
	}

	existing, err := s.FindBySocialIdentity(ctx, input.Provider, input.ProviderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrIdentityTaken
	}

	now := s.now()
	user := models.User{
		Provider:         input.Provider,
		ProviderID:       input.ProviderID,
		Username:         input.Username,
		Nickname:         input.Nickname,
		ProfileImageCode: input.ProfileImageCode,
		TokenVersion:     1,
		LastLoginAt:      &now,
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if strings.Contains(err.Error(), "username") {
				return nil, ErrUsernameTaken
			}
			return nil, ErrIdentityTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// UsernameAvailable reports whether username is free among active users.
func (s *UserService) UsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := s.usernameTaken(ctx, username)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

// TouchLastLogin records a successful login.
func (s *UserService) TouchLastLogin(ctx context.Context, user *models.User) error {
	now := s.now()
	if err := s.db.WithContext(ctx).Model(user).Update("last_login_at", now).Error; err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}
	user.LastLoginAt = &now
	return nil
}

// SoftDelete marks the account deleted. The row persists, drops out of all
// active lookups, and its username and provider identity become reusable.
// There is no reactivation path.
func (s *UserService) SoftDelete(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Delete(user).Error; err != nil {
		return fmt.Errorf("failed to soft delete user: %w", err)
	}
	return nil
}

// IncrementTokenVersion bumps the user's token version in a single atomic
// update, invalidating every previously issued token. Concurrent logouts
// cannot lose an increment.
func (s *UserService) IncrementTokenVersion(ctx context.Context, user *models.User) error {
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", user.ID).
		UpdateColumn("token_version", gorm.Expr("token_version + 1")).Error
	if err != nil {
		return fmt.Errorf("failed to increment token version: %w", err)
	}
	user.TokenVersion++
	return nil
}

func (s *UserService) usernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return count > 0, nil
}

func validateCreateUser(input CreateUserInput) error {
	ve := newValidationError()

	if !models.ValidProvider(input.Provider) {
		ve.add("provider", "must be one of kakao, google, apple")
	}
	if input.ProviderID == "" {
		ve.add("provider_id", "is required")
	}
	if input.Nickname == "" {
		ve.add("nickname", "is required")
	}
	if input.Username != nil {
		name := *input.Username
		if len(name) < 3 || len(name) > 20 {
			ve.add("username", "must be 3~20 characters")
		} else if !usernamePattern.MatchString(name) {
			ve.add("username", "can only contain lowercase letters, numbers, and underscore")
		}
	}
	if input.ProfileImageCode != nil {
		if code := *input.ProfileImageCode; code < 0 || code > 4 {
			ve.add("profile_image_code", "must be between 0 and 4")
		}
	}

	if ve.empty() {
		return nil
	}
	return ve
}
