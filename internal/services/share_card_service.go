package services

import (
	"context"
	"fmt"
	"time"

	"github.com/strollapp/stroll-backend/internal/models"
	"gorm.io/gorm"
)

// ShareCardService stores shareable walk summary cards. Cards snapshot the
// walk's metrics at creation time; deleting the walk afterwards leaves the
// card intact.
type ShareCardService struct {
	db    *gorm.DB
	walks *WalkService
}

func NewShareCardService(db *gorm.DB, walks *WalkService) *ShareCardService {
	return &ShareCardService{db: db, walks: walks}
}

type CreateShareCardInput struct {
	WalkID          uint
	CardDate        time.Time
	FrameThemeKey   string
	ImageKey        *string
	DistanceMeters  *int
	StepCount       *int
	DurationSeconds *int
}

// Create validates ownership of the referenced walk and stores the card.
// Metric fields left nil are snapshotted from the walk itself.
func (s *ShareCardService) Create(ctx context.Context, user *models.User, input CreateShareCardInput) (*models.ShareCard, error) {
	ve := newValidationError()
	if input.WalkID == 0 {
		ve.add("walk_id", "is required")
	}
	if input.CardDate.IsZero() {
		ve.add("card_date", "is required")
	}
	if !ve.empty() {
		return nil, ve
	}

	walk, err := s.walks.Get(ctx, user, input.WalkID)
	if err != nil {
		return nil, err
	}

	if input.DistanceMeters == nil {
		input.DistanceMeters = walk.DistanceMeters
	}
	if input.StepCount == nil {
		input.StepCount = walk.StepCount
	}
	if input.DurationSeconds == nil {
		duration := walk.DurationSeconds
		input.DurationSeconds = &duration
	}

	card := models.ShareCard{
		UserID:          user.ID,
		WalkID:          walk.ID,
		CardDate:        input.CardDate,
		FrameThemeKey:   input.FrameThemeKey,
		ImageKey:        input.ImageKey,
		DistanceMeters:  input.DistanceMeters,
		StepCount:       input.StepCount,
		DurationSeconds: input.DurationSeconds,
	}

	if err := s.db.WithContext(ctx).Create(&card).Error; err != nil {
		return nil, fmt.Errorf("failed to create share card: %w", err)
	}

	return &card, nil
}

// List returns the user's cards, optionally restricted to one card date.
// Newest card date first, then newest created.
func (s *ShareCardService) List(ctx context.Context, user *models.User, date *time.Time) ([]models.ShareCard, error) {
	scope := s.db.WithContext(ctx).Where("user_id = ?", user.ID)
	if date != nil {
		scope = scope.Where("card_date = ?", *date)
	}

	var cards []models.ShareCard
	err := scope.Order("card_date DESC, created_at DESC").Find(&cards).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list share cards: %w", err)
	}
	return cards, nil
}
