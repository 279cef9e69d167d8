package services

import (
	"context"
	"fmt"

	"github.com/strollapp/stroll-backend/internal/models"
	"gorm.io/gorm"
)

// FeedbackService records free-text user feedback. Append-only.
type FeedbackService struct {
	db *gorm.DB
}

func NewFeedbackService(db *gorm.DB) *FeedbackService {
	return &FeedbackService{db: db}
}

type CreateFeedbackInput struct {
	Content    string
	DeviceType string
	AppVersion string
}

func (s *FeedbackService) Create(ctx context.Context, user *models.User, input CreateFeedbackInput) (*models.Feedback, error) {
	if input.DeviceType == "" {
		input.DeviceType = models.DeviceTypeIOS
	}
	if input.AppVersion == "" {
		input.AppVersion = "1.0.0"
	}

	ve := newValidationError()
	if input.Content == "" {
		ve.add("content", "is required")
	}
	if !models.ValidDeviceType(input.DeviceType) {
		ve.add("device_type", "must be one of ios, android, web")
	}
	if !ve.empty() {
		return nil, ve
	}

	feedback := models.Feedback{
		UserID:     user.ID,
		Content:    input.Content,
		DeviceType: input.DeviceType,
		AppVersion: input.AppVersion,
	}

	if err := s.db.WithContext(ctx).Create(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	return &feedback, nil
}

// ListAll returns every feedback row with its author, newest first. The
// author may be a soft-deleted user; feedback outlives the account.
func (s *FeedbackService) ListAll(ctx context.Context) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := s.db.WithContext(ctx).
		Preload("User", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedbacks, nil
}
