package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/strollapp/stroll-backend/internal/models"
	"gorm.io/gorm"
)

const (
	defaultWalksPerPage = 20
	maxWalksPerPage     = 100

	// A single walk of at least ten minutes marks the day.
	walk10MinSeconds = 600
	// The daily goal is thirty minutes of total walking.
	dailyGoalSeconds = 1800
)

// WalkService owns walk records: validated creation, owner-scoped reads and
// soft deletion. Walks are never hard-deleted.
type WalkService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewWalkService(db *gorm.DB) *WalkService {
	return &WalkService{db: db, now: time.Now}
}

type CreateWalkInput struct {
	StartedAt       time.Time
	EndedAt         time.Time
	DurationSeconds int
	DistanceMeters  *int
	StepCount       *int
	PhotoKey        *string
}

func (s *WalkService) Create(ctx context.Context, user *models.User, input CreateWalkInput) (*models.Walk, error) {
	if err := validateCreateWalk(input); err != nil {
		return nil, err
	}

	walk := models.Walk{
		UserID:          user.ID,
		StartedAt:       input.StartedAt,
		EndedAt:         input.EndedAt,
		DurationSeconds: input.DurationSeconds,
		DistanceMeters:  input.DistanceMeters,
		StepCount:       input.StepCount,
		PhotoKey:        input.PhotoKey,
		Status:          models.WalkStatusActive,
	}

	if err := s.db.WithContext(ctx).Create(&walk).Error; err != nil {
		return nil, fmt.Errorf("failed to create walk: %w", err)
	}

	return &walk, nil
}

// List returns the user's active walks, newest first, with the total count.
// page is clamped to ≥1, perPage to 1~100 (default 20).
func (s *WalkService) List(ctx context.Context, user *models.User, page, perPage int) ([]models.Walk, int64, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = defaultWalksPerPage
	}
	if perPage > maxWalksPerPage {
		perPage = maxWalksPerPage
	}

	scope := s.db.WithContext(ctx).Model(&models.Walk{}).
		Where("user_id = ? AND status = ?", user.ID, models.WalkStatusActive)

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count walks: %w", err)
	}

	var walks []models.Walk
	err := scope.
		Order("started_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&walks).Error
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list walks: %w", err)
	}

	return walks, total, nil
}

// Get returns one of the user's active walks or ErrWalkNotFound.
func (s *WalkService) Get(ctx context.Context, user *models.User, id uint) (*models.Walk, error) {
	var walk models.Walk
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND status = ?", id, user.ID, models.WalkStatusActive).
		First(&walk).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWalkNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load walk: %w", err)
	}
	return &walk, nil
}

// DailySummary aggregates one calendar day of a user's active walks.
type DailySummary struct {
	Date                 string
	WalkCount            int
	TotalDurationSeconds int
	TotalDistanceMeters  int
	TotalStepCount       int
	GoalAchieved         bool
	HasWalk10Min         bool
}

// DailySummary returns the aggregate for one calendar day (UTC). A day with
// no walks yields a zeroed summary rather than an error.
func (s *WalkService) DailySummary(ctx context.Context, user *models.User, day time.Time) (*DailySummary, error) {
	start := day.UTC().Truncate(24 * time.Hour)
	walks, err := s.walksBetween(ctx, user, start, start.Add(24*time.Hour))
	if err != nil {
		return nil, err
	}

	summary := summarize(start.Format("2006-01-02"), walks)
	return &summary, nil
}

// DailySummaries groups the user's active walks by calendar day, newest day
// first. Zero from/to bounds mean unbounded on that side.
func (s *WalkService) DailySummaries(ctx context.Context, user *models.User, from, to time.Time) ([]DailySummary, error) {
	scope := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", user.ID, models.WalkStatusActive)
	if !from.IsZero() {
		scope = scope.Where("started_at >= ?", from.UTC().Truncate(24*time.Hour))
	}
	if !to.IsZero() {
		scope = scope.Where("started_at < ?", to.UTC().Truncate(24*time.Hour).Add(24*time.Hour))
	}

	var walks []models.Walk
	if err := scope.Order("started_at DESC").Find(&walks).Error; err != nil {
		return nil, fmt.Errorf("failed to load walks: %w", err)
	}

	var summaries []DailySummary
	byDate := make(map[string][]models.Walk)
	var order []string
	for i := range walks {
		date := walks[i].Date()
		if _, seen := byDate[date]; !seen {
			order = append(order, date)
		}
		byDate[date] = append(byDate[date], walks[i])
	}
	for _, date := range order {
		summaries = append(summaries, summarize(date, byDate[date]))
	}
	return summaries, nil
}

func (s *WalkService) walksBetween(ctx context.Context, user *models.User, start, end time.Time) ([]models.Walk, error) {
	var walks []models.Walk
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND started_at >= ? AND started_at < ?",
			user.ID, models.WalkStatusActive, start, end).
		Find(&walks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load walks: %w", err)
	}
	return walks, nil
}

func summarize(date string, walks []models.Walk) DailySummary {
	summary := DailySummary{Date: date, WalkCount: len(walks)}
	for i := range walks {
		w := &walks[i]
		summary.TotalDurationSeconds += w.DurationSeconds
		if w.DistanceMeters != nil {
			summary.TotalDistanceMeters += *w.DistanceMeters
		}
		if w.StepCount != nil {
			summary.TotalStepCount += *w.StepCount
		}
		if w.DurationSeconds >= walk10MinSeconds {
			summary.HasWalk10Min = true
		}
	}
	summary.GoalAchieved = summary.TotalDurationSeconds >= dailyGoalSeconds
	return summary
}

// SoftDelete flips the walk to deleted status and stamps deleted_at.
func (s *WalkService) SoftDelete(ctx context.Context, user *models.User, id uint) error {
	walk, err := s.Get(ctx, user, id)
	if err != nil {
		return err
	}

	now := s.now()
	err = s.db.WithContext(ctx).Model(walk).Updates(map[string]interface{}{
		"status":     models.WalkStatusDeleted,
		"deleted_at": now,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to delete walk: %w", err)
	}
	return nil
}

func validateCreateWalk(input CreateWalkInput) error {
	ve := newValidationError()

	if input.StartedAt.IsZero() {
		ve.add("started_at", "is required")
	}
	if input.EndedAt.IsZero() {
		ve.add("ended_at", "is required")
	}
	if !input.StartedAt.IsZero() && !input.EndedAt.IsZero() && !input.EndedAt.After(input.StartedAt) {
		ve.add("ended_at", "must be after started_at")
	}
	if input.DurationSeconds <= 0 {
		ve.add("duration_seconds", "must be greater than 0")
	}
	if input.DistanceMeters != nil && *input.DistanceMeters < 0 {
		ve.add("distance_meters", "must be greater than or equal to 0")
	}
	if input.StepCount != nil && *input.StepCount < 0 {
		ve.add("step_count", "must be greater than or equal to 0")
	}

	if ve.empty() {
		return nil
	}
	return ve
}
