package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/strollapp/stroll-backend/internal/models"
	"gorm.io/gorm"
)

const (
	SubscriptionTypePaid  = "paid"
	SubscriptionTypeTrial = "trial"
	SubscriptionTypeNone  = "none"

	trialDuration = 7 * 24 * time.Hour
)

// SubscriptionService derives entitlement state from the subscription and
// trial windows stored on the user row. The clock is injectable so expiry
// logic is testable without wall-clock coupling.
type SubscriptionService struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSubscriptionService(db *gorm.DB) *SubscriptionService {
	return &SubscriptionService{db: db, now: time.Now}
}

// Status is the entitlement snapshot exposed to the client.
type Status struct {
	Type                  string
	IsSubscribed          bool
	IsTrial               bool
	IsExpired             bool
	HasUsedTrial          bool
	HasEverSubscribed     bool
	SubscriptionExpiresAt *time.Time
	TrialExpiresAt        *time.Time
	DaysLeft              int
}

// IsExpired reports whether the user holds no live entitlement. Both flags
// may be set at once; each window is checked independently and the user is
// expired only when every active flag's window has lapsed. A flag with no
// expiry timestamp counts as live indefinitely.
func (s *SubscriptionService) IsExpired(user *models.User) bool {
	if !user.IsSubscribed && !user.IsTrial {
		return true
	}
	now := s.now()
	if user.IsSubscribed && windowLive(user.SubscriptionExpiresAt, now) {
		return false
	}
	if user.IsTrial && windowLive(user.TrialExpiresAt, now) {
		return false
	}
	return true
}

// Type reports paid, trial or none. Paid wins when both flags are live.
func (s *SubscriptionService) Type(user *models.User) string {
	if user.IsSubscribed && !s.IsExpired(user) {
		return SubscriptionTypePaid
	}
	if user.IsTrial && !s.IsExpired(user) {
		return SubscriptionTypeTrial
	}
	return SubscriptionTypeNone
}

// DaysLeft is 0 when the user is expired; otherwise the remaining whole
// days of the relevant window, rounded up and clamped at 0. The subscription
// window is relevant while is_subscribed is set, the trial window otherwise,
// so a lapsed paid window alongside a live trial still reads 0.
func (s *SubscriptionService) DaysLeft(user *models.User) int {
	if s.IsExpired(user) {
		return 0
	}

	expiresAt := user.TrialExpiresAt
	if user.IsSubscribed {
		expiresAt = user.SubscriptionExpiresAt
	}
	if expiresAt == nil {
		return 0
	}

	days := int(math.Ceil(expiresAt.Sub(s.now()).Hours() / 24))
	if days < 0 {
		return 0
	}
	return days
}

// StartTrial opens the one-and-only 7-day trial window. has_used_trial is
// irreversible: once set, every later call is rejected even after the
// window has lapsed.
func (s *SubscriptionService) StartTrial(ctx context.Context, user *models.User) error {
	if user.HasUsedTrial {
		return ErrTrialAlreadyUsed
	}
	if user.IsTrial && !s.IsExpired(user) {
		return ErrTrialActive
	}

	now := s.now()
	expiresAt := now.Add(trialDuration)

	err := s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"is_trial":         true,
		"trial_started_at": now,
		"trial_expires_at": expiresAt,
		"has_used_trial":   true,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to start trial: %w", err)
	}

	user.IsTrial = true
	user.TrialStartedAt = &now
	user.TrialExpiresAt = &expiresAt
	user.HasUsedTrial = true
	return nil
}

// Activate opens or extends the paid window. has_ever_subscribed is sticky:
// once true it is never reset. Extending a still-live subscription keeps the
// original subscribed_at.
func (s *SubscriptionService) Activate(ctx context.Context, user *models.User, expiresAt time.Time) error {
	now := s.now()

	subscribedAt := now
	if user.IsSubscribed && windowLive(user.SubscriptionExpiresAt, now) && user.SubscribedAt != nil {
		subscribedAt = *user.SubscribedAt
	}

	err := s.db.WithContext(ctx).Model(user).Updates(map[string]interface{}{
		"is_subscribed":           true,
		"subscribed_at":           subscribedAt,
		"subscription_expires_at": expiresAt,
		"has_ever_subscribed":     true,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to activate subscription: %w", err)
	}

	user.IsSubscribed = true
	user.SubscribedAt = &subscribedAt
	user.SubscriptionExpiresAt = &expiresAt
	user.HasEverSubscribed = true
	return nil
}

// Cancel clears the subscribed flag but preserves subscription_expires_at,
// so the remaining window stays inspectable even though Type no longer
// reports it as paid.
func (s *SubscriptionService) Cancel(ctx context.Context, user *models.User) error {
	if !user.IsSubscribed {
		return ErrNotSubscribed
	}

	if err := s.db.WithContext(ctx).Model(user).Update("is_subscribed", false).Error; err != nil {
		return fmt.Errorf("failed to cancel subscription: %w", err)
	}

	user.IsSubscribed = false
	return nil
}

// StatusOf assembles the full entitlement snapshot for a user.
func (s *SubscriptionService) StatusOf(user *models.User) Status {
	return Status{
		Type:                  s.Type(user),
		IsSubscribed:          user.IsSubscribed,
		IsTrial:               user.IsTrial,
		IsExpired:             s.IsExpired(user),
		HasUsedTrial:          user.HasUsedTrial,
		HasEverSubscribed:     user.HasEverSubscribed,
		SubscriptionExpiresAt: user.SubscriptionExpiresAt,
		TrialExpiresAt:        user.TrialExpiresAt,
		DaysLeft:              s.DaysLeft(user),
	}
}

func windowLive(expiresAt *time.Time, now time.Time) bool {
	return expiresAt == nil || expiresAt.After(now)
}
