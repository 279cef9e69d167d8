package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	ProviderKakao  = "kakao"
	ProviderGoogle = "google"
	ProviderApple  = "apple"
)

// User is a social-login account. Uniqueness of username and of
// (provider, provider_id) is enforced by partial unique indexes scoped to
// rows where deleted_at is null, so a soft-deleted account frees its
// identity for re-registration.
type User struct {
	ID               uint    `gorm:"primaryKey" json:"id"`
	Provider         string  `gorm:"size:20;not null;uniqueIndex:idx_users_identity_active,where:deleted_at IS NULL" json:"provider"`
	ProviderID       string  `gorm:"size:255;not null;uniqueIndex:idx_users_identity_active,where:deleted_at IS NULL" json:"-"`
	Username         *string `gorm:"size:20;uniqueIndex:idx_users_username_active,where:deleted_at IS NULL" json:"username"`
	Nickname         string  `gorm:"size:50;not null" json:"nickname"`
	ProfileImageCode *int    `json:"profile_image_code"`

	// TokenVersion starts at 1 and only ever increases. A token is valid
	// only while its embedded version matches this counter.
	TokenVersion int `gorm:"not null;default:1" json:"-"`

	IsSubscribed          bool       `gorm:"not null;default:false" json:"-"`
	IsTrial               bool       `gorm:"not null;default:false" json:"-"`
	HasUsedTrial          bool       `gorm:"not null;default:false" json:"-"`
	HasEverSubscribed     bool       `gorm:"not null;default:false" json:"-"`
	SubscribedAt          *time.Time `json:"-"`
	SubscriptionExpiresAt *time.Time `json:"-"`
	TrialStartedAt        *time.Time `json:"-"`
	TrialExpiresAt        *time.Time `json:"-"`

	LastLoginAt *time.Time     `json:"-"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// ValidProvider reports whether p is a supported social login provider.
func ValidProvider(p string) bool {
	switch p {
	case ProviderKakao, ProviderGoogle, ProviderApple:
		return true
	}
	return false
}
