package models

import "time"

// ShareCard is a saved, shareable summary card for one walk. The metric
// fields are snapshots copied at creation time, so later edits or deletion
// of the walk do not change an already shared card. ImageKey follows the
// same rule as walk photos: only the object storage key is persisted.
type ShareCard struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index:idx_share_cards_user_date" json:"-"`
	User            User      `json:"-"`
	WalkID          uint      `gorm:"not null;index" json:"walk_id"`
	Walk            Walk      `json:"-"`
	CardDate        time.Time `gorm:"not null;index:idx_share_cards_user_date" json:"card_date"`
	FrameThemeKey   string    `gorm:"size:50" json:"frame_theme_key"`
	ImageKey        *string   `gorm:"size:255" json:"-"`
	DistanceMeters  *int      `json:"distance_meters"`
	StepCount       *int      `json:"step_count"`
	DurationSeconds *int      `json:"duration_seconds"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Date is the calendar day printed on the card.
func (c *ShareCard) Date() string {
	return c.CardDate.UTC().Format("2006-01-02")
}
