package models

import "time"

const (
	WalkStatusActive  = "active"
	WalkStatusDeleted = "deleted"
)

// Walk is a logged walking session. Deletion is a soft delete: the status
// flips to "deleted" and deleted_at is set; rows are never removed.
// PhotoKey holds only the object storage key, never a permanent URL.
type Walk struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	UserID          uint       `gorm:"not null;index" json:"-"`
	User            User       `json:"-"`
	StartedAt       time.Time  `gorm:"not null;index" json:"started_at"`
	EndedAt         time.Time  `gorm:"not null" json:"ended_at"`
	DurationSeconds int        `gorm:"not null" json:"duration_seconds"`
	DistanceMeters  *int       `json:"distance_meters"`
	StepCount       *int       `json:"step_count"`
	PhotoKey        *string    `gorm:"size:255" json:"-"`
	Status          string     `gorm:"size:10;not null;default:'active'" json:"-"`
	DeletedAt       *time.Time `json:"-"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// Date is the calendar day of the walk, taken from its start time.
func (w *Walk) Date() string {
	return w.StartedAt.UTC().Format("2006-01-02")
}
