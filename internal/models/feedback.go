package models

import "time"

const (
	DeviceTypeIOS     = "ios"
	DeviceTypeAndroid = "android"
	DeviceTypeWeb     = "web"
)

// Feedback is free-text user feedback. Append-only.
type Feedback struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index" json:"-"`
	User       User      `json:"-"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	DeviceType string    `gorm:"size:10;not null" json:"device_type"`
	AppVersion string    `gorm:"size:20" json:"app_version"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ValidDeviceType reports whether d is a supported device type.
func ValidDeviceType(d string) bool {
	switch d {
	case DeviceTypeIOS, DeviceTypeAndroid, DeviceTypeWeb:
		return true
	}
	return false
}
