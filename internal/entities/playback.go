package entities

import (
	"time"
)

type Device struct {
	ID            string `gorm:"primaryKey;size:36" json:"id"`
	DeviceID      string `gorm:"uniqueIndex;size:100" json:"device_id"` // Client-generated identifier
	UserID        string `gorm:"index;size:36" json:"user_id"`
	ClientName    string `gorm:"size:100" json:"client_name,omitempty"`
	ClientVersion string `gorm:"size:50" json:"client_version,omitempty"`
	DeviceName    string `gorm:"size:256" json:"device_name,omitempty"`
	DeviceVersion string `gorm:"size:50" json:"device_version,omitempty"`
	IPAddress     string `gorm:"size:45" json:"ip_address,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PlaybackSession struct {
	ID            string        `gorm:"primaryKey;size:36" json:"id"`
	UserID        string        `gorm:"index;size:36" json:"user_id"`
	DeviceID      string        `gorm:"index;size:36" json:"device_id,omitempty"`
	LibraryItemID string        `gorm:"index;size:36" json:"library_item_id"`
	MediaItemID   string        `gorm:"index;size:36" json:"media_item_id"`
	MediaItemType MediaItemType `gorm:"size:20" json:"media_item_type"`
	DisplayTitle  string        `gorm:"size:512" json:"display_title,omitempty"`
	DisplayAuthor string        `gorm:"size:256" json:"display_author,omitempty"`
	PlayMethod    int           `json:"play_method"`
	Duration      float64       `json:"duration,omitempty"`
	CurrentTime   float64       `json:"current_time"`
	TimeListening float64       `json:"time_listening"`
	StartedAt     time.Time     `json:"started_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MediaProgress tracks a user's position in a book or podcast episode.
// One row per (user, media item); writes are upserts.
type MediaProgress struct {
	ID                        string        `gorm:"primaryKey;size:36" json:"id"`
	UserID                    string        `gorm:"index:idx_media_progress_user_item;size:36" json:"user_id"`
	MediaItemID               string        `gorm:"index:idx_media_progress_user_item;size:36" json:"media_item_id"`
	MediaItemType             MediaItemType `gorm:"size:20" json:"media_item_type"`
	Duration                  float64       `json:"duration,omitempty"`
	CurrentTime               float64       `json:"current_time"`
	IsFinished                bool          `gorm:"default:false" json:"is_finished"`
	HideFromContinueListening bool          `gorm:"default:false" json:"hide_from_continue_listening"`
	FinishedAt                *time.Time    `json:"finished_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Device) TableName() string {
	return "devices"
}

func (PlaybackSession) TableName() string {
	return "playback_sessions"
}

func (MediaProgress) TableName() string {
	return "media_progresses"
}
