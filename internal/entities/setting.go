package entities

import (
	"time"
)

// Setting is a raw key/value row. The singleton categories (server,
// email, notification) store a JSON blob under a well-known key; every
// other row is a plain named setting.
type Setting struct {
	Key       string    `gorm:"primaryKey;size:100" json:"key"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Setting) TableName() string {
	return "settings"
}
