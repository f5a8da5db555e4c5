package entities

import (
	"time"

	"gorm.io/gorm"
)

type UserType string

const (
	UserTypeRoot  UserType = "root"
	UserTypeAdmin UserType = "admin"
	UserTypeUser  UserType = "user"
	UserTypeGuest UserType = "guest"
)

type User struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	Username     string     `gorm:"uniqueIndex;size:100" json:"username"`
	Type         UserType   `gorm:"size:20" json:"type"`
	PasswordHash string     `gorm:"size:255" json:"-"`
	Token        string     `gorm:"uniqueIndex;size:64" json:"-"` // API token, hidden from JSON
	IsActive     bool       `json:"is_active"`
	IsLocked     bool       `json:"is_locked"`
	LastSeen     *time.Time `json:"last_seen,omitempty"`
	Permissions  string     `gorm:"type:text" json:"permissions,omitempty"` // JSON permissions blob

	MediaProgresses  []MediaProgress   `gorm:"foreignKey:UserID" json:"-"`
	PlaybackSessions []PlaybackSession `gorm:"foreignKey:UserID" json:"-"`
	Devices          []Device          `gorm:"foreignKey:UserID" json:"-"`
	Feeds            []Feed            `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) IsRoot() bool {
	return u.Type == UserTypeRoot
}
