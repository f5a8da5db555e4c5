package entities

import (
	"time"
)

type Library struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"index;size:256" json:"name"`
	DisplayOrder int       `json:"display_order"`
	Icon         string    `gorm:"size:50" json:"icon,omitempty"`
	MediaType    MediaType `gorm:"size:20" json:"media_type"`
	Provider     string    `gorm:"size:50" json:"provider,omitempty"`
	Settings     string    `gorm:"type:text" json:"settings,omitempty"` // JSON scanner settings blob

	Folders      []LibraryFolder `gorm:"foreignKey:LibraryID" json:"folders,omitempty"`
	LibraryItems []LibraryItem   `gorm:"foreignKey:LibraryID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LibraryFolder struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	LibraryID string    `gorm:"index;size:36" json:"library_id"`
	Path      string    `gorm:"size:1024" json:"path"`
	CreatedAt time.Time `json:"created_at"`
}

func (Library) TableName() string {
	return "libraries"
}

func (LibraryFolder) TableName() string {
	return "library_folders"
}
