package entities

import (
	"time"
)

// LibraryItem wraps exactly one Book or Podcast. Its identity is stable
// across file moves; MediaType + MediaID point at the wrapped media row.
type LibraryItem struct {
	ID        string     `gorm:"primaryKey;size:36" json:"id"`
	LibraryID string     `gorm:"index;size:36" json:"library_id"`
	FolderID  string     `gorm:"index;size:36" json:"folder_id,omitempty"`
	Path      string     `gorm:"size:1024" json:"path"`
	RelPath   string     `gorm:"size:1024" json:"rel_path,omitempty"`
	MediaType MediaType  `gorm:"index;size:20" json:"media_type"`
	MediaID   string     `gorm:"index;size:36" json:"media_id"`
	IsFile    bool       `gorm:"default:false" json:"is_file"`
	IsMissing bool       `gorm:"default:false" json:"is_missing"`
	IsInvalid bool       `gorm:"default:false" json:"is_invalid"`
	Size      int64      `json:"size,omitempty"`
	LastScan  *time.Time `json:"last_scan,omitempty"`

	// Exactly one of these is populated in the working set, matching
	// MediaType. Neither is persisted on this row.
	Book    *Book    `gorm:"-" json:"book,omitempty"`
	Podcast *Podcast `gorm:"-" json:"podcast,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (LibraryItem) TableName() string {
	return "library_items"
}
