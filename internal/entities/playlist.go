package entities

import (
	"time"
)

type Playlist struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	LibraryID   string `gorm:"index;size:36" json:"library_id"`
	UserID      string `gorm:"index;size:36" json:"user_id"`
	Name        string `gorm:"index;size:256" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PlaylistMediaItem is the ordered playlist member row. MediaItemType
// discriminates whether MediaItemID points at a book or a podcast
// episode. Same ordering contract as CollectionBook.
type PlaylistMediaItem struct {
	PlaylistID    string        `gorm:"primaryKey;size:36" json:"playlist_id"`
	MediaItemID   string        `gorm:"primaryKey;size:36" json:"media_item_id"`
	MediaItemType MediaItemType `gorm:"size:20" json:"media_item_type"`
	Order         int           `json:"order"`
}

func (Playlist) TableName() string {
	return "playlists"
}

func (PlaylistMediaItem) TableName() string {
	return "playlist_media_items"
}
