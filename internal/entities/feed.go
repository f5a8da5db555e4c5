package entities

import (
	"time"
)

// FeedOwnerType is the discriminator for the feed's polymorphic owner.
// The set is closed; anything else is rejected on write.
type FeedOwnerType string

const (
	FeedOwnerLibraryItem FeedOwnerType = "libraryItem"
	FeedOwnerCollection  FeedOwnerType = "collection"
	FeedOwnerSeries      FeedOwnerType = "series"
	FeedOwnerPlaylist    FeedOwnerType = "playlist"
)

// ValidFeedOwnerType reports whether t is a member of the closed
// discriminator set.
func ValidFeedOwnerType(t FeedOwnerType) bool {
	switch t {
	case FeedOwnerLibraryItem, FeedOwnerCollection, FeedOwnerSeries, FeedOwnerPlaylist:
		return true
	}
	return false
}

// Feed is a syndication projection of one owner entity. EntityID is an
// opaque identifier, not a typed foreign key; referential integrity
// across the owner tables is enforced by the feeds resolver, not by the
// store.
type Feed struct {
	ID              string        `gorm:"primaryKey;size:36" json:"id"`
	Slug            string        `gorm:"uniqueIndex;size:256" json:"slug"`
	UserID          string        `gorm:"index;size:36" json:"user_id"`
	EntityType      FeedOwnerType `gorm:"index;size:20" json:"entity_type"`
	EntityID        string        `gorm:"index;size:36" json:"entity_id"`
	EntityUpdatedAt *time.Time    `json:"entity_updated_at,omitempty"`
	ServerAddress   string        `gorm:"size:2048" json:"server_address,omitempty"`
	FeedURL         string        `gorm:"size:2048" json:"feed_url,omitempty"`
	ImageURL        string        `gorm:"size:2048" json:"image_url,omitempty"`
	SiteURL         string        `gorm:"size:2048" json:"site_url,omitempty"`
	Title           string        `gorm:"size:512" json:"title"`
	Description     string        `gorm:"type:text" json:"description,omitempty"`
	Author          string        `gorm:"size:256" json:"author,omitempty"`
	PodcastType     string        `gorm:"size:20" json:"podcast_type,omitempty"`
	Language        string        `gorm:"size:50" json:"language,omitempty"`
	OwnerName       string        `gorm:"size:256" json:"owner_name,omitempty"`
	OwnerEmail      string        `gorm:"size:256" json:"owner_email,omitempty"`
	Explicit        bool          `json:"explicit"`
	PreventIndexing bool          `json:"prevent_indexing"`

	Episodes []FeedEpisode `gorm:"foreignKey:FeedID" json:"episodes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type FeedEpisode struct {
	ID            string  `gorm:"primaryKey;size:36" json:"id"`
	FeedID        string  `gorm:"index;size:36" json:"feed_id"`
	Title         string  `gorm:"size:512" json:"title"`
	Author        string  `gorm:"size:256" json:"author,omitempty"`
	Description   string  `gorm:"type:text" json:"description,omitempty"`
	SiteURL       string  `gorm:"size:2048" json:"site_url,omitempty"`
	EnclosureURL  string  `gorm:"size:2048" json:"enclosure_url,omitempty"`
	EnclosureType string  `gorm:"size:100" json:"enclosure_type,omitempty"`
	EnclosureSize int64   `json:"enclosure_size,omitempty"`
	PubDate       string  `gorm:"size:100" json:"pub_date,omitempty"`
	Season        string  `gorm:"size:20" json:"season,omitempty"`
	Episode       string  `gorm:"size:20" json:"episode,omitempty"`
	EpisodeType   string  `gorm:"size:20" json:"episode_type,omitempty"`
	Duration      float64 `json:"duration,omitempty"`
	FilePath      string  `gorm:"size:1024" json:"file_path,omitempty"`
	Explicit      bool    `gorm:"default:false" json:"explicit"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Feed) TableName() string {
	return "feeds"
}

func (FeedEpisode) TableName() string {
	return "feed_episodes"
}
