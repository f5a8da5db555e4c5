package entities

import (
	"time"
)

// MediaType discriminates what a LibraryItem wraps.
type MediaType string

const (
	MediaTypeBook    MediaType = "book"
	MediaTypePodcast MediaType = "podcast"
)

// MediaItemType discriminates playable media referenced by playlists,
// playback sessions and media progress.
type MediaItemType string

const (
	MediaItemTypeBook           MediaItemType = "book"
	MediaItemTypePodcastEpisode MediaItemType = "podcastEpisode"
)

type Book struct {
	ID          string  `gorm:"primaryKey;size:36" json:"id"`
	Title       string  `gorm:"index;size:512" json:"title"`
	Subtitle    string  `gorm:"size:512" json:"subtitle,omitempty"`
	Publisher   string  `gorm:"size:256" json:"publisher,omitempty"`
	PublishedAt string  `gorm:"size:50" json:"published_at,omitempty"`
	ISBN        string  `gorm:"index;size:20" json:"isbn,omitempty"`
	ASIN        string  `gorm:"size:20" json:"asin,omitempty"`
	Language    string  `gorm:"size:50" json:"language,omitempty"`
	Narrators   string  `gorm:"type:text" json:"narrators,omitempty"` // JSON array
	Description string  `gorm:"type:text" json:"description,omitempty"`
	Explicit    bool    `gorm:"default:false" json:"explicit"`
	Abridged    bool    `gorm:"default:false" json:"abridged"`
	Duration    float64 `json:"duration,omitempty"` // Seconds
	CoverPath   string  `gorm:"size:1024" json:"cover_path,omitempty"`
	AudioFiles  string  `gorm:"type:text" json:"audio_files,omitempty"` // JSON blob
	Chapters    string  `gorm:"type:text" json:"chapters,omitempty"`    // JSON blob

	Authors []Author `gorm:"many2many:book_authors;" json:"authors,omitempty"`
	Series  []Series `gorm:"many2many:book_series;" json:"series,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Podcast struct {
	ID                   string     `gorm:"primaryKey;size:36" json:"id"`
	Title                string     `gorm:"index;size:512" json:"title"`
	Author               string     `gorm:"size:256" json:"author,omitempty"`
	FeedURL              string     `gorm:"size:2048" json:"feed_url,omitempty"`
	ImageURL             string     `gorm:"size:2048" json:"image_url,omitempty"`
	ItunesID             string     `gorm:"size:50" json:"itunes_id,omitempty"`
	PodcastType          string     `gorm:"size:20" json:"podcast_type,omitempty"` // episodic or serial
	Language             string     `gorm:"size:50" json:"language,omitempty"`
	Description          string     `gorm:"type:text" json:"description,omitempty"`
	Explicit             bool       `gorm:"default:false" json:"explicit"`
	AutoDownloadEpisodes bool       `gorm:"default:false" json:"auto_download_episodes"`
	CoverPath            string     `gorm:"size:1024" json:"cover_path,omitempty"`
	MaxEpisodesToKeep    int        `json:"max_episodes_to_keep,omitempty"`
	LastEpisodeCheck     *time.Time `json:"last_episode_check,omitempty"`

	Episodes []PodcastEpisode `gorm:"foreignKey:PodcastID" json:"episodes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PodcastEpisode struct {
	ID           string     `gorm:"primaryKey;size:36" json:"id"`
	PodcastID    string     `gorm:"index;size:36" json:"podcast_id"`
	Index        int        `json:"index"` // Order within the podcast
	Season       string     `gorm:"size:20" json:"season,omitempty"`
	Episode      string     `gorm:"size:20" json:"episode,omitempty"`
	EpisodeType  string     `gorm:"size:20" json:"episode_type,omitempty"`
	Title        string     `gorm:"size:512" json:"title"`
	Subtitle     string     `gorm:"size:512" json:"subtitle,omitempty"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	PubDate      string     `gorm:"size:100" json:"pub_date,omitempty"`
	EnclosureURL string     `gorm:"size:2048" json:"enclosure_url,omitempty"`
	AudioFile    string     `gorm:"type:text" json:"audio_file,omitempty"` // JSON blob
	PublishedAt  *time.Time `json:"published_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

func (Podcast) TableName() string {
	return "podcasts"
}

func (PodcastEpisode) TableName() string {
	return "podcast_episodes"
}
