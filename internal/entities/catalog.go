package entities

import (
	"time"
)

type Author struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"index;size:256" json:"name"`
	ASIN        string `gorm:"size:20" json:"asin,omitempty"`
	Description string `gorm:"type:text" json:"description,omitempty"`
	ImagePath   string `gorm:"size:1024" json:"image_path,omitempty"`

	Books []Book `gorm:"many2many:book_authors;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Series struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	Name        string `gorm:"index;size:256" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	Books []Book `gorm:"many2many:book_series;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BookAuthor is the Book<->Author join row. It carries no extra data.
type BookAuthor struct {
	BookID   string `gorm:"primaryKey;size:36" json:"book_id"`
	AuthorID string `gorm:"primaryKey;size:36" json:"author_id"`
}

// BookSeries is the Book<->Series join row; Sequence is the book's
// position label within the series ("1", "2.5", ...).
type BookSeries struct {
	BookID   string `gorm:"primaryKey;size:36" json:"book_id"`
	SeriesID string `gorm:"primaryKey;size:36" json:"series_id"`
	Sequence string `gorm:"size:20" json:"sequence,omitempty"`
}

func (Author) TableName() string {
	return "authors"
}

func (Series) TableName() string {
	return "series"
}

func (BookAuthor) TableName() string {
	return "book_authors"
}

func (BookSeries) TableName() string {
	return "book_series"
}
