package entities

import (
	"time"
)

type Collection struct {
	ID          string `gorm:"primaryKey;size:36" json:"id"`
	LibraryID   string `gorm:"index;size:36" json:"library_id"`
	Name        string `gorm:"index;size:256" json:"name"`
	Description string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CollectionBook is the ordered Collection<->Book join row. Order is
// contiguous starting at 1 per collection and is rebuilt wholesale on
// every full collection update.
type CollectionBook struct {
	CollectionID string `gorm:"primaryKey;size:36" json:"collection_id"`
	BookID       string `gorm:"primaryKey;size:36" json:"book_id"`
	Order        int    `json:"order"`
}

func (Collection) TableName() string {
	return "collections"
}

func (CollectionBook) TableName() string {
	return "collection_books"
}
