package database

import (
	"gorm.io/gorm"

	"medialib/internal/entities"
)

func (s *Store) LibraryItems() []*entities.LibraryItem {
	return s.mirror.libraryItems
}

func (s *Store) GetLibraryItem(id string) *entities.LibraryItem {
	return s.mirror.libraryItem(id)
}

// CreateLibraryItem writes the item's media row and the item row in one
// transaction, then mirrors the item. Exactly one of item.Book or
// item.Podcast must be set.
func (s *Store) CreateLibraryItem(item *entities.LibraryItem) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		switch {
		case item.Book != nil:
			if err := tx.Create(item.Book).Error; err != nil {
				return err
			}
			item.MediaType = entities.MediaTypeBook
			item.MediaID = item.Book.ID
		case item.Podcast != nil:
			if err := tx.Create(item.Podcast).Error; err != nil {
				return err
			}
			item.MediaType = entities.MediaTypePodcast
			item.MediaID = item.Podcast.ID
		default:
			return ErrMissingMedia
		}
		return tx.Create(item).Error
	})
	if err != nil {
		return err
	}
	s.mirror.libraryItems = append(s.mirror.libraryItems, item)
	return nil
}

// CreateBulkLibraryItems creates items sequentially, stopping at the
// first failure. Returns the number of items created.
func (s *Store) CreateBulkLibraryItems(items []*entities.LibraryItem) (int, error) {
	for i, item := range items {
		if err := s.CreateLibraryItem(item); err != nil {
			return i, &BulkError{Applied: i, Err: err}
		}
	}
	return len(items), nil
}

// UpdateLibraryItem persists the item row and its wrapped media row,
// reporting whether either changed.
func (s *Store) UpdateLibraryItem(item *entities.LibraryItem) (bool, error) {
	var changed bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		itemChanged, err := updateIfChanged(tx, item.ID, item)
		if err != nil {
			return err
		}
		changed = itemChanged

		switch {
		case item.Book != nil:
			mediaChanged, err := updateIfChanged(tx, item.Book.ID, item.Book)
			if err != nil {
				return err
			}
			changed = changed || mediaChanged
		case item.Podcast != nil:
			mediaChanged, err := updateIfChanged(tx, item.Podcast.ID, item.Podcast)
			if err != nil {
				return err
			}
			changed = changed || mediaChanged
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

// UpdateBulkLibraryItems updates items sequentially, stopping at the
// first failure. Returns the number of items whose rows actually
// changed; on failure the error is a BulkError with the applied count.
func (s *Store) UpdateBulkLibraryItems(items []*entities.LibraryItem) (int, error) {
	updated := 0
	for i, item := range items {
		changed, err := s.UpdateLibraryItem(item)
		if err != nil {
			return updated, &BulkError{Applied: i, Err: err}
		}
		if changed {
			updated++
		}
	}
	return updated, nil
}

// RemoveLibraryItem deletes the item and its wrapped media. Removing a
// missing id is a no-op.
func (s *Store) RemoveLibraryItem(id string) error {
	item := s.mirror.libraryItem(id)
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if item != nil {
			switch item.MediaType {
			case entities.MediaTypeBook:
				if err := tx.Delete(&entities.Book{}, "id = ?", item.MediaID).Error; err != nil {
					return err
				}
			case entities.MediaTypePodcast:
				if err := tx.Where("podcast_id = ?", item.MediaID).Delete(&entities.PodcastEpisode{}).Error; err != nil {
					return err
				}
				if err := tx.Delete(&entities.Podcast{}, "id = ?", item.MediaID).Error; err != nil {
					return err
				}
			}
		}
		return tx.Delete(&entities.LibraryItem{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.mirror.removeLibraryItem(id)
	return nil
}
