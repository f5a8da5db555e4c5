package database

import (
	"gorm.io/gorm"

	"medialib/internal/entities"
)

func (s *Store) Collections() []*entities.Collection {
	return s.mirror.collections
}

func (s *Store) GetCollection(id string) *entities.Collection {
	return s.mirror.collection(id)
}

// CreateCollection writes the collection row, then derives its ordered
// join rows from libraryItemIDs. Member ids that don't resolve to a
// book item in the mirror are silently dropped; the remaining members
// keep a contiguous order starting at 1.
func (s *Store) CreateCollection(collection *entities.Collection, libraryItemIDs []string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(collection).Error; err != nil {
			return err
		}
		rows := s.buildCollectionBooks(collection.ID, libraryItemIDs)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return err
	}
	s.mirror.collections = append(s.mirror.collections, collection)
	return nil
}

// UpdateCollection persists the collection row and rebuilds the entire
// join-row set from libraryItemIDs. Last write wins; there is no
// incremental member patching. The returned bool reflects the
// collection row only.
func (s *Store) UpdateCollection(collection *entities.Collection, libraryItemIDs []string) (bool, error) {
	var changed bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		changed, err = updateIfChanged(tx, collection.ID, collection)
		if err != nil {
			return err
		}
		if err := tx.Where("collection_id = ?", collection.ID).Delete(&entities.CollectionBook{}).Error; err != nil {
			return err
		}
		rows := s.buildCollectionBooks(collection.ID, libraryItemIDs)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

func (s *Store) RemoveCollection(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("collection_id = ?", id).Delete(&entities.CollectionBook{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Collection{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.mirror.removeCollection(id)
	return nil
}

// GetCollectionBooks returns the collection's join rows in order.
func (s *Store) GetCollectionBooks(collectionID string) ([]entities.CollectionBook, error) {
	var rows []entities.CollectionBook
	err := s.db.Where("collection_id = ?", collectionID).
		Order("\"order\" ASC").
		Find(&rows).Error
	return rows, err
}

// buildCollectionBooks maps ordered library item ids onto join rows.
// Only items wrapping a book qualify; order is assigned sequentially
// over the members that resolved.
func (s *Store) buildCollectionBooks(collectionID string, libraryItemIDs []string) []entities.CollectionBook {
	var rows []entities.CollectionBook
	order := 1
	for _, itemID := range libraryItemIDs {
		item := s.mirror.libraryItem(itemID)
		if item == nil || item.MediaType != entities.MediaTypeBook {
			continue
		}
		rows = append(rows, entities.CollectionBook{
			CollectionID: collectionID,
			BookID:       item.MediaID,
			Order:        order,
		})
		order++
	}
	return rows
}
