package database

import (
	"gorm.io/gorm"

	"medialib/internal/entities"
)

func (s *Store) Libraries() []*entities.Library {
	return s.mirror.libraries
}

func (s *Store) GetLibrary(id string) *entities.Library {
	return s.mirror.library(id)
}

// CreateLibrary writes the library and its folders, then mirrors it.
func (s *Store) CreateLibrary(library *entities.Library) error {
	if library.MediaType == "" {
		library.MediaType = entities.MediaTypeBook
	}
	if err := s.db.Create(library).Error; err != nil {
		return err
	}
	s.mirror.libraries = append(s.mirror.libraries, library)
	return nil
}

// UpdateLibrary persists the library row and rewrites its folder set
// wholesale from library.Folders. The returned bool reflects the
// library row only.
func (s *Store) UpdateLibrary(library *entities.Library) (bool, error) {
	var changed bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		changed, err = updateIfChanged(tx, library.ID, library)
		if err != nil {
			return err
		}
		if err := tx.Where("library_id = ?", library.ID).Delete(&entities.LibraryFolder{}).Error; err != nil {
			return err
		}
		for i := range library.Folders {
			library.Folders[i].LibraryID = library.ID
		}
		if len(library.Folders) == 0 {
			return nil
		}
		return tx.Create(&library.Folders).Error
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

func (s *Store) RemoveLibrary(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("library_id = ?", id).Delete(&entities.LibraryFolder{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Library{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.mirror.removeLibrary(id)
	return nil
}
