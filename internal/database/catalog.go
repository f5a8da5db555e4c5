package database

import (
	"gorm.io/gorm"

	"medialib/internal/entities"
)

func (s *Store) Authors() []*entities.Author {
	return s.mirror.authors
}

func (s *Store) Series() []*entities.Series {
	return s.mirror.series
}

func (s *Store) CreateAuthor(author *entities.Author) error {
	if err := s.db.Create(author).Error; err != nil {
		return err
	}
	s.mirror.authors = append(s.mirror.authors, author)
	return nil
}

// CreateBulkAuthors creates authors sequentially, stopping at the first
// failure.
func (s *Store) CreateBulkAuthors(authors []*entities.Author) (int, error) {
	for i, author := range authors {
		if err := s.CreateAuthor(author); err != nil {
			return i, &BulkError{Applied: i, Err: err}
		}
	}
	return len(authors), nil
}

func (s *Store) UpdateAuthor(author *entities.Author) (bool, error) {
	return updateIfChanged(s.db, author.ID, author)
}

// RemoveAuthor deletes the author and its book join rows.
func (s *Store) RemoveAuthor(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("author_id = ?", id).Delete(&entities.BookAuthor{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Author{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.mirror.removeAuthor(id)
	return nil
}

func (s *Store) CreateSeries(series *entities.Series) error {
	if err := s.db.Create(series).Error; err != nil {
		return err
	}
	s.mirror.series = append(s.mirror.series, series)
	return nil
}

func (s *Store) CreateBulkSeries(series []*entities.Series) (int, error) {
	for i, se := range series {
		if err := s.CreateSeries(se); err != nil {
			return i, &BulkError{Applied: i, Err: err}
		}
	}
	return len(series), nil
}

func (s *Store) UpdateSeries(series *entities.Series) (bool, error) {
	return updateIfChanged(s.db, series.ID, series)
}

// RemoveSeries deletes the series and its book join rows.
func (s *Store) RemoveSeries(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("series_id = ?", id).Delete(&entities.BookSeries{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Series{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.mirror.removeSeries(id)
	return nil
}

// CreateBulkBookAuthors inserts book-author join rows.
func (s *Store) CreateBulkBookAuthors(rows []entities.BookAuthor) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.Create(&rows).Error
}

// RemoveBookAuthors deletes join rows matching the given author id,
// book id, or both. Passing neither is a no-op.
func (s *Store) RemoveBookAuthors(authorID, bookID string) error {
	if authorID == "" && bookID == "" {
		return nil
	}
	q := s.db.Model(&entities.BookAuthor{})
	if authorID != "" {
		q = q.Where("author_id = ?", authorID)
	}
	if bookID != "" {
		q = q.Where("book_id = ?", bookID)
	}
	return q.Delete(&entities.BookAuthor{}).Error
}

// CreateBulkBookSeries inserts book-series join rows.
func (s *Store) CreateBulkBookSeries(rows []entities.BookSeries) error {
	if len(rows) == 0 {
		return nil
	}
	return s.db.Create(&rows).Error
}

// RemoveBookSeries deletes join rows matching the given series id, book
// id, or both. Passing neither is a no-op.
func (s *Store) RemoveBookSeries(seriesID, bookID string) error {
	if seriesID == "" && bookID == "" {
		return nil
	}
	q := s.db.Model(&entities.BookSeries{})
	if seriesID != "" {
		q = q.Where("series_id = ?", seriesID)
	}
	if bookID != "" {
		q = q.Where("book_id = ?", bookID)
	}
	return q.Delete(&entities.BookSeries{}).Error
}
