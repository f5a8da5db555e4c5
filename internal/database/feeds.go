package database

import (
	"medialib/internal/database/feeds"
	"medialib/internal/entities"
)

// Feed reads always go through the feeds resolver so the polymorphic
// owner is projected exactly once, in one place.

func (s *Store) Feeds() []*entities.Feed {
	return s.mirror.feeds
}

// CreateFeed validates the owner reference, writes the feed and its
// episodes, and mirrors the row.
func (s *Store) CreateFeed(feed *entities.Feed) error {
	if err := s.feeds.Create(feed); err != nil {
		return err
	}
	s.mirror.feeds = append(s.mirror.feeds, feed)
	return nil
}

// GetFeedView fetches one feed projected with its resolved owner. A
// feed whose owner was removed fails with a
// *feeds.DanglingReferenceError.
func (s *Store) GetFeedView(id string) (*feeds.View, error) {
	return s.feeds.Get(id)
}

// GetAllFeedViews projects every feed. Dangling feeds are reported in
// the second return value and omitted from the views; sibling feeds are
// unaffected.
func (s *Store) GetAllFeedViews() ([]*feeds.View, []error, error) {
	return s.feeds.GetAll()
}

// GetFeedsForOwner returns the feeds attached to one owner entity.
func (s *Store) GetFeedsForOwner(entityType entities.FeedOwnerType, entityID string) ([]entities.Feed, error) {
	return s.feeds.GetForOwner(entityType, entityID)
}

// RemoveFeed deletes the feed and its episodes, then filters the
// mirror. Removing a missing id is a no-op.
func (s *Store) RemoveFeed(id string) error {
	if err := s.feeds.Remove(id); err != nil {
		return err
	}
	s.mirror.removeFeed(id)
	return nil
}
