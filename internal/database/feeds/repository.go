// Package feeds resolves the feed entity's polymorphic owner relation.
//
// A feed references exactly one of several unrelated owner types through
// an entity_type discriminator plus an opaque entity_id. The store cannot
// enforce referential integrity across the owner tables, so this package
// does: writes validate the discriminator and the owner's existence, and
// every read path projects the row into a View whose Owner is a tagged
// union holding only the matching owner. Callers never see the raw
// per-type lookup results.
package feeds

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"

	"medialib/internal/entities"
)

var (
	// ErrUnknownEntityType rejects a write whose discriminator is outside
	// the closed owner set.
	ErrUnknownEntityType = errors.New("feeds: unknown entity type")
	// ErrOwnerNotFound rejects a write whose entity id matches no row of
	// the declared owner type.
	ErrOwnerNotFound = errors.New("feeds: owner not found")
)

// DanglingReferenceError is the read-time discovery that a feed's owner
// no longer exists. It is surfaced per feed and never aborts a bulk read
// of sibling feeds.
type DanglingReferenceError struct {
	FeedID     string
	EntityType entities.FeedOwnerType
	EntityID   string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("feeds: feed %s references missing %s %s", e.FeedID, e.EntityType, e.EntityID)
}

// Owner is the normalized owner of a feed. Exactly one pointer matching
// Type is non-nil.
type Owner struct {
	Type        entities.FeedOwnerType
	LibraryItem *entities.LibraryItem
	Collection  *entities.Collection
	Series      *entities.Series
	Playlist    *entities.Playlist
}

// Entity returns the resolved owner as an untyped value, or nil.
func (o *Owner) Entity() any {
	if o == nil {
		return nil
	}
	switch o.Type {
	case entities.FeedOwnerLibraryItem:
		if o.LibraryItem != nil {
			return o.LibraryItem
		}
	case entities.FeedOwnerCollection:
		if o.Collection != nil {
			return o.Collection
		}
	case entities.FeedOwnerSeries:
		if o.Series != nil {
			return o.Series
		}
	case entities.FeedOwnerPlaylist:
		if o.Playlist != nil {
			return o.Playlist
		}
	}
	return nil
}

// View is a feed row with its episodes and its resolved owner. Owner is
// nil only for an unrecognized discriminator, which resolves to "no
// owner" on the read path rather than failing.
type View struct {
	entities.Feed
	Owner *Owner
}

// Repository is the single place feed polymorphism is resolved.
type Repository struct {
	db  *gorm.DB
	log *log.Logger
}

func NewRepository(db *gorm.DB, logger *log.Logger) *Repository {
	return &Repository{db: db, log: logger}
}

// Create validates the owner reference and writes the feed row together
// with its episodes. Nothing is written when validation fails.
func (r *Repository) Create(feed *entities.Feed) error {
	if !entities.ValidFeedOwnerType(feed.EntityType) {
		return fmt.Errorf("%w: %q", ErrUnknownEntityType, feed.EntityType)
	}
	exists, err := r.ownerExists(feed.EntityType, feed.EntityID)
	if err != nil {
		return fmt.Errorf("check feed owner: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s %s", ErrOwnerNotFound, feed.EntityType, feed.EntityID)
	}
	return r.db.Create(feed).Error
}

// Get fetches one feed and projects it. A missing owner row yields a
// DanglingReferenceError, never a partially populated view.
func (r *Repository) Get(feedID string) (*View, error) {
	var feed entities.Feed
	err := r.db.Preload("Episodes").First(&feed, "id = ?", feedID).Error
	if err != nil {
		return nil, err
	}
	owner, err := r.resolveOwner(&feed)
	if err != nil {
		return nil, err
	}
	return &View{Feed: feed, Owner: owner}, nil
}

// GetAll fetches every feed and projects each one. Owner lookups are
// batched per owner type. Feeds whose owner is gone are reported in the
// returned error slice and omitted from the views; the rest of the batch
// is unaffected.
func (r *Repository) GetAll() ([]*View, []error, error) {
	var rows []entities.Feed
	if err := r.db.Preload("Episodes").Find(&rows).Error; err != nil {
		return nil, nil, err
	}

	idsByType := make(map[entities.FeedOwnerType][]string)
	for _, f := range rows {
		if entities.ValidFeedOwnerType(f.EntityType) {
			idsByType[f.EntityType] = append(idsByType[f.EntityType], f.EntityID)
		}
	}
	owners, err := r.fetchOwners(idsByType)
	if err != nil {
		return nil, nil, err
	}

	views := make([]*View, 0, len(rows))
	var resolveErrs []error
	for _, f := range rows {
		if !entities.ValidFeedOwnerType(f.EntityType) {
			r.log.Warn("feed has unrecognized entity type", "feed", f.ID, "entityType", f.EntityType)
			views = append(views, &View{Feed: f})
			continue
		}
		owner := owners[ownerKey{f.EntityType, f.EntityID}]
		if owner == nil {
			resolveErrs = append(resolveErrs, &DanglingReferenceError{
				FeedID:     f.ID,
				EntityType: f.EntityType,
				EntityID:   f.EntityID,
			})
			continue
		}
		views = append(views, &View{Feed: f, Owner: owner})
	}
	return views, resolveErrs, nil
}

// GetForOwner returns the feeds attached to one owner entity.
func (r *Repository) GetForOwner(entityType entities.FeedOwnerType, entityID string) ([]entities.Feed, error) {
	var rows []entities.Feed
	err := r.db.Preload("Episodes").
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Find(&rows).Error
	return rows, err
}

// Remove deletes the feed and its episodes.
func (r *Repository) Remove(feedID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("feed_id = ?", feedID).Delete(&entities.FeedEpisode{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Feed{}, "id = ?", feedID).Error
	})
}

// resolveOwner loads the owner selected by the feed's discriminator. An
// unrecognized discriminator resolves to no owner; a recognized one with
// no backing row is a dangling reference.
func (r *Repository) resolveOwner(feed *entities.Feed) (*Owner, error) {
	if !entities.ValidFeedOwnerType(feed.EntityType) {
		r.log.Warn("feed has unrecognized entity type", "feed", feed.ID, "entityType", feed.EntityType)
		return nil, nil
	}
	owners, err := r.fetchOwners(map[entities.FeedOwnerType][]string{
		feed.EntityType: {feed.EntityID},
	})
	if err != nil {
		return nil, err
	}
	owner := owners[ownerKey{feed.EntityType, feed.EntityID}]
	if owner == nil {
		return nil, &DanglingReferenceError{
			FeedID:     feed.ID,
			EntityType: feed.EntityType,
			EntityID:   feed.EntityID,
		}
	}
	return owner, nil
}

type ownerKey struct {
	entityType entities.FeedOwnerType
	entityID   string
}

// fetchOwners runs one lookup per owner type over the batch's ids and
// normalizes the hits into tagged unions. Ownership is exclusive, so at
// most one type matches any given feed.
func (r *Repository) fetchOwners(idsByType map[entities.FeedOwnerType][]string) (map[ownerKey]*Owner, error) {
	out := make(map[ownerKey]*Owner)
	for entityType, ids := range idsByType {
		if len(ids) == 0 {
			continue
		}
		switch entityType {
		case entities.FeedOwnerLibraryItem:
			var items []entities.LibraryItem
			if err := r.db.Where("id IN ?", ids).Find(&items).Error; err != nil {
				return nil, err
			}
			for i := range items {
				out[ownerKey{entityType, items[i].ID}] = &Owner{Type: entityType, LibraryItem: &items[i]}
			}
		case entities.FeedOwnerCollection:
			var cols []entities.Collection
			if err := r.db.Where("id IN ?", ids).Find(&cols).Error; err != nil {
				return nil, err
			}
			for i := range cols {
				out[ownerKey{entityType, cols[i].ID}] = &Owner{Type: entityType, Collection: &cols[i]}
			}
		case entities.FeedOwnerSeries:
			var srs []entities.Series
			if err := r.db.Where("id IN ?", ids).Find(&srs).Error; err != nil {
				return nil, err
			}
			for i := range srs {
				out[ownerKey{entityType, srs[i].ID}] = &Owner{Type: entityType, Series: &srs[i]}
			}
		case entities.FeedOwnerPlaylist:
			var pls []entities.Playlist
			if err := r.db.Where("id IN ?", ids).Find(&pls).Error; err != nil {
				return nil, err
			}
			for i := range pls {
				out[ownerKey{entityType, pls[i].ID}] = &Owner{Type: entityType, Playlist: &pls[i]}
			}
		}
	}
	return out, nil
}

func (r *Repository) ownerExists(entityType entities.FeedOwnerType, entityID string) (bool, error) {
	var model any
	switch entityType {
	case entities.FeedOwnerLibraryItem:
		model = &entities.LibraryItem{}
	case entities.FeedOwnerCollection:
		model = &entities.Collection{}
	case entities.FeedOwnerSeries:
		model = &entities.Series{}
	case entities.FeedOwnerPlaylist:
		model = &entities.Playlist{}
	default:
		return false, nil
	}
	var count int64
	err := r.db.Model(model).Where("id = ?", entityID).Count(&count).Error
	return count > 0, err
}
