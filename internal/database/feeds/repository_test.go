package feeds

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"medialib/internal/entities"
)

func setupTestRepo(t *testing.T) (*Repository, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "feeds.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.LibraryItem{},
		&entities.Collection{},
		&entities.Series{},
		&entities.Playlist{},
		&entities.Feed{},
		&entities.FeedEpisode{},
	))
	return NewRepository(db, log.New(io.Discard)), db
}

func newCollectionFeed(t *testing.T, db *gorm.DB, slug string) (*entities.Feed, *entities.Collection) {
	t.Helper()
	col := &entities.Collection{Name: "Col " + slug}
	require.NoError(t, db.Create(col).Error)
	feed := &entities.Feed{
		Slug:       slug,
		EntityType: entities.FeedOwnerCollection,
		EntityID:   col.ID,
		Title:      "Feed " + slug,
	}
	return feed, col
}

func TestCreateValidation(t *testing.T) {
	repo, db := setupTestRepo(t)

	t.Run("rejects unknown entity type", func(t *testing.T) {
		err := repo.Create(&entities.Feed{
			Slug:       "bad-type",
			EntityType: "podcastEpisode",
			EntityID:   "whatever",
		})
		assert.ErrorIs(t, err, ErrUnknownEntityType)
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		err := repo.Create(&entities.Feed{
			Slug:       "no-owner",
			EntityType: entities.FeedOwnerSeries,
			EntityID:   "missing",
		})
		assert.ErrorIs(t, err, ErrOwnerNotFound)

		var count int64
		require.NoError(t, db.Model(&entities.Feed{}).Count(&count).Error)
		assert.Zero(t, count) // Nothing written
	})

	t.Run("writes feed and episodes for a valid owner", func(t *testing.T) {
		feed, _ := newCollectionFeed(t, db, "valid")
		feed.Episodes = []entities.FeedEpisode{{Title: "Episode 1"}, {Title: "Episode 2"}}
		require.NoError(t, repo.Create(feed))
		assert.NotEmpty(t, feed.ID)

		var count int64
		require.NoError(t, db.Model(&entities.FeedEpisode{}).Where("feed_id = ?", feed.ID).Count(&count).Error)
		assert.EqualValues(t, 2, count)
	})
}

func TestOwnerResolution(t *testing.T) {
	repo, db := setupTestRepo(t)

	t.Run("collection owner resolves to the tagged union", func(t *testing.T) {
		feed, col := newCollectionFeed(t, db, "col-feed")
		feed.Episodes = []entities.FeedEpisode{{Title: "Episode 1"}}
		require.NoError(t, repo.Create(feed))

		view, err := repo.Get(feed.ID)
		require.NoError(t, err)
		require.NotNil(t, view.Owner)
		assert.Equal(t, entities.FeedOwnerCollection, view.Owner.Type)
		require.NotNil(t, view.Owner.Collection)
		assert.Equal(t, col.ID, view.Owner.Collection.ID)

		// Only the matching arm of the union is populated.
		assert.Nil(t, view.Owner.LibraryItem)
		assert.Nil(t, view.Owner.Series)
		assert.Nil(t, view.Owner.Playlist)

		require.Len(t, view.Episodes, 1)
		assert.Equal(t, "Episode 1", view.Episodes[0].Title)
	})

	t.Run("each owner type resolves through its own arm", func(t *testing.T) {
		item := &entities.LibraryItem{Path: "/b", MediaType: entities.MediaTypeBook, MediaID: "m"}
		require.NoError(t, db.Create(item).Error)
		series := &entities.Series{Name: "Cycle"}
		require.NoError(t, db.Create(series).Error)
		playlist := &entities.Playlist{Name: "Mix"}
		require.NoError(t, db.Create(playlist).Error)

		cases := []struct {
			entityType entities.FeedOwnerType
			entityID   string
		}{
			{entities.FeedOwnerLibraryItem, item.ID},
			{entities.FeedOwnerSeries, series.ID},
			{entities.FeedOwnerPlaylist, playlist.ID},
		}
		for _, tc := range cases {
			feed := &entities.Feed{
				Slug:       "owner-" + string(tc.entityType),
				EntityType: tc.entityType,
				EntityID:   tc.entityID,
			}
			require.NoError(t, repo.Create(feed))

			view, err := repo.Get(feed.ID)
			require.NoError(t, err)
			require.NotNil(t, view.Owner, tc.entityType)
			assert.Equal(t, tc.entityType, view.Owner.Type)
			assert.NotNil(t, view.Owner.Entity(), tc.entityType)
		}
	})

	t.Run("deleted owner dangles instead of crashing", func(t *testing.T) {
		feed, col := newCollectionFeed(t, db, "dangling")
		require.NoError(t, repo.Create(feed))
		require.NoError(t, db.Delete(&entities.Collection{}, "id = ?", col.ID).Error)

		_, err := repo.Get(feed.ID)
		var dangling *DanglingReferenceError
		require.ErrorAs(t, err, &dangling)
		assert.Equal(t, feed.ID, dangling.FeedID)
		assert.Equal(t, entities.FeedOwnerCollection, dangling.EntityType)
		assert.Equal(t, col.ID, dangling.EntityID)
	})
}

func TestGetAll(t *testing.T) {
	repo, db := setupTestRepo(t)

	healthy, _ := newCollectionFeed(t, db, "healthy")
	require.NoError(t, repo.Create(healthy))

	dangling, col := newCollectionFeed(t, db, "dangling")
	require.NoError(t, repo.Create(dangling))
	require.NoError(t, db.Delete(&entities.Collection{}, "id = ?", col.ID).Error)

	// A row with a discriminator outside the closed set, inserted behind
	// the resolver's back.
	unknown := &entities.Feed{Slug: "unknown", EntityType: "bookshelf", EntityID: "x"}
	require.NoError(t, db.Create(unknown).Error)

	views, resolveErrs, err := repo.GetAll()
	require.NoError(t, err)

	t.Run("dangling feeds are reported without aborting the batch", func(t *testing.T) {
		require.Len(t, resolveErrs, 1)
		var danglingErr *DanglingReferenceError
		require.ErrorAs(t, resolveErrs[0], &danglingErr)
		assert.Equal(t, dangling.ID, danglingErr.FeedID)
	})

	t.Run("healthy and unknown-type feeds are projected", func(t *testing.T) {
		require.Len(t, views, 2)
		byID := make(map[string]*View)
		for _, v := range views {
			byID[v.ID] = v
		}
		require.NotNil(t, byID[healthy.ID].Owner)
		assert.Equal(t, entities.FeedOwnerCollection, byID[healthy.ID].Owner.Type)
		// Unrecognized discriminator resolves to no owner, not an error.
		assert.Nil(t, byID[unknown.ID].Owner)
	})
}

func TestRemove(t *testing.T) {
	repo, db := setupTestRepo(t)

	feed, _ := newCollectionFeed(t, db, "removed")
	feed.Episodes = []entities.FeedEpisode{{Title: "Episode 1"}}
	require.NoError(t, repo.Create(feed))

	require.NoError(t, repo.Remove(feed.ID))

	err := db.First(&entities.Feed{}, "id = ?", feed.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var count int64
	require.NoError(t, db.Model(&entities.FeedEpisode{}).Where("feed_id = ?", feed.ID).Count(&count).Error)
	assert.Zero(t, count)
}
