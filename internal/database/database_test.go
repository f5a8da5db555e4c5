package database

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"medialib/internal/config"
	"medialib/internal/entities"
	"medialib/internal/settingsstore"
)

// setupTestStore initializes a fresh store backed by a temp sqlite file.
func setupTestStore(t *testing.T) *Store {
	t.Helper()
	store := newTestStore(t, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, store.Initialize(false))
	return store
}

func newTestStore(t *testing.T, dbPath string) *Store {
	t.Helper()
	cfg := &config.Config{
		Database: config.Database{Path: dbPath},
		Server:   config.Server{Version: "0.1.0"},
	}
	store := New(cfg, WithLogger(log.New(io.Discard)))
	t.Cleanup(func() { store.Close() })
	return store
}

func createBookItem(t *testing.T, s *Store, title string) *entities.LibraryItem {
	t.Helper()
	item := &entities.LibraryItem{
		LibraryID: "lib-1",
		Path:      "/books/" + title,
		Book:      &entities.Book{Title: title},
	}
	require.NoError(t, s.CreateLibraryItem(item))
	return item
}

func TestInitialize(t *testing.T) {
	store := setupTestStore(t)

	t.Run("fresh store is detected as new", func(t *testing.T) {
		assert.True(t, store.IsNew())
	})

	t.Run("mirror starts empty", func(t *testing.T) {
		assert.Empty(t, store.Users())
		assert.Empty(t, store.Libraries())
		assert.Empty(t, store.LibraryItems())
		assert.Empty(t, store.Collections())
		assert.Empty(t, store.Playlists())
		assert.Empty(t, store.Feeds())
	})

	t.Run("settings singletons are seeded", func(t *testing.T) {
		require.NotNil(t, store.ServerSettings())
		require.NotNil(t, store.EmailSettings())
		require.NotNil(t, store.NotificationSettings())
		assert.Equal(t, "0.1.0", store.ServerSettings().Version)
		assert.Equal(t, "0.1.0", settingsstore.Snapshot().Version)
	})

	t.Run("reopen is not new", func(t *testing.T) {
		reopened := newTestStore(t, store.cfg.Database.Path)
		require.NoError(t, reopened.Initialize(false))
		assert.False(t, reopened.IsNew())
	})
}

func TestForceRebuild(t *testing.T) {
	store := setupTestStore(t)
	_, err := store.CreateRootUser("root", "secret")
	require.NoError(t, err)
	createBookItem(t, store, "Dune")
	require.NoError(t, store.Close())

	rebuilt := newTestStore(t, store.cfg.Database.Path)
	require.NoError(t, rebuilt.Initialize(true))

	assert.True(t, rebuilt.IsNew())
	assert.Empty(t, rebuilt.Users())
	assert.Empty(t, rebuilt.LibraryItems())
	assert.False(t, rebuilt.HasRootUser())
}

type stubMigrator struct {
	should  bool
	calls   int
	migrate func(db *gorm.DB) error
}

func (m *stubMigrator) ShouldMigrate(bool) bool { return m.should }

func (m *stubMigrator) Migrate(db *gorm.DB) error {
	m.calls++
	if m.migrate != nil {
		return m.migrate(db)
	}
	return nil
}

func TestMigrationTrigger(t *testing.T) {
	t.Run("runs on fresh store before working set load", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test.db")
		migrator := &stubMigrator{
			should: true,
			migrate: func(db *gorm.DB) error {
				return db.Create(&entities.User{Username: "imported"}).Error
			},
		}
		store := newTestStore(t, dbPath)
		store.migrator = migrator
		require.NoError(t, store.Initialize(false))

		assert.Equal(t, 1, migrator.calls)
		// The imported user is part of the initial load.
		require.Len(t, store.Users(), 1)
		assert.Equal(t, "imported", store.Users()[0].Username)
	})

	t.Run("does not run on an existing store", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "test.db")
		first := newTestStore(t, dbPath)
		require.NoError(t, first.Initialize(false))
		require.NoError(t, first.Close())

		migrator := &stubMigrator{should: true}
		reopened := newTestStore(t, dbPath)
		reopened.migrator = migrator
		require.NoError(t, reopened.Initialize(false))
		assert.Equal(t, 0, migrator.calls)
	})
}

func TestUserOperations(t *testing.T) {
	store := setupTestStore(t)

	t.Run("CreateRootUser bootstraps root", func(t *testing.T) {
		assert.False(t, store.HasRootUser())
		user, err := store.CreateRootUser("root", "secret")
		require.NoError(t, err)
		assert.True(t, store.HasRootUser())
		assert.True(t, user.IsRoot())
		assert.Len(t, user.Token, 64) // hex encoded 32 bytes
		assert.NotEqual(t, "secret", user.PasswordHash)
	})

	t.Run("create mirrors the stored row", func(t *testing.T) {
		user := &entities.User{Username: "alice", Type: entities.UserTypeUser}
		require.NoError(t, store.CreateUser(user))

		var row entities.User
		require.NoError(t, store.db.First(&row, "id = ?", user.ID).Error)
		assert.False(t, rowChanged(&row, user))
		assert.Same(t, user, store.GetUser(user.ID))
	})

	t.Run("update with no changes reports none", func(t *testing.T) {
		user := store.GetUser(store.Users()[1].ID)
		changed, err := store.UpdateUser(user)
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("update with changes reports them", func(t *testing.T) {
		user := store.Users()[1]
		user.Username = "alice-renamed"
		changed, err := store.UpdateUser(user)
		require.NoError(t, err)
		assert.True(t, changed)

		var row entities.User
		require.NoError(t, store.db.First(&row, "id = ?", user.ID).Error)
		assert.Equal(t, "alice-renamed", row.Username)
	})

	t.Run("update of missing id reports no changes", func(t *testing.T) {
		changed, err := store.UpdateUser(&entities.User{ID: "nope", Username: "ghost"})
		require.NoError(t, err)
		assert.False(t, changed)
	})

	t.Run("remove filters the mirror", func(t *testing.T) {
		user := &entities.User{Username: "bob"}
		require.NoError(t, store.CreateUser(user))
		before := len(store.Users())

		require.NoError(t, store.RemoveUser(user.ID))
		assert.Len(t, store.Users(), before-1)
		assert.Nil(t, store.GetUser(user.ID))
	})

	t.Run("remove of missing id is a no-op", func(t *testing.T) {
		before := len(store.Users())
		require.NoError(t, store.RemoveUser("nope"))
		assert.Len(t, store.Users(), before)
	})

	t.Run("bulk update stops at first failure", func(t *testing.T) {
		u1 := &entities.User{Username: "bulk-1"}
		u3 := &entities.User{Username: "bulk-3"}
		require.NoError(t, store.CreateUser(u1))
		require.NoError(t, store.CreateUser(u3))

		u1.Username = "bulk-1-renamed"
		u3.Username = "bulk-3-renamed"
		bad := &entities.User{Username: "no-id"}

		updated, err := store.UpdateBulkUsers([]*entities.User{u1, bad, u3})
		assert.Equal(t, 1, updated)

		var bulkErr *BulkError
		require.ErrorAs(t, err, &bulkErr)
		assert.Equal(t, 1, bulkErr.Applied)
		assert.ErrorIs(t, err, ErrMissingID)

		// u3 was never attempted.
		var row entities.User
		require.NoError(t, store.db.First(&row, "id = ?", u3.ID).Error)
		assert.Equal(t, "bulk-3", row.Username)
	})
}

func TestLibraryItemOperations(t *testing.T) {
	store := setupTestStore(t)

	t.Run("create writes media and item rows", func(t *testing.T) {
		item := createBookItem(t, store, "Hyperion")
		assert.Equal(t, entities.MediaTypeBook, item.MediaType)
		assert.Equal(t, item.Book.ID, item.MediaID)

		var bookRow entities.Book
		require.NoError(t, store.db.First(&bookRow, "id = ?", item.MediaID).Error)
		assert.Equal(t, "Hyperion", bookRow.Title)
		assert.Same(t, item, store.GetLibraryItem(item.ID))
	})

	t.Run("create without media is rejected", func(t *testing.T) {
		err := store.CreateLibraryItem(&entities.LibraryItem{Path: "/nowhere"})
		assert.ErrorIs(t, err, ErrMissingMedia)
	})

	t.Run("update propagates media changes", func(t *testing.T) {
		item := createBookItem(t, store, "Ubik")
		changed, err := store.UpdateLibraryItem(item)
		require.NoError(t, err)
		assert.False(t, changed)

		item.Book.Title = "Ubik (Revised)"
		changed, err = store.UpdateLibraryItem(item)
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("bulk update stops at first failure", func(t *testing.T) {
		i1 := createBookItem(t, store, "Bulk One")
		i3 := createBookItem(t, store, "Bulk Three")
		i1.Path = "/books/bulk-one-moved"
		i3.Path = "/books/bulk-three-moved"
		bad := &entities.LibraryItem{} // No id

		updated, err := store.UpdateBulkLibraryItems([]*entities.LibraryItem{i1, bad, i3})
		assert.Equal(t, 1, updated)

		var bulkErr *BulkError
		require.ErrorAs(t, err, &bulkErr)
		assert.Equal(t, 1, bulkErr.Applied)

		var row entities.LibraryItem
		require.NoError(t, store.db.First(&row, "id = ?", i3.ID).Error)
		assert.Equal(t, "/books/Bulk Three", row.Path)
	})

	t.Run("remove deletes item and media", func(t *testing.T) {
		item := createBookItem(t, store, "Gone")
		require.NoError(t, store.RemoveLibraryItem(item.ID))
		assert.Nil(t, store.GetLibraryItem(item.ID))

		err := store.db.First(&entities.Book{}, "id = ?", item.MediaID).Error
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})

	t.Run("reload attaches media to items", func(t *testing.T) {
		item := createBookItem(t, store, "Persisted")
		reopened := newTestStore(t, store.cfg.Database.Path)
		require.NoError(t, reopened.Initialize(false))

		loaded := reopened.GetLibraryItem(item.ID)
		require.NotNil(t, loaded)
		require.NotNil(t, loaded.Book)
		assert.Equal(t, "Persisted", loaded.Book.Title)
	})
}

func TestSettings(t *testing.T) {
	store := setupTestStore(t)

	t.Run("server settings update refreshes the snapshot", func(t *testing.T) {
		store.ServerSettings().Language = "de"
		require.NoError(t, store.UpdateServerSettings())
		assert.Equal(t, "de", settingsstore.Snapshot().Language)
	})

	t.Run("server settings survive a reload", func(t *testing.T) {
		reopened := newTestStore(t, store.cfg.Database.Path)
		require.NoError(t, reopened.Initialize(false))
		assert.Equal(t, "de", reopened.ServerSettings().Language)
	})

	t.Run("generic settings are plain rows", func(t *testing.T) {
		require.NoError(t, store.SetSetting("scanner-cron", "0 4 * * *"))
		setting, err := store.GetSetting("scanner-cron")
		require.NoError(t, err)
		assert.Equal(t, "0 4 * * *", setting.Value)

		require.NoError(t, store.SetSetting("scanner-cron", "0 5 * * *"))
		setting, err = store.GetSetting("scanner-cron")
		require.NoError(t, err)
		assert.Equal(t, "0 5 * * *", setting.Value)

		require.NoError(t, store.RemoveSetting("scanner-cron"))
		_, err = store.GetSetting("scanner-cron")
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}
