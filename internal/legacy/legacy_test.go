package legacy

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDirStore(t *testing.T) *DirStore {
	t.Helper()
	return NewDirStore(t.TempDir(), log.New(io.Discard))
}

func writeLegacyLayout(t *testing.T, root string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "users"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "settings"), 0o755))
}

func TestShouldMigrate(t *testing.T) {
	t.Run("no legacy store", func(t *testing.T) {
		d := newTestDirStore(t)
		assert.False(t, d.ShouldMigrate(false))
		assert.False(t, d.ShouldMigrate(true))
	})

	t.Run("legacy store present", func(t *testing.T) {
		d := newTestDirStore(t)
		writeLegacyLayout(t, d.Root)
		assert.True(t, d.ShouldMigrate(false))
	})

	t.Run("consumed store is not re-imported", func(t *testing.T) {
		d := newTestDirStore(t)
		writeLegacyLayout(t, d.Root)
		require.NoError(t, d.Migrate(nil))
		assert.False(t, d.ShouldMigrate(false))
	})

	t.Run("force rebuild re-imports a consumed store", func(t *testing.T) {
		d := newTestDirStore(t)
		writeLegacyLayout(t, d.Root)
		require.NoError(t, d.Migrate(nil))
		assert.True(t, d.ShouldMigrate(true))
	})
}

func TestMigrate(t *testing.T) {
	d := newTestDirStore(t)
	writeLegacyLayout(t, d.Root)

	var called bool
	d.WithImporter(func(db *gorm.DB, root string) error {
		called = true
		assert.Equal(t, d.Root, root)
		return nil
	})

	require.NoError(t, d.Migrate(nil))
	assert.True(t, called)

	_, err := os.Stat(filepath.Join(d.Root, markerFile))
	assert.NoError(t, err)
}
