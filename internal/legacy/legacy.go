// Package legacy is the boundary to the one-time import of an old
// directory-based store. Only the trigger contract lives here; the
// import parsing belongs to the importer wired in by the caller.
package legacy

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gorm.io/gorm"
)

// Migrator decides whether a legacy-format store should be imported into
// a freshly created database, and performs the import. ShouldMigrate is
// only consulted when the database is fresh (newly created or force
// rebuilt); Migrate runs at most once per store lifetime, before the
// working set is loaded.
type Migrator interface {
	ShouldMigrate(forceRebuild bool) bool
	Migrate(db *gorm.DB) error
}

const markerFile = ".migrated"

var _ Migrator = (*DirStore)(nil)

// DirStore detects a legacy directory-format store under Root. The
// legacy layout kept per-entity subdirectories; users/ and settings/
// always existed, so their presence is the detection signal.
type DirStore struct {
	Root     string
	log      *log.Logger
	importer func(db *gorm.DB, root string) error
}

func NewDirStore(root string, logger *log.Logger) *DirStore {
	return &DirStore{Root: root, log: logger}
}

// ShouldMigrate reports whether a legacy store is present and not yet
// consumed. A forced rebuild re-imports even when the consumed marker
// exists, since the rebuilt database starts empty.
func (d *DirStore) ShouldMigrate(forceRebuild bool) bool {
	if !d.hasLegacyStore() {
		return false
	}
	if forceRebuild {
		return true
	}
	_, err := os.Stat(filepath.Join(d.Root, markerFile))
	return os.IsNotExist(err)
}

// Migrate hands the legacy directories to the configured importer and
// stamps the store as consumed. The importer itself is registered by the
// caller; DirStore only owns the trigger bookkeeping.
func (d *DirStore) Migrate(db *gorm.DB) error {
	d.log.Info("legacy store detected, importing", "root", d.Root)
	if err := d.runImport(db); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(d.Root, markerFile), []byte{}, 0o644)
}

func (d *DirStore) runImport(db *gorm.DB) error {
	// Import parsing is owned by the legacy importer collaborator.
	// Nothing to do when none is registered.
	if d.importer == nil {
		return nil
	}
	return d.importer(db, d.Root)
}

// WithImporter registers the import function invoked by Migrate.
func (d *DirStore) WithImporter(fn func(db *gorm.DB, root string) error) *DirStore {
	d.importer = fn
	return d
}

func (d *DirStore) hasLegacyStore() bool {
	for _, dir := range []string{"users", "settings"} {
		info, err := os.Stat(filepath.Join(d.Root, dir))
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}
