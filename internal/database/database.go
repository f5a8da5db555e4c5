package database

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/charmbracelet/log"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"medialib/internal/config"
	"medialib/internal/database/feeds"
	"medialib/internal/entities"
	"medialib/internal/legacy"
	"medialib/internal/settingsstore"
)

// Store is the persistence facade. It owns the sqlite connection, the
// in-memory mirror of the working set, and the settings singletons.
type Store struct {
	cfg      *config.Config
	log      *log.Logger
	migrator legacy.Migrator

	db     *gorm.DB
	isNew  bool // Fresh database file (absent on startup, or force rebuilt)
	mirror *mirror
	feeds  *feeds.Repository

	serverSettings       *settingsstore.ServerSettings
	emailSettings        *settingsstore.EmailSettings
	notificationSettings *settingsstore.NotificationSettings
	settings             []entities.Setting
}

type Option func(*Store)

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.log = logger }
}

// WithMigrator wires the legacy-store importer consulted on a fresh
// database.
func WithMigrator(m legacy.Migrator) Option {
	return func(s *Store) { s.migrator = m }
}

func New(cfg *config.Config, opts ...Option) *Store {
	s := &Store{
		cfg:    cfg,
		log:    log.Default().WithPrefix("database"),
		mirror: newMirror(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Initialize connects to the backing store, materializes the schema,
// runs the one-time legacy import when applicable, and loads the
// working set into the mirror. A connection or schema failure is fatal
// to the caller: the server cannot start without its store.
func (s *Store) Initialize(forceRebuild bool) error {
	dbPath := s.cfg.Database.Path
	s.isNew = forceRebuild || !fileExists(dbPath)
	if s.isNew && !forceRebuild {
		s.log.Info("database file not found, creating", "path", dbPath)
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return fmt.Errorf("create database directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	s.db = db
	s.feeds = feeds.NewRepository(db, s.log.WithPrefix("feeds"))

	if err := s.buildSchema(forceRebuild); err != nil {
		return fmt.Errorf("materialize schema: %w", err)
	}

	if s.isNew && s.migrator != nil && s.migrator.ShouldMigrate(forceRebuild) {
		s.log.Info("fresh database and legacy store detected, running one-time import")
		if err := s.migrator.Migrate(s.db); err != nil {
			return fmt.Errorf("legacy import: %w", err)
		}
	}

	start := time.Now()
	if err := s.loadData(); err != nil {
		return fmt.Errorf("load working set: %w", err)
	}
	if err := s.loadSettings(); err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	s.log.Info("database initialized",
		"path", dbPath,
		"items", len(s.mirror.libraryItems),
		"users", len(s.mirror.users),
		"loadTime", time.Since(start))
	return nil
}

func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// IsNew reports whether Initialize created the database file from
// scratch (or force rebuilt it).
func (s *Store) IsNew() bool {
	return s.isNew
}

func allModels() []any {
	return []any{
		&entities.User{},
		&entities.Library{},
		&entities.LibraryFolder{},
		&entities.Book{},
		&entities.Podcast{},
		&entities.PodcastEpisode{},
		&entities.LibraryItem{},
		&entities.MediaProgress{},
		&entities.Series{},
		&entities.Author{},
		&entities.Collection{},
		&entities.CollectionBook{},
		&entities.Playlist{},
		&entities.PlaylistMediaItem{},
		&entities.Device{},
		&entities.PlaybackSession{},
		&entities.Feed{},
		&entities.FeedEpisode{},
		&entities.Setting{},
	}
}

func (s *Store) buildSchema(forceRebuild bool) error {
	if forceRebuild {
		s.log.Warn("force rebuild requested, dropping all tables")
		if err := s.db.Migrator().DropTable(allModels()...); err != nil {
			return fmt.Errorf("drop tables: %w", err)
		}
		if err := s.db.Migrator().DropTable(&entities.BookAuthor{}, &entities.BookSeries{}); err != nil {
			return fmt.Errorf("drop join tables: %w", err)
		}
		s.mirror.reset()
	}

	// The book join tables carry their own models (BookSeries has a
	// sequence column), so they are registered instead of letting the
	// many2many tags synthesize them.
	if err := s.db.SetupJoinTable(&entities.Book{}, "Authors", &entities.BookAuthor{}); err != nil {
		return fmt.Errorf("wire book_authors: %w", err)
	}
	if err := s.db.SetupJoinTable(&entities.Book{}, "Series", &entities.BookSeries{}); err != nil {
		return fmt.Errorf("wire book_series: %w", err)
	}

	if err := s.db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	return nil
}

// loadData loads the full working set into the mirror. Join rows stay
// in the backing store only.
func (s *Store) loadData() error {
	s.mirror.reset()

	var users []*entities.User
	if err := s.db.Find(&users).Error; err != nil {
		return err
	}
	s.mirror.users = users

	var libraries []*entities.Library
	if err := s.db.Preload("Folders").Find(&libraries).Error; err != nil {
		return err
	}
	s.mirror.libraries = libraries

	if err := s.loadLibraryItems(); err != nil {
		return err
	}

	var collections []*entities.Collection
	if err := s.db.Find(&collections).Error; err != nil {
		return err
	}
	s.mirror.collections = collections

	var playlists []*entities.Playlist
	if err := s.db.Find(&playlists).Error; err != nil {
		return err
	}
	s.mirror.playlists = playlists

	var authors []*entities.Author
	if err := s.db.Find(&authors).Error; err != nil {
		return err
	}
	s.mirror.authors = authors

	var series []*entities.Series
	if err := s.db.Find(&series).Error; err != nil {
		return err
	}
	s.mirror.series = series

	var feedRows []*entities.Feed
	if err := s.db.Preload("Episodes").Find(&feedRows).Error; err != nil {
		return err
	}
	s.mirror.feeds = feedRows

	return nil
}

// loadLibraryItems loads all items and attaches each one's wrapped
// media row.
func (s *Store) loadLibraryItems() error {
	var items []*entities.LibraryItem
	if err := s.db.Find(&items).Error; err != nil {
		return err
	}

	var bookIDs, podcastIDs []string
	for _, li := range items {
		switch li.MediaType {
		case entities.MediaTypeBook:
			bookIDs = append(bookIDs, li.MediaID)
		case entities.MediaTypePodcast:
			podcastIDs = append(podcastIDs, li.MediaID)
		}
	}

	books := make(map[string]*entities.Book)
	if len(bookIDs) > 0 {
		var rows []*entities.Book
		if err := s.db.Preload("Authors").Preload("Series").Where("id IN ?", bookIDs).Find(&rows).Error; err != nil {
			return err
		}
		for _, b := range rows {
			books[b.ID] = b
		}
	}

	podcasts := make(map[string]*entities.Podcast)
	if len(podcastIDs) > 0 {
		var rows []*entities.Podcast
		if err := s.db.Preload("Episodes", func(db *gorm.DB) *gorm.DB {
			return db.Order("`index` ASC")
		}).Where("id IN ?", podcastIDs).Find(&rows).Error; err != nil {
			return err
		}
		for _, p := range rows {
			podcasts[p.ID] = p
		}
	}

	for _, li := range items {
		switch li.MediaType {
		case entities.MediaTypeBook:
			li.Book = books[li.MediaID]
		case entities.MediaTypePodcast:
			li.Podcast = podcasts[li.MediaID]
		}
	}
	s.mirror.libraryItems = items
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

var (
	timeType    = reflect.TypeOf(time.Time{})
	timePtrType = reflect.TypeOf(&time.Time{})
)

// rowChanged reports whether updated differs from current in any
// persisted column. Timestamps, association slices and unpersisted
// fields are ignored.
func rowChanged(current, updated any) bool {
	return !reflect.DeepEqual(persistedView(current), persistedView(updated))
}

// persistedView copies the struct and zeroes everything that is not a
// plain persisted column. Times are stripped of wall-clock monotonic
// readings and normalized to UTC so a database round trip compares
// equal.
func persistedView(v any) any {
	rv := reflect.Indirect(reflect.ValueOf(v))
	cp := reflect.New(rv.Type()).Elem()
	cp.Set(rv)
	t := rv.Type()
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		fv := cp.Field(i)
		switch {
		case f.Name == "CreatedAt" || f.Name == "UpdatedAt":
			fv.SetZero()
		case f.Tag.Get("gorm") == "-":
			fv.SetZero()
		case f.Type.Kind() == reflect.Slice:
			fv.SetZero()
		case f.Type == timeType:
			tt := fv.Interface().(time.Time)
			fv.Set(reflect.ValueOf(tt.Round(0).UTC()))
		case f.Type == timePtrType:
			if !fv.IsNil() {
				norm := fv.Interface().(*time.Time).Round(0).UTC()
				fv.Set(reflect.ValueOf(&norm))
			}
		}
	}
	return cp.Interface()
}

// updateIfChanged persists updated and reports whether any column
// actually changed. A missing row reports no changes instead of
// failing; associations are never written through this path.
func updateIfChanged[T any](db *gorm.DB, id string, updated *T) (bool, error) {
	if id == "" {
		return false, ErrMissingID
	}
	current := new(T)
	err := db.First(current, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !rowChanged(current, updated) {
		return false, nil
	}
	if err := db.Omit(clause.Associations).Save(updated).Error; err != nil {
		return false, err
	}
	return true, nil
}
