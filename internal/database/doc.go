// Package database is the persistence layer of the media-library server.
//
// # Architecture
//
//	database/
//	├── database.go      # Store lifecycle: connect, schema, legacy import, working-set load
//	├── mirror.go        # In-memory working set owned by the Store
//	├── users.go         # User CRUD and root-user bootstrap
//	├── libraries.go     # Library + folder CRUD
//	├── libraryitems.go  # Library item + wrapped media CRUD, bulk variants
//	├── collections.go   # Collection CRUD with ordered join-row rebuilds
//	├── playlists.go     # Playlist CRUD with ordered, type-discriminated members
//	├── catalog.go       # Author/Series CRUD and book join rows
//	├── playback.go      # Sessions, devices, media progress (not mirrored)
//	├── settings.go      # Singleton settings + process snapshot refresh
//	├── feeds.go         # Feed surface over the polymorphic resolver
//	└── feeds/           # Polymorphic owner resolution (sub-package)
//
// # Consistency contract
//
// The backing sqlite store is the single source of truth. The Store keeps
// a write-through mirror of the working set: every mutation writes the row
// first and touches the mirror only after the write succeeds, so the
// mirror never reflects a failed write. Join rows (collection_books,
// playlist_media_items, book_authors, book_series) are never mirrored;
// they are rebuilt wholesale from the caller-supplied ordered member list
// on every full parent update.
//
// Bulk operations apply sequentially and stop at the first failure;
// BulkError reports how many items were durably applied. Nothing is
// rolled back.
//
// # Usage
//
//	store := database.New(cfg, database.WithLogger(logger))
//	if err := store.Initialize(false); err != nil {
//		// the server cannot start without its store
//	}
//	defer store.Close()
package database
