package database

import (
	"slices"

	"medialib/internal/entities"
)

// mirror is the in-memory working set, owned exclusively by the Store.
// It is a write-through read cache: rows land here only after the
// backing store accepted them. There is no locking; callers serialize
// structurally conflicting writes to the same entity id.
type mirror struct {
	users        []*entities.User
	libraries    []*entities.Library
	libraryItems []*entities.LibraryItem
	collections  []*entities.Collection
	playlists    []*entities.Playlist
	authors      []*entities.Author
	series       []*entities.Series
	feeds        []*entities.Feed
}

func newMirror() *mirror {
	return &mirror{}
}

func (m *mirror) reset() {
	*m = mirror{}
}

func (m *mirror) user(id string) *entities.User {
	for _, u := range m.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (m *mirror) library(id string) *entities.Library {
	for _, l := range m.libraries {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (m *mirror) libraryItem(id string) *entities.LibraryItem {
	for _, li := range m.libraryItems {
		if li.ID == id {
			return li
		}
	}
	return nil
}

func (m *mirror) collection(id string) *entities.Collection {
	for _, c := range m.collections {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (m *mirror) playlist(id string) *entities.Playlist {
	for _, p := range m.playlists {
		if p.ID == id {
			return p
		}
	}
	return nil
}

func (m *mirror) removeUser(id string) {
	m.users = slices.DeleteFunc(m.users, func(u *entities.User) bool { return u.ID == id })
}

func (m *mirror) removeLibrary(id string) {
	m.libraries = slices.DeleteFunc(m.libraries, func(l *entities.Library) bool { return l.ID == id })
}

func (m *mirror) removeLibraryItem(id string) {
	m.libraryItems = slices.DeleteFunc(m.libraryItems, func(li *entities.LibraryItem) bool { return li.ID == id })
}

func (m *mirror) removeCollection(id string) {
	m.collections = slices.DeleteFunc(m.collections, func(c *entities.Collection) bool { return c.ID == id })
}

func (m *mirror) removePlaylist(id string) {
	m.playlists = slices.DeleteFunc(m.playlists, func(p *entities.Playlist) bool { return p.ID == id })
}

func (m *mirror) removeAuthor(id string) {
	m.authors = slices.DeleteFunc(m.authors, func(a *entities.Author) bool { return a.ID == id })
}

func (m *mirror) removeSeries(id string) {
	m.series = slices.DeleteFunc(m.series, func(se *entities.Series) bool { return se.ID == id })
}

func (m *mirror) removeFeed(id string) {
	m.feeds = slices.DeleteFunc(m.feeds, func(f *entities.Feed) bool { return f.ID == id })
}
