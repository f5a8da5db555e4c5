package entities

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Primary keys are UUIDv4 strings assigned on first insert unless the
// caller already set one.

func ensureID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error            { ensureID(&u.ID); return nil }
func (l *Library) BeforeCreate(*gorm.DB) error         { ensureID(&l.ID); return nil }
func (f *LibraryFolder) BeforeCreate(*gorm.DB) error   { ensureID(&f.ID); return nil }
func (b *Book) BeforeCreate(*gorm.DB) error            { ensureID(&b.ID); return nil }
func (p *Podcast) BeforeCreate(*gorm.DB) error         { ensureID(&p.ID); return nil }
func (e *PodcastEpisode) BeforeCreate(*gorm.DB) error  { ensureID(&e.ID); return nil }
func (l *LibraryItem) BeforeCreate(*gorm.DB) error     { ensureID(&l.ID); return nil }
func (a *Author) BeforeCreate(*gorm.DB) error          { ensureID(&a.ID); return nil }
func (s *Series) BeforeCreate(*gorm.DB) error          { ensureID(&s.ID); return nil }
func (c *Collection) BeforeCreate(*gorm.DB) error      { ensureID(&c.ID); return nil }
func (p *Playlist) BeforeCreate(*gorm.DB) error        { ensureID(&p.ID); return nil }
func (d *Device) BeforeCreate(*gorm.DB) error          { ensureID(&d.ID); return nil }
func (s *PlaybackSession) BeforeCreate(*gorm.DB) error { ensureID(&s.ID); return nil }
func (m *MediaProgress) BeforeCreate(*gorm.DB) error   { ensureID(&m.ID); return nil }
func (f *Feed) BeforeCreate(*gorm.DB) error            { ensureID(&f.ID); return nil }
func (e *FeedEpisode) BeforeCreate(*gorm.DB) error     { ensureID(&e.ID); return nil }
