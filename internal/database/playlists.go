package database

import (
	"gorm.io/gorm"

	"medialib/internal/entities"
)

// PlaylistItemRef identifies a playlist member by its library item and,
// for podcasts, the episode within it. An episode id switches the
// member's discriminator to podcastEpisode.
type PlaylistItemRef struct {
	LibraryItemID string
	EpisodeID     string
}

func (s *Store) Playlists() []*entities.Playlist {
	return s.mirror.playlists
}

func (s *Store) GetPlaylist(id string) *entities.Playlist {
	return s.mirror.playlist(id)
}

// CreatePlaylist writes the playlist row, then derives its ordered
// member rows from items. Unresolvable refs are silently dropped; the
// remaining members keep a contiguous order starting at 1.
func (s *Store) CreatePlaylist(playlist *entities.Playlist, items []PlaylistItemRef) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(playlist).Error; err != nil {
			return err
		}
		rows := s.buildPlaylistMediaItems(playlist.ID, items)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return err
	}
	s.mirror.playlists = append(s.mirror.playlists, playlist)
	return nil
}

// UpdatePlaylist persists the playlist row and rebuilds the entire
// member set from items. Last write wins. The returned bool reflects
// the playlist row only.
func (s *Store) UpdatePlaylist(playlist *entities.Playlist, items []PlaylistItemRef) (bool, error) {
	var changed bool
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		changed, err = updateIfChanged(tx, playlist.ID, playlist)
		if err != nil {
			return err
		}
		if err := tx.Where("playlist_id = ?", playlist.ID).Delete(&entities.PlaylistMediaItem{}).Error; err != nil {
			return err
		}
		rows := s.buildPlaylistMediaItems(playlist.ID, items)
		if len(rows) == 0 {
			return nil
		}
		return tx.Create(&rows).Error
	})
	if err != nil {
		return false, err
	}
	return changed, nil
}

func (s *Store) RemovePlaylist(id string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", id).Delete(&entities.PlaylistMediaItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entities.Playlist{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}
	s.mirror.removePlaylist(id)
	return nil
}

// GetPlaylistMediaItems returns the playlist's member rows in order.
func (s *Store) GetPlaylistMediaItems(playlistID string) ([]entities.PlaylistMediaItem, error) {
	var rows []entities.PlaylistMediaItem
	err := s.db.Where("playlist_id = ?", playlistID).
		Order("\"order\" ASC").
		Find(&rows).Error
	return rows, err
}

// buildPlaylistMediaItems maps ordered refs onto member rows. A ref
// with an episode id resolves to that episode; otherwise the item must
// wrap a book. Order is assigned over the refs that resolved.
func (s *Store) buildPlaylistMediaItems(playlistID string, items []PlaylistItemRef) []entities.PlaylistMediaItem {
	var rows []entities.PlaylistMediaItem
	order := 1
	for _, ref := range items {
		item := s.mirror.libraryItem(ref.LibraryItemID)
		if item == nil {
			continue
		}
		row := entities.PlaylistMediaItem{
			PlaylistID: playlistID,
			Order:      order,
		}
		if ref.EpisodeID != "" {
			row.MediaItemID = ref.EpisodeID
			row.MediaItemType = entities.MediaItemTypePodcastEpisode
		} else {
			if item.MediaType != entities.MediaTypeBook {
				continue
			}
			row.MediaItemID = item.MediaID
			row.MediaItemType = entities.MediaItemTypeBook
		}
		rows = append(rows, row)
		order++
	}
	return rows
}
