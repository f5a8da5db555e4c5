package database

import (
	"errors"

	"gorm.io/gorm"

	"medialib/internal/entities"
)

// Playback sessions, devices and media progress are write-mostly state
// tied to a user; they are never mirrored in memory.

func (s *Store) GetPlaybackSession(id string) (*entities.PlaybackSession, error) {
	var session entities.PlaybackSession
	err := s.db.First(&session, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Store) GetPlaybackSessionsForUser(userID string) ([]entities.PlaybackSession, error) {
	var sessions []entities.PlaybackSession
	err := s.db.Where("user_id = ?", userID).Order("updated_at DESC").Find(&sessions).Error
	return sessions, err
}

func (s *Store) CreatePlaybackSession(session *entities.PlaybackSession) error {
	return s.db.Create(session).Error
}

func (s *Store) UpdatePlaybackSession(session *entities.PlaybackSession) (bool, error) {
	return updateIfChanged(s.db, session.ID, session)
}

func (s *Store) RemovePlaybackSession(id string) error {
	return s.db.Delete(&entities.PlaybackSession{}, "id = ?", id).Error
}

// GetDeviceByDeviceID looks up a device by its client-generated
// identifier. A missing device returns (nil, nil).
func (s *Store) GetDeviceByDeviceID(deviceID string) (*entities.Device, error) {
	var device entities.Device
	err := s.db.Where("device_id = ?", deviceID).First(&device).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &device, nil
}

func (s *Store) CreateDevice(device *entities.Device) error {
	return s.db.Create(device).Error
}

func (s *Store) UpdateDevice(device *entities.Device) (bool, error) {
	return updateIfChanged(s.db, device.ID, device)
}

// UpsertMediaProgress writes progress keyed by (user, media item),
// reusing the existing row's id when one exists.
func (s *Store) UpsertMediaProgress(progress *entities.MediaProgress) error {
	var existing entities.MediaProgress
	err := s.db.Where("user_id = ? AND media_item_id = ?", progress.UserID, progress.MediaItemID).
		First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.db.Create(progress).Error
	case err != nil:
		return err
	default:
		progress.ID = existing.ID
		return s.db.Save(progress).Error
	}
}

func (s *Store) RemoveMediaProgress(id string) error {
	return s.db.Delete(&entities.MediaProgress{}, "id = ?", id).Error
}
