package database

import (
	"fmt"

	"gorm.io/gorm/clause"

	"medialib/internal/entities"
	"medialib/internal/settingsstore"
)

// Four singleton views are carved out of the raw settings table: server,
// email and notification settings live as JSON blobs under well-known
// keys; every other row belongs to the generic settings collection.

func (s *Store) ServerSettings() *settingsstore.ServerSettings {
	return s.serverSettings
}

func (s *Store) EmailSettings() *settingsstore.EmailSettings {
	return s.emailSettings
}

func (s *Store) NotificationSettings() *settingsstore.NotificationSettings {
	return s.notificationSettings
}

func (s *Store) Settings() []entities.Setting {
	return s.settings
}

// UpdateServerSettings persists the server-settings singleton and
// refreshes the process-wide snapshot other subsystems read.
func (s *Store) UpdateServerSettings() error {
	if err := s.saveSingleton(settingsstore.KeyServerSettings, s.serverSettings); err != nil {
		return err
	}
	settingsstore.Publish(*s.serverSettings)
	return nil
}

func (s *Store) UpdateEmailSettings() error {
	return s.saveSingleton(settingsstore.KeyEmailSettings, s.emailSettings)
}

func (s *Store) UpdateNotificationSettings() error {
	return s.saveSingleton(settingsstore.KeyNotificationSettings, s.notificationSettings)
}

func (s *Store) GetSetting(key string) (*entities.Setting, error) {
	var setting entities.Setting
	err := s.db.First(&setting, "key = ?", key).Error
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *Store) SetSetting(key, value string) error {
	if err := s.upsertSetting(key, value); err != nil {
		return err
	}
	for i := range s.settings {
		if s.settings[i].Key == key {
			s.settings[i].Value = value
			return nil
		}
	}
	s.settings = append(s.settings, entities.Setting{Key: key, Value: value})
	return nil
}

func (s *Store) RemoveSetting(key string) error {
	if err := s.db.Delete(&entities.Setting{}, "key = ?", key).Error; err != nil {
		return err
	}
	for i := range s.settings {
		if s.settings[i].Key == key {
			s.settings = append(s.settings[:i], s.settings[i+1:]...)
			break
		}
	}
	return nil
}

// loadSettings loads or seeds the singletons, collects the generic
// settings, publishes the snapshot, and rewrites the stored version
// stamp after a server upgrade.
func (s *Store) loadSettings() error {
	var rows []entities.Setting
	if err := s.db.Find(&rows).Error; err != nil {
		return err
	}
	byKey := make(map[string]string, len(rows))
	s.settings = s.settings[:0]
	for _, row := range rows {
		switch row.Key {
		case settingsstore.KeyServerSettings, settingsstore.KeyEmailSettings, settingsstore.KeyNotificationSettings:
			byKey[row.Key] = row.Value
		default:
			s.settings = append(s.settings, row)
		}
	}

	s.serverSettings = settingsstore.DefaultServerSettings(s.cfg.Server.Version)
	if raw, ok := byKey[settingsstore.KeyServerSettings]; ok {
		if err := settingsstore.Decode(raw, s.serverSettings); err != nil {
			return fmt.Errorf("decode server settings: %w", err)
		}
	} else if err := s.saveSingleton(settingsstore.KeyServerSettings, s.serverSettings); err != nil {
		return err
	}

	s.emailSettings = settingsstore.DefaultEmailSettings()
	if raw, ok := byKey[settingsstore.KeyEmailSettings]; ok {
		if err := settingsstore.Decode(raw, s.emailSettings); err != nil {
			return fmt.Errorf("decode email settings: %w", err)
		}
	} else if err := s.saveSingleton(settingsstore.KeyEmailSettings, s.emailSettings); err != nil {
		return err
	}

	s.notificationSettings = settingsstore.DefaultNotificationSettings()
	if raw, ok := byKey[settingsstore.KeyNotificationSettings]; ok {
		if err := settingsstore.Decode(raw, s.notificationSettings); err != nil {
			return fmt.Errorf("decode notification settings: %w", err)
		}
	} else if err := s.saveSingleton(settingsstore.KeyNotificationSettings, s.notificationSettings); err != nil {
		return err
	}

	settingsstore.Publish(*s.serverSettings)

	if s.cfg.Server.Version != "" && s.serverSettings.Version != s.cfg.Server.Version {
		s.log.Info("server upgrade detected",
			"from", s.serverSettings.Version,
			"to", s.cfg.Server.Version)
		s.serverSettings.Version = s.cfg.Server.Version
		return s.UpdateServerSettings()
	}
	return nil
}

func (s *Store) saveSingleton(key string, v any) error {
	raw, err := settingsstore.Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.upsertSetting(key, raw)
}

func (s *Store) upsertSetting(key, value string) error {
	row := entities.Setting{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
}
