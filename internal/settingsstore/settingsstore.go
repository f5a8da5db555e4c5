// Package settingsstore defines the typed settings singletons carved out
// of the raw settings table, and the process-wide server-settings
// snapshot other subsystems read without going through the store.
package settingsstore

import (
	"encoding/json"
	"sync/atomic"
)

// Well-known keys for the singleton categories. Any other key is a plain
// named setting.
const (
	KeyServerSettings       = "server-settings"
	KeyEmailSettings        = "email-settings"
	KeyNotificationSettings = "notification-settings"
)

// ServerSettings is the server-wide configuration singleton. A copy is
// published as the process snapshot on every update.
type ServerSettings struct {
	Version                string `json:"version"`
	Language               string `json:"language"`
	LogLevel               int    `json:"logLevel"`
	ScannerParseSubtitle   bool   `json:"scannerParseSubtitle"`
	ScannerFindCovers      bool   `json:"scannerFindCovers"`
	StoreCoverWithItem     bool   `json:"storeCoverWithItem"`
	StoreMetadataWithItem  bool   `json:"storeMetadataWithItem"`
	SortingIgnorePrefix    bool   `json:"sortingIgnorePrefix"`
	RateLimitLoginRequests int    `json:"rateLimitLoginRequests"`
	DateFormat             string `json:"dateFormat"`
}

type EmailSettings struct {
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Secure      bool   `json:"secure"`
	User        string `json:"user"`
	Pass        string `json:"pass"`
	FromAddress string `json:"fromAddress"`
	TestAddress string `json:"testAddress"`
}

type NotificationSettings struct {
	AppriseAPIURL     string `json:"appriseApiUrl"`
	MaxFailedAttempts int    `json:"maxFailedAttempts"`
	MaxQueue          int    `json:"maxNotificationQueue"`
	NotificationDelay int    `json:"notificationDelay"` // Milliseconds
}

// DefaultServerSettings returns the singleton seeded into a fresh store.
func DefaultServerSettings(version string) *ServerSettings {
	return &ServerSettings{
		Version:                version,
		Language:               "en-us",
		RateLimitLoginRequests: 10,
		DateFormat:             "MM/dd/yyyy",
	}
}

func DefaultEmailSettings() *EmailSettings {
	return &EmailSettings{Port: 465, Secure: true}
}

func DefaultNotificationSettings() *NotificationSettings {
	return &NotificationSettings{
		MaxFailedAttempts: 5,
		MaxQueue:          20,
		NotificationDelay: 1000,
	}
}

// Encode serializes a settings singleton for its settings-table row.
func Encode(v any) (string, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// Decode deserializes a settings-table row into target.
func Decode(raw string, target any) error {
	return json.Unmarshal([]byte(raw), target)
}

var snapshot atomic.Pointer[ServerSettings]

// Publish replaces the process-wide server-settings snapshot with a copy
// of s. Called by the persistence facade whenever server settings change.
func Publish(s ServerSettings) {
	snapshot.Store(&s)
}

// Snapshot returns the current server-settings snapshot. The returned
// value is a copy; it is read-only by convention and may be stale
// relative to an in-flight update.
func Snapshot() ServerSettings {
	if s := snapshot.Load(); s != nil {
		return *s
	}
	return ServerSettings{}
}
