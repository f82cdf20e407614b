package model

import "time"

// SettingsID is the primary key of the single settings row.
const SettingsID = "app_settings"

// Sync run outcomes persisted in AppSettings.
const (
	SyncStatusSuccess = "success"
	SyncStatusPartial = "partial"
	SyncStatusFailed  = "failed"
)

// AppSettings is the singleton operator-settings row. The scheduler reads the
// auto-sync fields on start and writes the last* fields at the end of each run.
type AppSettings struct {
	ID                   string     `gorm:"primaryKey;size:32" json:"id"`
	AutoSyncEnabled      bool       `json:"autoSyncEnabled"`
	AutoSyncIntervalMins int        `json:"autoSyncIntervalMins"`
	LastSyncAt           *time.Time `json:"lastSyncAt"`
	LastSyncStatus       string     `gorm:"size:16" json:"lastSyncStatus"`
	LastSyncMessage      string     `gorm:"size:1024" json:"lastSyncMessage"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}
