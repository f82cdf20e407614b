package repository

import (
	"errors"
	"fmt"
	"time"

	"github.com/Nullybeats/tampamixtape/model"

	"gorm.io/gorm"
)

// Defaults used when the settings row does not exist yet.
const (
	defaultAutoSyncEnabled      = true
	defaultAutoSyncIntervalMins = 1440
)

// SettingsRepository manages the singleton application-settings row.
type SettingsRepository interface {
	Get() (*model.AppSettings, error)
	UpdateSyncResult(lastSyncAt time.Time, status, message string) error
	UpdateAutoSync(enabled bool, intervalMins int) error
}

type gormSettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository creates a GORM-backed SettingsRepository.
func NewSettingsRepository(db *gorm.DB) SettingsRepository {
	return &gormSettingsRepository{db: db}
}

// Get returns the settings row, creating it with defaults on first access.
func (r *gormSettingsRepository) Get() (*model.AppSettings, error) {
	var settings model.AppSettings
	err := r.db.First(&settings, "id = ?", model.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = model.AppSettings{
			ID:                   model.SettingsID,
			AutoSyncEnabled:      defaultAutoSyncEnabled,
			AutoSyncIntervalMins: defaultAutoSyncIntervalMins,
		}
		if err := r.db.Create(&settings).Error; err != nil {
			return nil, fmt.Errorf("failed to create settings row: %w", err)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load settings row: %w", err)
	}
	return &settings, nil
}

// UpdateSyncResult records the outcome of a sync run.
func (r *gormSettingsRepository) UpdateSyncResult(lastSyncAt time.Time, status, message string) error {
	if _, err := r.Get(); err != nil {
		return err
	}
	err := r.db.Model(&model.AppSettings{}).
		Where("id = ?", model.SettingsID).
		Updates(map[string]interface{}{
			"last_sync_at":      lastSyncAt,
			"last_sync_status":  status,
			"last_sync_message": message,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to record sync result: %w", err)
	}
	return nil
}

// UpdateAutoSync stores the operator-configured schedule.
func (r *gormSettingsRepository) UpdateAutoSync(enabled bool, intervalMins int) error {
	if _, err := r.Get(); err != nil {
		return err
	}
	err := r.db.Model(&model.AppSettings{}).
		Where("id = ?", model.SettingsID).
		Updates(map[string]interface{}{
			"auto_sync_enabled":       enabled,
			"auto_sync_interval_mins": intervalMins,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to update auto sync settings: %w", err)
	}
	return nil
}
