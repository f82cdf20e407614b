package repository

import (
	"fmt"

	"github.com/Nullybeats/tampamixtape/model"

	"gorm.io/gorm"
)

// ArtistRepository defines the artist data operations used by the sync job.
type ArtistRepository interface {
	ListSyncable() ([]model.Artist, error)
	UpdateSyncedFields(artistID int64, fields map[string]interface{}) error
}

type gormArtistRepository struct {
	db *gorm.DB
}

// NewArtistRepository creates a GORM-backed ArtistRepository.
func NewArtistRepository(db *gorm.DB) ArtistRepository {
	return &gormArtistRepository{db: db}
}

// ListSyncable returns all approved artists with a linked Spotify ID.
func (r *gormArtistRepository) ListSyncable() ([]model.Artist, error) {
	var artists []model.Artist
	err := r.db.
		Where("status = ? AND role = ? AND spotify_id IS NOT NULL", model.StatusApproved, model.RoleArtist).
		Order("id").
		Find(&artists).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list syncable artists: %w", err)
	}
	return artists, nil
}

// UpdateSyncedFields applies a partial update to one artist. Only the given
// columns are touched.
func (r *gormArtistRepository) UpdateSyncedFields(artistID int64, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	err := r.db.Model(&model.Artist{}).Where("id = ?", artistID).Updates(fields).Error
	if err != nil {
		return fmt.Errorf("failed to update artist %d: %w", artistID, err)
	}
	return nil
}
