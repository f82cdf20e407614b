package repository

import (
	"fmt"

	"github.com/Nullybeats/tampamixtape/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReleaseRepository defines the release data operations used by the sync job.
type ReleaseRepository interface {
	UpsertBySpotifyID(release *model.Release) error
	ListByArtist(artistID int64) ([]model.Release, error)
}

type gormReleaseRepository struct {
	db *gorm.DB
}

// NewReleaseRepository creates a GORM-backed ReleaseRepository.
func NewReleaseRepository(db *gorm.DB) ReleaseRepository {
	return &gormReleaseRepository{db: db}
}

// UpsertBySpotifyID creates the release if its Spotify ID is unknown, else
// overwrites the mutable fields of the existing row.
func (r *gormReleaseRepository) UpsertBySpotifyID(release *model.Release) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "spotify_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "type", "image", "release_date", "spotify_url",
			"artist_id", "artist_name", "artist_slug", "updated_at",
		}),
	}).Create(release).Error
	if err != nil {
		return fmt.Errorf("failed to upsert release %s: %w", release.SpotifyID, err)
	}
	return nil
}

// ListByArtist returns an artist's releases, newest first.
func (r *gormReleaseRepository) ListByArtist(artistID int64) ([]model.Release, error) {
	var releases []model.Release
	err := r.db.
		Where("artist_id = ?", artistID).
		Order("release_date DESC").
		Find(&releases).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list releases for artist %d: %w", artistID, err)
	}
	return releases, nil
}
