package model

import "time"

// Release type labels as shown in the directory.
const (
	ReleaseTypeAlbum  = "Album"
	ReleaseTypeSingle = "Single"
	ReleaseTypeEP     = "EP"
)

// Release is one upstream release row, keyed by the Spotify release ID.
// Rows are upserted by the sync job and never deleted, even when the release
// disappears upstream.
type Release struct {
	ID          int64     `gorm:"primaryKey" json:"id"`
	SpotifyID   string    `gorm:"size:32;uniqueIndex;not null" json:"spotifyId"`
	Name        string    `gorm:"size:255" json:"name"`
	Type        string    `gorm:"size:16" json:"type"`
	Image       string    `gorm:"size:512" json:"image"`
	ReleaseDate string    `gorm:"size:16" json:"releaseDate"`
	SpotifyURL  string    `gorm:"size:512" json:"spotifyUrl"`
	ArtistID    int64     `gorm:"index" json:"artistId"`
	ArtistName  string    `gorm:"size:255" json:"artistName"`
	ArtistSlug  string    `gorm:"size:191" json:"artistSlug"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
