package model

import "time"

// Artist roles and moderation statuses. Only approved artists with a linked
// Spotify ID take part in the background sync.
const (
	RoleArtist     = "ARTIST"
	StatusApproved = "APPROVED"
	StatusPending  = "PENDING"
	StatusRejected = "REJECTED"
)

// Artist is a registered directory member.
type Artist struct {
	ID         int64     `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Slug       string    `gorm:"size:191;uniqueIndex" json:"slug"`
	Role       string    `gorm:"size:32;index" json:"role"`
	Status     string    `gorm:"size:32;index" json:"status"`
	SpotifyID  *string   `gorm:"size:32;index" json:"spotifyId"`
	Popularity *int      `json:"popularity"`
	Followers  *int64    `json:"followers"`
	Genres     string    `gorm:"size:512" json:"genres"`
	Avatar     string    `gorm:"size:512" json:"avatar"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
