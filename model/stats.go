package model

import "time"

// ArtistStats is the merged cross-platform stats document for one artist.
// It is what the aggregator caches and what the stats endpoints return.
type ArtistStats struct {
	Artist    ArtistInfo `json:"artist"`
	Platforms Platforms  `json:"platforms"`
	Totals    Totals     `json:"totals"`
	FetchedAt time.Time  `json:"fetchedAt"`
	Cached    bool       `json:"cached"`
}

// ArtistInfo is the identity block of a stats document, taken from Spotify
// when available and from the query otherwise.
type ArtistInfo struct {
	Name   string   `json:"name"`
	Image  string   `json:"image,omitempty"`
	Genres []string `json:"genres,omitempty"`
}

// Platforms holds one block per platform. A block is always present; a
// platform that was unreachable or unconfigured reports Available=false.
type Platforms struct {
	Spotify *SpotifyStats `json:"spotify"`
	YouTube *YouTubeStats `json:"youtube"`
	Lastfm  *LastfmStats  `json:"lastfm"`
}

// SpotifyStats is the Spotify block of a stats document.
type SpotifyStats struct {
	Available  bool       `json:"available"`
	Reason     string     `json:"reason,omitempty"`
	Followers  int64      `json:"followers,omitempty"`
	Popularity int        `json:"popularity,omitempty"`
	Genres     []string   `json:"genres,omitempty"`
	TopTracks  []TopTrack `json:"topTracks,omitempty"`
	Albums     int        `json:"albums,omitempty"`
	URL        string     `json:"url,omitempty"`
}

// TopTrack is one entry of the Spotify top-tracks list.
type TopTrack struct {
	Name       string `json:"name"`
	Popularity int    `json:"popularity"`
	URL        string `json:"url,omitempty"`
}

// YouTubeStats is the YouTube block of a stats document.
type YouTubeStats struct {
	Available   bool   `json:"available"`
	Reason      string `json:"reason,omitempty"`
	Channel     string `json:"channel,omitempty"`
	Subscribers int64  `json:"subscribers,omitempty"`
	Views       int64  `json:"views,omitempty"`
	Videos      int64  `json:"videos,omitempty"`
	URL         string `json:"url,omitempty"`
}

// LastfmStats is the Last.fm block of a stats document.
type LastfmStats struct {
	Available bool     `json:"available"`
	Reason    string   `json:"reason,omitempty"`
	Listeners int64    `json:"listeners,omitempty"`
	Plays     int64    `json:"plays,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	URL       string   `json:"url,omitempty"`
}

// Totals carries the cross-platform sums, raw and human-formatted.
// GrandTotal = spotify followers + youtube subscribers + youtube views +
// lastfm listeners. Plays stay out of the sum.
type Totals struct {
	Followers           int64  `json:"followers"`
	FollowersFormatted  string `json:"followersFormatted"`
	Views               int64  `json:"views"`
	ViewsFormatted      string `json:"viewsFormatted"`
	Plays               int64  `json:"plays"`
	PlaysFormatted      string `json:"playsFormatted"`
	Listeners           int64  `json:"listeners"`
	ListenersFormatted  string `json:"listenersFormatted"`
	GrandTotal          int64  `json:"grandTotal"`
	GrandTotalFormatted string `json:"grandTotalFormatted"`
}

// ArtistSearchResult is one merged cross-platform search hit.
type ArtistSearchResult struct {
	Name      string `json:"name"`
	SpotifyID string `json:"spotifyId,omitempty"`
	Image     string `json:"image,omitempty"`
	Followers *int64 `json:"followers,omitempty"`
	Listeners *int64 `json:"listeners,omitempty"`
	Source    string `json:"source"`
}
