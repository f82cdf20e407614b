package spotify

import "regexp"

var (
	rawIDPattern     = regexp.MustCompile(`^[0-9A-Za-z]{22}$`)
	artistURIPattern = regexp.MustCompile(`^spotify:artist:([0-9A-Za-z]{22})$`)
	artistURLPattern = regexp.MustCompile(`open\.spotify\.com/artist/([0-9A-Za-z]{22})`)
)

// ExtractArtistID parses an artist ID out of user input. Accepted forms are a
// raw 22-character alphanumeric ID, a spotify:artist:<id> URI, or an
// open.spotify.com/artist/<id> URL (query strings are ignored). Anything else
// returns the empty string.
func ExtractArtistID(input string) string {
	if input == "" {
		return ""
	}
	if rawIDPattern.MatchString(input) {
		return input
	}
	if m := artistURIPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	if m := artistURLPattern.FindStringSubmatch(input); m != nil {
		return m[1]
	}
	return ""
}
