package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Song is the full "now playing" snapshot as reported by the player client.
// Field names on the wire are camelCase to match what the desktop player emits.
type Song struct {
	Title            string  `json:"title"`
	AlternativeTitle string  `json:"alternativeTitle"`
	Artist           string  `json:"artist"`
	ArtistURL        string  `json:"artistUrl"`
	Views            uint64  `json:"views"`
	ImageSrc         string  `json:"imageSrc"`
	IsPaused         bool    `json:"isPaused"`
	SongDuration     int64   `json:"songDuration"`
	ElapsedSeconds   int64   `json:"elapsedSeconds"`
	URL              string  `json:"url"`
	Album            *string `json:"album"` // known upstream bug: always arrives null
	VideoID          string  `json:"videoId"`
	PlaylistID       string  `json:"playlistId"`
	MediaType        string  `json:"mediaType"`
	Tags             Tags    `json:"tags"`
}

// SongHistory is an immutable snapshot of a Song at the moment it was
// accepted, stamped with the acceptance time in unix seconds.
type SongHistory struct {
	Title            string  `db:"title" json:"title"`
	AlternativeTitle string  `db:"alternative_title" json:"alternativeTitle"`
	Artist           string  `db:"artist" json:"artist"`
	ArtistURL        string  `db:"artist_url" json:"artistUrl"`
	ImageSrc         string  `db:"image_src" json:"imageSrc"`
	SongDuration     int64   `db:"song_duration" json:"songDuration"`
	URL              string  `db:"url" json:"url"`
	Album            *string `db:"album" json:"album"`
	VideoID          string  `db:"video_id" json:"videoId"`
	PlaylistID       string  `db:"playlist_id" json:"playlistId"`
	MediaType        string  `db:"media_type" json:"mediaType"`
	Tags             Tags    `db:"tags" json:"tags"`
	PlayedAt         int64   `db:"played_at" json:"playedAt"`
}

// PaginatedSongs is the response shape for the recently played endpoint.
type PaginatedSongs struct {
	Songs      []SongHistory `json:"songs"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	HasMore    bool          `json:"hasMore"`
}

// Tags is an ordered, possibly repeating list of free-form tags. It is
// persisted as a JSON array in a single text column.
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	return json.Marshal(t)
}

func (t *Tags) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("unsupported type for tags: %T", src)
	}
}

// Placeholder is the value held before the first real update arrives. It
// mostly exists so a freshly deployed instance has something to serve.
func Placeholder() Song {
	return Song{
		Title:     "Nothing playing",
		Artist:    "Turntable",
		MediaType: "UNKNOWN",
		IsPaused:  true,
		Tags:      Tags{},
	}
}

// HistoryEntry copies a Song into its history shape. The acceptance
// timestamp is assigned by the store at insert time, not here.
func HistoryEntry(s Song) SongHistory {
	return SongHistory{
		Title:            s.Title,
		AlternativeTitle: s.AlternativeTitle,
		Artist:           s.Artist,
		ArtistURL:        s.ArtistURL,
		ImageSrc:         s.ImageSrc,
		SongDuration:     s.SongDuration,
		URL:              s.URL,
		Album:            s.Album,
		VideoID:          s.VideoID,
		PlaylistID:       s.PlaylistID,
		MediaType:        s.MediaType,
		Tags:             s.Tags,
	}
}
