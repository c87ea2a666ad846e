package playback

import (
	"sync"

	"github.com/lunafay/turntable/models"
)

// CurrentSong holds the single now-playing record shared across requests.
// Reads take a copy under a shared lock and writes replace the record
// wholesale under the exclusive lock, so no caller can observe a mix of old
// and new fields.
type CurrentSong struct {
	m    sync.RWMutex
	song models.Song
}

// NewCurrentSong starts out holding the placeholder value so the service
// has something to serve before the first real update lands.
func NewCurrentSong() *CurrentSong {
	return &CurrentSong{song: models.Placeholder()}
}

// Read returns a value copy of the current song. The tags slice is cloned
// so callers never alias the stored record.
func (c *CurrentSong) Read() models.Song {
	c.m.RLock()
	defer c.m.RUnlock()
	song := c.song
	song.Tags = append(models.Tags{}, c.song.Tags...)
	return song
}

// Replace swaps in a new record. Fields are never merged; whatever the
// writer reported is the whole truth, elapsed beyond duration included.
func (c *CurrentSong) Replace(song models.Song) {
	song.Tags = append(models.Tags{}, song.Tags...)
	c.m.Lock()
	defer c.m.Unlock()
	c.song = song
}
