package db

import (
	"embed"
	"time"

	"github.com/lunafay/turntable/models"
)

// Store is the durable history log. Appends and queries rely on the
// backing database for serialisation; no extra locking happens up here.
type Store interface {
	ApplyMigrations(migrations embed.FS) error
	InsertHistory(song models.Song) (models.SongHistory, error)
	RecentHistory(window int) ([]models.SongHistory, error)
	CountHistorySince(since time.Time) (int, error)
}
