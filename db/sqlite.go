package db

import (
	"embed"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/lunafay/turntable/models"

	_ "modernc.org/sqlite"
)

type SqliteStore struct {
	DB *sqlx.DB
}

func NewSqliteStore(dsn string) (Store, error) {
	db, err := sqlx.Connect("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	return &SqliteStore{
		DB: db,
	}, nil
}

func (s *SqliteStore) ApplyMigrations(migrations embed.FS) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		return err
	}

	if err := goose.Up(s.DB.DB, "."); err != nil {
		return err
	}

	return nil
}

// InsertHistory appends one immutable snapshot. The acceptance timestamp is
// assigned here, at the moment of insert, so concurrent submissions
// serialise in acceptance order rather than network order.
func (s *SqliteStore) InsertHistory(song models.Song) (models.SongHistory, error) {
	entry := models.HistoryEntry(song)
	entry.PlayedAt = time.Now().UTC().Unix()
	_, err := s.DB.NamedExec(`
	  INSERT INTO song_history
	  (title, alternative_title, artist, artist_url, image_src, song_duration, url, album, video_id, playlist_id, media_type, tags, played_at)
	  VALUES (:title, :alternative_title, :artist, :artist_url, :image_src, :song_duration, :url, :album, :video_id, :playlist_id, :media_type, :tags, :played_at)`,
		entry)
	if err != nil {
		return models.SongHistory{}, fmt.Errorf("failed to insert history entry: %w", err)
	}
	return entry, nil
}

// RecentHistory returns up to window entries, newest first. The id
// tie-break keeps same-second inserts in acceptance order.
func (s *SqliteStore) RecentHistory(window int) ([]models.SongHistory, error) {
	results := []models.SongHistory{}

	if window <= 0 {
		return results, fmt.Errorf("must request at least one historical item")
	}

	err := s.DB.Select(&results, `
	  SELECT title, alternative_title, artist, artist_url, image_src, song_duration, url, album, video_id, playlist_id, media_type, tags, played_at
	  FROM song_history
	  ORDER BY played_at DESC, id DESC
	  LIMIT ?`, window)

	return results, err
}

func (s *SqliteStore) CountHistorySince(since time.Time) (int, error) {
	var count int
	err := s.DB.Get(&count, "SELECT COUNT(*) FROM song_history WHERE played_at >= ?", since.UTC().Unix())
	return count, err
}
