package db

import (
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"
	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/lunafay/turntable/migrations"
	"github.com/lunafay/turntable/models"
)

func setupTestStore(t *testing.T) *SqliteStore {
	t.Helper()
	db, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	goose.SetBaseFS(migrations.GetMigrations())

	err = goose.SetDialect("sqlite3")
	require.NoError(t, err)

	err = goose.Up(db.DB, ".")
	require.NoError(t, err)

	return &SqliteStore{DB: db}
}

func testSong(title string) models.Song {
	return models.Song{
		Title:            title,
		AlternativeTitle: title + " (alt)",
		Artist:           "Mitski",
		ArtistURL:        "https://music.example.com/channel/mitski",
		Views:            123456,
		ImageSrc:         "https://img.example.com/cover.jpg",
		IsPaused:         false,
		SongDuration:     215,
		ElapsedSeconds:   20,
		URL:              "https://music.example.com/watch?v=abc123",
		VideoID:          "abc123",
		PlaylistID:       "pl456",
		MediaType:        "AUDIO",
		Tags:             models.Tags{"indie", "rock", "indie"},
	}
}

func TestSqliteStore_InsertHistory(t *testing.T) {
	s := setupTestStore(t)

	before := time.Now().UTC().Unix()
	entry, err := s.InsertHistory(testSong("First Love / Late Spring"))
	require.NoError(t, err)

	assert.GreaterOrEqual(t, entry.PlayedAt, before)
	assert.Nil(t, entry.Album)

	got, err := s.RecentHistory(10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	if !cmp.Equal(entry, got[0]) {
		t.Error(cmp.Diff(entry, got[0]))
	}
	// Tag order and duplicates survive the round trip
	assert.Equal(t, models.Tags{"indie", "rock", "indie"}, got[0].Tags)
}

func TestSqliteStore_InsertHistory_AlbumPassthrough(t *testing.T) {
	s := setupTestStore(t)

	album := "Bury Me at Makeout Creek"
	song := testSong("Townie")
	song.Album = &album

	entry, err := s.InsertHistory(song)
	require.NoError(t, err)
	require.NotNil(t, entry.Album)

	got, err := s.RecentHistory(1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.NotNil(t, got[0].Album)
	assert.Equal(t, album, *got[0].Album)
}

func TestSqliteStore_RecentHistory_Order(t *testing.T) {
	s := setupTestStore(t)

	titles := []string{"one", "two", "three", "four"}
	for _, title := range titles {
		_, err := s.InsertHistory(testSong(title))
		require.NoError(t, err)
	}

	got, err := s.RecentHistory(10)
	require.NoError(t, err)
	require.Len(t, got, 4)

	// Newest first, with same-second inserts kept in acceptance order
	assert.Equal(t, "four", got[0].Title)
	assert.Equal(t, "three", got[1].Title)
	assert.Equal(t, "two", got[2].Title)
	assert.Equal(t, "one", got[3].Title)
}

func TestSqliteStore_RecentHistory_Window(t *testing.T) {
	s := setupTestStore(t)

	for i := 0; i < 5; i++ {
		_, err := s.InsertHistory(testSong("song"))
		require.NoError(t, err)
	}

	got, err := s.RecentHistory(3)
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = s.RecentHistory(0)
	assert.Error(t, err)

	_, err = s.RecentHistory(-1)
	assert.Error(t, err)
}

func TestSqliteStore_CountHistorySince(t *testing.T) {
	s := setupTestStore(t)

	for i := 0; i < 3; i++ {
		_, err := s.InsertHistory(testSong("song"))
		require.NoError(t, err)
	}

	count, err := s.CountHistorySince(time.Now().Add(-time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = s.CountHistorySince(time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestSqliteStore_InsertHistory_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	mock.ExpectExec("INSERT INTO song_history").WillReturnError(errors.New("disk I/O error"))

	s := &SqliteStore{DB: sqlx.NewDb(db, "sqlmock")}
	_, err = s.InsertHistory(testSong("doomed"))
	assert.ErrorContains(t, err, "disk I/O error")
}

func TestSqliteStore_RecentHistory_Error(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	mock.ExpectQuery("SELECT (.+) FROM song_history").WillReturnError(errors.New("database is locked"))

	s := &SqliteStore{DB: sqlx.NewDb(db, "sqlmock")}
	_, err = s.RecentHistory(150)
	assert.ErrorContains(t, err, "database is locked")
}
