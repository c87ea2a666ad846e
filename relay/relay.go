package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/cespare/xxhash/v2"
	"github.com/gorilla/websocket"

	"github.com/lunafay/turntable/config"
	"github.com/lunafay/turntable/models"
)

const (
	TypePlayerInfo         = "PLAYER_INFO"
	TypePositionChanged    = "POSITION_CHANGED"
	TypePlayerStateChanged = "PLAYER_STATE_CHANGED"
	TypeVideoChanged       = "VIDEO_CHANGED"
	TypeVolumeChanged      = "VOLUME_CHANGED"
)

// Message is a single event off the player's websocket feed. Only the
// variants carrying a full track snapshot populate Song.
type Message struct {
	Type      string       `json:"type"`
	Song      *models.Song `json:"song"`
	IsPlaying bool         `json:"isPlaying"`
	Muted     bool         `json:"muted"`
	Position  float64      `json:"position"`
	Volume    int          `json:"volume"`
}

// Relay watches the local player's event stream and forwards track
// snapshots to the now playing API as an ordinary authenticated client.
type Relay struct {
	cfg      config.RelayConfig
	client   *http.Client
	lastHash uint64
}

func New(cfg config.RelayConfig, client *http.Client) *Relay {
	if client == nil {
		client = &http.Client{}
	}
	return &Relay{cfg: cfg, client: client}
}

// Run consumes the feed until the connection drops or ctx is cancelled.
// There is no reconnect logic here; the process supervisor owns restarts.
func (r *Relay) Run(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, r.cfg.PlayerWsURL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to player at %s: %w", r.cfg.PlayerWsURL, err)
	}
	defer conn.Close()

	slog.With(slog.String("url", r.cfg.PlayerWsURL)).Info("Connected to player event stream")

	// ReadMessage blocks with no regard for ctx, so cancellation has to
	// tear down the connection out from under it.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-done:
		}
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("player connection closed: %w", err)
		}
		if err := r.HandleMessage(ctx, data); err != nil {
			slog.With(slog.Any("error", err)).Warn("Failed to relay player event")
		}
	}
}

// HandleMessage forwards any event carrying a full track snapshot.
// Position, play state and volume chatter carry no snapshot and are
// dropped on the floor.
func (r *Relay) HandleMessage(ctx context.Context, data []byte) error {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return fmt.Errorf("failed to parse player event: %w", err)
	}

	switch msg.Type {
	case TypePlayerInfo, TypeVideoChanged:
		if msg.Song == nil {
			return fmt.Errorf("%s event arrived without a song", msg.Type)
		}
	default:
		return nil
	}

	hash := snapshotHash(*msg.Song)
	if hash == r.lastHash {
		slog.With(slog.String("title", msg.Song.Title)).Debug("Skipping duplicate snapshot")
		return nil
	}

	if err := r.PostSong(ctx, *msg.Song); err != nil {
		return err
	}
	r.lastHash = hash
	return nil
}

func (r *Relay) PostSong(ctx context.Context, song models.Song) error {
	payload, err := json.Marshal(song)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.cfg.ApiURL+"/song", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", r.cfg.Token))
	req.Header.Set("Content-Type", "application/json")

	res, err := r.client.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	io.Copy(io.Discard, res.Body)

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("song update was rejected with status %d", res.StatusCode)
	}

	slog.With(slog.String("title", song.Title), slog.String("artist", song.Artist)).Info("Updated current song")
	return nil
}

// snapshotHash identifies a track snapshot well enough to skip consecutive
// duplicates. Elapsed time is deliberately left out so position-only
// refreshes of the same track don't repost it.
func snapshotHash(song models.Song) uint64 {
	return xxhash.Sum64String(fmt.Sprintf("%s-%s-%s-%t",
		song.VideoID,
		song.Title,
		song.Artist,
		song.IsPaused,
	))
}
