package routes

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/r3labs/sse/v2"
	"github.com/rs/cors"

	"github.com/lunafay/turntable/auth"
	"github.com/lunafay/turntable/db"
	"github.com/lunafay/turntable/events"
	"github.com/lunafay/turntable/models"
	"github.com/lunafay/turntable/notify"
	"github.com/lunafay/turntable/playback"
)

const (
	// recentWindowSize bounds how far back the recently played query looks.
	// historyPageSize subdivides that window, not the full log, so the two
	// are independent knobs.
	recentWindowSize = 150
	historyPageSize  = 50
)

func renderJSONMessage(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	res := map[string]string{"message": message}
	json.NewEncoder(w).Encode(res)
}

func Register(mux *http.ServeMux, authn *auth.Authenticator, current *playback.CurrentSong, store db.Store, notifier *notify.Notifier) http.Handler {

	events.Server.CreateStream("playback")

	mux.HandleFunc("/{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		fmt.Fprintf(w, "Welcome to Turntable, the API behind the now playing widget.\nYou can find the source code on <a href=\"https://github.com/lunafay/turntable\">Github</a>\n")
	})

	mux.HandleFunc("GET /current-song", authn.RequireRead(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(current.Read())
	}))

	mux.HandleFunc("POST /song", authn.RequireWrite(func(w http.ResponseWriter, r *http.Request) {
		var song models.Song
		if err := json.NewDecoder(r.Body).Decode(&song); err != nil {
			renderJSONMessage(w, http.StatusBadRequest, "The song payload could not be parsed")
			return
		}

		// History first, state second. If the append fails the current song
		// is left untouched so the two views never diverge.
		if _, err := store.InsertHistory(song); err != nil {
			slog.With(slog.Any("error", err), slog.String("title", song.Title)).Error("Failed to insert song history")
			go notifier.StorageFailure(err)
			renderJSONMessage(w, http.StatusInternalServerError, "Something went wrong recording that song")
			return
		}

		current.Replace(song)

		jsonSong, err := json.Marshal(song)
		if err != nil {
			slog.With(slog.Any("error", err)).Error("Failed to encode song for the event stream")
		} else {
			events.Server.Publish("playback", &sse.Event{Data: jsonSong})
		}

		fmt.Fprint(w, "Updated Current Song and Added To History")
	}))

	mux.HandleFunc("GET /recently-played/{page}", authn.RequireRead(func(w http.ResponseWriter, r *http.Request) {
		page, err := strconv.Atoi(r.PathValue("page"))
		if err != nil || page < 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}

		songs, err := store.RecentHistory(recentWindowSize)
		if err != nil {
			slog.With(slog.Any("error", err)).Error("Failed to fetch song history")
			renderJSONMessage(w, http.StatusInternalServerError, "Something went wrong fetching song history")
			return
		}

		totalPages := (len(songs) + historyPageSize - 1) / historyPageSize
		start := (page - 1) * historyPageSize
		if start >= len(songs) {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		end := start + historyPageSize
		if end > len(songs) {
			end = len(songs)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.PaginatedSongs{
			Songs:      songs[start:end],
			Page:       page,
			TotalPages: totalPages,
			HasMore:    page < totalPages,
		})
	}))

	mux.HandleFunc("/events", events.Server.ServeHTTP)

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"https://lunafay.dev", "http://localhost:4321", "http://localhost:3013"},
		AllowedMethods: []string{"GET"},
		AllowedHeaders: []string{"Origin, Content-Type, Accept, Authorization"},
	})

	handler := c.Handler(mux)

	return handler
}
