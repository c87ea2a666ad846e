package main

import (
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"

	"github.com/lunafay/turntable/auth"
	"github.com/lunafay/turntable/config"
	"github.com/lunafay/turntable/db"
	"github.com/lunafay/turntable/events"
	"github.com/lunafay/turntable/migrations"
	"github.com/lunafay/turntable/notify"
	"github.com/lunafay/turntable/playback"
	"github.com/lunafay/turntable/routes"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.GetLogLevel()}))
	slog.SetDefault(logger)

	if cfg.Turntable.JwtSecret == "" {
		log.Fatal("Value for JWT_SECRET must be provided")
	}

	owner, err := cfg.OwnerUUID()
	if err != nil {
		log.Fatal(err)
	}
	viewer, err := cfg.ViewerUUID()
	if err != nil {
		log.Fatal(err)
	}

	store, err := db.NewSqliteStore(cfg.Turntable.DbPath)
	if err != nil {
		log.Fatal(err)
	}

	if err := store.ApplyMigrations(migrations.GetMigrations()); err != nil {
		log.Fatal(err)
	}

	events.Init()

	authn := &auth.Authenticator{
		Verifier: auth.NewVerifier(cfg.Turntable.JwtSecret),
		Policy:   auth.Policy{Owner: owner, Viewer: viewer},
	}

	jobScheduler, err := SetupInBackground(store)
	if err != nil {
		log.Fatal(err)
	}

	if cfg.Turntable.BackgroundJobsEnabled {
		jobScheduler.Start()
		fmt.Println("Background jobs have started up in the background.")
	} else {
		fmt.Println("Background jobs are disabled.")
	}

	current := playback.NewCurrentSong()
	notifier := notify.New(cfg.Pushover)

	router := routes.Register(http.NewServeMux(), authn, current, store, notifier)

	fmt.Printf("Turntable is running at http://localhost:%s\n", cfg.Turntable.Port)

	if err := http.ListenAndServe(":"+cfg.Turntable.Port, router); err != nil {
		fmt.Println(err)
		jobScheduler.Shutdown()
		os.Exit(1)
	}
}
