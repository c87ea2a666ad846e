// Package migrations embeds the goose SQL migrations that shape the song
// history table. They are applied automatically at server startup.
package migrations

import (
	"embed"
)

//go:embed *.sql
var embedMigrations embed.FS

func GetMigrations() embed.FS {
	return embedMigrations
}
