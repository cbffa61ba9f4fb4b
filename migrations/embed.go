// Package migrations embeds the goose SQL migrations.
package migrations

import "embed"

// Core holds the migrations of the core database.
//
//go:embed core/*.sql
var Core embed.FS
