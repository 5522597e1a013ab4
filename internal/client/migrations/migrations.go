// Package migrations embeds the goose migrations of the local storage schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
