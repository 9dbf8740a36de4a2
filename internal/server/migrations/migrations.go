// Package migrations embeds the server database schema.
package migrations

import "embed"

//go:embed *.sql
var Migrations embed.FS
