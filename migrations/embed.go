// Package migrations embeds the SQL schema migrations so the binary can
// create its database without any files next to it.
package migrations

import "embed"

// FS holds the *.up.sql / *.down.sql migration files.
//
//go:embed *.sql
var FS embed.FS
