// Package migrations embeds the SQL schema migrations for the postgres
// version store.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
