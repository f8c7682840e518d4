// Package migrations embeds the versioned schema files so binaries can
// migrate without a migrations directory next to them.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
