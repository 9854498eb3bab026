package migrations

import "embed"

// FS contains the embedded schema of the entry log.
//
//go:embed *.sql
var FS embed.FS
