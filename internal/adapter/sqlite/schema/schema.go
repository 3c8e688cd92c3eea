// Package schema embeds the goose migrations that create the WordNet store.
package schema

import "embed"

//go:embed *.sql
var FS embed.FS
