// Package tracker exposes the embedded database migrations so they can be
// applied by the migrate command and by tests.
package tracker

import "embed"

// Migrations holds the goose migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS
