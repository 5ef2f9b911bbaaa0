package migrations

import "embed"

// FS SQL-миграции схемы PostgreSQL-хранилища
//
//go:embed *.sql
var FS embed.FS
