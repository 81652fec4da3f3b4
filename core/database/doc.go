// Package database handles database connections and schema inspection.
//
// It wraps GORM to open MySQL or SQLite connections from the application's
// configuration. The database backs the card search index only; the card
// payload cache lives in object storage.
//
// # Connect
//
// Connect opens and pings the database. Failure is not fatal to the service:
// the start command logs a warning and runs without the search index.
//
// # Schema Inspection
//
// TableColumns and MissingColumns let the search health check verify that the
// index table carries every column the queries rely on.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	missing, err := database.MissingColumns(db, "indexed_cards", []string{"name", "price"})
package database
