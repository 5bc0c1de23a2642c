// db.go
//
// Database bootstrap for the serve command.
// Responsibilities:
//   - Opening the SQLite settings database (WAL, busy timeout, foreign keys).
//   - Applying the embedded migrations (assets/migrations/*.sql), recorded in _migrations.
//
// ":memory:" gives a private in-memory database; settings then last until exit.

package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/wordlet/assets"
	"github.com/robalobadob/wordlet/internal/settings"
)

/**
 * openDatabase opens dsn and brings its schema up to date.
 *
 * @param dsn      Database path, or ":memory:".
 * @param defaults Settings returned for players with nothing stored.
 * @returns the settings store and a func closing the database.
 */
func openDatabase(ctx context.Context, dsn string, defaults settings.Settings) (*settings.SQLStore, func() error, error) {
	db, err := settings.Open(dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	migrations, err := assets.Migrations()
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}
	if err := settings.Migrate(ctx, db, migrations); err != nil {
		_ = db.Close()
		return nil, nil, fmt.Errorf("migrate %s: %w", dsn, err)
	}
	log.Info().Str("db", dsn).Msg("settings database ready")
	return settings.NewSQLStore(db, defaults), db.Close, nil
}
