package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/mesh-intelligence/propai/internal/catalogue"
)

// seedCatalogue loads the demo data into an empty database. A database that
// already holds any property is left untouched, so seeding is idempotent
// across restarts.
func seedCatalogue(db *sql.DB, now time.Time) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM properties").Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	c := catalogue.Demo(now)
	for _, p := range c.Properties {
		if err := insertProperty(ctx, tx, p); err != nil {
			return err
		}
	}
	for _, u := range c.Users {
		if err := insertUser(ctx, tx, u); err != nil {
			return err
		}
	}
	for _, m := range c.Messages {
		if err := insertMessage(ctx, tx, m); err != nil {
			return err
		}
	}
	for _, col := range c.Collections {
		if err := insertCollection(ctx, tx, col); err != nil {
			return err
		}
	}
	return tx.Commit()
}
