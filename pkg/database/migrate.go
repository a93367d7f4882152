package database

import (
	"database/sql"
	"fmt"
)

// The client owns exactly one durable table: browser sessions. The
// schema is embedded so the binary does not depend on its working
// directory.
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	token      TEXT NOT NULL,
	user_json  TEXT NOT NULL DEFAULT '{}',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
