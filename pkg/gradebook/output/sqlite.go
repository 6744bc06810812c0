package output

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ukaji3/gradebook-go/pkg/gradebook/models"

	_ "modernc.org/sqlite"
)

// WriteSQLite exports the payload to a fresh SQLite database at path:
// records(identifier, class_name, data) with data holding the record JSON,
// and meta(key, value) with the last_updated stamp.
func WriteSQLite(path string, p *models.Payload, classColumn string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	for _, stmt := range []string{
		`CREATE TABLE "records" ("identifier" TEXT PRIMARY KEY, "class_name" TEXT NOT NULL, "data" TEXT NOT NULL)`,
		`CREATE INDEX idx_records_class_name ON records(class_name)`,
		`CREATE TABLE "meta" ("key" TEXT PRIMARY KEY, "value" TEXT NOT NULL)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`INSERT INTO "meta" ("key", "value") VALUES ('last_updated', ?)`, p.LastUpdated); err != nil {
		return err
	}

	stmt, err := tx.Prepare(`INSERT INTO "records" ("identifier", "class_name", "data") VALUES (?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, id := range p.Records.IDs() {
		rec, _ := p.Records.Get(id)
		data, err := rec.MarshalJSON()
		if err != nil {
			return fmt.Errorf("record %q: %w", id, err)
		}
		if _, err := stmt.Exec(id, rec.String(classColumn), string(data)); err != nil {
			return fmt.Errorf("record %q: %w", id, err)
		}
	}
	return tx.Commit()
}
