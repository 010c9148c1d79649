package mysqlstore

import (
	"bufio"
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Schema creates the contacts table. The name column is indexed but not unique: uniqueness is
// checked by the validation layer before each write. It uses a binary collation, so lookups and
// deletes by name match exactly and "Alita" and "alita" are two contacts.
//
//go:embed schema.sql
var Schema string

// Migrate executes the SQL script read from r. Statements may span several lines and end with a
// line containing ';'. It returns the number of executed statements.
func Migrate(ctx context.Context, sqlDB *sql.DB, r io.Reader) (int, error) {
	db := sqlx.NewDb(sqlDB, "mysql")
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanLines)
	builder := strings.Builder{}
	executed := 0
	for scanner.Scan() {
		line := scanner.Text()
		builder.WriteString(line)
		builder.WriteString(" ")
		if strings.Contains(line, ";") {
			if _, err := db.ExecContext(ctx, builder.String()); err != nil {
				return executed, fmt.Errorf("mysqlstore: migrate statement %d: %w", executed+1, err)
			}
			executed++
			builder = strings.Builder{}
		}
	}
	if err := scanner.Err(); err != nil {
		return executed, fmt.Errorf("mysqlstore: migrate: %w", err)
	}
	return executed, nil
}
