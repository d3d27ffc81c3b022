package sqlite

import (
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

// Helper functions shared across repository implementations

const driverName = "sqlite3"

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func wrap(db *sql.DB) *sqlx.DB {
	return sqlx.NewDb(db, driverName)
}
