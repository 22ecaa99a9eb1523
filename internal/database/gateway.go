package database

import (
	"database/sql"

	"github.com/laith-alskaf/Supermarket-Management-System/internal/logger"
)

// Gateway is the statement-level data access contract. Each call is its
// own atomic unit; statements always use positional placeholders. Faults
// are logged and reported as false or an empty result, never returned.
type Gateway interface {
	Exec(query string, args ...any) bool
	FetchAll(query string, args ...any) []Row
	FetchOne(query string, args ...any) (Row, bool)
}

// SQLGateway implements Gateway over a *sql.DB.
type SQLGateway struct {
	db *sql.DB
}

// NewGateway creates a Gateway backed by db.
func NewGateway(db *sql.DB) *SQLGateway {
	return &SQLGateway{db: db}
}

// Exec runs a mutation in its own transaction, rolling it back on failure.
func (g *SQLGateway) Exec(query string, args ...any) bool {
	log := logger.Get()

	tx, err := g.db.Begin()
	if err != nil {
		log.Errorw("gateway: begin failed", "query", query, "error", err)
		return false
	}
	if _, err := tx.Exec(query, args...); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Errorw("gateway: rollback failed", "query", query, "error", rbErr)
		}
		log.Errorw("gateway: exec failed", "query", query, "error", err)
		return false
	}
	if err := tx.Commit(); err != nil {
		log.Errorw("gateway: commit failed", "query", query, "error", err)
		return false
	}
	return true
}

// FetchAll returns every row of the result set in order, or nil on fault.
func (g *SQLGateway) FetchAll(query string, args ...any) []Row {
	rows, err := g.db.Query(query, args...)
	if err != nil {
		logger.Get().Errorw("gateway: query failed", "query", query, "error", err)
		return nil
	}
	defer rows.Close()

	result, err := scanRows(rows)
	if err != nil {
		logger.Get().Errorw("gateway: scan failed", "query", query, "error", err)
		return nil
	}
	return result
}

// FetchOne returns the first row of the result set, if any.
func (g *SQLGateway) FetchOne(query string, args ...any) (Row, bool) {
	rows := g.FetchAll(query, args...)
	if len(rows) == 0 {
		return nil, false
	}
	return rows[0], true
}

func scanRows(rows *sql.Rows) ([]Row, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	var result []Row
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		row := make(Row, len(cols))
		for i, col := range cols {
			if b, ok := values[i].([]byte); ok {
				row[col] = string(b)
				continue
			}
			row[col] = values[i]
		}
		result = append(result, row)
	}
	return result, rows.Err()
}
