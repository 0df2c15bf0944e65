package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"emi-planner/domain"

	_ "github.com/lib/pq"  // register postgres driver
	_ "modernc.org/sqlite" // register sqlite driver
)

// createdAtLayout has a fixed width so timestamps sort as text.
const createdAtLayout = "2006-01-02T15:04:05.000000000Z07:00"

// SQLRepository is a LoanRepository backed by SQLite or PostgreSQL.
type SQLRepository struct {
	db       *sql.DB
	postgres bool
}

// OpenSQLRepository opens the history database for driver "sqlite" or
// "postgres" and creates the schema when missing.
func OpenSQLRepository(driver, dsn string) (*SQLRepository, error) {
	var db *sql.DB
	var err error

	switch driver {
	case "sqlite":
		if dir := filepath.Dir(strings.TrimPrefix(sqlitePath(dsn), "file:")); dir != "." {
			if err := os.MkdirAll(dir, 0o750); err != nil {
				return nil, fmt.Errorf("creating history dir: %w", err)
			}
		}
		db, err = sql.Open("sqlite", sqliteDSN(dsn))
	case "postgres":
		db, err = sql.Open("postgres", dsn)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping history db: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &SQLRepository{db: db, postgres: driver == "postgres"}, nil
}

func (r *SQLRepository) Close() error {
	return r.db.Close()
}

func (r *SQLRepository) Save(record domain.CalculationRecord) error {
	_, err := r.db.Exec(r.rebind(`INSERT INTO calculations
		(id, kind, request, result, created_at)
		VALUES (?, ?, ?, ?, ?)`),
		record.ID, record.Kind, string(record.Request), string(record.Result),
		record.CreatedAt.UTC().Format(createdAtLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to save calculation: %w", err)
	}
	return nil
}

func (r *SQLRepository) List(limit int) ([]domain.CalculationRecord, error) {
	query := `SELECT id, kind, request, result, created_at
		FROM calculations
		ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := r.db.Query(r.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var out []domain.CalculationRecord
	for rows.Next() {
		var rec domain.CalculationRecord
		var request, result, createdAt string
		if err := rows.Scan(&rec.ID, &rec.Kind, &request, &result, &createdAt); err != nil {
			return nil, err
		}
		rec.Request = []byte(request)
		rec.Result = []byte(result)
		if rec.CreatedAt, err = time.Parse(createdAtLayout, createdAt); err != nil {
			return nil, fmt.Errorf("calculation %s: bad created_at: %w", rec.ID, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *SQLRepository) DeleteBefore(cutoff time.Time) (int64, error) {
	res, err := r.db.Exec(r.rebind("DELETE FROM calculations WHERE created_at < ?"),
		cutoff.UTC().Format(createdAtLayout))
	if err != nil {
		return 0, fmt.Errorf("failed to prune calculations: %w", err)
	}
	return res.RowsAffected()
}

// sqliteDSN appends the WAL pragmas, keeping any query the DSN already has.
func sqliteDSN(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=journal_mode(wal)&_pragma=synchronous(normal)"
}

// sqlitePath strips the query from a sqlite DSN.
func sqlitePath(dsn string) string {
	path, _, _ := strings.Cut(dsn, "?")
	return path
}

// rebind rewrites ? placeholders as $1, $2... for postgres.
func (r *SQLRepository) rebind(query string) string {
	if !r.postgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, ch := range query {
		if ch == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(ch)
	}
	return b.String()
}
