package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/arthur-debert/nanotasks/nanotasks/storage"
)

// slotTable holds one row per slot key
const slotTable = "nanotasks_slots"

// Dialect selects the SQL flavor of a SQLSlot
type Dialect string

const (
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect accepts the dialect names used in configuration
func ParseDialect(name string) (Dialect, error) {
	switch strings.ToLower(name) {
	case "mysql", "mariadb":
		return DialectMySQL, nil
	case "postgres", "postgresql", "pgx":
		return DialectPostgres, nil
	}
	return "", fmt.Errorf("unsupported SQL dialect %q", name)
}

// driverName is the database/sql driver registered for the dialect
func (d Dialect) driverName() string {
	if d == DialectPostgres {
		return "pgx"
	}
	return "mysql"
}

func (d Dialect) builder() squirrel.StatementBuilderType {
	if d == DialectPostgres {
		return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	}
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question)
}

func (d Dialect) createTableSQL() string {
	if d == DialectPostgres {
		return `CREATE TABLE IF NOT EXISTS ` + slotTable + ` (
    slot_key TEXT PRIMARY KEY,
    slot_value TEXT NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL
)`
	}
	return `CREATE TABLE IF NOT EXISTS ` + slotTable + ` (
    slot_key VARCHAR(191) PRIMARY KEY,
    slot_value LONGTEXT NOT NULL,
    updated_at TIMESTAMP(3) NOT NULL
)`
}

// buildSelect returns the query reading a slot value
func (d Dialect) buildSelect(key string) (string, []interface{}, error) {
	return d.builder().
		Select("slot_value").
		From(slotTable).
		Where(squirrel.Eq{"slot_key": key}).
		ToSql()
}

// buildUpsert returns the statement replacing a slot value
func (d Dialect) buildUpsert(key string, value string, at time.Time) (string, []interface{}, error) {
	insert := d.builder().
		Insert(slotTable).
		Columns("slot_key", "slot_value", "updated_at").
		Values(key, value, at)

	if d == DialectPostgres {
		insert = insert.Suffix("ON CONFLICT (slot_key) DO UPDATE SET slot_value = EXCLUDED.slot_value, updated_at = EXCLUDED.updated_at")
	} else {
		insert = insert.Suffix("ON DUPLICATE KEY UPDATE slot_value = VALUES(slot_value), updated_at = VALUES(updated_at)")
	}
	return insert.ToSql()
}

// SQLSlot keeps a slot as one row of a MySQL or PostgreSQL table
type SQLSlot struct {
	db      *sql.DB
	dialect Dialect
	key     string
	ownsDB  bool
	now     func() time.Time

	mu     sync.Mutex
	closed bool
}

// OpenSQLSlot connects with dsn, creates the slot table if needed and
// returns the slot for key. Closing the slot closes the connection.
func OpenSQLSlot(ctx context.Context, dialect Dialect, dsn, key string) (*SQLSlot, error) {
	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", dialect, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to reach %s: %w", dialect, err)
	}
	slot, err := NewSQLSlot(ctx, db, dialect, key)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	slot.ownsDB = true
	return slot, nil
}

// NewSQLSlot uses an existing connection pool. The caller keeps ownership of db.
func NewSQLSlot(ctx context.Context, db *sql.DB, dialect Dialect, key string) (*SQLSlot, error) {
	if key == "" {
		key = storage.DefaultKey
	}
	if _, err := db.ExecContext(ctx, dialect.createTableSQL()); err != nil {
		return nil, fmt.Errorf("failed to create %s table: %w", slotTable, err)
	}
	return &SQLSlot{
		db:      db,
		dialect: dialect,
		key:     key,
		now:     time.Now,
	}, nil
}

func (s *SQLSlot) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return storage.ErrSlotClosed
	}
	return nil
}

// Read implements storage.Slot.Read
func (s *SQLSlot) Read(ctx context.Context) ([]byte, error) {
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	query, args, err := s.dialect.buildSelect(s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to build select: %w", err)
	}

	var value string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read slot %q: %w", s.key, err)
	}
	return []byte(value), nil
}

// Write implements storage.Slot.Write
func (s *SQLSlot) Write(ctx context.Context, data []byte) error {
	if err := s.checkOpen(); err != nil {
		return err
	}
	stmt, args, err := s.dialect.buildUpsert(s.key, string(data), s.now().UTC())
	if err != nil {
		return fmt.Errorf("failed to build upsert: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("failed to write slot %q: %w", s.key, err)
	}
	return nil
}

// Close implements storage.Slot.Close
func (s *SQLSlot) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if s.ownsDB {
		return s.db.Close()
	}
	return nil
}
