package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLite loads rules from a SQLite database. It reads the policy_rules
// table, creating it if necessary:
//
//	CREATE TABLE policy_rules (
//	    name       TEXT PRIMARY KEY,
//	    expression TEXT NOT NULL
//	)
//
// This source suits single-instance deployments where rule text lives next
// to other host state instead of in files.
type SQLite struct {
	db *sql.DB
}

// SQLiteConfig configures the SQLite rule source.
type SQLiteConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLite opens a SQLite rule source with default settings.
func NewSQLite(dbPath string) (*SQLite, error) {
	return NewSQLiteWithConfig(SQLiteConfig{DBPath: dbPath})
}

// NewSQLiteWithConfig opens a SQLite rule source with custom configuration.
func NewSQLiteWithConfig(cfg SQLiteConfig) (*SQLite, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	// Open database with WAL mode and busy timeout
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	src := &SQLite{db: db}
	if err := src.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return src, nil
}

// initSchema creates the policy_rules table if it does not exist.
func (s *SQLite) initSchema() error {
	const schema = `
		CREATE TABLE IF NOT EXISTS policy_rules (
			name       TEXT PRIMARY KEY,
			expression TEXT NOT NULL
		)`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// LoadRules reads all rules from the policy_rules table.
func (s *SQLite) LoadRules(ctx context.Context) (map[string]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, expression FROM policy_rules`)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	rules := make(map[string]string)
	for rows.Next() {
		var name, expression string
		if err := rows.Scan(&name, &expression); err != nil {
			return nil, fmt.Errorf("failed to scan rule row: %w", err)
		}
		rules[name] = expression
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rules: %w", err)
	}

	return rules, nil
}

// SaveRule inserts or replaces a rule. The text is not validated here; parse
// errors surface when the rules are applied to a rule set.
func (s *SQLite) SaveRule(ctx context.Context, name, expression string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO policy_rules (name, expression) VALUES (?, ?)
		 ON CONFLICT(name) DO UPDATE SET expression = excluded.expression`,
		name, expression,
	)
	if err != nil {
		return fmt.Errorf("failed to save rule %q: %w", name, err)
	}
	return nil
}

// DeleteRule removes a rule by name. Deleting an absent rule is not an error.
func (s *SQLite) DeleteRule(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM policy_rules WHERE name = ?`, name); err != nil {
		return fmt.Errorf("failed to delete rule %q: %w", name, err)
	}
	return nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
