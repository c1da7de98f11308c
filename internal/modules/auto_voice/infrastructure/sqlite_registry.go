package infrastructure

import (
	"context"
	"fmt"

	"github.com/disgoorg/snowflake/v2"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"

	"github.com/sglre6355/tempvoice/internal/modules/auto_voice/domain"
	"github.com/sglre6355/tempvoice/internal/sqlitepool"
)

const registrySchema = `
CREATE TABLE IF NOT EXISTS primary_channels (
	id INTEGER PRIMARY KEY NOT NULL
);
CREATE TABLE IF NOT EXISTS temporary_channels (
	id INTEGER PRIMARY KEY NOT NULL
);
`

// SQLiteRegistry is a ChannelRegistry backed by a SQLite database with one
// table per ChannelKind.
type SQLiteRegistry struct {
	pool *sqlitepool.Pool
}

// SQLiteRegistryConfig holds the parameters for OpenSQLiteRegistry.
type SQLiteRegistryConfig struct {
	Path     string
	PoolSize int
}

// OpenSQLiteRegistry opens the database at cfg.Path, creating the schema if
// needed.
func OpenSQLiteRegistry(cfg SQLiteRegistryConfig) (*SQLiteRegistry, error) {
	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:     cfg.Path,
		PoolSize: cfg.PoolSize,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, registrySchema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("open channel registry: %w", err)
	}

	return &SQLiteRegistry{pool: pool}, nil
}

// Insert registers id as kind. The cross-table uniqueness check and the
// insert run in one IMMEDIATE transaction, so concurrent inserts of the same
// id are serialized by the database write lock.
func (r *SQLiteRegistry) Insert(
	ctx context.Context,
	id snowflake.ID,
	kind domain.ChannelKind,
) (err error) {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	conn, err := r.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("insert %d: %w", id, err)
	}
	defer r.pool.Put(conn)

	endTransaction, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return fmt.Errorf("insert %d: begin transaction: %w", id, err)
	}
	defer endTransaction(&err)

	registered, err := registeredUnderAnyKind(conn, id)
	if err != nil {
		return err
	}
	if registered {
		return fmt.Errorf("%w: %d", domain.ErrDuplicateRecord, id)
	}

	err = sqlitex.Execute(conn, "INSERT INTO "+table+" (id) VALUES (?)", &sqlitex.ExecOptions{
		Args: []any{int64(id)},
	})
	if sqlite.ErrCode(err) == sqlite.ResultConstraintPrimaryKey {
		return fmt.Errorf("%w: %d", domain.ErrDuplicateRecord, id)
	}
	if err != nil {
		return fmt.Errorf("insert %d into %s: %w", id, table, err)
	}

	return nil
}

// Exists reports whether id is registered as kind.
func (r *SQLiteRegistry) Exists(
	ctx context.Context,
	id snowflake.ID,
	kind domain.ChannelKind,
) (bool, error) {
	table, err := tableFor(kind)
	if err != nil {
		return false, err
	}

	conn, err := r.pool.Take(ctx)
	if err != nil {
		return false, fmt.Errorf("look up %d: %w", id, err)
	}
	defer r.pool.Put(conn)

	found, err := rowExists(conn, table, id)
	if err != nil {
		return false, fmt.Errorf("look up %d in %s: %w", id, table, err)
	}
	return found, nil
}

// Delete removes id from kind. Deleting an absent record is a no-op.
func (r *SQLiteRegistry) Delete(
	ctx context.Context,
	id snowflake.ID,
	kind domain.ChannelKind,
) error {
	table, err := tableFor(kind)
	if err != nil {
		return err
	}

	conn, err := r.pool.Take(ctx)
	if err != nil {
		return fmt.Errorf("delete %d: %w", id, err)
	}
	defer r.pool.Put(conn)

	err = sqlitex.Execute(conn, "DELETE FROM "+table+" WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{int64(id)},
	})
	if err != nil {
		return fmt.Errorf("delete %d from %s: %w", id, table, err)
	}
	return nil
}

// List returns every record of the given kind.
func (r *SQLiteRegistry) List(ctx context.Context, kind domain.ChannelKind) ([]domain.ChannelRecord, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	conn, err := r.pool.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	defer r.pool.Put(conn)

	var records []domain.ChannelRecord
	err = sqlitex.Execute(conn, "SELECT id FROM "+table+" ORDER BY id", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			records = append(records, domain.ChannelRecord{
				ID:   snowflake.ID(stmt.ColumnInt64(0)),
				Kind: kind,
			})
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", kind, err)
	}
	return records, nil
}

// Close closes the underlying connection pool.
func (r *SQLiteRegistry) Close() error {
	return r.pool.Close()
}

// tableFor maps a kind to its table. Table names never come from input.
func tableFor(kind domain.ChannelKind) (string, error) {
	switch kind {
	case domain.ChannelKindPrimary:
		return "primary_channels", nil
	case domain.ChannelKindTemporary:
		return "temporary_channels", nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrInvalidKind, kind)
	}
}

func registeredUnderAnyKind(conn *sqlite.Conn, id snowflake.ID) (bool, error) {
	for _, kind := range []domain.ChannelKind{domain.ChannelKindPrimary, domain.ChannelKindTemporary} {
		table, _ := tableFor(kind)
		found, err := rowExists(conn, table, id)
		if err != nil {
			return false, fmt.Errorf("look up %d in %s: %w", id, table, err)
		}
		if found {
			return true, nil
		}
	}
	return false, nil
}

func rowExists(conn *sqlite.Conn, table string, id snowflake.ID) (bool, error) {
	found := false
	err := sqlitex.Execute(conn, "SELECT 1 FROM "+table+" WHERE id = ?", &sqlitex.ExecOptions{
		Args: []any{int64(id)},
		ResultFunc: func(*sqlite.Stmt) error {
			found = true
			return nil
		},
	})
	return found, err
}

var _ domain.ChannelRegistry = (*SQLiteRegistry)(nil)
