package sqlitepool

import (
	"context"
	"path/filepath"
	"testing"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

func openTestPool(t *testing.T, onConnect func(*sqlite.Conn) error) *Pool {
	t.Helper()

	pool, err := Open(Config{
		Path:      filepath.Join(t.TempDir(), "test.db"),
		PoolSize:  2,
		OnConnect: onConnect,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() {
		if err := pool.Close(); err != nil {
			t.Errorf("failed to close pool: %v", err)
		}
	})
	return pool
}

func TestOpen_EmptyPath(t *testing.T) {
	_, err := Open(Config{})
	if err == nil {
		t.Fatal("expected error for empty path, got nil")
	}
}

func TestOpen_UsesWALJournal(t *testing.T) {
	pool := openTestPool(t, nil)

	conn, err := pool.Take(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer pool.Put(conn)

	var mode string
	err = sqlitex.ExecuteTransient(conn, "PRAGMA journal_mode", &sqlitex.ExecOptions{
		ResultFunc: func(stmt *sqlite.Stmt) error {
			mode = stmt.ColumnText(0)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mode != "wal" {
		t.Errorf("expected journal mode %q, got %q", "wal", mode)
	}
}

func TestOpen_RunsOnConnect(t *testing.T) {
	called := false
	pool := openTestPool(t, func(conn *sqlite.Conn) error {
		called = true
		return sqlitex.ExecuteScript(conn, "CREATE TABLE IF NOT EXISTS items (id INTEGER PRIMARY KEY);", nil)
	})

	conn, err := pool.Take(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer pool.Put(conn)

	if !called {
		t.Error("expected OnConnect to be called")
	}

	err = sqlitex.Execute(conn, "INSERT INTO items (id) VALUES (?)", &sqlitex.ExecOptions{
		Args: []any{1},
	})
	if err != nil {
		t.Fatalf("expected schema from OnConnect, got error: %v", err)
	}
}

func TestTake_CancelledContext(t *testing.T) {
	pool := openTestPool(t, nil)

	// Exhaust the pool so Take has to wait.
	conns := make([]*sqlite.Conn, 0, 2)
	for range 2 {
		conn, err := pool.Take(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		conns = append(conns, conn)
	}
	defer func() {
		for _, conn := range conns {
			pool.Put(conn)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := pool.Take(ctx); err == nil {
		t.Error("expected error for cancelled context, got nil")
	}
}
