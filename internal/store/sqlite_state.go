package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"rotodendron/internal/model"
	"rotodendron/internal/tree"

	_ "modernc.org/sqlite"
)

const snapshotVersion = 1

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.SnapshotPath())
	if err != nil {
		return nil, err
	}
	// WAL lets `rotodendron outline` read while a session is writing.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS nodes (
			id INTEGER PRIMARY KEY,
			parent_id INTEGER NULL,
			branch_index INTEGER NOT NULL,
			depth INTEGER NOT NULL,
			text TEXT NOT NULL,
			created_at_unixnano INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_parent ON nodes(parent_id, branch_index);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// saveSnapshot replaces the stored tree in one transaction.
func (s Store) saveSnapshot(ctx context.Context, t *tree.Tree) error {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	meta := map[string]string{
		"version": strconv.Itoa(snapshotVersion),
		"next_id": strconv.FormatInt(t.NextID(), 10),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO meta(k, v) VALUES(?, ?)`, k, v); err != nil {
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM nodes`); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO nodes(id, parent_id, branch_index, depth, text, created_at_unixnano) VALUES(?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, n := range t.Snapshot() {
		var parent sql.NullInt64
		if n.ParentID != nil {
			parent = sql.NullInt64{Int64: *n.ParentID, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, n.ID, parent, n.BranchIndex, n.Depth, n.Text, n.CreatedAt.UnixNano()); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// loadSnapshot returns nil, nil when the database holds no nodes.
func (s Store) loadSnapshot(ctx context.Context) (*tree.Tree, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	readMeta := func(k string) string {
		var v string
		_ = db.QueryRowContext(ctx, `SELECT v FROM meta WHERE k = ?`, k).Scan(&v)
		return strings.TrimSpace(v)
	}
	if v := readMeta("version"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n > snapshotVersion {
			return nil, fmt.Errorf("unsupported snapshot version %q", v)
		}
	}

	nodes, err := readNodeRows(ctx, db)
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}

	t, err := tree.Restore(nodes)
	if err != nil {
		return nil, err
	}
	if v := readMeta("next_id"); v != "" {
		next, err := strconv.ParseInt(v, 10, 64)
		if err != nil || next != t.NextID() {
			return nil, fmt.Errorf("next_id %q does not match stored nodes (%d): %w", v, t.NextID(), tree.ErrInvalidSnapshot)
		}
	}
	return t, nil
}

func readNodeRows(ctx context.Context, db *sql.DB) ([]model.NodeSnapshot, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, parent_id, branch_index, depth, text, created_at_unixnano FROM nodes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.NodeSnapshot
	for rows.Next() {
		var (
			n      model.NodeSnapshot
			parent sql.NullInt64
			nanos  int64
		)
		if err := rows.Scan(&n.ID, &parent, &n.BranchIndex, &n.Depth, &n.Text, &nanos); err != nil {
			return nil, err
		}
		if parent.Valid {
			pid := parent.Int64
			n.ParentID = &pid
		}
		n.CreatedAt = time.Unix(0, nanos)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
