// Package store persists a paragraph tree as three artifacts sharing one base
// name: a SQLite snapshot for exact restoration, a markdown outline and a flat
// CSV export.
package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"rotodendron/internal/tree"
)

const (
	DefaultBase = "tree"

	snapshotExt = ".sqlite"
	outlineExt  = ".md"
	csvExt      = ".csv"
)

type Store struct {
	// Base is the artifact path without extension, e.g. "notes/tree".
	Base string
}

func New(base string) Store {
	base = strings.TrimSpace(base)
	if base == "" {
		base = DefaultBase
	}
	return Store{Base: base}
}

func (s Store) SnapshotPath() string { return s.Base + snapshotExt }
func (s Store) OutlinePath() string  { return s.Base + outlineExt }
func (s Store) CSVPath() string      { return s.Base + csvExt }

func (s Store) dir() string {
	return filepath.Dir(s.Base)
}

func (s Store) Ensure() error {
	if strings.TrimSpace(s.Base) == "" {
		return errors.New("store: missing base name")
	}
	return os.MkdirAll(s.dir(), 0o755)
}

// Load restores the tree from the snapshot. A missing snapshot is not an
// error: it yields a fresh tree and ok=false. The restored path follows the
// leftmost lineage.
func (s Store) Load(ctx context.Context) (*tree.Tree, bool, error) {
	if _, err := os.Stat(s.SnapshotPath()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return tree.New(), false, nil
		}
		return nil, false, err
	}
	t, err := s.loadSnapshot(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", s.SnapshotPath(), err)
	}
	if t == nil {
		return tree.New(), false, nil
	}
	return t, true, nil
}

// Save writes the outline, the snapshot and the CSV export, in that order.
// The steps are independent: a failure in one does not skip the others, and
// the returned error joins every failure.
func (s Store) Save(ctx context.Context, t *tree.Tree) error {
	if t == nil {
		return errors.New("store: nil tree")
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	var errs []error
	if err := s.WriteOutline(t); err != nil {
		errs = append(errs, fmt.Errorf("write outline: %w", err))
	}
	if err := s.saveSnapshot(ctx, t); err != nil {
		errs = append(errs, fmt.Errorf("write snapshot: %w", err))
	}
	if err := s.WriteCSV(t); err != nil {
		errs = append(errs, fmt.Errorf("write csv: %w", err))
	}
	return errors.Join(errs...)
}

// Export regenerates the outline and CSV from the stored snapshot without
// touching the snapshot itself.
func (s Store) Export(ctx context.Context) error {
	t, ok, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s: %w", s.SnapshotPath(), os.ErrNotExist)
	}
	if err := s.WriteOutline(t); err != nil {
		return fmt.Errorf("write outline: %w", err)
	}
	if err := s.WriteCSV(t); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}
