package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"expenso/internal/core"
	"expenso/internal/store"
)

var _ store.Persister = (*FilePersister)(nil)

// FilePersister keeps the snapshot in <dir>/expense-tracker.json.
type FilePersister struct {
	path string
}

func NewFilePersister(dir string) (*FilePersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FilePersister{path: filepath.Join(dir, core.StorageKey+".json")}, nil
}

// Path returns the file holding the snapshot.
func (p *FilePersister) Path() string { return p.path }

func (p *FilePersister) Load(context.Context) (core.Snapshot, error) {
	data, err := os.ReadFile(p.path)
	if errors.Is(err, fs.ErrNotExist) {
		return core.InitialSnapshot(), nil
	}
	if err != nil {
		return core.Snapshot{}, fmt.Errorf("read %s: %w", p.path, err)
	}
	return Decode(data)
}

// Save writes a temp file next to the target and renames it into place so
// readers never observe a partial snapshot.
func (p *FilePersister) Save(_ context.Context, snap core.Snapshot) error {
	data, err := Encode(snap)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p.path), core.StorageKey+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return fmt.Errorf("rename into %s: %w", p.path, err)
	}
	return nil
}
