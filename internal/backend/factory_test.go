package backend

import (
	"context"
	"path/filepath"
	"testing"

	"expenso/internal/config"
	"expenso/internal/core"
	"expenso/internal/sheets/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromAppConfig(t *testing.T) {
	_, err := FromAppConfig(nil)
	assert.Error(t, err)

	_, err = FromAppConfig(&config.Config{DataBackend: "sheets"})
	assert.Error(t, err)

	cfg, err := FromAppConfig(&config.Config{DataBackend: "sqlite", SQLiteDBPath: "x.db", DataDir: "d"})
	require.NoError(t, err)
	assert.Equal(t, Config{Type: SQLiteBackend, DataDirectory: "d", SQLiteDBPath: "x.db"}, cfg)
}

func TestConfigValidate(t *testing.T) {
	assert.NoError(t, Config{Type: MemoryBackend}.Validate())
	assert.Error(t, Config{Type: FileBackend}.Validate())
	assert.Error(t, Config{Type: SQLiteBackend}.Validate())
	assert.Error(t, Config{Type: "redis"}.Validate())
	assert.Equal(t, []string{"memory", "file", "sqlite"}, GetBackendTypeStrings())
}

func TestCreateBackendRoundTrip(t *testing.T) {
	dir := t.TempDir()
	configs := []Config{
		{Type: MemoryBackend},
		{Type: FileBackend, DataDirectory: dir},
		{Type: SQLiteBackend, SQLiteDBPath: filepath.Join(dir, "expenso.db")},
	}

	ctx := context.Background()
	f := NewFactory(nil)
	for _, cfg := range configs {
		t.Run(cfg.Type.String(), func(t *testing.T) {
			res, err := f.CreateBackend(ctx, cfg)
			require.NoError(t, err)
			t.Cleanup(func() { _ = res.Close() })

			if res.Ready != nil {
				require.NoError(t, res.Ready(ctx))
			}

			snap := core.InitialSnapshot()
			snap.Theme = core.Dark
			require.NoError(t, res.Persister.Save(ctx, snap))

			got, err := res.Persister.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, core.Dark, got.Theme)
		})
	}
}

func TestCreateReportWriterDefaultsToMemory(t *testing.T) {
	w, err := NewFactory(nil).CreateReportWriter(context.Background(), ExportConfig{})
	require.NoError(t, err)
	assert.IsType(t, &memory.Writer{}, w)
}
