package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/younwookim/rigdemo/internal/application/journal"
	"github.com/younwookim/rigdemo/internal/application/scene/editor"
	"github.com/younwookim/rigdemo/internal/application/system"
	"github.com/younwookim/rigdemo/internal/infrastructure/config"
	"github.com/younwookim/rigdemo/internal/infrastructure/persist"
)

func loadEmbedded(t *testing.T) *config.GameConfig {
	t.Helper()
	loader, err := newLoader("")
	require.NoError(t, err)
	cfg, err := loader.LoadAll()
	require.NoError(t, err)
	return cfg
}

func TestNewLoader_EmbeddedAndDisk(t *testing.T) {
	cfg := loadEmbedded(t)
	assert.Equal(t, "stickman", cfg.Rig.Name)

	loader, err := newLoader("configs")
	require.NoError(t, err)
	fromDisk, err := loader.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, cfg.Editor, fromDisk.Editor)
}

func TestSetup(t *testing.T) {
	cfg := loadEmbedded(t)

	g, err := setup(cfg, persist.NewStore(nil), options{})
	require.NoError(t, err)

	ed, ok := g.Current().(*editor.Editor)
	require.True(t, ok)
	assert.Equal(t, len(cfg.Rig.Bones), ed.Skeleton().Len())
	assert.InDelta(t, 1.0/float64(cfg.Editor.Display.Framerate), g.DT(), 1e-12)
}

func TestSetup_ReplaysJournal(t *testing.T) {
	cfg := loadEmbedded(t)

	filename := filepath.Join(t.TempDir(), "journal.json")
	rec := journal.NewRecorder(cfg.Rig.Name)
	require.NoError(t, rec.Record(&system.AddAnimation{Animation: "jump"}))
	require.NoError(t, rec.Record(&system.AddKeyframe{Animation: "jump", Frame: 4}))
	require.NoError(t, rec.Save(filename))

	g, err := setup(cfg, persist.NewStore(nil), options{replay: filename})
	require.NoError(t, err)

	a := g.Current().(*editor.Editor).Skeleton().Animation("jump")
	require.NotNil(t, a)
	assert.True(t, a.IsKeyframe(4))
}

func TestSetup_WatchesJournal(t *testing.T) {
	cfg := loadEmbedded(t)

	filename := filepath.Join(t.TempDir(), "journal.json")
	rec := journal.NewRecorder(cfg.Rig.Name)
	rec.Tick()
	require.NoError(t, rec.Record(&system.AddAnimation{Animation: "jump"}))
	require.NoError(t, rec.Save(filename))

	g, err := setup(cfg, persist.NewStore(nil), options{watch: filename})
	require.NoError(t, err)
	ed := g.Current().(*editor.Editor)
	assert.Nil(t, ed.Skeleton().Animation("jump"), "nothing applied before the first tick")
}

func TestSetup_Errors(t *testing.T) {
	t.Run("missing journal", func(t *testing.T) {
		cfg := loadEmbedded(t)
		_, err := setup(cfg, nil, options{replay: filepath.Join(t.TempDir(), "nope.json")})
		assert.Error(t, err)
	})

	t.Run("missing watch journal", func(t *testing.T) {
		cfg := loadEmbedded(t)
		_, err := setup(cfg, nil, options{watch: filepath.Join(t.TempDir(), "nope.json")})
		assert.Error(t, err)
	})

	t.Run("bad rig", func(t *testing.T) {
		cfg := loadEmbedded(t)
		cfg.Rig.Bones[1].Parent = "ghost"
		_, err := setup(cfg, nil, options{})
		assert.Error(t, err)
	})
}
