package main

import (
	"flag"
	"fmt"
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/younwookim/rigdemo/internal/application/game"
	"github.com/younwookim/rigdemo/internal/application/journal"
	"github.com/younwookim/rigdemo/internal/application/scene/editor"
	"github.com/younwookim/rigdemo/internal/application/system"
	"github.com/younwookim/rigdemo/internal/domain/anim"
	"github.com/younwookim/rigdemo/internal/infrastructure/config"
	"github.com/younwookim/rigdemo/internal/infrastructure/persist"
)

// options are the command line flags
type options struct {
	configDir string // read configs from disk instead of the embedded set
	replay    string // journal applied to the rig before editing
	watch     string // journal played back tick by tick while editing
	record    string // journal output, overrides editor.json
}

func main() {
	var opts options
	flag.StringVar(&opts.configDir, "configs", "", "Load configs from a directory instead of the embedded set")
	flag.StringVar(&opts.replay, "replay", "", "Apply a command journal to the rig at startup (e.g., -replay journal.json)")
	flag.StringVar(&opts.watch, "watch", "", "Play a command journal back tick by tick in the editor")
	flag.StringVar(&opts.record, "record", "", "Record editing commands to file (e.g., -record journal.json)")
	flag.Parse()

	loader, err := newLoader(opts.configDir)
	if err != nil {
		log.Fatalf("Failed to get config subfs: %v", err)
	}
	cfg, err := loader.LoadAll()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if opts.record != "" {
		cfg.Editor.Editor.JournalPath = opts.record
	}

	store := persist.OpenStore(cfg.Editor.Editor.StorageApp)
	g, err := setup(cfg, store, opts)
	if err != nil {
		log.Fatalf("Failed to start editor: %v", err)
	}

	display := cfg.Editor.Display
	ebiten.SetWindowSize(display.ScreenWidth*display.Scale, display.ScreenHeight*display.Scale)
	ebiten.SetWindowTitle(fmt.Sprintf("Rig Editor - %s", cfg.Rig.Name))
	ebiten.SetTPS(display.Framerate)

	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func newLoader(dir string) (*config.Loader, error) {
	if dir != "" {
		return config.NewLoader(dir), nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, err
	}
	return config.NewFSLoader(fsys, "configs"), nil
}

// setup builds the level, the rig and the editor scene
func setup(cfg *config.GameConfig, store *persist.Store, opts options) (*game.Game, error) {
	level := system.LoadStage(cfg.Stage)

	skel, err := system.LoadRig(cfg.Rig, cfg.Editor.Playback)
	if err != nil {
		return nil, fmt.Errorf("failed to build rig %s: %w", cfg.Rig.Name, err)
	}
	if opts.replay != "" {
		if err := replayJournal(skel, opts.replay); err != nil {
			return nil, err
		}
	}

	ed := editor.New(cfg, level, skel, store)
	if opts.watch != "" {
		data, err := journal.Load(opts.watch)
		if err != nil {
			return nil, err
		}
		ed.Watch(journal.NewReplayer(*data))
	}

	return game.New(ed, cfg.Editor.Display), nil
}

// replayJournal applies a saved journal to the freshly loaded rig
func replayJournal(skel *anim.Skeleton, filename string) error {
	data, err := journal.Load(filename)
	if err != nil {
		return err
	}
	if err := journal.Replay(skel, *data); err != nil {
		return fmt.Errorf("failed to replay %s: %w", filename, err)
	}
	log.Printf("Replayed %s (%d commands, rig %s)", filename, len(data.Entries), data.Rig)
	return nil
}
