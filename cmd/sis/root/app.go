package root

import (
	"context"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/config"
	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/engine"
	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/storage"
	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/ui"
	"github.com/MrAayushCode/sisyphus-engine-sub000/internal/vault"
)

// consoleNotifier prints engine notifications as styled lines.
type consoleNotifier struct{}

func (consoleNotifier) Notify(msg string) {
	fmt.Fprintln(os.Stdout, ui.Muted.Render("» ")+msg)
}

// bellAudio renders cues as a terminal bell; death gets two.
type bellAudio struct{}

func (bellAudio) PlayCue(c engine.Cue) {
	switch c {
	case engine.CueDeath:
		fmt.Fprint(os.Stdout, "\a\a")
	default:
		fmt.Fprint(os.Stdout, "\a")
	}
}

// openGame wires config, store, vault and the engine together.
func openGame(ctx context.Context) (*engine.Game, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	store, err := storage.NewByEngine(cfg.StoreEngine, cfg.StorePath())
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if c, ok := store.(storage.Closer); ok {
			_ = c.Close()
		}
	}

	files, err := vault.Open(cfg.VaultDir, nil)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	opts := engine.Options{
		Store:  store,
		Files:  files,
		Notify: consoleNotifier{},
	}
	if !cfg.Quiet {
		opts.Audio = bellAudio{}
	}
	if cfg.Seed != 0 {
		opts.RNG = engine.NewRNG(cfg.Seed)
	} else {
		opts.RNG = engine.NewRNG(rand.Uint64())
	}

	g, err := engine.Load(ctx, opts)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return g, cleanup, nil
}
