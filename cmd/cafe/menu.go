package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cafe/internal/platform/tui"
	"github.com/vovakirdan/tui-cafe/internal/registry"
	"github.com/vovakirdan/tui-cafe/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with a scene picker menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to select a scene.
Press B or Esc inside a scene to return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select scene
  Tab          - Scoreboard
  Q            - Quit

Examples:
  cafe menu
  cafe menu --fps 30
  cafe menu --db ./cafe.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	sim, err := loadSim()
	if err != nil {
		exitf("%v", err)
	}

	logger, closeLog := interactiveLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	defer func() {
		if store != nil {
			store.Close()
		}
	}()

	cfg := runtimeConfig()
	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", sbErr)
			}
			if goBack {
				continue
			}
			return
		}

		scene, err := registry.Create(result.SceneID, sim)
		if err != nil {
			logger.Error("cannot create scene", "scene", result.SceneID, "error", err)
			continue
		}

		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}
		back, err := tui.Run(scene, store, cfg, sim.Physics, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running scene: %v\n", err)
			return
		}
		if !back {
			return
		}
	}
}
