package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cafe/internal/platform/tui"
	"github.com/vovakirdan/tui-cafe/internal/registry"
	"github.com/vovakirdan/tui-cafe/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <scene>",
	Short: "Run a scene",
	Long: `Start the specified scene.

Controls:
  WASD/Arrows  - Move (café), aim and power (pool)
  Space        - Spawn balls / shoot the cue ball
  X/E          - Interact with the highlighted item (café)
  T            - Toggle overlay (balls) or elasticity (pool)
  P            - Pause
  R            - Restart
  B/Esc        - Back
  Ctrl+S       - Save a screenshot to ~/.cafe/screenshots
  Q/Ctrl+C     - Quit

Difficulty options (café only):
  easy   - Customers start calm, arrivals speed up as you serve
  normal - Start at 30% pace
  hard   - Start at 70% pace
  fixed  - No progression

Examples:
  cafe play balls_grid
  cafe play pool --seed 7
  cafe play cafe --difficulty hard
  cafe play cafe --config ./my-sim.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	sceneID := args[0]

	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'cafe list' to see available scenes.")
		os.Exit(1)
	}

	sim, err := loadSim()
	if err != nil {
		exitf("%v", err)
	}

	scene, err := registry.Create(sceneID, sim)
	if err != nil {
		exitf("creating scene: %v", err)
	}

	logger, closeLog := interactiveLogger()
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	_, runErr := tui.Run(scene, store, runtimeConfig(), sim.Physics, logger)

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		closeLog()
		exitf("running scene: %v", runErr)
	}
}
