package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cafe/internal/bench"
	"github.com/vovakirdan/tui-cafe/internal/registry"
	"github.com/vovakirdan/tui-cafe/internal/storage"
)

var (
	flagSteps      int
	flagSpawnEvery int
	flagDumpEvery  int
	flagDump       string
	flagNoSave     bool
)

var benchCmd = &cobra.Command{
	Use:   "bench <scene>",
	Short: "Run a scene headless and record the run",
	Long: `Run a scene for a fixed number of steps without a terminal and report
the broad-phase pairs tested, the collisions resolved and the wall time.
Runs are stored in the database and listed by 'cafe scores --runs'.

With --dump, world snapshots are written as msgpack: one every
--dump-every steps plus the final state.

Examples:
  cafe bench balls --steps 2000 --spawn-every 100
  cafe bench balls_quadtree --seed 1 --dump ./run.msgpack
  cafe bench pool --steps 600 --spawn-every 300`,
	Args: cobra.ExactArgs(1),
	Run:  runBench,
}

func init() {
	benchCmd.Flags().IntVar(&flagSteps, "steps", 1000, "Fixed steps to run")
	benchCmd.Flags().IntVar(&flagSpawnEvery, "spawn-every", 50, "Press spawn every n steps (0 = never)")
	benchCmd.Flags().IntVar(&flagDumpEvery, "dump-every", 0, "Snapshot every n steps (0 = final state only)")
	benchCmd.Flags().StringVar(&flagDump, "dump", "", "Write msgpack snapshots to this file")
	benchCmd.Flags().BoolVar(&flagNoSave, "no-save", false, "Do not record the run in the database")
}

func runBench(_ *cobra.Command, args []string) {
	sceneID := args[0]
	logger := newLogger(os.Stderr)

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

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := bench.Options{
		Steps:      flagSteps,
		SpawnEvery: flagSpawnEvery,
		DumpEvery:  flagDumpEvery,
		Seed:       flagSeed,
	}
	logger.Info("bench started", "scene", sceneID, "steps", opts.Steps, "seed", opts.Seed)

	res, err := bench.Run(ctx, scene, opts, logger)
	if err != nil {
		stop()
		exitf("%v", err)
	}

	fmt.Printf("Scene:       %s\n", res.SceneID)
	fmt.Printf("Steps:       %d\n", res.Steps)
	fmt.Printf("Bodies:      %d\n", res.Bodies)
	fmt.Printf("Pairs:       %d (%.1f per step)\n", res.Pairs, res.PairsPerStep())
	fmt.Printf("Collisions:  %d\n", res.Collisions)
	fmt.Printf("Wall time:   %s\n", res.WallTime)
	fmt.Printf("Hash:        %016x\n", res.Hash)

	if flagDump != "" {
		if err := storage.WriteSnapshotFile(flagDump, res.Snapshots); err != nil {
			logger.Error("could not write snapshots", "path", flagDump, "error", err)
		} else {
			logger.Info("snapshots written", "path", flagDump, "count", len(res.Snapshots))
		}
	}

	if flagNoSave {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open database, run not recorded", "error", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(res.Record())
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Info("run recorded", "id", id)
}
