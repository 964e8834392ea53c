// Package bench runs scenes headless at the fixed timestep and measures
// broad-phase work.
package bench

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-cafe/internal/core"
	"github.com/vovakirdan/tui-cafe/internal/registry"
	"github.com/vovakirdan/tui-cafe/internal/storage"
)

// ErrNoSteps is returned when a run is asked for zero steps.
var ErrNoSteps = errors.New("bench: steps must be positive")

// checkEvery is how many steps run between context checks.
const checkEvery = 1024

// Options controls a headless run.
type Options struct {
	Steps      int   // fixed steps to run
	SpawnEvery int   // press spawn every n steps, 0 = never
	DumpEvery  int   // snapshot every n steps, 0 = final state only
	Seed       int64 // RNG seed passed to the scene
}

// Result holds the counters of one run.
type Result struct {
	SceneID    string
	Steps      int
	Bodies     int
	Pairs      int64
	Collisions int64
	WallTime   time.Duration
	Hash       uint64
	Snapshots  []core.Snapshot
}

// Run resets the scene and steps it opts.Steps times. The final snapshot
// is always the last element of Snapshots.
func Run(ctx context.Context, scene registry.Scene, opts Options, logger *log.Logger) (Result, error) {
	if opts.Steps <= 0 {
		return Result{}, ErrNoSteps
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	rc := core.DefaultConfig()
	rc.Seed = opts.Seed
	scene.Reset(rc)

	res := Result{SceneID: scene.ID()}
	spawn := core.NewInputFrame()
	spawn.Set(core.ActionSpawn)
	idle := core.NewInputFrame()

	start := time.Now()
	for i := 1; i <= opts.Steps; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return res, fmt.Errorf("bench: stopped after %d steps: %w", res.Steps, err)
			}
		}

		in := idle
		if opts.SpawnEvery > 0 && (i-1)%opts.SpawnEvery == 0 {
			in = spawn
		}
		step := scene.Step(in)
		res.Steps++
		res.Pairs += int64(step.Pairs)
		res.Collisions += int64(step.Collisions)

		if opts.DumpEvery > 0 && i%opts.DumpEvery == 0 && i != opts.Steps {
			res.Snapshots = append(res.Snapshots, scene.Snapshot())
		}
	}
	res.WallTime = time.Since(start)

	final := scene.Snapshot()
	res.Snapshots = append(res.Snapshots, final)
	res.Bodies = len(final.Bodies)
	res.Hash = final.Hash()

	logger.Debug("bench finished",
		"scene", res.SceneID,
		"steps", res.Steps,
		"bodies", res.Bodies,
		"pairs", res.Pairs,
		"collisions", res.Collisions,
		"wall", res.WallTime,
	)
	return res, nil
}

// Record converts the result into a stored run.
func (r Result) Record() storage.Run {
	return storage.Run{
		SceneID:    r.SceneID,
		Steps:      r.Steps,
		Bodies:     r.Bodies,
		Pairs:      r.Pairs,
		Collisions: r.Collisions,
		WallTime:   r.WallTime,
		Hash:       r.Hash,
	}
}

// PairsPerStep is the mean number of broad-phase pairs tested per step.
func (r Result) PairsPerStep() float64 {
	if r.Steps == 0 {
		return 0
	}
	return float64(r.Pairs) / float64(r.Steps)
}
