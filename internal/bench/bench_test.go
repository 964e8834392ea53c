package bench

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-cafe/internal/config"
	"github.com/vovakirdan/tui-cafe/internal/registry"
	_ "github.com/vovakirdan/tui-cafe/internal/scenes/balls"
	"github.com/vovakirdan/tui-cafe/internal/storage"
)

func newScene(t *testing.T, id string) registry.Scene {
	t.Helper()
	s, err := registry.Create(id, config.Default())
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", id, err)
	}
	return s
}

func TestRunCounts(t *testing.T) {
	opts := Options{Steps: 100, SpawnEvery: 50, DumpEvery: 25, Seed: 3}
	res, err := Run(context.Background(), newScene(t, "balls_grid"), opts, nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if res.Steps != 100 {
		t.Errorf("Steps = %d, expected 100", res.Steps)
	}
	if res.Bodies != 2*config.Default().Balls.PerPress {
		t.Errorf("Bodies = %d, expected %d", res.Bodies, 2*config.Default().Balls.PerPress)
	}
	// dumps at 25, 50, 75 plus the final state
	if len(res.Snapshots) != 4 {
		t.Fatalf("got %d snapshots, expected 4", len(res.Snapshots))
	}
	last := res.Snapshots[len(res.Snapshots)-1]
	if last.Tick != 100 {
		t.Errorf("final snapshot tick = %d, expected 100", last.Tick)
	}
	if res.Hash != last.Hash() {
		t.Error("Hash does not match the final snapshot")
	}
	if res.Pairs == 0 {
		t.Error("expected some pairs to be tested")
	}
}

func TestRunDeterministic(t *testing.T) {
	opts := Options{Steps: 300, SpawnEvery: 60, Seed: 42}
	for _, id := range []string{"balls", "balls_grid", "balls_quadtree"} {
		t.Run(id, func(t *testing.T) {
			a, err := Run(context.Background(), newScene(t, id), opts, nil)
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			b, err := Run(context.Background(), newScene(t, id), opts, nil)
			if err != nil {
				t.Fatalf("Run() failed: %v", err)
			}
			if a.Hash != b.Hash {
				t.Errorf("hashes differ: %x vs %x", a.Hash, b.Hash)
			}
			if a.Pairs != b.Pairs || a.Collisions != b.Collisions {
				t.Errorf("counters differ: %d/%d vs %d/%d", a.Pairs, a.Collisions, b.Pairs, b.Collisions)
			}
		})
	}
}

func TestGridTestsFewerPairsThanBruteForce(t *testing.T) {
	opts := Options{Steps: 200, SpawnEvery: 20, Seed: 7}
	brute, err := Run(context.Background(), newScene(t, "balls"), opts, nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	grid, err := Run(context.Background(), newScene(t, "balls_grid"), opts, nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	if grid.PairsPerStep() >= brute.PairsPerStep() {
		t.Errorf("grid tested %.1f pairs/step, brute force %.1f", grid.PairsPerStep(), brute.PairsPerStep())
	}
}

func TestRunErrors(t *testing.T) {
	if _, err := Run(context.Background(), newScene(t, "balls"), Options{}, nil); !errors.Is(err, ErrNoSteps) {
		t.Errorf("zero steps: got %v, expected ErrNoSteps", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := Run(ctx, newScene(t, "balls"), Options{Steps: 5000}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("cancelled run: got %v, expected context.Canceled", err)
	}
	if res.Steps >= 5000 {
		t.Errorf("cancelled run still ran %d steps", res.Steps)
	}
}

func TestRecordStoresRun(t *testing.T) {
	res, err := Run(context.Background(), newScene(t, "balls_quadtree"), Options{Steps: 60, SpawnEvery: 30, Seed: 1}, nil)
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}

	store, err := storage.Open(filepath.Join(t.TempDir(), "bench.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	id, err := store.SaveRun(res.Record())
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	got, err := store.RunByID(id)
	if err != nil {
		t.Fatalf("RunByID() failed: %v", err)
	}
	if got.Hash != res.Hash || got.Pairs != res.Pairs || got.SceneID != "balls_quadtree" {
		t.Errorf("stored run = %+v, expected values from %+v", got, res)
	}
}
