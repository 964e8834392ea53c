// cafe runs 2D physics scenes and the Random Cafe restaurant sim in the
// terminal.
//
// Usage:
//
//	cafe list              - List available scenes
//	cafe play <scene>      - Run a scene
//	cafe menu              - Pick scenes interactively
//	cafe bench <scene>     - Run a scene headless and record the run
//	cafe scores [scene]    - Show high scores and bench runs
//	cafe inspect <file>    - Print a bench snapshot dump
//	cafe serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Custom simulation config YAML
//	--difficulty <name> - Café pacing preset: easy, normal, hard, fixed
//	--fps <rate>        - Render rate (default: 60)
//	--seed <value>      - RNG seed for reproducible runs
//	--db <path>         - Database path (default: ~/.cafe/cafe.db)
//	--log-level <lvl>   - debug, info, warn, error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-cafe/internal/config"
	"github.com/vovakirdan/tui-cafe/internal/core"

	// Import scenes to register them
	_ "github.com/vovakirdan/tui-cafe/internal/scenes/balls"
	_ "github.com/vovakirdan/tui-cafe/internal/scenes/cafe"
	_ "github.com/vovakirdan/tui-cafe/internal/scenes/pool"
)

var (
	// Global flags
	flagConfig     string
	flagDifficulty string
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagLogLevel   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cafe",
	Short: "TUI Cafe - 2D physics scenes and a café sim in your terminal",
	Long: `TUI Cafe runs small 2D physics scenes in the terminal: bouncing balls
with three broad phases, a pool table, and the Random Cafe restaurant sim.

Available commands:
  list     - Show all available scenes
  play     - Run a specific scene directly
  menu     - Interactive scene picker
  bench    - Run a scene headless and record broad-phase counters
  scores   - View high scores and bench runs
  serve    - Start SSH server for remote play

Examples:
  cafe list
  cafe play balls_quadtree
  cafe play cafe --difficulty hard
  cafe bench balls_grid --steps 5000 --spawn-every 100
  cafe serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom simulation config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Café pacing preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Render rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.cafe/cafe.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(benchCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger builds the root logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "cafe",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// interactiveLogger logs to ~/.cafe/cafe.log so output does not tear the
// alternate screen. Returns a close func for the file.
func interactiveLogger() (*log.Logger, func()) {
	home, err := os.UserHomeDir()
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	dir := filepath.Join(home, ".cafe")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return newLogger(io.Discard), func() {}
	}
	f, err := os.OpenFile(filepath.Join(dir, "cafe.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return newLogger(io.Discard), func() {}
	}
	return newLogger(f), func() { f.Close() }
}

// loadSim loads the simulation config and applies the pacing preset.
func loadSim() (config.Sim, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	switch preset := config.PacingPreset(flagDifficulty); preset {
	case "":
	case config.PacingEasy, config.PacingNormal, config.PacingHard, config.PacingFixed:
		config.ApplyPreset(&cfg, preset)
	default:
		return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
	}
	return cfg, nil
}

// runtimeConfig sizes the screen from the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	return cfg
}

// exitf prints an error in the CLI's format and exits.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
