package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-cafe/internal/storage"
)

var flagBodies bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Print the snapshots of a bench dump",
	Long: `Read a msgpack dump written by 'cafe bench --dump' and print one line
per snapshot with its tick, body count and hash.

Examples:
  cafe inspect ./run.msgpack
  cafe inspect ./run.msgpack --bodies`,
	Args: cobra.ExactArgs(1),
	Run:  runInspect,
}

func init() {
	inspectCmd.Flags().BoolVar(&flagBodies, "bodies", false, "Also print every body")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) {
	snaps, err := storage.ReadSnapshotFile(args[0])
	if err != nil {
		exitf("%v", err)
	}

	for _, s := range snaps {
		fmt.Printf("%s  tick %-7d  score %-5d  bodies %-5d  hash %016x\n",
			s.SceneID, s.Tick, s.Score, len(s.Bodies), s.Hash())
		if !flagBodies {
			continue
		}
		for _, b := range s.Bodies {
			fmt.Printf("    #%-4d kind %d  pos (%8.2f, %8.2f)  vel (%8.2f, %8.2f)  extent %.1f  mass %.1f\n",
				b.ID, b.Kind, b.X, b.Y, b.VX, b.VY, b.Extent, b.Mass)
		}
	}
}
