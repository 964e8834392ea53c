package storage

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/tui-cafe/internal/core"
)

// EncodeSnapshots writes snapshots as a msgpack stream, one value each.
func EncodeSnapshots(w io.Writer, snaps ...core.Snapshot) error {
	enc := msgpack.NewEncoder(w)
	for _, s := range snaps {
		if err := enc.Encode(&s); err != nil {
			return fmt.Errorf("storage: encode snapshot %s@%d: %w", s.SceneID, s.Tick, err)
		}
	}
	return nil
}

// DecodeSnapshots reads a msgpack stream written by EncodeSnapshots.
func DecodeSnapshots(r io.Reader) ([]core.Snapshot, error) {
	dec := msgpack.NewDecoder(r)
	var out []core.Snapshot
	for {
		if _, err := dec.PeekCode(); err == io.EOF {
			return out, nil
		}
		var s core.Snapshot
		if err := dec.Decode(&s); err != nil {
			return out, fmt.Errorf("storage: decode snapshot %d: %w", len(out), err)
		}
		out = append(out, s)
	}
}

// WriteSnapshotFile dumps snapshots to path.
func WriteSnapshotFile(path string, snaps []core.Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("storage: create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	if err := EncodeSnapshots(w, snaps...); err != nil {
		f.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("storage: flush %s: %w", path, err)
	}
	return f.Close()
}

// ReadSnapshotFile loads every snapshot from path.
func ReadSnapshotFile(path string) ([]core.Snapshot, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	defer f.Close()
	return DecodeSnapshots(bufio.NewReader(f))
}
