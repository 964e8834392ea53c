package storage

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-cafe/internal/core"
)

func TestSnapshotFileRoundTrip(t *testing.T) {
	snaps := []core.Snapshot{
		{SceneID: "balls", Tick: 1, Bodies: []core.BodyState{{ID: 1, X: 1.5, Y: 2.25, Extent: 5, Mass: 1}}},
		{SceneID: "balls", Tick: 2, Score: 3, Bodies: []core.BodyState{{ID: 1, X: 1.75, Y: 2.5, VX: 15, Extent: 5, Mass: 1}}},
	}

	path := filepath.Join(t.TempDir(), "dump.msgpack")
	if err := WriteSnapshotFile(path, snaps); err != nil {
		t.Fatalf("WriteSnapshotFile() failed: %v", err)
	}

	got, err := ReadSnapshotFile(path)
	if err != nil {
		t.Fatalf("ReadSnapshotFile() failed: %v", err)
	}
	if len(got) != len(snaps) {
		t.Fatalf("read %d snapshots, expected %d", len(got), len(snaps))
	}
	for i := range snaps {
		if got[i].Hash() != snaps[i].Hash() {
			t.Errorf("snapshot %d changed in transit: %+v", i, got[i])
		}
	}
}

func TestDecodeSnapshotsTruncated(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeSnapshots(&buf, core.Snapshot{SceneID: "cafe", Tick: 9}); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()[:buf.Len()-2]

	if _, err := DecodeSnapshots(bytes.NewReader(data)); err == nil {
		t.Error("truncated stream should fail to decode")
	}
}
