package registry

import (
	"errors"
	"testing"

	"github.com/vovakirdan/tui-cafe/internal/config"
	"github.com/vovakirdan/tui-cafe/internal/core"
)

type stubScene struct{ id string }

func (s *stubScene) ID() string                           { return s.id }
func (s *stubScene) Title() string                        { return "Stub " + s.id }
func (s *stubScene) Reset(core.RuntimeConfig)             {}
func (s *stubScene) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (s *stubScene) Render(*core.Screen)                  {}
func (s *stubScene) State() core.SceneState               { return core.SceneState{} }
func (s *stubScene) Snapshot() core.Snapshot              { return core.Snapshot{SceneID: s.id} }

func TestRegisterListCreate(t *testing.T) {
	Register("zz_stub", func(config.Sim) Scene { return &stubScene{id: "zz_stub"} })

	if !Exists("zz_stub") {
		t.Fatal("registered scene should exist")
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz_stub" {
			found = true
			if info.Title != "Stub zz_stub" {
				t.Errorf("Title = %q", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() should include registered scene")
	}

	s, err := Create("zz_stub", config.Default())
	if err != nil || s.ID() != "zz_stub" {
		t.Errorf("Create() = %v, %v", s, err)
	}

	if _, err := Create("missing", config.Default()); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Create(missing) error = %v", err)
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	Register("zz_dup", func(config.Sim) Scene { return &stubScene{id: "zz_dup"} })
	defer func() {
		if recover() == nil {
			t.Error("duplicate Register should panic")
		}
	}()
	Register("zz_dup", func(config.Sim) Scene { return &stubScene{id: "zz_dup"} })
}
