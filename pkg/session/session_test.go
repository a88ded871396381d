package session

import (
	"bytes"
	"context"
	"errors"
	"log"
	"strings"
	"testing"

	"github.com/chazu/gizmesh/pkg/falg"
	"github.com/chazu/gizmesh/pkg/gizmo"
	"github.com/chazu/gizmesh/pkg/scene"
	"github.com/go-gl/mathgl/mgl32"
)

const dragTrace = `
frames:
  - camera_position: [0.5, 0, 10]
    ray_origin: [0.5, 0, 10]
    ray_direction: [0, 0, -1]
  - camera_position: [0.5, 0, 10]
    ray_origin: [0.5, 0, 10]
    ray_direction: [0, 0, -1]
    button: true
  - camera_position: [1.5, 0, 10]
    ray_origin: [1.5, 0, 10]
    ray_direction: [0, 0, -1]
    button: true
  - camera_position: [1.5, 0, 10]
    ray_origin: [1.5, 0, 10]
    ray_direction: [0, 0, -1]
`

func boxScene() *scene.Scene {
	sc := scene.New()
	sc.Add(&scene.Object{Name: "box", TRS: falg.NewTRS()})
	sc.AddWidget(scene.Widget{Name: "move", Target: "box", Mode: gizmo.ModeTranslate})
	return sc
}

func mustTrace(t *testing.T, src string) *Trace {
	t.Helper()
	tr, err := LoadTrace(strings.NewReader(src))
	if err != nil {
		t.Fatalf("LoadTrace: %v", err)
	}
	return tr
}

func TestRunDrag(t *testing.T) {
	var logs bytes.Buffer
	sc := boxScene()
	sess := New(gizmo.New(), sc, log.New(&logs, "", 0))

	res, err := sess.Run(context.Background(), mustTrace(t, dragTrace))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Frames) != 4 {
		t.Fatalf("played %d frames, want 4", len(res.Frames))
	}

	wantActive := []string{"", "move", "move", ""}
	for i, f := range res.Frames {
		if f.Index != i {
			t.Errorf("frame %d has index %d", i, f.Index)
		}
		if f.Active != wantActive[i] {
			t.Errorf("frame %d active = %q, want %q", i, f.Active, wantActive[i])
		}
		if f.Vertices == 0 || f.Indices == 0 {
			t.Errorf("frame %d emitted no geometry", i)
		}
	}
	if len(res.Frames[0].Hovered) != 1 || res.Frames[0].Hovered[0] != "move" {
		t.Errorf("frame 0 hovered = %v, want [move]", res.Frames[0].Hovered)
	}

	if got := sc.MustLookup("box").TRS.Translation; !falg.NearlyVec3(got, mgl32.Vec3{1, 0, 0}, 1e-4) {
		t.Errorf("box moved to %v, want [1 0 0]", got)
	}
	if res.View.VertexCount != res.Frames[3].Vertices {
		t.Errorf("final view has %d vertices, last frame %d", res.View.VertexCount, res.Frames[3].Vertices)
	}
	for _, want := range []string{"dragging move", "released move"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log %q does not contain %q", logs.String(), want)
		}
	}
}

func TestRunModeOverride(t *testing.T) {
	src := `
frames:
  - ray_origin: [0.9, 0, 10]
    ray_direction: [0, 0, -1]
    mode: scale
  - ray_origin: [0.9, 0, 10]
    ray_direction: [0, 0, -1]
    button: true
  - ray_origin: [1.8, 0, 10]
    ray_direction: [0, 0, -1]
    button: true
`
	sc := boxScene()
	if _, err := New(gizmo.New(), sc, nil).Run(context.Background(), mustTrace(t, src)); err != nil {
		t.Fatalf("Run: %v", err)
	}
	box := sc.MustLookup("box")
	if !falg.NearlyVec3(box.TRS.Scale, mgl32.Vec3{2, 1, 1}, 1e-4) {
		t.Errorf("scale = %v, want [2 1 1]", box.TRS.Scale)
	}
	if box.TRS.Translation != (mgl32.Vec3{}) {
		t.Errorf("translation changed to %v", box.TRS.Translation)
	}
}

func TestRunRepeat(t *testing.T) {
	src := `
frames:
  - ray_origin: [5, 5, 10]
    ray_direction: [0, 0, -1]
    repeat: 2
`
	res, err := New(gizmo.New(), boxScene(), nil).Run(context.Background(), mustTrace(t, src))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(res.Frames) != 3 {
		t.Errorf("played %d frames, want 3", len(res.Frames))
	}
	for _, f := range res.Frames {
		if f.Active != "" || len(f.Hovered) != 0 {
			t.Errorf("frame %d: active %q hovered %v", f.Index, f.Active, f.Hovered)
		}
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res, err := New(gizmo.New(), boxScene(), nil).Run(ctx, mustTrace(t, dragTrace))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run error = %v, want context.Canceled", err)
	}
	if len(res.Frames) != 0 {
		t.Errorf("played %d frames after cancel", len(res.Frames))
	}
}

func TestRunInvalidScene(t *testing.T) {
	sc := boxScene()
	sc.AddWidget(scene.Widget{Name: "lost", Target: "ghost"})
	_, err := New(gizmo.New(), sc, nil).Run(context.Background(), mustTrace(t, dragTrace))
	if err == nil || !strings.Contains(err.Error(), "ghost") {
		t.Fatalf("Run error = %v, want missing target", err)
	}
}

func TestLoadTraceErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"unknown key", "frames:\n  - ray_direction: [0, 0, -1]\n    wheel: 3\n", "wheel"},
		{"zero direction", "frames:\n  - ray_origin: [0, 0, 1]\n", "ray direction"},
		{"bad mode", "frames:\n  - ray_direction: [0, 0, -1]\n    mode: shear\n", "shear"},
		{"negative repeat", "frames:\n  - ray_direction: [0, 0, -1]\n    repeat: -1\n", "repeat"},
		{"short vector", "frames:\n  - ray_direction: [0, -1]\n", "decode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTrace(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("LoadTrace succeeded")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestTraceEncode(t *testing.T) {
	local := true
	in := &Trace{Frames: []Frame{{
		CameraRotation: [4]float32{0, 0, 0, 1},
		RayDirection:   [3]float32{0, -1, 0},
		Button:         true,
		Mode:           "rotate",
		Local:          &local,
	}}}
	var buf bytes.Buffer
	if err := in.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := mustTrace(t, buf.String())
	if len(out.Frames) != 1 || out.Frames[0].Mode != "rotate" || out.Frames[0].Local == nil || !*out.Frames[0].Local {
		t.Errorf("decoded %+v", out.Frames)
	}
}

func TestFrameStateIdentityRotation(t *testing.T) {
	st := Frame{RayDirection: [3]float32{0, 0, -1}}.State()
	if st.CameraRotation != mgl32.QuatIdent() {
		t.Errorf("camera rotation = %v, want identity", st.CameraRotation)
	}
}
