package session

import (
	"fmt"
	"io"
	"os"

	"github.com/chazu/gizmesh/pkg/falg"
	"github.com/chazu/gizmesh/pkg/gizmo"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Frame is one recorded input frame.
type Frame struct {
	CameraPosition [3]float32 `yaml:"camera_position"`
	// CameraRotation is x, y, z, w. A zero value means identity.
	CameraRotation [4]float32 `yaml:"camera_rotation"`
	RayOrigin      [3]float32 `yaml:"ray_origin"`
	RayDirection   [3]float32 `yaml:"ray_direction"`
	Button         bool       `yaml:"button"`

	// Mode and Local override every widget from this frame on, the way an
	// application switches handles from a key binding.
	Mode  string `yaml:"mode,omitempty"`
	Local *bool  `yaml:"local,omitempty"`

	// Repeat plays the frame this many extra times.
	Repeat int `yaml:"repeat,omitempty"`
}

// State converts the frame into gizmo input.
func (f Frame) State() gizmo.FrameState {
	rot := mgl32.Quat{W: f.CameraRotation[3], V: mgl32.Vec3{f.CameraRotation[0], f.CameraRotation[1], f.CameraRotation[2]}}
	if rot == (mgl32.Quat{}) {
		rot = mgl32.QuatIdent()
	}
	return gizmo.FrameState{
		CameraPosition: f.CameraPosition,
		CameraRotation: rot,
		Ray:            falg.Ray{Origin: f.RayOrigin, Direction: f.RayDirection},
		ButtonDown:     f.Button,
	}
}

// Trace is a recorded sequence of frames.
type Trace struct {
	Frames []Frame `yaml:"frames"`
}

// Validate checks every frame.
func (t *Trace) Validate() error {
	for i, f := range t.Frames {
		if mgl32.Vec3(f.RayDirection).Len() < falg.DefaultEpsilon {
			return fmt.Errorf("frame %d: ray direction is zero", i)
		}
		if f.Mode != "" {
			if _, err := gizmo.ParseMode(f.Mode); err != nil {
				return fmt.Errorf("frame %d: %w", i, err)
			}
		}
		if f.Repeat < 0 {
			return fmt.Errorf("frame %d: negative repeat %d", i, f.Repeat)
		}
	}
	return nil
}

// LoadTrace decodes a YAML trace. Unknown keys are rejected.
func LoadTrace(r io.Reader) (*Trace, error) {
	var t Trace
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTraceFile reads a YAML trace from disk.
func LoadTraceFile(path string) (*Trace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open trace: %w", err)
	}
	defer f.Close()
	return LoadTrace(f)
}

// Encode writes the trace as YAML.
func (t *Trace) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("encode trace: %w", err)
	}
	return enc.Close()
}
