// Package config loads gizmo styling and kernel selection from YAML.
package config

import (
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/chazu/gizmesh/pkg/gizmo"
	"github.com/chazu/gizmesh/pkg/kernel"
	"github.com/chazu/gizmesh/pkg/kernel/procedural"
	"github.com/chazu/gizmesh/pkg/kernel/sdfx"
)

// Kernel names.
const (
	KernelProcedural = "procedural"
	KernelSDFX       = "sdfx"
)

// Config is the file format. Fields missing from a file keep their defaults.
type Config struct {
	Style         gizmo.Style `yaml:"style"`
	Kernel        string      `yaml:"kernel"`
	MeshCells     int         `yaml:"mesh_cells"`
	NarrowIndices bool        `yaml:"narrow_indices"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Style:     gizmo.DefaultStyle(),
		Kernel:    KernelProcedural,
		MeshCells: sdfx.DefaultMeshCells,
	}
}

// Load reads a configuration from r on top of Default. Unknown keys are
// rejected. An empty document yields the defaults.
func Load(r io.Reader) (Config, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil && err != io.EOF {
		return Config{}, errors.Wrap(err, "Failed to decode config")
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// LoadFile reads a configuration file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "Failed to open config %q", path)
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return Config{}, errors.Wrapf(err, "Config %q", path)
	}
	return c, nil
}

// Validate checks that sizes are usable.
func (c Config) Validate() error {
	st := c.Style
	positive := []struct {
		name  string
		value float32
	}{
		{"axis_length", st.AxisLength},
		{"shaft_radius", st.ShaftRadius},
		{"head_length", st.HeadLength},
		{"head_radius", st.HeadRadius},
		{"plane_size", st.PlaneSize},
		{"center_radius", st.CenterRadius},
		{"ring_radius", st.RingRadius},
		{"ring_tube_radius", st.RingTubeRadius},
		{"arcball_radius", st.ArcballRadius},
		{"scale_tip_size", st.ScaleTipSize},
		{"uniform_size", st.UniformSize},
		{"min_scale_ratio", st.MinScaleRatio},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return errors.Errorf("style.%s must be positive, got %v", p.name, p.value)
		}
	}
	if st.HeadLength >= st.AxisLength {
		return errors.Errorf("style.head_length %v must be shorter than axis_length %v", st.HeadLength, st.AxisLength)
	}
	if st.ScaleTipSize >= st.AxisLength {
		return errors.Errorf("style.scale_tip_size %v must be shorter than axis_length %v", st.ScaleTipSize, st.AxisLength)
	}
	if st.PickRadius < 0 || st.ScreenScale < 0 || st.PlaneOffset < 0 || st.PlaneThickness < 0 {
		return errors.New("style.pick_radius, screen_scale, plane_offset and plane_thickness must not be negative")
	}
	switch c.Kernel {
	case KernelProcedural:
	case KernelSDFX:
		if c.MeshCells <= 0 {
			return errors.Errorf("mesh_cells must be positive for the %s kernel, got %d", KernelSDFX, c.MeshCells)
		}
	default:
		return errors.Errorf("Unknown kernel %q", c.Kernel)
	}
	return nil
}

// NewKernel builds the configured geometry kernel.
func (c Config) NewKernel() (kernel.Kernel, error) {
	switch c.Kernel {
	case KernelProcedural, "":
		return procedural.New(), nil
	case KernelSDFX:
		return sdfx.New(c.MeshCells), nil
	}
	return nil, errors.Errorf("Unknown kernel %q", c.Kernel)
}

// Options returns the gizmo system options for this configuration.
func (c Config) Options() ([]gizmo.Option, error) {
	k, err := c.NewKernel()
	if err != nil {
		return nil, err
	}
	opts := []gizmo.Option{gizmo.WithStyle(c.Style), gizmo.WithKernel(k)}
	if c.NarrowIndices {
		opts = append(opts, gizmo.WithNarrowIndices())
	}
	return opts, nil
}
