package gizmo

import (
	"github.com/chazu/gizmesh/pkg/kernel"
	"github.com/go-gl/mathgl/mgl32"
)

// Style holds handle dimensions and colors. Lengths are in handle units:
// a handle is drawn at its size times these values.
type Style struct {
	AxisLength  float32 `yaml:"axis_length"`
	ShaftRadius float32 `yaml:"shaft_radius"`
	HeadLength  float32 `yaml:"head_length"`
	HeadRadius  float32 `yaml:"head_radius"`

	PlaneOffset    float32 `yaml:"plane_offset"`
	PlaneSize      float32 `yaml:"plane_size"`
	PlaneThickness float32 `yaml:"plane_thickness"`
	CenterRadius   float32 `yaml:"center_radius"`

	RingRadius     float32 `yaml:"ring_radius"`
	RingTubeRadius float32 `yaml:"ring_tube_radius"`
	ArcballRadius  float32 `yaml:"arcball_radius"`

	ScaleTipSize float32 `yaml:"scale_tip_size"`
	UniformSize  float32 `yaml:"uniform_size"`

	Segments     int `yaml:"segments"`
	RingSegments int `yaml:"ring_segments"`
	TubeSegments int `yaml:"tube_segments"`

	// PickRadius widens thin shafts and ring tubes for hit-testing only.
	PickRadius float32 `yaml:"pick_radius"`

	// ScreenScale keeps handles a constant size on screen: the handle size
	// is the camera distance times ScreenScale. Zero draws handles at size 1.
	ScreenScale float32 `yaml:"screen_scale"`

	// MinScaleRatio bounds how far a single drag can shrink a scale.
	MinScaleRatio float32 `yaml:"min_scale_ratio"`

	AxisColors   [3]mgl32.Vec4 `yaml:"axis_colors"`
	CenterColor  mgl32.Vec4    `yaml:"center_color"`
	ArcballColor mgl32.Vec4    `yaml:"arcball_color"`
	HoverColor   mgl32.Vec4    `yaml:"hover_color"`
	ActiveColor  mgl32.Vec4    `yaml:"active_color"`
}

// DefaultStyle returns the stock handle look.
func DefaultStyle() Style {
	return Style{
		AxisLength:  1,
		ShaftRadius: 0.025,
		HeadLength:  0.2,
		HeadRadius:  0.07,

		PlaneOffset:    0.2,
		PlaneSize:      0.25,
		PlaneThickness: 0.01,
		CenterRadius:   0.1,

		RingRadius:     1,
		RingTubeRadius: 0.025,
		ArcballRadius:  0.8,

		ScaleTipSize: 0.12,
		UniformSize:  0.15,

		Segments:     12,
		RingSegments: 48,
		TubeSegments: 8,

		PickRadius:    0.05,
		MinScaleRatio: 0.01,

		AxisColors: [3]mgl32.Vec4{
			{0.9, 0.2, 0.2, 1},
			{0.2, 0.8, 0.2, 1},
			{0.2, 0.4, 0.9, 1},
		},
		CenterColor:  mgl32.Vec4{0.8, 0.8, 0.8, 1},
		ArcballColor: mgl32.Vec4{0.6, 0.6, 0.6, 0.15},
		HoverColor:   mgl32.Vec4{1, 1, 0.5, 1},
		ActiveColor:  mgl32.Vec4{1, 0.8, 0, 1},
	}
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func (st Style) arrow() kernel.Arrow {
	return kernel.Arrow{
		Length:      st.AxisLength,
		ShaftRadius: st.ShaftRadius,
		HeadLength:  st.HeadLength,
		HeadRadius:  st.HeadRadius,
		Segments:    st.Segments,
	}
}

func (st Style) ring() kernel.Ring {
	return kernel.Ring{
		Radius:       st.RingRadius,
		TubeRadius:   st.RingTubeRadius,
		Segments:     st.RingSegments,
		TubeSegments: st.TubeSegments,
	}
}

// ringPick is the ring used for hit-testing, with the tube widened to the
// pick radius.
func (st Style) ringPick() kernel.Ring {
	r := st.ring()
	r.TubeRadius = max32(st.RingTubeRadius, st.PickRadius)
	return r
}

func (st Style) centerSphere() kernel.Sphere {
	return kernel.Sphere{Radius: st.CenterRadius, Slices: st.Segments, Stacks: st.Segments / 2}
}

func (st Style) arcball() kernel.Sphere {
	return kernel.Sphere{Radius: st.ArcballRadius, Slices: st.RingSegments / 2, Stacks: st.RingSegments / 4}
}

func (st Style) scaleHandle() kernel.ScaleHandle {
	return kernel.ScaleHandle{
		Length:      st.AxisLength,
		ShaftRadius: st.ShaftRadius,
		TipSize:     st.ScaleTipSize,
		Segments:    st.Segments,
	}
}

func (st Style) uniformBox() kernel.Box {
	h := st.UniformSize / 2
	return kernel.Box{Min: mgl32.Vec3{-h, -h, -h}, Max: mgl32.Vec3{h, h, h}}
}

// planeBox returns the square for a plane part in the handle frame. The
// square sits in the plane whose normal is the part's axis.
func (st Style) planeBox(p Part) kernel.Box {
	n := p.axis()
	a, b := (n+1)%3, (n+2)%3
	var box kernel.Box
	box.Min[n], box.Max[n] = -st.PlaneThickness, st.PlaneThickness
	box.Min[a], box.Max[a] = st.PlaneOffset, st.PlaneOffset+st.PlaneSize
	box.Min[b], box.Max[b] = st.PlaneOffset, st.PlaneOffset+st.PlaneSize
	return box
}
