// Package gizmo implements immediate-mode translate, rotate and scale
// handles. The caller describes the camera and mouse once per frame with
// BeginFrame, then calls a handle function for every transform it wants to
// edit. Each call hit-tests the handle, updates the target while it is
// dragged and appends the handle geometry to the frame's draw buffer.
//
// Interaction state lives in a Record keyed by the handle ID, so handles
// need no explicit creation or teardown.
package gizmo

import (
	"log"

	"github.com/chazu/gizmesh/pkg/drawlist"
	"github.com/chazu/gizmesh/pkg/falg"
	"github.com/chazu/gizmesh/pkg/kernel"
	"github.com/chazu/gizmesh/pkg/kernel/procedural"
	"github.com/go-gl/mathgl/mgl32"
)

// FrameState is the per-frame input of the system.
type FrameState struct {
	CameraPosition mgl32.Vec3
	CameraRotation mgl32.Quat
	// Ray is the world-space mouse ray.
	Ray        falg.Ray
	ButtonDown bool
}

// Record is the persistent interaction state of one handle.
type Record struct {
	Hovered bool
	Active  bool
	// Part is the hovered part, or the dragged part while Active.
	Part Part

	// Drag snapshot, taken on the press that activated the handle.
	DragStartRay   falg.Ray
	DragStart      falg.TRS
	DragStartFrame falg.Transform
}

// System owns the frame input, the interaction records and the draw buffer.
// It is not safe for concurrent use.
type System struct {
	style  Style
	meshes kernel.Kernel
	logger *log.Logger

	prev, cur FrameState
	records   map[ID]*Record
	active    ID
	hasActive bool

	buf drawlist.Buffer
	err error
}

// Option configures a System.
type Option func(*System)

// WithStyle sets the handle dimensions and colors.
func WithStyle(st Style) Option {
	return func(s *System) { s.style = st }
}

// WithKernel sets the geometry kernel. Meshes are cached.
func WithKernel(k kernel.Kernel) Option {
	return func(s *System) {
		if c, ok := k.(*kernel.Cache); ok {
			s.meshes = c
			return
		}
		s.meshes = kernel.NewCache(k)
	}
}

// WithLogger logs drag start and end. The per-frame path never logs.
func WithLogger(l *log.Logger) Option {
	return func(s *System) { s.logger = l }
}

// WithNarrowIndices makes views use 16-bit indices when they fit.
func WithNarrowIndices() Option {
	return func(s *System) { s.buf.PreferNarrowIndices = true }
}

// New creates a System. Without options it uses DefaultStyle and a cached
// procedural kernel.
func New(opts ...Option) *System {
	s := &System{
		style:   DefaultStyle(),
		records: make(map[ID]*Record),
	}
	s.cur.CameraRotation = mgl32.QuatIdent()
	for _, opt := range opts {
		opt(s)
	}
	if s.meshes == nil {
		s.meshes = kernel.NewCache(procedural.New())
	}
	return s
}

// Style returns the style in use.
func (s *System) Style() Style {
	return s.style
}

// BeginFrame starts a frame. It empties the draw buffer, clears hover flags
// and, when the button is up, ends any drag in progress.
func (s *System) BeginFrame(f FrameState) {
	s.prev = s.cur
	s.cur = f
	s.buf.Reset()
	s.err = nil

	for id, r := range s.records {
		r.Hovered = false
		if !r.Active {
			r.Part = PartNone
			continue
		}
		if !f.ButtonDown {
			s.logf("gizmo: drag end id=%08x part=%s", uint32(id), r.Part)
			r.Active = false
			r.Part = PartNone
		}
	}
	if !f.ButtonDown {
		s.hasActive = false
		s.active = 0
	}
}

// NewFrame is BeginFrame with plain arrays. The camera rotation is x, y, z, w.
func (s *System) NewFrame(cameraPosition [3]float32, cameraRotation [4]float32, rayOrigin, rayDirection [3]float32, button bool) {
	s.BeginFrame(FrameState{
		CameraPosition: cameraPosition,
		CameraRotation: mgl32.Quat{
			W: cameraRotation[3],
			V: mgl32.Vec3{cameraRotation[0], cameraRotation[1], cameraRotation[2]},
		},
		Ray:        falg.Ray{Origin: rayOrigin, Direction: rayDirection},
		ButtonDown: button,
	})
}

// Record returns the record for id, creating it on first use.
func (s *System) Record(id ID) *Record {
	r, ok := s.records[id]
	if !ok {
		r = &Record{}
		s.records[id] = r
	}
	return r
}

// ActiveID returns the handle being dragged, if any.
func (s *System) ActiveID() (ID, bool) {
	return s.active, s.hasActive
}

// Frame returns the input of the current frame.
func (s *System) Frame() FrameState {
	return s.cur
}

// Err returns the first mesh error of the current frame. Handles whose
// meshes fail are skipped, not aborted.
func (s *System) Err() error {
	return s.err
}

// EndFrame returns the geometry emitted since BeginFrame. The view is valid
// until the next BeginFrame.
func (s *System) EndFrame() drawlist.View {
	return s.buf.View()
}

// Render is EndFrame.
func (s *System) Render() drawlist.View {
	return s.EndFrame()
}

func (s *System) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}

// pressed reports a press edge: up last frame, down now.
func (s *System) pressed() bool {
	return s.cur.ButtonDown && !s.prev.ButtonDown
}

// handleSize returns the world size of a handle centered at c.
func (s *System) handleSize(c mgl32.Vec3) float32 {
	if s.style.ScreenScale <= 0 {
		return 1
	}
	size := c.Sub(s.cur.CameraPosition).Len() * s.style.ScreenScale
	if size < falg.DefaultEpsilon {
		return 1
	}
	return size
}

// handleFrame places a handle at t, aligned with r when local.
func handleFrame(t mgl32.Vec3, r mgl32.Quat, local bool) falg.Transform {
	if local {
		return falg.Transform{Translation: t, Rotation: r.Normalize()}
	}
	return falg.Transform{Translation: t, Rotation: mgl32.QuatIdent()}
}

// localRay maps the frame ray into the unit frame of a handle. Ray
// parameters are preserved, so distances compare across handles.
func (s *System) localRay(frame falg.Transform, size float32) falg.Ray {
	return frame.Inverse().ApplyRay(s.cur.Ray).Scaled(mgl32.Vec3{size, size, size})
}

// interact runs hover and press for one handle and reports whether it is
// being dragged this frame. pick hit-tests in the handle's unit frame.
func (s *System) interact(id ID, r *Record, frame falg.Transform, size float32, start falg.TRS, pick func(falg.Ray) (Part, bool)) bool {
	if r.Active {
		return s.cur.ButtonDown
	}
	if s.hasActive {
		return false
	}
	part, ok := pick(s.localRay(frame, size))
	if !ok {
		return false
	}
	r.Hovered = true
	r.Part = part
	if !s.pressed() {
		return false
	}

	r.Active = true
	r.DragStartRay = s.cur.Ray
	r.DragStart = start
	r.DragStartFrame = frame
	s.active = id
	s.hasActive = true
	s.logf("gizmo: drag start id=%08x part=%s", uint32(id), part)
	return true
}

// color picks the color of part p of a handle.
func (s *System) color(r *Record, p Part, base mgl32.Vec4) mgl32.Vec4 {
	if r.Part != p {
		return base
	}
	if r.Active {
		return s.style.ActiveColor
	}
	if r.Hovered {
		return s.style.HoverColor
	}
	return base
}

// emit appends shape, oriented by orient, scaled by size and placed by frame.
func (s *System) emit(shape kernel.Shape, orient mgl32.Quat, frame falg.Transform, size float32, color mgl32.Vec4) {
	m, err := s.meshes.Mesh(shape)
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return
	}
	xf := falg.Mul(falg.Transform{Rotation: orient}, frame)
	s.buf.AppendMesh(m, xf, size, color)
}

// mesh returns a pick mesh, recording failures like emit.
func (s *System) mesh(shape kernel.Shape) *kernel.Mesh {
	m, err := s.meshes.Mesh(shape)
	if err != nil {
		if s.err == nil {
			s.err = err
		}
		return nil
	}
	return m
}
