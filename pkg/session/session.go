// Package session drives a gizmo system over a scene, one frame at a time.
// It plays the part of the host application: it feeds input to the
// system, calls a handle for every widget and collects the frame output.
package session

import (
	"context"
	"fmt"
	"log"

	"github.com/chazu/gizmesh/pkg/drawlist"
	"github.com/chazu/gizmesh/pkg/gizmo"
	"github.com/chazu/gizmesh/pkg/scene"
)

// FrameStats summarizes one played frame.
type FrameStats struct {
	Index    int
	Vertices int
	Indices  int
	// Active names the widget being dragged, if any.
	Active string
	// Hovered lists hovered widgets in scene order.
	Hovered []string
}

// Result is the outcome of Run. View is the last frame's geometry and stays
// valid until the system starts another frame.
type Result struct {
	Frames []FrameStats
	View   drawlist.View
}

// Session plays frames against one scene. It edits the scene's objects.
type Session struct {
	sys    *gizmo.System
	scene  *scene.Scene
	logger *log.Logger
	names  map[gizmo.ID]string

	mode  *gizmo.Mode
	local *bool
	count int
}

// New creates a session. A nil logger disables logging.
func New(sys *gizmo.System, sc *scene.Scene, logger *log.Logger) *Session {
	names := make(map[gizmo.ID]string, len(sc.Widgets))
	for _, w := range sc.Widgets {
		names[w.ID()] = w.Name
	}
	return &Session{sys: sys, scene: sc, logger: logger, names: names}
}

// Scene returns the scene being edited.
func (s *Session) Scene() *scene.Scene {
	return s.scene
}

// Step plays one frame and returns its stats.
func (s *Session) Step(f Frame) FrameStats {
	if f.Mode != "" {
		if m, err := gizmo.ParseMode(f.Mode); err == nil {
			s.mode = &m
		}
	}
	if f.Local != nil {
		local := *f.Local
		s.local = &local
	}

	s.sys.BeginFrame(f.State())
	stats := FrameStats{Index: s.count}
	s.count++

	for _, w := range s.scene.Widgets {
		obj := s.scene.Lookup(w.Target)
		if obj == nil {
			continue
		}
		mode, opts := w.Mode, w.Options()
		if s.mode != nil {
			mode = *s.mode
		}
		if s.local != nil {
			opts.Local = *s.local
		}
		gizmo.Manipulate(s.sys, w.ID(), mode, opts, &obj.TRS)
		if s.sys.Record(w.ID()).Hovered {
			stats.Hovered = append(stats.Hovered, w.Name)
		}
	}
	if id, ok := s.sys.ActiveID(); ok {
		stats.Active = s.names[id]
	}

	v := s.sys.EndFrame()
	stats.Vertices, stats.Indices = v.VertexCount, v.IndexCount
	return stats
}

// Run validates the scene and plays every frame of tr. It stops early,
// returning the frames played so far, when ctx is done.
func (s *Session) Run(ctx context.Context, tr *Trace) (Result, error) {
	var res Result
	errs := scene.Validate(s.scene)
	if scene.HasErrors(errs) {
		return res, fmt.Errorf("invalid scene: %w", firstError(errs))
	}
	for _, e := range errs {
		s.logf("session: %v", e)
	}
	if err := tr.Validate(); err != nil {
		return res, fmt.Errorf("invalid trace: %w", err)
	}

	active := ""
	var meshErr error
	for _, f := range tr.Frames {
		for n := 0; n <= f.Repeat; n++ {
			select {
			case <-ctx.Done():
				return res, ctx.Err()
			default:
			}
			stats := s.Step(f)
			if err := s.sys.Err(); err != nil && meshErr == nil {
				meshErr = fmt.Errorf("frame %d: %w", stats.Index, err)
			}
			if stats.Active != active {
				if stats.Active != "" {
					s.logf("session: frame %d: dragging %s", stats.Index, stats.Active)
				} else {
					s.logf("session: frame %d: released %s", stats.Index, active)
				}
				active = stats.Active
			}
			res.Frames = append(res.Frames, stats)
		}
	}
	res.View = s.sys.EndFrame()
	if meshErr != nil {
		return res, fmt.Errorf("mesh handles: %w", meshErr)
	}
	return res, nil
}

func firstError(errs []scene.ValidationError) error {
	for _, e := range errs {
		if e.Severity == scene.SeverityError {
			return e
		}
	}
	return nil
}

func (s *Session) logf(format string, args ...any) {
	if s.logger != nil {
		s.logger.Printf(format, args...)
	}
}
