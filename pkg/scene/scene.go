// Package scene holds the objects a session edits and the widgets that
// edit them. A scene is plain data: scripts build it, sessions drive
// gizmos over it.
package scene

import (
	"fmt"

	"github.com/chazu/gizmesh/pkg/falg"
	"github.com/chazu/gizmesh/pkg/gizmo"
)

// Object is a named transform.
type Object struct {
	Name string
	TRS  falg.TRS
}

// Widget attaches a handle to an object.
type Widget struct {
	Name    string
	Target  string
	Mode    gizmo.Mode
	Local   bool
	Uniform bool
	Axes    gizmo.Axes
}

// ID returns the handle ID derived from the widget name.
func (w Widget) ID() gizmo.ID {
	return gizmo.Hash(w.Name)
}

// Options returns the per-call flags for gizmo.Manipulate.
func (w Widget) Options() gizmo.Options {
	return gizmo.Options{Local: w.Local, Uniform: w.Uniform, Axes: w.Axes}
}

// Scene is a set of objects in insertion order plus their widgets.
type Scene struct {
	Objects map[string]*Object
	Order   []string
	Widgets []Widget
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{Objects: make(map[string]*Object)}
}

// Add inserts an object. A second object with the same name replaces the
// first; Validate reports the duplicate.
func (s *Scene) Add(o *Object) {
	s.Order = append(s.Order, o.Name)
	s.Objects[o.Name] = o
}

// AddWidget appends a widget.
func (s *Scene) AddWidget(w Widget) {
	s.Widgets = append(s.Widgets, w)
}

// Lookup returns the object with the given name, or nil.
func (s *Scene) Lookup(name string) *Object {
	return s.Objects[name]
}

// MustLookup returns the object with the given name, or panics.
func (s *Scene) MustLookup(name string) *Object {
	o := s.Lookup(name)
	if o == nil {
		panic(fmt.Sprintf("scene: no object named %q", name))
	}
	return o
}

// Widget returns the widget with the given name.
func (s *Scene) Widget(name string) (Widget, bool) {
	for _, w := range s.Widgets {
		if w.Name == name {
			return w, true
		}
	}
	return Widget{}, false
}

// ObjectList returns the objects in insertion order, skipping duplicates.
func (s *Scene) ObjectList() []*Object {
	seen := make(map[string]bool, len(s.Order))
	out := make([]*Object, 0, len(s.Objects))
	for _, name := range s.Order {
		if seen[name] {
			continue
		}
		seen[name] = true
		if o := s.Objects[name]; o != nil {
			out = append(out, o)
		}
	}
	return out
}
