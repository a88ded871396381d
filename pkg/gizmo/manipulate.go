package gizmo

import (
	"fmt"
	"strings"

	"github.com/chazu/gizmesh/pkg/falg"
)

// Mode selects which handle Manipulate draws.
type Mode int

const (
	ModeTranslate Mode = iota
	ModeRotate
	ModeScale
)

func (m Mode) String() string {
	switch m {
	case ModeTranslate:
		return "translate"
	case ModeRotate:
		return "rotate"
	case ModeScale:
		return "scale"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode parses "translate", "rotate" or "scale".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "translate", "move":
		return ModeTranslate, nil
	case "rotate":
		return ModeRotate, nil
	case "scale":
		return ModeScale, nil
	}
	return 0, fmt.Errorf("gizmo: unknown mode %q", s)
}

// Options are the per-call flags of Manipulate. Local applies to translate
// and rotate, Uniform to scale, Axes to translate and rotate.
type Options struct {
	Local   bool
	Uniform bool
	Axes    Axes
}

// Manipulate draws the handle for mode on trs and edits the matching
// component. It returns true while dragging.
func Manipulate(s *System, id ID, mode Mode, opts Options, trs *falg.TRS) bool {
	switch mode {
	case ModeTranslate:
		return Translation(s, id, opts.Local, opts.Axes, &trs.Translation, trs.Rotation)
	case ModeRotate:
		return Rotation(s, id, opts.Local, opts.Axes, trs.Translation, &trs.Rotation)
	case ModeScale:
		return Scale(s, id, opts.Uniform, trs.Translation, trs.Rotation, &trs.Scale)
	}
	return false
}
