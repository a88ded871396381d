package gizmo

import (
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Part is one pickable sub-shape of a handle. The numeric order is the
// canonical order used to break picking ties.
type Part int

const (
	PartNone Part = iota
	PartX
	PartY
	PartZ
	PartYZ
	PartZX
	PartXY
	PartScreen
	PartArcball
	PartUniform
)

var partNames = [...]string{"none", "x", "y", "z", "yz", "zx", "xy", "screen", "arcball", "uniform"}

func (p Part) String() string {
	if p < 0 || int(p) >= len(partNames) {
		return fmt.Sprintf("Part(%d)", int(p))
	}
	return partNames[p]
}

// axis returns the axis index of an axis part, or the normal axis of a
// plane part.
func (p Part) axis() int {
	switch p {
	case PartX, PartYZ:
		return 0
	case PartY, PartZX:
		return 1
	case PartZ, PartXY:
		return 2
	}
	return -1
}

func axisPart(i int) Part  { return PartX + Part(i) }
func planePart(i int) Part { return PartYZ + Part(i) }

// unitAxis returns the i-th basis vector.
func unitAxis(i int) mgl32.Vec3 {
	var v mgl32.Vec3
	v[i] = 1
	return v
}

// axisRotations turn shapes built along +X onto each axis.
var axisRotations = [3]mgl32.Quat{
	mgl32.QuatIdent(),
	mgl32.QuatRotate(mgl32.DegToRad(90), mgl32.Vec3{0, 0, 1}),
	mgl32.QuatRotate(mgl32.DegToRad(-90), mgl32.Vec3{0, 1, 0}),
}

// Axes is a bit mask of enabled axes. The zero value enables all three.
type Axes uint8

const (
	AxisX Axes = 1 << iota
	AxisY
	AxisZ

	AllAxes = AxisX | AxisY | AxisZ
)

// Has reports whether axis i is enabled.
func (a Axes) Has(i int) bool {
	if a == 0 {
		return true
	}
	return a&(1<<i) != 0
}

// All reports whether every axis is enabled.
func (a Axes) All() bool {
	return a == 0 || a&AllAxes == AllAxes
}

func (a Axes) String() string {
	var b strings.Builder
	for i, c := range "xyz" {
		if a.Has(i) {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// ParseAxes parses a string of axis letters such as "xz".
func ParseAxes(s string) (Axes, error) {
	var a Axes
	for _, c := range strings.ToLower(s) {
		switch c {
		case 'x':
			a |= AxisX
		case 'y':
			a |= AxisY
		case 'z':
			a |= AxisZ
		default:
			return 0, fmt.Errorf("gizmo: unknown axis %q in %q", c, s)
		}
	}
	return a, nil
}
