package script

import (
	"fmt"
	"strings"

	"github.com/chazu/gizmesh/pkg/falg"
	"github.com/chazu/gizmesh/pkg/gizmo"
	"github.com/chazu/gizmesh/pkg/scene"
	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/go-gl/mathgl/mgl32"
)

// ---------------------------------------------------------------------------
// Source preprocessing
// ---------------------------------------------------------------------------

// preprocessSource rewrites scene source before zygomys sees it:
//
//  1. Keyword conversion: :keyword -> "__kw_keyword" (string literal), so
//     keywords need no global symbols.
//  2. Kebab-case to underscore: quat-axis-angle -> quat_axis_angle, since
//     zygomys reads a hyphen as subtraction.
//  3. ; line comments become // comments.
//
// String literals pass through untouched.
func preprocessSource(source string) string {
	result := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"':
			j := skipString(b, i)
			result = append(result, b[i:j]...)
			i = j
		case b[i] == '`':
			j := i + 1
			for j < len(b) && b[j] != '`' {
				j++
			}
			if j < len(b) {
				j++
			}
			result = append(result, b[i:j]...)
			i = j
		case b[i] == ';':
			result = append(result, '/', '/')
			i++
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				result = append(result, b[i])
				i++
			}
		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			result = append(result, b[i], b[i+1])
			i += 2
		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			result = append(result, '"')
			result = append(result, kwPrefix...)
			result = append(result, b[i+1:j]...)
			result = append(result, '"')
			i = j
		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			result = append(result, '_')
			i++
		default:
			result = append(result, b[i])
			i++
		}
	}
	return string(result)
}

// skipString returns the index just past the string literal starting at i.
func skipString(b []byte, i int) int {
	j := i + 1
	for j < len(b) && b[j] != '"' {
		if b[j] == '\\' && j+1 < len(b) {
			j += 2
			continue
		}
		j++
	}
	if j < len(b) {
		j++
	}
	return j
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}

// ---------------------------------------------------------------------------
// Custom Sexp types for passing Go values through the zygomys environment
// ---------------------------------------------------------------------------

type sexpVec3 struct {
	vec mgl32.Vec3
}

func (v *sexpVec3) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(vec3 %g %g %g)", v.vec[0], v.vec[1], v.vec[2])
}
func (v *sexpVec3) Type() *zygo.RegisteredType { return nil }

type sexpQuat struct {
	quat mgl32.Quat
}

func (q *sexpQuat) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(quat %g %g %g %g)", q.quat.V[0], q.quat.V[1], q.quat.V[2], q.quat.W)
}
func (q *sexpQuat) Type() *zygo.RegisteredType { return nil }

// sexpObjectRef is returned by `object` so widgets can name their target
// by value as well as by string.
type sexpObjectRef struct {
	name string
}

func (o *sexpObjectRef) SexpString(ps *zygo.PrintState) string {
	return fmt.Sprintf("(object %q)", o.name)
}
func (o *sexpObjectRef) Type() *zygo.RegisteredType { return nil }

// ---------------------------------------------------------------------------
// Keyword argument parsing
// ---------------------------------------------------------------------------

// kwPrefix is the marker prepended to keyword names by preprocessSource.
const kwPrefix = "__kw_"

// isKW reports whether s is a preprocessed keyword and returns its name.
func isKW(s zygo.Sexp) (string, bool) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", false
	}
	if strings.HasPrefix(str.S, kwPrefix) {
		return str.S[len(kwPrefix):], true
	}
	return "", false
}

// kwArgs holds the result of parsing a mixed positional+keyword argument list.
type kwArgs struct {
	kw         map[string]zygo.Sexp
	positional []zygo.Sexp
}

// parseArgs separates args into keyword and positional arguments.
func parseArgs(args []zygo.Sexp) kwArgs {
	result := kwArgs{kw: make(map[string]zygo.Sexp)}
	for i := 0; i < len(args); i++ {
		name, ok := isKW(args[i])
		if !ok {
			result.positional = append(result.positional, args[i])
			continue
		}
		if i+1 < len(args) {
			result.kw[name] = args[i+1]
			i++
		} else {
			// A trailing keyword is a flag.
			result.kw[name] = zygo.SexpNull
		}
	}
	return result
}

// ---------------------------------------------------------------------------
// Value extraction helpers
// ---------------------------------------------------------------------------

func toFloat32(s zygo.Sexp) (float32, error) {
	switch v := s.(type) {
	case *zygo.SexpInt:
		return float32(v.Val), nil
	case *zygo.SexpFloat:
		return float32(v.Val), nil
	}
	return 0, fmt.Errorf("expected number, got %T (%s)", s, s.SexpString(nil))
}

func toString(s zygo.Sexp) (string, error) {
	if str, ok := s.(*zygo.SexpStr); ok {
		return str.S, nil
	}
	return "", fmt.Errorf("expected string, got %T (%s)", s, s.SexpString(nil))
}

// toKeywordString accepts both :kw and "kw".
func toKeywordString(s zygo.Sexp) (string, error) {
	str, ok := s.(*zygo.SexpStr)
	if !ok {
		return "", fmt.Errorf("expected keyword or string, got %T (%s)", s, s.SexpString(nil))
	}
	return strings.TrimPrefix(str.S, kwPrefix), nil
}

// toBool accepts true/false; a bare trailing keyword counts as true.
func toBool(s zygo.Sexp) (bool, error) {
	switch v := s.(type) {
	case *zygo.SexpBool:
		return v.Val, nil
	case *zygo.SexpSentinel:
		if v == zygo.SexpNull {
			return true, nil
		}
	}
	return false, fmt.Errorf("expected true or false, got %T (%s)", s, s.SexpString(nil))
}

func toVec3(s zygo.Sexp) (mgl32.Vec3, error) {
	if v, ok := s.(*sexpVec3); ok {
		return v.vec, nil
	}
	return mgl32.Vec3{}, fmt.Errorf("expected vec3, got %T (%s)", s, s.SexpString(nil))
}

// toScale accepts a vec3 or a single number for uniform scale.
func toScale(s zygo.Sexp) (mgl32.Vec3, error) {
	if f, err := toFloat32(s); err == nil {
		return mgl32.Vec3{f, f, f}, nil
	}
	return toVec3(s)
}

func toQuat(s zygo.Sexp) (mgl32.Quat, error) {
	if q, ok := s.(*sexpQuat); ok {
		return q.quat, nil
	}
	return mgl32.Quat{}, fmt.Errorf("expected quaternion, got %T (%s)", s, s.SexpString(nil))
}

// toTarget accepts an object reference or an object name.
func toTarget(s zygo.Sexp) (string, error) {
	if ref, ok := s.(*sexpObjectRef); ok {
		return ref.name, nil
	}
	return toString(s)
}

// ---------------------------------------------------------------------------
// Builtin registration
// ---------------------------------------------------------------------------

// registerBuiltins installs the scene builtins into a zygomys environment.
// They populate s during evaluation.
func registerBuiltins(env *zygo.Zlisp, s *scene.Scene) {

	// (vec3 x y z)
	env.AddFunction("vec3", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 3 {
			return zygo.SexpNull, fmt.Errorf("vec3 requires 3 numbers, got %d", len(args))
		}
		var v mgl32.Vec3
		for i, a := range args {
			f, err := toFloat32(a)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("vec3: component %d: %w", i, err)
			}
			v[i] = f
		}
		return &sexpVec3{vec: v}, nil
	})

	// (quat-axis-angle (vec3 0 1 0) 90) with the angle in degrees
	env.AddFunction("quat_axis_angle", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("quat-axis-angle requires an axis and an angle")
		}
		axis, err := toVec3(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("quat-axis-angle: axis: %w", err)
		}
		if axis.Len() < falg.DefaultEpsilon {
			return zygo.SexpNull, fmt.Errorf("quat-axis-angle: axis must be non-zero")
		}
		deg, err := toFloat32(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("quat-axis-angle: angle: %w", err)
		}
		return &sexpQuat{quat: falg.QuatAxisAngle(axis, deg*falg.ToRadians)}, nil
	})

	// (quat-mul a b) rotates by a, then b
	env.AddFunction("quat_mul", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		if len(args) != 2 {
			return zygo.SexpNull, fmt.Errorf("quat-mul requires two quaternions")
		}
		a, err := toQuat(args[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("quat-mul: %w", err)
		}
		b, err := toQuat(args[1])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("quat-mul: %w", err)
		}
		return &sexpQuat{quat: falg.QuatMul(a, b)}, nil
	})

	// (object "name" :at (vec3 ..) :rotation (quat-axis-angle ..) :scale (vec3 ..))
	env.AddFunction("object", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("object requires a name argument")
		}
		objName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("object: name: %w", err)
		}

		o := &scene.Object{Name: objName, TRS: falg.NewTRS()}
		if v, ok := pa.kw["at"]; ok {
			if o.TRS.Translation, err = toVec3(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("object: at: %w", err)
			}
		}
		if v, ok := pa.kw["rotation"]; ok {
			if o.TRS.Rotation, err = toQuat(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("object: rotation: %w", err)
			}
		}
		if v, ok := pa.kw["scale"]; ok {
			if o.TRS.Scale, err = toScale(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("object: scale: %w", err)
			}
		}
		s.Add(o)
		return &sexpObjectRef{name: objName}, nil
	})

	// (gizmo "name" :target "obj" :mode :rotate :local true :uniform false :axes :xz)
	env.AddFunction("gizmo", func(env *zygo.Zlisp, name string, args []zygo.Sexp) (zygo.Sexp, error) {
		pa := parseArgs(args)
		if len(pa.positional) < 1 {
			return zygo.SexpNull, fmt.Errorf("gizmo requires a name argument")
		}
		wName, err := toString(pa.positional[0])
		if err != nil {
			return zygo.SexpNull, fmt.Errorf("gizmo: name: %w", err)
		}

		w := scene.Widget{Name: wName, Target: wName}
		if v, ok := pa.kw["target"]; ok {
			if w.Target, err = toTarget(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("gizmo: target: %w", err)
			}
		}
		if v, ok := pa.kw["mode"]; ok {
			m, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("gizmo: mode: %w", err)
			}
			if w.Mode, err = gizmo.ParseMode(m); err != nil {
				return zygo.SexpNull, fmt.Errorf("gizmo: %w", err)
			}
		}
		if v, ok := pa.kw["local"]; ok {
			if w.Local, err = toBool(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("gizmo: local: %w", err)
			}
		}
		if v, ok := pa.kw["uniform"]; ok {
			if w.Uniform, err = toBool(v); err != nil {
				return zygo.SexpNull, fmt.Errorf("gizmo: uniform: %w", err)
			}
		}
		if v, ok := pa.kw["axes"]; ok {
			a, err := toKeywordString(v)
			if err != nil {
				return zygo.SexpNull, fmt.Errorf("gizmo: axes: %w", err)
			}
			if w.Axes, err = gizmo.ParseAxes(a); err != nil {
				return zygo.SexpNull, fmt.Errorf("gizmo: %w", err)
			}
		}
		s.AddWidget(w)
		return zygo.SexpNull, nil
	})
}
