package scene

import (
	"fmt"
	"sort"
)

// ValidationSeverity indicates whether a finding blocks a session or is
// merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // blocks a session
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	Name     string // object or widget involved, empty if scene-level
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", e.Severity, e.Name, e.Message)
}

// Validate checks the scene and returns every finding. It never mutates
// the scene.
func Validate(s *Scene) []ValidationError {
	var errs []ValidationError
	errs = append(errs, validateObjects(s)...)
	errs = append(errs, validateWidgets(s)...)
	errs = append(errs, validateIDs(s)...)
	return errs
}

// HasErrors reports whether any finding is an error.
func HasErrors(errs []ValidationError) bool {
	for _, e := range errs {
		if e.Severity == SeverityError {
			return true
		}
	}
	return false
}

func validateObjects(s *Scene) []ValidationError {
	var errs []ValidationError
	counts := make(map[string]int)
	for _, name := range s.Order {
		counts[name]++
		if counts[name] == 2 {
			errs = append(errs, ValidationError{
				Name:     name,
				Message:  "duplicate object name",
				Severity: SeverityError,
			})
		}
	}
	for _, o := range s.ObjectList() {
		if o.Name == "" {
			errs = append(errs, ValidationError{Message: "object without a name", Severity: SeverityError})
		}
		for i, c := range o.TRS.Scale {
			if c <= 0 {
				errs = append(errs, ValidationError{
					Name:     o.Name,
					Message:  fmt.Sprintf("scale component %d is %v; scale must be positive", i, c),
					Severity: SeverityError,
				})
			}
		}
	}
	return errs
}

func validateWidgets(s *Scene) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for _, w := range s.Widgets {
		if w.Name == "" {
			errs = append(errs, ValidationError{Message: "widget without a name", Severity: SeverityError})
			continue
		}
		if seen[w.Name] {
			errs = append(errs, ValidationError{Name: w.Name, Message: "duplicate widget name", Severity: SeverityError})
		}
		seen[w.Name] = true
		if s.Lookup(w.Target) == nil {
			errs = append(errs, ValidationError{
				Name:     w.Name,
				Message:  fmt.Sprintf("target %q does not exist", w.Target),
				Severity: SeverityError,
			})
		}
	}
	return errs
}

// validateIDs warns about distinct widget names whose handle IDs collide.
// Colliding widgets would share one drag state.
func validateIDs(s *Scene) []ValidationError {
	byID := make(map[uint32][]string)
	for _, w := range s.Widgets {
		id := uint32(w.ID())
		byID[id] = appendUnique(byID[id], w.Name)
	}
	var errs []ValidationError
	ids := make([]uint32, 0, len(byID))
	for id := range byID {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		names := byID[id]
		if len(names) < 2 {
			continue
		}
		errs = append(errs, ValidationError{
			Message:  fmt.Sprintf("widgets %v share handle id %08x", names, id),
			Severity: SeverityWarning,
		})
	}
	return errs
}

func appendUnique(names []string, name string) []string {
	for _, n := range names {
		if n == name {
			return names
		}
	}
	return append(names, name)
}
