package gizmo

import "hash/fnv"

// ID identifies one handle across frames.
type ID uint32

// Hash returns the 32-bit FNV-1a hash of name. Two names with the same
// hash share one interaction record.
func Hash(name string) ID {
	h := fnv.New32a()
	h.Write([]byte(name))
	return ID(h.Sum32())
}
