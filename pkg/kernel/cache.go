package kernel

// Cache memoizes meshes from another kernel. Shapes are values and
// generation is deterministic, so entries never go stale.
// A Cache is not safe for concurrent use.
type Cache struct {
	k      Kernel
	meshes map[Shape]*Mesh
}

// NewCache wraps k.
func NewCache(k Kernel) *Cache {
	return &Cache{k: k, meshes: make(map[Shape]*Mesh)}
}

// Mesh returns the cached mesh for s, building it on first use.
func (c *Cache) Mesh(s Shape) (*Mesh, error) {
	if m, ok := c.meshes[s]; ok {
		return m, nil
	}
	m, err := c.k.Mesh(s)
	if err != nil {
		return nil, err
	}
	c.meshes[s] = m
	return m, nil
}

// Len returns the number of cached meshes.
func (c *Cache) Len() int {
	return len(c.meshes)
}
