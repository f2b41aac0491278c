package material

import "sync"

// Handle is the stable arena index of a Material. Handles never move or get
// reused; many MaterialInstances may hold the same Handle.
type Handle int

// NoMaterial is the absent-material sentinel.
const NoMaterial Handle = -1

// Arena is the single owner of all Materials. Instances address their parent
// material by Handle through the arena, so all material mutation funnels
// through one owner instead of aliased shared references.
type Arena struct {
	mu        sync.Mutex
	materials []*Material
}

// NewArena creates an empty material arena.
//
// Returns:
//   - *Arena: the new arena
func NewArena() *Arena {
	return &Arena{}
}

// Add takes ownership of a material and returns its handle.
//
// Parameters:
//   - m: the material to add
//
// Returns:
//   - Handle: the stable handle for the material
func (a *Arena) Add(m *Material) Handle {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.materials = append(a.materials, m)
	return Handle(len(a.materials) - 1)
}

// Get returns the material for a handle. The returned pointer is owned by the
// arena; mutate it only during the frame's update phase.
//
// Parameters:
//   - h: the handle to look up
//
// Returns:
//   - *Material: the material
func (a *Arena) Get(h Handle) *Material {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.materials[h]
}

// Len returns the number of materials in the arena.
//
// Returns:
//   - int: the material count
func (a *Arena) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.materials)
}

// Each invokes fn for every material in handle order.
//
// Parameters:
//   - fn: the visitor, receiving each handle and material
func (a *Arena) Each(fn func(Handle, *Material)) {
	a.mu.Lock()
	materials := make([]*Material, len(a.materials))
	copy(materials, a.materials)
	a.mu.Unlock()

	for i, m := range materials {
		fn(Handle(i), m)
	}
}

// NewInstance creates a MaterialInstance sharing the material at the given
// handle.
//
// Parameters:
//   - parent: the handle of the shared parent material
//   - id: the instance's own identifier
//
// Returns:
//   - *MaterialInstance: the new instance
func (a *Arena) NewInstance(parent Handle, id string) *MaterialInstance {
	return &MaterialInstance{
		arena:  a,
		parent: parent,
		id:     id,
	}
}
