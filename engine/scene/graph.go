package scene

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Graph is the transform arena. Nodes are created detached, spliced into a
// parent's child list by Attach, and logically removed by Detach; dead slots
// are only reclaimed by an explicit Compact call so that live IDs stay stable.
//
// The graph is single-writer per frame phase: the update phase mutates it, the
// render phase only reads world matrices. The mutex guards against accidental
// cross-goroutine use, not a parallel access pattern.
type Graph struct {
	mu    sync.Mutex
	nodes []Transform
	free  []TransformID
}

// NewGraph creates an empty transform graph.
//
// Returns:
//   - *Graph: the new graph
func NewGraph() *Graph {
	return &Graph{}
}

// Create adds a new detached node with the given local components. The node
// starts dirty so its first world-matrix read computes the cache.
//
// Parameters:
//   - translation: the local translation
//   - rotation: the local rotation as XYZ Euler angles in radians
//   - scale: the local scale
//
// Returns:
//   - TransformID: the arena id of the new node
func (g *Graph) Create(translation, rotation, scale mgl32.Vec3) TransformID {
	g.mu.Lock()
	defer g.mu.Unlock()

	node := Transform{
		translation:     translation,
		rotation:        rotation,
		scale:           scale,
		matrix:          mgl32.Ident4(),
		dirty:           true,
		parent:          NoTransform,
		firstChild:      NoTransform,
		lastChild:       NoTransform,
		nextSibling:     NoTransform,
		previousSibling: NoTransform,
	}

	if n := len(g.free); n > 0 {
		id := g.free[n-1]
		g.free = g.free[:n-1]
		g.nodes[id] = node
		return id
	}
	g.nodes = append(g.nodes, node)
	return TransformID(len(g.nodes) - 1)
}

// Get returns a read-only view of a node.
//
// Parameters:
//   - id: the node to read
//
// Returns:
//   - Transform: a copy of the node's state
func (g *Graph) Get(id TransformID) Transform {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.nodes[id]
}

// Attach splices child into parent's child list at the tail and sets the
// child's parent link. The child is marked dirty (with its descendants) since
// its world matrix now depends on the new ancestor chain.
//
// Parameters:
//   - child: the node to attach; must currently be detached
//   - parent: the node to attach under
func (g *Graph) Attach(child, parent TransformID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	c := &g.nodes[child]
	p := &g.nodes[parent]
	c.parent = parent
	if p.lastChild != NoTransform {
		g.nodes[p.lastChild].nextSibling = child
		c.previousSibling = p.lastChild
	} else {
		p.firstChild = child
	}
	p.lastChild = child
	g.markDirty(child)
}

// Detach unlinks a node from its parent's child list, patching exactly its
// neighbors' sibling links and the parent's first/last pointers, and marks the
// node (not its children) logically dead. Reading the world matrix of any node
// whose ancestor chain contains a dead node is undefined; callers must reparent
// or remove the subtree before the next read. The slot is reclaimed only by
// Compact.
//
// Parameters:
//   - node: the node to detach
func (g *Graph) Detach(node TransformID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n := &g.nodes[node]
	if n.previousSibling != NoTransform {
		g.nodes[n.previousSibling].nextSibling = n.nextSibling
	} else if n.parent != NoTransform {
		g.nodes[n.parent].firstChild = n.nextSibling
	}
	if n.nextSibling != NoTransform {
		g.nodes[n.nextSibling].previousSibling = n.previousSibling
	} else if n.parent != NoTransform {
		g.nodes[n.parent].lastChild = n.previousSibling
	}
	n.parent = NoTransform
	n.nextSibling = NoTransform
	n.previousSibling = NoTransform
	n.dead = true
}

// SetTranslation replaces a node's local translation and dirties the node and
// every descendant.
//
// Parameters:
//   - id: the node to edit
//   - translation: the new local translation
func (g *Graph) SetTranslation(id TransformID, translation mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes[id].translation = translation
	g.markDirty(id)
}

// SetRotation replaces a node's local rotation and dirties the node and every
// descendant.
//
// Parameters:
//   - id: the node to edit
//   - rotation: the new local rotation as XYZ Euler angles in radians
func (g *Graph) SetRotation(id TransformID, rotation mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes[id].rotation = rotation
	g.markDirty(id)
}

// SetScale replaces a node's local scale and dirties the node and every
// descendant.
//
// Parameters:
//   - id: the node to edit
//   - scale: the new local scale
func (g *Graph) SetScale(id TransformID, scale mgl32.Vec3) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nodes[id].scale = scale
	g.markDirty(id)
}

// MarkDirty flags a node and all of its descendants as needing a world-matrix
// recompute. Descendants must be included because a world matrix depends on
// every ancestor.
//
// Parameters:
//   - id: the root of the subtree to dirty
func (g *Graph) MarkDirty(id TransformID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.markDirty(id)
}

func (g *Graph) markDirty(id TransformID) {
	g.nodes[id].dirty = true
	for child := g.nodes[id].firstChild; child != NoTransform; child = g.nodes[child].nextSibling {
		g.markDirty(child)
	}
}

// WorldMatrix returns the node's local-to-world matrix, recomputing and
// caching it if the node is dirty. A dirty node recomputes as its parent's
// world matrix times its own local matrix (identity parent for roots).
//
// Parameters:
//   - id: the node to read
//
// Returns:
//   - mgl32.Mat4: the local-to-world matrix
func (g *Graph) WorldMatrix(id TransformID) mgl32.Mat4 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.worldMatrix(id)
}

func (g *Graph) worldMatrix(id TransformID) mgl32.Mat4 {
	n := &g.nodes[id]
	if !n.dirty {
		return n.matrix
	}
	parentWorld := mgl32.Ident4()
	if n.parent != NoTransform {
		parentWorld = g.worldMatrix(n.parent)
	}
	n.matrix = parentWorld.Mul4(n.localMatrix())
	n.dirty = false
	return n.matrix
}

// Compact reclaims the slots of dead nodes so Create can reuse them. This is
// the explicit maintenance counterpart to Detach and is never run implicitly.
// IDs of live nodes are unaffected.
//
// Returns:
//   - int: the number of slots reclaimed by this call
func (g *Graph) Compact() int {
	g.mu.Lock()
	defer g.mu.Unlock()

	reclaimed := 0
	for i := range g.nodes {
		if !g.nodes[i].dead {
			continue
		}
		g.nodes[i].dead = false
		g.nodes[i].dirty = true
		g.free = append(g.free, TransformID(i))
		reclaimed++
	}
	return reclaimed
}

// Len returns the number of arena slots, live or dead-but-unreclaimed.
//
// Returns:
//   - int: the slot count
func (g *Graph) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.nodes)
}

// Children returns the ids of a node's children in sibling order, traversed
// via firstChild and nextSibling links.
//
// Parameters:
//   - id: the parent node
//
// Returns:
//   - []TransformID: the child ids in attach order
func (g *Graph) Children(id TransformID) []TransformID {
	g.mu.Lock()
	defer g.mu.Unlock()

	var children []TransformID
	for child := g.nodes[id].firstChild; child != NoTransform; child = g.nodes[child].nextSibling {
		children = append(children, child)
	}
	return children
}
