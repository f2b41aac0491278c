package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vec3(x, y, z float32) mgl32.Vec3 {
	return mgl32.Vec3{x, y, z}
}

func defaultNode(g *Graph, translation mgl32.Vec3) TransformID {
	return g.Create(translation, vec3(0, 0, 0), vec3(1, 1, 1))
}

func approxEqual(a, b mgl32.Vec3) bool {
	const epsilon = 1e-5
	return a.Sub(b).Len() < epsilon
}

func TestChildTraversal(t *testing.T) {
	tests := []struct {
		name     string
		attach   int
		detach   []int // indexes into the attached children to detach
		expected []int // indexes expected to remain, in order
	}{
		{"Single child", 1, nil, []int{0}},
		{"Three children in attach order", 3, nil, []int{0, 1, 2}},
		{"Detach middle", 3, []int{1}, []int{0, 2}},
		{"Detach first", 3, []int{0}, []int{1, 2}},
		{"Detach last", 3, []int{2}, []int{0, 1}},
		{"Detach all", 2, []int{0, 1}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			parent := defaultNode(g, vec3(0, 0, 0))
			children := make([]TransformID, tt.attach)
			for i := range children {
				children[i] = defaultNode(g, vec3(float32(i), 0, 0))
				g.Attach(children[i], parent)
			}
			for _, idx := range tt.detach {
				g.Detach(children[idx])
			}

			var expected []TransformID
			for _, idx := range tt.expected {
				expected = append(expected, children[idx])
			}
			got := g.Children(parent)
			if len(got) != len(expected) {
				t.Fatalf("expected %d children, got %d", len(expected), len(got))
			}
			for i := range expected {
				if got[i] != expected[i] {
					t.Errorf("child %d: expected id %d, got %d", i, expected[i], got[i])
				}
			}
		})
	}
}

func TestSiblingLinksConsistent(t *testing.T) {
	g := NewGraph()
	parent := defaultNode(g, vec3(0, 0, 0))
	a := defaultNode(g, vec3(1, 0, 0))
	b := defaultNode(g, vec3(2, 0, 0))
	c := defaultNode(g, vec3(3, 0, 0))
	g.Attach(a, parent)
	g.Attach(b, parent)
	g.Attach(c, parent)
	g.Detach(b)

	// Forward traversal must mirror backward traversal after the patch.
	if got := g.Get(a).NextSibling(); got != c {
		t.Errorf("expected a's next sibling to be c (%d), got %d", c, got)
	}
	if got := g.Get(c).PreviousSibling(); got != a {
		t.Errorf("expected c's previous sibling to be a (%d), got %d", a, got)
	}
	if got := g.Get(parent).FirstChild(); got != a {
		t.Errorf("expected first child a (%d), got %d", a, got)
	}
	if got := g.Get(parent).LastChild(); got != c {
		t.Errorf("expected last child c (%d), got %d", c, got)
	}
	if !g.Get(b).Dead() {
		t.Error("expected detached node to be marked dead")
	}
	if g.Get(a).Dead() || g.Get(c).Dead() {
		t.Error("expected siblings of a detached node to stay alive")
	}
}

func TestDetachPatchesParentPointers(t *testing.T) {
	g := NewGraph()
	parent := defaultNode(g, vec3(0, 0, 0))
	only := defaultNode(g, vec3(1, 0, 0))
	g.Attach(only, parent)
	g.Detach(only)

	if got := g.Get(parent).FirstChild(); got != NoTransform {
		t.Errorf("expected no first child after detaching only child, got %d", got)
	}
	if got := g.Get(parent).LastChild(); got != NoTransform {
		t.Errorf("expected no last child after detaching only child, got %d", got)
	}
}

func TestWorldMatrixComposition(t *testing.T) {
	tests := []struct {
		name        string
		parentLocal [3]mgl32.Vec3 // translation, rotation, scale
		childLocal  mgl32.Vec3    // child translation, identity rotation/scale
		expected    mgl32.Vec3    // expected child world position
	}{
		{
			"Translation chain",
			[3]mgl32.Vec3{vec3(1, 2, 3), vec3(0, 0, 0), vec3(1, 1, 1)},
			vec3(10, 0, 0),
			vec3(11, 2, 3),
		},
		{
			"Parent scale applies to child translation",
			[3]mgl32.Vec3{vec3(1, 0, 0), vec3(0, 0, 0), vec3(2, 2, 2)},
			vec3(10, 0, 0),
			vec3(21, 0, 0),
		},
		{
			"Parent rotation about Z",
			[3]mgl32.Vec3{vec3(0, 0, 0), vec3(0, 0, mgl32.DegToRad(90)), vec3(1, 1, 1)},
			vec3(1, 0, 0),
			vec3(0, 1, 0),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGraph()
			parent := g.Create(tt.parentLocal[0], tt.parentLocal[1], tt.parentLocal[2])
			child := defaultNode(g, tt.childLocal)
			g.Attach(child, parent)

			world := g.WorldMatrix(child)
			got := world.Col(3).Vec3()
			if !approxEqual(got, tt.expected) {
				t.Errorf("expected child world position %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDirtyPropagationReachesDescendants(t *testing.T) {
	g := NewGraph()
	root := defaultNode(g, vec3(0, 0, 0))
	mid := defaultNode(g, vec3(1, 0, 0))
	leaf := defaultNode(g, vec3(1, 0, 0))
	g.Attach(mid, root)
	g.Attach(leaf, mid)

	// Prime the caches.
	if got := g.WorldMatrix(leaf).Col(3).Vec3(); !approxEqual(got, vec3(2, 0, 0)) {
		t.Fatalf("expected primed leaf position (2,0,0), got %v", got)
	}

	// Editing the root must be visible at the leaf.
	g.SetTranslation(root, vec3(0, 5, 0))
	if got := g.WorldMatrix(leaf).Col(3).Vec3(); !approxEqual(got, vec3(2, 5, 0)) {
		t.Errorf("expected leaf position (2,5,0) after root edit, got %v", got)
	}

	// Editing the middle node must also be visible at the leaf.
	g.SetTranslation(mid, vec3(3, 0, 0))
	if got := g.WorldMatrix(leaf).Col(3).Vec3(); !approxEqual(got, vec3(4, 5, 0)) {
		t.Errorf("expected leaf position (4,5,0) after mid edit, got %v", got)
	}
}

func TestWorldMatrixCachedUntilDirty(t *testing.T) {
	g := NewGraph()
	node := defaultNode(g, vec3(1, 1, 1))

	first := g.WorldMatrix(node)
	second := g.WorldMatrix(node)
	if first != second {
		t.Error("expected identical cached matrix on repeated reads")
	}

	g.SetScale(node, vec3(2, 2, 2))
	third := g.WorldMatrix(node)
	if first == third {
		t.Error("expected recomputed matrix after an edit")
	}
}

func TestCompactReusesDeadSlots(t *testing.T) {
	g := NewGraph()
	parent := defaultNode(g, vec3(0, 0, 0))
	child := defaultNode(g, vec3(1, 0, 0))
	g.Attach(child, parent)
	g.Detach(child)

	// Slots are not reused until Compact runs.
	fresh := defaultNode(g, vec3(2, 0, 0))
	if fresh == child {
		t.Fatal("expected dead slot to stay unavailable before Compact")
	}
	if g.Len() != 3 {
		t.Fatalf("expected 3 slots before compaction, got %d", g.Len())
	}

	if reclaimed := g.Compact(); reclaimed != 1 {
		t.Fatalf("expected 1 reclaimed slot, got %d", reclaimed)
	}
	reused := defaultNode(g, vec3(3, 0, 0))
	if reused != child {
		t.Errorf("expected Create to reuse reclaimed slot %d, got %d", child, reused)
	}
	if g.Len() != 3 {
		t.Errorf("expected slot count to stay at 3 after reuse, got %d", g.Len())
	}
}
