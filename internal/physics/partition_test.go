package physics

import (
	"math/rand"
	"slices"
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func newTestBall(x, halfWidth float32) *Ball {
	shape, err := NewBoxShape(halfWidth, 1)
	if err != nil {
		panic(err)
	}
	return newBall(NewBody(Static, rl.Vector2{X: x}, shape))
}

func moveBall(tree *BinaryTree, ball *Ball, x float32) {
	ball.body.position.X = x
	ball.body.refreshExtents()
	tree.Update(ball)
}

// checkTree verifies the brother chain, leaf membership and candidate links
// of every ball against a from-scratch computation.
func checkTree(t *testing.T, tree *BinaryTree, balls []*Ball) {
	t.Helper()

	leaves := tree.Leaves()
	if len(leaves) != tree.LeafCount() {
		t.Fatalf("Expected %d leaves in the chain, got %d", tree.LeafCount(), len(leaves))
	}
	bounds := tree.Bounds()
	if leaves[0].MinX != bounds.MinX || leaves[len(leaves)-1].MaxX != bounds.MaxX {
		t.Errorf("Leaf chain %v..%v does not cover root %v", leaves[0], leaves[len(leaves)-1], bounds)
	}
	for i, leaf := range leaves {
		if leaf.Width() != tree.PartitionWidth() {
			t.Errorf("Expected leaf %d width %g, got %g", i, tree.PartitionWidth(), leaf.Width())
		}
		if i > 0 && leaves[i-1].MaxX != leaf.MinX {
			t.Errorf("Gap between leaf %d (%v) and leaf %d (%v)", i-1, leaves[i-1], i, leaf)
		}
	}

	for _, ball := range balls {
		if ball.leftLeaf == nullNode {
			continue
		}
		if !tree.settled(ball) {
			t.Errorf("Ball at %v has span %v", ball.body.Extent(), tree.Span(ball))
		}
		span := tree.Span(ball)
		for id := tree.first; id != nullNode; id = tree.nodes[id].next {
			n := tree.nodes[id]
			inSpan := n.bounds.MinX >= span.MinX && n.bounds.MaxX <= span.MaxX
			resident := slices.Contains(n.balls, ball)
			if inSpan != resident {
				t.Errorf("Ball at %v: leaf %v in span=%v resident=%v", ball.body.Extent(), n.bounds, inSpan, resident)
			}
		}
	}

	for _, a := range balls {
		if slices.Contains(a.candidates, a) {
			t.Errorf("Ball at %v is its own candidate", a.body.Extent())
		}
		for _, b := range balls {
			if a == b {
				continue
			}
			want := tree.sharesLeaf(a, b)
			got := slices.Contains(a.candidates, b)
			if want != got {
				t.Errorf("Balls at %v and %v: expected linked=%v, got %v", a.body.Extent(), b.body.Extent(), want, got)
			}
		}
	}
}

func TestNewBinaryTree(t *testing.T) {
	tree := NewBinaryTree(20)

	if got := tree.Bounds(); got != (Interval{MinX: 0, MaxX: 40}) {
		t.Errorf("Expected bounds [0, 40), got %v", got)
	}
	if tree.Depth() != 1 {
		t.Errorf("Expected depth 1, got %d", tree.Depth())
	}
	leaves := tree.Leaves()
	if len(leaves) != 2 || leaves[0] != (Interval{MinX: 0, MaxX: 20}) || leaves[1] != (Interval{MinX: 20, MaxX: 40}) {
		t.Errorf("Unexpected leaves %v", leaves)
	}
}

func TestNewBinaryTreeRejectsBadWidth(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for zero partition width")
		}
	}()
	NewBinaryTree(0)
}

func TestAddSpansLeaves(t *testing.T) {
	tree := NewBinaryTree(20)
	a := newTestBall(18, 5) // [13, 23]
	b := newTestBall(5, 1)  // [4, 6]
	c := newTestBall(30, 1) // [29, 31]

	for _, ball := range []*Ball{a, b, c} {
		tree.Add(ball)
	}

	if got := tree.Span(a); got != (Interval{MinX: 0, MaxX: 40}) {
		t.Errorf("Expected a to span [0, 40), got %v", got)
	}
	if got := tree.Span(b); got != (Interval{MinX: 0, MaxX: 20}) {
		t.Errorf("Expected b to span [0, 20), got %v", got)
	}
	if len(a.candidates) != 2 {
		t.Errorf("Expected a to have 2 candidates, got %d", len(a.candidates))
	}
	if slices.Contains(b.candidates, c) {
		t.Error("b and c share no leaf but are linked")
	}
	checkTree(t, tree, []*Ball{a, b, c})
}

func TestAddOnLeafBoundary(t *testing.T) {
	tree := NewBinaryTree(20)
	// [10, 20] ends exactly where the second leaf starts
	a := newTestBall(15, 5)
	b := newTestBall(25, 5)
	tree.Add(a)
	tree.Add(b)

	if got := tree.Span(a); got != (Interval{MinX: 0, MaxX: 20}) {
		t.Errorf("Expected [0, 20), got %v", got)
	}
	if len(a.candidates) != 0 || len(b.candidates) != 0 {
		t.Errorf("Expected no candidates, got %d and %d", len(a.candidates), len(b.candidates))
	}
	checkTree(t, tree, []*Ball{a, b})
}

func TestAddExpandsTree(t *testing.T) {
	tree := NewBinaryTree(20)
	inside := newTestBall(10, 1)
	tree.Add(inside)

	far := newTestBall(150, 1)
	tree.Add(far)
	if b := tree.Bounds(); b.MaxX <= 151 || b.MinX != 0 {
		t.Errorf("Expected right expansion from 0 past 151, got %v", b)
	}

	left := newTestBall(-70, 1)
	tree.Add(left)
	if b := tree.Bounds(); b.MinX > -71 {
		t.Errorf("Expected left expansion past -71, got %v", b)
	}

	if got := tree.Span(inside); got != (Interval{MinX: 0, MaxX: 20}) {
		t.Errorf("Expansion moved an existing ball to %v", got)
	}
	checkTree(t, tree, []*Ball{inside, far, left})
}

func TestAddTwicePanics(t *testing.T) {
	tree := NewBinaryTree(20)
	ball := newTestBall(1, 1)
	tree.Add(ball)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on double add")
		}
	}()
	tree.Add(ball)
}

func TestRemoveUnlinksCandidates(t *testing.T) {
	tree := NewBinaryTree(20)
	a := newTestBall(10, 12)
	b := newTestBall(5, 1)
	c := newTestBall(25, 1)
	for _, ball := range []*Ball{a, b, c} {
		tree.Add(ball)
	}

	tree.Remove(a)

	if a.leftLeaf != nullNode || a.rightLeaf != nullNode {
		t.Error("Expected removed ball to have no leaves")
	}
	if len(a.candidates) != 0 {
		t.Errorf("Expected no candidates after remove, got %d", len(a.candidates))
	}
	if slices.Contains(b.candidates, a) || slices.Contains(c.candidates, a) {
		t.Error("Removed ball still listed as a candidate")
	}
	checkTree(t, tree, []*Ball{b, c})

	defer func() {
		if recover() == nil {
			t.Error("Expected panic on removing an untracked ball")
		}
	}()
	tree.Remove(a)
}

func TestUpdateUntrackedPanics(t *testing.T) {
	tree := NewBinaryTree(20)
	defer func() {
		if recover() == nil {
			t.Error("Expected panic on updating an untracked ball")
		}
	}()
	tree.Update(newTestBall(0, 1))
}

func TestUpdateSlides(t *testing.T) {
	tree := NewBinaryTree(20)
	mover := newTestBall(5, 1)
	still := newTestBall(30, 1)
	tree.Add(mover)
	tree.Add(still)

	tests := []struct {
		x    float32
		span Interval
		link bool
	}{
		{x: 18, span: Interval{MinX: 0, MaxX: 20}, link: false},
		{x: 19.5, span: Interval{MinX: 0, MaxX: 40}, link: true},
		{x: 25, span: Interval{MinX: 20, MaxX: 40}, link: true},
		{x: 81, span: Interval{MinX: 80, MaxX: 100}, link: false},
		{x: -35, span: Interval{MinX: -40, MaxX: -20}, link: false},
		{x: 21, span: Interval{MinX: 20, MaxX: 40}, link: true},
		{x: 19.25, span: Interval{MinX: 0, MaxX: 40}, link: true},
		{x: 19, span: Interval{MinX: 0, MaxX: 20}, link: false},
	}

	for _, tt := range tests {
		moveBall(tree, mover, tt.x)
		if got := tree.Span(mover); got != tt.span {
			t.Errorf("x=%g: expected span %v, got %v", tt.x, tt.span, got)
		}
		if got := slices.Contains(mover.candidates, still); got != tt.link {
			t.Errorf("x=%g: expected linked=%v, got %v", tt.x, tt.link, got)
		}
		checkTree(t, tree, []*Ball{mover, still})
	}
}

func TestUpdateZeroWidthOnBoundary(t *testing.T) {
	tree := NewBinaryTree(20)
	shape, _ := NewCapsuleShape(1, 0)
	ball := newBall(NewBody(Dynamic, rl.Vector2{X: 5}, shape))
	tree.Add(ball)

	// collapse the body to a point sitting on the leaf edge
	ball.body.position.X = 20
	ball.body.minX, ball.body.maxX = 20, 20
	tree.Update(ball)

	if got := tree.Span(ball); got != (Interval{MinX: 20, MaxX: 40}) {
		t.Errorf("Expected [20, 40), got %v", got)
	}
	checkTree(t, tree, []*Ball{ball})
}

// TestUpdateMatchesRebuild drives a random walk through the tree and checks
// that the incremental result always equals adding everything from scratch.
// Leaf edges are multiples of the partition width in every tree, so spans
// and candidate sets are comparable even though the trees differ in shape.
func TestUpdateMatchesRebuild(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	tree := NewBinaryTree(10)

	balls := make([]*Ball, 40)
	for i := range balls {
		balls[i] = newTestBall(rng.Float32()*100-50, 0.5+rng.Float32()*8)
		tree.Add(balls[i])
	}
	checkTree(t, tree, balls)

	for step := 0; step < 500; step++ {
		ball := balls[rng.Intn(len(balls))]
		x := ball.body.position.X
		switch rng.Intn(4) {
		case 0:
			x += rng.Float32()*200 - 100
		case 1:
			x = float32(rng.Intn(30)-15) * 10 // land on leaf edges
		default:
			x += rng.Float32()*6 - 3
		}
		moveBall(tree, ball, x)

		if step%25 != 0 {
			continue
		}
		checkTree(t, tree, balls)

		fresh := NewBinaryTree(10)
		clones := make(map[*Ball]*Ball, len(balls))
		for _, b := range balls {
			clone := newBall(b.body)
			clones[b] = clone
			fresh.Add(clone)
		}
		for _, b := range balls {
			clone := clones[b]
			if tree.Span(b) != fresh.Span(clone) {
				t.Fatalf("step %d: span %v, rebuilt %v", step, tree.Span(b), fresh.Span(clone))
			}
			if len(b.candidates) != len(clone.candidates) {
				t.Fatalf("step %d: %d candidates, rebuilt %d", step, len(b.candidates), len(clone.candidates))
			}
			for _, c := range b.candidates {
				if !slices.Contains(clone.candidates, clones[c]) {
					t.Fatalf("step %d: candidate missing after rebuild", step)
				}
			}
		}
	}
	checkTree(t, tree, balls)
}

func TestReset(t *testing.T) {
	tree := NewBinaryTree(20)
	tree.Add(newTestBall(500, 1))
	tree.Reset()

	if tree.Depth() != 1 || tree.Bounds() != (Interval{MinX: 0, MaxX: 40}) {
		t.Errorf("Expected fresh tree after reset, got depth %d bounds %v", tree.Depth(), tree.Bounds())
	}
}

func BenchmarkUpdateSmallSteps(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	tree := NewBinaryTree(20)
	balls := make([]*Ball, 1000)
	for i := range balls {
		balls[i] = newTestBall(rng.Float32()*2000, 0.5)
		tree.Add(balls[i])
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ball := balls[i%len(balls)]
		moveBall(tree, ball, ball.body.position.X+rng.Float32()*2-1)
	}
}

func BenchmarkAddRemove(b *testing.B) {
	tree := NewBinaryTree(20)
	ball := newTestBall(50, 3)
	for i := 0; i < b.N; i++ {
		tree.Add(ball)
		tree.Remove(ball)
	}
}
