package physics

import (
	"fmt"

	"github.com/charmbracelet/log"
)

type nodeID int32

const nullNode nodeID = -1

// node is either a branch (left/right children) or a leaf (prev/next
// brothers plus resident balls). Links are indices into the tree's arena and
// never own anything.
type node struct {
	bounds Interval // leaves cover [MinX, MaxX)
	parent nodeID
	left   nodeID
	right  nodeID
	prev   nodeID
	next   nodeID
	leaf   bool
	balls  []*Ball
}

// Ball binds one body to the partition: the leftmost and rightmost leaves
// its extent touches and every other ball sharing at least one of them.
type Ball struct {
	body       *Body
	leftLeaf   nodeID
	rightLeaf  nodeID
	candidates []*Ball
}

func newBall(body *Body) *Ball {
	return &Ball{body: body, leftLeaf: nullNode, rightLeaf: nullNode}
}

func (b *Ball) Body() *Body {
	return b.body
}

// Candidates returns the bodies the ball currently shares a leaf with.
func (b *Ball) Candidates() []*Body {
	bodies := make([]*Body, len(b.candidates))
	for i, c := range b.candidates {
		bodies[i] = c.body
	}
	return bodies
}

// BinaryTree is an expanding binary interval tree over the x axis. Leaves
// all have the same width and are chained left to right whatever their
// depth; the root doubles towards whichever side a body falls off.
type BinaryTree struct {
	partitionWidth float32
	nodes          []node
	root           nodeID
	depth          int // branch levels above the leaves
	first          nodeID
	last           nodeID
	logger         *log.Logger
}

func NewBinaryTree(partitionWidth float32) *BinaryTree {
	if partitionWidth <= 0 {
		panic(fmt.Sprintf("physics: partition width must be positive, got %g", partitionWidth))
	}
	t := &BinaryTree{partitionWidth: partitionWidth}
	t.Reset()
	return t
}

// Reset drains the arena and starts again from two leaves covering
// [0, 2*partitionWidth). Balls still pointing into the old tree are invalid.
func (t *BinaryTree) Reset() {
	w := t.partitionWidth
	t.nodes = t.nodes[:0]
	t.root = t.newNode(Interval{MinX: 0, MaxX: 2 * w}, nullNode, false)
	left := t.newNode(Interval{MinX: 0, MaxX: w}, t.root, true)
	right := t.newNode(Interval{MinX: w, MaxX: 2 * w}, t.root, true)
	t.nodes[t.root].left = left
	t.nodes[t.root].right = right
	t.link(left, right)
	t.first, t.last = left, right
	t.depth = 1
}

func (t *BinaryTree) PartitionWidth() float32 {
	return t.partitionWidth
}

// Bounds returns the interval currently covered by the root.
func (t *BinaryTree) Bounds() Interval {
	return t.nodes[t.root].bounds
}

func (t *BinaryTree) Depth() int {
	return t.depth
}

func (t *BinaryTree) LeafCount() int {
	return 1 << t.depth
}

// Leaves walks the brother chain from the leftmost leaf.
func (t *BinaryTree) Leaves() []Interval {
	leaves := make([]Interval, 0, t.LeafCount())
	for id := t.first; id != nullNode; id = t.nodes[id].next {
		leaves = append(leaves, t.nodes[id].bounds)
	}
	return leaves
}

// Span returns the interval covered by the ball's leaves, or an empty
// interval if the ball is not in the tree.
func (t *BinaryTree) Span(ball *Ball) Interval {
	if ball.leftLeaf == nullNode {
		return Interval{}
	}
	return Interval{
		MinX: t.nodes[ball.leftLeaf].bounds.MinX,
		MaxX: t.nodes[ball.rightLeaf].bounds.MaxX,
	}
}

// Add registers the ball in every leaf its body overlaps. Cost is
// proportional to the number of leaves spanned.
func (t *BinaryTree) Add(ball *Ball) {
	if ball.leftLeaf != nullNode {
		panic("physics: ball added to the partition twice")
	}
	body := ball.body

	for t.nodes[t.root].bounds.MinX > body.minX {
		t.expandLeft()
	}
	for t.nodes[t.root].bounds.MaxX < body.maxX || t.nodes[t.root].bounds.MaxX <= body.minX {
		t.expandRight()
	}

	leaf := t.findLeaf(body.minX)
	ball.leftLeaf = leaf
	for {
		next := t.nodes[leaf].next
		if next == nullNode || body.maxX <= t.nodes[next].bounds.MinX {
			break
		}
		leaf = next
	}
	ball.rightLeaf = leaf

	var touched []*Ball
	for id := ball.leftLeaf; ; id = t.nodes[id].next {
		touched = t.enter(ball, id, touched)
		if id == ball.rightLeaf {
			break
		}
	}
	t.relink(ball, touched)
}

// Remove drops the ball from its leaves and unlinks all of its candidates.
func (t *BinaryTree) Remove(ball *Ball) {
	if ball.leftLeaf == nullNode {
		panic("physics: removing a ball that is not in the partition")
	}
	for id := ball.leftLeaf; ; id = t.nodes[id].next {
		t.nodes[id].balls = pop(t.nodes[id].balls, ball)
		if id == ball.rightLeaf {
			break
		}
	}
	ball.leftLeaf, ball.rightLeaf = nullNode, nullNode

	others := make([]*Ball, len(ball.candidates))
	copy(others, ball.candidates)
	t.relink(ball, others)
	ball.candidates = ball.candidates[:0]
}

// Update re-homes a ball whose body moved. Each side of the span slides
// leaf by leaf towards the body's new extent, so the cost is proportional to
// the leaves crossed rather than to the size of the tree.
func (t *BinaryTree) Update(ball *Ball) {
	if ball.leftLeaf == nullNode {
		panic("physics: updating a ball that is not in the partition")
	}
	if t.settled(ball) {
		return
	}
	body := ball.body
	var touched []*Ball

	// left edge moved left
	for body.minX < t.nodes[ball.leftLeaf].bounds.MinX {
		if t.nodes[ball.leftLeaf].prev == nullNode {
			t.expandLeft()
		}
		ball.leftLeaf = t.nodes[ball.leftLeaf].prev
		touched = t.enter(ball, ball.leftLeaf, touched)
	}

	// right edge retreated left
	for ball.rightLeaf != ball.leftLeaf && body.maxX <= t.nodes[ball.rightLeaf].bounds.MinX {
		leaving := ball.rightLeaf
		ball.rightLeaf = t.nodes[leaving].prev
		touched = t.leave(ball, leaving, touched)
	}

	// right edge moved right
	for body.maxX > t.nodes[ball.rightLeaf].bounds.MaxX {
		if t.nodes[ball.rightLeaf].next == nullNode {
			t.expandRight()
		}
		ball.rightLeaf = t.nodes[ball.rightLeaf].next
		touched = t.enter(ball, ball.rightLeaf, touched)
	}

	// left edge advanced right
	for ball.leftLeaf != ball.rightLeaf && body.minX >= t.nodes[ball.leftLeaf].bounds.MaxX {
		leaving := ball.leftLeaf
		ball.leftLeaf = t.nodes[leaving].next
		touched = t.leave(ball, leaving, touched)
	}

	// zero-width body sitting on the right edge of its only leaf
	if body.minX >= t.nodes[ball.leftLeaf].bounds.MaxX {
		if t.nodes[ball.leftLeaf].next == nullNode {
			t.expandRight()
		}
		leaving := ball.leftLeaf
		ball.leftLeaf = t.nodes[leaving].next
		ball.rightLeaf = ball.leftLeaf
		touched = t.enter(ball, ball.leftLeaf, touched)
		touched = t.leave(ball, leaving, touched)
	}

	t.relink(ball, touched)
}

// settled reports whether the ball's span is exactly the one Add would
// compute for the body's current extent.
func (t *BinaryTree) settled(ball *Ball) bool {
	l := t.nodes[ball.leftLeaf].bounds
	r := t.nodes[ball.rightLeaf].bounds
	minX, maxX := ball.body.minX, ball.body.maxX
	return l.MinX <= minX && minX < l.MaxX &&
		maxX <= r.MaxX && (ball.leftLeaf == ball.rightLeaf || r.MinX < maxX)
}

// enter makes the ball a resident of leaf and collects the residents it
// may have to link with.
func (t *BinaryTree) enter(ball *Ball, leaf nodeID, touched []*Ball) []*Ball {
	touched = append(touched, t.nodes[leaf].balls...)
	t.nodes[leaf].balls = append(t.nodes[leaf].balls, ball)
	return touched
}

// leave removes the ball from leaf and collects the residents it may have
// to unlink from.
func (t *BinaryTree) leave(ball *Ball, leaf nodeID, touched []*Ball) []*Ball {
	t.nodes[leaf].balls = pop(t.nodes[leaf].balls, ball)
	return append(touched, t.nodes[leaf].balls...)
}

// relink makes the candidate link between ball and each of others match
// whether their leaf spans overlap. Every candidate change in the tree goes
// through here, so both sides of a pair are always updated together.
func (t *BinaryTree) relink(ball *Ball, others []*Ball) {
	for _, other := range others {
		if other == ball {
			continue
		}
		if t.sharesLeaf(ball, other) {
			ball.candidates = pushUnique(ball.candidates, other)
			other.candidates = pushUnique(other.candidates, ball)
		} else {
			ball.candidates = pop(ball.candidates, other)
			other.candidates = pop(other.candidates, ball)
		}
	}
}

// sharesLeaf compares leaf spans. Spans are contiguous, so overlapping
// bounds means at least one common leaf.
func (t *BinaryTree) sharesLeaf(a, b *Ball) bool {
	if a.leftLeaf == nullNode || b.leftLeaf == nullNode {
		return false
	}
	return t.nodes[a.leftLeaf].bounds.MinX < t.nodes[b.rightLeaf].bounds.MaxX &&
		t.nodes[b.leftLeaf].bounds.MinX < t.nodes[a.rightLeaf].bounds.MaxX
}

// findLeaf descends from the root using each child's bounds.
func (t *BinaryTree) findLeaf(x float32) nodeID {
	id := t.root
	for !t.nodes[id].leaf {
		n := &t.nodes[id]
		if x < t.nodes[n.left].bounds.MaxX {
			id = n.left
		} else {
			id = n.right
		}
	}
	return id
}

func (t *BinaryTree) expandRight() {
	old := t.root
	ob := t.nodes[old].bounds
	bounds := Interval{MinX: ob.MinX, MaxX: ob.MinX + 2*ob.Width()}

	root := t.newNode(bounds, nullNode, false)
	sibling := t.newNode(Interval{MinX: ob.MaxX, MaxX: bounds.MaxX}, root, false)
	t.nodes[old].parent = root
	t.nodes[root].left = old
	t.nodes[root].right = sibling
	t.root = root

	t.last = t.growRight(sibling, t.depth, t.last)
	t.depth++
	t.logExpand("right")
}

func (t *BinaryTree) expandLeft() {
	old := t.root
	ob := t.nodes[old].bounds
	bounds := Interval{MinX: ob.MaxX - 2*ob.Width(), MaxX: ob.MaxX}

	root := t.newNode(bounds, nullNode, false)
	sibling := t.newNode(Interval{MinX: bounds.MinX, MaxX: ob.MinX}, root, false)
	t.nodes[old].parent = root
	t.nodes[root].left = sibling
	t.nodes[root].right = old
	t.root = root

	t.first = t.growLeft(sibling, t.depth, t.first)
	t.depth++
	t.logExpand("left")
}

// growRight fills branch with a full subtree depth levels deep, chaining its
// leaves after prevLeaf. Returns the new rightmost leaf.
func (t *BinaryTree) growRight(branch nodeID, depth int, prevLeaf nodeID) nodeID {
	left, right := t.split(branch, depth == 1)
	if depth == 1 {
		t.link(prevLeaf, left)
		t.link(left, right)
		return right
	}
	last := t.growRight(left, depth-1, prevLeaf)
	return t.growRight(right, depth-1, last)
}

// growLeft mirrors growRight, chaining the new leaves before nextLeaf.
// Returns the new leftmost leaf.
func (t *BinaryTree) growLeft(branch nodeID, depth int, nextLeaf nodeID) nodeID {
	left, right := t.split(branch, depth == 1)
	if depth == 1 {
		t.link(right, nextLeaf)
		t.link(left, right)
		return left
	}
	first := t.growLeft(right, depth-1, nextLeaf)
	return t.growLeft(left, depth-1, first)
}

func (t *BinaryTree) split(branch nodeID, leaves bool) (nodeID, nodeID) {
	b := t.nodes[branch].bounds
	mid := (b.MinX + b.MaxX) / 2
	left := t.newNode(Interval{MinX: b.MinX, MaxX: mid}, branch, leaves)
	right := t.newNode(Interval{MinX: mid, MaxX: b.MaxX}, branch, leaves)
	t.nodes[branch].left = left
	t.nodes[branch].right = right
	return left, right
}

func (t *BinaryTree) newNode(bounds Interval, parent nodeID, leaf bool) nodeID {
	t.nodes = append(t.nodes, node{
		bounds: bounds,
		parent: parent,
		left:   nullNode,
		right:  nullNode,
		prev:   nullNode,
		next:   nullNode,
		leaf:   leaf,
	})
	return nodeID(len(t.nodes) - 1)
}

func (t *BinaryTree) link(a, b nodeID) {
	t.nodes[a].next = b
	t.nodes[b].prev = a
}

func (t *BinaryTree) logExpand(side string) {
	if t.logger == nil {
		return
	}
	b := t.nodes[t.root].bounds
	t.logger.Debug("partition expanded", "side", side, "minX", b.MinX, "maxX", b.MaxX, "depth", t.depth)
}
