package geometry

import (
	"fmt"
	"math"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

// SplitStrategy selects how interior BVH nodes divide their primitives
type SplitStrategy int

const (
	// SplitMedian splits at the median primitive center on the longest axis
	SplitMedian SplitStrategy = iota
	// SplitSAH uses a binned surface area heuristic
	SplitSAH
)

func (s SplitStrategy) String() string {
	if s == SplitSAH {
		return "sah"
	}
	return "median"
}

// ParseSplit maps a strategy name to its value
func ParseSplit(name string) (SplitStrategy, error) {
	switch name {
	case "", "median":
		return SplitMedian, nil
	case "sah":
		return SplitSAH, nil
	}
	return SplitMedian, fmt.Errorf("unknown BVH split strategy %q", name)
}

const (
	defaultLeafSize = 4
	defaultMaxDepth = 64
	sahBins         = 12
)

// BVHOption configures BVH construction
type BVHOption func(*bvhConfig)

type bvhConfig struct {
	leafSize int
	maxDepth int
	split    SplitStrategy
}

// WithLeafSize sets the largest primitive count stored in a leaf
func WithLeafSize(n int) BVHOption {
	return func(c *bvhConfig) {
		if n > 0 {
			c.leafSize = n
		}
	}
}

// WithMaxDepth caps the tree depth; deeper ranges become leaves
func WithMaxDepth(depth int) BVHOption {
	return func(c *bvhConfig) {
		if depth > 0 {
			c.maxDepth = depth
		}
	}
}

// WithSplit selects the split strategy
func WithSplit(split SplitStrategy) BVHOption {
	return func(c *bvhConfig) { c.split = split }
}

// BVHNode represents a node in the Bounding Volume Hierarchy
type BVHNode struct {
	BoundingBox core.AABB
	Left        *BVHNode
	Right       *BVHNode
	Primitives  []core.Primitive // Primitives for leaf nodes (nil for internal nodes)
}

// IsLeaf reports whether the node stores primitives directly
func (n *BVHNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BVH represents a Bounding Volume Hierarchy for fast ray-object intersection.
// It is immutable after construction and safe for concurrent queries.
type BVH struct {
	Root   *BVHNode
	config bvhConfig
	count  int
}

// NewBVH constructs a BVH over primitives. The input slice is not modified.
func NewBVH(primitives []core.Primitive, opts ...BVHOption) *BVH {
	config := bvhConfig{leafSize: defaultLeafSize, maxDepth: defaultMaxDepth, split: SplitMedian}
	for _, opt := range opts {
		opt(&config)
	}

	bvh := &BVH{config: config, count: len(primitives)}
	if len(primitives) == 0 {
		return bvh
	}

	// Work on a copy, the build reorders it
	items := make([]core.Primitive, len(primitives))
	copy(items, primitives)
	bvh.Root = bvh.build(items, 0)
	return bvh
}

func (bvh *BVH) build(primitives []core.Primitive, depth int) *BVHNode {
	box := core.EmptyAABB()
	for _, p := range primitives {
		box = box.Union(p.BoundingBox())
	}

	if len(primitives) <= bvh.config.leafSize || depth >= bvh.config.maxDepth {
		return &BVHNode{BoundingBox: box, Primitives: primitives}
	}

	var mid int
	if bvh.config.split == SplitSAH {
		mid = splitSAH(primitives)
	}
	if mid <= 0 || mid >= len(primitives) {
		mid = splitMedian(primitives, box.LongestAxis())
	}

	return &BVHNode{
		BoundingBox: box,
		Left:        bvh.build(primitives[:mid], depth+1),
		Right:       bvh.build(primitives[mid:], depth+1),
	}
}

func centerOnAxis(axis int) func(core.Primitive) float64 {
	return func(p core.Primitive) float64 {
		return p.BoundingBox().Center().Axis(axis)
	}
}

// splitMedian reorders primitives around the median center on axis and returns the split index
func splitMedian(primitives []core.Primitive, axis int) int {
	mid := len(primitives) / 2
	core.SelectNth(primitives, mid, centerOnAxis(axis))
	return mid
}

// splitSAH bins primitive centers along the axis of largest centroid spread and
// partitions at the cheapest bin boundary. It returns 0 when no useful split exists.
func splitSAH(primitives []core.Primitive) int {
	centroids := core.EmptyAABB()
	for _, p := range primitives {
		centroids = centroids.UnionPoint(p.BoundingBox().Center())
	}
	axis := centroids.LongestAxis()
	lo := centroids.Min.Axis(axis)
	extent := centroids.Max.Axis(axis) - lo
	if extent <= 0 {
		return 0
	}

	binOf := func(p core.Primitive) int {
		b := int(sahBins * (p.BoundingBox().Center().Axis(axis) - lo) / extent)
		if b >= sahBins {
			b = sahBins - 1
		}
		return b
	}

	var counts [sahBins]int
	var boxes [sahBins]core.AABB
	for i := range boxes {
		boxes[i] = core.EmptyAABB()
	}
	for _, p := range primitives {
		b := binOf(p)
		counts[b]++
		boxes[b] = boxes[b].Union(p.BoundingBox())
	}

	// Sweep from the right to get suffix areas, then from the left to evaluate each plane
	var rightArea [sahBins]float64
	var rightCount [sahBins]int
	acc := core.EmptyAABB()
	n := 0
	for i := sahBins - 1; i > 0; i-- {
		acc = acc.Union(boxes[i])
		n += counts[i]
		rightArea[i] = acc.SurfaceArea()
		rightCount[i] = n
	}

	bestCost := math.Inf(1)
	bestPlane := -1
	acc = core.EmptyAABB()
	n = 0
	for i := 0; i < sahBins-1; i++ {
		acc = acc.Union(boxes[i])
		n += counts[i]
		if n == 0 || rightCount[i+1] == 0 {
			continue
		}
		cost := acc.SurfaceArea()*float64(n) + rightArea[i+1]*float64(rightCount[i+1])
		if cost < bestCost {
			bestCost = cost
			bestPlane = i
		}
	}
	if bestPlane < 0 {
		return 0
	}

	// Partition in place: bins <= bestPlane go left
	store := 0
	for i := range primitives {
		if binOf(primitives[i]) <= bestPlane {
			primitives[i], primitives[store] = primitives[store], primitives[i]
			store++
		}
	}
	return store
}

// Intersect returns the closest hit with t in (Epsilon, +Inf), or NoHit
func (bvh *BVH) Intersect(ray core.Ray) core.Hit {
	best := core.NoHit()
	if bvh.Root == nil {
		return best
	}
	bvh.intersectNode(bvh.Root, ray, &best)
	return best
}

// intersectNode searches node depth-first, tightening best.T as hits are found
func (bvh *BVH) intersectNode(node *BVHNode, ray core.Ray, best *core.Hit) {
	if !node.BoundingBox.Hit(ray, core.Epsilon, best.T) {
		return
	}

	if node.IsLeaf() {
		for _, p := range node.Primitives {
			if hit := p.Intersect(ray); hit.Ok() && hit.T > core.Epsilon && hit.T < best.T {
				*best = hit
			}
		}
		return
	}

	// Visit the child whose box the ray enters first
	first, second := node.Left, node.Right
	tLeft, okLeft := first.BoundingBox.Entry(ray, core.Epsilon, best.T)
	tRight, okRight := second.BoundingBox.Entry(ray, core.Epsilon, best.T)
	switch {
	case !okLeft && !okRight:
		return
	case !okLeft:
		first, second = second, nil
	case !okRight:
		second = nil
	case tRight < tLeft:
		first, second = second, first
	}

	bvh.intersectNode(first, ray, best)
	if second != nil {
		bvh.intersectNode(second, ray, best)
	}
}

// Bounds returns the overall bounding box, EmptyAABB for an empty hierarchy
func (bvh *BVH) Bounds() core.AABB {
	if bvh.Root == nil {
		return core.EmptyAABB()
	}
	return bvh.Root.BoundingBox
}

// Len returns the number of primitives in the hierarchy
func (bvh *BVH) Len() int {
	return bvh.count
}

// BVHStats contains statistics about the BVH structure
type BVHStats struct {
	Nodes        int
	Leaves       int
	MaxDepth     int
	AvgLeafDepth float64
	Primitives   int
	Split        SplitStrategy
}

// Stats walks the tree and returns its shape
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{Split: bvh.config.split}
	if bvh.Root == nil {
		return stats
	}

	depthSum := 0
	var walk func(node *BVHNode, depth int)
	walk = func(node *BVHNode, depth int) {
		stats.Nodes++
		if depth > stats.MaxDepth {
			stats.MaxDepth = depth
		}
		if node.IsLeaf() {
			stats.Leaves++
			stats.Primitives += len(node.Primitives)
			depthSum += depth
			return
		}
		walk(node.Left, depth+1)
		walk(node.Right, depth+1)
	}
	walk(bvh.Root, 0)

	if stats.Leaves > 0 {
		stats.AvgLeafDepth = float64(depthSum) / float64(stats.Leaves)
	}
	return stats
}
