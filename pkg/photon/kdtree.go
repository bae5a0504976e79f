package photon

import (
	"container/heap"
	"sort"

	"github.com/df07/go-photon-raytracer/pkg/core"
)

type kdNode struct {
	photon *Photon
	axis   int
	left   *kdNode
	right  *kdNode
}

// KDTree is a balanced 3-d tree over a fixed set of photons.
// It is immutable after construction and safe for concurrent queries.
type KDTree struct {
	root    *kdNode
	photons []Photon
}

// BuildKDTree copies photons and builds a tree over the copy, splitting at the
// median on axis depth mod 3.
func BuildKDTree(photons []Photon) *KDTree {
	tree := &KDTree{photons: make([]Photon, len(photons))}
	copy(tree.photons, photons)

	refs := make([]*Photon, len(tree.photons))
	for i := range tree.photons {
		refs[i] = &tree.photons[i]
	}
	tree.root = buildKDNode(refs, 0)
	return tree
}

func buildKDNode(refs []*Photon, depth int) *kdNode {
	if len(refs) == 0 {
		return nil
	}

	axis := depth % 3
	mid := len(refs) / 2
	core.SelectNth(refs, mid, func(p *Photon) float64 { return p.Position.Axis(axis) })

	return &kdNode{
		photon: refs[mid],
		axis:   axis,
		left:   buildKDNode(refs[:mid], depth+1),
		right:  buildKDNode(refs[mid+1:], depth+1),
	}
}

// Len returns the number of stored photons
func (t *KDTree) Len() int {
	if t == nil {
		return 0
	}
	return len(t.photons)
}

// Empty reports whether the tree holds no photons
func (t *KDTree) Empty() bool {
	return t.Len() == 0
}

// interactionHeap is a max-heap on DistSq, the root is the worst kept photon
type interactionHeap []Interaction

func (h interactionHeap) Len() int            { return len(h) }
func (h interactionHeap) Less(i, j int) bool  { return h[i].DistSq > h[j].DistSq }
func (h interactionHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *interactionHeap) Push(x interface{}) { *h = append(*h, x.(Interaction)) }
func (h *interactionHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

type nearestQuery struct {
	point     core.Vec3
	maxDistSq float64
	k         int
	found     interactionHeap
}

// worst is the squared distance a photon must beat to be kept
func (q *nearestQuery) worst() float64 {
	if len(q.found) < q.k {
		return q.maxDistSq
	}
	return q.found[0].DistSq
}

func (q *nearestQuery) offer(p *Photon) {
	distSq := p.Position.Subtract(q.point).LengthSquared()
	if distSq >= q.maxDistSq {
		return
	}
	if len(q.found) < q.k {
		heap.Push(&q.found, Interaction{Photon: p, DistSq: distSq})
		return
	}
	if distSq < q.found[0].DistSq {
		q.found[0] = Interaction{Photon: p, DistSq: distSq}
		heap.Fix(&q.found, 0)
	}
}

func (q *nearestQuery) search(node *kdNode) {
	if node == nil {
		return
	}

	axisDist := q.point.Axis(node.axis) - node.photon.Position.Axis(node.axis)
	near, far := node.left, node.right
	if axisDist > 0 {
		near, far = node.right, node.left
	}

	q.search(near)
	q.offer(node.photon)
	if axisDist*axisDist < q.worst() {
		q.search(far)
	}
}

// FindNearest returns up to k photons strictly within maxDistSq of point,
// sorted by ascending distance.
func (t *KDTree) FindNearest(point core.Vec3, maxDistSq float64, k int) []Interaction {
	if t.Empty() || k <= 0 || maxDistSq <= 0 {
		return nil
	}

	q := &nearestQuery{
		point:     point,
		maxDistSq: maxDistSq,
		k:         k,
		found:     make(interactionHeap, 0, k),
	}
	q.search(t.root)

	result := []Interaction(q.found)
	sort.Slice(result, func(i, j int) bool {
		return result[i].DistSq < result[j].DistSq
	})
	return result
}
