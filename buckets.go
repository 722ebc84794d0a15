package maxflow

import "github.com/brackenfield/maxflow/graph"

// bucketSet holds the per-height active/inactive node buckets the
// highest-label rule discharges from. Membership uses a swap-and-pop
// vector with each node caching its position in whichever bucket it
// currently occupies (design note in spec.md §9: this maps cleanly onto
// the arena+index residual store and gives O(1) removal, unlike the
// reference implementation's linked-list-plus-scan).
type bucketSet struct {
	active   [][]graph.NodeID
	inactive [][]graph.NodeID
	pos      []int  // index of a node within whichever bucket currently holds it
	isActive []bool // which of active/inactive that bucket is
}

func newBucketSet(n int) *bucketSet {
	return &bucketSet{
		active:   make([][]graph.NodeID, n),
		inactive: make([][]graph.NodeID, n),
		pos:      make([]int, n),
		isActive: make([]bool, n),
	}
}

func (b *bucketSet) insertActive(v graph.NodeID, h int) {
	b.pos[v] = len(b.active[h])
	b.active[h] = append(b.active[h], v)
	b.isActive[v] = true
}

func (b *bucketSet) insertInactive(v graph.NodeID, h int) {
	b.pos[v] = len(b.inactive[h])
	b.inactive[h] = append(b.inactive[h], v)
	b.isActive[v] = false
}

// remove removes v from whichever bucket it currently occupies at height h.
func (b *bucketSet) remove(v graph.NodeID, h int) {
	var bucket []graph.NodeID
	if b.isActive[v] {
		bucket = b.active[h]
	} else {
		bucket = b.inactive[h]
	}
	last := len(bucket) - 1
	p := b.pos[v]
	bucket[p] = bucket[last]
	b.pos[bucket[p]] = p
	bucket = bucket[:last]
	if b.isActive[v] {
		b.active[h] = bucket
	} else {
		b.inactive[h] = bucket
	}
}

// activate moves v from inactive[h] to active[h].
func (b *bucketSet) activate(v graph.NodeID, h int) {
	b.remove(v, h)
	b.insertActive(v, h)
}

func (b *bucketSet) activeEmpty(h int) bool {
	return len(b.active[h]) == 0
}

// isEmpty reports whether height h has no occupants in either bucket.
func (b *bucketSet) isEmpty(h int) bool {
	return len(b.active[h]) == 0 && len(b.inactive[h]) == 0
}

// popActiveTail removes and returns the tail (LIFO) element of active[h].
func (b *bucketSet) popActiveTail(h int) graph.NodeID {
	bucket := b.active[h]
	last := len(bucket) - 1
	v := bucket[last]
	b.active[h] = bucket[:last]
	return v
}

// clear empties both buckets at height h, as done by the gap heuristic.
func (b *bucketSet) clear(h int) {
	b.active[h] = nil
	b.inactive[h] = nil
}

// rebuild discards all bucket contents, as done before a global relabeling
// BFS repopulates them from scratch.
func (b *bucketSet) rebuild(n int) {
	b.active = make([][]graph.NodeID, n)
	b.inactive = make([][]graph.NodeID, n)
	b.pos = make([]int, n)
	b.isActive = make([]bool, n)
}
