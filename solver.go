package maxflow

import (
	"math"

	"github.com/brackenfield/maxflow/graph"
)

// Partition is the result of MinCut: the node names on the source side
// (S) and the sink side (T) of a minimum cut. s is always in S, t is
// always in T, and every node name appears in exactly one of the two.
type Partition struct {
	S []int
	T []int
}

// Solver runs the push-relabel maximum-preflow algorithm over a
// [graph.Store]. A Solver owns its transient per-run state (heights,
// excesses, current-edge cursors, bucket membership) exclusively for the
// duration of a MaxPreflow/MinCut call; it holds no goroutines and
// performs no concurrent access to the underlying store.
type Solver[F graph.Number] struct {
	store  *graph.Store[F]
	source graph.NodeID
	sink   graph.NodeID
	n      int

	height  []int
	excess  []F
	curEdge []int
	buckets *bucketSet

	tol                    F
	maxHeight              int
	globalRelabelThreshold int
	globalRelabelCounter   int

	ranMaxPreflow bool
	flowValue     F
}

// NewSolver constructs a Solver for the given store, naming the source and
// sink nodes by their external names. Both names must already exist in the
// store, and must be distinct.
func NewSolver[F graph.Number](store *graph.Store[F], sourceName, sinkName int) (*Solver[F], error) {
	src, ok := store.NodeByName(sourceName)
	if !ok {
		return nil, unknownNodeError(sourceName)
	}
	snk, ok := store.NodeByName(sinkName)
	if !ok {
		return nil, unknownNodeError(sinkName)
	}
	if src == snk {
		return nil, ParameterError{Reason: "source and sink must be distinct nodes"}
	}
	return &Solver[F]{store: store, source: src, sink: snk}, nil
}

func (s *Solver[F]) isInner(v graph.NodeID) bool {
	return v != s.source && v != s.sink
}

// MaxPreflow computes the maximum flow from source to sink using the
// highest-label push-relabel algorithm, returning the flow value. A
// globalRelabelFrequency of 0 disables the global relabeling heuristic;
// otherwise the heuristic fires every (N+M)/globalRelabelFrequency units
// of relabel work. tol is the non-negative tolerance used for all
// positivity/zero comparisons on flow-type values; pass 0 for integer flow
// types. Two back-to-back calls on the same, unmutated store yield the
// same flow value.
func (s *Solver[F]) MaxPreflow(globalRelabelFrequency uint, tol F) (F, error) {
	if tol < 0 {
		return graph.Zero[F](), ParameterError{Reason: "tol must be non-negative"}
	}
	s.tol = tol
	n := s.store.Len()
	m := s.store.EdgeCount()
	s.n = n

	if globalRelabelFrequency == 0 {
		s.globalRelabelThreshold = math.MaxInt
	} else {
		s.globalRelabelThreshold = (n + m) / int(globalRelabelFrequency)
	}
	s.globalRelabelCounter = 0

	s.height = make([]int, n)
	s.excess = make([]F, n)
	s.curEdge = make([]int, n)
	s.buckets = newBucketSet(n)
	s.maxHeight = 0

	for v := graph.NodeID(0); v < graph.NodeID(n); v++ {
		switch v {
		case s.source:
			s.height[v] = n
		case s.sink:
			s.height[v] = 0
		default:
			s.height[v] = 1
		}
		if s.height[v] < n {
			s.buckets.insertInactive(v, s.height[v])
		}
	}

	for v := graph.NodeID(0); v < graph.NodeID(n); v++ {
		edges := s.store.OutEdges(v)
		for k := range edges {
			edges[k].Flow = graph.Zero[F]()
		}
	}

	// Saturating push from source: every out-edge with positive residual
	// is pushed to its full residual capacity.
	for k, e := range s.store.OutEdges(s.source) {
		r := e.Residual()
		if r > tol {
			s.push(graph.EdgeRef{Node: s.source, Pos: k}, r)
		}
	}

	for {
		if s.globalRelabelCounter > s.globalRelabelThreshold {
			s.globalRelabeling()
			s.globalRelabelCounter = 0
		}
		for s.maxHeight >= 0 && s.buckets.activeEmpty(s.maxHeight) {
			s.maxHeight--
		}
		if s.maxHeight < 0 {
			break
		}
		v := s.buckets.popActiveTail(s.maxHeight)
		s.discharge(v)
	}
	// Undo inflow at inner nodes left with excess, returning it to the source.
	for moved := true; moved; {
		moved = false
		for v := graph.NodeID(0); v < graph.NodeID(n); v++ {
			for k, e := range s.store.OutEdges(v) {
				if s.isInner(v) && s.excess[v] > tol && e.Flow < 0 {
					d := minFlow(s.excess[v], -e.Flow)
					s.store.Edge(graph.EdgeRef{Node: v, Pos: k}).Flow += d
					s.store.ReverseEdge(e).Flow -= d
					s.excess[v], s.excess[e.Dst] = s.excess[v]-d, s.excess[e.Dst]+d
					moved = true
				}
			}
		}
	}

	s.ranMaxPreflow = true
	s.flowValue = s.excess[s.sink]
	return s.flowValue, nil
}

// push moves amount units of flow across the edge located at ref,
// updating its reverse edge and the excess at both endpoints. If the
// destination is an inner node that was inactive (excess <= tol) before
// the push, it is activated.
func (s *Solver[F]) push(ref graph.EdgeRef, amount F) {
	e := s.store.Edge(ref)
	e.Flow += amount
	rev := s.store.ReverseEdge(*e)
	rev.Flow -= amount

	src, dst := e.Src, e.Dst
	s.excess[src] -= amount

	wasInactive := s.isInner(dst) && !(s.excess[dst] > s.tol)
	if wasInactive {
		s.buckets.activate(dst, s.height[dst])
		if s.height[dst] > s.maxHeight {
			s.maxHeight = s.height[dst]
		}
	}
	s.excess[dst] += amount
}

// discharge pushes as much excess from v to its admissible neighbors as
// possible, relabeling v whenever its current-edge cursor runs off the
// end of its out-edge list without finding an admissible push.
func (s *Solver[F]) discharge(v graph.NodeID) {
	for {
		k := s.curEdge[v]
		edges := s.store.OutEdges(v)
		e := edges[k]
		r := e.Residual()
		if r > s.tol && s.height[e.Dst] < s.height[v] {
			delta := minFlow(s.excess[v], r)
			s.push(graph.EdgeRef{Node: v, Pos: k}, delta)
			if !(s.excess[v] > s.tol) {
				break
			}
		}
		if k == len(edges)-1 {
			if !s.relabel(v) {
				break
			}
		} else {
			s.curEdge[v] = k + 1
		}
	}
	if s.height[v] < s.n {
		if s.excess[v] > s.tol {
			s.buckets.insertActive(v, s.height[v])
			if s.height[v] > s.maxHeight {
				s.maxHeight = s.height[v]
			}
		} else {
			s.buckets.insertInactive(v, s.height[v])
		}
	}
}

// relabel raises v's height to one more than the minimum height among
// neighbors reachable via a positive-residual out-edge, resuming the
// current-edge cursor at that edge. If no other node occupies v's old
// height, the gap heuristic fires instead and v is excluded (height := n).
// The return value reports whether v remains eligible for discharge
// (height < n).
func (s *Solver[F]) relabel(v graph.NodeID) bool {
	n := s.n
	s.globalRelabelCounter += n

	h := s.height[v]
	if s.buckets.isEmpty(h) {
		s.gapHeuristic(h)
		s.height[v] = n
		return false
	}

	minHeight := 2 * n
	minEdgeIdx := 0
	edges := s.store.OutEdges(v)
	for i, e := range edges {
		if e.Residual() > s.tol && s.height[e.Dst] < minHeight {
			minHeight = s.height[e.Dst]
			minEdgeIdx = i
		}
	}
	s.curEdge[v] = minEdgeIdx
	s.height[v] = minHeight + 1
	return s.height[v] < n
}

// gapHeuristic excludes every node at a height from h up to and including
// the current maxHeight from further discharge: once no node occupies height
// h, those above it are provably disconnected from the sink.
func (s *Solver[F]) gapHeuristic(h int) {
	n := s.n
	for hh := h; hh <= s.maxHeight; hh++ {
		for _, v := range s.buckets.active[hh] {
			s.height[v] = n
		}
		for _, v := range s.buckets.inactive[hh] {
			s.height[v] = n
		}
		s.buckets.clear(hh)
	}
	s.maxHeight = h - 1
}

// globalRelabeling recomputes every inner node's height as its exact BFS
// distance from the sink in the residual graph, and rebuilds the buckets
// from scratch. It traverses a forward edge e from the BFS frontier node u
// to dst(e) whenever reverse(e) has positive residual capacity, since that
// is precisely the condition for a residual edge dst(e) -> u to exist.
func (s *Solver[F]) globalRelabeling() {
	n := s.n
	s.buckets.rebuild(n)
	s.maxHeight = 0

	visited := make([]bool, n)
	queue := make([]graph.NodeID, 0, n)
	queue = append(queue, s.sink)
	visited[s.sink] = true

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		nextHeight := s.height[u] + 1
		for _, e := range s.store.OutEdges(u) {
			rev := s.store.ReverseEdge(e)
			if rev.Residual() <= s.tol {
				continue
			}
			next := e.Dst
			if visited[next] {
				continue
			}
			visited[next] = true
			s.height[next] = nextHeight
			if s.isInner(next) {
				if s.excess[next] > s.tol {
					s.buckets.insertActive(next, nextHeight)
					if nextHeight > s.maxHeight {
						s.maxHeight = nextHeight
					}
				} else {
					s.buckets.insertInactive(next, nextHeight)
				}
			}
			queue = append(queue, next)
		}
	}

	for v := graph.NodeID(0); v < graph.NodeID(n); v++ {
		if !s.isInner(v) {
			continue
		}
		s.curEdge[v] = 0
		if !visited[v] {
			s.height[v] = n
		}
	}
}

// MinCut runs the sink-reachability BFS over the residual graph (the same
// traversal global relabeling uses) and returns the flow value computed
// by the preceding MaxPreflow call together with the resulting (S, T)
// partition of node names. It fails if MaxPreflow has not yet been run.
func (s *Solver[F]) MinCut() (F, Partition, error) {
	if !s.ranMaxPreflow {
		return graph.Zero[F](), Partition{}, ErrOrdering
	}
	n := s.n
	reachable := make([]bool, n)
	queue := make([]graph.NodeID, 0, n)
	queue = append(queue, s.sink)
	reachable[s.sink] = true

	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, e := range s.store.OutEdges(u) {
			rev := s.store.ReverseEdge(e)
			if rev.Residual() <= s.tol {
				continue
			}
			if reachable[e.Dst] {
				continue
			}
			reachable[e.Dst] = true
			queue = append(queue, e.Dst)
		}
	}

	var part Partition
	for v := graph.NodeID(0); v < graph.NodeID(n); v++ {
		name := s.store.NodeName(v)
		if reachable[v] {
			part.T = append(part.T, name)
		} else {
			part.S = append(part.S, name)
		}
	}
	return s.flowValue, part, nil
}

func minFlow[F graph.Number](a, b F) F {
	if a < b {
		return a
	}
	return b
}
