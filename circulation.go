package maxflow

import (
	"fmt"
	"math"

	"github.com/brackenfield/maxflow/graph"
)

// Node names reserved for the circulation reduction's virtual source and
// sink, chosen far outside any plausible user-supplied node name, in the
// same spirit as flownet's own reserved Source/Sink sentinel node IDs.
const (
	circulationSourceName = math.MinInt + 1
	circulationSinkName   = math.MinInt + 2
)

// Circulation reduces a feasible-flow problem with per-edge lower bounds
// and per-node supply/demand to an ordinary max-flow problem: an edge
// (u, v, capacity, demand) is split into a reduced-capacity edge carrying
// (capacity - demand), plus demand units of flow forced along it and
// tracked out of band; a node with demand > 0 must retain that much net
// inflow, a node with demand < 0 supplies that much net outflow. Both
// translate into edges to or from a virtual source/sink, following the
// standard lower-bound-to-max-flow construction flownet's own Circulation
// and Transshipment types use (there realized via reserved Source/Sink
// node IDs rather than a second, nested reduction).
type Circulation[F graph.Number] struct {
	store      *graph.Store[F]
	edgeDemand map[[2]int]F
	nodeDemand map[int]F
	hasVirtual bool
	target     F
	solver     *Solver[F]
}

// NewCirculation constructs an empty Circulation.
func NewCirculation[F graph.Number]() *Circulation[F] {
	return &Circulation[F]{
		store:      graph.NewStore[F](),
		edgeDemand: make(map[[2]int]F),
		nodeDemand: make(map[int]F),
	}
}

// SetNodeDemand records a supply (demand < 0) or requirement (demand > 0)
// at the node named name. A feasible circulation must cover every
// positive node demand and absorb every negative one (supply).
func (c *Circulation[F]) SetNodeDemand(name int, demand F) error {
	if name == circulationSourceName || name == circulationSinkName {
		return ParameterError{Reason: "node name collides with the reserved virtual source/sink"}
	}
	c.nodeDemand[name] = demand
	return nil
}

// AddEdge adds an edge from u to v with the given capacity and minimum
// required flow (demand); capacity must be at least demand.
func (c *Circulation[F]) AddEdge(u, v int, capacity, demand F) error {
	if capacity < demand {
		return ParameterError{Reason: fmt.Sprintf("capacity %v is smaller than demand %v on edge (%d, %d)", capacity, demand, u, v)}
	}
	if demand != graph.Zero[F]() {
		c.edgeDemand[[2]int{u, v}] = demand
	}
	uid := c.store.AddNode(u)
	vid := c.store.AddNode(v)
	_, err := c.store.AddEdgePair(uid, vid, capacity-demand)
	return err
}

// Solve computes a feasible circulation, if one exists, via the
// push-relabel algorithm over the reduced max-flow instance. It returns
// whether the circulation is feasible; Flow only reports meaningful
// values once Solve has returned true.
func (c *Circulation[F]) Solve(globalRelabelFrequency uint, tol F) (bool, error) {
	excess := make(map[int]F)
	for key, d := range c.edgeDemand {
		excess[key[1]] += d
		excess[key[0]] -= d
	}
	for name, nd := range c.nodeDemand {
		excess[name] -= nd
	}

	c.target = graph.Zero[F]()
	for name, e := range excess {
		switch {
		case e > tol:
			uid := c.store.AddNode(circulationSourceName)
			vid := c.store.AddNode(name)
			if _, err := c.store.AddEdgePair(uid, vid, e); err != nil {
				return false, err
			}
			c.hasVirtual = true
			c.target += e
		case e < -tol:
			uid := c.store.AddNode(name)
			vid := c.store.AddNode(circulationSinkName)
			if _, err := c.store.AddEdgePair(uid, vid, -e); err != nil {
				return false, err
			}
			c.hasVirtual = true
		}
	}

	if !c.hasVirtual {
		// No node ever needed forced net flow: every edge demand and node
		// demand cancels out, so the zero flow is trivially feasible.
		return true, nil
	}

	solver, err := NewSolver[F](c.store, circulationSourceName, circulationSinkName)
	if err != nil {
		return false, err
	}
	flow, err := solver.MaxPreflow(globalRelabelFrequency, tol)
	if err != nil {
		return false, err
	}
	c.solver = solver
	return !(flow < c.target-tol), nil
}

// Flow returns the flow achieved along edge (u, v) after a successful
// Solve: the reduced edge's flow plus whatever demand was forced along it.
func (c *Circulation[F]) Flow(u, v int) (F, error) {
	uid, ok := c.store.NodeByName(u)
	if !ok {
		return graph.Zero[F](), unknownNodeError(u)
	}
	vid, ok := c.store.NodeByName(v)
	if !ok {
		return graph.Zero[F](), unknownNodeError(v)
	}
	ref, ok := c.store.EdgeBetween(uid, vid)
	if !ok {
		return graph.Zero[F](), ParameterError{Reason: fmt.Sprintf("no edge from %d to %d", u, v)}
	}
	return c.store.Edge(ref).Flow + c.edgeDemand[[2]int{u, v}], nil
}

// Validate runs the reduced max-flow instance's consistency checks; it
// requires a prior call to Solve.
func (c *Circulation[F]) Validate() error {
	if c.solver == nil {
		return ErrOrdering
	}
	return c.solver.Validate()
}
