package maxflow

import (
	"fmt"

	"github.com/brackenfield/maxflow/graph"
)

// Validate runs the same consistency checks flownet's SanityCheckers ran
// against a FlowNetwork, adapted to the residual-store/Solver data model:
// capacity is respected on every original edge, flow is conserved at every
// node but source and sink, and no augmenting path remains in the residual
// graph. It requires MaxPreflow to have already been run, and returns the
// first violation found, or nil if the preflow is a valid maximum flow.
func (s *Solver[F]) Validate() error {
	if !s.ranMaxPreflow {
		return ErrOrdering
	}
	if err := s.checkCapacityAndConservation(); err != nil {
		return err
	}
	return s.checkNoAugmentingPath()
}

func (s *Solver[F]) checkCapacityAndConservation() error {
	netFlow := make([]F, s.n)
	for _, ref := range s.store.ForwardEdges() {
		e := s.store.Edge(ref)
		if e.Flow > e.Capacity+s.tol {
			return fmt.Errorf("maxflow: capacity %v exceeded by flow %v on edge %d->%d",
				e.Capacity, e.Flow, s.store.NodeName(e.Src), s.store.NodeName(e.Dst))
		}
		if e.Flow < -s.tol {
			return fmt.Errorf("maxflow: negative flow %v on edge %d->%d",
				e.Flow, s.store.NodeName(e.Src), s.store.NodeName(e.Dst))
		}
		netFlow[e.Src] -= e.Flow
		netFlow[e.Dst] += e.Flow
	}
	for v := graph.NodeID(0); v < graph.NodeID(s.n); v++ {
		if !s.isInner(v) {
			continue
		}
		if graph.Abs(netFlow[v]) > s.tol {
			return fmt.Errorf("maxflow: node %d does not have inflow equal to outflow (net %v)",
				s.store.NodeName(v), netFlow[v])
		}
	}
	return nil
}

// checkNoAugmentingPath runs a plain BFS from source to sink over the
// residual graph; finding the sink means flow is not maximum.
func (s *Solver[F]) checkNoAugmentingPath() error {
	visited := make([]bool, s.n)
	queue := []graph.NodeID{s.source}
	visited[s.source] = true
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if u == s.sink {
			return fmt.Errorf("maxflow: found an augmenting path from source to sink; flow is not maximum")
		}
		for _, e := range s.store.OutEdges(u) {
			if visited[e.Dst] || e.Residual() <= s.tol {
				continue
			}
			visited[e.Dst] = true
			queue = append(queue, e.Dst)
		}
	}
	return nil
}
