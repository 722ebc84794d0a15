package maxflow_test

import (
	"fmt"

	"github.com/brackenfield/maxflow"
	"github.com/brackenfield/maxflow/graph"
)

// Demonstrates how to use a Store and Solver to compute max-flow.
func ExampleSolver_MaxPreflow() {
	type edge struct {
		source, target int
		capacity       int64
	}
	edges := []edge{
		{0, 1, 15}, {0, 2, 4}, {1, 3, 12}, {3, 2, 3}, {2, 4, 10},
		{4, 1, 5}, {4, 5, 10}, {3, 5, 7},
	}

	store := graph.NewStore[int64]()
	var triples []graph.Triple[int64]
	for _, e := range edges {
		triples = append(triples, graph.Triple[int64]{From: e.source, To: e.target, Capacity: e.capacity})
	}
	if err := store.FromTriples(triples, true); err != nil {
		panic(err)
	}

	solver, err := maxflow.NewSolver[int64](store, 0, 5)
	if err != nil {
		panic(err)
	}

	flow, err := solver.MaxPreflow(4, 0) // global relabel every (n+m)/4 relabel units
	if err != nil {
		panic(err)
	}

	fmt.Printf("found max flow of %d\n", flow)

	cutValue, partition, err := solver.MinCut()
	if err != nil {
		panic(err)
	}
	fmt.Printf("min cut has capacity %d, source side has %d nodes\n", cutValue, len(partition.S))
	// Output:
	// found max flow of 14
	// min cut has capacity 14, source side has 3 nodes
}

// Demonstrates how to use a Circulation to set lower bounds on edges.
func ExampleCirculation_Solve() {
	c := maxflow.NewCirculation[int64]()
	type edge struct {
		source, target   int
		capacity, demand int64
	}
	edges := []edge{
		{0, 1, 15, 0}, {0, 2, 4, 0}, {1, 3, 12, 0}, {3, 2, 3, 0}, {2, 4, 10, 0},
		{4, 1, 5, 4}, {4, 5, 10, 0}, {3, 5, 7, 0},
	}
	for _, e := range edges {
		if err := c.AddEdge(e.source, e.target, e.capacity, e.demand); err != nil {
			panic(err)
		}
	}
	if err := c.SetNodeDemand(0, -4); err != nil {
		panic(err)
	}
	if err := c.SetNodeDemand(5, 4); err != nil {
		panic(err)
	}

	feasible, err := c.Solve(0, 0)
	if err != nil {
		panic(err)
	}
	fmt.Printf("demand satisfied: %t\n", feasible)
	// Output:
	// demand satisfied: true
}
