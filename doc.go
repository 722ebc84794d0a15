// Package maxflow computes maximum s-t flow and minimum s-t cut on
// directed, capacitated graphs using the highest-label push-relabel
// algorithm with the gap heuristic and periodic global relabeling.
//
// A caller builds a [github.com/brackenfield/maxflow/graph.Store] from
// (u, v, capacity) triples, constructs a [Solver] naming the source and
// sink nodes, calls [Solver.MaxPreflow] to compute the flow value, and
// then [Solver.MinCut] to recover the partition of nodes on either side
// of a minimum cut.
package maxflow
