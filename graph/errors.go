package graph

import "fmt"

// CapacityError is returned when an edge is given a negative capacity.
type CapacityError[F Number] struct {
	Capacity F
}

func (e CapacityError[F]) Error() string {
	return fmt.Sprintf("graph: negative capacity %v", e.Capacity)
}

// InputShapeError describes a malformed input triple. No function in this
// package currently returns it: FromTriples reports a negative capacity as
// a CapacityError.
type InputShapeError struct {
	Reason string
}

func (e InputShapeError) Error() string {
	return fmt.Sprintf("graph: malformed input triple: %s", e.Reason)
}
