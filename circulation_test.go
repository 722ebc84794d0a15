package maxflow

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// same instance as flownet's own ExampleCirculation.
func TestCirculationSatisfiesDemand(t *testing.T) {
	c := NewCirculation[int64]()
	type edge struct {
		from, to         int
		capacity, demand int64
	}
	edges := []edge{
		{0, 1, 15, 0}, {0, 2, 4, 0}, {1, 3, 12, 0}, {3, 2, 3, 0}, {2, 4, 10, 0},
		{4, 1, 5, 4}, {4, 5, 10, 0}, {3, 5, 7, 0},
	}
	for _, e := range edges {
		require.NoError(t, c.AddEdge(e.from, e.to, e.capacity, e.demand))
	}
	require.NoError(t, c.SetNodeDemand(0, -4))
	require.NoError(t, c.SetNodeDemand(5, 4))

	feasible, err := c.Solve(0, 0)
	require.NoError(t, err)
	assert.True(t, feasible)
	require.NoError(t, c.Validate())

	for _, e := range edges {
		f, err := c.Flow(e.from, e.to)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, f, e.demand)
		assert.LessOrEqual(t, f, e.capacity)
	}
}

func TestCirculationInfeasibleWhenDemandExceedsCapacity(t *testing.T) {
	c := NewCirculation[int64]()
	require.NoError(t, c.AddEdge(0, 1, 5, 5))
	require.NoError(t, c.SetNodeDemand(0, -10))
	require.NoError(t, c.SetNodeDemand(1, 10))

	feasible, err := c.Solve(0, 0)
	require.NoError(t, err)
	assert.False(t, feasible)
}

func TestCirculationTrivialWhenNoDemandSpecified(t *testing.T) {
	c := NewCirculation[int64]()
	require.NoError(t, c.AddEdge(0, 1, 10, 0))

	feasible, err := c.Solve(0, 0)
	require.NoError(t, err)
	assert.True(t, feasible)

	flow, err := c.Flow(0, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), flow)
}

func TestCirculationRejectsDemandExceedingCapacity(t *testing.T) {
	c := NewCirculation[int64]()
	err := c.AddEdge(0, 1, 5, 10)
	require.Error(t, err)
}

func TestCirculationRejectsReservedNodeName(t *testing.T) {
	c := NewCirculation[int64]()
	err := c.SetNodeDemand(circulationSourceName, 1)
	require.Error(t, err)
}
