package worldgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smilemakc/shrdlite-go/internal/domain"
	"github.com/smilemakc/shrdlite-go/internal/physics"
	"github.com/smilemakc/shrdlite-go/internal/worldgraph"
)

func objects() map[string]domain.ObjectDefinition {
	return map[string]domain.ObjectDefinition{
		"a": {Form: domain.FormBall, Size: domain.SizeSmall, Color: domain.ColorBlack},
		"k": {Form: domain.FormBox, Size: domain.SizeLarge, Color: domain.ColorRed},
	}
}

func TestSuccessors_PickOnePerNonEmptyStack(t *testing.T) {
	n := domain.WorldStateNode{Stacks: [][]string{{"a"}, {}, {"k"}}}
	edges := worldgraph.Successors(n, physics.IsStackingAllowed, objects())

	assert.Len(t, edges, 2)
	for _, e := range edges {
		assert.NotEmpty(t, e.To.Holding)
		assert.Equal(t, 1, e.Cost)
	}
}

func TestSuccessors_DropOntoEmptyStackAlwaysLegal(t *testing.T) {
	n := domain.WorldStateNode{Holding: "a", Stacks: [][]string{{}, {"k"}}}
	edges := worldgraph.Successors(n, physics.IsStackingAllowed, objects())

	require := assert.New(t)
	require.Len(edges, 2) // empty stack 0, and stacking a (ball) on k (box) is legal
	for _, e := range edges {
		require.Empty(e.To.Holding)
	}
}

func TestSuccessors_DropSkipsIllegalStacking(t *testing.T) {
	objs := objects()
	objs["p"] = domain.ObjectDefinition{Form: domain.FormPlank, Size: domain.SizeLarge, Color: domain.ColorGreen}
	// holding a ball, stack 0's top is a plank: balls may not rest on planks.
	n := domain.WorldStateNode{Holding: "a", Stacks: [][]string{{"p"}}}
	edges := worldgraph.Successors(n, physics.IsStackingAllowed, objs)

	assert.Empty(t, edges)
}

func TestSuccessors_NodeEqualityExcludesArm(t *testing.T) {
	a := domain.NodeFromWorldState(domain.WorldState{Stacks: [][]string{{"x"}}, Arm: 0})
	b := domain.NodeFromWorldState(domain.WorldState{Stacks: [][]string{{"x"}}, Arm: 4})
	assert.Equal(t, a.Key(), b.Key())
}
