package heuristic_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilemakc/shrdlite-go/internal/domain"
	"github.com/smilemakc/shrdlite-go/internal/heuristic"
)

func TestEstimate_TriviallyTrueIsZero(t *testing.T) {
	node := domain.WorldStateNode{Stacks: [][]string{{"a"}}}
	assert.Equal(t, 0, heuristic.Estimate(domain.DNF{{}}, node, nil))
}

func TestEstimate_AlreadySatisfiedLiteralIsZero(t *testing.T) {
	node := domain.WorldStateNode{Holding: "a"}
	dnf := domain.DNF{{domain.NewLiteral(domain.RelHolding, "a")}}
	assert.Equal(t, 0, heuristic.Estimate(dnf, node, nil))
}

func TestEstimate_HoldingCostsPickupPlusClearing(t *testing.T) {
	node := domain.WorldStateNode{Stacks: [][]string{{"a", "b"}}}
	dnf := domain.DNF{{domain.NewLiteral(domain.RelHolding, "a")}}
	// "a" has one object above it: 2*1 + 1 = 3.
	assert.Equal(t, 3, heuristic.Estimate(dnf, node, nil))
}

func TestEstimate_OntopFreeStackIsCheap(t *testing.T) {
	node := domain.WorldStateNode{Holding: "a", Stacks: [][]string{{}}}
	dnf := domain.DNF{{domain.NewLiteral(domain.RelOntop, "a", domain.FloorIdentifier)}}
	// a already held (cost 1), floor target: 2*min(stack heights)=0.
	assert.Equal(t, 1, heuristic.Estimate(dnf, node, nil))
}

func TestEstimate_TakesMinOverConjunctions(t *testing.T) {
	node := domain.WorldStateNode{Stacks: [][]string{{"a", "b"}, {"c"}}}
	dnf := domain.DNF{
		{domain.NewLiteral(domain.RelHolding, "a")}, // costly: buried under b
		{domain.NewLiteral(domain.RelHolding, "c")}, // cheap: already on top
	}
	assert.Equal(t, heuristic.Estimate(domain.DNF{dnf[1]}, node, nil), heuristic.Estimate(dnf, node, nil))
}

func TestEstimate_TakesMaxOverLiteralsWithinConjunction(t *testing.T) {
	node := domain.WorldStateNode{Stacks: [][]string{{"a", "x"}, {"c"}}}
	dnf := domain.DNF{{
		domain.NewLiteral(domain.RelHolding, "a"), // buried, costly
		domain.NewLiteral(domain.RelHolding, "c"), // free, cheap
	}}
	single := domain.DNF{{domain.NewLiteral(domain.RelHolding, "a")}}
	assert.Equal(t, heuristic.Estimate(single, node, nil), heuristic.Estimate(dnf, node, nil))
}

func TestEstimate_InsideAlreadySatisfiedNeedsObjectDefinitions(t *testing.T) {
	objects := map[string]domain.ObjectDefinition{
		"ball": {Form: domain.FormBall, Size: domain.SizeSmall},
		"box":  {Form: domain.FormBox, Size: domain.SizeLarge},
	}
	node := domain.WorldStateNode{Stacks: [][]string{{"box", "ball"}}}
	dnf := domain.DNF{{domain.NewLiteral(domain.RelInside, "ball", "box")}}
	assert.Equal(t, 0, heuristic.Estimate(dnf, node, objects))
	// Without the object definitions, "box"'s form is unknown and the
	// already-satisfied shortcut can't fire.
	assert.Greater(t, heuristic.Estimate(dnf, node, nil), 0)
}

func TestCostTracer_TraceEvaluatesExpression(t *testing.T) {
	node := domain.WorldStateNode{Stacks: [][]string{{"a", "b"}}}
	conj := domain.Conjunction{domain.NewLiteral(domain.RelHolding, "a")}
	breakdown := heuristic.Breakdown(conj, node, nil)
	require.Len(t, breakdown, 1)
	require.Equal(t, 3, breakdown[0].Cost)

	tracer := heuristic.NewCostTracer(4)
	hit, err := tracer.Trace("max > 2", breakdown)
	require.NoError(t, err)
	assert.True(t, hit)

	miss, err := tracer.Trace("max > 100", breakdown)
	require.NoError(t, err)
	assert.False(t, miss)
}

func TestCostTracer_RejectsNonBooleanExpression(t *testing.T) {
	tracer := heuristic.NewCostTracer(4)
	_, err := tracer.Trace("max", nil)
	assert.Error(t, err)
}
