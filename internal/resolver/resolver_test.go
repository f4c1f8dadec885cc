package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smilemakc/shrdlite-go/internal/domain"
	"github.com/smilemakc/shrdlite-go/internal/resolver"
)

func world() domain.WorldState {
	return domain.WorldState{
		Stacks: [][]string{
			{"a"},
			{},
			{"k"},
			{},
			{"l"},
		},
		Objects: map[string]domain.ObjectDefinition{
			"a": {Form: domain.FormBall, Size: domain.SizeSmall, Color: domain.ColorBlack},
			"b": {Form: domain.FormBall, Size: domain.SizeLarge, Color: domain.ColorWhite},
			"k": {Form: domain.FormBox, Size: domain.SizeLarge, Color: domain.ColorRed},
			"l": {Form: domain.FormBox, Size: domain.SizeLarge, Color: domain.ColorGreen},
		},
	}
}

func TestResolveEntity_Leaf(t *testing.T) {
	w := world()
	w.Holding = "b"

	e := domain.Entity{Quantifier: domain.QuantifierThe, Object: domain.Object{Form: domain.FormBall}}
	got := resolver.ResolveEntity(e, w)
	assert.ElementsMatch(t, []string{"a", "b"}, got.Main)
}

func TestResolveEntity_Nested_Inside(t *testing.T) {
	w := world()
	w.Stacks[2] = []string{"k", "b"} // b (large white ball) inside k

	// "the ball inside a box"
	e := domain.Entity{
		Quantifier: domain.QuantifierThe,
		Object: domain.Object{
			Form: domain.FormBall,
			Location: &domain.Location{
				Relation: domain.RelInside,
				Entity:   domain.Entity{Quantifier: domain.QuantifierAny, Object: domain.Object{Form: domain.FormBox}},
			},
		},
	}
	got := resolver.ResolveEntity(e, w)
	assert.Equal(t, []string{"b"}, got.Main)
	assert.ElementsMatch(t, []string{"k", "l"}, got.Nested.Main)
}

func TestResolveEntity_Between(t *testing.T) {
	w := world()
	w.Stacks[3] = []string{"mid"}
	w.Objects["mid"] = domain.ObjectDefinition{Form: domain.FormBall, Size: domain.SizeSmall, Color: domain.ColorYellow}

	e := domain.Entity{
		Quantifier: domain.QuantifierThe,
		Object: domain.Object{
			Form: domain.FormBall,
			Location: &domain.Location{
				Relation: domain.RelBetween,
				Entity:   domain.Entity{Quantifier: domain.QuantifierAny, Object: domain.Object{Form: domain.FormBox, Color: domain.ColorRed}},
				Entity2:  &domain.Entity{Quantifier: domain.QuantifierAny, Object: domain.Object{Form: domain.FormBox, Color: domain.ColorGreen}},
			},
		},
	}
	got := resolver.ResolveEntity(e, w)
	assert.Equal(t, []string{"mid"}, got.Main)
}

func TestResolveEntity_FloorIsACandidate(t *testing.T) {
	w := world()
	e := domain.Entity{Quantifier: domain.QuantifierThe, Object: domain.Object{Form: domain.FormFloor}}
	got := resolver.ResolveEntity(e, w)
	assert.Equal(t, []string{domain.FloorIdentifier}, got.Main)
}
