// Package physics implements the pure, side-effect-free predicates that
// decide whether a spatial relation holds in a world, whether two objects
// may legally stack, and what the shortest unique description of an
// object is. Every function here is a pure function of its inputs
// (spec.md §8, "Physics determinism").
package physics

import (
	"fmt"

	"github.com/smilemakc/shrdlite-go/internal/domain"
)

// HasValidLocation decides whether rel currently holds between a, b, and
// (for "between") c in the given world. c is ignored unless rel is
// RelBetween.
func HasValidLocation(w domain.WorldState, rel domain.Relation, a, b, c string) bool {
	fa, ok := w.Find(a)
	if !ok {
		return false
	}
	fb, ok := w.Find(b)
	if !ok && rel != domain.RelHolding {
		return false
	}

	var fc domain.FoundObject
	if rel == domain.RelBetween {
		var okc bool
		fc, okc = w.Find(c)
		if !okc {
			return false
		}
	}

	if rel != domain.RelHolding {
		if fa.IsHeld || fb.IsHeld || (rel == domain.RelBetween && fc.IsHeld) {
			return false
		}
	}

	switch rel {
	case domain.RelHolding:
		return fa.IsHeld
	case domain.RelLeftOf:
		return fa.StackID < fb.StackID
	case domain.RelRightOf:
		return fa.StackID > fb.StackID
	case domain.RelBeside:
		return abs(fa.StackID-fb.StackID) == 1
	case domain.RelBetween:
		return (fb.StackID < fa.StackID && fa.StackID < fc.StackID) ||
			(fc.StackID < fa.StackID && fa.StackID < fb.StackID)
	case domain.RelInside:
		return fb.Definition.Form == domain.FormBox &&
			fa.OnStack() && fb.OnStack() &&
			fa.StackID == fb.StackID &&
			fa.StackLocation == fb.StackLocation+1 &&
			!(fb.Definition.Size == domain.SizeSmall && fa.Definition.Size == domain.SizeLarge)
	case domain.RelOntop:
		if fb.IsFloor {
			return fa.StackLocation == 0
		}
		return fa.OnStack() && fb.OnStack() &&
			fa.StackID == fb.StackID &&
			fa.StackLocation == fb.StackLocation+1 &&
			IsStackingAllowed(fa.Definition, fb.Definition)
	case domain.RelUnder:
		return fa.OnStack() && fb.OnStack() && fa.StackID == fb.StackID && fa.StackLocation < fb.StackLocation
	case domain.RelAbove:
		return fa.OnStack() && fb.OnStack() && fa.StackID == fb.StackID && fa.StackLocation > fb.StackLocation
	default:
		return false
	}
}

// IsStackingAllowed implements the seven physical laws governing whether
// top may rest directly above bottom, whether that adjacency is read as
// "ontop" a non-floor bottom or "inside" a box.
func IsStackingAllowed(top, bottom domain.ObjectDefinition) bool {
	if top.Form == domain.FormFloor {
		return false // rule 7: the floor never appears as a "top" object.
	}
	if top.Form == domain.FormBall && bottom.Form != domain.FormBox && bottom.Form != domain.FormFloor {
		return false // rule 1
	}
	if bottom.Form == domain.FormBall {
		return false // rule 2: balls support nothing.
	}
	if bottom.Size == domain.SizeSmall && top.Size == domain.SizeLarge {
		return false // rule 3
	}
	if bottom.Form == domain.FormBox &&
		(top.Form == domain.FormPlank || top.Form == domain.FormPyramid ||
			(top.Form == domain.FormBox && top.Size == bottom.Size)) {
		return false // rule 4
	}
	if top.Form == domain.FormBox && top.Size == domain.SizeSmall &&
		(bottom.Size == domain.SizeSmall || bottom.Form == domain.FormPyramid) {
		return false // rule 5
	}
	if top.Form == domain.FormBox && top.Size == domain.SizeLarge &&
		bottom.Form == domain.FormPyramid && bottom.Size == domain.SizeLarge {
		return false // rule 6
	}
	return true
}

// IsValidGoalLocation checks whether rel(a, b[, c]) is an achievable goal
// in principle: identity rejections, the floor can never be the object
// being positioned (it may be the goal of ontop), inside requires a
// size-compatible box, ontop requires physical support, and positional
// relations (leftof/rightof/beside/above/under/between/holding) are
// always feasible once identities and the floor rule pass.
func IsValidGoalLocation(w domain.WorldState, rel domain.Relation, a, b, c string) bool {
	if a == b || (c != "" && (a == c || b == c)) {
		return false
	}
	if a == domain.FloorIdentifier {
		return false // the floor can never be the object being positioned.
	}

	adef, aok := objectDefinition(w, a)
	bdef, bok := objectDefinition(w, b)
	if !aok || !bok {
		return false
	}

	switch rel {
	case domain.RelInside:
		if bdef.Form != domain.FormBox {
			return false
		}
		return !(bdef.Size == domain.SizeSmall && adef.Size == domain.SizeLarge)
	case domain.RelOntop:
		if b == domain.FloorIdentifier {
			return true
		}
		return IsStackingAllowed(adef, bdef)
	case domain.RelLeftOf, domain.RelRightOf, domain.RelBeside, domain.RelUnder, domain.RelAbove, domain.RelHolding:
		return true
	case domain.RelBetween:
		if c == "" {
			return false
		}
		_, cok := objectDefinition(w, c)
		return cok
	default:
		return false
	}
}

func objectDefinition(w domain.WorldState, id string) (domain.ObjectDefinition, bool) {
	if id == domain.FloorIdentifier {
		return domain.ObjectDefinition{Form: domain.FormFloor}, true
	}
	def, ok := w.Objects[id]
	return def, ok
}

// HasSameAttributes reports whether descriptor matches def: form must be
// FormAny or equal, and each of size/color must be unset or equal.
func HasSameAttributes(descriptor domain.ObjectDefinition, def domain.ObjectDefinition) bool {
	if descriptor.Form != domain.FormAny && descriptor.Form != def.Form {
		return false
	}
	if descriptor.Size != domain.SizeNone && descriptor.Size != def.Size {
		return false
	}
	if descriptor.Color != domain.ColorNone && descriptor.Color != def.Color {
		return false
	}
	return true
}

// MinimalDescription returns the shortest of "form", "color form", or
// "size color form" that uniquely identifies id among every other known
// identifier in the world. It never includes a leading "the" — callers
// that need the article prepend it themselves.
func MinimalDescription(w domain.WorldState, id string) string {
	def, ok := objectDefinition(w, id)
	if !ok {
		return id
	}

	candidates := []domain.ObjectDefinition{
		{Form: def.Form},
		{Form: def.Form, Color: def.Color},
		{Form: def.Form, Color: def.Color, Size: def.Size},
	}

	for _, candidate := range candidates {
		if isUnique(w, id, candidate) {
			return describe(candidate)
		}
	}
	return describe(candidates[len(candidates)-1])
}

func isUnique(w domain.WorldState, id string, descriptor domain.ObjectDefinition) bool {
	for other, def := range w.Objects {
		if other == id {
			continue
		}
		if HasSameAttributes(descriptor, def) {
			return false
		}
	}
	return true
}

func describe(d domain.ObjectDefinition) string {
	s := ""
	if d.Size != domain.SizeNone {
		s += string(d.Size) + " "
	}
	if d.Color != domain.ColorNone {
		s += string(d.Color) + " "
	}
	return s + string(d.Form)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// StackHeightAbove returns how many objects currently rest directly or
// indirectly above id within its stack, or an ErrInternal-wrapped error
// if id is not on a stack.
func StackHeightAbove(w domain.WorldState, id string) (int, error) {
	stackID, stack := w.StackOf(id)
	if stackID < 0 {
		return 0, fmt.Errorf("%w: %s is not on a stack", domain.ErrInternal, id)
	}
	for loc, objID := range stack {
		if objID == id {
			return len(stack) - loc - 1, nil
		}
	}
	return 0, fmt.Errorf("%w: %s not found in its own stack", domain.ErrInternal, id)
}
