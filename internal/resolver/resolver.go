// Package resolver maps parsed entity trees onto the concrete identifiers
// that could satisfy them in the current world, recursing through nested
// spatial locations (spec.md §4.2).
package resolver

import (
	"sort"

	"github.com/smilemakc/shrdlite-go/internal/domain"
	"github.com/smilemakc/shrdlite-go/internal/physics"
)

// Candidates is the result of resolving an Entity: the admissible main
// bindings, and (for nested entities) the resolved candidates one level
// down, so FormulaBuilder can recompute the cross products it needs
// without re-walking the entity tree.
type Candidates struct {
	Main     []string
	Relation domain.Relation
	Nested   *Candidates
	Nested2  *Candidates
}

// ResolveEntity performs the recursive-descent resolution described in
// spec.md §4.2. "Existing identifiers" are exactly those currently on a
// stack, held, plus the floor sentinel.
func ResolveEntity(entity domain.Entity, w domain.WorldState) Candidates {
	obj := entity.Object
	if obj.IsLeaf() {
		return Candidates{Main: resolveLeaf(obj, w)}
	}

	loc := obj.Location
	nested := ResolveEntity(loc.Entity, w)
	var nested2 *Candidates
	if loc.Relation == domain.RelBetween && loc.Entity2 != nil {
		r := ResolveEntity(*loc.Entity2, w)
		nested2 = &r
	}

	candidates := Candidates{Relation: loc.Relation, Nested: &nested, Nested2: nested2}
	for _, id := range existingIdentifiers(w) {
		if !physics.HasSameAttributes(domain.ObjectDefinition{Form: obj.Form, Size: obj.Size, Color: obj.Color}, lookupDefinition(w, id)) {
			continue
		}
		if admits(w, id, loc.Relation, nested, nested2) {
			candidates.Main = append(candidates.Main, id)
		}
	}
	return candidates
}

// admits reports whether id satisfies loc.Relation against at least one
// binding of nested.Main (and, for "between", also one binding of
// nested2.Main).
func admits(w domain.WorldState, id string, rel domain.Relation, nested Candidates, nested2 *Candidates) bool {
	if rel == domain.RelBetween {
		if nested2 == nil {
			return false
		}
		for _, g1 := range nested.Main {
			for _, g2 := range nested2.Main {
				if physics.HasValidLocation(w, rel, id, g1, g2) {
					return true
				}
			}
		}
		return false
	}
	for _, g := range nested.Main {
		if physics.HasValidLocation(w, rel, id, g, "") {
			return true
		}
	}
	return false
}

func resolveLeaf(obj domain.Object, w domain.WorldState) []string {
	descriptor := domain.ObjectDefinition{Form: obj.Form, Size: obj.Size, Color: obj.Color}
	var out []string
	for _, id := range existingIdentifiers(w) {
		if physics.HasSameAttributes(descriptor, lookupDefinition(w, id)) {
			out = append(out, id)
		}
	}
	return out
}

// existingIdentifiers returns every identifier currently present in the
// world in a stable, deterministic order: stacks in column order
// bottom-to-top, then the held object, then the floor sentinel
// (spec.md §5).
func existingIdentifiers(w domain.WorldState) []string {
	var out []string
	for _, stack := range w.Stacks {
		out = append(out, stack...)
	}
	if w.Holding != "" {
		out = append(out, w.Holding)
	}
	out = append(out, domain.FloorIdentifier)
	return dedupeStable(out)
}

func dedupeStable(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

func lookupDefinition(w domain.WorldState, id string) domain.ObjectDefinition {
	if id == domain.FloorIdentifier {
		return domain.ObjectDefinition{Form: domain.FormFloor}
	}
	return w.Objects[id]
}

// SortedCopy returns a stably sorted copy of ids, useful in tests that
// don't care about resolution order but want deterministic assertions.
func SortedCopy(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}
