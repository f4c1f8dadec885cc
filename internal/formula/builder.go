// Package formula builds the DNF goal formula encoding a parsed command's
// intent, dispatching on which quantifiers ("any"/"the" vs "all") appear
// and which relation (binary or ternary "between") is being targeted
// (spec.md §4.3).
package formula

import (
	"fmt"

	"github.com/smilemakc/shrdlite-go/internal/domain"
	"github.com/smilemakc/shrdlite-go/internal/physics"
	"github.com/smilemakc/shrdlite-go/internal/resolver"
)

// Input bundles everything Build needs: the parsed command, and the
// resolved candidates for every entity it references. Goal/Goal2 are nil
// unless the command carries a Location; Goal2 is nil unless that
// Location's relation is "between". Main is nil for "put", since put has
// no entity of its own — its target is whatever is currently held.
type Input struct {
	Command domain.Command
	Main    *resolver.Candidates
	Goal    *resolver.Candidates
	Goal2   *resolver.Candidates
}

// Build produces the DNF goal formula for in.Command. It returns
// domain.ErrInfeasible for "all"+"take" over more than one candidate, and
// domain.ErrNoValidInterpretation when the resulting DNF is empty.
func Build(in Input, w domain.WorldState) (domain.DNF, error) {
	if in.Command.Kind == domain.CommandTake {
		return buildTake(in)
	}

	loc := in.Command.Location
	target := targetSlot(in, w)
	goal := namedSlot("goal", in.Goal, loc.Entity.Quantifier)
	var goal2 *slot
	if loc.Relation == domain.RelBetween {
		if loc.Entity2 == nil {
			return nil, fmt.Errorf("%w: between requires a second entity", domain.ErrInternal)
		}
		g2 := namedSlot("goal2", in.Goal2, loc.Entity2.Quantifier)
		goal2 = &g2
	}

	anyAll := target.isAll || goal.isAll || (goal2 != nil && goal2.isAll)

	var dnf domain.DNF
	if anyAll {
		dnf = generateAllDNF(w, loc.Relation, target, goal, goal2)
	} else {
		dnf = generateAnyDNF(w, loc.Relation, target, goal, goal2)
	}

	if dnf.Unsatisfiable() {
		return nil, domain.ErrNoValidInterpretation
	}
	return dnf, nil
}

func buildTake(in Input) (domain.DNF, error) {
	if in.Main == nil {
		return nil, fmt.Errorf("%w: take requires an entity", domain.ErrInternal)
	}
	candidates := excludeFloor(in.Main.Main)

	if in.Command.Entity.Quantifier == domain.QuantifierAll {
		if len(candidates) != 1 {
			return nil, domain.ErrInfeasible
		}
		return domain.DNF{{domain.NewLiteral(domain.RelHolding, candidates[0])}}, nil
	}

	var dnf domain.DNF
	for _, m := range candidates {
		dnf = append(dnf, domain.Conjunction{domain.NewLiteral(domain.RelHolding, m)})
	}
	if dnf.Unsatisfiable() {
		return nil, domain.ErrNoValidInterpretation
	}
	return dnf, nil
}

func targetSlot(in Input, w domain.WorldState) slot {
	if in.Command.Kind == domain.CommandPut {
		var ids []string
		if w.Holding != "" {
			ids = []string{w.Holding}
		}
		return slot{name: "target", ids: ids}
	}
	return namedSlot("target", in.Main, in.Command.Entity.Quantifier)
}

func namedSlot(name string, c *resolver.Candidates, q domain.Quantifier) slot {
	if c == nil {
		return slot{name: name}
	}
	return slot{name: name, ids: c.Main, isAll: q == domain.QuantifierAll}
}

func excludeFloor(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != domain.FloorIdentifier {
			out = append(out, id)
		}
	}
	return out
}

// generateAnyDNF implements spec.md §4.3.1: no "all" quantifier anywhere.
// For each (target, goal[, goal2]) combination it emits one conjunction
// containing the single literal rel(target, goal[, goal2]) iff that goal
// is physically achievable.
func generateAnyDNF(w domain.WorldState, rel domain.Relation, target, goal slot, goal2 *slot) domain.DNF {
	var dnf domain.DNF
	targets := excludeFloor(target.ids)

	for _, t := range targets {
		if goal2 != nil {
			for _, g1 := range goal.ids {
				for _, g2 := range goal2.ids {
					if physics.IsValidGoalLocation(w, rel, t, g1, g2) {
						dnf = append(dnf, domain.Conjunction{domain.NewLiteral(rel, t, g1, g2)})
					}
				}
			}
			continue
		}
		for _, g := range goal.ids {
			if physics.IsValidGoalLocation(w, rel, t, g, "") {
				dnf = append(dnf, domain.Conjunction{domain.NewLiteral(rel, t, g)})
			}
		}
	}
	return dnf
}

// generateAllDNF implements spec.md §4.3.2. It treats whichever slots
// carry the "all" quantifier as a single combined list that must be
// fully covered (one literal per element), and whichever slots don't as
// a single combined pool of free choices each "all" element may draw
// from independently. Enumerating every assignment from the all-side
// into the free-side gives exactly the both-sides / one-side / ternary
// seven-case behaviour the spec describes, without special-casing each
// combination.
func generateAllDNF(w domain.WorldState, rel domain.Relation, target, goal slot, goal2 *slot) domain.DNF {
	var slots []slot
	slots = append(slots, target, goal)
	if goal2 != nil {
		slots = append(slots, *goal2)
	}

	var allSlots, freeSlots []slot
	for _, s := range slots {
		if s.name == "target" {
			s.ids = excludeFloor(s.ids)
		}
		if s.isAll {
			allSlots = append(allSlots, s)
		} else {
			freeSlots = append(freeSlots, s)
		}
	}

	allSide := cartesian(allSlots)
	otherSide := cartesian(freeSlots)
	n, m := len(allSide), len(otherSide)
	if n == 0 || m == 0 {
		return nil
	}

	var dnf domain.DNF
	for _, assignment := range assignments(n, m) {
		conj, ok := buildAllConjunction(w, rel, allSide, otherSide, assignment)
		if !ok {
			continue
		}
		dnf = append(dnf, conj)
	}
	return postFilterStackingTargets(rel, dnf)
}

func buildAllConjunction(w domain.WorldState, rel domain.Relation, allSide, otherSide []combo, assignment []int) (domain.Conjunction, bool) {
	conj := make(domain.Conjunction, 0, len(allSide))
	for i, a := range allSide {
		full := mergeCombo(a, otherSide[assignment[i]])
		args := literalArgs(rel, full)
		if rel == domain.RelBetween {
			if !physics.IsValidGoalLocation(w, rel, args[0], args[1], args[2]) {
				return nil, false
			}
			conj = append(conj, domain.NewLiteral(rel, args[0], args[1], args[2]))
			continue
		}
		if !physics.IsValidGoalLocation(w, rel, args[0], args[1], "") {
			return nil, false
		}
		conj = append(conj, domain.NewLiteral(rel, args[0], args[1]))
	}
	return conj, true
}

// postFilterStackingTargets rejects any conjunction in which two literals
// place distinct movable objects directly on (ontop/inside) the same
// non-floor target, since physical stacking supports only one direct
// child (spec.md §4.3.2).
func postFilterStackingTargets(rel domain.Relation, dnf domain.DNF) domain.DNF {
	if rel != domain.RelOntop && rel != domain.RelInside {
		return dnf
	}
	var out domain.DNF
	for _, conj := range dnf {
		targetsOf := make(map[string]string) // goal id -> the mover already assigned to it
		conflict := false
		for _, lit := range conj {
			mover, goalID := lit.Args[0], lit.Args[1]
			if goalID == domain.FloorIdentifier {
				continue
			}
			if existing, seen := targetsOf[goalID]; seen && existing != mover {
				conflict = true
				break
			}
			targetsOf[goalID] = mover
		}
		if !conflict {
			out = append(out, conj)
		}
	}
	return out
}
