// Package heuristic computes an admissible lower bound on the number of
// pick/drop actions remaining to satisfy a DNF goal formula (spec.md
// §4.6). Arm motion is free, so only picks and drops are counted.
package heuristic

import (
	"github.com/smilemakc/shrdlite-go/internal/domain"
	"github.com/smilemakc/shrdlite-go/internal/physics"
)

// Estimate returns the admissible heuristic value for node against dnf:
// the minimum, over conjunctions, of the maximum per-literal lower bound
// within that conjunction. objects supplies the attribute definitions
// needed by form-sensitive relations (inside/ontop); it is not part of
// WorldStateNode itself since object identities never change across a
// search (spec.md §3).
func Estimate(dnf domain.DNF, node domain.WorldStateNode, objects map[string]domain.ObjectDefinition) int {
	if dnf.TriviallyTrue() {
		return 0
	}
	best := -1
	for _, conj := range dnf {
		cost := conjunctionCost(conj, node, objects)
		if best == -1 || cost < best {
			best = cost
		}
	}
	if best == -1 {
		return 0
	}
	return best
}

func conjunctionCost(conj domain.Conjunction, node domain.WorldStateNode, objects map[string]domain.ObjectDefinition) int {
	max := 0
	for _, lit := range conj {
		c := literalCost(lit, node, objects)
		if c > max {
			max = c
		}
	}
	return max
}

// literalCost is the per-literal lower bound table from spec.md §4.6.
func literalCost(lit domain.Literal, node domain.WorldStateNode, objects map[string]domain.ObjectDefinition) int {
	w := asWorldState(node, objects)
	if physics.HasValidLocation(w, lit.Relation, arg(lit, 0), arg(lit, 1), arg(lit, 2)) {
		return 0
	}

	switch lit.Relation {
	case domain.RelLeftOf, domain.RelRightOf, domain.RelBeside:
		return positionalCost(w, lit.Args[0], lit.Args[1])
	case domain.RelInside, domain.RelOntop:
		return moveOntoCost(w, lit.Args[0], lit.Args[1])
	case domain.RelUnder:
		return symmetricSupportCost(w, lit.Args[1], lit.Args[0])
	case domain.RelAbove:
		return symmetricSupportCost(w, lit.Args[0], lit.Args[1])
	case domain.RelHolding:
		return holdingCost(w, lit.Args[0])
	case domain.RelBetween:
		return betweenCost(w, lit.Args[0], lit.Args[1], lit.Args[2])
	default:
		return 0
	}
}

func arg(lit domain.Literal, i int) string {
	if i >= len(lit.Args) {
		return ""
	}
	return lit.Args[i]
}

func asWorldState(node domain.WorldStateNode, objects map[string]domain.ObjectDefinition) domain.WorldState {
	return domain.WorldState{Holding: node.Holding, Stacks: node.Stacks, Objects: objects}
}

// positionalCost implements leftof/rightof/beside: one move per
// non-held participant, plus twice the smaller of the two above-counts
// (clearing the easier stack first frees whichever object needs moving).
func positionalCost(w domain.WorldState, a, b string) int {
	cost := 0
	if !isHeld(w, a) {
		cost++
	}
	if !isHeld(w, b) {
		cost++
	}
	return cost + 2*minAbove(w, a, b)
}

// moveOntoCost implements inside/ontop's shared cost shape: a must be
// freed and transported (pick+drop, or free if already held); b must be
// cleared, with the floor using the cheaper of its columns' heights.
func moveOntoCost(w domain.WorldState, a, b string) int {
	aCost := 1
	if !isHeld(w, a) {
		aCost = 2*aboveCount(w, a) + 2
	}
	bCost := 0
	if isHeld(w, b) {
		bCost = 1
	} else if b == domain.FloorIdentifier {
		bCost = 2 * minHeightOverStacks(w)
	} else {
		bCost = 2 * aboveCount(w, b)
	}
	return aCost + bCost
}

// symmetricSupportCost implements above/under: the supporting object
// must be cleared; one extra action if the dependent object is held.
func symmetricSupportCost(w domain.WorldState, supporter, dependent string) int {
	cost := 2 * aboveCount(w, supporter)
	if isHeld(w, dependent) {
		cost++
	}
	return cost
}

func holdingCost(w domain.WorldState, a string) int {
	if isHeld(w, a) {
		return 0
	}
	return 2*aboveCount(w, a) + 1
}

// betweenCost: if the target is already held and the two reference
// columns are at least two stacks apart, one drop suffices; otherwise
// the target must be freed and the cheaper reference cleared.
func betweenCost(w domain.WorldState, a, b, c string) int {
	if isHeld(w, a) {
		if colsApart(w, b, c) >= 2 {
			return 1
		}
	}
	return 1 + 2*minAbove(w, b, c)
}

func isHeld(w domain.WorldState, id string) bool {
	return id != "" && id == w.Holding
}

func aboveCount(w domain.WorldState, id string) int {
	stackID, stack := w.StackOf(id)
	if stackID < 0 {
		return 0
	}
	for loc, objID := range stack {
		if objID == id {
			return len(stack) - loc - 1
		}
	}
	return 0
}

func minAbove(w domain.WorldState, a, b string) int {
	ca, cb := aboveCount(w, a), aboveCount(w, b)
	if ca < cb {
		return ca
	}
	return cb
}

func colsApart(w domain.WorldState, a, b string) int {
	ca, _ := w.StackOf(a)
	cb, _ := w.StackOf(b)
	if ca < 0 || cb < 0 {
		return 0
	}
	d := ca - cb
	if d < 0 {
		return -d
	}
	return d
}

func minHeightOverStacks(w domain.WorldState) int {
	min := -1
	for _, s := range w.Stacks {
		if min == -1 || len(s) < min {
			min = len(s)
		}
	}
	if min == -1 {
		return 0
	}
	return min
}
