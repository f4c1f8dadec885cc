// Package disambiguate implements the clarification pass that runs after
// FormulaBuilder: any entity quantified with "the" that still admits more
// than one binding in the built DNF must be narrowed down, either by a
// distinguishing description or, failing that, a reported ambiguity
// (spec.md §4.4).
package disambiguate

import (
	"sort"

	"github.com/smilemakc/shrdlite-go/internal/domain"
)

// Slot names the argument column of a DNF literal that a particular
// quantified entity was compiled into (see internal/formula). Take and
// put/move's target both land in column 0.
type Slot int

const (
	SlotTarget Slot = 0
	SlotGoal   Slot = 1
	SlotGoal2  Slot = 2
)

// Check walks dnf and raises a clarification error for any of the
// supplied "the"-quantified slots that still admit more than one
// candidate identifier, or a DescriptionAmbiguousError if two of those
// candidates are indistinguishable even at full specificity.
//
// Each conjunction produced by generateAnyDNF/generateAllDNF for a
// "the"/"any" binding carries exactly one literal, so the candidates for
// slot s are the distinct values of literal.Args[s] across conj[0] of
// every conjunction in dnf. The between relation allows one extra
// conjunction of slack (spec.md §4.4: "more than two in the between
// case") because a ternary goal's two reference slots can each
// legitimately resolve the ambiguity independently.
func Check(dnf domain.DNF, w domain.WorldState, slots ...Slot) error {
	threshold := 1
	if hasBetween(dnf) {
		threshold = 2
	}
	if len(dnf) <= threshold {
		return nil
	}

	for _, s := range slots {
		ids := distinctColumn(dnf, int(s))
		if len(ids) < 2 {
			continue
		}
		if err := clarify(w, ids); err != nil {
			return err
		}
	}
	return nil
}

func hasBetween(dnf domain.DNF) bool {
	for _, conj := range dnf {
		if len(conj) > 0 && conj[0].Relation == domain.RelBetween {
			return true
		}
	}
	return false
}

func distinctColumn(dnf domain.DNF, column int) []string {
	seen := make(map[string]bool)
	var ids []string
	for _, conj := range dnf {
		if len(conj) == 0 || column >= len(conj[0].Args) {
			continue
		}
		id := conj[0].Args[column]
		if seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// clarify computes each candidate's full "size color form" description
// and either raises DescriptionAmbiguousError (two candidates share a
// description) or ClarificationError (candidates remain distinguishable)
// when more than one candidate is present.
func clarify(w domain.WorldState, ids []string) error {
	seenDesc := make(map[string]string, len(ids))
	var descriptions []string

	for _, id := range ids {
		desc := fullDescription(w, id)
		if owner, ok := seenDesc[desc]; ok && owner != id {
			return &domain.DescriptionAmbiguousError{Description: desc}
		}
		seenDesc[desc] = id
		descriptions = append(descriptions, desc)
	}

	return &domain.ClarificationError{Descriptions: descriptions}
}

// fullDescription returns the complete "size color form" description
// used for clarification prompts (spec.md §4.4 requires the full
// description, not physics.MinimalDescription's shortest-unique form).
func fullDescription(w domain.WorldState, id string) string {
	if id == domain.FloorIdentifier {
		return "floor"
	}
	def, ok := w.Objects[id]
	if !ok {
		return id
	}
	s := ""
	if def.Size != domain.SizeNone {
		s += string(def.Size) + " "
	}
	if def.Color != domain.ColorNone {
		s += string(def.Color) + " "
	}
	return s + string(def.Form)
}

// EntitySlots reports which argument columns Check must examine for a
// given command, based on which entities the caller marked as having
// used the "the" quantifier during resolution.
func EntitySlots(mainIsThe, goalIsThe, goal2IsThe bool) []Slot {
	var slots []Slot
	if mainIsThe {
		slots = append(slots, SlotTarget)
	}
	if goalIsThe {
		slots = append(slots, SlotGoal)
	}
	if goal2IsThe {
		slots = append(slots, SlotGoal2)
	}
	return slots
}
