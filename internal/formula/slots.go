package formula

import "github.com/smilemakc/shrdlite-go/internal/domain"

// slot is one argument position of the relation being built: "target"
// (the object being moved), "goal" (location.Entity), or "goal2"
// (location.Entity2, between only). IsAll marks whether this position's
// quantifier is "all" — every candidate must be satisfied — rather than
// "any"/"the", which only needs one existential binding per conjunction.
type slot struct {
	name  string
	ids   []string
	isAll bool
}

// combo is one fully-bound assignment across a set of slots: position
// name -> chosen identifier.
type combo map[string]string

// cartesian returns every combination of one identifier per slot. An
// empty slot list yields a single empty combo, which is what lets the
// "all slots are all" case degenerate cleanly into "exactly one
// (trivial) free combination" in generateAllDNF.
func cartesian(slots []slot) []combo {
	combos := []combo{{}}
	for _, s := range slots {
		var next []combo
		for _, c := range combos {
			for _, id := range s.ids {
				merged := make(combo, len(c)+1)
				for k, v := range c {
					merged[k] = v
				}
				merged[s.name] = id
				next = append(next, merged)
			}
		}
		combos = next
	}
	return combos
}

// assignments produces every length-n sequence of values in [0, maxExclusive),
// i.e. maxExclusive^n sequences with repetition allowed and no permutation
// semantics (spec.md §9).
func assignments(n, maxExclusive int) [][]int {
	if maxExclusive <= 0 {
		return nil
	}
	if n == 0 {
		return [][]int{{}}
	}
	rest := assignments(n-1, maxExclusive)
	out := make([][]int, 0, len(rest)*maxExclusive)
	for v := 0; v < maxExclusive; v++ {
		for _, r := range rest {
			seq := make([]int, 0, n)
			seq = append(seq, v)
			seq = append(seq, r...)
			out = append(out, seq)
		}
	}
	return out
}

func mergeCombo(a, b combo) combo {
	merged := make(combo, len(a)+len(b))
	for k, v := range a {
		merged[k] = v
	}
	for k, v := range b {
		merged[k] = v
	}
	return merged
}

func literalArgs(rel domain.Relation, c combo) []string {
	if rel == domain.RelBetween {
		return []string{c["target"], c["goal"], c["goal2"]}
	}
	return []string{c["target"], c["goal"]}
}
