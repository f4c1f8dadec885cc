// Package planemitter walks an A* path and narrates it into the
// interleaved atomic-action/narration-string plan the external executor
// consumes (spec.md §4.8).
package planemitter

import (
	"fmt"
	"strings"

	"github.com/smilemakc/shrdlite-go/internal/domain"
	"github.com/smilemakc/shrdlite-go/internal/physics"
)

const (
	ActionPick  = "p"
	ActionDrop  = "d"
	ActionLeft  = "l"
	ActionRight = "r"
)

// AlreadyTrueNarration is emitted alone when the goal was already
// satisfied in the start state — no path needed to be searched.
const AlreadyTrueNarration = "That is already true!"

// Emit produces the narrated plan for path, given the starting arm
// column and a world snapshot used to label objects by minimal
// description. path must contain at least one node; a single-node path
// (start already the goal) yields no actions.
func Emit(path []domain.WorldStateNode, startArm int, descObjects map[string]domain.ObjectDefinition) []string {
	if len(path) == 0 {
		return nil
	}
	if len(path) == 1 {
		return nil
	}

	arm := startArm
	var lines []string
	w := domain.WorldState{Objects: descObjects}

	for i := 1; i < len(path); i++ {
		prev, next := path[i-1], path[i]
		isPick := prev.Holding == "" && next.Holding != ""

		stack, objID := diffStack(prev, next, isPick)

		if arm > stack {
			lines = append(lines, "Moving left")
			for ; arm > stack; arm-- {
				lines = append(lines, ActionLeft)
			}
		} else if arm < stack {
			lines = append(lines, "Moving right")
			for ; arm < stack; arm++ {
				lines = append(lines, ActionRight)
			}
		}

		desc := physics.MinimalDescription(w, objID)
		if isPick {
			lines = append(lines, fmt.Sprintf("Picking up the %s", desc), ActionPick)
		} else {
			lines = append(lines, fmt.Sprintf("Dropping the %s", desc), ActionDrop)
		}
	}

	return lines
}

// EmitAlreadyTrue returns the fixed narration for a goal already
// satisfied in the start state.
func EmitAlreadyTrue() []string {
	return []string{AlreadyTrueNarration}
}

// diffStack locates the stack column where prev and next differ, and the
// identifier that moved: for a pick, the object that left the top of a
// stack (now held); for a drop, the object that landed on top of a
// stack (the previously held object).
func diffStack(prev, next domain.WorldStateNode, isPick bool) (int, string) {
	if isPick {
		for i := range prev.Stacks {
			if len(prev.Stacks[i]) > len(next.Stacks[i]) {
				return i, prev.Stacks[i][len(prev.Stacks[i])-1]
			}
		}
		return 0, prev.Holding
	}
	for i := range next.Stacks {
		if len(next.Stacks[i]) > len(prev.Stacks[i]) {
			return i, next.Stacks[i][len(next.Stacks[i])-1]
		}
	}
	return 0, prev.Holding
}

// CountAtomicActions reports how many of the lines in plan are atomic
// robot instructions (p/d/l/r), excluding narration text — the invariant
// spec.md §4.8 requires callers to be able to check.
func CountAtomicActions(plan []string) int {
	n := 0
	for _, line := range plan {
		switch line {
		case ActionPick, ActionDrop, ActionLeft, ActionRight:
			n++
		}
	}
	return n
}

// IsAtomic reports whether line is one of the four single-character
// robot actions, as opposed to a narration string.
func IsAtomic(line string) bool {
	return len(line) == 1 && strings.ContainsAny(line, "pdlr")
}
