// Package worldgraph enumerates the legal successor states of a world
// node: picking up the top of some stack, or dropping the held object
// onto another (spec.md §4.5). Arm position is irrelevant to node
// identity — arm motion is free and handled entirely by planemitter.
package worldgraph

import "github.com/smilemakc/shrdlite-go/internal/domain"

// Successors returns one domain.Edge per legal pick or drop from n. Every
// edge costs 1, matching the single robot-action granularity of the plan
// emitter.
func Successors(n domain.WorldStateNode, stacking func(top, bottom domain.ObjectDefinition) bool, objects map[string]domain.ObjectDefinition) []domain.Edge {
	if n.Holding == "" {
		return pickSuccessors(n)
	}
	return dropSuccessors(n, stacking, objects)
}

func pickSuccessors(n domain.WorldStateNode) []domain.Edge {
	var edges []domain.Edge
	for i, stack := range n.Stacks {
		if len(stack) == 0 {
			continue
		}
		top := stack[len(stack)-1]
		next := n.Clone()
		next.Stacks[i] = next.Stacks[i][:len(next.Stacks[i])-1]
		next.Holding = top
		edges = append(edges, domain.Edge{From: n, To: next, Cost: 1})
	}
	return edges
}

func dropSuccessors(n domain.WorldStateNode, stacking func(top, bottom domain.ObjectDefinition) bool, objects map[string]domain.ObjectDefinition) []domain.Edge {
	held := objects[n.Holding]
	var edges []domain.Edge
	for i, stack := range n.Stacks {
		if len(stack) > 0 {
			top := objects[stack[len(stack)-1]]
			if !stacking(held, top) {
				continue
			}
		}
		next := n.Clone()
		next.Stacks[i] = append(next.Stacks[i], n.Holding)
		next.Holding = ""
		edges = append(edges, domain.Edge{From: n, To: next, Cost: 1})
	}
	return edges
}
