// Package search implements a generic A* over domain.WorldStateNode,
// bounded by a wall-clock timeout checked inside the expansion loop
// (spec.md §4.7). Graph/priority-queue internals are intentionally
// unremarkable — the pipeline's interesting logic lives in worldgraph
// and heuristic, not here.
package search

import (
	"container/heap"
	"context"
	"time"

	"github.com/smilemakc/shrdlite-go/internal/domain"
)

// Graph supplies successor edges for a node; Heuristic supplies an
// admissible lower bound to the goal; IsGoal reports whether a node
// satisfies the target condition. All three are pure functions of their
// arguments, matching the Physics-determinism invariant (spec.md §8).
type Graph func(n domain.WorldStateNode) []domain.Edge
type Heuristic func(n domain.WorldStateNode) int
type IsGoal func(n domain.WorldStateNode) bool

// Result is the outcome of a search: Path is the sequence of nodes from
// start to goal inclusive, Cost is the accumulated edge cost. On
// timeout or context cancellation, Path is empty and TimedOut is true;
// an open set exhausted without reaching a goal is reported the same
// way.
type Result struct {
	Path     []domain.WorldStateNode
	Cost     int
	TimedOut bool
}

type item struct {
	node     domain.WorldStateNode
	g        int
	f        int
	order    int
	index    int
}

type priorityQueue []*item

func (pq priorityQueue) Len() int { return len(pq) }
func (pq priorityQueue) Less(i, j int) bool {
	if pq[i].f != pq[j].f {
		return pq[i].f < pq[j].f
	}
	return pq[i].order < pq[j].order // stable tie-breaking by insertion order
}
func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index, pq[j].index = i, j
}
func (pq *priorityQueue) Push(x interface{}) {
	it := x.(*item)
	it.index = len(*pq)
	*pq = append(*pq, it)
}
func (pq *priorityQueue) Pop() interface{} {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]
	return it
}

// AStar runs A* from start until isGoal is satisfied, the open set is
// exhausted, or timeout elapses. Node equality is by domain.WorldStateNode.Key.
func AStar(ctx context.Context, start domain.WorldStateNode, graph Graph, isGoal IsGoal, h Heuristic, timeout time.Duration) Result {
	deadline := time.Now().Add(timeout)

	open := &priorityQueue{}
	heap.Init(open)
	order := 0
	push := func(n domain.WorldStateNode, g int) *item {
		it := &item{node: n, g: g, f: g + h(n), order: order}
		order++
		heap.Push(open, it)
		return it
	}

	cameFrom := make(map[string]string)
	bestG := make(map[string]int)
	nodeByKey := make(map[string]domain.WorldStateNode)

	startKey := start.Key()
	bestG[startKey] = 0
	nodeByKey[startKey] = start
	push(start, 0)

	closed := make(map[string]bool)

	for open.Len() > 0 {
		if ctx.Err() != nil || time.Now().After(deadline) {
			return Result{TimedOut: true}
		}

		current := heap.Pop(open).(*item)
		key := current.node.Key()
		if closed[key] {
			continue
		}
		closed[key] = true

		if isGoal(current.node) {
			return Result{Path: reconstruct(cameFrom, nodeByKey, key), Cost: current.g}
		}

		for _, edge := range graph(current.node) {
			nextKey := edge.To.Key()
			if closed[nextKey] {
				continue
			}
			tentativeG := current.g + edge.Cost
			if prev, ok := bestG[nextKey]; ok && prev <= tentativeG {
				continue
			}
			bestG[nextKey] = tentativeG
			nodeByKey[nextKey] = edge.To
			cameFrom[nextKey] = key
			push(edge.To, tentativeG)
		}
	}

	return Result{TimedOut: true}
}

func reconstruct(cameFrom map[string]string, nodeByKey map[string]domain.WorldStateNode, goalKey string) []domain.WorldStateNode {
	var keys []string
	for k := goalKey; ; {
		keys = append(keys, k)
		prev, ok := cameFrom[k]
		if !ok {
			break
		}
		k = prev
	}
	path := make([]domain.WorldStateNode, len(keys))
	for i, k := range keys {
		path[len(keys)-1-i] = nodeByKey[k]
	}
	return path
}
