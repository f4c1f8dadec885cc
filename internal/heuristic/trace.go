package heuristic

import (
	"container/list"
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/smilemakc/shrdlite-go/internal/domain"
)

// exprCache is an LRU cache of compiled expr-lang programs, adapted from
// the teacher's ConditionCache: small enough that a handful of distinct
// trace expressions never evict each other, large enough that the same
// expression string from a repeated CLI run hits the cache instead of
// recompiling.
type exprCache struct {
	capacity int
	entries  map[string]*list.Element
	order    *list.List
	mu       sync.RWMutex
}

type cacheEntry struct {
	key     string
	program *vm.Program
}

func newExprCache(capacity int) *exprCache {
	if capacity <= 0 {
		capacity = 32
	}
	return &exprCache{capacity: capacity, entries: make(map[string]*list.Element), order: list.New()}
}

func (c *exprCache) get(key string) (*vm.Program, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		return el.Value.(*cacheEntry).program, true
	}
	return nil, false
}

func (c *exprCache) put(key string, program *vm.Program) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if el, ok := c.entries[key]; ok {
		c.order.MoveToFront(el)
		el.Value.(*cacheEntry).program = program
		return
	}
	el := c.order.PushFront(&cacheEntry{key: key, program: program})
	c.entries[key] = el
	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

func (c *exprCache) compileAndCache(condition string, env interface{}) (*vm.Program, error) {
	if program, found := c.get(condition); found {
		return program, nil
	}
	program, err := expr.Compile(condition, expr.Env(env))
	if err != nil {
		return nil, err
	}
	c.put(condition, program)
	return program, nil
}

// LiteralBreakdown is one literal's contribution to a conjunction's
// heuristic cost, exposed for CostTracer expressions and structured
// debug logging.
type LiteralBreakdown struct {
	Relation string `expr:"relation"`
	Args     []string `expr:"args"`
	Cost     int    `expr:"cost"`
}

// CostTracer is an optional, non-authoritative diagnostic evaluator: it
// compiles small boolean/arithmetic expr-lang expressions over a
// conjunction's per-literal cost breakdown, for callers (typically the
// logger) that want to flag interesting search states — e.g. "any
// literal costs more than 4" — without the admissible heuristic itself
// depending on anything but plain Go. It never influences Estimate's
// return value.
type CostTracer struct {
	cache *exprCache
}

// NewCostTracer builds a tracer with the given compiled-program cache
// capacity (<=0 selects a sensible default).
func NewCostTracer(cacheCapacity int) *CostTracer {
	return &CostTracer{cache: newExprCache(cacheCapacity)}
}

// Breakdown computes the per-literal cost breakdown for conj against
// node, in the same order Estimate would evaluate it, without assuming
// conj is the winning (minimum-cost) conjunction in its DNF.
func Breakdown(conj domain.Conjunction, node domain.WorldStateNode, objects map[string]domain.ObjectDefinition) []LiteralBreakdown {
	out := make([]LiteralBreakdown, 0, len(conj))
	for _, lit := range conj {
		out = append(out, LiteralBreakdown{
			Relation: string(lit.Relation),
			Args:     lit.Args,
			Cost:     literalCost(lit, node, objects),
		})
	}
	return out
}

// Trace compiles (or reuses a cached compile of) expression and
// evaluates it against breakdown, expecting a boolean result. expression
// sees "literals" ([]LiteralBreakdown) and "max" (the conjunction's
// overall cost) in its environment, e.g. `any(literals, {.cost > 4})`
// (literal fields are exposed under their expr tag names).
func (t *CostTracer) Trace(expression string, breakdown []LiteralBreakdown) (bool, error) {
	max := 0
	for _, b := range breakdown {
		if b.Cost > max {
			max = b.Cost
		}
	}
	env := map[string]interface{}{
		"literals": breakdown,
		"max":      max,
	}

	program, err := t.cache.compileAndCache(expression, env)
	if err != nil {
		return false, fmt.Errorf("compile cost trace expression: %w", err)
	}
	result, err := expr.Run(program, env)
	if err != nil {
		return false, fmt.Errorf("evaluate cost trace expression: %w", err)
	}
	boolResult, ok := result.(bool)
	if !ok {
		return false, fmt.Errorf("cost trace expression must return bool, got %T", result)
	}
	return boolResult, nil
}
