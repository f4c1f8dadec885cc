// Package pipeline wires the per-utterance stages together: entity
// resolution, DNF goal construction, disambiguation, state-space search,
// and plan emission (spec.md §2's data-flow diagram), and implements the
// multi-parse error-suppression policy from spec.md §7. Every other
// package in this module is a pure, synchronous function of its inputs;
// this is the one place that sequences them and attaches run-scoped
// structured logging, mirroring how the teacher's DAGExecutor sequences
// wave execution around its own pure node logic.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/smilemakc/shrdlite-go/internal/config"
	"github.com/smilemakc/shrdlite-go/internal/disambiguate"
	"github.com/smilemakc/shrdlite-go/internal/domain"
	"github.com/smilemakc/shrdlite-go/internal/formula"
	"github.com/smilemakc/shrdlite-go/internal/heuristic"
	"github.com/smilemakc/shrdlite-go/internal/logger"
	"github.com/smilemakc/shrdlite-go/internal/physics"
	"github.com/smilemakc/shrdlite-go/internal/planemitter"
	"github.com/smilemakc/shrdlite-go/internal/resolver"
	"github.com/smilemakc/shrdlite-go/internal/search"
	"github.com/smilemakc/shrdlite-go/internal/worldgraph"
)

// Pipeline holds the tunables a single process needs across many
// invocations: the search timeout and a shared heuristic cost tracer
// (its compiled-expression cache is worth reusing across runs).
type Pipeline struct {
	log           *logger.Logger
	searchTimeout time.Duration
	tracer        *heuristic.CostTracer
}

// New builds a Pipeline from cfg, logging every stage through log.
func New(cfg *config.Config, log *logger.Logger) *Pipeline {
	if log == nil {
		log = logger.New(cfg.Logging)
	}
	return &Pipeline{
		log:           log,
		searchTimeout: cfg.Search.TimeoutDuration(),
		tracer:        heuristic.NewCostTracer(cfg.Cache.TraceExpressionCapacity),
	}
}

// Tracer exposes the pipeline's shared CostTracer for callers (e.g. the
// CLI harness) that want to log a heuristic breakdown for diagnostics.
func (p *Pipeline) Tracer() *heuristic.CostTracer { return p.tracer }

// Result is one parse's complete, successful outcome: the goal formula
// that was built and the narrated plan extracted from the search path.
type Result struct {
	ParseIndex int
	DNF        domain.DNF
	Plan       []string
	// Label is a short human-readable gloss of this interpretation,
	// used to enumerate alternatives in a ParseChoiceError.
	Label string
}

type attemptFailure struct {
	parseIndex int
	err        error
}

// Run executes spec.md §7's multi-parse policy: the full pipeline runs
// independently for every candidate parse, and a parse's error is
// suppressed as long as at least one other parse produces a complete
// plan. Exactly one success returns that plan directly; more than one
// success means the parses were genuinely ambiguous and a
// ParseChoiceError enumerates them (spec.md §6's "[parsing]" channel,
// resolved via the "(N) <text>" shortcut and SelectParse); zero
// successes surfaces the first parse's error.
func (p *Pipeline) Run(ctx context.Context, parses []domain.Command, world domain.WorldState) (Result, error) {
	if len(parses) == 0 {
		return Result{}, fmt.Errorf("%w: no parses to interpret", domain.ErrInternal)
	}

	runID := uuid.NewString()
	log := p.log.With("run_id", runID, "parse_count", len(parses))
	log.Info("pipeline run started")

	var successes []Result
	var failures []attemptFailure
	for i, cmd := range parses {
		res, err := p.runOne(ctx, log, i, cmd, world)
		if err != nil {
			failures = append(failures, attemptFailure{parseIndex: i, err: err})
			log.Debug("parse attempt failed", "parse_index", i, "error", err.Error())
			continue
		}
		successes = append(successes, res)
	}

	switch {
	case len(successes) == 1:
		log.Info("pipeline run resolved to a single interpretation", "parse_index", successes[0].ParseIndex)
		return successes[0], nil
	case len(successes) > 1:
		descs := make([]string, len(successes))
		for i, s := range successes {
			descs[i] = s.Label
		}
		log.Info("pipeline run found multiple interpretations", "count", len(successes))
		return Result{}, &domain.ParseChoiceError{Descriptions: descs}
	default:
		if len(failures) == 0 {
			return Result{}, domain.ErrNoValidInterpretation
		}
		log.Warn("all parses failed", "error", failures[0].err.Error())
		return Result{}, failures[0].err
	}
}

// SelectParse resolves the "(N) <text>" clarification shortcut
// (spec.md §6): it re-runs the pipeline for exactly parses[n], the
// interpretation the user picked out of a prior ParseChoiceError.
func (p *Pipeline) SelectParse(ctx context.Context, parses []domain.Command, n int, world domain.WorldState) (Result, error) {
	if n < 0 || n >= len(parses) {
		return Result{}, fmt.Errorf("%w: parse index %d out of range", domain.ErrInternal, n)
	}
	return p.Run(ctx, []domain.Command{parses[n]}, world)
}

// runOne runs the full single-parse pipeline: resolve, build,
// disambiguate, search, emit.
func (p *Pipeline) runOne(ctx context.Context, log *logger.Logger, index int, cmd domain.Command, world domain.WorldState) (Result, error) {
	in, slots, err := resolveCommand(cmd, world)
	if err != nil {
		return Result{}, err
	}
	log.Debug("resolved entities", "parse_index", index)

	dnf, err := formula.Build(in, world)
	if err != nil {
		return Result{}, err
	}
	log.Debug("built goal formula", "parse_index", index, "disjuncts", len(dnf))

	if err := disambiguate.Check(dnf, world, slots...); err != nil {
		return Result{}, err
	}

	label := describeDNF(world, dnf)
	objects := world.Objects

	if isGoalSatisfied(dnf, world) {
		log.Info("goal already satisfied in start state", "parse_index", index)
		return Result{ParseIndex: index, DNF: dnf, Plan: planemitter.EmitAlreadyTrue(), Label: label}, nil
	}

	start := domain.NodeFromWorldState(world)
	graph := func(n domain.WorldStateNode) []domain.Edge {
		return worldgraph.Successors(n, physics.IsStackingAllowed, objects)
	}
	h := func(n domain.WorldStateNode) int {
		return heuristic.Estimate(dnf, n, objects)
	}
	goalTestFn := func(n domain.WorldStateNode) bool {
		return goalTest(dnf, n, objects)
	}

	p.traceExpensiveStart(log, index, dnf, start, objects)

	result := search.AStar(ctx, start, graph, goalTestFn, h, p.searchTimeout)
	if result.TimedOut {
		log.Warn("search timed out", "parse_index", index)
		return Result{}, domain.ErrSearchTimeout
	}
	log.Info("search found a plan", "parse_index", index, "cost", result.Cost)

	plan := planemitter.Emit(result.Path, world.Arm, objects)
	return Result{ParseIndex: index, DNF: dnf, Plan: plan, Label: label}, nil
}

// traceExpensiveStart logs a debug line naming any conjunction whose
// costliest literal in the start state already costs more than four
// actions, using the shared CostTracer so the expression driving the
// threshold stays data rather than code (spec.md §3's expr-lang wiring).
func (p *Pipeline) traceExpensiveStart(log *logger.Logger, index int, dnf domain.DNF, start domain.WorldStateNode, objects map[string]domain.ObjectDefinition) {
	if p.tracer == nil {
		return
	}
	for i, conj := range dnf {
		breakdown := heuristic.Breakdown(conj, start, objects)
		expensive, err := p.tracer.Trace("max > 4", breakdown)
		if err != nil {
			log.Debug("cost trace failed", "parse_index", index, "conjunct", i, "error", err.Error())
			continue
		}
		if expensive {
			log.Debug("expensive conjunct in start state", "parse_index", index, "conjunct", i, "breakdown", breakdown)
		}
	}
}

// resolveCommand resolves every entity a Command references (spec.md
// §3: take carries Entity only, put carries Location only, move carries
// both) and records which resulting DNF argument columns came from a
// "the" quantifier, for the disambiguator to examine.
func resolveCommand(cmd domain.Command, world domain.WorldState) (formula.Input, []disambiguate.Slot, error) {
	in := formula.Input{Command: cmd}
	var slots []disambiguate.Slot

	if cmd.Kind == domain.CommandTake || cmd.Kind == domain.CommandMove {
		if cmd.Entity == nil {
			return formula.Input{}, nil, fmt.Errorf("%w: %s requires an entity", domain.ErrInternal, cmd.Kind)
		}
		main := resolver.ResolveEntity(*cmd.Entity, world)
		in.Main = &main
		if cmd.Entity.Quantifier == domain.QuantifierThe {
			slots = append(slots, disambiguate.SlotTarget)
		}
	}

	if cmd.Kind == domain.CommandPut || cmd.Kind == domain.CommandMove {
		if cmd.Location == nil {
			return formula.Input{}, nil, fmt.Errorf("%w: %s requires a location", domain.ErrInternal, cmd.Kind)
		}
		goal := resolver.ResolveEntity(cmd.Location.Entity, world)
		in.Goal = &goal
		if cmd.Location.Entity.Quantifier == domain.QuantifierThe {
			slots = append(slots, disambiguate.SlotGoal)
		}

		if cmd.Location.Relation == domain.RelBetween {
			if cmd.Location.Entity2 == nil {
				return formula.Input{}, nil, fmt.Errorf("%w: between requires a second entity", domain.ErrInternal)
			}
			goal2 := resolver.ResolveEntity(*cmd.Location.Entity2, world)
			in.Goal2 = &goal2
			if cmd.Location.Entity2.Quantifier == domain.QuantifierThe {
				slots = append(slots, disambiguate.SlotGoal2)
			}
		}
	}

	return in, slots, nil
}

// isGoalSatisfied reports whether dnf already holds in world's current
// arrangement, in which case no search is needed at all (spec.md §4.8,
// "That is already true!").
func isGoalSatisfied(dnf domain.DNF, world domain.WorldState) bool {
	return goalTest(dnf, domain.NodeFromWorldState(world), world.Objects)
}

// goalTest implements spec.md §4.7's goal predicate: some conjunction of
// dnf has every literal satisfied by physics.HasValidLocation in n.
// objects is threaded in separately from WorldStateNode because object
// identities never change across a search (spec.md §3) but
// form-sensitive relations (inside/ontop) still need them.
func goalTest(dnf domain.DNF, n domain.WorldStateNode, objects map[string]domain.ObjectDefinition) bool {
	w := domain.WorldState{Holding: n.Holding, Stacks: n.Stacks, Objects: objects}
	for _, conj := range dnf {
		if conjunctionSatisfied(conj, w) {
			return true
		}
	}
	return false
}

func conjunctionSatisfied(conj domain.Conjunction, w domain.WorldState) bool {
	for _, lit := range conj {
		a, b, c := litArgs(lit)
		if !physics.HasValidLocation(w, lit.Relation, a, b, c) {
			return false
		}
	}
	return true
}

func litArgs(lit domain.Literal) (a, b, c string) {
	if len(lit.Args) > 0 {
		a = lit.Args[0]
	}
	if len(lit.Args) > 1 {
		b = lit.Args[1]
	}
	if len(lit.Args) > 2 {
		c = lit.Args[2]
	}
	return a, b, c
}

// describeDNF glosses an interpretation for ParseChoiceError enumeration:
// the relation and minimal descriptions of its first conjunction's
// arguments, e.g. "inside(the ball, the large box)".
func describeDNF(world domain.WorldState, dnf domain.DNF) string {
	if dnf.TriviallyTrue() || len(dnf) == 0 || len(dnf[0]) == 0 {
		return "no change"
	}
	lit := dnf[0][0]
	parts := make([]string, 0, len(lit.Args))
	for _, id := range lit.Args {
		parts = append(parts, "the "+physics.MinimalDescription(world, id))
	}
	return fmt.Sprintf("%s(%s)", lit.Relation, joinComma(parts))
}

func joinComma(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}
