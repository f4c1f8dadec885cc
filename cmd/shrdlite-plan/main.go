// Command shrdlite-plan is a developer harness for the blocks-world
// command-interpretation pipeline (spec.md §6). It reads a pre-parsed
// Command (or a JSON array of candidate parses, for structurally
// ambiguous utterances per spec.md §7) and a WorldState from JSON files,
// runs the pipeline, and prints the resulting plan lines or the
// user-facing error string. The surface grammar that produces parse
// trees and the rendering harness that executes actions are out of
// scope (spec.md §1) — this binary only exercises the core.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/smilemakc/shrdlite-go/internal/config"
	"github.com/smilemakc/shrdlite-go/internal/domain"
	"github.com/smilemakc/shrdlite-go/internal/logger"
	"github.com/smilemakc/shrdlite-go/internal/pipeline"
)

const usage = `shrdlite-plan - blocks-world command engine CLI

USAGE:
    shrdlite-plan -command <file.json> -world <file.json> [-select N]

OPTIONS:
    -command <file>    Path to a parsed Command, or a JSON array of
                        candidate parses (spec.md §6/§7)
    -world <file>       Path to the WorldState JSON
    -select <N>         Resolve a prior "(N) <text>" clarification by
                         re-running only candidate parse N
    -env <file>         .env file to load before reading SHRDLITE_* vars

EXAMPLES:
    shrdlite-plan -command take-white-ball.json -world small-world.json
    shrdlite-plan -command ambiguous.json -world small-world.json -select 1
`

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("shrdlite-plan", flag.ContinueOnError)
	commandPath := fs.String("command", "", "path to parsed Command JSON")
	worldPath := fs.String("world", "", "path to WorldState JSON")
	selectIdx := fs.Int("select", -1, "resolve a parse choice by index")
	envPath := fs.String("env", "", "optional .env file path")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	if err := fs.Parse(args); err != nil {
		return 1
	}

	if *envPath != "" {
		_ = godotenv.Load(*envPath)
	}

	if *commandPath == "" || *worldPath == "" {
		fmt.Fprint(os.Stderr, usage)
		return 1
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Planning error:", err)
		return 1
	}

	log := logger.New(cfg.Logging)
	logger.SetDefault(log)

	runID := uuid.NewString()
	log = log.With("run_id", runID)

	parses, err := loadParses(*commandPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Parsing error:", err)
		return 1
	}

	world, err := loadWorld(*worldPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Parsing error:", err)
		return 1
	}

	log.Info("loaded invocation", "parses", len(parses), "stacks", len(world.Stacks))

	pl := pipeline.New(cfg, log)
	ctx := context.Background()

	var result pipeline.Result
	if *selectIdx >= 0 {
		result, err = pl.SelectParse(ctx, parses, *selectIdx, world)
	} else {
		result, err = pl.Run(ctx, parses, world)
	}
	if err != nil {
		printError(err)
		return 1
	}

	for _, line := range result.Plan {
		fmt.Println(line)
	}
	return 0
}

func loadParses(path string) ([]domain.Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read command file: %w", err)
	}
	var parses []domain.Command
	if err := json.Unmarshal(data, &parses); err == nil && len(parses) > 0 {
		return parses, nil
	}
	var single domain.Command
	if err := json.Unmarshal(data, &single); err != nil {
		return nil, fmt.Errorf("decode command: %w", err)
	}
	return []domain.Command{single}, nil
}

func loadWorld(path string) (domain.WorldState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.WorldState{}, fmt.Errorf("read world file: %w", err)
	}
	var world domain.WorldState
	if err := json.Unmarshal(data, &world); err != nil {
		return domain.WorldState{}, fmt.Errorf("decode world: %w", err)
	}
	return world, nil
}

// printError renders err in the exact user-facing shapes spec.md §6
// enumerates.
func printError(err error) {
	var clarify *domain.ClarificationError
	var parseChoice *domain.ParseChoiceError
	var descAmbiguous *domain.DescriptionAmbiguousError

	switch {
	case errors.As(err, &clarify):
		fmt.Fprintf(os.Stderr, "An ambiguity exists, did you mean:%s\n", bulletedChoices(clarify.Descriptions))
	case errors.As(err, &descAmbiguous):
		fmt.Fprintf(os.Stderr, "An ambiguity exists, did you mean: - %s?\n", descAmbiguous.Description)
	case errors.As(err, &parseChoice):
		fmt.Fprintf(os.Stderr, "The utterance can be understood in different ways, do you want:%s\n", indexedChoices(parseChoice.Descriptions))
	case errors.Is(err, domain.ErrNoValidInterpretation):
		fmt.Fprintln(os.Stderr, "Sentence has no valid interpretation in world")
	case errors.Is(err, domain.ErrInfeasible):
		fmt.Fprintln(os.Stderr, "Only one object can be held at a time!")
	case errors.Is(err, domain.ErrSearchTimeout):
		fmt.Fprintln(os.Stderr, "Planning error: Search for goal timed out!")
	default:
		fmt.Fprintln(os.Stderr, "Planning error:", err)
	}
}

func bulletedChoices(descriptions []string) string {
	out := ""
	for _, d := range descriptions {
		out += fmt.Sprintf(" - %s?", d)
	}
	return out
}

func indexedChoices(descriptions []string) string {
	out := ""
	for i, d := range descriptions {
		out += fmt.Sprintf(" (%d) %s", i, d)
	}
	return out
}
