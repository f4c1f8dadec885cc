package domain

import "errors"

// Sentinel errors for the pipeline's error taxonomy (spec.md §7).
var (
	// ErrNoValidInterpretation is raised when the DNF built from a
	// command is empty.
	ErrNoValidInterpretation = errors.New("sentence has no valid interpretation in world")
	// ErrInfeasible is raised when "all" is combined with "take" over
	// more than one candidate.
	ErrInfeasible = errors.New("only one object can be held at a time")
	// ErrSearchTimeout is raised when A* exceeds its time budget.
	ErrSearchTimeout = errors.New("search for goal timed out")
	// ErrInternal covers unexpected pipeline states, e.g. an unrecognized
	// relation reaching a predicate that doesn't know it.
	ErrInternal = errors.New("internal planning error")
)

// DescriptionAmbiguousError is raised when two distinct candidates share
// the same full "size color form" description, so no distinguishing
// clarification can be phrased.
type DescriptionAmbiguousError struct {
	Description string
}

func (e *DescriptionAmbiguousError) Error() string {
	return "ambiguous description: " + e.Description
}

// ClarificationError is raised when a "the" quantifier leaves more than
// one admissible binding. Descriptions is the ordered list of the
// alternatives' full "size color form" descriptions, for the caller to
// present to the user.
type ClarificationError struct {
	Descriptions []string
}

func (e *ClarificationError) Error() string {
	return "an ambiguity exists, did you mean: " + joinDescriptions(e.Descriptions)
}

// ParseChoiceError is raised at the pipeline boundary when multiple
// parses each yielded exactly one interpretation, and the user must pick
// which one was intended.
type ParseChoiceError struct {
	Descriptions []string
}

func (e *ParseChoiceError) Error() string {
	return "the utterance can be understood in different ways: " + joinDescriptions(e.Descriptions)
}

func joinDescriptions(ds []string) string {
	out := ""
	for i, d := range ds {
		if i > 0 {
			out += " | "
		}
		out += d
	}
	return out
}
