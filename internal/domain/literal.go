package domain

// Literal is an elementary spatial assertion rel(args...). Polarity is
// carried for forward compatibility but every generator in this module
// only ever produces true literals (spec.md §9, "Goal polarity").
type Literal struct {
	Polarity bool
	Relation Relation
	Args     []string
}

// NewLiteral builds a positive literal, the only kind this pipeline
// generates.
func NewLiteral(rel Relation, args ...string) Literal {
	return Literal{Polarity: true, Relation: rel, Args: append([]string(nil), args...)}
}

// Conjunction is an ordered AND of literals.
type Conjunction []Literal

// DNF is an ordered OR of conjunctions. An empty DNF is unsatisfiable; a
// DNF containing a single empty Conjunction is trivially true.
type DNF []Conjunction

// Unsatisfiable reports whether this DNF can never be true.
func (d DNF) Unsatisfiable() bool {
	return len(d) == 0
}

// TriviallyTrue reports whether this DNF is satisfied by any state at all
// (a single empty conjunction).
func (d DNF) TriviallyTrue() bool {
	return len(d) == 1 && len(d[0]) == 0
}
