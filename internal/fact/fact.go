// Package fact defines the input boundary of the prover core: the stream of
// typed facts an external environment feeds in, and the goal a proof search
// is trying to settle. Everything that turns program syntax into a Fact
// (parsing, module/import resolution) lives outside this module; fact only
// carries the already-elaborated result.
package fact

import "sooth/internal/value"

// SourceType discriminates where a Source came from, mirroring the
// original's proposition::SourceType. Anonymous covers facts with no
// user-facing name (e.g. an inline "assert"); the Name fields are empty
// strings when SourceType carries no name.
type SourceType uint8

const (
	Axiom SourceType = iota
	Theorem
	Anonymous
	TypeDefinition
	ConstantDefinition
	Premise
	NegatedGoal
)

func (t SourceType) String() string {
	switch t {
	case Axiom:
		return "Axiom"
	case Theorem:
		return "Theorem"
	case Anonymous:
		return "Anonymous"
	case TypeDefinition:
		return "TypeDefinition"
	case ConstantDefinition:
		return "ConstantDefinition"
	case Premise:
		return "Premise"
	case NegatedGoal:
		return "NegatedGoal"
	default:
		return "Unknown"
	}
}

// Range is a half-open span in the module's original source text, carried
// only so diagnostics can point somewhere; the prover core never inspects
// its contents.
type Range struct {
	StartLine, StartColumn int
	EndLine, EndColumn     int
}

// Source describes where a Fact came from: which module, what kind of
// declaration it was, and whether it's eligible to be recorded as a cached
// premise across module boundaries.
type Source struct {
	ModuleID   string
	Range      Range
	Type       SourceType
	Name       string
	MemberName string // set for TypeDefinition (type, member) and ConstantDefinition (value, name)

	// Importable is false for premises, negated goals, and other facts local
	// to a single proof search. The BuildCache must never record a
	// non-importable source as a cached premise (spec.md 6).
	Importable bool

	// Depth counts how many levels of "this depends on a hypothesis that
	// depends on a hypothesis" separate this source from the top-level
	// theorem being proved.
	Depth int
}

// MockSource builds a Source suitable for unit tests that don't care about
// provenance, mirroring the original's Source::mock().
func MockSource() Source {
	return Source{ModuleID: "mock", Type: Anonymous, Importable: false}
}

// IsNegatedGoal reports whether this source is the goal's negation, the one
// SourceType the Prover treats specially when scoring proof steps.
func (s Source) IsNegatedGoal() bool { return s.Type == NegatedGoal }

// Fact is one of the three things an environment can hand the normalizer:
// a proposition to take as true (at some Truthiness), a typeclass instance
// declaration, or a constant definition whose body can be unfolded on demand.
type Fact interface {
	isFact()
	Source() Source
}

// Proposition asserts that Value holds.
type Proposition struct {
	Value Value
	Src   Source
}

func (Proposition) isFact()          {}
func (p Proposition) Source() Source { return p.Src }

// Instance declares that Class implements Typeclass.
type Instance struct {
	Class     value.Type
	Typeclass string
	Src       Source
}

func (Instance) isFact()          {}
func (i Instance) Source() Source { return i.Src }

// Definition gives Constant a concrete Body, consumed by the normalizer's
// monomorphization pass the first time a monomorph of Constant is seen.
type Definition struct {
	Constant value.ConstantRef
	Body     Value
	Src      Source
}

func (Definition) isFact()          {}
func (d Definition) Source() Source { return d.Src }

// Value is an alias so fact.go reads self-contained without forcing every
// caller to import the value package under a different name.
type Value = value.LogicValue

// Goal is either "prove this proposition" or "solve for this term's value".
type Goal interface {
	isGoal()
}

// Prove asks the prover to refute the negation of Proposition.
// InconsistencyOkay controls how a contradiction found without using the
// negated goal is reported (Outcome.Inconsistent vs Outcome.Success).
type Prove struct {
	Proposition       Value
	InconsistencyOkay bool
}

func (Prove) isGoal() {}

// Solve asks the prover to find an equality that pins down Term's value.
type Solve struct {
	Term Value
}

func (Solve) isGoal() {}
