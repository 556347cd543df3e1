// Package proofstep defines ProofStep, the unit of work the given-clause
// loop moves between the PassiveSet and the ActiveSet: a derived clause
// together with enough provenance (Rule, Truthiness, depth, proof size) to
// reconstruct a proof and to decide how eagerly it should be pursued.
package proofstep

import (
	"fmt"

	"sooth/internal/clause"
	"sooth/internal/fact"
)

// Truthiness categorizes which part of the problem a clause derives from.
type Truthiness uint8

const (
	// Factual clauses are true globally, independent of the current proof.
	Factual Truthiness = iota
	// Hypothetical clauses are assumed true for the scope of this proof.
	Hypothetical
	// Counterfactual clauses derive from the negated goal; deriving an
	// empty clause from one is the success condition.
	Counterfactual
)

func (t Truthiness) String() string {
	switch t {
	case Factual:
		return "Factual"
	case Hypothetical:
		return "Hypothetical"
	case Counterfactual:
		return "Counterfactual"
	default:
		return "Unknown"
	}
}

// Combine returns the more "untruthy" of the two truthinesses: Counterfactual
// absorbs everything, Hypothetical absorbs Factual, Factual is the identity.
func (t Truthiness) Combine(other Truthiness) Truthiness {
	if t == Counterfactual || other == Counterfactual {
		return Counterfactual
	}
	if t == Hypothetical || other == Hypothetical {
		return Hypothetical
	}
	return Factual
}

// Rule explains how a ProofStep's clause was derived. Every StepId a Rule
// references is strictly smaller than the id of the step that carries it
// (spec.md 8, property 7), since a rule can only cite already-activated
// steps or already-pushed passive ones.
type Rule interface {
	// Premises lists the active-set step ids this rule directly depends on.
	Premises() []int
	Name() string
}

// Assumption marks a step introduced directly by the Normalizer from a Fact
// or goal, with no inference involved.
type Assumption struct {
	Source fact.Source
}

func (Assumption) Premises() []int { return nil }
func (Assumption) Name() string    { return "Assumption" }

// Resolution combines a positive and a negative literal from two steps.
type Resolution struct {
	PositiveID, NegativeID int
}

func (r Resolution) Premises() []int { return []int{r.PositiveID, r.NegativeID} }
func (Resolution) Name() string      { return "Resolution" }

// Rewrite replaces a subterm of TargetID's literal using PatternID's
// oriented equation.
type Rewrite struct {
	PatternID, TargetID int
}

func (r Rewrite) Premises() []int { return []int{r.PatternID, r.TargetID} }
func (Rewrite) Name() string      { return "Rewrite" }
func (Rewrite) IsRewrite() bool   { return true }

// EqualityResolution, EqualityFactoring, FunctionElimination are
// single-source inferences performed directly on an incoming step.
type EqualityResolution struct{ Source int }

func (r EqualityResolution) Premises() []int { return []int{r.Source} }
func (EqualityResolution) Name() string      { return "Equality Resolution" }

type EqualityFactoring struct{ Source int }

func (r EqualityFactoring) Premises() []int { return []int{r.Source} }
func (EqualityFactoring) Name() string      { return "Equality Factoring" }

type FunctionElimination struct{ Source int }

func (r FunctionElimination) Premises() []int { return []int{r.Source} }
func (FunctionElimination) Name() string       { return "Function Elimination" }

// Specialization records a synthesized clause that instantiates PatternID's
// general equation to a concrete one, used only when reconstructing a term
// graph contradiction's rewrite chain (it is never itself activated).
type Specialization struct {
	PatternID, InspirationID int
}

func (r Specialization) Premises() []int { return []int{r.PatternID} }
func (Specialization) Name() string      { return "Specialization" }

// MultipleRewrite is the final step produced when the TermGraph discovers a
// contradiction: InequalityID is the active disequality, ActiveIDs the
// activated equality steps used in the rewrite chain, and PassiveIDs the
// synthesized Specialization steps (indices into the Prover's
// useful-passive list) needed to explain it.
type MultipleRewrite struct {
	InequalityID int
	ActiveIDs    []int
	PassiveIDs   []int
}

func (r MultipleRewrite) Premises() []int {
	out := append([]int{r.InequalityID}, r.ActiveIDs...)
	return out
}
func (MultipleRewrite) Name() string { return "Term Graph" }

// PassiveContradiction is the final step produced when N steps still
// sitting in the PassiveSet already imply false without needing activation.
type PassiveContradiction struct {
	N int
}

func (r PassiveContradiction) Premises() []int { return nil }
func (PassiveContradiction) Name() string      { return "Passive Contradiction" }

// IsRewrite and IsAssumption are convenience type tests mirroring the
// original's Rule::is_rewrite / Rule::is_assumption.
func IsRewrite(r Rule) bool {
	_, ok := r.(Rewrite)
	return ok
}

func IsAssumption(r Rule) bool {
	_, ok := r.(Assumption)
	return ok
}

// ProofStep is a derived clause plus the heuristic bookkeeping the
// PassiveSet's priority order and the ActiveSet's depth/cheapness tracking
// need. Immutable once constructed; Simplify returns a new value rather
// than mutating in place.
type ProofStep struct {
	Clause               clause.Clause
	Truthiness           Truthiness
	Rule                 Rule
	SimplificationRules  []int
	ProofSize            uint32
	Cheap                bool
	Depth                uint32
	atomCount            uint32
}

func build(c clause.Clause, truthiness Truthiness, rule Rule, simplificationRules []int, proofSize uint32, cheap bool, depth uint32) ProofStep {
	return ProofStep{
		Clause:              c,
		Truthiness:          truthiness,
		Rule:                rule,
		SimplificationRules: simplificationRules,
		ProofSize:           proofSize,
		Cheap:               cheap,
		Depth:               depth,
		atomCount:           uint32(c.AtomCount()),
	}
}

// AtomCount is the cached literal-weight of the step's clause.
func (s ProofStep) AtomCount() uint32 { return s.atomCount }

// NewAssumption builds a step with no inference history, produced directly
// by the Normalizer.
func NewAssumption(c clause.Clause, truthiness Truthiness, source fact.Source) ProofStep {
	return build(c, truthiness, Assumption{Source: source}, nil, 0, true, 0)
}

// NewDirect builds a step that depends on exactly one already-activated
// step, via a rule the caller has already constructed (equality resolution,
// equality factoring, function elimination).
func NewDirect(activated *ProofStep, rule Rule, c clause.Clause) ProofStep {
	return build(c, activated.Truthiness, rule, nil, activated.ProofSize+1, true, activated.Depth)
}

// NewResolution builds a step via binary resolution between a positive and
// a negative source step. Cheap iff the resolvent is a strict subclause of
// either parent.
func NewResolution(positiveID int, positiveStep *ProofStep, negativeID int, negativeStep *ProofStep, c clause.Clause) ProofStep {
	cheap := positiveStep.Clause.Contains(c) || negativeStep.Clause.Contains(c)
	depth := maxU32(positiveStep.Depth, negativeStep.Depth)
	if !cheap {
		depth++
	}
	return build(
		c,
		positiveStep.Truthiness.Combine(negativeStep.Truthiness),
		Resolution{PositiveID: positiveID, NegativeID: negativeID},
		nil,
		positiveStep.ProofSize+negativeStep.ProofSize+1,
		cheap,
		depth,
	)
}

// NewRewrite builds a step that rewrote a subterm of targetStep's single
// literal using patternStep's oriented equation, producing the single-
// literal (or empty, if impossible) clause c. Cheap iff c's literal strictly
// decreases under the extended KBO compared to the target's literal.
func NewRewrite(patternID int, patternStep *ProofStep, targetID int, targetStep *ProofStep, c clause.Clause) ProofStep {
	var cheap bool
	if c.IsEmpty() {
		cheap = true
	} else {
		cheap = c.Literals[0].ExtendedKBOCompare(targetStep.Clause.Literals[0]) < 0
	}
	depth := maxU32(patternStep.Depth, targetStep.Depth)
	if !cheap {
		depth++
	}
	return build(
		c,
		patternStep.Truthiness.Combine(targetStep.Truthiness),
		Rewrite{PatternID: patternID, TargetID: targetID},
		nil,
		patternStep.ProofSize+targetStep.ProofSize+1,
		cheap,
		depth,
	)
}

// NewSpecialization builds a (never activated) step recording a concrete
// equality instance used to explain a term graph rewrite chain.
func NewSpecialization(patternID, inspirationID int, patternStep *ProofStep, c clause.Clause) ProofStep {
	return build(c, patternStep.Truthiness, Specialization{PatternID: patternID, InspirationID: inspirationID}, nil, patternStep.ProofSize+1, true, patternStep.Depth)
}

// NewMultipleRewrite builds the final, contradiction-witnessing step for a
// term graph closure.
func NewMultipleRewrite(inequalityID int, activeIDs, passiveIDs []int, truthiness Truthiness, depth uint32) ProofStep {
	return build(clause.Clause{}, truthiness, MultipleRewrite{InequalityID: inequalityID, ActiveIDs: activeIDs, PassiveIDs: passiveIDs}, nil, 1, true, depth)
}

// NewPassiveContradiction builds the final step for a contradiction found
// entirely among steps still sitting in the PassiveSet.
func NewPassiveContradiction(n int) ProofStep {
	return build(clause.Clause{}, Counterfactual, PassiveContradiction{N: n}, nil, 1, true, 0)
}

// Simplify returns a successor step whose clause has been reduced by
// newTruthiness-preserving simplification, recording newRules as additional
// simplification dependencies.
func (s ProofStep) Simplify(newClause clause.Clause, newRules []int, newTruthiness Truthiness) ProofStep {
	rules := make([]int, 0, len(s.SimplificationRules)+len(newRules))
	rules = append(rules, s.SimplificationRules...)
	rules = append(rules, newRules...)
	return build(newClause, newTruthiness, s.Rule, rules, s.ProofSize, s.Cheap, s.Depth)
}

// Mock builds a step with synthetic heuristic data (Factual, depth 0, an
// Assumption over a mock source) for unit tests that only care about clause
// shape.
func Mock(c clause.Clause) ProofStep {
	return build(c, Factual, Assumption{Source: fact.MockSource()}, nil, 0, true, 0)
}

// Dependencies lists every step id (active or, for MultipleRewrite/
// PassiveContradiction, dual-purpose) this step's rule and simplification
// history reference.
func (s ProofStep) Dependencies() []int {
	out := append([]int(nil), s.Rule.Premises()...)
	out = append(out, s.SimplificationRules...)
	return out
}

func (s ProofStep) DependsOn(id int) bool {
	for _, d := range s.Dependencies() {
		if d == id {
			return true
		}
	}
	return false
}

// FinishesProof reports whether this step's clause is the empty clause.
func (s ProofStep) FinishesProof() bool { return s.Clause.IsEmpty() }

// IsNegatedGoal reports whether this step is the Assumption produced by
// normalizing the negated goal.
func (s ProofStep) IsNegatedGoal() bool {
	a, ok := s.Rule.(Assumption)
	return ok && a.Source.IsNegatedGoal()
}

// MaxDepth bounds how far depth distinguishes scores; past this, every step
// is scored identically on the depth axis.
const MaxDepth = 3

// Score is the PassiveSet's max-heap ordering key: contradictions sort
// highest; otherwise (negadepth, tier, heuristic) lexicographically.
type Score struct {
	Contradiction bool
	Negadepth     int32
	Tier          int32
	Heuristic     int32
}

// Less reports whether s sorts below other (s is less preferred).
func (s Score) Less(other Score) bool {
	if s.Contradiction != other.Contradiction {
		return other.Contradiction
	}
	if s.Contradiction {
		return false
	}
	if s.Negadepth != other.Negadepth {
		return s.Negadepth < other.Negadepth
	}
	if s.Tier != other.Tier {
		return s.Tier < other.Tier
	}
	return s.Heuristic < other.Heuristic
}

// IsBasic reports whether this score is shallow: a contradiction, or a
// depth below MaxDepth.
func (s Score) IsBasic() bool {
	if s.Contradiction {
		return true
	}
	return s.Negadepth > -MaxDepth
}

// ComputeScore computes the deterministic tier described in spec.md 4.5: Factual
// facts first, then the negated goal, then other hypothetical assumptions,
// then everything else.
func (s ProofStep) ComputeScore() Score {
	if s.Clause.IsEmpty() {
		return Score{Contradiction: true}
	}

	var tier int32
	switch s.Truthiness {
	case Counterfactual:
		if s.IsNegatedGoal() {
			tier = 3
		} else {
			tier = 1
		}
	case Hypothetical:
		if IsAssumption(s.Rule) {
			tier = 2
		} else {
			tier = 1
		}
	case Factual:
		tier = 4
	}

	heuristic := -int32(s.atomCount) - 2*int32(s.ProofSize)
	if s.Truthiness == Hypothetical {
		heuristic -= 3
	}

	negadepth := -int32(s.Depth)
	if negadepth < -MaxDepth {
		negadepth = -MaxDepth
	}

	return Score{Negadepth: negadepth, Tier: tier, Heuristic: heuristic}
}

// AutomaticReject reports whether this step should never even enter the
// PassiveSet: deep deduction between two library facts is disallowed so
// that a large standard library doesn't make every search quadratic.
func (s ProofStep) AutomaticReject() bool {
	return s.Truthiness == Factual && s.ProofSize > 2
}

func (s ProofStep) String() string {
	return fmt.Sprintf("%s ; rule = %s", s.Clause, s.Rule.Name())
}

func maxU32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}
