// Package prover implements the given-clause loop: Prover owns a
// normalizer, an ActiveSet and a PassiveSet, drives activation until a
// contradiction is found or a resource limit is hit, and reconstructs the
// resulting Proof. Grounded directly on prover.rs: add_fact/set_goal/
// activate_next/activate/search_for_contradiction/get_uncondensed_proof are
// each a close translation of their namesakes there, down to the
// VERIFICATION_LIMIT = 2000 constant and the partial/verification/quick
// search convenience wrappers.
package prover

import (
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"sooth/internal/activeset"
	"sooth/internal/clause"
	"sooth/internal/fact"
	"sooth/internal/normalize"
	"sooth/internal/passiveset"
	"sooth/internal/proofstep"
	"sooth/internal/term"
	"sooth/internal/termgraph"
	"sooth/internal/value"
)

// OutcomeKind is the exhaustive set of ways a proof search can end,
// mirroring the original's Outcome enum.
type OutcomeKind uint8

const (
	Success OutcomeKind = iota
	Exhausted
	Inconsistent
	Interrupted
	Timeout
	Constrained
	ErrorKind
)

func (k OutcomeKind) String() string {
	switch k {
	case Success:
		return "Success"
	case Exhausted:
		return "Exhausted"
	case Inconsistent:
		return "Inconsistent"
	case Interrupted:
		return "Interrupted"
	case Timeout:
		return "Timeout"
	case Constrained:
		return "Constrained"
	case ErrorKind:
		return "Error"
	default:
		return "Unknown"
	}
}

// Outcome is the result of one search_for_contradiction call. Message is
// only set when Kind is ErrorKind.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

func (o Outcome) String() string {
	if o.Kind == ErrorKind {
		return fmt.Sprintf("Error: %s", o.Message)
	}
	return o.Kind.String()
}

func errorOutcome(msg string) Outcome { return Outcome{Kind: ErrorKind, Message: msg} }

// Difficulty classifies a successful proof by how much search it took,
// following get_uncondensed_proof's nonfactual_activations heuristic.
type Difficulty uint8

const (
	Simple Difficulty = iota
	Intermediate
	Complicated
)

func (d Difficulty) String() string {
	switch d {
	case Simple:
		return "Simple"
	case Intermediate:
		return "Intermediate"
	case Complicated:
		return "Complicated"
	default:
		return "Unknown"
	}
}

// StepKind discriminates which id space a StepID belongs to: an activated
// clause, a synthesized-but-never-activated "useful passive" entry, or the
// single terminal step.
type StepKind uint8

const (
	ActiveStep StepKind = iota
	PassiveStep
	FinalStep
)

// StepID names one node of a reconstructed Proof's DAG.
type StepID struct {
	Kind  StepKind
	Index int
}

func (id StepID) String() string {
	switch id.Kind {
	case ActiveStep:
		return fmt.Sprintf("active(%d)", id.Index)
	case PassiveStep:
		return fmt.Sprintf("passive(%d)", id.Index)
	default:
		return "final"
	}
}

// StepEntry pairs a StepID with the ProofStep it names.
type StepEntry struct {
	ID   StepID
	Step proofstep.ProofStep
}

// Proof is the topologically sorted set of steps a successful search used,
// reconstructed by walking Rule.Premises() transitively from the final
// step. NegatedGoal is the value whose refutation the proof constitutes.
type Proof struct {
	NegatedGoal value.LogicValue
	Difficulty  Difficulty
	AllSteps    []StepEntry
}

func newProof(negatedGoal value.LogicValue, difficulty Difficulty) *Proof {
	return &Proof{NegatedGoal: negatedGoal, Difficulty: difficulty}
}

func (p *Proof) addStep(id StepID, step proofstep.ProofStep) {
	p.AllSteps = append(p.AllSteps, StepEntry{ID: id, Step: step})
}

// condense collapses trivial single-parent chains: an Active step that (a)
// was derived from exactly one other Active step via a single-literal
// rule (EqualityResolution, EqualityFactoring or FunctionElimination) and
// (b) is depended on by exactly one other step in the proof is removed from
// AllSteps. The consuming step's rule is left unchanged, so it still cites
// the removed step's id. No original_source/proof.rs was retrieved to
// ground condense()'s exact behavior (only its callers in prover.rs were);
// this condensation is a conservative approximation of "drop steps that add
// no information a reader would want inserted into code".
func (p *Proof) condense() {
	consumers := map[int][]int{} // active id -> indices into AllSteps of entries that depend on it
	for i, e := range p.AllSteps {
		for _, dep := range e.Step.Dependencies() {
			consumers[dep] = append(consumers[dep], i)
		}
	}

	removable := map[int]bool{}
	for i, e := range p.AllSteps {
		if e.ID.Kind != ActiveStep {
			continue
		}
		if !isTrivialSplice(e.Step.Rule) {
			continue
		}
		if len(consumers[e.ID.Index]) != 1 {
			continue
		}
		removable[i] = true
	}
	if len(removable) == 0 {
		return
	}

	kept := p.AllSteps[:0]
	for i, e := range p.AllSteps {
		if removable[i] {
			continue
		}
		kept = append(kept, e)
	}
	p.AllSteps = kept
}

func isTrivialSplice(rule proofstep.Rule) bool {
	switch rule.(type) {
	case proofstep.EqualityResolution, proofstep.EqualityFactoring, proofstep.FunctionElimination:
		return true
	default:
		return false
	}
}

// goalKind distinguishes the two shapes set_goal accepts.
type goalKind uint8

const (
	goalProve goalKind = iota
	goalSolve
)

type normalizedGoal struct {
	kind              goalKind
	negatedConclusion value.LogicValue
	inconsistencyOkay bool
	solveTerm         term.Term
}

// verificationLimit is the activation budget search_for_contradiction uses
// in VerificationSearch; matches prover.rs's VERIFICATION_LIMIT.
const verificationLimit = 2000

// Prover drives a single given-clause loop to completion. It single-owns
// its Normalizer, ActiveSet and PassiveSet for the lifetime of one proof
// search (spec.md 5): nothing here is safe to share across goroutines.
type Prover struct {
	normalizer *normalize.Normalizer
	active     *activeset.ActiveSet
	passive    *passiveset.PassiveSet

	Verbose bool

	finalStep     *proofstep.ProofStep
	usefulPassive []proofstep.ProofStep

	// StopFlags is checked at every loop-iteration boundary; setting any of
	// them externally causes the next search_for_contradiction call to
	// return Interrupted within bounded time.
	StopFlags []*atomic.Bool

	err *string

	nonfactualActivations int
	passiveSeq            int

	goal *normalizedGoal
}

// New builds an empty Prover with no facts and no goal.
func New() *Prover {
	return &Prover{
		normalizer: normalize.New(),
		active:     activeset.New(),
		passive:    passiveset.New(),
	}
}

// Normalizer exposes the owned Normalizer, e.g. so a BuildCache-driven
// filtered prover can be seeded with premises expressed against the same
// NormalizationMap instance used for subsequent goals.
func (p *Prover) Normalizer() *normalize.Normalizer { return p.normalizer }

func (p *Prover) setError(msg string) {
	if p.err == nil {
		p.err = &msg
	}
}

func (p *Prover) pushBatch(steps []proofstep.ProofStep) {
	for _, step := range steps {
		id := p.passiveSeq
		p.passiveSeq++
		p.passive.Push(id, step)
	}
}

// AddFact normalizes f at the given truthiness and pushes the resulting
// Assumption steps onto the passive set. Errors are deferred (spec.md 7):
// they surface at the first SearchForContradiction call, so that callers
// running in a language-server context have a well-defined point to report
// them against the fact or goal's source range.
func (p *Prover) AddFact(f fact.Fact, truthiness proofstep.Truthiness) {
	steps, err := p.normalizer.NormalizeFact(f, truthiness)
	if err != nil {
		p.setError(err.Error())
		return
	}
	p.pushBatch(steps)
}

// SetGoal records the goal this Prover searches for a contradiction to
// settle. Must be called at most once.
func (p *Prover) SetGoal(g fact.Goal, source fact.Source) {
	if p.goal != nil {
		panic("prover: SetGoal called twice")
	}

	switch goal := g.(type) {
	case fact.Prove:
		hypo, counter, negatedConclusion, err := p.normalizer.NormalizeGoal(goal, source)
		if err != nil {
			p.setError(err.Error())
			p.goal = &normalizedGoal{kind: goalProve, inconsistencyOkay: goal.InconsistencyOkay}
			return
		}
		p.pushBatch(hypo)
		p.pushBatch(counter)
		p.goal = &normalizedGoal{
			kind:              goalProve,
			negatedConclusion: negatedConclusion,
			inconsistencyOkay: goal.InconsistencyOkay,
		}

	case fact.Solve:
		t, err := p.normalizer.TermFromValue(goal.Term)
		if err != nil {
			p.setError(err.Error())
			return
		}
		p.goal = &normalizedGoal{kind: goalSolve, solveTerm: t}

	default:
		p.setError(fmt.Sprintf("prover: unsupported goal type %T", g))
	}
}

// NumActivated reports the active set's size.
func (p *Prover) NumActivated() int { return p.active.Len() }

// NumPassive reports the passive set's size.
func (p *Prover) NumPassive() int { return p.passive.Len() }

// NonfactualActivations counts activations of non-Factual steps, used both
// as a search budget and to classify proof Difficulty.
func (p *Prover) NonfactualActivations() int { return p.nonfactualActivations }

// activateNext pops and activates the next passive step, or detects a
// passive-only contradiction. Returns whether the search has terminated.
func (p *Prover) activateNext() bool {
	if p.finalStep != nil {
		return true
	}

	if steps, ok := p.passive.GetContradiction(); ok {
		p.reportPassiveContradiction(steps)
		return true
	}

	_, step, ok := p.passive.Pop()
	if !ok {
		return true
	}

	if step.Truthiness != proofstep.Factual {
		p.nonfactualActivations++
	}

	if step.Clause.IsEmpty() {
		p.finalStep = &step
		return true
	}

	return p.activate(step)
}

// activate generates every inference the newly-popped step enables,
// simplifies and auto-rejects as needed, and pushes the survivors. Mirrors
// prover.rs's activate: double simplification (resimplify passive against
// the new unit, then simplify each newly generated step against the active
// set) keeps every passive entry simplified w.r.t. every active clause.
func (p *Prover) activate(step proofstep.ProofStep) bool {
	if step.Clause.Len() == 1 {
		p.passive.Resimplify(p.active.Simplify)
	}

	_, generated := p.active.Activate(step)

	var newSteps []proofstep.ProofStep
	for _, g := range generated {
		if g.FinishesProof() {
			p.finalStep = &g
			return true
		}
		if g.AutomaticReject() {
			continue
		}
		simplified, ok := p.active.Simplify(g)
		if !ok {
			continue
		}
		if simplified.Clause.IsEmpty() {
			p.finalStep = &simplified
			return true
		}
		newSteps = append(newSteps, simplified)
	}
	p.pushBatch(newSteps)

	if contradiction, ok := p.active.Graph.GetContradiction(); ok {
		p.reportTermGraphContradiction(contradiction)
		return true
	}

	return false
}

func (p *Prover) reportPassiveContradiction(steps []proofstep.ProofStep) {
	p.usefulPassive = append(p.usefulPassive, steps...)
	final := proofstep.NewPassiveContradiction(len(p.usefulPassive))
	truthiness := proofstep.Factual
	for _, s := range steps {
		truthiness = truthiness.Combine(s.Truthiness)
	}
	final.Truthiness = truthiness
	p.finalStep = &final
}

// reportTermGraphContradiction turns a TermGraph Contradiction into the
// final MultipleRewrite step. The TermGraph here (unlike term_graph.rs, not
// retrieved with the rest of the original source) records only a flat
// Justification of contributing active-step ids rather than a structured
// rewrite chain with inspiration ids; we treat the last id in that
// justification as the witnessing disequality and the rest as the
// contributing equalities, producing no synthesized Specialization steps.
// See DESIGN.md for why this simplification was accepted.
func (p *Prover) reportTermGraphContradiction(contradiction termgraph.Contradiction) {
	ids := append([]int{}, contradiction.Justification...)
	if len(ids) == 0 {
		final := proofstep.NewMultipleRewrite(0, nil, nil, proofstep.Counterfactual, 0)
		p.finalStep = &final
		return
	}

	inequalityID := ids[len(ids)-1]
	activeIDs := append([]int{}, ids[:len(ids)-1]...)
	sort.Ints(activeIDs)
	activeIDs = dedupInts(activeIDs)

	truthiness := p.active.GetStep(inequalityID).Truthiness
	var maxDepth uint32
	if d := p.active.GetStep(inequalityID).Depth; d > maxDepth {
		maxDepth = d
	}
	for _, id := range activeIDs {
		s := p.active.GetStep(id)
		truthiness = truthiness.Combine(s.Truthiness)
		if s.Depth > maxDepth {
			maxDepth = s.Depth
		}
	}

	final := proofstep.NewMultipleRewrite(inequalityID, activeIDs, nil, truthiness, maxDepth)
	p.finalStep = &final
}

func dedupInts(xs []int) []int {
	out := xs[:0]
	for i, x := range xs {
		if i == 0 || xs[i-1] != x {
			out = append(out, x)
		}
	}
	return out
}

// PartialSearch runs a short, interactive-feeling search; designed to be
// called repeatedly.
func (p *Prover) PartialSearch() Outcome {
	return p.SearchForContradiction(5000, 100*time.Millisecond, false)
}

// VerificationSearch runs with a generous time budget, so that whether
// verification succeeds is (close to) machine-independent; only the
// activation limit should matter.
func (p *Prover) VerificationSearch() Outcome {
	return p.SearchForContradiction(verificationLimit, 5*time.Second, false)
}

// QuickSearch runs a fast, bounded search for tests.
func (p *Prover) QuickSearch() Outcome {
	return p.SearchForContradiction(500, 200*time.Millisecond, false)
}

// SearchForContradiction runs the given-clause loop until a contradiction
// is found or a limit is hit. activationLimit bounds nonfactual
// activations; seconds bounds wall-clock time; shallowOnly, if set, stops
// the search (Exhausted) the moment every remaining passive step is deeper
// than proofstep.MaxDepth would ever distinguish.
func (p *Prover) SearchForContradiction(activationLimit int, seconds time.Duration, shallowOnly bool) Outcome {
	if p.err != nil {
		return errorOutcome(*p.err)
	}

	start := time.Now()
	for {
		if shallowOnly && !p.anyShallow() {
			return Outcome{Kind: Exhausted}
		}

		if p.activateNext() {
			if p.finalStep == nil {
				return Outcome{Kind: Exhausted}
			}
			if p.finalStep.Truthiness == proofstep.Counterfactual {
				return Outcome{Kind: Success}
			}
			if p.goal != nil && p.goal.kind == goalProve && p.goal.inconsistencyOkay {
				return Outcome{Kind: Success}
			}
			return Outcome{Kind: Inconsistent}
		}

		for _, flag := range p.StopFlags {
			if flag.Load() {
				return Outcome{Kind: Interrupted}
			}
		}

		if p.nonfactualActivations >= activationLimit {
			return Outcome{Kind: Constrained}
		}

		if time.Since(start) >= seconds {
			return Outcome{Kind: Timeout}
		}
	}
}

// anyShallow reports whether some step still in the passive set scores
// within proofstep.MaxDepth, i.e. the shallow-only search hasn't yet run
// out of shallow work.
func (p *Prover) anyShallow() bool {
	for _, step := range p.passive.IterSteps() {
		if step.ComputeScore().IsBasic() {
			return true
		}
	}
	return false
}

// GetCondensedProof returns the proof recommended for insertion: every step
// mathematically necessary for the contradiction, with trivial
// single-parent chains spliced out. Returns nil if the search hasn't found
// a contradiction yet, or found one the caller shouldn't treat as a proof
// of the stated goal.
func (p *Prover) GetCondensedProof() *Proof {
	proof := p.getUncondensedProof()
	if proof == nil {
		return nil
	}
	proof.condense()
	return proof
}

func (p *Prover) getUncondensedProof() *Proof {
	if p.finalStep == nil {
		return nil
	}
	if p.goal == nil || p.goal.kind != goalProve {
		return nil
	}

	useful := map[int]bool{}
	p.active.FindUpstream(p.finalStep, useful)
	for i := range p.usefulPassive {
		p.active.FindUpstream(&p.usefulPassive[i], useful)
	}

	difficulty := Simple
	if p.nonfactualActivations > verificationLimit {
		difficulty = Complicated
	} else if p.nonfactualActivations > 500 {
		difficulty = Intermediate
	}

	proof := newProof(p.goal.negatedConclusion, difficulty)
	ids := make([]int, 0, len(useful))
	for id := range useful {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		proof.addStep(StepID{Kind: ActiveStep, Index: id}, *p.active.GetStep(id))
	}
	for i, step := range p.usefulPassive {
		proof.addStep(StepID{Kind: PassiveStep, Index: i}, step)
	}
	proof.addStep(StepID{Kind: FinalStep}, *p.finalStep)
	return proof
}

// UsedPremises walks the condensed proof's Assumption steps and returns the
// set of importable (module, name) pairs it actually depended on — the
// BuildCache's unit of record. Premises from non-importable sources
// (hypotheses, the negated goal, anonymous local facts) are never included,
// matching spec.md 6's requirement that those never cross module
// boundaries.
func (p *Prover) UsedPremises() map[fact.Source]bool {
	proof := p.GetCondensedProof()
	if proof == nil {
		return nil
	}
	out := map[fact.Source]bool{}
	for _, entry := range proof.AllSteps {
		assumption, ok := entry.Step.Rule.(proofstep.Assumption)
		if !ok {
			continue
		}
		if !assumption.Source.Importable || assumption.Source.Name == "" {
			continue
		}
		out[assumption.Source] = true
	}
	return out
}

// GetClause looks up the clause a StepID names, for printing proof steps.
func (p *Prover) GetClause(id StepID) (clause.Clause, bool) {
	switch id.Kind {
	case ActiveStep:
		if !p.active.HasStep(id.Index) {
			return clause.Clause{}, false
		}
		return p.active.GetClause(id.Index), true
	case PassiveStep:
		if id.Index < 0 || id.Index >= len(p.usefulPassive) {
			return clause.Clause{}, false
		}
		return p.usefulPassive[id.Index].Clause, true
	case FinalStep:
		if p.finalStep == nil {
			return clause.Clause{}, false
		}
		return p.finalStep.Clause, true
	default:
		return clause.Clause{}, false
	}
}
