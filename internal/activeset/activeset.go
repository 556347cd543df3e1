// Package activeset implements ActiveSet: the store of already-activated
// clauses, indexed for efficient resolution, superposition, and the
// single-literal inferences (equality resolution, equality factoring,
// function elimination). Grounded directly on active_set.rs: find_resolutions
// and try_resolution below are a close translation of its resolution
// heuristics, and activate/activate_literal/activate_rewrite_target/
// activate_rewrite_pattern follow its term-graph and rewrite-tree bookkeeping
// literal for literal.
package activeset

import (
	"sooth/internal/clause"
	"sooth/internal/fingerprint"
	"sooth/internal/patterntree"
	"sooth/internal/proofstep"
	"sooth/internal/rewritetree"
	"sooth/internal/term"
	"sooth/internal/termgraph"
	"sooth/internal/unify"
)

// resolutionTarget is a literal side available for resolution: which step,
// which literal within it, and whether it was indexed from the literal's
// left or right term.
type resolutionTarget struct {
	stepIndex    int
	literalIndex int
	left         bool
}

// subtermLocation records where a ground subterm occurs among activated
// concrete unit literals.
type subtermLocation struct {
	targetID int
	left     bool
	path     []int
}

type subtermInfo struct {
	term          term.Term
	locations     []subtermLocation
	rewrites      []rewritetree.Rewrite
	inspirationID int
}

// ActiveSet stores activated clauses and the indices needed to efficiently
// find every inference a newly-activated clause enables.
type ActiveSet struct {
	steps             []proofstep.ProofStep
	longClauses       map[string]bool
	literalSet        *patterntree.LiteralSet
	positiveResTargets *fingerprint.FingerprintUnifier[resolutionTarget]
	negativeResTargets *fingerprint.FingerprintUnifier[resolutionTarget]

	// Graph encodes equalities and disequalities discovered between ground
	// terms, closed under congruence, so the Prover can cheaply notice a
	// contradiction without running superposition to derive it explicitly.
	Graph *termgraph.TermGraph

	subterms       []subtermInfo
	subtermMap     map[string]int
	subtermUnifier *fingerprint.FingerprintUnifier[int]
	rewriteTree    *rewritetree.RewriteTree
}

func New() *ActiveSet {
	return &ActiveSet{
		longClauses:        map[string]bool{},
		literalSet:         patterntree.New(),
		positiveResTargets: fingerprint.New[resolutionTarget](),
		negativeResTargets: fingerprint.New[resolutionTarget](),
		Graph:              termgraph.New(),
		subtermMap:         map[string]int{},
		subtermUnifier:     fingerprint.New[int](),
		rewriteTree:        rewritetree.New(),
	}
}

func (a *ActiveSet) Len() int { return len(a.steps) }

func (a *ActiveSet) isKnownLongClause(c clause.Clause) bool {
	return c.Len() > 1 && a.longClauses[c.Key()]
}

func (a *ActiveSet) GetClause(index int) clause.Clause { return a.steps[index].Clause }

func (a *ActiveSet) HasStep(index int) bool { return index >= 0 && index < len(a.steps) }

func (a *ActiveSet) GetStep(index int) *proofstep.ProofStep { return &a.steps[index] }

func (a *ActiveSet) NextID() int { return len(a.steps) }

// FindResolutions finds every resolution between newStep (not yet activated,
// with id newStepID) and the active set.
func (a *ActiveSet) FindResolutions(newStepID int, newStep *proofstep.ProofStep) []proofstep.ProofStep {
	var output []proofstep.ProofStep
	for i, newLiteral := range newStep.Clause.Literals {
		targetMap := a.negativeResTargets
		if !newLiteral.Positive {
			targetMap = a.positiveResTargets
		}

		targets := targetMap.FindUnifying(newLiteral.Left)
		for _, target := range targets {
			oldStep := a.GetStep(target.stepIndex)
			flipped := !target.left

			if newStep.Truthiness == proofstep.Factual && oldStep.Truthiness == proofstep.Factual {
				continue
			}

			var step proofstep.ProofStep
			var ok bool
			if newLiteral.Positive {
				step, ok = a.tryResolution(newStepID, newStep, i, target.stepIndex, oldStep, target.literalIndex, flipped)
			} else {
				step, ok = a.tryResolution(target.stepIndex, oldStep, target.literalIndex, newStepID, newStep, i, flipped)
			}
			if ok {
				output = append(output, step)
			}
		}
	}
	return output
}

// tryResolution attempts binary resolution between a positive literal
// (posStep's literal at posIndex) and a negative one (negStep's literal at
// negIndex), after a heuristic filter that restricts two-long-clause
// resolution to the "A|B, !A|B => B" case.
func (a *ActiveSet) tryResolution(posID int, posStep *proofstep.ProofStep, posIndex int, negID int, negStep *proofstep.ProofStep, negIndex int, flipped bool) (proofstep.ProofStep, bool) {
	posClause := posStep.Clause
	negClause := negStep.Clause

	shortStep, shortIndex := posStep, posIndex
	longStep, longIndex := negStep, negIndex
	if negClause.Len() < posClause.Len() {
		shortStep, shortIndex = negStep, negIndex
		longStep, longIndex = posStep, posIndex
	}
	shortClause := shortStep.Clause
	longClause := longStep.Clause

	if shortClause.Len() > 1 {
		if shortClause.Len() != 2 || longClause.Len() != 2 {
			return proofstep.ProofStep{}, false
		}
	}

	for i, lit := range shortClause.Literals {
		if i == shortIndex {
			continue
		}
		if lit.MaxVarId() >= 0 {
			return proofstep.ProofStep{}, false
		}
		found := -1
		for j, other := range longClause.Literals {
			if other.Equal(lit) {
				found = j
				break
			}
		}
		if found == -1 {
			return proofstep.ProofStep{}, false
		}
		if found == longIndex {
			return proofstep.ProofStep{}, false
		}
	}

	u := unify.New(3)
	shortA := shortClause.Literals[shortIndex].Left
	shortB := shortClause.Literals[shortIndex].Right
	var longA, longB term.Term
	if flipped {
		longA, longB = longClause.Literals[longIndex].Right, longClause.Literals[longIndex].Left
	} else {
		longA, longB = longClause.Literals[longIndex].Left, longClause.Literals[longIndex].Right
	}
	if !u.Unify(unify.Left, shortA, unify.Right, longA) {
		return proofstep.ProofStep{}, false
	}
	if !u.Unify(unify.Left, shortB, unify.Right, longB) {
		return proofstep.ProofStep{}, false
	}

	var literals []term.Literal
	for i, lit := range longClause.Literals {
		if i == longIndex {
			continue
		}
		left := u.Apply(unify.Right, lit.Left)
		right := u.Apply(unify.Right, lit.Right)
		newLit, _ := term.NewLiteralWithFlip(lit.Positive, left, right)
		literals = append(literals, newLit)
	}

	newClause, ok := clause.New(literals)
	if !ok {
		return proofstep.ProofStep{}, false
	}
	step := proofstep.NewResolution(posID, posStep, negID, negStep, newClause)
	return step, true
}

// EqualityResolution eliminates a negative literal u != v by unifying u
// with v, discarding the literal and carrying the unifier through the rest
// of the clause.
func (a *ActiveSet) EqualityResolution(activatedID int, activatedStep *proofstep.ProofStep) []proofstep.ProofStep {
	var answer []proofstep.ProofStep
	lits := activatedStep.Clause.Literals
	for i, lit := range lits {
		if lit.Positive {
			continue
		}
		u := unify.New(1)
		if !u.Unify(unify.Output, lit.Left, unify.Output, lit.Right) {
			continue
		}
		var newLits []term.Literal
		for j, other := range lits {
			if j == i {
				continue
			}
			applied, _ := u.ApplyToLiteral(unify.Output, other)
			newLits = append(newLits, applied)
		}
		newClause, ok := clause.New(newLits)
		if !ok {
			continue
		}
		step := proofstep.NewDirect(activatedStep, proofstep.EqualityResolution{Source: activatedID}, newClause)
		answer = append(answer, step)
	}
	return answer
}

// FunctionElimination implements the non-standard rule: from
// f(a,b,d) != f(a,c,d), conclude b != c, whenever precisely one argument
// position differs syntactically. Sound only because the two applications
// share every other argument syntactically, not merely semantically.
func (a *ActiveSet) FunctionElimination(activatedID int, activatedStep *proofstep.ProofStep) []proofstep.ProofStep {
	var answer []proofstep.ProofStep
	lits := activatedStep.Clause.Literals
	for i, target := range lits {
		if target.Positive {
			continue
		}
		if !target.Left.Head.Equal(target.Right.Head) || target.Left.HeadType != target.Right.HeadType {
			continue
		}
		if target.Left.NumArgs() != target.Right.NumArgs() {
			continue
		}
		differentIndex := -1
		ambiguous := false
		for j := range target.Left.Args {
			if !target.Left.Args[j].Equal(target.Right.Args[j]) {
				if differentIndex != -1 {
					ambiguous = true
					break
				}
				differentIndex = j
			}
		}
		if ambiguous || differentIndex == -1 {
			continue
		}

		newLit := term.NewLiteral(false, target.Left.Args[differentIndex], target.Right.Args[differentIndex])
		newLits := make([]term.Literal, len(lits))
		copy(newLits, lits)
		newLits[i] = newLit

		newClause, ok := clause.New(newLits)
		if !ok {
			continue
		}
		step := proofstep.NewDirect(activatedStep, proofstep.FunctionElimination{Source: activatedID}, newClause)
		answer = append(answer, step)
	}
	return answer
}

// EqualityFactoring implements: from s=t | u=v | R, when s and u unify,
// conclude t!=v | u=v | R.
func (a *ActiveSet) EqualityFactoring(activatedID int, activatedStep *proofstep.ProofStep) []proofstep.ProofStep {
	var answer []proofstep.ProofStep
	lits := activatedStep.Clause.Literals
	for i, li := range lits {
		if !li.Positive {
			continue
		}
		s, t := li.Left, li.Right
		for j, lj := range lits {
			if i == j || !lj.Positive {
				continue
			}
			uTerm, v := lj.Left, lj.Right

			uni := unify.New(1)
			if !uni.Unify(unify.Output, s, unify.Output, uTerm) {
				continue
			}

			var newLits []term.Literal
			negLit := term.NewLiteral(false, uni.Apply(unify.Output, t), uni.Apply(unify.Output, v))
			newLits = append(newLits, negLit)
			keptLit := term.NewLiteral(true, uni.Apply(unify.Output, uTerm), uni.Apply(unify.Output, v))
			newLits = append(newLits, keptLit)
			for k, lk := range lits {
				if k == i || k == j {
					continue
				}
				applied, _ := uni.ApplyToLiteral(unify.Output, lk)
				newLits = append(newLits, applied)
			}

			newClause, ok := clause.New(newLits)
			if !ok {
				continue
			}
			step := proofstep.NewDirect(activatedStep, proofstep.EqualityFactoring{Source: activatedID}, newClause)
			answer = append(answer, step)
		}
	}
	return answer
}

// ActivateRewriteTarget looks for ways to rewrite targetStep's single
// concrete literal, using every rewrite pattern already indexed.
func (a *ActiveSet) ActivateRewriteTarget(targetID int, targetStep *proofstep.ProofStep) []proofstep.ProofStep {
	var output []proofstep.ProofStep
	targetLiteral := targetStep.Clause.Literals[0]

	for _, pair := range targetLiteral.BothTermPairs() {
		targetLeft := pair.Forward
		u := pair.S
		other := pair.T

		for _, pt := range u.RewritableSubterms() {
			path, uSubterm := pt.Path, pt.Term
			key := uSubterm.String()
			id, exists := a.subtermMap[key]
			if !exists {
				rewrites := a.rewriteTree.GetRewrites(uSubterm, 0)

				id1 := a.Graph.InsertTerm(uSubterm)
				for _, rw := range rewrites {
					id2 := a.Graph.InsertTerm(rw.Term)
					a.addToTermGraph(rw.PatternID, &targetID, id1, id2, rw.Forwards, true)
				}

				id = len(a.subterms)
				a.subterms = append(a.subterms, subtermInfo{term: uSubterm, rewrites: rewrites, inspirationID: targetID})
				a.subtermMap[key] = id
				a.subtermUnifier.Insert(uSubterm, id)
			}

			for _, rw := range a.subterms[id].rewrites {
				if targetID == rw.PatternID {
					continue
				}
				patternStep := a.GetStep(rw.PatternID)
				if targetStep.Truthiness == proofstep.Factual && patternStep.Truthiness == proofstep.Factual {
					continue
				}

				newU := u.ReplaceAtPath(path, rw.Term)
				var newLit term.Literal
				if targetLeft {
					newLit = term.NewLiteral(targetLiteral.Positive, newU, other)
				} else {
					newLit = term.NewLiteral(targetLiteral.Positive, other, newU)
				}
				newClause, ok := clause.New([]term.Literal{newLit})
				if !ok {
					continue
				}
				step := proofstep.NewRewrite(rw.PatternID, patternStep, targetID, targetStep, newClause)
				output = append(output, step)
			}

			a.subterms[id].locations = append(a.subterms[id].locations, subtermLocation{targetID: targetID, left: targetLeft, path: path})
		}
	}
	return output
}

// ActivateRewritePattern looks for every existing target that patternStep's
// oriented equation newly makes rewritable.
func (a *ActiveSet) ActivateRewritePattern(patternID int, patternStep *proofstep.ProofStep) []proofstep.ProofStep {
	var output []proofstep.ProofStep
	patternLiteral := patternStep.Clause.Literals[0]

	for _, pair := range patternLiteral.BothTermPairs() {
		forwards := pair.Forward
		s, t := pair.S, pair.T
		if s.IsTrue() {
			continue
		}

		for _, subtermID := range a.subtermUnifier.FindUnifying(s) {
			info := a.subterms[subtermID]
			subterm := info.term

			u := unify.New(3)
			if !u.Unify(unify.Left, s, unify.Right, subterm) {
				continue
			}
			newSubterm := u.Apply(unify.Left, t)

			for _, loc := range info.locations {
				if loc.targetID == patternID {
					continue
				}
				targetStep := a.GetStep(loc.targetID)
				if patternStep.Truthiness == proofstep.Factual && targetStep.Truthiness == proofstep.Factual {
					continue
				}
				targetLit := targetStep.Clause.Literals[0]
				var base, other term.Term
				if loc.left {
					base, other = targetLit.Left, targetLit.Right
				} else {
					base, other = targetLit.Right, targetLit.Left
				}
				newBase := base.ReplaceAtPath(loc.path, newSubterm)
				var newLit term.Literal
				if loc.left {
					newLit = term.NewLiteral(targetLit.Positive, newBase, other)
				} else {
					newLit = term.NewLiteral(targetLit.Positive, other, newBase)
				}
				newClause, ok := clause.New([]term.Literal{newLit})
				if !ok {
					continue
				}
				step := proofstep.NewRewrite(patternID, patternStep, loc.targetID, targetStep, newClause)
				output = append(output, step)
			}

			id1 := a.Graph.InsertTerm(subterm)
			id2 := a.Graph.InsertTerm(newSubterm)
			inspiration := info.inspirationID
			a.addToTermGraph(patternID, &inspiration, id1, id2, forwards, true)

			a.subterms[subtermID].rewrites = append(a.subterms[subtermID].rewrites, rewritetree.Rewrite{PatternID: patternID, Forwards: forwards, Term: newSubterm})
		}
	}
	return output
}

func (a *ActiveSet) addToTermGraph(patternID int, inspirationID *int, term1, term2 termgraph.NodeId, forwards, equal bool) {
	left, right := term1, term2
	if !forwards {
		left, right = term2, term1
	}
	justification := termgraph.Justification{patternID}
	if inspirationID != nil {
		justification = append(justification, *inspirationID)
	}
	if equal {
		a.Graph.SetTermsEqual(left, right, justification)
	} else {
		a.Graph.SetTermsNotEqual(left, right, justification)
	}
}

// evaluateLiteral reports whether lit's truth value is already determined,
// either trivially (both sides syntactically equal) or because a
// generalization of it is already an activated unit literal.
func (a *ActiveSet) evaluateLiteral(lit term.Literal) (value bool, stepID int, known bool) {
	if lit.Left.Equal(lit.Right) {
		return lit.Positive, -1, true
	}
	if positive, id, _, ok := a.literalSet.FindGeneralization(lit); ok {
		return positive, id, true
	}
	return false, 0, false
}

// Simplify reduces step using both structural rules and facts already known
// to the active set, returning ok=false (with a zero step) when the result is redundant
// (a tautology, or an already-known long clause).
func (a *ActiveSet) Simplify(step proofstep.ProofStep) (proofstep.ProofStep, bool) {
	if a.isKnownLongClause(step.Clause) {
		return proofstep.ProofStep{}, false
	}

	var newRules []int
	var kept []term.Literal
	changed := false
	for _, lit := range step.Clause.Literals {
		value, id, known := a.evaluateLiteral(lit)
		if !known {
			kept = append(kept, lit)
			continue
		}
		if value {
			// The literal is already known true: the whole clause is a
			// tautology.
			return proofstep.ProofStep{}, false
		}
		if id >= 0 {
			newRules = append(newRules, id)
		}
		changed = true
	}

	if !changed {
		return step, true
	}

	newClause, ok := clause.New(kept)
	if !ok {
		return proofstep.ProofStep{}, false
	}
	if a.isKnownLongClause(newClause) {
		return proofstep.ProofStep{}, false
	}
	return step.Simplify(newClause, newRules, step.Truthiness), true
}

func (a *ActiveSet) addResolutionTargets(stepIndex, literalIndex int, lit term.Literal) {
	tree := a.positiveResTargets
	if !lit.Positive {
		tree = a.negativeResTargets
	}
	tree.Insert(lit.Left, resolutionTarget{stepIndex: stepIndex, literalIndex: literalIndex, left: true})
	tree.Insert(lit.Right, resolutionTarget{stepIndex: stepIndex, literalIndex: literalIndex, left: false})
}

func (a *ActiveSet) insert(step proofstep.ProofStep) int {
	stepIndex := a.NextID()
	for i, lit := range step.Clause.Literals {
		a.addResolutionTargets(stepIndex, i, lit)
	}
	if step.Clause.Len() > 1 {
		a.longClauses[step.Clause.Key()] = true
	}
	a.steps = append(a.steps, step)
	return stepIndex
}

// activateLiteral performs the inferences specific to a just-activated,
// single-literal clause: indexing it as a rewrite target/pattern and
// recording it in the term graph and literal set.
func (a *ActiveSet) activateLiteral(activatedID int, activatedStep *proofstep.ProofStep) []proofstep.ProofStep {
	var output []proofstep.ProofStep
	literal := activatedStep.Clause.Literals[0]

	if literal.MaxVarId() < 0 {
		left := a.Graph.InsertTerm(literal.Left)
		right := a.Graph.InsertTerm(literal.Right)
		a.addToTermGraph(activatedID, nil, left, right, true, literal.Positive)

		output = append(output, a.ActivateRewriteTarget(activatedID, activatedStep)...)
	}

	if literal.Positive && !proofstep.IsRewrite(activatedStep.Rule) {
		output = append(output, a.ActivateRewritePattern(activatedID, activatedStep)...)
		a.rewriteTree.InsertLiteral(activatedID, literal)
	}

	a.literalSet.Insert(literal, activatedID)
	return output
}

// Activate generates every inference activatedStep enables against the
// current active set, then adds it to the set. Returns its id and the
// newly-derived steps (unsimplified; the Prover is responsible for
// simplification).
func (a *ActiveSet) Activate(activatedStep proofstep.ProofStep) (int, []proofstep.ProofStep) {
	var output []proofstep.ProofStep
	activatedID := a.NextID()

	output = append(output, a.EqualityResolution(activatedID, &activatedStep)...)
	output = append(output, a.EqualityFactoring(activatedID, &activatedStep)...)
	output = append(output, a.FunctionElimination(activatedID, &activatedStep)...)
	output = append(output, a.FindResolutions(activatedID, &activatedStep)...)

	if activatedStep.Clause.Len() == 1 {
		output = append(output, a.activateLiteral(activatedID, &activatedStep)...)
	}

	a.insert(activatedStep)
	return activatedID, output
}

// FindConsequences returns the ids of every activated step that depends on
// id.
func (a *ActiveSet) FindConsequences(id int) []int {
	var out []int
	for i, step := range a.steps {
		if step.DependsOn(id) {
			out = append(out, i)
		}
	}
	return out
}

// FindUpstream walks the dependency closure of step, adding every active-set
// step id it transitively depends on to output.
func (a *ActiveSet) FindUpstream(step *proofstep.ProofStep, output map[int]bool) {
	pending := append([]int{}, step.Dependencies()...)
	for len(pending) > 0 {
		i := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if output[i] {
			continue
		}
		output[i] = true
		pending = append(pending, a.GetStep(i).Dependencies()...)
	}
}
