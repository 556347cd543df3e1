// Package unify implements multi-scope unification and the superposition
// helpers built on top of it, grounded on the original prover's unifier.rs:
// a Unifier holds one VariableMap per scope (conventionally an "output"
// scope plus a "left" and "right" input scope) so that two terms whose
// variables are numbered independently can be unified without first
// renaming either one.
package unify

import (
	"sooth/internal/atom"
	"sooth/internal/term"
)

// Scope indexes one of a Unifier's variable maps.
type Scope int

const (
	Output Scope = 0
	Left   Scope = 1
	Right  Scope = 2
)

// variableMap is a growable Variable-id -> Term mapping, indexed densely
// from 0 so that allocating a fresh output variable is just appending a nil
// slot and returning its index.
type variableMap struct {
	entries []*term.Term
}

func newVariableMap() *variableMap { return &variableMap{} }

func (m *variableMap) has(id atom.AtomId) bool {
	return int(id) < len(m.entries) && m.entries[id] != nil
}

func (m *variableMap) get(id atom.AtomId) (term.Term, bool) {
	if !m.has(id) {
		return term.Term{}, false
	}
	return *m.entries[id], true
}

func (m *variableMap) set(id atom.AtomId, t term.Term) {
	for int(id) >= len(m.entries) {
		m.entries = append(m.entries, nil)
	}
	cp := t
	m.entries[id] = &cp
}

func (m *variableMap) pushNone() atom.AtomId {
	id := atom.AtomId(len(m.entries))
	m.entries = append(m.entries, nil)
	return id
}

func (m *variableMap) len() int { return len(m.entries) }

// applyToAll rewrites every currently-mapped term with f: used when a fresh
// output remapping needs to be propagated into mappings recorded earlier.
func (m *variableMap) applyToAll(f func(term.Term) term.Term) {
	for i, e := range m.entries {
		if e != nil {
			mapped := f(*e)
			m.entries[i] = &mapped
		}
	}
}

// Unifier combines terms whose variables live in independent scopes. Scope
// Output collects the substitution discovered for the problem as a whole;
// scopes beyond it (conventionally Left and Right) are the two terms being
// unified.
type Unifier struct {
	maps []*variableMap
}

// New builds a Unifier with numScopes variable maps, scope 0 conventionally
// reserved as Output.
func New(numScopes int) *Unifier {
	u := &Unifier{maps: make([]*variableMap, numScopes)}
	for i := range u.maps {
		u.maps[i] = newVariableMap()
	}
	return u
}

func (u *Unifier) mapFor(s Scope) *variableMap { return u.maps[s] }

// AddScope appends a new empty scope and returns its index.
func (u *Unifier) AddScope() Scope {
	u.maps = append(u.maps, newVariableMap())
	return Scope(len(u.maps) - 1)
}

// replacement describes a subterm substitution to splice in mid-Apply, used
// by superposition to rewrite one subterm while copying the rest of a term
// unchanged.
type replacement struct {
	path  []int
	scope Scope
	term  term.Term
}

// applyReplace applies the unifier to term t in scope, optionally splicing
// in repl at its path.
func (u *Unifier) applyReplace(scope Scope, t term.Term, repl *replacement) term.Term {
	if repl != nil && len(repl.path) == 0 {
		return u.apply(repl.scope, repl.term)
	}

	var head term.Term
	if vid, ok := t.AtomicVariable(); ok {
		if !u.mapFor(scope).has(vid) && scope != Output {
			varID := u.mapFor(Output).pushNone()
			newVar := term.Atomic(t.HeadType, t.HeadType, atom.NewVariable(varID))
			u.mapFor(scope).set(vid, newVar)
		}
		if mapped, ok := u.mapFor(scope).get(vid); ok {
			// The mapped term may itself be a full application (a variable
			// unified with a functional term); keep its own args and let the
			// loop below append t's args after them, flattening the result.
			mapped.TermType = t.TermType
			head = mapped
		} else {
			head = term.Term{TermType: t.TermType, HeadType: t.HeadType, Head: t.Head}
		}
	} else {
		head = term.Term{TermType: t.TermType, HeadType: t.HeadType, Head: t.Head}
	}

	args := make([]term.Term, 0, len(t.Args))
	for i, a := range t.Args {
		var childRepl *replacement
		if repl != nil && len(repl.path) > 0 && repl.path[0] == i {
			childRepl = &replacement{path: repl.path[1:], scope: repl.scope, term: repl.term}
		}
		args = append(args, u.applyReplace(scope, a, childRepl))
	}
	head.Args = append(head.Args, args...)
	return head
}

func (u *Unifier) apply(scope Scope, t term.Term) term.Term {
	return u.applyReplace(scope, t, nil)
}

// Apply resolves every variable of t under scope's current substitution.
func (u *Unifier) Apply(scope Scope, t term.Term) term.Term { return u.apply(scope, t) }

// ApplyToLiteral applies the unifier to both sides of a literal, returning
// the canonically re-oriented result and whether it flipped.
func (u *Unifier) ApplyToLiteral(scope Scope, l term.Literal) (term.Literal, bool) {
	left := u.apply(scope, l.Left)
	right := u.apply(scope, l.Right)
	return term.NewLiteralWithFlip(l.Positive, left, right)
}

// remap binds output variable id to t (after occurs-checking), pushing the
// substitution through every scope's already-recorded mappings.
func (u *Unifier) remap(id atom.AtomId, t term.Term) bool {
	if other, ok := t.AtomicVariable(); ok && other > id {
		newTerm := t
		newTerm.Head = atom.NewVariable(id)
		return u.unifyVariable(Output, other, Output, newTerm)
	}
	resolved := u.apply(Output, t)
	if resolved.HasVariable(id) {
		return false
	}
	for _, m := range u.maps {
		m.applyToAll(func(x term.Term) term.Term { return replaceVariable(x, id, resolved) })
	}
	u.mapFor(Output).set(id, resolved)
	return true
}

func replaceVariable(t term.Term, id atom.AtomId, repl term.Term) term.Term {
	if vid, ok := t.AtomicVariable(); ok {
		if vid == id {
			return repl
		}
		return t
	}
	if len(t.Args) == 0 {
		return t
	}
	out := t
	out.Args = make([]term.Term, len(t.Args))
	for i, a := range t.Args {
		out.Args[i] = replaceVariable(a, id, repl)
	}
	return out
}

func (u *Unifier) unifyVariable(varScope Scope, varID atom.AtomId, termScope Scope, t term.Term) bool {
	if termScope != Output {
		resolved := u.apply(termScope, t)
		return u.unifyVariable(varScope, varID, Output, resolved)
	}

	if existing, ok := u.mapFor(varScope).get(varID); ok {
		return u.Unify(Output, existing, Output, t)
	}

	if varScope == Output {
		if vid, ok := t.AtomicVariable(); ok && vid == varID {
			return true
		}
		if t.HasVariable(varID) {
			return false
		}
		return u.remap(varID, t)
	}

	u.mapFor(varScope).set(varID, t)
	return true
}

func (u *Unifier) unifyAtoms(atomType atom.TypeId, scope1 Scope, a1 atom.Atom, scope2 Scope, a2 atom.Atom) bool {
	if a1.IsVariable() {
		return u.unifyVariable(scope1, a1.Id, scope2, term.Atomic(atomType, atomType, a2))
	}
	if a2.IsVariable() {
		return u.unifyVariable(scope2, a2.Id, scope1, term.Atomic(atomType, atomType, a1))
	}
	return a1.Equal(a2)
}

// Unify attempts to unify term1 (in scope1) with term2 (in scope2),
// recording the resulting substitution in the Output scope. Returns false
// if they cannot be unified (type mismatch, head mismatch, occurs check
// failure).
func (u *Unifier) Unify(scope1 Scope, term1 term.Term, scope2 Scope, term2 term.Term) bool {
	if term1.TermType != term2.TermType {
		return false
	}
	if vid, ok := term1.AtomicVariable(); ok {
		return u.unifyVariable(scope1, vid, scope2, term2)
	}
	if vid, ok := term2.AtomicVariable(); ok {
		return u.unifyVariable(scope2, vid, scope1, term1)
	}
	if term1.HeadType != term2.HeadType || len(term1.Args) != len(term2.Args) {
		return false
	}
	if !u.unifyAtoms(term1.HeadType, scope1, term1.Head, scope2, term2.Head) {
		return false
	}
	for i := range term1.Args {
		if !u.Unify(scope1, term1.Args[i], scope2, term2.Args[i]) {
			return false
		}
	}
	return true
}

// UnifyLiterals unifies two literals' corresponding sides (or, if flipped,
// the crossed sides), ignoring sign. Used to check whether two
// opposite-polarity literals can resolve against each other.
func (u *Unifier) UnifyLiterals(scope1 Scope, l1 term.Literal, scope2 Scope, l2 term.Literal, flipped bool) bool {
	if flipped {
		return u.Unify(scope1, l1.Right, scope2, l2.Left) && u.Unify(scope1, l1.Left, scope2, l2.Right)
	}
	return u.Unify(scope1, l1.Left, scope2, l2.Left) && u.Unify(scope1, l1.Right, scope2, l2.Right)
}

// SuperposeLiterals implements the "SP"/"SN" superposition rule: given a
// paramodulator s=t (applied in scope Left, with s already matched to the
// subterm at path within resLiteral's u side) and a resolver literal
// u ?= v (scope Right), produce u[s->t] ?= v, with resForwards selecting
// which side of resLiteral plays the role of u.
func (u *Unifier) SuperposeLiterals(t term.Term, path []int, resLiteral term.Literal, resForwards bool) term.Literal {
	lhs, rhs := resLiteral.Left, resLiteral.Right
	if !resForwards {
		lhs, rhs = rhs, lhs
	}
	unifiedLHS := u.applyReplace(Right, lhs, &replacement{path: path, scope: Left, term: t})
	unifiedRHS := u.apply(Right, rhs)
	return term.NewLiteral(resLiteral.Positive, unifiedLHS, unifiedRHS)
}

// SuperposeClauses performs clause-level superposition: pmClause's
// literal at pmLiteralIndex is the paramodulator s=t, resClause's literal at
// resLiteralIndex is the resolver u?=v, and the other literals of both
// clauses are carried over (re-substituted into their own scopes).
func (u *Unifier) SuperposeClauses(t term.Term, pmLiterals []term.Literal, pmLiteralIndex int, path []int, resLiterals []term.Literal, resLiteralIndex int, resForwards bool) []term.Literal {
	resolutionLiteral := resLiterals[resLiteralIndex]
	newLiteral := u.SuperposeLiterals(t, path, resolutionLiteral, resForwards)

	literals := []term.Literal{newLiteral}

	for i, l := range resLiterals {
		if i == resLiteralIndex {
			continue
		}
		unified, _ := u.ApplyToLiteral(Right, l)
		literals = append(literals, unified)
	}

	for i, l := range pmLiterals {
		if i == pmLiteralIndex {
			continue
		}
		unified, _ := u.ApplyToLiteral(Left, l)
		literals = append(literals, unified)
	}

	return literals
}
