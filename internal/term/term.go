// Package term implements the prover's simply-typed first-order term
// representation: Term, Literal, the Knuth-Bendix term ordering used to
// orient equations and decide redundancy, and substitution.
//
// Terms are monomorphic by construction. Polymorphism is resolved before a
// term is ever built, by the normalizer's monomorphization pass.
package term

import (
	"fmt"
	"sort"
	"strings"

	"sooth/internal/atom"
)

// Term is `head(args...)`, typed by HeadType (the type of head applied to
// zero args) and TermType (the type of the whole application).
type Term struct {
	TermType TypeId
	HeadType TypeId
	Head     atom.Atom
	Args     []Term
}

type TypeId = atom.TypeId

// Atomic builds a bare atom with no arguments.
func Atomic(headType, termType TypeId, head atom.Atom) Term {
	return Term{TermType: termType, HeadType: headType, Head: head}
}

// Apply builds head(args...). termType is the type of the result.
func Apply(headType, termType TypeId, head atom.Atom, args ...Term) Term {
	return Term{TermType: termType, HeadType: headType, Head: head, Args: args}
}

func (t Term) IsAtomic() bool { return len(t.Args) == 0 }

func (t Term) IsVariable() bool { return t.IsAtomic() && t.Head.IsVariable() }

func (t Term) IsTrue() bool { return t.IsAtomic() && t.Head.Kind == atom.True }

// AtomCount is the number of atom occurrences in the term, used throughout
// the prover's size-based heuristics (KBO weight, Score, cache eviction).
func (t Term) AtomCount() int {
	n := 1
	for _, a := range t.Args {
		n += a.AtomCount()
	}
	return n
}

// MaxVarId returns the highest variable id occurring in the term, or -1 if
// the term has no variables.
func (t Term) MaxVarId() int {
	max := -1
	if t.Head.IsVariable() {
		max = int(t.Head.Id)
	}
	for _, a := range t.Args {
		if m := a.MaxVarId(); m > max {
			max = m
		}
	}
	return max
}

// HasLocalConstant reports whether any local (non-global) constant occurs in
// the term: local constants, skolems, or their monomorphs-of-local analogs.
func (t Term) HasLocalConstant() bool {
	if t.Head.Kind == atom.LocalConstant || t.Head.Kind == atom.Skolem {
		return true
	}
	for _, a := range t.Args {
		if a.HasLocalConstant() {
			return true
		}
	}
	return false
}

// CollectVarIds appends every distinct variable id occurring in the term.
func (t Term) CollectVarIds(into map[int]bool) {
	if t.Head.IsVariable() {
		into[int(t.Head.Id)] = true
	}
	for _, a := range t.Args {
		a.CollectVarIds(into)
	}
}

// Equal is syntactic (alpha-equality under the shared De Bruijn numbering).
func (t Term) Equal(other Term) bool {
	if !t.Head.Equal(other.Head) || t.TermType != other.TermType || len(t.Args) != len(other.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equal(other.Args[i]) {
			return false
		}
	}
	return true
}

// Map rewrites every subterm with f, bottom-up: f is applied to a term whose
// Args have already been mapped.
func (t Term) Map(f func(Term) Term) Term {
	newArgs := make([]Term, len(t.Args))
	for i, a := range t.Args {
		newArgs[i] = a.Map(f)
	}
	mapped := t
	mapped.Args = newArgs
	return f(mapped)
}

// ReplaceVariables substitutes each variable atom according to sub (missing
// entries are left alone), used by the unifier to apply a solved Scope.
func (t Term) ReplaceVariables(sub map[atom.AtomId]Term) Term {
	if t.IsVariable() {
		if repl, ok := sub[t.Head.Id]; ok {
			return repl
		}
		return t
	}
	if len(t.Args) == 0 {
		return t
	}
	newArgs := make([]Term, len(t.Args))
	for i, a := range t.Args {
		newArgs[i] = a.ReplaceVariables(sub)
	}
	out := t
	out.Args = newArgs
	return out
}

// ReplaceAtom substitutes every occurrence of `from` (matched as a whole
// subterm, not just a head) with `to`. Used by superposition to rewrite a
// subterm in place.
func (t Term) ReplaceAtom(from, to Term) Term {
	if t.Equal(from) {
		return to
	}
	if len(t.Args) == 0 {
		return t
	}
	newArgs := make([]Term, len(t.Args))
	changed := false
	for i, a := range t.Args {
		r := a.ReplaceAtom(from, to)
		newArgs[i] = r
		if !r.Equal(a) {
			changed = true
		}
	}
	if !changed {
		return t
	}
	out := t
	out.Args = newArgs
	return out
}

// Subterms yields every subterm of t together with the path used to reach
// it, root first. Paths are stable and reused by the rewrite indices to
// remember "where" a rewrite happened.
func (t Term) Subterms() []PathedTerm {
	var out []PathedTerm
	var walk func(term Term, path []int)
	walk = func(term Term, path []int) {
		p := append([]int(nil), path...)
		out = append(out, PathedTerm{Path: p, Term: term})
		for i, a := range term.Args {
			walk(a, append(path, i))
		}
	}
	walk(t, nil)
	return out
}

// RewritableSubterms is Subterms restricted to positions superposition is
// allowed to rewrite into: every subterm except a bare variable (rewriting a
// variable in place is meaningless; the unifier handles variables directly).
func (t Term) RewritableSubterms() []PathedTerm {
	all := t.Subterms()
	out := make([]PathedTerm, 0, len(all))
	for _, pt := range all {
		if pt.Term.IsVariable() {
			continue
		}
		out = append(out, pt)
	}
	return out
}

type PathedTerm struct {
	Path []int
	Term Term
}

// ReplaceAtPath returns a copy of t with the subterm at path replaced by
// newSubterm. An empty path replaces the whole term.
func (t Term) ReplaceAtPath(path []int, newSubterm Term) Term {
	if len(path) == 0 {
		return newSubterm
	}
	i := path[0]
	out := t
	out.Args = make([]Term, len(t.Args))
	copy(out.Args, t.Args)
	out.Args[i] = t.Args[i].ReplaceAtPath(path[1:], newSubterm)
	return out
}

// NumArgs is the number of direct arguments head is applied to.
func (t Term) NumArgs() int { return len(t.Args) }

// AtomicVariable reports the variable id of t, if t is a bare variable.
func (t Term) AtomicVariable() (atom.AtomId, bool) {
	if t.IsVariable() {
		return t.Head.Id, true
	}
	return 0, false
}

// HasVariable reports whether variable id occurs anywhere in t. Used by the
// unifier's occurs check.
func (t Term) HasVariable(id atom.AtomId) bool {
	if t.IsVariable() && t.Head.Id == id {
		return true
	}
	for _, a := range t.Args {
		if a.HasVariable(id) {
			return true
		}
	}
	return false
}

func (t Term) String() string {
	if len(t.Args) == 0 {
		return t.Head.String()
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", t.Head.String(), strings.Join(parts, ", "))
}

// Weight is the term's KBO weight: every atom occurrence (including
// variables) counts for one, matching the original prover's flat weighting
// in the absence of per-symbol weight annotations.
func (t Term) Weight() int { return t.AtomCount() }

// Compare implements a Knuth-Bendix-style order: first the variable
// occurrence condition (the heavier term must contain every variable of the
// lighter one at least as many times), then total weight, then a
// precedence-based tie-break over the head atoms and, recursively, the
// argument lists. Returns -1, 0, or 1; ErrIncomparable-style "unknown" is
// reported via the second return value.
func Compare(a, b Term) (cmp int, ok bool) {
	va := varCounts(a)
	vb := varCounts(b)
	aCoversB := covers(va, vb)
	bCoversA := covers(vb, va)
	if !aCoversB && !bCoversA {
		return 0, false
	}

	wa, wb := a.Weight(), b.Weight()
	switch {
	case wa > wb && aCoversB:
		return 1, true
	case wb > wa && bCoversA:
		return -1, true
	case wa == wb:
		return lexicalCompare(a, b), true
	default:
		// Weight favors one side but that side does not cover the other's
		// variables: the pair is incomparable.
		return 0, false
	}
}

func lexicalCompare(a, b Term) int {
	if a.Head.Less(b.Head) {
		return -1
	}
	if b.Head.Less(a.Head) {
		return 1
	}
	for i := 0; i < len(a.Args) && i < len(b.Args); i++ {
		if c, ok := Compare(a.Args[i], b.Args[i]); ok && c != 0 {
			return c
		}
	}
	return len(a.Args) - len(b.Args)
}

func varCounts(t Term) map[atom.AtomId]int {
	counts := map[atom.AtomId]int{}
	var walk func(Term)
	walk = func(term Term) {
		if term.IsVariable() {
			counts[term.Head.Id]++
		}
		for _, a := range term.Args {
			walk(a)
		}
	}
	walk(t)
	return counts
}

func covers(a, b map[atom.AtomId]int) bool {
	for v, n := range b {
		if a[v] < n {
			return false
		}
	}
	return true
}

// SortedVarIds is a convenience for deterministic iteration/printing.
func SortedVarIds(t Term) []int {
	set := map[int]bool{}
	t.CollectVarIds(set)
	out := make([]int, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Ints(out)
	return out
}
