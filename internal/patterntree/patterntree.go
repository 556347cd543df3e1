// Package patterntree implements LiteralSet: an index of activated unit
// literals supporting "generalization" lookup — given a query literal, find
// an already-activated literal that is true (or false) of it by matching,
// not full unification, since the stored literal's variables may specialize
// but the query's own variables must stay rigid.
package patterntree

import (
	"sooth/internal/atom"
	"sooth/internal/fingerprint"
	"sooth/internal/term"
)

type stored struct {
	literal term.Literal
	stepID  int
}

// LiteralSet indexes every activated unit literal (concrete or not) so that
// ActiveSet.simplify can ask "is this literal already known true/false".
type LiteralSet struct {
	positive *fingerprint.FingerprintUnifier[stored]
	negative *fingerprint.FingerprintUnifier[stored]
}

func New() *LiteralSet {
	return &LiteralSet{
		positive: fingerprint.New[stored](),
		negative: fingerprint.New[stored](),
	}
}

// Insert indexes literal (from step stepID) under its Left term for
// candidate lookup.
func (s *LiteralSet) Insert(literal term.Literal, stepID int) {
	e := stored{literal: literal, stepID: stepID}
	if literal.Positive {
		s.positive.Insert(literal.Left, e)
	} else {
		s.negative.Insert(literal.Left, e)
	}
}

// FindGeneralization returns (positive, stepID, flipped, true) when some
// activated literal generalizes query: there is a substitution
// from the stored literal to query (treating the equation as symmetric, so
// both orientations are tried). positive reports whether the matching
// stored literal was itself positive or negative — i.e. whether query's
// underlying equation is known true or known false.
func (s *LiteralSet) FindGeneralization(query term.Literal) (positive bool, stepID int, flipped bool, ok bool) {
	if _, id, f, found := findIn(s.positive, query); found {
		return true, id, f, true
	}
	if _, id, f, found := findIn(s.negative, query); found {
		return false, id, f, true
	}
	return false, 0, false, false
}

func findIn(idx *fingerprint.FingerprintUnifier[stored], query term.Literal) (bool, int, bool, bool) {
	for _, cand := range idx.FindUnifying(query.Left) {
		bindings := map[atom.AtomId]term.Term{}
		if matchTerm(cand.literal.Left, query.Left, bindings) &&
			matchTerm(cand.literal.Right, query.Right, bindings) {
			return true, cand.stepID, false, true
		}
	}
	for _, cand := range idx.FindUnifying(query.Right) {
		bindings := map[atom.AtomId]term.Term{}
		if matchTerm(cand.literal.Left, query.Right, bindings) &&
			matchTerm(cand.literal.Right, query.Left, bindings) {
			return true, cand.stepID, true, true
		}
	}
	return false, 0, false, false
}

// matchTerm is one-directional matching: pattern's variables may bind to
// any subterm of query, consistently across the whole match; query's own
// variables are treated as rigid constants.
func matchTerm(pattern, query term.Term, bindings map[atom.AtomId]term.Term) bool {
	if vid, ok := pattern.AtomicVariable(); ok {
		if bound, ok := bindings[vid]; ok {
			return bound.Equal(query)
		}
		bindings[vid] = query
		return true
	}
	if pattern.Head.Kind != query.Head.Kind || pattern.Head.Id != query.Head.Id {
		return false
	}
	if len(pattern.Args) != len(query.Args) {
		return false
	}
	for i := range pattern.Args {
		if !matchTerm(pattern.Args[i], query.Args[i], bindings) {
			return false
		}
	}
	return true
}
