package rewritetree

import (
	"testing"

	"sooth/internal/atom"
	"sooth/internal/term"
)

const natType atom.TypeId = 2

func v(id int) term.Term {
	return term.Atomic(natType, natType, atom.NewVariable(atom.AtomId(id)))
}

func konst(id int) term.Term {
	return term.Atomic(natType, natType, atom.NewGlobalConstant(atom.AtomId(id)))
}

func apply(head atom.AtomId, args ...term.Term) term.Term {
	return term.Apply(natType, natType, atom.NewGlobalConstant(head), args...)
}

func TestGetRewritesAppliesMatchingRule(t *testing.T) {
	tree := New()
	x := v(0)
	// s(x) + 0 = s(x)  stored as  plus(s(x), 0) -> s(x)
	zero := konst(0)
	lhs := apply(2, apply(1, x), zero) // plus(s(x), 0)
	rhs := apply(1, x)                 // s(x)
	tree.InsertLiteral(42, term.NewLiteral(true, lhs, rhs))

	a := konst(3)
	query := apply(2, apply(1, a), zero) // plus(s(a), 0)
	rewrites := tree.GetRewrites(query, 0)
	if len(rewrites) != 1 {
		t.Fatalf("expected exactly one applicable rewrite, got %d", len(rewrites))
	}
	got := rewrites[0]
	if got.PatternID != 42 || !got.Forwards {
		t.Errorf("expected PatternID 42 forwards, got %+v", got)
	}
	want := apply(1, a) // s(a)
	if !got.Term.Equal(want) {
		t.Errorf("Term = %s, want %s", got.Term, want)
	}
}

func TestGetRewritesFindsNoMatchForUnrelatedQuery(t *testing.T) {
	tree := New()
	x := v(0)
	zero := konst(0)
	lhs := apply(2, apply(1, x), zero)
	tree.InsertLiteral(1, term.NewLiteral(true, lhs, apply(1, x)))

	other := apply(5, konst(9))
	if rewrites := tree.GetRewrites(other, 0); len(rewrites) != 0 {
		t.Errorf("expected no rewrites for a differently-headed query, got %v", rewrites)
	}
}
