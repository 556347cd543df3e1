package patterntree

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

func TestFindGeneralizationMatchesGroundInstance(t *testing.T) {
	s := New()
	x := v(0)
	a := konst(0)
	// stored: s(x) = x (a generalization of the query below)
	lit := term.NewLiteral(true, apply(1, x), x)
	s.Insert(lit, 7)

	query := term.NewLiteral(true, apply(1, a), a)
	positive, stepID, _, ok := s.FindGeneralization(query)
	if !ok {
		t.Fatalf("expected a matching generalization to be found")
	}
	if !positive || stepID != 7 {
		t.Errorf("expected positive match from step 7, got positive=%v stepID=%d", positive, stepID)
	}
}

func TestFindGeneralizationReportsNegativeSeparately(t *testing.T) {
	s := New()
	x := v(0)
	a, b := konst(0), konst(1)
	lit := term.NewLiteral(false, apply(1, x), x)
	s.Insert(lit, 3)

	query := term.NewLiteral(false, apply(1, a), a)
	positive, stepID, _, ok := s.FindGeneralization(query)
	if !ok || positive || stepID != 3 {
		t.Fatalf("expected a negative match from step 3, got ok=%v positive=%v stepID=%d", ok, positive, stepID)
	}

	miss := term.NewLiteral(false, apply(1, b), a)
	if _, _, _, ok := s.FindGeneralization(miss); ok {
		t.Errorf("expected no match for an unrelated ground literal")
	}
}

func TestFindGeneralizationTriesFlippedOrientation(t *testing.T) {
	s := New()
	x := v(0)
	a := konst(0)
	lit := term.NewLiteral(true, x, apply(1, x))
	s.Insert(lit, 1)

	query := term.NewLiteral(true, apply(1, a), a)
	_, _, flipped, ok := s.FindGeneralization(query)
	if !ok {
		t.Fatalf("expected the flipped orientation to still match")
	}
	_ = flipped
}
