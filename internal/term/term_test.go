package term

import (
	"testing"

	"sooth/internal/atom"
)

const natType atom.TypeId = 2

func v(id int) Term {
	return Atomic(natType, natType, atom.NewVariable(atom.AtomId(id)))
}

func konst(id int) Term {
	return Atomic(natType, natType, atom.NewGlobalConstant(atom.AtomId(id)))
}

func apply(head int, args ...Term) Term {
	return Apply(natType, natType, atom.NewGlobalConstant(atom.AtomId(head)), args...)
}

// ground pairs exercised for the totality check: KBO totally orders ground
// terms, so Compare must never report "incomparable" for any of these.
func groundSamples() []Term {
	a, b, c := konst(0), konst(1), konst(2)
	return []Term{
		a, b, c,
		apply(3, a),
		apply(3, b),
		apply(3, a, b),
		apply(3, b, a),
		apply(4, apply(3, a), b),
		apply(3, apply(3, a)),
	}
}

func TestCompareTotalOnGroundTerms(t *testing.T) {
	samples := groundSamples()
	for i, s1 := range samples {
		for j, s2 := range samples {
			cmp, ok := Compare(s1, s2)
			if !ok {
				t.Fatalf("Compare(%s, %s) reported incomparable; KBO must be total over ground terms", s1, s2)
			}
			rev, ok2 := Compare(s2, s1)
			if !ok2 {
				t.Fatalf("Compare(%s, %s) reported incomparable", s2, s1)
			}
			if cmp != -rev {
				t.Errorf("Compare(%d,%d)=%d but Compare(%d,%d)=%d, want antisymmetric", i, j, cmp, j, i, rev)
			}
			if s1.Equal(s2) && cmp != 0 {
				t.Errorf("Compare(%s, %s)=%d, want 0 for syntactically equal terms", s1, s2, cmp)
			}
			if !s1.Equal(s2) && cmp == 0 {
				t.Errorf("Compare(%s, %s)=0 for distinct terms, want a strict order", s1, s2)
			}
		}
	}
}

func TestCompareHeavierTermWins(t *testing.T) {
	a, b := konst(0), konst(1)
	light := a
	heavy := apply(3, a, b)
	cmp, ok := Compare(heavy, light)
	if !ok || cmp != 1 {
		t.Fatalf("Compare(heavy, light) = (%d, %v), want (1, true)", cmp, ok)
	}
	cmp, ok = Compare(light, heavy)
	if !ok || cmp != -1 {
		t.Fatalf("Compare(light, heavy) = (%d, %v), want (-1, true)", cmp, ok)
	}
}

func TestCompareIncomparableWhenVariablesDiffer(t *testing.T) {
	x, y := v(0), v(1)
	if _, ok := Compare(x, y); ok {
		t.Errorf("Compare of two distinct bare variables should be incomparable")
	}
	fx := apply(3, x)
	if _, ok := Compare(fx, y); ok {
		t.Errorf("Compare(f(x), y) should be incomparable: f(x) does not cover y's variable")
	}
}

// TestCompareOrientsRewriteRule is invariant 3: a rewrite rule s -> t, as
// stored by rewritetree, always has s > t under Compare.
func TestCompareOrientsRewriteRule(t *testing.T) {
	x := v(0)
	zero := konst(0)
	// plus(x, 0) -> x
	s := apply(2, x, zero)
	tt := x
	cmp, ok := Compare(s, tt)
	if !ok {
		t.Fatalf("expected plus(x,0) and x to be comparable (x's variables are covered on both sides)")
	}
	if cmp != 1 {
		t.Fatalf("Compare(plus(x,0), x) = %d, want 1 (s must orient as the greater side)", cmp)
	}
}

// TestCompareStableUnderSubstitution is the other half of invariant 2/3: if
// s > t then sigma(s) > sigma(t) for any substitution sigma.
func TestCompareStableUnderSubstitution(t *testing.T) {
	x := v(0)
	s := apply(3, x) // f(x)
	tt := x
	cmp, ok := Compare(s, tt)
	if !ok || cmp != 1 {
		t.Fatalf("Compare(f(x), x) = (%d, %v), want (1, true)", cmp, ok)
	}

	a := konst(7)
	sub := map[atom.AtomId]Term{0: a}
	sSub := s.ReplaceVariables(sub)
	tSub := tt.ReplaceVariables(sub)
	cmpSub, ok := Compare(sSub, tSub)
	if !ok || cmpSub != 1 {
		t.Fatalf("Compare(f(a), a) after substitution = (%d, %v), want (1, true); order must be stable under substitution", cmpSub, ok)
	}
}

func TestCompareLexicalTiebreakOnEqualWeight(t *testing.T) {
	a, b := konst(0), konst(1)
	if !a.Head.Less(b.Head) {
		t.Fatalf("test assumes konst(0) sorts before konst(1)")
	}
	cmp, ok := Compare(a, b)
	if !ok || cmp != -1 {
		t.Fatalf("Compare(a, b) = (%d, %v), want (-1, true) since a has lower atom precedence", cmp, ok)
	}
}
