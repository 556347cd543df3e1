package fingerprint

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

func TestFindUnifyingMatchesSameHead(t *testing.T) {
	fu := New[string]()
	a := konst(0)
	sa := apply(1, a) // s(a)
	fu.Insert(sa, "s(a)")

	got := fu.FindUnifying(apply(1, a))
	if len(got) != 1 || got[0] != "s(a)" {
		t.Fatalf("expected s(a) to be found for an identical query, got %v", got)
	}
}

func TestFindUnifyingExcludesDifferentHeads(t *testing.T) {
	fu := New[string]()
	a := konst(0)
	fu.Insert(apply(1, a), "s(a)")

	got := fu.FindUnifying(apply(2, a))
	if len(got) != 0 {
		t.Errorf("expected no matches for a differently-headed query, got %v", got)
	}
}

func TestFindUnifyingAlwaysIncludesVariableRootEntries(t *testing.T) {
	fu := New[string]()
	fu.Insert(v(0), "x")
	a := konst(0)
	fu.Insert(apply(1, a), "s(a)")

	got := fu.FindUnifying(apply(2, a))
	if len(got) != 1 || got[0] != "x" {
		t.Fatalf("expected the variable-rooted entry to be a candidate for any query, got %v", got)
	}
}

func TestFindUnifyingQueryVariableMatchesEverything(t *testing.T) {
	fu := New[string]()
	a, b := konst(0), konst(1)
	fu.Insert(apply(1, a), "s(a)")
	fu.Insert(apply(2, b), "t(b)")

	got := fu.FindUnifying(v(0))
	if len(got) != 2 {
		t.Fatalf("expected a query variable to match every indexed entry, got %v", got)
	}
}

func TestLenCountsAllEntries(t *testing.T) {
	fu := New[string]()
	fu.Insert(v(0), "x")
	fu.Insert(konst(0), "a")
	fu.Insert(konst(1), "b")
	if fu.Len() != 3 {
		t.Errorf("Len() = %d, want 3", fu.Len())
	}
}

func TestFindUnifyingRespectsDeeperFingerprintMismatch(t *testing.T) {
	fu := New[string]()
	a, b := konst(0), konst(1)
	// same root head (1) but different concrete argument head at path {0}
	fu.Insert(apply(1, a), "f(a)")

	got := fu.FindUnifying(apply(1, b))
	if len(got) != 0 {
		t.Errorf("expected f(a) not to be a candidate for query f(b), got %v", got)
	}
}
