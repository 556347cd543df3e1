package factset

import (
	"testing"

	"sooth/internal/fact"
)

func TestToFactParsesPropositionNotation(t *testing.T) {
	e := Entry{Name: "refl", Kind: KindProposition, SourceKind: SourceAxiom, Value: "n:Nat = n"}
	f, err := e.ToFact("nat")
	if err != nil {
		t.Fatalf("ToFact: %v", err)
	}
	prop, ok := f.(fact.Proposition)
	if !ok {
		t.Fatalf("expected Proposition, got %T", f)
	}
	if prop.Src.Name != "refl" || prop.Src.Type != fact.Axiom {
		t.Errorf("unexpected source: %+v", prop.Src)
	}
}

func TestToFactDefinitionNeedsConstantType(t *testing.T) {
	e := Entry{Name: "double", Kind: KindDefinition, Value: "n:Nat"}
	if _, err := e.ToFact("nat"); err == nil {
		t.Fatalf("expected an error for a definition missing constant_type")
	}
}

func TestBuildProverSkipsInstanceFacts(t *testing.T) {
	fs := &FactSet{
		Module: "nat",
		Facts: []Entry{
			{Name: "nat_ring", Kind: KindInstance, Class: "Nat", Typeclass: "Ring"},
			{Name: "refl", Kind: KindProposition, Value: "n:Nat = n"},
		},
	}
	p, err := fs.BuildProver()
	if err != nil {
		t.Fatalf("BuildProver: %v", err)
	}
	if p.NumActivated() != 0 {
		t.Errorf("expected a fresh prover with nothing activated yet, got %d", p.NumActivated())
	}
}

func TestGoalToGoalParsesProveKind(t *testing.T) {
	g := GoalEntry{Kind: GoalProve, Value: "n:Nat = n"}
	goal, src, err := g.ToGoal("nat")
	if err != nil {
		t.Fatalf("ToGoal: %v", err)
	}
	if _, ok := goal.(fact.Prove); !ok {
		t.Fatalf("expected Prove, got %T", goal)
	}
	if !src.IsNegatedGoal() {
		t.Errorf("expected goal source to report IsNegatedGoal")
	}
}
