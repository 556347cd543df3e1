package normalize

import (
	"testing"

	"sooth/internal/fact"
	"sooth/internal/proofstep"
	"sooth/internal/value"
)

func boolRef(name string) value.ConstantRef {
	return value.ConstantRef{Module: "main", Name: name, Type: value.NamedType{Name: "bool"}}
}

// grounded on normalizer.rs's test_bool_formulas: "a -> a | (a | a)" normalizes
// to the single clause "x0 | !x0" -- the clause-level tautology p|!p is kept,
// since clause construction only eliminates a literal-level reflexive
// tautology (x=x), not a propositional one.
func TestNormalizeOneVariableTautologyClause(t *testing.T) {
	n := New()
	a := value.BoundVariable{Index: 0, Type: value.NamedType{Name: "bool"}}
	body := value.Implies{Left: a, Right: value.Or{Left: a, Right: value.Or{Left: a, Right: a}}}
	v := value.ForAll{QuantTypes: []value.Type{value.NamedType{Name: "bool"}}, Body: body}

	clauses, err := n.Normalize(v)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(clauses) != 1 {
		t.Fatalf("expected 1 clause, got %d: %v", len(clauses), clauses)
	}
	if clauses[0].Len() != 2 {
		t.Fatalf("expected 2 literals, got %d: %s", clauses[0].Len(), clauses[0])
	}
}

// grounded on normalizer.rs's test_bool_formulas: "a -> a & (a & a)" normalizes
// to three copies of the same clause, one per conjunct distributed out of the
// CNF of the conclusion.
func TestNormalizeConjunctionDistributesIntoThreeClauses(t *testing.T) {
	n := New()
	a := value.BoundVariable{Index: 0, Type: value.NamedType{Name: "bool"}}
	body := value.Implies{Left: a, Right: value.And{Left: a, Right: value.And{Left: a, Right: a}}}
	v := value.ForAll{QuantTypes: []value.Type{value.NamedType{Name: "bool"}}, Body: body}

	clauses, err := n.Normalize(v)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(clauses) != 3 {
		t.Fatalf("expected 3 clauses, got %d: %v", len(clauses), clauses)
	}
	for _, c := range clauses {
		if c.Len() != 2 {
			t.Errorf("expected 2 literals per clause, got %d: %s", c.Len(), c)
		}
	}
}

// grounded on normalizer.rs's test_tautology_elimination: "n = n" normalizes
// to zero clauses, since the lone reflexive literal makes the whole
// disjunction (of one) vacuously true.
func TestNormalizeReflexiveEqualityEliminatesClause(t *testing.T) {
	n := New()
	nat := value.NamedType{Name: "Nat"}
	x := value.BoundVariable{Index: 0, Type: nat}
	v := value.ForAll{QuantTypes: []value.Type{nat}, Body: value.Equals{Left: x, Right: x}}

	clauses, err := n.Normalize(v)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(clauses) != 0 {
		t.Fatalf("expected 0 clauses, got %d: %v", len(clauses), clauses)
	}
}

// grounded on normalizer.rs's test_tautology_elimination second case:
// "n = n | n != n" also fully eliminates, since both disjuncts are
// tautological/impossible reflexive literals.
func TestNormalizeReflexiveDisjunctionEliminatesClause(t *testing.T) {
	n := New()
	nat := value.NamedType{Name: "Nat"}
	x := value.BoundVariable{Index: 0, Type: nat}
	v := value.ForAll{
		QuantTypes: []value.Type{nat},
		Body:       value.Or{Left: value.Equals{Left: x, Right: x}, Right: value.NotEquals{Left: x, Right: x}},
	}

	clauses, err := n.Normalize(v)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(clauses) != 0 {
		t.Fatalf("expected 0 clauses, got %d: %v", len(clauses), clauses)
	}
}

// grounded on normalizer.rs's skolemize doc comment and test_nat_normalization's
// induction case: an existential nested under a universal skolemizes to a
// function of exactly the enclosing universal variables, not a prenex-order
// superset, so two skolems introduced under unrelated ForAlls each take only
// their own enclosing variable.
func TestSkolemizeTakesOnlyEnclosingUniversals(t *testing.T) {
	n := New()
	nat := value.NamedType{Name: "Nat"}
	p := boolRef("P")
	pRef := func(args ...value.LogicValue) value.LogicValue {
		return value.Application{
			Function: value.GlobalConstant{Ref: value.ConstantRef{
				Module: p.Module, Name: p.Name,
				Type: value.FunctionType{Args: []value.Type{nat, nat}, Return: value.NamedType{Name: "bool"}},
			}},
			Args: args,
			Type: value.NamedType{Name: "bool"},
		}
	}

	// forall(x, exists(y, P(x, y))) & forall(z, exists(w, P(z, w)))
	inner1 := value.Exists{QuantTypes: []value.Type{nat}, Body: pRef(
		value.BoundVariable{Index: 1, Type: nat}, value.BoundVariable{Index: 0, Type: nat})}
	outer1 := value.ForAll{QuantTypes: []value.Type{nat}, Body: inner1}

	inner2 := value.Exists{QuantTypes: []value.Type{nat}, Body: pRef(
		value.BoundVariable{Index: 1, Type: nat}, value.BoundVariable{Index: 0, Type: nat})}
	outer2 := value.ForAll{QuantTypes: []value.Type{nat}, Body: inner2}

	v := value.And{Left: outer1, Right: outer2}

	clauses, err := n.Normalize(v)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if len(clauses) != 2 {
		t.Fatalf("expected 2 clauses, got %d: %v", len(clauses), clauses)
	}
	for _, c := range clauses {
		if c.AtomCount() == 0 {
			t.Errorf("expected a non-trivial clause, got %s", c)
		}
	}
	if len(n.skolemTypes) != 2 {
		t.Fatalf("expected 2 skolem functions to be minted, got %d", len(n.skolemTypes))
	}
	for _, st := range n.skolemTypes {
		ft, ok := st.(value.FunctionType)
		if !ok {
			t.Fatalf("expected skolem type to be a FunctionType, got %T", st)
		}
		if len(ft.Args) != 1 {
			t.Errorf("expected skolem to take exactly 1 arg (its enclosing universal), got %d", len(ft.Args))
		}
	}
}

func TestNormalizeFactWrapsEachClauseAsAnAssumption(t *testing.T) {
	n := New()
	nat := value.NamedType{Name: "Nat"}
	x := value.BoundVariable{Index: 0, Type: nat}
	a := value.BoundVariable{Index: 0, Type: value.NamedType{Name: "bool"}}
	prop := value.ForAll{
		QuantTypes: []value.Type{value.NamedType{Name: "bool"}},
		Body:       value.Implies{Left: a, Right: value.And{Left: a, Right: a}},
	}
	_ = nat
	_ = x

	f := fact.Proposition{Value: prop, Src: fact.MockSource()}
	steps, err := n.NormalizeFact(f, proofstep.Factual)
	if err != nil {
		t.Fatalf("NormalizeFact: %v", err)
	}
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps (one per conjunct), got %d", len(steps))
	}
}
