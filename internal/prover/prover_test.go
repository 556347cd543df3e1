package prover

import (
	"testing"

	"sooth/internal/fact"
	"sooth/internal/proofstep"
	"sooth/internal/value"
)

func boolType() value.Type { return value.NamedType{Name: "bool"} }
func natType() value.Type  { return value.NamedType{Name: "Nat"} }

func boolConst(name string) value.LogicValue {
	return value.GlobalConstant{Ref: value.ConstantRef{Module: "main", Name: name, Type: boolType()}}
}

func natConst(name string) value.LogicValue {
	return value.GlobalConstant{Ref: value.ConstantRef{Module: "main", Name: name, Type: natType()}}
}

func unaryNat(name string, arg value.LogicValue) value.LogicValue {
	return value.Application{
		Function: value.GlobalConstant{Ref: value.ConstantRef{
			Module: "main", Name: name,
			Type: value.FunctionType{Args: []value.Type{natType()}, Return: natType()},
		}},
		Args: []value.LogicValue{arg},
		Type: natType(),
	}
}

func namedSource(name string) fact.Source {
	return fact.Source{ModuleID: "main", Type: fact.Axiom, Name: name, Importable: true}
}

// grounded on prover.rs's given-clause loop tests: a bare propositional
// tautology "p -> (q -> p)" should resolve against its own negation without
// any supporting facts.
func TestProverProvesPropositionalTautology(t *testing.T) {
	p, q := boolConst("p"), boolConst("q")
	goal := value.Implies{Left: p, Right: value.Implies{Left: q, Right: p}}

	pr := New()
	pr.SetGoal(fact.Prove{Proposition: goal}, fact.MockSource())

	outcome := pr.VerificationSearch()
	if outcome.Kind != Success {
		t.Fatalf("VerificationSearch() = %v, want Success", outcome)
	}
}

// grounded on prover.rs's resolution-chain style tests: p|q, !p|r, !q|r
// together with the negated goal !r resolve down to the empty clause.
func TestProverProvesResolutionChain(t *testing.T) {
	p, q, r := boolConst("p"), boolConst("q"), boolConst("r")

	pr := New()
	pr.AddFact(fact.Proposition{Value: value.Or{Left: p, Right: q}, Src: namedSource("pq")}, proofstep.Factual)
	pr.AddFact(fact.Proposition{Value: value.Or{Left: value.Not{Value: p}, Right: r}, Src: namedSource("pr")}, proofstep.Factual)
	pr.AddFact(fact.Proposition{Value: value.Or{Left: value.Not{Value: q}, Right: r}, Src: namedSource("qr")}, proofstep.Factual)
	pr.SetGoal(fact.Prove{Proposition: r}, fact.MockSource())

	outcome := pr.VerificationSearch()
	if outcome.Kind != Success {
		t.Fatalf("VerificationSearch() = %v, want Success", outcome)
	}

	used := pr.UsedPremises()
	if len(used) == 0 {
		t.Fatalf("expected UsedPremises() to report at least one premise from the resolution chain")
	}
	known := map[string]bool{"pq": true, "pr": true, "qr": true}
	for src := range used {
		if !known[src.Name] {
			t.Errorf("UsedPremises() reported unexpected source %q", src.Name)
		}
	}
}

// grounded on prover.rs's rewriting tests: suc is injective and never equal
// to zero; suc(zero) != zero should follow from suc_neq_zero alone, without
// needing suc_injective.
func TestProverProvesEqualityRewriting(t *testing.T) {
	zero := natConst("zero")
	x := value.BoundVariable{Index: 1, Type: natType()}
	y := value.BoundVariable{Index: 0, Type: natType()}

	sucInjective := value.ForAll{QuantTypes: []value.Type{natType()}, Body: value.ForAll{
		QuantTypes: []value.Type{natType()},
		Body: value.Implies{
			Left:  value.Equals{Left: unaryNat("suc", x), Right: unaryNat("suc", y)},
			Right: value.Equals{Left: x, Right: y},
		},
	}}
	sucNeqZero := value.ForAll{
		QuantTypes: []value.Type{natType()},
		Body:       value.NotEquals{Left: unaryNat("suc", value.BoundVariable{Index: 0, Type: natType()}), Right: zero},
	}

	pr := New()
	pr.AddFact(fact.Proposition{Value: sucInjective, Src: namedSource("suc_injective")}, proofstep.Factual)
	pr.AddFact(fact.Proposition{Value: sucNeqZero, Src: namedSource("suc_neq_zero")}, proofstep.Factual)
	pr.SetGoal(fact.Prove{Proposition: value.NotEquals{Left: unaryNat("suc", zero), Right: zero}}, fact.MockSource())

	outcome := pr.VerificationSearch()
	if outcome.Kind != Success {
		t.Fatalf("VerificationSearch() = %v, want Success", outcome)
	}

	used := pr.UsedPremises()
	for src := range used {
		if src.Name == "suc_injective" {
			t.Errorf("expected the proof to not need suc_injective, but it was used")
		}
	}
}

// grounded on prover.rs's inconsistent-premises tests: two contradictory
// facts unrelated to the stated goal report Inconsistent, not Success,
// unless the goal opts in via InconsistencyOkay.
func TestProverReportsInconsistentPremises(t *testing.T) {
	p := boolConst("p")
	q := boolConst("q")

	pr := New()
	pr.AddFact(fact.Proposition{Value: p, Src: namedSource("p_true")}, proofstep.Factual)
	pr.AddFact(fact.Proposition{Value: value.Not{Value: p}, Src: namedSource("p_false")}, proofstep.Factual)
	pr.SetGoal(fact.Prove{Proposition: q}, fact.MockSource())

	outcome := pr.QuickSearch()
	if outcome.Kind != Inconsistent {
		t.Fatalf("QuickSearch() = %v, want Inconsistent", outcome)
	}
}

func TestProverInconsistencyOkayReportsSuccess(t *testing.T) {
	p := boolConst("p")
	q := boolConst("q")

	pr := New()
	pr.AddFact(fact.Proposition{Value: p, Src: namedSource("p_true")}, proofstep.Factual)
	pr.AddFact(fact.Proposition{Value: value.Not{Value: p}, Src: namedSource("p_false")}, proofstep.Factual)
	pr.SetGoal(fact.Prove{Proposition: q, InconsistencyOkay: true}, fact.MockSource())

	outcome := pr.QuickSearch()
	if outcome.Kind != Success {
		t.Fatalf("QuickSearch() = %v, want Success when InconsistencyOkay is set", outcome)
	}
}

// grounded on active_set.rs's congruence-closure handling: a=b, b=c and
// f(a)!=f(c) contradict through the term graph, not through ordinary
// resolution/rewriting over the clauses themselves.
func TestProverProvesCongruenceClosure(t *testing.T) {
	a, b, c := natConst("a"), natConst("b"), natConst("c")

	pr := New()
	pr.AddFact(fact.Proposition{Value: value.Equals{Left: a, Right: b}, Src: namedSource("ab")}, proofstep.Factual)
	pr.AddFact(fact.Proposition{Value: value.Equals{Left: b, Right: c}, Src: namedSource("bc")}, proofstep.Factual)
	pr.AddFact(fact.Proposition{Value: value.NotEquals{Left: unaryNat("f", a), Right: unaryNat("f", c)}, Src: namedSource("fac")}, proofstep.Factual)
	pr.SetGoal(fact.Prove{Proposition: boolConst("unrelated"), InconsistencyOkay: true}, fact.MockSource())

	outcome := pr.VerificationSearch()
	if outcome.Kind != Success {
		t.Fatalf("VerificationSearch() = %v, want Success (congruence closure should contradict a=b, b=c, f(a)!=f(c))", outcome)
	}
}
