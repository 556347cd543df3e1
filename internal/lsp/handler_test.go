package lsp

import (
	"testing"

	"sooth/internal/factset"
	"sooth/internal/prover"
)

func TestConvertOutcomeSuccessProducesNoDiagnostics(t *testing.T) {
	fs := &factset.FactSet{Module: "nat"}
	diags := ConvertOutcome(fs, prover.Outcome{Kind: prover.Success})
	if diags != nil {
		t.Errorf("expected no diagnostics for Success, got %v", diags)
	}
}

func TestConvertOutcomeExhaustedProducesOneDiagnostic(t *testing.T) {
	fs := &factset.FactSet{
		Module: "nat",
		Goal:   &factset.GoalEntry{Kind: factset.GoalProve, Value: "n:Nat = n", Name: "refl"},
	}
	diags := ConvertOutcome(fs, prover.Outcome{Kind: prover.Exhausted})
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(diags))
	}
	if diags[0].Message == "" {
		t.Errorf("expected a non-empty message")
	}
}

func TestConvertOutcomeErrorUsesOutcomeMessage(t *testing.T) {
	fs := &factset.FactSet{Module: "nat"}
	diags := ConvertOutcome(fs, prover.Outcome{Kind: prover.ErrorKind, Message: "bad notation"})
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", len(diags))
	}
}

func TestProverHandlerVerifyWithoutFactSetIsQuiet(t *testing.T) {
	h := NewProverHandler()
	diags, err := h.verify("file:///unregistered.fact")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if diags != nil {
		t.Errorf("expected no diagnostics for an unregistered URI, got %v", diags)
	}
}

func TestProverHandlerSetFactSetThenVerify(t *testing.T) {
	h := NewProverHandler()
	fs := &factset.FactSet{
		Module: "nat",
		Facts: []factset.Entry{
			{Name: "refl", Kind: factset.KindProposition, Value: "n:Nat = n"},
		},
		Goal: &factset.GoalEntry{Kind: factset.GoalProve, Value: "n:Nat = n", Name: "refl_goal"},
	}
	h.SetFactSet("file:///nat.fact", fs)

	diags, err := h.verify("file:///nat.fact")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	_ = diags // outcome depends on search; just confirm it runs without error
}
