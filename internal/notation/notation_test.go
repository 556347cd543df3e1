package notation

import (
	"testing"

	"sooth/internal/value"
)

func TestParseReflexiveEquality(t *testing.T) {
	v, err := ParseString("main", "n:Nat = n")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	eq, ok := v.(value.Equals)
	if !ok {
		t.Fatalf("expected Equals, got %T", v)
	}
	left, ok := eq.Left.(value.GlobalConstant)
	if !ok {
		t.Fatalf("expected Left to be a GlobalConstant, got %T", eq.Left)
	}
	if left.Ref.Name != "n" || left.Ref.Type.String() != "Nat" {
		t.Errorf("unexpected left ref: %+v", left.Ref)
	}
}

func TestParseForallBindsVariablesInDeclarationOrder(t *testing.T) {
	v, err := ParseString("main", "forall x:Nat, y:Nat . f(x, y):Nat = f(y, x)")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	fa, ok := v.(value.ForAll)
	if !ok {
		t.Fatalf("expected ForAll, got %T", v)
	}
	if len(fa.QuantTypes) != 2 {
		t.Fatalf("expected 2 quantified types, got %d", len(fa.QuantTypes))
	}
	eq, ok := fa.Body.(value.Equals)
	if !ok {
		t.Fatalf("expected an Equals body, got %T", fa.Body)
	}
	app, ok := eq.Left.(value.Application)
	if !ok {
		t.Fatalf("expected an Application, got %T", eq.Left)
	}
	x, ok := app.Args[0].(value.BoundVariable)
	if !ok || x.Index != 0 {
		t.Errorf("expected x (declared first) to have index 0, got %+v (%T)", app.Args[0], app.Args[0])
	}
	y, ok := app.Args[1].(value.BoundVariable)
	if !ok || y.Index != 1 {
		t.Errorf("expected y (declared second) to have index 1, got %+v (%T)", app.Args[1], app.Args[1])
	}
}

func TestParseExistsUnderForallShiftsOuterIndex(t *testing.T) {
	v, err := ParseString("main", "forall x:Nat . exists y:Nat . f(x, y):Bool")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	fa := v.(value.ForAll)
	ex, ok := fa.Body.(value.Exists)
	if !ok {
		t.Fatalf("expected Exists nested under ForAll, got %T", fa.Body)
	}
	app := ex.Body.(value.Application)
	x := app.Args[0].(value.BoundVariable)
	y := app.Args[1].(value.BoundVariable)
	if x.Index != 1 {
		t.Errorf("expected outer x to have shifted to index 1, got %d", x.Index)
	}
	if y.Index != 0 {
		t.Errorf("expected inner y to have index 0, got %d", y.Index)
	}
}

func TestParseImpliesIsRightAssociative(t *testing.T) {
	v, err := ParseString("main", "a:Bool -> b:Bool -> c:Bool")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	outer, ok := v.(value.Implies)
	if !ok {
		t.Fatalf("expected Implies, got %T", v)
	}
	if _, ok := outer.Right.(value.Implies); !ok {
		t.Fatalf("expected right-associative nesting, got %T", outer.Right)
	}
}

func TestParseOrAndPrecedence(t *testing.T) {
	v, err := ParseString("main", "a:Bool | b:Bool & c:Bool")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
	or, ok := v.(value.Or)
	if !ok {
		t.Fatalf("expected & to bind tighter than |, got %T", v)
	}
	if _, ok := or.Right.(value.And); !ok {
		t.Fatalf("expected right side of | to be an And, got %T", or.Right)
	}
}

func TestParseUnannotatedConstantAfterFirstUseReusesType(t *testing.T) {
	_, err := ParseString("main", "n:Nat = n & n = n")
	if err != nil {
		t.Fatalf("ParseString: %v", err)
	}
}

func TestParseUnannotatedConstantBeforeFirstUseErrors(t *testing.T) {
	_, err := ParseString("main", "n = n:Nat")
	if err == nil {
		t.Fatalf("expected an error when a constant's first occurrence has no type annotation")
	}
}
