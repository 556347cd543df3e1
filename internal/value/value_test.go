package value

import "testing"

func TestNamedTypeStringIncludesArgsWhenGeneric(t *testing.T) {
	nat := NamedType{Name: "Nat"}
	if nat.String() != "Nat" {
		t.Errorf("expected a nullary type to print its bare name, got %q", nat.String())
	}

	list := NamedType{Name: "List", Args: []Type{nat}}
	if got, want := list.String(), "List<Nat>"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestFunctionTypeString(t *testing.T) {
	nat := NamedType{Name: "Nat"}
	b := NamedType{Name: "Bool"}
	ft := FunctionType{Args: []Type{nat, nat}, Return: b}
	if got, want := ft.String(), "(Nat, Nat) -> Bool"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestBoundVariableStringUsesDeBruijnIndex(t *testing.T) {
	bv := BoundVariable{Index: 2, Type: NamedType{Name: "Nat"}}
	if got, want := bv.String(), "$2"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestApplicationStringJoinsArgs(t *testing.T) {
	f := GlobalConstant{Ref: ConstantRef{Name: "add"}}
	x := BoundVariable{Index: 0}
	y := BoundVariable{Index: 1}
	app := Application{Function: f, Args: []LogicValue{x, y}}
	if got, want := app.String(), "add($0, $1)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestConnectiveStringsParenthesize(t *testing.T) {
	p := BoundVariable{Index: 0}
	q := BoundVariable{Index: 1}

	if got, want := (And{p, q}).String(), "($0 & $1)"; got != want {
		t.Errorf("And.String() = %q, want %q", got, want)
	}
	if got, want := (Or{p, q}).String(), "($0 | $1)"; got != want {
		t.Errorf("Or.String() = %q, want %q", got, want)
	}
	if got, want := (Implies{p, q}).String(), "($0 -> $1)"; got != want {
		t.Errorf("Implies.String() = %q, want %q", got, want)
	}
	if got, want := (Not{p}).String(), "!$0"; got != want {
		t.Errorf("Not.String() = %q, want %q", got, want)
	}
	if got, want := (Equals{p, q}).String(), "$0 = $1"; got != want {
		t.Errorf("Equals.String() = %q, want %q", got, want)
	}
	if got, want := (NotEquals{p, q}).String(), "$0 != $1"; got != want {
		t.Errorf("NotEquals.String() = %q, want %q", got, want)
	}
}

func TestItoaHandlesZeroNegativeAndPositive(t *testing.T) {
	bv := func(i int) BoundVariable { return BoundVariable{Index: i} }
	if got, want := bv(0).String(), "$0"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := bv(-7).String(), "$-7"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
	if got, want := bv(123).String(), "$123"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
