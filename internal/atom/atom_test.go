package atom

import "testing"

func TestIsGlobalDistinguishesGlobalFromLocalConstants(t *testing.T) {
	cases := []struct {
		a    Atom
		want bool
	}{
		{NewGlobalConstant(0), true},
		{NewMonomorph(0), true},
		{NewLocalConstant(0), false},
		{NewSkolem(0), false},
		{NewVariable(0), false},
		{TrueAtom, false},
	}
	for _, c := range cases {
		if got := c.a.IsGlobal(); got != c.want {
			t.Errorf("%s.IsGlobal() = %v, want %v", c.a, got, c.want)
		}
	}
}

func TestLessOrdersByKindThenId(t *testing.T) {
	v1 := NewVariable(1)
	g0 := NewGlobalConstant(0)

	if !v1.Less(g0) {
		t.Errorf("expected Variable to sort before GlobalConstant regardless of id")
	}
	if g0.Less(v1) {
		t.Errorf("expected GlobalConstant not to sort before Variable")
	}

	g1 := NewGlobalConstant(1)
	if !g0.Less(g1) {
		t.Errorf("expected same-kind atoms to order by id")
	}
}

func TestEqualRequiresSameKindAndId(t *testing.T) {
	if !NewLocalConstant(3).Equal(NewLocalConstant(3)) {
		t.Errorf("expected equal kind+id atoms to be Equal")
	}
	if NewLocalConstant(3).Equal(NewSkolem(3)) {
		t.Errorf("expected different kinds with the same id not to be Equal")
	}
}

func TestIsConstantCoversEveryNonVariableKind(t *testing.T) {
	for _, a := range []Atom{NewGlobalConstant(0), NewLocalConstant(0), NewMonomorph(0), NewSkolem(0), TrueAtom} {
		if !a.IsConstant() {
			t.Errorf("expected %s to be a constant", a)
		}
	}
	if NewVariable(0).IsConstant() {
		t.Errorf("expected a Variable not to be a constant")
	}
}
