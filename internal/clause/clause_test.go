package clause

import (
	"testing"

	"sooth/internal/atom"
	"sooth/internal/term"
)

const natType atom.TypeId = 2

func v(id int) term.Term {
	return term.Atomic(natType, natType, atom.NewVariable(atom.AtomId(id)))
}

func c(id int) term.Term {
	return term.Atomic(natType, natType, atom.NewGlobalConstant(atom.AtomId(id)))
}

func TestNewDropsTautologiesAndImpossibleLiterals(t *testing.T) {
	x := v(0)
	a := c(0)

	if _, ok := New([]term.Literal{term.NewLiteral(true, x, x)}); ok {
		t.Errorf("expected a tautologous literal to make the whole clause vacuous")
	}

	cl, ok := New([]term.Literal{
		term.NewLiteral(false, a, a),
		term.NewLiteral(true, x, a),
	})
	if !ok {
		t.Fatalf("expected a clause with one impossible and one real literal to survive")
	}
	if cl.Len() != 1 {
		t.Errorf("expected the impossible literal to be dropped, got %d literals", cl.Len())
	}
}

func TestNewDeduplicatesAndRenumbersVariables(t *testing.T) {
	x, y := v(5), v(7)
	a := c(0)

	cl, ok := New([]term.Literal{
		term.NewLiteral(true, x, a),
		term.NewLiteral(true, x, a),
		term.NewLiteral(false, y, a),
	})
	if !ok {
		t.Fatalf("expected clause construction to succeed")
	}
	if cl.Len() != 2 {
		t.Fatalf("expected the duplicate literal to be removed, got %d literals", cl.Len())
	}
	if cl.MaxVarId() != 1 {
		t.Errorf("expected variables renumbered to a dense 0..1 range, got max var id %d", cl.MaxVarId())
	}
}

func TestNewWithTraceReportsEliminatedAndOutputIndices(t *testing.T) {
	x := v(0)
	a := c(0)

	lits := []term.Literal{
		term.NewLiteral(false, a, a), // impossible, dropped
		term.NewLiteral(true, x, a),
		term.NewLiteral(true, x, a), // duplicate of the previous
	}
	cl, trace := NewWithTrace(lits)
	if cl == nil {
		t.Fatalf("expected a non-nil clause")
	}
	if trace[0].Kind != Impossible {
		t.Errorf("expected literal 0 to be traced Impossible, got %v", trace[0].Kind)
	}
	if trace[1].Kind != Output || trace[2].Kind != Output {
		t.Errorf("expected literals 1 and 2 to both trace to Output, got %v %v", trace[1].Kind, trace[2].Kind)
	}
	if trace[1].Index != trace[2].Index {
		t.Errorf("expected the duplicate literal to share its output index with the original")
	}
}

func TestIsEmptyAndIsRewriteRule(t *testing.T) {
	empty, ok := New(nil)
	if !ok || !empty.IsEmpty() {
		t.Fatalf("expected New(nil) to produce the empty clause")
	}

	x := v(0)
	a := c(0)
	// a = a is a tautology and would vanish; use a heavier ground term on
	// the left so it KBO-orients as a rewrite rule: f(a) = a.
	fa := term.Apply(natType, natType, atom.NewGlobalConstant(1), a)
	cl, ok := New([]term.Literal{term.NewLiteral(true, fa, a)})
	if !ok {
		t.Fatalf("expected clause construction to succeed")
	}
	if !cl.IsRewriteRule() {
		t.Errorf("expected a single oriented positive equation to be a rewrite rule")
	}

	notRule, ok := New([]term.Literal{
		term.NewLiteral(true, fa, a),
		term.NewLiteral(true, x, a),
	})
	if !ok {
		t.Fatalf("expected clause construction to succeed")
	}
	if notRule.IsRewriteRule() {
		t.Errorf("expected a two-literal clause not to be a rewrite rule")
	}
}

func TestContains(t *testing.T) {
	x := v(0)
	a, b := c(0), c(1)

	sub, ok := New([]term.Literal{term.NewLiteral(true, x, a)})
	if !ok {
		t.Fatalf("expected clause construction to succeed")
	}
	super, ok := New([]term.Literal{
		term.NewLiteral(true, x, a),
		term.NewLiteral(false, b, a),
	})
	if !ok {
		t.Fatalf("expected clause construction to succeed")
	}

	if !super.Contains(sub) {
		t.Errorf("expected super to contain its own subclause")
	}
	if sub.Contains(super) {
		t.Errorf("expected sub not to contain a clause with an extra literal")
	}
}

func TestEqualRequiresSameLiteralsInOrder(t *testing.T) {
	x := v(0)
	a := c(0)
	c1, _ := New([]term.Literal{term.NewLiteral(true, x, a)})
	c2, _ := New([]term.Literal{term.NewLiteral(true, x, a)})
	if !c1.Equal(c2) {
		t.Errorf("expected two clauses built from alpha-equivalent literals to be Equal")
	}
}

func TestKeyAndStringAgreeAndEmptyClauseIsFalse(t *testing.T) {
	empty, _ := New(nil)
	if empty.String() != "false" {
		t.Errorf(`expected the empty clause to print as "false", got %q`, empty.String())
	}

	x := v(0)
	a := c(0)
	cl, _ := New([]term.Literal{term.NewLiteral(true, x, a)})
	if cl.Key() != cl.String() {
		t.Errorf("expected Key and String to agree for a non-empty clause")
	}
}
