// Package clause implements Clause: an ordered, deduplicated, variable-
// renumbered disjunction of literals, plus the LiteralTrace bookkeeping used
// to explain how each output literal relates to the clause(s) it came from.
package clause

import (
	"sort"
	"strings"

	"sooth/internal/atom"
	"sooth/internal/term"
)

// Clause is a disjunction of literals: the empty clause represents False and
// is the target of every refutation proof.
type Clause struct {
	Literals []term.Literal
}

// TraceKind discriminates the three ways an output literal can be explained
// relative to the input literals that produced a new clause.
type TraceKind uint8

const (
	// Output means the literal at Index in the input became literal Index
	// (after possibly flipping sides) in the output.
	Output TraceKind = iota
	// Eliminated means the literal was consumed by the inference itself
	// (e.g. the resolved-upon literal) and does not appear in the output.
	Eliminated
	// Impossible means the literal was dropped because it was trivially
	// false (`x != x`) and so can never hold.
	Impossible
)

type LiteralTrace struct {
	Kind    TraceKind
	Index   int  // meaningful for Output and Eliminated
	Flipped bool // whether Left/Right were swapped relative to the input
}

// New builds a canonical clause: tautologous literals make the whole clause
// vacuously true (a zero Clause and ok=false are returned); impossible literals are
// dropped; surviving literals are deduplicated, sorted, and their variables
// renumbered to a dense 0-based range in first-occurrence order.
func New(literals []term.Literal) (Clause, bool) {
	c, _ := NewWithTrace(literals)
	if c == nil {
		return Clause{}, false
	}
	return *c, true
}

// NewWithTrace is New, but also returns a LiteralTrace per input literal so
// callers (ActiveSet inferences) can report which premise literal produced,
// or was eliminated to produce, each output literal. A nil Clause together
// with a nil trace slice means the clause is a tautology.
func NewWithTrace(literals []term.Literal) (*Clause, []LiteralTrace) {
	trace := make([]LiteralTrace, len(literals))
	kept := make([]term.Literal, 0, len(literals))
	keptFromIndex := make([]int, 0, len(literals))

	for i, lit := range literals {
		if lit.IsTautology() {
			return nil, nil
		}
		if lit.IsImpossible() {
			trace[i] = LiteralTrace{Kind: Impossible}
			continue
		}
		kept = append(kept, lit)
		keptFromIndex = append(keptFromIndex, i)
	}

	type indexed struct {
		lit      term.Literal
		fromIdx  int
	}
	idx := make([]indexed, len(kept))
	for i, l := range kept {
		idx[i] = indexed{lit: l, fromIdx: keptFromIndex[i]}
	}
	sort.SliceStable(idx, func(i, j int) bool { return idx[i].lit.Less(idx[j].lit) })

	deduped := make([]term.Literal, 0, len(idx))
	seen := map[string]int{} // literal string -> output index
	for _, e := range idx {
		key := e.lit.String()
		if outIdx, ok := seen[key]; ok {
			trace[e.fromIdx] = LiteralTrace{Kind: Output, Index: outIdx}
			continue
		}
		outIdx := len(deduped)
		seen[key] = outIdx
		deduped = append(deduped, e.lit)
		trace[e.fromIdx] = LiteralTrace{Kind: Output, Index: outIdx}
	}

	renumbered, varMap := normalizeVarIds(deduped)
	_ = varMap

	c := Clause{Literals: renumbered}
	return &c, trace
}

// normalizeVarIds rewrites variable ids so the clause's variables are
// numbered 0..n-1 in the order they're first encountered, after sorting.
// This keeps alpha-equivalent clauses byte-identical, which is required for
// the dedup/subsumption indices (LiteralSet, PassiveSet) to work by value.
func normalizeVarIds(lits []term.Literal) ([]term.Literal, map[atom.AtomId]atom.AtomId) {
	mapping := map[atom.AtomId]atom.AtomId{}
	next := atom.AtomId(0)
	var assign func(t term.Term) term.Term
	assign = func(t term.Term) term.Term {
		if t.IsVariable() {
			id, ok := mapping[t.Head.Id]
			if !ok {
				id = next
				mapping[t.Head.Id] = id
				next++
			}
			return term.Atomic(t.HeadType, t.TermType, atom.NewVariable(id))
		}
		return t
	}
	out := make([]term.Literal, len(lits))
	for i, l := range lits {
		out[i] = l.Map(assign)
	}
	return out, mapping
}

func (c Clause) IsEmpty() bool { return len(c.Literals) == 0 }

func (c Clause) Len() int { return len(c.Literals) }

func (c Clause) AtomCount() int {
	n := 0
	for _, l := range c.Literals {
		n += l.AtomCount()
	}
	return n
}

func (c Clause) NumPositiveLiterals() int {
	n := 0
	for _, l := range c.Literals {
		if l.Positive {
			n++
		}
	}
	return n
}

func (c Clause) HasAnyVariable() bool {
	for _, l := range c.Literals {
		if l.MaxVarId() >= 0 {
			return true
		}
	}
	return false
}

func (c Clause) HasLocalConstant() bool {
	for _, l := range c.Literals {
		if l.HasLocalConstant() {
			return true
		}
	}
	return false
}

func (c Clause) MaxVarId() int {
	max := -1
	for _, l := range c.Literals {
		if m := l.MaxVarId(); m > max {
			max = m
		}
	}
	return max
}

// IsRewriteRule reports whether the clause is a single positive literal
// whose left side strictly KBO-exceeds its right: exactly the shape the
// RewriteTree indexes as an oriented equation.
func (c Clause) IsRewriteRule() bool {
	if len(c.Literals) != 1 || !c.Literals[0].Positive {
		return false
	}
	l := c.Literals[0]
	cmp, ok := term.Compare(l.Left, l.Right)
	return ok && cmp > 0
}

// Contains reports whether every literal of other also occurs in c,
// literal-for-literal. Used by the resolution "cheapness" test: a resolvent
// is cheap when it is a strict subclause of one of its two parents.
func (c Clause) Contains(other Clause) bool {
	for _, ol := range other.Literals {
		found := false
		for _, l := range c.Literals {
			if l.Equal(ol) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Equal compares clauses structurally; relies on New having already
// canonicalized both sides (sorted, deduped, renumbered).
func (c Clause) Equal(other Clause) bool {
	if len(c.Literals) != len(other.Literals) {
		return false
	}
	for i := range c.Literals {
		if !c.Literals[i].Equal(other.Literals[i]) {
			return false
		}
	}
	return true
}

// Key returns a canonical string suitable for use as a map/set key (clause
// identity dedup in the Prover's new_clauses pass); String prints it too.
func (c Clause) Key() string {
	parts := make([]string, len(c.Literals))
	for i, l := range c.Literals {
		parts[i] = l.String()
	}
	return strings.Join(parts, " | ")
}

func (c Clause) String() string {
	if c.IsEmpty() {
		return "false"
	}
	return c.Key()
}

// Map applies f to every term in the clause's literals, keeping each
// literal's Left/Right as they were (no re-orientation, re-sorting or
// renumbering; callers that need a fully canonical result should pass the
// mapped literals back through New).
func (c Clause) Map(f func(term.Term) term.Term) Clause {
	out := make([]term.Literal, len(c.Literals))
	for i, l := range c.Literals {
		out[i] = l.Map(f)
	}
	return Clause{Literals: out}
}
