package term

import (
	"fmt"

	"sooth/internal/atom"
)

// Literal is `left = right` (Positive) or `left != right` (Negative). A
// non-equality atom p(args) is represented as the equation p(args) = true,
// matching the original prover's decision to treat predicates as boolean
// equations rather than adding a separate atomic-literal case.
type Literal struct {
	Positive bool
	Left     Term
	Right    Term
}

// NewLiteral canonicalizes left/right so that, whenever the two sides are
// KBO-comparable, Left is never smaller than Right. This keeps clause
// storage and rewrite-rule orientation (see is_rewrite_rule) deterministic.
func NewLiteral(positive bool, left, right Term) Literal {
	if cmp, ok := Compare(left, right); ok && cmp < 0 {
		left, right = right, left
	}
	return Literal{Positive: positive, Left: left, Right: right}
}

// NewLiteralWithFlip is NewLiteral but also reports whether left/right were
// swapped relative to the order the caller passed them in. Used by
// inference rules that need to know which side of a just-unified literal
// ended up canonically "left", to keep trace bookkeeping correct.
func NewLiteralWithFlip(positive bool, left, right Term) (Literal, bool) {
	if cmp, ok := Compare(left, right); ok && cmp < 0 {
		return Literal{Positive: positive, Left: right, Right: left}, true
	}
	return Literal{Positive: positive, Left: left, Right: right}, false
}

// NewAtomLiteral wraps a boolean-valued term p(args) as p(args) = true.
func NewAtomLiteral(positive bool, value Term) Literal {
	return NewLiteral(positive, value, Atomic(atom.TypeBool, atom.TypeBool, atom.TrueAtom))
}

func (l Literal) IsBooleanAtom() bool { return l.Right.IsTrue() }

func (l Literal) AtomCount() int { return l.Left.AtomCount() + l.Right.AtomCount() }

func (l Literal) MaxVarId() int {
	max := l.Left.MaxVarId()
	if r := l.Right.MaxVarId(); r > max {
		max = r
	}
	return max
}

func (l Literal) HasLocalConstant() bool {
	return l.Left.HasLocalConstant() || l.Right.HasLocalConstant()
}

// IsTautology reports whether the literal is trivially true: `x = x`, for a
// positive equality literal.
func (l Literal) IsTautology() bool {
	return l.Positive && l.Left.Equal(l.Right)
}

// IsImpossible reports whether the literal is trivially false: `x != x`, for
// a negative equality literal.
func (l Literal) IsImpossible() bool {
	return !l.Positive && l.Left.Equal(l.Right)
}

func (l Literal) Negate() Literal {
	return Literal{Positive: !l.Positive, Left: l.Left, Right: l.Right}
}

func (l Literal) Equal(other Literal) bool {
	return l.Positive == other.Positive && l.Left.Equal(other.Left) && l.Right.Equal(other.Right)
}

// Flipped swaps the two sides of the equation without re-canonicalizing;
// used when resolution needs to reference "the other orientation" of an
// equation that was already selected by index lookup.
func (l Literal) Flipped() Literal {
	return Literal{Positive: l.Positive, Left: l.Right, Right: l.Left}
}

func (l Literal) Map(f func(Term) Term) Literal {
	return Literal{Positive: l.Positive, Left: l.Left.Map(f), Right: l.Right.Map(f)}
}

func (l Literal) ReplaceVariables(sub map[atom.AtomId]Term) Literal {
	return NewLiteral(l.Positive, l.Left.ReplaceVariables(sub), l.Right.ReplaceVariables(sub))
}

func (l Literal) String() string {
	op := "="
	if !l.Positive {
		op = "!="
	}
	if l.IsBooleanAtom() {
		if l.Positive {
			return l.Left.String()
		}
		return fmt.Sprintf("!%s", l.Left.String())
	}
	return fmt.Sprintf("%s %s %s", l.Left.String(), op, l.Right.String())
}

// TermPair is one orientation of a unit literal's two sides, produced by
// BothTermPairs. Forward is true for the literal's own (Left, Right)
// orientation and false for the flipped (Right, Left) one.
type TermPair struct {
	Forward bool
	S, T    Term
}

// BothTermPairs yields (true, Left, Right) then (false, Right, Left): the two
// ways a unit equation can be read as a rewrite pattern `s -> t`. Used by
// superposition to try both directions of an activated equality.
func (l Literal) BothTermPairs() []TermPair {
	return []TermPair{
		{Forward: true, S: l.Left, T: l.Right},
		{Forward: false, S: l.Right, T: l.Left},
	}
}

// ExtendedKBOCompare totally orders literals for the rewrite "cheapness"
// test (spec.md 9's open question: the exact predicate is part of the
// spec). It extends Compare's partial ground order to a total one by
// falling back to atom-count and head-precedence lexical comparison
// whenever the two sides aren't KBO-comparable, matching the role
// Literal::Less already plays for clause canonicalization. Returns a value
// whose sign follows cmp.Compare conventions (negative: l < other).
func (l Literal) ExtendedKBOCompare(other Literal) int {
	if l.AtomCount() != other.AtomCount() {
		if l.AtomCount() < other.AtomCount() {
			return -1
		}
		return 1
	}
	if c, ok := Compare(l.Left, other.Left); ok && c != 0 {
		return c
	}
	if c := lexicalCompare(l.Left, other.Left); c != 0 {
		return c
	}
	if c, ok := Compare(l.Right, other.Right); ok && c != 0 {
		return c
	}
	if c := lexicalCompare(l.Right, other.Right); c != 0 {
		return c
	}
	if l.Positive != other.Positive {
		if !l.Positive {
			return -1
		}
		return 1
	}
	return 0
}

// Less gives literals a total order for clause canonicalization: by
// arity/size-ish proxy (atom count) then lexically by sides, negative before
// positive when otherwise tied (matching the convention that resolution
// targets look for the negative occurrence first).
func (l Literal) Less(other Literal) bool {
	if l.AtomCount() != other.AtomCount() {
		return l.AtomCount() < other.AtomCount()
	}
	if c, ok := Compare(l.Left, other.Left); ok && c != 0 {
		return c < 0
	}
	if c, ok := Compare(l.Right, other.Right); ok && c != 0 {
		return c < 0
	}
	if l.Positive != other.Positive {
		return !l.Positive
	}
	return false
}
