// Package value models the rich, higher-order, possibly-polymorphic values
// that an external environment elaborates source statements into. This is
// the boundary type spec.md's Normalizer consumes (LogicValue) and produces
// facts from; nothing upstream of it — parsing, name resolution, module
// structure — is part of this module's scope.
package value

import "strings"

// Type is a small, possibly-polymorphic type language: a named ground type,
// a function type, or a bound type parameter (for polymorphic constants).
// The prover core never sees a Type directly; the normalizer's
// NormalizationMap flattens every Type it encounters into a TypeId.
type Type interface {
	isType()
	String() string
}

// NamedType is a nullary type like "Nat" or "Bool", or an instantiated
// generic type like "List<Nat>" when Args is non-empty.
type NamedType struct {
	Name string
	Args []Type
}

func (NamedType) isType() {}
func (t NamedType) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return t.Name + "<" + strings.Join(parts, ", ") + ">"
}

// FunctionType is A1 -> A2 -> ... -> Return.
type FunctionType struct {
	Args   []Type
	Return Type
}

func (FunctionType) isType() {}
func (t FunctionType) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, ", ") + ") -> " + t.Return.String()
}

// TypeParam is a polymorphic constant's own type variable, e.g. the `T` in
// `forall<T> id(x: T) -> T`. It only ever appears inside the declared type
// of a polymorphic constant, never in a ground fact.
type TypeParam struct {
	Name string
}

func (TypeParam) isType()        {}
func (t TypeParam) String() string { return t.Name }

// ConstantRef names a constant, scoped by module, together with the type
// parameters it's polymorphic over (empty for a monomorphic constant).
type ConstantRef struct {
	Module     string
	Name       string
	TypeParams []string
	Type       Type
}

// LogicValue is the rich higher-order value the normalizer consumes. It is
// deliberately a small, closed set of node kinds: everything the original
// implementation's richer AcornValue supports beyond this (match
// expressions, parameterized typeclasses, etc.) either desugars into these
// nodes upstream of the prover core, or is out of scope per spec.md's
// Non-goals.
type LogicValue interface {
	isLogicValue()
	String() string
}

// BoundVariable is a reference to an enclosing binder (Lambda/ForAll/Exists)
// counted by De Bruijn depth from the reference site.
type BoundVariable struct {
	Index int
	Type  Type
}

func (BoundVariable) isLogicValue()  {}
func (v BoundVariable) String() string { return "$" + itoa(v.Index) }

// GlobalConstant, LocalConstant reference a named constant. TypeArgs is
// non-empty when Ref is polymorphic and this occurrence instantiates it;
// the normalizer's monomorphization pass is what turns such an occurrence
// into a Monomorph atom.
type GlobalConstant struct {
	Ref      ConstantRef
	TypeArgs []Type
}

func (GlobalConstant) isLogicValue()  {}
func (v GlobalConstant) String() string { return v.Ref.Name }

type LocalConstant struct {
	Ref  ConstantRef
	Type Type
}

func (LocalConstant) isLogicValue()  {}
func (v LocalConstant) String() string { return v.Ref.Name }

// Application is `Function(Args...)`.
type Application struct {
	Function LogicValue
	Args     []LogicValue
	Type     Type
}

func (Application) isLogicValue() {}
func (v Application) String() string {
	parts := make([]string, len(v.Args))
	for i, a := range v.Args {
		parts[i] = a.String()
	}
	return v.Function.String() + "(" + strings.Join(parts, ", ") + ")"
}

// Lambda is `fun(ArgTypes) => Body`, with Body referencing the new binders
// as BoundVariable(0), BoundVariable(1), ... in argument order.
type Lambda struct {
	ArgTypes []Type
	Body     LogicValue
}

func (Lambda) isLogicValue()  {}
func (v Lambda) String() string { return "fun(...) => " + v.Body.String() }

// ForAll / Exists quantify Body over QuantTypes, innermost binder first.
type ForAll struct {
	QuantTypes []Type
	Body       LogicValue
}

func (ForAll) isLogicValue()  {}
func (v ForAll) String() string { return "forall(...) { " + v.Body.String() + " }" }

type Exists struct {
	QuantTypes []Type
	Body       LogicValue
}

func (Exists) isLogicValue()  {}
func (v Exists) String() string { return "exists(...) { " + v.Body.String() + " }" }

// Not, And, Or, Implies are the propositional connectives.
type Not struct{ Value LogicValue }

func (Not) isLogicValue()    {}
func (v Not) String() string { return "!" + v.Value.String() }

type And struct{ Left, Right LogicValue }

func (And) isLogicValue()    {}
func (v And) String() string { return "(" + v.Left.String() + " & " + v.Right.String() + ")" }

type Or struct{ Left, Right LogicValue }

func (Or) isLogicValue()    {}
func (v Or) String() string { return "(" + v.Left.String() + " | " + v.Right.String() + ")" }

type Implies struct{ Left, Right LogicValue }

func (Implies) isLogicValue()    {}
func (v Implies) String() string { return "(" + v.Left.String() + " -> " + v.Right.String() + ")" }

// Equals, NotEquals compare two values of the same type.
type Equals struct{ Left, Right LogicValue }

func (Equals) isLogicValue()    {}
func (v Equals) String() string { return v.Left.String() + " = " + v.Right.String() }

type NotEquals struct{ Left, Right LogicValue }

func (NotEquals) isLogicValue()    {}
func (v NotEquals) String() string { return v.Left.String() + " != " + v.Right.String() }

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	neg := i < 0
	if neg {
		i = -i
	}
	var buf [20]byte
	pos := len(buf)
	for i > 0 {
		pos--
		buf[pos] = byte('0' + i%10)
		i /= 10
	}
	if neg {
		pos--
		buf[pos] = '-'
	}
	return string(buf[pos:])
}
