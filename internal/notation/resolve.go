package notation

import (
	"fmt"

	"sooth/internal/value"
)

// Value is an alias so callers of this package don't need to import
// sooth/internal/value just to name ParseString's return type.
type Value = value.LogicValue

// frame is one binder group's names, in declaration order. Within the same
// frame a BoundVariable's De Bruijn index is its position in this slice;
// crossing into a deeper frame adds that frame's width to every outer
// index, matching normalizer.go's bindValues/walk convention for a single
// ForAll/Exists node's QuantTypes.
type frame []string

// resolver turns parsed notation AST nodes into value.LogicValue, binding
// variable names to De Bruijn indices and remembering each constant's type
// from its first occurrence, since only the first occurrence carries a
// ":Type" annotation.
type resolver struct {
	module      string
	scope       []frame
	constants   map[string]value.Type
}

func newResolver(module string) *resolver {
	return &resolver{module: module, constants: map[string]value.Type{}}
}

func (r *resolver) lookupBound(name string) (value.BoundVariable, bool) {
	offset := 0
	for i := len(r.scope) - 1; i >= 0; i-- {
		f := r.scope[i]
		for pos, n := range f {
			if n == name {
				return value.BoundVariable{Index: offset + pos}, true
			}
		}
		offset += len(f)
	}
	return value.BoundVariable{}, false
}

func (r *resolver) resolveFormula(f *formula) (Value, error) {
	switch {
	case f.ForAll != nil:
		return r.resolveQuant(f.ForAll.Binders, f.ForAll.Body, false)
	case f.Exists != nil:
		return r.resolveQuant(f.Exists.Binders, f.Exists.Body, true)
	default:
		return r.resolveImplies(f.Implies)
	}
}

func (r *resolver) resolveQuant(binders []*binder, body *formula, existential bool) (Value, error) {
	names := make([]string, len(binders))
	quantTypes := make([]value.Type, len(binders))
	for i, b := range binders {
		names[i] = b.Name
		quantTypes[i] = value.NamedType{Name: b.Type}
	}

	r.scope = append(r.scope, frame(names))
	// Unannotated references to a binder take its declared type in the body.
	saved := map[string]value.Type{}
	for i, name := range names {
		if old, ok := r.constants[name]; ok {
			saved[name] = old
		}
		r.constants[name] = quantTypes[i]
	}
	bodyValue, err := r.resolveFormula(body)
	r.scope = r.scope[:len(r.scope)-1]
	for _, name := range names {
		delete(r.constants, name)
		if old, ok := saved[name]; ok {
			r.constants[name] = old
		}
	}
	if err != nil {
		return nil, err
	}

	if existential {
		return value.Exists{QuantTypes: quantTypes, Body: bodyValue}, nil
	}
	return value.ForAll{QuantTypes: quantTypes, Body: bodyValue}, nil
}

func (r *resolver) resolveImplies(e *impliesExpr) (Value, error) {
	left, err := r.resolveOr(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Right == nil {
		return left, nil
	}
	right, err := r.resolveImplies(e.Right)
	if err != nil {
		return nil, err
	}
	return value.Implies{Left: left, Right: right}, nil
}

func (r *resolver) resolveOr(e *orExpr) (Value, error) {
	left, err := r.resolveAnd(e.Left)
	if err != nil {
		return nil, err
	}
	for _, rest := range e.Rest {
		right, err := r.resolveAnd(rest)
		if err != nil {
			return nil, err
		}
		left = value.Or{Left: left, Right: right}
	}
	return left, nil
}

func (r *resolver) resolveAnd(e *andExpr) (Value, error) {
	left, err := r.resolveEq(e.Left)
	if err != nil {
		return nil, err
	}
	for _, rest := range e.Rest {
		right, err := r.resolveEq(rest)
		if err != nil {
			return nil, err
		}
		left = value.And{Left: left, Right: right}
	}
	return left, nil
}

func (r *resolver) resolveEq(e *eqExpr) (Value, error) {
	left, err := r.resolveUnary(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Tail == nil {
		return left, nil
	}
	right, err := r.resolveUnary(e.Tail.Right)
	if err != nil {
		return nil, err
	}
	if e.Tail.Op == "=" {
		return value.Equals{Left: left, Right: right}, nil
	}
	return value.NotEquals{Left: left, Right: right}, nil
}

func (r *resolver) resolveUnary(e *unaryExpr) (Value, error) {
	atom, err := r.resolveAtom(e.Atom)
	if err != nil {
		return nil, err
	}
	if e.Negated {
		return value.Not{Value: atom}, nil
	}
	return atom, nil
}

func (r *resolver) resolveAtom(e *atomExpr) (Value, error) {
	if e.Paren != nil {
		return r.resolveFormula(e.Paren)
	}
	return r.resolveRef(e.Ref)
}

func (r *resolver) resolveRef(e *refExpr) (Value, error) {
	if bv, ok := r.lookupBound(e.Name); ok {
		if e.Type != nil {
			bv.Type = value.NamedType{Name: *e.Type}
			r.constants[e.Name] = bv.Type
		} else if t, ok := r.constants[e.Name]; ok {
			bv.Type = t
		}
		if bv.Type == nil {
			return nil, fmt.Errorf("notation: bound variable %q used before its type is known", e.Name)
		}
		return bv, nil
	}

	typ, known := r.constants[e.Name]
	if e.Type != nil {
		typ = value.NamedType{Name: *e.Type}
		r.constants[e.Name] = typ
	} else if !known {
		return nil, fmt.Errorf("notation: constant %q needs a type annotation (%s:Type) on first use", e.Name, e.Name)
	}

	ref := value.ConstantRef{Module: r.module, Name: e.Name, Type: typ}
	if len(e.Args) == 0 {
		return value.GlobalConstant{Ref: ref}, nil
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := r.resolveFormula(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}
	return value.Application{Function: value.GlobalConstant{Ref: ref}, Args: args, Type: typ}, nil
}
