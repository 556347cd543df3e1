package normalize

import (
	"fmt"

	"sooth/internal/atom"
	"sooth/internal/clause"
	"sooth/internal/fact"
	"sooth/internal/proofstep"
	"sooth/internal/term"
	"sooth/internal/value"
)

// Normalizer converts LogicValues into clauses: lambda expansion, negation
// normal form, skolemization, CNF distribution, then monomorphization of
// every constant occurrence into a flat Term. Grounded on normalizer.rs;
// skolemize in particular preserves that file's choice to skolemize the
// value in place, against the stack of universal quantifiers currently in
// scope, rather than first converting to prenex form — a Skolem function
// introduced for an Exists nested inside an And only takes the enclosing
// ForAlls as arguments, not quantifiers from unrelated branches.
type Normalizer struct {
	nm          *NormalizationMap
	skolemTypes []value.Type // function types of the skolem functions created so far
}

func New() *Normalizer {
	return &Normalizer{nm: NewNormalizationMap()}
}

func (n *Normalizer) Map() *NormalizationMap { return n.nm }

// NormalizeFact turns f into the ProofSteps it contributes as Assumptions:
// almost always one, but a conjunction normalizes into one clause per
// conjunct. A Definition fact normalizes as the equation between its
// constant and its body; an Instance fact is rejected with an error.
func (n *Normalizer) NormalizeFact(f fact.Fact, truthiness proofstep.Truthiness) ([]proofstep.ProofStep, error) {
	v, err := factValue(f)
	if err != nil {
		return nil, err
	}
	clauses, err := n.Normalize(v)
	if err != nil {
		return nil, err
	}
	steps := make([]proofstep.ProofStep, len(clauses))
	for i, c := range clauses {
		steps[i] = proofstep.NewAssumption(c, truthiness, f.Source())
	}
	return steps, nil
}

func factValue(f fact.Fact) (value.LogicValue, error) {
	switch v := f.(type) {
	case fact.Proposition:
		return v.Value, nil
	case fact.Definition:
		return value.Equals{
			Left:  constantValue(v.Constant),
			Right: v.Body,
		}, nil
	case fact.Instance:
		// Typeclass membership carries no propositional content the prover
		// core reasons about directly; its methods are normalized as their
		// own Definition facts instead.
		return nil, fmt.Errorf("normalize: instance facts carry no directly normalizable proposition")
	default:
		return nil, fmt.Errorf("normalize: unsupported fact type %T", f)
	}
}

func constantValue(ref value.ConstantRef) value.LogicValue {
	return value.GlobalConstant{Ref: ref}
}

// NormalizeGoal splits a Prove goal the way the original's
// Proposition::negate_goal does: a top-level Implies splits into its
// antecedent (kept as an optional Hypothetical premise) and the negation of
// its consequent; anything else just negates as a whole. It returns the
// premise's Assumption steps (empty if there was no top-level Implies), the
// negated conclusion's Assumption steps (always Counterfactual — this is
// what the given-clause loop searches for a contradiction from), and the
// negated conclusion value itself for use as Proof.NegatedGoal.
func (n *Normalizer) NormalizeGoal(g fact.Goal, source fact.Source) (hypothesis, counter []proofstep.ProofStep, negatedGoal value.LogicValue, err error) {
	prove, ok := g.(fact.Prove)
	if !ok {
		return nil, nil, nil, fmt.Errorf("normalize: solve goals are not normalized through NormalizeGoal")
	}

	premise, negatedConclusion := splitProve(prove.Proposition)
	if premise != nil {
		premiseSource := source
		premiseSource.Type = fact.Premise
		premiseSource.Importable = false
		hclauses, herr := n.Normalize(premise)
		if herr != nil {
			return nil, nil, nil, herr
		}
		hypothesis = make([]proofstep.ProofStep, len(hclauses))
		for i, c := range hclauses {
			hypothesis[i] = proofstep.NewAssumption(c, proofstep.Hypothetical, premiseSource)
		}
	}

	cclauses, cerr := n.Normalize(negatedConclusion)
	if cerr != nil {
		return nil, nil, nil, cerr
	}
	counter = make([]proofstep.ProofStep, len(cclauses))
	for i, c := range cclauses {
		counter[i] = proofstep.NewAssumption(c, proofstep.Counterfactual, source)
	}
	return hypothesis, counter, negatedConclusion, nil
}

// splitProve implements negate_goal: Prove(a -> b) reduces to assuming a
// and refuting b; anything else just refutes its own negation.
func splitProve(v value.LogicValue) (premise, negatedConclusion value.LogicValue) {
	if impl, ok := v.(value.Implies); ok {
		return impl.Left, value.Not{Value: impl.Right}
	}
	return nil, value.Not{Value: v}
}

// TermFromValue converts a closed (no free BoundVariable) LogicValue
// directly into a Term, for Goal::Solve targets that are not themselves
// propositions.
func (n *Normalizer) TermFromValue(v value.LogicValue) (term.Term, error) {
	return n.toTerm(v, nil)
}

// Normalize runs the full pipeline on a single LogicValue, producing every
// clause of its conjunctive normal form.
func (n *Normalizer) Normalize(v value.LogicValue) ([]clause.Clause, error) {
	expanded, err := expandLambdas(v, nil)
	if err != nil {
		return nil, err
	}
	negIn := moveNegationInwards(expanded, false)
	skolemized := n.skolemize(nil, negIn)

	universal := []value.Type{}
	prop, err := n.removeForall(skolemized, nil, &universal)
	if err != nil {
		return nil, err
	}

	var literalLists [][]term.Literal
	intoCNF(prop, nil, &literalLists)

	var clauses []clause.Clause
	for _, lits := range literalLists {
		c, ok := clause.New(lits)
		if ok {
			clauses = append(clauses, c)
		}
	}
	return clauses, nil
}

// expandLambdas beta-reduces every fully-applied lambda. args is the
// substitution currently in scope for BoundVariable references (nil outside
// of a reduction).
func expandLambdas(v value.LogicValue, args []value.LogicValue) (value.LogicValue, error) {
	switch t := v.(type) {
	case value.BoundVariable:
		if args != nil && t.Index < len(args) {
			return args[t.Index], nil
		}
		return t, nil
	case value.Application:
		fn, err := expandLambdas(t.Function, args)
		if err != nil {
			return nil, err
		}
		newArgs := make([]value.LogicValue, len(t.Args))
		for i, a := range t.Args {
			ea, err := expandLambdas(a, args)
			if err != nil {
				return nil, err
			}
			newArgs[i] = ea
		}
		if lam, ok := fn.(value.Lambda); ok {
			if len(newArgs) != len(lam.ArgTypes) {
				return nil, fmt.Errorf("normalize: lambda arity mismatch")
			}
			return expandLambdas(lam.Body, newArgs)
		}
		return value.Application{Function: fn, Args: newArgs, Type: t.Type}, nil
	case value.Lambda:
		body, err := expandLambdas(t.Body, shiftSubstitution(args, len(t.ArgTypes)))
		if err != nil {
			return nil, err
		}
		return value.Lambda{ArgTypes: t.ArgTypes, Body: body}, nil
	case value.ForAll:
		body, err := expandLambdas(t.Body, shiftSubstitution(args, len(t.QuantTypes)))
		if err != nil {
			return nil, err
		}
		return value.ForAll{QuantTypes: t.QuantTypes, Body: body}, nil
	case value.Exists:
		body, err := expandLambdas(t.Body, shiftSubstitution(args, len(t.QuantTypes)))
		if err != nil {
			return nil, err
		}
		return value.Exists{QuantTypes: t.QuantTypes, Body: body}, nil
	case value.Not:
		val, err := expandLambdas(t.Value, args)
		if err != nil {
			return nil, err
		}
		return value.Not{Value: val}, nil
	case value.And:
		l, err := expandLambdas(t.Left, args)
		if err != nil {
			return nil, err
		}
		r, err := expandLambdas(t.Right, args)
		if err != nil {
			return nil, err
		}
		return value.And{Left: l, Right: r}, nil
	case value.Or:
		l, err := expandLambdas(t.Left, args)
		if err != nil {
			return nil, err
		}
		r, err := expandLambdas(t.Right, args)
		if err != nil {
			return nil, err
		}
		return value.Or{Left: l, Right: r}, nil
	case value.Implies:
		l, err := expandLambdas(t.Left, args)
		if err != nil {
			return nil, err
		}
		r, err := expandLambdas(t.Right, args)
		if err != nil {
			return nil, err
		}
		return value.Implies{Left: l, Right: r}, nil
	case value.Equals:
		l, err := expandLambdas(t.Left, args)
		if err != nil {
			return nil, err
		}
		r, err := expandLambdas(t.Right, args)
		if err != nil {
			return nil, err
		}
		return value.Equals{Left: l, Right: r}, nil
	case value.NotEquals:
		l, err := expandLambdas(t.Left, args)
		if err != nil {
			return nil, err
		}
		r, err := expandLambdas(t.Right, args)
		if err != nil {
			return nil, err
		}
		return value.NotEquals{Left: l, Right: r}, nil
	default:
		return v, nil
	}
}

// shiftSubstitution extends an in-flight substitution past n newly-bound
// variables, which now shadow it: references to them resolve to themselves,
// references past them still resolve through the outer substitution (offset
// by n, since depth is measured from the reference site).
func shiftSubstitution(args []value.LogicValue, n int) []value.LogicValue {
	if args == nil {
		return nil
	}
	out := make([]value.LogicValue, 0, len(args)+n)
	for i := 0; i < n; i++ {
		out = append(out, value.BoundVariable{Index: i})
	}
	for _, a := range args {
		out = append(out, shiftFree(a, n))
	}
	return out
}

// shiftFree increases every free BoundVariable reference within v by n,
// since v is about to be reinserted n binders deeper than where it was
// built.
func shiftFree(v value.LogicValue, n int) value.LogicValue {
	if n == 0 {
		return v
	}
	var walk func(value.LogicValue, int) value.LogicValue
	walk = func(v value.LogicValue, depth int) value.LogicValue {
		switch t := v.(type) {
		case value.BoundVariable:
			if t.Index >= depth {
				return value.BoundVariable{Index: t.Index + n, Type: t.Type}
			}
			return t
		case value.Application:
			args := make([]value.LogicValue, len(t.Args))
			for i, a := range t.Args {
				args[i] = walk(a, depth)
			}
			return value.Application{Function: walk(t.Function, depth), Args: args, Type: t.Type}
		case value.Lambda:
			return value.Lambda{ArgTypes: t.ArgTypes, Body: walk(t.Body, depth+len(t.ArgTypes))}
		case value.ForAll:
			return value.ForAll{QuantTypes: t.QuantTypes, Body: walk(t.Body, depth+len(t.QuantTypes))}
		case value.Exists:
			return value.Exists{QuantTypes: t.QuantTypes, Body: walk(t.Body, depth+len(t.QuantTypes))}
		case value.Not:
			return value.Not{Value: walk(t.Value, depth)}
		case value.And:
			return value.And{Left: walk(t.Left, depth), Right: walk(t.Right, depth)}
		case value.Or:
			return value.Or{Left: walk(t.Left, depth), Right: walk(t.Right, depth)}
		case value.Implies:
			return value.Implies{Left: walk(t.Left, depth), Right: walk(t.Right, depth)}
		case value.Equals:
			return value.Equals{Left: walk(t.Left, depth), Right: walk(t.Right, depth)}
		case value.NotEquals:
			return value.NotEquals{Left: walk(t.Left, depth), Right: walk(t.Right, depth)}
		default:
			return v
		}
	}
	return walk(v, 0)
}

// moveNegationInwards rewrites v into negation normal form: Implies is
// expanded, De Morgan's laws push Not through And/Or, quantifiers swap kind
// under negation, and double negation cancels. negate is whether v is
// currently under an odd number of enclosing negations.
func moveNegationInwards(v value.LogicValue, negate bool) value.LogicValue {
	switch t := v.(type) {
	case value.Not:
		return moveNegationInwards(t.Value, !negate)
	case value.And:
		l, r := moveNegationInwards(t.Left, negate), moveNegationInwards(t.Right, negate)
		if negate {
			return value.Or{Left: l, Right: r}
		}
		return value.And{Left: l, Right: r}
	case value.Or:
		l, r := moveNegationInwards(t.Left, negate), moveNegationInwards(t.Right, negate)
		if negate {
			return value.And{Left: l, Right: r}
		}
		return value.Or{Left: l, Right: r}
	case value.Implies:
		// a -> b  ==  !a | b
		l, r := moveNegationInwards(t.Left, !negate), moveNegationInwards(t.Right, negate)
		if negate {
			return value.And{Left: l, Right: r}
		}
		return value.Or{Left: l, Right: r}
	case value.ForAll:
		if negate {
			return value.Exists{QuantTypes: t.QuantTypes, Body: moveNegationInwards(t.Body, true)}
		}
		return value.ForAll{QuantTypes: t.QuantTypes, Body: moveNegationInwards(t.Body, false)}
	case value.Exists:
		if negate {
			return value.ForAll{QuantTypes: t.QuantTypes, Body: moveNegationInwards(t.Body, true)}
		}
		return value.Exists{QuantTypes: t.QuantTypes, Body: moveNegationInwards(t.Body, false)}
	case value.Equals:
		if negate {
			return value.NotEquals{Left: t.Left, Right: t.Right}
		}
		return t
	case value.NotEquals:
		if negate {
			return value.Equals{Left: t.Left, Right: t.Right}
		}
		return t
	default:
		if negate {
			return value.Not{Value: v}
		}
		return v
	}
}

// skolemize replaces each Exists with a fresh Skolem function applied to the
// universally-quantified stack currently in scope.
func (n *Normalizer) skolemize(stack []value.Type, v value.LogicValue) value.LogicValue {
	switch t := v.(type) {
	case value.ForAll:
		// stack[len(stack)-1-k] is the type of De Bruijn index k, and
		// QuantTypes[0] is index 0, so this quantifier's types go on reversed.
		newStack := append([]value.Type{}, stack...)
		for i := len(t.QuantTypes) - 1; i >= 0; i-- {
			newStack = append(newStack, t.QuantTypes[i])
		}
		return value.ForAll{QuantTypes: t.QuantTypes, Body: n.skolemize(newStack, t.Body)}

	case value.Exists:
		args := make([]value.LogicValue, len(stack))
		for i, ty := range stack {
			args[i] = value.BoundVariable{Index: len(stack) - 1 - i, Type: ty}
		}

		replacements := make([]value.LogicValue, len(t.QuantTypes))
		for i, quant := range t.QuantTypes {
			skolemType := value.FunctionType{Args: append([]value.Type{}, stack...), Return: quant}
			skolemIndex := len(n.skolemTypes)
			n.skolemTypes = append(n.skolemTypes, skolemType)
			fn := skolemConstant(skolemIndex, skolemType)
			replacements[i] = value.Application{Function: fn, Args: args, Type: quant}
		}

		bound := bindValues(t.Body, len(t.QuantTypes), replacements)
		return n.skolemize(stack, bound)

	case value.And:
		return value.And{Left: n.skolemize(stack, t.Left), Right: n.skolemize(stack, t.Right)}
	case value.Or:
		return value.Or{Left: n.skolemize(stack, t.Left), Right: n.skolemize(stack, t.Right)}

	default:
		return v
	}
}

// skolemConstant wraps a fresh skolem function as a GlobalConstant so the
// rest of the pipeline (toTerm, monomorphization) can treat it uniformly;
// the normalizer reserves the "$skolem" module for these synthetic names.
func skolemConstant(index int, fnType value.FunctionType) value.LogicValue {
	return value.GlobalConstant{Ref: value.ConstantRef{
		Module: "$skolem",
		Name:   fmt.Sprintf("s%d", index),
		Type:   fnType,
	}}
}

// bindValues substitutes replacements for the Exists's own bound variables
// (which sit at depth 0..len(replacements)-1 within body, since body is the
// Exists's immediate child), leaving deeper references alone.
func bindValues(body value.LogicValue, numBound int, replacements []value.LogicValue) value.LogicValue {
	var walk func(value.LogicValue, int) value.LogicValue
	walk = func(v value.LogicValue, depth int) value.LogicValue {
		switch t := v.(type) {
		case value.BoundVariable:
			if t.Index >= depth && t.Index < depth+numBound {
				return shiftFree(replacements[t.Index-depth], depth)
			}
			if t.Index >= depth+numBound {
				return value.BoundVariable{Index: t.Index - numBound, Type: t.Type}
			}
			return t
		case value.Application:
			args := make([]value.LogicValue, len(t.Args))
			for i, a := range t.Args {
				args[i] = walk(a, depth)
			}
			return value.Application{Function: walk(t.Function, depth), Args: args, Type: t.Type}
		case value.Lambda:
			return value.Lambda{ArgTypes: t.ArgTypes, Body: walk(t.Body, depth+len(t.ArgTypes))}
		case value.ForAll:
			return value.ForAll{QuantTypes: t.QuantTypes, Body: walk(t.Body, depth+len(t.QuantTypes))}
		case value.Exists:
			return value.Exists{QuantTypes: t.QuantTypes, Body: walk(t.Body, depth+len(t.QuantTypes))}
		case value.Not:
			return value.Not{Value: walk(t.Value, depth)}
		case value.And:
			return value.And{Left: walk(t.Left, depth), Right: walk(t.Right, depth)}
		case value.Or:
			return value.Or{Left: walk(t.Left, depth), Right: walk(t.Right, depth)}
		case value.Implies:
			return value.Implies{Left: walk(t.Left, depth), Right: walk(t.Right, depth)}
		case value.Equals:
			return value.Equals{Left: walk(t.Left, depth), Right: walk(t.Right, depth)}
		case value.NotEquals:
			return value.NotEquals{Left: walk(t.Left, depth), Right: walk(t.Right, depth)}
		default:
			return v
		}
	}
	return walk(body, 0)
}

// prop is the purely propositional skeleton left once removeForall has
// stripped every quantifier: conjunctions and disjunctions of literals,
// ready for intoCNF to distribute.
type prop interface{ isProp() }

type propAnd struct{ Left, Right prop }
type propOr struct{ Left, Right prop }
type propLit struct{ lit term.Literal }

func (propAnd) isProp() {}
func (propOr) isProp()  {}
func (propLit) isProp() {}

// removeForall strips every (now purely universal) quantifier, accumulating
// their types into universal and threading a stack mapping De Bruijn depth
// to the resulting flat variable id, then builds the propositional skeleton.
func (n *Normalizer) removeForall(v value.LogicValue, stack []int, universal *[]value.Type) (prop, error) {
	switch t := v.(type) {
	case value.ForAll:
		ids := make([]int, len(t.QuantTypes))
		for i, qt := range t.QuantTypes {
			ids[i] = len(*universal)
			*universal = append(*universal, qt)
		}
		newStack := make([]int, 0, len(ids)+len(stack))
		newStack = append(newStack, ids...)
		newStack = append(newStack, stack...)
		return n.removeForall(t.Body, newStack, universal)

	case value.And:
		l, err := n.removeForall(t.Left, stack, universal)
		if err != nil {
			return nil, err
		}
		r, err := n.removeForall(t.Right, stack, universal)
		if err != nil {
			return nil, err
		}
		return propAnd{Left: l, Right: r}, nil

	case value.Or:
		l, err := n.removeForall(t.Left, stack, universal)
		if err != nil {
			return nil, err
		}
		r, err := n.removeForall(t.Right, stack, universal)
		if err != nil {
			return nil, err
		}
		return propOr{Left: l, Right: r}, nil

	case value.Not:
		lit, err := n.toLiteral(t.Value, stack)
		if err != nil {
			return nil, err
		}
		return propLit{lit: lit.Negate()}, nil

	case value.Equals:
		l, err := n.toTerm(t.Left, stack)
		if err != nil {
			return nil, err
		}
		r, err := n.toTerm(t.Right, stack)
		if err != nil {
			return nil, err
		}
		return propLit{lit: term.NewLiteral(true, l, r)}, nil

	case value.NotEquals:
		l, err := n.toTerm(t.Left, stack)
		if err != nil {
			return nil, err
		}
		r, err := n.toTerm(t.Right, stack)
		if err != nil {
			return nil, err
		}
		return propLit{lit: term.NewLiteral(false, l, r)}, nil

	case value.Exists:
		return nil, fmt.Errorf("normalize: existential quantifier survived skolemization")

	default:
		lit, err := n.toLiteral(v, stack)
		if err != nil {
			return nil, err
		}
		return propLit{lit: lit}, nil
	}
}

func (n *Normalizer) toLiteral(v value.LogicValue, stack []int) (term.Literal, error) {
	if eq, ok := v.(value.Equals); ok {
		l, err := n.toTerm(eq.Left, stack)
		if err != nil {
			return term.Literal{}, err
		}
		r, err := n.toTerm(eq.Right, stack)
		if err != nil {
			return term.Literal{}, err
		}
		return term.NewLiteral(true, l, r), nil
	}
	if neq, ok := v.(value.NotEquals); ok {
		l, err := n.toTerm(neq.Left, stack)
		if err != nil {
			return term.Literal{}, err
		}
		r, err := n.toTerm(neq.Right, stack)
		if err != nil {
			return term.Literal{}, err
		}
		return term.NewLiteral(false, l, r), nil
	}
	boolValue, err := n.toTerm(v, stack)
	if err != nil {
		return term.Literal{}, err
	}
	return term.NewAtomLiteral(true, boolValue), nil
}

// toTerm converts a (now quantifier-free, monomorphic occurrence of a)
// LogicValue into a flat Term, resolving bound variables against stack and
// monomorphizing any polymorphic constant occurrence via the
// NormalizationMap.
func (n *Normalizer) toTerm(v value.LogicValue, stack []int) (term.Term, error) {
	switch t := v.(type) {
	case value.BoundVariable:
		if t.Index >= len(stack) {
			return term.Term{}, fmt.Errorf("normalize: unbound variable reference at depth %d", t.Index)
		}
		typeID := n.nm.AddType(t.Type)
		return term.Atomic(typeID, typeID, atom.NewVariable(atom.AtomId(stack[t.Index]))), nil

	case value.GlobalConstant:
		if t.Ref.Module == "$skolem" {
			typeID := n.nm.AddType(t.Ref.Type)
			return term.Atomic(typeID, typeID, n.nm.AddSkolem(t.Ref)), nil
		}
		if len(t.TypeArgs) == 0 {
			a := n.nm.AddConstant(t.Ref, false)
			typeID := n.nm.AddType(t.Ref.Type)
			return term.Atomic(typeID, typeID, a), nil
		}
		instanceType := substituteTypeParams(t.Ref.Type, t.Ref.TypeParams, t.TypeArgs)
		return n.nm.TermFromMonomorph(t.Ref, t.TypeArgs, instanceType), nil

	case value.LocalConstant:
		a := n.nm.AddConstant(t.Ref, true)
		typeID := n.nm.AddType(t.Type)
		return term.Atomic(typeID, typeID, a), nil

	case value.Application:
		head, args, err := flattenApplication(t)
		if err != nil {
			return term.Term{}, err
		}
		headTerm, err := n.toTerm(head, stack)
		if err != nil {
			return term.Term{}, err
		}
		termArgs := make([]term.Term, len(args))
		for i, a := range args {
			ta, err := n.toTerm(a, stack)
			if err != nil {
				return term.Term{}, err
			}
			termArgs[i] = ta
		}
		typeID := n.nm.AddType(t.Type)
		return term.Apply(headTerm.HeadType, typeID, headTerm.Head, termArgs...), nil

	case value.Lambda:
		return term.Term{}, fmt.Errorf("normalize: comparing unapplied function values is not supported")

	default:
		return term.Term{}, fmt.Errorf("normalize: %T cannot appear in term position", v)
	}
}

// flattenApplication collapses Application(Application(f, a), b) into
// (f, [a, b]), since Term only supports one flat argument list per head.
func flattenApplication(app value.Application) (value.LogicValue, []value.LogicValue, error) {
	if inner, ok := app.Function.(value.Application); ok {
		head, innerArgs, err := flattenApplication(inner)
		if err != nil {
			return nil, nil, err
		}
		return head, append(append([]value.LogicValue{}, innerArgs...), app.Args...), nil
	}
	return app.Function, app.Args, nil
}

// substituteTypeParams replaces TypeParam{Name} occurrences in t by the
// corresponding entry of args, matched positionally against params.
func substituteTypeParams(t value.Type, params []string, args []value.Type) value.Type {
	switch tt := t.(type) {
	case value.TypeParam:
		for i, p := range params {
			if p == tt.Name && i < len(args) {
				return args[i]
			}
		}
		return t
	case value.NamedType:
		newArgs := make([]value.Type, len(tt.Args))
		for i, a := range tt.Args {
			newArgs[i] = substituteTypeParams(a, params, args)
		}
		return value.NamedType{Name: tt.Name, Args: newArgs}
	case value.FunctionType:
		newArgs := make([]value.Type, len(tt.Args))
		for i, a := range tt.Args {
			newArgs[i] = substituteTypeParams(a, params, args)
		}
		return value.FunctionType{Args: newArgs, Return: substituteTypeParams(tt.Return, params, args)}
	default:
		return t
	}
}

// intoCNF distributes prop into conjunctive normal form, appending each
// resulting clause's literal list to out. current accumulates the literals
// of the disjunction being built as Or nodes are walked.
func intoCNF(p prop, current []term.Literal, out *[][]term.Literal) {
	switch t := p.(type) {
	case propAnd:
		intoCNF(t.Left, current, out)
		intoCNF(t.Right, current, out)
	case propOr:
		distributeOr(t.Left, t.Right, current, out)
	case propLit:
		*out = append(*out, append(append([]term.Literal{}, current...), t.lit))
	}
}

// distributeOr applies the distributive law: (A & B) | C == (A | C) & (B |
// C), recursing until the left side of the Or is a literal, which then joins
// current while the right side is distributed in turn.
func distributeOr(l, r prop, current []term.Literal, out *[][]term.Literal) {
	if land, ok := l.(propAnd); ok {
		distributeOr(land.Left, r, current, out)
		distributeOr(land.Right, r, current, out)
		return
	}
	if rand, ok := r.(propAnd); ok {
		distributeOr(l, rand.Left, current, out)
		distributeOr(l, rand.Right, current, out)
		return
	}
	if lor, ok := l.(propOr); ok {
		distributeOr(lor.Left, propOr{Left: lor.Right, Right: r}, current, out)
		return
	}
	ll := l.(propLit)
	intoCNF(r, append(append([]term.Literal{}, current...), ll.lit), out)
}
