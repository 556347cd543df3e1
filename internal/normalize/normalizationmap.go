// Package normalize turns the rich, higher-order, possibly-polymorphic
// LogicValue trees the environment elaborates (see the value package) into
// the prover core's flat, monomorphic, de-Bruijn-free Clauses. Grounded on
// normalizer.rs (skolemization and the CNF pipeline) and
// normalization_map.rs (the Atom <-> ConstantName / TypeId <-> AcornType
// bookkeeping, renamed here to reference value.ConstantRef and value.Type).
package normalize

import (
	"sooth/internal/atom"
	"sooth/internal/term"
	"sooth/internal/value"
)

type constantKey struct {
	module string
	name   string
}

type monomorphKey string

// NormalizationMap is the bidirectional mapping between the environment's
// rich constant/type vocabulary and the prover's flat AtomId/TypeId space.
type NormalizationMap struct {
	globalConstants []value.ConstantRef
	localConstants  []value.ConstantRef
	skolemConstants []value.ConstantRef
	nameToAtom      map[constantKey]atom.Atom

	typeToID map[string]atom.TypeId
	idToType []value.Type

	monomorphToAtom map[monomorphKey]monomorphEntry
	idToMonomorph   []monomorphInstance
}

type monomorphEntry struct {
	atom   atom.Atom
	typeID atom.TypeId
}

// monomorphInstance records which polymorphic constant, instantiated at
// which type arguments, a Monomorph atom stands for.
type monomorphInstance struct {
	Ref      value.ConstantRef
	TypeArgs []value.Type
}

func NewNormalizationMap() *NormalizationMap {
	m := &NormalizationMap{
		nameToAtom:      map[constantKey]atom.Atom{},
		typeToID:        map[string]atom.TypeId{},
		monomorphToAtom: map[monomorphKey]monomorphEntry{},
	}
	m.AddType(value.NamedType{Name: "$empty"})
	m.AddType(value.NamedType{Name: "bool"})
	return m
}

// AddConstant assigns an id to (the module, name) pair, if it doesn't
// already have one, as a local or global atom depending on local.
func (m *NormalizationMap) AddConstant(ref value.ConstantRef, local bool) atom.Atom {
	k := constantKey{module: ref.Module, name: ref.Name}
	if a, ok := m.nameToAtom[k]; ok {
		return a
	}
	var a atom.Atom
	if local {
		id := atom.AtomId(len(m.localConstants))
		m.localConstants = append(m.localConstants, ref)
		a = atom.NewLocalConstant(id)
	} else {
		id := atom.AtomId(len(m.globalConstants))
		m.globalConstants = append(m.globalConstants, ref)
		a = atom.NewGlobalConstant(id)
	}
	m.nameToAtom[k] = a
	return a
}

// AddSkolem returns the Skolem atom for ref's "$skolem" module/name pair,
// assigning a fresh one the first time the pair is seen. toTerm calls this
// once per occurrence, so every occurrence of one skolem shares its atom.
func (m *NormalizationMap) AddSkolem(ref value.ConstantRef) atom.Atom {
	k := constantKey{module: ref.Module, name: ref.Name}
	if a, ok := m.nameToAtom[k]; ok {
		return a
	}
	id := atom.AtomId(len(m.skolemConstants))
	m.skolemConstants = append(m.skolemConstants, ref)
	a := atom.NewSkolem(id)
	m.nameToAtom[k] = a
	return a
}

// NameForGlobalID returns the ConstantRef a global atom id was assigned for.
func (m *NormalizationMap) NameForGlobalID(id atom.AtomId) value.ConstantRef {
	return m.globalConstants[id]
}

// NameForLocalID returns the ConstantRef a local atom id was assigned for.
func (m *NormalizationMap) NameForLocalID(id atom.AtomId) value.ConstantRef {
	return m.localConstants[id]
}

// AddType interns t, returning its TypeId. Equal types (by String, since
// value.Type has no other identity) always return the same id.
func (m *NormalizationMap) AddType(t value.Type) atom.TypeId {
	k := t.String()
	if id, ok := m.typeToID[k]; ok {
		return id
	}
	id := atom.TypeId(len(m.idToType))
	m.idToType = append(m.idToType, t)
	m.typeToID[k] = id
	return id
}

func (m *NormalizationMap) GetType(id atom.TypeId) value.Type {
	return m.idToType[id]
}

// TermFromMonomorph returns the (possibly newly-minted) ground Term standing
// for ref instantiated at typeArgs, with instanceType its concrete type.
func (m *NormalizationMap) TermFromMonomorph(ref value.ConstantRef, typeArgs []value.Type, instanceType value.Type) term.Term {
	k := monomorphKeyFor(ref, typeArgs)
	entry, ok := m.monomorphToAtom[k]
	if !ok {
		typeID := m.AddType(instanceType)
		monomorphID := atom.AtomId(len(m.idToMonomorph))
		entry = monomorphEntry{atom: atom.NewMonomorph(monomorphID), typeID: typeID}
		m.idToMonomorph = append(m.idToMonomorph, monomorphInstance{Ref: ref, TypeArgs: typeArgs})
		m.monomorphToAtom[k] = entry
	}
	return term.Atomic(entry.typeID, entry.typeID, entry.atom)
}

// AliasMonomorph makes a monomorphized constant an alias for an
// already-named constant, used when an instance of a polymorphic constant
// happens to coincide with a constant that already has its own name.
func (m *NormalizationMap) AliasMonomorph(ref value.ConstantRef, typeArgs []value.Type, name value.ConstantRef, local bool) {
	typeID := m.AddType(name.Type)
	a := m.AddConstant(name, local)
	m.monomorphToAtom[monomorphKeyFor(ref, typeArgs)] = monomorphEntry{atom: a, typeID: typeID}
}

func (m *NormalizationMap) GetMonomorph(id atom.AtomId) monomorphInstance {
	return m.idToMonomorph[id]
}

func monomorphKeyFor(ref value.ConstantRef, typeArgs []value.Type) monomorphKey {
	s := ref.Module + "." + ref.Name
	for _, t := range typeArgs {
		s += "#" + t.String()
	}
	return monomorphKey(s)
}
