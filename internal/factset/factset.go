// Package factset is the YAML document shape cmd/soothc and internal/lsp
// read as input: a named module's facts plus (optionally) the goal to
// search for, with each proposition/definition body written in
// internal/notation rather than a hand-rolled value.LogicValue YAML
// encoding. Parsing source text into facts is a non-goal of the core
// (spec.md §1), so this is the "structured FactSet" external collaborators
// are expected to produce instead, grounded on the teacher's pattern of
// keeping file I/O and YAML shape in a thin package next to the thing that
// consumes it (cmd/kanso-cli reading a .ka file directly being the nearest
// analogue here).
package factset

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"sooth/internal/fact"
	"sooth/internal/notation"
	"sooth/internal/proofstep"
	"sooth/internal/prover"
	"sooth/internal/value"
)

// Range mirrors fact.Range with yaml tags; fact.Range itself stays free of
// serialization concerns since the prover core never reads one back.
type Range struct {
	StartLine   int `yaml:"start_line"`
	StartColumn int `yaml:"start_column"`
	EndLine     int `yaml:"end_line"`
	EndColumn   int `yaml:"end_column"`
}

// ToFact converts r into the fact.Range the prover core's Source carries.
func (r Range) ToFact() fact.Range {
	return fact.Range{StartLine: r.StartLine, StartColumn: r.StartColumn, EndLine: r.EndLine, EndColumn: r.EndColumn}
}

// Kind discriminates which of fact.Proposition/fact.Instance/fact.Definition
// an Entry describes.
type Kind string

const (
	KindProposition Kind = "proposition"
	KindInstance    Kind = "instance"
	KindDefinition  Kind = "definition"
)

// SourceKind names an Entry's fact.SourceType by its lowercase word, the
// YAML-facing spelling of the Go constant.
type SourceKind string

const (
	SourceAxiom              SourceKind = "axiom"
	SourceTheorem            SourceKind = "theorem"
	SourceAnonymous          SourceKind = "anonymous"
	SourceTypeDefinition     SourceKind = "type_definition"
	SourceConstantDefinition SourceKind = "constant_definition"
	SourcePremise            SourceKind = "premise"
)

func (s SourceKind) toFact() (fact.SourceType, error) {
	switch s {
	case "", SourceAxiom:
		return fact.Axiom, nil
	case SourceTheorem:
		return fact.Theorem, nil
	case SourceAnonymous:
		return fact.Anonymous, nil
	case SourceTypeDefinition:
		return fact.TypeDefinition, nil
	case SourceConstantDefinition:
		return fact.ConstantDefinition, nil
	case SourcePremise:
		return fact.Premise, nil
	default:
		return 0, fmt.Errorf("factset: unknown source kind %q", s)
	}
}

// Entry is one fact.Fact, written in notation text rather than a structured
// value.LogicValue tree.
type Entry struct {
	Name       string     `yaml:"name"`
	Kind       Kind       `yaml:"kind"`
	SourceKind SourceKind `yaml:"source,omitempty"`
	Importable bool       `yaml:"importable"`
	Range      *Range     `yaml:"range,omitempty"`

	// Value is notation text for Kind == proposition, and the definition
	// body's notation text for Kind == definition.
	Value string `yaml:"value,omitempty"`

	// ConstantType is the definition's constant's named type, required for
	// Kind == definition.
	ConstantType string `yaml:"constant_type,omitempty"`

	// Class and Typeclass are required for Kind == instance.
	Class     string `yaml:"class,omitempty"`
	Typeclass string `yaml:"typeclass,omitempty"`
}

func (e Entry) source(module string) (fact.Source, error) {
	st, err := e.SourceKind.toFact()
	if err != nil {
		return fact.Source{}, err
	}
	rng := fact.Range{}
	if e.Range != nil {
		rng = e.Range.ToFact()
	}
	return fact.Source{
		ModuleID:   module,
		Range:      rng,
		Type:       st,
		Name:       e.Name,
		Importable: e.Importable,
	}, nil
}

// ToFact resolves the notation text in e and returns the fact.Fact it
// describes.
func (e Entry) ToFact(module string) (fact.Fact, error) {
	src, err := e.source(module)
	if err != nil {
		return nil, err
	}

	switch e.Kind {
	case KindProposition, "":
		v, err := notation.ParseString(module, e.Value)
		if err != nil {
			return nil, fmt.Errorf("factset: fact %q: %w", e.Name, err)
		}
		return fact.Proposition{Value: v, Src: src}, nil

	case KindInstance:
		if e.Class == "" || e.Typeclass == "" {
			return nil, fmt.Errorf("factset: instance %q needs both class and typeclass", e.Name)
		}
		return fact.Instance{
			Class:     value.NamedType{Name: e.Class},
			Typeclass: e.Typeclass,
			Src:       src,
		}, nil

	case KindDefinition:
		if e.ConstantType == "" {
			return nil, fmt.Errorf("factset: definition %q needs a constant_type", e.Name)
		}
		body, err := notation.ParseString(module, e.Value)
		if err != nil {
			return nil, fmt.Errorf("factset: definition %q: %w", e.Name, err)
		}
		return fact.Definition{
			Constant: value.ConstantRef{Module: module, Name: e.Name, Type: value.NamedType{Name: e.ConstantType}},
			Body:     body,
			Src:      src,
		}, nil

	default:
		return nil, fmt.Errorf("factset: entry %q has unknown kind %q", e.Name, e.Kind)
	}
}

// GoalKind discriminates fact.Prove from fact.Solve.
type GoalKind string

const (
	GoalProve GoalKind = "prove"
	GoalSolve GoalKind = "solve"
)

// GoalEntry is the theorem a FactSet asks the prover to settle.
type GoalEntry struct {
	Kind              GoalKind `yaml:"kind"`
	Value             string   `yaml:"value"`
	InconsistencyOkay bool     `yaml:"inconsistency_okay,omitempty"`
	Range             *Range   `yaml:"range,omitempty"`
	Name              string   `yaml:"name,omitempty"`
}

func (g GoalEntry) source(module string) fact.Source {
	rng := fact.Range{}
	if g.Range != nil {
		rng = g.Range.ToFact()
	}
	return fact.Source{ModuleID: module, Range: rng, Type: fact.NegatedGoal, Name: g.Name}
}

// ToGoal resolves the notation text in g and returns the fact.Goal (and the
// Source a caller should pass to Prover.SetGoal) it describes.
func (g GoalEntry) ToGoal(module string) (fact.Goal, fact.Source, error) {
	src := g.source(module)
	switch g.Kind {
	case GoalProve, "":
		v, err := notation.ParseString(module, g.Value)
		if err != nil {
			return nil, src, fmt.Errorf("factset: goal: %w", err)
		}
		return fact.Prove{Proposition: v, InconsistencyOkay: g.InconsistencyOkay}, src, nil
	case GoalSolve:
		v, err := notation.ParseString(module, g.Value)
		if err != nil {
			return nil, src, fmt.Errorf("factset: goal: %w", err)
		}
		return fact.Solve{Term: v}, src, nil
	default:
		return nil, src, fmt.Errorf("factset: goal has unknown kind %q", g.Kind)
	}
}

// FactSet is one module's worth of facts plus, for a leaf module actually
// being verified, the goal to search for.
type FactSet struct {
	Module string     `yaml:"module"`
	Facts  []Entry    `yaml:"facts"`
	Goal   *GoalEntry `yaml:"goal,omitempty"`
}

// Load reads and parses a FactSet YAML document from path.
func Load(path string) (*FactSet, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("factset: reading %s: %w", path, err)
	}
	var fs FactSet
	if err := yaml.Unmarshal(content, &fs); err != nil {
		return nil, fmt.Errorf("factset: parsing %s: %w", path, err)
	}
	return &fs, nil
}

// Facts resolves every Entry in fs into a fact.Fact.
func (fs *FactSet) Facts() ([]fact.Fact, error) {
	facts := make([]fact.Fact, 0, len(fs.Facts))
	for _, e := range fs.Facts {
		f, err := e.ToFact(fs.Module)
		if err != nil {
			return nil, err
		}
		facts = append(facts, f)
	}
	return facts, nil
}

// BuildProver constructs a fresh Prover, feeds it every Proposition and
// Definition fact in fs as Factual (Instance facts carry no directly
// normalizable proposition and are skipped, matching NormalizeFact's
// contract), and sets the goal if one is present. The caller still needs to
// check p's deferred error (via a search call) for a bad notation parse.
func (fs *FactSet) BuildProver() (*prover.Prover, error) {
	p := prover.New()
	for _, e := range fs.Facts {
		if e.Kind == KindInstance {
			continue
		}
		f, err := e.ToFact(fs.Module)
		if err != nil {
			return nil, err
		}
		p.AddFact(f, proofstep.Factual)
	}
	if fs.Goal != nil {
		g, src, err := fs.Goal.ToGoal(fs.Module)
		if err != nil {
			return nil, err
		}
		p.SetGoal(g, src)
	}
	return p, nil
}
