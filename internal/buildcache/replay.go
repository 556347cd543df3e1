package buildcache

import (
	"sooth/internal/fact"
	"sooth/internal/proofstep"
	"sooth/internal/prover"
)

// SeedFilteredProver builds a Prover containing only the facts whose
// (module, name) pair appears in premises, instead of every available
// fact — the fast path project.rs's make_filtered_prover takes when a
// theorem's cached premise set still looks valid: replay only what was
// used last time, and fall back to a full prover only if that fails.
func SeedFilteredProver(available []fact.Fact, premises []Premise) *prover.Prover {
	wanted := map[Premise]bool{}
	for _, p := range premises {
		wanted[p] = true
	}

	p := prover.New()
	for _, f := range available {
		src := f.Source()
		if !src.Importable || src.Name == "" {
			continue
		}
		if !wanted[Premise{ModuleName: src.ModuleID, Name: src.Name}] {
			continue
		}
		p.AddFact(f, proofstep.Factual)
	}
	return p
}
