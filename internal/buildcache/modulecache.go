// Package buildcache implements the cross-goal cache the Prover's callers
// use to skip re-verifying a module whose content and dependencies haven't
// changed: ModuleHash fingerprints a module, ModuleCache records which
// premises each of its theorems actually used the last time it verified,
// and BuildCache persists ModuleCache values to disk so the next build can
// seed a filtered Prover instead of paying full verification cost again.
// Grounded on _examples/original_source/src/build_cache.rs; module_cache.rs
// itself was never retrieved, so ModuleCache's shape is inferred from its
// call sites in project.rs (ModuleCache::new(hash), per-theorem premise
// sets keyed by module name, and the assert_premises_eq test helper).
package buildcache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"sooth/internal/fact"
)

// ModuleHash fingerprints a module's own source plus the hashes of every
// module it depends on, so that touching a dependency invalidates the
// cache even though the dependent module's own text is unchanged.
type ModuleHash struct {
	Hex string `yaml:"hash"`
}

// NewModuleHash hashes content together with the sorted hex hashes of every
// dependency, matching the original's ModuleHash::new composing a module's
// own digest with its dependencies' digests.
func NewModuleHash(content string, dependencies []ModuleHash) ModuleHash {
	deps := make([]string, len(dependencies))
	for i, d := range dependencies {
		deps[i] = d.Hex
	}
	sort.Strings(deps)

	h := sha256.New()
	h.Write([]byte(content))
	for _, d := range deps {
		h.Write([]byte{0})
		h.Write([]byte(d))
	}
	return ModuleHash{Hex: hex.EncodeToString(h.Sum(nil))}
}

func (h ModuleHash) Equal(other ModuleHash) bool { return h.Hex == other.Hex }

// Premise names one importable fact a theorem's proof depended on:
// ModuleName identifies which module exported it, Name is the fact's own
// Source.Name.
type Premise struct {
	ModuleName string `yaml:"module"`
	Name       string `yaml:"name"`
}

// ModuleCache records, per theorem name in one module, the sorted set of
// premises its last successful proof actually used. Equal two ModuleCaches
// are only considered unchanged (and thus not re-saved) when both the hash
// and every theorem's premise set match exactly.
type ModuleCache struct {
	Hash     ModuleHash           `yaml:"hash"`
	Premises map[string][]Premise `yaml:"premises"`
}

// NewModuleCache builds an empty cache stamped with hash; theorems are
// added one at a time via SetPremises as verification discovers them.
func NewModuleCache(hash ModuleHash) *ModuleCache {
	return &ModuleCache{Hash: hash, Premises: map[string][]Premise{}}
}

// SetPremises records the sorted, deduplicated premise set a theorem's
// proof used this build.
func (c *ModuleCache) SetPremises(theorem string, used map[fact.Source]bool) {
	premises := make([]Premise, 0, len(used))
	for src := range used {
		premises = append(premises, Premise{ModuleName: src.ModuleID, Name: src.Name})
	}
	sort.Slice(premises, func(i, j int) bool {
		if premises[i].ModuleName != premises[j].ModuleName {
			return premises[i].ModuleName < premises[j].ModuleName
		}
		return premises[i].Name < premises[j].Name
	})
	c.Premises[theorem] = premises
}

// Load returns the cached premise set for theorem, or (nil, false) if no
// such entry exists (e.g. it's a new theorem, or the old cache didn't
// verify it cleanly last time).
func (c *ModuleCache) Load(theorem string) ([]Premise, bool) {
	if c == nil {
		return nil, false
	}
	premises, ok := c.Premises[theorem]
	return premises, ok
}

// Equal reports whether two caches are identical: same hash and, for every
// theorem present in either, the identical premise list. Mirrors the
// original's derived PartialEq used by BuildCache::insert to skip a no-op
// save.
func (c *ModuleCache) Equal(other *ModuleCache) bool {
	if c == nil || other == nil {
		return c == other
	}
	if !c.Hash.Equal(other.Hash) {
		return false
	}
	if len(c.Premises) != len(other.Premises) {
		return false
	}
	for theorem, premises := range c.Premises {
		otherPremises, ok := other.Premises[theorem]
		if !ok || len(premises) != len(otherPremises) {
			return false
		}
		for i := range premises {
			if premises[i] != otherPremises[i] {
				return false
			}
		}
	}
	return true
}

// AssertPremisesEqual is a test helper mirroring the original's
// ModuleCache::assert_premises_eq: it is exported (rather than confined to
// _test.go) so package tests across buildcache/prover can share it without
// duplicating the comparison logic.
func (c *ModuleCache) AssertPremisesEqual(theorem string, expected []string) bool {
	premises, ok := c.Load(theorem)
	if !ok {
		return len(expected) == 0
	}
	if len(premises) != len(expected) {
		return false
	}
	for i, p := range premises {
		qualified := p.Name
		if p.ModuleName != "" {
			qualified = p.ModuleName + ":" + p.Name
		}
		if qualified != expected[i] {
			return false
		}
	}
	return true
}
