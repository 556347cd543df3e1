// Package fingerprint implements FingerprintUnifier, a generic candidate
// index used by the ActiveSet to prune resolution and rewrite lookups
// without running full unification against every indexed term. It trades
// precision for speed: FindUnifying must never produce a false negative,
// but may return candidates that, on closer inspection, fail to unify.
package fingerprint

import "sooth/internal/term"

// symbolKind buckets what occupies a fingerprint position: a concrete head
// symbol, a variable (which unifies with anything), or "absent" (the path
// doesn't exist in this term, which only unifies with a variable at a
// shallower position).
type symbolKind uint8

const (
	kindVariable symbolKind = iota
	kindHead
	kindAbsent
)

type slot struct {
	kind symbolKind
	head term.Term // only Head/HeadType/NumArgs are meaningful
}

// paths are the fixed canonical positions the original active_set.rs keys
// its resolution and subterm indices on: the root, then a couple of shallow
// argument positions. Four positions balance precision against bucket
// fan-out for typical clause shapes.
var paths = [][]int{
	{},
	{0},
	{0, 0},
	{1},
}

// numPaths is len(paths) as a constant, so it can size fingerprint arrays.
const numPaths = 4

func fingerprintOf(t term.Term) [numPaths]slot {
	var fp [numPaths]slot
	for i, path := range paths {
		fp[i] = slotAt(t, path)
	}
	return fp
}

func slotAt(t term.Term, path []int) slot {
	cur := t
	for _, i := range path {
		if i >= len(cur.Args) {
			return slot{kind: kindAbsent}
		}
		cur = cur.Args[i]
	}
	if cur.IsVariable() {
		return slot{kind: kindVariable}
	}
	return slot{kind: kindHead, head: term.Atomic(cur.HeadType, cur.HeadType, cur.Head)}
}

// compatible reports whether two fingerprint slots could belong to terms
// that unify: identical heads always match; a variable on either side
// matches anything; "absent" only matches "absent" or a variable (a
// shallower variable can always expand to cover a deeper position, but two
// different concrete heads, or a concrete head against a term that simply
// doesn't reach that deep some other way, cannot).
func compatible(a, b slot) bool {
	if a.kind == kindVariable || b.kind == kindVariable {
		return true
	}
	if a.kind == kindAbsent || b.kind == kindAbsent {
		return a.kind == b.kind
	}
	return a.head.Head.Equal(b.head.Head) && a.head.HeadType == b.head.HeadType
}

type entry[T any] struct {
	fp    [numPaths]slot
	value T
}

// FingerprintUnifier maps terms to arbitrary payloads and supports
// over-approximate "what could unify with this term" lookups. Implemented
// as a flat bucket table keyed by the root symbol's kind, which is enough
// to avoid a full scan for the common case while keeping the structure
// trivial to reason about; every bucket's entries are still fingerprint-
// filtered before being returned.
type FingerprintUnifier[T any] struct {
	// byHead buckets entries whose root is a concrete head, keyed by a
	// cheap string so unrelated heads never need visiting.
	byHead map[string][]entry[T]
	// variableRoot holds entries whose root is a variable: these must be
	// considered for every query, since a query term could specialize them.
	variableRoot []entry[T]
}

func New[T any]() *FingerprintUnifier[T] {
	return &FingerprintUnifier[T]{byHead: map[string][]entry[T]{}}
}

func headKey(t term.Term) string {
	return t.Head.String()
}

// Insert indexes value under t's fingerprint.
func (f *FingerprintUnifier[T]) Insert(t term.Term, value T) {
	e := entry[T]{fp: fingerprintOf(t), value: value}
	if t.IsVariable() {
		f.variableRoot = append(f.variableRoot, e)
		return
	}
	key := headKey(t)
	f.byHead[key] = append(f.byHead[key], e)
}

// FindUnifying returns every indexed value whose term could possibly unify
// with query: no false negatives, but candidates still need an actual
// unification attempt by the caller.
func (f *FingerprintUnifier[T]) FindUnifying(query term.Term) []T {
	qfp := fingerprintOf(query)
	var out []T

	for _, e := range f.variableRoot {
		out = append(out, e.value)
	}

	if query.IsVariable() {
		// A query variable can unify with anything; every indexed entry is
		// a candidate.
		for _, bucket := range f.byHead {
			for _, e := range bucket {
				out = append(out, e.value)
			}
		}
		return out
	}

	if bucket, ok := f.byHead[headKey(query)]; ok {
		for _, e := range bucket {
			if fingerprintsCompatible(e.fp, qfp) {
				out = append(out, e.value)
			}
		}
	}
	return out
}

func fingerprintsCompatible(a, b [numPaths]slot) bool {
	for i := range a {
		if !compatible(a[i], b[i]) {
			return false
		}
	}
	return true
}

// Len reports the total number of indexed entries, for diagnostics.
func (f *FingerprintUnifier[T]) Len() int {
	n := len(f.variableRoot)
	for _, b := range f.byHead {
		n += len(b)
	}
	return n
}
