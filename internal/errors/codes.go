package errors

// Kind identifies the category of a CompilerError. Unlike a traditional
// compiler's per-diagnosis error codes, a prover run has only a handful of
// outcomes (see internal/prover.OutcomeKind); Kind mirrors that shape so a
// CompilerError can be built directly from a search Outcome.
type Kind string

const (
	// KindNormalization covers failures turning a fact.Fact or fact.Goal
	// into clauses: an ill-typed term, a notation parse failure, an
	// unresolved constant.
	KindNormalization Kind = "normalization"

	// KindTimeout means the search ran out of wall-clock time before
	// finding a contradiction or exhausting the search space.
	KindTimeout Kind = "timeout"

	// KindConstrained means the search hit its activation limit.
	KindConstrained Kind = "constrained"

	// KindExhausted means the search tried everything available and
	// found no contradiction: the goal does not follow from the given
	// facts (or is false).
	KindExhausted Kind = "exhausted"

	// KindInterrupted means a caller's stop flag fired mid-search.
	KindInterrupted Kind = "interrupted"

	// KindInconsistent means the search found a contradiction. Proving a
	// goal is the success path, but a Prove with InconsistencyOkay unset
	// that ends up here instead reports an inconsistent premise set as an
	// error.
	KindInconsistent Kind = "inconsistent"

	// KindCacheIO covers a BuildCache read or write failing. Never
	// fatal: the caller falls back to proving from scratch.
	KindCacheIO Kind = "cache_io"
)

// IsWarning reports whether diagnostics of this kind default to Warning
// rather than Error level. Only a cache read/write failure is benign; every
// other kind blocks a verification result.
func (k Kind) IsWarning() bool {
	return k == KindCacheIO
}

// String names the kind the way it appears in a formatted diagnostic's
// "error[kind]:" header.
func (k Kind) String() string { return string(k) }
