package errors

import (
	"fmt"
	"strings"

	"sooth/internal/fact"
)

// ProverErrorBuilder provides a fluent interface for building a
// CompilerError out of a prover result, mirroring the teacher's
// SemanticErrorBuilder.
type ProverErrorBuilder struct {
	err CompilerError
}

// NewProverError starts a builder for a diagnostic of the given kind, located
// at rng: warning level when kind.IsWarning(), error level otherwise.
func NewProverError(kind Kind, message string, rng fact.Range) *ProverErrorBuilder {
	level := Error
	if kind.IsWarning() {
		level = Warning
	}
	return &ProverErrorBuilder{
		err: CompilerError{Level: level, Code: kind, Message: message, Position: rng},
	}
}

// WithSuggestion adds a suggestion to the error
func (b *ProverErrorBuilder) WithSuggestion(message string) *ProverErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{Message: message})
	return b
}

// WithReplacement adds a suggestion with replacement text
func (b *ProverErrorBuilder) WithReplacement(message, replacement string, rng fact.Range) *ProverErrorBuilder {
	b.err.Suggestions = append(b.err.Suggestions, Suggestion{
		Message:     message,
		Replacement: replacement,
		Position:    rng,
	})
	return b
}

// WithNote adds a note to the error
func (b *ProverErrorBuilder) WithNote(note string) *ProverErrorBuilder {
	b.err.Notes = append(b.err.Notes, note)
	return b
}

// WithHelp adds help text to the error
func (b *ProverErrorBuilder) WithHelp(help string) *ProverErrorBuilder {
	b.err.HelpText = help
	return b
}

// Build returns the completed compiler error
func (b *ProverErrorBuilder) Build() CompilerError {
	return b.err
}

// Prover-result diagnostic constructors

// NormalizationFailed reports a fact or goal that could not be turned into
// clauses: an ill-typed term, or a notation parse failure.
func NormalizationFailed(detail string, rng fact.Range) CompilerError {
	return NewProverError(KindNormalization, fmt.Sprintf("failed to normalize: %s", detail), rng).
		WithHelp("every free constant needs a type annotation on its first occurrence").
		Build()
}

// SearchTimedOut reports a search that ran out of wall-clock time.
func SearchTimedOut(goalName string, rng fact.Range) CompilerError {
	return NewProverError(KindTimeout, fmt.Sprintf("search for '%s' timed out", goalName), rng).
		WithSuggestion("split the goal into smaller lemmas").
		WithNote("a longer-running search may still find the goal; this is not a refutation").
		Build()
}

// SearchConstrained reports a search that hit its activation limit.
func SearchConstrained(goalName string, rng fact.Range) CompilerError {
	return NewProverError(KindConstrained, fmt.Sprintf("search for '%s' hit its activation limit", goalName), rng).
		WithSuggestion("provide more specific premises to narrow the search").
		Build()
}

// SearchExhausted reports a search that tried everything available and
// found no contradiction.
func SearchExhausted(goalName string, rng fact.Range) CompilerError {
	return NewProverError(KindExhausted, fmt.Sprintf("'%s' does not follow from the given premises", goalName), rng).
		WithHelp("the goal may be false, or may need an additional lemma as a premise").
		Build()
}

// SearchInterrupted reports a search a caller's stop flag cancelled.
func SearchInterrupted(goalName string, rng fact.Range) CompilerError {
	return NewProverError(KindInterrupted, fmt.Sprintf("search for '%s' was interrupted", goalName), rng).
		Build()
}

// PremisesInconsistent reports a premise set that is contradictory on its
// own, independent of any particular goal.
func PremisesInconsistent(moduleName string, rng fact.Range) CompilerError {
	return NewProverError(KindInconsistent, fmt.Sprintf("premises of module '%s' are inconsistent", moduleName), rng).
		WithNote("a contradiction was found before the goal was even considered").
		WithSuggestion("check recently added assumptions and definitions for a sign error").
		Build()
}

// CacheReadFailed reports a BuildCache load failure; never fatal, callers
// fall back to proving from scratch.
func CacheReadFailed(moduleName string, cause error) CompilerError {
	return NewProverError(KindCacheIO, fmt.Sprintf("could not read build cache for '%s': %v", moduleName, cause), fact.Range{}).
		WithNote("falling back to a full search for this module").
		Build()
}

// CacheWriteFailed reports a BuildCache save failure; never fatal.
func CacheWriteFailed(moduleName string, cause error) CompilerError {
	return NewProverError(KindCacheIO, fmt.Sprintf("could not write build cache for '%s': %v", moduleName, cause), fact.Range{}).
		WithNote("the next build will not be able to reuse this module's cached premises").
		Build()
}

// UndefinedPremise reports a goal or definition referencing a constant name
// that no visible fact defines, suggesting similarly spelled premises.
func UndefinedPremise(name string, rng fact.Range, candidates []string) CompilerError {
	builder := NewProverError(KindNormalization, fmt.Sprintf("undefined premise '%s'", name), rng)

	similar := findSimilarNames(name, candidates)
	switch {
	case len(similar) == 1:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean '%s'?", similar[0]))
	case len(similar) > 1:
		builder = builder.WithSuggestion(fmt.Sprintf("did you mean one of: '%s'?", strings.Join(similar, "', '")))
	default:
		builder = builder.WithNote("premises must be imported or defined before a goal references them")
	}

	return builder.Build()
}

func findSimilarNames(target string, candidates []string) []string {
	var similar []string

	for _, candidate := range candidates {
		if levenshteinDistance(target, candidate) <= 2 && len(candidate) > 2 {
			similar = append(similar, candidate)
		}
	}

	return similar
}

// Simple Levenshtein distance implementation for finding similar names
func levenshteinDistance(a, b string) int {
	if len(a) == 0 {
		return len(b)
	}
	if len(b) == 0 {
		return len(a)
	}

	// Create matrix
	matrix := make([][]int, len(a)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(b)+1)
	}

	// Initialize first row and column
	for i := 0; i <= len(a); i++ {
		matrix[i][0] = i
	}
	for j := 0; j <= len(b); j++ {
		matrix[0][j] = j
	}

	// Fill the matrix
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			matrix[i][j] = min3(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(a)][len(b)]
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}
