package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"sooth/internal/fact"
)

func rng(line, col, endCol int) fact.Range {
	return fact.Range{StartLine: line, StartColumn: col, EndLine: line, EndColumn: endCol}
}

func TestErrorReporter(t *testing.T) {
	source := `forall n:Nat . unknownPremise(n):Bool
exists m:Nat . m = n`

	reporter := NewErrorReporter("goal.fact", source)

	err := UndefinedPremise("unknownPremise", rng(1, 17, 31), []string{"knownPremise", "anotherPremise"})
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "error["+string(KindNormalization)+"]")
	assert.Contains(t, formatted, "undefined premise")
	assert.Contains(t, formatted, "unknownPremise")

	// Should contain location
	assert.Contains(t, formatted, "goal.fact:1:17")

	// Should contain suggestions
	assert.Contains(t, formatted, "did you mean")
	assert.Contains(t, formatted, "knownPremise")
}

func TestUndefinedPremiseError(t *testing.T) {
	pos := rng(1, 5, 12)

	// Test with similar names
	err := UndefinedPremise("balace", pos, []string{"balance"})
	assert.Equal(t, KindNormalization, err.Code)
	assert.Contains(t, err.Message, "balace")
	assert.Len(t, err.Suggestions, 1)
	assert.Contains(t, err.Suggestions[0].Message, "did you mean 'balance'")

	// Test without similar names
	err = UndefinedPremise("xyz", pos, []string{})
	assert.Len(t, err.Notes, 1)
	assert.Contains(t, err.Notes[0], "must be imported or defined")
}

func TestSearchOutcomeErrors(t *testing.T) {
	pos := rng(2, 1, 10)

	exhausted := SearchExhausted("goal_nonzero", pos)
	assert.Equal(t, KindExhausted, exhausted.Code)
	assert.Contains(t, exhausted.Message, "goal_nonzero")
	assert.NotEmpty(t, exhausted.HelpText)

	timeout := SearchTimedOut("goal_nonzero", pos)
	assert.Equal(t, KindTimeout, timeout.Code)
	assert.Len(t, timeout.Suggestions, 1)

	inconsistent := PremisesInconsistent("nat", pos)
	assert.Equal(t, KindInconsistent, inconsistent.Code)
	assert.Equal(t, Error, inconsistent.Level)
}

func TestCacheErrorsAreWarnings(t *testing.T) {
	err := CacheReadFailed("nat", assertError("disk gone"))
	assert.Equal(t, KindCacheIO, err.Code)
	assert.Equal(t, Warning, err.Level)
	assert.True(t, err.Code.IsWarning())
}

func TestWarningFormatting(t *testing.T) {
	source := `n:Nat = n`
	reporter := NewErrorReporter("goal.fact", source)

	err := CacheReadFailed("nat", assertError("disk gone"))
	formatted := reporter.FormatError(err)

	assert.Contains(t, formatted, "warning["+string(KindCacheIO)+"]")
	assert.Contains(t, formatted, "disk gone")
}

func TestErrorMarkerCreation(t *testing.T) {
	source := `n:Nat = m`
	reporter := NewErrorReporter("goal.fact", source)

	// Test marker creation
	marker := reporter.createMarker(5, 8, Error) // 8-char span starting at column 5

	// Should have correct spacing and marker length
	spaces := strings.Count(marker, " ")
	assert.Equal(t, 4, spaces) // column 5 means 4 spaces before
	carets := strings.Count(marker, "^")
	assert.Equal(t, 8, carets) // 8 character length
}

func TestMultipleSuggestions(t *testing.T) {
	pos := rng(1, 5, 16)

	err := UndefinedPremise("knownFunc", pos, []string{"knownFunc1", "knownFunc2"})

	assert.True(t, len(err.Suggestions) >= 1)

	suggestionTexts := make([]string, len(err.Suggestions))
	for i, s := range err.Suggestions {
		suggestionTexts[i] = s.Message
	}

	suggestionText := strings.Join(suggestionTexts, " ")
	assert.Contains(t, suggestionText, "knownFunc1")
	assert.Contains(t, suggestionText, "knownFunc2")
}

func TestLevenshteinDistance(t *testing.T) {
	// Test basic Levenshtein distance calculation
	assert.Equal(t, 0, levenshteinDistance("hello", "hello"))
	assert.Equal(t, 1, levenshteinDistance("hello", "hallo"))
	assert.Equal(t, 1, levenshteinDistance("hello", "helo")) // deletion is 1, not 2
	assert.Equal(t, 5, levenshteinDistance("hello", ""))
	assert.Equal(t, 3, levenshteinDistance("kitten", "sitting"))
}

func TestSimilarNameFinding(t *testing.T) {
	candidates := []string{"balance", "amount", "total", "balanceOf", "xyz"}

	// Should find similar names
	similar := findSimilarNames("balace", candidates)
	assert.Contains(t, similar, "balance")
	assert.NotContains(t, similar, "xyz") // too different

	// Should not find similar names if none are close enough
	similar = findSimilarNames("verydifferent", candidates)
	assert.Empty(t, similar)
}

func TestErrorLevels(t *testing.T) {
	source := `test`
	reporter := NewErrorReporter("goal.fact", source)
	pos := rng(1, 1, 2)

	// Test different error levels produce different colors
	errorErr := CompilerError{Level: Error, Message: "test error", Position: pos}
	warningErr := CompilerError{Level: Warning, Message: "test warning", Position: pos}

	errorFormatted := reporter.FormatError(errorErr)
	warningFormatted := reporter.FormatError(warningErr)

	assert.Contains(t, errorFormatted, "error:")
	assert.Contains(t, warningFormatted, "warning:")
}

type stringError string

func (e stringError) Error() string { return string(e) }

func assertError(msg string) error { return stringError(msg) }
