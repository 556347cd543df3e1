package lsp

import (
	protocol "github.com/tliron/glsp/protocol_3_16"

	"sooth/internal/errors"
	"sooth/internal/fact"
	"sooth/internal/factset"
	"sooth/internal/prover"
)

// ConvertOutcome transforms a VerificationSearch result into LSP
// diagnostics for IDE display, the same role ConvertParseErrors/
// ConvertScanErrors played for the excluded surface language's parser.
// Success produces no diagnostics; every other outcome produces exactly one,
// located at the goal's range.
func ConvertOutcome(fs *factset.FactSet, outcome prover.Outcome) []protocol.Diagnostic {
	if outcome.Kind == prover.Success {
		return nil
	}

	rng := fact.Range{}
	name := fs.Module
	if fs.Goal != nil {
		if fs.Goal.Range != nil {
			rng = fs.Goal.Range.ToFact()
		}
		if fs.Goal.Name != "" {
			name = fs.Goal.Name
		}
	}

	diag := outcomeError(outcome, name, rng)
	return []protocol.Diagnostic{toProtocolDiagnostic(diag)}
}

func outcomeError(outcome prover.Outcome, name string, rng fact.Range) errors.CompilerError {
	switch outcome.Kind {
	case prover.Exhausted:
		return errors.SearchExhausted(name, rng)
	case prover.Timeout:
		return errors.SearchTimedOut(name, rng)
	case prover.Constrained:
		return errors.SearchConstrained(name, rng)
	case prover.Interrupted:
		return errors.SearchInterrupted(name, rng)
	case prover.Inconsistent:
		return errors.PremisesInconsistent(name, rng)
	default:
		return errors.NormalizationFailed(outcome.Message, rng)
	}
}

func toProtocolDiagnostic(d errors.CompilerError) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if d.Level == errors.Warning {
		severity = protocol.DiagnosticSeverityWarning
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{
				Line:      uint32(max0(d.Position.StartLine - 1)),
				Character: uint32(max0(d.Position.StartColumn - 1)),
			},
			End: protocol.Position{
				Line:      uint32(max0(d.Position.EndLine - 1)),
				Character: uint32(max0(d.Position.EndColumn - 1)),
			},
		},
		Severity: &severity,
		Source:   ptrString("sooth"),
		Message:  string(d.Code) + ": " + d.Message,
	}
}

func max0(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func ptrString(s string) *string {
	return &s
}
