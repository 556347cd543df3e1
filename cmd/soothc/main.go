// SPDX-License-Identifier: Apache-2.0
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"

	"sooth/internal/factset"
	"sooth/internal/prover"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: soothc <factset.yaml>")
		os.Exit(1)
	}

	path := os.Args[1]

	fs, err := factset.Load(path)
	if err != nil {
		color.Red("❌ %s", err)
		os.Exit(1)
	}
	if fs.Goal == nil {
		color.Red("❌ %s has no goal to verify", path)
		os.Exit(1)
	}

	p, err := fs.BuildProver()
	if err != nil {
		reportFactError(path, fs, err)
		os.Exit(1)
	}

	outcome := p.VerificationSearch()
	switch outcome.Kind {
	case prover.Success:
		color.Green("✅ %s: %s verified", fs.Module, goalName(fs))
	default:
		reportOutcome(path, fs, outcome)
		os.Exit(1)
	}
}

func goalName(fs *factset.FactSet) string {
	if fs.Goal.Name != "" {
		return fs.Goal.Name
	}
	return "goal"
}

// reportFactError prints the module whose prover could not be built and the
// error text, indented. There is no caret: a notation string parsed out of a
// YAML document has no source position to point at.
func reportFactError(path string, fs *factset.FactSet, err error) {
	color.Red("❌ %s: failed to build prover for module '%s':", path, fs.Module)
	fmt.Println(indent(err.Error()))
}

func reportOutcome(path string, fs *factset.FactSet, outcome prover.Outcome) {
	name := goalName(fs)
	switch outcome.Kind {
	case prover.Exhausted:
		color.Red("❌ %s: '%s' does not follow from the given premises", path, name)
	case prover.Timeout:
		color.Yellow("⏱ %s: search for '%s' timed out", path, name)
	case prover.Constrained:
		color.Yellow("⚠ %s: search for '%s' hit its activation limit", path, name)
	case prover.Interrupted:
		color.Yellow("⚠ %s: search for '%s' was interrupted", path, name)
	case prover.Inconsistent:
		color.Red("❌ %s: premises of module '%s' are inconsistent", path, fs.Module)
	default:
		color.Red("❌ %s: %s", path, outcome.Message)
	}
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}
