package notation

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
)

var notationParser = buildParser()

func buildParser() *participle.Parser[formula] {
	p, err := participle.Build[formula](
		participle.Lexer(notationLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(4),
	)
	if err != nil {
		panic(fmt.Errorf("notation: failed to build parser: %w", err))
	}
	return p
}

// ParseString parses one formula from source text and resolves it into a
// value.LogicValue, choosing module as the home module for every bare
// constant reference it introduces.
func ParseString(module, source string) (Value, error) {
	ast, err := notationParser.ParseString("", source)
	if err != nil {
		return nil, fmt.Errorf("notation: %w", err)
	}
	r := newResolver(module)
	return r.resolveFormula(ast)
}
