// Package notation is a small textual form for writing down
// value.LogicValue trees by hand: "forall x:Nat, y:Nat . f(x, y):Nat = f(y, x)".
// It exists only for this repo's own tests and for the FactSet input that
// cmd/soothc and internal/lsp read through internal/factset — it is deliberately not a reintroduction of the surface language
// spec.md excludes (no modules, imports, statements, or user-defined
// types), the same boundary the original draws between Clause::parse's test
// helper and the real parser in statement.rs. Grounded on the teacher's
// participle wiring: grammar/lexer.go's lexer.MustStateful call and
// internal/parser/parser.go's buildParser/ParseString shape.
package notation

import "github.com/alecthomas/participle/v2/lexer"

var notationLexer = lexer.MustStateful(lexer.Rules{
	"Root": {
		{"Ident", `[a-zA-Z_][a-zA-Z0-9_']*`, nil},
		{"Arrow", `->`, nil},
		{"NotEqual", `!=`, nil},
		{"Operator", `[!=|&]`, nil},
		{"Punctuation", `[(),.:]`, nil},
		{"Whitespace", `[ \t\r\n]+`, nil},
	},
})
