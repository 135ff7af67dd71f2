// Package s68k is an educational interpreter for a subset of the
// Motorola 68000 assembly language. Source text flows through four
// stages: the lexer produces structured lines, the semantic checker
// validates them against per-mnemonic contracts, the compiler resolves
// labels and lays out data, and the interpreter executes the program
// against a modeled CPU and memory with reversible history and a
// synchronous trap #15 interrupt protocol.
package s68k

import (
	"github.com/Specy/s68k/compiler"
	"github.com/Specy/s68k/interpreter"
	"github.com/Specy/s68k/lexer"
	"github.com/Specy/s68k/semantics"
)

// DefaultMemorySize is the modeled memory size unless configured.
const DefaultMemorySize = 0xFFFFFF + 1

// Lex parses the source into structured lines without validation.
func Lex(source string) []lexer.Line {
	return lexer.New().Lex(source)
}

// SemanticCheck lexes the source and returns every diagnostic found.
func SemanticCheck(source string) []*semantics.Error {
	return semantics.Check(Lex(source))
}

// Compile runs the full pipeline and constructs an interpreter.
// Semantic errors refuse compilation; the returned error covers
// compiler-stage failures only.
func Compile(source string, memorySize uint32, options interpreter.Options) (*interpreter.Interpreter, []*semantics.Error, error) {
	lines := Lex(source)
	if errors := semantics.Check(lines); len(errors) > 0 {
		return nil, errors, nil
	}
	program, err := compiler.Compile(lines)
	if err != nil {
		return nil, nil, err
	}
	interp, err := interpreter.New(program, memorySize, options)
	if err != nil {
		return nil, nil, err
	}
	return interp, nil, nil
}
