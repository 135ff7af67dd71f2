package semantics

import (
	"fmt"

	"github.com/Specy/s68k/lexer"
)

// Code is the machine-readable tag of a semantic error.
type Code string

const (
	CodeUnknownMnemonic       Code = "UnknownMnemonic"
	CodeWrongArity            Code = "WrongArity"
	CodeUnsupportedSize       Code = "UnsupportedSize"
	CodeInvalidAddressingMode Code = "InvalidAddressingMode"
	CodeUnresolvedLabel       Code = "UnresolvedLabel"
	CodeDuplicateLabel        Code = "DuplicateLabel"
	CodeMalformedOperand      Code = "MalformedOperand"
	CodeImmediateOutOfRange   Code = "ImmediateOutOfRange"
	CodeDirectiveMisuse       Code = "DirectiveMisuse"
	CodeExpressionError       Code = "ExpressionError"
)

// Error is a pre-execution diagnostic. It carries the offending line so
// a UI can point at the source.
type Error struct {
	Line    lexer.Line
	Code    Code
	Message string
	// Allowed holds the permitted addressing modes for
	// CodeInvalidAddressingMode errors.
	Allowed Mode
}

func (e *Error) Error() string {
	return fmt.Sprintf("error on line %d: %s", e.Line.Index+1, e.Message)
}
