package lexer

import (
	"github.com/Specy/s68k/cpu"
)

// RegisterType classifies a lexed register token.
type RegisterType int

const (
	// RegisterData is d0-d7.
	RegisterData RegisterType = iota
	// RegisterAddress is a0-a7.
	RegisterAddress
	// RegisterSP is the sp alias for a7.
	RegisterSP
)

// OperandKind tags a lexed operand. The lexer makes no semantic
// judgement; impossible combinations are rejected downstream.
type OperandKind int

const (
	// OperandRegister is Dn, An or sp.
	OperandRegister OperandKind = iota
	// OperandImmediate is #<expr>.
	OperandImmediate
	// OperandIndirect is (An) or d(An).
	OperandIndirect
	// OperandIndirectIndex is d(An, Xn.s).
	OperandIndirectIndex
	// OperandPostIndirect is (An)+.
	OperandPostIndirect
	// OperandPreIndirect is -(An).
	OperandPreIndirect
	// OperandAbsolute is an address expression like $1000 or arr+2.
	OperandAbsolute
	// OperandLabel is a bare identifier.
	OperandLabel
	// OperandOther is anything the lexer could not classify.
	OperandOther
)

// Operand is a purely syntactic operand tree.
type Operand struct {
	Kind         OperandKind
	RegisterType RegisterType
	// Value holds the raw token: register name, expression text for
	// immediates and absolutes, the label name, or the unclassified text.
	Value string
	// Offset is the displacement expression of an indirect operand.
	Offset string
	// Size is the extension size of an index register (d3.w, a2.l).
	Size cpu.Size
	// Operands holds the inner operand(s) of indirect forms.
	Operands []Operand
}

// LineKind classifies a source line.
type LineKind int

const (
	LineInstruction LineKind = iota
	LineLabel
	LineDirective
	LineComment
	LineEmpty
	LineUnknown
)

// Statement is the parsed content of one line.
type Statement struct {
	Kind LineKind
	// Name is the mnemonic, the label name or the directive name.
	Name string
	// Size is the explicit size suffix, SizeUnspecified when absent.
	Size cpu.Size
	// Operands are the instruction operands.
	Operands []Operand
	// Args are the raw directive arguments.
	Args []string
	// Directive is the data directive attached to a label line,
	// as in "arr: dc.w 1,2,3".
	Directive *Statement
	// Content is the raw text of comment and unknown lines.
	Content string
}

// Line pairs a statement with its source text and position.
type Line struct {
	Raw    string
	Index  int
	Parsed Statement
}
