package compiler

import (
	"fmt"
	"strings"

	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/lexer"
)

// OpKind identifies a decoded operation.
type OpKind int

const (
	OpMove OpKind = iota
	OpMoveq
	OpMovem
	OpAdd
	OpSub
	OpAdda
	OpSuba
	OpMul
	OpDiv
	OpCmp
	OpCmpa
	OpTst
	OpAnd
	OpOr
	OpEor
	OpNot
	OpNeg
	OpClr
	OpExt
	OpSwap
	OpExg
	OpLogicalShift
	OpArithShift
	OpRotate
	OpBtst
	OpBclr
	OpBset
	OpBchg
	OpBra
	OpBsr
	OpBcc
	OpScc
	OpDbcc
	OpJmp
	OpJsr
	OpRts
	OpLea
	OpPea
	OpLink
	OpUnlk
	OpTrap
	OpNop
)

var opNames = map[OpKind]string{
	OpMove: "move", OpMoveq: "moveq", OpMovem: "movem",
	OpAdd: "add", OpSub: "sub", OpAdda: "adda", OpSuba: "suba",
	OpMul: "mul", OpDiv: "div", OpCmp: "cmp", OpCmpa: "cmpa", OpTst: "tst",
	OpAnd: "and", OpOr: "or", OpEor: "eor", OpNot: "not", OpNeg: "neg",
	OpClr: "clr", OpExt: "ext", OpSwap: "swap", OpExg: "exg",
	OpLogicalShift: "ls", OpArithShift: "as", OpRotate: "ro",
	OpBtst: "btst", OpBclr: "bclr", OpBset: "bset", OpBchg: "bchg",
	OpBra: "bra", OpBsr: "bsr", OpBcc: "bcc", OpScc: "scc", OpDbcc: "dbcc",
	OpJmp: "jmp", OpJsr: "jsr", OpRts: "rts",
	OpLea: "lea", OpPea: "pea", OpLink: "link", OpUnlk: "unlk",
	OpTrap: "trap", OpNop: "nop",
}

// Instruction is a decoded operation with resolved operands. Only the
// fields relevant to the kind are populated.
type Instruction struct {
	Kind OpKind
	Size cpu.Size
	Src  Operand
	Dst  Operand
	// Cond applies to Bcc, Scc and DBcc.
	Cond cpu.Condition
	// Dir applies to the shift and rotate families.
	Dir cpu.ShiftDirection
	// Signed distinguishes muls/divs from mulu/divu.
	Signed bool
	// Regs is the MOVEM transfer list.
	Regs []cpu.RegisterRef
	// ToMemory is true for the registers-to-memory MOVEM form.
	ToMemory bool
}

func (i Instruction) String() string {
	var b strings.Builder
	b.WriteString(opNames[i.Kind])
	if i.Size != cpu.SizeUnspecified {
		fmt.Fprintf(&b, ".%s", i.Size)
	}
	switch i.Kind {
	case OpRts, OpNop:
	case OpTst, OpNot, OpNeg, OpClr, OpExt, OpSwap, OpJmp, OpJsr, OpPea, OpUnlk, OpBra, OpBsr, OpScc:
		fmt.Fprintf(&b, " %s", i.Src)
	default:
		fmt.Fprintf(&b, " %s,%s", i.Src, i.Dst)
	}
	return b.String()
}

// InstructionLine ties a decoded instruction to its table address and
// the source line it came from.
type InstructionLine struct {
	Instruction Instruction
	Address     uint32
	Line        lexer.Line
}

// MemoryBlock is a range of the initial memory image.
type MemoryBlock struct {
	Address uint32
	Bytes   []byte
}

// Program is the compiler's output: the instruction table, the symbol
// table and the initial memory image. Label addresses are stable for
// the lifetime of the program.
type Program struct {
	Instructions []*InstructionLine
	ByAddress    map[uint32]*InstructionLine
	Labels       map[string]uint32
	// InitialMemory holds only the ranges touched by data directives.
	InitialMemory []MemoryBlock
	// StartAddress is the address execution begins at.
	StartAddress uint32
	// FinalAddress is the address of the last instruction.
	FinalAddress uint32
}

// InstructionAt returns the instruction at an exact table address.
func (p *Program) InstructionAt(address uint32) (*InstructionLine, bool) {
	line, ok := p.ByAddress[address]
	return line, ok
}
