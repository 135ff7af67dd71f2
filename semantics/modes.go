package semantics

import (
	"fmt"
	"strings"

	"github.com/Specy/s68k/lexer"
)

// Mode is an addressing-mode bit. Contracts combine them into the
// effective-address mask allowed at each operand position.
type Mode uint16

const (
	ModeDataReg Mode = 1 << iota
	ModeAddrReg
	ModeIndirect
	ModePostIncrement
	ModePreDecrement
	ModeDisplacement
	ModeIndexed
	ModeImmediate
	ModeAbsolute
	ModeLabel
)

// Common mask combinations.
const (
	// ModeAny accepts every addressing mode.
	ModeAny = ModeDataReg | ModeAddrReg | ModeIndirect | ModePostIncrement |
		ModePreDecrement | ModeDisplacement | ModeIndexed | ModeImmediate |
		ModeAbsolute | ModeLabel
	// ModeAlterable excludes immediates: anything that can be written.
	ModeAlterable = ModeAny &^ ModeImmediate
	// ModeDataAlterable additionally excludes address registers.
	ModeDataAlterable = ModeAlterable &^ ModeAddrReg
	// ModeControl is the jump/load-address set.
	ModeControl = ModeIndirect | ModeDisplacement | ModeIndexed | ModeAbsolute | ModeLabel
	// ModeMemory is any memory reference.
	ModeMemory = ModeControl | ModePostIncrement | ModePreDecrement
)

var modeNames = []struct {
	mode Mode
	name string
}{
	{ModeDataReg, "Dn"},
	{ModeAddrReg, "An"},
	{ModeIndirect, "(An)"},
	{ModePostIncrement, "(An)+"},
	{ModePreDecrement, "-(An)"},
	{ModeDisplacement, "d(An)"},
	{ModeIndexed, "d(An,Xn)"},
	{ModeImmediate, "#imm"},
	{ModeAbsolute, "ea"},
	{ModeLabel, "<label>"},
}

func (m Mode) String() string {
	var parts []string
	for _, n := range modeNames {
		if m&n.mode != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "/")
}

// classifyOperand maps a lexed operand tree to its addressing mode.
// Structurally invalid operands return an error instead of a mode.
func classifyOperand(op lexer.Operand) (Mode, error) {
	switch op.Kind {
	case lexer.OperandRegister:
		if op.RegisterType == lexer.RegisterData {
			return ModeDataReg, nil
		}
		return ModeAddrReg, nil
	case lexer.OperandImmediate:
		return ModeImmediate, nil
	case lexer.OperandPostIndirect:
		if !isAddressRegister(op.Operands[0]) {
			return 0, fmt.Errorf("postincrement requires an address register, got %q", op.Operands[0].Value)
		}
		return ModePostIncrement, nil
	case lexer.OperandPreIndirect:
		if !isAddressRegister(op.Operands[0]) {
			return 0, fmt.Errorf("predecrement requires an address register, got %q", op.Operands[0].Value)
		}
		return ModePreDecrement, nil
	case lexer.OperandIndirect:
		if !isAddressRegister(op.Operands[0]) {
			return 0, fmt.Errorf("indirection requires an address register, got %q", op.Operands[0].Value)
		}
		if strings.TrimSpace(op.Offset) == "" {
			return ModeIndirect, nil
		}
		return ModeDisplacement, nil
	case lexer.OperandIndirectIndex:
		if !isAddressRegister(op.Operands[0]) {
			return 0, fmt.Errorf("indexed mode requires an address register base, got %q", op.Operands[0].Value)
		}
		if op.Operands[1].Kind != lexer.OperandRegister {
			return 0, fmt.Errorf("indexed mode requires a register index, got %q", op.Operands[1].Value)
		}
		return ModeIndexed, nil
	case lexer.OperandAbsolute:
		return ModeAbsolute, nil
	case lexer.OperandLabel:
		return ModeLabel, nil
	default:
		return 0, fmt.Errorf("unknown operand %q", op.Value)
	}
}

func isAddressRegister(op lexer.Operand) bool {
	return op.Kind == lexer.OperandRegister && op.RegisterType != lexer.RegisterData
}
