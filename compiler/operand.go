package compiler

import (
	"fmt"

	"github.com/Specy/s68k/cpu"
)

// OperandKind tags a runtime operand.
type OperandKind int

const (
	// OperandImmediate is a fully evaluated #imm.
	OperandImmediate OperandKind = iota
	// OperandRegister is a direct register reference.
	OperandRegister
	// OperandIndirect covers (An), d(An), d(An,Xn.s), -(An) and (An)+.
	OperandIndirect
	// OperandAbsolute is a memory address to dereference.
	OperandAbsolute
	// OperandAddress is an address used as a value: branch and jump
	// targets.
	OperandAddress
)

// IndirectMode distinguishes the three register-indirect variants.
type IndirectMode int

const (
	// IndirectPlain is (An) and d(An).
	IndirectPlain IndirectMode = iota
	// IndirectPre is -(An).
	IndirectPre
	// IndirectPost is (An)+.
	IndirectPost
)

// IndexSpec is the Xn.s part of an indexed operand.
type IndexSpec struct {
	Register cpu.RegisterRef
	Size     cpu.Size
}

// Operand is a compiled operand: every label and expression has been
// resolved to a concrete value.
type Operand struct {
	Kind     OperandKind
	Value    uint32
	Register cpu.RegisterRef
	// Displacement and Index apply to OperandIndirect.
	Displacement int32
	Index        *IndexSpec
	Mode         IndirectMode
}

func (o Operand) String() string {
	switch o.Kind {
	case OperandImmediate:
		return fmt.Sprintf("#$%x", o.Value)
	case OperandRegister:
		return o.Register.String()
	case OperandAbsolute, OperandAddress:
		return fmt.Sprintf("$%x", o.Value)
	case OperandIndirect:
		switch o.Mode {
		case IndirectPre:
			return fmt.Sprintf("-(%s)", o.Register)
		case IndirectPost:
			return fmt.Sprintf("(%s)+", o.Register)
		}
		if o.Index != nil {
			return fmt.Sprintf("%d(%s,%s.%s)", o.Displacement, o.Register, o.Index.Register, o.Index.Size)
		}
		if o.Displacement != 0 {
			return fmt.Sprintf("%d(%s)", o.Displacement, o.Register)
		}
		return fmt.Sprintf("(%s)", o.Register)
	}
	return "?"
}
