package interpreter

import (
	"fmt"
	"strings"

	"github.com/Specy/s68k/compiler"
	"github.com/Specy/s68k/cpu"
)

// Snapshot is a copy of the visible CPU state for UIs and tests.
type Snapshot struct {
	D     [8]uint32
	A     [8]uint32
	Pc    uint32
	Flags cpu.Flags
}

func (s Snapshot) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "PC: %#010x (%d)\n", s.Pc, s.Pc)
	for i, d := range s.D {
		fmt.Fprintf(&b, "D%d: %#010x (%d)\n", i, d, d)
	}
	for i, a := range s.A {
		fmt.Fprintf(&b, "A%d: %#010x (%d)\n", i, a, a)
	}
	b.WriteString(s.Flags.String())
	return b.String()
}

// GetCpuSnapshot copies the register file, PC and flags.
func (in *Interpreter) GetCpuSnapshot() Snapshot {
	s := Snapshot{Pc: in.pc, Flags: in.flags}
	for i := range in.d {
		s.D[i] = in.d[i].GetLong()
		s.A[i] = in.a[i].GetLong()
	}
	return s
}

// GetStatus returns the execution status.
func (in *Interpreter) GetStatus() Status {
	return in.status
}

// LastError returns the fault that terminated execution, if any.
func (in *Interpreter) LastError() *RuntimeError {
	return in.err
}

// GetPc returns the program counter.
func (in *Interpreter) GetPc() uint32 {
	return in.pc
}

// GetSp returns the stack pointer (A7).
func (in *Interpreter) GetSp() uint32 {
	return in.a[7].GetLong()
}

// GetFlag reports a single CCR flag.
func (in *Interpreter) GetFlag(f cpu.Flags) bool {
	return in.flags.Has(f)
}

// GetFlagsAsArray returns the flags in [X, N, Z, V, C] order.
func (in *Interpreter) GetFlagsAsArray() [5]bool {
	return in.flags.Array()
}

// GetFlagsAsBitfield returns the CCR byte.
func (in *Interpreter) GetFlagsAsBitfield() uint8 {
	return uint8(in.flags)
}

// ReadMemoryBytes copies a memory range without side effects.
func (in *Interpreter) ReadMemoryBytes(address, length uint32) ([]byte, error) {
	b, err := in.memory.ReadBytes(address, length)
	if err != nil {
		return nil, in.addressFault(err)
	}
	return b, nil
}

// GetRegisterValue reads a register at the given width.
func (in *Interpreter) GetRegisterValue(ref cpu.RegisterRef, size cpu.Size) uint32 {
	return in.readRegister(ref, size)
}

// SetRegisterValue writes a register directly. The write is not
// recorded in the undo history.
func (in *Interpreter) SetRegisterValue(ref cpu.RegisterRef, value uint32, size cpu.Size) {
	in.register(ref).StoreSize(size, value)
}

// GetInstructionAt returns the instruction at a table address.
func (in *Interpreter) GetInstructionAt(address uint32) *compiler.InstructionLine {
	line, _ := in.program.InstructionAt(address)
	return line
}

// GetNextInstruction returns the instruction the PC points at.
func (in *Interpreter) GetNextInstruction() *compiler.InstructionLine {
	return in.GetInstructionAt(in.pc)
}

// GetCurrentLineIndex returns the source line index of the next
// instruction, or -1 past the end of the program.
func (in *Interpreter) GetCurrentLineIndex() int {
	if line := in.GetNextInstruction(); line != nil {
		return line.Line.Index
	}
	return -1
}

// GetCallStack returns the observational call stack, outermost first.
func (in *Interpreter) GetCallStack() []CallFrame {
	out := make([]CallFrame, len(in.callStack))
	copy(out, in.callStack)
	return out
}

// HasTerminated reports whether execution reached a terminal status.
func (in *Interpreter) HasTerminated() bool {
	return in.status.Terminal()
}

// HasReachedBottom reports whether the program ran past its last
// instruction.
func (in *Interpreter) HasReachedBottom() bool {
	return in.reachedBottom
}
