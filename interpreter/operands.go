package interpreter

import (
	"github.com/Specy/s68k/compiler"
	"github.com/Specy/s68k/cpu"
)

// location is a resolved operand target. Predecrement and postincrement
// side effects are applied exactly once, when the operand is located,
// so read-modify-write instructions see a single adjustment.
type location struct {
	immediate bool
	register  bool
	ref       cpu.RegisterRef
	address   uint32
	value     uint32
}

// locate resolves an operand to its location for the given access size.
func (in *Interpreter) locate(op compiler.Operand, size cpu.Size) (location, error) {
	switch op.Kind {
	case compiler.OperandImmediate, compiler.OperandAddress:
		return location{immediate: true, value: op.Value}, nil
	case compiler.OperandRegister:
		return location{register: true, ref: op.Register}, nil
	case compiler.OperandAbsolute:
		return location{address: op.Value}, nil
	case compiler.OperandIndirect:
		address, err := in.indirectAddress(op, size)
		if err != nil {
			return location{}, err
		}
		return location{address: address}, nil
	}
	return location{}, runtimeErrorf(ErrIllegalAddressingMode, "cannot resolve operand")
}

// indirectAddress computes the effective address of a register-indirect
// operand, applying the predecrement or postincrement side effect.
func (in *Interpreter) indirectAddress(op compiler.Operand, size cpu.Size) (uint32, error) {
	base := in.readRegister(op.Register, cpu.SizeLong)
	switch op.Mode {
	case compiler.IndirectPre:
		base -= in.stackAdjust(op.Register, size)
		if err := in.writeRegister(op.Register, base, cpu.SizeLong); err != nil {
			return 0, err
		}
		return base, nil
	case compiler.IndirectPost:
		next := base + in.stackAdjust(op.Register, size)
		if err := in.writeRegister(op.Register, next, cpu.SizeLong); err != nil {
			return 0, err
		}
		return base, nil
	}
	address := uint32(int64(base) + int64(op.Displacement))
	if op.Index != nil {
		index := cpu.SignExtend(in.readRegister(op.Index.Register, op.Index.Size), op.Index.Size)
		address = uint32(int64(address) + int64(index))
	}
	return address, nil
}

// stackAdjust is the per-access pointer adjustment. Byte accesses
// through A7 move by two to keep the stack pointer even.
func (in *Interpreter) stackAdjust(ref cpu.RegisterRef, size cpu.Size) uint32 {
	if size == cpu.SizeByte && ref == cpu.SP {
		return 2
	}
	return size.Bytes()
}

// load reads the located value at the access size.
func (in *Interpreter) load(loc location, size cpu.Size) (uint32, error) {
	switch {
	case loc.immediate:
		return cpu.ValueSized(loc.value, size), nil
	case loc.register:
		return in.readRegister(loc.ref, size), nil
	default:
		return in.readMemory(loc.address, size)
	}
}

// store writes the located target at the access size.
func (in *Interpreter) store(loc location, size cpu.Size, value uint32) error {
	switch {
	case loc.immediate:
		return runtimeErrorf(ErrIllegalAddressingMode, "cannot store to an immediate operand")
	case loc.register:
		return in.writeRegister(loc.ref, value, size)
	default:
		return in.writeMemory(loc.address, size, value)
	}
}

// operandValue locates and loads a source operand in one call.
func (in *Interpreter) operandValue(op compiler.Operand, size cpu.Size) (uint32, error) {
	loc, err := in.locate(op, size)
	if err != nil {
		return 0, err
	}
	return in.load(loc, size)
}

// effectiveAddress computes the address an operand designates, for
// lea, pea, jmp, jsr and movem. No side effects are applied.
func (in *Interpreter) effectiveAddress(op compiler.Operand) (uint32, error) {
	switch op.Kind {
	case compiler.OperandAbsolute, compiler.OperandAddress:
		return op.Value, nil
	case compiler.OperandIndirect:
		if op.Mode != compiler.IndirectPlain {
			return 0, runtimeErrorf(ErrIllegalAddressingMode, "cannot take the address of %s", op)
		}
		base := in.readRegister(op.Register, cpu.SizeLong)
		address := uint32(int64(base) + int64(op.Displacement))
		if op.Index != nil {
			index := cpu.SignExtend(in.readRegister(op.Index.Register, op.Index.Size), op.Index.Size)
			address = uint32(int64(address) + int64(index))
		}
		return address, nil
	}
	return 0, runtimeErrorf(ErrIllegalAddressingMode, "operand %s has no address", op)
}

// push writes a longword below the stack pointer.
func (in *Interpreter) push(value uint32) error {
	sp := in.readRegister(cpu.SP, cpu.SizeLong) - 4
	if err := in.writeRegister(cpu.SP, sp, cpu.SizeLong); err != nil {
		return err
	}
	return in.writeMemory(sp, cpu.SizeLong, value)
}

// pop reads a longword from the stack pointer and releases it.
func (in *Interpreter) pop() (uint32, error) {
	sp := in.readRegister(cpu.SP, cpu.SizeLong)
	if uint64(sp)+4 > uint64(in.memory.Len()) {
		return 0, runtimeErrorf(ErrStackUnderflow, "stack pointer %#x has nothing to pop", sp)
	}
	value, err := in.readMemory(sp, cpu.SizeLong)
	if err != nil {
		return 0, err
	}
	if err := in.writeRegister(cpu.SP, sp+4, cpu.SizeLong); err != nil {
		return 0, err
	}
	return value, nil
}
