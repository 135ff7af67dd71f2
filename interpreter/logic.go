package interpreter

import (
	"github.com/Specy/s68k/compiler"
	"github.com/Specy/s68k/cpu"
)

// execBitwise covers and, or and eor.
func (in *Interpreter) execBitwise(ins *compiler.Instruction) error {
	src, err := in.operandValue(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	dst, err := in.locate(ins.Dst, ins.Size)
	if err != nil {
		return err
	}
	value, err := in.load(dst, ins.Size)
	if err != nil {
		return err
	}
	var result uint32
	switch ins.Kind {
	case compiler.OpAnd:
		result = value & src
	case compiler.OpOr:
		result = value | src
	default:
		result = value ^ src
	}
	result = cpu.ValueSized(result, ins.Size)
	if err := in.store(dst, ins.Size, result); err != nil {
		return err
	}
	in.setLogicFlags(result, ins.Size)
	return nil
}

func (in *Interpreter) execNot(ins *compiler.Instruction) error {
	loc, err := in.locate(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	value, err := in.load(loc, ins.Size)
	if err != nil {
		return err
	}
	result := cpu.ValueSized(^value, ins.Size)
	if err := in.store(loc, ins.Size, result); err != nil {
		return err
	}
	in.setLogicFlags(result, ins.Size)
	return nil
}

// execShift covers the three shift/rotate families. The count is taken
// modulo 64. C is the last bit shifted out, or clear for a zero count;
// shifts copy C into X, rotates leave X alone; V is set only by
// arithmetic shifts whose iterations flip the sign.
func (in *Interpreter) execShift(ins *compiler.Instruction) error {
	count, err := in.operandValue(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	count %= 64
	dst, err := in.locate(ins.Dst, ins.Size)
	if err != nil {
		return err
	}
	value, err := in.load(dst, ins.Size)
	if err != nil {
		return err
	}

	carry := false
	overflowed := false
	arithmetic := ins.Kind == compiler.OpArithShift
	if ins.Kind == compiler.OpRotate {
		for i := uint32(0); i < count; i++ {
			value, carry = cpu.RotateOnce(ins.Dir, value, ins.Size)
		}
	} else {
		previousSign := cpu.GetSign(value, ins.Size)
		for i := uint32(0); i < count; i++ {
			value, carry = cpu.ShiftOnce(ins.Dir, value, ins.Size, arithmetic)
			if cpu.GetSign(value, ins.Size) != previousSign {
				overflowed = true
			}
			previousSign = cpu.GetSign(value, ins.Size)
		}
	}
	// An arithmetic right shift past the operand width has consumed
	// every bit; the carry-out is then zero.
	if arithmetic && ins.Dir == cpu.ShiftRight && count >= ins.Size.Bits() {
		carry = false
	}
	if err := in.store(dst, ins.Size, value); err != nil {
		return err
	}

	in.setLogicFlags(value, ins.Size)
	f := in.flags.With(cpu.FlagC, count != 0 && carry)
	if arithmetic {
		f = f.With(cpu.FlagV, overflowed)
	}
	if ins.Kind != compiler.OpRotate && count != 0 {
		f = f.With(cpu.FlagX, carry)
	}
	in.setFlags(f)
	return nil
}

// execBitOp covers btst, bclr, bset and bchg. The bit number wraps at
// the operand width; only Z changes, reflecting the bit before any
// modification.
func (in *Interpreter) execBitOp(ins *compiler.Instruction) error {
	bit, err := in.operandValue(ins.Src, cpu.SizeByte)
	if err != nil {
		return err
	}
	loc, err := in.locate(ins.Dst, ins.Size)
	if err != nil {
		return err
	}
	value, err := in.load(loc, ins.Size)
	if err != nil {
		return err
	}
	mask := uint32(1) << (bit % ins.Size.Bits())
	in.setFlags(in.flags.With(cpu.FlagZ, value&mask == 0))

	switch ins.Kind {
	case compiler.OpBtst:
		return nil
	case compiler.OpBclr:
		value &^= mask
	case compiler.OpBset:
		value |= mask
	case compiler.OpBchg:
		value ^= mask
	}
	return in.store(loc, ins.Size, value)
}
