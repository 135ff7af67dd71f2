package interpreter

import (
	"github.com/Specy/s68k/compiler"
	"github.com/Specy/s68k/cpu"
)

// execAddSub covers add, addi, addq, sub, subi and subq. A destination
// address register turns the operation into its address-arithmetic
// variant, which leaves the flags alone.
func (in *Interpreter) execAddSub(ins *compiler.Instruction) error {
	if ins.Dst.Kind == compiler.OperandRegister && ins.Dst.Register.Kind == cpu.RegisterAddress {
		return in.execAddressArith(ins)
	}
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
	var carry, overflow bool
	if ins.Kind == compiler.OpAdd {
		result, carry = cpu.AddSized(value, src, ins.Size)
		overflow = cpu.AddOverflowed(value, src, result, ins.Size)
	} else {
		result, carry = cpu.SubSized(value, src, ins.Size)
		overflow = cpu.SubOverflowed(value, src, result, ins.Size)
	}
	if err := in.store(dst, ins.Size, result); err != nil {
		return err
	}
	in.setArithFlags(result, ins.Size, carry, overflow)
	return nil
}

// execAddressArith covers adda and suba: the source is sign-extended to
// a longword, the whole register is written, and no flag changes.
func (in *Interpreter) execAddressArith(ins *compiler.Instruction) error {
	src, err := in.operandValue(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	extended := uint32(cpu.SignExtend(src, ins.Size))
	dst := in.readRegister(ins.Dst.Register, cpu.SizeLong)
	var result uint32
	if ins.Kind == compiler.OpSuba || ins.Kind == compiler.OpSub {
		result = dst - extended
	} else {
		result = dst + extended
	}
	return in.writeRegister(ins.Dst.Register, result, cpu.SizeLong)
}

// execMul covers muls and mulu: word times word giving a longword.
func (in *Interpreter) execMul(ins *compiler.Instruction) error {
	src, err := in.operandValue(ins.Src, cpu.SizeWord)
	if err != nil {
		return err
	}
	dst := in.readRegister(ins.Dst.Register, cpu.SizeWord)
	var result uint32
	if ins.Signed {
		result = uint32(int32(int16(dst)) * int32(int16(src)))
	} else {
		result = dst * src
	}
	if err := in.writeRegister(ins.Dst.Register, result, cpu.SizeLong); err != nil {
		return err
	}
	in.setCompareFlags(result, cpu.SizeLong, false, false)
	return nil
}

// execDiv covers divs and divu: longword over word, quotient in the low
// word and remainder in the high word of the destination.
func (in *Interpreter) execDiv(ins *compiler.Instruction) error {
	src, err := in.operandValue(ins.Src, cpu.SizeWord)
	if err != nil {
		return err
	}
	if src == 0 {
		return runtimeErrorf(ErrDivisionByZero, "division by zero")
	}
	dst := in.readRegister(ins.Dst.Register, cpu.SizeLong)
	var quotient, remainder uint32
	var overflowed bool
	if ins.Signed {
		divisor := cpu.SignExtend(src, cpu.SizeWord)
		q := int32(dst) / divisor
		remainder = uint32(int32(dst) % divisor)
		quotient = uint32(q)
		overflowed = q > 0x7FFF || q < -0x8000
	} else {
		quotient = dst / src
		remainder = dst % src
		overflowed = quotient&0xFFFF0000 != 0
	}
	if overflowed {
		in.setFlags(in.flags.With(cpu.FlagC, false).With(cpu.FlagV, true))
		return runtimeErrorf(ErrDivisionOverflow, "quotient of %d/%d does not fit a word", dst, src)
	}
	if err := in.writeRegister(ins.Dst.Register, remainder<<16|quotient&0xFFFF, cpu.SizeLong); err != nil {
		return err
	}
	in.setCompareFlags(quotient, cpu.SizeWord, false, false)
	return nil
}

// execCmp subtracts without writing the destination; X is untouched.
func (in *Interpreter) execCmp(ins *compiler.Instruction) error {
	src, err := in.operandValue(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	dst, err := in.operandValue(ins.Dst, ins.Size)
	if err != nil {
		return err
	}
	result, carry := cpu.SubSized(dst, src, ins.Size)
	overflow := cpu.SubOverflowed(dst, src, result, ins.Size)
	in.setCompareFlags(result, ins.Size, carry, overflow)
	return nil
}

// execCmpa compares against an address register at longword width,
// sign-extending the source.
func (in *Interpreter) execCmpa(ins *compiler.Instruction) error {
	src, err := in.operandValue(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	extended := uint32(cpu.SignExtend(src, ins.Size))
	dst := in.readRegister(ins.Dst.Register, cpu.SizeLong)
	result, carry := cpu.SubSized(dst, extended, cpu.SizeLong)
	overflow := cpu.SubOverflowed(dst, extended, result, cpu.SizeLong)
	in.setCompareFlags(result, cpu.SizeLong, carry, overflow)
	return nil
}

func (in *Interpreter) execTst(ins *compiler.Instruction) error {
	value, err := in.operandValue(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	in.setLogicFlags(value, ins.Size)
	return nil
}

// execNeg computes 0 - operand in place.
func (in *Interpreter) execNeg(ins *compiler.Instruction) error {
	loc, err := in.locate(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	value, err := in.load(loc, ins.Size)
	if err != nil {
		return err
	}
	result, overflow := cpu.SubSignedSized(0, value, ins.Size)
	carry := cpu.ValueSized(result, ins.Size) != 0
	if err := in.store(loc, ins.Size, result); err != nil {
		return err
	}
	in.setArithFlags(result, ins.Size, carry, overflow)
	return nil
}
