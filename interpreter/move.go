package interpreter

import (
	"github.com/Specy/s68k/compiler"
	"github.com/Specy/s68k/cpu"
)

// execMove covers move and moveq. A destination address register makes
// it movea: the value is sign-extended and the flags stay put.
func (in *Interpreter) execMove(ins *compiler.Instruction) error {
	value, err := in.operandValue(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	if ins.Dst.Kind == compiler.OperandRegister && ins.Dst.Register.Kind == cpu.RegisterAddress {
		extended := uint32(cpu.SignExtend(value, ins.Size))
		return in.writeRegister(ins.Dst.Register, extended, cpu.SizeLong)
	}
	in.setLogicFlags(value, ins.Size)
	dst, err := in.locate(ins.Dst, ins.Size)
	if err != nil {
		return err
	}
	return in.store(dst, ins.Size, value)
}

func (in *Interpreter) execClr(ins *compiler.Instruction) error {
	loc, err := in.locate(ins.Src, ins.Size)
	if err != nil {
		return err
	}
	if err := in.store(loc, ins.Size, 0); err != nil {
		return err
	}
	in.setLogicFlags(0, ins.Size)
	return nil
}

func (in *Interpreter) execExg(ins *compiler.Instruction) error {
	first := in.readRegister(ins.Src.Register, cpu.SizeLong)
	second := in.readRegister(ins.Dst.Register, cpu.SizeLong)
	if err := in.writeRegister(ins.Src.Register, second, cpu.SizeLong); err != nil {
		return err
	}
	return in.writeRegister(ins.Dst.Register, first, cpu.SizeLong)
}

// execExt sign-extends byte to word (ext.w) or word to long (ext.l).
func (in *Interpreter) execExt(ins *compiler.Instruction) error {
	value := in.readRegister(ins.Src.Register, cpu.SizeLong)
	var result uint32
	if ins.Size == cpu.SizeWord {
		result = (value &^ 0xFFFF) | uint32(uint16(int16(int8(value))))
	} else {
		result = uint32(cpu.SignExtend(value, cpu.SizeWord))
	}
	if err := in.writeRegister(ins.Src.Register, result, cpu.SizeLong); err != nil {
		return err
	}
	in.setLogicFlags(result, ins.Size)
	return nil
}

func (in *Interpreter) execSwap(ins *compiler.Instruction) error {
	value := in.readRegister(ins.Src.Register, cpu.SizeLong)
	result := value<<16 | value>>16
	if err := in.writeRegister(ins.Src.Register, result, cpu.SizeLong); err != nil {
		return err
	}
	in.setLogicFlags(result, cpu.SizeLong)
	return nil
}

func (in *Interpreter) execLea(ins *compiler.Instruction) error {
	address, err := in.effectiveAddress(ins.Src)
	if err != nil {
		return err
	}
	return in.writeRegister(ins.Dst.Register, address, cpu.SizeLong)
}

func (in *Interpreter) execPea(ins *compiler.Instruction) error {
	address, err := in.effectiveAddress(ins.Src)
	if err != nil {
		return err
	}
	return in.push(address)
}

// execLink pushes the frame register, points it at the new frame, and
// extends the stack by the (usually negative) displacement.
func (in *Interpreter) execLink(ins *compiler.Instruction) error {
	reg := ins.Src.Register
	if err := in.push(in.readRegister(reg, cpu.SizeLong)); err != nil {
		return err
	}
	sp := in.readRegister(cpu.SP, cpu.SizeLong)
	if err := in.writeRegister(reg, sp, cpu.SizeLong); err != nil {
		return err
	}
	displacement := cpu.SignExtend(ins.Dst.Value, cpu.SizeWord)
	return in.writeRegister(cpu.SP, uint32(int64(sp)+int64(displacement)), cpu.SizeLong)
}

// execUnlk tears down the frame built by link.
func (in *Interpreter) execUnlk(ins *compiler.Instruction) error {
	reg := ins.Src.Register
	frame := in.readRegister(reg, cpu.SizeLong)
	if err := in.writeRegister(cpu.SP, frame, cpu.SizeLong); err != nil {
		return err
	}
	value, err := in.pop()
	if err != nil {
		return err
	}
	return in.writeRegister(reg, value, cpu.SizeLong)
}

// execMovem transfers the register list to or from memory. Stores
// through -(An) walk the list backwards, A7 down to D0; loads
// sign-extend word transfers into the full register.
func (in *Interpreter) execMovem(ins *compiler.Instruction) error {
	width := ins.Size.Bytes()
	if ins.ToMemory {
		ea := ins.Dst
		if ea.Kind == compiler.OperandIndirect && ea.Mode == compiler.IndirectPre {
			base := in.readRegister(ea.Register, cpu.SizeLong)
			for i := len(ins.Regs) - 1; i >= 0; i-- {
				base -= width
				if err := in.writeMemory(base, ins.Size, in.readRegister(ins.Regs[i], ins.Size)); err != nil {
					return err
				}
			}
			return in.writeRegister(ea.Register, base, cpu.SizeLong)
		}
		address, err := in.effectiveAddress(ea)
		if err != nil {
			return err
		}
		for _, reg := range ins.Regs {
			if err := in.writeMemory(address, ins.Size, in.readRegister(reg, ins.Size)); err != nil {
				return err
			}
			address += width
		}
		return nil
	}

	ea := ins.Src
	address := uint32(0)
	postIncrement := ea.Kind == compiler.OperandIndirect && ea.Mode == compiler.IndirectPost
	if postIncrement {
		address = in.readRegister(ea.Register, cpu.SizeLong)
	} else {
		var err error
		address, err = in.effectiveAddress(ea)
		if err != nil {
			return err
		}
	}
	for _, reg := range ins.Regs {
		value, err := in.readMemory(address, ins.Size)
		if err != nil {
			return err
		}
		if ins.Size == cpu.SizeWord {
			value = uint32(cpu.SignExtend(value, cpu.SizeWord))
		}
		if err := in.writeRegister(reg, value, cpu.SizeLong); err != nil {
			return err
		}
		address += width
	}
	if postIncrement {
		return in.writeRegister(ea.Register, address, cpu.SizeLong)
	}
	return nil
}
