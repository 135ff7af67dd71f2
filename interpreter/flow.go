package interpreter

import (
	"github.com/Specy/s68k/compiler"
	"github.com/Specy/s68k/cpu"
)

// execBranch covers bra and bcc: PC moves to the target when the
// condition holds, and simply advances otherwise.
func (in *Interpreter) execBranch(ins *compiler.Instruction) error {
	if ins.Kind == compiler.OpBcc && !ins.Cond.Holds(in.flags) {
		return nil
	}
	in.setPc(ins.Src.Value)
	return nil
}

// execCall covers bsr and jsr: the address of the next instruction is
// pushed as a longword, then PC moves to the subroutine.
func (in *Interpreter) execCall(ins *compiler.Instruction) error {
	target, err := in.effectiveAddress(ins.Src)
	if err != nil {
		return err
	}
	if err := in.push(in.pc + 4); err != nil {
		return err
	}
	in.setPc(target)
	in.callStack = append(in.callStack, CallFrame{
		Label:   in.labelsByAddress[target],
		Address: target,
		SP:      in.readRegister(cpu.SP, cpu.SizeLong),
	})
	return nil
}

func (in *Interpreter) execJmp(ins *compiler.Instruction) error {
	target, err := in.effectiveAddress(ins.Src)
	if err != nil {
		return err
	}
	in.setPc(target)
	return nil
}

func (in *Interpreter) execRts(_ *compiler.Instruction) error {
	target, err := in.pop()
	if err != nil {
		return err
	}
	in.setPc(target)
	if n := len(in.callStack); n > 0 {
		in.callStack = in.callStack[:n-1]
	}
	return nil
}

// execDbcc is the decrement-and-branch loop primitive: when the
// condition fails, the counter word decrements and the branch is taken
// until it hits -1.
func (in *Interpreter) execDbcc(ins *compiler.Instruction) error {
	if ins.Cond.Holds(in.flags) {
		return nil
	}
	counter := in.readRegister(ins.Src.Register, cpu.SizeWord)
	counter = cpu.ValueSized(counter-1, cpu.SizeWord)
	if err := in.writeRegister(ins.Src.Register, counter, cpu.SizeWord); err != nil {
		return err
	}
	if counter != 0xFFFF {
		in.setPc(ins.Dst.Value)
	}
	return nil
}

// execScc stores all ones or all zeros in the destination byte.
func (in *Interpreter) execScc(ins *compiler.Instruction) error {
	loc, err := in.locate(ins.Src, cpu.SizeByte)
	if err != nil {
		return err
	}
	value := uint32(0x00)
	if ins.Cond.Holds(in.flags) {
		value = 0xFF
	}
	return in.store(loc, cpu.SizeByte, value)
}
