package interpreter

import (
	"github.com/Specy/s68k/compiler"
	"github.com/Specy/s68k/cpu"
)

// execTrap handles trap #15, the single supported software interrupt.
// D0 selects the operation; D1 and A1 carry its arguments. The
// interpreter pauses in StatusInterrupt until the collaborator answers,
// except for Terminate which stops immediately.
func (in *Interpreter) execTrap(ins *compiler.Instruction) error {
	if ins.Src.Value != 15 {
		return runtimeErrorf(ErrIllegalInstruction, "unsupported trap #%d", ins.Src.Value)
	}
	code := InterruptKind(in.readRegister(cpu.DataReg(0), cpu.SizeLong))
	switch code {
	case InterruptDisplayStringWithCRLF, InterruptDisplayStringWithoutCRLF:
		length := in.readRegister(cpu.DataReg(1), cpu.SizeWord)
		address := in.readRegister(cpu.AddrReg(1), cpu.SizeLong)
		text, err := in.memory.ReadBytes(address, length)
		if err != nil {
			return in.addressFault(err)
		}
		in.raise(&Interrupt{Kind: code, Text: string(text)})
	case InterruptDisplayNumber:
		in.raise(&Interrupt{Kind: code, Value: int32(in.readRegister(cpu.DataReg(1), cpu.SizeLong))})
	case InterruptDisplayChar:
		in.raise(&Interrupt{Kind: code, Char: rune(in.readRegister(cpu.DataReg(1), cpu.SizeByte))})
	case InterruptReadKeyboardString, InterruptReadNumber, InterruptReadChar, InterruptGetTime:
		in.raise(&Interrupt{Kind: code})
	case InterruptTerminate:
		in.status = StatusTerminated
	default:
		return runtimeErrorf(ErrIllegalInstruction, "unknown interrupt code %d", code)
	}
	return nil
}

func (in *Interpreter) raise(interrupt *Interrupt) {
	in.current = interrupt
	in.status = StatusInterrupt
}

// GetCurrentInterrupt returns the pending interrupt, or nil.
func (in *Interpreter) GetCurrentInterrupt() *Interrupt {
	return in.current
}

// AnswerInterrupt applies the collaborator's answer and resumes
// execution. The answer's kind must match the pending interrupt; a
// mismatch or an answer with nothing pending is reported without
// terminating, and the interrupt stays pending.
func (in *Interpreter) AnswerInterrupt(result InterruptResult) error {
	if in.status != StatusInterrupt || in.current == nil {
		return runtimeErrorf(ErrInterruptMismatch, "no interrupt to answer")
	}
	if result.Kind != in.current.Kind {
		return runtimeErrorf(ErrInterruptMismatch,
			"expected a %s answer, received %s", in.current.Kind, result.Kind)
	}

	// Answer side effects belong to the trap's execution step, so undo
	// of that step reverts them too.
	if n := len(in.history); n > 0 {
		in.recording = in.history[n-1]
	}
	defer func() { in.recording = nil }()

	switch result.Kind {
	case InterruptReadNumber:
		if err := in.writeRegister(cpu.DataReg(1), uint32(result.Number), cpu.SizeLong); err != nil {
			return err
		}
	case InterruptReadChar:
		if err := in.writeRegister(cpu.DataReg(1), uint32(result.Char), cpu.SizeByte); err != nil {
			return err
		}
	case InterruptReadKeyboardString:
		text := []byte(result.Text)
		if len(text) > readStringLimit {
			text = text[:readStringLimit]
		}
		address := in.readRegister(cpu.AddrReg(1), cpu.SizeLong)
		if len(text) > 0 {
			if err := in.writeMemoryBytes(address, text); err != nil {
				return err
			}
		}
		if err := in.writeRegister(cpu.DataReg(1), uint32(len(text)), cpu.SizeWord); err != nil {
			return err
		}
	case InterruptGetTime:
		if err := in.writeRegister(cpu.DataReg(1), in.now(), cpu.SizeLong); err != nil {
			return err
		}
	}

	in.current = nil
	in.status = StatusRunning
	return nil
}
