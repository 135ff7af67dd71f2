package interpreter

import (
	"github.com/Specy/s68k/compiler"
	"github.com/Specy/s68k/cpu"
)

// execute dispatches one decoded instruction. Mutations flow through
// the recorded primitives; the history policy stays invisible here.
func (in *Interpreter) execute(ins *compiler.Instruction) error {
	switch ins.Kind {
	case compiler.OpMove, compiler.OpMoveq:
		return in.execMove(ins)
	case compiler.OpClr:
		return in.execClr(ins)
	case compiler.OpExg:
		return in.execExg(ins)
	case compiler.OpExt:
		return in.execExt(ins)
	case compiler.OpSwap:
		return in.execSwap(ins)
	case compiler.OpAdd, compiler.OpSub:
		return in.execAddSub(ins)
	case compiler.OpAdda, compiler.OpSuba:
		return in.execAddressArith(ins)
	case compiler.OpMul:
		return in.execMul(ins)
	case compiler.OpDiv:
		return in.execDiv(ins)
	case compiler.OpCmp:
		return in.execCmp(ins)
	case compiler.OpCmpa:
		return in.execCmpa(ins)
	case compiler.OpTst:
		return in.execTst(ins)
	case compiler.OpNeg:
		return in.execNeg(ins)
	case compiler.OpAnd, compiler.OpOr, compiler.OpEor:
		return in.execBitwise(ins)
	case compiler.OpNot:
		return in.execNot(ins)
	case compiler.OpLogicalShift, compiler.OpArithShift, compiler.OpRotate:
		return in.execShift(ins)
	case compiler.OpBtst, compiler.OpBclr, compiler.OpBset, compiler.OpBchg:
		return in.execBitOp(ins)
	case compiler.OpBra, compiler.OpBcc:
		return in.execBranch(ins)
	case compiler.OpBsr, compiler.OpJsr:
		return in.execCall(ins)
	case compiler.OpJmp:
		return in.execJmp(ins)
	case compiler.OpRts:
		return in.execRts(ins)
	case compiler.OpDbcc:
		return in.execDbcc(ins)
	case compiler.OpScc:
		return in.execScc(ins)
	case compiler.OpLea:
		return in.execLea(ins)
	case compiler.OpPea:
		return in.execPea(ins)
	case compiler.OpLink:
		return in.execLink(ins)
	case compiler.OpUnlk:
		return in.execUnlk(ins)
	case compiler.OpMovem:
		return in.execMovem(ins)
	case compiler.OpTrap:
		return in.execTrap(ins)
	case compiler.OpNop:
		return nil
	}
	return runtimeErrorf(ErrIllegalInstruction, "unimplemented instruction %s", ins)
}

// setLogicFlags sets N and Z from the result and clears V and C. The
// extend flag is untouched, per the move/logic family.
func (in *Interpreter) setLogicFlags(value uint32, size cpu.Size) {
	f := in.flags &^ (cpu.FlagN | cpu.FlagZ | cpu.FlagV | cpu.FlagC)
	if cpu.GetSign(value, size) {
		f |= cpu.FlagN
	}
	if cpu.ValueSized(value, size) == 0 {
		f |= cpu.FlagZ
	}
	in.setFlags(f)
}

// setCompareFlags sets N, Z, V and C, leaving X untouched.
func (in *Interpreter) setCompareFlags(value uint32, size cpu.Size, carry, overflow bool) {
	f := in.flags &^ (cpu.FlagN | cpu.FlagZ | cpu.FlagV | cpu.FlagC)
	if cpu.GetSign(value, size) {
		f |= cpu.FlagN
	}
	if cpu.ValueSized(value, size) == 0 {
		f |= cpu.FlagZ
	}
	if carry {
		f |= cpu.FlagC
	}
	if overflow {
		f |= cpu.FlagV
	}
	in.setFlags(f)
}

// setArithFlags is setCompareFlags plus X = C, for add/sub/neg.
func (in *Interpreter) setArithFlags(value uint32, size cpu.Size, carry, overflow bool) {
	in.setCompareFlags(value, size, carry, overflow)
	in.setFlags(in.flags.With(cpu.FlagX, carry))
}
