package interpreter

import (
	"time"

	"github.com/Specy/s68k/compiler"
	"github.com/Specy/s68k/cpu"
)

// DefaultHistorySize bounds the undo ring buffer unless configured.
const DefaultHistorySize = 1024

// Options configures an interpreter instance.
type Options struct {
	// KeepHistory enables the reversible mutation history.
	KeepHistory bool
	// HistorySize bounds the history ring buffer.
	HistorySize int
}

// CallFrame is one observational entry of the logical call stack.
type CallFrame struct {
	// Label is the target's label name, when one resolves to it.
	Label string
	// Address is the subroutine entry address.
	Address uint32
	// SP is the stack pointer after the return address was pushed.
	SP uint32
}

// Interpreter executes a compiled program against its own CPU, memory,
// history and interrupt slot. Instances are single-threaded; step and
// run must not be called while an interrupt is pending.
type Interpreter struct {
	program *compiler.Program
	memory  *cpu.Memory
	d       [8]cpu.Register
	a       [8]cpu.Register
	flags   cpu.Flags
	pc      uint32

	status        Status
	err           *RuntimeError
	current       *Interrupt
	reachedBottom bool

	options  Options
	history  []*ExecutionStep
	// recording points at the step collecting mutations: the open step
	// during execution, or the trap's step while its answer applies.
	recording *ExecutionStep
	pcSet     bool

	callStack       []CallFrame
	labelsByAddress map[uint32]string

	start time.Time
	// now returns the monotonic millisecond counter for GetTime.
	// Tests may replace it.
	now func() uint32
}

// New builds an interpreter for the program with the given memory size.
func New(program *compiler.Program, memorySize uint32, options Options) (*Interpreter, error) {
	if options.HistorySize <= 0 {
		options.HistorySize = DefaultHistorySize
	}
	in := &Interpreter{
		program:         program,
		memory:          cpu.NewMemory(int(memorySize)),
		pc:              program.StartAddress,
		status:          StatusRunning,
		options:         options,
		labelsByAddress: make(map[uint32]string, len(program.Labels)),
	}
	in.start = time.Now()
	in.now = func() uint32 {
		return uint32(time.Since(in.start).Milliseconds())
	}
	for name, address := range program.Labels {
		in.labelsByAddress[address] = name
	}
	// SP begins at the top of memory, kept even.
	in.a[7].StoreLong(memorySize &^ 1)
	for _, block := range program.InitialMemory {
		if err := in.memory.WriteBytes(block.Address, block.Bytes); err != nil {
			return nil, err
		}
	}
	if len(program.Instructions) == 0 {
		in.status = StatusTerminated
		in.reachedBottom = true
	}
	return in, nil
}

func (in *Interpreter) register(ref cpu.RegisterRef) *cpu.Register {
	if ref.Kind == cpu.RegisterData {
		return &in.d[ref.Num]
	}
	return &in.a[ref.Num]
}

// readRegister reads a register at the given width.
func (in *Interpreter) readRegister(ref cpu.RegisterRef, size cpu.Size) uint32 {
	return in.register(ref).GetSize(size)
}

// writeRegister is the recorded register write primitive. Word writes
// to address registers sign-extend to 32 bits; byte writes to address
// registers are illegal.
func (in *Interpreter) writeRegister(ref cpu.RegisterRef, value uint32, size cpu.Size) error {
	reg := in.register(ref)
	if ref.Kind == cpu.RegisterAddress {
		switch size {
		case cpu.SizeByte:
			return runtimeErrorf(ErrIllegalAddressingMode, "byte write to address register %s", ref)
		case cpu.SizeWord:
			value = uint32(cpu.SignExtend(value, cpu.SizeWord))
			size = cpu.SizeLong
		}
	}
	in.record(Mutation{Kind: MutationWriteRegister, Register: ref, Size: size, Old: reg.GetLong()})
	reg.StoreSize(size, value)
	return nil
}

// writeMemory is the recorded memory write primitive.
func (in *Interpreter) writeMemory(address uint32, size cpu.Size, value uint32) error {
	old, err := in.memory.ReadSize(address, size)
	if err != nil {
		return in.addressFault(err)
	}
	in.record(Mutation{Kind: MutationWriteMemory, Address: address, Size: size, Old: old})
	return in.memory.WriteSize(address, size, value)
}

// writeMemoryBytes is the recorded bulk write primitive.
func (in *Interpreter) writeMemoryBytes(address uint32, b []byte) error {
	old, err := in.memory.ReadBytes(address, uint32(len(b)))
	if err != nil {
		return in.addressFault(err)
	}
	in.record(Mutation{Kind: MutationWriteMemoryBytes, Address: address, OldBytes: old})
	return in.memory.WriteBytes(address, b)
}

// setFlags is the recorded CCR write primitive.
func (in *Interpreter) setFlags(f cpu.Flags) {
	if f == in.flags {
		return
	}
	in.record(Mutation{Kind: MutationWriteFlags, OldFlags: in.flags})
	in.flags = f
}

// setPc is the recorded explicit PC write used by control transfer.
func (in *Interpreter) setPc(target uint32) {
	in.record(Mutation{Kind: MutationWritePc, OldPc: in.pc})
	in.pc = target
	in.pcSet = true
}

func (in *Interpreter) record(m Mutation) {
	if in.recording != nil && in.options.KeepHistory {
		in.recording.record(m)
	}
}

func (in *Interpreter) addressFault(err error) *RuntimeError {
	return runtimeErrorf(ErrAddressOutOfBounds, "%s", err)
}

// readMemory wraps reads so bounds violations carry the runtime error
// taxonomy.
func (in *Interpreter) readMemory(address uint32, size cpu.Size) (uint32, error) {
	v, err := in.memory.ReadSize(address, size)
	if err != nil {
		return 0, in.addressFault(err)
	}
	return v, nil
}

// Step executes a single instruction. It returns the executed line and
// the resulting status; runtime faults transition the interpreter to
// StatusTerminatedWithException and are returned.
func (in *Interpreter) Step() (*compiler.InstructionLine, Status, error) {
	if in.status == StatusInterrupt {
		return nil, in.status, runtimeErrorf(ErrUnansweredInterrupt, "cannot step while an interrupt is pending")
	}
	if in.status.Terminal() {
		return nil, in.status, nil
	}
	line, ok := in.program.InstructionAt(in.pc)
	if !ok {
		if in.pc > in.program.FinalAddress {
			in.status = StatusTerminated
			in.reachedBottom = true
			return nil, in.status, nil
		}
		fault := runtimeErrorf(ErrIllegalInstruction, "no instruction at address %#x", in.pc)
		in.fail(fault)
		return nil, in.status, fault
	}

	step := &ExecutionStep{PcBefore: in.pc, LineIndex: line.Line.Index}
	in.recording = step
	in.pcSet = false
	err := in.execute(&line.Instruction)
	if !in.pcSet {
		in.pc += 4
	}
	in.recording = nil
	in.pushHistory(step)

	if err != nil {
		fault, ok := err.(*RuntimeError)
		if !ok {
			fault = runtimeErrorf(ErrIllegalInstruction, "%s", err)
		}
		in.fail(fault)
		return line, in.status, fault
	}
	if in.status == StatusRunning && in.pc > in.program.FinalAddress {
		in.status = StatusTerminated
		in.reachedBottom = true
	}
	return line, in.status, nil
}

func (in *Interpreter) fail(fault *RuntimeError) {
	in.err = fault
	in.status = StatusTerminatedWithException
}

// Run steps until the program leaves StatusRunning.
func (in *Interpreter) Run() (Status, error) {
	for in.status == StatusRunning {
		if _, _, err := in.Step(); err != nil {
			return in.status, err
		}
	}
	return in.status, nil
}

// RunWithLimit steps at most limit times, returning StatusRunning if
// the limit was reached with the program still live.
func (in *Interpreter) RunWithLimit(limit int) (Status, error) {
	for i := 0; i < limit && in.status == StatusRunning; i++ {
		if _, _, err := in.Step(); err != nil {
			return in.status, err
		}
	}
	return in.status, nil
}

// RunWithBreakpoints runs until a breakpoint address is about to
// execute, the optional limit is exhausted, or the program stops. The
// breakpoint check is skipped for the very first step so execution can
// resume from a breakpoint.
func (in *Interpreter) RunWithBreakpoints(breakpoints []uint32, limit int) (Status, error) {
	set := make(map[uint32]bool, len(breakpoints))
	for _, b := range breakpoints {
		set[b] = true
	}
	for i := 0; in.status == StatusRunning; i++ {
		if limit > 0 && i >= limit {
			break
		}
		if i > 0 && set[in.pc] {
			break
		}
		if _, _, err := in.Step(); err != nil {
			return in.status, err
		}
	}
	return in.status, nil
}
