package interpreter

import "github.com/Specy/s68k/cpu"

// MutationKind tags one recorded state change.
type MutationKind int

const (
	MutationWriteRegister MutationKind = iota
	MutationWriteMemory
	MutationWriteMemoryBytes
	MutationWriteFlags
	MutationWritePc
)

// Mutation records the inverse of a primitive state change. Register
// mutations keep the full 32-bit previous value so undo restores the
// untouched upper bits too.
type Mutation struct {
	Kind     MutationKind
	Register cpu.RegisterRef
	Size     cpu.Size
	Address  uint32
	Old      uint32
	OldBytes []byte
	OldFlags cpu.Flags
	OldPc    uint32
}

// ExecutionStep is the undo record of one executed instruction.
type ExecutionStep struct {
	PcBefore  uint32
	LineIndex int
	Mutations []Mutation
}

// record appends a mutation to the step.
func (s *ExecutionStep) record(m Mutation) {
	s.Mutations = append(s.Mutations, m)
}

// pushHistory appends a step to the bounded history, evicting the
// oldest entry when full.
func (in *Interpreter) pushHistory(step *ExecutionStep) {
	if !in.options.KeepHistory {
		return
	}
	if len(in.history) >= in.options.HistorySize {
		copy(in.history, in.history[1:])
		in.history = in.history[:len(in.history)-1]
	}
	in.history = append(in.history, step)
}

// CanUndo reports whether an execution step is available to revert.
func (in *Interpreter) CanUndo() bool {
	return len(in.history) > 0
}

// Undo reverts the most recent execution step, applying recorded
// mutations in reverse order. CPU, memory and flags return to the
// pre-step state; side effects already observed by the collaborator
// (printed text, consumed input) are not rolled back.
func (in *Interpreter) Undo() error {
	if len(in.history) == 0 {
		return runtimeErrorf(ErrIllegalInstruction, "no history to undo")
	}
	step := in.history[len(in.history)-1]
	in.history = in.history[:len(in.history)-1]
	for i := len(step.Mutations) - 1; i >= 0; i-- {
		m := step.Mutations[i]
		switch m.Kind {
		case MutationWriteRegister:
			in.register(m.Register).StoreLong(m.Old)
		case MutationWriteMemory:
			// The bounds were valid when recorded.
			_ = in.memory.WriteSize(m.Address, m.Size, m.Old)
		case MutationWriteMemoryBytes:
			_ = in.memory.WriteBytes(m.Address, m.OldBytes)
		case MutationWriteFlags:
			in.flags = m.OldFlags
		case MutationWritePc:
			in.pc = m.OldPc
		}
	}
	in.pc = step.PcBefore
	in.status = StatusRunning
	in.err = nil
	in.current = nil
	in.reachedBottom = false
	return nil
}

// GetUndoHistory returns up to k most recent steps, newest last.
func (in *Interpreter) GetUndoHistory(k int) []*ExecutionStep {
	if k > len(in.history) {
		k = len(in.history)
	}
	out := make([]*ExecutionStep, k)
	copy(out, in.history[len(in.history)-k:])
	return out
}

// GetPreviousMutations returns the mutation list of the most recent
// step, in application order.
func (in *Interpreter) GetPreviousMutations() []Mutation {
	if len(in.history) == 0 {
		return nil
	}
	return in.history[len(in.history)-1].Mutations
}
