package compiler_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Specy/s68k/compiler"
	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/lexer"
)

func compile(t *testing.T, src string) *compiler.Program {
	t.Helper()
	program, err := compiler.Compile(lexer.New().Lex(src))
	require.NoError(t, err)
	return program
}

func TestInstructionStride(t *testing.T) {
	program := compile(t, "nop\nnop\nmove.w d0,d1")
	require.Len(t, program.Instructions, 3)
	for i, line := range program.Instructions {
		assert.Equal(t, uint32(i*4), line.Address)
	}
	assert.Equal(t, uint32(8), program.FinalAddress)
	assert.Equal(t, uint32(0), program.StartAddress)
}

func TestDataLayout(t *testing.T) {
	assert := assert.New(t)

	program := compile(t, `
        org $1000
arr:    dc.w 1, 2, 3
buf:    ds.w 2
pat:    dcb.b 3, $aa
start:
        move.w arr+2, d0
`)
	assert.Equal(uint32(0x1000), program.Labels["arr"])
	assert.Equal(uint32(0x1006), program.Labels["buf"])
	assert.Equal(uint32(0x100A), program.Labels["pat"])
	assert.Equal(uint32(0), program.Labels["start"])

	require.Len(t, program.InitialMemory, 2)
	assert.Equal([]byte{0x00, 0x01, 0x00, 0x02, 0x00, 0x03}, program.InitialMemory[0].Bytes,
		"dc.w values are laid out big-endian")
	assert.Equal([]byte{0xAA, 0xAA, 0xAA}, program.InitialMemory[1].Bytes)

	move := program.Instructions[0].Instruction
	assert.Equal(compiler.OperandAbsolute, move.Src.Kind)
	assert.Equal(uint32(0x1002), move.Src.Value, "expressions over labels resolve")
}

func TestStringData(t *testing.T) {
	program := compile(t, "msg: dc.b 'hi!',0")
	require.Len(t, program.InitialMemory, 1)
	assert.Equal(t, []byte{'h', 'i', '!', 0}, program.InitialMemory[0].Bytes)
}

func TestEquConstants(t *testing.T) {
	program := compile(t, "size equ 4\nlen equ size*2\nmove.w #len, d0")
	ins := program.Instructions[0].Instruction
	assert.Equal(t, compiler.OperandImmediate, ins.Src.Kind)
	assert.Equal(t, uint32(8), ins.Src.Value)
	assert.NotContains(t, program.Labels, "size", "equ values are constants, not addresses")
}

func TestBranchTargets(t *testing.T) {
	program := compile(t, "start:\nnop\nbra start\nbeq start")
	bra := program.Instructions[1].Instruction
	require.Equal(t, compiler.OpBra, bra.Kind)
	assert.Equal(t, compiler.OperandAddress, bra.Src.Kind)
	assert.Equal(t, uint32(0), bra.Src.Value)

	beq := program.Instructions[2].Instruction
	require.Equal(t, compiler.OpBcc, beq.Kind)
	assert.Equal(t, cpu.CondEqual, beq.Cond)
}

func TestMoveqSignExtension(t *testing.T) {
	program := compile(t, "moveq #-1, d0")
	ins := program.Instructions[0].Instruction
	assert.Equal(t, compiler.OpMoveq, ins.Kind)
	assert.Equal(t, uint32(0xFFFFFFFF), ins.Src.Value)
	assert.Equal(t, cpu.SizeLong, ins.Size)
}

func TestDefaultSizes(t *testing.T) {
	tests := []struct {
		src  string
		size cpu.Size
	}{
		{"move d0,d1", cpu.SizeWord},
		{"add.l d0,d1", cpu.SizeLong},
		{"lea $1000, a0", cpu.SizeLong},
		{"seq d0", cpu.SizeByte},
		{"btst #1,d0", cpu.SizeLong},
		{"btst #1,(a0)", cpu.SizeByte},
	}
	for _, tc := range tests {
		program := compile(t, tc.src)
		assert.Equal(t, tc.size, program.Instructions[0].Instruction.Size, tc.src)
	}
}

func TestIndirectOperands(t *testing.T) {
	program := compile(t, "move.w -4(a6), d0\nmove.w 2(a0,d3.l), d1\nmove.l (a7)+, d2")
	first := program.Instructions[0].Instruction.Src
	assert.Equal(t, compiler.OperandIndirect, first.Kind)
	assert.Equal(t, int32(-4), first.Displacement)
	assert.Equal(t, cpu.AddrReg(6), first.Register)

	second := program.Instructions[1].Instruction.Src
	require.NotNil(t, second.Index)
	assert.Equal(t, cpu.DataReg(3), second.Index.Register)
	assert.Equal(t, cpu.SizeLong, second.Index.Size)

	third := program.Instructions[2].Instruction.Src
	assert.Equal(t, compiler.IndirectPost, third.Mode)
	assert.Equal(t, cpu.SP, third.Register)
}

func TestMovemDecoding(t *testing.T) {
	program := compile(t, "movem.w d0-d2/a0,-(sp)\nmovem.l (sp)+,d0-d2/a0")
	store := program.Instructions[0].Instruction
	assert.True(t, store.ToMemory)
	assert.Equal(t, []cpu.RegisterRef{cpu.DataReg(0), cpu.DataReg(1), cpu.DataReg(2), cpu.AddrReg(0)}, store.Regs)
	assert.Equal(t, compiler.IndirectPre, store.Dst.Mode)

	load := program.Instructions[1].Instruction
	assert.False(t, load.ToMemory)
	assert.Equal(t, compiler.IndirectPost, load.Src.Mode)
}

func TestStartLabel(t *testing.T) {
	program := compile(t, "init: dc.w 0\nnop\nstart:\nnop")
	assert.Equal(t, uint32(4), program.StartAddress, "execution begins at the start label")
}

func TestLabelBindsToNextInstruction(t *testing.T) {
	program := compile(t, "a:\nnop\nb:")
	assert.Equal(t, uint32(0), program.Labels["a"])
	assert.Equal(t, uint32(4), program.Labels["b"], "a trailing label points past the end")
}

func TestUnknownLabelFails(t *testing.T) {
	_, err := compiler.Compile(lexer.New().Lex("bra nowhere"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nowhere")
}
