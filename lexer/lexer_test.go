package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Specy/s68k/cpu"
)

func lexOne(t *testing.T, src string) Statement {
	t.Helper()
	lines := New().Lex(src)
	require.Len(t, lines, 1)
	return lines[0].Parsed
}

func TestLineClassification(t *testing.T) {
	tests := []struct {
		name string
		src  string
		kind LineKind
	}{
		{"empty", "", LineEmpty},
		{"blank", "   \t ", LineEmpty},
		{"comment_semi", "; a comment", LineComment},
		{"comment_star", "* a comment", LineComment},
		{"label", "loop:", LineLabel},
		{"label_directive", "arr: dc.w 1,2", LineLabel},
		{"directive_org", "org $1000", LineDirective},
		{"directive_equ", "size equ 5", LineDirective},
		{"instruction", "move.w d0,d1", LineInstruction},
		{"instruction_no_ops", "rts", LineInstruction},
		{"unknown", "123abc", LineUnknown},
	}
	for _, tc := range tests {
		st := lexOne(t, tc.src)
		assert.Equal(t, tc.kind, st.Kind, tc.name)
	}
}

func TestInstructionParts(t *testing.T) {
	assert := assert.New(t)

	st := lexOne(t, "MOVE.L #$1, D0")
	assert.Equal("move", st.Name, "mnemonics are lowercased")
	assert.Equal(cpu.SizeLong, st.Size)
	require.Len(t, st.Operands, 2)
	assert.Equal(OperandImmediate, st.Operands[0].Kind)
	assert.Equal("$1", st.Operands[0].Value)
	assert.Equal(OperandRegister, st.Operands[1].Kind)
	assert.Equal("d0", st.Operands[1].Value)

	st = lexOne(t, "move d0,d1")
	assert.Equal(cpu.SizeUnspecified, st.Size)

	st = lexOne(t, "move.x d0,d1")
	assert.Equal(cpu.SizeUnknown, st.Size, "bad suffixes are kept for the checker")
}

func TestOperandKinds(t *testing.T) {
	tests := []struct {
		src  string
		kind OperandKind
	}{
		{"d3", OperandRegister},
		{"a6", OperandRegister},
		{"sp", OperandRegister},
		{"#42", OperandImmediate},
		{"#'x'", OperandImmediate},
		{"(a0)", OperandIndirect},
		{"8(a0)", OperandIndirect},
		{"-4(a6)", OperandIndirect},
		{"(a0)+", OperandPostIndirect},
		{"-(a7)", OperandPreIndirect},
		{"4(a0,d3.w)", OperandIndirectIndex},
		{"$1000", OperandAbsolute},
		{"arr+2", OperandAbsolute},
		{"loop", OperandLabel},
		{")bad(", OperandOther},
	}
	for _, tc := range tests {
		st := lexOne(t, "tst.w "+tc.src)
		require.Len(t, st.Operands, 1, tc.src)
		assert.Equal(t, tc.kind, st.Operands[0].Kind, tc.src)
	}
}

func TestIndirectTrees(t *testing.T) {
	assert := assert.New(t)

	st := lexOne(t, "move.w -4(a6),d0")
	op := st.Operands[0]
	assert.Equal("-4", op.Offset)
	require.Len(t, op.Operands, 1)
	assert.Equal(RegisterAddress, op.Operands[0].RegisterType)

	st = lexOne(t, "move.w 4(a0, d3.l),d0")
	op = st.Operands[0]
	assert.Equal(OperandIndirectIndex, op.Kind)
	require.Len(t, op.Operands, 2)
	assert.Equal("a0", op.Operands[0].Value)
	assert.Equal("d3", op.Operands[1].Value)
	assert.Equal(cpu.SizeLong, op.Operands[1].Size)

	st = lexOne(t, "move.l -(sp),d0")
	op = st.Operands[0]
	assert.Equal(OperandPreIndirect, op.Kind)
	assert.Equal(RegisterSP, op.Operands[0].RegisterType)
}

func TestCommaInsideQuotesAndParens(t *testing.T) {
	st := lexOne(t, "arr: dc.b 'a,b',1")
	require.NotNil(t, st.Directive)
	assert.Equal(t, []string{"'a,b'", "1"}, st.Directive.Args)

	st = lexOne(t, "move.w 2(a0,d1.w),d2")
	require.Len(t, st.Operands, 2, "commas inside parentheses do not split")
}

func TestComments(t *testing.T) {
	st := lexOne(t, "move.w d0,d1 ; trailing")
	assert.Equal(t, LineInstruction, st.Kind)
	require.Len(t, st.Operands, 2)

	st = lexOne(t, "move.w d0,d1 * trailing")
	require.Len(t, st.Operands, 2, "whitespace-led star starts a comment")

	st = lexOne(t, "dc.b ';'")
	assert.Equal(t, LineDirective, st.Kind)
	assert.Equal(t, []string{"';'"}, st.Args, "semicolons inside quotes survive")
}

func TestLabelDirective(t *testing.T) {
	assert := assert.New(t)

	st := lexOne(t, "arr: dc.w 1, 2, 3")
	assert.Equal(LineLabel, st.Kind)
	assert.Equal("arr", st.Name)
	require.NotNil(t, st.Directive)
	assert.Equal("dc", st.Directive.Name)
	assert.Equal(cpu.SizeWord, st.Directive.Size)
	assert.Equal([]string{"1", "2", "3"}, st.Directive.Args)

	st = lexOne(t, "value equ $1234")
	assert.Equal(LineDirective, st.Kind)
	assert.Equal("equ", st.Name)
	assert.Equal([]string{"value", "$1234"}, st.Args)
}

func TestLineIndexes(t *testing.T) {
	lines := New().Lex("nop\n\nmove.w d0,d1")
	require.Len(t, lines, 3)
	for i, line := range lines {
		assert.Equal(t, i, line.Index)
	}
	assert.Equal(t, "move.w d0,d1", lines[2].Raw)
}
