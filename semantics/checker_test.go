package semantics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Specy/s68k/lexer"
	"github.com/Specy/s68k/semantics"
)

func check(src string) []*semantics.Error {
	return semantics.Check(lexer.New().Lex(src))
}

func TestValidProgram(t *testing.T) {
	errors := check(`
* a small but representative program
        org $1000
arr:    dc.w 1, 2, 3
count   equ 3
start:
        lea arr, a0
        move.w #0, d0
        moveq #2, d1
loop:
        add.w (a0)+, d0
        dbra d1, loop
        muls #2, d0
        rts
`)
	assert.Empty(t, errors)
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code semantics.Code
	}{
		{"unknown_mnemonic", "frobnicate d0", semantics.CodeUnknownMnemonic},
		{"wrong_arity", "move.w d0", semantics.CodeWrongArity},
		{"too_many", "rts d0", semantics.CodeWrongArity},
		{"bad_size", "move.q d0,d1", semantics.CodeUnsupportedSize},
		{"sized_unsized", "rts.w", semantics.CodeUnsupportedSize},
		{"byte_adda", "adda.b #1,a0", semantics.CodeUnsupportedSize},
		{"immediate_dest", "move.w d0,#1", semantics.CodeInvalidAddressingMode},
		{"areg_logic", "and.w a0,d0", semantics.CodeInvalidAddressingMode},
		{"mul_dest", "muls d0,a1", semantics.CodeInvalidAddressingMode},
		{"swap_addr", "swap a2", semantics.CodeInvalidAddressingMode},
		{"branch_reg", "beq d0", semantics.CodeInvalidAddressingMode},
		{"unresolved", "bra nowhere", semantics.CodeUnresolvedLabel},
		{"unresolved_expr", "move.w arr+2,d0", semantics.CodeUnresolvedLabel},
		{"malformed", "move.w ]junk[,d0", semantics.CodeMalformedOperand},
		{"pre_on_data", "move.w -(d0),d1", semantics.CodeMalformedOperand},
		{"moveq_range", "moveq #200,d0", semantics.CodeImmediateOutOfRange},
		{"addq_range", "addq #9,d0", semantics.CodeImmediateOutOfRange},
		{"addq_zero", "addq #0,d0", semantics.CodeImmediateOutOfRange},
		{"trap_range", "trap #16", semantics.CodeImmediateOutOfRange},
		{"imm_too_wide", "move.b #300,d0", semantics.CodeImmediateOutOfRange},
		{"org_args", "org $10,$20", semantics.CodeDirectiveMisuse},
		{"ds_args", "x: ds.w", semantics.CodeDirectiveMisuse},
		{"dcb_args", "x: dcb.w 4", semantics.CodeDirectiveMisuse},
		{"bad_expr", "move.w #1+,d0", semantics.CodeExpressionError},
	}
	for _, tc := range tests {
		errors := check(tc.src)
		require.NotEmpty(t, errors, tc.name)
		assert.Equal(t, tc.code, errors[0].Code, "%s: %s", tc.name, errors[0].Message)
	}
}

func TestDuplicateLabel(t *testing.T) {
	errors := check("a:\nnop\na:\n")
	require.NotEmpty(t, errors)
	assert.Equal(t, semantics.CodeDuplicateLabel, errors[0].Code)
}

func TestForwardReferences(t *testing.T) {
	errors := check("bra done\ndone:\nrts")
	assert.Empty(t, errors, "forward label references are allowed")
}

func TestErrorAccumulation(t *testing.T) {
	errors := check("bad1 d0\nmove.w d0\nbra nowhere")
	assert.Len(t, errors, 3, "checking continues after each error")
	for _, e := range errors {
		assert.NotEmpty(t, e.Error())
	}
}

func TestErrorCarriesLine(t *testing.T) {
	errors := check("nop\nmove.w d0")
	require.Len(t, errors, 1)
	assert.Equal(t, 1, errors[0].Line.Index)
	assert.Contains(t, errors[0].Error(), "line 2")
}

func TestMovemShapes(t *testing.T) {
	assert.Empty(t, check("movem.w d0-d3/a0,-(sp)"))
	assert.Empty(t, check("movem.l (sp)+,d0-d3"))
	assert.Empty(t, check("movem.w d3,(a0)"))
	assert.NotEmpty(t, check("movem.w d0-d3,d4-d7"), "one side must be memory")
	assert.NotEmpty(t, check("movem.b d0,(a0)"), "byte movem is rejected")
}

func TestInvalidModeReportsAllowed(t *testing.T) {
	errors := check("lea d0,a0")
	require.NotEmpty(t, errors)
	assert.Equal(t, semantics.CodeInvalidAddressingMode, errors[0].Code)
	assert.NotZero(t, errors[0].Allowed)
	assert.Contains(t, errors[0].Allowed.String(), "(An)")
}
