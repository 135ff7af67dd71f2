package s68k_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Specy/s68k"
	"github.com/Specy/s68k/interpreter"
	"github.com/Specy/s68k/lexer"
)

func TestLex(t *testing.T) {
	lines := s68k.Lex("start:\n  move.w d0,d1 ; copy\n")
	require.Len(t, lines, 3)
	assert.Equal(t, lexer.LineLabel, lines[0].Parsed.Kind)
	assert.Equal(t, lexer.LineInstruction, lines[1].Parsed.Kind)
	assert.Equal(t, lexer.LineEmpty, lines[2].Parsed.Kind)
}

func TestSemanticErrorsRefuseCompilation(t *testing.T) {
	interp, semErrors, err := s68k.Compile("move.w d0", s68k.DefaultMemorySize, interpreter.Options{})
	require.NoError(t, err)
	assert.Nil(t, interp)
	require.NotEmpty(t, semErrors)
}

func TestRunToCompletion(t *testing.T) {
	interp, semErrors, err := s68k.Compile(`
        moveq #3, d0
        add.l d0, d0
`, s68k.DefaultMemorySize, interpreter.Options{KeepHistory: true})
	require.NoError(t, err)
	require.Empty(t, semErrors)

	status, err := interp.Run()
	require.NoError(t, err)
	assert.Equal(t, interpreter.StatusTerminated, status,
		"a full run never ends still running")
	assert.Equal(t, uint32(6), interp.GetCpuSnapshot().D[0])
}
