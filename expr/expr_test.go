package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLiterals(t *testing.T) {
	tests := []struct {
		src  string
		want int64
	}{
		{"42", 42},
		{"$ff", 255},
		{"$FF", 255},
		{"%1010", 10},
		{"@17", 15},
		{"'A'", 65},
		{"'é'", 0xE9},
		{"-5", -5},
		{"+7", 7},
	}
	for _, tc := range tests {
		v, err := Eval(tc.src, nil)
		require.NoError(t, err, tc.src)
		assert.Equal(t, tc.want, v, tc.src)
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want int64
	}{
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10-4-3", 3},
		{"10/2/5", 1},
		{"10%4", 2},
		{"2*-3", -6},
		{"8 + 2 * 2", 12},
	}
	for _, tc := range tests {
		v, err := Eval(tc.src, nil)
		require.NoError(t, err, tc.src)
		assert.Equal(t, tc.want, v, tc.src)
	}
}

func TestSymbols(t *testing.T) {
	env := Env{"arr": 0x1000, "count": 3}
	v, err := Eval("arr+2*count", env)
	require.NoError(t, err)
	assert.Equal(t, int64(0x1006), v)

	_, err = Eval("missing+1", env)
	assert.Error(t, err)

	assert.Equal(t, []string{"arr", "count"}, Symbols("arr+2*count"))
	assert.Empty(t, Symbols("$ff+%101"))
	assert.Empty(t, Symbols("'x'"), "characters are not symbols")
}

func TestMalformed(t *testing.T) {
	for _, src := range []string{"", "1+", "(1", "1)", "$", "'a", "1//2", "#"} {
		_, err := Eval(src, nil)
		assert.Error(t, err, src)
	}
	_, err := Eval("1/0", nil)
	assert.Error(t, err, "division by zero is a diagnostic")
}

func TestEvalSigned32(t *testing.T) {
	v, wrapped, err := EvalSigned32("$7fffffff", nil)
	require.NoError(t, err)
	assert.False(t, wrapped)
	assert.Equal(t, int32(0x7FFFFFFF), v)

	v, wrapped, err = EvalSigned32("$ffffffff+1", nil)
	require.NoError(t, err)
	assert.True(t, wrapped, "wrapping past 32 bits is flagged")
	assert.Equal(t, int32(0), v)
}
