package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSizedStores(t *testing.T) {
	assert := assert.New(t)

	var r Register
	r.StoreLong(0x11223344)
	r.StoreByte(0xFF)
	assert.Equal(uint32(0x112233FF), r.GetLong(), "byte store keeps upper bits")
	r.StoreWord(0xAAAA)
	assert.Equal(uint32(0x1122AAAA), r.GetLong(), "word store keeps upper word")
	r.StoreSize(SizeLong, 1)
	assert.Equal(uint32(1), r.GetLong())
	assert.Equal(uint32(0x01), r.GetSize(SizeByte))
}

func TestMemoryBigEndian(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	m := NewMemory(0x100)
	require.NoError(m.WriteSize(0x10, SizeLong, 0x11223344))
	b, err := m.ReadBytes(0x10, 4)
	require.NoError(err)
	assert.Equal([]byte{0x11, 0x22, 0x33, 0x44}, b, "longs are stored big-endian")

	v, err := m.ReadSize(0x10, SizeWord)
	require.NoError(err)
	assert.Equal(uint32(0x1122), v)

	v, err = m.ReadSize(0x12, SizeWord)
	require.NoError(err)
	assert.Equal(uint32(0x3344), v)
}

func TestMemoryBounds(t *testing.T) {
	m := NewMemory(0x10)
	_, err := m.ReadSize(0x0E, SizeLong)
	assert.Error(t, err, "read past the end fails")
	assert.Error(t, m.WriteSize(0x10, SizeByte, 1))
	_, err = m.ReadSize(0x0D, SizeLong)
	assert.Error(t, err)
	assert.NoError(t, m.WriteSize(0x0C, SizeLong, 1))
}

func TestFlagsLayout(t *testing.T) {
	assert := assert.New(t)

	var f Flags
	f = f.With(FlagX, true).With(FlagZ, true)
	assert.Equal(uint8(0b10100), uint8(f), "X is bit 4, Z is bit 2")
	assert.Equal([5]bool{true, false, true, false, false}, f.Array())
	assert.Equal("X:1 N:0 Z:1 V:0 C:0", f.String())
}

func TestConditions(t *testing.T) {
	tests := []struct {
		name  string
		cc    string
		flags Flags
		want  bool
	}{
		{"T", "t", 0, true},
		{"F", "f", FlagZ | FlagN | FlagC | FlagV, false},
		{"HI", "hi", 0, true},
		{"HI_carry", "hi", FlagC, false},
		{"LS", "ls", FlagZ, true},
		{"EQ", "eq", FlagZ, true},
		{"NE", "ne", FlagZ, false},
		{"GE_both", "ge", FlagN | FlagV, true},
		{"GE_neither", "ge", 0, true},
		{"LT", "lt", FlagN, true},
		{"GT", "gt", 0, true},
		{"GT_zero", "gt", FlagZ, false},
		{"LE", "le", FlagV, true},
		{"MI", "mi", FlagN, true},
		{"PL", "pl", FlagN, false},
	}
	for _, tc := range tests {
		cond, err := ParseCondition(tc.cc)
		require.NoError(t, err, tc.name)
		assert.Equal(t, tc.want, cond.Holds(tc.flags), tc.name)
	}
}

func TestSizedMath(t *testing.T) {
	assert := assert.New(t)

	r, carry := AddSized(0xFF, 1, SizeByte)
	assert.Equal(uint32(0), r)
	assert.True(carry)

	r, carry = SubSized(0, 1, SizeWord)
	assert.Equal(uint32(0xFFFF), r)
	assert.True(carry)

	assert.True(AddOverflowed(0x7F, 1, 0x80, SizeByte), "0x7f+1 overflows a byte")
	assert.False(AddOverflowed(0xFF, 1, 0, SizeByte))
	assert.True(SubOverflowed(0x8000, 1, 0x7FFF, SizeWord))

	assert.Equal(int32(-1), SignExtend(0xFF, SizeByte))
	assert.Equal(int32(-1), SignExtend(0xFFFF, SizeWord))
}

func TestShiftRotate(t *testing.T) {
	assert := assert.New(t)

	v, out := ShiftOnce(ShiftLeft, 0x80, SizeByte, false)
	assert.Equal(uint32(0), v)
	assert.True(out)

	v, out = ShiftOnce(ShiftRight, 0x80, SizeByte, true)
	assert.Equal(uint32(0xC0), v, "arithmetic right shift keeps the sign")
	assert.False(out)

	v, out = RotateOnce(ShiftLeft, 0x80, SizeByte)
	assert.Equal(uint32(0x01), v)
	assert.True(out)

	v, out = RotateOnce(ShiftRight, 0x01, SizeByte)
	assert.Equal(uint32(0x80), v)
	assert.True(out)
}

func TestParseRegisterList(t *testing.T) {
	require := require.New(t)

	regs, err := ParseRegisterList("d0-d2/a0/a6-a7")
	require.NoError(err)
	require.Equal([]RegisterRef{
		DataReg(0), DataReg(1), DataReg(2),
		AddrReg(0), AddrReg(6), AddrReg(7),
	}, regs)

	regs, err = ParseRegisterList("sp")
	require.NoError(err)
	require.Equal([]RegisterRef{AddrReg(7)}, regs)

	_, err = ParseRegisterList("d0-a3")
	require.Error(err, "ranges cannot mix register files")
	_, err = ParseRegisterList("d9")
	require.Error(err)
}
