package cpu

import (
	"encoding/binary"
	"fmt"
)

// AddressError reports an access outside the memory buffer.
type AddressError struct {
	Address uint32
	Length  uint32
	Size    int
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("address %#x is not in range 0..%#x", e.Address, e.Size)
}

// Memory is a flat byte-addressable buffer. Multi-byte accesses are
// big-endian, following the M68k convention.
type Memory struct {
	data []byte
}

// NewMemory creates a zeroed memory buffer of the given size.
func NewMemory(size int) *Memory {
	return &Memory{data: make([]byte, size)}
}

// Len returns the buffer size in bytes.
func (m *Memory) Len() int {
	return len(m.data)
}

func (m *Memory) check(address, length uint32) error {
	if uint64(address)+uint64(length) > uint64(len(m.data)) {
		return &AddressError{Address: address, Length: length, Size: len(m.data)}
	}
	return nil
}

// ReadSize reads a value of the given width at address.
func (m *Memory) ReadSize(address uint32, size Size) (uint32, error) {
	if err := m.check(address, size.Bytes()); err != nil {
		return 0, err
	}
	switch size {
	case SizeByte:
		return uint32(m.data[address]), nil
	case SizeWord:
		return uint32(binary.BigEndian.Uint16(m.data[address:])), nil
	default:
		return binary.BigEndian.Uint32(m.data[address:]), nil
	}
}

// WriteSize writes a value of the given width at address.
func (m *Memory) WriteSize(address uint32, size Size, value uint32) error {
	if err := m.check(address, size.Bytes()); err != nil {
		return err
	}
	switch size {
	case SizeByte:
		m.data[address] = uint8(value)
	case SizeWord:
		binary.BigEndian.PutUint16(m.data[address:], uint16(value))
	default:
		binary.BigEndian.PutUint32(m.data[address:], value)
	}
	return nil
}

// ReadBytes copies length bytes starting at address.
func (m *Memory) ReadBytes(address, length uint32) ([]byte, error) {
	if err := m.check(address, length); err != nil {
		return nil, err
	}
	out := make([]byte, length)
	copy(out, m.data[address:])
	return out, nil
}

// WriteBytes copies b into memory starting at address.
func (m *Memory) WriteBytes(address uint32, b []byte) error {
	if err := m.check(address, uint32(len(b))); err != nil {
		return err
	}
	copy(m.data[address:], b)
	return nil
}
