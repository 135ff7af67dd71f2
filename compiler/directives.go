package compiler

import (
	"encoding/binary"
	"strings"

	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/lexer"
)

// layoutData lays out a dc/ds/dcb directive at the cursor. It returns
// the assigned address and the advanced cursor, and records emitted
// bytes in the initial memory image.
func (c *Compiler) layoutData(line lexer.Line, st lexer.Statement, cursor uint32) (uint32, uint32, error) {
	size := st.Size
	if size == cpu.SizeUnspecified {
		size = cpu.SizeWord
	}
	width := size.Bytes()
	switch st.Name {
	case "dc":
		var data []byte
		for _, arg := range st.Args {
			if text, ok := stringContent(arg); ok {
				for _, r := range text {
					data = appendElement(data, size, uint32(r))
				}
				continue
			}
			v, err := c.eval(line, arg)
			if err != nil {
				return 0, 0, err
			}
			data = appendElement(data, size, v)
		}
		c.memory = append(c.memory, MemoryBlock{Address: cursor, Bytes: data})
		return cursor, cursor + uint32(len(data)), nil
	case "ds":
		if len(st.Args) != 1 {
			return 0, 0, c.errorf(line, "ds expects one count argument")
		}
		count, err := c.eval(line, st.Args[0])
		if err != nil {
			return 0, 0, err
		}
		// Reserved space stays zeroed; no bytes are recorded.
		return cursor, cursor + count*width, nil
	case "dcb":
		if len(st.Args) != 2 {
			return 0, 0, c.errorf(line, "dcb expects a count and a value")
		}
		count, err := c.eval(line, st.Args[0])
		if err != nil {
			return 0, 0, err
		}
		value, err := c.eval(line, st.Args[1])
		if err != nil {
			return 0, 0, err
		}
		data := make([]byte, 0, count*width)
		for i := uint32(0); i < count; i++ {
			data = appendElement(data, size, value)
		}
		c.memory = append(c.memory, MemoryBlock{Address: cursor, Bytes: data})
		return cursor, cursor + uint32(len(data)), nil
	default:
		return 0, 0, c.errorf(line, "unknown directive %q", st.Name)
	}
}

// appendElement appends one big-endian element of the directive size.
func appendElement(data []byte, size cpu.Size, v uint32) []byte {
	switch size {
	case cpu.SizeByte:
		return append(data, uint8(v))
	case cpu.SizeWord:
		return binary.BigEndian.AppendUint16(data, uint16(v))
	default:
		return binary.BigEndian.AppendUint32(data, v)
	}
}

// stringContent unwraps a quoted literal of more than one character,
// which dc expands one element per character.
func stringContent(arg string) (string, bool) {
	if len(arg) > 3 && strings.HasPrefix(arg, "'") && strings.HasSuffix(arg, "'") {
		return strings.TrimSuffix(strings.TrimPrefix(arg, "'"), "'"), true
	}
	return "", false
}
