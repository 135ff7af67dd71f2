package compiler

import (
	"fmt"

	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/expr"
	"github.com/Specy/s68k/lexer"
)

// DefaultDataBase is the layout cursor origin used until an org
// directive changes it.
const DefaultDataBase = 0x1000

// Error is a compilation failure tied to a source line.
type Error struct {
	Line    lexer.Line
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("compile error on line %d: %s", e.Line.Index+1, e.Message)
}

// Compiler resolves labels, evaluates expressions, lays out data
// directives and emits the executable program. Input is expected to
// have passed the semantic checker; anything it would have rejected is
// still reported here as an *Error rather than trusted.
type Compiler struct {
	symbols expr.Env
	labels  map[string]uint32
	memory  []MemoryBlock
}

// Compile translates lexed lines into an executable Program.
func Compile(lines []lexer.Line) (*Program, error) {
	c := &Compiler{
		symbols: expr.Env{},
		labels:  make(map[string]uint32),
	}
	pending, err := c.layout(lines)
	if err != nil {
		return nil, err
	}
	program, err := c.emit(pending)
	if err != nil {
		return nil, err
	}
	return program, nil
}

// pendingInstruction is an instruction awaiting operand lowering, with
// its table address already assigned.
type pendingInstruction struct {
	line    lexer.Line
	address uint32
}

// layout is the first pass: walk the lines, maintain the data cursor,
// resolve equ values, assign addresses to labels and data, and give
// each instruction its table address at a 4-byte stride.
func (c *Compiler) layout(lines []lexer.Line) ([]pendingInstruction, error) {
	var pending []pendingInstruction
	var unbound []string
	dataCursor := uint32(DefaultDataBase)
	instrCursor := uint32(0)

	bind := func(address uint32) {
		for _, name := range unbound {
			c.labels[name] = address
			c.symbols[name] = address
		}
		unbound = unbound[:0]
	}

	for _, line := range lines {
		st := line.Parsed
		switch st.Kind {
		case lexer.LineLabel:
			if st.Directive != nil {
				address, next, err := c.layoutData(line, *st.Directive, dataCursor)
				if err != nil {
					return nil, err
				}
				c.labels[st.Name] = address
				c.symbols[st.Name] = address
				bind(address)
				dataCursor = next
				continue
			}
			unbound = append(unbound, st.Name)
		case lexer.LineDirective:
			switch st.Name {
			case "equ":
				if len(st.Args) != 2 {
					return nil, c.errorf(line, "equ expects a name and a value")
				}
				value, err := c.eval(line, st.Args[1])
				if err != nil {
					return nil, err
				}
				c.symbols[st.Args[0]] = value
			case "org":
				if len(st.Args) != 1 {
					return nil, c.errorf(line, "org expects a single address")
				}
				value, err := c.eval(line, st.Args[0])
				if err != nil {
					return nil, err
				}
				dataCursor = value
			default:
				address, next, err := c.layoutData(line, st, dataCursor)
				if err != nil {
					return nil, err
				}
				bind(address)
				dataCursor = next
			}
		case lexer.LineInstruction:
			bind(instrCursor)
			pending = append(pending, pendingInstruction{line: line, address: instrCursor})
			instrCursor += 4
		}
	}
	// A trailing label points just past the last instruction.
	bind(instrCursor)
	return pending, nil
}

// emit is the second pass: lower every pending instruction now that the
// symbol table is complete.
func (c *Compiler) emit(pending []pendingInstruction) (*Program, error) {
	program := &Program{
		ByAddress:     make(map[uint32]*InstructionLine, len(pending)),
		Labels:        c.labels,
		InitialMemory: c.memory,
	}
	for _, p := range pending {
		instruction, err := c.decode(p.line)
		if err != nil {
			return nil, err
		}
		line := &InstructionLine{Instruction: *instruction, Address: p.address, Line: p.line}
		program.Instructions = append(program.Instructions, line)
		program.ByAddress[p.address] = line
	}
	if n := len(program.Instructions); n > 0 {
		program.FinalAddress = program.Instructions[n-1].Address
	}
	if start, ok := c.labels["start"]; ok {
		if _, isInstruction := program.ByAddress[start]; isInstruction {
			program.StartAddress = start
		}
	}
	return program, nil
}

// eval evaluates an expression to a 32-bit value. Negative results are
// stored in two's complement. Results outside the combined
// signed/unsigned 32-bit range are not wrapped: they fail compilation
// with an *Error.
func (c *Compiler) eval(line lexer.Line, text string) (uint32, error) {
	v, err := expr.Eval(text, c.symbols)
	if err != nil {
		return 0, &Error{Line: line, Message: err.Error()}
	}
	if v > 0xFFFFFFFF || v < -(1<<31) {
		return 0, &Error{Line: line, Message: fmt.Sprintf("expression %q overflows 32 bits", text)}
	}
	return uint32(v), nil
}

func (c *Compiler) errorf(line lexer.Line, format string, args ...any) error {
	return &Error{Line: line, Message: fmt.Sprintf(format, args...)}
}

// resolveSize picks the effective size: the explicit suffix, or the
// instruction's default.
func resolveSize(size, fallback cpu.Size) cpu.Size {
	if size == cpu.SizeUnspecified {
		return fallback
	}
	return size
}
