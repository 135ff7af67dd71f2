package compiler

import (
	"strings"

	"github.com/Specy/s68k/cpu"
	"github.com/Specy/s68k/lexer"
)

func (c *Compiler) decodeFlow(line lexer.Line) (*Instruction, error) {
	st := line.Parsed
	switch st.Name {
	case "rts":
		return &Instruction{Kind: OpRts}, nil
	case "nop":
		return &Instruction{Kind: OpNop}, nil
	case "bra", "bsr":
		target, err := c.lowerTarget(line, st.Operands[0])
		if err != nil {
			return nil, err
		}
		kind := OpBra
		if st.Name == "bsr" {
			kind = OpBsr
		}
		return &Instruction{Kind: kind, Src: target}, nil
	case "jmp", "jsr":
		target, err := c.lowerTarget(line, st.Operands[0])
		if err != nil {
			return nil, err
		}
		kind := OpJmp
		if st.Name == "jsr" {
			kind = OpJsr
		}
		return &Instruction{Kind: kind, Src: target}, nil
	case "trap":
		vector, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpTrap, Src: vector}, nil
	}

	// Condition-suffixed families: b<cc>, db<cc>, s<cc>.
	if cc, ok := strings.CutPrefix(st.Name, "db"); ok {
		cond, err := c.condition(line, ccAlias(cc))
		if err != nil {
			return nil, err
		}
		reg, err := c.register(line, 0)
		if err != nil {
			return nil, err
		}
		target, err := c.lowerTarget(line, st.Operands[1])
		if err != nil {
			return nil, err
		}
		return &Instruction{
			Kind: OpDbcc,
			Size: cpu.SizeWord,
			Cond: cond,
			Src:  Operand{Kind: OperandRegister, Register: reg},
			Dst:  target,
		}, nil
	}
	if cc, ok := strings.CutPrefix(st.Name, "b"); ok {
		cond, err := c.condition(line, cc)
		if err != nil {
			return nil, err
		}
		target, err := c.lowerTarget(line, st.Operands[0])
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpBcc, Cond: cond, Src: target}, nil
	}
	if cc, ok := strings.CutPrefix(st.Name, "s"); ok {
		cond, err := c.condition(line, cc)
		if err != nil {
			return nil, err
		}
		dst, err := c.operand(line, 0)
		if err != nil {
			return nil, err
		}
		return &Instruction{Kind: OpScc, Size: cpu.SizeByte, Cond: cond, Src: dst}, nil
	}
	return nil, c.errorf(line, "unknown instruction %q", st.Name)
}

// ccAlias maps dbra onto the canonical dbf.
func ccAlias(cc string) string {
	if cc == "ra" {
		return "f"
	}
	return cc
}

func (c *Compiler) condition(line lexer.Line, cc string) (cpu.Condition, error) {
	cond, err := cpu.ParseCondition(cc)
	if err != nil {
		return cond, c.errorf(line, "%s", err)
	}
	return cond, nil
}
