package cpu

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRegisterList parses a MOVEM register list like "d0-d3/a0/a6-a7".
// Groups are separated by "/", ranges by "-", and sp is accepted for a7.
// The result is in transfer order: D0-D7 then A0-A7.
func ParseRegisterList(text string) ([]RegisterRef, error) {
	var dmask, amask uint8
	for _, group := range strings.Split(text, "/") {
		group = strings.TrimSpace(group)
		bounds := strings.Split(group, "-")
		switch len(bounds) {
		case 1:
			kind, num, err := parseListRegister(bounds[0])
			if err != nil {
				return nil, err
			}
			if kind == RegisterData {
				dmask |= 1 << num
			} else {
				amask |= 1 << num
			}
		case 2:
			kind, lo, err := parseListRegister(bounds[0])
			if err != nil {
				return nil, err
			}
			kind2, hi, err := parseListRegister(bounds[1])
			if err != nil {
				return nil, err
			}
			if kind != kind2 {
				return nil, fmt.Errorf("register range %q mixes register files", group)
			}
			if lo > hi {
				return nil, fmt.Errorf("register range %q is reversed", group)
			}
			for n := lo; n <= hi; n++ {
				if kind == RegisterData {
					dmask |= 1 << n
				} else {
					amask |= 1 << n
				}
			}
		default:
			return nil, fmt.Errorf("invalid register group %q", group)
		}
	}
	var out []RegisterRef
	for n := uint8(0); n < 8; n++ {
		if dmask&(1<<n) != 0 {
			out = append(out, DataReg(n))
		}
	}
	for n := uint8(0); n < 8; n++ {
		if amask&(1<<n) != 0 {
			out = append(out, AddrReg(n))
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("empty register list %q", text)
	}
	return out, nil
}

func parseListRegister(s string) (RegisterKind, uint8, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "sp" {
		return RegisterAddress, 7, nil
	}
	if len(s) != 2 {
		return 0, 0, fmt.Errorf("invalid register %q in list", s)
	}
	n, err := strconv.Atoi(s[1:])
	if err != nil || n < 0 || n > 7 {
		return 0, 0, fmt.Errorf("invalid register %q in list", s)
	}
	switch s[0] {
	case 'd':
		return RegisterData, uint8(n), nil
	case 'a':
		return RegisterAddress, uint8(n), nil
	}
	return 0, 0, fmt.Errorf("invalid register %q in list", s)
}
