package semantics

// The contract table: per-mnemonic arity, allowed sizes, and the
// effective-address mask for each operand position. Cross-operand rules
// that a mask cannot express are tagged with a special check.

type sizeRule int

const (
	// sizeNone forbids an explicit size suffix.
	sizeNone sizeRule = iota
	// sizeAny accepts .b/.w/.l or no suffix.
	sizeAny
	// sizeWordLong accepts only .w or .l.
	sizeWordLong
)

type special int

const (
	specialNone special = iota
	// specialMoveq bounds the immediate to [-128, 127].
	specialMoveq
	// specialQuick bounds the immediate to [1, 8].
	specialQuick
	// specialShiftCount bounds an immediate shift count to [0, 8].
	specialShiftCount
	// specialTrap bounds the vector to [0, 15].
	specialTrap
	// specialMovem validates the (list, ea) / (ea, list) shapes.
	specialMovem
)

type contract struct {
	sizes    sizeRule
	operands []Mode
	special  special
}

var contracts = map[string]contract{
	"move":  {sizes: sizeAny, operands: []Mode{ModeAny, ModeAlterable}},
	"moveq": {sizes: sizeNone, operands: []Mode{ModeImmediate, ModeDataReg}, special: specialMoveq},
	"movem": {sizes: sizeWordLong, special: specialMovem},

	"add":  {sizes: sizeAny, operands: []Mode{ModeAny, ModeAlterable}},
	"sub":  {sizes: sizeAny, operands: []Mode{ModeAny, ModeAlterable}},
	"addi": {sizes: sizeAny, operands: []Mode{ModeImmediate, ModeAlterable}},
	"subi": {sizes: sizeAny, operands: []Mode{ModeImmediate, ModeAlterable}},
	"addq": {sizes: sizeAny, operands: []Mode{ModeImmediate, ModeAlterable}, special: specialQuick},
	"subq": {sizes: sizeAny, operands: []Mode{ModeImmediate, ModeAlterable}, special: specialQuick},
	"adda": {sizes: sizeWordLong, operands: []Mode{ModeAny, ModeAddrReg}},
	"suba": {sizes: sizeWordLong, operands: []Mode{ModeAny, ModeAddrReg}},

	"muls": {sizes: sizeNone, operands: []Mode{ModeAny &^ ModeAddrReg, ModeDataReg}},
	"mulu": {sizes: sizeNone, operands: []Mode{ModeAny &^ ModeAddrReg, ModeDataReg}},
	"divs": {sizes: sizeNone, operands: []Mode{ModeAny &^ ModeAddrReg, ModeDataReg}},
	"divu": {sizes: sizeNone, operands: []Mode{ModeAny &^ ModeAddrReg, ModeDataReg}},

	"cmp":  {sizes: sizeAny, operands: []Mode{ModeAny, ModeAny &^ ModeImmediate}},
	"cmpi": {sizes: sizeAny, operands: []Mode{ModeImmediate, ModeAny &^ ModeImmediate}},
	"cmpa": {sizes: sizeWordLong, operands: []Mode{ModeAny, ModeAddrReg}},
	"tst":  {sizes: sizeAny, operands: []Mode{ModeAny &^ ModeImmediate}},

	"and":  {sizes: sizeAny, operands: []Mode{ModeAny &^ ModeAddrReg, ModeDataAlterable}},
	"or":   {sizes: sizeAny, operands: []Mode{ModeAny &^ ModeAddrReg, ModeDataAlterable}},
	"eor":  {sizes: sizeAny, operands: []Mode{ModeAny &^ ModeAddrReg, ModeDataAlterable}},
	"andi": {sizes: sizeAny, operands: []Mode{ModeImmediate, ModeDataAlterable}},
	"ori":  {sizes: sizeAny, operands: []Mode{ModeImmediate, ModeDataAlterable}},
	"eori": {sizes: sizeAny, operands: []Mode{ModeImmediate, ModeDataAlterable}},
	"not":  {sizes: sizeAny, operands: []Mode{ModeDataAlterable}},
	"neg":  {sizes: sizeAny, operands: []Mode{ModeDataAlterable}},
	"clr":  {sizes: sizeAny, operands: []Mode{ModeDataAlterable}},

	"ext":  {sizes: sizeWordLong, operands: []Mode{ModeDataReg}},
	"swap": {sizes: sizeNone, operands: []Mode{ModeDataReg}},
	"exg":  {sizes: sizeNone, operands: []Mode{ModeDataReg | ModeAddrReg, ModeDataReg | ModeAddrReg}},

	"lsl": {sizes: sizeAny, operands: []Mode{ModeImmediate | ModeDataReg, ModeDataReg}, special: specialShiftCount},
	"lsr": {sizes: sizeAny, operands: []Mode{ModeImmediate | ModeDataReg, ModeDataReg}, special: specialShiftCount},
	"asl": {sizes: sizeAny, operands: []Mode{ModeImmediate | ModeDataReg, ModeDataReg}, special: specialShiftCount},
	"asr": {sizes: sizeAny, operands: []Mode{ModeImmediate | ModeDataReg, ModeDataReg}, special: specialShiftCount},
	"rol": {sizes: sizeAny, operands: []Mode{ModeImmediate | ModeDataReg, ModeDataReg}, special: specialShiftCount},
	"ror": {sizes: sizeAny, operands: []Mode{ModeImmediate | ModeDataReg, ModeDataReg}, special: specialShiftCount},

	"btst": {sizes: sizeNone, operands: []Mode{ModeImmediate | ModeDataReg, ModeDataAlterable}},
	"bclr": {sizes: sizeNone, operands: []Mode{ModeImmediate | ModeDataReg, ModeDataAlterable}},
	"bset": {sizes: sizeNone, operands: []Mode{ModeImmediate | ModeDataReg, ModeDataAlterable}},
	"bchg": {sizes: sizeNone, operands: []Mode{ModeImmediate | ModeDataReg, ModeDataAlterable}},

	"jmp": {sizes: sizeNone, operands: []Mode{ModeControl}},
	"jsr": {sizes: sizeNone, operands: []Mode{ModeControl}},
	"rts": {sizes: sizeNone, operands: []Mode{}},

	"lea":  {sizes: sizeNone, operands: []Mode{ModeControl, ModeAddrReg}},
	"pea":  {sizes: sizeNone, operands: []Mode{ModeControl}},
	"link": {sizes: sizeNone, operands: []Mode{ModeAddrReg, ModeImmediate}},
	"unlk": {sizes: sizeNone, operands: []Mode{ModeAddrReg}},

	"trap": {sizes: sizeNone, operands: []Mode{ModeImmediate}, special: specialTrap},
	"nop":  {sizes: sizeNone, operands: []Mode{}},
}

// Condition-code families are generated from the condition table: bra,
// bsr and b<cc>; s<cc>; db<cc> plus the customary dbra alias.
func init() {
	branch := contract{sizes: sizeNone, operands: []Mode{ModeLabel | ModeAbsolute}}
	set := contract{sizes: sizeNone, operands: []Mode{ModeDataAlterable}}
	decBranch := contract{sizes: sizeNone, operands: []Mode{ModeDataReg, ModeLabel | ModeAbsolute}}

	contracts["bra"] = branch
	contracts["bsr"] = branch
	for _, cc := range []string{"hi", "ls", "cc", "hs", "cs", "lo", "ne", "eq", "vc", "vs", "pl", "mi", "ge", "lt", "gt", "le"} {
		contracts["b"+cc] = branch
		contracts["s"+cc] = set
		contracts["db"+cc] = decBranch
	}
	contracts["st"] = set
	contracts["sf"] = set
	contracts["dbt"] = decBranch
	contracts["dbf"] = decBranch
	contracts["dbra"] = decBranch
}
