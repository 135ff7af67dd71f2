package interpreter

// InterruptKind identifies a trap #15 operation, selected by D0.
type InterruptKind int

const (
	InterruptDisplayStringWithCRLF    InterruptKind = 0
	InterruptDisplayStringWithoutCRLF InterruptKind = 1
	InterruptReadKeyboardString       InterruptKind = 2
	InterruptDisplayNumber            InterruptKind = 3
	InterruptReadNumber               InterruptKind = 4
	InterruptReadChar                 InterruptKind = 5
	InterruptDisplayChar              InterruptKind = 6
	InterruptGetTime                  InterruptKind = 8
	InterruptTerminate                InterruptKind = 9
)

func (k InterruptKind) String() string {
	switch k {
	case InterruptDisplayStringWithCRLF:
		return "DisplayStringWithCRLF"
	case InterruptDisplayStringWithoutCRLF:
		return "DisplayStringWithoutCRLF"
	case InterruptReadKeyboardString:
		return "ReadKeyboardString"
	case InterruptDisplayNumber:
		return "DisplayNumber"
	case InterruptReadNumber:
		return "ReadNumber"
	case InterruptReadChar:
		return "ReadChar"
	case InterruptDisplayChar:
		return "DisplayChar"
	case InterruptGetTime:
		return "GetTime"
	case InterruptTerminate:
		return "Terminate"
	}
	return "Unknown"
}

// Interrupt is a pending request to the collaborator. Display variants
// carry their payload; read variants expect it in the answer.
type Interrupt struct {
	Kind InterruptKind
	// Text is the string to display.
	Text string
	// Value is the number to display.
	Value int32
	// Char is the character to display.
	Char rune
}

// InterruptResult is the collaborator's answer. Its Kind must match the
// pending interrupt.
type InterruptResult struct {
	Kind InterruptKind
	// Number answers ReadNumber.
	Number int32
	// Text answers ReadKeyboardString.
	Text string
	// Char answers ReadChar.
	Char rune
}

// readStringLimit caps ReadKeyboardString at the historical 80 bytes.
const readStringLimit = 80
