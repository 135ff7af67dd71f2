package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/grimdork/climate/arg"
	"golang.org/x/term"

	"github.com/Specy/s68k"
	"github.com/Specy/s68k/interpreter"
)

// s68k loads an M68k source file, compiles it and runs it, servicing
// trap #15 interrupts on the terminal.
func main() {
	opt := arg.New("s68k")
	opt.SetDefaultHelp(true)
	opt.SetOption("Options", "m", "memory", "Memory size in bytes.", s68k.DefaultMemorySize, false, arg.VarInt, nil)
	opt.SetOption("Options", "s", "steps", "Maximum number of steps (0 = unlimited).", 0, false, arg.VarInt, nil)
	opt.SetOption("Options", "c", "check", "Only run the semantic checker.", false, false, arg.VarBool, nil)
	opt.SetOption("Options", "d", "dump", "Dump the CPU state after the run.", false, false, arg.VarBool, nil)
	opt.SetPositional("FILE", "Source file to run.", "", true, arg.VarString)
	if err := opt.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	path := opt.GetPosString("FILE")
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	source := string(data)

	if opt.GetBool("check") {
		errors := s68k.SemanticCheck(source)
		for _, e := range errors {
			fmt.Fprintln(os.Stderr, e)
		}
		if len(errors) > 0 {
			os.Exit(1)
		}
		return
	}

	interp, semErrors, err := s68k.Compile(source, uint32(opt.GetInt("memory")), interpreter.Options{KeepHistory: true})
	if len(semErrors) > 0 {
		for _, e := range semErrors {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if err := run(interp, opt.GetInt("steps")); err != nil {
		fmt.Fprintf(os.Stderr, "runtime error: %v\n", err)
	}
	if opt.GetBool("dump") {
		fmt.Println(interp.GetCpuSnapshot())
	}
	if interp.GetStatus() == interpreter.StatusTerminatedWithException {
		os.Exit(1)
	}
}

// run drives the interpreter, answering interrupts until it stops or
// the step limit is exhausted.
func run(interp *interpreter.Interpreter, limit int) error {
	stdin := bufio.NewReader(os.Stdin)
	for {
		var status interpreter.Status
		var err error
		if limit > 0 {
			status, err = interp.RunWithLimit(limit)
		} else {
			status, err = interp.Run()
		}
		if err != nil {
			return err
		}
		if status != interpreter.StatusInterrupt {
			return nil
		}
		if err := answer(interp, stdin); err != nil {
			return err
		}
	}
}

// answer services the pending interrupt on the terminal.
func answer(interp *interpreter.Interpreter, stdin *bufio.Reader) error {
	interrupt := interp.GetCurrentInterrupt()
	result := interpreter.InterruptResult{Kind: interrupt.Kind}
	switch interrupt.Kind {
	case interpreter.InterruptDisplayStringWithCRLF:
		fmt.Println(interrupt.Text)
	case interpreter.InterruptDisplayStringWithoutCRLF:
		fmt.Print(interrupt.Text)
	case interpreter.InterruptDisplayNumber:
		fmt.Print(interrupt.Value)
	case interpreter.InterruptDisplayChar:
		fmt.Print(string(interrupt.Char))
	case interpreter.InterruptReadNumber:
		if _, err := fmt.Fscanln(stdin, &result.Number); err != nil {
			return err
		}
	case interpreter.InterruptReadKeyboardString:
		line, err := stdin.ReadString('\n')
		if err != nil {
			return err
		}
		result.Text = trimNewline(line)
	case interpreter.InterruptReadChar:
		c, err := readChar(stdin)
		if err != nil {
			return err
		}
		result.Char = c
	}
	return interp.AnswerInterrupt(result)
}

// readChar reads a single keypress, using raw mode when stdin is a
// terminal so no return key is needed.
func readChar(stdin *bufio.Reader) (rune, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return 0, err
		}
		defer term.Restore(fd, state)
	}
	c, _, err := stdin.ReadRune()
	return c, err
}

func trimNewline(s string) string {
	for len(s) > 0 && (s[len(s)-1] == '\n' || s[len(s)-1] == '\r') {
		s = s[:len(s)-1]
	}
	return s
}
