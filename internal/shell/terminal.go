package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Terminal reads commands and dialog answers from one input and writes
// everything to one output. It implements screens.Dialogs.
type Terminal struct {
	in  *bufio.Scanner
	out io.Writer
}

// NewTerminal wraps in and out.
func NewTerminal(in io.Reader, out io.Writer) *Terminal {
	return &Terminal{in: bufio.NewScanner(in), out: out}
}

// ReadLine prints prompt and returns the next input line. ok is false at
// end of input.
func (t *Terminal) ReadLine(prompt string) (line string, ok bool) {
	fmt.Fprint(t.out, prompt)
	if !t.in.Scan() {
		return "", false
	}
	return t.in.Text(), true
}

// Err returns the first non-EOF input error.
func (t *Terminal) Err() error {
	return t.in.Err()
}

// Confirm asks a yes/no question. Anything but y or yes, including end of
// input, is a no.
func (t *Terminal) Confirm(title, message string) bool {
	answer, ok := t.ReadLine(fmt.Sprintf("%s: %s [y/N] ", title, message))
	if !ok {
		fmt.Fprintln(t.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (t *Terminal) Error(title, message string) {
	fmt.Fprintf(t.out, "! %s: %s\n", title, message)
}

func (t *Terminal) Info(title, message string) {
	fmt.Fprintf(t.out, "* %s: %s\n", title, message)
}
