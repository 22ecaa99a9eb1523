// Package shell is the line-oriented front end. Each line names a screen,
// an action and key=value fields, for example:
//
//	products create name="Sugar 1kg" selling_syp=5000 quantity=50
//
// Once a screen is open its name may be left out.
package shell

import (
	"errors"
	"fmt"
	"io"
	"strings"

	apperrors "github.com/laith-alskaf/Supermarket-Management-System/internal/errors"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/logger"
	"github.com/laith-alskaf/Supermarket-Management-System/internal/screens"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// Shell runs the command loop over a Navigator.
type Shell struct {
	nav  *screens.Navigator
	term *Terminal
	out  io.Writer
}

// New creates a shell. term must be the Dialogs the navigator was built with.
func New(nav *screens.Navigator, term *Terminal, out io.Writer) *Shell {
	return &Shell{nav: nav, term: term, out: out}
}

// Run reads commands until quit or end of input.
func (s *Shell) Run(start string) error {
	log := logger.Get()
	log.Infow("Shell started", "screens", len(s.nav.Names()))

	if start != "" {
		Render(s.out, s.nav.Dispatch(start, "", nil))
	}

	for {
		line, ok := s.term.ReadLine(s.prompt())
		if !ok {
			fmt.Fprintln(s.out)
			break
		}
		if quit := s.Execute(line); quit {
			break
		}
	}

	log.Infow("Shell stopped")
	return s.term.Err()
}

// Execute runs one command line and reports whether the shell should stop.
func (s *Shell) Execute(line string) (quit bool) {
	words, err := Split(line)
	if err != nil {
		s.term.Error("Invalid input", err.Error())
		return false
	}
	if len(words) == 0 {
		return false
	}

	switch words[0] {
	case "quit", "exit":
		return true
	case "screens":
		fmt.Fprintln(s.out, strings.Join(s.nav.Names(), "  "))
		return false
	case "help":
		s.help(words[1:])
		return false
	}

	name, action, form, err := s.parse(words)
	if err != nil {
		s.nav.Report(err)
		return false
	}
	Render(s.out, s.nav.Dispatch(name, action, form))
	return false
}

func (s *Shell) parse(words []string) (name, action string, form screens.Form, err error) {
	rest := words
	if s.isScreen(words[0]) {
		name, rest = words[0], words[1:]
	} else if current := s.nav.Current(); current != nil && !strings.Contains(words[0], "=") {
		name = current.Name()
	} else {
		name, rest = words[0], words[1:]
	}

	if len(rest) > 0 && !strings.Contains(rest[0], "=") {
		action, rest = rest[0], rest[1:]
	}

	form = screens.Form{}
	for _, word := range rest {
		key, value, ok := strings.Cut(word, "=")
		if !ok || key == "" {
			return "", "", nil, apperrors.WithMessage(apperrors.ErrInvalidInput,
				fmt.Sprintf("expected key=value, got %q", word))
		}
		form[key] = value
	}
	return name, action, form, nil
}

func (s *Shell) isScreen(word string) bool {
	for _, name := range s.nav.Names() {
		if name == word {
			return true
		}
	}
	return false
}

func (s *Shell) help(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(s.out, "Usage: <screen> [action] [key=value ...]")
		fmt.Fprintln(s.out, "Screens: "+strings.Join(s.nav.Names(), ", "))
		fmt.Fprintln(s.out, "Commands: screens, help <screen>, quit")
		fmt.Fprintln(s.out, `Quote values with spaces: name="Olive oil 1L"`)
		return
	}

	screen, err := s.nav.Open(args[0])
	if err != nil {
		s.nav.Report(err)
		return
	}
	fmt.Fprintf(s.out, "%s (%s): %s\n", screen.Title(), screen.Name(), strings.Join(screen.Actions(), ", "))
}

func (s *Shell) prompt() string {
	if current := s.nav.Current(); current != nil {
		return current.Name() + "> "
	}
	return "> "
}

// Split breaks line into words on unquoted whitespace. Double quotes group
// words and may start mid-word, as in name="Olive oil". A backslash escapes
// a quote inside quotes.
func Split(line string) ([]string, error) {
	var (
		words   []string
		current strings.Builder
		inQuote bool
		inWord  bool
	)

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case inQuote && r == '\\' && i+1 < len(runes) && runes[i+1] == '"':
			current.WriteRune('"')
			i++
		case r == '"':
			inQuote = !inQuote
			inWord = true
		case !inQuote && (r == ' ' || r == '\t'):
			if inWord {
				words = append(words, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if inQuote {
		return nil, errUnterminatedQuote
	}
	if inWord {
		words = append(words, current.String())
	}
	return words, nil
}
