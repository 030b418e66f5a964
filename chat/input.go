package chat

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

var commands = []string{
	"/clear",
	"/exit",
	"/help",
	"/model",
	"/models",
}

// InputReader reads lines from stdin. When stdin is a terminal it runs in
// raw mode and ghost-completes slash commands (Tab accepts); otherwise it
// degrades to a plain buffered reader, which is what the scripted tests
// and piped input hit.
type InputReader struct {
	scanner *bufio.Scanner
}

// NewInputReader creates a reader over os.Stdin.
func NewInputReader() *InputReader {
	return &InputReader{scanner: bufio.NewScanner(os.Stdin)}
}

// ReadLine prints the prompt and reads one line. The second return value
// is false on end of input or Ctrl+C.
func (r *InputReader) ReadLine(prompt string) (string, bool) {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return r.readLineSimple(prompt)
	}
	defer term.Restore(int(os.Stdin.Fd()), oldState)

	fmt.Print(prompt)

	var line []byte
	var ghost string

	buf := make([]byte, 3)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return "", false
		}
		if n != 1 {
			continue // ignore escape sequences
		}

		switch ch := buf[0]; {
		case ch == 3: // Ctrl+C
			fmt.Println("^C")
			return "", false

		case ch == 4: // Ctrl+D
			if len(line) == 0 {
				fmt.Println()
				return "", false
			}

		case ch == 13 || ch == 10: // Enter
			r.eraseGhost(ghost, string(line))
			fmt.Println()
			return string(line), true

		case ch == 127 || ch == 8: // Backspace
			if len(line) > 0 {
				r.eraseGhost(ghost, string(line))
				line = line[:len(line)-1]
				fmt.Print("\b \b")
				ghost = r.drawGhost(string(line))
			}

		case ch == 9: // Tab accepts the suggestion
			if ghost != "" {
				r.eraseGhost(ghost, string(line))
				fmt.Print(ghost[len(line):])
				line = []byte(ghost)
				ghost = ""
			}

		case ch >= 32 && ch < 127:
			r.eraseGhost(ghost, string(line))
			line = append(line, ch)
			fmt.Print(string(ch))
			ghost = r.drawGhost(string(line))
		}
	}
}

// drawGhost prints the dimmed completion tail for the current input and
// returns the suggested command, if any.
func (r *InputReader) drawGhost(input string) string {
	suggestion := suggestCommand(input)
	if suggestion == "" || len(suggestion) <= len(input) {
		return suggestion
	}
	tail := suggestion[len(input):]
	fmt.Print("\033[90m" + tail + "\033[0m")
	fmt.Print(strings.Repeat("\b", len(tail)))
	return suggestion
}

// eraseGhost clears a previously drawn completion tail.
func (r *InputReader) eraseGhost(suggestion, current string) {
	if suggestion == "" || len(suggestion) <= len(current) {
		return
	}
	n := len(suggestion) - len(current)
	fmt.Print(strings.Repeat(" ", n))
	fmt.Print(strings.Repeat("\b", n))
}

// suggestCommand returns the first command with the input as prefix, or
// empty when the input is not a command prefix.
func suggestCommand(input string) string {
	if input == "" || !strings.HasPrefix(input, "/") {
		return ""
	}
	lower := strings.ToLower(input)
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, lower) && cmd != lower {
			return cmd
		}
	}
	return ""
}

func (r *InputReader) readLineSimple(prompt string) (string, bool) {
	fmt.Print(prompt)
	if r.scanner.Scan() {
		return r.scanner.Text(), true
	}
	return "", false
}
