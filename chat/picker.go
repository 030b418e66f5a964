package chat

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/term"
)

// ErrPickCancelled is returned when the user backs out of a selection.
var ErrPickCancelled = errors.New("selection cancelled")

// pickFromList shows a raw-mode selection list on the terminal and returns
// the chosen index. Arrow keys (or j/k) move, Enter selects, q cancels.
// Returns an error when stdin is not a terminal; callers fall back to a
// plain listing.
func pickFromList(title string, items []string) (int, error) {
	if len(items) == 0 {
		return -1, fmt.Errorf("no items to pick from")
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return -1, fmt.Errorf("interactive selection requires a terminal: %w", err)
	}
	defer term.Restore(fd, oldState)

	const pageSize = 10
	selected := 0
	offset := 0

	for {
		// Redraw. Raw mode needs explicit \r\n.
		fmt.Print("\033[2J\033[H")
		fmt.Printf("\033[1;36m%s\033[0m\r\n", title)
		fmt.Print("\033[90mUse arrows to move, Enter to select, q to cancel\033[0m\r\n\r\n")

		if selected < offset {
			offset = selected
		}
		if selected >= offset+pageSize {
			offset = selected - pageSize + 1
		}
		end := offset + pageSize
		if end > len(items) {
			end = len(items)
		}

		for i := offset; i < end; i++ {
			if i == selected {
				fmt.Printf("\033[1;33m> %s\033[0m\r\n", items[i])
			} else {
				fmt.Printf("  %s\r\n", items[i])
			}
		}
		if end < len(items) {
			fmt.Printf("\033[90m  ... %d more\033[0m\r\n", len(items)-end)
		}

		buf := make([]byte, 3)
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return -1, err
		}

		if n == 1 {
			switch buf[0] {
			case 13, 10: // Enter
				fmt.Print("\033[2J\033[H")
				return selected, nil
			case 'q', 3: // q or Ctrl+C
				fmt.Print("\033[2J\033[H")
				return -1, ErrPickCancelled
			case 'k':
				if selected > 0 {
					selected--
				}
			case 'j':
				if selected < len(items)-1 {
					selected++
				}
			}
		} else if n == 3 && buf[0] == 27 && buf[1] == 91 {
			switch buf[2] {
			case 65: // Up
				if selected > 0 {
					selected--
				}
			case 66: // Down
				if selected < len(items)-1 {
					selected++
				}
			}
		}
	}
}
