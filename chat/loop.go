package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"parley/provider"
)

// Loop is the interactive read-print cycle around a Session.
//
// The loop is strictly sequential:
//
//	1. Read a line of input
//	2. exit/quit (any case) -> farewell, done
//	3. Blank line -> read again
//	4. Slash command -> handle locally, read again
//	5. Anything else -> one ProcessTurn, print the reply
//
// A failed turn prints the error and keeps the loop alive; the session
// already rolled the transcript back, so the next turn starts clean.
type Loop struct {
	session   *Session
	readLine  func(prompt string) (string, bool)
	pickModel func(title string, items []string) (int, error)
	out       io.Writer
	verbose   bool
}

// LoopConfig holds loop configuration.
type LoopConfig struct {
	Session   *Session
	ReadLine  func(prompt string) (string, bool)              // nil means read os.Stdin
	PickModel func(title string, items []string) (int, error) // nil means the raw-mode picker
	Out       io.Writer                                       // nil means os.Stdout
	Verbose   bool
}

// NewLoop creates a Loop around a session.
func NewLoop(cfg LoopConfig) *Loop {
	l := &Loop{
		session:   cfg.Session,
		readLine:  cfg.ReadLine,
		pickModel: cfg.PickModel,
		out:       cfg.Out,
		verbose:   cfg.Verbose,
	}
	if l.out == nil {
		l.out = os.Stdout
	}
	if l.readLine == nil {
		l.readLine = NewInputReader().ReadLine
	}
	if l.pickModel == nil {
		l.pickModel = pickFromList
	}
	return l
}

// Run drives the loop until an exit token, /exit, or end of input.
func (l *Loop) Run(ctx context.Context) {
	l.printBanner()

	for {
		line, ok := l.readLine("\033[94mYou\033[0m: ")
		if !ok {
			l.log("input stream ended")
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if isExitToken(line) {
			l.farewell()
			return
		}

		if strings.HasPrefix(line, "/") {
			if quit := l.handleCommand(ctx, line); quit {
				l.farewell()
				return
			}
			continue
		}

		l.log("user: %q", line)

		reply, err := l.session.ProcessTurn(ctx, line)
		if err != nil {
			fmt.Fprintf(l.out, "\033[91merror\033[0m: %v\n", err)
			continue
		}

		fmt.Fprintf(l.out, "\033[93mParley\033[0m: %s\n\n", reply)
	}
}

// isExitToken reports whether the line asks to leave the loop.
// Matching is case-insensitive.
func isExitToken(line string) bool {
	return strings.EqualFold(line, "exit") || strings.EqualFold(line, "quit")
}

// handleCommand dispatches a slash command. Returns true when the loop
// should terminate.
func (l *Loop) handleCommand(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	cmd := strings.ToLower(fields[0])

	switch cmd {
	case "/exit":
		return true

	case "/help":
		fmt.Fprintln(l.out, "Commands:")
		fmt.Fprintln(l.out, "  /models       pick a model from the provider's list")
		fmt.Fprintln(l.out, "  /model <id>   switch the active model")
		fmt.Fprintln(l.out, "  /clear        forget the conversation")
		fmt.Fprintln(l.out, "  /help         show this help")
		fmt.Fprintln(l.out, "  /exit         leave (same as 'exit' or 'quit')")

	case "/clear":
		l.session.Reset()
		fmt.Fprintln(l.out, "\033[90mConversation cleared.\033[0m")

	case "/model":
		if len(fields) < 2 {
			fmt.Fprintf(l.out, "Current model: %s\n", l.session.Model())
			break
		}
		l.session.SetModel(fields[1])
		fmt.Fprintf(l.out, "\033[90mSwitched to %s\033[0m\n", fields[1])

	case "/models":
		l.chooseModel(ctx)

	default:
		fmt.Fprintf(l.out, "Unknown command %s (try /help)\n", cmd)
	}

	return false
}

// chooseModel lists the provider's models and lets the user pick one.
// Without a terminal the pick fails and a plain listing is printed
// instead; /model <id> still works there.
func (l *Loop) chooseModel(ctx context.Context) {
	models, err := l.session.Provider().ListModels(ctx)
	if err != nil {
		fmt.Fprintf(l.out, "\033[91merror\033[0m: %v\n", err)
		return
	}
	if len(models) == 0 {
		fmt.Fprintln(l.out, "No models reported.")
		return
	}

	items := make([]string, len(models))
	for i, m := range models {
		if m.Name != "" && m.Name != m.ID {
			items[i] = fmt.Sprintf("%s (%s)", m.ID, m.Name)
		} else {
			items[i] = m.ID
		}
	}

	idx, err := l.pickModel("Select a model", items)
	if err != nil {
		if errors.Is(err, ErrPickCancelled) {
			return
		}
		l.listModels(models)
		return
	}

	l.session.SetModel(models[idx].ID)
	fmt.Fprintf(l.out, "\033[90mSwitched to %s\033[0m\n", models[idx].ID)
}

// listModels prints the plain listing, marking the active model.
func (l *Loop) listModels(models []provider.ModelInfo) {
	for _, m := range models {
		marker := " "
		if m.ID == l.session.Model() {
			marker = "*"
		}
		if m.Name != "" && m.Name != m.ID {
			fmt.Fprintf(l.out, "%s %s (%s)\n", marker, m.ID, m.Name)
		} else {
			fmt.Fprintf(l.out, "%s %s\n", marker, m.ID)
		}
	}
}

func (l *Loop) printBanner() {
	fmt.Fprintf(l.out, "Parley - chatting via %s (%s)\n", l.session.Provider().Name(), l.session.Model())
	fmt.Fprintln(l.out, "\033[90mType 'exit' or 'quit' to end the session, /help for commands\033[0m")
	fmt.Fprintln(l.out)
}

func (l *Loop) farewell() {
	fmt.Fprintln(l.out, "\033[90mGoodbye!\033[0m")
}

func (l *Loop) log(format string, args ...interface{}) {
	if l.verbose {
		log.Printf(format, args...)
	}
}
