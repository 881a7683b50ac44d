package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/zkvault/internal/client/vault"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	execute(ctx context.Context, name string, args []string) error
	helpText() string
}

// getStatus renders the prompt suffix: session state and connectivity.
func (a *App) getStatus() string {
	st := a.authService.Status()
	var state string
	switch st.State {
	case vault.StateUnlocked:
		state = openStyle.Render(st.State.String())
	case vault.StateLocked:
		state = lockedStyle.Render(st.State.String())
	default:
		state = st.State.String()
	}
	if m := a.currentMode(); m != "" {
		state += " " + string(m)
	}
	return fmt.Sprintf("(%s)", state)
}

// Root runs the REPL on stdin until exit or EOF.
func (a *App) Root(ctx context.Context) {
	printlnFn(titleStyle.Render("zkvault") + " (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.reader)
}

// runREPL starts a simple read-eval-print loop.
//
// It reads a line from reader, parses the first token as the command, and
// dispatches it to a.execute with the remaining tokens. Prompts issued by
// commands read from the same reader. The loop exits on EOF or when the
// user types "exit" or "quit".
//
// Errors are reported by execute itself; the loop keeps going.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(promptStyle.Render("vault") + " " + statusFn() + " > ")
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			return
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printlnFn(a.helpText())
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			_ = a.execute(ctx, cmd, parts[1:])
		}

		if ctx.Err() != nil {
			return
		}
	}
}
