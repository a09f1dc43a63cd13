package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"
)

// Shell runs the row commands in one interactive session.
type Shell struct {
	app *App
	rl  *readline.Instance
}

func NewShell(app *App) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "timesum> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	return &Shell{app: app, rl: rl}, nil
}

func (s *Shell) Run() error {
	defer s.rl.Close()

	// route app output through readline so it does not clobber the prompt
	s.app.out = s.rl.Stdout()
	printShellHelp(s.rl.Stdout())

	for {
		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if errors.Is(err, readline.ErrInterrupt) {
				continue
			}
			return nil
		}

		quit, err := RunShellCommand(s.app, s.rl.Stdout(), line)
		if err != nil {
			fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// RunShellCommand executes a single shell line against app. quit is true when
// the line asks to leave the session.
func RunShellCommand(app *App, out io.Writer, line string) (bool, error) {
	parts := strings.Fields(strings.TrimSpace(line))
	if len(parts) == 0 {
		return false, nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		printShellHelp(out)

	case "add", "a":
		if err := app.AddRow(); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "Added row %d\n", len(app.Rows()))

	case "remove", "rm":
		if len(args) != 1 {
			return false, fmt.Errorf("usage: remove <row>")
		}
		index, err := parseRowIndex(args[0])
		if err != nil {
			return false, err
		}
		if err := app.RemoveRow(index); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "Removed row %d\n", index+1)

	case "set", "s":
		if len(args) < 2 || len(args) > 3 {
			return false, fmt.Errorf("usage: set <row> <field> [value]")
		}
		index, err := parseRowIndex(args[0])
		if err != nil {
			return false, err
		}
		field, err := ParseFieldName(args[1])
		if err != nil {
			return false, err
		}
		var value string
		if len(args) == 3 {
			value = args[2]
		}
		stored, err := app.EditField(index, field, value)
		if err != nil {
			return false, err
		}
		fmt.Fprintf(out, "Row %d %s = %s\n", index+1, field, stored)

	case "calc", "c":
		fmt.Fprintf(out, "Total: %s\n", totalStyle.Render(app.Calculate()))

	case "clear":
		if err := app.ClearAll(); err != nil {
			return false, err
		}
		fmt.Fprintf(out, "Cleared all rows\nTotal: %s\n", app.Total())

	case "show", "ls":
		format := FormatTable
		if len(args) > 0 {
			format = args[0]
		}
		return false, app.Display(format)

	case "quit", "exit", "q":
		fmt.Fprintln(out, "Exiting...")
		return true, nil

	default:
		fmt.Fprintf(out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}

	return false, nil
}

// parseRowIndex converts a 1-based row number to a zero based index.
func parseRowIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("invalid row number %q", arg)
	}
	return n - 1, nil
}

func printShellHelp(out io.Writer) {
	fmt.Fprintln(out, `
Commands:
  add                        - Add a blank row
  remove <row>               - Remove a row
  set <row> <field> [value]  - Set hours|minutes|seconds|milliseconds of a row
  calc                       - Calculate the total
  clear                      - Remove all rows and stored state
  show [table|json|yaml]     - Show rows and total
  quit                       - Leave the shell`)
}
