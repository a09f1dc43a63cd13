package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/nexidian/gocliselect"
)

var ErrNoTerminal = errors.New("row number required when not running in a terminal")

// PickRow shows an arrow-key menu of rows and returns the zero based index of
// the chosen one. ok is false when the menu was left without a choice.
func PickRow(rows []TimeRow) (int, bool, error) {
	if len(rows) == 0 {
		return 0, false, nil
	}
	// the menu reads keys from the controlling terminal
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return 0, false, ErrNoTerminal
	}

	menu := gocliselect.NewMenu("Select a row to remove")
	for i, r := range rows {
		menu.AddItem(rowLabel(i, r), i)
	}

	choice, err := menu.Display()
	if err != nil {
		return 0, false, fmt.Errorf("error showing row menu: %w", err)
	}

	index, ok := pickedIndex(choice, len(rows))
	return index, ok, nil
}

// pickedIndex maps a menu choice back to a row index. Leaving the menu with
// ESC yields "" rather than an index.
func pickedIndex(choice any, n int) (int, bool) {
	index, ok := choice.(int)
	if !ok || index < 0 || index >= n {
		return 0, false
	}
	return index, true
}

// rowLabel renders a row as "3  HH:MM:SS.mmm" using placeholders for blanks.
func rowLabel(i int, r TimeRow) string {
	parts := make([]string, 0, len(Fields))
	for _, f := range Fields {
		parts = append(parts, displayValue(r, f))
	}
	clock := strings.Join(parts[:3], ":") + "." + parts[3]
	return fmt.Sprintf("%d  %s", i+1, clock)
}
