package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// App owns the row collection and persists it after every mutation.
type App struct {
	store  StateStore
	state  State
	out    io.Writer
	logger *slog.Logger
}

func NewApp(store StateStore, out io.Writer, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.Default()
	}
	return &App{
		store:  store,
		state:  NewDefaultState(),
		out:    out,
		logger: logger,
	}
}

// Rows returns a copy of the current rows in display order.
func (a *App) Rows() []TimeRow {
	rows := make([]TimeRow, len(a.state.Rows))
	copy(rows, a.state.Rows)
	return rows
}

func (a *App) Total() string {
	return a.state.Total
}

// Restore loads the stored rows. Without stored rows the sheet starts with
// the default blank rows and nothing is calculated.
func (a *App) Restore() error {
	rows, err := a.store.Load()
	if err != nil {
		return fmt.Errorf("error restoring state: %w", err)
	}

	if len(rows) == 0 {
		a.state = NewDefaultState()
		a.logger.Debug("no stored rows, using defaults", "rows", DefaultRows)
		return nil
	}

	a.state.Rows = rows
	a.Calculate()
	a.logger.Debug("restored state", "rows", len(rows), "total", a.state.Total)

	return nil
}

// persist saves the rows. When the save fails the rows go back to prev so
// the session never shows state the store does not hold.
func (a *App) persist(prev []TimeRow) error {
	if err := a.store.Save(a.state.Rows); err != nil {
		a.state.Rows = prev
		return fmt.Errorf("error saving state: %w", err)
	}
	return nil
}

func (a *App) AddRow() error {
	prev := a.Rows()
	a.state.Rows = append(a.state.Rows, TimeRow{})
	return a.persist(prev)
}

// RemoveRow removes the row at the zero based index.
func (a *App) RemoveRow(index int) error {
	if index < 0 || index >= len(a.state.Rows) {
		return fmt.Errorf("%w: %d", ErrRowIndex, index+1)
	}

	prev := a.Rows()
	a.state.Rows = append(a.state.Rows[:index], a.state.Rows[index+1:]...)
	return a.persist(prev)
}

// EditField clamps value to the field's bounds, stores the padded result and
// returns it.
func (a *App) EditField(index int, f Field, value string) (string, error) {
	if index < 0 || index >= len(a.state.Rows) {
		return "", fmt.Errorf("%w: %d", ErrRowIndex, index+1)
	}
	if _, ok := fieldSpecs[f]; !ok {
		return "", fmt.Errorf("%w: %d", ErrUnknownField, int(f))
	}

	prev := a.Rows()
	clamped := ClampInput(f, value)
	a.state.Rows[index].Set(f, clamped)
	if clamped != value {
		a.logger.Debug("clamped input", "row", index+1, "field", f, "input", value, "value", clamped)
	}

	if err := a.persist(prev); err != nil {
		return "", err
	}
	return clamped, nil
}

// Calculate sums all rows and updates the displayed total.
func (a *App) Calculate() string {
	a.state.Total = FormatTime(Sum(a.state.Rows))
	return a.state.Total
}

// ClearAll forgets the stored rows and goes back to the blank sheet.
func (a *App) ClearAll() error {
	if err := a.store.Clear(); err != nil {
		return fmt.Errorf("error clearing state: %w", err)
	}
	a.state = NewDefaultState()
	return nil
}

// ReplaceRows swaps the whole collection, used by import.
func (a *App) ReplaceRows(rows []TimeRow) error {
	prev := a.Rows()
	a.state.Rows = append([]TimeRow{}, rows...)
	if err := a.persist(prev); err != nil {
		return err
	}
	a.Calculate()
	return nil
}

// +---------------------+
// |                     |
// |       Display       |
// |                     |
// +---------------------+

const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

type snapshot struct {
	Rows  []TimeRow `json:"rows" yaml:"rows"`
	Total string    `json:"total" yaml:"total"`
}

func (a *App) Display(format string) error {
	switch format {
	case FormatTable, "":
		headers := []string{"#", "Hours", "Minutes", "Seconds", "Millis", "Duration"}

		var rows [][]string
		for i, r := range a.state.Rows {
			row := []string{strconv.Itoa(i + 1)}
			for _, f := range Fields {
				row = append(row, displayValue(r, f))
			}
			row = append(row, FormatTime(ParseRow(r)))
			rows = append(rows, row)
		}

		footers := []string{"", "", "", "", "Total:", a.state.Total}
		PrintTable(a.out, headers, rows, footers)
		return nil
	case FormatJSON:
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(snapshot{Rows: a.Rows(), Total: a.state.Total})
	case FormatYAML:
		enc := yaml.NewEncoder(a.out)
		defer enc.Close()
		return enc.Encode(snapshot{Rows: a.Rows(), Total: a.state.Total})
	default:
		return fmt.Errorf("invalid display format: %s", format)
	}
}

// +---------------------+
// |                     |
// |   Import / Export   |
// |                     |
// +---------------------+

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Export writes the rows to path, YAML for .yaml/.yml files and JSON otherwise.
func (a *App) Export(path string) error {
	var (
		data []byte
		err  error
	)

	if isYAMLPath(path) {
		data, err = yaml.Marshal(a.Rows())
	} else {
		data, err = json.MarshalIndent(a.Rows(), "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error encoding rows: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("error writing %s: %w", path, err)
	}

	fmt.Fprintf(a.out, "Exported %d rows to %s\n", len(a.state.Rows), path)
	return nil
}

// Import replaces the rows with a snapshot read from a file or http(s) URL.
func (a *App) Import(source string) error {
	var (
		rows []TimeRow
		err  error
	)

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		rows, err = NewSnapshotClient().FetchRows(source)
	} else {
		rows, err = readSnapshotFile(source)
	}
	if err != nil {
		return err
	}

	if err := a.ReplaceRows(rows); err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Imported %d rows, total %s\n", len(rows), a.state.Total)
	return nil
}

func readSnapshotFile(path string) ([]TimeRow, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}

	rows, err := decodeRows(data, isYAMLPath(path))
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", path, err)
	}

	return rows, nil
}

// decodeRows accepts both a bare row list, as written by export, and the
// {rows, total} object written by show.
func decodeRows(data []byte, asYAML bool) ([]TimeRow, error) {
	unmarshal := json.Unmarshal
	if asYAML {
		unmarshal = yaml.Unmarshal
	}

	var rows []TimeRow
	listErr := unmarshal(data, &rows)
	if listErr == nil {
		return rows, nil
	}

	var snap snapshot
	if err := unmarshal(data, &snap); err != nil || snap.Rows == nil {
		return nil, listErr
	}
	return snap.Rows, nil
}
