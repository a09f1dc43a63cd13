package main

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	totalStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
)

// Clamp bounds value to [min, max].
func Clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

// ParseField reads the leading integer of raw. Anything that does not start
// with a number, after optional whitespace and sign, is 0.
func ParseField(raw string) int {
	s := strings.TrimSpace(raw)

	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}

	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		// only out of range is possible here, keep the sign
		if errors.Is(err, strconv.ErrRange) {
			if s[0] == '-' {
				return math.MinInt
			}
			return math.MaxInt
		}
		return 0
	}
	return int(n)
}

// PadValue left pads value with zeros up to length digits.
func PadValue(value, length int) string {
	s := strconv.Itoa(value)
	if len(s) >= length {
		return s
	}
	return strings.Repeat("0", length-len(s)) + s
}

func clampToSpec(value int, spec FieldSpec) int {
	max := spec.Max
	if max < 0 {
		max = math.MaxInt
	}
	return Clamp(value, spec.Min, max)
}

// ClampInput is applied to a field on every edit. The value is clamped to the
// field's declared bounds and rewritten padded, hours stay unpadded.
func ClampInput(f Field, raw string) string {
	spec := f.Spec()
	return PadValue(clampToSpec(ParseField(raw), spec), spec.Pad)
}

// ParseRow converts a row to milliseconds, clamping every field first.
func ParseRow(r TimeRow) int64 {
	hours := int64(clampToSpec(ParseField(r.Hours), FieldHours.Spec()))
	minutes := int64(clampToSpec(ParseField(r.Minutes), FieldMinutes.Spec()))
	seconds := int64(clampToSpec(ParseField(r.Seconds), FieldSeconds.Spec()))
	milliseconds := int64(clampToSpec(ParseField(r.Milliseconds), FieldMilliseconds.Spec()))

	return (hours*3600+minutes*60+seconds)*1000 + milliseconds
}

// Sum adds up the durations of all rows.
func Sum(rows []TimeRow) int64 {
	var total int64
	for _, r := range rows {
		total += ParseRow(r)
	}
	return total
}

// FormatTime renders ms as HH:MM:SS.mmm. Hours are not capped and grow past
// two digits as needed.
func FormatTime(ms int64) string {
	if ms < 0 {
		ms = 0
	}

	hours := ms / msPerHour
	ms %= msPerHour
	minutes := ms / msPerMinute
	ms %= msPerMinute
	seconds := ms / msPerSecond
	milliseconds := ms % msPerSecond

	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, milliseconds)
}

// displayValue shows the placeholder for fields that were never filled in.
func displayValue(r TimeRow, f Field) string {
	if v := r.Get(f); v != "" {
		return v
	}
	return f.Spec().Placeholder
}

func PrintTable(w io.Writer, headers []string, rows [][]string, footers []string) {
	colWidths := make([]int, len(headers))
	for i, header := range headers {
		colWidths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}
	for i, footer := range footers {
		if len(footer) > colWidths[i] {
			colWidths[i] = len(footer)
		}
	}

	// print header
	for i, header := range headers {
		fmt.Fprintf(w, "%s\t", headerStyle.Render(fmt.Sprintf("%-*s", colWidths[i], header)))
	}
	fmt.Fprintln(w)

	// print rows
	for _, row := range rows {
		for i, cell := range row {
			fmt.Fprintf(w, "%-*s\t", colWidths[i], cell)
		}
		fmt.Fprintln(w)
	}

	// print footer
	for i, footer := range footers {
		if footer != "" {
			fmt.Fprintf(w, "%s\t", totalStyle.Render(fmt.Sprintf("%-*s", colWidths[i], footer)))
		} else {
			// print empty space for skipped footer
			fmt.Fprintf(w, "%-*s\t", colWidths[i], "")
		}
	}
	fmt.Fprintln(w)
}
