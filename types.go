package main

import (
	"errors"
	"fmt"
)

const (
	// number of blank rows a fresh sheet starts with
	DefaultRows = 4

	// key the row snapshot is stored under
	StateKey = "time-rows"

	ZeroTotal = "00:00:00.000"
)

var (
	ErrRowIndex     = errors.New("row index out of range")
	ErrUnknownField = errors.New("unknown field")
)

type (
	// TimeRow holds the raw field values of a single duration row.
	// Values are kept exactly as entered, empty string included.
	TimeRow struct {
		Hours        string `json:"hours" yaml:"hours"`
		Minutes      string `json:"minutes" yaml:"minutes"`
		Seconds      string `json:"seconds" yaml:"seconds"`
		Milliseconds string `json:"milliseconds" yaml:"milliseconds"`
	}

	State struct {
		Rows  []TimeRow
		Total string
	}
)

type Field int

const (
	FieldHours Field = iota
	FieldMinutes
	FieldSeconds
	FieldMilliseconds
)

// Fields lists the row fields in display order.
var Fields = []Field{FieldHours, FieldMinutes, FieldSeconds, FieldMilliseconds}

// FieldSpec is the declared metadata of an input field.
// A negative Max means the field has no upper bound.
type FieldSpec struct {
	Name        string
	Placeholder string
	Min         int
	Max         int
	Pad         int
}

var fieldSpecs = map[Field]FieldSpec{
	FieldHours:        {Name: "hours", Placeholder: "HH", Min: 0, Max: 999, Pad: 0},
	FieldMinutes:      {Name: "minutes", Placeholder: "MM", Min: 0, Max: 59, Pad: 2},
	FieldSeconds:      {Name: "seconds", Placeholder: "SS", Min: 0, Max: 59, Pad: 2},
	FieldMilliseconds: {Name: "milliseconds", Placeholder: "mmm", Min: 0, Max: 999, Pad: 3},
}

func (f Field) Spec() FieldSpec {
	return fieldSpecs[f]
}

func (f Field) String() string {
	return fieldSpecs[f].Name
}

// ParseFieldName accepts a field's full name, its placeholder or the usual
// single letter abbreviation.
func ParseFieldName(name string) (Field, error) {
	switch name {
	case "hours", "h", "HH", "hh":
		return FieldHours, nil
	case "minutes", "m", "MM", "mm":
		return FieldMinutes, nil
	case "seconds", "s", "SS", "ss":
		return FieldSeconds, nil
	case "milliseconds", "ms", "mmm":
		return FieldMilliseconds, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// Get returns the raw value of field f.
func (r TimeRow) Get(f Field) string {
	switch f {
	case FieldHours:
		return r.Hours
	case FieldMinutes:
		return r.Minutes
	case FieldSeconds:
		return r.Seconds
	case FieldMilliseconds:
		return r.Milliseconds
	}
	return ""
}

// Set stores a raw value for field f.
func (r *TimeRow) Set(f Field, value string) {
	switch f {
	case FieldHours:
		r.Hours = value
	case FieldMinutes:
		r.Minutes = value
	case FieldSeconds:
		r.Seconds = value
	case FieldMilliseconds:
		r.Milliseconds = value
	}
}

// NewDefaultState returns the blank sheet shown on first run and after a clear.
func NewDefaultState() State {
	return State{
		Rows:  make([]TimeRow, DefaultRows),
		Total: ZeroTotal,
	}
}
