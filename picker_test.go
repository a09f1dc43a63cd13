package main

import (
	"os"
	"testing"

	"github.com/mattn/go-isatty"
	"github.com/stretchr/testify/assert"
)

func TestPickedIndex(t *testing.T) {
	tests := []struct {
		name   string
		choice any
		want   int
		wantOK bool
	}{
		{"first row", 0, 0, true},
		{"last row", 3, 3, true},
		{"past the end", 4, 0, false},
		{"negative", -1, 0, false},
		{"escape", "", 0, false},
		{"nil", nil, 0, false},
		{"string index", "2", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickedIndex(tt.choice, 4)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPickRowWithoutTerminal(t *testing.T) {
	if isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		t.Skip("stdin is a terminal")
	}

	_, ok, err := PickRow(make([]TimeRow, 2))
	assert.ErrorIs(t, err, ErrNoTerminal)
	assert.False(t, ok)
}

func TestPickRowNoRows(t *testing.T) {
	_, ok, err := PickRow(nil)
	assert.NoError(t, err)
	assert.False(t, ok)
}
