package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunShellCommand(t *testing.T) {
	app, _, _ := newTestApp(t)
	var out bytes.Buffer

	lines := []string{
		"add",
		"set 5 hours 2",
		"set 5 m 75",
		"set 1 ms 7",
		"remove 2",
		"calc",
	}
	for _, line := range lines {
		quit, err := RunShellCommand(app, &out, line)
		require.NoError(t, err, line)
		assert.False(t, quit, line)
	}

	rows := app.Rows()
	require.Len(t, rows, 4)
	assert.Equal(t, TimeRow{Hours: "2", Minutes: "59"}, rows[3])
	assert.Equal(t, "007", rows[0].Milliseconds)
	assert.Equal(t, "02:59:00.007", app.Total())

	assert.Contains(t, out.String(), "Added row 5")
	assert.Contains(t, out.String(), "Row 5 minutes = 59")
	assert.Contains(t, out.String(), "Removed row 2")
	assert.Contains(t, out.String(), "02:59:00.007")
}

func TestRunShellCommandErrors(t *testing.T) {
	app, _, _ := newTestApp(t)
	var out bytes.Buffer

	_, err := RunShellCommand(app, &out, "remove 9")
	assert.ErrorIs(t, err, ErrRowIndex)

	_, err = RunShellCommand(app, &out, "set 1 days 3")
	assert.ErrorIs(t, err, ErrUnknownField)

	_, err = RunShellCommand(app, &out, "remove x")
	assert.Error(t, err)

	_, err = RunShellCommand(app, &out, "set 1")
	assert.Error(t, err)

	quit, err := RunShellCommand(app, &out, "frobnicate")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Contains(t, out.String(), "Unknown command: frobnicate")
}

func TestRunShellCommandClearAndQuit(t *testing.T) {
	app, store, _ := newTestApp(t)
	var out bytes.Buffer

	_, err := RunShellCommand(app, &out, "set 1 h 4")
	require.NoError(t, err)
	_, err = RunShellCommand(app, &out, "clear")
	require.NoError(t, err)

	stored, err := store.Load()
	require.NoError(t, err)
	assert.Empty(t, stored)
	assert.Contains(t, out.String(), "Total: "+ZeroTotal)

	quit, err := RunShellCommand(app, &out, "quit")
	require.NoError(t, err)
	assert.True(t, quit)

	quit, err = RunShellCommand(app, &out, "   ")
	require.NoError(t, err)
	assert.False(t, quit)
}

func TestRowLabel(t *testing.T) {
	assert.Equal(t, "1  HH:MM:SS.mmm", rowLabel(0, TimeRow{}))
	assert.Equal(t, "3  2:05:SS.010", rowLabel(2, TimeRow{Hours: "2", Minutes: "05", Milliseconds: "010"}))
}
