package main

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		value, min, max, want int
	}{
		{5, 0, 10, 5},
		{-1, 0, 10, 0},
		{11, 0, 10, 10},
		{0, 0, 0, 0},
		{math.MaxInt, 0, 999, 999},
		{math.MinInt, 0, 59, 0},
	}

	for _, tt := range tests {
		got := Clamp(tt.value, tt.min, tt.max)
		assert.Equal(t, tt.want, got, "Clamp(%d, %d, %d)", tt.value, tt.min, tt.max)
		assert.Equal(t, got, Clamp(got, tt.min, tt.max), "clamp is idempotent")
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"", 0},
		{"abc", 0},
		{"12", 12},
		{"007", 7},
		{"  42 ", 42},
		{"-5", -5},
		{"+3", 3},
		{"12abc", 12},
		{"1e3", 1},
		{"3.9", 3},
		{"-", 0},
		{"99999999999999999999999", math.MaxInt},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseField(tt.raw))
		})
	}
}

func TestPadValue(t *testing.T) {
	assert.Equal(t, "005", PadValue(5, 3))
	assert.Equal(t, "59", PadValue(59, 2))
	assert.Equal(t, "1234", PadValue(1234, 3))
	assert.Equal(t, "7", PadValue(7, 0))
}

func TestClampInput(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		raw   string
		want  string
	}{
		{"minutes over range", FieldMinutes, "75", "59"},
		{"seconds padded", FieldSeconds, "7", "07"},
		{"milliseconds padded", FieldMilliseconds, "5", "005"},
		{"milliseconds over range", FieldMilliseconds, "1500", "999"},
		{"hours unpadded", FieldHours, "007", "7"},
		{"hours over range", FieldHours, "1000", "999"},
		{"negative", FieldMinutes, "-3", "00"},
		{"empty", FieldSeconds, "", "00"},
		{"garbage", FieldHours, "xyz", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampInput(tt.field, tt.raw))
		})
	}
}

func TestParseRow(t *testing.T) {
	tests := []struct {
		name string
		row  TimeRow
		want int64
	}{
		{"blank", TimeRow{}, 0},
		{"simple", TimeRow{"1", "2", "3", "4"}, 3723004},
		{"max", TimeRow{"999", "59", "59", "999"}, 3599999999},
		{"clamped", TimeRow{"5000", "75", "-1", "abc"}, (999*3600 + 59*60) * 1000},
		{"partial", TimeRow{Minutes: "30"}, 30 * 60 * 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRow(tt.row))
		})
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		ms   int64
		want string
	}{
		{0, "00:00:00.000"},
		{3723004, "01:02:03.004"},
		{59999, "00:00:59.999"},
		{3599999999, "999:59:59.999"},
		{7199999998, "1999:59:59.998"},
		{-10, "00:00:00.000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTime(tt.ms), "FormatTime(%d)", tt.ms)
	}
}

func TestParseFormatRoundTrip(t *testing.T) {
	for _, row := range []TimeRow{
		{"1", "2", "3", "4"},
		{"12", "34", "56", "789"},
		{"999", "59", "59", "999"},
		{"0", "0", "0", "1"},
	} {
		want := PadValue(ParseField(row.Hours), 2) + ":" +
			PadValue(ParseField(row.Minutes), 2) + ":" +
			PadValue(ParseField(row.Seconds), 2) + "." +
			PadValue(ParseField(row.Milliseconds), 3)
		assert.Equal(t, want, FormatTime(ParseRow(row)))
	}
}

func TestSumIgnoresOrder(t *testing.T) {
	rows := []TimeRow{
		{"1", "30", "", ""},
		{"", "45", "15", "500"},
		{"0", "0", "59", "999"},
	}
	reversed := []TimeRow{rows[2], rows[1], rows[0]}

	assert.Equal(t, Sum(rows), Sum(reversed))
	assert.Equal(t, "02:16:15.499", FormatTime(Sum(rows)))
	assert.Equal(t, Sum(rows), Sum(rows[:1])+Sum(rows[1:]))
}

func TestSumDefaultRows(t *testing.T) {
	assert.Equal(t, ZeroTotal, FormatTime(Sum(NewDefaultState().Rows)))
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	PrintTable(&buf, []string{"#", "Duration"}, [][]string{{"1", "01:00:00.000"}}, []string{"Total:", "01:00:00.000"})

	out := buf.String()
	assert.Contains(t, out, "Duration")
	assert.Contains(t, out, "01:00:00.000")
	assert.Contains(t, out, "Total:")
}
