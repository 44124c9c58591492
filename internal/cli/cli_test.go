package cli

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

// capture redirects the color printers into a buffer, with coloring off so
// assertions see plain text.
func capture(t *testing.T, print func()) string {
	t.Helper()
	var buffer bytes.Buffer
	previousOutput := color.Output
	previousNoColor := color.NoColor
	color.Output = &buffer
	color.NoColor = true
	t.Cleanup(func() {
		color.Output = previousOutput
		color.NoColor = previousNoColor
	})
	print()
	return buffer.String()
}

func TestValueFormatsArguments(t *testing.T) {
	assert.Equal(t, "Lisbon", capture(t, func() { Value("%s", "Lisbon") }))
	assert.Equal(t, "[x] Sunscreen ×2", capture(t, func() { Value("%s %s ×%d", "[x]", "Sunscreen", 2) }))
}

func TestValueLiteralPercent(t *testing.T) {
	assert.Equal(t, "50% packed", capture(t, func() { Value("%d%% packed", 50) }))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "#7 ", capture(t, func() { Label("#%d ", 7) }))
}

func TestField(t *testing.T) {
	assert.Equal(t, "Name:         Lisbon\n", capture(t, func() { Field("Name", "Lisbon") }))
}

func TestSuccess(t *testing.T) {
	assert.Equal(t, "Saved 'Lisbon'.", capture(t, func() { Success("Saved '%s'.", "Lisbon") }))
}

func TestError(t *testing.T) {
	assert.Equal(t, "Error: trip 7 not found\n", capture(t, func() { Error("Error: %v\n", "trip 7 not found") }))
}
