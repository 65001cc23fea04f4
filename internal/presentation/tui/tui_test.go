package tui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "Welcome to the property intake assistant.")

	buf.Reset()
	PrintFarewell(&buf)
	assert.Contains(t, buf.String(), "Goodbye!")
}

func TestNewRenderer(t *testing.T) {
	render, err := NewRenderer(60)
	require.NoError(t, err)

	out, err := render("**Confirmation of Details:**")
	require.NoError(t, err)
	assert.Contains(t, out, "Confirmation of Details:")
}
