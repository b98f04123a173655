package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerminalWidth_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, defaultTermWidth, TerminalWidth(&buf))
}

func TestColumnWidth(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, defaultTermWidth-30, columnWidth(&buf, 20, 30))
	assert.Equal(t, 60, columnWidth(&buf, 60, 30), "never below the minimum")
}
