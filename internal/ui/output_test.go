package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusMessages(t *testing.T) {
	assert.Equal(t, "✓ done", Success("done"))
	assert.Equal(t, "✓ wrote 3 pages", Successf("wrote %d pages", 3))
	assert.Equal(t, "✗ failed", Error("failed"))
	assert.Equal(t, "ℹ Found 2", Infof("Found %d", 2))
}

func TestCount(t *testing.T) {
	assert.Equal(t, "1 command", Count(1, "command", "commands"))
	assert.Equal(t, "0 commands", Count(0, "command", "commands"))
	assert.Equal(t, "14 commands", Count(14, "command", "commands"))
}
