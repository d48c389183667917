package ui

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpinnerSilentWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner(&buf, "Loading catalog")
	s.Start()
	s.Stop()
	s.Stop()
	assert.Empty(t, buf.String())
}

func TestProgressSilentWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, "Exporting", 3)
	p.Increment()
	p.Increment()
	p.Done()
	assert.Empty(t, buf.String())
}

func TestSpinnerStopWithoutStart(t *testing.T) {
	s := NewSpinner(&bytes.Buffer{}, "Writing catalog")
	assert.NotPanics(t, func() {
		s.Stop()
		s.Stop()
	})
}

func TestStatusLineDrawsOnlyOnTerminal(t *testing.T) {
	var buf bytes.Buffer
	line := &statusLine{out: &buf, tty: true}
	line.draw("Loading")
	line.clear()
	assert.Equal(t, "\r\033[KLoading\r\033[K", buf.String())

	buf.Reset()
	newStatusLine(&buf).draw("Loading")
	assert.Empty(t, buf.String())
}
