package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/mattn/go-isatty"
)

// statusLine redraws one line of a terminal in place. Writes are dropped
// when the writer is not a terminal, so pipes and logs stay clean.
type statusLine struct {
	mu  sync.Mutex
	out io.Writer
	tty bool
}

func newStatusLine(w io.Writer) *statusLine {
	return &statusLine{out: w, tty: isTerminal(w)}
}

func (l *statusLine) draw(text string) {
	if !l.tty {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "\r\033[K%s", text)
}

func (l *statusLine) clear() {
	l.draw("")
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Spinner animates a message on stderr while a catalog loads or is written.
type Spinner struct {
	line    *statusLine
	message string
	style   spinner.Spinner

	once sync.Once
	stop chan struct{}
	done chan struct{}
}

// NewSpinner creates a spinner on w. It is silent unless w is a terminal.
func NewSpinner(w io.Writer, message string) *Spinner {
	return &Spinner{
		line:    newStatusLine(w),
		message: message,
		style:   spinner.MiniDot,
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	if !s.line.tty || s.stop != nil {
		return
	}
	s.stop = make(chan struct{})
	s.done = make(chan struct{})

	go func() {
		defer close(s.done)
		ticker := time.NewTicker(s.style.FPS)
		defer ticker.Stop()

		for frame := 0; ; frame++ {
			s.line.draw(fmt.Sprintf("%s %s", Accent.Render(s.style.Frames[frame%len(s.style.Frames)]), s.message))
			select {
			case <-s.stop:
				s.line.clear()
				return
			case <-ticker.C:
			}
		}
	}()
}

// Stop ends the animation and clears the line. Calling it more than once,
// or without Start, is fine.
func (s *Spinner) Stop() {
	if s.stop == nil {
		return
	}
	s.once.Do(func() {
		close(s.stop)
		<-s.done
	})
}

// Progress shows "message (n/total)" for multi-file writes such as export.
type Progress struct {
	line    *statusLine
	message string
	total   int

	mu      sync.Mutex
	current int
}

// NewProgress creates a progress counter on w.
func NewProgress(w io.Writer, message string, total int) *Progress {
	return &Progress{line: newStatusLine(w), message: message, total: total}
}

// Increment advances the counter by one.
func (p *Progress) Increment() {
	p.mu.Lock()
	p.current++
	current := p.current
	p.mu.Unlock()

	p.line.draw(fmt.Sprintf("%s %s", p.message, Muted.Render(fmt.Sprintf("(%d/%d)", current, p.total))))
}

// Done clears the counter line.
func (p *Progress) Done() {
	p.line.clear()
}
