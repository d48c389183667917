// Package search filters the command list for the browser and the search
// command.
package search

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/aidanlsb/cmdref/internal/catalog"
)

// Matcher holds a case-folded query. A Matcher is not safe for concurrent
// use because the folding caser keeps state.
type Matcher struct {
	caser cases.Caser
	query string
}

// NewMatcher prepares query for repeated matching. Surrounding whitespace is
// ignored.
func NewMatcher(query string) *Matcher {
	c := cases.Fold()
	return &Matcher{
		caser: c,
		query: c.String(strings.TrimSpace(query)),
	}
}

// Empty reports whether the query matches everything.
func (m *Matcher) Empty() bool {
	return m.query == ""
}

// Match reports whether the command name or description contains the query,
// ignoring case.
func (m *Matcher) Match(cmd catalog.CommandDef) bool {
	if m.query == "" {
		return true
	}
	return strings.Contains(m.caser.String(cmd.Command), m.query) ||
		strings.Contains(m.caser.String(cmd.Description), m.query)
}

// Filter returns the commands matching query in their original order. A
// blank query returns every command.
func Filter(commands []catalog.CommandDef, query string) []catalog.CommandDef {
	m := NewMatcher(query)
	out := make([]catalog.CommandDef, 0, len(commands))
	for _, cmd := range commands {
		if m.Match(cmd) {
			out = append(out, cmd)
		}
	}
	return out
}
