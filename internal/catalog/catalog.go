// Package catalog holds the command reference data model: command
// definitions, parameter metadata and enum labels, plus the immutable
// Catalog that ties the three relations together after load.
package catalog

import "slices"

// CommandDef is one row of the command relation.
type CommandDef struct {
	Command     string  `json:"command" yaml:"Command"`
	HexCode     string  `json:"hex_code" yaml:"HexCode"`
	Description string  `json:"description" yaml:"Description"`
	Params      *string `json:"params,omitempty" yaml:"Params"` // comma-separated ParamIDs, nil when absent
}

// ParamMeta is one row of the parameter metadata relation.
type ParamMeta struct {
	ParamID string  `json:"param_id" yaml:"ParamID"`
	Type    string  `json:"type" yaml:"Type"`
	EnumSet *string `json:"enum_set,omitempty" yaml:"EnumSet"`
	Range   *string `json:"range,omitempty" yaml:"Range"`
}

// EnumLabel is one row of the enum label relation.
type EnumLabel struct {
	EnumSet string `json:"enum_set" yaml:"EnumSet"`
	Value   int    `json:"value" yaml:"Value"`
	Label   string `json:"label" yaml:"Label"`
}

// Catalog is the loaded, read-only view over the three relations.
//
// A Catalog is built once by New and never mutated afterwards, so it can be
// shared freely between goroutines. Lookups follow load order: when a key
// appears more than once the first row wins.
type Catalog struct {
	commands []CommandDef
	params   []ParamMeta
	enums    []EnumLabel

	commandIdx map[string]int   // Command -> first row
	paramIdx   map[string]int   // ParamID -> first row
	enumIdx    map[string][]int // EnumSet -> rows in source order
}

// New builds a Catalog from the three relations. The slices are copied.
func New(commands []CommandDef, params []ParamMeta, enums []EnumLabel) *Catalog {
	c := &Catalog{
		commands:   slices.Clone(commands),
		params:     slices.Clone(params),
		enums:      slices.Clone(enums),
		commandIdx: make(map[string]int, len(commands)),
		paramIdx:   make(map[string]int, len(params)),
		enumIdx:    make(map[string][]int),
	}

	// Rows with an empty key are kept but never indexed: an absent key
	// matches nothing.
	for i, cmd := range c.commands {
		if _, seen := c.commandIdx[cmd.Command]; !seen && cmd.Command != "" {
			c.commandIdx[cmd.Command] = i
		}
	}
	for i, p := range c.params {
		if _, seen := c.paramIdx[p.ParamID]; !seen && p.ParamID != "" {
			c.paramIdx[p.ParamID] = i
		}
	}
	for i, e := range c.enums {
		if e.EnumSet != "" {
			c.enumIdx[e.EnumSet] = append(c.enumIdx[e.EnumSet], i)
		}
	}

	return c
}

// Commands returns the command rows in load order.
func (c *Catalog) Commands() []CommandDef {
	return slices.Clone(c.commands)
}

// Params returns the parameter metadata rows in load order.
func (c *Catalog) Params() []ParamMeta {
	return slices.Clone(c.params)
}

// Enums returns the enum label rows in load order.
func (c *Catalog) Enums() []EnumLabel {
	return slices.Clone(c.enums)
}

// Len returns the number of command rows.
func (c *Catalog) Len() int {
	return len(c.commands)
}

// Command returns the first command row whose Command equals name exactly.
func (c *Catalog) Command(name string) (CommandDef, bool) {
	i, ok := c.commandIdx[name]
	if !ok {
		return CommandDef{}, false
	}
	return c.commands[i], true
}

// Param returns the first parameter metadata row with the given ParamID.
func (c *Catalog) Param(id string) (ParamMeta, bool) {
	i, ok := c.paramIdx[id]
	if !ok {
		return ParamMeta{}, false
	}
	return c.params[i], true
}

// EnumLabels returns every label row of the given enum set in source order.
// The result is nil when the set has no rows.
func (c *Catalog) EnumLabels(set string) []EnumLabel {
	rows := c.enumIdx[set]
	if len(rows) == 0 {
		return nil
	}
	out := make([]EnumLabel, len(rows))
	for i, idx := range rows {
		out[i] = c.enums[idx]
	}
	return out
}

// Text returns a pointer to s, for building optional cells.
func Text(s string) *string {
	return &s
}

// Deref returns the value of an optional cell, or "" when absent.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
