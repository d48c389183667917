// Package resolver expands a command into its parameters and enum labels.
package resolver

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/aidanlsb/cmdref/internal/catalog"
)

// UnknownType is the type reported for a parameter with no metadata row.
const UnknownType = "unknown"

// EnumTypeName is the parameter type that triggers enum expansion.
const EnumTypeName = "enum"

// ErrCommandNotFound is returned when no command has the requested name.
var ErrCommandNotFound = errors.New("command not found")

// NotFoundError reports the command name that failed to resolve.
type NotFoundError struct {
	Command string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command not found: %s", e.Command)
}

// Unwrap lets errors.Is match ErrCommandNotFound.
func (e *NotFoundError) Unwrap() error {
	return ErrCommandNotFound
}

// EnumValue is one value/label pair of an enumerated parameter.
type EnumValue struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Key is the display key of the value.
func (v EnumValue) Key() string {
	return strconv.Itoa(v.Value)
}

// ResolvedParameter is a parameter reference joined with its metadata.
type ResolvedParameter struct {
	Name string `json:"name"`
	Type string `json:"type"`

	// Range is nil when the metadata has no range.
	Range *string `json:"range"`

	// EnumValues is nil unless the parameter is an enum with at least one
	// label row. Order follows the enum relation.
	EnumValues []EnumValue `json:"enum_values"`
}

// IsEnum reports whether the parameter has labels to show.
func (p ResolvedParameter) IsEnum() bool {
	return len(p.EnumValues) > 0
}

// IsUnknown reports whether no metadata row matched the parameter.
func (p ResolvedParameter) IsUnknown() bool {
	return p.Type == UnknownType
}

// InputHint is the entry hint shown next to a non-enum parameter.
func (p ResolvedParameter) InputHint() string {
	switch p.Type {
	case "int":
		return "Enter whole numbers"
	case "float":
		return "Enter decimal numbers"
	case "bool":
		return "Use true/false or 1/0"
	default:
		return "Enter text value"
	}
}

// ResolvedCommand is the denormalized view of one command.
type ResolvedCommand struct {
	Command     string              `json:"command"`
	HexCode     string              `json:"hex_code"`
	Description string              `json:"description"`
	Parameters  []ResolvedParameter `json:"parameters"`
}

// Resolve looks up commandName (exact, case-sensitive) and expands its
// parameters. When names repeat, the first row in load order wins, for
// commands and parameter metadata alike. Unknown parameter ids and enum sets
// without labels degrade the affected parameter instead of failing.
//
// Resolve reads cat and nothing else, so it is safe to call concurrently.
func Resolve(cat *catalog.Catalog, commandName string) (*ResolvedCommand, error) {
	def, ok := cat.Command(commandName)
	if !ok {
		return nil, &NotFoundError{Command: commandName}
	}

	ids := ParseParamList(def.Params)
	params := make([]ResolvedParameter, 0, len(ids))
	for _, id := range ids {
		params = append(params, resolveParam(cat, id))
	}

	return &ResolvedCommand{
		Command:     def.Command,
		HexCode:     def.HexCode,
		Description: def.Description,
		Parameters:  params,
	}, nil
}

// ResolveAll resolves each name in order and stops at the first failure.
func ResolveAll(cat *catalog.Catalog, names []string) ([]*ResolvedCommand, error) {
	out := make([]*ResolvedCommand, 0, len(names))
	for _, name := range names {
		rc, err := Resolve(cat, name)
		if err != nil {
			return nil, err
		}
		out = append(out, rc)
	}
	return out, nil
}

// ParseParamList splits a comma-separated parameter list into trimmed ids.
// A nil, empty or blank field is an empty list. Empty tokens between commas
// are kept as empty ids so the list length matches the source field.
func ParseParamList(field *string) []string {
	if field == nil || strings.TrimSpace(*field) == "" {
		return []string{}
	}
	tokens := strings.Split(*field, ",")
	for i, tok := range tokens {
		tokens[i] = strings.TrimSpace(tok)
	}
	return tokens
}

func resolveParam(cat *catalog.Catalog, id string) ResolvedParameter {
	meta, ok := cat.Param(id)
	if !ok {
		return ResolvedParameter{Name: id, Type: UnknownType}
	}

	p := ResolvedParameter{
		Name: id,
		Type: meta.Type,
	}
	if meta.Range != nil {
		r := *meta.Range
		p.Range = &r
	}
	if meta.Type == EnumTypeName && meta.EnumSet != nil {
		p.EnumValues = enumValues(cat.EnumLabels(*meta.EnumSet))
	}
	return p
}

func enumValues(labels []catalog.EnumLabel) []EnumValue {
	if len(labels) == 0 {
		return nil
	}
	values := make([]EnumValue, len(labels))
	for i, l := range labels {
		values[i] = EnumValue{Value: l.Value, Label: l.Label}
	}
	return values
}
