// Package docgen renders resolved commands as markdown and HTML reference
// pages for export.
package docgen

import (
	"bytes"
	"fmt"
	"html"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/aidanlsb/cmdref/internal/resolver"
	"github.com/aidanlsb/cmdref/internal/slugs"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.Table),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Markdown renders a reference page for one command. The output depends only
// on rc, so pages can be diffed across exports.
func Markdown(rc *resolver.ResolvedCommand) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", rc.Command)
	if rc.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", oneLine(rc.Description))
	}

	b.WriteString("| Field | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Hex code | %s |\n", code(rc.HexCode))
	if len(rc.Parameters) == 0 {
		b.WriteString("| Parameters | none |\n")
		b.WriteString("\nThis command has no parameters.\n")
		return b.String()
	}

	links := make([]string, len(rc.Parameters))
	for i, p := range rc.Parameters {
		links[i] = fmt.Sprintf("[%s](#%s)", escapeCell(p.Name), Anchor(i, p.Name))
	}
	fmt.Fprintf(&b, "| Parameters | %s |\n", strings.Join(links, ", "))

	b.WriteString("\n## Parameters\n")
	for i, p := range rc.Parameters {
		fmt.Fprintf(&b, "\n### %d. %s\n\n", i+1, p.Name)
		fmt.Fprintf(&b, "- Type: %s\n", code(p.Type))
		if p.Range != nil {
			fmt.Fprintf(&b, "- Range: %s\n", code(*p.Range))
		}
		if !p.IsEnum() {
			fmt.Fprintf(&b, "- Format: %s\n", p.InputHint())
			continue
		}
		b.WriteString("\n| Value | Label |\n|---|---|\n")
		for _, v := range p.EnumValues {
			fmt.Fprintf(&b, "| %s | %s |\n", code(v.Key()), escapeCell(v.Label))
		}
	}
	return b.String()
}

// Index renders a table of contents linking each command page. ext is the
// page extension used for the links.
func Index(title string, commands []*resolver.ResolvedCommand, ext string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)
	if len(commands) == 0 {
		b.WriteString("No commands.\n")
		return b.String()
	}
	b.WriteString("| Command | Hex code | Description |\n|---|---|---|\n")
	for _, rc := range commands {
		fmt.Fprintf(&b, "| [%s](%s) | %s | %s |\n",
			rc.Command, slugs.FileName(rc.Command, ext), code(rc.HexCode), escapeCell(rc.Description))
	}
	return b.String()
}

// HTML converts a markdown page to a standalone HTML document.
func HTML(title, markdown string) ([]byte, error) {
	var body bytes.Buffer
	if err := md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("render %s: %w", title, err)
	}

	var doc bytes.Buffer
	doc.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&doc, "<title>%s</title>\n", html.EscapeString(title))
	doc.WriteString("</head>\n<body>\n")
	doc.Write(body.Bytes())
	doc.WriteString("</body>\n</html>\n")
	return doc.Bytes(), nil
}

// FileName returns the export file name for a command.
func FileName(command, ext string) string {
	return slugs.FileName(command, ext)
}

// Anchor returns the fragment ID of the index'th parameter heading, as
// generated for "### 1. Mode".
func Anchor(index int, name string) string {
	return slugs.AnchorSlug(fmt.Sprintf("%d %s", index+1, name))
}

func code(s string) string {
	if s == "" {
		return ""
	}
	if strings.Contains(s, "`") {
		return "`` " + s + " ``"
	}
	return "`" + s + "`"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(oneLine(s), "|", `\|`)
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
