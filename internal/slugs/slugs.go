// Package slugs turns command and parameter names into file names and
// anchors for exported reference pages.
//
// There are two strategies:
//   - Anchor slugs: fragment IDs for parameter headings, matching the ids
//     most markdown renderers generate for "### Name".
//   - File slugs: file names for command pages, built on gosimple/slug.
package slugs

import (
	"strings"
	"unicode"

	goslug "github.com/gosimple/slug"
)

// AnchorSlug converts heading text to a fragment ID. Letters and digits are
// kept, separators collapse to a single dash.
func AnchorSlug(text string) string {
	var result strings.Builder
	prevDash := false

	for _, r := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			result.WriteRune(r)
			prevDash = false
		case r == ' ' || r == '-' || r == '_' || r == ':':
			if !prevDash && result.Len() > 0 {
				result.WriteRune('-')
				prevDash = true
			}
		}
	}

	return strings.TrimSuffix(result.String(), "-")
}

// FileSlug converts a command name to a file-name-safe slug. Underscores
// survive, so CMD_SET_MODE becomes cmd_set_mode.
func FileSlug(name string) string {
	slugged := goslug.Make(name)
	if slugged == "" {
		slugged = strings.ToLower(strings.Join(strings.Fields(name), "-"))
	}
	if slugged == "" {
		slugged = "command"
	}
	return slugged
}

// FileName is FileSlug plus an extension such as ".md".
func FileName(name, ext string) string {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return FileSlug(name) + ext
}
