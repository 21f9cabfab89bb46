package errors

import (
	"path"
	"regexp"
	"strings"
	"unicode"
)

// ValidateNodeName validates a node name before it is written into markup.
//
// Names are opaque identifiers, but they end up inside SVG text content and
// Graphviz DOT strings, so the rules are conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
func ValidateNodeName(name string) error {
	if name == "" {
		return New(ErrCodeMalformedEdge, "node name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeMalformedEdge, "node name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeMalformedEdge, "node name %q contains control characters", name)
		}
	}

	return nil
}

// colorKeywordRegex matches CSS color keywords (e.g. "blue", "lightgrey").
var colorKeywordRegex = regexp.MustCompile(`^[a-zA-Z]{3,32}$`)

// hexColorRegex matches #rgb, #rrggbb and #rrggbbaa colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateColor validates a color value that is written verbatim into an SVG
// attribute. Only CSS keywords and hex colors are accepted, which keeps
// request-supplied colors from breaking out of the attribute.
func ValidateColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if colorKeywordRegex.MatchString(color) || hexColorRegex.MatchString(color) {
		return nil
	}
	return New(ErrCodeInvalidColor, "invalid color %q (use a CSS keyword or #rrggbb)", color)
}

// idPrefixRegex matches prefixes that keep animation IDs usable as SMIL
// begin references: an XML name without '.', which begin values treat as
// the event separator.
var idPrefixRegex = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_-]*$`)

// ValidateIDPrefix validates a prefix prepended to animation element IDs.
// The empty prefix is valid.
func ValidateIDPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if len(prefix) > 64 {
		return New(ErrCodeInvalidInput, "id prefix too long (max 64 characters)")
	}
	if !idPrefixRegex.MatchString(prefix) {
		return New(ErrCodeInvalidInput, "invalid id prefix %q (use letters, digits, '-' and '_', starting with a letter)", prefix)
	}
	return nil
}

// ValidatePath checks an output path taken from a job file. The path must
// be relative, use forward slashes and stay below the directory it is
// resolved against.
func ValidatePath(p string) error {
	switch {
	case p == "":
		return New(ErrCodeInvalidPath, "path cannot be empty")
	case len(p) > 500:
		return New(ErrCodeInvalidPath, "path too long (max 500 characters)")
	case strings.ContainsFunc(p, unicode.IsControl):
		return New(ErrCodeInvalidPath, "path %q contains control characters", p)
	case strings.Contains(p, `\`):
		return New(ErrCodeInvalidPath, "path %q contains backslashes", p)
	case path.IsAbs(p):
		return New(ErrCodeInvalidPath, "path %q must be relative", p)
	}
	for _, seg := range strings.Split(path.Clean(p), "/") {
		if seg == ".." {
			return New(ErrCodeInvalidPath, "path %q leaves its directory (path traversal)", p)
		}
	}
	return nil
}
