package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidateKind validates a supplement or decoration kind string. Kinds are
// free-form but must be usable as identifiers in logs, presets and URLs.
//
// The validation rules are intentionally conservative:
//   - No empty kinds
//   - No control characters or whitespace
//   - Maximum length of 64 characters
func ValidateKind(kind string) error {
	if kind == "" {
		return New(ErrCodeInvalidInput, "kind cannot be empty")
	}

	if len(kind) > 64 {
		return New(ErrCodeInvalidInput, "kind too long (max 64 characters)")
	}

	for _, r := range kind {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "kind contains invalid characters: %q", kind)
		}
	}

	return nil
}

// ValidatePresetPath validates a preset file path for safety.
// It prevents path traversal and ensures reasonable path length.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePresetPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPreset, "preset path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPreset, "preset path too long (max %d characters)", maxPathLength)
	}

	// Check for null bytes and control characters
	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPreset, "preset path contains invalid characters")
		}
	}

	// Check for path traversal
	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPreset, "preset path cannot contain path traversal sequences (..)")
	}

	// No backslashes (potential Windows path injection)
	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPreset, "preset path cannot contain backslashes")
	}

	return nil
}

// hexColorRegex matches #RGB, #RRGGBB and #RRGGBBAA color strings.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidateHexColor validates a hex color string as used in presets.
// The empty string is valid and means "unset".
func ValidateHexColor(s string) error {
	if s == "" {
		return nil
	}

	if !hexColorRegex.MatchString(s) {
		return New(ErrCodeInvalidColor, "invalid hex color: %q", s)
	}

	return nil
}

// ValidateSectionIndex validates a section index from an external source
// (preset file or inspector URL) against the section count. The index -1
// addresses the global section and is always valid.
func ValidateSectionIndex(index, sections int) error {
	if index == -1 {
		return nil
	}

	if index < 0 || index >= sections {
		return New(ErrCodeSectionNotFound, "section %d does not exist (have %d)", index, sections)
	}

	return nil
}
