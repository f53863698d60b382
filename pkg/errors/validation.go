package errors

import (
	"path/filepath"
	"strings"
	"unicode"
)

// maxPersonIDLength bounds person identifiers read from interchange files.
const maxPersonIDLength = 128

// ValidatePersonID validates a person identifier read from untrusted input.
//
// The validation rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - No leading or trailing whitespace
//   - Maximum length of 128 characters
func ValidatePersonID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "person id cannot be empty")
	}

	if len(id) > maxPersonIDLength {
		return New(ErrCodeInvalidInput, "person id too long (max %d characters)", maxPersonIDLength)
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "person id contains invalid control characters")
		}
	}

	if strings.TrimSpace(id) != id {
		return New(ErrCodeInvalidInput, "person id %q has surrounding whitespace", id)
	}

	return nil
}

// supportedGraphExts lists the interchange file extensions accepted by the CLI.
var supportedGraphExts = map[string]bool{
	".json": true,
	".toml": true,
	".yaml": true,
	".yml":  true,
}

// ValidateGraphFilename checks that a graph file has a supported extension.
func ValidateGraphFilename(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "graph path cannot be empty")
	}
	ext := strings.ToLower(filepath.Ext(path))
	if !supportedGraphExts[ext] {
		return New(ErrCodeInvalidFormat, "unsupported graph file %q (must be .json, .toml, .yaml or .yml)", path)
	}
	return nil
}
