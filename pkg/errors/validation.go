package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// ValidatePath validates a path relative to a trusted base directory, such
// as a theme file under the config directory.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No absolute paths (must be relative)
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.HasPrefix(path, "/") {
		return New(ErrCodeInvalidPath, "path must be relative (cannot start with /)")
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}

// themeNameRegex matches bare theme names ("contrast", "brand-2025").
var themeNameRegex = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ValidateThemeName validates a theme referenced by name rather than path.
// Names resolve to <config dir>/themes/<name>.toml, so they must be a
// single safe path segment.
func ValidateThemeName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidTheme, "theme name cannot be empty")
	}
	if len(name) > 64 {
		return New(ErrCodeInvalidTheme, "theme name too long (max 64 characters)")
	}
	if strings.Contains(name, "..") || !themeNameRegex.MatchString(name) {
		return New(ErrCodeInvalidTheme, "invalid theme name: %q", name)
	}
	return nil
}

// ValidateMongoURI checks that a connection string uses a MongoDB scheme.
func ValidateMongoURI(uri string) error {
	if uri == "" {
		return New(ErrCodeInvalidInput, "mongo URI cannot be empty")
	}
	if !strings.HasPrefix(uri, "mongodb://") && !strings.HasPrefix(uri, "mongodb+srv://") {
		return New(ErrCodeInvalidInput, "mongo URI must use mongodb:// or mongodb+srv:// scheme")
	}
	return nil
}
