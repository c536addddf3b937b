package errors

import (
	"strings"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "themes/contrast.toml", false},
		{"valid filename only", "brand.toml", false},
		{"valid with dots", "v1.2.3/theme.toml", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateThemeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "contrast", false},
		{"with dash", "brand-2025", false},
		{"with dot", "brand.dark", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"path", "themes/contrast", true},
		{"traversal", "a..b", true},
		{"starts with dot", ".hidden", true},
		{"spaces", "my theme", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateThemeName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateThemeName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTheme) {
				t.Errorf("ValidateThemeName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateMongoURI(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"standard", "mongodb://localhost:27017", false},
		{"srv", "mongodb+srv://cluster.example.net", false},

		{"empty", "", true},
		{"http", "http://localhost:27017", true},
		{"no scheme", "localhost:27017", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateMongoURI(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMongoURI(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFormat,
		ErrCodeInvalidTheme,
		ErrCodeInvalidPath,
		ErrCodeInvalidLayout,
		ErrCodeFileNotFound,
		ErrCodeRenderFailed,
		ErrCodeCache,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
