package errors

import (
	"strings"
	"unicode"
)

// ValidatePhotoID rejects empty photo identifiers. Any other string,
// including whitespace and non-ASCII text, is a valid id; uniqueness is
// checked by the canvas.
func ValidatePhotoID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "photo id cannot be empty")
	}
	return nil
}

// ValidateDimensions checks that a rectangle has strictly positive sides.
func ValidateDimensions(id string, width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidInput, "photo %q has non-positive size %dx%d", id, width, height)
	}
	return nil
}

// ValidateCanvasWidth checks that a canvas width is strictly positive.
func ValidateCanvasWidth(width int) error {
	if width <= 0 {
		return New(ErrCodeInvalidInput, "canvas width must be positive, got %d", width)
	}
	return nil
}

// ValidatePath validates a manifest or output path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	if strings.ContainsFunc(path, unicode.IsControl) {
		return New(ErrCodeInvalidPath, "path contains invalid characters")
	}

	return nil
}
