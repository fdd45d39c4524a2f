package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// AllowedImageContentTypes is the set of allowed content types for image uploads.
var AllowedImageContentTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// MaxUploadSize is the maximum allowed file size for uploads (5MB).
const MaxUploadSize = 5 << 20

// ValidateFileUpload checks that the uploaded file has a valid image content type
// and does not exceed the maximum file size.
func ValidateFileUpload(fh *multipart.FileHeader) error {
	if fh.Size > MaxUploadSize {
		return fmt.Errorf("file size %d bytes exceeds maximum allowed size of 5MB", fh.Size)
	}

	contentType := fh.Header.Get("Content-Type")
	if !AllowedImageContentTypes[contentType] {
		return fmt.Errorf("invalid file type '%s'; allowed types: image/jpeg, image/png, image/webp, image/gif", contentType)
	}

	return nil
}

// SanitizeValidationError takes a validator error and returns a user-friendly message
// without leaking internal Go struct names. Field names are reported the way the
// JSON payload spells them.
func SanitizeValidationError(err error) string {
	if err == nil {
		return ""
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return "Invalid request body"
	}

	var messages []string
	for _, fe := range validationErrors {
		field := lowerFirst(fe.Field())
		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("%s is required", field))
		case "email":
			messages = append(messages, fmt.Sprintf("%s must be a valid email address", field))
		case "min":
			messages = append(messages, fmt.Sprintf("%s must be at least %s characters", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s must be at most %s characters", field, fe.Param()))
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, strings.ReplaceAll(fe.Param(), " ", ", ")))
		case "gte", "lte":
			messages = append(messages, fmt.Sprintf("%s is out of range", field))
		default:
			messages = append(messages, fmt.Sprintf("%s is invalid", field))
		}
	}

	if len(messages) == 0 {
		return "Invalid request body"
	}

	return strings.Join(messages, "; ")
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToLower(r[0])
	return string(r)
}
