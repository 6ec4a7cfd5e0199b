package utils

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// InferMimeType guesses a MIME type from the file extension.
func InferMimeType(filename string) string {
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return contentType
}

// IsImageFile reports whether the MIME type is an image type.
func IsImageFile(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// GenerateObjectKey builds a unique, date-partitioned storage key:
// prefix/yyyy/mm/dd/uuid.ext.
func GenerateObjectKey(filename string, prefix string) string {
	id := uuid.New().String()
	ext := filepath.Ext(filename)

	now := time.Now()
	datePath := fmt.Sprintf("%d/%02d/%02d", now.Year(), now.Month(), now.Day())

	return fmt.Sprintf("%s/%s/%s%s", prefix, datePath, id, ext)
}

// SanitizeFileName replaces characters that are unsafe in object keys and
// bounds the length to 255 bytes keeping the extension.
func SanitizeFileName(filename string) string {
	invalidChars := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	sanitized := filename
	for _, char := range invalidChars {
		sanitized = strings.ReplaceAll(sanitized, char, "_")
	}

	if len(sanitized) > 255 {
		ext := filepath.Ext(sanitized)
		nameWithoutExt := sanitized[:len(sanitized)-len(ext)]
		maxNameLength := 255 - len(ext)
		if maxNameLength > 0 {
			sanitized = nameWithoutExt[:maxNameLength] + ext
		} else {
			sanitized = sanitized[:255]
		}
	}

	return sanitized
}
