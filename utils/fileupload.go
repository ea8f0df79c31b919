package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"time"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateUploadSize rejects files above MaxFileSize
func ValidateUploadSize(fileHeader *multipart.FileHeader) error {
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}
	return nil
}

// StorageKey builds the storage key for an uploaded product image.
// Format: products/{unix-timestamp}-{original filename}
func StorageKey(filename string) string {
	return fmt.Sprintf("products/%d-%s", time.Now().Unix(), filepath.Base(filename))
}

// FileURL returns the API path for retrieving a stored file
func FileURL(key string) string {
	if key == "" {
		return ""
	}
	return "/api/v1/files/" + key
}

// CurrencySymbol maps a currency code to its display symbol.
// Anything outside INR and EUR renders as a dollar sign.
func CurrencySymbol(currency string) string {
	switch currency {
	case "INR":
		return "₹"
	case "EUR":
		return "€"
	default:
		return "$"
	}
}
