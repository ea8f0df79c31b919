package services

import (
	"fmt"
	"io"
	"log"
	"mime"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/shreeji-machinery/quotation-api/config"
	"github.com/shreeji-machinery/quotation-api/utils"
)

// ErrFileNotFound is returned by FileStore.Open when no object exists
// under the requested key
var ErrFileNotFound = &utils.FileUploadError{Code: "FILE_NOT_FOUND", Message: "File not found"}

// FileStore abstracts where uploaded product images live. Keys are
// slash-separated paths like "products/1735000000-pump.png".
type FileStore interface {
	// Save stores the uploaded file and returns its storage key
	Save(fileHeader *multipart.FileHeader) (string, error)

	// Open returns a reader over the stored bytes plus the content type
	Open(key string) (io.ReadCloser, string, error)

	// Delete removes a stored file; deleting an absent key is not an error
	Delete(key string) error
}

var fileStoreInstance FileStore

// InitFileStore selects the storage backend from configuration: S3 when a
// bucket is configured, local disk otherwise
func InitFileStore(cfg *config.Config) (FileStore, error) {
	if cfg.S3Enabled() {
		store, err := NewS3FileStore(cfg)
		if err != nil {
			return nil, err
		}
		fileStoreInstance = store
		log.Printf("Using S3 file store (bucket %s)", cfg.AWSS3Bucket)
		return fileStoreInstance, nil
	}

	fileStoreInstance = &LocalFileStore{Dir: cfg.UploadDir}
	log.Printf("Using local file store (%s)", cfg.UploadDir)
	return fileStoreInstance, nil
}

// GetFileStore returns the initialized file store instance
func GetFileStore() FileStore {
	return fileStoreInstance
}

// SetFileStore sets the file store instance (primarily for testing)
func SetFileStore(store FileStore) {
	fileStoreInstance = store
}

// LocalFileStore keeps uploads on the local filesystem under Dir
type LocalFileStore struct {
	Dir string
}

// Save writes the uploaded file under a timestamped key
func (s *LocalFileStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	key := utils.StorageKey(fileHeader.Filename)

	fullPath := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Printf("warning: failed to close source file: %v", closeErr)
		}
	}()

	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	// Close before reporting success so an unflushed write surfaces
	if err := dst.Close(); err != nil {
		return "", fmt.Errorf("failed to close destination file: %w", err)
	}

	return key, nil
}

// Open serves the stored bytes; content type is derived from the extension
func (s *LocalFileStore) Open(key string) (io.ReadCloser, string, error) {
	fullPath := filepath.Join(s.Dir, filepath.FromSlash(key))

	file, err := os.Open(fullPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", ErrFileNotFound
		}
		return nil, "", fmt.Errorf("failed to open stored file: %w", err)
	}

	return file, contentTypeForKey(key), nil
}

// Delete removes the stored file
func (s *LocalFileStore) Delete(key string) error {
	fullPath := filepath.Join(s.Dir, filepath.FromSlash(key))
	if err := os.Remove(fullPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// contentTypeForKey guesses a content type from the key's extension
func contentTypeForKey(key string) string {
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(key))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
