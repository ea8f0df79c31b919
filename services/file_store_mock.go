package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/shreeji-machinery/quotation-api/utils"
)

// MockFileStore is an in-memory FileStore implementation for testing
type MockFileStore struct {
	files        map[string][]byte
	contentTypes map[string]string
	mu           sync.RWMutex

	// FailSave forces Save to return an error, for failure-path tests
	FailSave bool
}

// NewMockFileStore creates a new mock file store
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{
		files:        make(map[string][]byte),
		contentTypes: make(map[string]string),
	}
}

// SetAsMockForTesting sets this mock as the global file store instance
func (m *MockFileStore) SetAsMockForTesting() {
	SetFileStore(m)
}

// Save simulates storing an upload
func (m *MockFileStore) Save(fileHeader *multipart.FileHeader) (string, error) {
	if m.FailSave {
		return "", fmt.Errorf("simulated storage failure")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	key := utils.StorageKey(fileHeader.Filename)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[key] = content
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	m.contentTypes[key] = contentType

	return key, nil
}

// Open returns the stored bytes
func (m *MockFileStore) Open(key string) (io.ReadCloser, string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	content, ok := m.files[key]
	if !ok {
		return nil, "", ErrFileNotFound
	}
	return io.NopCloser(bytes.NewReader(content)), m.contentTypes[key], nil
}

// Delete removes the stored bytes
func (m *MockFileStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, key)
	delete(m.contentTypes, key)
	return nil
}

// FileCount returns how many files the mock holds
func (m *MockFileStore) FileCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.files)
}
