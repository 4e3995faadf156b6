// Package memory provides an in-process ObjectStorage for development and
// tests. Objects live for the lifetime of the process, which matches the
// one-upload-one-transform session model.
package memory

import (
	"context"
	"fmt"
	"io"
	"sync"

	"vixip/internal/port"
)

type memoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore creates an in-memory ObjectStorage implementation.
func NewMemoryStore() port.ObjectStorage {
	return &memoryStore{objects: make(map[string][]byte)}
}

func objectKey(bucket, key string) string {
	return bucket + "/" + key
}

func (m *memoryStore) Upload(ctx context.Context, input port.UploadInput) (*port.UploadOutput, error) {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, fmt.Errorf("memory upload read: %w", err)
	}

	m.mu.Lock()
	m.objects[objectKey(input.Bucket, input.Key)] = data
	m.mu.Unlock()

	return &port.UploadOutput{Location: objectKey(input.Bucket, input.Key)}, nil
}

func (m *memoryStore) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	m.mu.RLock()
	data, ok := m.objects[objectKey(bucket, key)]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("memory download: object %s not found", objectKey(bucket, key))
	}

	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *memoryStore) Delete(ctx context.Context, bucket, key string) error {
	m.mu.Lock()
	delete(m.objects, objectKey(bucket, key))
	m.mu.Unlock()
	return nil
}
