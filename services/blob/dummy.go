package blobsvc

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// DummyStorage keeps uploads in memory.
type DummyStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

var _ core.FileStorage = (*DummyStorage)(nil)

func NewDummyStorage() *DummyStorage {
	return &DummyStorage{objects: make(map[string][]byte)}
}

func (sto *DummyStorage) Upload(_ context.Context, key string, r io.Reader, _ string) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return "", errors.Wrap(err, "reading upload")
	}

	sto.mu.Lock()
	defer sto.mu.Unlock()
	sto.objects[key] = buf.Bytes()
	return "https://storage.local/" + key, nil
}

// Object returns an uploaded object's content for assertions.
func (sto *DummyStorage) Object(key string) ([]byte, bool) {
	sto.mu.Lock()
	defer sto.mu.Unlock()
	content, ok := sto.objects[key]
	return content, ok
}
