package blob

import (
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStorage is an in-process Storage for development and tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data     []byte
	modified time.Time
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string]memoryObject)}
}

func (m *MemoryStorage) Put(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[key] = memoryObject{data: data, modified: time.Now().UTC()}
	return nil
}

func (m *MemoryStorage) List(ctx context.Context, prefix string) ([]Object, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var objects []Object
	for key, obj := range m.objects {
		if strings.HasPrefix(key, prefix) {
			objects = append(objects, Object{
				Key:          key,
				Size:         int64(len(obj.data)),
				LastModified: obj.modified,
			})
		}
	}

	sort.Slice(objects, func(i, j int) bool { return objects[i].Key < objects[j].Key })
	return objects, nil
}

// PresignGet returns ""; in-process objects have no URL.
func (m *MemoryStorage) PresignGet(ctx context.Context, key string) (string, error) {
	return "", nil
}

// Get returns the stored bytes for key. Test helper.
func (m *MemoryStorage) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	return obj.data, ok
}
