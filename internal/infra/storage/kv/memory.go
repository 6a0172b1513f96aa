package kv

import (
	"context"
	"sync"
)

// MemoryBackend хранит коллекции в памяти процесса
// Используется в тестах и при storage.backend = "memory"
type MemoryBackend struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryBackend создает пустое in-memory хранилище
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{docs: make(map[string][]byte)}
}

// Load возвращает копию сохраненного документа
func (b *MemoryBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	doc, ok := b.docs[collection]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), doc...), nil
}

// Save сохраняет копию документа
func (b *MemoryBackend) Save(ctx context.Context, collection string, payload []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.docs[collection] = append([]byte(nil), payload...)
	return nil
}
