package lockmanager

import (
	"context"
	"sync"
)

// LockManager сериализует выполнение функций по ключу (например, по ID провайдера)
// Работает в пределах одного процесса, межпроцессной блокировки не дает
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// NewLockManager создает новый менеджер блокировок
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*keyLock)}
}

// DoSerializable выполняет fn, удерживая блокировку key
// Ожидание блокировки прерывается отменой ctx
func (m *LockManager) DoSerializable(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	l := m.acquireRef(key)
	defer m.releaseRef(key, l)

	select {
	case l.ch <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l.ch }()

	return fn(ctx)
}

func (m *LockManager) acquireRef(key string) *keyLock {
	m.mu.Lock()
	defer m.mu.Unlock()

	l, ok := m.locks[key]
	if !ok {
		l = &keyLock{ch: make(chan struct{}, 1)}
		m.locks[key] = l
	}
	l.refs++
	return l
}

func (m *LockManager) releaseRef(key string, l *keyLock) {
	m.mu.Lock()
	defer m.mu.Unlock()

	l.refs--
	if l.refs == 0 {
		delete(m.locks, key)
	}
}
