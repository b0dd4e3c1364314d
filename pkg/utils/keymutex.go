package utils

import "sync"

// KeyMutex provides a mutex per key so independent keys never contend.
// Locks are created lazily and held entries are reference counted, so
// the map does not grow with the total number of keys ever seen.
type KeyMutex[K comparable] struct {
	locks map[K]*keyLock
	mu    sync.Mutex
}

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// NewKeyMutex creates an empty KeyMutex.
func NewKeyMutex[K comparable]() *KeyMutex[K] {
	return &KeyMutex[K]{
		locks: make(map[K]*keyLock),
	}
}

// Lock acquires the mutex for key, blocking until it is available.
func (m *KeyMutex[K]) Lock(key K) {
	m.mu.Lock()

	lock, ok := m.locks[key]
	if !ok {
		lock = &keyLock{}
		m.locks[key] = lock
	}

	lock.refs++

	m.mu.Unlock()

	lock.mu.Lock()
}

// Unlock releases the mutex for key. The entry is removed once no
// goroutine holds or waits on it.
func (m *KeyMutex[K]) Unlock(key K) {
	m.mu.Lock()

	lock, ok := m.locks[key]
	if !ok {
		m.mu.Unlock()
		panic("utils: unlock of unlocked KeyMutex key")
	}

	lock.refs--
	if lock.refs == 0 {
		delete(m.locks, key)
	}

	m.mu.Unlock()

	lock.mu.Unlock()
}
