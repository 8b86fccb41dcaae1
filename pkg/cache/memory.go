package cache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

type entry struct {
	expiresAt time.Time // zero value = never expires
	page      Page
	key       string
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryOption configures Memory.
type MemoryOption func(*Memory)

// WithDefaultTTL sets the expiration used when Set gets a zero TTL.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(m *Memory) {
		m.defaultTTL = d
	}
}

// WithCleanupInterval sets how often expired pages are dropped. Zero disables
// the background cleanup. Default: 1 minute.
func WithCleanupInterval(d time.Duration) MemoryOption {
	return func(m *Memory) {
		m.cleanupInterval = d
	}
}

// WithMaxEntries bounds the number of cached pages; the least recently used
// page is evicted at the limit. Zero means unlimited. Default: 1024.
func WithMaxEntries(n int) MemoryOption {
	return func(m *Memory) {
		m.maxEntries = n
	}
}

// Memory is an in-process LRU page cache with TTL expiration.
type Memory struct {
	items           map[string]*list.Element
	lru             *list.List
	done            chan struct{}
	defaultTTL      time.Duration
	cleanupInterval time.Duration
	maxEntries      int
	mu              sync.Mutex
	closed          bool
}

// NewMemory creates a Memory cache. Call Close to stop the cleanup goroutine.
func NewMemory(opts ...MemoryOption) *Memory {
	m := &Memory{
		items:           make(map[string]*list.Element),
		lru:             list.New(),
		done:            make(chan struct{}),
		defaultTTL:      time.Hour,
		cleanupInterval: time.Minute,
		maxEntries:      1024,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.cleanupInterval > 0 {
		go m.janitor()
	}
	return m
}

// Get returns a cached page and marks it recently used.
func (m *Memory) Get(_ context.Context, key string) (Page, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	elem, ok := m.items[key]
	if !ok {
		return Page{}, ErrNotFound
	}
	e := elem.Value.(*entry)
	if e.expired(time.Now()) {
		m.remove(elem)
		return Page{}, ErrNotFound
	}
	m.lru.MoveToFront(elem)
	return e.page, nil
}

// Set stores a page.
func (m *Memory) Set(_ context.Context, key string, page Page, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrClosed
	}

	if ttl == 0 {
		ttl = m.defaultTTL
	}
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	if elem, ok := m.items[key]; ok {
		e := elem.Value.(*entry)
		e.page = page
		e.expiresAt = expiresAt
		m.lru.MoveToFront(elem)
		return nil
	}

	if m.maxEntries > 0 && len(m.items) >= m.maxEntries {
		if oldest := m.lru.Back(); oldest != nil {
			m.remove(oldest)
		}
	}
	m.items[key] = m.lru.PushFront(&entry{key: key, page: page, expiresAt: expiresAt})
	return nil
}

// Delete drops one page.
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if elem, ok := m.items[key]; ok {
		m.remove(elem)
	}
	return nil
}

// Purge drops every page.
func (m *Memory) Purge(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.items = make(map[string]*list.Element)
	m.lru.Init()
	return nil
}

// Len returns the number of cached pages, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Close stops the cleanup goroutine. Close is idempotent.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.closed {
		m.closed = true
		close(m.done)
	}
	return nil
}

func (m *Memory) janitor() {
	ticker := time.NewTicker(m.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-m.done:
			return
		case now := <-ticker.C:
			m.deleteExpired(now)
		}
	}
}

func (m *Memory) deleteExpired(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for elem := m.lru.Back(); elem != nil; {
		prev := elem.Prev()
		if elem.Value.(*entry).expired(now) {
			m.remove(elem)
		}
		elem = prev
	}
}

// remove drops elem. Caller must hold the mutex.
func (m *Memory) remove(elem *list.Element) {
	m.lru.Remove(elem)
	delete(m.items, elem.Value.(*entry).key)
}

var _ Cache = (*Memory)(nil)
