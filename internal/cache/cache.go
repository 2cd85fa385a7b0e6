package cache

import (
	"container/list"
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Repository хранит сериализованные результаты расчетов
type Repository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}

// Key строит ключ кэша из имени инструмента и параметров запроса.
// encoding/json сортирует ключи map, поэтому одинаковые параметры дают одинаковый ключ.
func Key(toolName string, params map[string]interface{}) (string, error) {
	raw, err := json.Marshal(params)
	if err != nil {
		return "", err
	}
	return "parcelado:" + toolName + ":" + strconv.FormatUint(xxhash.Sum64(raw), 16), nil
}

// DefaultMaxEntries ограничение размера кэша в памяти по умолчанию
const DefaultMaxEntries = 10000

const sweepInterval = time.Minute

type memoryEntry struct {
	key       string
	value     string
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache кэш в памяти процесса, используется без Redis и в тестах.
// Просроченные записи удаляются при чтении и периодически при записи,
// при переполнении вытесняются давно не использованные.
type MemoryCache struct {
	mu         sync.Mutex
	data       map[string]*list.Element
	order      *list.List
	maxEntries int
	lastSweep  time.Time
	now        func() time.Time
}

// NewMemoryCache создает пустой кэш не более чем на maxEntries записей
func NewMemoryCache(maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &MemoryCache{
		data:       make(map[string]*list.Element),
		order:      list.New(),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.data[key]
	if !ok {
		return "", false
	}
	entry := el.Value.(*memoryEntry)
	if entry.expired(m.now()) {
		m.remove(el)
		return "", false
	}
	m.order.MoveToFront(el)
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if now.Sub(m.lastSweep) >= sweepInterval {
		m.sweep(now)
		m.lastSweep = now
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}

	if el, ok := m.data[key]; ok {
		entry := el.Value.(*memoryEntry)
		entry.value = value
		entry.expiresAt = expiresAt
		m.order.MoveToFront(el)
		return nil
	}

	m.data[key] = m.order.PushFront(&memoryEntry{key: key, value: value, expiresAt: expiresAt})
	for m.order.Len() > m.maxEntries {
		m.remove(m.order.Back())
	}
	return nil
}

// Len возвращает число записей в кэше
func (m *MemoryCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.order.Len()
}

func (m *MemoryCache) sweep(now time.Time) {
	for el := m.order.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*memoryEntry).expired(now) {
			m.remove(el)
		}
		el = next
	}
}

func (m *MemoryCache) remove(el *list.Element) {
	m.order.Remove(el)
	delete(m.data, el.Value.(*memoryEntry).key)
}
