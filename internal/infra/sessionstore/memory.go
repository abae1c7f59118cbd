package sessionstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryStore хранилище сессий в памяти процесса.
// Используется в тестах и для локального запуска без Redis.
// Сессии сериализуются так же, как в RedisStore, чтобы поведение
// обоих хранилищ совпадало.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// NewMemoryStore создает in-memory хранилище сессий
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

// Get возвращает сессию по идентификатору
func (s *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[id]
	if !ok || s.now().After(entry.expiresAt) {
		delete(s.entries, id)
		return nil, ErrSessionNotFound
	}

	var session Session
	if err := json.Unmarshal(entry.data, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return &session, nil
}

// Save сохраняет сессию и продлевает ее TTL
func (s *MemoryStore) Save(ctx context.Context, session *Session) error {
	session.UpdatedAt = s.now()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrEncode, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[session.ID] = memoryEntry{data: data, expiresAt: s.now().Add(s.ttl)}
	return nil
}

// Delete удаляет сессию
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}
