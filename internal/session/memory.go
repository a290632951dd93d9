package session

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

const janitorInterval = time.Minute

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryStorage - хранилище сессий в памяти процесса. Подходит для одного
// экземпляра консоли; для нескольких используется Redis. Сессии хранятся
// сериализованными, как в Redis: каждый Get возвращает независимую копию,
// параллельные запросы с одним токеном не делят изменяемое состояние.
type MemoryStorage struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	quit     chan struct{}
	wg       sync.WaitGroup
}

func NewMemoryStorage() *MemoryStorage {
	storage := &MemoryStorage{
		sessions: make(map[string]memoryEntry),
		quit:     make(chan struct{}),
	}
	storage.wg.Add(1)
	go storage.janitor()
	return storage
}

// janitor - периодически удаляет истёкшие сессии
func (s *MemoryStorage) janitor() {
	defer s.wg.Done()
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()
	for {
		select {
		case <-s.quit:
			return
		case now := <-ticker.C:
			s.mu.Lock()
			for id, entry := range s.sessions {
				if now.After(entry.expiresAt) {
					delete(s.sessions, id)
				}
			}
			s.mu.Unlock()
		}
	}
}

func (s *MemoryStorage) Save(_ context.Context, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

func (s *MemoryStorage) Get(_ context.Context, id string) (*Session, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}
	var session Session
	if err := json.Unmarshal(entry.payload, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *MemoryStorage) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *MemoryStorage) Close() error {
	close(s.quit)
	s.wg.Wait()
	return nil
}
