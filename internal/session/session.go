package session

import (
	"sync"
	"time"
)

// Mode is the per-chat interaction state controlling how the next
// free-text message is interpreted.
type Mode int

const (
	ModeNone Mode = iota
	ModeChat
	ModeImage
	ModeReset
)

func (m Mode) String() string {
	switch m {
	case ModeChat:
		return "chat"
	case ModeImage:
		return "image"
	case ModeReset:
		return "reset"
	default:
		return "none"
	}
}

// Store tracks the current mode per chat id. An absent entry reads as
// ModeNone. Get must have no side effects.
type Store interface {
	Set(chatID int64, mode Mode)
	Get(chatID int64) Mode
	Clear(chatID int64)
}

type entry struct {
	mode    Mode
	touched time.Time
}

type MemoryStore struct {
	mu      sync.RWMutex
	entries map[int64]entry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[int64]entry), now: time.Now}
}

func (s *MemoryStore) Set(chatID int64, mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[chatID] = entry{mode: mode, touched: s.now()}
}

func (s *MemoryStore) Get(chatID int64) Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.entries[chatID].mode
}

func (s *MemoryStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[chatID] = entry{mode: ModeNone, touched: s.now()}
}

// ExpireBefore removes entries untouched since t and reports how many
// were removed. A removed entry reads as ModeNone afterwards, which is
// indistinguishable from a chat that never set a mode.
func (s *MemoryStore) ExpireBefore(t time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, e := range s.entries {
		if e.touched.Before(t) {
			delete(s.entries, id)
			n++
		}
	}
	return n
}
