package wizard

import (
	"sync"
	"time"

	"github.com/Freeeeeet/drivelead_bot/internal/model"
)

// SessionStore хранит сессии пользователей в памяти
type SessionStore struct {
	mu        sync.RWMutex
	sessions  map[int64]*Session       // telegramID -> Session
	languages map[int64]model.Language // язык переживает очистку сессии
}

// NewSessionStore создаёт новое хранилище сессий
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions:  make(map[int64]*Session),
		languages: make(map[int64]model.Language),
	}
}

// Get возвращает копию сессии пользователя
func (st *SessionStore) Get(userID int64) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	s, ok := st.sessions[userID]
	if !ok {
		return nil, false
	}
	return s.Clone(), true
}

// Save сохраняет копию сессии
func (st *SessionStore) Save(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.sessions[s.UserID] = s.Clone()
}

// Clear удаляет сессию пользователя, язык остаётся
func (st *SessionStore) Clear(userID int64) {
	st.mu.Lock()
	defer st.mu.Unlock()

	delete(st.sessions, userID)
}

// Language возвращает выбранный пользователем язык
func (st *SessionStore) Language(userID int64) (model.Language, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	lang, ok := st.languages[userID]
	return lang, ok
}

// SetLanguage запоминает язык пользователя
func (st *SessionStore) SetLanguage(userID int64, lang model.Language) {
	st.mu.Lock()
	defer st.mu.Unlock()

	st.languages[userID] = lang
}

// Len возвращает количество активных сессий
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()

	return len(st.sessions)
}

// Expire удаляет сессии, которые не обновлялись с момента before, и возвращает их количество
func (st *SessionStore) Expire(before time.Time) int {
	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if s.UpdatedAt.Before(before) {
			delete(st.sessions, id)
			removed++
		}
	}
	return removed
}
