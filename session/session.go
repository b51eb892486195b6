package session

import (
	"sync"
	"time"

	"github.com/Progxy/phalsophobia-multiplayer/network"
)

// Session ties one remote connection to the player seat it controls.
type Session struct {
	ID          string
	Conn        network.Connection
	PlayerIndex int
	Name        string
	CreatedAt   time.Time
	LastActive  time.Time
	mutex       sync.RWMutex
}

func NewSession(id string, conn network.Connection) *Session {
	now := time.Now()
	return &Session{
		ID:          id,
		Conn:        conn,
		PlayerIndex: -1,
		CreatedAt:   now,
		LastActive:  now,
	}
}

func (s *Session) SendText(text string) error {
	s.mutex.Lock()
	s.LastActive = time.Now()
	s.mutex.Unlock()
	return s.Conn.SendText(text)
}

func (s *Session) Bind(playerIndex int, name string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.PlayerIndex = playerIndex
	s.Name = name
}

func (s *Session) GetID() string {
	return s.ID
}

func (s *Session) Close() error {
	return s.Conn.Close()
}

// Manager keeps track of every connected remote session.
type Manager struct {
	sessions map[string]*Session
	mutex    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

func (m *Manager) Add(session *Session) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.sessions[session.ID] = session
}

func (m *Manager) Remove(sessionID string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	delete(m.sessions, sessionID)
}

func (m *Manager) Get(sessionID string) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	session, exists := m.sessions[sessionID]
	return session, exists
}

// GetByPlayerIndex returns the session bound to a player seat, if any.
func (m *Manager) GetByPlayerIndex(playerIndex int) (*Session, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for _, session := range m.sessions {
		if session.PlayerIndex == playerIndex {
			return session, true
		}
	}
	return nil, false
}

// All returns a snapshot of every session.
func (m *Manager) All() []*Session {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	result := make([]*Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		result = append(result, session)
	}
	return result
}

func (m *Manager) Count() int {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return len(m.sessions)
}

// CloseAll closes every connection and empties the manager.
func (m *Manager) CloseAll() {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	for id, session := range m.sessions {
		session.Conn.Close()
		delete(m.sessions, id)
	}
}
