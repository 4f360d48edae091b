package problem

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"tsumeshogi/internal/shogi"
)

var ErrNotFound = errors.New("problem not found")

// Manager メモリ上の出題セッション管理
type Manager struct {
	mu       sync.RWMutex
	problems map[string]*State
}

func NewManager() *Manager {
	return &Manager{problems: make(map[string]*State)}
}

func (m *Manager) New(pos *shogi.Position, attacker shogi.Side) *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	s := &State{
		ID:        id,
		Start:     pos.Clone(),
		Pos:       pos,
		Attacker:  attacker,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	m.problems[id] = s
	return s
}

func (m *Manager) Get(id string) (*State, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.problems[id]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

func (m *Manager) Update(id string, pos *shogi.Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.problems[id]
	if !ok {
		return ErrNotFound
	}
	s.Pos = pos
	s.UpdatedAt = time.Now()
	return nil
}
