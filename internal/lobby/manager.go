package lobby

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Manager manages multiple lobbies.
type Manager struct {
	mu         sync.Mutex
	lobbies    map[string]*Lobby
	maxPlayers int
	log        *zap.Logger
}

func NewManager(maxPlayers int, log *zap.Logger) *Manager {
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		lobbies:    make(map[string]*Lobby),
		maxPlayers: maxPlayers,
		log:        log,
	}
}

// Create creates a new lobby and returns its ID.
func (m *Manager) Create() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.NewString()
	m.lobbies[id] = NewLobby(id, m.maxPlayers)
	m.log.Info("lobby created", zap.String("game_id", id), zap.Int("max_players", m.maxPlayers))
	return id
}

// Get returns a lobby by ID.
func (m *Manager) Get(id string) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lobbies[id]
}

// Remove forgets a lobby.
func (m *Manager) Remove(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.lobbies[id]; ok {
		delete(m.lobbies, id)
		m.log.Info("lobby removed", zap.String("game_id", id))
	}
}

// Len returns the number of open lobbies.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.lobbies)
}
