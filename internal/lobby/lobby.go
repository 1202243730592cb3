package lobby

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

var (
	ErrStarted        = errors.New("game already started")
	ErrFull           = errors.New("lobby is full")
	ErrNotEnough      = errors.New("not enough players")
	ErrNotReady       = errors.New("not all players ready")
	ErrUnknownPlayer  = errors.New("player is not in the lobby")
	ErrMissingDetails = errors.New("player id and name are required")
)

// PlayerInfo holds lobby-level player information.
type PlayerInfo struct {
	ID    string
	Name  string
	Ready bool
}

// Lobby represents a game lobby waiting for players.
type Lobby struct {
	mu         sync.Mutex
	ID         string
	Players    []*PlayerInfo
	MaxPlayers int
	MinPlayers int
	Started    bool
}

// NewLobby creates a new lobby seating up to maxPlayers. A single player
// may start a solo game.
func NewLobby(id string, maxPlayers int) *Lobby {
	return &Lobby{
		ID:         id,
		MaxPlayers: maxPlayers,
		MinPlayers: 1,
	}
}

// Join adds a player to the lobby.
func (l *Lobby) Join(id, name string) error {
	id, name = strings.TrimSpace(id), strings.TrimSpace(name)
	if id == "" || name == "" {
		return ErrMissingDetails
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	// Rejoining keeps the seat and takes the new name.
	for _, p := range l.Players {
		if p.ID == id {
			p.Name = name
			return nil
		}
	}
	if l.Started {
		return ErrStarted
	}
	if len(l.Players) >= l.MaxPlayers {
		return fmt.Errorf("%w: %d seats", ErrFull, l.MaxPlayers)
	}
	l.Players = append(l.Players, &PlayerInfo{ID: id, Name: name})
	return nil
}

// Leave removes a player from the lobby. Seats are kept once the game starts.
func (l *Lobby) Leave(id string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.Started {
		return
	}
	for i, p := range l.Players {
		if p.ID == id {
			l.Players = append(l.Players[:i], l.Players[i+1:]...)
			return
		}
	}
}

// SetReady toggles a player's ready state.
func (l *Lobby) SetReady(id string, ready bool) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, p := range l.Players {
		if p.ID == id {
			p.Ready = ready
			return nil
		}
	}
	return ErrUnknownPlayer
}

func (l *Lobby) canStart() error {
	if l.Started {
		return ErrStarted
	}
	if len(l.Players) < l.MinPlayers {
		return ErrNotEnough
	}
	for _, p := range l.Players {
		if !p.Ready {
			return ErrNotReady
		}
	}
	return nil
}

// CanStart returns true if enough players are ready.
func (l *Lobby) CanStart() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.canStart() == nil
}

// Start marks the lobby as started.
func (l *Lobby) Start() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.canStart(); err != nil {
		return err
	}
	l.Started = true
	return nil
}

// IsStarted reports whether the game has begun.
func (l *Lobby) IsStarted() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.Started
}

// GetPlayers returns a copy of the player list.
func (l *Lobby) GetPlayers() []PlayerInfo {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]PlayerInfo, len(l.Players))
	for i, p := range l.Players {
		out[i] = *p
	}
	return out
}
