package server

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// LobbyManager maps lobby names to running lobbies. A lobby is created by
// the first join that names it and removed once its last player leaves.
type LobbyManager struct {
	cfg Config
	ctx context.Context

	mu      sync.RWMutex
	lobbies map[string]*Lobby
}

func NewLobbyManager(ctx context.Context, cfg Config) *LobbyManager {
	return &LobbyManager{
		cfg:     cfg,
		ctx:     ctx,
		lobbies: make(map[string]*Lobby),
	}
}

// GetOrCreateLobby returns the lobby called name, starting a new one if
// needed.
func (m *LobbyManager) GetOrCreateLobby(name string) *Lobby {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l, ok := m.lobbies[name]; ok {
		return l
	}
	l := NewLobby(name, m.cfg)
	l.OnEmpty = m.removeLobby
	m.lobbies[name] = l
	go l.Run(m.ctx)
	Log.Infow("lobby created", "lobby", name)
	return l
}

func (m *LobbyManager) Lookup(name string) (*Lobby, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	l, ok := m.lobbies[name]
	return l, ok
}

// Join puts a player into the named lobby. A lobby that shut down between
// lookup and join is replaced once.
func (m *LobbyManager) Join(name string, id uuid.UUID, username string, conn Sender) (*Lobby, error) {
	for attempt := 0; attempt < 2; attempt++ {
		l := m.GetOrCreateLobby(name)
		err := l.Join(id, username, conn)
		if errors.Is(err, ErrLobbyClosed) {
			m.removeLobby(l)
			continue
		}
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	return nil, ErrLobbyClosed
}

func (m *LobbyManager) removeLobby(l *Lobby) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if cur, ok := m.lobbies[l.Name]; ok && cur == l {
		delete(m.lobbies, l.Name)
		Log.Infow("lobby removed", "lobby", l.Name)
	}
	l.Stop()
}

// List returns a snapshot of every live lobby, sorted by name.
func (m *LobbyManager) List() []LobbyInfo {
	m.mu.RLock()
	lobbies := make([]*Lobby, 0, len(m.lobbies))
	for _, l := range m.lobbies {
		lobbies = append(lobbies, l)
	}
	m.mu.RUnlock()

	out := make([]LobbyInfo, 0, len(lobbies))
	for _, l := range lobbies {
		if info, ok := l.Info(); ok {
			out = append(out, info)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Shutdown stops every lobby.
func (m *LobbyManager) Shutdown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for name, l := range m.lobbies {
		l.Stop()
		delete(m.lobbies, name)
	}
}
