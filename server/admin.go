package server

import (
	"encoding/json"
	"net/http"
)

// HandleLobbies lists every live lobby.
// GET /admin/lobbies
func (m *LobbyManager) HandleLobbies(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, map[string]any{"lobbies": m.List()})
}

// HandleMetrics reports one lobby's state and counters.
// GET /metrics?lobby=abc
func (m *LobbyManager) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("lobby")
	if name == "" {
		http.Error(w, "missing lobby query", http.StatusBadRequest)
		return
	}
	l, ok := m.Lookup(name)
	if !ok {
		http.Error(w, "no such lobby", http.StatusNotFound)
		return
	}
	info, ok := l.Info()
	if !ok {
		http.Error(w, "no such lobby", http.StatusNotFound)
		return
	}
	writeJSON(w, map[string]any{
		"lobby":   info,
		"metrics": l.Metrics().Snapshot(),
	})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
