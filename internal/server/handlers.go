package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"sagrada/internal/config"
	"sagrada/internal/lobby"
	qr "sagrada/internal/qrcode"
)

const (
	defaultResultsLimit = 20
	maxResultsLimit     = 100
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	LobbyMgr *lobby.Manager

	mu    sync.RWMutex
	hubs  map[string]*Hub
	cfg   config.Config
	store ResultStore
	log   *zap.Logger
}

func NewHandlers(cfg config.Config, store ResultStore, log *zap.Logger) *Handlers {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handlers{
		LobbyMgr: lobby.NewManager(cfg.MaxPlayers, log),
		hubs:     make(map[string]*Hub),
		cfg:      cfg,
		store:    store,
		log:      log,
	}
}

// CreateHub opens a lobby with a running hub and returns its ID.
func (h *Handlers) CreateHub() string {
	gameID := h.LobbyMgr.Create()
	hub := NewHub(gameID, h.LobbyMgr.Get(gameID), HubOptions{
		Log:         h.log,
		Store:       h.store,
		TurnTimeout: h.cfg.TurnTimeout,
		OnClose:     h.closeHub,
	})
	h.mu.Lock()
	h.hubs[gameID] = hub
	h.mu.Unlock()
	go hub.Run()
	return gameID
}

// closeHub forgets a hub that has shut down along with its lobby.
func (h *Handlers) closeHub(gameID string) {
	h.mu.Lock()
	delete(h.hubs, gameID)
	h.mu.Unlock()
	h.LobbyMgr.Remove(gameID)
}

// Shutdown stops every running hub.
func (h *Handlers) Shutdown() {
	h.mu.RLock()
	hubs := make([]*Hub, 0, len(h.hubs))
	for _, hub := range h.hubs {
		hubs = append(hubs, hub)
	}
	h.mu.RUnlock()
	for _, hub := range hubs {
		hub.Stop()
	}
}

func (h *Handlers) hub(gameID string) (*Hub, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	hub, ok := h.hubs[gameID]
	return hub, ok
}

// HandleCreateGame creates a new game lobby and redirects to its table view.
func (h *Handlers) HandleCreateGame(w http.ResponseWriter, r *http.Request) {
	gameID := h.CreateHub()
	http.Redirect(w, r, fmt.Sprintf("/tv.html?game=%s", gameID), http.StatusSeeOther)
}

// HandleQR generates a QR code PNG for joining the game.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	png, err := qr.Generate(qr.JoinURL(r.Host, gameID), qr.DefaultSize)
	if err != nil {
		h.log.Error("qr generation", zap.String("game_id", gameID), zap.Error(err))
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// HandleWS handles WebSocket connections.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	gameID := r.URL.Query().Get("game")
	playerID := r.URL.Query().Get("player")
	clientType := r.URL.Query().Get("type") // "tv" or "player"

	if gameID == "" {
		http.Error(w, "missing game parameter", http.StatusBadRequest)
		return
	}
	hub, ok := h.hub(gameID)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("ws upgrade", zap.String("game_id", gameID), zap.Error(err))
		return
	}

	client := NewClient(hub, conn, playerID, parseClientType(clientType))
	select {
	case hub.register <- client:
	case <-hub.Done():
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandlePlayerID returns a new player ID.
func (h *Handlers) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	id := GeneratePlayerID()
	w.Header().Set("Content-Type", "text/plain")
	_, _ = w.Write([]byte(id))
}

// HandleResults lists archived games, newest first.
func (h *Handlers) HandleResults(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		http.Error(w, "results archive is disabled", http.StatusNotFound)
		return
	}
	limit := defaultResultsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = min(n, maxResultsLimit)
	}
	results, err := h.store.ListResults(r.Context(), limit)
	if err != nil {
		h.log.Error("list results", zap.Error(err))
		http.Error(w, "could not load results", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(results); err != nil {
		h.log.Warn("write results", zap.Error(err))
	}
}
