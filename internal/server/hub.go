package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"

	"sagrada/internal/archive"
	"sagrada/internal/engine"
	"sagrada/internal/engine/toolcards"
	"sagrada/internal/lobby"
	"sagrada/internal/protocol"
)

const archiveTimeout = 5 * time.Second

// ResultStore keeps the results of finished games.
type ResultStore interface {
	SaveResult(ctx context.Context, r archive.Result) error
	ListResults(ctx context.Context, limit int) ([]archive.Result, error)
}

// HubOptions configures a Hub.
type HubOptions struct {
	Log *zap.Logger
	// Store receives the result when the game ends. Nil skips archiving.
	Store ResultStore
	// TurnTimeout ends an idle turn. Zero disables the timer.
	TurnTimeout time.Duration
	// NewConfig builds the engine configuration when the game starts.
	NewConfig func() engine.GameConfig
	// OnClose is called from the Run goroutine after the hub shuts down.
	OnClose func(gameID string)
}

// Hub manages WebSocket connections and game state for one game room.
// Every game action is applied from the Run goroutine. The hub shuts down
// when Stop is called, or when its last client leaves a room whose game is
// over or whose lobby is empty.
type Hub struct {
	mu         sync.Mutex
	gameID     string
	lobby      *lobby.Lobby
	game       *engine.Game
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	incoming   chan IncomingMessage
	quit       chan struct{}
	done       chan struct{}
	stopOnce   sync.Once
	onClose    func(gameID string)

	log         *zap.Logger
	store       ResultStore
	newConfig   func() engine.GameConfig
	turnTimeout time.Duration
	timer       *time.Timer
	timerC      <-chan time.Time
	timedTurn   *engine.Turn
	archived    bool
}

func NewHub(gameID string, lob *lobby.Lobby, opts HubOptions) *Hub {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	newConfig := opts.NewConfig
	if newConfig == nil {
		newConfig = engine.DefaultConfig
	}
	return &Hub{
		gameID:      gameID,
		lobby:       lob,
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		incoming:    make(chan IncomingMessage, 256),
		quit:        make(chan struct{}),
		done:        make(chan struct{}),
		onClose:     opts.OnClose,
		log:         log.With(zap.String("game_id", gameID)),
		store:       opts.Store,
		newConfig:   newConfig,
		turnTimeout: opts.TurnTimeout,
	}
}

func (h *Hub) Run() {
	defer h.shutdown()
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			h.log.Debug("client connected", zap.String("player_id", client.PlayerID))
			h.sendLobbyUpdate()
			if h.game != nil {
				h.sendStateToClient(client)
			}

		case client := <-h.unregister:
			h.detach(client)
			if h.idle() {
				h.log.Info("room idle, closing")
				return
			}

		case msg := <-h.incoming:
			h.handleMessage(msg)

		case <-h.timerC:
			h.handleTurnTimeout()
			if h.idle() {
				h.log.Info("abandoned game finished, closing")
				return
			}

		case <-h.quit:
			return
		}
	}
}

// Stop ends the Run loop. It is safe to call more than once.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.quit) })
}

// Done is closed once the hub has shut down and OnClose has returned.
func (h *Hub) Done() <-chan struct{} {
	return h.done
}

func (h *Hub) shutdown() {
	h.stopTimer()
	h.mu.Lock()
	for client := range h.clients {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
	if h.onClose != nil {
		h.onClose(h.gameID)
	}
	close(h.done)
}

// detach drops a client. Before the game starts a player whose last
// connection goes away gives up their seat.
func (h *Hub) detach(client *Client) {
	h.mu.Lock()
	if _, ok := h.clients[client]; ok {
		delete(h.clients, client)
		close(client.send)
	}
	h.mu.Unlock()
	h.log.Debug("client disconnected", zap.String("player_id", client.PlayerID))

	if h.game != nil || client.PlayerID == "" || h.connected(client.PlayerID) {
		return
	}
	h.lobby.Leave(client.PlayerID)
	h.sendLobbyUpdate()
}

func (h *Hub) connected(playerID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if client.PlayerID == playerID {
			return true
		}
	}
	return false
}

// idle reports whether nobody is left to serve: no connections, and either
// the game is over or nobody holds a lobby seat.
func (h *Hub) idle() bool {
	h.mu.Lock()
	n := len(h.clients)
	h.mu.Unlock()
	if n > 0 {
		return false
	}
	if h.game != nil {
		return h.game.Phase == engine.PhaseGameOver
	}
	return len(h.lobby.GetPlayers()) == 0
}

func (h *Hub) handleMessage(msg IncomingMessage) {
	// Frames still buffered from a detached client are dropped; its send
	// channel is already closed.
	h.mu.Lock()
	_, live := h.clients[msg.Client]
	h.mu.Unlock()
	if !live {
		return
	}
	if msg.Err != nil {
		h.sendError(msg.Client, "malformed message")
		return
	}
	switch msg.Envelope.Type {
	case protocol.MsgJoin:
		h.handleJoin(msg)
	case protocol.MsgReady:
		h.handleReady(msg)
	case protocol.MsgStartGame:
		h.handleStartGame(msg)
	default:
		h.handleGameAction(msg)
	}
}

func (h *Hub) handleJoin(msg IncomingMessage) {
	var join protocol.JoinMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &join); err != nil {
		h.sendError(msg.Client, "invalid join message")
		return
	}
	if err := h.lobby.Join(join.PlayerID, join.Name); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	msg.Client.PlayerID = join.PlayerID
	h.log.Info("player joined", zap.String("player_id", join.PlayerID), zap.String("name", join.Name))
	h.sendLobbyUpdate()
	if h.game != nil {
		h.sendStateToClient(msg.Client)
	}
}

func (h *Hub) handleReady(msg IncomingMessage) {
	var ready protocol.ReadyMsg
	if err := json.Unmarshal(msg.Envelope.Payload, &ready); err != nil {
		h.sendError(msg.Client, "invalid ready message")
		return
	}
	if err := h.lobby.SetReady(msg.Client.PlayerID, ready.Ready); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}
	h.sendLobbyUpdate()
}

func (h *Hub) handleStartGame(msg IncomingMessage) {
	if err := h.lobby.Start(); err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	lobbyPlayers := h.lobby.GetPlayers()
	players := make([]*engine.Player, len(lobbyPlayers))
	for i, lp := range lobbyPlayers {
		players[i] = engine.NewPlayer(lp.ID, lp.Name)
	}

	game, err := engine.NewGame(players, h.newConfig(), toolcards.NewRegistry())
	if err != nil {
		h.log.Error("create game", zap.Error(err))
		h.sendError(msg.Client, err.Error())
		return
	}
	game.Prompter = h
	events, err := game.StartGame()
	if err != nil {
		h.log.Error("start game", zap.Error(err))
		h.sendError(msg.Client, err.Error())
		return
	}
	h.game = game
	h.log.Info("game started", zap.Int("players", len(players)), zap.Bool("solo", game.IsSolo()))
	h.sendLobbyUpdate()
	h.afterChange(events)
}

func (h *Hub) handleGameAction(msg IncomingMessage) {
	if h.game == nil {
		h.sendError(msg.Client, "game not started")
		return
	}

	action, err := protocol.ParseAction(msg.Envelope)
	if err != nil {
		h.sendError(msg.Client, err.Error())
		return
	}

	events, err := h.game.Apply(msg.Client.PlayerID, action)
	if err != nil {
		h.log.Debug("action rejected",
			zap.String("player_id", msg.Client.PlayerID),
			zap.String("action", string(action.Type)),
			zap.Error(err))
		msg.Client.SendEnvelope(protocol.MustEnvelope(protocol.MsgError, protocol.NewError(err)))
		return
	}
	h.afterChange(events)
}

func (h *Hub) handleTurnTimeout() {
	h.timerC = nil
	turn := h.game.CurrentTurn()
	if turn == nil {
		return
	}
	h.log.Info("turn timed out", zap.String("player_id", turn.Player))
	events, err := h.game.ForceEndTurn()
	if err != nil {
		h.log.Warn("force end turn", zap.Error(err))
		return
	}
	h.afterChange(events)
}

// afterChange publishes a state change and keeps the turn timer and the
// archive in step with it.
func (h *Hub) afterChange(events []engine.Event) {
	h.broadcastEvents(events)
	h.broadcastState()
	if h.game.Phase == engine.PhaseGameOver {
		h.stopTimer()
		h.archive()
		return
	}
	h.resetTurnTimer()
}

func (h *Hub) resetTurnTimer() {
	turn := h.game.CurrentTurn()
	if h.turnTimeout <= 0 || turn == nil || turn == h.timedTurn {
		return
	}
	h.stopTimer()
	h.timedTurn = turn
	h.timer = time.NewTimer(h.turnTimeout)
	h.timerC = h.timer.C
	h.broadcastAll(protocol.MustEnvelope(protocol.MsgTurnTimer, protocol.TurnTimer{
		Player:    turn.Player,
		ExpiresAt: time.Now().Add(h.turnTimeout).UnixMilli(),
	}))
}

func (h *Hub) stopTimer() {
	if h.timer != nil {
		h.timer.Stop()
	}
	h.timer = nil
	h.timerC = nil
	h.timedTurn = nil
}

func (h *Hub) archive() {
	if h.archived {
		return
	}
	h.archived = true
	for _, s := range h.game.Scores {
		h.log.Info("final score", zap.String("player_id", s.PlayerID), zap.Int("total", s.Total))
	}
	if h.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
	defer cancel()
	err := h.store.SaveResult(ctx, archive.Result{
		GameID:     h.gameID,
		FinishedAt: time.Now().UTC(),
		Rounds:     h.game.Turns.Round(),
		Solo:       h.game.IsSolo(),
		Scores:     h.game.Scores,
	})
	if err != nil {
		h.log.Error("archive result", zap.Error(err))
	}
}

// Prompt sends a tool card parameter request to the player's connections.
func (h *Hub) Prompt(playerID string, req engine.ParameterRequest) {
	env := protocol.MustEnvelope(protocol.MsgToolCardPrompt, req)
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		if client.Type == ClientPlayer && client.PlayerID == playerID {
			client.SendEnvelope(env)
		}
	}
}

func (h *Hub) broadcastEvents(events []engine.Event) {
	for _, ev := range events {
		env := protocol.MustEnvelope(protocol.MsgEvent, ev)
		h.broadcastAll(env)
	}
}

func (h *Hub) broadcastState() {
	if h.game == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients {
		h.sendStateToClient(client)
	}
}

func (h *Hub) sendStateToClient(client *Client) {
	if h.game == nil {
		return
	}
	if client.Type == ClientTV {
		pv := h.game.PublicView()
		env := protocol.MustEnvelope(protocol.MsgGameState, pv)
		client.SendEnvelope(env)
	} else {
		view := h.game.ViewFor(client.PlayerID)
		env := protocol.MustEnvelope(protocol.MsgPlayerState, view)
		client.SendEnvelope(env)
	}
}

func (h *Hub) sendLobbyUpdate() {
	players := h.lobby.GetPlayers()
	lps := make([]protocol.LobbyPlayer, len(players))
	for i, p := range players {
		lps[i] = protocol.LobbyPlayer{ID: p.ID, Name: p.Name, Ready: p.Ready}
	}
	env := protocol.MustEnvelope(protocol.MsgLobbyUpdate, protocol.LobbyUpdate{
		GameID:     h.gameID,
		Players:    lps,
		MaxPlayers: h.lobby.MaxPlayers,
		Started:    h.lobby.IsStarted(),
	})
	h.broadcastAll(env)
}

func (h *Hub) broadcastAll(env protocol.Envelope) {
	h.mu.Lock()
	defer h.mu.Unlock()

	data, err := json.Marshal(env)
	if err != nil {
		h.log.Error("broadcast marshal", zap.Error(err))
		return
	}
	for client := range h.clients {
		select {
		case client.send <- data:
		default:
			h.log.Warn("client buffer full", zap.String("player_id", client.PlayerID))
		}
	}
}

func (h *Hub) sendError(client *Client, message string) {
	env := protocol.MustEnvelope(protocol.MsgError, protocol.ErrorMsg{Message: message})
	client.SendEnvelope(env)
}
