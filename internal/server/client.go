package server

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"sagrada/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
)

// ClientType distinguishes TV from player connections.
type ClientType int

const (
	ClientTV     ClientType = 0
	ClientPlayer ClientType = 1
)

func parseClientType(s string) ClientType {
	if s == "tv" {
		return ClientTV
	}
	return ClientPlayer
}

func (t ClientType) String() string {
	if t == ClientTV {
		return "tv"
	}
	return "player"
}

// Client represents a single WebSocket connection.
//
// PlayerID is owned by the hub goroutine once the client is registered.
// The pumps log through log, which carries the connection's identity.
type Client struct {
	hub      *Hub
	conn     *websocket.Conn
	send     chan []byte
	log      *zap.Logger
	PlayerID string
	Type     ClientType
}

func NewClient(hub *Hub, conn *websocket.Conn, playerID string, clientType ClientType) *Client {
	return &Client{
		hub:  hub,
		conn: conn,
		send: make(chan []byte, 256),
		log: hub.log.With(
			zap.String("conn_id", uuid.NewString()),
			zap.Stringer("client_type", clientType),
			zap.String("requested_player", playerID),
		),
		PlayerID: playerID,
		Type:     clientType,
	}
}

// forward hands a frame to the hub. Undecodable frames are forwarded with
// their error so the hub can answer them. It reports false once the hub has
// shut down.
func (c *Client) forward(frame []byte) bool {
	msg := IncomingMessage{Client: c}
	if err := json.Unmarshal(frame, &msg.Envelope); err != nil {
		c.log.Debug("ws parse", zap.Error(err))
		msg.Err = err
	}
	select {
	case c.hub.incoming <- msg:
		return true
	case <-c.hub.done:
		return false
	}
}

// ReadPump reads messages from the WebSocket and forwards to the hub.
func (c *Client) ReadPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn("ws read", zap.Error(err))
			}
			return
		}
		if !c.forward(message) {
			return
		}
	}
}

// WritePump writes messages from the send channel to the WebSocket.
func (c *Client) WritePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				c.log.Debug("ws write", zap.Error(err))
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// SendEnvelope queues a typed message for this client. It is called from
// the hub goroutine.
func (c *Client) SendEnvelope(env protocol.Envelope) {
	data, err := json.Marshal(env)
	if err != nil {
		c.hub.log.Error("marshal envelope", zap.String("type", env.Type), zap.Error(err))
		return
	}
	select {
	case c.send <- data:
	default:
		c.hub.log.Warn("send buffer full, dropping message", zap.String("player_id", c.PlayerID), zap.String("type", env.Type))
	}
}

// IncomingMessage pairs a message with its source client. Err is set when
// the frame could not be decoded.
type IncomingMessage struct {
	Client   *Client
	Envelope protocol.Envelope
	Err      error
}
