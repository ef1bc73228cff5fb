package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/teranos/sketchflow/errors"
	"github.com/teranos/sketchflow/logger"
)

// WebSocket timeouts
const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second

	// Send pings to peer with this period (must be less than pongWait)
	pingPeriod = 54 * time.Second

	sendBuffer = 16
)

// wsRequest is one generation message. ID is echoed in the reply so
// clients can pipeline requests.
type wsRequest struct {
	ID string `json:"id,omitempty"`
	GenerateRequest
}

// wsReply carries either a result or an error.
type wsReply struct {
	ID     string `json:"id,omitempty"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	Hint   string `json:"hint,omitempty"`
	Status int    `json:"status,omitempty"`
}

// Client is one WebSocket connection. Messages are handled in order.
type Client struct {
	server    *Server
	conn      *websocket.Conn
	send      chan wsReply
	id        string
	ctx       context.Context
	cancel    context.CancelFunc
	log       *zap.SugaredLogger
	closeOnce sync.Once
}

// HandleWebSocket upgrades the connection and serves generation messages
// until the peer goes away.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		s.log.Warnw("WebSocket upgrade failed", logger.FieldError, err)
		return
	}

	ctx, cancel := context.WithCancel(logger.WithComponent(context.Background(), "websocket"))
	id := uuid.NewString()
	c := &Client{
		server: s,
		conn:   conn,
		send:   make(chan wsReply, sendBuffer),
		id:     id,
		ctx:    ctx,
		cancel: cancel,
		log:    logger.FromContext(ctx, s.log).With(logger.FieldClient, id),
	}
	c.log.Debugw("WebSocket client connected")

	go c.writePump()
	c.readPump()
}

// readPump handles reading messages from the WebSocket connection
func (c *Client) readPump() {
	defer c.close()

	c.conn.SetReadLimit(c.server.cfg.MaxBodyBytes)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNoStatusReceived,
			) {
				c.log.Warnw("WebSocket read error", logger.FieldError, err)
			}
			return
		}

		reply := c.handle(data)
		select {
		case c.send <- reply:
		case <-c.ctx.Done():
			return
		}
	}
}

func (c *Client) handle(data []byte) wsReply {
	var msg wsRequest
	if err := json.Unmarshal(data, &msg); err != nil {
		return failureReply("", errors.NewInvalidRequestError("invalid message: %v", err))
	}
	if c.server.limiter != nil && !c.server.limiter.Allow() {
		return wsReply{ID: msg.ID, Error: "rate limit exceeded", Status: http.StatusTooManyRequests}
	}

	result, err := c.server.generate(c.ctx, msg.GenerateRequest)
	if err != nil {
		return failureReply(msg.ID, err)
	}
	return wsReply{ID: msg.ID, Result: result}
}

func failureReply(id string, err error) wsReply {
	body := failureBody(err)
	return wsReply{ID: id, Error: body.Error, Hint: body.Hint, Status: statusFor(err)}
}

// writePump writes replies and keepalive pings to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case <-c.ctx.Done():
			return
		case reply := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(reply); err != nil {
				c.log.Debugw("WebSocket write error", logger.FieldError, err)
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

func (c *Client) close() {
	c.closeOnce.Do(func() {
		c.cancel()
		c.conn.Close()
		c.log.Debugw("WebSocket client disconnected")
	})
}
