package server

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// Connection is one websocket client. Frames are read on one goroutine,
// requests are answered on another, and responses are written on a third,
// so keepalive traffic keeps flowing while a simulation runs.
type Connection struct {
	conn      *websocket.Conn
	server    *Server
	requests  chan []byte
	send      chan Response
	logger    *log.Logger
	ctx       context.Context
	cancel    context.CancelFunc
	closeOnce sync.Once
}

// NewConnection wraps an upgraded websocket for server.
func NewConnection(conn *websocket.Conn, server *Server) *Connection {
	ctx, cancel := context.WithCancel(context.Background())

	return &Connection{
		conn:     conn,
		server:   server,
		requests: make(chan []byte, queueSize),
		send:     make(chan Response, queueSize),
		logger:   server.logger.WithPrefix("conn"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs the connection until the client goes away or Close is called.
func (c *Connection) Start() {
	go c.writePump()
	go c.handlePump()
	go c.readPump()
}

// Close closes the connection. Running simulations for it are cancelled.
func (c *Connection) Close() error {
	var err error
	c.closeOnce.Do(func() {
		c.cancel()
		err = c.conn.Close()
	})
	return err
}

// SendResponse queues a response for the client. A client that stops
// reading is disconnected once its queue fills.
func (c *Connection) SendResponse(resp Response) error {
	return enqueue(c, c.send, resp, "send")
}

const (
	// Write budget for a single frame.
	writeWait = 10 * time.Second

	// Silence allowed from the client before the connection is dropped.
	pongWait = 60 * time.Second

	// Ping interval; below pongWait so a healthy client always answers in time.
	pingPeriod = (pongWait * 9) / 10

	// Largest request frame accepted.
	maxMessageSize = 8192

	// Pending requests or responses per connection.
	queueSize = 64
)

var (
	ErrConnectionClosed = websocket.ErrCloseSent
)

func enqueue[T any](c *Connection, ch chan T, v T, queue string) error {
	select {
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
	}

	select {
	case ch <- v:
		return nil
	case <-c.ctx.Done():
		return ErrConnectionClosed
	default:
		c.logger.Warn("Connection queue full, closing connection", "queue", queue)
		_ = c.Close()
		return ErrConnectionClosed
	}
}

// extendReadDeadline uses wall time. The network stack compares deadlines
// against the real clock; the server clock drives pings and timestamps only.
func (c *Connection) extendReadDeadline() {
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
}

// readPump only reads frames. Pong handling happens inside ReadMessage, so
// this loop must never wait on request work.
func (c *Connection) readPump() {
	defer func() { _ = c.Close() }()

	c.conn.SetReadLimit(maxMessageSize)
	c.extendReadDeadline()
	c.conn.SetPongHandler(func(string) error {
		c.extendReadDeadline()
		return nil
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Error("Read failed", "error", err)
			}
			return
		}
		c.extendReadDeadline()

		if err := enqueue(c, c.requests, data, "requests"); err != nil {
			return
		}
	}
}

// handlePump answers requests one at a time, so responses come back in the
// order they were asked.
func (c *Connection) handlePump() {
	for {
		select {
		case data := <-c.requests:
			var req Request
			if err := json.Unmarshal(data, &req); err != nil {
				_ = c.SendResponse(Response{
					Error:     &ErrorData{Kind: KindBadRequest, Message: err.Error()},
					Timestamp: c.server.clock.Now(),
				})
				continue
			}
			if err := c.SendResponse(c.server.Handle(c.ctx, req)); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}

// writePump owns every write on the socket: responses and pings.
func (c *Connection) writePump() {
	ticker := c.server.clock.NewTicker(pingPeriod, "conn", "ping")
	defer func() {
		ticker.Stop()
		_ = c.Close()
	}()

	for {
		select {
		case resp := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteJSON(resp); err != nil {
				c.logger.Error("Write failed", "id", resp.ID, "error", err)
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.ctx.Done():
			return
		}
	}
}
