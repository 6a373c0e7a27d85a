// Package livereload pushes rebuild notifications to browsers over websockets.
package livereload

import (
	"context"
	_ "embed"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/coder/websocket"
	"go.trai.ch/press/internal/core/domain"
	"go.trai.ch/press/internal/core/ports"
)

// Message types understood by the client script.
const (
	TypeFullReload = "full_reload"
	TypeCSSUpdate  = "css_update"
)

const (
	sendBuffer   = 16
	writeTimeout = 5 * time.Second
)

//go:embed client.js
var clientScript []byte

// Message is a notification sent to every connected browser.
type Message struct {
	Type string   `json:"type"`
	URLs []string `json:"urls,omitempty"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub tracks connected browsers and broadcasts notifications to them.
// It serves the websocket endpoint and the client script.
type Hub struct {
	logger ports.Logger

	mu      sync.Mutex
	clients map[*client]struct{}
}

// NewHub creates an empty Hub.
func NewHub(logger ports.Logger) *Hub {
	return &Hub{
		logger:  logger,
		clients: make(map[*client]struct{}),
	}
}

// Reload asks every client to reload the current page.
func (h *Hub) Reload(urls ...string) {
	h.Broadcast(Message{Type: TypeFullReload, URLs: urls})
}

// InjectCSS asks every client to swap the stylesheets at urls.
func (h *Hub) InjectCSS(urls ...string) {
	h.Broadcast(Message{Type: TypeCSSUpdate, URLs: urls})
}

// Broadcast queues msg for every client. A client whose queue is full is
// disconnected instead of blocking the broadcast.
func (h *Hub) Broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error(err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.dropLocked(c)
		}
	}
}

// Clients returns the number of connected browsers.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		h.dropLocked(c)
	}
}

// ServeHTTP serves the client script at domain.LiveReloadScriptPath and
// upgrades every other request to a websocket.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == domain.LiveReloadScriptPath {
		w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(clientScript)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		CompressionMode: websocket.CompressionDisabled,
	})
	if err != nil {
		h.logger.Warn("live reload upgrade failed: " + err.Error())
		return
	}

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.add(c)
	defer h.remove(c)

	h.pump(conn.CloseRead(r.Context()), c)
}

// pump writes queued messages until the client goes away or is dropped.
func (h *Hub) pump(ctx context.Context, c *client) {
	for {
		select {
		case data, ok := <-c.send:
			if !ok {
				_ = c.conn.Close(websocket.StatusGoingAway, "dropped")
				return
			}
			wctx, cancel := context.WithTimeout(ctx, writeTimeout)
			err := c.conn.Write(wctx, websocket.MessageText, data)
			cancel()
			if err != nil {
				_ = c.conn.CloseNow()
				return
			}
		case <-ctx.Done():
			_ = c.conn.Close(websocket.StatusNormalClosure, "")
			return
		}
	}
}

func (h *Hub) add(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.dropLocked(c)
}

func (h *Hub) dropLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	close(c.send)
}
