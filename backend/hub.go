package main

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

type Hub struct {
	mu               sync.Mutex
	clients          map[*Client]struct{}
	broadcastBoard   chan boardPayload
	broadcastHistory chan historyPayload
	broadcastStatus  chan StatusResponse
}

type Client struct {
	hub  *Hub
	send chan []byte
}

type wsMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type pieceDTO struct {
	Row     int    `json:"row"`
	Col     int    `json:"col"`
	Player  string `json:"player"`
	Type    string `json:"type,omitempty"`
	Visible bool   `json:"visible"`
	ID      string `json:"id,omitempty"`
}

type boardPayload struct {
	Pieces     []pieceDTO `json:"pieces"`
	NextPlayer string     `json:"next_player"`
	Status     string     `json:"status"`
	Turn       int        `json:"turn"`
}

type historyPayload struct {
	History []MoveRecord `json:"history"`
}

func NewHub() *Hub {
	return &Hub{
		clients:          make(map[*Client]struct{}),
		broadcastBoard:   make(chan boardPayload, 16),
		broadcastHistory: make(chan historyPayload, 32),
		broadcastStatus:  make(chan StatusResponse, 32),
	}
}

func (h *Hub) Run(done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case payload := <-h.broadcastBoard:
			h.fanOut(wsMessage{Type: "board", Payload: mustMarshal(payload)})
		case payload := <-h.broadcastHistory:
			h.fanOut(wsMessage{Type: "history", Payload: mustMarshal(payload)})
		case payload := <-h.broadcastStatus:
			h.fanOut(wsMessage{Type: "status", Payload: mustMarshal(payload)})
		}
	}
}

func (h *Hub) fanOut(msg wsMessage) {
	h.mu.Lock()
	for client := range h.clients {
		client.sendJSON(msg)
	}
	h.mu.Unlock()
}

func (h *Hub) Register(c *Client) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
}

func (h *Hub) HasClients() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients) > 0
}

type pingPayload struct {
	SentAtMs int64 `json:"sent_at_ms"`
}

// wsWriter is the slice of *websocket.Conn the write pump needs.
type wsWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// writePump owns all writes on one connection: queued frames from the hub
// plus a timestamped ping whenever the connection has been idle for a full
// interval, so proxies keep quiet games open. Returns nil once the send
// channel closes.
func (c *Client) writePump(conn wsWriter, idle time.Duration) error {
	ticker := time.NewTicker(idle)
	defer ticker.Stop()
	lastWrite := time.Now()

	for {
		select {
		case msg, ok := <-c.send:
			if !ok {
				return nil
			}
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return err
			}
			lastWrite = time.Now()
		case <-ticker.C:
			if time.Since(lastWrite) < idle {
				continue
			}
			ping := mustMarshal(wsMessage{
				Type:    "ping",
				Payload: mustMarshal(pingPayload{SentAtMs: time.Now().UnixMilli()}),
			})
			if err := conn.WriteMessage(websocket.TextMessage, ping); err != nil {
				return err
			}
			lastWrite = time.Now()
		}
	}
}

func (c *Client) sendJSON(msg wsMessage) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func mustMarshal(v any) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}
