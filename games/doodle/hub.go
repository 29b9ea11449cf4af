/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import (
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const sendQueueSize = 64

type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

func newClient(id string, conn *websocket.Conn) *Client {
	return &Client{
		id:   id,
		conn: conn,
		send: make(chan []byte, sendQueueSize),
	}
}

func (c *Client) ID() string {
	return c.id
}

func (c *Client) close() {
	if c.conn != nil {
		_ = c.conn.Close()
	}
}

// Hub tracks live connections and the rooms they joined, and implements
// Gateway over them.
type Hub struct {
	mu      sync.Mutex
	clients map[string]*Client
	groups  map[string]map[string]*Client
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{
		clients: make(map[string]*Client),
		groups:  make(map[string]map[string]*Client),
		log:     log,
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[c.id] = c
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if cur, ok := h.clients[c.id]; ok && cur == c {
		h.dropLocked(c)
	}
}

// dropLocked forgets c everywhere and closes its queue, which ends its
// write pump.
func (h *Hub) dropLocked(c *Client) {
	delete(h.clients, c.id)

	for roomID, members := range h.groups {
		delete(members, c.id)
		if len(members) == 0 {
			delete(h.groups, roomID)
		}
	}

	close(c.send)
}

func (h *Hub) deliverLocked(c *Client, frame []byte) {
	select {
	case c.send <- frame:
	default:
		h.log.Warn().Msgf("SERVE: Dropping slow connection %s", c.id)
		h.dropLocked(c)
		c.close()
	}
}

func (h *Hub) Join(roomID, connID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c, ok := h.clients[connID]
	if !ok {
		return
	}

	members, ok := h.groups[roomID]
	if !ok {
		members = make(map[string]*Client)
		h.groups[roomID] = members
	}
	members[connID] = c
}

func (h *Hub) ToRoom(roomID, event string, payload any) {
	h.ToRoomExcept(roomID, "", event, payload)
}

func (h *Hub) ToRoomExcept(roomID, exceptConnID, event string, payload any) {
	frame, err := encode(event, payload)
	if err != nil {
		h.log.Error().Err(err).Msgf("SERVE: Encoding %s for %s", event, roomID)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.groups[roomID] {
		if id == exceptConnID {
			continue
		}
		h.deliverLocked(c, frame)
	}
}

func (h *Hub) ToConn(connID, event string, payload any) {
	frame, err := encode(event, payload)
	if err != nil {
		h.log.Error().Err(err).Msgf("SERVE: Encoding %s for %s", event, connID)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.clients[connID]; ok {
		h.deliverLocked(c, frame)
	}
}

// Connections returns the number of live connections.
func (h *Hub) Connections() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

// Close disconnects every client.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, c := range h.clients {
		h.dropLocked(c)
		c.close()
	}
}
