/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = 54 * time.Second
	maxMessageSize = 64 << 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// ServeWS upgrades the request and feeds the connection's events into game
// until it disconnects.
func ServeWS(hub *Hub, game *Game) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.log.Warn().Err(err).Msg("SERVE: Websocket upgrade failed")
			return
		}

		c := newClient(uuid.NewString(), conn)
		hub.register(c)

		hub.log.Info().Msgf("SERVE: Connection %s opened from %s", c.id, r.RemoteAddr)

		go c.writePump()
		c.readPump(hub, game)
	}
}

func (c *Client) readPump(h *Hub, g *Game) {
	defer func() {
		h.unregister(c)
		g.Disconnect(c.id)
		c.close()

		h.log.Info().Msgf("SERVE: Connection %s closed", c.id)
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug().Err(err).Msgf("SERVE: Read from %s", c.id)
			}
			return
		}

		var env Envelope
		if err := json.Unmarshal(data, &env); err != nil {
			h.reject(c.id, fmt.Errorf("%w: %v", ErrMalformedPayload, err))
			continue
		}

		if err := g.Dispatch(c.id, env); err != nil {
			h.reject(c.id, err)
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// reject tells connID what was wrong with its last event. Unknown event
// types are dropped without a reply.
func (h *Hub) reject(connID string, err error) {
	if errors.Is(err, ErrUnknownEvent) {
		h.log.Debug().Err(err).Msgf("SERVE: Ignoring event from %s", connID)
		return
	}

	h.log.Debug().Err(err).Msgf("SERVE: Rejected event from %s", connID)
	h.ToConn(connID, EventError, ErrorMessage{Message: err.Error()})
}
