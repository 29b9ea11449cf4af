package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/Seednode/sketchbox/games/doodle"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog"
	"github.com/skip2/go-qrcode"
)

const qrSize = 320

// serveRoom answers with the public state of a room, never its word.
func serveRoom(cfg *Config, game *doodle.Game, errs chan<- error) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		snap, ok := game.Registry().Snapshot(ps.ByName("roomid"))
		if !ok {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		securityHeaders(cfg, w)

		if err := json.NewEncoder(w).Encode(snap); err != nil {
			errs <- err

			return
		}
	}
}

// serveRoomQR renders a PNG QR code pointing at the room's snapshot URL.
func serveRoomQR(cfg *Config, game *doodle.Game) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if _, ok := game.Registry().Room(ps.ByName("roomid")); !ok {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}

		scheme := cfg.scheme()
		if r.TLS != nil {
			scheme = "https"
		}
		if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
			scheme = proto
		}

		url := scheme + "://" + r.Host + strings.TrimSuffix(r.URL.Path, "/qr")

		png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
		if err != nil {
			http.Error(w, "qr generation failed", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		securityHeaders(cfg, w)
		_, _ = w.Write(png)
	}
}

// registerDoodleGame sets up routes so that:
//   - $prefix/ws                → WebSocket carrying every game event
//   - $prefix/rooms/:roomid     → JSON snapshot of a room
//   - $prefix/rooms/:roomid/qr  → PNG QR code for that snapshot
func registerDoodleGame(cfg *Config, log zerolog.Logger, hub *doodle.Hub, game *doodle.Game, mux *httprouter.Router, errs chan<- error) {
	mux.GET(cfg.prefix+"/ws", doodle.ServeWS(hub, game))

	mux.GET(cfg.prefix+"/rooms/:roomid", serveRoom(cfg, game, errs))

	mux.GET(cfg.prefix+"/rooms/:roomid/qr", serveRoomQR(cfg, game))

	log.Info().Msgf("START: Registered drawing game at %s/ws", cfg.prefix)
}
