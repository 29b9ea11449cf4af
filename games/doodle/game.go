/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

type Options struct {
	Words     WordPool
	Clock     Clock
	MaxRounds int
	RoundTime time.Duration
	Logger    *zerolog.Logger

	// Intn picks word indexes; nil means math/rand/v2.
	Intn func(int) int
}

// Game ties the registry, scheduler and adjudicator to a Gateway and routes
// inbound client events to them.
type Game struct {
	registry    *Registry
	scheduler   *Scheduler
	adjudicator *Adjudicator
	gateway     Gateway
	log         zerolog.Logger
}

func New(gw Gateway, opts Options) *Game {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	if opts.Words.Len() == 0 {
		opts.Words = DefaultWords()
	}
	if opts.Clock == nil {
		opts.Clock = RealClock()
	}
	if opts.MaxRounds < 1 {
		opts.MaxRounds = DefaultMaxRounds
	}
	if opts.RoundTime < time.Second {
		opts.RoundTime = DefaultRoundTime
	}

	registry := NewRegistry()

	return &Game{
		registry: registry,
		scheduler: &Scheduler{
			registry:     registry,
			gateway:      gw,
			words:        opts.Words,
			clock:        opts.Clock,
			intn:         opts.Intn,
			maxRounds:    opts.MaxRounds,
			roundSeconds: int(opts.RoundTime / time.Second),
			log:          log,
		},
		adjudicator: &Adjudicator{
			gateway: gw,
			log:     log,
		},
		gateway: gw,
		log:     log,
	}
}

func (g *Game) Registry() *Registry {
	return g.registry
}

// Join puts connID into roomID and starts the first round if the room was
// empty. Joining a room twice from one connection does nothing.
func (g *Game) Join(roomID, connID, username string) bool {
	g.gateway.Join(roomID, connID)

	_, joined := g.registry.Join(roomID, connID, username, func(room *Room, first bool) {
		g.gateway.ToRoom(roomID, EventPlayerList, room.playersLocked())
		if first {
			g.scheduler.startRoundLocked(room)
		}
	})

	if joined {
		g.log.Info().Msgf("GAMES: Player %q joined %s", username, roomID)
	}

	return joined
}

// Guess submits text as a guess from connID. An empty username falls back to
// the name connID joined with.
func (g *Game) Guess(roomID, connID, username, text string) error {
	var err error

	ok := g.registry.Do(roomID, func(room *Room) {
		if username == "" {
			if i := room.indexLocked(connID); i >= 0 {
				username = room.players[i].Username
			}
		}
		if username == "" {
			err = fmt.Errorf("%w: guess without username", ErrMalformedPayload)
			return
		}

		g.adjudicator.submitLocked(room, connID, username, text)
	})
	if !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}

	return err
}

// Drawing relays stroke data to everyone in roomID except connID.
func (g *Game) Drawing(roomID, connID string, data json.RawMessage) error {
	if _, ok := g.registry.Room(roomID); !ok {
		return fmt.Errorf("%w: %s", ErrRoomNotFound, roomID)
	}

	g.gateway.ToRoomExcept(roomID, connID, EventDrawing, data)

	return nil
}

// Disconnect removes connID from every room and tells the remaining players.
func (g *Game) Disconnect(connID string) {
	g.registry.Leave(connID, func(room *Room, d Departure) {
		g.log.Info().Msgf("GAMES: Player %q left %s", d.Player.Username, d.RoomID)

		if !d.Empty {
			g.gateway.ToRoom(d.RoomID, EventPlayerList, d.Players)
		}

		g.scheduler.departedLocked(room, d)
	})
}

// Dispatch decodes one inbound envelope from connID and applies it.
func (g *Game) Dispatch(connID string, env Envelope) error {
	switch env.Type {
	case EventJoinRoom:
		var msg JoinRoomMessage
		if err := decode(env.Data, &msg); err != nil {
			return err
		}
		if msg.RoomID == "" || msg.Username == "" {
			return fmt.Errorf("%w: joinRoom needs roomId and username", ErrMalformedPayload)
		}

		g.Join(msg.RoomID, connID, msg.Username)

		return nil

	case EventGuess:
		var msg GuessMessage
		if err := decode(env.Data, &msg); err != nil {
			return err
		}
		if msg.RoomID == "" || msg.Guess == "" {
			return fmt.Errorf("%w: guess needs roomId and guess", ErrMalformedPayload)
		}

		return g.Guess(msg.RoomID, connID, msg.Username, msg.Guess)

	case EventDrawing:
		var msg DrawingMessage
		if err := decode(env.Data, &msg); err != nil {
			return err
		}
		if msg.RoomID == "" || isEmptyJSON(msg.Data) {
			return fmt.Errorf("%w: drawing needs roomId and data", ErrMalformedPayload)
		}

		return g.Drawing(msg.RoomID, connID, msg.Data)

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, env.Type)
	}
}

func decode(data json.RawMessage, v any) error {
	if isEmptyJSON(data) {
		return fmt.Errorf("%w: missing data", ErrMalformedPayload)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	return nil
}

func isEmptyJSON(data json.RawMessage) bool {
	data = bytes.TrimSpace(data)

	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}
