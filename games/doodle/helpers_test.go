/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type sent struct {
	Room    string
	Conn    string
	Except  string
	Event   string
	Payload any
}

type recordingGateway struct {
	mu     sync.Mutex
	joins  []string
	events []sent
}

func (g *recordingGateway) Join(roomID, connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.joins = append(g.joins, roomID+"/"+connID)
}

func (g *recordingGateway) ToRoom(roomID, event string, payload any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = append(g.events, sent{Room: roomID, Event: event, Payload: payload})
}

func (g *recordingGateway) ToRoomExcept(roomID, exceptConnID, event string, payload any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = append(g.events, sent{Room: roomID, Except: exceptConnID, Event: event, Payload: payload})
}

func (g *recordingGateway) ToConn(connID, event string, payload any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = append(g.events, sent{Conn: connID, Event: event, Payload: payload})
}

func (g *recordingGateway) all() []sent {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]sent(nil), g.events...)
}

func (g *recordingGateway) byEvent(event string) []sent {
	var out []sent
	for _, e := range g.all() {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

func (g *recordingGateway) reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = nil
}

type fakeTicker struct {
	c       chan time.Time
	stopped atomic.Bool
}

func (t *fakeTicker) C() <-chan time.Time { return t.c }
func (t *fakeTicker) Stop()               { t.stopped.Store(true) }

type fakeClock struct {
	mu      sync.Mutex
	tickers []*fakeTicker
}

func (c *fakeClock) NewTicker(time.Duration) Ticker {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTicker{c: make(chan time.Time)}
	c.tickers = append(c.tickers, t)
	return t
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.tickers)
}

func (c *fakeClock) last() *fakeTicker {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.tickers) == 0 {
		return nil
	}
	return c.tickers[len(c.tickers)-1]
}

const testRoundSeconds = 3

// newTestGame builds a game whose countdowns only move when the test says
// so and whose word is always "apple".
func newTestGame(t *testing.T, maxRounds int) (*Game, *recordingGateway, *fakeClock) {
	t.Helper()

	gw := &recordingGateway{}
	clock := &fakeClock{}
	g := New(gw, Options{
		Clock:     clock,
		MaxRounds: maxRounds,
		RoundTime: testRoundSeconds * time.Second,
		Intn:      func(int) int { return 0 },
	})

	return g, gw, clock
}

func activeCountdown(t *testing.T, g *Game, roomID string) (*Room, *countdown) {
	t.Helper()

	room, ok := g.registry.Room(roomID)
	require.True(t, ok, "room %s missing", roomID)

	room.mu.Lock()
	cd := room.countdown
	room.mu.Unlock()

	return room, cd
}

// tickRoom advances the room's current countdown by one second.
func tickRoom(t *testing.T, g *Game, roomID string) {
	t.Helper()

	room, cd := activeCountdown(t, g, roomID)
	require.NotNil(t, cd, "no countdown running in %s", roomID)

	g.scheduler.tick(room, cd)
}

func finishRound(t *testing.T, g *Game, roomID string) {
	t.Helper()

	for range testRoundSeconds {
		tickRoom(t, g, roomID)
	}
}

func roomState(g *Game, roomID string) (players []Player, drawerIndex, round int, word string, guessed bool, state RoundState) {
	g.registry.Do(roomID, func(room *Room) {
		players = room.playersLocked()
		drawerIndex = room.drawerIndex
		round = room.round
		word = room.currentWord
		guessed = room.guessed
		state = room.state
	})
	return
}

func stopped(cd *countdown) bool {
	select {
	case <-cd.stop:
		return true
	default:
		return false
	}
}
