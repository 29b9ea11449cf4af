/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import (
	"slices"
	"sync"
)

type RoundState int

const (
	StateIdle RoundState = iota
	StateCountingDown
	StateRoundOver
	StateGameEnded
)

func (s RoundState) String() string {
	switch s {
	case StateCountingDown:
		return "counting_down"
	case StateRoundOver:
		return "round_over"
	case StateGameEnded:
		return "game_ended"
	default:
		return "idle"
	}
}

// Room is one game session. Every field is guarded by mu; helpers with the
// Locked suffix assume it is held.
type Room struct {
	mu sync.Mutex

	id     string
	closed bool

	players     []Player // join order, which is also turn order
	drawerIndex int
	currentWord string
	round       int
	guessed     bool
	state       RoundState
	countdown   *countdown
}

func newRoom(id string) *Room {
	return &Room{
		id:          id,
		drawerIndex: -1,
		state:       StateIdle,
	}
}

func (r *Room) ID() string {
	return r.id
}

func (r *Room) indexLocked(connID string) int {
	for i, p := range r.players {
		if p.ID == connID {
			return i
		}
	}
	return -1
}

func (r *Room) addPlayerLocked(connID, username string) bool {
	if r.indexLocked(connID) >= 0 {
		return false
	}

	r.players = append(r.players, Player{ID: connID, Username: username})

	return true
}

// removePlayerLocked drops connID and keeps drawerIndex pointing so that the
// next rotation lands on the player who followed the removed one.
func (r *Room) removePlayerLocked(connID string) (Player, bool) {
	idx := r.indexLocked(connID)
	if idx < 0 {
		return Player{}, false
	}

	removed := r.players[idx]
	r.players = slices.Delete(r.players, idx, idx+1)

	n := len(r.players)
	switch {
	case n == 0:
		r.drawerIndex = -1
	case idx < r.drawerIndex:
		r.drawerIndex--
	case idx == r.drawerIndex:
		r.drawerIndex = (idx - 1 + n) % n
	}

	return removed, true
}

func (r *Room) playersLocked() []Player {
	return slices.Clone(r.players)
}

func (r *Room) drawerLocked() (Player, bool) {
	if r.drawerIndex < 0 || r.drawerIndex >= len(r.players) {
		return Player{}, false
	}
	return r.players[r.drawerIndex], true
}

func (r *Room) advanceDrawerLocked() (Player, bool) {
	if len(r.players) == 0 {
		return Player{}, false
	}

	r.drawerIndex = (r.drawerIndex + 1) % len(r.players)

	return r.players[r.drawerIndex], true
}

// leaderboardLocked sorts a copy; the room keeps its turn order.
func (r *Room) leaderboardLocked() []Player {
	board := slices.Clone(r.players)
	slices.SortStableFunc(board, func(a, b Player) int {
		return b.Score - a.Score
	})
	return board
}

func (r *Room) stopCountdownLocked() {
	if r.countdown != nil {
		r.countdown.cancel()
		r.countdown = nil
	}
}

// RoomSnapshot is a read-only view of a room. It never carries the word.
type RoomSnapshot struct {
	ID       string   `json:"roomId"`
	Players  []Player `json:"players"`
	Round    int      `json:"round"`
	DrawerID string   `json:"drawerId,omitempty"`
	State    string   `json:"state"`
}

// Departure describes one room a disconnecting connection was removed from.
type Departure struct {
	RoomID    string
	Player    Player
	Players   []Player
	WasDrawer bool
	Empty     bool
}

// Registry owns every room. Lock order is registry, then room.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

func NewRegistry() *Registry {
	return &Registry{
		rooms: make(map[string]*Room),
	}
}

// Join adds connID to roomID, creating the room if needed. fn, if non-nil,
// runs with the room locked right after a successful join; first reports
// whether the room went from zero players to one.
func (reg *Registry) Join(roomID, connID, username string, fn func(room *Room, first bool)) ([]Player, bool) {
	reg.mu.Lock()
	room, ok := reg.rooms[roomID]
	if !ok {
		room = newRoom(roomID)
		reg.rooms[roomID] = room
	}
	room.mu.Lock()
	reg.mu.Unlock()
	defer room.mu.Unlock()

	if !room.addPlayerLocked(connID, username) {
		return room.playersLocked(), false
	}

	if fn != nil {
		fn(room, len(room.players) == 1)
	}

	return room.playersLocked(), true
}

// Leave removes connID from every room it is in. Rooms left empty are
// dropped from the registry. fn, if non-nil, runs with each affected room
// locked.
func (reg *Registry) Leave(connID string, fn func(room *Room, d Departure)) []Departure {
	reg.mu.Lock()
	defer reg.mu.Unlock()

	var out []Departure

	for id, room := range reg.rooms {
		room.mu.Lock()

		wasDrawer := false
		if drawer, ok := room.drawerLocked(); ok && drawer.ID == connID {
			wasDrawer = true
		}

		removed, ok := room.removePlayerLocked(connID)
		if !ok {
			room.mu.Unlock()
			continue
		}

		d := Departure{
			RoomID:    id,
			Player:    removed,
			Players:   room.playersLocked(),
			WasDrawer: wasDrawer,
			Empty:     len(room.players) == 0,
		}

		if d.Empty {
			room.closed = true
			delete(reg.rooms, id)
		}

		if fn != nil {
			fn(room, d)
		}

		room.mu.Unlock()

		out = append(out, d)
	}

	return out
}

func (reg *Registry) Room(roomID string) (*Room, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	room, ok := reg.rooms[roomID]

	return room, ok
}

// Do runs fn with the room locked. It reports false if the room does not
// exist.
func (reg *Registry) Do(roomID string, fn func(room *Room)) bool {
	room, ok := reg.Room(roomID)
	if !ok {
		return false
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	if room.closed {
		return false
	}

	fn(room)

	return true
}

func (reg *Registry) Snapshot(roomID string) (RoomSnapshot, bool) {
	var snap RoomSnapshot

	ok := reg.Do(roomID, func(room *Room) {
		snap = RoomSnapshot{
			ID:      room.id,
			Players: room.playersLocked(),
			Round:   room.round,
			State:   room.state.String(),
		}
		if room.state == StateCountingDown {
			if drawer, ok := room.drawerLocked(); ok {
				snap.DrawerID = drawer.ID
			}
		}
	})

	return snap, ok
}

func (reg *Registry) Len() int {
	reg.mu.RLock()
	defer reg.mu.RUnlock()

	return len(reg.rooms)
}
