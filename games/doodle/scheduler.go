/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	DefaultMaxRounds = 5
	DefaultRoundTime = 60 * time.Second

	tickInterval = time.Second
)

// countdown is the handle of one round's timer. A room holds at most one.
type countdown struct {
	remaining int
	ticker    Ticker
	stop      chan struct{}
	once      sync.Once
}

func (c *countdown) cancel() {
	c.once.Do(func() {
		close(c.stop)
	})
}

// Scheduler moves rooms through Idle -> CountingDown -> RoundOver and on to
// either the next round or GameEnded.
type Scheduler struct {
	registry     *Registry
	gateway      Gateway
	words        WordPool
	clock        Clock
	intn         func(int) int
	maxRounds    int
	roundSeconds int
	log          zerolog.Logger
}

// StartRound begins the next round of roomID, or ends the game once the
// round limit is reached.
func (s *Scheduler) StartRound(roomID string) bool {
	return s.registry.Do(roomID, s.startRoundLocked)
}

func (s *Scheduler) startRoundLocked(room *Room) {
	room.stopCountdownLocked()

	if len(room.players) == 0 {
		room.state = StateIdle
		room.currentWord = ""
		return
	}

	if room.round >= s.maxRounds {
		room.state = StateGameEnded
		room.currentWord = ""

		board := room.leaderboardLocked()
		s.gateway.ToRoom(room.id, EventGameOver, GameOverMessage{Leaderboard: board})
		s.log.Info().Msgf("GAMES: Game over in %s after %d rounds, %q leads", room.id, room.round, board[0].Username)

		return
	}

	drawer, ok := room.advanceDrawerLocked()
	if !ok {
		return
	}

	room.round++
	room.currentWord = s.words.Pick(s.intn)
	room.guessed = false
	room.state = StateCountingDown

	s.gateway.ToRoom(room.id, EventStartRound, StartRoundMessage{
		DrawerID:   drawer.ID,
		DrawerName: drawer.Username,
		Round:      room.round,
		Time:       s.roundSeconds,
	})
	s.gateway.ToConn(drawer.ID, EventWordToDraw, room.currentWord)

	s.log.Info().Msgf("GAMES: Round %d of %d in %s, %q is drawing", room.round, s.maxRounds, room.id, drawer.Username)

	cd := &countdown{
		remaining: s.roundSeconds,
		ticker:    s.clock.NewTicker(tickInterval),
		stop:      make(chan struct{}),
	}
	room.countdown = cd

	go s.runCountdown(room, cd)
}

func (s *Scheduler) runCountdown(room *Room, cd *countdown) {
	defer cd.ticker.Stop()

	for {
		select {
		case <-cd.stop:
			return
		case <-cd.ticker.C():
			if s.tick(room, cd) {
				return
			}
		}
	}
}

// tick advances cd by one second and reports whether it is finished.
func (s *Scheduler) tick(room *Room, cd *countdown) bool {
	room.mu.Lock()
	defer room.mu.Unlock()

	if room.closed || room.countdown != cd {
		return true
	}

	cd.remaining--
	s.gateway.ToRoom(room.id, EventTimer, cd.remaining)

	if cd.remaining > 0 && !room.guessed {
		return false
	}

	room.stopCountdownLocked()
	room.state = StateRoundOver
	room.currentWord = ""

	s.startRoundLocked(room)

	return true
}

// departedLocked reacts to a player leaving room. An empty room stops its
// countdown; a drawer walking out of a live round ends that round early.
func (s *Scheduler) departedLocked(room *Room, d Departure) {
	switch {
	case d.Empty:
		room.stopCountdownLocked()
		room.state = StateIdle
		room.currentWord = ""
		s.log.Info().Msgf("GAMES: Closed empty room %s", room.id)
	case d.WasDrawer && room.state == StateCountingDown:
		s.log.Info().Msgf("GAMES: Drawer %q left %s, ending round %d", d.Player.Username, room.id, room.round)
		room.state = StateRoundOver
		room.currentWord = ""
		s.startRoundLocked(room)
	}
}
