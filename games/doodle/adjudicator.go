/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import (
	"strings"

	"github.com/rs/zerolog"
)

const (
	guesserPoints = 10
	drawerPoints  = 5
)

type Adjudicator struct {
	gateway Gateway
	log     zerolog.Logger
}

// submitLocked shows the guess to the room and scores it. It reports whether
// the guess won the round.
func (a *Adjudicator) submitLocked(room *Room, connID, username, text string) bool {
	a.gateway.ToRoom(room.id, EventNewGuess, NewGuessMessage{
		Guess:    text,
		Username: username,
	})

	if room.guessed || room.state != StateCountingDown || room.currentWord == "" {
		return false
	}

	if strings.ToLower(text) != strings.ToLower(room.currentWord) {
		return false
	}

	room.guessed = true

	if i := room.indexLocked(connID); i >= 0 {
		room.players[i].Score += guesserPoints
	}
	if room.drawerIndex >= 0 && room.drawerIndex < len(room.players) {
		room.players[room.drawerIndex].Score += drawerPoints
	}

	a.gateway.ToRoom(room.id, EventCorrectGuess, CorrectGuessMessage{
		Username: username,
		Word:     room.currentWord,
	})

	a.log.Info().Msgf("GAMES: %q guessed %q in %s", username, room.currentWord, room.id)

	return true
}
