/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import "encoding/json"

// Inbound events
const (
	EventJoinRoom = "joinRoom"
	EventGuess    = "guess"
	EventDrawing  = "drawing"
)

// Outbound events
const (
	EventPlayerList   = "playerList"
	EventStartRound   = "startRound"
	EventWordToDraw   = "wordToDraw"
	EventTimer        = "timer"
	EventNewGuess     = "newGuess"
	EventCorrectGuess = "correctGuess"
	EventGameOver     = "gameOver"
	EventError        = "error"
)

// Envelope is the frame exchanged with clients in both directions.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data,omitempty"`
}

// Player is a room member as seen by clients.
type Player struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Score    int    `json:"score"`
}

type JoinRoomMessage struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

type GuessMessage struct {
	RoomID   string `json:"roomId"`
	Guess    string `json:"guess"`
	Username string `json:"username"`
}

// DrawingMessage carries stroke data the server never looks into.
type DrawingMessage struct {
	RoomID string          `json:"roomId"`
	Data   json.RawMessage `json:"data"`
}

type StartRoundMessage struct {
	DrawerID   string `json:"drawerId"`
	DrawerName string `json:"drawerName"`
	Round      int    `json:"round"`
	Time       int    `json:"time"`
}

type NewGuessMessage struct {
	Guess    string `json:"guess"`
	Username string `json:"username"`
}

type CorrectGuessMessage struct {
	Username string `json:"username"`
	Word     string `json:"word"`
}

type GameOverMessage struct {
	Leaderboard []Player `json:"leaderboard"`
}

type ErrorMessage struct {
	Message string `json:"message"`
}
