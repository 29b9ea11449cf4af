/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package doodle implements the sketchbox drawing-and-guessing game.
//
// Features:
// - Rooms are created on first join and collected when the last player leaves
// - First player into a room starts round 1; the drawer rotates round-robin in join order
// - Only the drawer receives the secret word
// - Every guess is shown to the whole room, the first correct one ends the round
// - Correct guesser scores 10, the drawer scores 5
// - Rounds last 60 seconds by default, with a per-second countdown broadcast
// - After the last round the room receives the leaderboard
// - Drawing strokes are relayed untouched to everyone but the sender
package doodle
