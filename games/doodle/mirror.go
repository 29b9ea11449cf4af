/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const mirrorQueueSize = 1024

// Publisher is the part of *redis.Client the mirror needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

type mirrored struct {
	channel string
	frame   []byte
}

// Mirror wraps a Gateway and republishes every room broadcast on the Redis
// channel "<prefix>:room:<roomID>". Direct messages, the secret word among
// them, are never mirrored.
type Mirror struct {
	Gateway

	pub    Publisher
	prefix string
	queue  chan mirrored
	log    zerolog.Logger
}

func NewMirror(next Gateway, pub Publisher, prefix string, log zerolog.Logger) *Mirror {
	return &Mirror{
		Gateway: next,
		pub:     pub,
		prefix:  prefix,
		queue:   make(chan mirrored, mirrorQueueSize),
		log:     log,
	}
}

func (m *Mirror) ToRoom(roomID, event string, payload any) {
	m.Gateway.ToRoom(roomID, event, payload)
	m.enqueue(roomID, event, payload)
}

func (m *Mirror) ToRoomExcept(roomID, exceptConnID, event string, payload any) {
	m.Gateway.ToRoomExcept(roomID, exceptConnID, event, payload)
	m.enqueue(roomID, event, payload)
}

func (m *Mirror) Channel(roomID string) string {
	return m.prefix + ":room:" + roomID
}

func (m *Mirror) enqueue(roomID, event string, payload any) {
	frame, err := encode(event, payload)
	if err != nil {
		m.log.Error().Err(err).Msgf("GAMES: Encoding %s for mirror", event)
		return
	}

	select {
	case m.queue <- mirrored{channel: m.Channel(roomID), frame: frame}:
	default:
		m.log.Warn().Msgf("GAMES: Mirror queue full, dropped %s for %s", event, roomID)
	}
}

// Run publishes queued frames in order until ctx is done.
func (m *Mirror) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-m.queue:
			if err := m.pub.Publish(ctx, msg.channel, msg.frame).Err(); err != nil {
				m.log.Warn().Err(err).Msgf("GAMES: Publishing to %s", msg.channel)
			}
		}
	}
}
