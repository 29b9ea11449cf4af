/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import "errors"

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrMalformedPayload = errors.New("malformed payload")
	ErrUnknownEvent     = errors.New("unknown event")
	ErrNoWords          = errors.New("word list is empty")
)
