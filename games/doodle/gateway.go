/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

package doodle

import "encoding/json"

// Gateway is the only way anything in this package reaches a client.
type Gateway interface {
	// Join adds a connection to a room's delivery group.
	Join(roomID, connID string)
	// ToRoom delivers to every connection in the room, sender included.
	ToRoom(roomID, event string, payload any)
	// ToRoomExcept delivers to every connection in the room but one.
	ToRoomExcept(roomID, exceptConnID, event string, payload any)
	// ToConn delivers to a single connection.
	ToConn(connID, event string, payload any)
}

// encode frames payload as an Envelope. json.RawMessage payloads are copied
// into the frame verbatim.
func encode(event string, payload any) ([]byte, error) {
	data, ok := payload.(json.RawMessage)
	if !ok {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		data = b
	}
	if len(data) == 0 {
		data = json.RawMessage("null")
	}

	name, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}

	frame := make([]byte, 0, len(name)+len(data)+18)
	frame = append(frame, `{"type":`...)
	frame = append(frame, name...)
	frame = append(frame, `,"data":`...)
	frame = append(frame, data...)
	frame = append(frame, '}')

	return frame, nil
}
