// Package events fans engine state changes out to SSE subscribers.
package events

import (
	"encoding/json"
	"time"
)

// Event types.
const (
	TypeFeedState   = "feed_state"
	TypeLiveUpdated = "live_updated"
	TypeViewClosed  = "view_closed"
)

// Event is the envelope written on the SSE stream. Topic names the view (or
// live kind) the data belongs to; Version lets clients drop stale states.
type Event struct {
	Type    string          `json:"type"`
	Topic   string          `json:"topic,omitempty"`
	Version uint64          `json:"v"`
	At      time.Time       `json:"at"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func MakeEvent(topic, typ string, v uint64, data any) string {
	var raw json.RawMessage
	if data != nil {
		b, _ := json.Marshal(data)
		raw = b
	}
	e := Event{
		Type:    typ,
		Topic:   topic,
		Version: v,
		At:      time.Now().UTC(),
		Data:    raw,
	}
	b, _ := json.Marshal(e)
	return string(b)
}
