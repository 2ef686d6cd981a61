package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"jobboard-engine/internal/events"
)

const keepAlive = 25 * time.Second

type EventsHandler struct {
	Hub *events.Hub
}

// ServeSSE streams hub events. ?topic= limits the stream to one view id or
// live kind.
func (h EventsHandler) ServeSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		WriteError(w, r, http.StatusInternalServerError, "stream_unsupported", "Streaming unsupported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	topic := r.URL.Query().Get("topic")

	ch := h.Hub.Subscribe()
	defer h.Hub.Unsubscribe(ch)

	ping := events.MakeEvent("", "ping", 0, nil)
	fmt.Fprintf(w, "event: ping\ndata: %s\n\n", ping)
	flusher.Flush()

	tick := time.NewTicker(keepAlive)
	defer tick.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-tick.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			var head struct {
				Type  string `json:"type"`
				Topic string `json:"topic"`
			}
			_ = json.Unmarshal([]byte(msg), &head)
			if topic != "" && head.Topic != topic {
				continue
			}
			if head.Type == "" {
				head.Type = "message"
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", head.Type, msg)
			flusher.Flush()
		}
	}
}
