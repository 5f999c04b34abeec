package pubsub

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

var keepAlive = 25 * time.Second

// ServeSSE streams every event on channel as a server-sent event until the
// client goes away.
func (b *Broker) ServeSSE(w http.ResponseWriter, r *http.Request, channel string) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events := b.Subscribe(r.Context(), channel)
	_, _ = w.Write([]byte("event: ping\ndata: {}\n\n"))
	flusher.Flush()

	tick := time.NewTicker(keepAlive)
	defer tick.Stop()
	for {
		select {
		case <-r.Context().Done():
			return
		case <-tick.C:
			_, _ = w.Write([]byte(": keep-alive\n\n"))
			flusher.Flush()
		case ev, ok := <-events:
			if !ok {
				return
			}
			data, err := json.Marshal(ev)
			if err != nil {
				slog.Error("sse_encode", "channel", channel, "err", err)
				continue
			}
			_, _ = w.Write([]byte("event: " + channel + "\ndata: "))
			_, _ = w.Write(data)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}
