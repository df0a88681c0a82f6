package preview

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// reloadEvent is sent to open pages after the sources were regenerated.
type reloadEvent struct {
	Generation uint64   `json:"generation"`
	Files      []string `json:"files"`
}

type broadcaster struct {
	mu         sync.Mutex
	clients    map[chan reloadEvent]struct{}
	generation uint64
}

func NewBroadcaster() *broadcaster {
	return &broadcaster{
		clients: make(map[chan reloadEvent]struct{}),
	}
}

func (b *broadcaster) subscribe() chan reloadEvent {
	ch := make(chan reloadEvent, 1)

	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()

	return ch
}

func (b *broadcaster) unsubscribe(ch chan reloadEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, has := b.clients[ch]; !has {
		return
	}
	delete(b.clients, ch)
	close(ch)
}

func (b *broadcaster) Clients() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Reload announces the next generation of files. A page that has not
// consumed the previous event gets only the latest one.
func (b *broadcaster) Reload(files []string) reloadEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.generation++
	event := reloadEvent{Generation: b.generation, Files: files}

	for ch := range b.clients {
		select {
		case ch <- event:
		default:
			// only Reload sends, so the slot is free after draining
			select {
			case <-ch:
			default:
			}
			ch <- event
		}
	}

	return event
}

func (b *broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)

	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events := b.subscribe()
	defer b.unsubscribe(events)

	w.Write([]byte(":ok\n\n"))
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-events:
			data, err := json.Marshal(event)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "id: %d\nevent: reload\ndata: %s\n\n", event.Generation, data)
			flusher.Flush()
		}
	}
}

var _ http.Handler = (*broadcaster)(nil)
