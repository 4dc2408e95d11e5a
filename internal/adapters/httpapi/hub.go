package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"provmark/internal/application/services"
)

const heartbeatInterval = 25 * time.Second

// Hub fans workspace changes out to Server-Sent Events clients
type Hub struct {
	notifier *services.Notifier
	logger   *slog.Logger

	clientsMu  sync.RWMutex
	clients    map[chan services.Change]bool
	register   chan chan services.Change
	unregister chan chan services.Change
	running    chan struct{}
	stopped    chan struct{}
}

// NewHub creates a hub. Run must be called to start delivering changes.
func NewHub(n *services.Notifier, logger *slog.Logger) *Hub {
	return &Hub{
		notifier:   n,
		logger:     logger,
		clients:    make(map[chan services.Change]bool),
		register:   make(chan chan services.Change),
		unregister: make(chan chan services.Change),
		running:    make(chan struct{}),
		stopped:    make(chan struct{}),
	}
}

// Run relays notifier changes until ctx is done
func (h *Hub) Run(ctx context.Context) error {
	changes, cancel := h.notifier.Subscribe(256)
	defer cancel()
	close(h.running)
	defer close(h.stopped)

	for {
		select {
		case <-ctx.Done():
			h.clientsMu.Lock()
			for ch := range h.clients {
				delete(h.clients, ch)
				close(ch)
			}
			h.clientsMu.Unlock()
			return nil

		case ch := <-h.register:
			h.clientsMu.Lock()
			h.clients[ch] = true
			n := len(h.clients)
			h.clientsMu.Unlock()
			h.logger.Debug("sse client registered", "clients", n)

		case ch := <-h.unregister:
			h.clientsMu.Lock()
			if h.clients[ch] {
				delete(h.clients, ch)
				close(ch)
			}
			n := len(h.clients)
			h.clientsMu.Unlock()
			h.logger.Debug("sse client unregistered", "clients", n)

		case change, ok := <-changes:
			if !ok {
				return nil
			}
			h.clientsMu.RLock()
			for ch := range h.clients {
				select {
				case ch <- change:
				default:
					// slow client, it still holds an older change to re-pull from
				}
			}
			h.clientsMu.RUnlock()
		}
	}
}

// Clients returns the number of connected clients
func (h *Hub) Clients() int {
	h.clientsMu.RLock()
	defer h.clientsMu.RUnlock()
	return len(h.clients)
}

// accepting reports whether Run is looping and can take a registration
func (h *Hub) accepting() bool {
	select {
	case <-h.stopped:
		return false
	default:
	}
	select {
	case <-h.running:
		return true
	default:
		return false
	}
}

// HandleSSE streams changes to one client until it disconnects
func (h *Hub) HandleSSE(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	if !h.accepting() {
		writeError(w, http.StatusServiceUnavailable, "event hub not running")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan services.Change, 16)
	select {
	case h.register <- ch:
	case <-h.stopped:
		return
	case <-r.Context().Done():
		return
	}
	defer func() {
		select {
		case h.unregister <- ch:
		case <-h.stopped:
		}
	}()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-heartbeat.C:
			fmt.Fprintf(w, ": ping\n\n")
			flusher.Flush()
		case change, ok := <-ch:
			if !ok {
				return
			}
			data, err := json.Marshal(change)
			if err != nil {
				h.logger.Error("failed to marshal change", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: change\ndata: %s\n\n", data)
			flusher.Flush()
		}
	}
}
