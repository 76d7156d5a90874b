package ws

import (
	"encoding/json"
	"sync"

	"rps_arena/internal/domain"
	"rps_arena/internal/logger"
	"rps_arena/internal/service"
)

// Hub fans game events out to the spectators of each game.
type Hub struct {
	mu   sync.RWMutex
	subs map[int64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		subs: make(map[int64]map[*Client]struct{}),
	}
}

func (h *Hub) Subscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.subscribeLocked(c)
}

// SubscribeWithSnapshot loads the game and queues its snapshot while holding
// the hub lock, so every later event for the game reaches c after the
// snapshot and nothing committed after the load is missed.
func (h *Hub) SubscribeWithSnapshot(c *Client, load func() (*domain.Game, error)) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	g, err := load()
	if err != nil {
		return err
	}
	snapshot, err := json.Marshal(Event{Type: MsgSnapshot, GameID: c.GameID, Game: g})
	if err != nil {
		return err
	}
	c.Send <- snapshot
	h.subscribeLocked(c)
	return nil
}

func (h *Hub) subscribeLocked(c *Client) {
	clients, ok := h.subs[c.GameID]
	if !ok {
		clients = make(map[*Client]struct{})
		h.subs[c.GameID] = clients
	}
	clients[c] = struct{}{}
	logger.Debug("ws spectator joined", "game_id", c.GameID, "spectators", len(clients))
}

// Unsubscribe removes c and closes its send channel. Safe to call twice.
func (h *Hub) Unsubscribe(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.subs[c.GameID]
	if !ok {
		return
	}
	if _, ok := clients[c]; !ok {
		return
	}
	delete(clients, c)
	close(c.Send)
	if len(clients) == 0 {
		delete(h.subs, c.GameID)
	}
}

// Subscribers returns the number of spectators of a game.
func (h *Hub) Subscribers(gameID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[gameID])
}

// Publish queues ev for every spectator of ev.GameID. Spectators whose
// buffer is full miss the event rather than stall the publisher.
func (h *Hub) Publish(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		logger.Error("ws marshal event failed", "error", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for c := range h.subs[ev.GameID] {
		select {
		case c.Send <- msg:
		default:
			logger.Warn("ws spectator too slow, event dropped", "game_id", ev.GameID)
		}
	}
}

// OnRound adapts committed round outcomes into events.
func (h *Hub) OnRound(o *service.RoundOutcome) {
	typ := MsgRound
	if o.Finished {
		typ = MsgFinished
	}
	h.Publish(Event{Type: typ, GameID: o.Game.ID, Round: o.Round, Game: o.Game})
}
