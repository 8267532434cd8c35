// Package hub fans committed room events out to in-process subscribers.
//
// Publishing happens strictly AFTER the database commit: the store is the
// source of truth and the hub is only a best-effort live feed. Subscribers
// that fall behind lose events and are expected to re-sync from the store
// using their last seen seq.
package hub

import (
	"sync"

	"github.com/mentorlink/mentorlink/pkg/domain"
)

const defaultBuffer = 64

// Subscription is one listener on one room.
type Subscription struct {
	roomId string
	events chan domain.RoomEvent
	hub    *Hub

	once sync.Once
}

// Events delivers the room's events in publish order. The channel is
// closed when the subscription is closed.
func (s *Subscription) Events() <-chan domain.RoomEvent {
	return s.events
}

// Close detaches the subscription and closes its channel. Idempotent.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.hub.unsubscribe(s)
		close(s.events)
	})
}

type Hub struct {
	mutex  sync.RWMutex
	rooms  map[string]map[*Subscription]struct{}
	buffer int
}

type Option func(*Hub)

// WithBuffer sets the per-subscription channel capacity.
func WithBuffer(n int) Option {
	return func(h *Hub) {
		h.buffer = n
	}
}

func New(options ...Option) *Hub {
	h := &Hub{
		rooms:  map[string]map[*Subscription]struct{}{},
		buffer: defaultBuffer,
	}
	for _, opt := range options {
		opt(h)
	}
	return h
}

// Subscribe attaches a listener to a room.
func (h *Hub) Subscribe(roomId string) *Subscription {
	s := &Subscription{
		roomId: roomId,
		events: make(chan domain.RoomEvent, h.buffer),
		hub:    h,
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()
	if h.rooms[roomId] == nil {
		h.rooms[roomId] = map[*Subscription]struct{}{}
	}
	h.rooms[roomId][s] = struct{}{}
	return s
}

func (h *Hub) unsubscribe(s *Subscription) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if subs, ok := h.rooms[s.roomId]; ok {
		delete(subs, s)
		if len(subs) == 0 {
			delete(h.rooms, s.roomId)
		}
	}
}

// PublishMessage broadcasts a committed message to the room's subscribers.
func (h *Hub) PublishMessage(msg domain.ChatMessage) {
	h.publish(msg.RoomId, domain.RoomEvent{Type: domain.EventMessage, Message: &msg})
}

// PublishRead broadcasts a read-cursor advance to the room's subscribers.
func (h *Hub) PublishRead(status domain.ReadStatus) {
	h.publish(status.RoomId, domain.RoomEvent{Type: domain.EventRead, Read: &status})
}

func (h *Hub) publish(roomId string, ev domain.RoomEvent) {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for s := range h.rooms[roomId] {
		// never block the publisher on a slow consumer. A dropped event
		// is recovered by the client's re-sync query.
		select {
		case s.events <- ev:
		default:
		}
	}
}
