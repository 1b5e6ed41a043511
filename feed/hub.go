// Package feed streams simulation frames and HUD events to websocket
// spectators.
package feed

import (
	"arenashooter/game"

	"github.com/fxamacker/cbor/v2"
	"github.com/rs/zerolog/log"
	"github.com/sasha-s/go-deadlock"
)

// SUBSCRIBER_QUEUE is how many frames a subscriber may fall behind before
// it is dropped.
const SUBSCRIBER_QUEUE = 64

type Subscriber struct {
	send chan []byte
	slow chan struct{}
	hub  *Hub
}

// Recv yields encoded frames in publish order.
func (s *Subscriber) Recv() <-chan []byte {
	return s.send
}

// Slow is closed when the subscriber could not keep up and was dropped.
func (s *Subscriber) Slow() <-chan struct{} {
	return s.slow
}

func (s *Subscriber) Done() {
	s.hub.remove(s)
}

// Hub fans frames out to every subscriber without blocking the publisher.
type Hub struct {
	subscribers map[*Subscriber]struct{}
	// Most recent snapshot frame, replayed to new subscribers
	last  []byte
	mutex deadlock.Mutex
}

func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*Subscriber]struct{}),
	}
}

func (h *Hub) Subscribe() *Subscriber {
	s := &Subscriber{
		send: make(chan []byte, SUBSCRIBER_QUEUE),
		slow: make(chan struct{}),
		hub:  h,
	}

	h.mutex.Lock()
	if h.last != nil {
		s.send <- h.last
	}
	h.subscribers[s] = struct{}{}
	h.mutex.Unlock()

	return s
}

func (h *Hub) remove(s *Subscriber) {
	h.mutex.Lock()
	delete(h.subscribers, s)
	h.mutex.Unlock()
}

func (h *Hub) Subscribers() int {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	return len(h.subscribers)
}

// Publish encodes msg and queues it for every subscriber.
func (h *Hub) Publish(msg any) error {
	bytes, err := cbor.Marshal(msg)
	if err != nil {
		return err
	}

	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := msg.(SnapshotMessage); ok {
		h.last = bytes
	}

	for s := range h.subscribers {
		select {
		case s.send <- bytes:
		default:
			log.Warn().Int("queued", len(s.send)).Msg("feed subscriber too slow; dropping")
			delete(h.subscribers, s)
			close(s.slow)
		}
	}

	return nil
}

// PublishSnapshot is a convenience for the runner loop.
func (h *Hub) PublishSnapshot(snapshot game.Snapshot) error {
	return h.Publish(SnapshotMessage{
		Op:       SnapshotOp,
		Snapshot: snapshot,
	})
}
