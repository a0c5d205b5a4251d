package server

import (
	"encoding/json"
	"sync"

	"github.com/wheretogo/compass/internal/compass"
)

// SSEEvent is the payload published to a device's subscribers.
type SSEEvent struct {
	Type        string              `json:"type"`
	Attempt     int                 `json:"attempt"`
	Date        string              `json:"date,omitempty"`
	DirectionID compass.DirectionID `json:"directionId,omitempty"`
}

// Broker is an in-process pub/sub for SSE events, keyed by device ID, so
// every open screen of a device sees its spins.
type Broker struct {
	mu   sync.RWMutex
	subs map[string]map[chan []byte]struct{}
}

func NewBroker() *Broker {
	return &Broker{
		subs: make(map[string]map[chan []byte]struct{}),
	}
}

// Subscribe returns a channel that receives JSON-encoded events for deviceID.
func (b *Broker) Subscribe(deviceID string) chan []byte {
	ch := make(chan []byte, 16)
	b.mu.Lock()
	if b.subs[deviceID] == nil {
		b.subs[deviceID] = make(map[chan []byte]struct{})
	}
	b.subs[deviceID][ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(deviceID string, ch chan []byte) {
	b.mu.Lock()
	delete(b.subs[deviceID], ch)
	if len(b.subs[deviceID]) == 0 {
		delete(b.subs, deviceID)
	}
	b.mu.Unlock()
}

// Publish sends event to every subscriber of deviceID. Slow subscribers
// miss the event.
func (b *Broker) Publish(deviceID string, event SSEEvent) {
	data, _ := json.Marshal(event)
	b.mu.RLock()
	for ch := range b.subs[deviceID] {
		select {
		case ch <- data:
		default:
		}
	}
	b.mu.RUnlock()
}

func (b *Broker) subscribers(deviceID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[deviceID])
}
