// Package pubsub is an in-process named-channel broadcaster. Publishing
// never blocks: a subscriber whose buffer is full misses the event.
package pubsub

import (
	"context"
	"log/slog"
	"sync"

	"github.com/TwigBush/shopgraph/internal/types"
)

const defaultBuffer = 128

type Broker struct {
	mu     sync.RWMutex
	topics map[string]map[chan types.Event]struct{}
	buffer int
}

func NewBroker() *Broker {
	return &Broker{topics: map[string]map[chan types.Event]struct{}{}, buffer: defaultBuffer}
}

// Subscribe returns a stream of events published on channel from now on.
// The stream is closed once ctx is done.
func (b *Broker) Subscribe(ctx context.Context, channel string) <-chan types.Event {
	ch := make(chan types.Event, b.buffer)
	b.mu.Lock()
	subs, ok := b.topics[channel]
	if !ok {
		subs = map[chan types.Event]struct{}{}
		b.topics[channel] = subs
	}
	subs[ch] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		delete(subs, ch)
		if len(subs) == 0 {
			delete(b.topics, channel)
		}
		close(ch)
		b.mu.Unlock()
	}()
	return ch
}

func (b *Broker) Publish(channel string, ev types.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	dropped := 0
	for ch := range b.topics[channel] {
		select {
		case ch <- ev:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		slog.Warn("pubsub_drop", "channel", channel, "mutation", ev.Mutation, "dropped", dropped)
	}
}

// Subscribers reports how many streams are open on channel.
func (b *Broker) Subscribers(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.topics[channel])
}
