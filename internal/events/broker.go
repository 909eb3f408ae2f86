package events

import (
	"context"
	"sync"
	"time"
)

// Kind names what changed
type Kind string

const (
	KindPunchIn  Kind = "punch_in"
	KindPunchOut Kind = "punch_out"
	KindEdit     Kind = "edit"
	KindOff      Kind = "off"
	KindNote     Kind = "note"
	KindClient   Kind = "client"
)

// Change tells subscribers that a client's records were written.
// Consumers re-fetch rather than apply the payload.
type Change struct {
	ClientID string    `json:"client_id"`
	Date     string    `json:"date,omitempty"`
	Kind     Kind      `json:"kind"`
	At       time.Time `json:"at"`
}

// Broker fans record changes out to interested views
type Broker interface {
	Publish(ctx context.Context, change Change) error
	// Subscribe delivers changes for one client, or for all clients when
	// clientID is empty. The returned func unsubscribes.
	Subscribe(ctx context.Context, clientID string) (<-chan Change, func(), error)
	Close() error
}

const subscriberBuffer = 16

// LocalBroker is an in-process Broker
type LocalBroker struct {
	mu          sync.RWMutex
	subscribers map[string]map[*localSub]struct{}
	closed      bool
	wg          sync.WaitGroup
}

type localSub struct {
	clientID string
	ch       chan Change
	done     chan struct{}
	once     sync.Once
}

// NewLocalBroker constructs an empty broker
func NewLocalBroker() *LocalBroker {
	return &LocalBroker{subscribers: make(map[string]map[*localSub]struct{})}
}

// Publish delivers the change without blocking; slow subscribers miss it
func (b *LocalBroker) Publish(_ context.Context, change Change) error {
	if change.At.IsZero() {
		change.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, key := range []string{change.ClientID, ""} {
		for sub := range b.subscribers[key] {
			select {
			case sub.ch <- change:
			default:
			}
		}
		if change.ClientID == "" {
			break
		}
	}
	return nil
}

// Subscribe implements Broker
func (b *LocalBroker) Subscribe(ctx context.Context, clientID string) (<-chan Change, func(), error) {
	sub := &localSub{
		clientID: clientID,
		ch:       make(chan Change, subscriberBuffer),
		done:     make(chan struct{}),
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		close(sub.ch)
		return sub.ch, func() {}, nil
	}
	if b.subscribers[clientID] == nil {
		b.subscribers[clientID] = make(map[*localSub]struct{})
	}
	b.subscribers[clientID][sub] = struct{}{}
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()
		select {
		case <-ctx.Done():
			b.unsubscribe(sub)
		case <-sub.done:
		}
	}()

	return sub.ch, func() { b.unsubscribe(sub) }, nil
}

// unsubscribe detaches sub and closes its channel. Publish only sends while
// holding the read lock, so once sub is out of the map the close is safe.
func (b *LocalBroker) unsubscribe(sub *localSub) {
	sub.once.Do(func() {
		close(sub.done)
		b.mu.Lock()
		delete(b.subscribers[sub.clientID], sub)
		if len(b.subscribers[sub.clientID]) == 0 {
			delete(b.subscribers, sub.clientID)
		}
		b.mu.Unlock()
		close(sub.ch)
	})
}

// Close ends every subscription and waits for their watchers to exit
func (b *LocalBroker) Close() error {
	b.mu.Lock()
	b.closed = true
	var subs []*localSub
	for _, set := range b.subscribers {
		for sub := range set {
			subs = append(subs, sub)
		}
	}
	b.mu.Unlock()

	for _, sub := range subs {
		b.unsubscribe(sub)
	}
	b.wg.Wait()
	return nil
}
