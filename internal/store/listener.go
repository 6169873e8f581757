package store

import (
	"log"
	"sync"
	"time"

	"github.com/lib/pq"
)

const (
	minReconnectInterval = 2 * time.Second
	maxReconnectInterval = 30 * time.Second
)

// Listener multiplexes Postgres LISTEN/NOTIFY channels to per-collection
// subscribers. Each collection is watched on a "<collection>_changes"
// channel fed by statement-level triggers; the notification payload is ignored.
// The underlying pq.Listener reconnects on its own with bounded backoff.
type Listener struct {
	pl *pq.Listener

	mu       sync.Mutex
	nextID   int
	handlers map[string]map[int]func()
	stateFns []func(up bool)
	closed   bool
}

func NewListener(dsn string) *Listener {
	l := &Listener{
		handlers: make(map[string]map[int]func()),
	}

	l.pl = pq.NewListener(dsn, minReconnectInterval, maxReconnectInterval, l.event)
	go l.run()
	return l
}

func (l *Listener) event(ev pq.ListenerEventType, err error) {
	switch ev {
	case pq.ListenerEventConnected, pq.ListenerEventReconnected:
		log.Println("[store] realtime channel connected")
		l.notifyState(true)
	case pq.ListenerEventDisconnected:
		log.Printf("[store] realtime channel lost: %v", err)
		l.notifyState(false)
	case pq.ListenerEventConnectionAttemptFailed:
		log.Printf("[store] realtime reconnect attempt failed: %v", err)
	}
}

func (l *Listener) notifyState(up bool) {
	l.mu.Lock()
	fns := make([]func(bool), len(l.stateFns))
	copy(fns, l.stateFns)
	l.mu.Unlock()

	for _, fn := range fns {
		fn(up)
	}
}

func (l *Listener) run() {
	for n := range l.pl.Notify {
		if n == nil {
			// pq sends nil after a reconnect: notifications may have been
			// missed, so fire every handler and let consumers re-fetch.
			l.fireAll()
			continue
		}
		l.fire(n.Channel)
	}
}

func (l *Listener) fire(channel string) {
	l.mu.Lock()
	var fns []func()
	for _, fn := range l.handlers[channel] {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

func (l *Listener) fireAll() {
	l.mu.Lock()
	var fns []func()
	for _, hs := range l.handlers {
		for _, fn := range hs {
			fns = append(fns, fn)
		}
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// Subscribe registers onChange for the collection's change channel and
// returns an unsubscribe func. The LISTEN is issued once per channel and
// dropped again when its last subscriber leaves.
func (l *Listener) Subscribe(collection string, onChange func()) (func(), error) {
	channel := collection + "_changes"

	l.mu.Lock()
	first := len(l.handlers[channel]) == 0
	if l.handlers[channel] == nil {
		l.handlers[channel] = make(map[int]func())
	}
	l.nextID++
	id := l.nextID
	l.handlers[channel][id] = onChange
	l.mu.Unlock()

	if first {
		if err := l.pl.Listen(channel); err != nil {
			l.mu.Lock()
			delete(l.handlers[channel], id)
			l.mu.Unlock()
			return nil, err
		}
	}

	unsubscribe := func() {
		l.mu.Lock()
		delete(l.handlers[channel], id)
		last := len(l.handlers[channel]) == 0
		closed := l.closed
		l.mu.Unlock()

		if last && !closed {
			_ = l.pl.Unlisten(channel)
		}
	}
	return unsubscribe, nil
}

func (l *Listener) OnConnState(fn func(up bool)) {
	l.mu.Lock()
	l.stateFns = append(l.stateFns, fn)
	l.mu.Unlock()
}

func (l *Listener) Close() error {
	l.mu.Lock()
	l.closed = true
	l.mu.Unlock()
	return l.pl.Close()
}
