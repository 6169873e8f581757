package dashboard

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sangamops/mela-backend/internal/metrics"
	"github.com/sangamops/mela-backend/internal/store"
)

// SubscriptionState tracks one collection's realtime channel.
type SubscriptionState string

const (
	StateUnsubscribed SubscriptionState = "unsubscribed"
	StateSubscribing  SubscriptionState = "subscribing"
	StateActive       SubscriptionState = "active"
	StateReconnecting SubscriptionState = "reconnecting"
	StateClosed       SubscriptionState = "closed"
)

// watchedCollections get a realtime subscription; the remaining collections
// are refreshed on the polling tick only.
var watchedCollections = []string{CollectionZones, CollectionDevices, CollectionAlerts}

var allCollections = []string{CollectionZones, CollectionUnits, CollectionDevices, CollectionAlerts}

// Reconciler owns the canonical snapshot of every collection and republishes
// a merged view whenever a change notification arrives or the polling
// interval elapses. Notifications carry no payload, so every trigger is a
// blind full re-fetch of the affected collection.
//
// Rapid triggers for one collection are coalesced: at most one fetch per
// collection is in flight, and a fetch whose result arrives after a newer
// fetch has published is discarded rather than applied.
type Reconciler struct {
	store    store.Store
	fetcher  *Fetcher
	interval time.Duration
	now      func() time.Time

	mu         sync.Mutex
	zones      []CrowdZone
	units      []EmergencyUnit
	devices    []RFIDDevice
	alerts     []Alert
	peak       int
	staleSince *time.Time
	current    *View
	seq        map[string]uint64
	published  map[string]uint64
	states     map[string]SubscriptionState
	viewSubs   map[int]chan *View
	nextSubID  int

	pending      map[string]chan struct{}
	unsubscribes []func()
	done         chan struct{}
	wg           sync.WaitGroup
	startOnce    sync.Once
	closeOnce    sync.Once
}

func NewReconciler(s store.Store, interval time.Duration) *Reconciler {
	r := &Reconciler{
		store:     s,
		fetcher:   NewFetcher(s),
		interval:  interval,
		now:       time.Now,
		seq:       make(map[string]uint64),
		published: make(map[string]uint64),
		states:    make(map[string]SubscriptionState),
		viewSubs:  make(map[int]chan *View),
		pending:   make(map[string]chan struct{}),
		done:      make(chan struct{}),
	}
	for _, col := range allCollections {
		r.pending[col] = make(chan struct{}, 1)
		r.states[col] = StateUnsubscribed
	}
	r.current = &View{LastUpdate: r.now()}
	return r
}

// Start subscribes to the watched collections, launches the per-collection
// refresh workers and the polling ticker, and queues an initial refresh of
// everything. It must be called once.
func (r *Reconciler) Start() error {
	var startErr error
	r.startOnce.Do(func() {
		for _, col := range watchedCollections {
			col := col
			r.setState(col, StateSubscribing)
			unsub, err := r.store.Subscribe(col, func() { r.Trigger(col) })
			if err != nil {
				r.setState(col, StateUnsubscribed)
				startErr = fmt.Errorf("subscribe %s: %w", col, err)
				return
			}
			r.unsubscribes = append(r.unsubscribes, unsub)
			r.setState(col, StateActive)
		}

		if reporter, ok := r.store.(store.ConnStateReporter); ok {
			reporter.OnConnState(r.connState)
		}

		for _, col := range allCollections {
			col := col
			r.wg.Add(1)
			go r.worker(col)
		}

		r.wg.Add(1)
		go r.tick()

		for _, col := range allCollections {
			r.Trigger(col)
		}
	})
	return startErr
}

// Trigger queues a refresh of the collection. A refresh already pending
// absorbs the new trigger; a refresh already in flight is superseded by the
// one this trigger queues.
func (r *Reconciler) Trigger(col string) {
	ch, ok := r.pending[col]
	if !ok {
		return
	}
	select {
	case ch <- struct{}{}:
	default:
	}
}

func (r *Reconciler) worker(col string) {
	defer r.wg.Done()
	for {
		select {
		case <-r.done:
			return
		case <-r.pending[col]:
			r.refresh(col)
		}
	}
}

func (r *Reconciler) tick() {
	defer r.wg.Done()
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.done:
			return
		case <-ticker.C:
			// Bound staleness of the derived stats even when nothing is
			// changing, and keep unwatched collections fresh.
			for _, col := range allCollections {
				r.Trigger(col)
			}
		}
	}
}

// refresh fetches one collection and applies the result unless a newer fetch
// for the same collection has already published (last writer wins).
func (r *Reconciler) refresh(col string) {
	r.mu.Lock()
	r.seq[col]++
	seq := r.seq[col]
	r.mu.Unlock()

	metrics.RefreshTotal.WithLabelValues(col).Inc()

	ctx := context.Background()
	var apply func()
	var err error

	switch col {
	case CollectionZones:
		var zones []CrowdZone
		zones, err = r.fetcher.FetchZones(ctx)
		apply = func() { r.zones = zones }
	case CollectionUnits:
		var units []EmergencyUnit
		units, err = r.fetcher.FetchUnits(ctx)
		apply = func() { r.units = units }
	case CollectionDevices:
		var devices []RFIDDevice
		devices, err = r.fetcher.FetchDevices(ctx)
		apply = func() { r.devices = devices }
	case CollectionAlerts:
		var alerts []Alert
		alerts, err = r.fetcher.FetchAlerts(ctx)
		apply = func() { r.alerts = alerts }
	default:
		return
	}

	if err != nil {
		// Previous snapshot stays visible; a failed fetch never nulls out
		// known-good data.
		log.Printf("[recon] %v", err)
		metrics.FetchFailures.WithLabelValues(col).Inc()
		return
	}

	r.mu.Lock()
	if seq <= r.published[col] {
		r.mu.Unlock()
		metrics.SupersededFetches.WithLabelValues(col).Inc()
		return
	}
	r.published[col] = seq
	apply()
	r.publishLocked()
	r.mu.Unlock()
}

// publishLocked rebuilds and fans out the view. Caller holds r.mu.
func (r *Reconciler) publishLocked() {
	now := r.now()
	stats := ComputeStats(r.zones, r.alerts, len(r.devices), r.peak, now)
	r.peak = stats.PeakToday

	view := &View{
		Zones:      r.zones,
		Units:      r.units,
		Devices:    r.devices,
		Alerts:     r.alerts,
		Stats:      stats,
		LastUpdate: now,
		StaleSince: r.staleSince,
	}
	r.current = view
	metrics.ViewsPublished.Inc()

	for _, ch := range r.viewSubs {
		select {
		case ch <- view:
		default:
		}
	}
}

// View returns the most recently published view.
func (r *Reconciler) View() *View {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// State reports the subscription state of a watched collection.
func (r *Reconciler) State(col string) SubscriptionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.states[col]
}

func (r *Reconciler) setState(col string, s SubscriptionState) {
	r.mu.Lock()
	r.states[col] = s
	r.mu.Unlock()
}

// SubscribeViews returns a channel that receives every published view, and a
// cancel func. Slow consumers miss intermediate views rather than blocking
// the loop.
func (r *Reconciler) SubscribeViews() (<-chan *View, func()) {
	ch := make(chan *View, 8)

	r.mu.Lock()
	r.nextSubID++
	id := r.nextSubID
	r.viewSubs[id] = ch
	r.mu.Unlock()

	cancel := func() {
		r.mu.Lock()
		delete(r.viewSubs, id)
		r.mu.Unlock()
	}
	return ch, cancel
}

// connState moves watched subscriptions between Active and Reconnecting as
// the realtime transport drops and recovers. While reconnecting the last
// good snapshots stay visible, flagged stale.
func (r *Reconciler) connState(up bool) {
	if up {
		r.mu.Lock()
		for _, col := range watchedCollections {
			if r.states[col] == StateReconnecting {
				r.states[col] = StateActive
			}
		}
		r.staleSince = nil
		r.mu.Unlock()

		// Anything could have changed while the channel was down.
		for _, col := range allCollections {
			r.Trigger(col)
		}
		return
	}

	r.mu.Lock()
	for _, col := range watchedCollections {
		if r.states[col] == StateActive {
			r.states[col] = StateReconnecting
		}
	}
	if r.staleSince == nil {
		t := r.now()
		r.staleSince = &t
		r.publishLocked()
	}
	r.mu.Unlock()
}

// Close tears the loop down: subscriptions are released and workers drained.
func (r *Reconciler) Close() {
	r.closeOnce.Do(func() {
		close(r.done)
		for _, unsub := range r.unsubscribes {
			unsub()
		}
		r.wg.Wait()

		r.mu.Lock()
		for _, col := range watchedCollections {
			r.states[col] = StateClosed
		}
		r.mu.Unlock()
	})
}
