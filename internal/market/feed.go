package market

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Source produces ticker snapshots and advances them.
type Source interface {
	Snapshot() []Quote
	Step() []Quote
}

// RandomWalk mutates quotes with a bounded pseudo-random step. Crypto moves
// proportionally to price; forex moves in pip increments.
type RandomWalk struct {
	mu     sync.Mutex
	quotes []Quote
	rand   *rand.Rand
}

// NewRandomWalk starts a walk from the given quotes. A nil seed source uses
// the current time.
func NewRandomWalk(quotes []Quote, src *rand.Rand) *RandomWalk {
	if src == nil {
		src = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	copied := make([]Quote, len(quotes))
	copy(copied, quotes)
	return &RandomWalk{quotes: copied, rand: src}
}

// Snapshot returns a copy of the current board.
func (w *RandomWalk) Snapshot() []Quote {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Quote, len(w.quotes))
	copy(out, w.quotes)
	return out
}

// Step advances every quote once and returns the new board.
func (w *RandomWalk) Step() []Quote {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.quotes {
		q := &w.quotes[i]
		shock := w.rand.Float64()*2 - 1
		if q.Forex {
			q.Price += shock * q.Pip * 5
		} else {
			q.Price += shock * q.Price * 0.002
		}
		if q.Price < 0 {
			q.Price = 0
		}
		q.Change += shock * 0.05
	}
	out := make([]Quote, len(w.quotes))
	copy(out, w.quotes)
	return out
}

// Price looks up the current price for a symbol.
func (w *RandomWalk) Price(symbol string) (float64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, q := range w.quotes {
		if q.Symbol == symbol {
			return q.Price, true
		}
	}
	return 0, false
}

// Feed fans a source's steps out to stream subscribers. Slow subscribers
// drop frames rather than stall the feed.
type Feed struct {
	src      Source
	interval time.Duration

	mu   sync.Mutex
	subs map[chan []Quote]struct{}
}

// NewFeed creates a feed stepping at the given interval.
func NewFeed(src Source, interval time.Duration) *Feed {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &Feed{src: src, interval: interval, subs: make(map[chan []Quote]struct{})}
}

// Subscribe registers a stream consumer. The returned cancel func must be
// called to release the subscription.
func (f *Feed) Subscribe() (<-chan []Quote, func()) {
	ch := make(chan []Quote, 1)
	f.mu.Lock()
	f.subs[ch] = struct{}{}
	f.mu.Unlock()
	cancel := func() {
		f.mu.Lock()
		if _, ok := f.subs[ch]; ok {
			delete(f.subs, ch)
			close(ch)
		}
		f.mu.Unlock()
	}
	return ch, cancel
}

// Run steps the source on a ticker until the context ends.
func (f *Feed) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			f.broadcast(f.src.Step())
		}
	}
}

func (f *Feed) broadcast(quotes []Quote) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for ch := range f.subs {
		select {
		case ch <- quotes:
		default:
		}
	}
}
