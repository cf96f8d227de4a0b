package market

import (
	"math/rand"
	"testing"
)

func TestRandomWalkStepMovesPrices(t *testing.T) {
	walk := NewRandomWalk(SeedQuotes(), rand.New(rand.NewSource(42)))
	before := walk.Snapshot()
	after := walk.Step()

	if len(after) != len(before) {
		t.Fatalf("step changed board size: %d -> %d", len(before), len(after))
	}
	moved := false
	for i := range after {
		if after[i].Price != before[i].Price {
			moved = true
		}
		if after[i].Price < 0 {
			t.Fatalf("negative price after step: %+v", after[i])
		}
	}
	if !moved {
		t.Fatal("step moved nothing")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	walk := NewRandomWalk(SeedQuotes(), rand.New(rand.NewSource(1)))
	snap := walk.Snapshot()
	snap[0].Price = -1

	if price, _ := walk.Price(snap[0].Symbol); price == -1 {
		t.Fatal("snapshot aliases internal state")
	}
}

func TestPriceLookup(t *testing.T) {
	walk := NewRandomWalk(SeedQuotes(), rand.New(rand.NewSource(1)))
	price, ok := walk.Price("BTC")
	if !ok || price != 68420.50 {
		t.Fatalf("unexpected BTC price: %v %v", price, ok)
	}
	if _, ok := walk.Price("DOGE"); ok {
		t.Fatal("unknown symbol reported present")
	}
}

func TestFeedBroadcastsToSubscribers(t *testing.T) {
	walk := NewRandomWalk(SeedQuotes(), rand.New(rand.NewSource(7)))
	feed := NewFeed(walk, 0)

	ch, cancel := feed.Subscribe()
	defer cancel()

	feed.broadcast(walk.Step())
	select {
	case quotes := <-ch:
		if len(quotes) != len(SeedQuotes()) {
			t.Fatalf("unexpected frame size: %d", len(quotes))
		}
	default:
		t.Fatal("subscriber received nothing")
	}
}

func TestFeedDropsFramesForSlowSubscribers(t *testing.T) {
	walk := NewRandomWalk(SeedQuotes(), rand.New(rand.NewSource(7)))
	feed := NewFeed(walk, 0)

	ch, cancel := feed.Subscribe()
	defer cancel()

	// Buffer holds one frame; the second must be dropped, not block.
	feed.broadcast(walk.Step())
	feed.broadcast(walk.Step())

	<-ch
	select {
	case <-ch:
		t.Fatal("second frame should have been dropped")
	default:
	}
}

func TestCancelClosesSubscription(t *testing.T) {
	walk := NewRandomWalk(SeedQuotes(), rand.New(rand.NewSource(7)))
	feed := NewFeed(walk, 0)

	ch, cancel := feed.Subscribe()
	cancel()
	cancel() // second cancel is a no-op

	if _, open := <-ch; open {
		t.Fatal("channel still open after cancel")
	}
}
