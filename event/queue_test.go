package event

import (
	"sync"
	"testing"

	"github.com/lixenwraith/soundstage/core"
	"github.com/lixenwraith/soundstage/parameter"
)

func keyEvent(ch rune) InputEvent {
	return InputEvent{Kind: KindKeyPress, Sym: core.KeyRune, Ch: ch}
}

func TestQueueFIFO(t *testing.T) {
	q := NewQueue()
	for _, ch := range "abc" {
		q.Push(keyEvent(ch))
	}
	if q.Len() != 3 {
		t.Fatalf("len = %d, want 3", q.Len())
	}

	got := q.Consume()
	if len(got) != 3 {
		t.Fatalf("consumed %d events", len(got))
	}
	for i, want := range "abc" {
		if got[i].Ch != want {
			t.Fatalf("got[%d].Ch = %q, want %q", i, got[i].Ch, want)
		}
	}

	if q.Consume() != nil {
		t.Fatal("drained queue returned events")
	}
	if q.Len() != 0 {
		t.Fatalf("len = %d after drain", q.Len())
	}
}

func TestQueueOverflowDropsOldest(t *testing.T) {
	q := NewQueue()
	total := parameter.EventQueueSize + 10
	for i := 0; i < total; i++ {
		q.Push(InputEvent{Kind: KindKeyPress, Sym: core.KeyRune, Ch: rune(i)})
	}

	got := q.Consume()
	if len(got) != parameter.EventQueueSize {
		t.Fatalf("consumed %d, want %d", len(got), parameter.EventQueueSize)
	}
	// The ten oldest events were overwritten
	if got[0].Ch != rune(10) {
		t.Fatalf("first surviving event = %d, want 10", got[0].Ch)
	}
	if got[len(got)-1].Ch != rune(total-1) {
		t.Fatalf("last event = %d, want %d", got[len(got)-1].Ch, total-1)
	}
}

func TestQueueConcurrentProducers(t *testing.T) {
	q := NewQueue()
	const producers = 8
	const perProducer = 100 // well under capacity, no overflow

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Push(keyEvent('x'))
			}
		}()
	}
	wg.Wait()

	total := 0
	for {
		batch := q.Consume()
		if batch == nil {
			break
		}
		total += len(batch)
	}
	if total != producers*perProducer {
		t.Fatalf("consumed %d events, want %d", total, producers*perProducer)
	}
}

func TestQueueInterleavedPushConsume(t *testing.T) {
	q := NewQueue()
	q.Push(keyEvent('a'))
	q.Consume()
	q.Push(keyEvent('b'))

	got := q.Consume()
	if len(got) != 1 || got[0].Ch != 'b' {
		t.Fatalf("got %v", got)
	}
}
