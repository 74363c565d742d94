package types

import (
	"sync"
	"testing"
)

func TestControlledQueueFIFO(t *testing.T) {
	cq := NewControlledQueue[int]()
	for i := 0; i < 5; i++ {
		if !cq.Send(i) {
			t.Fatalf("Send(%d) refused", i)
		}
	}
	if cq.Len() != 5 {
		t.Fatalf("Len() = %d, want 5", cq.Len())
	}
	for i := 0; i < 5; i++ {
		v, ok := cq.Recv()
		if !ok || v != i {
			t.Fatalf("Recv() = %d, %v; want %d, true", v, ok, i)
		}
	}
}

func TestControlledQueueAttemptRecv(t *testing.T) {
	cq := NewControlledQueue[string]()
	canRecv, _, ok := cq.AttemptRecv(false)
	if canRecv || !ok {
		t.Fatalf("empty AttemptRecv = %v, %v; want false, true", canRecv, ok)
	}
	cq.Send("a")
	canRecv, v, ok := cq.AttemptRecv(false)
	if !canRecv || !ok || v != "a" {
		t.Fatalf("AttemptRecv = %v, %q, %v", canRecv, v, ok)
	}
}

func TestControlledQueueClose(t *testing.T) {
	cq := NewControlledQueue[int]()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := cq.Recv(); ok {
				t.Error("Recv after Close reported ok")
			}
		}()
	}
	cq.Close()
	wg.Wait()

	if cq.Send(1) {
		t.Fatal("Send after Close accepted")
	}
}

func TestControlledQueueManyReceivers(t *testing.T) {
	cq := NewControlledQueue[int]()
	const n = 1000

	var mu sync.Mutex
	seen := make(map[int]bool)
	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				v, ok := cq.Recv()
				if !ok {
					return
				}
				mu.Lock()
				seen[v] = true
				mu.Unlock()
			}
		}()
	}

	var done sync.WaitGroup
	done.Add(1)
	go func() {
		defer done.Done()
		for i := 0; i < n; i++ {
			cq.Send(i)
		}
	}()
	done.Wait()

	// Items queued before Close are still delivered.
	cq.Close()
	wg.Wait()

	if len(seen) != n {
		t.Fatalf("received %d distinct items, want %d", len(seen), n)
	}
}
