package queue

import (
	"sync"
	"testing"
)

func TestQueue_New(t *testing.T) {
	q := New[int]()
	if q == nil {
		t.Fatal("expected non-nil queue")
	}
	if !q.Empty() {
		t.Error("expected empty queue")
	}
	if q.Len() != 0 {
		t.Errorf("expected length 0, got %d", q.Len())
	}
}

func TestQueue_PushPop(t *testing.T) {
	q := New[int]()

	// Pop from empty queue returns zero value
	if got := q.Pop(); got != 0 {
		t.Errorf("expected zero value, got %d", got)
	}

	q.Push(1, 2, 3)
	if q.Len() != 3 {
		t.Errorf("expected length 3, got %d", q.Len())
	}
	if got := q.Pop(); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := q.Pop(); got != 2 {
		t.Errorf("expected 2, got %d", got)
	}
}

func TestQueue_Drain(t *testing.T) {
	q := New[string]()
	q.Push("a", "b", "c")

	items := q.Drain()
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0] != "a" || items[1] != "b" || items[2] != "c" {
		t.Errorf("expected order preserved, got %v", items)
	}
	if !q.Empty() {
		t.Error("expected empty queue after drain")
	}

	if got := q.Drain(); len(got) != 0 {
		t.Errorf("expected empty drain, got %v", got)
	}
}

func TestQueue_Clear(t *testing.T) {
	q := New[int]()
	q.Push(1, 2)
	q.Clear()
	if !q.Empty() {
		t.Error("expected empty queue after clear")
	}
}

func TestQueue_ConcurrentAccess(t *testing.T) {
	q := New[int]()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(n*100 + j)
			}
		}(i)
	}
	wg.Wait()

	if q.Len() != 1000 {
		t.Errorf("expected 1000 items, got %d", q.Len())
	}
	if got := len(q.Drain()); got != 1000 {
		t.Errorf("expected to drain 1000 items, got %d", got)
	}
	if !q.Empty() {
		t.Error("expected empty queue after drain")
	}
}
