package crawler

import (
	"fmt"
	"testing"
)

func TestFrontierFIFO(t *testing.T) {
	f := NewFrontier()

	urls := []string{
		"https://example.com/",
		"https://example.com/a",
		"https://example.com/b",
	}
	for _, u := range urls {
		if !f.Add(u) {
			t.Errorf("Add(%q) = false, want true", u)
		}
	}

	for _, want := range urls {
		got, ok := f.Next()
		if !ok {
			t.Fatal("Next() = false, want true")
		}
		if got != want {
			t.Errorf("Next() = %q, want %q (FIFO order)", got, want)
		}
	}

	if _, ok := f.Next(); ok {
		t.Error("Next() on empty frontier = true, want false")
	}
}

func TestFrontierNoDuplicateQueueEntries(t *testing.T) {
	f := NewFrontier()

	f.Add("https://example.com/page")
	if f.Add("https://example.com/page") {
		t.Error("Add() of queued URL = true, want false")
	}
	if f.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", f.Pending())
	}
}

func TestFrontierNeverRevisits(t *testing.T) {
	f := NewFrontier()

	f.Add("https://example.com/page")
	f.Next()

	if f.Add("https://example.com/page") {
		t.Error("Add() of visited URL = true, want false")
	}
	if !f.Visited("https://example.com/page") {
		t.Error("Visited() = false, want true")
	}
	if f.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", f.Pending())
	}
}

func TestFrontierManyURLs(t *testing.T) {
	f := NewFrontier()

	for i := 0; i < 1000; i++ {
		f.Add(fmt.Sprintf("https://example.com/page-%d", i))
	}
	if f.Pending() != 1000 {
		t.Errorf("Pending() = %d, want 1000", f.Pending())
	}

	seen := make(map[string]bool)
	for {
		u, ok := f.Next()
		if !ok {
			break
		}
		if seen[u] {
			t.Fatalf("URL %q dequeued twice", u)
		}
		seen[u] = true
	}
	if len(seen) != 1000 {
		t.Errorf("dequeued %d URLs, want 1000", len(seen))
	}
}
