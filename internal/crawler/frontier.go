package crawler

import (
	"sync"

	"github.com/bits-and-blooms/bloom/v3"
)

const (
	// Bloom filter settings for ~1M URLs with 1% false positive rate
	bloomFilterSize = 1_000_000
	bloomFilterFP   = 0.01
)

// Frontier manages the FIFO queue of discovered-but-unvisited normalized URLs.
// Dequeue order is discovery order, which gives the crawl its breadth-first
// shape. Every URL is dequeued at most once.
type Frontier struct {
	mu sync.Mutex

	queue   []string
	queued  map[string]struct{}
	visited map[string]struct{}

	// Fast negative check in front of the exact sets
	seen *bloom.BloomFilter
}

// NewFrontier creates an empty frontier
func NewFrontier() *Frontier {
	return &Frontier{
		queue:   make([]string, 0),
		queued:  make(map[string]struct{}),
		visited: make(map[string]struct{}),
		seen:    bloom.NewWithEstimates(bloomFilterSize, bloomFilterFP),
	}
}

// Add enqueues a normalized URL unless it is already queued or was already
// visited. Returns true when the URL was actually added.
func (f *Frontier) Add(normalized string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := []byte(normalized)
	if f.seen.Test(key) {
		// Possible hit; the exact sets decide
		if _, ok := f.queued[normalized]; ok {
			return false
		}
		if _, ok := f.visited[normalized]; ok {
			return false
		}
	}

	f.seen.Add(key)
	f.queued[normalized] = struct{}{}
	f.queue = append(f.queue, normalized)
	return true
}

// Next dequeues the oldest pending URL and marks it visited
func (f *Frontier) Next() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}

	next := f.queue[0]
	f.queue = f.queue[1:]
	delete(f.queued, next)
	f.visited[next] = struct{}{}
	return next, true
}

// Visited reports whether a normalized URL has been dequeued before
func (f *Frontier) Visited(normalized string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.visited[normalized]
	return ok
}

// Pending returns the number of queued URLs
func (f *Frontier) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// VisitedCount returns the number of URLs dequeued so far
func (f *Frontier) VisitedCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.visited)
}
