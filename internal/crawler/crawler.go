package crawler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/BenjaminSRussell/imgaudit/internal/analyzer"
	"github.com/BenjaminSRussell/imgaudit/internal/fetch"
	"github.com/BenjaminSRussell/imgaudit/internal/inspector"
	"github.com/BenjaminSRussell/imgaudit/internal/stats"
	"github.com/BenjaminSRussell/imgaudit/internal/storage"
	"github.com/BenjaminSRussell/imgaudit/internal/types"
	"github.com/BenjaminSRussell/imgaudit/internal/urlutil"
)

const defaultTimeout = 10 * time.Second

// Engine drives the breadth-first crawl and produces the final report
type Engine struct {
	config   types.Config
	seedURL  string // normalized
	frontier *Frontier
	analyzer *analyzer.Analyzer
	client   *fetch.Client
	storage  *storage.Storage
	sqlite   *storage.SQLiteStorage

	// Stats
	processed atomic.Int64
	analyzed  atomic.Int64
	errored   atomic.Int64
	inflight  atomic.Int64

	// Concurrency control
	sem chan struct{}
	wg  sync.WaitGroup

	mu      sync.Mutex
	results []sequencedResult
}

// sequencedResult tags a page result with its dequeue position so the final
// report can be sorted back into discovery order.
type sequencedResult struct {
	seq  int
	page types.PageResult
}

// New validates the configuration and creates a crawl engine.
// A missing or unparseable seed URL is the only fatal input.
func New(config types.Config) (*Engine, error) {
	if config.SeedURL == "" {
		return nil, &InvalidInputError{Reason: "seed URL is required"}
	}

	seed, err := urlutil.Normalize(config.SeedURL)
	if err != nil {
		return nil, &InvalidInputError{Reason: "seed URL is not crawlable", Err: err}
	}

	if !config.CrawlEnabled {
		// Single-page mode is a crawl with a page cap of exactly one
		config.MaxPages = 1
	}
	if config.MaxPages < 1 {
		config.MaxPages = 1
	}
	if config.Workers < 1 {
		config.Workers = 1
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.MaxImagesPerPage < 0 {
		config.MaxImagesPerPage = types.UnlimitedImages
	}

	client := fetch.NewClient(fetch.Options{
		Timeout:        config.Timeout,
		MaxRedirects:   config.MaxRedirects,
		UserAgent:      config.UserAgent,
		RotateHeaders:  config.UseHeaderRotation,
		TLSFingerprint: config.EnableTLS,
	})

	e := &Engine{
		config:   config,
		seedURL:  seed,
		frontier: NewFrontier(),
		analyzer: analyzer.New(inspector.New(client)),
		client:   client,
		sem:      make(chan struct{}, config.Workers),
		results:  make([]sequencedResult, 0),
	}

	if config.DataDir != "" {
		store, err := storage.New(config.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		e.storage = store

		if config.EnableSQLite {
			db, err := storage.NewSQLiteStorage(filepath.Join(config.DataDir, "audit.db"))
			if err != nil {
				return nil, fmt.Errorf("failed to initialize sqlite storage: %w", err)
			}
			e.sqlite = db
		}
	}

	e.frontier.Add(seed)

	return e, nil
}

// Run crawls until the frontier drains or the page cap is reached, then
// reduces every page result into the domain report. Individual page failures
// are recorded and never stop the run.
func (e *Engine) Run(ctx context.Context) (*types.Report, error) {
	defer e.closeStores()

	if e.storage != nil {
		if err := e.storage.SaveConfig(e.config); err != nil {
			return nil, fmt.Errorf("failed to save config: %w", err)
		}
	}

	ticker := time.NewTicker(5 * time.Second)
	defer ticker.Stop()
	done := make(chan struct{})
	defer close(done)
	go e.reportProgress(ticker, done)

	// Dispatch loop. Attempts are counted at dequeue time so the page cap
	// bounds pages actually attempted, not pages completed.
	attempted := 0
	for attempted < e.config.MaxPages {
		pageURL, ok := e.frontier.Next()
		if !ok {
			if e.inflight.Load() == 0 {
				break
			}
			// Workers may still discover links
			time.Sleep(50 * time.Millisecond)
			continue
		}

		seq := attempted
		attempted++

		e.sem <- struct{}{}
		e.wg.Add(1)
		e.inflight.Add(1)
		go e.processPage(ctx, seq, pageURL)
	}

	e.wg.Wait()

	e.mu.Lock()
	sort.Slice(e.results, func(i, j int) bool { return e.results[i].seq < e.results[j].seq })
	pages := make([]types.PageResult, 0, len(e.results))
	for _, r := range e.results {
		pages = append(pages, r.page)
	}
	e.mu.Unlock()

	report := &types.Report{
		Domain: stats.Reduce(urlutil.Host(e.seedURL), pages),
		Pages:  pages,
		Meta: types.Meta{
			TotalPagesProcessed: len(pages),
			AnalyzedPages:       int(e.analyzed.Load()),
			CompletedAt:         time.Now(),
		},
	}

	return report, nil
}

// AnalyzedPages returns the number of pages successfully analyzed so far.
// The count only grows during a run; it feeds external usage metering.
func (e *Engine) AnalyzedPages() int64 {
	return e.analyzed.Load()
}

// processPage fetches and analyzes a single page
func (e *Engine) processPage(ctx context.Context, seq int, pageURL string) {
	defer e.wg.Done()
	defer func() { <-e.sem }()
	defer e.inflight.Add(-1)

	resp, err := e.client.Document(ctx, pageURL)
	if err != nil {
		statusCode := http.StatusInternalServerError
		var reqErr *fetch.RequestError
		if errors.As(err, &reqErr) {
			statusCode = reqErr.StatusCode
		}
		e.recordFailure(seq, pageURL, statusCode, err.Error())
		return
	}

	// Server errors are recorded as failed pages. Client errors (4xx) with a
	// body still get their images analyzed.
	if resp.StatusCode >= http.StatusInternalServerError {
		e.recordFailure(seq, pageURL, resp.StatusCode, fmt.Sprintf("server returned status %d", resp.StatusCode))
		return
	}

	doc, err := analyzer.ParseDocument(resp.Body)
	if err != nil {
		e.recordFailure(seq, pageURL, resp.StatusCode, err.Error())
		return
	}

	result := e.analyzer.Analyze(ctx, pageURL, doc, resp.StatusCode, analyzer.Options{
		MaxImagesPerPage: e.config.MaxImagesPerPage,
		SizeAnalysis:     e.config.SizeAnalysis,
		AltAnalysis:      e.config.AltAnalysis,
	})

	if e.config.CrawlEnabled {
		for _, link := range result.InternalLinks {
			normalized, err := urlutil.Normalize(link)
			if err != nil {
				continue
			}
			e.frontier.Add(normalized)
		}
	}

	e.record(seq, result)
	if result.StatusCode >= http.StatusOK && result.StatusCode < http.StatusMultipleChoices {
		e.analyzed.Add(1)
	}
}

// recordFailure appends the degraded result for a page that could not be
// fetched or parsed
func (e *Engine) recordFailure(seq int, pageURL string, statusCode int, message string) {
	e.errored.Add(1)
	e.record(seq, types.PageResult{
		URL:              pageURL,
		Domain:           urlutil.Host(pageURL),
		StatusCode:       statusCode,
		Error:            message,
		Images:           make([]types.ImageRecord, 0),
		ImagesWithoutAlt: make([]types.NoAltRef, 0),
		ImageTypes:       make(map[string]int),
		CrawledAt:        time.Now(),
	})
}

func (e *Engine) record(seq int, result types.PageResult) {
	e.processed.Add(1)

	if e.storage != nil {
		e.storage.SaveResult(result)
	}
	if e.sqlite != nil {
		e.sqlite.SavePage(result)
	}

	e.mu.Lock()
	e.results = append(e.results, sequencedResult{seq: seq, page: result})
	e.mu.Unlock()
}

// reportProgress prints crawl progress
func (e *Engine) reportProgress(ticker *time.Ticker, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			fmt.Printf("\rProcessed: %d | Analyzed: %d | Errors: %d | Pending: %d",
				e.processed.Load(), e.analyzed.Load(), e.errored.Load(), e.frontier.Pending())
		}
	}
}

func (e *Engine) closeStores() {
	if e.storage != nil {
		e.storage.Close()
	}
	if e.sqlite != nil {
		e.sqlite.Close()
	}
}
