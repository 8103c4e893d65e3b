package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultMaxRedirects = 5

// Options configures a fetch client
type Options struct {
	Timeout        time.Duration
	MaxRedirects   int
	UserAgent      string
	RotateHeaders  bool
	TLSFingerprint bool
}

// Response is the portion of an HTTP response the audit pipeline consumes
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Client issues the page and image-metadata requests for an audit run
type Client struct {
	hc        *http.Client
	userAgent string
	rotator   *HeaderRotator
}

// NewClient creates a fetch client with bounded timeout and redirect count
func NewClient(opts Options) *Client {
	maxRedirects := opts.MaxRedirects
	if maxRedirects <= 0 {
		maxRedirects = defaultMaxRedirects
	}

	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		DisableCompression:  false,
	}

	var rotator *HeaderRotator
	if opts.RotateHeaders {
		rotator = NewHeaderRotator()
	}

	if opts.TLSFingerprint {
		tf := NewTLSFingerprinter()
		profile := tf.GetRandomProfile()
		if t, err := tf.CreateTransport(profile); err == nil {
			transport = t
			// Headers should tell the same story as the TLS handshake
			rotator = NewHeaderRotator()
			rotator.Pin(tf.GetMatchingHeaderProfile(profile))
		}
	}

	return &Client{
		hc: &http.Client{
			Timeout:   opts.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		userAgent: opts.UserAgent,
		rotator:   rotator,
	}
}

// Document performs a GET and returns the full response body
func (c *Client) Document(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &RequestError{URL: url, StatusCode: http.StatusInternalServerError, Err: err}
	}
	c.applyHeaders(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &RequestError{URL: url, StatusCode: Classify(err), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{URL: url, StatusCode: Classify(err), Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

// Metadata performs a HEAD request, returning headers without a body download
func (c *Client) Metadata(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, url, nil)
	if err != nil {
		return nil, &RequestError{URL: url, StatusCode: http.StatusInternalServerError, Err: err}
	}
	c.applyHeaders(req)

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, &RequestError{URL: url, StatusCode: Classify(err), Err: err}
	}
	resp.Body.Close()

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
	}, nil
}

func (c *Client) applyHeaders(req *http.Request) {
	if c.rotator != nil {
		c.rotator.ApplyHeaders(req)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
}
