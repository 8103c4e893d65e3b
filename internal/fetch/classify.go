package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"syscall"
)

// RequestError wraps a failed request with the status class assigned to it
type RequestError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request to %s failed (status class %d): %v", e.URL, e.StatusCode, e.Err)
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

// Classify maps a transport-level failure onto an HTTP status class so that
// failed pages and images carry a comparable status code. Unresolvable hosts
// and refused connections read as not-found, timeouts as request-timeout,
// and reset connections as service-unavailable.
func Classify(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if errors.Is(err, syscall.ECONNREFUSED) {
		return http.StatusNotFound
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) && !dnsErr.IsTimeout {
		return http.StatusNotFound
	}

	if errors.Is(err, syscall.ECONNRESET) {
		return http.StatusServiceUnavailable
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return http.StatusRequestTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return http.StatusRequestTimeout
	}

	return http.StatusInternalServerError
}
