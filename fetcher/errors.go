package fetcher

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrTimeout indicates a timeout while issuing a request.
type ErrTimeout struct {
	Err error
}

func (e ErrTimeout) Error() string {
	return fmt.Errorf("timeout: %w", e.Err).Error()
}

func (e ErrTimeout) Unwrap() error {
	return e.Err
}

// ErrConnection indicates a network connectivity failure.
type ErrConnection struct {
	Err error
}

func (e ErrConnection) Error() string {
	return fmt.Errorf("connection: %w", e.Err).Error()
}

func (e ErrConnection) Unwrap() error {
	return e.Err
}

// ErrServer indicates a 5xx response from the results site.
type ErrServer struct {
	Status int
	Err    error
}

func (e ErrServer) Error() string {
	return fmt.Errorf("server status %d: %w", e.Status, e.Err).Error()
}

func (e ErrServer) Unwrap() error {
	return e.Err
}

// ErrPermanent indicates a response that retrying cannot fix: a 4xx
// status or a malformed response.
type ErrPermanent struct {
	Status int
	Err    error
}

func (e ErrPermanent) Error() string {
	if e.Status != 0 {
		return fmt.Errorf("permanent status %d: %w", e.Status, e.Err).Error()
	}
	return fmt.Errorf("permanent: %w", e.Err).Error()
}

func (e ErrPermanent) Unwrap() error {
	return e.Err
}

// ExhaustedError is returned once the retry policy gives up on a URL.
type ExhaustedError struct {
	URL      string
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("fetch exhausted after %d attempts for %s: %v", e.Attempts, e.URL, e.Err)
}

func (e *ExhaustedError) Unwrap() error {
	return e.Err
}

// classifyError maps a transport error and status code onto the fetch
// error taxonomy.
func classifyError(err error, statusCode int) error {
	if err == nil && statusCode == 0 {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout{Err: err}
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return ErrConnection{Err: err}
	}

	if statusCode != 0 {
		wrapped := err
		if wrapped == nil {
			wrapped = fmt.Errorf("http status %d", statusCode)
		}
		switch {
		case statusCode >= http.StatusInternalServerError:
			return ErrServer{Status: statusCode, Err: wrapped}
		case statusCode >= http.StatusBadRequest:
			return ErrPermanent{Status: statusCode, Err: wrapped}
		}
	}

	if err == nil {
		return nil
	}
	return err
}

// isTransient reports whether a classified error is worth retrying.
func isTransient(err error) bool {
	var timeout ErrTimeout
	if errors.As(err, &timeout) {
		return true
	}
	var conn ErrConnection
	if errors.As(err, &conn) {
		return true
	}
	var server ErrServer
	return errors.As(err, &server)
}

func errorTypeLabel(err error) string {
	if err == nil {
		return "unknown"
	}
	var timeout ErrTimeout
	if errors.As(err, &timeout) {
		return "timeout"
	}
	var conn ErrConnection
	if errors.As(err, &conn) {
		return "connection"
	}
	var server ErrServer
	if errors.As(err, &server) {
		return "server"
	}
	var permanent ErrPermanent
	if errors.As(err, &permanent) {
		return "permanent"
	}
	var exhausted *ExhaustedError
	if errors.As(err, &exhausted) {
		return "exhausted"
	}
	return "other"
}
