package nws

import "fmt"

// ErrorKind classifies fetch failures. All kinds are recoverable: the next
// scheduled tick or manual refresh simply tries again.
type ErrorKind int

const (
	// ErrNetwork covers timeouts and connection failures.
	ErrNetwork ErrorKind = iota
	// ErrHTTPStatus covers non-2xx responses; StatusCode carries the status.
	ErrHTTPStatus
	// ErrMalformedResponse covers non-JSON bodies.
	ErrMalformedResponse
)

func (k ErrorKind) String() string {
	switch k {
	case ErrNetwork:
		return "network"
	case ErrHTTPStatus:
		return "http status"
	case ErrMalformedResponse:
		return "malformed response"
	default:
		return "unknown"
	}
}

// FetchError is the error type surfaced by Client.Fetch. It carries the URL
// that failed so the status line can report the query source.
type FetchError struct {
	Kind       ErrorKind
	StatusCode int // set when Kind == ErrHTTPStatus
	SourceURL  string
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case ErrHTTPStatus:
		return fmt.Sprintf("API returned status %d (%s)", e.StatusCode, e.SourceURL)
	case ErrMalformedResponse:
		return fmt.Sprintf("response from %s is not valid JSON", e.SourceURL)
	default:
		return fmt.Sprintf("request to %s failed: %v", e.SourceURL, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }
