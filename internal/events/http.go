package events

import (
	"net/http"
	"time"
)

// HTTPAttemptStart is emitted before a request is written to the server.
// Context carries the fetch's request id.
type HTTPAttemptStart struct {
	Request *http.Request
	// WithQuery is false for hash-only persisted query attempts.
	WithQuery bool
}

// HTTPAttemptFinish is emitted after the response body was read or the
// round trip failed.
type HTTPAttemptFinish struct {
	Request  *http.Request
	Status   int
	Bytes    int
	Err      error
	Duration time.Duration
}
