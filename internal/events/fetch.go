package events

import "time"

// FetchStart is emitted before an operation is sent.
type FetchStart struct {
	OperationName string
	OperationType string
	Mode          string
	Identifier    string
}

// FetchFinish is emitted once the operation's response is decoded or the
// fetch failed.
type FetchFinish struct {
	OperationName string
	OperationType string
	Mode          string
	// Attempts counts HTTP round trips, 2 when an APQ miss was retried with
	// the document text.
	Attempts int
	Errors   []error
	Err      error
	Duration time.Duration
}
