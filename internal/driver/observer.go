package driver

import "time"

// EventKind tells a progress observer what happened to a file.
type EventKind uint8

const (
	EventQueued EventKind = iota
	EventStart
	EventDone
)

// Event is sent to Options.Observer. Done events carry the finished Result.
type Event struct {
	Kind    EventKind
	Index   int
	Path    string
	Total   int
	Elapsed time.Duration
	Result  *Result
}

// Observer receives progress events. It is called from worker goroutines and
// must be safe for concurrent use.
type Observer func(Event)
