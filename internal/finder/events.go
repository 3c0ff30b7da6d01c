package finder

import (
	"time"

	"github.com/joe/find-files/internal/search"
)

// Event is the interface implemented by all finder events.
type Event interface {
	isEvent()
}

// EventEmitter is the interface for emitting events.
type EventEmitter interface {
	Emit(event Event)
}

// SearchStarted is emitted when a search opens its root.
type SearchStarted struct {
	Root    string
	Pattern string
}

func (SearchStarted) isEvent() {}

// MatchFound is emitted for every yielded entry.
type MatchFound struct {
	Entry search.Entry
	Count int // results so far, including this one
}

func (MatchFound) isEvent() {}

// DirectorySkipped is emitted when an unreadable directory is skipped
// instead of ending the search.
type DirectorySkipped struct {
	Path string
	Err  error // enriched with suggestions
}

func (DirectorySkipped) isEvent() {}

// SearchComplete is emitted once when a search ends for any reason.
type SearchComplete struct {
	Count    int
	Skipped  int
	Stopped  bool // ended before the tree was exhausted (limit, cancel, caller stop)
	Duration time.Duration
	Err      error
}

func (SearchComplete) isEvent() {}
