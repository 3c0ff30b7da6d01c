package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joe/find-files/internal/finder"
)

// FinderEventMsg wraps a finder.Event for use as a tea.Msg.
type FinderEventMsg struct {
	Event finder.Event
}

// EventBridge adapts finder events to bubble tea messages.
// It implements finder.EventEmitter and provides a channel for TUI consumption.
type EventBridge struct {
	mu        sync.Mutex
	eventChan chan tea.Msg
	closed    bool
}

// NewEventBridge creates a new event bridge.
func NewEventBridge() *EventBridge {
	return &EventBridge{
		eventChan: make(chan tea.Msg, eventBufferSize),
	}
}

// Close closes the event channel. Later Emit calls are ignored.
func (b *EventBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.closed {
		b.closed = true
		close(b.eventChan)
	}
}

// Emit implements finder.EventEmitter.
// Match events are not forwarded; results reach the view by pulling.
func (b *EventBridge) Emit(event finder.Event) {
	if _, ok := event.(finder.MatchFound); ok {
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	// Non-blocking send - if channel is full, skip event
	select {
	case b.eventChan <- FinderEventMsg{Event: event}:
	default:
	}
}

// ListenCmd returns a tea.Cmd that blocks until an event is received.
// Use this in Init() or after processing an event to continue listening.
func (b *EventBridge) ListenCmd() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-b.eventChan
		if !ok {
			return nil
		}

		return msg
	}
}

// Subscribe returns the event channel for receiving events.
func (b *EventBridge) Subscribe() <-chan tea.Msg {
	return b.eventChan
}

// unexported constants.
const (
	eventBufferSize = 100
)
