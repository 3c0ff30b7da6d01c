package search

import (
	"fmt"

	"github.com/joe/find-files/pkg/filesystem"
)

// Enumerator pulls search results one at a time.
//
// The zero value is not usable; create one with New. An Enumerator is not
// safe for concurrent use, but independent Enumerators share nothing and may
// run on separate goroutines.
type Enumerator struct {
	fsys     filesystem.FileSystem
	spec     Spec
	frontier frontier
	index    int
	current  Entry
	err      error
	finished bool
	closed   bool
}

// New opens the root directory and returns an Enumerator positioned before
// the first result. A root that cannot be opened is reported here rather
// than from Next, and OnError is not consulted for it.
func New(fsys filesystem.FileSystem, spec Spec) (*Enumerator, error) {
	if spec.Root == "" {
		return nil, ErrNoRoot
	}

	e := &Enumerator{
		fsys: fsys,
		spec: spec,
	}

	if err := e.start(); err != nil {
		return nil, err
	}

	return e, nil
}

// Close releases every open directory handle, queued or active.
// Safe to call at any point and more than once.
func (e *Enumerator) Close() error {
	err := e.release()
	e.closed = true
	e.finished = true

	return err
}

// Current returns the path produced by the last successful Next, or "" when
// no result is ready.
func (e *Enumerator) Current() string {
	return e.current.Path
}

// Done reports whether the enumeration has been exhausted, has failed, or has
// been closed.
func (e *Enumerator) Done() bool {
	return e.finished
}

// Entry returns the entry produced by the last successful Next.
func (e *Enumerator) Entry() Entry {
	return e.current
}

// Err returns the error that stopped the enumeration, if any.
// Directory access errors are returned here, not swallowed, unless the
// Spec's OnError handler chose to skip them.
func (e *Enumerator) Err() error {
	return e.err
}

// Next advances to the next result. It returns false once the tree is
// exhausted, on an error (see Err), or after Close. Repeated calls after
// the end keep returning false.
func (e *Enumerator) Next() bool {
	e.current = Entry{}

	if e.closed || e.fsys == nil {
		e.err = ErrClosed
		return false
	}

	for !e.finished {
		state := e.frontier[e.index]

		if state.dir.Next() {
			if e.consider(state) {
				return true
			}

			continue
		}

		if err := state.dir.Err(); err != nil && !e.tolerate(state.path, err) {
			return false
		}

		e.pop()
	}

	return false
}

// Open returns how many directory handles are currently held.
func (e *Enumerator) Open() int {
	return len(e.frontier)
}

// Reset releases all state and restarts from the root. The next result
// will be the first result of a fresh walk. Reset also revives a closed
// Enumerator.
func (e *Enumerator) Reset() error {
	releaseErr := e.release()
	e.closed = false

	if err := e.start(); err != nil {
		return err
	}

	return releaseErr
}

// consider classifies the scanner's current entry, queues it for descent if
// eligible, and stages it as the result if it should be yielded.
func (e *Enumerator) consider(state *scanState) bool {
	entry := Entry{
		Path:           state.dir.FullPath(),
		Name:           state.dir.Name(),
		IsDir:          state.dir.IsDir(),
		IsReparsePoint: state.dir.IsReparsePoint(),
	}

	yield, descend := classify(&e.spec, entry)

	if descend {
		child, err := newScanState(e.fsys, entry.Path)
		if err != nil {
			if !e.tolerate(entry.Path, err) {
				return false
			}
		} else {
			e.frontier.insertChild(e.index, child)
		}
	}

	if !yield {
		return false
	}

	e.current = entry

	return true
}

// fail stops the walk with err and releases every handle.
func (e *Enumerator) fail(err error) {
	_ = e.release()
	e.err = err
	e.finished = true
}

// pop drops the exhausted active state and picks the next one. If nothing
// was queued into its slot, the walk backs up to the last pending state, or
// finishes when none remain.
func (e *Enumerator) pop() {
	path := e.frontier[e.index].path

	if err := e.frontier.remove(e.index); err != nil && !e.tolerate(path, err) {
		return
	}

	if e.index < len(e.frontier) {
		return
	}

	if len(e.frontier) == 0 {
		e.index = 0
		e.finished = true

		return
	}

	e.index = len(e.frontier) - 1
}

// tolerate hands err to the Spec's OnError handler. It reports whether the
// walk may continue; if not, the walk has already been stopped.
func (e *Enumerator) tolerate(path string, err error) bool {
	if e.spec.OnError != nil {
		handled := e.spec.OnError(path, err)
		if handled == nil {
			return true
		}

		err = handled
	}

	e.fail(err)

	return false
}

// release closes every scanner and clears all cursor state.
func (e *Enumerator) release() error {
	err := e.frontier.closeAll()
	e.index = 0
	e.current = Entry{}

	if err != nil {
		return fmt.Errorf("failed to release directory handles: %w", err)
	}

	return nil
}

// start opens the root and makes it the only, active frontier entry.
func (e *Enumerator) start() error {
	e.err = nil
	e.finished = false

	root, err := newScanState(e.fsys, e.spec.Root)
	if err != nil {
		e.finished = true
		e.err = fmt.Errorf("failed to open search root: %w", err)

		return e.err
	}

	e.frontier = frontier{root}
	e.index = 0

	return nil
}
