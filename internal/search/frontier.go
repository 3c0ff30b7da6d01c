package search

import (
	"errors"
	"slices"

	"github.com/joe/find-files/pkg/filesystem"
)

// scanState is one directory being read, plus how many child states it has
// queued directly behind itself in the frontier.
type scanState struct {
	path    string
	dir     filesystem.DirScanner
	spawned int
}

func newScanState(fsys filesystem.FileSystem, path string) (*scanState, error) {
	dir, err := fsys.OpenDir(path)
	if err != nil {
		return nil, err //nolint:wrapcheck // Filesystem errors already carry the path
	}

	return &scanState{path: path, dir: dir}, nil
}

// close releases the scanner. The scanner itself makes repeat calls no-ops,
// but the state drops its reference so it cannot be reached again.
func (s *scanState) close() error {
	if s.dir == nil {
		return nil
	}

	err := s.dir.Close()
	s.dir = nil

	return err //nolint:wrapcheck // Filesystem errors already carry the path
}

// frontier is the ordered list of pending scan states. A state's children
// always sit directly after it, after any children it queued earlier.
type frontier []*scanState

// insertChild queues child behind the state at parent and behind that
// state's earlier children, so children keep their discovery order.
func (f *frontier) insertChild(parent int, child *scanState) {
	owner := (*f)[parent]
	*f = slices.Insert(*f, parent+1+owner.spawned, child)
	owner.spawned++
}

// remove closes and drops the state at i.
func (f *frontier) remove(i int) error {
	err := (*f)[i].close()
	*f = slices.Delete(*f, i, i+1)

	return err
}

// closeAll closes every state still queued and empties the frontier.
func (f *frontier) closeAll() error {
	var errs []error

	for _, state := range *f {
		if err := state.close(); err != nil {
			errs = append(errs, err)
		}
	}

	clear(*f)
	*f = nil

	return errors.Join(errs...)
}
