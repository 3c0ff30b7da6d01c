package filesystem

import (
	"errors"
)

// Exported variables.
var (
	ErrNotDirectory = errors.New("not a directory")
)

// DirScanner is an iterator over the entries of a single directory.
// It does not descend into subdirectories; recursion is the caller's job.
//
// A DirScanner holds an open handle from the moment it is created until
// Close is called. Callers must call Close exactly once they are done with
// it, whether or not Next has reported the end of the directory.
type DirScanner interface {
	// Next advances to the next entry.
	// Returns false at the end of the directory or on a read error.
	// Check Err() after Next() returns false to distinguish between the two.
	Next() bool

	// Name returns the base name of the current entry.
	Name() string

	// IsDir reports whether the current entry is a directory.
	// A symlink that points at a directory reports true.
	IsDir() bool

	// IsReparsePoint reports whether the current entry redirects elsewhere
	// (symlink or junction). Such entries must never be descended into.
	IsReparsePoint() bool

	// FullPath returns the path of the current entry, joined onto the
	// directory this scanner was opened on.
	FullPath() string

	// Err returns any error that occurred while reading the directory.
	Err() error

	// Close releases the underlying handle. Calls after the first are no-ops.
	Close() error
}
