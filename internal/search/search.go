// Package search walks a directory tree lazily, yielding matching paths one
// at a time without collecting the whole result set.
//
// The walk is iterative: pending directories live in an ordered frontier of
// scan states, each owning one open directory scanner. A directory found
// while scanning is opened immediately and queued directly after its parent
// (behind any siblings the parent already queued), which gives pre-order
// depth-first visiting of directories without recursion. Entries of one
// directory are yielded in the order the filesystem returns them.
//
// Every open scanner in the frontier, not just the active one, is released by
// Close. Callers that stop early must still call Close; Walk does it for them.
package search

import (
	"errors"
)

// Exported variables.
var (
	ErrClosed = errors.New("search: enumerator is closed or was never opened")
	ErrNoRoot = errors.New("search: no root directory given")
)

// Matcher decides whether an entry name passes the search pattern.
type Matcher interface {
	// Match reports whether name matches the pattern.
	Match(name string) bool

	// HasPattern reports whether a pattern is configured at all.
	// When false, Match is never called.
	HasPattern() bool
}

// ErrorHandler decides what happens when a directory cannot be opened or
// read. Returning nil skips that directory and continues the walk; returning
// an error stops the walk and surfaces that error from Err.
type ErrorHandler func(path string, err error) error

// Spec describes one search. It is read-only for the life of a traversal.
type Spec struct {
	// Root is the directory the walk starts from. It is never yielded itself.
	Root string

	// IncludeFiles yields file entries that pass the pattern.
	IncludeFiles bool

	// IncludeDirs yields directory entries that pass the pattern, and allows
	// descending into them.
	IncludeDirs bool

	// Matcher filters entry names. Nil means every name passes.
	Matcher Matcher

	// OnError is consulted for directory access errors. Nil stops the walk
	// on the first error.
	OnError ErrorHandler
}

// Entry is one yielded result.
type Entry struct {
	Path           string
	Name           string
	IsDir          bool
	IsReparsePoint bool
}

func (s *Spec) hasPattern() bool {
	return s.Matcher != nil && s.Matcher.HasPattern()
}
