package search

import (
	"iter"

	"github.com/joe/find-files/pkg/filesystem"
)

// Walk returns a range-over-func view of a search. The underlying
// Enumerator is closed when the loop ends for any reason, including break
// and panic. Errors, including a root that cannot be opened, are yielded
// once as the final element.
func Walk(fsys filesystem.FileSystem, spec Spec) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		enum, err := New(fsys, spec)
		if err != nil {
			yield(Entry{}, err)
			return
		}

		defer func() {
			_ = enum.Close()
		}()

		for enum.Next() {
			if !yield(enum.Entry(), nil) {
				return
			}
		}

		if err := enum.Err(); err != nil {
			yield(Entry{}, err)
		}
	}
}

// Collect returns up to limit result paths (all of them when limit <= 0).
// All directory handles are released before it returns.
func Collect(fsys filesystem.FileSystem, spec Spec, limit int) ([]string, error) {
	var paths []string

	for entry, err := range Walk(fsys, spec) {
		if err != nil {
			return paths, err
		}

		paths = append(paths, entry.Path)
		if limit > 0 && len(paths) >= limit {
			break
		}
	}

	return paths, nil
}
