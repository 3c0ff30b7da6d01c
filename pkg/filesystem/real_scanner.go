package filesystem

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// unexported constants.
const (
	// readDirBatchSize bounds how many entries are pulled from the OS per read,
	// so a huge directory is never buffered whole.
	readDirBatchSize = 64
)

// realDirScanner implements DirScanner over an open *os.File.
type realDirScanner struct {
	dir     string
	file    *os.File
	batch   []os.DirEntry
	pos     int
	current os.DirEntry
	isDir   bool
	reparse bool
	err     error
	done    bool
	closed  bool
}

// Close releases the directory handle.
func (s *realDirScanner) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	s.batch = nil
	s.current = nil

	err := s.file.Close()
	if err != nil {
		return fmt.Errorf("failed to close directory %s: %w", s.dir, err)
	}

	return nil
}

// Err returns any error that occurred while reading the directory.
func (s *realDirScanner) Err() error {
	return s.err
}

// FullPath returns the path of the current entry.
func (s *realDirScanner) FullPath() string {
	if s.current == nil {
		return ""
	}

	return filepath.Join(s.dir, s.current.Name())
}

// IsDir reports whether the current entry is (or points at) a directory.
func (s *realDirScanner) IsDir() bool {
	return s.isDir
}

// IsReparsePoint reports whether the current entry is a symlink.
func (s *realDirScanner) IsReparsePoint() bool {
	return s.reparse
}

// Name returns the base name of the current entry.
func (s *realDirScanner) Name() string {
	if s.current == nil {
		return ""
	}

	return s.current.Name()
}

// Next advances to the next entry, reading another batch from the OS when
// the current one is used up.
func (s *realDirScanner) Next() bool {
	if s.done || s.closed {
		return false
	}

	for s.pos >= len(s.batch) {
		entries, err := s.file.ReadDir(readDirBatchSize)
		if len(entries) == 0 {
			if err != nil && !errors.Is(err, io.EOF) {
				s.err = fmt.Errorf("failed to read directory %s: %w", s.dir, err)
			}

			s.done = true
			s.current = nil
			s.isDir, s.reparse = false, false

			return false
		}

		s.batch = entries
		s.pos = 0
	}

	s.current = s.batch[s.pos]
	s.pos++
	s.classify()

	return true
}

// classify records the directory and reparse flags for the current entry.
// Entry types come from the directory listing itself, so symlinks are seen
// unresolved; only symlinks pay for an extra stat to learn what they point at.
func (s *realDirScanner) classify() {
	typ := s.current.Type()

	if typ&fs.ModeSymlink == 0 {
		s.reparse = false
		s.isDir = s.current.IsDir()

		return
	}

	s.reparse = true

	info, err := os.Stat(filepath.Join(s.dir, s.current.Name()))
	s.isDir = err == nil && info.IsDir()
}

// openRealDirScanner opens dir and verifies it is a directory.
func openRealDirScanner(dir string) (*realDirScanner, error) {
	file, err := os.Open(dir) //nolint:gosec // Walking caller-chosen paths is the point
	if err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", dir, err)
	}

	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to stat directory %s: %w", dir, err)
	}

	if !info.IsDir() {
		_ = file.Close()
		return nil, fmt.Errorf("failed to open directory %s: %w", dir, ErrNotDirectory)
	}

	return &realDirScanner{
		dir:  dir,
		file: file,
	}, nil
}
