package filesystem

import (
	"fmt"
	"path"
)

// mockEntry is one listed child, captured when the directory was opened.
type mockEntry struct {
	name    string
	isDir   bool
	symlink bool
}

// mockDirScanner implements DirScanner for MockFileSystem.
type mockDirScanner struct {
	fs        *MockFileSystem
	dir       string
	entries   []mockEntry
	index     int
	readErr   error
	readAfter int
	err       error
	closed    bool
}

// newMockDirScanner creates a scanner over a snapshot of dir's children.
func newMockDirScanner(
	fs *MockFileSystem,
	dir string,
	entries []mockEntry,
	readErr error,
	readAfter int,
) *mockDirScanner {
	return &mockDirScanner{
		fs:        fs,
		dir:       dir,
		entries:   entries,
		index:     -1,
		readErr:   readErr,
		readAfter: readAfter,
	}
}

// Close releases the scanner and updates the filesystem's open count.
func (s *mockDirScanner) Close() error {
	if s.closed {
		return nil
	}

	s.closed = true
	s.fs.release()

	return nil
}

// Err returns the injected read error, once it has been hit.
func (s *mockDirScanner) Err() error {
	return s.err
}

// FullPath returns the path of the current entry.
func (s *mockDirScanner) FullPath() string {
	entry, ok := s.current()
	if !ok {
		return ""
	}

	return path.Join(s.dir, entry.name)
}

// IsDir reports whether the current entry is a directory.
func (s *mockDirScanner) IsDir() bool {
	entry, ok := s.current()
	return ok && entry.isDir
}

// IsReparsePoint reports whether the current entry is a symlink.
func (s *mockDirScanner) IsReparsePoint() bool {
	entry, ok := s.current()
	return ok && entry.symlink
}

// Name returns the base name of the current entry.
func (s *mockDirScanner) Name() string {
	entry, ok := s.current()
	if !ok {
		return ""
	}

	return entry.name
}

// Next advances to the next entry.
func (s *mockDirScanner) Next() bool {
	if s.closed || s.err != nil || s.index >= len(s.entries) {
		return false
	}

	s.index++

	if s.readErr != nil && s.index >= s.readAfter {
		s.err = fmt.Errorf("failed to read directory %s: %w", s.dir, s.readErr)
		s.index = len(s.entries)

		return false
	}

	return s.index < len(s.entries)
}

func (s *mockDirScanner) current() (mockEntry, bool) {
	if s.closed || s.index < 0 || s.index >= len(s.entries) {
		return mockEntry{}, false
	}

	return s.entries[s.index], true
}
