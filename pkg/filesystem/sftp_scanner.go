package filesystem

import (
	"fmt"
	"os"
	"path"

	"github.com/pkg/sftp"
)

// sftpDirScanner implements DirScanner for one SFTP directory.
// The listing arrives from the server in one ReadDir call with lstat
// semantics, so symlinks show up as symlinks rather than their targets.
type sftpDirScanner struct {
	client  *sftp.Client
	dir     string
	entries []os.FileInfo
	index   int
	isDir   bool
	closed  bool
}

// Close drops the listing. Calls after the first are no-ops.
func (s *sftpDirScanner) Close() error {
	s.closed = true
	s.entries = nil

	return nil
}

// Err always returns nil: the only remote read happens in openSFTPDirScanner.
func (s *sftpDirScanner) Err() error {
	return nil
}

// FullPath returns the path of the current entry.
// Uses path package (not filepath) since SFTP always uses forward slashes.
func (s *sftpDirScanner) FullPath() string {
	if !s.valid() {
		return ""
	}

	return path.Join(s.dir, s.entries[s.index].Name())
}

// IsDir reports whether the current entry is (or points at) a directory.
func (s *sftpDirScanner) IsDir() bool {
	return s.valid() && s.isDir
}

// IsReparsePoint reports whether the current entry is a symlink.
func (s *sftpDirScanner) IsReparsePoint() bool {
	return s.valid() && s.entries[s.index].Mode()&os.ModeSymlink != 0
}

// Name returns the base name of the current entry.
func (s *sftpDirScanner) Name() string {
	if !s.valid() {
		return ""
	}

	return s.entries[s.index].Name()
}

// Next advances to the next entry.
func (s *sftpDirScanner) Next() bool {
	if s.closed || s.index >= len(s.entries) {
		return false
	}

	s.index++
	if s.index >= len(s.entries) {
		s.isDir = false
		return false
	}

	entry := s.entries[s.index]
	s.isDir = entry.IsDir()

	if entry.Mode()&os.ModeSymlink != 0 {
		target, err := s.client.Stat(path.Join(s.dir, entry.Name()))
		s.isDir = err == nil && target.IsDir()
	}

	return true
}

func (s *sftpDirScanner) valid() bool {
	return !s.closed && s.index >= 0 && s.index < len(s.entries)
}

// openSFTPDirScanner reads the listing for dir.
func openSFTPDirScanner(client *sftp.Client, dir string) (*sftpDirScanner, error) {
	entries, err := client.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read remote directory %s: %w", dir, err)
	}

	return &sftpDirScanner{
		client:  client,
		dir:     dir,
		entries: entries,
		index:   -1,
	}, nil
}
