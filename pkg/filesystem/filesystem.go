// Package filesystem provides an abstraction layer over directory listing
// so the search engine can walk local disks, SFTP servers, and in-memory
// trees through the same interface.
package filesystem

import (
	"fmt"
	"os"
)

// FileSystem is an interface that abstracts the directory operations the
// search engine needs. This allows for dependency injection and testing with
// mock implementations.
type FileSystem interface {
	// OpenDir opens a single directory for entry-by-entry reading.
	// Fails if the directory is missing, inaccessible, or not a directory.
	OpenDir(path string) (DirScanner, error)

	// Stat returns file information, following symlinks.
	Stat(path string) (os.FileInfo, error)
}

// RealFileSystem implements FileSystem using the local disk.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem instance.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// OpenDir opens a local directory for streaming reads.
func (fs *RealFileSystem) OpenDir(path string) (DirScanner, error) {
	return openRealDirScanner(path)
}

// Stat returns file information.
func (fs *RealFileSystem) Stat(path string) (os.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	return info, nil
}
