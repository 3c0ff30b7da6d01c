package filesystem

import (
	"fmt"
	"os"
	"path"
	"sync"
	"time"
)

// MockFileSystem is an in-memory directory tree for testing.
// Children are listed in the order they were added, which stands in for the
// raw read order of a real directory. It also counts open scanners so tests
// can prove every handle was released.
type MockFileSystem struct {
	mu     sync.RWMutex
	nodes  map[string]*mockNode
	open   int
	opened int
}

// mockNode represents a file, directory, or symlink in the mock tree.
type mockNode struct {
	name      string
	isDir     bool
	symlink   bool
	modTime   time.Time
	children  []string
	openErr   error
	readErr   error
	readAfter int
}

// mockFileInfo implements os.FileInfo for mock nodes.
type mockFileInfo struct {
	name    string
	modTime time.Time
	isDir   bool
	perm    os.FileMode
}

func (fi *mockFileInfo) Name() string       { return fi.name }
func (fi *mockFileInfo) Size() int64        { return 0 }
func (fi *mockFileInfo) Mode() os.FileMode  { return fi.perm }
func (fi *mockFileInfo) ModTime() time.Time { return fi.modTime }
func (fi *mockFileInfo) IsDir() bool        { return fi.isDir }
func (fi *mockFileInfo) Sys() interface{}   { return nil }

// NewMockFileSystem creates a new empty in-memory filesystem.
func NewMockFileSystem() *MockFileSystem {
	return &MockFileSystem{
		nodes: make(map[string]*mockNode),
	}
}

// AddDir adds a directory (and any missing parents).
func (fs *MockFileSystem) AddDir(p string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.addNode(path.Clean(p), true, false)
}

// AddFile adds a regular file (and any missing parent directories).
func (fs *MockFileSystem) AddFile(p string) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.addNode(path.Clean(p), false, false)
}

// AddSymlink adds a symlink. If targetIsDir is true it behaves like a link to
// a directory: it reports IsDir but lists no children of its own.
func (fs *MockFileSystem) AddSymlink(p string, targetIsDir bool) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.addNode(path.Clean(p), targetIsDir, true)
}

// FailOpen makes OpenDir on p return err.
func (fs *MockFileSystem) FailOpen(p string, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if node, ok := fs.nodes[path.Clean(p)]; ok {
		node.openErr = err
	}
}

// FailReadAfter makes a scanner on p stop with err after yielding n entries.
func (fs *MockFileSystem) FailReadAfter(p string, n int, err error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if node, ok := fs.nodes[path.Clean(p)]; ok {
		node.readErr = err
		node.readAfter = n
	}
}

// OpenCount returns how many scanners are currently open.
func (fs *MockFileSystem) OpenCount() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.open
}

// OpenDir opens a mock directory. The listing is snapshotted at open time.
func (fs *MockFileSystem) OpenDir(p string) (DirScanner, error) {
	p = path.Clean(p)

	fs.mu.Lock()
	defer fs.mu.Unlock()

	node, ok := fs.nodes[p]
	if !ok {
		return nil, fmt.Errorf("failed to open directory %s: %w", p, os.ErrNotExist)
	}

	if !node.isDir {
		return nil, fmt.Errorf("failed to open directory %s: %w", p, ErrNotDirectory)
	}

	if node.openErr != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", p, node.openErr)
	}

	entries := make([]mockEntry, 0, len(node.children))
	for _, name := range node.children {
		child := fs.nodes[path.Join(p, name)]
		entries = append(entries, mockEntry{
			name:    name,
			isDir:   child.isDir,
			symlink: child.symlink,
		})
	}

	fs.open++
	fs.opened++

	return newMockDirScanner(fs, p, entries, node.readErr, node.readAfter), nil
}

// Stat returns file information for a mock node.
func (fs *MockFileSystem) Stat(p string) (os.FileInfo, error) {
	p = path.Clean(p)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	node, ok := fs.nodes[p]
	if !ok {
		return nil, fmt.Errorf("failed to stat %s: %w", p, os.ErrNotExist)
	}

	perm := os.FileMode(0o644)
	if node.isDir {
		perm = os.ModeDir | 0o755
	}

	return &mockFileInfo{
		name:    node.name,
		modTime: node.modTime,
		isDir:   node.isDir,
		perm:    perm,
	}, nil
}

// TotalOpened returns how many scanners have ever been opened.
func (fs *MockFileSystem) TotalOpened() int {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	return fs.opened
}

// addNode inserts p, creating parent directories as needed.
// Must be called with fs.mu held.
func (fs *MockFileSystem) addNode(p string, isDir, symlink bool) {
	if existing, ok := fs.nodes[p]; ok {
		existing.isDir = isDir
		existing.symlink = symlink

		return
	}

	fs.nodes[p] = &mockNode{
		name:    path.Base(p),
		isDir:   isDir,
		symlink: symlink,
		modTime: time.Now(),
	}

	parent := path.Dir(p)
	if parent == p {
		return
	}

	if _, ok := fs.nodes[parent]; !ok {
		fs.addNode(parent, true, false)
	}

	parentNode := fs.nodes[parent]
	parentNode.children = append(parentNode.children, path.Base(p))
}

// release records that a scanner was closed.
func (fs *MockFileSystem) release() {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.open--
}
