// Package finder runs searches: it wires a filesystem, a name matcher and the
// lazy search engine together, and adds limits, cancellation, events, error
// enrichment and an optional run log on top.
package finder

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/joe/find-files/internal/config"
	"github.com/joe/find-files/internal/search"
	pkgerrors "github.com/joe/find-files/pkg/errors"
	"github.com/joe/find-files/pkg/filesystem"
)

// Options configures a Finder built over an existing filesystem.
type Options struct {
	Matcher      search.Matcher
	IncludeFiles bool
	IncludeDirs  bool
	Limit        int  // 0 = unlimited
	SkipErrors   bool // skip unreadable directories instead of stopping
}

// Finder runs searches rooted at one directory.
type Finder struct {
	Root         string
	Limit        int
	SkipErrors   bool
	TimeProvider TimeProvider // Time provider (for dependency injection)
	fsys         filesystem.FileSystem
	spec         search.Spec
	enricher     pkgerrors.Enricher
	emitter      EventEmitter // Event emitter for TUI communication (optional)
	logFile      *os.File     // Optional run log
	logMu        sync.Mutex   // Mutex for log file writes
	closeFunc    func()       // Function to close SFTP connections (if any)
}

// New creates a Finder from parsed configuration.
// Supports both local paths and SFTP URLs (sftp://user@host:port/path).
func New(cfg *config.Config) (*Finder, error) {
	m, err := cfg.NewMatcher()
	if err != nil {
		return nil, err
	}

	fsys, root, closer, err := filesystem.CreateFileSystem(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem: %w", err)
	}

	f := NewWithFileSystem(fsys, root, Options{
		Matcher:      m,
		IncludeFiles: cfg.Files,
		IncludeDirs:  cfg.Dirs,
		Limit:        cfg.Limit,
		SkipErrors:   cfg.SkipErrors,
	})
	f.closeFunc = closer

	return f, nil
}

// NewWithFileSystem creates a Finder over fsys.
func NewWithFileSystem(fsys filesystem.FileSystem, root string, opts Options) *Finder {
	return &Finder{
		Root:         root,
		Limit:        opts.Limit,
		SkipErrors:   opts.SkipErrors,
		TimeProvider: &RealTimeProvider{},
		fsys:         fsys,
		spec: search.Spec{
			Root:         root,
			IncludeFiles: opts.IncludeFiles,
			IncludeDirs:  opts.IncludeDirs,
			Matcher:      opts.Matcher,
		},
		enricher: pkgerrors.NewEnricher(),
	}
}

// SetEventEmitter sets the event emitter. The emitter is optional.
func (f *Finder) SetEventEmitter(emitter EventEmitter) {
	f.emitter = emitter
}

// Close releases the run log and any remote connection.
func (f *Finder) Close() {
	f.CloseLog()

	if f.closeFunc != nil {
		f.closeFunc()
		f.closeFunc = nil
	}
}

// Run searches and calls yield for each result until the tree is exhausted,
// the limit is reached, ctx is cancelled, or yield returns false. Directory
// handles are always released before Run returns.
func (f *Finder) Run(ctx context.Context, yield func(search.Entry) bool) error {
	session, err := f.Open(ctx)
	if err != nil {
		return err
	}

	defer func() {
		_ = session.Close()
	}()

	for session.Next() {
		if !yield(session.Entry()) {
			break
		}
	}

	closeErr := session.Close()
	if err := session.Err(); err != nil {
		return err
	}

	return closeErr
}

// Open starts a search and returns a Session to pull results from.
// The caller must Close the session.
func (f *Finder) Open(ctx context.Context) (*Session, error) {
	f.emit(SearchStarted{Root: f.Root, Pattern: f.patternString()})
	f.logToFile(fmt.Sprintf("Search started: root=%s pattern=%q", f.Root, f.patternString()))

	session := &Session{
		finder: f,
		ctx:    ctx,
		start:  f.TimeProvider.Now(),
	}

	spec := f.spec
	if f.SkipErrors {
		spec.OnError = session.skip
	}

	enum, err := search.New(f.fsys, spec)
	if err != nil {
		session.err = f.enricher.Enrich(err, f.Root)
		session.finish()

		return nil, session.err
	}

	session.enum = enum

	return session, nil
}

// emit sends an event if an emitter is configured.
func (f *Finder) emit(event Event) {
	if f.emitter != nil {
		f.emitter.Emit(event)
	}
}

func (f *Finder) patternString() string {
	if s, ok := f.spec.Matcher.(fmt.Stringer); ok && f.spec.Matcher.HasPattern() {
		return s.String()
	}

	return ""
}

// Session is one running search.
type Session struct {
	finder   *Finder
	ctx      context.Context //nolint:containedctx // Session is a pull iterator bound to one request
	enum     *search.Enumerator
	entry    search.Entry
	start    time.Time
	count    int
	skipped  int
	stopped  bool
	done     bool
	err      error
	closeErr error
}

// Close ends the search early if it is still running and releases every
// directory handle. It is safe to call more than once.
func (s *Session) Close() error {
	if !s.done {
		s.stopped = true
		s.finish()
	}

	return s.closeErr
}

// Count returns the number of results yielded so far.
func (s *Session) Count() int {
	return s.count
}

// Entry returns the result produced by the last successful Next.
func (s *Session) Entry() search.Entry {
	return s.entry
}

// Err returns the error that ended the search, if any.
func (s *Session) Err() error {
	return s.err
}

// Next advances to the next result.
func (s *Session) Next() bool {
	if s.done {
		return false
	}

	if err := s.ctx.Err(); err != nil {
		s.stopped = true
		s.err = err
		s.finish()

		return false
	}

	if !s.enum.Next() {
		if err := s.enum.Err(); err != nil {
			s.err = s.finder.enricher.Enrich(err, "")
		}

		s.finish()

		return false
	}

	s.entry = s.enum.Entry()
	s.count++
	s.finder.emit(MatchFound{Entry: s.entry, Count: s.count})

	if s.finder.Limit > 0 && s.count >= s.finder.Limit {
		s.stopped = true
		s.finish()
	}

	return true
}

// Skipped returns the number of directories skipped because of errors.
func (s *Session) Skipped() int {
	return s.skipped
}

func (s *Session) finish() {
	s.done = true

	if s.enum != nil {
		s.closeErr = s.enum.Close()
	}

	duration := s.finder.TimeProvider.Now().Sub(s.start)

	s.finder.emit(SearchComplete{
		Count:    s.count,
		Skipped:  s.skipped,
		Stopped:  s.stopped,
		Duration: duration,
		Err:      s.err,
	})

	if s.err != nil {
		s.finder.logToFile(fmt.Sprintf("Search failed after %d results: %v", s.count, s.err))
	}

	s.finder.logToFile(fmt.Sprintf("Search complete: %d results, %d skipped, stopped=%v, took %v",
		s.count, s.skipped, s.stopped, duration))
}

func (s *Session) skip(path string, err error) error {
	s.skipped++
	enriched := s.finder.enricher.Enrich(err, path)
	s.finder.emit(DirectorySkipped{Path: path, Err: enriched})
	s.finder.logToFile(fmt.Sprintf("Skipped %s: %v", path, err))

	return nil
}
