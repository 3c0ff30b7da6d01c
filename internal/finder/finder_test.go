//nolint:varnamelen // Test files use idiomatic short variable names (t, g, etc.)
package finder_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega" //nolint:revive // Dot import is idiomatic for Gomega matchers

	"github.com/joe/find-files/internal/config"
	"github.com/joe/find-files/internal/finder"
	"github.com/joe/find-files/internal/matcher"
	"github.com/joe/find-files/internal/search"
	pkgerrors "github.com/joe/find-files/pkg/errors"
	"github.com/joe/find-files/pkg/filesystem"
)

// recordingEmitter keeps every emitted event.
type recordingEmitter struct {
	mu     sync.Mutex
	events []finder.Event
}

func (r *recordingEmitter) Emit(event finder.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *recordingEmitter) complete() (finder.SearchComplete, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ev := range r.events {
		if c, ok := ev.(finder.SearchComplete); ok {
			return c, true
		}
	}

	return finder.SearchComplete{}, false
}

func (r *recordingEmitter) skips() []finder.DirectorySkipped {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []finder.DirectorySkipped

	for _, ev := range r.events {
		if s, ok := ev.(finder.DirectorySkipped); ok {
			out = append(out, s)
		}
	}

	return out
}

// steppingClock advances one second on every call to Now.
type steppingClock struct {
	now time.Time
}

func (c *steppingClock) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func tree() *filesystem.MockFileSystem {
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/r/A")
	mfs.AddDir("/r/B")
	mfs.AddFile("/r/f.txt")
	mfs.AddFile("/r/A/a1.txt")
	mfs.AddDir("/r/A/C")
	mfs.AddFile("/r/A/C/c1.txt")
	mfs.AddFile("/r/B/b1.txt")

	return mfs
}

func allOptions() finder.Options {
	return finder.Options{IncludeFiles: true, IncludeDirs: true}
}

func collect(g *WithT, f *finder.Finder) ([]string, error) {
	var paths []string

	err := f.Run(context.Background(), func(e search.Entry) bool {
		g.Expect(e.Path).ToNot(BeEmpty())
		paths = append(paths, e.Path)

		return true
	})

	return paths, err
}

func TestRunYieldsEverything(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := tree()
	f := finder.NewWithFileSystem(mfs, "/r", allOptions())

	paths, err := collect(g, f)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(paths).To(Equal([]string{
		"/r/A", "/r/B", "/r/f.txt", "/r/A/a1.txt", "/r/A/C", "/r/A/C/c1.txt", "/r/B/b1.txt",
	}))
	g.Expect(mfs.OpenCount()).To(BeZero())
}

func TestRunWithPattern(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	m, err := matcher.New("*.txt", matcher.Glob, false)
	g.Expect(err).ToNot(HaveOccurred())

	f := finder.NewWithFileSystem(tree(), "/r", finder.Options{
		Matcher:      m,
		IncludeFiles: true,
		IncludeDirs:  true,
	})

	// Directories that do not match are neither yielded nor descended.
	paths, err := collect(g, f)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(paths).To(Equal([]string{"/r/f.txt"}))
}

func TestRunLimitReleasesHandlesEarly(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := tree()
	opts := allOptions()
	opts.Limit = 2
	f := finder.NewWithFileSystem(mfs, "/r", opts)

	rec := &recordingEmitter{}
	f.SetEventEmitter(rec)

	var paths []string

	err := f.Run(context.Background(), func(e search.Entry) bool {
		paths = append(paths, e.Path)
		if len(paths) == 2 {
			// The limit was reached while producing this entry.
			g.Expect(mfs.OpenCount()).To(BeZero())
		}

		return true
	})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(paths).To(Equal([]string{"/r/A", "/r/B"}))

	done, ok := rec.complete()
	g.Expect(ok).To(BeTrue())
	g.Expect(done.Count).To(Equal(2))
	g.Expect(done.Stopped).To(BeTrue())
}

func TestRunYieldFalseStops(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := tree()
	f := finder.NewWithFileSystem(mfs, "/r", allOptions())

	rec := &recordingEmitter{}
	f.SetEventEmitter(rec)

	calls := 0
	err := f.Run(context.Background(), func(search.Entry) bool {
		calls++
		return false
	})
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(calls).To(Equal(1))
	g.Expect(mfs.OpenCount()).To(BeZero())

	done, ok := rec.complete()
	g.Expect(ok).To(BeTrue())
	g.Expect(done.Stopped).To(BeTrue())
	g.Expect(done.Count).To(Equal(1))
}

func TestRunContextCancel(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := tree()
	f := finder.NewWithFileSystem(mfs, "/r", allOptions())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := 0
	err := f.Run(ctx, func(search.Entry) bool {
		calls++
		cancel()

		return true
	})
	g.Expect(err).To(MatchError(context.Canceled))
	g.Expect(calls).To(Equal(1))
	g.Expect(mfs.OpenCount()).To(BeZero())
}

func TestRunMissingRootIsEnriched(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	f := finder.NewWithFileSystem(filesystem.NewMockFileSystem(), "/missing", allOptions())

	rec := &recordingEmitter{}
	f.SetEventEmitter(rec)

	_, err := collect(g, f)
	g.Expect(err).To(HaveOccurred())
	g.Expect(errors.Is(err, os.ErrNotExist)).To(BeTrue())

	var actionable pkgerrors.ActionableError
	g.Expect(errors.As(err, &actionable)).To(BeTrue())
	g.Expect(actionable.Category()).To(Equal(pkgerrors.CategoryPath))
	g.Expect(actionable.AffectedPath()).To(Equal("/missing"))

	done, ok := rec.complete()
	g.Expect(ok).To(BeTrue())
	g.Expect(done.Err).To(HaveOccurred())
}

func TestRunAccessErrorAborts(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := tree()
	mfs.FailOpen("/r/A/C", fs.ErrPermission)
	f := finder.NewWithFileSystem(mfs, "/r", allOptions())

	_, err := collect(g, f)
	g.Expect(errors.Is(err, fs.ErrPermission)).To(BeTrue())

	var actionable pkgerrors.ActionableError
	g.Expect(errors.As(err, &actionable)).To(BeTrue())
	g.Expect(actionable.Category()).To(Equal(pkgerrors.CategoryPermission))
	g.Expect(mfs.OpenCount()).To(BeZero())
}

func TestRunSkipErrors(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := tree()
	mfs.FailOpen("/r/A/C", fs.ErrPermission)

	opts := allOptions()
	opts.SkipErrors = true
	f := finder.NewWithFileSystem(mfs, "/r", opts)

	rec := &recordingEmitter{}
	f.SetEventEmitter(rec)

	paths, err := collect(g, f)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(paths).To(ContainElements("/r/A/C", "/r/B/b1.txt"))
	g.Expect(paths).ToNot(ContainElement("/r/A/C/c1.txt"))

	skips := rec.skips()
	g.Expect(skips).To(HaveLen(1))
	g.Expect(skips[0].Path).To(Equal("/r/A/C"))
	g.Expect(pkgerrors.FormatSuggestions(skips[0].Err)).ToNot(BeEmpty())

	done, ok := rec.complete()
	g.Expect(ok).To(BeTrue())
	g.Expect(done.Skipped).To(Equal(1))
	g.Expect(done.Stopped).To(BeFalse())
}

func TestSessionPull(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := tree()
	f := finder.NewWithFileSystem(mfs, "/r", allOptions())
	f.TimeProvider = &steppingClock{}

	rec := &recordingEmitter{}
	f.SetEventEmitter(rec)

	session, err := f.Open(context.Background())
	g.Expect(err).ToNot(HaveOccurred())

	g.Expect(session.Next()).To(BeTrue())
	g.Expect(session.Entry().Name).To(Equal("A"))
	g.Expect(session.Entry().IsDir).To(BeTrue())
	g.Expect(session.Count()).To(Equal(1))
	g.Expect(mfs.OpenCount()).To(BeNumerically(">", 0))

	g.Expect(session.Close()).To(Succeed())
	g.Expect(session.Close()).To(Succeed())
	g.Expect(session.Next()).To(BeFalse())
	g.Expect(session.Err()).ToNot(HaveOccurred())
	g.Expect(session.Skipped()).To(BeZero())
	g.Expect(mfs.OpenCount()).To(BeZero())

	done, ok := rec.complete()
	g.Expect(ok).To(BeTrue())
	g.Expect(done.Duration).To(Equal(time.Second))
	g.Expect(done.Stopped).To(BeTrue())
}

func TestEventsOrder(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/r/only.txt")

	f := finder.NewWithFileSystem(mfs, "/r", allOptions())
	rec := &recordingEmitter{}
	f.SetEventEmitter(rec)

	_, err := collect(g, f)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(rec.events).To(HaveLen(3))
	g.Expect(rec.events[0]).To(BeAssignableToTypeOf(finder.SearchStarted{}))
	g.Expect(rec.events[1]).To(Equal(finder.MatchFound{
		Entry: search.Entry{Path: "/r/only.txt", Name: "only.txt"},
		Count: 1,
	}))
	g.Expect(rec.events[2]).To(BeAssignableToTypeOf(finder.SearchComplete{}))
}

func TestFileLogging(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	mfs := tree()
	mfs.FailOpen("/r/B", fs.ErrPermission)

	opts := allOptions()
	opts.SkipErrors = true
	f := finder.NewWithFileSystem(mfs, "/r", opts)

	logPath := filepath.Join(t.TempDir(), "search.log")
	g.Expect(f.EnableFileLogging(logPath)).To(Succeed())

	_, err := collect(g, f)
	g.Expect(err).ToNot(HaveOccurred())
	f.Close()

	data, err := os.ReadFile(logPath)
	g.Expect(err).ToNot(HaveOccurred())

	log := string(data)
	g.Expect(log).To(ContainSubstring("=== Search Log Started"))
	g.Expect(log).To(ContainSubstring("Root: /r"))
	g.Expect(log).To(ContainSubstring("Skipped /r/B"))
	g.Expect(log).To(ContainSubstring("Search complete: 6 results, 1 skipped"))
	g.Expect(log).To(ContainSubstring("=== Search Log Ended"))
}

func TestEnableFileLoggingBadPath(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	f := finder.NewWithFileSystem(tree(), "/r", allOptions())
	err := f.EnableFileLogging(filepath.Join(t.TempDir(), "missing", "dir", "log"))
	g.Expect(err).To(MatchError(ContainSubstring("failed to create log file")))
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	root := t.TempDir()
	g.Expect(os.MkdirAll(filepath.Join(root, "sub"), 0o755)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(root, "sub", "keep.go"), []byte("x"), 0o600)).To(Succeed())
	g.Expect(os.WriteFile(filepath.Join(root, "skip.txt"), []byte("x"), 0o600)).To(Succeed())

	cfg := &config.Config{Root: root, Pattern: "*.go", Files: true, Dirs: false}

	f, err := finder.New(cfg)
	g.Expect(err).ToNot(HaveOccurred())

	defer f.Close()

	// Files-only searches stay in the root directory.
	paths, err := collect(g, f)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(paths).To(BeEmpty())

	cfg.Pattern = ""
	cfg.Dirs = true

	f2, err := finder.New(cfg)
	g.Expect(err).ToNot(HaveOccurred())

	defer f2.Close()

	paths, err = collect(g, f2)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(paths).To(ConsistOf(
		filepath.Join(root, "sub"),
		filepath.Join(root, "sub", "keep.go"),
		filepath.Join(root, "skip.txt"),
	))
}

func TestNewRejectsBadPattern(t *testing.T) {
	t.Parallel()
	g := NewWithT(t)

	_, err := finder.New(&config.Config{Root: t.TempDir(), Pattern: "[x", Files: true})
	g.Expect(err).To(MatchError(ContainSubstring("invalid glob pattern")))
}
