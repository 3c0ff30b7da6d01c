package tui

import (
	"context"
	"errors"
	"io/fs"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/joe/find-files/internal/finder"
	"github.com/joe/find-files/internal/search"
	pkgerrors "github.com/joe/find-files/pkg/errors"
	"github.com/joe/find-files/pkg/filesystem"
)

// step feeds msg to the model and runs the returned command once, the way
// the bubbletea runtime would for a single-shot command.
func step(m Model, msg tea.Msg) (Model, tea.Msg) {
	next, cmd := m.Update(msg)
	updated := next.(Model)

	if cmd == nil {
		return updated, nil
	}

	return updated, cmd()
}

func quitKey() tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
}

var _ = Describe("Model", func() {
	var (
		mfs *filesystem.MockFileSystem
		f   *finder.Finder
		m   Model
	)

	BeforeEach(func() {
		mfs = filesystem.NewMockFileSystem()
		mfs.AddDir("/r/A")
		mfs.AddFile("/r/A/a1.txt")
		mfs.AddFile("/r/f.txt")

		f = finder.NewWithFileSystem(mfs, "/r", finder.Options{IncludeFiles: true, IncludeDirs: true})
		m = NewModel(context.Background(), f)
	})

	AfterEach(func() {
		m.bridge.Close()
	})

	open := func() (Model, tea.Msg) {
		msg := openCmd(context.Background(), f)()
		Expect(msg).To(BeAssignableToTypeOf(sessionOpenedMsg{}))

		return step(m, msg)
	}

	It("starts in the opening state", func() {
		Expect(m.State()).To(Equal(StateOpening))
		Expect(m.View()).To(ContainSubstring("Opening search root"))
	})

	It("pulls exactly one result per message", func() {
		var msg tea.Msg
		m, msg = open()

		Expect(m.State()).To(Equal(StateSearching))
		Expect(m.pulling).To(BeTrue())
		Expect(msg).To(Equal(resultMsg{Entry: search.Entry{Path: "/r/A", Name: "A", IsDir: true}}))
		Expect(m.Count()).To(Equal(0))

		m, msg = step(m, msg)
		Expect(m.Count()).To(Equal(1))
		Expect(msg).To(BeAssignableToTypeOf(resultMsg{}))
	})

	It("completes after the last result and releases every handle", func() {
		var msg tea.Msg
		m, msg = open()

		for {
			if _, done := msg.(searchDoneMsg); done {
				break
			}

			m, msg = step(m, msg)
		}

		m, _ = step(m, msg)
		Expect(m.State()).To(Equal(StateComplete))
		Expect(m.Count()).To(Equal(3))
		Expect(m.Err()).ToNot(HaveOccurred())
		Expect(mfs.OpenCount()).To(BeZero())
		Expect(m.View()).To(ContainSubstring("Found 3"))
		Expect(m.View()).To(ContainSubstring("/r/A/"))
	})

	It("stops mid-walk on q once the in-flight pull reports back", func() {
		var msg tea.Msg
		m, msg = open()
		Expect(mfs.OpenCount()).To(BeNumerically(">", 0))

		var cmd tea.Cmd
		var next tea.Model
		next, cmd = m.Update(quitKey())
		m = next.(Model)
		Expect(cmd).To(BeNil())
		Expect(m.State()).To(Equal(StateStopping))
		Expect(mfs.OpenCount()).To(BeNumerically(">", 0))

		next, cmd = m.Update(msg)
		m = next.(Model)
		Expect(cmd).ToNot(BeNil())
		Expect(cmd()).To(Equal(tea.Quit()))
		Expect(m.State()).To(Equal(StateStopped))
		Expect(mfs.OpenCount()).To(BeZero())
	})

	It("closes immediately on ctrl+c when no pull is in flight", func() {
		m, _ = open()
		m.pulling = false

		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		m = next.(Model)
		Expect(cmd).ToNot(BeNil())
		Expect(m.State()).To(Equal(StateStopped))
		Expect(mfs.OpenCount()).To(BeZero())
	})

	It("quits once the session opens if q was pressed while opening", func() {
		next, _ := m.Update(quitKey())
		m = next.(Model)
		Expect(m.State()).To(Equal(StateStopping))

		m, _ = open()
		Expect(m.State()).To(Equal(StateStopped))
		Expect(mfs.OpenCount()).To(BeZero())
	})

	It("ignores other keys", func() {
		next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
		Expect(cmd).To(BeNil())
		Expect(next.(Model).State()).To(Equal(StateOpening))
	})

	It("shows an enriched error when the root cannot be opened", func() {
		bad := finder.NewWithFileSystem(filesystem.NewMockFileSystem(), "/missing",
			finder.Options{IncludeFiles: true})
		model := NewModel(context.Background(), bad)

		defer model.bridge.Close()

		msg := openCmd(context.Background(), bad)()
		Expect(msg).To(BeAssignableToTypeOf(ErrorMsg{}))

		next, _ := model.Update(msg)
		model = next.(Model)
		Expect(model.State()).To(Equal(StateError))

		var actionable pkgerrors.ActionableError
		Expect(errors.As(model.Err(), &actionable)).To(BeTrue())
		Expect(model.View()).To(ContainSubstring("•"))
	})

	It("records skipped directories from the event stream", func() {
		skipErr := errors.New("open /r/A: permission denied")
		next, cmd := m.Update(FinderEventMsg{Event: finder.DirectorySkipped{Path: "/r/A", Err: skipErr}})
		m = next.(Model)

		Expect(cmd).ToNot(BeNil())
		Expect(m.skipped).To(HaveLen(1))
		Expect(m.View()).To(ContainSubstring("Skipped 1 unreadable"))
	})

	It("keeps only as many recent results as fit the window", func() {
		next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: ReservedLines + 2})
		m = next.(Model)
		m.state = StateSearching

		for i := range 5 {
			// The returned pull command is not run; only the bookkeeping matters here.
			next, _ = m.Update(resultMsg{Entry: search.Entry{Path: string(rune('a' + i))}})
			m = next.(Model)
		}

		Expect(m.Count()).To(Equal(5))
		Expect(m.recent).To(HaveLen(2))
		Expect(m.recent[1].Path).To(Equal("e"))
	})
})

var _ = Describe("EventBridge", func() {
	It("forwards non-match events and drops match events", func() {
		bridge := NewEventBridge()
		defer bridge.Close()

		bridge.Emit(finder.MatchFound{Count: 1})
		bridge.Emit(finder.DirectorySkipped{Path: "/x", Err: fs.ErrPermission})

		msg := bridge.ListenCmd()()
		Expect(msg).To(Equal(FinderEventMsg{Event: finder.DirectorySkipped{Path: "/x", Err: fs.ErrPermission}}))
		Expect(bridge.Subscribe()).To(BeEmpty())
	})

	It("ignores events after close and reports nil to listeners", func() {
		bridge := NewEventBridge()
		bridge.Close()
		bridge.Close()

		bridge.Emit(finder.SearchStarted{Root: "/r"})
		Expect(bridge.ListenCmd()()).To(BeNil())
	})
})
