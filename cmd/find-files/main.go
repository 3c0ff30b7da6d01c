// Package main is the entry point for the find-files application.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term" //nolint:depguard // Required for TTY detection

	"github.com/joe/find-files/internal/config"
	"github.com/joe/find-files/internal/finder"
	"github.com/joe/find-files/internal/search"
	"github.com/joe/find-files/internal/tui"
	pkgerrors "github.com/joe/find-files/pkg/errors"
)

func main() {
	// Parse configuration
	cfg, err := config.ParseFlags()
	if err != nil {
		fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	f, err := finder.New(cfg)
	if err != nil {
		fatal(err)
	}

	if cfg.LogPath != "" {
		if err := f.EnableFileLogging(cfg.LogPath); err != nil {
			// Non-fatal, just continue without file logging
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}

	tty := term.IsTerminal(int(os.Stdout.Fd()))

	if cfg.InteractiveMode {
		// Only use alt screen if stdout is a TTY
		var opts []tea.ProgramOption
		if tty {
			opts = append(opts, tea.WithAltScreen())
		}

		err = tui.Run(ctx, f, opts...)
	} else {
		err = printResults(ctx, f, os.Stdout, tty)
	}

	f.Close()

	if err != nil {
		fatal(err)
	}
}

// fatal prints err with any suggestions and exits with status 1.
func fatal(err error) {
	enriched := pkgerrors.NewEnricher().Enrich(err, "")

	fmt.Fprintln(os.Stderr, tui.ErrorStyle().Render("Error: "+enriched.Error()))

	if suggestions := pkgerrors.FormatSuggestions(enriched); suggestions != "" {
		fmt.Fprintln(os.Stderr, suggestions)
	}

	os.Exit(1)
}

// printResults writes one path per line. Directories are highlighted when
// writing to a terminal.
func printResults(ctx context.Context, f *finder.Finder, out io.Writer, styled bool) error {
	w := bufio.NewWriter(out)

	var writeErr error

	err := f.Run(ctx, func(entry search.Entry) bool {
		line := entry.Path
		if styled {
			line = tui.RenderEntry(entry.Path, entry.IsDir)
		}

		_, writeErr = fmt.Fprintln(w, line)

		return writeErr == nil
	})

	if flushErr := w.Flush(); writeErr == nil {
		writeErr = flushErr
	}

	if err != nil {
		return err
	}

	if writeErr != nil {
		return fmt.Errorf("failed to write results: %w", writeErr)
	}

	return nil
}
