package finder

import (
	"fmt"
	"os"
	"time"
)

// CloseLog closes the log file if open
func (f *Finder) CloseLog() {
	if f.logFile != nil {
		f.logToFile(fmt.Sprintf("\n=== Search Log Ended: %s ===", time.Now().Format(time.RFC3339)))
		_ = f.logFile.Close()
		f.logFile = nil
	}
}

// EnableFileLogging enables logging to a file for debugging
func (f *Finder) EnableFileLogging(logPath string) error {
	file, err := os.Create(logPath)
	if err != nil {
		return fmt.Errorf("failed to create log file: %w", err)
	}

	f.logFile = file
	f.logToFile(fmt.Sprintf("=== Search Log Started: %s ===", time.Now().Format(time.RFC3339)))
	f.logToFile("Root: " + f.Root)
	f.logToFile(fmt.Sprintf("Files: %v, Dirs: %v, Limit: %d, SkipErrors: %v",
		f.spec.IncludeFiles, f.spec.IncludeDirs, f.Limit, f.SkipErrors))
	f.logToFile("")

	return nil
}

// logToFile writes a message to the log file (if enabled)
func (f *Finder) logToFile(message string) {
	if f.logFile != nil {
		f.logMu.Lock()
		defer f.logMu.Unlock()

		timestamp := time.Now().Format("15:04:05.000")
		_, _ = fmt.Fprintf(f.logFile, "[%s] %s\n", timestamp, message)
	}
}
