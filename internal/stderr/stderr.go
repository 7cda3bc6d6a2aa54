//go:build !windows

// Package stderr captures output that audio C libraries (ALSA) write
// directly to file descriptor 2, bypassing Go's os.Stderr, and forwards it
// to the logger so it cannot corrupt the TUI layout.
package stderr

import (
	"log/slog"
	"os"
	"syscall"
)

// Messages receives captured lines for display in the UI.
var Messages = make(chan string, 100)

var (
	origStderr int
	pipeRead   *os.File
	pipeWrite  *os.File
	started    bool
	done       chan struct{}
)

// Start begins capturing stderr output into log and Messages.
// Must be called early in main(), before the speaker is initialised.
// On error the program can continue; output just goes to the real stderr.
func Start(log *slog.Logger) error {
	if started {
		return nil
	}

	r, w, err := os.Pipe()
	if err != nil {
		return err
	}

	origStderr, err = syscall.Dup(int(os.Stderr.Fd()))
	if err != nil {
		r.Close()
		w.Close()
		return err
	}

	// Redirect fd 2 to the pipe's write end
	if err := syscall.Dup2(int(w.Fd()), int(os.Stderr.Fd())); err != nil {
		syscall.Close(origStderr)
		r.Close()
		w.Close()
		return err
	}

	pipeRead = r
	pipeWrite = w
	started = true
	done = make(chan struct{})

	go func() {
		defer close(done)
		forward(pipeRead, log, Messages)
	}()

	return nil
}

// WriteOriginal writes directly to the original stderr, bypassing capture.
// Useful for fatal errors that must be visible even if TUI is running.
func WriteOriginal(msg string) {
	if origStderr > 0 {
		_, _ = syscall.Write(origStderr, []byte(msg))
	}
}

// Stop restores the original stderr. Should be called on program exit.
func Stop() {
	if !started {
		return
	}

	_ = syscall.Dup2(origStderr, int(os.Stderr.Fd()))
	_ = syscall.Close(origStderr)

	// Closing the write end ends forward; wait so Messages is not closed
	// under a pending send.
	pipeWrite.Close()
	<-done
	pipeRead.Close()

	close(Messages)
	started = false
}
