package stderr

import (
	"bufio"
	"io"
	"log/slog"
	"strings"
)

// forward logs every non-blank line from r and offers it to out without
// blocking. It returns when r is exhausted.
func forward(r io.Reader, log *slog.Logger, out chan<- string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if log != nil {
			log.Warn("captured stderr", "line", line)
		}
		select {
		case out <- line:
		default:
			// Channel full, drop message to avoid blocking
		}
	}
}
