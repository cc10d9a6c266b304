package engine

import (
	"bufio"
	"context"
	"os"

	"github.com/seekerror/logw"
)

// ReadStdinLines starts a goroutine scanning stdin line by line and returns the result as a
// channel, so a front-end driver can select over it alongside search results and timers
// instead of blocking on a synchronous read.
func ReadStdinLines(ctx context.Context) <-chan string {
	lines := make(chan string, 1)
	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			line := scanner.Text()
			logw.Debugf(ctx, "<< %v", line)
			lines <- line
		}
	}()
	return lines
}

// WriteStdoutLines drains the given channel to stdout through a buffered writer, flushed after
// every line so each line is visible as soon as it is produced; a line and its newline go out
// in a single write.
func WriteStdoutLines(ctx context.Context, lines <-chan string) {
	w := bufio.NewWriter(os.Stdout)
	for line := range lines {
		logw.Debugf(ctx, ">> %v", line)
		_, _ = w.WriteString(line)
		_, _ = w.WriteString("\n")
		_ = w.Flush()
	}
}
