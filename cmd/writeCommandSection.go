package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"
)

// writeCommandSection writes one command's results. Output from a shared
// shell session carries no exit code, so the section records the command
// line, the effective timeout, any error, and the captured output.
func writeCommandSection(w io.Writer, c commandEntry, out string, runErr error, timeout time.Duration) error {
	bw := bufio.NewWriter(w)
	_, _ = fmt.Fprintln(bw, strings.Repeat("-", 80))
	if t := strings.TrimSpace(c.Title); t != "" {
		_, _ = fmt.Fprintf(bw, "Title: %s\n", t)
	}
	_, _ = fmt.Fprintf(bw, "Command: %s\n", c.line())
	if timeout > 0 {
		_, _ = fmt.Fprintf(bw, "Timeout: %s\n", timeout.String())
	}
	if runErr != nil {
		_, _ = fmt.Fprintf(bw, "Error: %v\n", runErr)
	}
	_, _ = fmt.Fprintln(bw, "Output:")
	_, _ = fmt.Fprintln(bw, "---8<---")
	// Write raw output
	_, _ = bw.WriteString(out)
	if len(out) == 0 || !strings.HasSuffix(out, "\n") {
		_, _ = bw.WriteString("\n")
	}
	_, _ = fmt.Fprintln(bw, "---8<---")
	return bw.Flush()
}
