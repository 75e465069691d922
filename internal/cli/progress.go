package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// scanProgressReporter redraws one status line on a terminal while scan
// workers finish directories. It is a no-op for pipes and JSON output.
type scanProgressReporter struct {
	out     io.Writer
	enabled bool
	total   int
	start   time.Time

	mu      sync.Mutex
	done    int
	spinner int
	lastLen int
}

func newScanProgressReporter(out io.Writer, total int, asJSON bool) *scanProgressReporter {
	enabled := false
	if f, ok := out.(*os.File); ok && !asJSON {
		stat, err := f.Stat()
		enabled = err == nil && (stat.Mode()&os.ModeCharDevice) != 0
	}
	return &scanProgressReporter{
		out:     out,
		enabled: enabled,
		total:   total,
		start:   time.Now(),
	}
}

func (r *scanProgressReporter) Visited(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
	if !r.enabled {
		return
	}
	frames := [4]string{"-", "\\", "|", "/"}
	frame := frames[r.spinner%len(frames)]
	r.spinner++

	name := filepath.Base(dir)
	if len(name) > 60 {
		name = "..." + name[len(name)-57:]
	}
	r.printStatus(fmt.Sprintf("%s scan %d/%d %s", frame, r.done, r.total, name))
}

func (r *scanProgressReporter) Done() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.enabled {
		return
	}
	elapsed := time.Since(r.start).Round(time.Millisecond)
	r.printStatus(fmt.Sprintf("scan complete (%d directories in %s)", r.done, elapsed))
	fmt.Fprintln(r.out)
}

func (r *scanProgressReporter) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.done
}

func (r *scanProgressReporter) printStatus(status string) {
	if r.lastLen > len(status) {
		status = status + strings.Repeat(" ", r.lastLen-len(status))
	}
	r.lastLen = len(status)
	fmt.Fprintf(r.out, "\r%s", status)
}
