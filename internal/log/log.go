// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
)

// InitLogger sets up Apex with a custom handler and a log level from the
// TODOCTL_LOG env variable. Output goes to stderr, or is appended to
// TODOCTL_LOG_FILE when set so the terminal UI is not disturbed.
func InitLogger() {
	level, err := log.ParseLevel(strings.ToLower(os.Getenv("TODOCTL_LOG")))
	if err != nil {
		level = log.ErrorLevel
	}

	var w io.Writer = os.Stderr
	if p := os.Getenv("TODOCTL_LOG_FILE"); p != "" {
		f, err := os.OpenFile(p, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) //nolint:mnd
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", p, err)
		} else {
			w = f
		}
	}

	log.SetHandler(NewCustomHandler(w))
	log.SetLevel(level)
}

// CustomHandler writes one line per entry: timestamp, level initial,
// message, then fields sorted by name.
type CustomHandler struct {
	mu  sync.Mutex
	out io.Writer
	now func() time.Time
}

func NewCustomHandler(w io.Writer) *CustomHandler {
	return &CustomHandler{out: w, now: time.Now}
}

// HandleLog implements the log.Handler interface
func (h *CustomHandler) HandleLog(e *log.Entry) error {
	timestamp := h.now().Format("2006-01-02 15:04:05")
	level := strings.ToUpper(e.Level.String())

	var b strings.Builder
	fmt.Fprintf(&b, "%s %.1s %s", timestamp, level, e.Message)

	names := e.Fields.Names()
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&b, " %s=%v", name, e.Fields.Get(name))
	}
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}
