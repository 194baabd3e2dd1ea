// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package log

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/apex/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomHandler(t *testing.T) {
	var buf bytes.Buffer
	h := NewCustomHandler(&buf)
	h.now = func() time.Time { return time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC) }

	logger := &log.Logger{Handler: h, Level: log.DebugLevel}
	logger.WithFields(log.Fields{"status": 500, "method": "PUT"}).
		WithError(errors.New("boom")).
		Warn("handled")

	assert.Equal(t, "2025-01-02 03:04:05 W handled error=boom method=PUT status=500\n", buf.String())
}

func TestInitLogger(t *testing.T) {
	p := filepath.Join(t.TempDir(), "todoctl.log")
	t.Setenv("TODOCTL_LOG", "debug")
	t.Setenv("TODOCTL_LOG_FILE", p)
	t.Cleanup(func() { log.SetLevel(log.ErrorLevel) })

	InitLogger()
	log.Debug("hello")

	b, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Contains(t, string(b), " D hello")
}

func TestInitLogger_BadLevel(t *testing.T) {
	t.Setenv("TODOCTL_LOG", "chatty")
	t.Setenv("TODOCTL_LOG_FILE", filepath.Join(t.TempDir(), "x.log"))

	InitLogger()
	assert.Equal(t, log.ErrorLevel, log.Log.(*log.Logger).Level)
}
