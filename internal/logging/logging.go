// Copyright (c) 2024-2025 KNU CSE Datastreams
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging wires a file-backed logrus logger for knubot.
//
// The TUI owns stdout and stderr, so all diagnostics go to a log file under
// ~/.knubot. One-shot CLI commands share the same logger.
package logging

import (
	"io"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.RWMutex
	logger = newNopLogger()
)

// Setup opens the log file and installs the process-wide logger.
// Before Setup (and on failure) logging is a no-op rather than an error:
// a chat client must not die because its debug log is unwritable.
func Setup(path, level string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return err
	}

	l := logrus.New()
	l.SetOutput(f)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
	})

	lv, err := logrus.ParseLevel(level)
	if err != nil {
		lv = logrus.InfoLevel
	}
	l.SetLevel(lv)

	mu.Lock()
	logger = l
	mu.Unlock()
	return nil
}

// L returns the process-wide logger.
func L() *logrus.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// SetForTest replaces the logger; tests use this to capture output.
func SetForTest(l *logrus.Logger) {
	mu.Lock()
	logger = l
	mu.Unlock()
}

func newNopLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
