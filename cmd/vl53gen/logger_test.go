// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainLogHandler(t *testing.T) {
	var b bytes.Buffer
	level := new(slog.LevelVar)
	level.Set(slog.LevelInfo)
	logger := slog.New(NewPlainLogHandler(&b, PlainLogHandlerOptions{
		SlogOpts: slog.HandlerOptions{Level: level},
	}))
	logger.Debug("hidden")
	logger.Info("Load configuration: node.yaml", "ignored", 1)
	logger.Warn("Component wifi is not supported")
	assert.Equal(t, "INFO: Load configuration: node.yaml\nWARN: Component wifi is not supported\n", b.String())
}

func TestNewLogger(t *testing.T) {
	for level, want := range map[int]slog.Level{
		0: slog.LevelDebug - 4,
		1: slog.LevelDebug,
		2: slog.LevelInfo,
		3: slog.LevelWarn,
		4: slog.LevelError,
		9: slog.LevelWarn,
	} {
		l := NewLogger(level)
		assert.True(t, l.Enabled(context.Background(), want))
		assert.False(t, l.Enabled(context.Background(), want-1))
	}
}
