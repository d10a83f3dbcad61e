// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"io"
	"log"
	"log/slog"
	"os"
)

var (
	logLevelVar = new(slog.LevelVar)
	// 0 = slog.LevelDebug (-8)
	// 1 = slog.LevelDebug (-4)
	// 2 = slog.LevelInfo  (0)
	// 3 = slog.LevelWarn  (4)
	// 4 = slog.LevelError (8)
)

type PlainLogHandlerOptions struct {
	SlogOpts slog.HandlerOptions
}

// PlainLogHandler writes "LEVEL: message" lines, without time or attributes.
type PlainLogHandler struct {
	slog.Handler
	l *log.Logger
}

func (h *PlainLogHandler) Handle(ctx context.Context, r slog.Record) error {
	h.l.Println(r.Level.String()+":", r.Message)
	return nil
}

func NewPlainLogHandler(out io.Writer, opts PlainLogHandlerOptions) *PlainLogHandler {
	return &PlainLogHandler{
		Handler: slog.NewTextHandler(out, &opts.SlogOpts),
		l:       log.New(out, "", 0),
	}
}

func NewLogger(level int) *slog.Logger {
	logger := slog.New(NewPlainLogHandler(os.Stderr, PlainLogHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: logLevelVar,
		},
	}))
	switch level {
	case 0:
		logLevelVar.Set(slog.LevelDebug - 4)
	case 1:
		logLevelVar.Set(slog.LevelDebug)
	case 2:
		logLevelVar.Set(slog.LevelInfo)
	case 4:
		logLevelVar.Set(slog.LevelError)
	default:
		logLevelVar.Set(slog.LevelWarn)
	}
	return logger
}
