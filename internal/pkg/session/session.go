// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"slices"
)

// Command runs an external program, typically the code generator which
// consumes the emitted program.
type Command struct {
	Name string

	Prog string
	Args []string
	Dir  string
	Env  map[string]string

	Stdout io.Writer
	Stderr io.Writer
}

// Environ returns Env as KEY=VALUE pairs, sorted by key.
func (c Command) Environ() []string {
	e := make([]string, 0, len(c.Env))
	for k, v := range c.Env {
		e = append(e, fmt.Sprintf("%s=%s", k, v))
	}
	slices.Sort(e)
	return e
}

func (c *Command) Run(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, c.Prog, c.Args...)
	if c.Dir != "" {
		cmd.Dir = c.Dir
	}
	cmd.Env = append(cmd.Environ(), c.Environ()...)
	cmd.Stdout = os.Stdout
	if c.Stdout != nil {
		cmd.Stdout = c.Stdout
	}
	cmd.Stderr = os.Stderr
	if c.Stderr != nil {
		cmd.Stderr = c.Stderr
	}

	slog.Debug("Running command...")
	slog.Debug(cmd.String())
	for _, a := range cmd.Args {
		slog.Debug(fmt.Sprintf("  arg:%s:", a))
	}
	for _, en := range c.Environ() {
		slog.Debug(fmt.Sprintf("  env:%s:", en))
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	return nil
}
