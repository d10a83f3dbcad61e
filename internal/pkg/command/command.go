// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Runner is a sub-command of the CLI.
type Runner interface {
	Name() string
	FlagSet() *flag.FlagSet
	Parse([]string) error
	Run() error
}

// Command holds the name and flags of a sub-command. Sub-commands embed it
// and implement Run.
type Command struct {
	name  string
	flags *flag.FlagSet
}

func New(name string) Command {
	return Command{name: name, flags: flag.NewFlagSet(name, flag.ExitOnError)}
}

func (c Command) Name() string           { return c.name }
func (c Command) FlagSet() *flag.FlagSet { return c.flags }

func (c Command) Parse(args []string) error {
	return c.flags.Parse(args)
}

// PrintUsage writes the usage text followed by the options of each command.
func PrintUsage(w io.Writer, usage string, cmds []Runner) {
	fmt.Fprint(w, usage)
	fmt.Fprintln(w, "Commands:")
	for _, cmd := range cmds {
		fmt.Fprintf(w, "\n  %s\n", cmd.Name())
		cmd.FlagSet().VisitAll(func(f *flag.Flag) {
			typ, text := flag.UnquoteUsage(f)
			fmt.Fprintf(w, "    %s\n", strings.TrimSpace(fmt.Sprintf("-%s %s", f.Name, typ)))
			fmt.Fprintf(w, "        %s", text)
			if f.DefValue != "" && f.DefValue != "false" {
				fmt.Fprintf(w, " (default %s)", f.DefValue)
			}
			fmt.Fprintln(w)
		})
	}
}

func find(name string, cmds []Runner) Runner {
	for _, c := range cmds {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// DispatchCommand parses args with the flags of the named command and runs
// it.
func DispatchCommand(name string, args []string, cmds []Runner) error {
	cmd := find(name, cmds)
	if cmd == nil {
		return fmt.Errorf("Unknown command: %s", name)
	}
	slog.Info(fmt.Sprintf("Running command: %s", name))
	if err := cmd.Parse(args); err != nil {
		return err
	}
	cmd.FlagSet().VisitAll(func(f *flag.Flag) {
		slog.Debug(fmt.Sprintf("  %-15s: %s", f.Name, f.Value))
	})
	return cmd.Run()
}

// HelpCommand prints the program usage (flag.Usage).
type HelpCommand struct {
	Command
}

func NewHelpCommand(name string) *HelpCommand {
	return &HelpCommand{Command: New(name)}
}

func (c *HelpCommand) Run() error {
	flag.Usage()
	return nil
}
