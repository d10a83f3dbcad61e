// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"flag"
	"log/slog"
	"os"
	"strconv"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/app/generate"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/app/validate"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/command"
)

const defaultLogLevel = 3

var usage = `
VL53L3CX configuration validator and program generator.

Usage:

	vl53gen <command> [option] [FILE...]

Environment:

	VL53GEN_LOGGER  log level (select between 0..4, default 3)

`

func cmds() []command.Runner {
	return []command.Runner{
		command.NewHelpCommand("help"),
		validate.NewValidateCommand("validate"),
		generate.NewGenerateCommand("generate"),
	}
}

func logLevel() int {
	if v, err := strconv.Atoi(os.Getenv("VL53GEN_LOGGER")); err == nil {
		return v
	}
	return defaultLogLevel
}

func main() {
	os.Exit(main_())
}

func main_() int {
	slog.SetDefault(NewLogger(logLevel()))
	commands := cmds()
	printUsage := func() {
		command.PrintUsage(flag.CommandLine.Output(), usage[1:], commands)
	}
	flag.Usage = printUsage
	if len(os.Args) == 1 {
		printUsage()
		return 1
	}
	if err := command.DispatchCommand(os.Args[1], os.Args[2:], commands); err != nil {
		slog.Error(err.Error())
		return 2
	}

	return 0
}
