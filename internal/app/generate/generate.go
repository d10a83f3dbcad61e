// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package generate

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/command"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/config"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/publish"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/session"
)

type GenerateCommand struct {
	command.Command

	envFile    string
	format     string
	outputFile string
	redisUrl   string
	redisKey   string
	execProg   string

	out io.Writer
}

func NewGenerateCommand(name string) *GenerateCommand {
	c := &GenerateCommand{
		Command: command.New(name),
		out: os.Stdout,
	}
	c.FlagSet().StringVar(&c.envFile, "env", "", "path to a .env file of substitutions")
	c.FlagSet().StringVar(&c.format, "format", string(codegen.FormatYaml), "output format (select from yaml, msgpack, cpp)")
	c.FlagSet().StringVar(&c.outputFile, "output", "", "path to write the generated program (default stdout)")
	c.FlagSet().StringVar(&c.redisUrl, "redis", "", "publish the program to this Redis server (e.g. redis://localhost:6379)")
	c.FlagSet().StringVar(&c.redisKey, "key", publish.DefaultKey, "Redis list to publish to")
	c.FlagSet().StringVar(&c.execProg, "exec", "", "generator to run with the output file as last argument")
	return c
}

func (c *GenerateCommand) Run() error {
	if c.FlagSet().NArg() != 1 {
		return errors.ErrNoFiles
	}
	format, err := codegen.ParseFormat(c.format)
	if err != nil {
		return err
	}
	if c.execProg != "" && c.outputFile == "" {
		return fmt.Errorf("option -exec requires -output")
	}

	cfg, err := config.Load(c.FlagSet().Arg(0), config.Options{EnvFile: c.envFile})
	if err != nil {
		return err
	}
	p, err := cfg.Generate()
	if err != nil {
		return err
	}

	var b bytes.Buffer
	if err := codegen.Encode(&b, p, format); err != nil {
		return err
	}
	if c.outputFile != "" {
		slog.Info(fmt.Sprintf("Writing file: %s", c.outputFile))
		if err := os.WriteFile(c.outputFile, b.Bytes(), 0644); err != nil {
			return err
		}
	} else if _, err := c.out.Write(b.Bytes()); err != nil {
		return err
	}

	ctx := context.Background()
	if c.redisUrl != "" {
		r := publish.RedisPublisher{Url: c.redisUrl, Key: c.redisKey}
		if err := r.Connect(ctx); err != nil {
			return err
		}
		defer r.Close()
		if err := r.Publish(p); err != nil {
			return err
		}
	}
	if c.execProg != "" {
		cmd := session.Command{
			Name: "generator",
			Prog: c.execProg,
			Args: []string{c.outputFile},
			Env: map[string]string{
				"VL53GEN_FORMAT": string(format),
				"VL53GEN_SOURCE": cfg.File,
				"VL53GEN_TARGET": cfg.Platform.Name,
			},
		}
		if err := cmd.Run(ctx); err != nil {
			return err
		}
	}
	return nil
}
