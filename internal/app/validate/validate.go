// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package validate

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/command"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/config"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/file/handler"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/file/handler/firmware"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/index"
)

type ValidateCommand struct {
	command.Command

	envFile string
	dir     string

	out io.Writer
}

func NewValidateCommand(name string) *ValidateCommand {
	c := &ValidateCommand{
		Command: command.New(name),
		out: os.Stdout,
	}
	c.FlagSet().StringVar(&c.envFile, "env", "", "path to a .env file of substitutions")
	c.FlagSet().StringVar(&c.dir, "dir", "", "validate every firmware configuration under this directory")
	return c
}

// files lists the configurations to validate. Documents found by the
// directory index are returned with their content.
func (c *ValidateCommand) files() ([]*firmware.ConfigDoc, error) {
	docs := []*firmware.ConfigDoc{}
	for _, f := range c.FlagSet().Args() {
		docs = append(docs, &firmware.ConfigDoc{File: f})
	}
	if c.dir == "" {
		return docs, nil
	}
	indexed, err := index.IndexFiles(c.dir, ".yaml", ".yml")
	if err != nil {
		return nil, err
	}
	for _, f := range indexed {
		if _, data, err := handler.ParseFile(f); err == nil {
			doc := data.(*firmware.ConfigDoc)
			slog.Debug(fmt.Sprintf("Firmware configuration: %s (%s)", doc.File, strings.Join(doc.Keys, ", ")))
			docs = append(docs, doc)
		} else {
			slog.Debug(fmt.Sprintf("Skip file: %s", f))
		}
	}
	return docs, nil
}

func (c *ValidateCommand) Run() error {
	docs, err := c.files()
	if err != nil {
		return err
	}
	if len(docs) == 0 {
		return errors.ErrNoFiles
	}
	opts := config.Options{EnvFile: c.envFile}
	var errs []error
	for _, doc := range docs {
		if doc.Data != nil {
			_, err = config.Parse(doc.File, doc.Data, opts)
		} else {
			_, err = config.Load(doc.File, opts)
		}
		if err != nil {
			slog.Error(fmt.Sprintf("%s: %v", doc.File, err))
			errs = append(errs, fmt.Errorf("%s: invalid configuration", doc.File))
			continue
		}
		fmt.Fprintf(c.out, "%s: OK\n", doc.File)
	}
	return stderrors.Join(errs...)
}
