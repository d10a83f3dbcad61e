// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package script

import (
	stderrors "errors"

	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/automation"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/registry"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

const Header = "esphome/components/script/script.h"

var Script = registry.NewType("script::Script", component.Component)

var modes = map[string]string{
	"single":   "script::SingleScript",
	"restart":  "script::RestartScript",
	"queued":   "script::QueueingScript",
	"parallel": "script::ParallelScript",
}

var modeNames = []string{"single", "restart", "queued", "parallel"}

type Config struct {
	ID      string
	Mode    string
	MaxRuns int64
	Then    []*automation.Item

	Path string
	Line int
}

// Class returns the script class implementing the configured mode.
func (c Config) Class() string {
	return modes[c.Mode]
}

func (c Config) Type() *registry.Type {
	return registry.NewType(c.Class(), Script)
}

func Decode(n *yaml.Node, path schema.Path) (Config, error) {
	c := Config{Mode: "single", Path: path.String()}
	m, err := schema.NewMapping(n, path)
	if err != nil {
		return c, err
	}
	c.Line = m.Line()
	idNode, err := m.Required("id")
	if err != nil {
		return c, err
	}
	if c.ID, err = schema.ID(idNode, path.Key("id")); err != nil {
		return c, err
	}
	if v, ok := m.Get("mode"); ok {
		if c.Mode, err = schema.OneOf(v, path.Key("mode"), modeNames); err != nil {
			return c, err
		}
	}
	if c.MaxRuns, err = m.Int("max_runs", 0); err != nil {
		return c, err
	}
	if c.MaxRuns != 0 && c.Mode != "queued" && c.Mode != "parallel" {
		return c, errors.WithLine(errors.ErrConfigInvalidValue(path.Key("max_runs").String(),
			"The option 'max_runs' is only valid in 'queue' and 'parallel' mode."), m.KeyLine("max_runs"))
	}
	if then, ok := m.Get("then"); ok {
		if c.Then, err = automation.DecodeActions(then, path.Key("then")); err != nil {
			return c, err
		}
	}
	return c, m.Unknown("script")
}

// DecodeList decodes the top-level script component, a list of scripts.
func DecodeList(n *yaml.Node, path schema.Path) ([]Config, error) {
	n = schema.Resolve(n)
	if n == nil || n.Kind != yaml.SequenceNode {
		c, err := Decode(n, path.Index(0))
		if err != nil {
			return nil, err
		}
		return []Config{c}, nil
	}
	var errs []error
	scripts := []Config{}
	for i, item := range n.Content {
		c, err := Decode(item, path.Index(i))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scripts = append(scripts, c)
	}
	return scripts, stderrors.Join(errs...)
}

func ToCode(p *codegen.Program, reg *registry.Registry, c Config) error {
	p.Include(Header)
	p.Add(
		codegen.ConstructTemplate(c.ID, c.Class(), ""),
		codegen.Call(c.ID, "set_name", codegen.Str(c.ID)),
	)
	if c.MaxRuns != 0 {
		p.Add(codegen.Call(c.ID, "set_max_runs", codegen.Int(c.MaxRuns)))
	}
	component.RegisterComponent(p, c.ID, component.Config{})
	ids, err := automation.BuildActions(p, reg, c.Then, "")
	if err != nil {
		return err
	}
	refs := make([]codegen.Arg, len(ids))
	for i, id := range ids {
		refs[i] = codegen.Ref(id)
	}
	p.Add(codegen.Call(c.ID, "add_actions", codegen.List(refs...)))
	return nil
}
