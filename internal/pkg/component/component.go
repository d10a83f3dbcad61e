// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package component

import (
	"time"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/registry"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

var (
	Component        = registry.NewType("Component")
	PollingComponent = registry.NewType("PollingComponent", Component)
)

// Config holds the keys every component accepts.
type Config struct {
	SetupPriority *float64
}

// PollingConfig adds the update interval of a PollingComponent.
type PollingConfig struct {
	Config
	UpdateInterval time.Duration
}

func DecodeComponent(m *schema.Mapping) (Config, error) {
	c := Config{}
	if n, ok := m.Get("setup_priority"); ok {
		v, err := schema.Float(n, m.Path().Key("setup_priority"))
		if err != nil {
			return c, err
		}
		c.SetupPriority = &v
	}
	return c, nil
}

// DecodePolling decodes update_interval (with default def) and the component
// keys.
func DecodePolling(m *schema.Mapping, def time.Duration) (PollingConfig, error) {
	c := PollingConfig{UpdateInterval: def}
	base, err := DecodeComponent(m)
	if err != nil {
		return c, err
	}
	c.Config = base
	if n, ok := m.Get("update_interval"); ok {
		d, err := schema.UpdateInterval(n, m.Path().Key("update_interval"))
		if err != nil {
			return c, err
		}
		c.UpdateInterval = d
	}
	return c, nil
}

func (c Config) args() []codegen.Arg {
	var args []codegen.Arg
	if c.SetupPriority != nil {
		args = append(args, codegen.Named("setup_priority", codegen.Float(*c.SetupPriority)))
	}
	return args
}

func RegisterComponent(p *codegen.Program, id string, c Config) {
	p.Add(codegen.RegisterComponent(id, c.args()...))
}

func RegisterPollingComponent(p *codegen.Program, id string, c PollingConfig) {
	args := []codegen.Arg{codegen.Named("update_interval", codegen.Int(schema.Millis(c.UpdateInterval)))}
	p.Add(codegen.RegisterComponent(id, append(args, c.Config.args()...)...))
}
