// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package automation

import (
	"time"

	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/registry"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

var DelayAction = registry.NewType("DelayAction", ActionType, component.Component)

type delayAction struct {
	delay time.Duration
}

func (a *delayAction) Resolve(reg *registry.Registry) error { return nil }

func (a *delayAction) ToCode(p *codegen.Program, actionID string, templateArg string) error {
	p.Add(codegen.ConstructTemplate(actionID, DelayAction.Name, templateArg))
	component.RegisterComponent(p, actionID, component.Config{})
	p.Add(codegen.Call(actionID, "set_delay", codegen.Int(schema.Millis(a.delay))))
	return nil
}

func init() {
	RegisterAction("delay", DelayAction, func(n *yaml.Node, path schema.Path) (Action, error) {
		d, err := schema.PositiveTimePeriodMilliseconds(n, path)
		if err != nil {
			return nil, err
		}
		return &delayAction{delay: d}, nil
	})
}
