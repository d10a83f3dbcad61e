// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package vl53l3cx

import (
	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/automation"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/registry"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

const CalibrateActionName = "vl53l3cx.calibrate"

var CalibrateAction = registry.NewType("vl53l3cx::VL53L3CXCalibrateAction", automation.ActionType)

// CalibrateActionConfig references the sensor to calibrate.
type CalibrateActionConfig struct {
	ID string

	Path string
	Line int
}

func (a *CalibrateActionConfig) Resolve(reg *registry.Registry) error {
	_, err := reg.Resolve(a.ID, VL53L3CXSensor, a.Path, a.Line)
	return err
}

func (a *CalibrateActionConfig) ToCode(p *codegen.Program, actionID string, templateArg string) error {
	p.Include(Header)
	p.Add(codegen.ConstructTemplate(actionID, CalibrateAction.Name, templateArg, codegen.Ref(a.ID)))
	return nil
}

func init() {
	automation.RegisterAction(CalibrateActionName, CalibrateAction, func(n *yaml.Node, path schema.Path) (automation.Action, error) {
		id, line, err := automation.MaybeSimpleID(n, path, CalibrateActionName)
		if err != nil {
			return nil, err
		}
		return &CalibrateActionConfig{ID: id, Path: path.Key("id").String(), Line: line}, nil
	})
}
