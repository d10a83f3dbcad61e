// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package i2c

import (
	stderrors "errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/pins"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/platform"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/registry"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

const (
	Header           = "esphome/components/i2c/i2c.h"
	DefaultFrequency = 50000.0
	MaxAddress       = 0x7F
)

var (
	I2CBus    = registry.NewType("i2c::I2CBus", component.Component)
	I2CDevice = registry.NewType("i2c::I2CDevice")
)

// BusConfig is one entry of the top-level i2c component.
type BusConfig struct {
	ID        string
	SDA       int
	SCL       int
	Frequency float64
	Scan      bool
	component.Config

	Path string
	Line int
}

// Pins returns the sda and scl pins for pin usage checks.
func (c BusConfig) Pins() []pins.Pin {
	return []pins.Pin{
		{Number: c.SDA, Path: c.Path + ".sda", Line: c.Line},
		{Number: c.SCL, Path: c.Path + ".scl", Line: c.Line},
	}
}

func decodePin(m *schema.Mapping, key string, def int, plat platform.Platform) (int, error) {
	n, ok := m.Get(key)
	if !ok {
		return def, nil
	}
	v, err := schema.Int(n, m.Path().Key(key))
	if err != nil {
		return 0, err
	}
	if v < 0 || int(v) > plat.MaxPin {
		return 0, errors.WithLine(errors.ErrConfigInvalidValue(m.Path().Key(key).String(),
			fmt.Sprintf("Invalid pin number: %d (must be 0-%d)", v, plat.MaxPin)), n.Line)
	}
	return int(v), nil
}

// DecodeBus validates a single bus mapping.
func DecodeBus(n *yaml.Node, path schema.Path, plat platform.Platform) (BusConfig, error) {
	c := BusConfig{Frequency: DefaultFrequency, Scan: true, Path: path.String()}
	m, err := schema.NewMapping(n, path)
	if err != nil {
		return c, err
	}
	c.Line = m.Line()
	if c.ID, err = m.ID("id"); err != nil {
		return c, err
	}
	if c.SDA, err = decodePin(m, "sda", plat.DefaultSDA, plat); err != nil {
		return c, err
	}
	if c.SCL, err = decodePin(m, "scl", plat.DefaultSCL, plat); err != nil {
		return c, err
	}
	if f, ok := m.Get("frequency"); ok {
		if c.Frequency, err = schema.Frequency(f, path.Key("frequency")); err != nil {
			return c, err
		}
	}
	if c.Scan, err = m.Bool("scan", true); err != nil {
		return c, err
	}
	if c.Config, err = component.DecodeComponent(m); err != nil {
		return c, err
	}
	if err := m.Unknown("i2c"); err != nil {
		return c, err
	}
	if c.SDA == c.SCL {
		return c, errors.WithLine(errors.ErrConfigInvalidValue(path.String(), "sda and scl must be different pins"), c.Line)
	}
	return c, nil
}

// DecodeBuses accepts the i2c component as a single mapping or a list.
func DecodeBuses(n *yaml.Node, path schema.Path, plat platform.Platform) ([]BusConfig, error) {
	n = schema.Resolve(n)
	if n != nil && n.Kind == yaml.SequenceNode {
		var errs []error
		buses := []BusConfig{}
		for i, item := range n.Content {
			b, err := DecodeBus(item, path.Index(i), plat)
			if err != nil {
				errs = append(errs, err)
				continue
			}
			buses = append(buses, b)
		}
		return buses, stderrors.Join(errs...)
	}
	b, err := DecodeBus(n, path, plat)
	if err != nil {
		return nil, err
	}
	return []BusConfig{b}, nil
}

// BusToCode emits the bus object. The bus must have an id, explicit or
// generated, before this is called.
func BusToCode(p *codegen.Program, c BusConfig, plat platform.Platform) {
	p.Include(Header)
	p.Add(
		codegen.Construct(c.ID, plat.I2CBusClass),
		codegen.Call(c.ID, "set_sda_pin", codegen.Int(int64(c.SDA))),
		codegen.Call(c.ID, "set_scl_pin", codegen.Int(int64(c.SCL))),
		codegen.Call(c.ID, "set_frequency", codegen.Int(int64(c.Frequency))),
		codegen.Call(c.ID, "set_scan", codegen.Bool(c.Scan)),
	)
	component.RegisterComponent(p, c.ID, c.Config)
}

// DeviceConfig holds the keys of an I2C device.
type DeviceConfig struct {
	BusID   string
	Address uint8
}

// DecodeDevice decodes i2c_id and address; def is the device default address.
func DecodeDevice(m *schema.Mapping, def uint8) (DeviceConfig, error) {
	c := DeviceConfig{Address: def}
	var err error
	if c.BusID, err = m.ID("i2c_id"); err != nil {
		return c, err
	}
	if n, ok := m.Get("address"); ok {
		v, err := schema.Int(n, m.Path().Key("address"))
		if err != nil {
			return c, err
		}
		if v < 0 || v > MaxAddress {
			return c, errors.WithLine(errors.ErrConfigInvalidValue(m.Path().Key("address").String(),
				"I2C address must be between 0x00 and 0x7F"), m.KeyLine("address"))
		}
		c.Address = uint8(v)
	}
	return c, nil
}

// RegisterDevice emits the attachment of device id to its bus.
func RegisterDevice(p *codegen.Program, id string, c DeviceConfig) {
	p.Add(codegen.RegisterI2CDevice(id, c.BusID, c.Address))
}
