// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package vl53l3cx

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/i2c"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/pins"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/platform"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/sensor"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/registry"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

const (
	Platform              = "vl53l3cx"
	Header                = "esphome/components/vl53l3cx/vl53l3cx_sensor.h"
	DefaultAddress        = 0x29
	DefaultUpdateInterval = 500 * time.Millisecond
)

// Dependencies are the components a vl53l3cx sensor needs in the same
// configuration.
var Dependencies = []string{"i2c"}

var VL53L3CXSensor = registry.NewType("vl53l3cx::VL53L3CXSensor", sensor.Sensor, component.PollingComponent, i2c.I2CDevice)

var Defaults = sensor.Defaults{
	Unit:             "m",
	Icon:             "mdi:arrow-expand-vertical",
	AccuracyDecimals: 3,
	StateClass:       "measurement",
}

// ReportMode selects which of the detected targets the sensor reports.
type ReportMode string

const (
	ReportModeFurtherest ReportMode = "Furtherest"
	ReportModeClosest    ReportMode = "Closest"
)

var reportModes = []string{string(ReportModeFurtherest), string(ReportModeClosest)}

func (m ReportMode) Literal() string {
	return "vl53l3cx::ReportMode::" + string(m)
}

// Config is a validated vl53l3cx sensor entry.
type Config struct {
	Sensor    sensor.Config
	Polling   component.PollingConfig
	Device    i2c.DeviceConfig
	EnablePin *pins.Pin
	Mode      *ReportMode

	Path string
	Line int
}

func (c Config) ID() string { return c.Sensor.ID }

// checkKeys enforces that a device which is re-addressed has an enable pin.
func checkKeys(c Config) error {
	if c.Device.Address != DefaultAddress && c.EnablePin == nil {
		return errors.WithLine(errors.ErrConfigRequiresEnablePin(c.Path), c.Line)
	}
	return nil
}

// Validate decodes one sensor entry with platform vl53l3cx and applies the
// defaults.
func Validate(n *yaml.Node, path schema.Path, plat platform.Platform) (Config, error) {
	c := Config{Path: path.String()}
	m, err := schema.NewMapping(n, path)
	if err != nil {
		return c, err
	}
	c.Line = m.Line()
	m.Consume("platform")

	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	c.Sensor, err = sensor.Decode(m, Defaults)
	collect(err)
	c.Polling, err = component.DecodePolling(m, DefaultUpdateInterval)
	collect(err)
	c.Device, err = i2c.DecodeDevice(m, DefaultAddress)
	collect(err)
	if v, ok := m.Get("enable_pin"); ok {
		c.EnablePin, err = pins.DecodeOutputPin(v, path.Key("enable_pin"), plat)
		collect(err)
	}
	if v, ok := m.Get("mode"); ok {
		mode, err := schema.Enum(v, path.Key("mode"), reportModes)
		collect(err)
		if err == nil {
			rm := ReportMode(mode)
			c.Mode = &rm
		}
	}
	collect(m.Unknown("sensor.vl53l3cx"))
	if len(errs) > 0 {
		return c, stderrors.Join(errs...)
	}
	if err := checkKeys(c); err != nil {
		return c, err
	}
	slog.Debug(fmt.Sprintf("Validated vl53l3cx: path=%s, address=0x%02X, update_interval=%s", c.Path, c.Device.Address, c.Polling.UpdateInterval))
	return c, nil
}

// Resolve selects the i2c bus of the sensor. All ids, including generated
// ones, must be declared before this is called.
func (c *Config) Resolve(reg *registry.Registry) error {
	if c.Device.BusID == "" {
		buses := reg.OfType(i2c.I2CBus)
		switch len(buses) {
		case 0:
			return errors.WithLine(errors.ErrConfigMissingComponent(c.Path, Platform, "i2c"), c.Line)
		case 1:
			c.Device.BusID = buses[0]
			return nil
		default:
			return errors.WithLine(errors.ErrConfigRequired(c.Path, "i2c_id"), c.Line)
		}
	}
	_, err := reg.Resolve(c.Device.BusID, i2c.I2CBus, schema.Root(c.Path).Key("i2c_id").String(), c.Line)
	return err
}

// CheckBus enforces the rules for several sensors sharing one i2c bus.
func CheckBus(cfgs []Config) error {
	var errs []error
	byBus := map[string][]Config{}
	order := []string{}
	for _, c := range cfgs {
		if _, ok := byBus[c.Device.BusID]; !ok {
			order = append(order, c.Device.BusID)
		}
		byBus[c.Device.BusID] = append(byBus[c.Device.BusID], c)
	}
	for _, bus := range order {
		devices := byBus[bus]
		if len(devices) < 2 {
			continue
		}
		seen := map[uint8]Config{}
		for _, c := range devices {
			if c.EnablePin == nil {
				errs = append(errs, errors.WithLine(errors.ErrConfigMultiDeviceEnablePin(c.Path, bus), c.Line))
			}
			if prev, ok := seen[c.Device.Address]; ok {
				errs = append(errs, errors.WithLine(errors.ErrConfigDuplicateAddress(c.Path, c.Device.Address, bus, prev.Path), c.Line))
				continue
			}
			seen[c.Device.Address] = c
		}
	}
	return stderrors.Join(errs...)
}

// ToCode emits the sensor: construction and sensor registration, polling
// component registration, enable pin, report mode and finally the i2c
// device registration.
func ToCode(p *codegen.Program, reg *registry.Registry, c Config, plat platform.Platform) {
	id := c.ID()
	p.Include(Header)
	sensor.NewSensor(p, id, VL53L3CXSensor, c.Sensor)
	component.RegisterPollingComponent(p, id, c.Polling)
	if c.EnablePin != nil {
		pin := pins.Expression(p, reg, *c.EnablePin, plat)
		p.Add(codegen.Call(id, "set_enable_pin", codegen.Ref(pin)))
	}
	if c.Mode != nil {
		p.Add(codegen.Call(id, "set_report_mode", codegen.Enum(c.Mode.Literal())))
	}
	i2c.RegisterDevice(p, id, c.Device)
}
