// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package sensor

import (
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/registry"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

const Header = "esphome/components/sensor/sensor.h"

var Sensor = registry.NewType("sensor::Sensor")

var (
	StateClasses     = []string{"", "measurement", "total_increasing", "total"}
	EntityCategories = []string{"", "config", "diagnostic"}
	DeviceClasses    = []string{
		"", "apparent_power", "aqi", "atmospheric_pressure", "battery", "carbon_dioxide",
		"carbon_monoxide", "current", "data_rate", "data_size", "distance", "duration",
		"energy", "frequency", "gas", "humidity", "illuminance", "irradiance", "moisture",
		"monetary", "nitrogen_dioxide", "ozone", "ph", "pm1", "pm10", "pm25", "power",
		"power_factor", "precipitation", "pressure", "reactive_power", "signal_strength",
		"sound_pressure", "speed", "temperature", "timestamp", "voltage", "volume", "water",
		"weight", "wind_speed",
	}
)

// Defaults are the per-platform metadata defaults, applied when a key is
// absent.
type Defaults struct {
	Unit             string
	Icon             string
	AccuracyDecimals int64
	DeviceClass      string
	StateClass       string
}

// Config is the sensor metadata shared by all sensor platforms.
type Config struct {
	ID                string
	Name              string
	Internal          bool
	DisabledByDefault bool
	Icon              string
	Unit              string
	AccuracyDecimals  int64
	DeviceClass       string
	StateClass        string
	ForceUpdate       bool
	EntityCategory    string
}

var iconRe = regexp.MustCompile(`^[\w\-]+:[\w\-]+$`)

func decodeIcon(m *schema.Mapping, def string) (string, error) {
	icon, err := m.String("icon", def)
	if err != nil || icon == "" {
		return icon, err
	}
	if !iconRe.MatchString(icon) {
		return "", errors.WithLine(errors.ErrConfigInvalidValue(m.Path().Key("icon").String(),
			`Icons must match the format "[icon pack]:[icon]", e.g. "mdi:home-assistant"`), m.KeyLine("icon"))
	}
	return icon, nil
}

func oneOf(m *schema.Mapping, key string, options []string, def string) (string, error) {
	n, ok := m.Get(key)
	if !ok {
		return def, nil
	}
	return schema.OneOf(n, m.Path().Key(key), options)
}

// Decode consumes the sensor metadata keys from m.
func Decode(m *schema.Mapping, d Defaults) (Config, error) {
	var errs []error
	c := Config{}
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}
	var err error
	c.ID, err = m.ID("id")
	collect(err)
	c.Name, err = m.String("name", "")
	collect(err)
	c.Internal, err = m.Bool("internal", false)
	collect(err)
	c.DisabledByDefault, err = m.Bool("disabled_by_default", false)
	collect(err)
	c.Icon, err = decodeIcon(m, d.Icon)
	collect(err)
	c.Unit, err = m.String("unit_of_measurement", d.Unit)
	collect(err)
	c.AccuracyDecimals, err = m.Int("accuracy_decimals", d.AccuracyDecimals)
	collect(err)
	c.DeviceClass, err = oneOf(m, "device_class", DeviceClasses, d.DeviceClass)
	collect(err)
	c.StateClass, err = oneOf(m, "state_class", StateClasses, d.StateClass)
	collect(err)
	c.ForceUpdate, err = m.Bool("force_update", false)
	collect(err)
	c.EntityCategory, err = oneOf(m, "entity_category", EntityCategories, "")
	collect(err)
	return c, stderrors.Join(errs...)
}

// NewSensor emits the construction of a sensor instance of type t followed
// by its registration and metadata setters.
func NewSensor(p *codegen.Program, id string, t *registry.Type, c Config) {
	p.Include(Header)
	p.Add(
		codegen.Construct(id, t.Name),
		codegen.RegisterSensor(id),
	)
	if c.Name != "" {
		p.Add(codegen.Call(id, "set_name", codegen.Str(c.Name)))
	}
	if c.DisabledByDefault {
		p.Add(codegen.Call(id, "set_disabled_by_default", codegen.Bool(true)))
	}
	if c.Internal {
		p.Add(codegen.Call(id, "set_internal", codegen.Bool(true)))
	}
	if c.Icon != "" {
		p.Add(codegen.Call(id, "set_icon", codegen.Str(c.Icon)))
	}
	if c.EntityCategory != "" {
		p.Add(codegen.Call(id, "set_entity_category", codegen.Enum("ENTITY_CATEGORY_"+strings.ToUpper(c.EntityCategory))))
	}
	if c.Unit != "" {
		p.Add(codegen.Call(id, "set_unit_of_measurement", codegen.Str(c.Unit)))
	}
	p.Add(codegen.Call(id, "set_accuracy_decimals", codegen.Int(c.AccuracyDecimals)))
	if c.DeviceClass != "" {
		p.Add(codegen.Call(id, "set_device_class", codegen.Str(c.DeviceClass)))
	}
	if c.StateClass != "" {
		p.Add(codegen.Call(id, "set_state_class", codegen.Enum(fmt.Sprintf("sensor::STATE_CLASS_%s", strings.ToUpper(c.StateClass)))))
	}
	if c.ForceUpdate {
		p.Add(codegen.Call(id, "set_force_update", codegen.Bool(true)))
	}
}
