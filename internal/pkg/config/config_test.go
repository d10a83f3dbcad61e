// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/platform"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/vl53l3cx"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
)

func parse(t *testing.T, doc string) (*Config, error) {
	return Parse("test.yaml", []byte(doc), Options{})
}

func TestLoad(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "shelf.yaml"), Options{})
	require.NoError(t, err)
	assert.Equal(t, platform.ESP32, c.Platform)
	require.Len(t, c.Buses, 1)
	require.Len(t, c.Sensors, 2)
	require.Len(t, c.Scripts, 1)

	bottom, top := c.Sensors[0], c.Sensors[1]
	assert.Equal(t, "shelf_bottom", bottom.ID())
	assert.Equal(t, "shelf bottom", bottom.Sensor.Name)
	assert.Equal(t, uint8(0x29), bottom.Device.Address)
	assert.Equal(t, time.Second, bottom.Polling.UpdateInterval)
	assert.Equal(t, "bus_a", bottom.Device.BusID)
	assert.Equal(t, "shelf_top", top.ID())
	assert.Equal(t, uint8(0x30), top.Device.Address)
	assert.Equal(t, 17, top.EnablePin.Number)

	assert.Equal(t, []string{"bus_a", "shelf_bottom", "shelf_top", "uptime_s", "recalibrate"}, c.Registry.IDs())

	p, err := c.Generate()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("testdata", "shelf.yaml"), p.Source)

	// Buses first, then sensors, then scripts.
	constructs := []string{}
	for _, d := range p.Directives {
		if d.Kind == codegen.KindConstruct {
			constructs = append(constructs, d.ID)
		}
	}
	assert.Equal(t, []string{
		"bus_a",
		"shelf_bottom",
		"esp32internalgpiopin_id",
		"shelf_top",
		"esp32internalgpiopin_id_2",
		"recalibrate",
		"vl53l3cxcalibrateaction_id",
		"delayaction_id",
		"vl53l3cxcalibrateaction_id_2",
	}, constructs)
	assert.Contains(t, p.Directives, codegen.ConstructTemplate("vl53l3cxcalibrateaction_id_2",
		"vl53l3cx::VL53L3CXCalibrateAction", "", codegen.Ref("shelf_top")))
}

func TestParseMinimal(t *testing.T) {
	c, err := parse(t, "i2c:\nsensor:\n  - platform: vl53l3cx\n")
	require.NoError(t, err)
	require.Len(t, c.Sensors, 1)
	assert.Equal(t, "vl53l3cxsensor_id", c.Sensors[0].ID())
	assert.Equal(t, "arduinoi2cbus_id", c.Sensors[0].Device.BusID)

	p, err := c.Generate()
	require.NoError(t, err)
	last := p.Directives[len(p.Directives)-1]
	assert.Equal(t, codegen.RegisterI2CDevice("vl53l3cxsensor_id", "arduinoi2cbus_id", vl53l3cx.DefaultAddress), last)
}

func TestParseGeneratedIDs(t *testing.T) {
	// Explicit ids are declared before any id is generated.
	c, err := parse(t, `
i2c:
sensor:
  - platform: vl53l3cx
    enable_pin: 4
  - platform: vl53l3cx
    id: vl53l3cxsensor_id
    address: 0x30
    enable_pin: 5
`)
	require.NoError(t, err)
	assert.Equal(t, "vl53l3cxsensor_id_2", c.Sensors[0].ID())
	assert.Equal(t, "vl53l3cxsensor_id", c.Sensors[1].ID())
}

func TestParseErrors(t *testing.T) {
	type testCase struct {
		doc    string
		errors []string
	}
	tests := map[string]testCase{
		"address without enable pin": {
			doc:    "i2c:\nsensor:\n  - platform: vl53l3cx\n    address: 0x30\n",
			errors: []string{"requires enable_pin definition"},
		},
		"no i2c": {
			doc:    "sensor:\n  - platform: vl53l3cx\n",
			errors: []string{"Component vl53l3cx requires component i2c."},
		},
		"several buses": {
			doc:    "i2c: [{id: a}, {id: b, sda: 16, scl: 17}]\nsensor:\n  - platform: vl53l3cx\n",
			errors: []string{"required key not provided: [i2c_id]"},
		},
		"two sensors without enable pins": {
			doc: `
i2c:
sensor:
  - platform: vl53l3cx
    id: a
  - platform: vl53l3cx
    id: b
    address: 0x30
    enable_pin: 4
`,
			errors: []string{"sensor.0: \"more than one VL53 device on i2c bus 'arduinoi2cbus_id'"},
		},
		"duplicate address": {
			doc: `
i2c:
sensor:
  - {platform: vl53l3cx, id: a, address: 0x30, enable_pin: 4}
  - {platform: vl53l3cx, id: b, address: 0x30, enable_pin: 5}
`,
			errors: []string{"address 0x30 on i2c bus"},
		},
		"shared enable pin": {
			doc: `
i2c:
sensor:
  - {platform: vl53l3cx, id: a, address: 0x30, enable_pin: 4}
  - {platform: vl53l3cx, id: b, address: 0x31, enable_pin: 4}
`,
			errors: []string{"pin 4 is already used by 'sensor.0.enable_pin'"},
		},
		"enable pin on bus pin": {
			doc:    "i2c:\nsensor:\n  - {platform: vl53l3cx, address: 0x30, enable_pin: 21}\n",
			errors: []string{"pin 21 is already used by 'i2c.sda'"},
		},
		"bus pins shared by buses": {
			doc:    "i2c: [{id: a, sda: 4, scl: 5}, {id: b, sda: 5, scl: 6}]\n",
			errors: []string{"pin 5 is already used by 'i2c.0.scl'"},
		},
		"redefined id": {
			doc:    "i2c: {id: tof}\nsensor:\n  - {platform: vl53l3cx, id: tof}\n",
			errors: []string{"ID tof redefined!"},
		},
		"calibrate undeclared": {
			doc:    "script:\n  - id: s\n    then:\n      - vl53l3cx.calibrate: tof\n",
			errors: []string{"Couldn't find ID 'tof'"},
		},
		"calibrate other platform": {
			doc:    "sensor:\n  - {platform: uptime, id: tof}\nscript:\n  - id: s\n    then:\n      - vl53l3cx.calibrate: tof\n",
			errors: []string{"ID 'tof' of type sensor::Sensor doesn't inherit from vl53l3cx::VL53L3CXSensor"},
		},
		"all pass one errors": {
			doc:    "i2c:\nsensor:\n  - {platform: vl53l3cx, mode: Far}\n  - {platform: vl53l3cx, colour: red}\n",
			errors: []string{"Unknown value 'Far'", "[colour] is an invalid option for [sensor.vl53l3cx]"},
		},
		"missing platform": {
			doc:    "sensor:\n  - {id: tof}\n",
			errors: []string{"required key not provided: [platform]"},
		},
		"two platforms": {
			doc:    "esp32:\nrp2040:\n",
			errors: []string{"only one target platform may be configured"},
		},
		"unknown substitution": {
			doc:    "sensor:\n  - platform: vl53l3cx\n    id: ${tof}\n",
			errors: []string{"Substitution 'tof' not found."},
		},
		"not yaml": {
			doc:    "sensor: [",
			errors: []string{"could not parse yaml"},
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parse(t, tc.doc)
			require.Error(t, err)
			for _, e := range tc.errors {
				assert.ErrorContains(t, err, e)
			}
		})
	}
}

func TestParseMergeKeys(t *testing.T) {
	c, err := parse(t, `
.tof: &tof
  platform: vl53l3cx
  update_interval: 1s
i2c:
sensor:
  - <<: *tof
    id: tof_left
    address: 0x30
    enable_pin: 4
  - <<: *tof
    id: tof_right
    enable_pin: 5
    update_interval: 2s
`)
	require.NoError(t, err)
	require.Len(t, c.Sensors, 2)
	assert.Equal(t, "tof_left", c.Sensors[0].ID())
	assert.Equal(t, time.Second, c.Sensors[0].Polling.UpdateInterval)
	assert.Equal(t, uint8(0x30), c.Sensors[0].Device.Address)
	assert.Equal(t, "tof_right", c.Sensors[1].ID())
	assert.Equal(t, 2*time.Second, c.Sensors[1].Polling.UpdateInterval)
}

func TestParseEmpty(t *testing.T) {
	_, err := parse(t, "")
	assert.ErrorIs(t, err, errors.ErrNoConfig)
	_, err = parse(t, "# nothing\n")
	assert.ErrorIs(t, err, errors.ErrNoConfig)
}

func TestParsePlatform(t *testing.T) {
	c, err := parse(t, "rp2040:\ni2c:\nsensor:\n  - {platform: vl53l3cx, address: 0x30, enable_pin: 28}\n")
	require.NoError(t, err)
	assert.Equal(t, platform.RP2040, c.Platform)

	_, err = parse(t, "rp2040:\ni2c:\nsensor:\n  - {platform: vl53l3cx, address: 0x30, enable_pin: 30}\n")
	assert.ErrorContains(t, err, "Invalid pin number: 30 (must be 0-29)")
}

func TestParseEnvFile(t *testing.T) {
	env := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(env, []byte("TOF_ADDRESS=0x32\n"), 0644))
	c, err := Parse("test.yaml", []byte("i2c:\nsensor:\n  - {platform: vl53l3cx, address: $TOF_ADDRESS, enable_pin: 4}\n"), Options{EnvFile: env})
	require.NoError(t, err)
	assert.Equal(t, uint8(0x32), c.Sensors[0].Device.Address)
}
