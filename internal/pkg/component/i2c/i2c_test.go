// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package i2c

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/platform"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

func node(t *testing.T, doc string) *yaml.Node {
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(doc), &n))
	return &n
}

func TestDecodeBuses(t *testing.T) {
	buses, err := DecodeBuses(node(t, "{id: bus_a}"), schema.Root("i2c"), platform.ESP32)
	require.NoError(t, err)
	require.Len(t, buses, 1)
	assert.Equal(t, "bus_a", buses[0].ID)
	assert.Equal(t, 21, buses[0].SDA)
	assert.Equal(t, 22, buses[0].SCL)
	assert.Equal(t, DefaultFrequency, buses[0].Frequency)
	assert.True(t, buses[0].Scan)

	buses, err = DecodeBuses(node(t, `
- id: bus_a
  sda: 4
  scl: 5
  frequency: 400kHz
  scan: false
- id: bus_b
  sda: 16
  scl: 17
`), schema.Root("i2c"), platform.ESP32)
	require.NoError(t, err)
	require.Len(t, buses, 2)
	assert.Equal(t, 400000.0, buses[0].Frequency)
	assert.False(t, buses[0].Scan)
	assert.Equal(t, "i2c.1", buses[1].Path)

	buses, err = DecodeBuses(node(t, "~"), schema.Root("i2c"), platform.ESP8266)
	require.NoError(t, err)
	assert.Equal(t, 4, buses[0].SDA)
}

func TestDecodeBusErrors(t *testing.T) {
	tests := map[string]string{
		"{sda: 4, scl: 4}":      "sda and scl must be different pins",
		"{sda: 45}":             "Invalid pin number: 45 (must be 0-39)",
		"{frequency: fast}":     "Invalid frequency fast",
		"{speed: 1}":            "[speed] is an invalid option for [i2c]",
		"[{id: a}, {id: 1bus}]": "First character in ID cannot be a digit.",
	}
	for doc, msg := range tests {
		t.Run(doc, func(t *testing.T) {
			_, err := DecodeBuses(node(t, doc), schema.Root("i2c"), platform.ESP32)
			assert.ErrorContains(t, err, msg)
		})
	}
}

func TestBusToCode(t *testing.T) {
	p := codegen.NewProgram("")
	BusToCode(p, BusConfig{ID: "bus_a", SDA: 21, SCL: 22, Frequency: 400000, Scan: true}, platform.ESP32)
	assert.Equal(t, []codegen.Directive{
		codegen.Construct("bus_a", "i2c::ArduinoI2CBus"),
		codegen.Call("bus_a", "set_sda_pin", codegen.Int(21)),
		codegen.Call("bus_a", "set_scl_pin", codegen.Int(22)),
		codegen.Call("bus_a", "set_frequency", codegen.Int(400000)),
		codegen.Call("bus_a", "set_scan", codegen.Bool(true)),
		codegen.RegisterComponent("bus_a"),
	}, p.Directives)
	assert.NoError(t, p.Check())
}

func TestDecodeDevice(t *testing.T) {
	type testCase struct {
		doc     string
		address uint8
		bus     string
		error   string
	}
	tests := map[string]testCase{
		"default":        {doc: "{}", address: 0x29},
		"int":            {doc: "{address: 0x30, i2c_id: bus_a}", address: 0x30, bus: "bus_a"},
		"decimal":        {doc: "{address: 48}", address: 0x30},
		"string":         {doc: `{address: "0x31"}`, address: 0x31},
		"too large":      {doc: "{address: 0x80}", error: "I2C address must be between 0x00 and 0x7F"},
		"negative":       {doc: "{address: -1}", error: "I2C address must be between 0x00 and 0x7F"},
		"not an integer": {doc: "{address: high}", error: "cannot parse high as an integer"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			m, err := schema.NewMapping(node(t, tc.doc), schema.Root("sensor", "0"))
			require.NoError(t, err)
			c, err := DecodeDevice(m, 0x29)
			if tc.error != "" {
				assert.ErrorContains(t, err, tc.error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.address, c.Address)
			assert.Equal(t, tc.bus, c.BusID)
		})
	}
}

func TestRegisterDevice(t *testing.T) {
	p := codegen.NewProgram("")
	RegisterDevice(p, "tof", DeviceConfig{BusID: "bus_a", Address: 0x29})
	assert.Equal(t, codegen.RegisterI2CDevice("tof", "bus_a", 0x29), p.Directives[0])
}
