// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package pins

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/platform"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/registry"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

func node(t *testing.T, doc string) *yaml.Node {
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(doc), &n))
	return &n
}

func TestDecodeOutputPin(t *testing.T) {
	type testCase struct {
		doc   string
		plat  platform.Platform
		pin   Pin
		error string
	}
	path := schema.Root("sensor", "0", "enable_pin")
	tests := map[string]testCase{
		"number": {
			doc: "4",
			pin: Pin{Number: 4},
		},
		"gpio string": {
			doc: "GPIO16",
			pin: Pin{Number: 16},
		},
		"mapping": {
			doc: "{number: 4, inverted: true, allow_other_uses: true}",
			pin: Pin{Number: 4, Inverted: true, AllowOtherUses: true},
		},
		"open drain": {
			doc: "{number: GPIO5, mode: OUTPUT_OPEN_DRAIN}",
			pin: Pin{Number: 5, OpenDrain: true},
		},
		"mode mapping": {
			doc: "{number: 5, mode: {output: true, pullup: true}}",
			pin: Pin{Number: 5, Pullup: true},
		},
		"input mode": {
			doc:   "{number: 5, mode: INPUT}",
			error: "This pin must be an output pin.",
		},
		"input mode mapping": {
			doc:   "{number: 5, mode: {input: true}}",
			error: "This pin must be an output pin.",
		},
		"missing number": {
			doc:   "{inverted: true}",
			error: "required key not provided: [number]",
		},
		"unknown key": {
			doc:   "{number: 4, drive: high}",
			error: "[drive] is an invalid option for [pin]",
		},
		"out of range": {
			doc:   "30",
			plat:  platform.RP2040,
			error: "RP2040: Invalid pin number: 30 (must be 0-29)",
		},
		"not a pin": {
			doc:   "D4",
			error: "Invalid pin number: D4",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			plat := tc.plat
			if plat.Name == "" {
				plat = platform.Default
			}
			p, err := DecodeOutputPin(node(t, tc.doc), path, plat)
			if tc.error != "" {
				assert.ErrorContains(t, err, tc.error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.pin.Number, p.Number)
			assert.Equal(t, tc.pin.Inverted, p.Inverted)
			assert.Equal(t, tc.pin.OpenDrain, p.OpenDrain)
			assert.Equal(t, tc.pin.Pullup, p.Pullup)
			assert.Equal(t, tc.pin.AllowOtherUses, p.AllowOtherUses)
			assert.Equal(t, "sensor.0.enable_pin", p.Path)
		})
	}
}

func TestFlags(t *testing.T) {
	assert.Equal(t, "gpio::Flags::FLAG_OUTPUT", Pin{}.Flags())
	assert.Equal(t, "gpio::Flags::FLAG_OUTPUT | gpio::Flags::FLAG_OPEN_DRAIN", Pin{OpenDrain: true}.Flags())
}

func TestExpression(t *testing.T) {
	p := codegen.NewProgram("")
	reg := registry.New()
	id := Expression(p, reg, Pin{Number: 4, Path: "sensor.0.enable_pin"}, platform.ESP32)
	assert.Equal(t, "esp32internalgpiopin_id", id)
	assert.Equal(t, []string{"esphome/components/esp32/gpio.h"}, p.Includes)
	assert.Equal(t, []codegen.Directive{
		codegen.Construct(id, "esp32::ESP32InternalGPIOPin"),
		codegen.Call(id, "set_pin", codegen.Int(4)),
		codegen.Call(id, "set_inverted", codegen.Bool(false)),
		codegen.Call(id, "set_flags", codegen.Enum("gpio::Flags::FLAG_OUTPUT")),
	}, p.Directives)

	id2 := Expression(p, reg, Pin{Number: 5}, platform.ESP32)
	assert.Equal(t, "esp32internalgpiopin_id_2", id2)
	assert.NoError(t, p.Check())
}

func TestUsage(t *testing.T) {
	u := NewUsage()
	assert.NoError(t, u.Claim(Pin{Number: 4, Path: "a"}))
	assert.NoError(t, u.Claim(Pin{Number: 5, Path: "b"}))
	assert.ErrorContains(t, u.Claim(Pin{Number: 4, Path: "c"}), "pin 4 is already used by 'a'")

	u = NewUsage()
	assert.NoError(t, u.Claim(Pin{Number: 4, Path: "a", AllowOtherUses: true}))
	assert.NoError(t, u.Claim(Pin{Number: 4, Path: "b", AllowOtherUses: true}))
}
