// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package platform

import "slices"

// Platform selects the target specific classes and pin limits. It is chosen
// by the presence of a top-level esp32, esp8266 or rp2040 key.
type Platform struct {
	Name        string
	PinClass    string
	PinHeader   string
	I2CBusClass string
	MaxPin      int
	DefaultSDA  int
	DefaultSCL  int
}

var (
	ESP32 = Platform{
		Name:        "esp32",
		PinClass:    "esp32::ESP32InternalGPIOPin",
		PinHeader:   "esphome/components/esp32/gpio.h",
		I2CBusClass: "i2c::ArduinoI2CBus",
		MaxPin:      39,
		DefaultSDA:  21,
		DefaultSCL:  22,
	}
	ESP8266 = Platform{
		Name:        "esp8266",
		PinClass:    "esp8266::ESP8266GPIOPin",
		PinHeader:   "esphome/components/esp8266/gpio.h",
		I2CBusClass: "i2c::ArduinoI2CBus",
		MaxPin:      17,
		DefaultSDA:  4,
		DefaultSCL:  5,
	}
	RP2040 = Platform{
		Name:        "rp2040",
		PinClass:    "rp2040::RP2040GPIOPin",
		PinHeader:   "esphome/components/rp2040/gpio.h",
		I2CBusClass: "i2c::ArduinoI2CBus",
		MaxPin:      29,
		DefaultSDA:  4,
		DefaultSCL:  5,
	}

	Default = ESP32
)

var platforms = []Platform{ESP32, ESP8266, RP2040}

func Lookup(name string) (Platform, bool) {
	i := slices.IndexFunc(platforms, func(p Platform) bool { return p.Name == name })
	if i < 0 {
		return Platform{}, false
	}
	return platforms[i], true
}

func Names() []string {
	names := []string{}
	for _, p := range platforms {
		names = append(names, p.Name)
	}
	return names
}
