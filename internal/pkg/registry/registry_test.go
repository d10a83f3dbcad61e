// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var (
	component = NewType("Component")
	polling   = NewType("PollingComponent", component)
	sensor    = NewType("sensor::Sensor")
	tof       = NewType("vl53l3cx::VL53L3CXSensor", sensor, polling)
	bus       = NewType("i2c::I2CBus")
)

func TestTypeInherits(t *testing.T) {
	assert.True(t, tof.Inherits(tof))
	assert.True(t, tof.Inherits(sensor))
	assert.True(t, tof.Inherits(component))
	assert.False(t, sensor.Inherits(tof))
	assert.False(t, bus.Inherits(component))
	assert.False(t, (*Type)(nil).Inherits(sensor))
}

func TestDeclareResolve(t *testing.T) {
	r := New()
	assert.NoError(t, r.Declare("tof", tof, "sensor.0", 3))
	assert.NoError(t, r.Declare("other", sensor, "sensor.1", 9))

	e, err := r.Resolve("tof", tof, "script.0.then.0", 20)
	assert.NoError(t, err)
	assert.Equal(t, "sensor.0", e.Path)

	_, err = r.Resolve("other", tof, "script.0.then.1", 21)
	assert.ErrorContains(t, err, "ID 'other' of type sensor::Sensor doesn't inherit from vl53l3cx::VL53L3CXSensor")

	_, err = r.Resolve("nope", tof, "script.0.then.2", 22)
	assert.ErrorContains(t, err, "Couldn't find ID 'nope'")
	assert.ErrorContains(t, err, "(line 22)")

	err = r.Declare("tof", sensor, "sensor.2", 30)
	assert.ErrorContains(t, err, "ID tof redefined!")
}

func TestGenerateID(t *testing.T) {
	r := New()
	assert.NoError(t, r.Declare("vl53l3cxsensor_id", tof, "sensor.0", 1))
	assert.Equal(t, "vl53l3cxsensor_id_2", r.GenerateID(tof, "sensor.1"))
	assert.Equal(t, "vl53l3cxsensor_id_3", r.GenerateID(tof, "sensor.2"))
	assert.Equal(t, "i2cbus_id", r.GenerateID(bus, "i2c.0"))
	assert.Equal(t, "delayaction_id", r.GenerateID(NewType("DelayAction<>"), "script.0.then.0"))
	assert.Equal(t, []string{"vl53l3cxsensor_id", "vl53l3cxsensor_id_2", "vl53l3cxsensor_id_3", "i2cbus_id", "delayaction_id"}, r.IDs())
	assert.Equal(t, []string{"vl53l3cxsensor_id", "vl53l3cxsensor_id_2", "vl53l3cxsensor_id_3"}, r.OfType(sensor))
	assert.Equal(t, 5, r.Len())
}
