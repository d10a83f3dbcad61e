// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package automation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/registry"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

func node(t *testing.T, doc string) *yaml.Node {
	var n yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(doc), &n))
	return &n
}

func TestRegisterAction(t *testing.T) {
	d, ok := LookupAction("delay")
	require.True(t, ok)
	assert.Equal(t, DelayAction, d.Type)
	assert.Contains(t, Actions(), "delay")

	assert.Panics(t, func() {
		RegisterAction("delay", DelayAction, nil)
	})
	_, ok = LookupAction("fly")
	assert.False(t, ok)
}

func TestMaybeSimpleID(t *testing.T) {
	type testCase struct {
		doc   string
		id    string
		error string
	}
	tests := map[string]testCase{
		"simple":     {doc: "tof", id: "tof"},
		"mapping":    {doc: "{id: tof}", id: "tof"},
		"missing id": {doc: "{}", error: "required key not provided: [id]"},
		"extra key":  {doc: "{id: tof, speed: 2}", error: "[speed] is an invalid option for [vl53l3cx.calibrate]"},
		"bad id":     {doc: "tof-1", error: "Invalid characters in ID 'tof-1'"},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			id, _, err := MaybeSimpleID(node(t, tc.doc), schema.Root("script", "0", "then", "0", "vl53l3cx.calibrate"), "vl53l3cx.calibrate")
			if tc.error != "" {
				assert.ErrorContains(t, err, tc.error)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.id, id)
		})
	}
}

func TestDecodeActions(t *testing.T) {
	items, err := DecodeActions(node(t, "[{delay: 5s}, {delay: 250ms}]"), schema.Root("then"))
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "delay", items[0].Name)
	assert.Equal(t, "then.1", items[1].Path)

	items, err = DecodeActions(node(t, "{delay: 1s}"), schema.Root("then"))
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = DecodeActions(node(t, "[{fly: away}]"), schema.Root("then"))
	assert.ErrorContains(t, err, "Unable to find action with the name 'fly'.")

	_, err = DecodeActions(node(t, "[{delay: 1s, fly: away}]"), schema.Root("then"))
	assert.ErrorContains(t, err, "Action must consist of exactly one key")

	_, err = DecodeActions(node(t, "[{delay: 10}]"), schema.Root("then"))
	assert.ErrorContains(t, err, "has no time *unit*")
}

func TestBuildActions(t *testing.T) {
	items, err := DecodeActions(node(t, "[{delay: 5s}, {delay: 1s}]"), schema.Root("then"))
	require.NoError(t, err)
	reg := registry.New()
	require.NoError(t, ResolveActions(reg, items))

	p := codegen.NewProgram("")
	ids, err := BuildActions(p, reg, items, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"delayaction_id", "delayaction_id_2"}, ids)
	assert.Equal(t, []codegen.Directive{
		codegen.ConstructTemplate("delayaction_id", "DelayAction", ""),
		codegen.RegisterComponent("delayaction_id"),
		codegen.Call("delayaction_id", "set_delay", codegen.Int(5000)),
	}, p.For("delayaction_id"))
	assert.NoError(t, p.Check())
}
