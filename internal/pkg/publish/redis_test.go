// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
)

func program() *codegen.Program {
	p := codegen.NewProgram("shelf.yaml")
	p.Add(
		codegen.Construct("tof", "vl53l3cx::VL53L3CXSensor"),
		codegen.RegisterComponent("tof", codegen.Named("update_interval", codegen.Int(500))),
	)
	return p
}

func TestMessage(t *testing.T) {
	b, err := EncodeMessage(program())
	require.NoError(t, err)
	source, p, err := DecodeMessage(b)
	require.NoError(t, err)
	assert.Equal(t, "shelf.yaml", source)
	assert.Equal(t, program(), p)

	_, _, err = DecodeMessage([]byte{0xa4, 'X', 'X', 'X', 'X'})
	assert.ErrorContains(t, err, "unexpected message indicator: XXXX")
}

func TestConnectInvalidUrl(t *testing.T) {
	r := RedisPublisher{Url: "http://localhost:6379"}
	assert.Error(t, r.Connect(context.Background()))
	assert.ErrorContains(t, r.Publish(program()), "not connected")
}

func TestRedisPublish(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()
	r := RedisPublisher{Url: url, Key: "vl53gen.test"}
	require.NoError(t, r.Connect(ctx))
	defer r.Close()
	r.client.Del(ctx, r.Key)

	require.NoError(t, r.Publish(program()))
	c := r.client.RPop(ctx, r.Key)
	require.NoError(t, c.Err())
	source, p, err := DecodeMessage([]byte(c.Val()))
	require.NoError(t, err)
	assert.Equal(t, "shelf.yaml", source)
	assert.Equal(t, program(), p)
}
