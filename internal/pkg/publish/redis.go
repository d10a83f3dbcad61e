// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package publish

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"

	red "github.com/redis/go-redis/v9"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
)

const (
	DefaultKey = "vl53gen.program"
	indicator  = "VLPG"
)

// RedisPublisher pushes encoded programs onto a Redis list, where an external
// code generator pops them.
type RedisPublisher struct {
	Url string
	Key string

	ctx     context.Context
	client  *red.Client
	version string
}

func (r *RedisPublisher) Connect(ctx context.Context) error {
	slog.Info(fmt.Sprintf("Redis: Connect: %s", r.Url))
	if r.Key == "" {
		r.Key = DefaultKey
	}
	r.ctx = ctx
	opt, err := red.ParseURL(r.Url)
	if err != nil {
		return err
	}
	r.client = red.NewClient(opt)

	c := r.client.InfoMap(r.ctx, "server")
	if c.Err() != nil {
		r.client.Close()
		r.client = nil
		return c.Err()
	}
	r.version = c.Item("Server", "redis_version")
	slog.Info(fmt.Sprintf("Redis: Version: %s", r.version))
	return nil
}

func (r *RedisPublisher) Close() {
	slog.Info("Redis: Close:")
	if r.client != nil {
		r.client.Close()
		r.client = nil
	}
}

// EncodeMessage frames the msgpack encoded program with its source file.
func EncodeMessage(p *codegen.Program) ([]byte, error) {
	prog, err := codegen.EncodeMsgpack(p)
	if err != nil {
		return nil, err
	}
	buf := new(bytes.Buffer)
	enc := msgpack.NewEncoder(buf)
	if err := enc.EncodeString(indicator); err != nil {
		return nil, err
	}
	if err := enc.EncodeString(p.Source); err != nil {
		return nil, err
	}
	if err := enc.EncodeBytes(prog); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func DecodeMessage(b []byte) (string, *codegen.Program, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	ind, err := dec.DecodeString()
	if err != nil {
		return "", nil, err
	}
	if ind != indicator {
		return "", nil, fmt.Errorf("unexpected message indicator: %s", ind)
	}
	source, err := dec.DecodeString()
	if err != nil {
		return "", nil, err
	}
	prog, err := dec.DecodeBytes()
	if err != nil {
		return "", nil, err
	}
	p, err := codegen.DecodeMsgpack(prog)
	return source, p, err
}

func (r *RedisPublisher) Publish(p *codegen.Program) error {
	if r.client == nil {
		return fmt.Errorf("redis publisher not connected")
	}
	d, err := EncodeMessage(p)
	if err != nil {
		return err
	}
	slog.Debug(fmt.Sprintf("Redis: LPUSH -> %s (%d bytes)", r.Key, len(d)))
	return r.client.LPush(r.ctx, r.Key, d).Err()
}
