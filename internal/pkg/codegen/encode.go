// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatYaml    Format = "yaml"
	FormatMsgpack Format = "msgpack"
	FormatCpp     Format = "cpp"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatYaml, FormatMsgpack, FormatCpp:
		return f, nil
	}
	return "", fmt.Errorf("unknown output format: %s (select from yaml, msgpack, cpp)", s)
}

// Encode writes the program to w in the selected format.
func Encode(w io.Writer, p *Program, format Format) error {
	switch format {
	case FormatYaml:
		return WriteYaml(w, p)
	case FormatMsgpack:
		b, err := EncodeMsgpack(p)
		if err != nil {
			return err
		}
		_, err = w.Write(b)
		return err
	case FormatCpp:
		return Render(w, p)
	}
	return fmt.Errorf("unknown output format: %s", format)
}

func WriteYaml(w io.Writer, v any) error {
	var b bytes.Buffer
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("Error encoding yaml: %v", err)
	}
	enc.Close()
	if _, err := w.Write(b.Bytes()); err != nil {
		return fmt.Errorf("Error writing yaml: %v", err)
	}
	return nil
}

func EncodeMsgpack(p *Program) ([]byte, error) {
	b, err := msgpack.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("Error encoding msgpack: %v", err)
	}
	return b, nil
}

func DecodeMsgpack(b []byte) (*Program, error) {
	p := &Program{}
	if err := msgpack.Unmarshal(b, p); err != nil {
		return nil, fmt.Errorf("Error decoding msgpack: %v", err)
	}
	return p, nil
}
