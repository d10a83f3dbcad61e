// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package firmware

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Keys which identify a firmware configuration document.
var markers = []string{"esphome", "esp32", "esp8266", "rp2040", "i2c", "sensor"}

// ConfigDoc is a firmware configuration file. Data holds the file content
// for the configuration builder.
type ConfigDoc struct {
	File string
	Data []byte
	Keys []string
}

type YamlConfigHandler struct{}

func (h *YamlConfigHandler) Detect(file string) any {
	data, err := os.ReadFile(file)
	if err != nil {
		slog.Debug(fmt.Sprintf("Read error; file=%s (%s)", file, err.Error()))
		return nil
	}
	var top map[string]yaml.Node
	if err := yaml.Unmarshal(data, &top); err != nil {
		slog.Debug(fmt.Sprintf("Decode error; file=%s (%s)", file, err.Error()))
		return nil
	}
	doc := &ConfigDoc{File: file, Data: data}
	for _, k := range markers {
		if _, ok := top[k]; ok {
			doc.Keys = append(doc.Keys, k)
		}
	}
	if len(doc.Keys) == 0 {
		return nil
	}
	slog.Debug(fmt.Sprintf("Handler: yaml/firmware keys=%v", doc.Keys))
	return doc
}
