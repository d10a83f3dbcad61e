// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package handler

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/file/handler/firmware"
)

type Handler interface {
	Detect(file string) any
}

func ParseFile(file string) (Handler, any, error) {
	var fileType string = "application/octet-stream"
	slog.Debug(fmt.Sprintf("Parse file: %s ...", file))

	yamlExtensions := map[string]bool{
		".yaml": true,
		".yml":  true,
	}
	if yamlExtensions[strings.ToLower(filepath.Ext(file))] {
		fileType = "text/yaml"
	}
	slog.Debug(fmt.Sprintf("Filetype: %s", fileType))

	fileHandlers := map[string][]Handler{
		"text/yaml": {
			&firmware.YamlConfigHandler{},
		},
	}
	for _, h := range fileHandlers[fileType] {
		if data := h.Detect(file); data != nil {
			return h, data, nil
		}
	}
	slog.Debug("No handler located")
	return nil, nil, fmt.Errorf("unsupported file: %s", file)
}
