// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
)

// Resolve follows alias and document nodes to the value they stand for.
func Resolve(n *yaml.Node) *yaml.Node {
	for n != nil {
		switch n.Kind {
		case yaml.AliasNode:
			n = n.Alias
		case yaml.DocumentNode:
			if len(n.Content) == 0 {
				return nil
			}
			n = n.Content[0]
		default:
			return n
		}
	}
	return nil
}

func IsNull(n *yaml.Node) bool {
	n = Resolve(n)
	return n == nil || (n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null")
}

func invalid(n *yaml.Node, path Path, msg string) error {
	line := 0
	if n != nil {
		line = n.Line
	}
	return errors.WithLine(errors.ErrConfigInvalidValue(path.String(), msg), line)
}

func scalar(n *yaml.Node, path Path, what string) (*yaml.Node, error) {
	n = Resolve(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return nil, invalid(n, path, fmt.Sprintf("%s value cannot be dictionary or list.", what))
	}
	return n, nil
}

func String(n *yaml.Node, path Path) (string, error) {
	s, err := scalar(n, path, "string")
	if err != nil {
		return "", err
	}
	if s.ShortTag() == "!!null" {
		return "", nil
	}
	return s.Value, nil
}

func Int(n *yaml.Node, path Path) (int64, error) {
	s, err := scalar(n, path, "integer")
	if err != nil {
		return 0, err
	}
	switch s.ShortTag() {
	case "!!int", "!!str":
		v, err := strconv.ParseInt(strings.TrimSpace(s.Value), 0, 64)
		if err != nil {
			return 0, invalid(s, path, fmt.Sprintf("Expected integer, but cannot parse %s as an integer", s.Value))
		}
		return v, nil
	case "!!float":
		f, err := strconv.ParseFloat(s.Value, 64)
		if err == nil && f == math.Trunc(f) {
			return int64(f), nil
		}
	}
	return 0, invalid(s, path, fmt.Sprintf("Expected integer, but cannot parse %s as an integer", s.Value))
}

func Float(n *yaml.Node, path Path) (float64, error) {
	s, err := scalar(n, path, "float")
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s.Value), 64)
	if err != nil {
		if i, err := strconv.ParseInt(strings.TrimSpace(s.Value), 0, 64); err == nil {
			return float64(i), nil
		}
		return 0, invalid(s, path, fmt.Sprintf("Invalid floating point value %s", s.Value))
	}
	return v, nil
}

func Bool(n *yaml.Node, path Path) (bool, error) {
	s, err := scalar(n, path, "boolean")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(s.Value) {
	case "true", "yes", "on", "enable":
		return true, nil
	case "false", "no", "off", "disable":
		return false, nil
	}
	return false, invalid(s, path, fmt.Sprintf("Expected boolean value, but cannot convert %s to a boolean. Please use 'true' or 'false'", s.Value))
}

func quoteOptions(options []string) string {
	q := make([]string, len(options))
	for i, o := range options {
		q[i] = "'" + o + "'"
	}
	return strings.Join(q, ", ")
}

// Enum matches a string exactly against options, after folding spaces to
// underscores.
func Enum(n *yaml.Node, path Path, options []string) (string, error) {
	v, err := String(n, path)
	if err != nil {
		return "", err
	}
	v = strings.ReplaceAll(v, " ", "_")
	for _, o := range options {
		if v == o {
			return o, nil
		}
	}
	return "", invalid(Resolve(n), path, fmt.Sprintf("Unknown value '%s', valid options are %s.", v, quoteOptions(options)))
}

// OneOf is the case insensitive variant of Enum; options must be lower case.
func OneOf(n *yaml.Node, path Path, options []string) (string, error) {
	v, err := String(n, path)
	if err != nil {
		return "", err
	}
	v = strings.ReplaceAll(strings.ToLower(v), " ", "_")
	for _, o := range options {
		if v == o {
			return o, nil
		}
	}
	return "", invalid(Resolve(n), path, fmt.Sprintf("Unknown value '%s', valid options are %s.", v, quoteOptions(options)))
}

var idCharRe = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

func ID(n *yaml.Node, path Path) (string, error) {
	v, err := String(n, path)
	if err != nil {
		return "", err
	}
	switch {
	case v == "":
		return "", invalid(Resolve(n), path, "ID must not be empty")
	case v[0] >= '0' && v[0] <= '9':
		return "", invalid(Resolve(n), path, "First character in ID cannot be a digit.")
	case !idCharRe.MatchString(v):
		return "", invalid(Resolve(n), path, fmt.Sprintf("Invalid characters in ID '%s'. IDs may only contain the characters a-z, A-Z, 0-9 and underscore.", v))
	}
	return v, nil
}

var frequencyRe = regexp.MustCompile(`(?i)^([0-9]*\.?[0-9]+)\s*(hz|khz|mhz)?$`)

// Frequency returns a value in Hz; "400kHz", "1MHz" and plain numbers are
// accepted.
func Frequency(n *yaml.Node, path Path) (float64, error) {
	v, err := String(n, path)
	if err != nil {
		return 0, err
	}
	match := frequencyRe.FindStringSubmatch(strings.TrimSpace(v))
	if match == nil {
		return 0, invalid(Resolve(n), path, fmt.Sprintf("Invalid frequency %s", v))
	}
	f, _ := strconv.ParseFloat(match[1], 64)
	switch strings.ToLower(match[2]) {
	case "khz":
		f *= 1e3
	case "mhz":
		f *= 1e6
	}
	return f, nil
}
