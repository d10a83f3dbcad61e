// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	stderrors "errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
)

// Mapping is a YAML mapping node which records the keys consumed by each
// partial schema. Keys left unconsumed after all partial schemas have run are
// reported by Unknown().
type Mapping struct {
	node  *yaml.Node
	path  Path
	order []string
	keys  map[string]*yaml.Node
	lines map[string]int
	used  map[string]bool
}

// NewMapping wraps n, which must be a mapping node or null (an empty mapping).
func NewMapping(n *yaml.Node, path Path) (*Mapping, error) {
	n = Resolve(n)
	m := &Mapping{
		node:  n,
		path:  path,
		keys:  map[string]*yaml.Node{},
		lines: map[string]int{},
		used:  map[string]bool{},
	}
	if IsNull(n) {
		return m, nil
	}
	if n.Kind != yaml.MappingNode {
		return nil, errors.WithLine(errors.ErrConfigInvalidValue(path.String(), "expected a dictionary"), n.Line)
	}
	var merges []*yaml.Node
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if isMergeKey(k) {
			merges = append(merges, v)
			continue
		}
		key := k.Value
		if _, dup := m.keys[key]; dup {
			return nil, errors.WithLine(errors.ErrConfigInvalidValue(path.Key(key).String(), fmt.Sprintf("duplicate key '%s'", key)), k.Line)
		}
		m.add(key, v, k.Line)
	}
	for _, v := range merges {
		if err := m.merge(v); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func isMergeKey(k *yaml.Node) bool {
	return k.Kind == yaml.ScalarNode && (k.Tag == "!!merge" || (k.Value == "<<" && k.Style == 0))
}

func (m *Mapping) add(key string, v *yaml.Node, line int) {
	m.order = append(m.order, key)
	m.keys[key] = v
	m.lines[key] = line
}

// merge copies the keys of a merged mapping (or list of mappings) which are
// not set explicitly. Earlier mappings in a list take precedence.
func (m *Mapping) merge(v *yaml.Node) error {
	v = Resolve(v)
	sources := []*yaml.Node{v}
	if v != nil && v.Kind == yaml.SequenceNode {
		sources = v.Content
	}
	for _, src := range sources {
		if IsNull(src) {
			continue
		}
		if Resolve(src).Kind != yaml.MappingNode {
			return errors.WithLine(errors.ErrConfigInvalidValue(m.path.Key("<<").String(), "merge value must be a dictionary or a list of dictionaries"), Resolve(src).Line)
		}
		sm, err := NewMapping(src, m.path)
		if err != nil {
			return err
		}
		for _, key := range sm.order {
			if _, ok := m.keys[key]; !ok {
				m.add(key, sm.keys[key], sm.lines[key])
			}
		}
	}
	return nil
}

func (m *Mapping) Path() Path { return m.path }

func (m *Mapping) Line() int {
	if m.node == nil {
		return 0
	}
	return m.node.Line
}

// KeyLine returns the line of key, or the line of the mapping itself when the
// key is absent.
func (m *Mapping) KeyLine(key string) int {
	if l, ok := m.lines[key]; ok {
		return l
	}
	return m.Line()
}

func (m *Mapping) Keys() []string { return m.order }

func (m *Mapping) Has(key string) bool {
	_, ok := m.keys[key]
	return ok
}

// Get returns the value of key and marks it consumed.
func (m *Mapping) Get(key string) (*yaml.Node, bool) {
	v, ok := m.keys[key]
	if ok {
		m.used[key] = true
	}
	return v, ok
}

// Required returns the value of key, or an error naming the missing key.
func (m *Mapping) Required(key string) (*yaml.Node, error) {
	v, ok := m.Get(key)
	if !ok {
		return nil, errors.WithLine(errors.ErrConfigRequired(m.path.String(), key), m.Line())
	}
	return v, nil
}

// Consume marks keys as handled without decoding them.
func (m *Mapping) Consume(keys ...string) {
	for _, k := range keys {
		if m.Has(k) {
			m.used[k] = true
		}
	}
}

// Unused lists the keys which no partial schema consumed.
func (m *Mapping) Unused() []string {
	keys := []string{}
	for _, k := range m.order {
		if !m.used[k] {
			keys = append(keys, k)
		}
	}
	return keys
}

// Unknown reports every key which no partial schema consumed.
func (m *Mapping) Unknown(scope string) error {
	var errs []error
	for _, k := range m.Unused() {
		errs = append(errs, errors.WithLine(errors.ErrConfigInvalidOption(m.path.Key(k).String(), k, scope), m.lines[k]))
	}
	return stderrors.Join(errs...)
}

// The following decode an optional key, returning def when it is absent.

func (m *Mapping) String(key string, def string) (string, error) {
	n, ok := m.Get(key)
	if !ok {
		return def, nil
	}
	return String(n, m.path.Key(key))
}

func (m *Mapping) Int(key string, def int64) (int64, error) {
	n, ok := m.Get(key)
	if !ok {
		return def, nil
	}
	return Int(n, m.path.Key(key))
}

func (m *Mapping) Float(key string, def float64) (float64, error) {
	n, ok := m.Get(key)
	if !ok {
		return def, nil
	}
	return Float(n, m.path.Key(key))
}

func (m *Mapping) Bool(key string, def bool) (bool, error) {
	n, ok := m.Get(key)
	if !ok {
		return def, nil
	}
	return Bool(n, m.path.Key(key))
}

// ID decodes an optional id key; absent ids are returned as "".
func (m *Mapping) ID(key string) (string, error) {
	n, ok := m.Get(key)
	if !ok {
		return "", nil
	}
	return ID(n, m.path.Key(key))
}
