// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package automation

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/registry"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

const Header = "esphome/core/automation.h"

var ActionType = registry.NewType("Action")

// Action is the validated configuration of one scriptable action.
type Action interface {
	// Resolve checks the ids the action references. It runs after every
	// component has declared its ids.
	Resolve(reg *registry.Registry) error
	// ToCode emits the construction of the action object actionID.
	ToCode(p *codegen.Program, actionID string, templateArg string) error
}

// Factory validates the configuration value of an action.
type Factory func(n *yaml.Node, path schema.Path) (Action, error)

type Definition struct {
	Name    string
	Type    *registry.Type
	Factory Factory
}

var (
	regMu   sync.RWMutex
	actions = map[string]Definition{}
)

// RegisterAction makes an action available to scripts under name. It is
// called from package init functions; registering a name twice panics.
func RegisterAction(name string, t *registry.Type, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := actions[name]; exists {
		panic(fmt.Sprintf("duplicate action: %s", name))
	}
	actions[name] = Definition{Name: name, Type: t, Factory: f}
}

func LookupAction(name string) (Definition, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	d, ok := actions[name]
	return d, ok
}

// Actions lists the registered action names, sorted.
func Actions() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	names := make([]string, 0, len(actions))
	for name := range actions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Item is one entry of an action list.
type Item struct {
	Name   string
	Type   *registry.Type
	Action Action
	Path   string
	Line   int
}

func decodeItem(n *yaml.Node, path schema.Path) (*Item, error) {
	n = schema.Resolve(n)
	if n == nil || n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		line := 0
		if n != nil {
			line = n.Line
		}
		return nil, errors.WithLine(errors.ErrConfigInvalidValue(path.String(), "Action must consist of exactly one key"), line)
	}
	key, value := n.Content[0], n.Content[1]
	def, ok := LookupAction(key.Value)
	if !ok {
		return nil, errors.WithLine(errors.ErrConfigUnknownAction(path.String(), key.Value), key.Line)
	}
	a, err := def.Factory(value, path.Key(key.Value))
	if err != nil {
		return nil, err
	}
	return &Item{Name: def.Name, Type: def.Type, Action: a, Path: path.String(), Line: key.Line}, nil
}

// DecodeActions accepts a list of actions or a single action mapping.
func DecodeActions(n *yaml.Node, path schema.Path) ([]*Item, error) {
	n = schema.Resolve(n)
	if n != nil && n.Kind == yaml.SequenceNode {
		var errs []error
		items := []*Item{}
		for i, c := range n.Content {
			item, err := decodeItem(c, path.Index(i))
			if err != nil {
				errs = append(errs, err)
				continue
			}
			items = append(items, item)
		}
		return items, stderrors.Join(errs...)
	}
	item, err := decodeItem(n, path.Index(0))
	if err != nil {
		return nil, err
	}
	return []*Item{item}, nil
}

// MaybeSimpleID decodes an action value which is either a bare id or a
// mapping with a required id key.
func MaybeSimpleID(n *yaml.Node, path schema.Path, scope string) (string, int, error) {
	n = schema.Resolve(n)
	if n != nil && n.Kind == yaml.ScalarNode && !schema.IsNull(n) {
		id, err := schema.ID(n, path.Key("id"))
		return id, n.Line, err
	}
	m, err := schema.NewMapping(n, path)
	if err != nil {
		return "", 0, err
	}
	v, err := m.Required("id")
	if err != nil {
		return "", 0, err
	}
	id, err := schema.ID(v, path.Key("id"))
	if err != nil {
		return "", 0, err
	}
	if err := m.Unknown(scope); err != nil {
		return "", 0, err
	}
	return id, schema.Resolve(v).Line, nil
}

func ResolveActions(reg *registry.Registry, items []*Item) error {
	var errs []error
	for _, item := range items {
		if err := item.Action.Resolve(reg); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// BuildActions emits every action with a generated id and returns the ids in
// list order.
func BuildActions(p *codegen.Program, reg *registry.Registry, items []*Item, templateArg string) ([]string, error) {
	p.Include(Header)
	ids := []string{}
	for _, item := range items {
		id := reg.GenerateID(item.Type, item.Path)
		slog.Debug(fmt.Sprintf("Action: %s -> %s (%s)", item.Name, id, item.Type))
		if err := item.Action.ToCode(p, id, templateArg); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
