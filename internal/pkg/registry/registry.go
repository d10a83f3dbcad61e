// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/elliotchance/orderedmap/v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
)

// Type is a firmware class. Parents model the class hierarchy so a reference
// can require e.g. any sensor::Sensor.
type Type struct {
	Name    string
	Parents []*Type
}

func NewType(name string, parents ...*Type) *Type {
	return &Type{Name: name, Parents: parents}
}

// Inherits is true when t is o, or o is one of its ancestors.
func (t *Type) Inherits(o *Type) bool {
	if t == nil || o == nil {
		return false
	}
	if t == o {
		return true
	}
	for _, p := range t.Parents {
		if p.Inherits(o) {
			return true
		}
	}
	return false
}

func (t *Type) String() string { return t.Name }

// Entry is one declared instance.
type Entry struct {
	ID        string
	Type      *Type
	Path      string
	Line      int
	Generated bool
}

// Registry holds declared instances by id, in declaration order. Declarations
// all happen before any reference is resolved.
type Registry struct {
	entries *orderedmap.OrderedMap[string, Entry]
}

func New() *Registry {
	return &Registry{entries: orderedmap.NewOrderedMap[string, Entry]()}
}

func (r *Registry) Declare(id string, t *Type, path string, line int) error {
	if prev, ok := r.entries.Get(id); ok {
		slog.Debug(fmt.Sprintf("ID %s first declared at %s (line %d)", id, prev.Path, prev.Line))
		return errors.WithLine(errors.ErrConfigIDRedefined(path, id), line)
	}
	r.entries.Set(id, Entry{ID: id, Type: t, Path: path, Line: line})
	slog.Debug(fmt.Sprintf("Declare: id=%s, type=%s (%s)", id, t, path))
	return nil
}

// GenerateID declares a new instance of t with an id derived from the class
// name (vl53l3cx::VL53L3CXSensor -> vl53l3cxsensor_id, vl53l3cxsensor_id_2 ...).
func (r *Registry) GenerateID(t *Type, path string) string {
	name := t.Name
	if i := strings.LastIndex(name, "::"); i >= 0 {
		name = name[i+2:]
	}
	if i := strings.Index(name, "<"); i >= 0 {
		name = name[:i]
	}
	base := strings.ToLower(name) + "_id"
	id := base
	for n := 2; r.entries.Has(id); n++ {
		id = fmt.Sprintf("%s_%d", base, n)
	}
	r.entries.Set(id, Entry{ID: id, Type: t, Path: path, Generated: true})
	slog.Debug(fmt.Sprintf("Generate: id=%s, type=%s (%s)", id, t, path))
	return id
}

// Resolve looks up id and checks that it is an instance of want.
func (r *Registry) Resolve(id string, want *Type, path string, line int) (Entry, error) {
	e, ok := r.entries.Get(id)
	if !ok {
		return Entry{}, errors.WithLine(errors.ErrConfigIDNotFound(path, id), line)
	}
	if want != nil && !e.Type.Inherits(want) {
		return Entry{}, errors.WithLine(errors.ErrConfigIDType(path, id, e.Type.Name, want.Name), line)
	}
	return e, nil
}

// OfType lists the ids of every instance of t, in declaration order.
func (r *Registry) OfType(t *Type) []string {
	ids := []string{}
	for id, e := range r.entries.AllFromFront() {
		if e.Type.Inherits(t) {
			ids = append(ids, id)
		}
	}
	return ids
}

func (r *Registry) IDs() []string {
	return slices.Collect(r.entries.Keys())
}

func (r *Registry) Len() int {
	return r.entries.Len()
}
