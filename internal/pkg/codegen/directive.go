// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

type Kind string

const (
	KindConstruct         Kind = "construct"
	KindRegisterComponent Kind = "register_component"
	KindRegisterSensor    Kind = "register_sensor"
	KindRegisterI2CDevice Kind = "register_i2c_device"
	KindCall              Kind = "call"
)

type ArgKind string

const (
	ArgInt    ArgKind = "int"
	ArgFloat  ArgKind = "float"
	ArgBool   ArgKind = "bool"
	ArgString ArgKind = "string"
	ArgRef    ArgKind = "ref"
	ArgEnum   ArgKind = "enum"
	ArgList   ArgKind = "list"
)

// Arg is a directive argument. Value holds the literal text; Name is set
// for the named arguments of the register_* directives.
type Arg struct {
	Name  string  `yaml:"name,omitempty" msgpack:"name,omitempty"`
	Kind  ArgKind `yaml:"kind" msgpack:"kind"`
	Value string  `yaml:"value,omitempty" msgpack:"value,omitempty"`
	Items []Arg   `yaml:"items,omitempty" msgpack:"items,omitempty"`
}

func Int(v int64) Arg { return Arg{Kind: ArgInt, Value: strconv.FormatInt(v, 10)} }

func Hex(v uint8) Arg { return Arg{Kind: ArgInt, Value: fmt.Sprintf("0x%02X", v)} }

func Float(v float64) Arg {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return Arg{Kind: ArgFloat, Value: s}
}

func Bool(v bool) Arg { return Arg{Kind: ArgBool, Value: strconv.FormatBool(v)} }

func Str(v string) Arg { return Arg{Kind: ArgString, Value: v} }

func Ref(id string) Arg { return Arg{Kind: ArgRef, Value: id} }

func Enum(literal string) Arg { return Arg{Kind: ArgEnum, Value: literal} }

func List(items ...Arg) Arg { return Arg{Kind: ArgList, Items: items} }

func Named(name string, a Arg) Arg {
	a.Name = name
	return a
}

// Directive is one step of the generated program. Directives operate on the
// instance named by ID, which a construct directive must have created first.
type Directive struct {
	Kind     Kind   `yaml:"kind" msgpack:"kind"`
	ID       string `yaml:"id" msgpack:"id"`
	Type     string `yaml:"type,omitempty" msgpack:"type,omitempty"`
	Template string `yaml:"template,omitempty" msgpack:"template,omitempty"`
	Method   string `yaml:"method,omitempty" msgpack:"method,omitempty"`
	Args     []Arg  `yaml:"args,omitempty" msgpack:"args,omitempty"`
}

func Construct(id string, typ string, args ...Arg) Directive {
	return Directive{Kind: KindConstruct, ID: id, Type: typ, Args: args}
}

// ConstructTemplate constructs a class template instance; tmpl is the text
// between the angle brackets and may be empty.
func ConstructTemplate(id string, typ string, tmpl string, args ...Arg) Directive {
	return Directive{Kind: KindConstruct, ID: id, Type: typ, Template: "<" + tmpl + ">", Args: args}
}

func Call(id string, method string, args ...Arg) Directive {
	return Directive{Kind: KindCall, ID: id, Method: method, Args: args}
}

// RegisterComponent accepts the named args update_interval and
// setup_priority.
func RegisterComponent(id string, args ...Arg) Directive {
	return Directive{Kind: KindRegisterComponent, ID: id, Args: args}
}

func RegisterSensor(id string) Directive {
	return Directive{Kind: KindRegisterSensor, ID: id}
}

func RegisterI2CDevice(id string, bus string, addr uint8) Directive {
	return Directive{
		Kind: KindRegisterI2CDevice,
		ID:   id,
		Args: []Arg{Named("bus", Ref(bus)), Named("address", Hex(addr))},
	}
}

// Arg returns the named argument, if present.
func (d Directive) Arg(name string) (Arg, bool) {
	for _, a := range d.Args {
		if a.Name == name {
			return a, true
		}
	}
	return Arg{}, false
}

func (d Directive) String() string {
	switch d.Kind {
	case KindConstruct:
		return fmt.Sprintf("%s %s = %s%s", d.Kind, d.ID, d.Type, d.Template)
	case KindCall:
		return fmt.Sprintf("%s %s.%s", d.Kind, d.ID, d.Method)
	default:
		return fmt.Sprintf("%s %s", d.Kind, d.ID)
	}
}

// Program is the ordered list of directives generated from one
// configuration, handed to an external code generator.
type Program struct {
	Source     string      `yaml:"source,omitempty" msgpack:"source,omitempty"`
	Includes   []string    `yaml:"includes,omitempty" msgpack:"includes,omitempty"`
	Directives []Directive `yaml:"directives" msgpack:"directives"`
}

func NewProgram(source string) *Program {
	return &Program{Source: source, Directives: []Directive{}}
}

func (p *Program) Add(d ...Directive) {
	p.Directives = append(p.Directives, d...)
}

func (p *Program) Include(header string) {
	if !slices.Contains(p.Includes, header) {
		p.Includes = append(p.Includes, header)
	}
}

// For returns the directives which operate on id, in program order.
func (p *Program) For(id string) []Directive {
	ds := []Directive{}
	for _, d := range p.Directives {
		if d.ID == id {
			ds = append(ds, d)
		}
	}
	return ds
}

func refs(args []Arg, fn func(id string)) {
	for _, a := range args {
		if a.Kind == ArgRef {
			fn(a.Value)
		}
		refs(a.Items, fn)
	}
}

// Check verifies that every instance is constructed exactly once and before
// any directive uses or references it.
func (p *Program) Check() error {
	constructed := map[string]bool{}
	for i, d := range p.Directives {
		if d.Kind == KindConstruct {
			if constructed[d.ID] {
				return fmt.Errorf("directive %d: %s constructed twice", i, d.ID)
			}
		} else if !constructed[d.ID] {
			return fmt.Errorf("directive %d (%s): %s used before construction", i, d, d.ID)
		}
		var err error
		refs(d.Args, func(id string) {
			if err == nil && !constructed[id] {
				err = fmt.Errorf("directive %d (%s): reference to %s before construction", i, d, id)
			}
		})
		if err != nil {
			return err
		}
		if d.Kind == KindConstruct {
			constructed[d.ID] = true
		}
	}
	return nil
}
