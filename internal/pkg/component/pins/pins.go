// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package pins

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/platform"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/registry"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

var GPIOPin = registry.NewType("GPIOPin")

// Pin is a configured GPIO output pin.
type Pin struct {
	Number         int
	Inverted       bool
	OpenDrain      bool
	Pullup         bool
	Pulldown       bool
	AllowOtherUses bool

	Path string
	Line int
}

// Flags returns the gpio::Flags expression for the pin mode.
func (p Pin) Flags() string {
	flags := []string{"gpio::Flags::FLAG_OUTPUT"}
	if p.OpenDrain {
		flags = append(flags, "gpio::Flags::FLAG_OPEN_DRAIN")
	}
	if p.Pullup {
		flags = append(flags, "gpio::Flags::FLAG_PULLUP")
	}
	if p.Pulldown {
		flags = append(flags, "gpio::Flags::FLAG_PULLDOWN")
	}
	return strings.Join(flags, " | ")
}

var gpioRe = regexp.MustCompile(`(?i)^(?:GPIO)?([0-9]+)$`)

func pinNumber(n *yaml.Node, path schema.Path, plat platform.Platform) (int, error) {
	s, err := schema.String(n, path)
	if err != nil {
		return 0, err
	}
	match := gpioRe.FindStringSubmatch(strings.TrimSpace(s))
	if match == nil {
		return 0, errors.WithLine(errors.ErrConfigInvalidValue(path.String(), fmt.Sprintf("Invalid pin number: %s", s)), n.Line)
	}
	v, _ := strconv.Atoi(match[1])
	if v > plat.MaxPin {
		return 0, errors.WithLine(errors.ErrConfigInvalidValue(path.String(),
			fmt.Sprintf("%s: Invalid pin number: %d (must be 0-%d)", strings.ToUpper(plat.Name), v, plat.MaxPin)), n.Line)
	}
	return v, nil
}

func decodeMode(p *Pin, n *yaml.Node, path schema.Path) error {
	n = schema.Resolve(n)
	if n.Kind == yaml.ScalarNode {
		mode, err := schema.OneOf(n, path, []string{"output", "output_open_drain", "input", "input_pullup", "input_pulldown"})
		if err != nil {
			return err
		}
		switch mode {
		case "output":
		case "output_open_drain":
			p.OpenDrain = true
		default:
			return errors.WithLine(errors.ErrConfigInvalidValue(path.String(), "This pin must be an output pin."), n.Line)
		}
		return nil
	}
	m, err := schema.NewMapping(n, path)
	if err != nil {
		return err
	}
	input, err := m.Bool("input", false)
	if err != nil {
		return err
	}
	output, err := m.Bool("output", true)
	if err != nil {
		return err
	}
	if input || !output {
		return errors.WithLine(errors.ErrConfigInvalidValue(path.String(), "This pin must be an output pin."), n.Line)
	}
	if p.OpenDrain, err = m.Bool("open_drain", false); err != nil {
		return err
	}
	if p.Pullup, err = m.Bool("pullup", false); err != nil {
		return err
	}
	if p.Pulldown, err = m.Bool("pulldown", false); err != nil {
		return err
	}
	return m.Unknown("pin.mode")
}

// DecodeOutputPin accepts a pin number, a GPIOn string or a pin mapping.
func DecodeOutputPin(n *yaml.Node, path schema.Path, plat platform.Platform) (*Pin, error) {
	n = schema.Resolve(n)
	if n == nil {
		return nil, errors.ErrConfigInvalidValue(path.String(), "expected a pin")
	}
	p := &Pin{Path: path.String(), Line: n.Line}
	if n.Kind == yaml.ScalarNode {
		v, err := pinNumber(n, path, plat)
		if err != nil {
			return nil, err
		}
		p.Number = v
		return p, nil
	}

	m, err := schema.NewMapping(n, path)
	if err != nil {
		return nil, err
	}
	num, err := m.Required("number")
	if err != nil {
		return nil, err
	}
	if p.Number, err = pinNumber(num, path.Key("number"), plat); err != nil {
		return nil, err
	}
	if p.Inverted, err = m.Bool("inverted", false); err != nil {
		return nil, err
	}
	if p.AllowOtherUses, err = m.Bool("allow_other_uses", false); err != nil {
		return nil, err
	}
	if mode, ok := m.Get("mode"); ok {
		if err := decodeMode(p, mode, path.Key("mode")); err != nil {
			return nil, err
		}
	}
	m.Consume("id")
	if err := m.Unknown("pin"); err != nil {
		return nil, err
	}
	if p.Pullup && p.Pulldown {
		return nil, errors.WithLine(errors.ErrConfigInvalidValue(path.String(), "Cannot have both pullup and pulldown enabled."), p.Line)
	}
	return p, nil
}

// Expression emits the construction of the platform pin object and returns
// its generated id.
func Expression(p *codegen.Program, reg *registry.Registry, pin Pin, plat platform.Platform) string {
	id := reg.GenerateID(registry.NewType(plat.PinClass, GPIOPin), pin.Path)
	p.Include(plat.PinHeader)
	p.Add(
		codegen.Construct(id, plat.PinClass),
		codegen.Call(id, "set_pin", codegen.Int(int64(pin.Number))),
		codegen.Call(id, "set_inverted", codegen.Bool(pin.Inverted)),
		codegen.Call(id, "set_flags", codegen.Enum(pin.Flags())),
	)
	return id
}

// Usage tracks which configuration claimed each pin.
type Usage struct {
	claims map[int]Pin
}

func NewUsage() *Usage {
	return &Usage{claims: map[int]Pin{}}
}

// Claim records pin for its owner. Sharing a pin is allowed only when every
// user sets allow_other_uses.
func (u *Usage) Claim(pin Pin) error {
	prev, ok := u.claims[pin.Number]
	if !ok {
		u.claims[pin.Number] = pin
		return nil
	}
	if prev.AllowOtherUses && pin.AllowOtherUses {
		slog.Debug(fmt.Sprintf("Pin %d shared by %s and %s", pin.Number, prev.Path, pin.Path))
		return nil
	}
	return errors.WithLine(errors.ErrConfigSharedPin(pin.Path, pin.Number, prev.Path), pin.Line)
}
