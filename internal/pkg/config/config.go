// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/automation"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/codegen"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/i2c"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/pins"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/platform"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/script"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/sensor"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/component/vl53l3cx"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/registry"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/substitute"
)

// Top-level keys which are accepted but have no bearing on the generated
// program.
var ignored = []string{"esphome", "logger", "api", "ota", "wifi", "captive_portal", "web_server", "mqtt", "time"}

type Options struct {
	// EnvFile is an optional .env file of substitutions.
	EnvFile string
}

// Config is a validated and resolved configuration. Ids, including the
// generated ones, are declared in Registry.
type Config struct {
	File     string
	Platform platform.Platform
	Buses    []i2c.BusConfig
	Sensors  []vl53l3cx.Config
	Scripts  []script.Config
	Registry *registry.Registry
}

// Load reads and builds the configuration file.
func Load(file string, opts Options) (*Config, error) {
	slog.Info(fmt.Sprintf("Load configuration: %s", file))
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return Parse(file, data, opts)
}

// Parse builds the configuration in two passes. The first validates every
// component and declares its id; the second resolves references and checks
// the rules which span several components.
func Parse(file string, data []byte, opts Options) (*Config, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.NewConfigError(err, file, "could not parse yaml")
	}
	if doc.Kind == 0 || schema.IsNull(&doc) {
		return nil, errors.ErrNoConfig
	}
	top, err := schema.NewMapping(&doc, schema.Path{})
	if err != nil {
		return nil, err
	}

	if err := substitutions(&doc, top, opts); err != nil {
		return nil, err
	}

	c := &Config{File: file, Registry: registry.New()}
	if err := c.declare(top); err != nil {
		return nil, err
	}
	if err := c.resolve(); err != nil {
		return nil, err
	}
	return c, nil
}

func substitutions(doc *yaml.Node, top *schema.Mapping, opts Options) error {
	s := substitute.New()
	if n, ok := top.Get(substitute.Key); ok {
		var err error
		if s, err = substitute.FromNode(n, schema.Root(substitute.Key)); err != nil {
			return err
		}
	}
	if opts.EnvFile != "" {
		if err := s.LoadEnv(opts.EnvFile); err != nil {
			return err
		}
	}
	return s.Apply(doc)
}

func selectPlatform(top *schema.Mapping) (platform.Platform, error) {
	found := []string{}
	for _, name := range platform.Names() {
		if top.Has(name) {
			top.Consume(name)
			found = append(found, name)
		}
	}
	switch len(found) {
	case 0:
		slog.Warn(fmt.Sprintf("No target platform (%s) configured, using %s", strings.Join(platform.Names(), ", "), platform.Default.Name))
		return platform.Default, nil
	case 1:
		p, _ := platform.Lookup(found[0])
		return p, nil
	}
	return platform.Platform{}, errors.ErrConfigInvalidValue("", fmt.Sprintf("only one target platform may be configured, found %s", strings.Join(found, ", ")))
}

func (c *Config) busType() *registry.Type {
	return registry.NewType(c.Platform.I2CBusClass, i2c.I2CBus)
}

func (c *Config) declare(top *schema.Mapping) error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	if c.Platform, err = selectPlatform(top); err != nil {
		return err
	}
	top.Consume(ignored...)

	if n, ok := top.Get("i2c"); ok {
		c.Buses, err = i2c.DecodeBuses(n, schema.Root("i2c"), c.Platform)
		collect(err)
		for _, b := range c.Buses {
			if b.ID != "" {
				collect(c.Registry.Declare(b.ID, c.busType(), b.Path, b.Line))
			}
		}
	}
	if n, ok := top.Get("sensor"); ok {
		collect(c.declareSensors(n))
	}
	if n, ok := top.Get("script"); ok {
		c.Scripts, err = script.DecodeList(n, schema.Root("script"))
		collect(err)
		for _, s := range c.Scripts {
			collect(c.Registry.Declare(s.ID, s.Type(), s.Path, s.Line))
		}
	}
	for _, k := range top.Unused() {
		if strings.HasPrefix(k, ".") {
			// Hidden keys hold anchors for merge keys.
			continue
		}
		// Components outside the scope of this tool are skipped, not rejected.
		slog.Warn(fmt.Sprintf("Component %s is not supported, skipping (line %d)", k, top.KeyLine(k)))
	}
	if len(errs) > 0 {
		return stderrors.Join(errs...)
	}

	// Generated ids are assigned once every explicit id is known.
	for i := range c.Buses {
		if c.Buses[i].ID == "" {
			c.Buses[i].ID = c.Registry.GenerateID(c.busType(), c.Buses[i].Path)
		}
	}
	for i := range c.Sensors {
		if c.Sensors[i].Sensor.ID == "" {
			c.Sensors[i].Sensor.ID = c.Registry.GenerateID(vl53l3cx.VL53L3CXSensor, c.Sensors[i].Path)
		}
	}
	return nil
}

func (c *Config) declareSensors(n *yaml.Node) error {
	n = schema.Resolve(n)
	items := []*yaml.Node{n}
	if n != nil && n.Kind == yaml.SequenceNode {
		items = n.Content
	}
	var errs []error
	for i, item := range items {
		path := schema.Root("sensor").Index(i)
		m, err := schema.NewMapping(item, path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		pn, err := m.Required("platform")
		if err != nil {
			errs = append(errs, err)
			continue
		}
		name, err := schema.String(pn, path.Key("platform"))
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if name != vl53l3cx.Platform {
			// Other platforms are declared so that references to them
			// report a type mismatch.
			slog.Warn(fmt.Sprintf("Sensor platform %s is not supported, skipping %s", name, path))
			if id, err := m.ID("id"); err == nil && id != "" {
				if err := c.Registry.Declare(id, sensor.Sensor, path.String(), m.Line()); err != nil {
					errs = append(errs, err)
				}
			}
			continue
		}
		s, err := vl53l3cx.Validate(item, path, c.Platform)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if s.ID() != "" {
			if err := c.Registry.Declare(s.ID(), vl53l3cx.VL53L3CXSensor, s.Path, s.Line); err != nil {
				errs = append(errs, err)
				continue
			}
		}
		c.Sensors = append(c.Sensors, s)
	}
	return stderrors.Join(errs...)
}

func (c *Config) resolve() error {
	var errs []error
	usage := pins.NewUsage()
	for _, b := range c.Buses {
		for _, pin := range b.Pins() {
			if err := usage.Claim(pin); err != nil {
				errs = append(errs, err)
			}
		}
	}
	for i := range c.Sensors {
		s := &c.Sensors[i]
		if err := s.Resolve(c.Registry); err != nil {
			errs = append(errs, err)
		}
		if s.EnablePin != nil {
			if err := usage.Claim(*s.EnablePin); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) == 0 {
		if err := vl53l3cx.CheckBus(c.Sensors); err != nil {
			errs = append(errs, err)
		}
	}
	for _, s := range c.Scripts {
		if err := automation.ResolveActions(c.Registry, s.Then); err != nil {
			errs = append(errs, err)
		}
	}
	return stderrors.Join(errs...)
}

// Generate emits the program: i2c buses, then sensors, then scripts, each in
// declaration order. Ids generated while emitting are declared in the
// registry, so Generate is called once per Config.
func (c *Config) Generate() (*codegen.Program, error) {
	p := codegen.NewProgram(c.File)
	for _, b := range c.Buses {
		i2c.BusToCode(p, b, c.Platform)
	}
	for _, s := range c.Sensors {
		vl53l3cx.ToCode(p, c.Registry, s, c.Platform)
	}
	for _, s := range c.Scripts {
		if err := script.ToCode(p, c.Registry, s); err != nil {
			return nil, err
		}
	}
	if err := p.Check(); err != nil {
		return nil, err
	}
	slog.Info(fmt.Sprintf("Generated %d directives (%d ids)", len(p.Directives), c.Registry.Len()))
	return p, nil
}
