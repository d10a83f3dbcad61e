// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package substitute

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"regexp"
	"slices"

	"github.com/elliotchance/orderedmap/v3"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/errors"
	"github.com/boschglobal/dse.esphome/extra/tools/vl53gen/internal/pkg/schema"
)

const Key = "substitutions"

var (
	varRe  = regexp.MustCompile(`\$(?:\{([A-Za-z0-9_]+)\}|([A-Za-z0-9_]+))`)
	nameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
)

// Substitutions maps variable names to their replacement text, in the order
// they were defined.
type Substitutions struct {
	vars *orderedmap.OrderedMap[string, string]
}

func New() *Substitutions {
	return &Substitutions{vars: orderedmap.NewOrderedMap[string, string]()}
}

func (s *Substitutions) Set(name string, value string) {
	s.vars.Set(name, value)
}

func (s *Substitutions) Get(name string) (string, bool) {
	return s.vars.Get(name)
}

func (s *Substitutions) Len() int {
	return s.vars.Len()
}

// FromNode reads the top-level substitutions mapping.
func FromNode(n *yaml.Node, path schema.Path) (*Substitutions, error) {
	s := New()
	m, err := schema.NewMapping(n, path)
	if err != nil {
		return nil, err
	}
	for _, k := range m.Keys() {
		if !nameRe.MatchString(k) {
			return nil, errors.WithLine(errors.ErrConfigInvalidValue(path.Key(k).String(),
				fmt.Sprintf("Substitution key '%s' must only contain the characters a-z, A-Z, 0-9 and underscore.", k)), m.KeyLine(k))
		}
		v, _ := m.Get(k)
		value, err := schema.String(v, path.Key(k))
		if err != nil {
			return nil, err
		}
		s.Set(k, value)
	}
	return s, nil
}

// LoadEnv merges the variables of a .env file; they take precedence over
// those defined in the configuration.
func (s *Substitutions) LoadEnv(file string) error {
	env, err := godotenv.Read(file)
	if err != nil {
		return fmt.Errorf("could not read env file %s: %w", file, err)
	}
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		slog.Debug(fmt.Sprintf("Substitution (env): %s=%s", k, env[k]))
		s.Set(k, env[k])
	}
	return nil
}

// Expand replaces every ${name} and $name in text. An unknown ${name} is an
// error; an unknown $name is left as written.
func (s *Substitutions) Expand(text string, path string) (string, error) {
	var err error
	out := varRe.ReplaceAllStringFunc(text, func(match string) string {
		sub := varRe.FindStringSubmatch(match)
		name, braced := sub[1], true
		if name == "" {
			name, braced = sub[2], false
		}
		v, ok := s.vars.Get(name)
		if !ok {
			if !braced {
				slog.Warn(fmt.Sprintf("Substitution '%s' not found, keeping %s as is (%s)", name, match, path))
			} else if err == nil {
				err = errors.ErrConfigSubstitution(path, name)
			}
			return match
		}
		return v
	})
	return out, err
}

// Apply substitutes the scalar values of the document rooted at n. The
// substitutions mapping itself is left untouched.
func (s *Substitutions) Apply(n *yaml.Node) error {
	return s.walk(n, schema.Path{})
}

func (s *Substitutions) walk(n *yaml.Node, path schema.Path) error {
	if n == nil {
		return nil
	}
	switch n.Kind {
	case yaml.DocumentNode:
		var errs []error
		for _, c := range n.Content {
			errs = append(errs, s.walk(c, path))
		}
		return stderrors.Join(errs...)
	case yaml.MappingNode:
		var errs []error
		for i := 0; i+1 < len(n.Content); i += 2 {
			key := n.Content[i].Value
			if len(path) == 0 && key == Key {
				continue
			}
			errs = append(errs, s.walk(n.Content[i+1], path.Key(key)))
		}
		return stderrors.Join(errs...)
	case yaml.SequenceNode:
		var errs []error
		for i, c := range n.Content {
			errs = append(errs, s.walk(c, path.Index(i)))
		}
		return stderrors.Join(errs...)
	case yaml.ScalarNode:
		if !varRe.MatchString(n.Value) {
			return nil
		}
		v, err := s.Expand(n.Value, path.String())
		if err != nil {
			return errors.WithLine(err, n.Line)
		}
		slog.Debug(fmt.Sprintf("Substitute: %s: %s -> %s", path, n.Value, v))
		n.Value = v
		if n.Style == 0 {
			// Plain scalars are resolved again from the substituted text.
			n.Tag = ""
		}
	}
	return nil
}
