// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"fmt"
	"strings"
)

var (
	ErrNoConfig = fmt.Errorf("no configuration documents")
	ErrNoFiles  = fmt.Errorf("no configuration files specified")

	ErrConfigRequiresEnablePin = func(path string) error {
		return NewConfigError(nil, path, "Address other than 0x29 requires enable_pin definition to allow sensor re-addressing. "+
			"Also if you have more than one VL53 device on the same i2c bus, then all VL53 devices must have enable_pin defined.")
	}
	ErrConfigMultiDeviceEnablePin = func(path string, bus string) error {
		return NewConfigError(nil, path, fmt.Sprintf("more than one VL53 device on i2c bus '%s', all VL53 devices on this bus must have enable_pin defined", bus))
	}
	ErrConfigDuplicateAddress = func(path string, addr uint8, bus string, other string) error {
		return NewConfigError(nil, path, fmt.Sprintf("address 0x%02X on i2c bus '%s' is already used by '%s'", addr, bus, other))
	}
	ErrConfigSharedPin = func(path string, pin int, other string) error {
		return NewConfigError(nil, path, fmt.Sprintf("pin %d is already used by '%s' (set allow_other_uses on both to share it)", pin, other))
	}
	ErrConfigRequired = func(path string, key string) error {
		return NewConfigError(nil, path, fmt.Sprintf("required key not provided: [%s]", key))
	}
	ErrConfigInvalidOption = func(path string, key string, scope string) error {
		return NewConfigError(nil, path, fmt.Sprintf("[%s] is an invalid option for [%s]. Please check the indentation.", key, scope))
	}
	ErrConfigInvalidValue = func(path string, msg string) error { return NewConfigError(nil, path, msg) }
	ErrConfigIDNotFound   = func(path string, id string) error {
		return NewConfigError(nil, path, fmt.Sprintf("Couldn't find ID '%s'. Please check you have defined an ID with that name in your configuration.", id))
	}
	ErrConfigIDRedefined = func(path string, id string) error {
		return NewConfigError(nil, path, fmt.Sprintf("ID %s redefined!", id))
	}
	ErrConfigIDType = func(path string, id string, have string, want string) error {
		return NewConfigError(nil, path, fmt.Sprintf("ID '%s' of type %s doesn't inherit from %s. Please double check your ID is pointing to the correct value.", id, have, want))
	}
	ErrConfigUnknownAction = func(path string, name string) error {
		return NewConfigError(nil, path, fmt.Sprintf("Unable to find action with the name '%s'.", name))
	}
	ErrConfigMissingComponent = func(path string, component string, requires string) error {
		return NewConfigError(nil, path, fmt.Sprintf("Component %s requires component %s.", component, requires))
	}
	ErrConfigSubstitution = func(path string, name string) error {
		return NewConfigError(nil, path, fmt.Sprintf("Substitution '%s' not found.", name))
	}
)

// ConfigError is raised while validating or resolving a configuration. It is
// always fatal to the build step.
type ConfigError struct {
	path string
	line int
	msg  string
	err  error
}

func NewConfigError(e error, path string, msg string) *ConfigError {
	return &ConfigError{path: path, msg: msg, err: e}
}

// At records the source line the error refers to (1 based, 0 is unknown).
func (e *ConfigError) At(line int) *ConfigError {
	e.line = line
	return e
}

func (e *ConfigError) Path() string { return e.path }
func (e *ConfigError) Line() int    { return e.line }
func (e *ConfigError) Msg() string  { return e.msg }

func (e *ConfigError) Unwrap() error { return e.err }

func (e *ConfigError) Error() string {
	var b strings.Builder
	b.WriteString("config: ")
	if e.path != "" {
		b.WriteString(e.path)
		b.WriteString(": ")
	}
	b.WriteString(fmt.Sprintf("%q", e.msg))
	if e.line > 0 {
		b.WriteString(fmt.Sprintf(" (line %d)", e.line))
	}
	if e.err != nil {
		b.WriteString(fmt.Sprintf(" - %v", e.err))
	}
	return b.String()
}

// WithLine attaches a source line to err when it is a ConfigError without
// one. Other errors are returned unchanged.
func WithLine(err error, line int) error {
	if ce, ok := err.(*ConfigError); ok && ce.line == 0 {
		ce.line = line
	}
	return err
}
