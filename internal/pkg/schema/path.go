// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"strconv"
	"strings"
)

// Path locates a value in the configuration tree, e.g. sensor.0.address.
type Path []string

func Root(elem ...string) Path {
	return Path(elem)
}

func (p Path) Key(k string) Path {
	np := make(Path, len(p), len(p)+1)
	copy(np, p)
	return append(np, k)
}

func (p Path) Index(i int) Path {
	return p.Key(strconv.Itoa(i))
}

func (p Path) String() string {
	return strings.Join(p, ".")
}
