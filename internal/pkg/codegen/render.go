// Copyright 2026 Robert Bosch GmbH
//
// SPDX-License-Identifier: Apache-2.0

package codegen

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

func renderArg(a Arg) string {
	switch a.Kind {
	case ArgString:
		return strconv.Quote(a.Value)
	case ArgFloat:
		return a.Value + "f"
	case ArgList:
		items := make([]string, len(a.Items))
		for i, item := range a.Items {
			items[i] = renderArg(item)
		}
		return "{" + strings.Join(items, ", ") + "}"
	default:
		return a.Value
	}
}

func renderArgs(args []Arg) string {
	s := make([]string, 0, len(args))
	for _, a := range args {
		s = append(s, renderArg(a))
	}
	return strings.Join(s, ", ")
}

// Render writes the program as the C++ a firmware generator would produce:
// global pointer declarations followed by the body of setup().
func Render(w io.Writer, p *Program) error {
	out := bufio.NewWriter(w)
	if p.Source != "" {
		fmt.Fprintf(out, "// Generated from %s\n", p.Source)
	}
	for _, h := range p.Includes {
		fmt.Fprintf(out, "#include \"%s\"\n", h)
	}
	fmt.Fprintf(out, "using namespace esphome;\n\n")

	for _, d := range p.Directives {
		if d.Kind == KindConstruct {
			fmt.Fprintf(out, "%s%s *%s;\n", d.Type, d.Template, d.ID)
		}
	}

	fmt.Fprintf(out, "\nvoid setup() {\n")
	for _, d := range p.Directives {
		switch d.Kind {
		case KindConstruct:
			fmt.Fprintf(out, "  %s = new %s%s(%s);\n", d.ID, d.Type, d.Template, renderArgs(d.Args))
		case KindCall:
			fmt.Fprintf(out, "  %s->%s(%s);\n", d.ID, d.Method, renderArgs(d.Args))
		case KindRegisterSensor:
			fmt.Fprintf(out, "  App.register_sensor(%s);\n", d.ID)
		case KindRegisterComponent:
			if a, ok := d.Arg("update_interval"); ok {
				fmt.Fprintf(out, "  %s->set_update_interval(%s);\n", d.ID, renderArg(a))
			}
			if a, ok := d.Arg("setup_priority"); ok {
				fmt.Fprintf(out, "  %s->set_setup_priority(%s);\n", d.ID, renderArg(a))
			}
			fmt.Fprintf(out, "  App.register_component(%s);\n", d.ID)
		case KindRegisterI2CDevice:
			if a, ok := d.Arg("bus"); ok {
				fmt.Fprintf(out, "  %s->set_i2c_bus(%s);\n", d.ID, renderArg(a))
			}
			if a, ok := d.Arg("address"); ok {
				fmt.Fprintf(out, "  %s->set_i2c_address(%s);\n", d.ID, renderArg(a))
			}
		default:
			return fmt.Errorf("cannot render directive kind: %s", d.Kind)
		}
	}
	fmt.Fprintf(out, "}\n")
	return out.Flush()
}
