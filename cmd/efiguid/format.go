package main

import (
	"fmt"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/go-debos/efiguid"
	"github.com/go-debos/efiguid/names"
)

func resolve(arg string, symbol bool, table *names.Table) (efiguid.GUID, error) {
	if !symbol {
		return efiguid.Parse(arg)
	}

	n, ok := table.BySymbol(arg)
	if !ok {
		return efiguid.Zero, fmt.Errorf("unknown symbol %q", arg)
	}
	return n.GUID, nil
}

func format(g efiguid.GUID, f string) string {
	switch f {
	case "braced":
		return g.Braced()
	case "hex":
		b := make([]string, 0, efiguid.Size)
		for _, c := range g {
			b = append(b, fmt.Sprintf("%02x", c))
		}
		return strings.Join(b, " ")
	case "c":
		e := g.E()
		return fmt.Sprintf("EFI_GUID(0x%08x,0x%04x,0x%04x,0x%04x,0x%02x,0x%02x,0x%02x,0x%02x,0x%02x,0x%02x)",
			g.A(), g.B(), g.C(), g.D(), e[0], e[1], e[2], e[3], e[4], e[5])
	case "uuid":
		u := g.UUID()
		return fmt.Sprintf("%x", u[:])
	default:
		return g.String()
	}
}

// describe formats g, optionally followed by its symbol and shell quoted
// description when the table knows it.
func describe(g efiguid.GUID, f string, table *names.Table, lookup bool) string {
	out := format(g, f)
	if !lookup {
		return out
	}

	n, ok := table.ByGUID(g)
	if !ok {
		return out
	}

	out += " " + n.Symbol
	if n.Description != "" {
		out += " " + shellescape.Quote(n.Description)
	}
	return out
}
