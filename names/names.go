/*
Package names maps EFI GUIDs to a symbol and a human readable description.

Tables are YAML files which are pre-processed through the Golang text
templating engine (https://golang.org/pkg/text/template), in the same way
debos recipes are.

	# Declare variable 'Vendor'
	{{- $Vendor := "4a67b082-0a4c-41cf-b6c7-440b29bb8c4f" -}}

	guids:
	  - guid: 8be4df61-93ca-11d2-aa0d-00e098032b8c
	    symbol: efi_guid_global
	    description: EFI Global Variable

	  - guid: {{ uuid5 $Vendor "my-variable" }}
	    symbol: my_variable
	    description: {{ escape "Variable owned by me" }}

The following custom template functions are available:

- uuid5: Generates fixed UUID value `{{ uuid5 $namespace $text }}`
- escape: Shell escape the argument `{{ escape $var }}`
- functions from [slim-sprig](https://go-task.github.io/slim-sprig/)

Mandatory properties for every entry:

- guid -- the GUID in canonical text form, optionally in curly braces

- symbol -- a unique identifier-like name, at most 255 bytes

Optional properties:

- description -- display name, at most 255 bytes
*/
package names

import (
	"fmt"
	"sort"

	"github.com/go-debos/efiguid"
)

// MaxLen is the longest symbol or description a Name can carry.
const MaxLen = 255

// Name associates a GUID with its symbol and display name.
type Name struct {
	GUID        efiguid.GUID
	Symbol      string
	Description string
}

func (n Name) String() string {
	if n.Description == "" {
		return fmt.Sprintf("%s %s", n.GUID, n.Symbol)
	}
	return fmt.Sprintf("%s %s %s", n.GUID, n.Symbol, n.Description)
}

// Verify checks the limits every Name has to respect.
func (n Name) Verify() error {
	if len(n.Symbol) == 0 {
		return fmt.Errorf("missing symbol for %s", n.GUID)
	}
	if len(n.Symbol) > MaxLen {
		return fmt.Errorf("symbol for %s is longer than %d bytes", n.GUID, MaxLen)
	}
	if len(n.Description) > MaxLen {
		return fmt.Errorf("description of %s is longer than %d bytes", n.Symbol, MaxLen)
	}
	return nil
}

// Table is a lookup table of Names. GUIDs and symbols are unique inside a
// table. A Table is not safe for concurrent modification.
type Table struct {
	names         []Name
	byGUID        map[efiguid.GUID]int
	bySymbol      map[string]int
	byDescription map[string]int
}

func NewTable() *Table {
	return &Table{
		byGUID:        make(map[efiguid.GUID]int),
		bySymbol:      make(map[string]int),
		byDescription: make(map[string]int),
	}
}

// Add inserts n. Entries which fail Verify or duplicate an existing GUID or
// symbol are refused, the first one added stays.
func (t *Table) Add(n Name) error {
	if err := n.Verify(); err != nil {
		return err
	}

	if i, ok := t.byGUID[n.GUID]; ok {
		return fmt.Errorf("duplicate GUID %s for %s, already used by %s", n.GUID, n.Symbol, t.names[i].Symbol)
	}
	if i, ok := t.bySymbol[n.Symbol]; ok {
		return fmt.Errorf("duplicate symbol %s for %s, already used by %s", n.Symbol, n.GUID, t.names[i].GUID)
	}

	i := len(t.names)
	t.names = append(t.names, n)
	t.byGUID[n.GUID] = i
	t.bySymbol[n.Symbol] = i
	if _, ok := t.byDescription[n.Description]; !ok && n.Description != "" {
		t.byDescription[n.Description] = i
	}

	return nil
}

// Merge adds all entries of other, in order, and returns the ones refused.
func (t *Table) Merge(other *Table) []error {
	var errs []error
	for _, n := range other.names {
		if err := t.Add(n); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (t *Table) Len() int {
	return len(t.names)
}

func (t *Table) ByGUID(g efiguid.GUID) (Name, bool) {
	i, ok := t.byGUID[g]
	return t.lookup(i, ok)
}

func (t *Table) BySymbol(symbol string) (Name, bool) {
	i, ok := t.bySymbol[symbol]
	return t.lookup(i, ok)
}

// ByDescription returns the first entry added with the given description.
func (t *Table) ByDescription(description string) (Name, bool) {
	i, ok := t.byDescription[description]
	return t.lookup(i, ok)
}

// All returns a copy of the entries ordered by their text form.
func (t *Table) All() []Name {
	all := make([]Name, len(t.names))
	copy(all, t.names)

	sort.Slice(all, func(i, j int) bool {
		return all[i].GUID.String() < all[j].GUID.String()
	})

	return all
}

func (t *Table) lookup(i int, ok bool) (Name, bool) {
	if !ok {
		return Name{}, false
	}
	return t.names[i], true
}
