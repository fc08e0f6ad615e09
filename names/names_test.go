package names_test

import (
	"strings"
	"testing"

	"github.com/go-debos/efiguid"
	"github.com/go-debos/efiguid/names"
	"github.com/stretchr/testify/assert"
)

var global = efiguid.MustParse("8be4df61-93ca-11d2-aa0d-00e098032b8c")
var security = efiguid.MustParse("d719b2cb-3d3a-4596-a3bc-dad00e67656f")

func TestTable_lookup(t *testing.T) {
	table := names.NewTable()
	assert.NoError(t, table.Add(names.Name{GUID: security, Symbol: "efi_guid_security", Description: "EFI Security Database"}))
	assert.NoError(t, table.Add(names.Name{GUID: global, Symbol: "efi_guid_global", Description: "EFI Global Variable"}))
	assert.Equal(t, 2, table.Len())

	n, ok := table.ByGUID(global)
	assert.True(t, ok)
	assert.Equal(t, "efi_guid_global", n.Symbol)

	n, ok = table.BySymbol("efi_guid_security")
	assert.True(t, ok)
	assert.Equal(t, security, n.GUID)

	n, ok = table.ByDescription("EFI Global Variable")
	assert.True(t, ok)
	assert.Equal(t, global, n.GUID)

	_, ok = table.ByGUID(efiguid.Zero)
	assert.False(t, ok)
	_, ok = table.BySymbol("efi_guid_zero")
	assert.False(t, ok)
	_, ok = table.ByDescription("")
	assert.False(t, ok)

	all := table.All()
	assert.Len(t, all, 2)
	assert.Equal(t, global, all[0].GUID)
	assert.Equal(t, security, all[1].GUID)
}

func TestTable_refused(t *testing.T) {
	table := names.NewTable()
	assert.NoError(t, table.Add(names.Name{GUID: global, Symbol: "efi_guid_global"}))

	var tests = []struct {
		name names.Name
		err  string
	}{
		{
			names.Name{GUID: global, Symbol: "global"},
			"duplicate GUID 8be4df61-93ca-11d2-aa0d-00e098032b8c for global, already used by efi_guid_global",
		},
		{
			names.Name{GUID: security, Symbol: "efi_guid_global"},
			"duplicate symbol efi_guid_global for d719b2cb-3d3a-4596-a3bc-dad00e67656f, already used by 8be4df61-93ca-11d2-aa0d-00e098032b8c",
		},
		{
			names.Name{GUID: security},
			"missing symbol for d719b2cb-3d3a-4596-a3bc-dad00e67656f",
		},
		{
			names.Name{GUID: security, Symbol: strings.Repeat("s", names.MaxLen+1)},
			"symbol for d719b2cb-3d3a-4596-a3bc-dad00e67656f is longer than 255 bytes",
		},
		{
			names.Name{GUID: security, Symbol: "efi_guid_security", Description: strings.Repeat("d", names.MaxLen+1)},
			"description of efi_guid_security is longer than 255 bytes",
		},
	}

	for _, test := range tests {
		assert.EqualError(t, table.Add(test.name), test.err)
	}

	// First entry stays
	assert.Equal(t, 1, table.Len())
	n, _ := table.ByGUID(global)
	assert.Equal(t, "efi_guid_global", n.Symbol)

	// Limits are inclusive
	assert.NoError(t, table.Add(names.Name{GUID: security, Symbol: strings.Repeat("s", names.MaxLen), Description: strings.Repeat("d", names.MaxLen)}))
}

func TestTable_merge(t *testing.T) {
	a := names.NewTable()
	assert.NoError(t, a.Add(names.Name{GUID: global, Symbol: "efi_guid_global"}))

	b := names.NewTable()
	assert.NoError(t, b.Add(names.Name{GUID: global, Symbol: "other"}))
	assert.NoError(t, b.Add(names.Name{GUID: security, Symbol: "efi_guid_security"}))

	errs := a.Merge(b)
	assert.Len(t, errs, 1)
	assert.Equal(t, 2, a.Len())
}

func TestName_String(t *testing.T) {
	assert.Equal(t, "8be4df61-93ca-11d2-aa0d-00e098032b8c efi_guid_global EFI Global Variable",
		names.Name{GUID: global, Symbol: "efi_guid_global", Description: "EFI Global Variable"}.String())
	assert.Equal(t, "8be4df61-93ca-11d2-aa0d-00e098032b8c efi_guid_global",
		names.Name{GUID: global, Symbol: "efi_guid_global"}.String())
}

func TestBuiltin(t *testing.T) {
	table := names.Builtin()
	assert.Greater(t, table.Len(), 10)

	n, ok := table.BySymbol("efi_guid_global")
	assert.True(t, ok)
	assert.Equal(t, global, n.GUID)

	n, ok = table.ByGUID(efiguid.Zero)
	assert.True(t, ok)
	assert.Equal(t, "efi_guid_zero", n.Symbol)

	n, ok = table.ByDescription("EFI System Partition")
	assert.True(t, ok)
	assert.Equal(t, "c12a7328-f81f-11d2-ba4b-00a0c93ec93b", n.GUID.String())

	// Every call hands out an independent copy
	assert.NoError(t, table.Add(names.Name{GUID: efiguid.MustParse("00112233-4455-6677-8899-aabbccddeeff"), Symbol: "test"}))
	_, ok = names.Builtin().BySymbol("test")
	assert.False(t, ok)
}
