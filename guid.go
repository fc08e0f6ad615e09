/*
Package efiguid handles GUIDs in the mixed-endianness binary layout used by
UEFI (efi_guid_t).

The canonical text form aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee maps onto 16
bytes as follows:

	[a: 4 bytes LE][b: 2 bytes LE][c: 2 bytes LE][d: 2 bytes BE][e: 6 bytes]

so 00112233-4455-6677-8899-aabbccddeeff is stored as

	33 22 11 00 55 44 77 66 88 99 aa bb cc dd ee ff

For RFC 4122 byte order use GUID.UUID and FromUUID.
*/
package efiguid

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Size of a GUID in its binary form.
const Size = 16

// GUID is an EFI GUID in its binary (memory) layout.
type GUID [Size]byte

// Zero is the all-zero GUID.
var Zero GUID

// New assembles a GUID from its five fields.
func New(a uint32, b, c, d uint16, e [6]byte) GUID {
	var g GUID

	binary.LittleEndian.PutUint32(g[0:4], a)
	binary.LittleEndian.PutUint16(g[4:6], b)
	binary.LittleEndian.PutUint16(g[6:8], c)
	binary.BigEndian.PutUint16(g[8:10], d)
	copy(g[10:], e[:])

	return g
}

func (g GUID) A() uint32 { return binary.LittleEndian.Uint32(g[0:4]) }
func (g GUID) B() uint16 { return binary.LittleEndian.Uint16(g[4:6]) }
func (g GUID) C() uint16 { return binary.LittleEndian.Uint16(g[6:8]) }
func (g GUID) D() uint16 { return binary.BigEndian.Uint16(g[8:10]) }

func (g GUID) E() (e [6]byte) {
	copy(e[:], g[10:])
	return
}

// String returns the canonical lowercase text form.
func (g GUID) String() string {
	e := g.E()
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%02x%02x%02x%02x%02x%02x",
		g.A(), g.B(), g.C(), g.D(), e[0], e[1], e[2], e[3], e[4], e[5])
}

// Braced returns the uppercase text form wrapped in curly braces, as found in
// the windows registry and most firmware documentation.
func (g GUID) Braced() string {
	return "{" + strings.ToUpper(g.String()) + "}"
}

func (g GUID) IsZero() bool {
	return g == Zero
}

// Compare orders GUIDs by their binary form.
func (g GUID) Compare(other GUID) int {
	return bytes.Compare(g[:], other[:])
}

func (g GUID) Equal(other GUID) bool {
	return g == other
}

// UUID converts to RFC 4122 byte order.
func (g GUID) UUID() (u uuid.UUID) {
	u[0], u[1], u[2], u[3] = g[3], g[2], g[1], g[0]
	u[4], u[5] = g[5], g[4]
	u[6], u[7] = g[7], g[6]
	copy(u[8:], g[8:])
	return
}

// FromUUID converts from RFC 4122 byte order.
func FromUUID(u uuid.UUID) (g GUID) {
	g[0], g[1], g[2], g[3] = u[3], u[2], u[1], u[0]
	g[4], g[5] = u[5], u[4]
	g[6], g[7] = u[7], u[6]
	copy(g[8:], u[8:])
	return
}

func (g GUID) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// UnmarshalText parses the text form into g. g is left untouched on error.
func (g *GUID) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}

	*g = parsed
	return nil
}

func (g GUID) MarshalBinary() ([]byte, error) {
	return g[:], nil
}

func (g *GUID) UnmarshalBinary(data []byte) error {
	if len(data) != Size {
		return fmt.Errorf("invalid GUID length %d, expected %d", len(data), Size)
	}

	copy(g[:], data)
	return nil
}
