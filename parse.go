package efiguid

import (
	"strconv"
)

// TextLen is the length of the canonical text form,
// e.g. 84be9c3e-8a32-42c0-891c-4cd3b072becc.
const TextLen = 36

var dashes = [...]int{8, 13, 18, 23}

// Hex digit groups of the canonical form. The last group is read as six
// separate bytes.
var segments = [...]struct {
	offset, width int
}{
	{0, 8},  // a
	{9, 4},  // b
	{14, 4}, // c
	{19, 4}, // d
	{24, 2}, {26, 2}, {28, 2}, {30, 2}, {32, 2}, {34, 2}, // e
}

/*
Parse converts the text form of a GUID into its binary layout.

Accepted input is the canonical form xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx with
hex digits in any case, either wrapped in a single pair of curly braces or
followed by ASCII whitespace. Input of exactly 38 bytes must be the braced
form. Anything else fails with a *FormatError and the returned GUID is Zero.
*/
func Parse(text string) (GUID, error) {
	core, base, err := checkFormat(text)
	if err != nil {
		return Zero, err
	}

	var fields [len(segments)]uint64
	for i, s := range segments {
		seg := core[s.offset : s.offset+s.width]
		if n := checkSegment(seg); n >= 0 {
			return Zero, &FormatError{text, base + s.offset + n, "invalid hex digit"}
		}

		// Cannot fail, the segment width never exceeds the field width.
		v, err := strconv.ParseUint(seg, 16, s.width*4)
		if err != nil {
			panic(err)
		}
		fields[i] = v
	}

	var e [6]byte
	for i := range e {
		e[i] = byte(fields[4+i])
	}

	return New(uint32(fields[0]), uint16(fields[1]), uint16(fields[2]), uint16(fields[3]), e), nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// initialising package level variables.
func MustParse(text string) GUID {
	g, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return g
}

// checkFormat strips the optional braces and verifies the overall shape. It
// returns the 36 byte canonical part and its offset inside text.
func checkFormat(text string) (string, int, error) {
	core, base := text, 0

	if len(text) == TextLen+2 {
		if text[0] != '{' {
			return "", 0, &FormatError{text, 0, "expected curly braces"}
		}
		if text[len(text)-1] != '}' {
			return "", 0, &FormatError{text, len(text) - 1, "expected curly braces"}
		}
		core, base = text[1:len(text)-1], 1
	}

	if len(core) < TextLen {
		return "", 0, &FormatError{text, -1, "too short"}
	}

	for i := TextLen; i < len(core); i++ {
		if !isSpace(core[i]) {
			return "", 0, &FormatError{text, base + i, "unexpected trailing character"}
		}
	}

	for _, d := range dashes {
		if core[d] != '-' {
			return "", 0, &FormatError{text, base + d, "expected '-'"}
		}
	}

	return core[:TextLen], base, nil
}

// checkSegment returns the index of the first non hex digit in seg, or -1.
func checkSegment(seg string) int {
	for i := 0; i < len(seg); i++ {
		if !isHexDigit(seg[i]) {
			return i
		}
	}
	return -1
}

func isHexDigit(c byte) bool {
	switch {
	case '0' <= c && c <= '9':
		return true
	case 'a' <= c && c <= 'f':
		return true
	case 'A' <= c && c <= 'F':
		return true
	}
	return false
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\f', '\n', '\r', '\t', '\v':
		return true
	}
	return false
}
