package core

import "unicode/utf16"

// EncodeWideString converts a Go string to the UTF-16 code units ODBC's
// SQLWCHAR-typed functions (the W-suffixed API, used by drivers and
// managers that default to wide strings) expect, terminated with a NUL
// code unit.
func EncodeWideString(s string) []uint16 {
	units := utf16.Encode([]rune(s))
	out := make([]uint16, len(units)+1)
	copy(out, units)
	return out
}

// DecodeWideString converts NUL-terminated or length-bounded UTF-16 code
// units read back from a driver into a Go string.
func DecodeWideString(units []uint16) string {
	for i, u := range units {
		if u == 0 {
			units = units[:i]
			break
		}
	}
	return string(utf16.Decode(units))
}
