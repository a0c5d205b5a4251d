package compass

import "unicode/utf16"

// Hash is the djb2 rolling hash: starting from 5381, every UTF-16 code unit c
// of s updates the accumulator to acc*33 + c with 32-bit wraparound.
//
// Results are persisted implicitly in every result already shown to a user,
// so the constants and the code-unit iteration are fixed. Runes outside the
// BMP contribute their two surrogate halves; invalid UTF-8 bytes hash as
// U+FFFD.
func Hash(s string) uint32 {
	h := int32(5381)
	for _, r := range s {
		if r >= 0x10000 {
			hi, lo := utf16.EncodeRune(r)
			h = h*33 + hi
			h = h*33 + lo
			continue
		}
		h = h*33 + r
	}
	return uint32(h)
}
