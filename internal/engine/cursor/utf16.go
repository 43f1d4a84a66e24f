package cursor

import "unicode/utf16"

// UTF16ToOffset converts a UTF-16 code unit offset into text to a character
// offset. Offsets that fall inside a surrogate pair round down; offsets past
// the end clamp to the text length.
func UTF16ToOffset(text string, u16 int) int {
	if u16 <= 0 {
		return 0
	}
	units := 0
	chars := 0
	for _, r := range text {
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		if units+n > u16 {
			return chars
		}
		units += n
		chars++
	}
	return chars
}

// OffsetToUTF16 converts a character offset into text to a UTF-16 code unit
// offset. Offsets past the end clamp to the text length.
func OffsetToUTF16(text string, offset int) int {
	if offset <= 0 {
		return 0
	}
	units := 0
	chars := 0
	for _, r := range text {
		if chars == offset {
			break
		}
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units += n
		chars++
	}
	return units
}
