package typeset

import "unicode/utf8"

// RunesIn returns the number of characters in the first n bytes of s. It is
// the one place byte offsets reported by an Engine are converted to the
// character offsets the pagination cursors use.
func RunesIn(s string, n int) int {
	if n <= 0 {
		return 0
	}
	if n > len(s) {
		n = len(s)
	}
	return utf8.RuneCountInString(s[:n])
}

// BytesIn returns the byte length of the first n characters of s, the
// inverse of RunesIn.
func BytesIn(s string, n int) int {
	if n <= 0 {
		return 0
	}
	count := 0
	for i := range s {
		if count == n {
			return i
		}
		count++
	}
	return len(s)
}
