package matcher

import "strings"

// Base58 charset (excludes 0, O, I, l)
const base58Charset = "123456789ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz"

// IsBase58Char checks if a character is valid in Base58 encoding.
// Ergo addresses are Base58, so patterns containing anything else are
// impossible to find.
func IsBase58Char(c rune) bool {
	return strings.ContainsRune(base58Charset, c)
}

// InvalidBase58Chars returns the distinct invalid Base58 characters in
// the pattern, in first-seen order.
func InvalidBase58Chars(pattern string) []rune {
	var invalid []rune
	for _, c := range pattern {
		if !IsBase58Char(c) && !containsRune(invalid, c) {
			invalid = append(invalid, c)
		}
	}
	return invalid
}

func containsRune(rs []rune, c rune) bool {
	for _, r := range rs {
		if r == c {
			return true
		}
	}
	return false
}
