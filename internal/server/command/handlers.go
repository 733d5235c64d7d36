package command

import "strings"

// ErrNotParentheses is returned by Balanced when the input contains anything
// other than '(' and ')'.
var ErrNotParentheses = errNotParentheses{}

type errNotParentheses struct{}

func (errNotParentheses) Error() string { return "string is not only parentheses" }

// Balanced reports whether a string of parentheses is balanced: the running
// count of unmatched '(' never dips below zero and ends at exactly zero.
// ")(" is therefore not balanced even though the totals match.
func Balanced(s string) (bool, error) {
	open := 0
	for _, c := range s {
		switch c {
		case '(':
			open++
		case ')':
			open--
			if open < 0 {
				return false, nil
			}
		default:
			return false, ErrNotParentheses
		}
	}
	return open == 0, nil
}

// LCM returns the least common multiple of a and b as a nonnegative value.
// LCM(x, 0) and LCM(0, x) are 0.
func LCM(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	return a / gcd(a, b) * b
}

func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Caesar shifts every ASCII letter of text by shift positions within its
// 26-letter alphabet, preserving case. Shift may be negative or larger than
// 26; it is taken modulo 26. Spaces pass through unchanged. The caller is
// responsible for rejecting any other character first.
func Caesar(text string, shift int) string {
	k := shift % 26
	if k < 0 {
		k += 26
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, c := range text {
		switch {
		case c >= 'a' && c <= 'z':
			b.WriteRune('a' + (c-'a'+rune(k))%26)
		case c >= 'A' && c <= 'Z':
			b.WriteRune('A' + (c-'A'+rune(k))%26)
		default:
			b.WriteRune(c)
		}
	}
	return b.String()
}

// validCaesarInput reports whether text is made of ASCII letters and spaces
// only, the character set the caesar command accepts.
func validCaesarInput(text string) bool {
	for _, c := range text {
		isLetter := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
		if !isLetter && c != ' ' {
			return false
		}
	}
	return true
}
