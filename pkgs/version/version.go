// Package version orders compiler and tool version strings.
//
// Versions are split into dot-separated fields. Inside a field, digit runs
// compare by numeric value and other runs compare character by character,
// following the ordering of GNU strverscmp: letters sort before other
// characters and '~' sorts before everything, including the end of the
// field. Trailing zero fields are insignificant, so "10" equals "10.0".
package version

import "strings"

// Compare returns -1, 0 or +1 depending on whether a < b, a == b or a > b.
func Compare(a, b string) int {
	as := trimZeros(strings.Split(a, "."))
	bs := trimZeros(strings.Split(b, "."))
	n := max(len(as), len(bs))
	for i := 0; i < n; i++ {
		if c := compareField(fieldAt(as, i), fieldAt(bs, i)); c != 0 {
			return c
		}
	}
	return 0
}

// Valid reports whether v looks like a version: non-empty and starting
// with a digit.
func Valid(v string) bool {
	return v != "" && isDigit(v[0])
}

func fieldAt(fields []string, i int) string {
	if i < len(fields) {
		return fields[i]
	}
	return ""
}

func trimZeros(fields []string) []string {
	for len(fields) > 0 && isZero(fields[len(fields)-1]) {
		fields = fields[:len(fields)-1]
	}
	return fields
}

func isZero(field string) bool {
	return strings.Trim(field, "0") == ""
}

func compareField(a, b string) int {
	for a != "" || b != "" {
		var ta, tb string
		ta, a = span(a, false)
		tb, b = span(b, false)
		if c := compareText(ta, tb); c != 0 {
			return c
		}
		var na, nb string
		na, a = span(a, true)
		nb, b = span(b, true)
		if c := compareNumber(na, nb); c != 0 {
			return c
		}
	}
	return 0
}

// span splits s after its leading run of digits (digits=true) or
// non-digits (digits=false).
func span(s string, digits bool) (run, rest string) {
	i := 0
	for i < len(s) && isDigit(s[i]) == digits {
		i++
	}
	return s[:i], s[i:]
}

func compareText(a, b string) int {
	n := max(len(a), len(b))
	for i := 0; i < n; i++ {
		var ca, cb byte
		if i < len(a) {
			ca = a[i]
		}
		if i < len(b) {
			cb = b[i]
		}
		if oa, ob := order(ca), order(cb); oa != ob {
			return sign(oa - ob)
		}
	}
	return 0
}

func compareNumber(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		return sign(len(a) - len(b))
	}
	return strings.Compare(a, b)
}

// order returns the sort weight of c inside a non-digit run.
func order(c byte) int {
	switch {
	case c == 0:
		return 0
	case c == '~':
		return -1
	case isAlpha(c):
		return int(c)
	default:
		return int(c) + 256
	}
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
