// Package entity decodes HTML character references: numeric forms
// (&#…; and &#x…;) and named forms, including the legacy references that
// may appear without a terminating semicolon.
// https://html.spec.whatwg.org/multipage/parsing.html#character-reference-state
package entity

import "strings"

// windows1252Overrides remaps the C1 range of numeric references, which
// authors almost always intend as windows-1252 bytes.
var windows1252Overrides = map[int]rune{
	0x80: 0x20AC,
	0x82: 0x201A,
	0x83: 0x0192,
	0x84: 0x201E,
	0x85: 0x2026,
	0x86: 0x2020,
	0x87: 0x2021,
	0x88: 0x02C6,
	0x89: 0x2030,
	0x8A: 0x0160,
	0x8B: 0x2039,
	0x8C: 0x0152,
	0x8E: 0x017D,
	0x91: 0x2018,
	0x92: 0x2019,
	0x93: 0x201C,
	0x94: 0x201D,
	0x95: 0x2022,
	0x96: 0x2013,
	0x97: 0x2014,
	0x98: 0x02DC,
	0x99: 0x2122,
	0x9A: 0x0161,
	0x9B: 0x203A,
	0x9C: 0x0153,
	0x9E: 0x017E,
	0x9F: 0x0178,
}

// Decode replaces every valid character reference in s. inAttr applies
// the attribute-value rule: a legacy (semicolonless) match followed by an
// alphanumeric or "=" is left verbatim.
func Decode(s string, inAttr bool) string {
	amp := strings.IndexByte(s, '&')
	if amp == -1 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	sb.WriteString(s[:amp])
	for i := amp; i < len(s); {
		if s[i] != '&' {
			next := strings.IndexByte(s[i:], '&')
			if next == -1 {
				sb.WriteString(s[i:])
				break
			}
			sb.WriteString(s[i : i+next])
			i += next
			continue
		}
		consumed, repl := decodeRef(s[i:], inAttr)
		if consumed == 0 {
			sb.WriteByte('&')
			i++
			continue
		}
		sb.WriteString(repl)
		i += consumed
	}
	return sb.String()
}

// decodeRef decodes one reference at the start of s (s[0] == '&').
// It returns the number of bytes consumed (0 when s does not start a
// valid reference) and the replacement text.
func decodeRef(s string, inAttr bool) (int, string) {
	if len(s) < 2 {
		return 0, ""
	}
	if s[1] == '#' {
		return decodeNumeric(s)
	}
	return decodeNamed(s, inAttr)
}

func decodeNumeric(s string) (int, string) {
	i := 2
	hex := false
	if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
		hex = true
		i++
	}
	start := i
	code := 0
	overflowed := false
	for i < len(s) {
		c := s[i]
		var d int
		switch {
		case c >= '0' && c <= '9':
			d = int(c - '0')
		case hex && c >= 'a' && c <= 'f':
			d = int(c-'a') + 10
		case hex && c >= 'A' && c <= 'F':
			d = int(c-'A') + 10
		default:
			goto digitsDone
		}
		if !overflowed {
			if hex {
				code = code*16 + d
			} else {
				code = code*10 + d
			}
			if code > 0x10FFFF {
				overflowed = true
			}
		}
		i++
	}
digitsDone:
	if i == start {
		return 0, ""
	}
	if i < len(s) && s[i] == ';' {
		i++
	}
	switch {
	case overflowed, code == 0, code > 0x10FFFF:
		return i, "�"
	case code >= 0xD800 && code <= 0xDFFF:
		return i, "�"
	}
	if r, ok := windows1252Overrides[code]; ok {
		return i, string(r)
	}
	return i, string(rune(code))
}

func isRefNameByte(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func decodeNamed(s string, inAttr bool) (int, string) {
	i := 1
	for i < len(s) && isRefNameByte(s[i]) {
		i++
	}
	if i == 1 {
		return 0, ""
	}
	name := s[1:i]

	if i < len(s) && s[i] == ';' {
		if repl, ok := named[name+";"]; ok {
			return i + 1, repl
		}
		// No exact match; the longest legacy prefix still substitutes and
		// the rest of the name stays as text.
	}
	for end := len(name); end > 0; end-- {
		repl, ok := legacy[name[:end]]
		if !ok {
			continue
		}
		after := 1 + end
		if inAttr && after < len(s) && (isRefNameByte(s[after]) || s[after] == '=') {
			// Historical attribute rule: "&notit=..." keeps its ampersand.
			return 0, ""
		}
		return after, repl
	}
	return 0, ""
}
