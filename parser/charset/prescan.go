package charset

import (
	"bytes"
	"strings"
)

const (
	// prescanContentBudget bounds the non-comment bytes the prescan will
	// look at; prescanHardLimit bounds the total, comments included.
	prescanContentBudget = 1024
	prescanHardLimit     = 65536
)

func isPrescanSpace(b byte) bool {
	switch b {
	case '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

// prescan scans the head of the byte stream for a <meta> declared
// encoding. It returns the resolved canonical name or "".
// https://html.spec.whatwg.org/multipage/parsing.html#prescan-a-byte-stream-to-determine-its-encoding
func prescan(b []byte) string {
	if len(b) > prescanHardLimit {
		b = b[:prescanHardLimit]
	}
	budget := prescanContentBudget
	i := 0
	for i < len(b) && budget > 0 {
		switch {
		case bytes.HasPrefix(b[i:], []byte("<!--")):
			end := bytes.Index(b[i+4:], []byte("-->"))
			if end == -1 {
				return ""
			}
			i += 4 + end + 3
		case hasCaseInsensitivePrefix(b[i:], "<meta") && i+5 < len(b) && (isPrescanSpace(b[i+5]) || b[i+5] == '/'):
			name, adv := prescanMeta(b[i+5:])
			if name != "" {
				return name
			}
			i += 5 + adv
			budget -= 5 + adv
		case i+1 < len(b) && b[i] == '<' && (isASCIILetter(b[i+1]) || (b[i+1] == '/' && i+2 < len(b) && isASCIILetter(b[i+2]))):
			// A tag we do not care about: advance past its name, then
			// consume attributes so a ">" inside a quoted value cannot end
			// the tag early.
			j := i + 1
			for j < len(b) && b[j] != ' ' && b[j] != '\t' && b[j] != '\n' && b[j] != '\f' && b[j] != '\r' && b[j] != '>' {
				j++
			}
			for {
				_, _, adv, ok := prescanAttribute(b[j:])
				if !ok {
					break
				}
				j += adv
			}
			if j < len(b) && b[j] == '>' {
				j++
			}
			budget -= j - i
			i = j
		case i+1 < len(b) && b[i] == '<' && (b[i+1] == '!' || b[i+1] == '/' || b[i+1] == '?'):
			end := bytes.IndexByte(b[i+2:], '>')
			if end == -1 {
				return ""
			}
			budget -= end + 3
			i += 2 + end + 1
		default:
			i++
			budget--
		}
	}
	return ""
}

// prescanMeta consumes the attributes of a <meta> tag and applies the
// charset / http-equiv rules. It returns the resolved name (or "") and
// how many bytes it consumed.
func prescanMeta(b []byte) (string, int) {
	var (
		gotPragma      bool
		needPragma     *bool
		charsetName    string
		seen           = map[string]bool{}
		i              int
	)
	for {
		name, value, adv, ok := prescanAttribute(b[i:])
		if !ok {
			break
		}
		i += adv
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		switch name {
		case "http-equiv":
			if value == "content-type" {
				gotPragma = true
			}
		case "content":
			if charsetName == "" {
				if cs := charsetFromContent(value); cs != "" {
					if resolved, ok := Lookup(cs); ok {
						charsetName = resolved
						t := true
						needPragma = &t
					}
				}
			}
		case "charset":
			if resolved, ok := Lookup(value); ok {
				charsetName = resolved
				f := false
				needPragma = &f
			}
		}
	}

	if needPragma == nil || (*needPragma && !gotPragma) || charsetName == "" {
		return "", i
	}
	// UTF-16 content cannot have reached an ASCII prescan; the declaration
	// is taken to mean UTF-8.
	switch charsetName {
	case UTF16, UTF16LE, UTF16BE:
		charsetName = UTF8
	}
	return charsetName, i
}

// prescanAttribute reads one attribute (name, lowercased value) starting
// at b, skipping leading whitespace and slashes. ok is false at ">" or
// end of input.
// https://html.spec.whatwg.org/multipage/parsing.html#concept-get-attributes-when-sniffing
func prescanAttribute(b []byte) (string, string, int, bool) {
	i := 0
	for i < len(b) && (isPrescanSpace(b[i]) || b[i] == '/') {
		i++
	}
	if i >= len(b) || b[i] == '>' {
		return "", "", i, false
	}

	var name, value []byte
	for i < len(b) {
		c := b[i]
		if c == '=' && len(name) > 0 {
			i++
			goto valuePart
		}
		if isPrescanSpace(c) {
			break
		}
		if c == '/' || c == '>' {
			return string(name), "", i, true
		}
		name = append(name, lowerByte(c))
		i++
	}
	// whitespace after the name; an "=" may still follow
	for i < len(b) && isPrescanSpace(b[i]) {
		i++
	}
	if i >= len(b) || b[i] != '=' {
		return string(name), "", i, true
	}
	i++

valuePart:
	for i < len(b) && isPrescanSpace(b[i]) {
		i++
	}
	if i >= len(b) {
		return string(name), "", i, true
	}
	if q := b[i]; q == '"' || q == '\'' {
		i++
		for i < len(b) && b[i] != q {
			value = append(value, lowerByte(b[i]))
			i++
		}
		if i >= len(b) {
			return string(name), "", i, true
		}
		i++ // closing quote
		return string(name), string(value), i, true
	}
	for i < len(b) && !isPrescanSpace(b[i]) && b[i] != '>' {
		value = append(value, lowerByte(b[i]))
		i++
	}
	return string(name), string(value), i, true
}

// charsetFromContent extracts the value of a charset= parameter from a
// content attribute value (already lowercased).
// https://html.spec.whatwg.org/multipage/urls-and-fetching.html#algorithm-for-extracting-a-character-encoding-from-a-meta-element
func charsetFromContent(content string) string {
	rest := content
	for {
		idx := strings.Index(rest, "charset")
		if idx == -1 {
			return ""
		}
		rest = rest[idx+len("charset"):]
		rest = strings.TrimLeft(rest, " \t\n\f\r")
		if strings.HasPrefix(rest, "=") {
			break
		}
	}
	rest = strings.TrimLeft(rest[1:], " \t\n\f\r")
	if rest == "" {
		return ""
	}
	if q := rest[0]; q == '"' || q == '\'' {
		end := strings.IndexByte(rest[1:], q)
		if end == -1 {
			return ""
		}
		return rest[1 : 1+end]
	}
	end := strings.IndexAny(rest, " \t\n\f\r;")
	if end == -1 {
		return rest
	}
	return rest[:end]
}

func isASCIILetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + 0x20
	}
	return b
}

func hasCaseInsensitivePrefix(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if lowerByte(b[i]) != prefix[i] {
			return false
		}
	}
	return true
}
