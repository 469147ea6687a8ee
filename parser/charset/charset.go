// Package charset resolves the character encoding of an HTML byte stream
// and decodes it to text. Resolution follows the priority order of the
// encoding sniffing algorithm: transport hint, byte order mark, <meta>
// prescan, windows-1252 fallback.
// https://html.spec.whatwg.org/multipage/parsing.html#determining-the-character-encoding
package charset

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Canonical names of the encodings the engine decodes.
const (
	UTF8        = "utf-8"
	UTF16       = "utf-16"
	UTF16LE     = "utf-16le"
	UTF16BE     = "utf-16be"
	Windows1252 = "windows-1252"
	ISO88592    = "iso-8859-2"
	EUCJP       = "euc-jp"
)

// Lookup normalizes an encoding label to a canonical name. Unknown labels
// resolve to windows-1252, as does utf-7.
// https://encoding.spec.whatwg.org/#concept-encoding-get
func Lookup(label string) (string, bool) {
	label = strings.Trim(strings.ToLower(label), " \t\n\f\r")
	switch label {
	case "unicode-1-1-utf-8", "unicode11utf8", "unicode20utf8", "utf-8", "utf8", "x-unicode20utf8":
		return UTF8, true
	case "utf-16", "unicode", "ucs-2", "unicodefeff":
		return UTF16, true
	case "utf-16le", "utf16", "utf16le", "csunicode", "iso-10646-ucs-2":
		return UTF16LE, true
	case "utf-16be", "utf16be", "unicodefffe":
		return UTF16BE, true
	case "windows-1252", "cp1252", "cp819", "ansi_x3.4-1968", "ascii", "us-ascii",
		"iso-8859-1", "iso8859-1", "iso88591", "iso_8859-1", "iso-ir-100",
		"l1", "latin1", "ibm819", "csisolatin1", "iso_8859-1:1987", "x-cp1252":
		return Windows1252, true
	case "iso-8859-2", "iso8859-2", "iso88592", "iso_8859-2", "iso-ir-101",
		"l2", "latin2", "csisolatin2", "iso_8859-2:1987":
		return ISO88592, true
	case "euc-jp", "eucjp", "x-euc-jp", "cseucpkdfmtjapanese":
		return EUCJP, true
	case "utf-7", "utf7", "x-utf7", "unicode-1-1-utf-7":
		// utf-7 is never honored; it decodes as windows-1252.
		return Windows1252, true
	case "":
		return "", false
	}
	return Windows1252, false
}

// Sniff resolves the stream's encoding name and the number of leading
// bytes (a BOM) to discard before decoding.
func Sniff(b []byte, transport string) (string, int) {
	if transport != "" {
		if name, ok := Lookup(transport); ok {
			return name, 0
		}
	}
	switch {
	case bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}):
		return UTF8, 3
	case bytes.HasPrefix(b, []byte{0xFF, 0xFE}):
		return UTF16LE, 2
	case bytes.HasPrefix(b, []byte{0xFE, 0xFF}):
		return UTF16BE, 2
	}
	if name := prescan(b); name != "" {
		return name, 0
	}
	return Windows1252, 0
}

// Decode sniffs the encoding and decodes the byte stream, returning the
// text and the resolved encoding name.
func Decode(b []byte, transport string) (string, string, error) {
	name, skip := Sniff(b, transport)
	b = b[skip:]

	var enc encoding.Encoding
	switch name {
	case UTF8:
		enc = unicode.UTF8
	case UTF16:
		// An embedded BOM picks the byte order; little-endian otherwise.
		name = UTF16LE
		switch {
		case bytes.HasPrefix(b, []byte{0xFF, 0xFE}):
			b = b[2:]
			enc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
		case bytes.HasPrefix(b, []byte{0xFE, 0xFF}):
			b = b[2:]
			enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
			name = UTF16BE
		default:
			enc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
		}
		if len(b) == 0 {
			return "", name, nil
		}
	case UTF16LE:
		enc = unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case UTF16BE:
		enc = unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	case ISO88592:
		enc = charmap.ISO8859_2
	case EUCJP:
		enc = japanese.EUCJP
	default:
		name = Windows1252
		enc = charmap.Windows1252
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return "", name, err
	}
	return string(out), name, nil
}
