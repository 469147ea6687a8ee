package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupAliases(t *testing.T) {
	tests := []struct {
		label string
		want  string
	}{
		{"UTF-8", UTF8},
		{"utf8", UTF8},
		{" Utf-8 ", UTF8},
		{"latin1", Windows1252},
		{"cp1252", Windows1252},
		{"iso-8859-1", Windows1252},
		{"ascii", Windows1252},
		{"iso8859-2", ISO88592},
		{"latin2", ISO88592},
		{"euc-jp", EUCJP},
		{"utf-16", UTF16},
		{"utf-16le", UTF16LE},
		{"utf-16be", UTF16BE},
		// utf-7 is folded to windows-1252 rather than honored
		{"utf-7", Windows1252},
	}
	for _, tt := range tests {
		got, _ := Lookup(tt.label)
		assert.Equal(t, tt.want, got, "label %q", tt.label)
	}

	got, ok := Lookup("no-such-encoding")
	assert.Equal(t, Windows1252, got)
	assert.False(t, ok)
}

func TestSniffBOM(t *testing.T) {
	name, skip := Sniff([]byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, "")
	assert.Equal(t, UTF8, name)
	assert.Equal(t, 3, skip)

	name, skip = Sniff([]byte{0xFF, 0xFE, 0x00, 0x00}, "")
	assert.Equal(t, UTF16LE, name)
	assert.Equal(t, 2, skip)

	name, skip = Sniff([]byte{0xFE, 0xFF, 0x00, 0x00}, "")
	assert.Equal(t, UTF16BE, name)
	assert.Equal(t, 2, skip)
}

func TestSniffTransportWinsOverBOM(t *testing.T) {
	name, skip := Sniff([]byte{0xEF, 0xBB, 0xBF}, "euc-jp")
	assert.Equal(t, EUCJP, name)
	assert.Equal(t, 0, skip)
}

func TestSniffDefault(t *testing.T) {
	name, _ := Sniff([]byte("<p>plain</p>"), "")
	assert.Equal(t, Windows1252, name)
}

func TestPrescanMetaCharset(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`<meta charset="utf-8">`, UTF8},
		{`<meta charset=UTF-8>`, UTF8},
		{`<meta charset='euc-jp'>`, EUCJP},
		{`<html><head><meta charset="iso-8859-2"></head>`, ISO88592},
		{`<meta http-equiv="Content-Type" content="text/html; charset=utf-8">`, UTF8},
		{`<meta http-equiv="content-type" content="text/html; charset = 'utf-8'">`, UTF8},
		// content without the pragma does not apply
		{`<meta content="text/html; charset=utf-8">`, ""},
		// inside a comment, the meta is skipped
		{`<!-- <meta charset="utf-8"> -->`, ""},
		{`<!-- --><meta charset="utf-8">`, UTF8},
		// a ">" inside a quoted attribute does not end the preceding tag
		{`<p title="a>b"><meta charset="utf-8">`, UTF8},
		// utf-16 declared in content resolves to utf-8
		{`<meta charset="utf-16">`, UTF8},
		{`<meta charset="utf-16be">`, UTF8},
		// unterminated comment aborts the prescan
		{`<!-- <meta charset="utf-8">`, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, prescan([]byte(tt.in)), "input %q", tt.in)
	}
}

func TestPrescanRespectsBudget(t *testing.T) {
	var in []byte
	for i := 0; i < prescanContentBudget+10; i++ {
		in = append(in, 'x')
	}
	in = append(in, []byte(`<meta charset="utf-8">`)...)
	assert.Equal(t, "", prescan(in))
}

func TestDecodeUTF8WithBOM(t *testing.T) {
	// BOM, "<p>", U+2713 in UTF-8, "</p>"
	in := []byte{0xEF, 0xBB, 0xBF, 0x3C, 0x70, 0x3E, 0xE2, 0x9C, 0x93, 0x3C, 0x2F, 0x70, 0x3E}
	text, name, err := Decode(in, "")
	require.NoError(t, err)
	assert.Equal(t, UTF8, name)
	assert.Equal(t, "<p>✓</p>", text)
}

func TestDecodeWindows1252(t *testing.T) {
	text, name, err := Decode([]byte{'a', 0x93, 'b', 0x94}, "")
	require.NoError(t, err)
	assert.Equal(t, Windows1252, name)
	assert.Equal(t, "a“b”", text)
}

func TestDecodeISO88592(t *testing.T) {
	text, name, err := Decode([]byte{0xB1}, "latin2")
	require.NoError(t, err)
	assert.Equal(t, ISO88592, name)
	assert.Equal(t, "ą", text)
}

func TestDecodeEUCJP(t *testing.T) {
	text, name, err := Decode([]byte{0xA4, 0xA2}, "euc-jp")
	require.NoError(t, err)
	assert.Equal(t, EUCJP, name)
	assert.Equal(t, "あ", text)
}

func TestDecodeUTF16Variants(t *testing.T) {
	// "hi" little-endian with BOM, no transport hint
	text, name, err := Decode([]byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}, "")
	require.NoError(t, err)
	assert.Equal(t, UTF16LE, name)
	assert.Equal(t, "hi", text)

	// big-endian BOM
	text, _, err = Decode([]byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}, "")
	require.NoError(t, err)
	assert.Equal(t, "hi", text)

	// generic utf-16 transport label defaults to little-endian
	text, _, err = Decode([]byte{'h', 0x00, 'i', 0x00}, "utf-16")
	require.NoError(t, err)
	assert.Equal(t, "hi", text)
}

func TestDecodeMetaDeclared(t *testing.T) {
	in := []byte(`<html><head><meta charset="windows-1252"></head><body>caf` + "\xe9" + `</body>`)
	text, name, err := Decode(in, "")
	require.NoError(t, err)
	assert.Equal(t, Windows1252, name)
	assert.Contains(t, text, "café")
}
