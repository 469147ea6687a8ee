package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeNamed(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"&amp;", "&"},
		{"&lt;tag&gt;", "<tag>"},
		{"&notin;", "∉"},
		{"a&nbsp;b", "a b"},
		{"&AMP;", "&"},
		{"&euro;", "€"},
		// a legacy name decodes without its semicolon
		{"fish &amp chips", "fish & chips"},
		// no reference at all
		{"& loose ampersand", "& loose ampersand"},
		{"&;", "&;"},
		{"&unknownref;", "&unknownref;"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Decode(tt.in, false), "input %q", tt.in)
	}
}

func TestDecodeLegacyWithoutSemicolon(t *testing.T) {
	// legacy names substitute without a semicolon
	assert.Equal(t, "&", Decode("&amp", false))
	assert.Equal(t, "¬", Decode("&not", false))
	// longest legacy prefix wins when the full name is unknown
	assert.Equal(t, "¬it", Decode("&notit", false))
	// a semicolon with no exact match still substitutes the prefix
	assert.Equal(t, "¬it;", Decode("&notit;", false))
}

func TestDecodeAttributeSuppression(t *testing.T) {
	// in an attribute, a legacy match followed by alphanumeric or "=" is
	// left alone
	assert.Equal(t, "&amp=x", Decode("&amp=x", true))
	assert.Equal(t, "&ampx", Decode("&ampx", true))
	// but a semicolon form always substitutes
	assert.Equal(t, "&=x", Decode("&amp;=x", true))
	// and outside attributes the historical rule does not apply
	assert.Equal(t, "&x", Decode("&ampx", false))
	// end of value: nothing follows, substitution happens
	assert.Equal(t, "&", Decode("&amp", true))
}

func TestDecodeNumeric(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"&#65;", "A"},
		{"&#x41;", "A"},
		{"&#X41;", "A"},
		{"&#65", "A"},
		{"&#9731;", "☃"},
		// NUL, out of range, and surrogates become U+FFFD
		{"&#0;", "�"},
		{"&#x110000;", "�"},
		{"&#xD800;", "�"},
		{"&#999999999999;", "�"},
		// C1 controls take the windows-1252 meaning
		{"&#128;", "€"},
		{"&#x93;", "“"},
		// no digits: not a reference
		{"&#;", "&#;"},
		{"&#x;", "&#x;"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Decode(tt.in, false), "input %q", tt.in)
	}
}

func TestLegacyTableIsComplete(t *testing.T) {
	for _, name := range legacyNames {
		if _, ok := named[name+";"]; !ok {
			t.Errorf("legacy name %q has no entry in the named table", name)
		}
	}
}
