package parser

import (
	"strings"

	"github.com/alex-kinokon/justhtml/parser/entity"
	"github.com/alex-kinokon/justhtml/parser/spec"
)

type tokenType uint

const (
	characterToken tokenType = iota
	startTagToken
	endTagToken
	endOfFileToken
	commentToken
	docTypeToken
)

func (t tokenType) String() string {
	switch t {
	case characterToken:
		return "character"
	case startTagToken:
		return "start-tag"
	case endTagToken:
		return "end-tag"
	case endOfFileToken:
		return "eof"
	case commentToken:
		return "comment"
	case docTypeToken:
		return "doctype"
	}
	return "unknown"
}

type tagType uint

const (
	startTag tagType = iota
	endTag
)

// Token is a concrete token ready to be handed to the tree constructor.
// Attribute order is the order attributes first appeared in the tag.
type Token struct {
	TokenType   tokenType
	TagName     string
	Attributes  []spec.Attr
	SelfClosing bool
	Data        string
	Doctype     *spec.DocumentType
}

// AttrValue returns the named attribute's value and whether it is set.
func (t *Token) AttrValue(name string) (string, bool) {
	for i := range t.Attributes {
		if t.Attributes[i].Name == name {
			return t.Attributes[i].Value, true
		}
	}
	return "", false
}

// TokenBuilder accumulates the pieces of the token currently under
// construction.
type TokenBuilder struct {
	name           strings.Builder
	data           strings.Builder
	tempBuffer     strings.Builder
	attributes     []spec.Attr
	attributeKey   strings.Builder
	attributeValue strings.Builder
	attrSawAmp     bool
	dropAttr       bool
	publicID       strings.Builder
	systemID       strings.Builder
	hasPublicID    bool
	hasSystemID    bool
	selfClosing    bool
	forceQuirks    bool
	curTagType     tagType
}

func newTokenBuilder() *TokenBuilder {
	return &TokenBuilder{}
}

// Reset clears everything for a new tag/comment/doctype token.
func (t *TokenBuilder) Reset() {
	t.name.Reset()
	t.data.Reset()
	t.attributes = nil
	t.attributeKey.Reset()
	t.attributeValue.Reset()
	t.attrSawAmp = false
	t.dropAttr = false
	t.publicID.Reset()
	t.systemID.Reset()
	t.hasPublicID = false
	t.hasSystemID = false
	t.selfClosing = false
	t.forceQuirks = false
}

func (t *TokenBuilder) WriteName(r rune)       { t.name.WriteRune(r) }
func (t *TokenBuilder) WriteData(r rune)       { t.data.WriteRune(r) }
func (t *TokenBuilder) WriteTempBuffer(r rune) { t.tempBuffer.WriteRune(r) }
func (t *TokenBuilder) ResetTempBuffer()       { t.tempBuffer.Reset() }
func (t *TokenBuilder) TempBuffer() string     { return t.tempBuffer.String() }

func (t *TokenBuilder) EnableSelfClosing() { t.selfClosing = true }
func (t *TokenBuilder) EnableForceQuirks() { t.forceQuirks = true }

func (t *TokenBuilder) WriteAttributeName(r rune) { t.attributeKey.WriteRune(r) }

func (t *TokenBuilder) WriteAttributeValue(r rune) {
	if r == '&' {
		t.attrSawAmp = true
	}
	t.attributeValue.WriteRune(r)
}

func (t *TokenBuilder) WritePublicIdentifier(r rune) { t.publicID.WriteRune(r) }
func (t *TokenBuilder) WriteSystemIdentifier(r rune) { t.systemID.WriteRune(r) }
func (t *TokenBuilder) WritePublicIdentifierEmpty()  { t.publicID.Reset(); t.hasPublicID = true }
func (t *TokenBuilder) WriteSystemIdentifierEmpty()  { t.systemID.Reset(); t.hasSystemID = true }

// MarkDuplicateAttribute checks whether the attribute name under
// construction already exists on the tag; a duplicate keeps the first
// value and drops this one.
func (t *TokenBuilder) MarkDuplicateAttribute() bool {
	key := t.attributeKey.String()
	for i := range t.attributes {
		if t.attributes[i].Name == key {
			t.dropAttr = true
			return true
		}
	}
	return false
}

// CommitAttribute finishes the current name/value pair. The value is run
// through the entity decoder iff it saw an ampersand while scanning. It
// reports whether a duplicate attribute was discarded.
func (t *TokenBuilder) CommitAttribute() bool {
	defer func() {
		t.attributeKey.Reset()
		t.attributeValue.Reset()
		t.attrSawAmp = false
		t.dropAttr = false
	}()

	key := t.attributeKey.String()
	if key == "" {
		return false
	}
	dup := t.dropAttr
	if !dup {
		for i := range t.attributes {
			if t.attributes[i].Name == key {
				dup = true
				break
			}
		}
	}
	if dup {
		return true
	}
	value := t.attributeValue.String()
	if t.attrSawAmp {
		value = entity.Decode(value, true)
	}
	t.attributes = append(t.attributes, spec.Attr{Name: key, Value: value})
	return false
}

// StartTagToken creates a start tag token from the builder contents.
func (t *TokenBuilder) StartTagToken() Token {
	return Token{
		TokenType:   startTagToken,
		TagName:     t.name.String(),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// EndTagToken creates an end tag token from the builder contents.
func (t *TokenBuilder) EndTagToken() Token {
	return Token{
		TokenType:   endTagToken,
		TagName:     t.name.String(),
		Attributes:  t.attributes,
		SelfClosing: t.selfClosing,
	}
}

// CommentToken creates a comment token from the builder contents.
func (t *TokenBuilder) CommentToken() Token {
	return Token{
		TokenType: commentToken,
		Data:      t.data.String(),
	}
}

// DocTypeToken creates a doctype token from the builder contents.
func (t *TokenBuilder) DocTypeToken() Token {
	return Token{
		TokenType: docTypeToken,
		Doctype: &spec.DocumentType{
			Name:        t.name.String(),
			PublicID:    t.publicID.String(),
			SystemID:    t.systemID.String(),
			HasPublicID: t.hasPublicID,
			HasSystemID: t.hasSystemID,
			ForceQuirks: t.forceQuirks,
		},
	}
}

// CharacterToken creates a single-character token.
func (t *TokenBuilder) CharacterToken(r rune) Token {
	return Token{TokenType: characterToken, Data: string(r)}
}

// EndOfFileToken creates an end of file token.
func (t *TokenBuilder) EndOfFileToken() Token {
	return Token{TokenType: endOfFileToken}
}
