package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-kinokon/justhtml/parser/spec"
)

type tokenizerAttributeAccuracyTestcase struct {
	inHTML string      // snippet of HTML to tokenize (one start tag)
	attrs  []spec.Attr // expected attributes, in order
}

var tokenizerAttributeAccuracyTests = []tokenizerAttributeAccuracyTestcase{
	{"<head></head>", nil},
	{"<script src='123' onload='test'></script>", []spec.Attr{
		{Name: "src", Value: "123"},
		{Name: "onload", Value: "test"},
	}},
	{"<a href='https://google.com' onclick='alert(1)'>Click this</a>", []spec.Attr{
		{Name: "href", Value: "https://google.com"},
		{Name: "onclick", Value: "alert(1)"},
	}},
	// the first value wins on a duplicate
	{"<script src='123' src='456'></script>", []spec.Attr{
		{Name: "src", Value: "123"},
	}},
	{"<script src=123 onload=test></script>", []spec.Attr{
		{Name: "src", Value: "123"},
		{Name: "onload", Value: "test"},
	}},
	{"<script =src='123'onload='test' ></script>", []spec.Attr{
		{Name: "=src", Value: "123"},
		{Name: "onload", Value: "test"},
	}},
	{"<script src></script>", []spec.Attr{
		{Name: "src", Value: ""},
	}},
	{"<script src test></script>", []spec.Attr{
		{Name: "src", Value: ""},
		{Name: "test", Value: ""},
	}},
	{"<script 'asd></script>", []spec.Attr{
		{Name: "'asd", Value: ""},
	}},
	{"<script ABC=123></script>", []spec.Attr{
		{Name: "abc", Value: "123"},
	}},
	{"<script abc=\u0000123></script>", []spec.Attr{
		{Name: "abc", Value: "\uFFFD123"},
	}},
	{"<script abc=></script>", []spec.Attr{
		{Name: "abc", Value: ""},
	}},
	{"<script\tabc=123></script>", []spec.Attr{
		{Name: "abc", Value: "123"},
	}},
	// attribute values are entity-decoded when they saw an ampersand
	{"<a href=\"x&amp;y\"></a>", []spec.Attr{
		{Name: "href", Value: "x&y"},
	}},
	// the historical rule keeps the ampersand before "=" or alphanumerics
	{"<a b=\"&ampz\"></a>", []spec.Attr{
		{Name: "b", Value: "&ampz"},
	}},
	{"<a b=\"&amp\"></a>", []spec.Attr{
		{Name: "b", Value: "&"},
	}},
}

func TestTokenizerAttributeAccuracy(t *testing.T) {
	for _, tt := range tokenizerAttributeAccuracyTests {
		tt := tt
		t.Run(tt.inHTML, func(t *testing.T) {
			z := NewHTMLTokenizer(tt.inHTML, nil)
			var first *Token
			for z.Next() {
				tok := z.Token(nil)
				if tok == nil {
					break
				}
				if tok.TokenType == startTagToken && first == nil {
					first = tok
				}
			}
			require.NotNil(t, first, "no start tag produced")
			assert.Equal(t, tt.attrs, first.Attributes)
		})
	}
}

type stateMachineTestCase struct {
	inRune            rune           // the rune to pass to the starting state
	startingState     tokenizerState // the state to start from
	shouldReconsume   bool           // whether the state reconsumes the rune
	nextExpectedState tokenizerState // the state transitioned to
}

// TestStateParsers checks the basic transitions of the state machine, one
// state handler at a time.
func TestStateParsers(t *testing.T) {
	stateParserTests := []stateMachineTestCase{
		{'<', dataState, false, tagOpenState},
		{'a', dataState, false, dataState},
		{'&', dataState, false, dataState},

		{'<', rcDataState, false, rcDataLessThanSignState},
		{'a', rcDataState, false, rcDataState},

		{'<', rawTextState, false, rawTextLessThanSignState},
		{'a', rawTextState, false, rawTextState},

		{'<', scriptDataState, false, scriptDataLessThanSignState},
		{'a', scriptDataState, false, scriptDataState},

		{'!', plaintextState, false, plaintextState},
		{'a', plaintextState, false, plaintextState},

		{'!', tagOpenState, false, markupDeclarationOpenState},
		{'/', tagOpenState, false, endTagOpenState},
		{'a', tagOpenState, true, tagNameState},
		{'A', tagOpenState, true, tagNameState},
		{'?', tagOpenState, true, bogusCommentState},
		{'1', tagOpenState, true, dataState},

		{'a', endTagOpenState, true, tagNameState},
		{'>', endTagOpenState, false, dataState},
		{'1', endTagOpenState, true, bogusCommentState},

		{'\t', tagNameState, false, beforeAttributeNameState},
		{'/', tagNameState, false, selfClosingStartTagState},
		{'a', tagNameState, false, tagNameState},

		{'/', rcDataLessThanSignState, false, rcDataEndTagOpenState},
		{'a', rcDataLessThanSignState, true, rcDataState},
		{'a', rcDataEndTagOpenState, true, rcDataEndTagNameState},
		{'1', rcDataEndTagOpenState, true, rcDataState},

		{'/', scriptDataLessThanSignState, false, scriptDataEndTagOpenState},
		{'!', scriptDataLessThanSignState, false, scriptDataEscapeStartState},
		{'-', scriptDataEscapeStartState, false, scriptDataEscapeStartDashState},
		{'a', scriptDataEscapeStartState, true, scriptDataState},
		{'-', scriptDataEscapeStartDashState, false, scriptDataEscapedDashDashState},
		{'-', scriptDataEscapedState, false, scriptDataEscapedDashState},
		{'<', scriptDataEscapedState, false, scriptDataEscapedLessThanSignState},
		{'-', scriptDataEscapedDashState, false, scriptDataEscapedDashDashState},
		{'>', scriptDataEscapedDashDashState, false, scriptDataState},
		{'/', scriptDataDoubleEscapedLessThanSignState, false, scriptDataDoubleEscapeEndState},

		{' ', beforeAttributeNameState, false, beforeAttributeNameState},
		{'/', beforeAttributeNameState, true, afterAttributeNameState},
		{'a', beforeAttributeNameState, true, attributeNameState},
		{'=', attributeNameState, false, beforeAttributeValueState},
		{'a', attributeNameState, false, attributeNameState},
		{'/', afterAttributeNameState, false, selfClosingStartTagState},
		{'=', afterAttributeNameState, false, beforeAttributeValueState},
		{'"', beforeAttributeValueState, false, attributeValueDoubleQuotedState},
		{'\'', beforeAttributeValueState, false, attributeValueSingleQuotedState},
		{'a', beforeAttributeValueState, true, attributeValueUnquotedState},
		{'"', attributeValueDoubleQuotedState, false, afterAttributeValueQuotedState},
		{'\'', attributeValueSingleQuotedState, false, afterAttributeValueQuotedState},
		{'\t', attributeValueUnquotedState, false, beforeAttributeNameState},
		{'\t', afterAttributeValueQuotedState, false, beforeAttributeNameState},
		{'/', afterAttributeValueQuotedState, false, selfClosingStartTagState},
		{'a', afterAttributeValueQuotedState, true, beforeAttributeNameState},
		{'a', selfClosingStartTagState, true, beforeAttributeNameState},

		{'-', commentStartState, false, commentStartDashState},
		{'a', commentStartState, true, commentState},
		{'-', commentState, false, commentEndDashState},
		{'<', commentState, false, commentLessThanSignState},
		{'!', commentLessThanSignState, false, commentLessThanSignBangState},
		{'-', commentLessThanSignBangState, false, commentLessThanSignBangDashState},
		{'-', commentLessThanSignBangDashState, false, commentLessThanSignBangDashDashState},
		{'-', commentEndDashState, false, commentEndState},
		{'!', commentEndState, false, commentEndBangState},
		{'-', commentEndState, false, commentEndState},

		{'\t', doctypeState, false, beforeDoctypeNameState},
		{'a', beforeDoctypeNameState, false, doctypeNameState},
		{'\t', doctypeNameState, false, afterDoctypeNameState},
		{'\t', afterDoctypePublicKeywordState, false, beforeDoctypePublicIdentifierState},
		{'"', beforeDoctypePublicIdentifierState, false, doctypePublicIdentifierDoubleQuotedState},
		{'"', doctypePublicIdentifierDoubleQuotedState, false, afterDoctypePublicIdentifierState},
		{'\t', afterDoctypePublicIdentifierState, false, betweenDoctypePublicAndSystemIdentifiersState},
		{'"', betweenDoctypePublicAndSystemIdentifiersState, false, doctypeSystemIdentifierDoubleQuotedState},
		{'"', doctypeSystemIdentifierDoubleQuotedState, false, afterDoctypeSystemIdentifierState},
		{'a', afterDoctypeSystemIdentifierState, true, bogusDoctypeState},
		{'a', bogusDoctypeState, false, bogusDoctypeState},

		{']', cdataSectionState, false, cdataSectionBracketState},
		{']', cdataSectionBracketState, false, cdataSectionEndState},
		{']', cdataSectionEndState, false, cdataSectionEndState},
		{'>', cdataSectionEndState, false, dataState},
		{'a', cdataSectionEndState, true, cdataSectionState},
	}

	for _, tt := range stateParserTests {
		z := NewHTMLTokenizer("", nil)
		z.tokenBuilder.Reset()
		reconsume, next := z.stateHandler(tt.startingState)(tt.inRune, false)
		assert.Equal(t, tt.shouldReconsume, reconsume,
			"state %d rune %q reconsume", tt.startingState, tt.inRune)
		assert.Equal(t, tt.nextExpectedState, next,
			"state %d rune %q next state", tt.startingState, tt.inRune)
	}
}

func TestNormalizeNewlines(t *testing.T) {
	assert.Equal(t, []rune("a\nb"), normalizeNewlines("a\r\nb"))
	assert.Equal(t, []rune("a\nb"), normalizeNewlines("a\rb"))
	assert.Equal(t, []rune("a\n"), normalizeNewlines("a\r"))
	assert.Equal(t, []rune("a\n\nb"), normalizeNewlines("a\r\r\nb"))
}

func TestTokenizerErrorsCarryOffsets(t *testing.T) {
	z := NewHTMLTokenizer("<p a=1 a=2>", nil)
	for z.Next() {
		if z.Token(nil) == nil {
			break
		}
	}
	errs := z.Errors()
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrDuplicateAttribute, errs[0].Code)
	assert.GreaterOrEqual(t, errs[0].Offset, 0)
}

func TestTokenizerDiscardBOM(t *testing.T) {
	z := NewHTMLTokenizer("\uFEFFa", &TokenizerOptions{DiscardBOM: true})
	tok := z.Token(nil)
	require.NotNil(t, tok)
	assert.Equal(t, characterToken, tok.TokenType)
	assert.Equal(t, "a", tok.Data)
}

func TestTokenizerXMLCoercion(t *testing.T) {
	z := NewHTMLTokenizer("a\fb<!--x--y-->", &TokenizerOptions{XMLCoercion: true})
	var text string
	var comment string
	for z.Next() {
		tok := z.Token(nil)
		if tok == nil {
			break
		}
		switch tok.TokenType {
		case characterToken:
			text += tok.Data
		case commentToken:
			comment = tok.Data
		}
	}
	assert.Equal(t, "a b", text)
	assert.Equal(t, "x- -y", comment)
}
