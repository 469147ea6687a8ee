package parser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alex-kinokon/justhtml/parser/entity"
	"github.com/alex-kinokon/justhtml/parser/spec"
)

// State selects the tokenizer's initial state, for fragment parsing and
// for driving the tokenizer standalone in tests.
type State uint

const (
	DataState State = iota
	RCDATAState
	RawTextState
	ScriptDataState
	PlaintextState
	CDATASectionState
)

// TokenizerOptions configure an HTMLTokenizer.
type TokenizerOptions struct {
	// InitialState is the state the tokenizer starts in.
	InitialState State
	// InitialRawTextTag seeds the "last start tag" latch used by end-tag
	// matching in the RCDATA / raw-text / script-data states.
	InitialRawTextTag string
	// DiscardBOM drops a leading U+FEFF from the input.
	DiscardBOM bool
	// XMLCoercion rewrites code points and comment data that would be
	// illegal in an XML document.
	XMLCoercion bool
}

// HTMLTokenizer holds state for the various states of the tokenizer.
type HTMLTokenizer struct {
	input        []rune
	pos          int
	opts         TokenizerOptions
	currentState tokenizerState

	adjustedCurrentNode *spec.Node
	tokenBuilder        *TokenBuilder
	pending             []Token
	errors              []ParseError

	// text-run buffering; runs from the data and RCDATA states pass
	// through the entity decoder when flushed.
	textRun      strings.Builder
	runDecodable bool
	runSawAmp    bool

	lastEmittedStartTagName string
	eofProcessed            bool
	done                    bool
}

// NewHTMLTokenizer creates a tokenizer over already-decoded text. The
// input has its newlines normalized up front: CRLF and lone CR both
// become LF.
func NewHTMLTokenizer(input string, opts *TokenizerOptions) *HTMLTokenizer {
	if opts == nil {
		opts = &TokenizerOptions{}
	}
	z := &HTMLTokenizer{
		opts:                    *opts,
		tokenBuilder:            newTokenBuilder(),
		lastEmittedStartTagName: opts.InitialRawTextTag,
	}
	z.input = normalizeNewlines(input)
	if opts.DiscardBOM && len(z.input) > 0 && z.input[0] == '\uFEFF' {
		z.input = z.input[1:]
	}
	switch opts.InitialState {
	case RCDATAState:
		z.currentState = rcDataState
	case RawTextState:
		z.currentState = rawTextState
	case ScriptDataState:
		z.currentState = scriptDataState
	case PlaintextState:
		z.currentState = plaintextState
	case CDATASectionState:
		z.currentState = cdataSectionState
	default:
		z.currentState = dataState
	}
	return z
}

func normalizeNewlines(input string) []rune {
	out := make([]rune, 0, len(input))
	var lastCR bool
	for _, r := range input {
		switch r {
		case '\r':
			out = append(out, '\n')
			lastCR = true
			continue
		case '\n':
			if lastCR {
				lastCR = false
				continue
			}
		}
		lastCR = false
		out = append(out, r)
	}
	return out
}

// Errors returns the parse errors the tokenizer has collected so far.
func (z *HTMLTokenizer) Errors() []ParseError {
	return z.errors
}

func (z *HTMLTokenizer) err(code ErrorCode) {
	z.errors = append(z.errors, ParseError{Code: code, Offset: z.pos - 1})
}

// Next reports whether Token will produce another token.
func (z *HTMLTokenizer) Next() bool {
	return !z.done
}

// Token returns the next token. The tree constructor's Progress carries
// its view of the adjusted current node (for CDATA and raw-text
// decisions) and, when set, a tokenizer state override.
func (z *HTMLTokenizer) Token(progress *Progress) *Token {
	if progress != nil {
		z.adjustedCurrentNode = progress.AdjustedCurrentNode
		if progress.TokenizerState != nil {
			z.flushText()
			z.currentState = *progress.TokenizerState
			progress.TokenizerState = nil
		}
	}
	for {
		if len(z.pending) > 0 {
			t := z.pending[0]
			z.pending = z.pending[1:]
			if t.TokenType == endOfFileToken {
				z.done = true
			}
			return &t
		}
		if z.eofProcessed {
			z.done = true
			return nil
		}
		z.Step()
	}
}

// Step performs at most one state's worth of work: it consumes one input
// character (or the end-of-file sentinel) and runs it through the state
// machine, including reconsumptions. It reports whether input remains.
func (z *HTMLTokenizer) Step() bool {
	if z.eofProcessed {
		return false
	}
	eof := z.pos >= len(z.input)
	var r rune
	if !eof {
		r = z.input[z.pos]
		z.pos++
	}
	reconsume := true
	for reconsume {
		handler := z.stateHandler(z.currentState)
		reconsume, z.currentState = handler(r, eof)
		if log.IsLevelEnabled(logrus.DebugLevel) {
			log.WithFields(logrus.Fields{"rune": string(r), "state": z.currentState}).Debug("tokenize")
		}
	}
	if eof {
		z.eofProcessed = true
	}
	return !z.eofProcessed
}

// Run drives Step until the end of input.
func (z *HTMLTokenizer) Run() {
	for z.Step() {
	}
}

func (z *HTMLTokenizer) peekEquals(s string, fold bool) bool {
	if z.pos+len(s) > len(z.input) {
		return false
	}
	for i, c := range s {
		r := z.input[z.pos+i]
		if fold && r >= 'A' && r <= 'Z' {
			r += 0x20
		}
		if r != c {
			return false
		}
	}
	return true
}

func (z *HTMLTokenizer) discard(n int) {
	z.pos += n
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isWhitespace(r rune) bool {
	switch r {
	case '\t', '\n', '\f', ' ':
		return true
	}
	return false
}

func isXMLIllegal(r rune) bool {
	if r >= 0xFDD0 && r <= 0xFDEF {
		return true
	}
	return r&0xFFFE == 0xFFFE && r <= 0x10FFFF
}

// emitChar appends a character to the pending text run. decodable marks
// runs that may contain character references (data and RCDATA content).
func (z *HTMLTokenizer) emitChar(r rune, decodable bool) {
	if z.textRun.Len() > 0 && decodable != z.runDecodable {
		z.flushText()
	}
	z.runDecodable = decodable
	if r == '&' && decodable {
		z.runSawAmp = true
	}
	z.textRun.WriteRune(r)
}

// flushText converts the pending run into character tokens, decoding
// character references when the run saw an ampersand in decodable
// content.
func (z *HTMLTokenizer) flushText() {
	if z.textRun.Len() == 0 {
		return
	}
	s := z.textRun.String()
	z.textRun.Reset()
	if z.runDecodable && z.runSawAmp {
		s = entity.Decode(s, false)
	}
	z.runSawAmp = false
	for _, r := range s {
		if z.opts.XMLCoercion {
			if r == '\f' {
				r = ' '
			} else if isXMLIllegal(r) {
				r = '�'
			}
		}
		z.pending = append(z.pending, Token{TokenType: characterToken, Data: string(r)})
	}
}

func (z *HTMLTokenizer) emit(tokens ...Token) {
	z.flushText()
	for _, token := range tokens {
		switch token.TokenType {
		case endTagToken:
			if len(token.Attributes) > 0 {
				z.err(ErrEndTagWithAttributes)
				token.Attributes = nil
			}
			if token.SelfClosing {
				z.err(ErrEndTagWithTrailingSolidus)
				token.SelfClosing = false
			}
		case startTagToken:
			z.lastEmittedStartTagName = token.TagName
		case commentToken:
			if z.opts.XMLCoercion {
				token.Data = coerceComment(token.Data)
			}
		}
		z.pending = append(z.pending, token)
	}
}

func coerceComment(data string) string {
	data = strings.ReplaceAll(data, "--", "- -")
	var sb strings.Builder
	for _, r := range data {
		switch {
		case r == '\f':
			sb.WriteRune(' ')
		case isXMLIllegal(r):
			sb.WriteRune('�')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func (z *HTMLTokenizer) isApprEndTagToken() bool {
	return z.lastEmittedStartTagName == z.tokenBuilder.name.String()
}

// atHTMLContent reports whether raw-text switching applies: the tree
// constructor's adjusted current node is either absent (standalone
// tokenizing) or in the HTML namespace.
func (z *HTMLTokenizer) atHTMLContent() bool {
	return z.adjustedCurrentNode == nil || z.adjustedCurrentNode.Namespace == spec.HTMLNamespace
}

// emitCurrentTag finalizes the tag under construction, emits it, and
// picks the state that follows it. Start tags naming RCDATA or raw-text
// elements switch the tokenizer when the current content is HTML.
func (z *HTMLTokenizer) emitCurrentTag() tokenizerState {
	z.tokenBuilder.CommitAttribute()
	next := dataState
	switch z.tokenBuilder.curTagType {
	case startTag:
		t := z.tokenBuilder.StartTagToken()
		z.emit(t)
		if z.atHTMLContent() {
			switch t.TagName {
			case "title", "textarea":
				next = rcDataState
			case "style", "iframe", "noembed", "noframes", "xmp":
				next = rawTextState
			case "script":
				next = scriptDataState
			case "plaintext":
				next = plaintextState
			}
		}
	case endTag:
		z.emit(z.tokenBuilder.EndTagToken())
	}
	return next
}

// a stateHandler takes the current input character (and whether the input
// is exhausted) and returns whether to reconsume it plus the state to
// transition to.
type stateHandler func(r rune, eof bool) (bool, tokenizerState)

type tokenizerState uint

const (
	dataState tokenizerState = iota
	rcDataState
	rawTextState
	scriptDataState
	plaintextState
	tagOpenState
	endTagOpenState
	tagNameState
	rcDataLessThanSignState
	rcDataEndTagOpenState
	rcDataEndTagNameState
	rawTextLessThanSignState
	rawTextEndTagOpenState
	rawTextEndTagNameState
	scriptDataLessThanSignState
	scriptDataEndTagOpenState
	scriptDataEndTagNameState
	scriptDataEscapeStartState
	scriptDataEscapeStartDashState
	scriptDataEscapedState
	scriptDataEscapedDashState
	scriptDataEscapedDashDashState
	scriptDataEscapedLessThanSignState
	scriptDataEscapedEndTagOpenState
	scriptDataEscapedEndTagNameState
	scriptDataDoubleEscapeStartState
	scriptDataDoubleEscapedState
	scriptDataDoubleEscapedDashState
	scriptDataDoubleEscapedDashDashState
	scriptDataDoubleEscapedLessThanSignState
	scriptDataDoubleEscapeEndState
	beforeAttributeNameState
	attributeNameState
	afterAttributeNameState
	beforeAttributeValueState
	attributeValueDoubleQuotedState
	attributeValueSingleQuotedState
	attributeValueUnquotedState
	afterAttributeValueQuotedState
	selfClosingStartTagState
	bogusCommentState
	markupDeclarationOpenState
	commentStartState
	commentStartDashState
	commentState
	commentLessThanSignState
	commentLessThanSignBangState
	commentLessThanSignBangDashState
	commentLessThanSignBangDashDashState
	commentEndDashState
	commentEndState
	commentEndBangState
	doctypeState
	beforeDoctypeNameState
	doctypeNameState
	afterDoctypeNameState
	afterDoctypePublicKeywordState
	beforeDoctypePublicIdentifierState
	doctypePublicIdentifierDoubleQuotedState
	doctypePublicIdentifierSingleQuotedState
	afterDoctypePublicIdentifierState
	betweenDoctypePublicAndSystemIdentifiersState
	afterDoctypeSystemKeywordState
	beforeDoctypeSystemIdentifierState
	doctypeSystemIdentifierDoubleQuotedState
	doctypeSystemIdentifierSingleQuotedState
	afterDoctypeSystemIdentifierState
	bogusDoctypeState
	cdataSectionState
	cdataSectionBracketState
	cdataSectionEndState
)

func (z *HTMLTokenizer) stateHandler(state tokenizerState) stateHandler {
	switch state {
	case dataState:
		return z.dataStateParser
	case rcDataState:
		return z.rcDataStateParser
	case rawTextState:
		return z.rawTextStateParser
	case scriptDataState:
		return z.scriptDataStateParser
	case plaintextState:
		return z.plaintextStateParser
	case tagOpenState:
		return z.tagOpenStateParser
	case endTagOpenState:
		return z.endTagOpenStateParser
	case tagNameState:
		return z.tagNameStateParser
	case rcDataLessThanSignState:
		return z.rcDataLessThanSignStateParser
	case rcDataEndTagOpenState:
		return z.rcDataEndTagOpenStateParser
	case rcDataEndTagNameState:
		return z.rcDataEndTagNameStateParser
	case rawTextLessThanSignState:
		return z.rawTextLessThanSignStateParser
	case rawTextEndTagOpenState:
		return z.rawTextEndTagOpenStateParser
	case rawTextEndTagNameState:
		return z.rawTextEndTagNameStateParser
	case scriptDataLessThanSignState:
		return z.scriptDataLessThanSignStateParser
	case scriptDataEndTagOpenState:
		return z.scriptDataEndTagOpenStateParser
	case scriptDataEndTagNameState:
		return z.scriptDataEndTagNameStateParser
	case scriptDataEscapeStartState:
		return z.scriptDataEscapeStartStateParser
	case scriptDataEscapeStartDashState:
		return z.scriptDataEscapeStartDashStateParser
	case scriptDataEscapedState:
		return z.scriptDataEscapedStateParser
	case scriptDataEscapedDashState:
		return z.scriptDataEscapedDashStateParser
	case scriptDataEscapedDashDashState:
		return z.scriptDataEscapedDashDashStateParser
	case scriptDataEscapedLessThanSignState:
		return z.scriptDataEscapedLessThanSignStateParser
	case scriptDataEscapedEndTagOpenState:
		return z.scriptDataEscapedEndTagOpenStateParser
	case scriptDataEscapedEndTagNameState:
		return z.scriptDataEscapedEndTagNameStateParser
	case scriptDataDoubleEscapeStartState:
		return z.scriptDataDoubleEscapeStartStateParser
	case scriptDataDoubleEscapedState:
		return z.scriptDataDoubleEscapedStateParser
	case scriptDataDoubleEscapedDashState:
		return z.scriptDataDoubleEscapedDashStateParser
	case scriptDataDoubleEscapedDashDashState:
		return z.scriptDataDoubleEscapedDashDashStateParser
	case scriptDataDoubleEscapedLessThanSignState:
		return z.scriptDataDoubleEscapedLessThanSignStateParser
	case scriptDataDoubleEscapeEndState:
		return z.scriptDataDoubleEscapeEndStateParser
	case beforeAttributeNameState:
		return z.beforeAttributeNameStateParser
	case attributeNameState:
		return z.attributeNameStateParser
	case afterAttributeNameState:
		return z.afterAttributeNameStateParser
	case beforeAttributeValueState:
		return z.beforeAttributeValueStateParser
	case attributeValueDoubleQuotedState:
		return z.attributeValueDoubleQuotedStateParser
	case attributeValueSingleQuotedState:
		return z.attributeValueSingleQuotedStateParser
	case attributeValueUnquotedState:
		return z.attributeValueUnquotedStateParser
	case afterAttributeValueQuotedState:
		return z.afterAttributeValueQuotedStateParser
	case selfClosingStartTagState:
		return z.selfClosingStartTagStateParser
	case bogusCommentState:
		return z.bogusCommentStateParser
	case markupDeclarationOpenState:
		return z.markupDeclarationOpenStateParser
	case commentStartState:
		return z.commentStartStateParser
	case commentStartDashState:
		return z.commentStartDashStateParser
	case commentState:
		return z.commentStateParser
	case commentLessThanSignState:
		return z.commentLessThanSignStateParser
	case commentLessThanSignBangState:
		return z.commentLessThanSignBangStateParser
	case commentLessThanSignBangDashState:
		return z.commentLessThanSignBangDashStateParser
	case commentLessThanSignBangDashDashState:
		return z.commentLessThanSignBangDashDashStateParser
	case commentEndDashState:
		return z.commentEndDashStateParser
	case commentEndState:
		return z.commentEndStateParser
	case commentEndBangState:
		return z.commentEndBangStateParser
	case doctypeState:
		return z.doctypeStateParser
	case beforeDoctypeNameState:
		return z.beforeDoctypeNameStateParser
	case doctypeNameState:
		return z.doctypeNameStateParser
	case afterDoctypeNameState:
		return z.afterDoctypeNameStateParser
	case afterDoctypePublicKeywordState:
		return z.afterDoctypePublicKeywordStateParser
	case beforeDoctypePublicIdentifierState:
		return z.beforeDoctypePublicIdentifierStateParser
	case doctypePublicIdentifierDoubleQuotedState:
		return z.doctypePublicIdentifierDoubleQuotedStateParser
	case doctypePublicIdentifierSingleQuotedState:
		return z.doctypePublicIdentifierSingleQuotedStateParser
	case afterDoctypePublicIdentifierState:
		return z.afterDoctypePublicIdentifierStateParser
	case betweenDoctypePublicAndSystemIdentifiersState:
		return z.betweenDoctypePublicAndSystemIdentifiersStateParser
	case afterDoctypeSystemKeywordState:
		return z.afterDoctypeSystemKeywordStateParser
	case beforeDoctypeSystemIdentifierState:
		return z.beforeDoctypeSystemIdentifierStateParser
	case doctypeSystemIdentifierDoubleQuotedState:
		return z.doctypeSystemIdentifierDoubleQuotedStateParser
	case doctypeSystemIdentifierSingleQuotedState:
		return z.doctypeSystemIdentifierSingleQuotedStateParser
	case afterDoctypeSystemIdentifierState:
		return z.afterDoctypeSystemIdentifierStateParser
	case bogusDoctypeState:
		return z.bogusDoctypeStateParser
	case cdataSectionState:
		return z.cdataSectionStateParser
	case cdataSectionBracketState:
		return z.cdataSectionBracketStateParser
	case cdataSectionEndState:
		return z.cdataSectionEndStateParser
	}
	return nil
}

func (z *HTMLTokenizer) dataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '<':
		return false, tagOpenState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.emitChar(r, true)
		return false, dataState
	default:
		z.emitChar(r, true)
		return false, dataState
	}
}

func (z *HTMLTokenizer) rcDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '<':
		return false, rcDataLessThanSignState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.emitChar('�', true)
		return false, rcDataState
	default:
		z.emitChar(r, true)
		return false, rcDataState
	}
}

func (z *HTMLTokenizer) rawTextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '<':
		return false, rawTextLessThanSignState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.emitChar('�', false)
		return false, rawTextState
	default:
		z.emitChar(r, false)
		return false, rawTextState
	}
}

func (z *HTMLTokenizer) scriptDataStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '<':
		return false, scriptDataLessThanSignState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.emitChar('�', false)
		return false, scriptDataState
	default:
		z.emitChar(r, false)
		return false, scriptDataState
	}
}

func (z *HTMLTokenizer) plaintextStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.emitChar('�', false)
		return false, plaintextState
	default:
		z.emitChar(r, false)
		return false, plaintextState
	}
}

func (z *HTMLTokenizer) tagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFBeforeTagName)
		z.emitChar('<', true)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case r == '!':
		return false, markupDeclarationOpenState
	case r == '/':
		return false, endTagOpenState
	case isASCIIAlpha(r):
		z.tokenBuilder.Reset()
		z.tokenBuilder.curTagType = startTag
		return true, tagNameState
	case r == '?':
		z.err(ErrUnexpectedQuestionMark)
		z.tokenBuilder.Reset()
		return true, bogusCommentState
	default:
		z.err(ErrInvalidFirstCharacterOfTagName)
		z.emitChar('<', true)
		return true, dataState
	}
}

func (z *HTMLTokenizer) endTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFBeforeTagName)
		z.emitChar('<', true)
		z.emitChar('/', true)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isASCIIAlpha(r):
		z.tokenBuilder.Reset()
		z.tokenBuilder.curTagType = endTag
		return true, tagNameState
	case r == '>':
		z.err(ErrMissingEndTagName)
		return false, dataState
	default:
		z.err(ErrInvalidFirstCharacterOfTagName)
		z.tokenBuilder.Reset()
		return true, bogusCommentState
	}
}

func (z *HTMLTokenizer) tagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, z.emitCurrentTag()
	case isASCIIUpper(r):
		z.tokenBuilder.WriteName(r + 0x20)
		return false, tagNameState
	case r == '\u0000':
		z.err(ErrUnexpectedNull)
		z.tokenBuilder.WriteName('�')
		return false, tagNameState
	default:
		z.tokenBuilder.WriteName(r)
		return false, tagNameState
	}
}

func (z *HTMLTokenizer) rcDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		z.tokenBuilder.ResetTempBuffer()
		return false, rcDataEndTagOpenState
	}
	z.emitChar('<', true)
	return true, rcDataState
}

func (z *HTMLTokenizer) rcDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		z.tokenBuilder.Reset()
		z.tokenBuilder.curTagType = endTag
		return true, rcDataEndTagNameState
	}
	z.emitChar('<', true)
	z.emitChar('/', true)
	return true, rcDataState
}

// endTagNameStateParser implements the shared shape of the RCDATA,
// raw-text, script-data and escaped-script-data end-tag-name states: only
// an end tag matching the latched start tag closes the special content.
func (z *HTMLTokenizer) endTagNameStateParser(r rune, eof bool, self, fallback tokenizerState) (bool, tokenizerState) {
	if !eof {
		switch {
		case isWhitespace(r):
			if z.isApprEndTagToken() {
				return false, beforeAttributeNameState
			}
		case r == '/':
			if z.isApprEndTagToken() {
				return false, selfClosingStartTagState
			}
		case r == '>':
			if z.isApprEndTagToken() {
				return false, z.emitCurrentTag()
			}
		case isASCIIUpper(r):
			z.tokenBuilder.WriteTempBuffer(r)
			z.tokenBuilder.WriteName(r + 0x20)
			return false, self
		case isASCIIAlpha(r):
			z.tokenBuilder.WriteTempBuffer(r)
			z.tokenBuilder.WriteName(r)
			return false, self
		}
	}
	z.emitChar('<', false)
	z.emitChar('/', false)
	for _, tb := range z.tokenBuilder.TempBuffer() {
		z.emitChar(tb, false)
	}
	return true, fallback
}

func (z *HTMLTokenizer) rcDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.endTagNameStateParser(r, eof, rcDataEndTagNameState, rcDataState)
}

func (z *HTMLTokenizer) rawTextLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		z.tokenBuilder.ResetTempBuffer()
		return false, rawTextEndTagOpenState
	}
	z.emitChar('<', false)
	return true, rawTextState
}

func (z *HTMLTokenizer) rawTextEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		z.tokenBuilder.Reset()
		z.tokenBuilder.curTagType = endTag
		return true, rawTextEndTagNameState
	}
	z.emitChar('<', false)
	z.emitChar('/', false)
	return true, rawTextState
}

func (z *HTMLTokenizer) rawTextEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.endTagNameStateParser(r, eof, rawTextEndTagNameState, rawTextState)
}

func (z *HTMLTokenizer) scriptDataLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '/':
			z.tokenBuilder.ResetTempBuffer()
			return false, scriptDataEndTagOpenState
		case '!':
			z.emitChar('<', false)
			z.emitChar('!', false)
			return false, scriptDataEscapeStartState
		}
	}
	z.emitChar('<', false)
	return true, scriptDataState
}

func (z *HTMLTokenizer) scriptDataEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		z.tokenBuilder.Reset()
		z.tokenBuilder.curTagType = endTag
		return true, scriptDataEndTagNameState
	}
	z.emitChar('<', false)
	z.emitChar('/', false)
	return true, scriptDataState
}

func (z *HTMLTokenizer) scriptDataEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.endTagNameStateParser(r, eof, scriptDataEndTagNameState, scriptDataState)
}

func (z *HTMLTokenizer) scriptDataEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		z.emitChar('-', false)
		return false, scriptDataEscapeStartDashState
	}
	return true, scriptDataState
}

func (z *HTMLTokenizer) scriptDataEscapeStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		z.emitChar('-', false)
		return false, scriptDataEscapedDashDashState
	}
	return true, scriptDataState
}

func (z *HTMLTokenizer) scriptDataEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInScriptCommentLikeText)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.emitChar('-', false)
		return false, scriptDataEscapedDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.emitChar('�', false)
		return false, scriptDataEscapedState
	default:
		z.emitChar(r, false)
		return false, scriptDataEscapedState
	}
}

func (z *HTMLTokenizer) scriptDataEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInScriptCommentLikeText)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.emitChar('-', false)
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.emitChar('�', false)
		return false, scriptDataEscapedState
	default:
		z.emitChar(r, false)
		return false, scriptDataEscapedState
	}
}

func (z *HTMLTokenizer) scriptDataEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInScriptCommentLikeText)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.emitChar('-', false)
		return false, scriptDataEscapedDashDashState
	case '<':
		return false, scriptDataEscapedLessThanSignState
	case '>':
		z.emitChar('>', false)
		return false, scriptDataState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.emitChar('�', false)
		return false, scriptDataEscapedState
	default:
		z.emitChar(r, false)
		return false, scriptDataEscapedState
	}
}

func (z *HTMLTokenizer) scriptDataEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case r == '/':
			z.tokenBuilder.ResetTempBuffer()
			return false, scriptDataEscapedEndTagOpenState
		case isASCIIAlpha(r):
			z.tokenBuilder.ResetTempBuffer()
			z.emitChar('<', false)
			return true, scriptDataDoubleEscapeStartState
		}
	}
	z.emitChar('<', false)
	return true, scriptDataEscapedState
}

func (z *HTMLTokenizer) scriptDataEscapedEndTagOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && isASCIIAlpha(r) {
		z.tokenBuilder.Reset()
		z.tokenBuilder.curTagType = endTag
		return true, scriptDataEscapedEndTagNameState
	}
	z.emitChar('<', false)
	z.emitChar('/', false)
	return true, scriptDataEscapedState
}

func (z *HTMLTokenizer) scriptDataEscapedEndTagNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.endTagNameStateParser(r, eof, scriptDataEscapedEndTagNameState, scriptDataEscapedState)
}

func (z *HTMLTokenizer) scriptDataDoubleEscapeStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isWhitespace(r) || r == '/' || r == '>':
			z.emitChar(r, false)
			if z.tokenBuilder.TempBuffer() == "script" {
				return false, scriptDataDoubleEscapedState
			}
			return false, scriptDataEscapedState
		case isASCIIUpper(r):
			z.emitChar(r, false)
			z.tokenBuilder.WriteTempBuffer(r + 0x20)
			return false, scriptDataDoubleEscapeStartState
		case isASCIIAlpha(r):
			z.emitChar(r, false)
			z.tokenBuilder.WriteTempBuffer(r)
			return false, scriptDataDoubleEscapeStartState
		}
	}
	return true, scriptDataEscapedState
}

func (z *HTMLTokenizer) scriptDataDoubleEscapedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInScriptCommentLikeText)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.emitChar('-', false)
		return false, scriptDataDoubleEscapedDashState
	case '<':
		z.emitChar('<', false)
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.emitChar('�', false)
		return false, scriptDataDoubleEscapedState
	default:
		z.emitChar(r, false)
		return false, scriptDataDoubleEscapedState
	}
}

func (z *HTMLTokenizer) scriptDataDoubleEscapedDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInScriptCommentLikeText)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.emitChar('-', false)
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		z.emitChar('<', false)
		return false, scriptDataDoubleEscapedLessThanSignState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.emitChar('�', false)
		return false, scriptDataDoubleEscapedState
	default:
		z.emitChar(r, false)
		return false, scriptDataDoubleEscapedState
	}
}

func (z *HTMLTokenizer) scriptDataDoubleEscapedDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInScriptCommentLikeText)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.emitChar('-', false)
		return false, scriptDataDoubleEscapedDashDashState
	case '<':
		z.emitChar('<', false)
		return false, scriptDataDoubleEscapedLessThanSignState
	case '>':
		z.emitChar('>', false)
		return false, scriptDataState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.emitChar('�', false)
		return false, scriptDataDoubleEscapedState
	default:
		z.emitChar(r, false)
		return false, scriptDataDoubleEscapedState
	}
}

func (z *HTMLTokenizer) scriptDataDoubleEscapedLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '/' {
		z.tokenBuilder.ResetTempBuffer()
		z.emitChar('/', false)
		return false, scriptDataDoubleEscapeEndState
	}
	return true, scriptDataDoubleEscapedState
}

func (z *HTMLTokenizer) scriptDataDoubleEscapeEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch {
		case isWhitespace(r) || r == '/' || r == '>':
			z.emitChar(r, false)
			if z.tokenBuilder.TempBuffer() == "script" {
				return false, scriptDataEscapedState
			}
			return false, scriptDataDoubleEscapedState
		case isASCIIUpper(r):
			z.emitChar(r, false)
			z.tokenBuilder.WriteTempBuffer(r + 0x20)
			return false, scriptDataDoubleEscapeEndState
		case isASCIIAlpha(r):
			z.emitChar(r, false)
			z.tokenBuilder.WriteTempBuffer(r)
			return false, scriptDataDoubleEscapeEndState
		}
	}
	return true, scriptDataDoubleEscapedState
}

func (z *HTMLTokenizer) beforeAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, afterAttributeNameState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/' || r == '>':
		return true, afterAttributeNameState
	case r == '=':
		z.err(ErrUnexpectedEqualsBeforeAttribute)
		z.tokenBuilder.CommitAttribute()
		z.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		z.tokenBuilder.CommitAttribute()
		return true, attributeNameState
	}
}

func (z *HTMLTokenizer) attributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		if z.tokenBuilder.MarkDuplicateAttribute() {
			z.err(ErrDuplicateAttribute)
		}
		return true, afterAttributeNameState
	}
	switch {
	case isWhitespace(r) || r == '/' || r == '>':
		if z.tokenBuilder.MarkDuplicateAttribute() {
			z.err(ErrDuplicateAttribute)
		}
		return true, afterAttributeNameState
	case r == '=':
		if z.tokenBuilder.MarkDuplicateAttribute() {
			z.err(ErrDuplicateAttribute)
		}
		return false, beforeAttributeValueState
	case isASCIIUpper(r):
		z.tokenBuilder.WriteAttributeName(r + 0x20)
		return false, attributeNameState
	case r == '\u0000':
		z.err(ErrUnexpectedNull)
		z.tokenBuilder.WriteAttributeName('�')
		return false, attributeNameState
	case r == '"' || r == '\'' || r == '<':
		z.err(ErrUnexpectedCharInAttributeName)
		z.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	default:
		z.tokenBuilder.WriteAttributeName(r)
		return false, attributeNameState
	}
}

func (z *HTMLTokenizer) afterAttributeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, afterAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '=':
		return false, beforeAttributeValueState
	case r == '>':
		return false, z.emitCurrentTag()
	default:
		z.tokenBuilder.CommitAttribute()
		return true, attributeNameState
	}
}

func (z *HTMLTokenizer) beforeAttributeValueStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		return true, attributeValueUnquotedState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeValueState
	case r == '"':
		return false, attributeValueDoubleQuotedState
	case r == '\'':
		return false, attributeValueSingleQuotedState
	case r == '>':
		z.err(ErrMissingAttributeValue)
		return false, z.emitCurrentTag()
	default:
		return true, attributeValueUnquotedState
	}
}

func (z *HTMLTokenizer) attributeValueDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '"':
		return false, afterAttributeValueQuotedState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueDoubleQuotedState
	default:
		z.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueDoubleQuotedState
	}
}

func (z *HTMLTokenizer) attributeValueSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '\'':
		return false, afterAttributeValueQuotedState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueSingleQuotedState
	default:
		z.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueSingleQuotedState
	}
}

func (z *HTMLTokenizer) attributeValueUnquotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '>':
		return false, z.emitCurrentTag()
	case r == '\u0000':
		z.err(ErrUnexpectedNull)
		z.tokenBuilder.WriteAttributeValue('�')
		return false, attributeValueUnquotedState
	case r == '"' || r == '\'' || r == '<' || r == '=' || r == '`':
		z.err(ErrUnexpectedCharInUnquotedValue)
		z.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	default:
		z.tokenBuilder.WriteAttributeValue(r)
		return false, attributeValueUnquotedState
	}
}

func (z *HTMLTokenizer) afterAttributeValueQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeAttributeNameState
	case r == '/':
		return false, selfClosingStartTagState
	case r == '>':
		return false, z.emitCurrentTag()
	default:
		z.err(ErrMissingWhitespaceBetweenAttributes)
		return true, beforeAttributeNameState
	}
}

func (z *HTMLTokenizer) selfClosingStartTagStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInTag)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	if r == '>' {
		z.tokenBuilder.EnableSelfClosing()
		return false, z.emitCurrentTag()
	}
	z.err(ErrUnexpectedSolidusInTag)
	return true, beforeAttributeNameState
}

func (z *HTMLTokenizer) bogusCommentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.CommentToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		z.emit(z.tokenBuilder.CommentToken())
		return false, dataState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.tokenBuilder.WriteData('�')
		return false, bogusCommentState
	default:
		z.tokenBuilder.WriteData(r)
		return false, bogusCommentState
	}
}

func (z *HTMLTokenizer) markupDeclarationOpenStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '-':
			if z.peekEquals("-", false) {
				z.discard(1)
				z.tokenBuilder.Reset()
				return false, commentStartState
			}
		case 'D', 'd':
			if z.peekEquals("octype", true) {
				z.discard(6)
				return false, doctypeState
			}
		case '[':
			if z.peekEquals("CDATA[", false) {
				z.discard(6)
				if z.adjustedCurrentNode != nil && z.adjustedCurrentNode.Namespace != spec.HTMLNamespace {
					return false, cdataSectionState
				}
				z.err(ErrCDATAInHTMLContent)
				z.tokenBuilder.Reset()
				for _, c := range "[CDATA[" {
					z.tokenBuilder.WriteData(c)
				}
				return false, bogusCommentState
			}
		}
	}
	z.err(ErrIncorrectlyOpenedComment)
	z.tokenBuilder.Reset()
	return true, bogusCommentState
}

func (z *HTMLTokenizer) commentStartStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '-':
			return false, commentStartDashState
		case '>':
			z.err(ErrAbruptClosingOfEmptyComment)
			z.emit(z.tokenBuilder.CommentToken())
			return false, dataState
		}
	}
	return true, commentState
}

func (z *HTMLTokenizer) commentStartDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInComment)
		z.emit(z.tokenBuilder.CommentToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		return false, commentEndState
	case '>':
		z.err(ErrAbruptClosingOfEmptyComment)
		z.emit(z.tokenBuilder.CommentToken())
		return false, dataState
	default:
		z.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (z *HTMLTokenizer) commentStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInComment)
		z.emit(z.tokenBuilder.CommentToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '<':
		z.tokenBuilder.WriteData(r)
		return false, commentLessThanSignState
	case '-':
		return false, commentEndDashState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.tokenBuilder.WriteData('�')
		return false, commentState
	default:
		z.tokenBuilder.WriteData(r)
		return false, commentState
	}
}

func (z *HTMLTokenizer) commentLessThanSignStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case '!':
			z.tokenBuilder.WriteData(r)
			return false, commentLessThanSignBangState
		case '<':
			z.tokenBuilder.WriteData(r)
			return false, commentLessThanSignState
		}
	}
	return true, commentState
}

func (z *HTMLTokenizer) commentLessThanSignBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashState
	}
	return true, commentState
}

func (z *HTMLTokenizer) commentLessThanSignBangDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == '-' {
		return false, commentLessThanSignBangDashDashState
	}
	return true, commentEndDashState
}

func (z *HTMLTokenizer) commentLessThanSignBangDashDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r != '>' {
		z.err(ErrNestedComment)
	}
	return true, commentEndState
}

func (z *HTMLTokenizer) commentEndDashStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInComment)
		z.emit(z.tokenBuilder.CommentToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	if r == '-' {
		return false, commentEndState
	}
	z.tokenBuilder.WriteData('-')
	return true, commentState
}

func (z *HTMLTokenizer) commentEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInComment)
		z.emit(z.tokenBuilder.CommentToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		z.emit(z.tokenBuilder.CommentToken())
		return false, dataState
	case '!':
		return false, commentEndBangState
	case '-':
		z.tokenBuilder.WriteData('-')
		return false, commentEndState
	default:
		z.tokenBuilder.WriteData('-')
		z.tokenBuilder.WriteData('-')
		return true, commentState
	}
}

func (z *HTMLTokenizer) commentEndBangStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInComment)
		z.emit(z.tokenBuilder.CommentToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '-':
		z.tokenBuilder.WriteData('-')
		z.tokenBuilder.WriteData('-')
		z.tokenBuilder.WriteData('!')
		return false, commentEndDashState
	case '>':
		z.err(ErrIncorrectlyClosedComment)
		z.emit(z.tokenBuilder.CommentToken())
		return false, dataState
	default:
		z.tokenBuilder.WriteData('-')
		z.tokenBuilder.WriteData('-')
		z.tokenBuilder.WriteData('!')
		return true, commentState
	}
}

func (z *HTMLTokenizer) doctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.Reset()
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	if isWhitespace(r) {
		return false, beforeDoctypeNameState
	}
	if r != '>' {
		z.err(ErrMissingWhitespaceBetweenAttributes)
	}
	return true, beforeDoctypeNameState
}

func (z *HTMLTokenizer) beforeDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.Reset()
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeNameState
	case isASCIIUpper(r):
		z.tokenBuilder.Reset()
		z.tokenBuilder.WriteName(r + 0x20)
		return false, doctypeNameState
	case r == '\u0000':
		z.err(ErrUnexpectedNull)
		z.tokenBuilder.Reset()
		z.tokenBuilder.WriteName('�')
		return false, doctypeNameState
	case r == '>':
		z.err(ErrMissingDoctypeName)
		z.tokenBuilder.Reset()
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.tokenBuilder.Reset()
		z.tokenBuilder.WriteName(r)
		return false, doctypeNameState
	}
}

func (z *HTMLTokenizer) doctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	case isASCIIUpper(r):
		z.tokenBuilder.WriteName(r + 0x20)
		return false, doctypeNameState
	case r == '\u0000':
		z.err(ErrUnexpectedNull)
		z.tokenBuilder.WriteName('�')
		return false, doctypeNameState
	default:
		z.tokenBuilder.WriteName(r)
		return false, doctypeNameState
	}
}

func (z *HTMLTokenizer) afterDoctypeNameStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, afterDoctypeNameState
	case r == '>':
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	case (r == 'P' || r == 'p') && z.peekEquals("ublic", true):
		z.discard(5)
		return false, afterDoctypePublicKeywordState
	case (r == 'S' || r == 's') && z.peekEquals("ystem", true):
		z.discard(5)
		return false, afterDoctypeSystemKeywordState
	default:
		z.err(ErrInvalidCharacterSequenceAfterName)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *HTMLTokenizer) afterDoctypePublicKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		z.err(ErrMissingWhitespaceAfterPublic)
		z.tokenBuilder.WritePublicIdentifierEmpty()
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		z.err(ErrMissingWhitespaceAfterPublic)
		z.tokenBuilder.WritePublicIdentifierEmpty()
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		z.err(ErrMissingDoctypePublicIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.err(ErrMissingQuoteBeforePublicIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *HTMLTokenizer) beforeDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypePublicIdentifierState
	case r == '"':
		z.tokenBuilder.WritePublicIdentifierEmpty()
		return false, doctypePublicIdentifierDoubleQuotedState
	case r == '\'':
		z.tokenBuilder.WritePublicIdentifierEmpty()
		return false, doctypePublicIdentifierSingleQuotedState
	case r == '>':
		z.err(ErrMissingDoctypePublicIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.err(ErrMissingQuoteBeforePublicIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *HTMLTokenizer) doctypePublicIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.doctypePublicIdentifierQuotedStateParser(r, eof, '"', doctypePublicIdentifierDoubleQuotedState)
}

func (z *HTMLTokenizer) doctypePublicIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.doctypePublicIdentifierQuotedStateParser(r, eof, '\'', doctypePublicIdentifierSingleQuotedState)
}

func (z *HTMLTokenizer) doctypePublicIdentifierQuotedStateParser(r rune, eof bool, quote rune, self tokenizerState) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case quote:
		return false, afterDoctypePublicIdentifierState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.tokenBuilder.WritePublicIdentifier('�')
		return false, self
	case '>':
		z.err(ErrAbruptDoctypePublicIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.tokenBuilder.WritePublicIdentifier(r)
		return false, self
	}
}

func (z *HTMLTokenizer) afterDoctypePublicIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	case r == '"':
		z.err(ErrMissingWhitespaceBetweenAttributes)
		z.tokenBuilder.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		z.err(ErrMissingWhitespaceBetweenAttributes)
		z.tokenBuilder.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		z.err(ErrMissingQuoteBeforeSystemIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *HTMLTokenizer) betweenDoctypePublicAndSystemIdentifiersStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, betweenDoctypePublicAndSystemIdentifiersState
	case r == '>':
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	case r == '"':
		z.tokenBuilder.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		z.tokenBuilder.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierSingleQuotedState
	default:
		z.err(ErrMissingQuoteBeforeSystemIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *HTMLTokenizer) afterDoctypeSystemKeywordStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		z.err(ErrMissingWhitespaceAfterSystem)
		z.tokenBuilder.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		z.err(ErrMissingWhitespaceAfterSystem)
		z.tokenBuilder.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		z.err(ErrMissingDoctypeSystemIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.err(ErrMissingQuoteBeforeSystemIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *HTMLTokenizer) beforeDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, beforeDoctypeSystemIdentifierState
	case r == '"':
		z.tokenBuilder.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierDoubleQuotedState
	case r == '\'':
		z.tokenBuilder.WriteSystemIdentifierEmpty()
		return false, doctypeSystemIdentifierSingleQuotedState
	case r == '>':
		z.err(ErrMissingDoctypeSystemIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.err(ErrMissingQuoteBeforeSystemIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		return true, bogusDoctypeState
	}
}

func (z *HTMLTokenizer) doctypeSystemIdentifierDoubleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.doctypeSystemIdentifierQuotedStateParser(r, eof, '"', doctypeSystemIdentifierDoubleQuotedState)
}

func (z *HTMLTokenizer) doctypeSystemIdentifierSingleQuotedStateParser(r rune, eof bool) (bool, tokenizerState) {
	return z.doctypeSystemIdentifierQuotedStateParser(r, eof, '\'', doctypeSystemIdentifierSingleQuotedState)
}

func (z *HTMLTokenizer) doctypeSystemIdentifierQuotedStateParser(r rune, eof bool, quote rune, self tokenizerState) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case quote:
		return false, afterDoctypeSystemIdentifierState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		z.tokenBuilder.WriteSystemIdentifier('�')
		return false, self
	case '>':
		z.err(ErrAbruptDoctypeSystemIdentifier)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.tokenBuilder.WriteSystemIdentifier(r)
		return false, self
	}
}

func (z *HTMLTokenizer) afterDoctypeSystemIdentifierStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInDoctype)
		z.tokenBuilder.EnableForceQuirks()
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch {
	case isWhitespace(r):
		return false, afterDoctypeSystemIdentifierState
	case r == '>':
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	default:
		z.err(ErrUnexpectedCharAfterSystemID)
		return true, bogusDoctypeState
	}
}

func (z *HTMLTokenizer) bogusDoctypeStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.emit(z.tokenBuilder.DocTypeToken(), z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	switch r {
	case '>':
		z.emit(z.tokenBuilder.DocTypeToken())
		return false, dataState
	case '\u0000':
		z.err(ErrUnexpectedNull)
		return false, bogusDoctypeState
	default:
		return false, bogusDoctypeState
	}
}

func (z *HTMLTokenizer) cdataSectionStateParser(r rune, eof bool) (bool, tokenizerState) {
	if eof {
		z.err(ErrEOFInCDATA)
		z.emit(z.tokenBuilder.EndOfFileToken())
		return false, dataState
	}
	if r == ']' {
		return false, cdataSectionBracketState
	}
	z.emitChar(r, false)
	return false, cdataSectionState
}

func (z *HTMLTokenizer) cdataSectionBracketStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof && r == ']' {
		return false, cdataSectionEndState
	}
	z.emitChar(']', false)
	return true, cdataSectionState
}

func (z *HTMLTokenizer) cdataSectionEndStateParser(r rune, eof bool) (bool, tokenizerState) {
	if !eof {
		switch r {
		case ']':
			z.emitChar(']', false)
			return false, cdataSectionEndState
		case '>':
			return false, dataState
		}
	}
	z.emitChar(']', false)
	z.emitChar(']', false)
	return true, cdataSectionState
}
