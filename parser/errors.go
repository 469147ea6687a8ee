package parser

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// log carries the tokenizer/tree-constructor debug traces. Silent unless
// the caller raises the standard logger to debug level.
var log = logrus.StandardLogger()

// ErrorCode identifies a parse error kind. The set is closed; codes are
// stable strings in the style of the html5lib error identifiers.
type ErrorCode string

// Tokenizer error kinds.
const (
	ErrAbruptClosingOfEmptyComment        ErrorCode = "abrupt-closing-of-empty-comment"
	ErrAbruptDoctypePublicIdentifier      ErrorCode = "abrupt-doctype-public-identifier"
	ErrAbruptDoctypeSystemIdentifier      ErrorCode = "abrupt-doctype-system-identifier"
	ErrCDATAInHTMLContent                 ErrorCode = "cdata-in-html-content"
	ErrDuplicateAttribute                 ErrorCode = "duplicate-attribute"
	ErrEndTagWithAttributes               ErrorCode = "end-tag-with-attributes"
	ErrEndTagWithTrailingSolidus          ErrorCode = "end-tag-with-trailing-solidus"
	ErrEOFBeforeTagName                   ErrorCode = "eof-before-tag-name"
	ErrEOFInCDATA                         ErrorCode = "eof-in-cdata"
	ErrEOFInComment                       ErrorCode = "eof-in-comment"
	ErrEOFInDoctype                       ErrorCode = "eof-in-doctype"
	ErrEOFInScriptCommentLikeText         ErrorCode = "eof-in-script-html-comment-like-text"
	ErrEOFInTag                           ErrorCode = "eof-in-tag"
	ErrIncorrectlyClosedComment           ErrorCode = "incorrectly-closed-comment"
	ErrIncorrectlyOpenedComment           ErrorCode = "incorrectly-opened-comment"
	ErrInvalidCharacterSequenceAfterName  ErrorCode = "invalid-character-sequence-after-doctype-name"
	ErrInvalidFirstCharacterOfTagName     ErrorCode = "invalid-first-character-of-tag-name"
	ErrMissingAttributeValue              ErrorCode = "missing-attribute-value"
	ErrMissingDoctypeName                 ErrorCode = "missing-doctype-name"
	ErrMissingDoctypePublicIdentifier     ErrorCode = "missing-doctype-public-identifier"
	ErrMissingDoctypeSystemIdentifier     ErrorCode = "missing-doctype-system-identifier"
	ErrMissingEndTagName                  ErrorCode = "missing-end-tag-name"
	ErrMissingQuoteBeforePublicIdentifier ErrorCode = "missing-quote-before-doctype-public-identifier"
	ErrMissingQuoteBeforeSystemIdentifier ErrorCode = "missing-quote-before-doctype-system-identifier"
	ErrMissingWhitespaceAfterPublic       ErrorCode = "missing-whitespace-after-doctype-public-keyword"
	ErrMissingWhitespaceAfterSystem       ErrorCode = "missing-whitespace-after-doctype-system-keyword"
	ErrMissingWhitespaceBetweenAttributes ErrorCode = "missing-whitespace-between-attributes"
	ErrNestedComment                      ErrorCode = "nested-comment"
	ErrUnexpectedCharAfterSystemID        ErrorCode = "unexpected-character-after-doctype-system-identifier"
	ErrUnexpectedCharInAttributeName      ErrorCode = "unexpected-character-in-attribute-name"
	ErrUnexpectedCharInUnquotedValue      ErrorCode = "unexpected-character-in-unquoted-attribute-value"
	ErrUnexpectedEqualsBeforeAttribute    ErrorCode = "unexpected-equals-sign-before-attribute-name"
	ErrUnexpectedNull                     ErrorCode = "unexpected-null-character"
	ErrUnexpectedQuestionMark             ErrorCode = "unexpected-question-mark-instead-of-tag-name"
	ErrUnexpectedSolidusInTag             ErrorCode = "unexpected-solidus-in-tag"
)

// Tree-constructor error kinds.
const (
	ErrAdoptionAgency13            ErrorCode = "adoption-agency-1.3"
	ErrEndTagInFragmentContext     ErrorCode = "end-tag-in-fragment-context"
	ErrEndTagTooEarly              ErrorCode = "end-tag-too-early"
	ErrEOFInTemplate               ErrorCode = "eof-in-template"
	ErrExpectedDoctypeButGotChars  ErrorCode = "expected-doctype-but-got-chars"
	ErrExpectedDoctypeButGotEndTag ErrorCode = "expected-doctype-but-got-end-tag"
	ErrExpectedDoctypeButGotEOF    ErrorCode = "expected-doctype-but-got-eof"
	ErrExpectedDoctypeButGotStart  ErrorCode = "expected-doctype-but-got-start-tag"
	ErrFosterParentingCharacter    ErrorCode = "foster-parenting-character"
	ErrHTMLInForeignContent        ErrorCode = "html-element-in-foreign-content"
	ErrInvalidCodepointInBody      ErrorCode = "invalid-codepoint-in-body"
	ErrNonVoidSelfClosing          ErrorCode = "non-void-html-element-start-tag-with-trailing-solidus"
	ErrUnexpectedCharacter         ErrorCode = "unexpected-character"
	ErrUnexpectedDoctype           ErrorCode = "unexpected-doctype"
	ErrUnexpectedEndTag            ErrorCode = "unexpected-end-tag"
	ErrUnexpectedEOF               ErrorCode = "unexpected-eof"
	ErrUnexpectedStartTag          ErrorCode = "unexpected-start-tag"
	ErrUnknownDoctype              ErrorCode = "unknown-doctype"
)

// ParseError is an observational error: the tree is still produced. Offset
// is the rune offset at which the condition was detected (-1 when the
// condition has no useful position); Tag names the tag involved, if any.
type ParseError struct {
	Code   ErrorCode
	Offset int
	Tag    string
}

func (e ParseError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("%s: <%s> at offset %d", e.Code, e.Tag, e.Offset)
	}
	return fmt.Sprintf("%s at offset %d", e.Code, e.Offset)
}
