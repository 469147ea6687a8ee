package parser

import (
	"strings"

	"github.com/alex-kinokon/justhtml/parser/spec"
)

// StreamEventKind tags the events a TokenStream yields.
type StreamEventKind uint

const (
	StreamStart StreamEventKind = iota
	StreamEnd
	StreamText
	StreamComment
	StreamDoctype
)

func (k StreamEventKind) String() string {
	switch k {
	case StreamStart:
		return "start"
	case StreamEnd:
		return "end"
	case StreamText:
		return "text"
	case StreamComment:
		return "comment"
	case StreamDoctype:
		return "doctype"
	}
	return "unknown"
}

// StreamEvent is one simplified tokenizer event. Adjacent character
// tokens are coalesced into a single text event.
type StreamEvent struct {
	Kind        StreamEventKind
	Name        string
	Attrs       []spec.Attr
	SelfClosing bool
	Data        string
	Doctype     *spec.DocumentType
}

// TokenStream drives the tokenizer lazily and yields tagged events. It
// does not construct a tree.
type TokenStream struct {
	tokenizer *HTMLTokenizer
	event     *StreamEvent
	pending   *Token
	textBuf   strings.Builder
	done      bool
}

// NewTokenStream creates a lazy event stream over decoded text.
func NewTokenStream(text string, opts *TokenizerOptions) *TokenStream {
	return &TokenStream{tokenizer: NewHTMLTokenizer(text, opts)}
}

// Next advances to the next event; it reports false at end of input.
func (s *TokenStream) Next() bool {
	if s.done {
		return false
	}
	for {
		t := s.pending
		s.pending = nil
		if t == nil {
			if !s.tokenizer.Next() {
				t = nil
			} else {
				t = s.tokenizer.Token(nil)
			}
		}
		if t == nil {
			s.done = true
			return s.flushText()
		}
		switch t.TokenType {
		case characterToken:
			s.textBuf.WriteString(t.Data)
			continue
		case endOfFileToken:
			s.done = true
			return s.flushText()
		}
		if s.textBuf.Len() > 0 {
			s.pending = t
			s.flushText()
			return true
		}
		s.event = eventForToken(t)
		return true
	}
}

// Event returns the current event. Valid after Next reports true.
func (s *TokenStream) Event() *StreamEvent {
	return s.event
}

// Errors exposes the tokenizer's collected parse errors.
func (s *TokenStream) Errors() []ParseError {
	return s.tokenizer.Errors()
}

func (s *TokenStream) flushText() bool {
	if s.textBuf.Len() == 0 {
		return false
	}
	s.event = &StreamEvent{Kind: StreamText, Data: s.textBuf.String()}
	s.textBuf.Reset()
	return true
}

func eventForToken(t *Token) *StreamEvent {
	switch t.TokenType {
	case startTagToken:
		return &StreamEvent{Kind: StreamStart, Name: t.TagName, Attrs: t.Attributes, SelfClosing: t.SelfClosing}
	case endTagToken:
		return &StreamEvent{Kind: StreamEnd, Name: t.TagName}
	case commentToken:
		return &StreamEvent{Kind: StreamComment, Data: t.Data}
	case docTypeToken:
		return &StreamEvent{Kind: StreamDoctype, Name: t.Doctype.Name, Doctype: t.Doctype}
	}
	return nil
}
