// Package parser implements an HTML5-conformant parser: the tokenizer and
// tree-construction state machines of the WHATWG HTML standard, plus
// fragment parsing and a streaming token view.
package parser

import (
	"sort"

	"github.com/alex-kinokon/justhtml/parser/charset"
	"github.com/alex-kinokon/justhtml/parser/spec"
)

// FragmentContext selects fragment-context parsing: the content is parsed
// as if it were the children of an element with the given tag name.
type FragmentContext struct {
	TagName   string
	Namespace spec.Namespace
}

// Options configure ParseDocument and ParseBytes.
type Options struct {
	// FragmentContext switches to fragment parsing.
	FragmentContext *FragmentContext
	// IframeSrcdoc parses the input as an iframe srcdoc document: a
	// missing doctype is not an error and does not force quirks mode.
	IframeSrcdoc bool
	// CollectErrors retains parse errors on the result.
	CollectErrors bool
	// Strict surfaces the first parse error as the returned error. The
	// tree is still produced.
	Strict bool
	// Scripting reserves the scripting-enabled parsing rules. Off: the
	// content of noscript elements is parsed as markup.
	Scripting bool
	// Tokenizer options are passed through to the tokenizer.
	Tokenizer TokenizerOptions
	// TransportEncoding is the transport-layer encoding hint, used by
	// ParseBytes only.
	TransportEncoding string
}

// Result is the outcome of a parse.
type Result struct {
	// Document is the document node, or the fragment node when parsing
	// with a fragment context.
	Document *spec.Node
	// Errors holds the collected parse errors, tokenizer and tree
	// constructor merged, in input order where offsets are known.
	Errors []ParseError
	// Encoding is the resolved encoding name (ParseBytes only).
	Encoding string
}

// Progress carries the tree constructor's feedback to the tokenizer: its
// view of the adjusted current node, and a state override when the tree
// requires one (PLAINTEXT, RCDATA, raw text, script data).
type Progress struct {
	AdjustedCurrentNode *spec.Node
	TokenizerState      *tokenizerState
}

// Parser couples a tokenizer with a tree constructor and owns the
// reprocess loop between them.
type Parser struct {
	Tokenizer       *HTMLTokenizer
	TreeConstructor *HTMLTreeConstructor
}

// NewParser creates a document parser over already-decoded text.
func NewParser(text string, opts *Options) *Parser {
	if opts == nil {
		opts = &Options{}
	}
	tokenizer := NewHTMLTokenizer(text, &opts.Tokenizer)
	treeConstructor := NewHTMLTreeConstructor()
	treeConstructor.iframeSrcdoc = opts.IframeSrcdoc
	treeConstructor.scriptingEnabled = opts.Scripting
	return &Parser{
		Tokenizer:       tokenizer,
		TreeConstructor: treeConstructor,
	}
}

// Run pumps tokens from the tokenizer into the tree constructor until the
// input is exhausted, then runs the end-of-parse passes.
func (p *Parser) Run() *spec.Node {
	var progress *Progress
	for p.Tokenizer.Next() {
		t := p.Tokenizer.Token(progress)
		if t == nil {
			break
		}
		progress = p.TreeConstructor.ProcessToken(t)
	}
	p.TreeConstructor.Finish()
	return p.TreeConstructor.Document
}

// mergedErrors interleaves tokenizer and tree-constructor errors;
// offset-less tree errors sort stably after positioned ones.
func (p *Parser) mergedErrors() []ParseError {
	errs := make([]ParseError, 0, len(p.Tokenizer.Errors())+len(p.TreeConstructor.Errors()))
	errs = append(errs, p.Tokenizer.Errors()...)
	errs = append(errs, p.TreeConstructor.Errors()...)
	sort.SliceStable(errs, func(i, j int) bool {
		oi, oj := errs[i].Offset, errs[j].Offset
		if oi == -1 {
			return false
		}
		if oj == -1 {
			return true
		}
		return oi < oj
	})
	return errs
}

// ParseDocument parses decoded text into a document (or fragment) tree.
func ParseDocument(text string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	if opts.FragmentContext != nil {
		return parseFragment(text, opts)
	}
	if text == "" {
		return &Result{Document: spec.NewDocument()}, nil
	}
	p := NewParser(text, opts)
	root := p.Run()
	res := &Result{Document: root}
	return finishResult(res, p, opts)
}

// ParseBytes sniffs the byte stream's encoding, decodes it, and parses
// the text.
func ParseBytes(b []byte, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	text, name, err := charset.Decode(b, opts.TransportEncoding)
	if err != nil {
		return nil, err
	}
	res, err := ParseDocument(text, opts)
	if res != nil {
		res.Encoding = name
	}
	return res, err
}

func finishResult(res *Result, p *Parser, opts *Options) (*Result, error) {
	errs := p.mergedErrors()
	if opts.CollectErrors {
		res.Errors = errs
	}
	if opts.Strict && len(errs) > 0 {
		return res, errs[0]
	}
	return res, nil
}
