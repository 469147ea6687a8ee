package parser

import (
	"sort"
	"strings"

	"github.com/alex-kinokon/justhtml/parser/spec"
)

// parseFragment runs the fragment parsing algorithm: a synthetic html
// root inside a document-fragment output node, the insertion mode and
// tokenizer state seeded from the context element.
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-html-fragments
func parseFragment(text string, opts *Options) (*Result, error) {
	fc := opts.FragmentContext
	name := strings.ToLower(fc.TagName)
	ns := fc.Namespace
	if ns == spec.NoNamespace {
		ns = spec.HTMLNamespace
	}
	if ns == spec.SVGNamespace {
		name = adjustSVGTagName(name)
	}
	context := spec.NewElement(name, ns, nil)

	tokOpts := opts.Tokenizer
	if ns == spec.HTMLNamespace {
		switch name {
		case "title", "textarea":
			tokOpts.InitialState = RCDATAState
			tokOpts.InitialRawTextTag = name
		case "style", "xmp", "iframe", "noembed", "noframes":
			tokOpts.InitialState = RawTextState
			tokOpts.InitialRawTextTag = name
		case "script":
			tokOpts.InitialState = ScriptDataState
			tokOpts.InitialRawTextTag = name
		case "noscript":
			if opts.Scripting {
				tokOpts.InitialState = RawTextState
				tokOpts.InitialRawTextTag = name
			}
		case "plaintext":
			tokOpts.InitialState = PlaintextState
		}
	}

	tokenizer := NewHTMLTokenizer(text, &tokOpts)
	tc := NewHTMLTreeConstructor()
	tc.fragment = true
	tc.context = context
	tc.scriptingEnabled = opts.Scripting
	tc.iframeSrcdoc = opts.IframeSrcdoc
	tc.framesetOK = false

	output := spec.NewFragment()
	root := spec.NewElement("html", spec.HTMLNamespace, nil)
	output.AppendChild(root)
	tc.stackOfOpenElements.Push(root)

	if ns == spec.HTMLNamespace && name == "template" {
		tc.templateInsertionModes = []insertionMode{inTemplate}
	}
	tc.insertionMode = fragmentInsertionMode(name, ns)

	p := &Parser{Tokenizer: tokenizer, TreeConstructor: tc}
	var progress *Progress
	for tokenizer.Next() {
		t := tokenizer.Token(progress)
		if t == nil {
			break
		}
		progress = tc.ProcessToken(t)
	}

	// Unwrap: the output fragment owns the parsed children directly.
	root.Detach()
	for len(root.ChildNodes) > 0 {
		output.AppendChild(root.ChildNodes[0])
	}
	tc.Document = output
	tc.Finish()

	res := &Result{Document: output}
	return finishResult(res, p, opts)
}

// fragmentInsertionMode picks the initial insertion mode for a fragment
// context element.
func fragmentInsertionMode(name string, ns spec.Namespace) insertionMode {
	if ns != spec.HTMLNamespace {
		return inBody
	}
	switch name {
	case "html":
		return beforeHead
	case "tbody", "thead", "tfoot":
		return inTableBody
	case "tr":
		return inRow
	case "td", "th":
		return inCell
	case "caption":
		return inCaption
	case "colgroup":
		return inColumnGroup
	case "table":
		return inTable
	case "template":
		return inTemplate
	case "select":
		return inSelect
	}
	return inBody
}

// https://html.spec.whatwg.org/multipage/parsing.html#escapingString
func escapeString(s string, attrVal bool) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "\u00a0", "&nbsp;")
	if attrVal {
		return strings.ReplaceAll(s, "\"", "&quot;")
	}
	s = strings.ReplaceAll(s, "<", "&lt;")
	return strings.ReplaceAll(s, ">", "&gt;")
}

var voidElements = map[string]bool{
	"area": true, "base": true, "basefont": true, "bgsound": true, "br": true,
	"col": true, "embed": true, "frame": true, "hr": true, "img": true,
	"input": true, "keygen": true, "link": true, "meta": true, "param": true,
	"source": true, "track": true, "wbr": true,
}

var rawTextSerializeElements = map[string]bool{
	"style": true, "script": true, "xmp": true, "iframe": true,
	"noembed": true, "noframes": true, "plaintext": true, "noscript": true,
}

// SerializeFragment renders a node's children back to HTML source, per
// the fragment serialization algorithm.
// https://html.spec.whatwg.org/multipage/parsing.html#serialising-html-fragments
func SerializeFragment(fragment *spec.Node) string {
	switch fragment.NodeName {
	case "basefont", "bgsound", "frame", "keygen":
		return ""
	}
	var sb strings.Builder
	children := fragment.ChildNodes
	if fragment.TemplateContent != nil {
		children = fragment.TemplateContent.ChildNodes
	}
	for _, child := range children {
		serializeNode(&sb, child)
	}
	return sb.String()
}

func serializeNode(sb *strings.Builder, n *spec.Node) {
	switch n.NodeType {
	case spec.ElementNode:
		sb.WriteString("<")
		sb.WriteString(n.NodeName)
		attrs := make([]spec.Attr, len(n.Attrs))
		copy(attrs, n.Attrs)
		sort.Slice(attrs, func(i, j int) bool { return attrs[i].Name < attrs[j].Name })
		for _, a := range attrs {
			sb.WriteString(" ")
			if a.Namespace != spec.NoAttrNamespace {
				sb.WriteString(string(a.Namespace))
				sb.WriteString(":")
			}
			sb.WriteString(a.Name)
			sb.WriteString("=\"")
			sb.WriteString(escapeString(a.Value, true))
			sb.WriteString("\"")
		}
		sb.WriteString(">")
		if n.Namespace == spec.HTMLNamespace && voidElements[n.NodeName] {
			return
		}
		sb.WriteString(SerializeFragment(n))
		sb.WriteString("</")
		sb.WriteString(n.NodeName)
		sb.WriteString(">")
	case spec.TextNode:
		parent := n.ParentNode
		if parent != nil && parent.Namespace == spec.HTMLNamespace && rawTextSerializeElements[parent.NodeName] {
			sb.WriteString(n.Data)
			return
		}
		sb.WriteString(escapeString(n.Data, false))
	case spec.CommentNode:
		sb.WriteString("<!--")
		sb.WriteString(n.Data)
		sb.WriteString("-->")
	case spec.DocumentTypeNode:
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(n.DocumentType.Name)
		sb.WriteString(">")
	}
}
