package spec

import (
	"sort"
	"strings"
)

// String renders the tree in the indented format used by the html5lib
// tree-construction fixtures: one "| "-prefixed line per node, two more
// spaces per depth, attributes sorted by name on their own lines, and a
// "content" marker between a template element and its fragment.
func (n *Node) String() string {
	var sb strings.Builder
	switch n.NodeType {
	case DocumentNode:
		sb.WriteString("#document\n")
	case DocumentFragmentNode:
		sb.WriteString("#document-fragment\n")
	default:
		n.serializeTo(&sb, 0)
		return strings.TrimRight(sb.String(), "\n")
	}
	for _, child := range n.ChildNodes {
		child.serializeTo(&sb, 0)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func testIndent(depth int) string {
	return "| " + strings.Repeat("  ", depth)
}

func (n *Node) serializeTo(sb *strings.Builder, depth int) {
	indent := testIndent(depth)
	switch n.NodeType {
	case ElementNode:
		sb.WriteString(indent)
		sb.WriteString("<")
		switch n.Namespace {
		case SVGNamespace:
			sb.WriteString("svg ")
		case MathMLNamespace:
			sb.WriteString("math ")
		}
		sb.WriteString(n.NodeName)
		sb.WriteString(">\n")

		if len(n.Attrs) > 0 {
			attrIndent := testIndent(depth + 1)
			lines := make([]string, 0, len(n.Attrs))
			for _, a := range n.Attrs {
				name := a.Name
				if a.Namespace != NoAttrNamespace {
					name = string(a.Namespace) + " " + name
				}
				lines = append(lines, attrIndent+name+"=\""+a.Value+"\"\n")
			}
			sort.Strings(lines)
			for _, line := range lines {
				sb.WriteString(line)
			}
		}

		if n.TemplateContent != nil {
			sb.WriteString(testIndent(depth + 1))
			sb.WriteString("content\n")
			for _, child := range n.TemplateContent.ChildNodes {
				child.serializeTo(sb, depth+2)
			}
			return
		}
		for _, child := range n.ChildNodes {
			child.serializeTo(sb, depth+1)
		}
	case TextNode:
		sb.WriteString(indent)
		sb.WriteString("\"")
		sb.WriteString(n.Data)
		sb.WriteString("\"\n")
	case CommentNode:
		sb.WriteString(indent)
		sb.WriteString("<!-- ")
		sb.WriteString(n.Data)
		sb.WriteString(" -->\n")
	case DocumentTypeNode:
		sb.WriteString(indent)
		dt := n.DocumentType
		sb.WriteString("<!DOCTYPE ")
		sb.WriteString(dt.Name)
		if dt.HasPublicID || dt.HasSystemID {
			sb.WriteString(" \"")
			sb.WriteString(dt.PublicID)
			sb.WriteString("\" \"")
			sb.WriteString(dt.SystemID)
			sb.WriteString("\"")
		}
		sb.WriteString(">\n")
	case DocumentNode, DocumentFragmentNode:
		for _, child := range n.ChildNodes {
			child.serializeTo(sb, depth+1)
		}
	}
}

// TextOptions controls ToText.
type TextOptions struct {
	// Separator is placed between the contributions of distinct text nodes.
	Separator string
	// Strip trims leading and trailing ASCII whitespace from each text node
	// and drops nodes that become empty.
	Strip bool
}

// ToText concatenates the data of every descendant text node in document
// order, descending into template content.
func (n *Node) ToText(opts *TextOptions) string {
	if opts == nil {
		opts = &TextOptions{}
	}
	var parts []string
	n.collectText(opts, &parts)
	return strings.Join(parts, opts.Separator)
}

func (n *Node) collectText(opts *TextOptions, parts *[]string) {
	if n.NodeType == TextNode {
		data := n.Data
		if opts.Strip {
			data = strings.Trim(data, " \t\n\f\r")
			if data == "" {
				return
			}
		}
		*parts = append(*parts, data)
		return
	}
	if n.TemplateContent != nil {
		n.TemplateContent.collectText(opts, parts)
		return
	}
	for _, child := range n.ChildNodes {
		child.collectText(opts, parts)
	}
}
