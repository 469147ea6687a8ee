package spec

import (
	"github.com/pkg/errors"
)

// NodeType discriminates the kinds of nodes the parser builds.
type NodeType uint16

const (
	ElementNode NodeType = iota + 1
	TextNode
	CommentNode
	DocumentNode
	DocumentTypeNode
	DocumentFragmentNode
	// ScopeMarkerNode only ever appears in the list of active formatting
	// elements, never in a tree.
	ScopeMarkerNode
)

// Namespace of an element. Pseudo-nodes carry NoNamespace.
type Namespace string

const (
	NoNamespace     Namespace = ""
	HTMLNamespace   Namespace = "html"
	SVGNamespace    Namespace = "svg"
	MathMLNamespace Namespace = "math"
)

// AttrNamespace marks foreign-content attributes that were adjusted onto
// the xlink/xml/xmlns namespaces.
type AttrNamespace string

const (
	NoAttrNamespace    AttrNamespace = ""
	XLinkAttrNamespace AttrNamespace = "xlink"
	XMLAttrNamespace   AttrNamespace = "xml"
	XMLNSAttrNamespace AttrNamespace = "xmlns"
)

// Attr is a single element attribute. Attribute order on an element is
// insertion order of the first occurrence of each name.
type Attr struct {
	Namespace AttrNamespace
	Name      string
	Value     string
}

// DocumentType carries the doctype token's identifiers. HasPublicID and
// HasSystemID distinguish an absent identifier from an empty one.
type DocumentType struct {
	Name        string
	PublicID    string
	SystemID    string
	HasPublicID bool
	HasSystemID bool
	ForceQuirks bool
}

// Node is a mutable tree node. Elements use NodeName (ASCII lowercase for
// HTML; case-adjusted for SVG) and Namespace; text and comment nodes carry
// their content in Data.
type Node struct {
	NodeType  NodeType
	NodeName  string
	Namespace Namespace
	Attrs     []Attr
	Data      string

	ParentNode *Node
	ChildNodes NodeList

	DocumentType *DocumentType

	// TemplateContent is the separate fragment that owns the children of an
	// HTML-namespace template element.
	TemplateContent *Node
}

// NodeList is an ordered sequence of nodes. It doubles as the stack of open
// elements and the list of active formatting elements.
type NodeList []*Node

// ScopeMarker separates formatting elements that were open before a
// marker-inserting element (applet, template, table boundaries) from those
// opened after.
var ScopeMarker = &Node{NodeType: ScopeMarkerNode, NodeName: "marker"}

func NewDocument() *Node {
	return &Node{NodeType: DocumentNode, NodeName: "#document"}
}

func NewFragment() *Node {
	return &Node{NodeType: DocumentFragmentNode, NodeName: "#document-fragment"}
}

func NewElement(name string, ns Namespace, attrs []Attr) *Node {
	n := &Node{
		NodeType:  ElementNode,
		NodeName:  name,
		Namespace: ns,
		Attrs:     attrs,
	}
	if name == "template" && ns == HTMLNamespace {
		n.TemplateContent = NewFragment()
	}
	return n
}

func NewText(data string) *Node {
	return &Node{NodeType: TextNode, NodeName: "#text", Data: data}
}

func NewComment(data string) *Node {
	return &Node{NodeType: CommentNode, NodeName: "#comment", Data: data}
}

func NewDoctype(dt *DocumentType) *Node {
	return &Node{NodeType: DocumentTypeNode, NodeName: "!doctype", DocumentType: dt}
}

// AttrValue returns the value of the named attribute and whether it is set.
func (n *Node) AttrValue(name string) (string, bool) {
	for i := range n.Attrs {
		if n.Attrs[i].Name == name {
			return n.Attrs[i].Value, true
		}
	}
	return "", false
}

// AddMissingAttrs copies every attribute the element does not already have.
// Used when a stray <html> or <body> start tag merges onto the existing
// element.
func (n *Node) AddMissingAttrs(attrs []Attr) {
	for _, a := range attrs {
		if _, ok := n.AttrValue(a.Name); !ok {
			n.Attrs = append(n.Attrs, a)
		}
	}
}

// LastChild returns the last child or nil.
func (n *Node) LastChild() *Node {
	if len(n.ChildNodes) == 0 {
		return nil
	}
	return n.ChildNodes[len(n.ChildNodes)-1]
}

// AppendChild detaches on from any previous parent and appends it.
func (n *Node) AppendChild(on *Node) *Node {
	on.Detach()
	on.ParentNode = n
	n.ChildNodes = append(n.ChildNodes, on)
	return on
}

// InsertBefore inserts on immediately before child. child must be a child
// of n; violating that is a programmer error, not a recoverable condition.
func (n *Node) InsertBefore(on, child *Node) *Node {
	i := n.ChildNodes.Contains(child)
	if i == -1 {
		panic(errors.Errorf("spec: InsertBefore reference %q is not a child of %q", child.NodeName, n.NodeName))
	}
	on.Detach()
	n.ChildNodes = append(n.ChildNodes, nil)
	copy(n.ChildNodes[i+1:], n.ChildNodes[i:])
	n.ChildNodes[i] = on
	on.ParentNode = n
	return on
}

// RemoveChild removes child from n. child must be a child of n.
func (n *Node) RemoveChild(child *Node) *Node {
	i := n.ChildNodes.Contains(child)
	if i == -1 {
		panic(errors.Errorf("spec: RemoveChild %q is not a child of %q", child.NodeName, n.NodeName))
	}
	n.ChildNodes = append(n.ChildNodes[:i], n.ChildNodes[i+1:]...)
	child.ParentNode = nil
	return child
}

// Detach removes the node from its parent, if any.
func (n *Node) Detach() {
	if n.ParentNode != nil {
		n.ParentNode.RemoveChild(n)
	}
}

// CloneNode copies the node. With deep set, children (and template
// content) are cloned recursively. The clone has no parent.
func (n *Node) CloneNode(deep bool) *Node {
	clone := &Node{
		NodeType:  n.NodeType,
		NodeName:  n.NodeName,
		Namespace: n.Namespace,
		Data:      n.Data,
	}
	if n.Attrs != nil {
		clone.Attrs = make([]Attr, len(n.Attrs))
		copy(clone.Attrs, n.Attrs)
	}
	if n.DocumentType != nil {
		dt := *n.DocumentType
		clone.DocumentType = &dt
	}
	if n.TemplateContent != nil {
		clone.TemplateContent = n.TemplateContent.CloneNode(deep)
	}
	if deep {
		for _, child := range n.ChildNodes {
			clone.AppendChild(child.CloneNode(true))
		}
	}
	return clone
}

// Push appends a node to the list.
func (c *NodeList) Push(n *Node) {
	*c = append(*c, n)
}

// Pop removes and returns the last node, or nil when empty.
func (c *NodeList) Pop() *Node {
	if len(*c) == 0 {
		return nil
	}
	n := (*c)[len(*c)-1]
	*c = (*c)[:len(*c)-1]
	return n
}

// Top returns the last node without removing it, or nil when empty.
func (c *NodeList) Top() *Node {
	if len(*c) == 0 {
		return nil
	}
	return (*c)[len(*c)-1]
}

// Contains returns the index of n or -1.
func (c *NodeList) Contains(n *Node) int {
	for i := range *c {
		if (*c)[i] == n {
			return i
		}
	}
	return -1
}

// Remove removes the entry at index i. Out-of-range indices are a
// programmer error.
func (c *NodeList) Remove(i int) *Node {
	if i < 0 || i >= len(*c) {
		panic(errors.Errorf("spec: NodeList index %d out of range (len %d)", i, len(*c)))
	}
	n := (*c)[i]
	*c = append((*c)[:i], (*c)[i+1:]...)
	return n
}

// Insert places n at index i, shifting later entries.
func (c *NodeList) Insert(i int, n *Node) {
	if i < 0 || i > len(*c) {
		panic(errors.Errorf("spec: NodeList insert index %d out of range (len %d)", i, len(*c)))
	}
	*c = append(*c, nil)
	copy((*c)[i+1:], (*c)[i:])
	(*c)[i] = n
}
