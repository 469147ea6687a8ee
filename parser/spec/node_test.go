package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendChildSetsParent(t *testing.T) {
	parent := NewElement("div", HTMLNamespace, nil)
	child := NewText("x")
	parent.AppendChild(child)

	require.Len(t, parent.ChildNodes, 1)
	assert.Same(t, parent, child.ParentNode)
	assert.Same(t, child, parent.LastChild())
}

func TestAppendChildReparents(t *testing.T) {
	a := NewElement("a", HTMLNamespace, nil)
	b := NewElement("b", HTMLNamespace, nil)
	child := NewText("x")
	a.AppendChild(child)
	b.AppendChild(child)

	assert.Empty(t, a.ChildNodes)
	assert.Same(t, b, child.ParentNode)
}

func TestInsertBefore(t *testing.T) {
	parent := NewElement("ul", HTMLNamespace, nil)
	first := NewElement("li", HTMLNamespace, nil)
	third := NewElement("li", HTMLNamespace, nil)
	parent.AppendChild(first)
	parent.AppendChild(third)

	second := NewElement("li", HTMLNamespace, nil)
	parent.InsertBefore(second, third)

	require.Len(t, parent.ChildNodes, 3)
	assert.Same(t, second, parent.ChildNodes[1])
	assert.Same(t, parent, second.ParentNode)
}

func TestInsertBeforeNonChildPanics(t *testing.T) {
	parent := NewElement("div", HTMLNamespace, nil)
	stranger := NewElement("p", HTMLNamespace, nil)
	assert.Panics(t, func() {
		parent.InsertBefore(NewText("x"), stranger)
	})
}

func TestRemoveChildNonChildPanics(t *testing.T) {
	parent := NewElement("div", HTMLNamespace, nil)
	assert.Panics(t, func() {
		parent.RemoveChild(NewText("x"))
	})
}

func TestTemplateContent(t *testing.T) {
	tmpl := NewElement("template", HTMLNamespace, nil)
	require.NotNil(t, tmpl.TemplateContent)
	assert.Equal(t, DocumentFragmentNode, tmpl.TemplateContent.NodeType)

	svgTmpl := NewElement("template", SVGNamespace, nil)
	assert.Nil(t, svgTmpl.TemplateContent)
}

func TestCloneNodeDeep(t *testing.T) {
	div := NewElement("div", HTMLNamespace, []Attr{{Name: "id", Value: "a"}})
	div.AppendChild(NewText("x"))

	clone := div.CloneNode(true)
	require.Len(t, clone.ChildNodes, 1)
	assert.Equal(t, "x", clone.ChildNodes[0].Data)
	assert.NotSame(t, div.ChildNodes[0], clone.ChildNodes[0])
	assert.Nil(t, clone.ParentNode)

	clone.Attrs[0].Value = "b"
	assert.Equal(t, "a", div.Attrs[0].Value)
}

func TestCloneNodeShallowKeepsAttrs(t *testing.T) {
	b := NewElement("b", HTMLNamespace, []Attr{{Name: "class", Value: "x"}})
	b.AppendChild(NewText("ignored"))
	clone := b.CloneNode(false)
	assert.Empty(t, clone.ChildNodes)
	v, ok := clone.AttrValue("class")
	assert.True(t, ok)
	assert.Equal(t, "x", v)
}

func TestNodeListOps(t *testing.T) {
	var list NodeList
	a := NewElement("a", HTMLNamespace, nil)
	b := NewElement("b", HTMLNamespace, nil)
	c := NewElement("c", HTMLNamespace, nil)
	list.Push(a)
	list.Push(b)
	list.Push(c)

	assert.Equal(t, 1, list.Contains(b))
	assert.Same(t, c, list.Top())

	list.Remove(1)
	assert.Equal(t, -1, list.Contains(b))
	require.Len(t, list, 2)

	list.Insert(1, b)
	assert.Equal(t, 1, list.Contains(b))

	assert.Same(t, c, list[2])
	popped := list.Pop()
	assert.Same(t, c, popped)
}

func TestStringFormat(t *testing.T) {
	doc := NewDocument()
	doc.AppendChild(NewDoctype(&DocumentType{Name: "html"}))
	html := NewElement("html", HTMLNamespace, nil)
	doc.AppendChild(html)
	body := NewElement("body", HTMLNamespace, nil)
	html.AppendChild(body)
	p := NewElement("p", HTMLNamespace, []Attr{
		{Name: "id", Value: "x"},
		{Name: "class", Value: "y"},
	})
	body.AppendChild(p)
	p.AppendChild(NewText("Hello"))
	body.AppendChild(NewComment("note"))

	expected := "#document\n" +
		"| <!DOCTYPE html>\n" +
		"| <html>\n" +
		"|   <body>\n" +
		"|     <p>\n" +
		"|       class=\"y\"\n" +
		"|       id=\"x\"\n" +
		"|       \"Hello\"\n" +
		"|     <!-- note -->"
	assert.Equal(t, expected, doc.String())
}

func TestStringDoctypeIdentifiers(t *testing.T) {
	dt := NewDoctype(&DocumentType{
		Name:        "html",
		PublicID:    "-//W3C//DTD HTML 4.01//EN",
		HasPublicID: true,
	})
	assert.Equal(t, "| <!DOCTYPE html \"-//W3C//DTD HTML 4.01//EN\" \"\">", dt.String())
}

func TestStringTemplateContentMarker(t *testing.T) {
	tmpl := NewElement("template", HTMLNamespace, nil)
	tmpl.TemplateContent.AppendChild(NewText("x"))
	expected := "| <template>\n" +
		"|   content\n" +
		"|     \"x\""
	assert.Equal(t, expected, tmpl.String())
}

func TestStringForeignPrefixes(t *testing.T) {
	svg := NewElement("svg", SVGNamespace, []Attr{
		{Namespace: XLinkAttrNamespace, Name: "href", Value: "#a"},
	})
	expected := "| <svg svg>\n" +
		"|   xlink href=\"#a\""
	assert.Equal(t, expected, svg.String())
}

func TestToText(t *testing.T) {
	div := NewElement("div", HTMLNamespace, nil)
	div.AppendChild(NewText("  a  "))
	span := NewElement("span", HTMLNamespace, nil)
	span.AppendChild(NewText("b"))
	div.AppendChild(span)
	tmpl := NewElement("template", HTMLNamespace, nil)
	tmpl.TemplateContent.AppendChild(NewText("c"))
	div.AppendChild(tmpl)

	assert.Equal(t, "  a  bc", div.ToText(nil))
	assert.Equal(t, "a b c", div.ToText(&TextOptions{Separator: " ", Strip: true}))
}

func TestAddMissingAttrs(t *testing.T) {
	e := NewElement("html", HTMLNamespace, []Attr{{Name: "lang", Value: "en"}})
	e.AddMissingAttrs([]Attr{{Name: "lang", Value: "de"}, {Name: "dir", Value: "ltr"}})
	v, _ := e.AttrValue("lang")
	assert.Equal(t, "en", v)
	_, ok := e.AttrValue("dir")
	assert.True(t, ok)
}
