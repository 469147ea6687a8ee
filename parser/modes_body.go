package parser

import (
	"strings"

	"github.com/alex-kinokon/justhtml/parser/spec"
)

var headingTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

// elementsAllowedOpenAtEOF may still be open when the input ends without
// that being a parse error.
var elementsAllowedOpenAtEOF = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true, "option": true,
	"p": true, "rb": true, "rp": true, "rt": true, "rtc": true, "tbody": true,
	"td": true, "tfoot": true, "th": true, "thead": true, "tr": true,
	"body": true, "html": true,
}

func (c *HTMLTreeConstructor) hasTemplateOnStack() bool {
	for _, n := range c.stackOfOpenElements {
		if n.NodeName == "template" && n.Namespace == spec.HTMLNamespace {
			return true
		}
	}
	return false
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inbody
func (c *HTMLTreeConstructor) inBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		switch {
		case t.Data == "\u0000":
			c.err(ErrInvalidCodepointInBody, "")
		case isWhitespaceText(t.Data):
			c.reconstructActiveFormattingElements()
			c.insertCharacter(t.Data)
		default:
			c.reconstructActiveFormattingElements()
			c.insertCharacter(t.Data)
			c.framesetOK = false
		}
		return false, inBody
	case commentToken:
		c.insertComment(t)
		return false, inBody
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false, inBody
	case startTagToken:
		return c.inBodyStartTag(t)
	case endTagToken:
		return c.inBodyEndTag(t)
	case endOfFileToken:
		if len(c.templateInsertionModes) > 0 {
			return c.useRulesFor(t, inBody, inTemplate)
		}
		for _, n := range c.stackOfOpenElements {
			if n.Namespace == spec.HTMLNamespace && !elementsAllowedOpenAtEOF[n.NodeName] {
				c.err(ErrUnexpectedEOF, n.NodeName)
				break
			}
		}
		c.stopParsing()
		return false, inBody
	}
	return false, inBody
}

func (c *HTMLTreeConstructor) inBodyStartTag(t *Token) (bool, insertionMode) {
	switch t.TagName {
	case "html":
		c.err(ErrUnexpectedStartTag, t.TagName)
		if !c.hasTemplateOnStack() {
			c.stackOfOpenElements[0].AddMissingAttrs(t.Attributes)
		}
	case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
		return c.useRulesFor(t, inBody, inHead)
	case "body":
		c.err(ErrUnexpectedStartTag, t.TagName)
		if len(c.stackOfOpenElements) < 2 {
			return false, inBody
		}
		second := c.stackOfOpenElements[1]
		if second.NodeName != "body" || c.hasTemplateOnStack() {
			return false, inBody
		}
		c.framesetOK = false
		second.AddMissingAttrs(t.Attributes)
	case "frameset":
		c.err(ErrUnexpectedStartTag, t.TagName)
		if len(c.stackOfOpenElements) < 2 || c.stackOfOpenElements[1].NodeName != "body" || !c.framesetOK {
			return false, inBody
		}
		body := c.stackOfOpenElements[1]
		if body.ParentNode != nil {
			body.ParentNode.RemoveChild(body)
		}
		for len(c.stackOfOpenElements) > 1 {
			c.popOpenElements()
		}
		c.insertHTMLElementForToken(t)
		return false, inFrameset
	case "address", "article", "aside", "blockquote", "center", "details", "dialog",
		"dir", "div", "dl", "fieldset", "figcaption", "figure", "footer", "header",
		"hgroup", "main", "menu", "nav", "ol", "p", "search", "section", "summary", "ul":
		if c.elementInScope(buttonScope, "p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if c.elementInScope(buttonScope, "p") {
			c.closePElement()
		}
		if cur := c.getCurrentNode(); cur != nil && cur.Namespace == spec.HTMLNamespace && headingTags[cur.NodeName] {
			c.err(ErrUnexpectedStartTag, t.TagName)
			c.popOpenElements()
		}
		c.insertHTMLElementForToken(t)
	case "pre", "listing":
		if c.elementInScope(buttonScope, "p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		c.ignoreLF = true
		c.framesetOK = false
	case "form":
		if c.formElementPointer != nil && !c.hasTemplateOnStack() {
			c.err(ErrUnexpectedStartTag, t.TagName)
			return false, inBody
		}
		if c.elementInScope(buttonScope, "p") {
			c.closePElement()
		}
		elem := c.insertHTMLElementForToken(t)
		if !c.hasTemplateOnStack() {
			c.formElementPointer = elem
		}
	case "li":
		c.framesetOK = false
		c.closeOpenListItem("li")
		if c.elementInScope(buttonScope, "p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
	case "dd", "dt":
		c.framesetOK = false
		c.closeOpenListItem("dd", "dt")
		if c.elementInScope(buttonScope, "p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
	case "plaintext":
		if c.elementInScope(buttonScope, "p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		c.overrideTokenizerState(plaintextState)
	case "button":
		if c.elementInScope(defaultScope, "button") {
			c.err(ErrUnexpectedStartTag, t.TagName)
			c.generateImpliedEndTags()
			c.popUntilName("button")
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.framesetOK = false
	case "a":
		for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
			entry := c.activeFormattingElements[i]
			if entry.NodeType == spec.ScopeMarkerNode {
				break
			}
			if entry.NodeName == "a" {
				c.err(ErrUnexpectedStartTag, t.TagName)
				c.adoptionAgency(&Token{TokenType: endTagToken, TagName: "a"})
				if j := c.activeFormattingElements.Contains(entry); j != -1 {
					c.activeFormattingElements.Remove(j)
				}
				if j := c.stackOfOpenElements.Contains(entry); j != -1 {
					c.stackOfOpenElements.Remove(j)
				}
				break
			}
		}
		c.reconstructActiveFormattingElements()
		elem := c.insertHTMLElementForToken(t)
		c.pushActiveFormattingElements(elem)
	case "b", "big", "code", "em", "font", "i", "s", "small", "strike", "strong", "tt", "u":
		c.reconstructActiveFormattingElements()
		elem := c.insertHTMLElementForToken(t)
		c.pushActiveFormattingElements(elem)
	case "nobr":
		c.reconstructActiveFormattingElements()
		if c.elementInScope(defaultScope, "nobr") {
			c.err(ErrUnexpectedStartTag, t.TagName)
			c.adoptionAgency(&Token{TokenType: endTagToken, TagName: "nobr"})
			c.reconstructActiveFormattingElements()
		}
		elem := c.insertHTMLElementForToken(t)
		c.pushActiveFormattingElements(elem)
	case "applet", "marquee", "object":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.activeFormattingElements.Push(spec.ScopeMarker)
		c.framesetOK = false
	case "table":
		if c.quirksMode != quirks && c.elementInScope(buttonScope, "p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		c.framesetOK = false
		return false, inTable
	case "area", "br", "embed", "img", "keygen", "wbr":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.popOpenElements()
		c.framesetOK = false
	case "input":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.popOpenElements()
		if v, ok := t.AttrValue("type"); !ok || !strings.EqualFold(v, "hidden") {
			c.framesetOK = false
		}
	case "param", "source", "track":
		c.insertHTMLElementForToken(t)
		c.popOpenElements()
	case "hr":
		if c.elementInScope(buttonScope, "p") {
			c.closePElement()
		}
		c.insertHTMLElementForToken(t)
		c.popOpenElements()
		c.framesetOK = false
	case "image":
		c.err(ErrUnexpectedStartTag, t.TagName)
		img := *t
		img.TagName = "img"
		return c.inBodyModeHandler(&img)
	case "textarea":
		c.insertHTMLElementForToken(t)
		c.ignoreLF = true
		c.overrideTokenizerState(rcDataState)
		c.originalInsertionMode = c.insertionMode
		c.framesetOK = false
		return false, text
	case "xmp":
		if c.elementInScope(buttonScope, "p") {
			c.closePElement()
		}
		c.reconstructActiveFormattingElements()
		c.framesetOK = false
		return false, c.genericRawTextParse(t)
	case "iframe":
		c.framesetOK = false
		return false, c.genericRawTextParse(t)
	case "noembed":
		return false, c.genericRawTextParse(t)
	case "noscript":
		if c.scriptingEnabled {
			return false, c.genericRawTextParse(t)
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
	case "select":
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
		c.framesetOK = false
		return false, inSelect
	case "optgroup", "option":
		if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "option" {
			c.popOpenElements()
		}
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
	case "rb", "rtc":
		if c.elementInScope(defaultScope, "ruby") {
			c.generateImpliedEndTags()
			if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "ruby" {
				c.err(ErrUnexpectedStartTag, t.TagName)
			}
		}
		c.insertHTMLElementForToken(t)
	case "rp", "rt":
		if c.elementInScope(defaultScope, "ruby") {
			c.generateImpliedEndTags("rtc")
			if cur := c.getCurrentNode(); cur == nil || (cur.NodeName != "ruby" && cur.NodeName != "rtc") {
				c.err(ErrUnexpectedStartTag, t.TagName)
			}
		}
		c.insertHTMLElementForToken(t)
	case "math":
		c.reconstructActiveFormattingElements()
		adjusted := *t
		adjusted.Attributes = adjustForeignAttributes(adjustMathMLAttributes(t.Attributes))
		c.insertForeignElementForToken(&adjusted, spec.MathMLNamespace)
		if t.SelfClosing {
			c.popOpenElements()
		}
	case "svg":
		c.reconstructActiveFormattingElements()
		adjusted := *t
		adjusted.Attributes = adjustForeignAttributes(adjustSVGAttributes(t.Attributes))
		c.insertForeignElementForToken(&adjusted, spec.SVGNamespace)
		if t.SelfClosing {
			c.popOpenElements()
		}
	case "caption", "col", "colgroup", "frame", "head", "tbody", "td", "tfoot", "th", "thead", "tr":
		c.err(ErrUnexpectedStartTag, t.TagName)
	default:
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(t)
	}
	return false, inBody
}

// closeOpenListItem implements the li / dd / dt start-tag loop that
// closes an open item of the same kind before opening a new one.
func (c *HTMLTreeConstructor) closeOpenListItem(names ...string) {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements[i]
		if node.Namespace == spec.HTMLNamespace {
			for _, name := range names {
				if node.NodeName == name {
					c.generateImpliedEndTags(name)
					if cur := c.getCurrentNode(); cur == nil || cur.NodeName != name {
						c.err(ErrEndTagTooEarly, name)
					}
					c.popUntilName(name)
					return
				}
			}
		}
		if isSpecial(node) && node.NodeName != "address" && node.NodeName != "div" && node.NodeName != "p" {
			return
		}
	}
}

func (c *HTMLTreeConstructor) inBodyEndTag(t *Token) (bool, insertionMode) {
	switch t.TagName {
	case "template":
		return c.useRulesFor(t, inBody, inHead)
	case "body", "html":
		if !c.elementInScope(defaultScope, "body") {
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inBody
		}
		for _, n := range c.stackOfOpenElements {
			if n.Namespace == spec.HTMLNamespace && !elementsAllowedOpenAtEOF[n.NodeName] {
				c.err(ErrEndTagTooEarly, t.TagName)
				break
			}
		}
		if t.TagName == "html" {
			return true, afterBody
		}
		return false, afterBody
	case "address", "article", "aside", "blockquote", "button", "center", "details",
		"dialog", "dir", "div", "dl", "fieldset", "figcaption", "figure", "footer",
		"header", "hgroup", "listing", "main", "menu", "nav", "ol", "pre", "search",
		"section", "summary", "ul":
		if !c.elementInScope(defaultScope, t.TagName) {
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inBody
		}
		c.generateImpliedEndTags()
		if cur := c.getCurrentNode(); cur == nil || cur.NodeName != t.TagName {
			c.err(ErrEndTagTooEarly, t.TagName)
		}
		c.popUntilName(t.TagName)
	case "form":
		if !c.hasTemplateOnStack() {
			node := c.formElementPointer
			c.formElementPointer = nil
			if node == nil || !c.nodeInScope(defaultScope, node) {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inBody
			}
			c.generateImpliedEndTags()
			if c.getCurrentNode() != node {
				c.err(ErrEndTagTooEarly, t.TagName)
			}
			if i := c.stackOfOpenElements.Contains(node); i != -1 {
				c.stackOfOpenElements.Remove(i)
			}
		} else {
			if !c.elementInScope(defaultScope, "form") {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inBody
			}
			c.generateImpliedEndTags()
			if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "form" {
				c.err(ErrEndTagTooEarly, t.TagName)
			}
			c.popUntilName("form")
		}
	case "p":
		if !c.elementInScope(buttonScope, "p") {
			c.err(ErrUnexpectedEndTag, t.TagName)
			c.insertHTMLElementForToken(&Token{TokenType: startTagToken, TagName: "p"})
		}
		c.closePElement()
	case "li":
		if !c.elementInScope(listItemScope, "li") {
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inBody
		}
		c.generateImpliedEndTags("li")
		if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "li" {
			c.err(ErrEndTagTooEarly, t.TagName)
		}
		c.popUntilName("li")
	case "dd", "dt":
		if !c.elementInScope(defaultScope, t.TagName) {
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inBody
		}
		c.generateImpliedEndTags(t.TagName)
		if cur := c.getCurrentNode(); cur == nil || cur.NodeName != t.TagName {
			c.err(ErrEndTagTooEarly, t.TagName)
		}
		c.popUntilName(t.TagName)
	case "h1", "h2", "h3", "h4", "h5", "h6":
		if !c.elementInScope(defaultScope, "h1", "h2", "h3", "h4", "h5", "h6") {
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inBody
		}
		c.generateImpliedEndTags()
		if cur := c.getCurrentNode(); cur == nil || cur.NodeName != t.TagName {
			c.err(ErrEndTagTooEarly, t.TagName)
		}
		c.popUntilName("h1", "h2", "h3", "h4", "h5", "h6")
	case "a", "b", "big", "code", "em", "font", "i", "nobr", "s", "small", "strike", "strong", "tt", "u":
		if c.adoptionAgency(t) {
			c.anyOtherEndTagInBody(t)
		}
	case "applet", "marquee", "object":
		if !c.elementInScope(defaultScope, t.TagName) {
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inBody
		}
		c.generateImpliedEndTags()
		if cur := c.getCurrentNode(); cur == nil || cur.NodeName != t.TagName {
			c.err(ErrEndTagTooEarly, t.TagName)
		}
		c.popUntilName(t.TagName)
		c.clearActiveFormattingElementsToLastMarker()
	case "br":
		c.err(ErrUnexpectedEndTag, t.TagName)
		c.reconstructActiveFormattingElements()
		c.insertHTMLElementForToken(&Token{TokenType: startTagToken, TagName: "br"})
		c.popOpenElements()
		c.framesetOK = false
	default:
		c.anyOtherEndTagInBody(t)
	}
	return false, inBody
}

// anyOtherEndTagInBody walks the stack for a matching element, or drops
// the tag at the first special element.
func (c *HTMLTreeConstructor) anyOtherEndTagInBody(t *Token) {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements[i]
		if node.Namespace == spec.HTMLNamespace && node.NodeName == t.TagName {
			c.generateImpliedEndTags(t.TagName)
			if node != c.getCurrentNode() {
				c.err(ErrEndTagTooEarly, t.TagName)
			}
			for len(c.stackOfOpenElements) > i {
				c.popOpenElements()
			}
			return
		}
		if isSpecial(node) {
			c.err(ErrUnexpectedEndTag, t.TagName)
			return
		}
	}
}
