package parser

import (
	"github.com/alex-kinokon/justhtml/parser/spec"
)

func isWhitespaceText(data string) bool {
	switch data {
	case "\t", "\n", "\f", " ":
		return true
	}
	return false
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
func (c *HTMLTreeConstructor) initialModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceText(t.Data) {
			return false, initial
		}
	case commentToken:
		c.insertCommentAt(t, insertionLocation{parent: c.Document})
		return false, initial
	case docTypeToken:
		dt := t.Doctype
		if dt.Name != "html" || dt.HasPublicID || (dt.HasSystemID && dt.SystemID != "about:legacy-compat") {
			c.err(ErrUnknownDoctype, dt.Name)
		}
		c.Document.AppendChild(spec.NewDoctype(dt))
		if !c.iframeSrcdoc && isForceQuirks(dt) {
			c.quirksMode = quirks
		} else if !c.iframeSrcdoc && isLimitedQuirks(dt) {
			c.quirksMode = limitedQuirks
		} else {
			c.quirksMode = noQuirks
		}
		return false, beforeHTML
	}

	if !c.iframeSrcdoc {
		switch t.TokenType {
		case characterToken:
			c.err(ErrExpectedDoctypeButGotChars, "")
		case startTagToken:
			c.err(ErrExpectedDoctypeButGotStart, t.TagName)
		case endTagToken:
			c.err(ErrExpectedDoctypeButGotEndTag, t.TagName)
		case endOfFileToken:
			c.err(ErrExpectedDoctypeButGotEOF, "")
		}
		c.quirksMode = quirks
	}
	return true, beforeHTML
}

func (c *HTMLTreeConstructor) defaultBeforeHTMLModeHandler(t *Token) (bool, insertionMode) {
	elem := spec.NewElement("html", spec.HTMLNamespace, nil)
	c.Document.AppendChild(elem)
	c.stackOfOpenElements.Push(elem)
	return true, beforeHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-html-insertion-mode
func (c *HTMLTreeConstructor) beforeHTMLModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false, beforeHTML
	case commentToken:
		c.insertCommentAt(t, insertionLocation{parent: c.Document})
		return false, beforeHTML
	case characterToken:
		if isWhitespaceText(t.Data) {
			return false, beforeHTML
		}
	case startTagToken:
		if t.TagName == "html" {
			elem := c.createElementForToken(t, spec.HTMLNamespace)
			c.Document.AppendChild(elem)
			c.stackOfOpenElements.Push(elem)
			return false, beforeHead
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
			return c.defaultBeforeHTMLModeHandler(t)
		default:
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, beforeHTML
		}
	}
	return c.defaultBeforeHTMLModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultBeforeHeadModeHandler(t *Token) (bool, insertionMode) {
	elem := c.insertHTMLElementForToken(&Token{TokenType: startTagToken, TagName: "head"})
	c.headElementPointer = elem
	return true, inHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-before-head-insertion-mode
func (c *HTMLTreeConstructor) beforeHeadModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceText(t.Data) {
			return false, beforeHead
		}
	case commentToken:
		c.insertComment(t)
		return false, beforeHead
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false, beforeHead
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, beforeHead, inBody)
		case "head":
			elem := c.insertHTMLElementForToken(t)
			c.headElementPointer = elem
			return false, inHead
		}
	case endTagToken:
		switch t.TagName {
		case "head", "body", "html", "br":
			return c.defaultBeforeHeadModeHandler(t)
		}
		c.err(ErrUnexpectedEndTag, t.TagName)
		return false, beforeHead
	}
	return c.defaultBeforeHeadModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultInHeadModeHandler(t *Token) (bool, insertionMode) {
	c.popOpenElements()
	return true, afterHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inhead
func (c *HTMLTreeConstructor) inHeadModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceText(t.Data) {
			c.insertCharacter(t.Data)
			return false, inHead
		}
	case commentToken:
		c.insertComment(t)
		return false, inHead
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false, inHead
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inHead, inBody)
		case "base", "basefont", "bgsound", "link", "meta":
			c.insertHTMLElementForToken(t)
			c.popOpenElements()
			return false, inHead
		case "title":
			return false, c.genericRCDATAParse(t)
		case "noscript":
			if c.scriptingEnabled {
				return false, c.genericRawTextParse(t)
			}
			c.insertHTMLElementForToken(t)
			return false, inHeadNoScript
		case "noframes", "style":
			return false, c.genericRawTextParse(t)
		case "script":
			c.insertHTMLElementForToken(t)
			c.overrideTokenizerState(scriptDataState)
			c.originalInsertionMode = c.insertionMode
			return false, text
		case "template":
			c.insertHTMLElementForToken(t)
			c.activeFormattingElements.Push(spec.ScopeMarker)
			c.framesetOK = false
			c.templateInsertionModes = append(c.templateInsertionModes, inTemplate)
			return false, inTemplate
		case "head":
			c.err(ErrUnexpectedStartTag, t.TagName)
			return false, inHead
		}
	case endTagToken:
		switch t.TagName {
		case "head":
			c.popOpenElements()
			return false, afterHead
		case "body", "html", "br":
			return c.defaultInHeadModeHandler(t)
		case "template":
			return false, c.endTagTemplate(t, inHead)
		default:
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inHead
		}
	}
	return c.defaultInHeadModeHandler(t)
}

// endTagTemplate closes the nearest open template, unwinding the
// template insertion-mode stack.
func (c *HTMLTreeConstructor) endTagTemplate(t *Token, returnMode insertionMode) insertionMode {
	onStack := false
	for _, n := range c.stackOfOpenElements {
		if n.NodeName == "template" && n.Namespace == spec.HTMLNamespace {
			onStack = true
			break
		}
	}
	if !onStack {
		c.err(ErrUnexpectedEndTag, t.TagName)
		return returnMode
	}
	c.generateImpliedEndTagsThoroughly()
	if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "template" {
		c.err(ErrEndTagTooEarly, t.TagName)
	}
	c.popUntilName("template")
	c.clearActiveFormattingElementsToLastMarker()
	if len(c.templateInsertionModes) > 0 {
		c.templateInsertionModes = c.templateInsertionModes[:len(c.templateInsertionModes)-1]
	}
	return c.resetInsertionMode()
}

func (c *HTMLTreeConstructor) defaultInHeadNoScriptModeHandler(t *Token) (bool, insertionMode) {
	c.err(ErrUnexpectedCharacter, t.TagName)
	c.popOpenElements()
	return true, inHead
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inheadnoscript
func (c *HTMLTreeConstructor) inHeadNoScriptModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceText(t.Data) {
			return c.useRulesFor(t, inHeadNoScript, inHead)
		}
	case commentToken:
		return c.useRulesFor(t, inHeadNoScript, inHead)
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false, inHeadNoScript
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inHeadNoScript, inBody)
		case "basefont", "bgsound", "link", "meta", "noframes", "style":
			return c.useRulesFor(t, inHeadNoScript, inHead)
		case "head", "noscript":
			c.err(ErrUnexpectedStartTag, t.TagName)
			return false, inHeadNoScript
		}
	case endTagToken:
		switch t.TagName {
		case "noscript":
			c.popOpenElements()
			return false, inHead
		case "br":
			return c.defaultInHeadNoScriptModeHandler(t)
		default:
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inHeadNoScript
		}
	}
	return c.defaultInHeadNoScriptModeHandler(t)
}

func (c *HTMLTreeConstructor) defaultAfterHeadModeHandler(t *Token) (bool, insertionMode) {
	c.insertHTMLElementForToken(&Token{TokenType: startTagToken, TagName: "body"})
	return true, inBody
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-head-insertion-mode
func (c *HTMLTreeConstructor) afterHeadModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if t.Data == "\f" {
			return false, afterHead
		}
		if isWhitespaceText(t.Data) {
			c.insertCharacter(t.Data)
			return false, afterHead
		}
	case commentToken:
		c.insertComment(t)
		return false, afterHead
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false, afterHead
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, afterHead, inBody)
		case "body":
			c.insertHTMLElementForToken(t)
			c.framesetOK = false
			return false, inBody
		case "frameset":
			c.insertHTMLElementForToken(t)
			return false, inFrameset
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script", "style", "template", "title":
			c.err(ErrUnexpectedStartTag, t.TagName)
			c.stackOfOpenElements.Push(c.headElementPointer)
			reprocess, nextMode := c.useRulesFor(t, afterHead, inHead)
			if i := c.stackOfOpenElements.Contains(c.headElementPointer); i != -1 {
				c.stackOfOpenElements.Remove(i)
			}
			return reprocess, nextMode
		case "head":
			c.err(ErrUnexpectedStartTag, t.TagName)
			return false, afterHead
		}
	case endTagToken:
		switch t.TagName {
		case "template":
			return c.useRulesFor(t, afterHead, inHead)
		case "body", "html", "br":
			return c.defaultAfterHeadModeHandler(t)
		default:
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, afterHead
		}
	}
	return c.defaultAfterHeadModeHandler(t)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incdata
func (c *HTMLTreeConstructor) textModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		c.insertCharacter(t.Data)
		return false, text
	case endOfFileToken:
		c.err(ErrUnexpectedEOF, "")
		c.popOpenElements()
		return true, c.originalInsertionMode
	case endTagToken:
		c.popOpenElements()
		return false, c.originalInsertionMode
	}
	return false, text
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-body-insertion-mode
func (c *HTMLTreeConstructor) afterBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceText(t.Data) {
			return c.useRulesFor(t, afterBody, inBody)
		}
	case commentToken:
		c.insertCommentAt(t, insertionLocation{parent: c.stackOfOpenElements[0]})
		return false, afterBody
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false, afterBody
	case startTagToken:
		if t.TagName == "html" {
			return c.useRulesFor(t, afterBody, inBody)
		}
	case endTagToken:
		if t.TagName == "html" {
			if c.fragment {
				c.err(ErrEndTagInFragmentContext, t.TagName)
				return false, afterBody
			}
			return false, afterAfterBody
		}
	case endOfFileToken:
		c.stopParsing()
		return false, afterBody
	}
	c.err(ErrUnexpectedCharacter, t.TagName)
	return true, inBody
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inframeset
func (c *HTMLTreeConstructor) inFramesetModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceText(t.Data) {
			c.insertCharacter(t.Data)
		} else {
			c.err(ErrUnexpectedCharacter, "")
		}
		return false, inFrameset
	case commentToken:
		c.insertComment(t)
		return false, inFrameset
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false, inFrameset
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inFrameset, inBody)
		case "frameset":
			c.insertHTMLElementForToken(t)
			return false, inFrameset
		case "frame":
			c.insertHTMLElementForToken(t)
			c.popOpenElements()
			return false, inFrameset
		case "noframes":
			return c.useRulesFor(t, inFrameset, inHead)
		}
		c.err(ErrUnexpectedStartTag, t.TagName)
		return false, inFrameset
	case endTagToken:
		if t.TagName == "frameset" {
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "html" && len(c.stackOfOpenElements) == 1 {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inFrameset
			}
			c.popOpenElements()
			if !c.fragment {
				if cur := c.getCurrentNode(); cur != nil && cur.NodeName != "frameset" {
					return false, afterFrameset
				}
			}
			return false, inFrameset
		}
		c.err(ErrUnexpectedEndTag, t.TagName)
		return false, inFrameset
	case endOfFileToken:
		if cur := c.getCurrentNode(); cur != nil && !(cur.NodeName == "html" && len(c.stackOfOpenElements) == 1) {
			c.err(ErrUnexpectedEOF, "")
		}
		c.stopParsing()
		return false, inFrameset
	}
	return false, inFrameset
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-afterframeset
func (c *HTMLTreeConstructor) afterFramesetModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceText(t.Data) {
			c.insertCharacter(t.Data)
		} else {
			c.err(ErrUnexpectedCharacter, "")
		}
		return false, afterFrameset
	case commentToken:
		c.insertComment(t)
		return false, afterFrameset
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false, afterFrameset
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, afterFrameset, inBody)
		case "noframes":
			return c.useRulesFor(t, afterFrameset, inHead)
		}
		c.err(ErrUnexpectedStartTag, t.TagName)
		return false, afterFrameset
	case endTagToken:
		if t.TagName == "html" {
			return false, afterAfterFrameset
		}
		c.err(ErrUnexpectedEndTag, t.TagName)
		return false, afterFrameset
	case endOfFileToken:
		c.stopParsing()
		return false, afterFrameset
	}
	return false, afterFrameset
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-body-insertion-mode
func (c *HTMLTreeConstructor) afterAfterBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case commentToken:
		c.insertCommentAt(t, insertionLocation{parent: c.Document})
		return false, afterAfterBody
	case docTypeToken:
		return c.useRulesFor(t, afterAfterBody, inBody)
	case characterToken:
		if isWhitespaceText(t.Data) {
			return c.useRulesFor(t, afterAfterBody, inBody)
		}
	case startTagToken:
		if t.TagName == "html" {
			return c.useRulesFor(t, afterAfterBody, inBody)
		}
	case endOfFileToken:
		c.stopParsing()
		return false, afterAfterBody
	}
	c.err(ErrUnexpectedCharacter, t.TagName)
	return true, inBody
}

// https://html.spec.whatwg.org/multipage/parsing.html#the-after-after-frameset-insertion-mode
func (c *HTMLTreeConstructor) afterAfterFramesetModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case commentToken:
		c.insertCommentAt(t, insertionLocation{parent: c.Document})
		return false, afterAfterFrameset
	case docTypeToken:
		return c.useRulesFor(t, afterAfterFrameset, inBody)
	case characterToken:
		if isWhitespaceText(t.Data) {
			return c.useRulesFor(t, afterAfterFrameset, inBody)
		}
		c.err(ErrUnexpectedCharacter, "")
		return false, afterAfterFrameset
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, afterAfterFrameset, inBody)
		case "noframes":
			return c.useRulesFor(t, afterAfterFrameset, inHead)
		}
		c.err(ErrUnexpectedStartTag, t.TagName)
		return false, afterAfterFrameset
	case endTagToken:
		c.err(ErrUnexpectedEndTag, t.TagName)
		return false, afterAfterFrameset
	case endOfFileToken:
		c.stopParsing()
		return false, afterAfterFrameset
	}
	return false, afterAfterFrameset
}
