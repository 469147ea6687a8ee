package parser

import (
	"strings"

	"github.com/alex-kinokon/justhtml/parser/spec"
)

func (c *HTMLTreeConstructor) clearStackBackToTableContext() {
	for {
		cur := c.getCurrentNode()
		if cur == nil {
			return
		}
		switch cur.NodeName {
		case "table", "template", "html":
			return
		}
		c.popOpenElements()
	}
}

func (c *HTMLTreeConstructor) clearStackBackToTableBodyContext() {
	for {
		cur := c.getCurrentNode()
		if cur == nil {
			return
		}
		switch cur.NodeName {
		case "tbody", "tfoot", "thead", "template", "html":
			return
		}
		c.popOpenElements()
	}
}

func (c *HTMLTreeConstructor) clearStackBackToTableRowContext() {
	for {
		cur := c.getCurrentNode()
		if cur == nil {
			return
		}
		switch cur.NodeName {
		case "tr", "template", "html":
			return
		}
		c.popOpenElements()
	}
}

func (c *HTMLTreeConstructor) inTableAnythingElse(t *Token) (bool, insertionMode) {
	c.err(ErrFosterParentingCharacter, t.TagName)
	c.fosterParenting = true
	reprocess, nextMode := c.useRulesFor(t, inTable, inBody)
	c.fosterParenting = false
	return reprocess, nextMode
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intable
func (c *HTMLTreeConstructor) inTableModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if cur := c.getCurrentNode(); cur != nil && cur.Namespace == spec.HTMLNamespace {
			switch cur.NodeName {
			case "table", "tbody", "tfoot", "thead", "tr":
				c.pendingTableText = nil
				c.tableTextNonSpace = false
				c.originalInsertionMode = c.insertionMode
				return true, inTableText
			}
		}
		return c.inTableAnythingElse(t)
	case commentToken:
		c.insertComment(t)
		return false, inTable
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false, inTable
	case startTagToken:
		switch t.TagName {
		case "caption":
			c.clearStackBackToTableContext()
			c.activeFormattingElements.Push(spec.ScopeMarker)
			c.insertHTMLElementForToken(t)
			return false, inCaption
		case "colgroup":
			c.clearStackBackToTableContext()
			c.insertHTMLElementForToken(t)
			return false, inColumnGroup
		case "col":
			c.clearStackBackToTableContext()
			c.insertHTMLElementForToken(&Token{TokenType: startTagToken, TagName: "colgroup"})
			return true, inColumnGroup
		case "tbody", "tfoot", "thead":
			c.clearStackBackToTableContext()
			c.insertHTMLElementForToken(t)
			return false, inTableBody
		case "td", "th", "tr":
			c.clearStackBackToTableContext()
			c.insertHTMLElementForToken(&Token{TokenType: startTagToken, TagName: "tbody"})
			return true, inTableBody
		case "table":
			c.err(ErrUnexpectedStartTag, t.TagName)
			if !c.elementInScope(tableScope, "table") {
				return false, inTable
			}
			c.popUntilName("table")
			return true, c.resetInsertionMode()
		case "style", "script", "template":
			return c.useRulesFor(t, inTable, inHead)
		case "input":
			if v, ok := t.AttrValue("type"); !ok || !strings.EqualFold(v, "hidden") {
				return c.inTableAnythingElse(t)
			}
			c.err(ErrUnexpectedStartTag, t.TagName)
			c.insertHTMLElementForToken(t)
			c.popOpenElements()
			return false, inTable
		case "form":
			c.err(ErrUnexpectedStartTag, t.TagName)
			if c.hasTemplateOnStack() || c.formElementPointer != nil {
				return false, inTable
			}
			elem := c.insertHTMLElementForToken(t)
			c.formElementPointer = elem
			c.popOpenElements()
			return false, inTable
		}
	case endTagToken:
		switch t.TagName {
		case "table":
			if !c.elementInScope(tableScope, "table") {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inTable
			}
			c.popUntilName("table")
			return false, c.resetInsertionMode()
		case "body", "caption", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inTable
		case "template":
			return c.useRulesFor(t, inTable, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inTable, inBody)
	}
	return c.inTableAnythingElse(t)
}

func (c *HTMLTreeConstructor) flushPendingTableText() {
	pending := c.pendingTableText
	c.pendingTableText = nil
	if c.tableTextNonSpace {
		c.tableTextNonSpace = false
		c.err(ErrFosterParentingCharacter, "")
		c.fosterParenting = true
		for _, s := range pending {
			tok := Token{TokenType: characterToken, Data: s}
			c.inBodyModeHandler(&tok)
		}
		c.fosterParenting = false
		return
	}
	if len(pending) > 0 {
		c.insertCharacter(strings.Join(pending, ""))
	}
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intabletext
func (c *HTMLTreeConstructor) inTableTextModeHandler(t *Token) (bool, insertionMode) {
	if t.TokenType == characterToken {
		switch t.Data {
		case "\u0000":
			c.err(ErrUnexpectedNull, "")
		case "\f":
			// stripped in table text
		default:
			if !isWhitespaceText(t.Data) {
				c.tableTextNonSpace = true
			}
			c.pendingTableText = append(c.pendingTableText, t.Data)
		}
		return false, inTableText
	}
	c.flushPendingTableText()
	return true, c.originalInsertionMode
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incaption
func (c *HTMLTreeConstructor) inCaptionModeHandler(t *Token) (bool, insertionMode) {
	closeCaption := func(reprocess bool) (bool, insertionMode) {
		if !c.elementInScope(tableScope, "caption") {
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inCaption
		}
		c.generateImpliedEndTags()
		if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "caption" {
			c.err(ErrEndTagTooEarly, t.TagName)
		}
		c.popUntilName("caption")
		c.clearActiveFormattingElementsToLastMarker()
		return reprocess, inTable
	}

	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			return closeCaption(true)
		}
	case endTagToken:
		switch t.TagName {
		case "caption":
			return closeCaption(false)
		case "table":
			return closeCaption(true)
		case "body", "col", "colgroup", "html", "tbody", "td", "tfoot", "th", "thead", "tr":
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inCaption
		}
	}
	return c.useRulesFor(t, inCaption, inBody)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-incolgroup
func (c *HTMLTreeConstructor) inColumnGroupModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken:
		if isWhitespaceText(t.Data) {
			c.insertCharacter(t.Data)
			return false, inColumnGroup
		}
	case commentToken:
		c.insertComment(t)
		return false, inColumnGroup
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false, inColumnGroup
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inColumnGroup, inBody)
		case "col":
			c.insertHTMLElementForToken(t)
			c.popOpenElements()
			return false, inColumnGroup
		case "template":
			return c.useRulesFor(t, inColumnGroup, inHead)
		}
	case endTagToken:
		switch t.TagName {
		case "colgroup":
			if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "colgroup" {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inColumnGroup
			}
			c.popOpenElements()
			return false, inTable
		case "col":
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inColumnGroup
		case "template":
			return c.useRulesFor(t, inColumnGroup, inHead)
		}
	case endOfFileToken:
		return c.useRulesFor(t, inColumnGroup, inBody)
	}

	if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "colgroup" {
		c.err(ErrUnexpectedCharacter, t.TagName)
		return false, inColumnGroup
	}
	c.popOpenElements()
	return true, inTable
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intbody
func (c *HTMLTreeConstructor) inTableBodyModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "tr":
			c.clearStackBackToTableBodyContext()
			c.insertHTMLElementForToken(t)
			return false, inRow
		case "th", "td":
			c.err(ErrUnexpectedStartTag, t.TagName)
			c.clearStackBackToTableBodyContext()
			c.insertHTMLElementForToken(&Token{TokenType: startTagToken, TagName: "tr"})
			return true, inRow
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead":
			if !c.elementInScope(tableScope, "tbody", "thead", "tfoot") {
				c.err(ErrUnexpectedStartTag, t.TagName)
				return false, inTableBody
			}
			c.clearStackBackToTableBodyContext()
			c.popOpenElements()
			return true, inTable
		}
	case endTagToken:
		switch t.TagName {
		case "tbody", "tfoot", "thead":
			if !c.elementInScope(tableScope, t.TagName) {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inTableBody
			}
			c.clearStackBackToTableBodyContext()
			c.popOpenElements()
			return false, inTable
		case "table":
			if !c.elementInScope(tableScope, "tbody", "thead", "tfoot") {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inTableBody
			}
			c.clearStackBackToTableBodyContext()
			c.popOpenElements()
			return true, inTable
		case "body", "caption", "col", "colgroup", "html", "td", "th", "tr":
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inTableBody
		}
	}
	return c.useRulesFor(t, inTableBody, inTable)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intr
func (c *HTMLTreeConstructor) inRowModeHandler(t *Token) (bool, insertionMode) {
	closeRow := func() bool {
		if !c.elementInScope(tableScope, "tr") {
			return false
		}
		c.clearStackBackToTableRowContext()
		c.popOpenElements()
		return true
	}

	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "th", "td":
			c.clearStackBackToTableRowContext()
			c.insertHTMLElementForToken(t)
			c.activeFormattingElements.Push(spec.ScopeMarker)
			return false, inCell
		case "caption", "col", "colgroup", "tbody", "tfoot", "thead", "tr":
			if !closeRow() {
				c.err(ErrUnexpectedStartTag, t.TagName)
				return false, inRow
			}
			return true, inTableBody
		}
	case endTagToken:
		switch t.TagName {
		case "tr":
			if !closeRow() {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inRow
			}
			return false, inTableBody
		case "table":
			if !closeRow() {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inRow
			}
			return true, inTableBody
		case "tbody", "tfoot", "thead":
			if !c.elementInScope(tableScope, t.TagName) {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inRow
			}
			if !closeRow() {
				return false, inRow
			}
			return true, inTableBody
		case "body", "caption", "col", "colgroup", "html", "td", "th":
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inRow
		}
	}
	return c.useRulesFor(t, inRow, inTable)
}

// closeCell closes an open td or th and returns to the row mode.
func (c *HTMLTreeConstructor) closeCell() {
	c.generateImpliedEndTags()
	if cur := c.getCurrentNode(); cur != nil && cur.NodeName != "td" && cur.NodeName != "th" {
		c.err(ErrEndTagTooEarly, cur.NodeName)
	}
	c.popUntilName("td", "th")
	c.clearActiveFormattingElementsToLastMarker()
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intd
func (c *HTMLTreeConstructor) inCellModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case startTagToken:
		switch t.TagName {
		case "caption", "col", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			if !c.elementInScope(tableScope, "td", "th") {
				c.err(ErrUnexpectedStartTag, t.TagName)
				return false, inCell
			}
			c.closeCell()
			return true, inRow
		}
	case endTagToken:
		switch t.TagName {
		case "td", "th":
			if !c.elementInScope(tableScope, t.TagName) {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inCell
			}
			c.generateImpliedEndTags()
			if cur := c.getCurrentNode(); cur == nil || cur.NodeName != t.TagName {
				c.err(ErrEndTagTooEarly, t.TagName)
			}
			c.popUntilName(t.TagName)
			c.clearActiveFormattingElementsToLastMarker()
			return false, inRow
		case "body", "caption", "col", "colgroup", "html":
			c.err(ErrUnexpectedEndTag, t.TagName)
			return false, inCell
		case "table", "tbody", "tfoot", "thead", "tr":
			if !c.elementInScope(tableScope, t.TagName) {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inCell
			}
			c.closeCell()
			return true, inRow
		}
	}
	return c.useRulesFor(t, inCell, inBody)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inselect
func (c *HTMLTreeConstructor) inSelectModeHandler(t *Token) (bool, insertionMode) {
	popSelect := func() (bool, insertionMode) {
		if !c.elementInScope(selectScope, "select") {
			return false, inSelect
		}
		c.popUntilName("select")
		return true, c.resetInsertionMode()
	}

	switch t.TokenType {
	case characterToken:
		if t.Data == "\u0000" {
			c.err(ErrUnexpectedNull, "")
			return false, inSelect
		}
		c.insertCharacter(t.Data)
		return false, inSelect
	case commentToken:
		c.insertComment(t)
		return false, inSelect
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false, inSelect
	case startTagToken:
		switch t.TagName {
		case "html":
			return c.useRulesFor(t, inSelect, inBody)
		case "option":
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "option" {
				c.popOpenElements()
			}
			c.insertHTMLElementForToken(t)
			return false, inSelect
		case "optgroup":
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "option" {
				c.popOpenElements()
			}
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "optgroup" {
				c.popOpenElements()
			}
			c.insertHTMLElementForToken(t)
			return false, inSelect
		case "hr":
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "option" {
				c.popOpenElements()
			}
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "optgroup" {
				c.popOpenElements()
			}
			c.insertHTMLElementForToken(t)
			c.popOpenElements()
			return false, inSelect
		case "select":
			c.err(ErrUnexpectedStartTag, t.TagName)
			if reset, next := popSelect(); reset {
				return false, next
			}
			return false, inSelect
		case "input", "keygen", "textarea":
			c.err(ErrUnexpectedStartTag, t.TagName)
			if !c.elementInScope(selectScope, "select") {
				return false, inSelect
			}
			c.popUntilName("select")
			return true, c.resetInsertionMode()
		case "script", "template":
			return c.useRulesFor(t, inSelect, inHead)
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			c.err(ErrUnexpectedStartTag, t.TagName)
			if !c.elementInScope(selectScope, "select") {
				return false, inSelect
			}
			c.popUntilName("select")
			return true, c.resetInsertionMode()
		}
		return c.useRulesFor(t, inSelect, inBody)
	case endTagToken:
		switch t.TagName {
		case "optgroup":
			cur := c.getCurrentNode()
			if cur != nil && cur.NodeName == "option" && len(c.stackOfOpenElements) > 1 {
				below := c.stackOfOpenElements[len(c.stackOfOpenElements)-2]
				if below.NodeName == "optgroup" {
					c.popOpenElements()
				}
			}
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "optgroup" {
				c.popOpenElements()
			} else {
				c.err(ErrUnexpectedEndTag, t.TagName)
			}
			return false, inSelect
		case "option":
			if cur := c.getCurrentNode(); cur != nil && cur.NodeName == "option" {
				c.popOpenElements()
			} else {
				c.err(ErrUnexpectedEndTag, t.TagName)
			}
			return false, inSelect
		case "select":
			if !c.elementInScope(selectScope, "select") {
				c.err(ErrUnexpectedEndTag, t.TagName)
				return false, inSelect
			}
			c.popUntilName("select")
			return false, c.resetInsertionMode()
		case "template":
			return c.useRulesFor(t, inSelect, inHead)
		case "caption", "table", "tbody", "tfoot", "thead", "tr", "td", "th":
			c.err(ErrUnexpectedEndTag, t.TagName)
			if !c.elementInScope(tableScope, t.TagName) {
				return false, inSelect
			}
			c.popUntilName("select")
			return true, c.resetInsertionMode()
		}
		return c.useRulesFor(t, inSelect, inBody)
	case endOfFileToken:
		return c.useRulesFor(t, inSelect, inBody)
	}
	return false, inSelect
}

func (c *HTMLTreeConstructor) replaceTemplateMode(m insertionMode) {
	if len(c.templateInsertionModes) > 0 {
		c.templateInsertionModes = c.templateInsertionModes[:len(c.templateInsertionModes)-1]
	}
	c.templateInsertionModes = append(c.templateInsertionModes, m)
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-intemplate
func (c *HTMLTreeConstructor) inTemplateModeHandler(t *Token) (bool, insertionMode) {
	switch t.TokenType {
	case characterToken, commentToken, docTypeToken:
		return c.useRulesFor(t, inTemplate, inBody)
	case startTagToken:
		switch t.TagName {
		case "base", "basefont", "bgsound", "link", "meta", "noframes", "script",
			"style", "template", "title":
			return c.useRulesFor(t, inTemplate, inHead)
		case "caption", "colgroup", "tbody", "tfoot", "thead":
			c.replaceTemplateMode(inTable)
			return true, inTable
		case "col":
			c.replaceTemplateMode(inColumnGroup)
			return true, inColumnGroup
		case "tr":
			c.replaceTemplateMode(inTableBody)
			return true, inTableBody
		case "td", "th":
			c.replaceTemplateMode(inRow)
			return true, inRow
		}
		c.replaceTemplateMode(inBody)
		return true, inBody
	case endTagToken:
		if t.TagName == "template" {
			return c.useRulesFor(t, inTemplate, inHead)
		}
		c.err(ErrUnexpectedEndTag, t.TagName)
		return false, inTemplate
	case endOfFileToken:
		if !c.hasTemplateOnStack() {
			c.stopParsing()
			return false, inTemplate
		}
		c.err(ErrEOFInTemplate, "")
		c.popUntilName("template")
		c.clearActiveFormattingElementsToLastMarker()
		if len(c.templateInsertionModes) > 0 {
			c.templateInsertionModes = c.templateInsertionModes[:len(c.templateInsertionModes)-1]
		}
		return true, c.resetInsertionMode()
	}
	return false, inTemplate
}
