package parser

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/alex-kinokon/justhtml/parser/spec"
)

type quirksMode string

const (
	noQuirks      quirksMode = "no-quirks"
	quirks        quirksMode = "quirks"
	limitedQuirks quirksMode = "limited-quirks"
)

type insertionMode uint

const (
	initial insertionMode = iota
	beforeHTML
	beforeHead
	inHead
	inHeadNoScript
	afterHead
	inBody
	text
	inTable
	inTableText
	inCaption
	inColumnGroup
	inTableBody
	inRow
	inCell
	inSelect
	inTemplate
	afterBody
	inFrameset
	afterFrameset
	afterAfterBody
	afterAfterFrameset
)

var insertionModeNames = map[insertionMode]string{
	initial: "initial", beforeHTML: "before-html", beforeHead: "before-head",
	inHead: "in-head", inHeadNoScript: "in-head-noscript", afterHead: "after-head",
	inBody: "in-body", text: "text", inTable: "in-table", inTableText: "in-table-text",
	inCaption: "in-caption", inColumnGroup: "in-column-group", inTableBody: "in-table-body",
	inRow: "in-row", inCell: "in-cell", inSelect: "in-select", inTemplate: "in-template",
	afterBody: "after-body", inFrameset: "in-frameset", afterFrameset: "after-frameset",
	afterAfterBody: "after-after-body", afterAfterFrameset: "after-after-frameset",
}

func (m insertionMode) String() string { return insertionModeNames[m] }

type treeConstructionModeHandler func(t *Token) (bool, insertionMode)

// HTMLTreeConstructor holds the state of the tree construction stage.
type HTMLTreeConstructor struct {
	Document *spec.Node

	insertionMode         insertionMode
	originalInsertionMode insertionMode
	quirksMode            quirksMode

	stackOfOpenElements      spec.NodeList
	activeFormattingElements spec.NodeList
	headElementPointer       *spec.Node
	formElementPointer       *spec.Node

	framesetOK       bool
	fosterParenting  bool
	ignoreLF         bool
	scriptingEnabled bool
	iframeSrcdoc     bool
	stopped          bool

	pendingTableText  []string
	tableTextNonSpace bool

	templateInsertionModes []insertionMode
	tokenizerStateOverride *tokenizerState

	// fragment-parsing context
	fragment bool
	context  *spec.Node

	// set while a foreign-content breakout reprocesses a token with the
	// HTML rules
	forceHTMLDispatch bool

	errors   []ParseError
	mappings map[insertionMode]treeConstructionModeHandler
}

// NewHTMLTreeConstructor creates a tree constructor producing into a fresh
// document node.
func NewHTMLTreeConstructor() *HTMLTreeConstructor {
	c := &HTMLTreeConstructor{
		Document:   spec.NewDocument(),
		quirksMode: noQuirks,
		framesetOK: true,
	}
	c.createMappings()
	return c
}

func (c *HTMLTreeConstructor) createMappings() {
	c.mappings = map[insertionMode]treeConstructionModeHandler{
		initial:            c.initialModeHandler,
		beforeHTML:         c.beforeHTMLModeHandler,
		beforeHead:         c.beforeHeadModeHandler,
		inHead:             c.inHeadModeHandler,
		inHeadNoScript:     c.inHeadNoScriptModeHandler,
		afterHead:          c.afterHeadModeHandler,
		inBody:             c.inBodyModeHandler,
		text:               c.textModeHandler,
		inTable:            c.inTableModeHandler,
		inTableText:        c.inTableTextModeHandler,
		inCaption:          c.inCaptionModeHandler,
		inColumnGroup:      c.inColumnGroupModeHandler,
		inTableBody:        c.inTableBodyModeHandler,
		inRow:              c.inRowModeHandler,
		inCell:             c.inCellModeHandler,
		inSelect:           c.inSelectModeHandler,
		inTemplate:         c.inTemplateModeHandler,
		afterBody:          c.afterBodyModeHandler,
		inFrameset:         c.inFramesetModeHandler,
		afterFrameset:      c.afterFramesetModeHandler,
		afterAfterBody:     c.afterAfterBodyModeHandler,
		afterAfterFrameset: c.afterAfterFramesetModeHandler,
	}
}

// Errors returns the parse errors collected during tree construction.
func (c *HTMLTreeConstructor) Errors() []ParseError {
	return c.errors
}

func (c *HTMLTreeConstructor) err(code ErrorCode, tag string) {
	c.errors = append(c.errors, ParseError{Code: code, Offset: -1, Tag: tag})
}

func (c *HTMLTreeConstructor) getCurrentNode() *spec.Node {
	return c.stackOfOpenElements.Top()
}

// getAdjustedCurrentNode is the context element when parsing a fragment
// with only the root on the stack, the current node otherwise.
// https://html.spec.whatwg.org/multipage/parsing.html#adjusted-current-node
func (c *HTMLTreeConstructor) getAdjustedCurrentNode() *spec.Node {
	if c.fragment && len(c.stackOfOpenElements) == 1 {
		return c.context
	}
	return c.getCurrentNode()
}

func (c *HTMLTreeConstructor) popOpenElements() *spec.Node {
	return c.stackOfOpenElements.Pop()
}

// popUntilName pops elements until an HTML element with one of the given
// names has been popped.
func (c *HTMLTreeConstructor) popUntilName(names ...string) {
	for len(c.stackOfOpenElements) > 0 {
		n := c.stackOfOpenElements.Pop()
		if n.Namespace == spec.HTMLNamespace {
			for _, name := range names {
				if n.NodeName == name {
					return
				}
			}
		}
	}
}

// ProcessToken dispatches one token through the tree-construction state
// machine, including reprocessing, and reports the tokenizer feedback.
func (c *HTMLTreeConstructor) ProcessToken(t *Token) *Progress {
	if c.stopped {
		return c.progress()
	}
	if c.ignoreLF {
		c.ignoreLF = false
		if t.TokenType == characterToken && t.Data == "\n" {
			return c.progress()
		}
	}

	reprocess := true
	for reprocess {
		if log.IsLevelEnabled(logrus.DebugLevel) {
			log.WithFields(logrus.Fields{"mode": c.insertionMode, "token": t.TokenType, "tag": t.TagName}).Debug("construct")
		}
		if c.useForeignRules(t) {
			reprocess = c.foreignContentHandler(t)
			continue
		}
		handler := c.mappings[c.insertionMode]
		if c.integrationPointTableDetour(t) {
			handler = c.inBodyModeHandler
		}
		reprocess, c.insertionMode = handler(t)
	}
	c.forceHTMLDispatch = false
	return c.progress()
}

// integrationPointTableDetour routes a start tag arriving at an
// integration point inside a table-like mode, with no table in scope,
// through the in-body rules for this one token.
func (c *HTMLTreeConstructor) integrationPointTableDetour(t *Token) bool {
	if t.TokenType != startTagToken || c.insertionMode == inBody {
		return false
	}
	switch c.insertionMode {
	case inTable, inTableText, inCaption, inColumnGroup, inTableBody, inRow, inCell:
	default:
		return false
	}
	acn := c.getAdjustedCurrentNode()
	if acn == nil || (!isMathMLTextIntegrationPoint(acn) && !isHTMLIntegrationPoint(acn)) {
		return false
	}
	return !c.elementInScope(tableScope, "table")
}

func (c *HTMLTreeConstructor) progress() *Progress {
	p := &Progress{
		AdjustedCurrentNode: c.getAdjustedCurrentNode(),
		TokenizerState:      c.tokenizerStateOverride,
	}
	c.tokenizerStateOverride = nil
	return p
}

func (c *HTMLTreeConstructor) overrideTokenizerState(s tokenizerState) {
	st := s
	c.tokenizerStateOverride = &st
}

// insertionLocation is a parent plus an optional reference child to
// insert before; a nil before means append.
type insertionLocation struct {
	parent *spec.Node
	before *spec.Node
}

func (loc insertionLocation) insert(n *spec.Node) {
	if loc.before != nil {
		loc.parent.InsertBefore(n, loc.before)
		return
	}
	loc.parent.AppendChild(n)
}

// getAppropriatePlaceForInsertion implements the adjusted insertion
// location, including the foster-parenting rules around tables.
// https://html.spec.whatwg.org/multipage/parsing.html#appropriate-place-for-inserting-a-node
func (c *HTMLTreeConstructor) getAppropriatePlaceForInsertion(overrideTarget *spec.Node) insertionLocation {
	target := overrideTarget
	if target == nil {
		target = c.getCurrentNode()
	}
	loc := insertionLocation{parent: target}

	if c.fosterParenting && target.Namespace == spec.HTMLNamespace {
		switch target.NodeName {
		case "table", "tbody", "tfoot", "thead", "tr":
			lastTemplate, lastTable := -1, -1
			for i, n := range c.stackOfOpenElements {
				if n.Namespace != spec.HTMLNamespace {
					continue
				}
				switch n.NodeName {
				case "template":
					lastTemplate = i
				case "table":
					lastTable = i
				}
			}
			switch {
			case lastTemplate != -1 && (lastTable == -1 || lastTemplate > lastTable):
				loc = insertionLocation{parent: c.stackOfOpenElements[lastTemplate]}
			case lastTable == -1:
				loc = insertionLocation{parent: c.stackOfOpenElements[0]}
			case c.stackOfOpenElements[lastTable].ParentNode != nil:
				tbl := c.stackOfOpenElements[lastTable]
				loc = insertionLocation{parent: tbl.ParentNode, before: tbl}
			default:
				loc = insertionLocation{parent: c.stackOfOpenElements[lastTable-1]}
			}
		}
	}

	if loc.parent.TemplateContent != nil {
		loc = insertionLocation{parent: loc.parent.TemplateContent, before: loc.before}
	}
	return loc
}

// createElementForToken creates an element for a tag token in the given
// namespace.
// https://html.spec.whatwg.org/multipage/parsing.html#create-an-element-for-the-token
func (c *HTMLTreeConstructor) createElementForToken(t *Token, ns spec.Namespace) *spec.Node {
	attrs := make([]spec.Attr, len(t.Attributes))
	copy(attrs, t.Attributes)
	return spec.NewElement(t.TagName, ns, attrs)
}

func (c *HTMLTreeConstructor) insertHTMLElementForToken(t *Token) *spec.Node {
	return c.insertForeignElementForToken(t, spec.HTMLNamespace)
}

func (c *HTMLTreeConstructor) insertForeignElementForToken(t *Token, ns spec.Namespace) *spec.Node {
	loc := c.getAppropriatePlaceForInsertion(nil)
	elem := c.createElementForToken(t, ns)
	loc.insert(elem)
	c.stackOfOpenElements.Push(elem)
	return elem
}

// insertCharacter appends text at the adjusted insertion location,
// coalescing with a preceding text sibling.
// https://html.spec.whatwg.org/multipage/parsing.html#insert-a-character
func (c *HTMLTreeConstructor) insertCharacter(data string) {
	loc := c.getAppropriatePlaceForInsertion(nil)
	if loc.parent.NodeType == spec.DocumentNode {
		return
	}
	var prev *spec.Node
	if loc.before == nil {
		prev = loc.parent.LastChild()
	} else if i := loc.parent.ChildNodes.Contains(loc.before); i > 0 {
		prev = loc.parent.ChildNodes[i-1]
	}
	if prev != nil && prev.NodeType == spec.TextNode {
		prev.Data += data
		return
	}
	loc.insert(spec.NewText(data))
}

func (c *HTMLTreeConstructor) insertComment(t *Token) {
	c.insertCommentAt(t, c.getAppropriatePlaceForInsertion(nil))
}

func (c *HTMLTreeConstructor) insertCommentAt(t *Token, loc insertionLocation) {
	loc.insert(spec.NewComment(t.Data))
}

// useRulesFor processes the token with another mode's rules while staying
// in the caller's mode unless those rules switch modes themselves.
func (c *HTMLTreeConstructor) useRulesFor(t *Token, returnMode, expected insertionMode) (bool, insertionMode) {
	// Closing a template resets the insertion mode, and that reset may
	// itself land on the borrowed mode.
	closesTemplate := t.TokenType == endTagToken && t.TagName == "template" && c.hasTemplateOnStack()
	reprocess, nextMode := c.mappings[expected](t)
	if nextMode == expected && !closesTemplate {
		return reprocess, returnMode
	}
	return reprocess, nextMode
}

// Scope queries. Stop-tag sets come in namespace-aware groups; the
// default group guards every variant.
// https://html.spec.whatwg.org/multipage/parsing.html#has-an-element-in-the-specific-scope
type scope uint

const (
	defaultScope scope = iota
	listItemScope
	buttonScope
	tableScope
	selectScope
)

var defaultScopeStopTags = map[spec.Namespace][]string{
	spec.HTMLNamespace:   {"applet", "caption", "html", "table", "td", "th", "marquee", "object", "template"},
	spec.MathMLNamespace: {"mi", "mo", "mn", "ms", "mtext", "annotation-xml"},
	spec.SVGNamespace:    {"foreignObject", "desc", "title"},
}

func isScopeStopTag(s scope, n *spec.Node) bool {
	if s == selectScope {
		if n.Namespace != spec.HTMLNamespace {
			return true
		}
		return n.NodeName != "optgroup" && n.NodeName != "option"
	}
	if s == tableScope {
		if n.Namespace != spec.HTMLNamespace {
			return false
		}
		switch n.NodeName {
		case "html", "table", "template":
			return true
		}
		return false
	}
	for _, name := range defaultScopeStopTags[n.Namespace] {
		if n.NodeName == name {
			return true
		}
	}
	if n.Namespace == spec.HTMLNamespace {
		switch s {
		case listItemScope:
			if n.NodeName == "ol" || n.NodeName == "ul" {
				return true
			}
		case buttonScope:
			if n.NodeName == "button" {
				return true
			}
		}
	}
	return false
}

// indexOfElementInScope returns the stack index of the nearest HTML
// element with one of the given names, or -1 if a scope boundary comes
// first.
func (c *HTMLTreeConstructor) indexOfElementInScope(s scope, names ...string) int {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		n := c.stackOfOpenElements[i]
		if n.Namespace == spec.HTMLNamespace {
			for _, name := range names {
				if n.NodeName == name {
					return i
				}
			}
		}
		if isScopeStopTag(s, n) {
			return -1
		}
	}
	return -1
}

func (c *HTMLTreeConstructor) elementInScope(s scope, names ...string) bool {
	return c.indexOfElementInScope(s, names...) != -1
}

// nodeInScope checks a specific element by identity.
func (c *HTMLTreeConstructor) nodeInScope(s scope, target *spec.Node) bool {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		n := c.stackOfOpenElements[i]
		if n == target {
			return true
		}
		if isScopeStopTag(s, n) {
			return false
		}
	}
	return false
}

var impliedEndTagNames = map[string]bool{
	"dd": true, "dt": true, "li": true, "optgroup": true, "option": true,
	"p": true, "rb": true, "rp": true, "rt": true, "rtc": true,
}

// generateImpliedEndTags pops elements whose end tags are implied,
// except for any listed names.
func (c *HTMLTreeConstructor) generateImpliedEndTags(exceptions ...string) {
	for {
		cur := c.getCurrentNode()
		if cur == nil || cur.Namespace != spec.HTMLNamespace || !impliedEndTagNames[cur.NodeName] {
			return
		}
		for _, e := range exceptions {
			if cur.NodeName == e {
				return
			}
		}
		c.popOpenElements()
	}
}

// generateImpliedEndTagsThoroughly also closes open table sections and
// cells. Used when a template ends.
func (c *HTMLTreeConstructor) generateImpliedEndTagsThoroughly() {
	for {
		cur := c.getCurrentNode()
		if cur == nil || cur.Namespace != spec.HTMLNamespace {
			return
		}
		switch cur.NodeName {
		case "dd", "dt", "li", "optgroup", "option", "p", "rb", "rp", "rt", "rtc",
			"caption", "colgroup", "tbody", "td", "tfoot", "th", "thead", "tr":
			c.popOpenElements()
		default:
			return
		}
	}
}

// closePElement closes an open p element in button scope.
func (c *HTMLTreeConstructor) closePElement() {
	c.generateImpliedEndTags("p")
	if cur := c.getCurrentNode(); cur == nil || cur.NodeName != "p" || cur.Namespace != spec.HTMLNamespace {
		c.err(ErrEndTagTooEarly, "p")
	}
	c.popUntilName("p")
}

var specialHTMLElements = map[string]bool{
	"address": true, "applet": true, "area": true, "article": true, "aside": true,
	"base": true, "basefont": true, "bgsound": true, "blockquote": true, "body": true,
	"br": true, "button": true, "caption": true, "center": true, "col": true,
	"colgroup": true, "dd": true, "details": true, "dir": true, "div": true,
	"dl": true, "dt": true, "embed": true, "fieldset": true, "figcaption": true,
	"figure": true, "footer": true, "form": true, "frame": true, "frameset": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hgroup": true, "hr": true, "html": true,
	"iframe": true, "img": true, "input": true, "keygen": true, "li": true,
	"link": true, "listing": true, "main": true, "marquee": true, "menu": true,
	"meta": true, "nav": true, "noembed": true, "noframes": true, "noscript": true,
	"object": true, "ol": true, "p": true, "param": true, "plaintext": true,
	"pre": true, "script": true, "section": true, "select": true, "source": true,
	"style": true, "summary": true, "table": true, "tbody": true, "td": true,
	"template": true, "textarea": true, "tfoot": true, "th": true, "thead": true,
	"title": true, "tr": true, "track": true, "ul": true, "wbr": true, "xmp": true,
}

// isSpecial classifies elements in the "special" category, which the
// adoption agency uses to find the furthest block.
func isSpecial(n *spec.Node) bool {
	switch n.Namespace {
	case spec.HTMLNamespace:
		return specialHTMLElements[n.NodeName]
	case spec.MathMLNamespace:
		switch n.NodeName {
		case "mi", "mo", "mn", "ms", "mtext", "annotation-xml":
			return true
		}
	case spec.SVGNamespace:
		switch n.NodeName {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

var formattingElementNames = map[string]bool{
	"a": true, "b": true, "big": true, "code": true, "em": true, "font": true,
	"i": true, "nobr": true, "s": true, "small": true, "strike": true,
	"strong": true, "tt": true, "u": true,
}

func sameFormattingEntry(a, b *spec.Node) bool {
	if a.NodeName != b.NodeName || a.Namespace != b.Namespace || len(a.Attrs) != len(b.Attrs) {
		return false
	}
	for i := range a.Attrs {
		v, ok := b.AttrValue(a.Attrs[i].Name)
		if !ok || v != a.Attrs[i].Value {
			return false
		}
	}
	return true
}

// pushActiveFormattingElements adds a formatting element, applying the
// Noah's Ark clause: at most three identical entries after the last
// marker.
// https://html.spec.whatwg.org/multipage/parsing.html#push-onto-the-list-of-active-formatting-elements
func (c *HTMLTreeConstructor) pushActiveFormattingElements(elem *spec.Node) {
	identical := 0
	firstIdentical := -1
	for i := len(c.activeFormattingElements) - 1; i >= 0; i-- {
		entry := c.activeFormattingElements[i]
		if entry.NodeType == spec.ScopeMarkerNode {
			break
		}
		if sameFormattingEntry(entry, elem) {
			identical++
			firstIdentical = i
		}
	}
	if identical >= 3 {
		c.activeFormattingElements.Remove(firstIdentical)
	}
	c.activeFormattingElements.Push(elem)
}

// reconstructActiveFormattingElements reopens formatting elements that
// were implicitly closed, before inserting phrasing content.
// https://html.spec.whatwg.org/multipage/parsing.html#reconstruct-the-active-formatting-elements
func (c *HTMLTreeConstructor) reconstructActiveFormattingElements() {
	n := len(c.activeFormattingElements)
	if n == 0 {
		return
	}
	last := c.activeFormattingElements[n-1]
	if last.NodeType == spec.ScopeMarkerNode || c.stackOfOpenElements.Contains(last) != -1 {
		return
	}
	i := n - 1
	for i > 0 {
		prev := c.activeFormattingElements[i-1]
		if prev.NodeType == spec.ScopeMarkerNode || c.stackOfOpenElements.Contains(prev) != -1 {
			break
		}
		i--
	}
	for ; i < n; i++ {
		entry := c.activeFormattingElements[i]
		clone := entry.CloneNode(false)
		c.getAppropriatePlaceForInsertion(nil).insert(clone)
		c.stackOfOpenElements.Push(clone)
		c.activeFormattingElements[i] = clone
	}
}

// clearActiveFormattingElementsToLastMarker drops entries up to and
// including the most recent marker.
func (c *HTMLTreeConstructor) clearActiveFormattingElementsToLastMarker() {
	for len(c.activeFormattingElements) > 0 {
		entry := c.activeFormattingElements.Pop()
		if entry.NodeType == spec.ScopeMarkerNode {
			return
		}
	}
}

// adoptionAgency runs the adoption agency algorithm for a formatting end
// tag. It reports whether the caller should fall through to the "any
// other end tag" steps.
// https://html.spec.whatwg.org/multipage/parsing.html#adoption-agency-algorithm
func (c *HTMLTreeConstructor) adoptionAgency(t *Token) bool {
	subject := t.TagName
	cur := c.getCurrentNode()
	if cur != nil && cur.Namespace == spec.HTMLNamespace && cur.NodeName == subject &&
		c.activeFormattingElements.Contains(cur) == -1 {
		c.popOpenElements()
		return false
	}

	for outer := 0; outer < 8; outer++ {
		// locate the formatting element for subject, above the last marker
		feIdx := -1
		for j := len(c.activeFormattingElements) - 1; j >= 0; j-- {
			entry := c.activeFormattingElements[j]
			if entry.NodeType == spec.ScopeMarkerNode {
				break
			}
			if entry.NodeName == subject {
				feIdx = j
				break
			}
		}
		if feIdx == -1 {
			return true
		}
		fe := c.activeFormattingElements[feIdx]

		stackIdx := c.stackOfOpenElements.Contains(fe)
		if stackIdx == -1 {
			c.err(ErrAdoptionAgency13, subject)
			c.activeFormattingElements.Remove(feIdx)
			return false
		}
		if !c.nodeInScope(defaultScope, fe) {
			c.err(ErrAdoptionAgency13, subject)
			return false
		}
		if fe != c.getCurrentNode() {
			c.err(ErrEndTagTooEarly, subject)
		}

		// furthest block: the lowest special element below the formatting
		// element on the stack
		fbIdx := -1
		for j := stackIdx + 1; j < len(c.stackOfOpenElements); j++ {
			if isSpecial(c.stackOfOpenElements[j]) {
				fbIdx = j
				break
			}
		}
		if fbIdx == -1 {
			c.stackOfOpenElements = c.stackOfOpenElements[:stackIdx]
			c.activeFormattingElements.Remove(feIdx)
			return false
		}
		furthestBlock := c.stackOfOpenElements[fbIdx]
		commonAncestor := c.stackOfOpenElements[stackIdx-1]
		bookmark := feIdx

		node, lastNode := furthestBlock, furthestBlock
		nodeIdx := fbIdx
		for inner := 1; ; inner++ {
			nodeIdx--
			node = c.stackOfOpenElements[nodeIdx]
			if node == fe {
				break
			}
			afeIdx := c.activeFormattingElements.Contains(node)
			if inner > 3 && afeIdx != -1 {
				c.activeFormattingElements.Remove(afeIdx)
				if afeIdx < bookmark {
					bookmark--
				}
				afeIdx = -1
			}
			if afeIdx == -1 {
				c.stackOfOpenElements.Remove(nodeIdx)
				continue
			}
			clone := node.CloneNode(false)
			c.activeFormattingElements[afeIdx] = clone
			c.stackOfOpenElements[nodeIdx] = clone
			node = clone
			if lastNode == furthestBlock {
				bookmark = afeIdx + 1
			}
			lastNode.Detach()
			node.AppendChild(lastNode)
			lastNode = node
		}

		lastNode.Detach()
		prevFoster := c.fosterParenting
		c.fosterParenting = true
		c.getAppropriatePlaceForInsertion(commonAncestor).insert(lastNode)
		c.fosterParenting = prevFoster

		feClone := fe.CloneNode(false)
		for len(furthestBlock.ChildNodes) > 0 {
			feClone.AppendChild(furthestBlock.ChildNodes[0])
		}
		furthestBlock.AppendChild(feClone)

		if idx := c.activeFormattingElements.Contains(fe); idx != -1 {
			c.activeFormattingElements.Remove(idx)
			if idx < bookmark {
				bookmark--
			}
		}
		c.activeFormattingElements.Insert(bookmark, feClone)

		if idx := c.stackOfOpenElements.Contains(fe); idx != -1 {
			c.stackOfOpenElements.Remove(idx)
		}
		fbPos := c.stackOfOpenElements.Contains(furthestBlock)
		c.stackOfOpenElements.Insert(fbPos+1, feClone)
	}
	return false
}

// resetInsertionMode picks the insertion mode from the stack of open
// elements, honoring the fragment context and the template-mode stack.
// https://html.spec.whatwg.org/multipage/parsing.html#reset-the-insertion-mode-appropriately
func (c *HTMLTreeConstructor) resetInsertionMode() insertionMode {
	for i := len(c.stackOfOpenElements) - 1; i >= 0; i-- {
		node := c.stackOfOpenElements[i]
		last := i == 0
		if last && c.fragment {
			node = c.context
		}
		if node.Namespace != spec.HTMLNamespace && node.Namespace != spec.NoNamespace {
			if last {
				return inBody
			}
			continue
		}
		switch node.NodeName {
		case "select":
			return inSelect
		case "td", "th":
			if !last {
				return inCell
			}
		case "tr":
			return inRow
		case "tbody", "thead", "tfoot":
			return inTableBody
		case "caption":
			return inCaption
		case "colgroup":
			return inColumnGroup
		case "table":
			return inTable
		case "template":
			if len(c.templateInsertionModes) > 0 {
				return c.templateInsertionModes[len(c.templateInsertionModes)-1]
			}
			return inBody
		case "head":
			if !last {
				return inHead
			}
		case "body":
			return inBody
		case "frameset":
			return inFrameset
		case "html":
			if c.headElementPointer == nil {
				return beforeHead
			}
			return afterHead
		}
		if last {
			return inBody
		}
	}
	return inBody
}

// genericRawTextParse handles elements whose content is raw text (style,
// script and friends): insert the element, flip the tokenizer, park the
// current mode.
func (c *HTMLTreeConstructor) genericRawTextParse(t *Token) insertionMode {
	c.insertHTMLElementForToken(t)
	c.overrideTokenizerState(rawTextState)
	c.originalInsertionMode = c.insertionMode
	return text
}

func (c *HTMLTreeConstructor) genericRCDATAParse(t *Token) insertionMode {
	c.insertHTMLElementForToken(t)
	c.overrideTokenizerState(rcDataState)
	c.originalInsertionMode = c.insertionMode
	return text
}

// stopParsing marks the end of tree construction.
func (c *HTMLTreeConstructor) stopParsing() {
	c.stopped = true
}

// Finish runs the end-of-parse passes over the finished tree: populating
// selectedcontent elements from their enclosing selects.
func (c *HTMLTreeConstructor) Finish() {
	var pending []*spec.Node
	var walk func(n *spec.Node)
	walk = func(n *spec.Node) {
		if n.NodeType == spec.ElementNode && n.Namespace == spec.HTMLNamespace && n.NodeName == "selectedcontent" {
			pending = append(pending, n)
		}
		if n.TemplateContent != nil {
			walk(n.TemplateContent)
			return
		}
		for _, child := range n.ChildNodes {
			walk(child)
		}
	}
	walk(c.Document)

	populated := map[*spec.Node]bool{}
	for _, sc := range pending {
		if populated[sc] {
			continue
		}
		sel := sc.ParentNode
		for sel != nil && !(sel.NodeType == spec.ElementNode && sel.Namespace == spec.HTMLNamespace && sel.NodeName == "select") {
			sel = sel.ParentNode
		}
		if sel == nil {
			continue
		}
		opt := selectedOption(sel)
		if opt == nil {
			continue
		}
		for len(sc.ChildNodes) > 0 {
			sc.RemoveChild(sc.ChildNodes[0])
		}
		for _, child := range opt.ChildNodes {
			sc.AppendChild(child.CloneNode(true))
		}
		populated[sc] = true
	}
}

// selectedOption finds the option a select would render: the first one
// carrying the selected attribute, else the first option at all.
func selectedOption(sel *spec.Node) *spec.Node {
	var first, selected *spec.Node
	var walk func(n *spec.Node)
	walk = func(n *spec.Node) {
		if selected != nil {
			return
		}
		if n.NodeType == spec.ElementNode && n.Namespace == spec.HTMLNamespace && n.NodeName == "option" {
			if first == nil {
				first = n
			}
			if _, ok := n.AttrValue("selected"); ok {
				selected = n
			}
			return
		}
		for _, child := range n.ChildNodes {
			walk(child)
		}
	}
	for _, child := range sel.ChildNodes {
		walk(child)
	}
	if selected != nil {
		return selected
	}
	return first
}

// Doctype classification tables.
// https://html.spec.whatwg.org/multipage/parsing.html#the-initial-insertion-mode
var quirkyPublicIDPrefixes = []string{
	"+//Silmaril//dtd html Pro v0r11 19970101//",
	"-//AS//DTD HTML 3.0 asWedit + extensions//",
	"-//AdvaSoft Ltd//DTD HTML 3.0 asWedit + extensions//",
	"-//IETF//DTD HTML 2.0 Level 1//",
	"-//IETF//DTD HTML 2.0 Level 2//",
	"-//IETF//DTD HTML 2.0 Strict Level 1//",
	"-//IETF//DTD HTML 2.0 Strict Level 2//",
	"-//IETF//DTD HTML 2.0 Strict//",
	"-//IETF//DTD HTML 2.0//",
	"-//IETF//DTD HTML 2.1E//",
	"-//IETF//DTD HTML 3.0//",
	"-//IETF//DTD HTML 3.2 Final//",
	"-//IETF//DTD HTML 3.2//",
	"-//IETF//DTD HTML 3//",
	"-//IETF//DTD HTML Level 0//",
	"-//IETF//DTD HTML Level 1//",
	"-//IETF//DTD HTML Level 2//",
	"-//IETF//DTD HTML Level 3//",
	"-//IETF//DTD HTML Strict Level 0//",
	"-//IETF//DTD HTML Strict Level 1//",
	"-//IETF//DTD HTML Strict Level 2//",
	"-//IETF//DTD HTML Strict Level 3//",
	"-//IETF//DTD HTML Strict//",
	"-//IETF//DTD HTML//",
	"-//Metrius//DTD Metrius Presentational//",
	"-//Microsoft//DTD Internet Explorer 2.0 HTML Strict//",
	"-//Microsoft//DTD Internet Explorer 2.0 HTML//",
	"-//Microsoft//DTD Internet Explorer 2.0 Tables//",
	"-//Microsoft//DTD Internet Explorer 3.0 HTML Strict//",
	"-//Microsoft//DTD Internet Explorer 3.0 HTML//",
	"-//Microsoft//DTD Internet Explorer 3.0 Tables//",
	"-//Netscape Comm. Corp.//DTD HTML//",
	"-//Netscape Comm. Corp.//DTD Strict HTML//",
	"-//O'Reilly and Associates//DTD HTML 2.0//",
	"-//O'Reilly and Associates//DTD HTML Extended 1.0//",
	"-//O'Reilly and Associates//DTD HTML Extended Relaxed 1.0//",
	"-//SQ//DTD HTML 2.0 HoTMetaL + extensions//",
	"-//SoftQuad Software//DTD HoTMetaL PRO 6.0::19990601::extensions to HTML 4.0//",
	"-//SoftQuad//DTD HoTMetaL PRO 4.0::19971010::extensions to HTML 4.0//",
	"-//Spyglass//DTD HTML 2.0 Extended//",
	"-//Sun Microsystems Corp.//DTD HotJava HTML//",
	"-//Sun Microsystems Corp.//DTD HotJava Strict HTML//",
	"-//W3C//DTD HTML 3 1995-03-24//",
	"-//W3C//DTD HTML 3.2 Draft//",
	"-//W3C//DTD HTML 3.2 Final//",
	"-//W3C//DTD HTML 3.2//",
	"-//W3C//DTD HTML 3.2S Draft//",
	"-//W3C//DTD HTML 4.0 Frameset//",
	"-//W3C//DTD HTML 4.0 Transitional//",
	"-//W3C//DTD HTML Experimental 19960712//",
	"-//W3C//DTD HTML Experimental 970421//",
	"-//W3C//DTD W3 HTML//",
	"-//W3O//DTD W3 HTML 3.0//",
	"-//WebTechs//DTD Mozilla HTML 2.0//",
	"-//WebTechs//DTD Mozilla HTML//",
}

const (
	quirkySystemID = "http://www.ibm.com/data/dtd/v11/ibmxhtml1-transitional.dtd"

	html401FramesetPublicID     = "-//W3C//DTD HTML 4.01 Frameset//"
	html401TransitionalPublicID = "-//W3C//DTD HTML 4.01 Transitional//"
	xhtml1FramesetPublicID      = "-//W3C//DTD XHTML 1.0 Frameset//"
	xhtml1TransitionalPublicID  = "-//W3C//DTD XHTML 1.0 Transitional//"
)

var quirkyPublicIDMatches = []string{
	"-//W3O//DTD W3 HTML Strict 3.0//EN//",
	"-/W3C/DTD HTML 4.0 Transitional/EN",
	"HTML",
}

func isForceQuirks(dt *spec.DocumentType) bool {
	if dt.ForceQuirks || dt.Name != "html" {
		return true
	}
	for _, m := range quirkyPublicIDMatches {
		if strings.EqualFold(dt.PublicID, m) {
			return true
		}
	}
	if dt.HasSystemID && strings.EqualFold(dt.SystemID, quirkySystemID) {
		return true
	}
	for _, prefix := range quirkyPublicIDPrefixes {
		if hasPrefixFold(dt.PublicID, prefix) {
			return true
		}
	}
	if !dt.HasSystemID &&
		(hasPrefixFold(dt.PublicID, html401FramesetPublicID) || hasPrefixFold(dt.PublicID, html401TransitionalPublicID)) {
		return true
	}
	return false
}

func isLimitedQuirks(dt *spec.DocumentType) bool {
	if hasPrefixFold(dt.PublicID, xhtml1FramesetPublicID) || hasPrefixFold(dt.PublicID, xhtml1TransitionalPublicID) {
		return true
	}
	if dt.HasSystemID &&
		(hasPrefixFold(dt.PublicID, html401FramesetPublicID) || hasPrefixFold(dt.PublicID, html401TransitionalPublicID)) {
		return true
	}
	return false
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
