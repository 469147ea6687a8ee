package parser

import (
	"strings"

	"github.com/alex-kinokon/justhtml/parser/spec"
)

// isMathMLTextIntegrationPoint reports whether parsing inside the element
// temporarily returns to HTML rules for text-level content.
// https://html.spec.whatwg.org/multipage/parsing.html#mathml-text-integration-point
func isMathMLTextIntegrationPoint(n *spec.Node) bool {
	if n.Namespace != spec.MathMLNamespace {
		return false
	}
	switch n.NodeName {
	case "mi", "mo", "mn", "ms", "mtext":
		return true
	}
	return false
}

// https://html.spec.whatwg.org/multipage/parsing.html#html-integration-point
func isHTMLIntegrationPoint(n *spec.Node) bool {
	switch n.Namespace {
	case spec.MathMLNamespace:
		if n.NodeName != "annotation-xml" {
			return false
		}
		enc, _ := n.AttrValue("encoding")
		enc = strings.ToLower(enc)
		return enc == "text/html" || enc == "application/xhtml+xml"
	case spec.SVGNamespace:
		switch n.NodeName {
		case "foreignObject", "desc", "title":
			return true
		}
	}
	return false
}

// useForeignRules decides between the HTML dispatcher and the
// foreign-content dispatcher for this token.
// https://html.spec.whatwg.org/multipage/parsing.html#tree-construction-dispatcher
func (c *HTMLTreeConstructor) useForeignRules(t *Token) bool {
	if c.forceHTMLDispatch {
		return false
	}
	if len(c.stackOfOpenElements) == 0 {
		return false
	}
	acn := c.getAdjustedCurrentNode()
	if acn == nil || acn.Namespace == spec.HTMLNamespace || acn.Namespace == spec.NoNamespace {
		return false
	}
	if t.TokenType == endOfFileToken {
		return false
	}
	if isMathMLTextIntegrationPoint(acn) {
		if t.TokenType == characterToken {
			return false
		}
		if t.TokenType == startTagToken && t.TagName != "mglyph" && t.TagName != "malignmark" {
			return false
		}
	}
	if acn.Namespace == spec.MathMLNamespace && acn.NodeName == "annotation-xml" &&
		t.TokenType == startTagToken && t.TagName == "svg" {
		return false
	}
	if isHTMLIntegrationPoint(acn) && (t.TokenType == startTagToken || t.TokenType == characterToken) {
		return false
	}
	return true
}

// foreignBreakoutTags are the HTML start tags that close foreign content.
var foreignBreakoutTags = map[string]bool{
	"b": true, "big": true, "blockquote": true, "body": true, "br": true,
	"center": true, "code": true, "dd": true, "div": true, "dl": true,
	"dt": true, "em": true, "embed": true, "h1": true, "h2": true, "h3": true,
	"h4": true, "h5": true, "h6": true, "head": true, "hr": true, "i": true,
	"img": true, "li": true, "listing": true, "menu": true, "meta": true,
	"nobr": true, "ol": true, "p": true, "pre": true, "ruby": true, "s": true,
	"small": true, "span": true, "strong": true, "strike": true, "sub": true,
	"sup": true, "table": true, "tt": true, "u": true, "ul": true, "var": true,
}

func isForeignBreakout(t *Token) bool {
	if foreignBreakoutTags[t.TagName] {
		return true
	}
	if t.TagName != "font" {
		return false
	}
	for _, name := range []string{"color", "face", "size"} {
		if _, ok := t.AttrValue(name); ok {
			return true
		}
	}
	return false
}

// foreignContentHandler processes one token with the rules for foreign
// content. It reports whether the token must be reprocessed (with the
// HTML rules).
// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inforeign
func (c *HTMLTreeConstructor) foreignContentHandler(t *Token) bool {
	switch t.TokenType {
	case characterToken:
		switch t.Data {
		case "\u0000":
			c.err(ErrUnexpectedNull, "")
			c.insertCharacter("�")
		case "\t", "\n", "\f", " ":
			c.insertCharacter(t.Data)
		default:
			c.insertCharacter(t.Data)
			c.framesetOK = false
		}
		return false
	case commentToken:
		c.insertComment(t)
		return false
	case docTypeToken:
		c.err(ErrUnexpectedDoctype, "")
		return false
	case startTagToken:
		if isForeignBreakout(t) {
			c.err(ErrHTMLInForeignContent, t.TagName)
			for {
				cur := c.getCurrentNode()
				if cur == nil || cur.Namespace == spec.HTMLNamespace ||
					isMathMLTextIntegrationPoint(cur) || isHTMLIntegrationPoint(cur) {
					break
				}
				c.popOpenElements()
			}
			c.forceHTMLDispatch = true
			return true
		}

		acn := c.getAdjustedCurrentNode()
		adjusted := *t
		switch acn.Namespace {
		case spec.MathMLNamespace:
			adjusted.Attributes = adjustMathMLAttributes(t.Attributes)
		case spec.SVGNamespace:
			adjusted.TagName = adjustSVGTagName(t.TagName)
			adjusted.Attributes = adjustSVGAttributes(t.Attributes)
		}
		adjusted.Attributes = adjustForeignAttributes(adjusted.Attributes)
		c.insertForeignElementForToken(&adjusted, acn.Namespace)
		if t.SelfClosing {
			c.popOpenElements()
		}
		return false
	case endTagToken:
		cur := c.getCurrentNode()
		if t.TagName == "script" && cur != nil && cur.Namespace == spec.SVGNamespace && cur.NodeName == "script" {
			c.popOpenElements()
			return false
		}
		idx := len(c.stackOfOpenElements) - 1
		node := c.stackOfOpenElements[idx]
		if strings.ToLower(node.NodeName) != t.TagName {
			c.err(ErrUnexpectedEndTag, t.TagName)
		}
		for {
			if idx == 0 {
				return false
			}
			if node.Namespace != spec.HTMLNamespace && strings.ToLower(node.NodeName) == t.TagName {
				c.stackOfOpenElements = c.stackOfOpenElements[:idx]
				return false
			}
			idx--
			node = c.stackOfOpenElements[idx]
			if node.Namespace == spec.HTMLNamespace {
				c.forceHTMLDispatch = true
				return true
			}
		}
	case endOfFileToken:
		// EOF never dispatches here
	}
	return false
}

// https://html.spec.whatwg.org/multipage/parsing.html#adjust-mathml-attributes
func adjustMathMLAttributes(attrs []spec.Attr) []spec.Attr {
	out := make([]spec.Attr, len(attrs))
	copy(out, attrs)
	for i := range out {
		if out[i].Name == "definitionurl" {
			out[i].Name = "definitionURL"
		}
	}
	return out
}

// https://html.spec.whatwg.org/multipage/parsing.html#adjust-svg-attributes
var svgAttrAdjustments = map[string]string{
	"attributename":       "attributeName",
	"attributetype":       "attributeType",
	"basefrequency":       "baseFrequency",
	"baseprofile":         "baseProfile",
	"calcmode":            "calcMode",
	"clippathunits":       "clipPathUnits",
	"diffuseconstant":     "diffuseConstant",
	"edgemode":            "edgeMode",
	"filterunits":         "filterUnits",
	"glyphref":            "glyphRef",
	"gradienttransform":   "gradientTransform",
	"gradientunits":       "gradientUnits",
	"kernelmatrix":        "kernelMatrix",
	"kernelunitlength":    "kernelUnitLength",
	"keypoints":           "keyPoints",
	"keysplines":          "keySplines",
	"keytimes":            "keyTimes",
	"lengthadjust":        "lengthAdjust",
	"limitingconeangle":   "limitingConeAngle",
	"markerheight":        "markerHeight",
	"markerunits":         "markerUnits",
	"markerwidth":         "markerWidth",
	"maskcontentunits":    "maskContentUnits",
	"maskunits":           "maskUnits",
	"numoctaves":          "numOctaves",
	"pathlength":          "pathLength",
	"patterncontentunits": "patternContentUnits",
	"patterntransform":    "patternTransform",
	"patternunits":        "patternUnits",
	"pointsatx":           "pointsAtX",
	"pointsaty":           "pointsAtY",
	"pointsatz":           "pointsAtZ",
	"preservealpha":       "preserveAlpha",
	"preserveaspectratio": "preserveAspectRatio",
	"primitiveunits":      "primitiveUnits",
	"refx":                "refX",
	"refy":                "refY",
	"repeatcount":         "repeatCount",
	"repeatdur":           "repeatDur",
	"requiredextensions":  "requiredExtensions",
	"requiredfeatures":    "requiredFeatures",
	"specularconstant":    "specularConstant",
	"specularexponent":    "specularExponent",
	"spreadmethod":        "spreadMethod",
	"startoffset":         "startOffset",
	"stddeviation":        "stdDeviation",
	"stitchtiles":         "stitchTiles",
	"surfacescale":        "surfaceScale",
	"systemlanguage":      "systemLanguage",
	"tablevalues":         "tableValues",
	"targetx":             "targetX",
	"targety":             "targetY",
	"textlength":          "textLength",
	"viewbox":             "viewBox",
	"viewtarget":          "viewTarget",
	"xchannelselector":    "xChannelSelector",
	"ychannelselector":    "yChannelSelector",
	"zoomandpan":          "zoomAndPan",
}

func adjustSVGAttributes(attrs []spec.Attr) []spec.Attr {
	out := make([]spec.Attr, len(attrs))
	copy(out, attrs)
	for i := range out {
		if adjusted, ok := svgAttrAdjustments[out[i].Name]; ok {
			out[i].Name = adjusted
		}
	}
	return out
}

// https://html.spec.whatwg.org/multipage/parsing.html#adjust-foreign-attributes
func adjustForeignAttributes(attrs []spec.Attr) []spec.Attr {
	out := make([]spec.Attr, len(attrs))
	copy(out, attrs)
	for i := range out {
		switch out[i].Name {
		case "xlink:actuate", "xlink:arcrole", "xlink:href", "xlink:role",
			"xlink:show", "xlink:title", "xlink:type":
			out[i].Namespace = spec.XLinkAttrNamespace
			out[i].Name = out[i].Name[len("xlink:"):]
		case "xml:lang", "xml:space":
			out[i].Namespace = spec.XMLAttrNamespace
			out[i].Name = out[i].Name[len("xml:"):]
		case "xmlns":
			out[i].Namespace = spec.XMLNSAttrNamespace
		case "xmlns:xlink":
			out[i].Namespace = spec.XMLNSAttrNamespace
			out[i].Name = "xlink"
		}
	}
	return out
}

// https://html.spec.whatwg.org/multipage/parsing.html#parsing-main-inforeign
var svgTagNameAdjustments = map[string]string{
	"altglyph":            "altGlyph",
	"altglyphdef":         "altGlyphDef",
	"altglyphitem":        "altGlyphItem",
	"animatecolor":        "animateColor",
	"animatemotion":       "animateMotion",
	"animatetransform":    "animateTransform",
	"clippath":            "clipPath",
	"feblend":             "feBlend",
	"fecolormatrix":       "feColorMatrix",
	"fecomponenttransfer": "feComponentTransfer",
	"fecomposite":         "feComposite",
	"feconvolvematrix":    "feConvolveMatrix",
	"fediffuselighting":   "feDiffuseLighting",
	"fedisplacementmap":   "feDisplacementMap",
	"fedistantlight":      "feDistantLight",
	"fedropshadow":        "feDropShadow",
	"feflood":             "feFlood",
	"fefunca":             "feFuncA",
	"fefuncb":             "feFuncB",
	"fefuncg":             "feFuncG",
	"fefuncr":             "feFuncR",
	"fegaussianblur":      "feGaussianBlur",
	"feimage":             "feImage",
	"femerge":             "feMerge",
	"femergenode":         "feMergeNode",
	"femorphology":        "feMorphology",
	"feoffset":            "feOffset",
	"fepointlight":        "fePointLight",
	"fespecularlighting":  "feSpecularLighting",
	"fespotlight":         "feSpotLight",
	"fetile":              "feTile",
	"feturbulence":        "feTurbulence",
	"foreignobject":       "foreignObject",
	"glyphref":            "glyphRef",
	"lineargradient":      "linearGradient",
	"radialgradient":      "radialGradient",
	"textpath":            "textPath",
}

func adjustSVGTagName(name string) string {
	if adjusted, ok := svgTagNameAdjustments[name]; ok {
		return adjusted
	}
	return name
}
