package parser

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-kinokon/justhtml/parser/spec"
)

type treeTest struct {
	in       string
	fragment string // context element, "" for document tests
	expected string
}

// parseDatFile reads fixtures in the html5lib tree-construction format:
// "#data" / "#errors" / optional "#document-fragment" / "#document"
// sections separated by blank lines.
func parseDatFile(t *testing.T, path string) []treeTest {
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var tests []treeTest
	chunks := strings.Split(string(data), "#data\n")
	for i, chunk := range chunks {
		if i == 0 {
			continue
		}
		var tt treeTest
		var dataLines, expectedLines []string
		section := "data"
		for _, line := range strings.Split(chunk, "\n") {
			switch {
			case line == "#errors":
				section = "errors"
				continue
			case line == "#document-fragment":
				section = "fragment"
				continue
			case line == "#document":
				section = "document"
				continue
			}
			switch section {
			case "data":
				dataLines = append(dataLines, line)
			case "fragment":
				tt.fragment = line
				section = "errors"
			case "document":
				expectedLines = append(expectedLines, line)
			}
		}
		tt.in = strings.Join(dataLines, "\n")
		tt.in = strings.TrimSuffix(tt.in, "\n")
		for len(expectedLines) > 0 && expectedLines[len(expectedLines)-1] == "" {
			expectedLines = expectedLines[:len(expectedLines)-1]
		}
		tt.expected = strings.Join(expectedLines, "\n")
		tests = append(tests, tt)
	}
	return tests
}

func runTreeTest(t *testing.T, tt treeTest) {
	t.Run(tt.in, func(t *testing.T) {
		opts := &Options{CollectErrors: true}
		header := "#document\n"
		if tt.fragment != "" {
			fc := &FragmentContext{TagName: tt.fragment}
			if fields := strings.Fields(tt.fragment); len(fields) == 2 {
				fc.Namespace = spec.Namespace(fields[0])
				fc.TagName = fields[1]
			}
			opts.FragmentContext = fc
			header = "#document-fragment\n"
		}
		res, err := ParseDocument(tt.in, opts)
		require.NoError(t, err)

		got := res.Document.String()
		want := strings.TrimRight(header+tt.expected, "\n")
		assert.Equal(t, want, got)

		checkTreeInvariants(t, res.Document)
	})
}

func TestTreeConstructor(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("testdata", "tree-construction", "*.dat"))
	require.NoError(t, err)
	require.NotEmpty(t, paths)
	for _, path := range paths {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			for _, tt := range parseDatFile(t, path) {
				runTreeTest(t, tt)
			}
		})
	}
}

// checkTreeInvariants verifies the structural invariants every output
// tree must satisfy: parent back-links, no adjacent text siblings,
// unique attribute names, template content placement.
func checkTreeInvariants(t *testing.T, n *spec.Node) {
	t.Helper()
	var lastWasText bool
	for _, child := range n.ChildNodes {
		assert.Same(t, n, child.ParentNode, "child %q of %q has wrong parent", child.NodeName, n.NodeName)
		if child.NodeType == spec.TextNode {
			assert.False(t, lastWasText, "adjacent text siblings under %q", n.NodeName)
			lastWasText = true
		} else {
			lastWasText = false
		}
		checkTreeInvariants(t, child)
	}
	seen := map[string]bool{}
	for _, a := range n.Attrs {
		assert.False(t, seen[a.Name], "duplicate attribute %q on %q", a.Name, n.NodeName)
		seen[a.Name] = true
	}
	if n.TemplateContent != nil {
		assert.Equal(t, "template", n.NodeName)
		assert.Equal(t, spec.HTMLNamespace, n.Namespace)
		checkTreeInvariants(t, n.TemplateContent)
	}
}

func TestParseEmptyInput(t *testing.T) {
	res, err := ParseDocument("", &Options{CollectErrors: true})
	require.NoError(t, err)
	assert.Empty(t, res.Document.ChildNodes)
	assert.Empty(t, res.Errors)
}

func TestParseCollectsErrors(t *testing.T) {
	res, err := ParseDocument("<p>x", &Options{CollectErrors: true})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Errors)
}

func TestParseStrictMode(t *testing.T) {
	_, err := ParseDocument("<!DOCTYPE html><p>x</p>", &Options{Strict: true})
	assert.NoError(t, err)

	res, err := ParseDocument("<p>x", &Options{Strict: true})
	assert.Error(t, err)
	require.NotNil(t, res)
	assert.NotNil(t, res.Document)
}

func TestParseBytesSniffsEncoding(t *testing.T) {
	in := []byte{0xEF, 0xBB, 0xBF, 0x3C, 0x70, 0x3E, 0xE2, 0x9C, 0x93, 0x3C, 0x2F, 0x70, 0x3E}
	res, err := ParseBytes(in, nil)
	require.NoError(t, err)
	assert.Equal(t, "utf-8", res.Encoding)

	body := res.Document.ChildNodes[0].ChildNodes[1]
	require.Equal(t, "body", body.NodeName)
	p := body.ChildNodes[0]
	require.Equal(t, "p", p.NodeName)
	assert.Equal(t, "✓", p.ChildNodes[0].Data)
}

func TestParseQuirksModes(t *testing.T) {
	p := NewParser("<!DOCTYPE html><p>x", nil)
	p.Run()
	assert.Equal(t, noQuirks, p.TreeConstructor.quirksMode)

	p = NewParser("<p>x", nil)
	p.Run()
	assert.Equal(t, quirks, p.TreeConstructor.quirksMode)

	p = NewParser(`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 4.01 Transitional//EN" "x"><p>`, nil)
	p.Run()
	assert.Equal(t, limitedQuirks, p.TreeConstructor.quirksMode)

	p = NewParser(`<!DOCTYPE html PUBLIC "-//W3C//DTD HTML 3.2//EN"><p>`, nil)
	p.Run()
	assert.Equal(t, quirks, p.TreeConstructor.quirksMode)
}

func TestSelectedContentPopulation(t *testing.T) {
	in := `<select><button><selectedcontent></selectedcontent></button>` +
		`<option>One</option><option selected>Two</option></select>`
	res, err := ParseDocument(in, nil)
	require.NoError(t, err)

	var sc *spec.Node
	var walk func(n *spec.Node)
	walk = func(n *spec.Node) {
		if n.NodeName == "selectedcontent" {
			sc = n
		}
		for _, child := range n.ChildNodes {
			walk(child)
		}
	}
	walk(res.Document)
	require.NotNil(t, sc)
	require.Len(t, sc.ChildNodes, 1)
	assert.Equal(t, "Two", sc.ChildNodes[0].Data)
}

func TestSerializeFragmentRoundTrip(t *testing.T) {
	res, err := ParseDocument(`<p id="a">x &amp; y</p><br><pre>z</pre>`, nil)
	require.NoError(t, err)
	body := res.Document.ChildNodes[0].ChildNodes[1]
	require.Equal(t, "body", body.NodeName)
	assert.Equal(t, `<p id="a">x &amp; y</p><br><pre>z</pre>`, SerializeFragment(body))
}
