package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alex-kinokon/justhtml/parser/spec"
)

func collectEvents(t *testing.T, input string, opts *TokenizerOptions) []StreamEvent {
	t.Helper()
	s := NewTokenStream(input, opts)
	var events []StreamEvent
	for s.Next() {
		events = append(events, *s.Event())
	}
	return events
}

func TestStreamBasicDocument(t *testing.T) {
	events := collectEvents(t, `<!DOCTYPE html><p class="x">Hello<!--c--></p>`, nil)
	require.Len(t, events, 5)

	assert.Equal(t, StreamDoctype, events[0].Kind)
	assert.Equal(t, "html", events[0].Name)

	assert.Equal(t, StreamStart, events[1].Kind)
	assert.Equal(t, "p", events[1].Name)
	assert.Equal(t, []spec.Attr{{Name: "class", Value: "x"}}, events[1].Attrs)

	assert.Equal(t, StreamText, events[2].Kind)
	assert.Equal(t, "Hello", events[2].Data)

	assert.Equal(t, StreamComment, events[3].Kind)
	assert.Equal(t, "c", events[3].Data)

	assert.Equal(t, StreamEnd, events[4].Kind)
	assert.Equal(t, "p", events[4].Name)
}

func TestStreamCoalescesText(t *testing.T) {
	events := collectEvents(t, "a&amp;b<br>c", nil)
	require.Len(t, events, 3)
	assert.Equal(t, StreamText, events[0].Kind)
	assert.Equal(t, "a&b", events[0].Data)
	assert.Equal(t, StreamStart, events[1].Kind)
	assert.Equal(t, "br", events[1].Name)
	assert.Equal(t, StreamText, events[2].Kind)
	assert.Equal(t, "c", events[2].Data)
}

func TestStreamScriptData(t *testing.T) {
	events := collectEvents(t, "<script>x<!--y</script>", nil)
	require.Len(t, events, 3)
	assert.Equal(t, StreamStart, events[0].Kind)
	assert.Equal(t, "script", events[0].Name)
	assert.Equal(t, StreamText, events[1].Kind)
	assert.Equal(t, "x<!--y", events[1].Data)
	assert.Equal(t, StreamEnd, events[2].Kind)
	assert.Equal(t, "script", events[2].Name)
}

func TestStreamRCDATA(t *testing.T) {
	events := collectEvents(t, "<title>a<b>c</title>", nil)
	require.Len(t, events, 3)
	assert.Equal(t, StreamText, events[1].Kind)
	assert.Equal(t, "a<b>c", events[1].Data)
	assert.Equal(t, StreamEnd, events[2].Kind)
}

func TestStreamInitialRawTextState(t *testing.T) {
	events := collectEvents(t, "x</style>y", &TokenizerOptions{
		InitialState:      RawTextState,
		InitialRawTextTag: "style",
	})
	require.Len(t, events, 3)
	assert.Equal(t, StreamText, events[0].Kind)
	assert.Equal(t, "x", events[0].Data)
	assert.Equal(t, StreamEnd, events[1].Kind)
	assert.Equal(t, "style", events[1].Name)
	assert.Equal(t, StreamText, events[2].Kind)
	assert.Equal(t, "y", events[2].Data)
}

func TestStreamCRNormalization(t *testing.T) {
	events := collectEvents(t, "a\r", nil)
	require.Len(t, events, 1)
	assert.Equal(t, "a\n", events[0].Data)

	events = collectEvents(t, "a\r\nb\rc", nil)
	require.Len(t, events, 1)
	assert.Equal(t, "a\nb\nc", events[0].Data)
}

func TestStreamSelfClosing(t *testing.T) {
	events := collectEvents(t, "<img src=x />", nil)
	require.Len(t, events, 1)
	assert.Equal(t, StreamStart, events[0].Kind)
	assert.True(t, events[0].SelfClosing)
}

func TestStreamCDATABogusComment(t *testing.T) {
	events := collectEvents(t, "<![CDATA[x]]>", nil)
	require.Len(t, events, 1)
	assert.Equal(t, StreamComment, events[0].Kind)
	assert.Equal(t, "[CDATA[x]]", events[0].Data)
}

func TestStreamEmptyInput(t *testing.T) {
	events := collectEvents(t, "", nil)
	assert.Empty(t, events)
}

func TestStreamDoctypeIdentifiers(t *testing.T) {
	events := collectEvents(t, `<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.0 Strict//EN" "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd">`, nil)
	require.Len(t, events, 1)
	dt := events[0].Doctype
	require.NotNil(t, dt)
	assert.Equal(t, "html", dt.Name)
	assert.True(t, dt.HasPublicID)
	assert.Equal(t, "-//W3C//DTD XHTML 1.0 Strict//EN", dt.PublicID)
	assert.True(t, dt.HasSystemID)
	assert.Equal(t, "http://www.w3.org/TR/xhtml1/DTD/xhtml1-strict.dtd", dt.SystemID)
}
