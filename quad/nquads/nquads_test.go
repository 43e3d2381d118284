package nquads

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/shaclc/quad"
)

func TestParseTyped(t *testing.T) {
	cases := []struct {
		name   string
		input  string
		expect quad.Quad
	}{
		{
			name:  "iri triple",
			input: `<http://example.org/s> <http://example.org/p> <http://example.org/o> .`,
			expect: quad.Quad{
				Subject:   quad.IRI("http://example.org/s"),
				Predicate: quad.IRI("http://example.org/p"),
				Object:    quad.IRI("http://example.org/o"),
			},
		},
		{
			name:  "blank node subject",
			input: `_:b0 <http://example.org/p> "value" .`,
			expect: quad.Quad{
				Subject:   quad.BlankId("b0"),
				Predicate: quad.IRI("http://example.org/p"),
				Object:    quad.String("value"),
			},
		},
		{
			name:  "language-tagged literal",
			input: `<http://example.org/s> <http://example.org/p> "bonjour"@fr .`,
			expect: quad.Quad{
				Subject:   quad.IRI("http://example.org/s"),
				Predicate: quad.IRI("http://example.org/p"),
				Object:    quad.LangString{Value: "bonjour", Lang: "fr"},
			},
		},
		{
			name:  "quad with graph label",
			input: `<http://example.org/s> <http://example.org/p> <http://example.org/o> <http://example.org/g> .`,
			expect: quad.Quad{
				Subject:   quad.IRI("http://example.org/s"),
				Predicate: quad.IRI("http://example.org/p"),
				Object:    quad.IRI("http://example.org/o"),
				Label:     quad.IRI("http://example.org/g"),
			},
		},
		{
			name:  "escaped literal",
			input: `<http://example.org/s> <http://example.org/p> "a\ttab\nand a newline" .`,
			expect: quad.Quad{
				Subject:   quad.IRI("http://example.org/s"),
				Predicate: quad.IRI("http://example.org/p"),
				Object:    quad.String("a\ttab\nand a newline"),
			},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			q, err := Parse(c.input)
			require.NoError(t, err)
			assert.Equal(t, c.expect, q)
		})
	}
}

func TestParseTypedDatatype(t *testing.T) {
	q, err := Parse(`<http://example.org/s> <http://example.org/p> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .`)
	require.NoError(t, err)
	assert.Equal(t, quad.Int(42), q.Object)
}

func TestParseRaw(t *testing.T) {
	q, err := ParseRaw(`<http://example.org/s> <http://example.org/p> "42"^^<http://www.w3.org/2001/XMLSchema#integer> .`)
	require.NoError(t, err)
	assert.Equal(t, quad.Raw(`"42"^^<http://www.w3.org/2001/XMLSchema#integer>`), q.Object)
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse(`<http://example.org/s> <http://example.org/p> .`)
	assert.Error(t, err)
}

func TestReaderSkipsCommentsAndBlankLines(t *testing.T) {
	const doc = "# a comment\n\n<http://example.org/s> <http://example.org/p> <http://example.org/o> .\n"
	r := NewReader(bytes.NewBufferString(doc), false)
	q, err := r.ReadQuad()
	require.NoError(t, err)
	assert.Equal(t, quad.IRI("http://example.org/s"), q.Subject)
	_, err = r.ReadQuad()
	assert.Equal(t, io.EOF, err)
}

func TestWriterRoundTrip(t *testing.T) {
	q := quad.Quad{
		Subject:   quad.IRI("http://example.org/s"),
		Predicate: quad.IRI("http://example.org/p"),
		Object:    quad.String("hello"),
	}
	var buf bytes.Buffer
	w := NewWriter(&buf)
	require.NoError(t, w.WriteQuad(q))
	require.NoError(t, w.Close())

	r := NewReader(&buf, false)
	got, err := r.ReadQuad()
	require.NoError(t, err)
	assert.Equal(t, q, got)
}
