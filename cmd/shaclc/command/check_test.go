package command

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cayleygraph/shaclc/conformance"
	"github.com/cayleygraph/shaclc/quad"
	_ "github.com/cayleygraph/shaclc/quad/nquads"
)

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "fixture.nq")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadQuadsReadsNQuadsFile(t *testing.T) {
	path := writeFixture(t, `<http://ex.org/alice> <http://ex.org/knows> <http://ex.org/bob> .`+"\n")

	quads, err := loadQuads(path, "nquads")
	require.NoError(t, err)
	require.Len(t, quads, 1)
	assert.Equal(t, quad.IRI("http://ex.org/alice"), quads[0].Subject)
	assert.Equal(t, quad.IRI("http://ex.org/knows"), quads[0].Predicate)
	assert.Equal(t, quad.IRI("http://ex.org/bob"), quads[0].Object)
}

func TestLoadQuadsDetectsFormatFromExtension(t *testing.T) {
	path := writeFixture(t, `<http://ex.org/a> <http://ex.org/b> <http://ex.org/c> .`+"\n")

	quads, err := loadQuads(path, "")
	require.NoError(t, err)
	require.Len(t, quads, 1)
}

func TestLoadQuadsRejectsUnknownFormat(t *testing.T) {
	path := writeFixture(t, `<http://ex.org/a> <http://ex.org/b> <http://ex.org/c> .`+"\n")

	_, err := loadQuads(path, "no-such-format")
	assert.Error(t, err)
}

func TestPrintReportsReturnsErrorWhenAnyShapeViolates(t *testing.T) {
	shapeName := quad.IRI("http://ex.org/PersonShape")
	violator := quad.IRI("http://ex.org/carol")
	reports := map[quad.Value]*conformance.Report{
		shapeName: {
			Conforming: []quad.Value{quad.IRI("http://ex.org/alice")},
			Violating:  map[quad.Value]struct{}{violator: {}},
		},
	}

	var buf bytes.Buffer
	err := printReports(&buf, reports)
	assert.ErrorIs(t, err, errNonConformant)
	assert.Contains(t, buf.String(), "violates: <http://ex.org/carol>")
}

func TestPrintReportsReturnsNilWhenEverythingConforms(t *testing.T) {
	shapeName := quad.IRI("http://ex.org/PersonShape")
	reports := map[quad.Value]*conformance.Report{
		shapeName: {
			Conforming: []quad.Value{quad.IRI("http://ex.org/alice")},
		},
	}

	var buf bytes.Buffer
	err := printReports(&buf, reports)
	assert.NoError(t, err)
}
