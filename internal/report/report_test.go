package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dangerclosesec/clausecheck/clauses/parser"
	"github.com/dangerclosesec/clausecheck/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()

	_, err := parser.ParseString("likes(mary, wine)")
	diags := parser.AsDiagnostics(err)
	require.Len(t, diags, 1)

	r := New("standard")
	r.Results = []FileResult{
		{Name: "1.txt", Clauses: 2, Predicates: []string{"likes/2"}},
		{Name: "2.txt", Diagnostics: diags},
	}
	return r
}

func TestWriteText(t *testing.T) {
	r := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, r))

	want := "1.txt is syntactically correct\n\n" +
		"2.txt contains syntax errors:\n" +
		r.Results[1].Diagnostics[0].Error() + "\n"
	assert.Equal(t, want, buf.String())
	assert.Contains(t, buf.String(), "expected '.', found end of input")
}

func TestWriteTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteText(&buf, New("standard")))
	assert.Empty(t, buf.String())
}

func TestWriteJSON(t *testing.T) {
	r := sampleReport(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", r))

	var doc struct {
		RunID  string `json:"run_id"`
		OK     bool   `json:"ok"`
		Failed int    `json:"failed"`
		Files  []struct {
			Name        string `json:"name"`
			OK          bool   `json:"ok"`
			Clauses     int    `json:"clauses"`
			Diagnostics []struct {
				Kind     string `json:"kind"`
				Line     int    `json:"line"`
				Column   int    `json:"column"`
				Expected string `json:"expected"`
				Found    string `json:"found"`
			} `json:"diagnostics"`
		} `json:"files"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))

	_, err := uuid.Parse(doc.RunID)
	assert.NoError(t, err)
	assert.Equal(t, r.RunID.String(), doc.RunID)
	assert.False(t, doc.OK)
	assert.Equal(t, 1, doc.Failed)
	require.Len(t, doc.Files, 2)
	assert.True(t, doc.Files[0].OK)
	assert.Equal(t, 2, doc.Files[0].Clauses)
	require.Len(t, doc.Files[1].Diagnostics, 1)

	d := doc.Files[1].Diagnostics[0]
	assert.Equal(t, "syntax error", d.Kind)
	assert.Equal(t, 1, d.Line)
	assert.Equal(t, 18, d.Column)
	assert.Equal(t, "'.'", d.Expected)
	assert.Equal(t, "end of input", d.Found)
}

func TestReportStatus(t *testing.T) {
	r := sampleReport(t)
	assert.False(t, r.OK())
	assert.Equal(t, 1, r.Failed())

	r.Results = r.Results[:1]
	assert.True(t, r.OK())
	assert.NotEqual(t, uuid.Nil, r.RunID)
}

func TestWriteUnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", New("standard"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}
