// internal/report/report.go
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dangerclosesec/clausecheck/clauses/parser"
	"github.com/dangerclosesec/clausecheck/internal/domain"
	"github.com/google/uuid"
)

// FileResult is the outcome of checking one file
type FileResult struct {
	Name        string
	Clauses     int
	Predicates  []string
	Diagnostics []*parser.Diagnostic
}

// OK reports whether the file is syntactically correct
func (r FileResult) OK() bool {
	return len(r.Diagnostics) == 0
}

// Report collects the results of one checking run in input order
type Report struct {
	RunID     uuid.UUID
	Grammar   string
	StartedAt time.Time
	Results   []FileResult
}

func New(grammar string) *Report {
	return &Report{
		RunID:     uuid.New(),
		Grammar:   grammar,
		StartedAt: time.Now().UTC(),
	}
}

// OK reports whether every file in the run is syntactically correct
func (r *Report) OK() bool {
	return r.Failed() == 0
}

// Failed counts the files with at least one diagnostic
func (r *Report) Failed() int {
	n := 0
	for _, res := range r.Results {
		if !res.OK() {
			n++
		}
	}
	return n
}

// Write renders the report in the named format
func Write(w io.Writer, format string, r *Report) error {
	switch format {
	case "", "text":
		return WriteText(w, r)
	case "json":
		return WriteJSON(w, r)
	default:
		return fmt.Errorf("%w: unknown report format %q", domain.ErrInvalidInput, format)
	}
}

// WriteText renders one entry per file, separated by a blank line:
//
//	1.txt is syntactically correct
//
//	2.txt contains syntax errors:
//	syntax error at line 1, column 9: expected '.', found end of input
func WriteText(w io.Writer, r *Report) error {
	entries := make([]string, len(r.Results))
	for i, res := range r.Results {
		if res.OK() {
			entries[i] = res.Name + " is syntactically correct"
			continue
		}

		lines := make([]string, 0, len(res.Diagnostics)+1)
		lines = append(lines, res.Name+" contains syntax errors:")
		for _, d := range res.Diagnostics {
			lines = append(lines, d.Error())
		}
		entries[i] = strings.Join(lines, "\n")
	}

	if len(entries) == 0 {
		return nil
	}
	_, err := io.WriteString(w, strings.Join(entries, "\n\n")+"\n")
	return err
}

type jsonReport struct {
	RunID     string     `json:"run_id"`
	Grammar   string     `json:"grammar"`
	StartedAt time.Time  `json:"started_at"`
	OK        bool       `json:"ok"`
	Failed    int        `json:"failed"`
	Files     []jsonFile `json:"files"`
}

type jsonFile struct {
	Name        string           `json:"name"`
	OK          bool             `json:"ok"`
	Clauses     int              `json:"clauses"`
	Predicates  []string         `json:"predicates,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics,omitempty"`
}

type jsonDiagnostic struct {
	Kind     string `json:"kind"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Offset   int    `json:"offset"`
	Expected string `json:"expected,omitempty"`
	Found    string `json:"found,omitempty"`
	Message  string `json:"message,omitempty"`
	Text     string `json:"text"`
}

// WriteJSON renders the report as an indented JSON document
func WriteJSON(w io.Writer, r *Report) error {
	doc := jsonReport{
		RunID:     r.RunID.String(),
		Grammar:   r.Grammar,
		StartedAt: r.StartedAt,
		OK:        r.OK(),
		Failed:    r.Failed(),
		Files:     make([]jsonFile, 0, len(r.Results)),
	}
	for _, res := range r.Results {
		file := jsonFile{
			Name:       res.Name,
			OK:         res.OK(),
			Clauses:    res.Clauses,
			Predicates: res.Predicates,
		}
		for _, d := range res.Diagnostics {
			file.Diagnostics = append(file.Diagnostics, jsonDiagnostic{
				Kind:     d.Kind.String(),
				Line:     d.Pos.Line,
				Column:   d.Pos.Column,
				Offset:   d.Pos.Offset,
				Expected: d.Expected,
				Found:    d.Found,
				Message:  d.Message,
				Text:     d.Error(),
			})
		}
		doc.Files = append(doc.Files, file)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
