package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/JustinWhittecar/physcombat/internal/report"
)

// formatReport renders a report as "<indent>name #subject: p1, p2". The
// engine's contract is the template id and parameters; this is only a
// readable dump of them.
func formatReport(r report.Report) string {
	var b strings.Builder
	b.WriteString(strings.Repeat("  ", r.Indent))
	b.WriteString(report.Name(r.TemplateID))
	if r.SubjectID != 0 {
		fmt.Fprintf(&b, " #%d", r.SubjectID)
	}
	if len(r.Params) > 0 {
		parts := make([]string, len(r.Params))
		for i, p := range r.Params {
			parts[i] = fmt.Sprint(p)
		}
		b.WriteString(": ")
		b.WriteString(strings.Join(parts, ", "))
	}
	return b.String()
}

type jsonReport struct {
	report.Report
	Name string `json:"name"`
}

func writeJSON(out io.Writer, rs []report.Report) error {
	enc := json.NewEncoder(out)
	for _, r := range rs {
		if err := enc.Encode(jsonReport{Report: r, Name: report.Name(r.TemplateID)}); err != nil {
			return fmt.Errorf("encode report: %w", err)
		}
	}
	return nil
}
