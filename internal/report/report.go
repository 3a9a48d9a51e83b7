// Package report holds the structured records the resolution engines emit.
// Records are never rendered here; a template id plus ordered parameters is
// the whole contract.
package report

// Report is one structured log entry.
type Report struct {
	TemplateID int   `json:"template_id" msgpack:"t"`
	SubjectID  int   `json:"subject_id" msgpack:"s"`
	Indent     int   `json:"indent" msgpack:"i"`
	Params     []any `json:"params" msgpack:"p"`
}

// New starts a report for a template.
func New(templateID int) Report {
	return Report{TemplateID: templateID}
}

// Subject sets the unit the report is about.
func (r Report) Subject(id int) Report {
	r.SubjectID = id
	return r
}

// Indented sets the indentation level.
func (r Report) Indented(n int) Report {
	r.Indent = n
	return r
}

// Add appends parameters in template order.
func (r Report) Add(params ...any) Report {
	r.Params = append(append([]any(nil), r.Params...), params...)
	return r
}

// Sink is an append-only ordered report log.
type Sink struct {
	entries []Report
}

// Append adds reports to the end of the log.
func (s *Sink) Append(rs ...Report) {
	s.entries = append(s.entries, rs...)
}

// Reports returns a copy of the log in emission order.
func (s *Sink) Reports() []Report {
	return append([]Report(nil), s.entries...)
}

func (s *Sink) Len() int { return len(s.entries) }

// Since returns the reports appended after the first n.
func (s *Sink) Since(n int) []Report {
	if n >= len(s.entries) {
		return nil
	}
	return append([]Report(nil), s.entries[n:]...)
}

// Has reports whether any entry uses templateID.
func (s *Sink) Has(templateID int) bool {
	for _, r := range s.entries {
		if r.TemplateID == templateID {
			return true
		}
	}
	return false
}
