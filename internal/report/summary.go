package report

// GroupSummary is one violation kind flattened for machine output.
type GroupSummary struct {
	Kind     string     `json:"kind" yaml:"kind"`
	Header   string     `json:"header" yaml:"header"`
	Count    int        `json:"count" yaml:"count"`
	Columns  []string   `json:"columns" yaml:"columns"`
	Rows     [][]string `json:"rows" yaml:"rows"`
	Guidance string     `json:"guidance" yaml:"guidance"`
}

// Summary is the machine-readable form of a report, used for the json and
// yaml output formats.
type Summary struct {
	TotalViolations int            `json:"total_violations" yaml:"total_violations"`
	Groups          []GroupSummary `json:"groups" yaml:"groups"`
}

// Summary flattens the report in rendering order.
func (r *Report) Summary() Summary {
	s := Summary{
		TotalViolations: r.Count(),
		Groups:          []GroupSummary{},
	}
	for _, kind := range r.Kinds() {
		violations := r.groups[kind]
		if len(violations) == 0 {
			continue
		}
		first := violations[0]
		group := GroupSummary{
			Kind:     kind,
			Header:   first.Header(),
			Count:    len(violations),
			Columns:  first.TableHeader(),
			Guidance: first.Guidance(),
		}
		for i, v := range violations {
			group.Rows = append(group.Rows, v.TableRow(i+1))
		}
		s.Groups = append(s.Groups, group)
	}
	return s
}
