package interfaces

// Violation is a single readiness finding, carrying enough evidence to
// render one report row without re-querying the snapshot it came from.
type Violation interface {
	// Kind returns the stable identity used to group findings in a report
	Kind() string

	// Header returns the heading of the kind's report section
	Header() string

	// Guidance returns the remediation text rendered once per section
	Guidance() string

	// TableHeader returns the evidence table column names, "#" first
	TableHeader() []string

	// TableRow renders the finding as one table row with the given row number
	TableRow(row int) []string
}
