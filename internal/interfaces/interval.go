package interfaces

// Interval describes a half-open physical address range [Start, End).
// Descriptor records derive End from a base address plus a length, so
// End() >= Start() holds for every well-formed record.
type Interval interface {
	// Start returns the inclusive lower bound of the range
	Start() uint64

	// End returns the exclusive upper bound of the range
	End() uint64
}
