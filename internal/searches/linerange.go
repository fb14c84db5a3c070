package searches

// LineRange is a half-open row interval [Start, End): End is one past
// the last included row, matching rangeset.Range's convention so the
// same coalescing logic applies to printed excerpts.
type LineRange struct {
	Start, End uint32
}

func rangeOf(startRow, endRow uint32) LineRange {
	return LineRange{Start: startRow, End: endRow + 1}
}
