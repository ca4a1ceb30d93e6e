package proneval

// Counts maps a lowercased pronoun to a count.
type Counts map[string]int

// Total sums all counts
func (c Counts) Total() int {
	n := 0
	for _, v := range c {
		n += v
	}
	return n
}

// DocumentSummary accumulates the pronoun counts
// of a single document.
type DocumentSummary struct {
	DocID string

	// Reference target tokens aligned to pronoun occurrences
	RefOccurrences Counts

	// Candidate target tokens aligned to pronoun occurrences
	CandOccurrences Counts

	// Candidate tokens paired with a reference token
	Matches Counts
}

// NewDocumentSummary creates an empty summary
func NewDocumentSummary(id string) *DocumentSummary {
	return &DocumentSummary{
		DocID:           id,
		RefOccurrences:  make(Counts),
		CandOccurrences: make(Counts),
		Matches:         make(Counts),
	}
}
