package proneval

import (
	"bufio"
	"io"
)

type Bits uint8

const (
	TOTALS Bits = 1 << iota
	DOCUMENTS
	PRONOUNS
	ALIGNMENTS

	TABLES = TOTALS | DOCUMENTS | PRONOUNS
)

// Verbosity selects the output of an evaluation run.
type Verbosity int

const (
	Silent Verbosity = iota
	Summary
	Trace
)

// Flags returns the output sections for the level
func (v Verbosity) Flags() Bits {
	switch {
	case v >= Trace:
		return TABLES | ALIGNMENTS
	case v == Summary:
		return TABLES
	}
	return TOTALS
}

type TraceWriter struct {
	Sentence   func(src, refTgt, candTgt string)
	Occurrence func(pron string, ref, cand []string)
	Flush      func() error
}

// Create a new trace writer based on the options
func NewTraceWriter(w io.Writer, flags Bits) *TraceWriter {
	tw := &TraceWriter{}

	// Ignore everything
	if flags&ALIGNMENTS == 0 || w == nil {
		tw.Sentence = func(_, _, _ string) {}
		tw.Occurrence = func(_ string, _, _ []string) {}
		tw.Flush = func() error { return nil }
		return tw
	}

	writer := bufio.NewWriter(w)

	// Separate sentences by an empty line
	tw.Sentence = func(src, refTgt, candTgt string) {
		writer.WriteByte('\n')
		writer.WriteString(src)
		writer.WriteByte('\n')
		writer.WriteString(refTgt)
		writer.WriteByte('\n')
		writer.WriteString(candTgt)
		writer.WriteByte('\n')
	}

	writeAligned := func(tokens []string) {
		for i, t := range tokens {
			if i > 0 {
				writer.WriteString(" | ")
			}
			writer.WriteString(t)
		}
	}

	tw.Occurrence = func(pron string, ref, cand []string) {
		writer.WriteString(pron)
		writer.WriteString(" ||| ")
		writeAligned(ref)
		writer.WriteString(" ||| ")
		writeAligned(cand)
		writer.WriteByte('\n')
	}

	// Flush the writer
	tw.Flush = func() error {
		return writer.Flush()
	}

	return tw
}
