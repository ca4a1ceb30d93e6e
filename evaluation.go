package proneval

import (
	"io"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Only these exact forms are evaluated,
// the abbreviation IT is not a pronoun.
var triggers = map[string]struct{}{
	"it":   {},
	"they": {},
	"It":   {},
	"They": {},
}

// IsTrigger tells whether a source token is an evaluated pronoun
func IsTrigger(w string) bool {
	_, ok := triggers[w]
	return ok
}

// Option configures an Evaluator
type Option func(*Evaluator)

// WithVerbosity sets the output sections
func WithVerbosity(v Verbosity) Option {
	return func(e *Evaluator) {
		e.flags = v.Flags()
	}
}

// WithTrace sets the writer for alignment traces
func WithTrace(w io.Writer) Option {
	return func(e *Evaluator) {
		e.traceOut = w
	}
}

// Evaluator compares the translations of source pronouns
// in a candidate corpus with those in a reference corpus.
type Evaluator struct {
	reference AlignedCorpus
	candidate AlignedCorpus
	docs      *Documents

	flags    Bits
	traceOut io.Writer
	trace    *TraceWriter
	fold     cases.Caser
}

// NewEvaluator prepares a single evaluation pass.
// Both corpora need to have source sides of the same size.
func NewEvaluator(reference, candidate AlignedCorpus, docs *Documents, opts ...Option) (*Evaluator, error) {
	refSize := reference.Source().Size()
	candSize := candidate.Source().Size()
	if refSize != candSize {
		return nil, &SizeMismatchError{Reference: refSize, Candidate: candSize}
	}

	e := &Evaluator{
		reference: reference,
		candidate: candidate,
		docs:      docs,
		flags:     Silent.Flags(),
		fold:      cases.Lower(language.Und),
	}

	for _, opt := range opts {
		opt(e)
	}

	e.trace = NewTraceWriter(e.traceOut, e.flags)
	return e, nil
}

// Evaluate runs over all source tokens and counts aligned
// reference tokens, aligned candidate tokens and matches
// per document and pronoun.
//
// The summaries are updated in place, so Evaluate
// is meant to be called only once.
func (e *Evaluator) Evaluate() ([]*DocumentSummary, error) {
	refSrc := e.reference.Source()
	candSrc := e.candidate.Source()
	bounds := e.docs.Boundaries
	tracing := e.flags&ALIGNMENTS != 0

	docno := 0
	lastSentence := -1
	refwords := make(map[string]int)

	for cidx := 0; cidx < refSrc.Size(); cidx++ {
		for cidx >= bounds[docno+1] {
			docno++
		}

		srctoken := refSrc.ElementAt(cidx)
		if !IsTrigger(srctoken) {
			continue
		}

		// Lowercase after the check, so IT is not counted as it
		pron := e.fold.String(srctoken)
		summary := e.docs.Summaries[docno]

		reftgt := refSrc.AlignedElements(cidx)
		clear(refwords)
		for _, r := range reftgt {
			refwords[r]++
			summary.RefOccurrences[pron]++
		}

		// Every reference token can be matched only once
		candtgt := candSrc.AlignedElements(cidx)
		for _, c := range candtgt {
			summary.CandOccurrences[pron]++
			if refwords[c] > 0 {
				summary.Matches[pron]++
				refwords[c]--
			}
		}

		if tracing {
			snt := refSrc.FindSentence(cidx)
			if snt > lastSentence {
				candSentence := ""
				if snt < e.candidate.Target().SentenceCount() {
					candSentence = e.candidate.Target().SentenceAsString(snt)
				}
				e.trace.Sentence(
					refSrc.MarkedSentence(snt, cidx),
					e.reference.Target().SentenceAsString(snt),
					candSentence,
				)
				lastSentence = snt
			}
			e.trace.Occurrence(pron, reftgt, candtgt)
		}
	}

	if err := e.trace.Flush(); err != nil {
		return e.docs.Summaries, err
	}

	return e.docs.Summaries, nil
}
