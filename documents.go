package proneval

import (
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Documents partitions the token range of a corpus.
// Document d spans [Boundaries[d], Boundaries[d+1]),
// the last boundary is the size of the corpus.
type Documents struct {
	Boundaries []int
	Summaries  []*DocumentSummary
}

// Len returns the number of documents
func (d *Documents) Len() int {
	return len(d.Summaries)
}

// splitBoundaryLine separates the sentence number from
// the optional label at the first run of whitespace.
func splitBoundaryLine(line string) (num string, label string) {
	line = strings.TrimSpace(line)
	sep := strings.IndexFunc(line, unicode.IsSpace)
	if sep < 0 {
		return line, ""
	}
	return line[:sep], strings.TrimLeftFunc(line[sep:], unicode.IsSpace)
}

// ParseBoundaries reads a document boundary file, one document
// per line, consisting of a 0-based sentence number and an
// optional label. Sentence numbers are resolved against ref.
func ParseBoundaries(r io.Reader, ref Side) (*Documents, error) {
	docs := &Documents{
		Boundaries: make([]int, 0, 64),
		Summaries:  make([]*DocumentSummary, 0, 64),
	}

	sc := newLineScanner(r)
	lineNo := 0
	last := -1

	for sc.Scan() {
		line := sc.Text()
		lineNo++

		num, docid := splitBoundaryLine(line)
		if num == "" {
			return nil, &BoundaryError{LineNo: lineNo, Line: line, Reason: "no fields"}
		}

		snt, err := strconv.Atoi(num)
		if err != nil {
			return nil, &BoundaryError{LineNo: lineNo, Line: line, Reason: "sentence number is not an integer"}
		}

		if snt < 0 || snt >= ref.SentenceCount() {
			return nil, &BoundaryError{
				LineNo: lineNo,
				Line:   line,
				Reason: "sentence number out of range [0," + strconv.Itoa(ref.SentenceCount()) + ")",
			}
		}

		if snt <= last {
			return nil, &BoundaryError{LineNo: lineNo, Line: line, Reason: "sentence numbers not strictly increasing"}
		}

		if last == -1 && snt != 0 {
			log.Warn().
				Int("sentence", snt).
				Msg("First document does not start at sentence 0, preceding tokens are attributed to it")
		}
		last = snt

		if docid == "" {
			docid = "Document " + strconv.Itoa(docs.Len())
		}

		docs.Boundaries = append(docs.Boundaries, ref.SentenceStart(snt))
		docs.Summaries = append(docs.Summaries, NewDocumentSummary(docid))
	}

	if err := sc.Err(); err != nil {
		return nil, err
	}

	if docs.Len() == 0 {
		return nil, &BoundaryError{Reason: "no documents"}
	}

	docs.Boundaries = append(docs.Boundaries, ref.Size())

	log.Debug().Int("documents", docs.Len()).Msg("Document boundaries parsed")

	return docs, nil
}
