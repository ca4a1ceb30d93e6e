package proneval

import (
	"sort"
	"strings"
)

// Side is one language side of a word aligned
// parallel corpus. Tokens are indexed globally over
// all sentences of the corpus.
type Side interface {
	Size() int
	ElementAt(idx int) string

	// AlignedElements returns the tokens of the other side
	// aligned to the token at idx, in alignment file order.
	AlignedElements(idx int) []string

	SentenceCount() int
	SentenceStart(snt int) int
	FindSentence(idx int) int
	SentenceAsString(snt int) string

	// MarkedSentence is SentenceAsString with the
	// token at idx wrapped in [[ ]]. The whole sentence is
	// rendered, not only the tokens up to idx.
	MarkedSentence(snt int, idx int) string
}

// AlignedCorpus gives access to both sides
// of a parallel corpus.
type AlignedCorpus interface {
	Source() Side
	Target() Side
}

// Link aligns the source token at position Source
// to the target token at position Target,
// both relative to the sentence.
type Link struct {
	Source int
	Target int
}

type side struct {
	tokens []string

	// Start index of every sentence plus
	// a sentinel equal to len(tokens)
	sentStart []int

	// Global indices on the other side per token
	aligned [][]int
	other   *side
}

// Corpus is the in-memory AlignedCorpus.
type Corpus struct {
	source *side
	target *side
}

// NewAlignedCorpus builds a corpus from tokenized sentences
// and their sentence-local alignment links.
func NewAlignedCorpus(src, tgt [][]string, links [][]Link) (*Corpus, error) {
	if len(src) != len(tgt) {
		return nil, &AlignmentError{
			Reason: "source and target differ in number of sentences",
		}
	}
	if len(links) != len(src) {
		return nil, &AlignmentError{
			Reason: "number of alignment lines differs from number of sentences",
		}
	}

	s := newSide(src)
	t := newSide(tgt)
	s.other = t
	t.other = s

	for snt, sl := range links {
		sOff := s.sentStart[snt]
		tOff := t.sentStart[snt]
		sLen := s.sentStart[snt+1] - sOff
		tLen := t.sentStart[snt+1] - tOff

		for _, l := range sl {
			if l.Source < 0 || l.Source >= sLen || l.Target < 0 || l.Target >= tLen {
				return nil, &AlignmentError{
					LineNo: snt + 1,
					Link:   formatLink(l),
					Reason: "index outside of sentence",
				}
			}
			s.aligned[sOff+l.Source] = append(s.aligned[sOff+l.Source], tOff+l.Target)
			t.aligned[tOff+l.Target] = append(t.aligned[tOff+l.Target], sOff+l.Source)
		}
	}

	return &Corpus{source: s, target: t}, nil
}

func newSide(sentences [][]string) *side {
	n := 0
	for _, snt := range sentences {
		n += len(snt)
	}

	s := &side{
		tokens:    make([]string, 0, n),
		sentStart: make([]int, 0, len(sentences)+1),
		aligned:   make([][]int, n),
	}

	for _, snt := range sentences {
		s.sentStart = append(s.sentStart, len(s.tokens))
		s.tokens = append(s.tokens, snt...)
	}
	s.sentStart = append(s.sentStart, len(s.tokens))
	return s
}

// Source returns the source side
func (c *Corpus) Source() Side {
	return c.source
}

// Target returns the target side
func (c *Corpus) Target() Side {
	return c.target
}

func (s *side) Size() int {
	return len(s.tokens)
}

func (s *side) ElementAt(idx int) string {
	return s.tokens[idx]
}

func (s *side) AlignedElements(idx int) []string {
	out := make([]string, len(s.aligned[idx]))
	for i, o := range s.aligned[idx] {
		out[i] = s.other.tokens[o]
	}
	return out
}

func (s *side) SentenceCount() int {
	return len(s.sentStart) - 1
}

// SentenceStart accepts SentenceCount() as well,
// returning the sentinel.
func (s *side) SentenceStart(snt int) int {
	return s.sentStart[snt]
}

// FindSentence returns the sentence containing idx.
// Empty sentences never contain a token.
func (s *side) FindSentence(idx int) int {
	return sort.Search(s.SentenceCount(), func(k int) bool {
		return s.sentStart[k+1] > idx
	})
}

func (s *side) SentenceAsString(snt int) string {
	return strings.Join(s.tokens[s.sentStart[snt]:s.sentStart[snt+1]], " ")
}

func (s *side) MarkedSentence(snt int, idx int) string {
	var sb strings.Builder
	for i := s.sentStart[snt]; i < s.sentStart[snt+1]; i++ {
		if i > s.sentStart[snt] {
			sb.WriteByte(' ')
		}
		if i == idx {
			sb.WriteString("[[")
			sb.WriteString(s.tokens[i])
			sb.WriteString("]]")
		} else {
			sb.WriteString(s.tokens[i])
		}
	}
	return sb.String()
}
