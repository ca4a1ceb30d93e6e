package proneval

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ulikunitz/xz"
)

// Sentences may be long in unsegmented corpora
const maxLineSize = 16 * 1024 * 1024

// Layout names the file suffixes of a corpus stem.
type Layout struct {
	Source string
	Target string
	Align  string
}

// DefaultLayout expects stem.src, stem.tgt and stem.align
var DefaultLayout = Layout{
	Source: "src",
	Target: "tgt",
	Align:  "align",
}

type multiCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiCloser) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// openCorpusFile opens path, or a gzip or xz
// compressed variant of it.
func openCorpusFile(path string) (io.ReadCloser, string, error) {
	f, err := os.Open(path)
	if err == nil {
		return f, path, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, path, err
	}
	notFound := err

	if f, err = os.Open(path + ".gz"); err == nil {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, path + ".gz", err
		}
		return &multiCloser{Reader: gz, closers: []io.Closer{f, gz}}, path + ".gz", nil
	}

	if f, err = os.Open(path + ".xz"); err == nil {
		xr, err := xz.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, path + ".xz", err
		}
		return &multiCloser{Reader: xr, closers: []io.Closer{f}}, path + ".xz", nil
	}

	return nil, path, notFound
}

// LoadCorpus reads the three files of a corpus stem.
func LoadCorpus(stem string, layout Layout) (*Corpus, error) {
	names := []string{
		stem + "." + layout.Source,
		stem + "." + layout.Target,
		stem + "." + layout.Align,
	}

	readers := make([]io.Reader, 0, len(names))
	paths := make([]string, 0, len(names))
	for _, name := range names {
		r, path, err := openCorpusFile(name)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		defer r.Close()
		readers = append(readers, r)
		paths = append(paths, path)
	}

	src, err := readSentences(readers[0])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", paths[0], err)
	}
	tgt, err := readSentences(readers[1])
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", paths[1], err)
	}
	links, err := readLinks(readers[2])
	if err != nil {
		var aerr *AlignmentError
		if errors.As(err, &aerr) {
			aerr.Path = paths[2]
			return nil, aerr
		}
		return nil, fmt.Errorf("read %s: %w", paths[2], err)
	}

	corpus, err := NewAlignedCorpus(src, tgt, links)
	if err != nil {
		var aerr *AlignmentError
		if errors.As(err, &aerr) {
			aerr.Path = paths[2]
		}
		return nil, err
	}

	log.Debug().
		Str("stem", stem).
		Int("sentences", len(src)).
		Int("source", corpus.source.Size()).
		Int("target", corpus.target.Size()).
		Msg("Corpus loaded")

	return corpus, nil
}

// ParseCorpus reads a corpus from tokenized source and
// target readers, one sentence per line, and an alignment
// reader with one line of i-j links per sentence.
func ParseCorpus(src, tgt, align io.Reader) (*Corpus, error) {
	s, err := readSentences(src)
	if err != nil {
		return nil, err
	}
	t, err := readSentences(tgt)
	if err != nil {
		return nil, err
	}
	links, err := readLinks(align)
	if err != nil {
		return nil, err
	}
	return NewAlignedCorpus(s, t, links)
}

func newLineScanner(r io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return sc
}

func readSentences(r io.Reader) ([][]string, error) {
	var sentences [][]string
	sc := newLineScanner(r)
	for sc.Scan() {
		sentences = append(sentences, strings.Fields(sc.Text()))
	}
	return sentences, sc.Err()
}

func readLinks(r io.Reader) ([][]Link, error) {
	var lines [][]Link
	sc := newLineScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		links := make([]Link, 0, len(fields))
		for _, f := range fields {
			l, err := parseLink(f)
			if err != nil {
				return nil, &AlignmentError{
					LineNo: lineNo,
					Link:   f,
					Reason: err.Error(),
				}
			}
			links = append(links, l)
		}
		lines = append(lines, links)
	}
	return lines, sc.Err()
}

// parseLink reads a link in the i-j notation
func parseLink(s string) (Link, error) {
	i, j, ok := strings.Cut(s, "-")
	if !ok {
		return Link{}, errors.New("expected i-j")
	}
	src, err := strconv.Atoi(i)
	if err != nil {
		return Link{}, fmt.Errorf("source index: %w", err)
	}
	tgt, err := strconv.Atoi(j)
	if err != nil {
		return Link{}, fmt.Errorf("target index: %w", err)
	}
	return Link{Source: src, Target: tgt}, nil
}

func formatLink(l Link) string {
	return strconv.Itoa(l.Source) + "-" + strconv.Itoa(l.Target)
}
