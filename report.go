package proneval

import (
	"bufio"
	"fmt"
	"io"
	"sort"
)

// Score holds precision, recall and their harmonic mean.
// Ratios over zero counts are NaN or Inf.
type Score struct {
	Precision float64
	Recall    float64
	F1        float64
}

// NewScore computes a score from match and occurrence counts
func NewScore(matches, refOccurrences, candOccurrences int) Score {
	p := float64(matches) / float64(candOccurrences)
	r := float64(matches) / float64(refOccurrences)
	return Score{
		Precision: p,
		Recall:    r,
		F1:        fscore(p, r),
	}
}

func fscore(p, r float64) float64 {
	return 2 * p * r / (p + r)
}

// PronounTotal sums the counts of one pronoun over all documents
type PronounTotal struct {
	Pronoun         string
	Matches         int
	RefOccurrences  int
	CandOccurrences int
	Score
}

// DocumentRow is the per document line of the report
type DocumentRow struct {
	DocID          string
	Matches        int
	RefOccurrences int
	Recall         float64
}

// Report is the aggregation of all document summaries.
type Report struct {
	// Pronouns observed in the candidate, sorted
	Pronouns  []string
	Summaries []*DocumentSummary
	Documents []DocumentRow
	Totals    []PronounTotal

	Matches         int
	RefOccurrences  int
	CandOccurrences int
	Total           Score

	// Harmonic macro average over pronouns,
	// not part of the written report
	Macro Score
}

// Aggregate folds the document summaries into per pronoun
// and micro averaged totals.
func Aggregate(summaries []*DocumentSummary) *Report {
	pset := make(map[string]struct{})
	for _, s := range summaries {
		for p := range s.CandOccurrences {
			pset[p] = struct{}{}
		}
	}
	pronouns := make([]string, 0, len(pset))
	for p := range pset {
		pronouns = append(pronouns, p)
	}
	sort.Strings(pronouns)

	rep := &Report{
		Pronouns:  pronouns,
		Summaries: summaries,
		Documents: make([]DocumentRow, 0, len(summaries)),
		Totals:    make([]PronounTotal, len(pronouns)),
	}

	for i, p := range pronouns {
		rep.Totals[i].Pronoun = p
	}

	for _, s := range summaries {
		row := DocumentRow{DocID: s.DocID}
		for i, p := range pronouns {
			m := s.Matches[p]
			o := s.RefOccurrences[p]
			rep.Totals[i].Matches += m
			rep.Totals[i].RefOccurrences += o
			rep.Totals[i].CandOccurrences += s.CandOccurrences[p]
			row.Matches += m
			row.RefOccurrences += o
		}
		row.Recall = float64(row.Matches) / float64(row.RefOccurrences)
		rep.Documents = append(rep.Documents, row)

		rep.Matches += row.Matches
		rep.RefOccurrences += row.RefOccurrences
		rep.CandOccurrences += s.CandOccurrences.Total()
	}

	var invP, invR float64
	for i := range rep.Totals {
		t := &rep.Totals[i]
		t.Score = NewScore(t.Matches, t.RefOccurrences, t.CandOccurrences)
		invP += 1 / t.Precision
		invR += 1 / t.Recall
	}

	rep.Total = NewScore(rep.Matches, rep.RefOccurrences, rep.CandOccurrences)

	n := float64(len(rep.Totals))
	rep.Macro.Precision = n / invP
	rep.Macro.Recall = n / invR
	rep.Macro.F1 = fscore(rep.Macro.Precision, rep.Macro.Recall)

	return rep
}

// Write prints the sections of the report selected by flags.
// The totals are always written.
func (rep *Report) Write(w io.Writer, flags Bits) error {
	writer := bufio.NewWriter(w)

	if flags&DOCUMENTS != 0 {
		fmt.Fprintf(writer, "%20s", "")
		for _, p := range rep.Pronouns {
			fmt.Fprintf(writer, "%9s   ", p)
		}
		writer.WriteByte('\n')

		for d, row := range rep.Documents {
			s := rep.Summaries[d]
			fmt.Fprintf(writer, "%18s  ", row.DocID)
			for _, p := range rep.Pronouns {
				if o := s.RefOccurrences[p]; o > 0 {
					fmt.Fprintf(writer, "%4d/%4d   ", s.Matches[p], o)
				} else {
					writer.WriteString("   -/   -   ")
				}
			}
			fmt.Fprintf(writer, "%4d/%4d   %.4f\n", row.Matches, row.RefOccurrences, row.Recall)
		}

		fmt.Fprintf(writer, "%20s", "")
		for _, t := range rep.Totals {
			fmt.Fprintf(writer, "%4d/%4d   ", t.Matches, t.RefOccurrences)
		}
		fmt.Fprintf(writer, "%4d/%4d   %.4f\n\n", rep.Matches, rep.RefOccurrences, rep.Total.Recall)
	}

	if flags&PRONOUNS != 0 {
		fmt.Fprintf(writer, "%18s  %14s   %9s   %9s   %9s\n", "", "match/ref/cand", "precision", "recall", "F1")
		for _, t := range rep.Totals {
			writeScoreLine(writer, t.Pronoun, t.Matches, t.RefOccurrences, t.CandOccurrences, t.Score)
		}
		writeScoreLine(writer, "TOTAL", rep.Matches, rep.RefOccurrences, rep.CandOccurrences, rep.Total)
		writer.WriteByte('\n')
	}

	if flags&TOTALS != 0 {
		fmt.Fprintf(writer, "Precision:   %4d/%4d    %.4f\n", rep.Matches, rep.CandOccurrences, rep.Total.Precision)
		fmt.Fprintf(writer, "Recall:      %4d/%4d    %.4f\n", rep.Matches, rep.RefOccurrences, rep.Total.Recall)
		fmt.Fprintf(writer, "F1:                       %.4f\n", rep.Total.F1)
	}

	return writer.Flush()
}

func writeScoreLine(w io.Writer, label string, m, ref, cand int, s Score) {
	fmt.Fprintf(w, "%18s  %4d/%4d/%4d   %9.4f   %9.4f   %9.4f\n", label, m, ref, cand, s.Precision, s.Recall, s.F1)
}
