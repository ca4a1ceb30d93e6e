package proneval

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTraceWriterAlignments(t *testing.T) {
	assert := assert.New(t)

	b := make([]byte, 0, 2048)
	w := bytes.NewBuffer(b)

	tw := NewTraceWriter(w, Trace.Flags())

	assert.NotNil(tw)

	tw.Sentence("[[it]] works", "ça marche", "il marche")

	tw.Occurrence("it", []string{"ça"}, []string{"il"})

	tw.Occurrence("they", []string{"ils", "elles"}, []string{})

	assert.Equal("", w.String())

	assert.Nil(tw.Flush())

	assert.Equal("\n[[it]] works\nça marche\nil marche\nit ||| ça ||| il\nthey ||| ils | elles ||| \n", w.String())
}

func TestTraceWriterSilent(t *testing.T) {
	assert := assert.New(t)

	w := bytes.NewBuffer(nil)

	tw := NewTraceWriter(w, Summary.Flags())
	tw.Sentence("a", "b", "c")
	tw.Occurrence("it", []string{"ça"}, []string{"ça"})
	assert.Nil(tw.Flush())
	assert.Equal(0, w.Len())

	// No writer given
	tw = NewTraceWriter(nil, Trace.Flags())
	tw.Occurrence("it", []string{"ça"}, []string{"ça"})
	assert.Nil(tw.Flush())
}

func TestVerbosityFlags(t *testing.T) {
	assert := assert.New(t)

	assert.Equal(TOTALS, Silent.Flags())
	assert.Equal(TABLES, Summary.Flags())
	assert.Equal(TABLES|ALIGNMENTS, Trace.Flags())
	assert.Zero(Summary.Flags() & ALIGNMENTS)
}
