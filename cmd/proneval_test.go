package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/KorAP/proneval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tconfig(v proneval.Verbosity) config {
	return config{
		reference: "../testdata/ref",
		candidate: "../testdata/cand",
		documents: "../testdata/docs.txt",
		layout:    proneval.DefaultLayout,
		verbosity: v,
	}
}

func TestRunTotals(t *testing.T) {
	assert := assert.New(t)

	w := bytes.NewBuffer(nil)
	require.NoError(t, run(tconfig(proneval.Silent), w))

	assert.Equal(
		"Precision:      2/   4    0.5000\n"+
			"Recall:         2/   4    0.5000\n"+
			"F1:                       0.5000\n",
		w.String(),
	)
}

func TestRunTables(t *testing.T) {
	assert := assert.New(t)

	w := bytes.NewBuffer(nil)
	require.NoError(t, run(tconfig(proneval.Summary), w))

	out := w.String()
	assert.Contains(out, "       Chapter One     0/   1      1/   1      1/   2   0.5000\n")
	assert.Contains(out, "        Document 1     1/   1      0/   1      1/   2   0.5000\n")
	assert.Contains(out, "             TOTAL     2/   4/   4      0.5000      0.5000      0.5000\n")
	assert.NotContains(out, "|||")
}

func TestRunTrace(t *testing.T) {
	w := bytes.NewBuffer(nil)
	require.NoError(t, run(tconfig(proneval.Trace), w))

	assert.Contains(t, w.String(), "they ||| elles ||| ils\n")
}

func TestRunSizeMismatch(t *testing.T) {
	cfg := tconfig(proneval.Silent)
	cfg.candidate = "../testdata/short"

	w := bytes.NewBuffer(nil)
	err := run(cfg, w)
	assert.True(t, errors.Is(err, proneval.ErrSizeMismatch))
	assert.Equal(t, 0, w.Len())
}

func TestRunInvalidBoundaries(t *testing.T) {
	assert := assert.New(t)

	docs := filepath.Join(t.TempDir(), "docs.txt")
	require.NoError(t, os.WriteFile(docs, []byte("0\nsecond chapter\n"), 0644))

	cfg := tconfig(proneval.Silent)
	cfg.documents = docs

	err := run(cfg, bytes.NewBuffer(nil))
	assert.True(errors.Is(err, proneval.ErrInvalidBoundary))
	assert.Contains(err.Error(), "second chapter")
}

func TestRunMissingCorpus(t *testing.T) {
	cfg := tconfig(proneval.Silent)
	cfg.reference = "../testdata/none"

	err := run(cfg, bytes.NewBuffer(nil))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestNewLogger(t *testing.T) {
	assert := assert.New(t)

	w := bytes.NewBuffer(nil)
	logger := newLogger(w, "info")
	logger.Debug().Msg("hidden")
	logger.Info().Str("stem", "ref").Msg("Corpus loaded")

	assert.NotContains(w.String(), "hidden")
	assert.Contains(w.String(), "Corpus loaded")
	assert.Contains(w.String(), "stem=ref")
	assert.Contains(w.String(), "run=")
}

func TestExecuteExitCodes(t *testing.T) {
	assert := assert.New(t)

	ref := "../testdata/ref"
	cand := "../testdata/cand"
	docs := "../testdata/docs.txt"

	cases := []struct {
		args []string
		code int
	}{
		{[]string{ref, cand, docs}, 0},
		{[]string{}, 1},
		{[]string{ref, cand}, 1},
		{[]string{ref, cand, docs, "extra"}, 1},
		{[]string{"--verbosity=3", ref, cand, docs}, 1},
		{[]string{ref, "../testdata/short", docs}, 1},
		{[]string{ref, cand, "../testdata/none.txt"}, 1},
	}

	for _, c := range cases {
		stdout := bytes.NewBuffer(nil)
		stderr := bytes.NewBuffer(nil)
		assert.Equal(c.code, execute(c.args, stdout, stderr), c.args)
		if c.code != 0 {
			assert.NotZero(stderr.Len(), c.args)
		}
	}
}

func TestExecuteUsage(t *testing.T) {
	assert := assert.New(t)

	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	assert.Equal(1, execute([]string{"../testdata/ref"}, stdout, stderr))
	assert.Contains(stdout.String()+stderr.String(), "Usage: proneval")
	assert.NotContains(stdout.String(), "Precision:")
}

func TestExecuteReport(t *testing.T) {
	assert := assert.New(t)

	stdout := bytes.NewBuffer(nil)
	stderr := bytes.NewBuffer(nil)
	code := execute([]string{"-v", "1", "../testdata/ref", "../testdata/cand", "../testdata/docs.txt"}, stdout, stderr)
	assert.Equal(0, code)
	assert.Contains(stdout.String(), "       Chapter One     0/   1      1/   1      1/   2   0.5000\n")
	assert.Contains(stdout.String(), "F1:                       0.5000\n")
}

func TestExecuteVerbosityEnv(t *testing.T) {
	t.Setenv("EVAL_VERBOSITY", "2")

	stdout := bytes.NewBuffer(nil)
	code := execute([]string{"../testdata/ref", "../testdata/cand", "../testdata/docs.txt"}, stdout, bytes.NewBuffer(nil))
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "they ||| elles ||| ils\n")
}
