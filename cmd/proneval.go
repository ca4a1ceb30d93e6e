package main

import (
	"fmt"
	"io"
	"os"

	"github.com/KorAP/proneval"
	"github.com/alecthomas/kong"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type cliArgs struct {
	Reference    string             `kong:"arg,required,help='Stem of the reference corpus'"`
	Candidate    string             `kong:"arg,required,help='Stem of the candidate corpus'"`
	Documents    string             `kong:"arg,required,help='Document boundary file'"`
	Verbosity    proneval.Verbosity `kong:"short='v',default='0',enum='0,1,2',env='EVAL_VERBOSITY',help='0: totals, 1: tables, 2: tables and alignment traces'"`
	SourceSuffix string             `kong:"default='src',help='File suffix of the source side'"`
	TargetSuffix string             `kong:"default='tgt',help='File suffix of the target side'"`
	AlignSuffix  string             `kong:"default='align',help='File suffix of the alignment'"`
	LogLevel     string             `kong:"default='warn',enum='debug,info,warn,error',help='Level of diagnostics on stderr'"`
}

type config struct {
	reference string
	candidate string
	documents string
	layout    proneval.Layout
	verbosity proneval.Verbosity
}

// Raised by the kong exit hook and recovered in execute
type exitCode int

// Main method for command line handling
func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

// execute parses the command line, runs the evaluation
// and returns the exit code of the process.
func execute(args []string, stdout, stderr io.Writer) (code int) {
	defer func() {
		if r := recover(); r != nil {
			c, ok := r.(exitCode)
			if !ok {
				panic(r)
			}
			code = int(c)
		}
	}()

	var cli cliArgs

	// Parse command line parameters
	parser := kong.Must(
		&cli,
		kong.Name("proneval"),
		kong.Description("Pronoun translation evaluation based on word alignments"),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(func(c int) {
			if c != 0 {
				c = 1
			}
			panic(exitCode(c))
		}),
	)

	_, err := parser.Parse(args)

	parser.FatalIfErrorf(err)

	logger := newLogger(stderr, cli.LogLevel)
	proneval.SetLogger(logger)

	cfg := config{
		reference: cli.Reference,
		candidate: cli.Candidate,
		documents: cli.Documents,
		layout: proneval.Layout{
			Source: cli.SourceSuffix,
			Target: cli.TargetSuffix,
			Align:  cli.AlignSuffix,
		},
		verbosity: cli.Verbosity,
	}

	if err := run(cfg, stdout); err != nil {
		logger.Error().Err(err).Msg("Evaluation failed")
		return 1
	}
	return 0
}

func newLogger(w io.Writer, level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true}).
		Level(lvl).
		With().
		Timestamp().
		Str("run", uuid.NewString()).
		Logger()
}

// run loads both corpora and the document boundaries,
// evaluates and writes the report to w.
func run(cfg config, w io.Writer) error {
	reference, err := proneval.LoadCorpus(cfg.reference, cfg.layout)
	if err != nil {
		return fmt.Errorf("reference: %w", err)
	}

	candidate, err := proneval.LoadCorpus(cfg.candidate, cfg.layout)
	if err != nil {
		return fmt.Errorf("candidate: %w", err)
	}

	f, err := os.Open(cfg.documents)
	if err != nil {
		return err
	}
	defer f.Close()

	docs, err := proneval.ParseBoundaries(f, reference.Source())
	if err != nil {
		return err
	}

	eval, err := proneval.NewEvaluator(
		reference,
		candidate,
		docs,
		proneval.WithVerbosity(cfg.verbosity),
		proneval.WithTrace(w),
	)
	if err != nil {
		return err
	}

	summaries, err := eval.Evaluate()
	if err != nil {
		return err
	}

	return proneval.Aggregate(summaries).Write(w, cfg.verbosity.Flags())
}
