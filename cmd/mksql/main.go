package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"github.com/jessevdk/go-flags"

	"github.com/darianmavgo/mksql/config"
	"github.com/darianmavgo/mksql/converters"
	_ "github.com/darianmavgo/mksql/converters/all"
	"github.com/darianmavgo/mksql/converters/common"
	"github.com/darianmavgo/mksql/converters/source"
)

var (
	progname = "mksql"
	version  = "0.2.0"
)

// OptsT defines all the configurable options from cli.
// Empty strings and nil pointers mean "not given" and leave the config file
// value in place.
type OptsT struct {
	Dialect     string `short:"d" long:"dialect" description:"Target SQL dialect (mysql|postgres)"`
	Table       string `short:"t" long:"table" description:"Table name (defaults to the input file name)"`
	BatchSize   *int   `short:"b" long:"batch-size" description:"Rows per INSERT transaction block"`
	SampleRows  *int   `long:"sample-rows" description:"Rows sampled to infer column types"`
	PreviewRows *int   `long:"preview-rows" description:"Rows shown by --preview"`
	Preview     bool   `short:"p" long:"preview" description:"Print the first rows before converting"`
	Delimiter   string `long:"delimiter" description:"Field delimiter, e.g. , ; | or tab (detected when omitted)"`
	Sheet       string `long:"sheet" description:"Worksheet to read from .xlsx input"`
	OutputDir   string `short:"o" long:"output-dir" description:"Directory for the generated script"`
	Stdout      bool   `long:"stdout" description:"Write the script to stdout instead of a file"`
	Config      string `short:"c" long:"config" description:"HCL configuration file"`
	WriteConfig string `long:"write-config" description:"Write the effective configuration to this file and exit"`
	Verbose     bool   `short:"v" long:"verbose" description:"Verbose logging"`
	Version     func() `short:"V" long:"version" description:"Show program version and exit"`

	Args struct {
		Input string `positional-arg-name:"input" description:"Delimited text or .xlsx file, - for stdin"`
		Table string `positional-arg-name:"table" description:"Table name"`
	} `positional-args:"yes"`
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var opts OptsT
	showVersion := false
	opts.Version = func() { showVersion = true }

	parser := flags.NewParser(&opts, flags.HelpFlag)
	parser.Usage = "[OPTIONS] <input> [table]"
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			fmt.Fprintln(stderr, err)
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if showVersion {
		fmt.Fprintf(stderr, "%s - delimited text to SQL script, version %s\n", progname, version)
		return 0
	}

	cfg, err := loadConfig(&opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if opts.WriteConfig != "" {
		if err := config.Export(opts.WriteConfig, cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		fmt.Fprintf(stderr, "Configuration written to %s\n", opts.WriteConfig)
		return 0
	}

	if opts.Args.Input == "" {
		parser.WriteHelp(stderr)
		return 1
	}

	if err := convert(&opts, cfg, stdin, stdout, stderr); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadConfig reads the config file, if any, and lays the flags over it.
func loadConfig(opts *OptsT) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if opts.Config != "" {
		loaded, err := config.Load(opts.Config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if opts.Dialect != "" {
		cfg.Dialect = opts.Dialect
	}
	if opts.BatchSize != nil {
		cfg.BatchSize = *opts.BatchSize
	}
	if opts.SampleRows != nil {
		cfg.SampleRows = *opts.SampleRows
	}
	if opts.PreviewRows != nil {
		cfg.PreviewRows = *opts.PreviewRows
	}
	if opts.OutputDir != "" {
		cfg.OutputDir = opts.OutputDir
	}

	return cfg, cfg.Validate()
}

func convert(opts *OptsT, cfg *config.Config, stdin io.Reader, stdout, stderr io.Writer) error {
	conv := cfg.Conversion()
	conv.Sheet = opts.Sheet
	conv.Verbose = opts.Verbose

	delimiter, err := parseDelimiter(opts.Delimiter)
	if err != nil {
		return err
	}
	conv.Delimiter = delimiter
	if _, err := conv.Validate(); err != nil {
		return err
	}

	var src common.Source
	driver := "csv"
	if opts.Args.Input == "-" {
		src, err = source.Stdin(stdin)
	} else {
		src, err = source.File(opts.Args.Input)
		driver = converters.DriverFor(opts.Args.Input)
	}
	if err != nil {
		return err
	}

	table := opts.Args.Table
	if table == "" {
		table = opts.Table
	}
	if table == "" {
		table = src.BaseName()
	}
	conv.TableName = common.GenTableName(table)

	if opts.Verbose {
		log.Printf("[MKSQL] Converting %s with driver %s into table %s", src.Name(), driver, conv.TableName)
	}

	if opts.Preview {
		header, rows, err := converters.Preview(src, driver, conv)
		if err != nil {
			return err
		}
		fmt.Fprintf(stderr, "Preview of %s (up to %d rows):\n", src.Name(), conv.PreviewRows)
		renderPreview(stderr, header, rows)
		fmt.Fprintln(stderr)
	}

	start := time.Now()
	var summary *converters.Summary
	if opts.Stdout {
		summary, err = converters.Convert(src, driver, stdout, conv)
	} else {
		outputPath := converters.OutputPath(cfg.OutputDir, cfg.DateFormat, conv.TableName, start)
		summary, err = converters.ConvertFile(src, driver, outputPath, conv)
	}
	if err != nil {
		return err
	}

	report(stderr, summary, time.Since(start))
	return nil
}

// parseDelimiter accepts a single character, or "tab" and `\t` for a tab.
// An empty value means the delimiter is sniffed from the input.
func parseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "":
		return 0, nil
	case "tab", `\t`:
		return '\t', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if size != len(s) {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", s)
	}
	return r, nil
}

func report(w io.Writer, summary *converters.Summary, elapsed time.Duration) {
	if summary.Output != "" {
		size := ""
		if info, err := os.Stat(summary.Output); err == nil {
			size = " (" + humanize.Bytes(uint64(info.Size())) + ")"
		}
		fmt.Fprintf(w, "%s script written to %s%s\n", summary.Dialect, summary.Output, size)
	}
	fmt.Fprintf(w, "Table: %s (%d columns)\n", summary.Table, len(summary.Columns))
	fmt.Fprintf(w, "Rows processed: %s in %s batches\n", humanize.Comma(int64(summary.Rows)), humanize.Comma(int64(summary.Batches)))
	fmt.Fprintf(w, "Elapsed: %s (%.2f seconds)\n", elapsed.Round(time.Millisecond), elapsed.Seconds())
	for _, warning := range summary.Warnings {
		fmt.Fprintf(w, "Warning: %s\n", warning)
	}
}
