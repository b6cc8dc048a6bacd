package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/angelmondragon/receipt-processor/internal/receipts/batch"
	"github.com/angelmondragon/receipt-processor/pkg/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("receipt-points", flag.ContinueOnError)
	fs.SetOutput(stderr)
	useSchema := fs.Bool("schema", true, "validate each file against the receipt JSON schema")
	printSchema := fs.Bool("print-schema", false, "print the receipt JSON schema and exit")
	breakdown := fs.Bool("breakdown", false, "print per-rule points")
	workers := fs.Int("workers", 0, "concurrent files (0 = GOMAXPROCS)")
	logLevel := fs.String("log-level", "warn", "log level")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *printSchema {
		_, _ = stdout.Write(batch.SchemaJSON())
		return 0
	}

	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(stderr, "usage: receipt-points [flags] receipt.json...")
		fs.PrintDefaults()
		return 2
	}

	logg := logger.New(logger.Options{
		ServiceName: "receipt-points",
		Level:       logger.ParseLevel(*logLevel),
		Format:      logger.FormatConsole,
		Output:      stderr,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var schema *jsonschema.Schema
	if *useSchema {
		compiled, err := batch.CompileSchema()
		if err != nil {
			logg.Error(ctx, "failed to compile receipt schema", err)
			return 1
		}
		schema = compiled
	}

	results, err := batch.NewScorer(schema, *workers).ScoreFiles(ctx, paths)
	if err != nil {
		logg.Error(ctx, "scoring aborted", err)
		return 1
	}

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
			logg.Warn(logg.WithField(ctx, "file", res.Path), res.Err.Error())
			fmt.Fprintf(stdout, "%s\tinvalid\n", res.Path)
			continue
		}
		fmt.Fprintf(stdout, "%s\t%d\n", res.Path, res.Points)
		if *breakdown {
			parts := make([]string, 0, len(res.Breakdown))
			for _, rr := range res.Breakdown {
				parts = append(parts, fmt.Sprintf("%s=%d", rr.Rule, rr.Points))
			}
			fmt.Fprintf(stdout, "\t%s\n", strings.Join(parts, " "))
		}
	}

	if failed > 0 {
		return 1
	}
	return 0
}
