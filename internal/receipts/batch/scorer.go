package batch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/sync/errgroup"

	"github.com/angelmondragon/receipt-processor/internal/receipts"
)

// Result is the outcome of scoring one file. Err is set when the file could
// not be read, failed the schema, or failed receipt validation.
type Result struct {
	Path      string
	Points    int64
	Breakdown []receipts.RuleResult
	Err       error
}

// Scorer scores receipt documents without touching a store.
type Scorer struct {
	schema  *jsonschema.Schema
	workers int
}

// NewScorer returns a Scorer. A nil schema skips schema validation; workers
// <= 0 defaults to GOMAXPROCS.
func NewScorer(schema *jsonschema.Schema, workers int) *Scorer {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Scorer{schema: schema, workers: workers}
}

// ScoreBytes validates and scores a single JSON document.
func (s *Scorer) ScoreBytes(data []byte) (receipts.Receipt, int64, error) {
	if s.schema != nil {
		if err := validateDocument(s.schema, data); err != nil {
			return receipts.Receipt{}, 0, err
		}
	}

	var payload receipts.Payload
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&payload); err != nil {
		return receipts.Receipt{}, 0, fmt.Errorf("decode receipt: %w", err)
	}
	rec, err := receipts.ParsePayload(payload)
	if err != nil {
		return receipts.Receipt{}, 0, err
	}
	return rec, receipts.Score(rec), nil
}

// ScoreFiles scores every path concurrently. Results keep the order of paths.
// Per-file failures land in Result.Err; only context cancellation aborts.
func (s *Scorer) ScoreFiles(ctx context.Context, paths []string) ([]Result, error) {
	results := make([]Result, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = s.scoreFile(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Scorer) scoreFile(path string) Result {
	res := Result{Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("read %s: %w", path, err)
		return res
	}
	rec, points, err := s.ScoreBytes(data)
	if err != nil {
		res.Err = err
		return res
	}
	res.Points = points
	res.Breakdown = receipts.Breakdown(rec)
	return res
}
