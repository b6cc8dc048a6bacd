package batch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/receipt-processor/internal/receipts"
	pkgerrors "github.com/angelmondragon/receipt-processor/pkg/errors"
)

const targetJSON = `{
  "retailer": "Target",
  "purchaseDate": "2022-01-01",
  "purchaseTime": "13:01",
  "items": [
    {"shortDescription": "Mountain Dew 12PK", "price": "6.49"},
    {"shortDescription": "Emils Cheese Pizza", "price": "12.25"},
    {"shortDescription": "Knorr Creamy Chicken", "price": "1.26"},
    {"shortDescription": "Doritos Nacho Cheese", "price": "3.35"},
    {"shortDescription": "   Klarbrunn 12-PK 12 FL OZ  ", "price": "12.00"}
  ],
  "total": "35.35"
}`

const cornerMarketJSON = `{
  "retailer": "M&M Corner Market",
  "purchaseDate": "2022-03-20",
  "purchaseTime": "14:33",
  "items": [
    {"shortDescription": "Gatorade", "price": "2.25"},
    {"shortDescription": "Gatorade", "price": "2.25"},
    {"shortDescription": "Gatorade", "price": "2.25"},
    {"shortDescription": "Gatorade", "price": "2.25"}
  ],
  "total": "9.00"
}`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestCompileSchema(t *testing.T) {
	schema, err := CompileSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)
	assert.True(t, strings.Contains(string(SchemaJSON()), `"purchaseDate"`))
}

func TestScoreBytesWithSchema(t *testing.T) {
	schema, err := CompileSchema()
	require.NoError(t, err)
	s := NewScorer(schema, 1)

	_, points, err := s.ScoreBytes([]byte(targetJSON))
	require.NoError(t, err)
	assert.Equal(t, int64(28), points)

	_, _, err = s.ScoreBytes([]byte(`{"retailer":"Target","items":[]}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema")
}

func TestSchemaAndParserAgreeOnBounds(t *testing.T) {
	schema, err := CompileSchema()
	require.NoError(t, err)
	withSchema := NewScorer(schema, 1)
	withoutSchema := NewScorer(nil, 1)

	bodies := map[string]string{
		"single digit hour": strings.Replace(targetJSON, `"13:01"`, `"9:05"`, 1),
		"thirteen digits":   strings.Replace(targetJSON, `"35.35"`, `"1000000000000.00"`, 1),
	}
	for name, body := range bodies {
		_, _, err := withSchema.ScoreBytes([]byte(body))
		assert.Error(t, err, "%s: schema should reject", name)
		_, _, err = withoutSchema.ScoreBytes([]byte(body))
		assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "%s: parser should reject, got %v", name, err)
	}

	largest := strings.Replace(targetJSON, `"35.35"`, `"999999999999.99"`, 1)
	_, _, err = withSchema.ScoreBytes([]byte(largest))
	assert.NoError(t, err)
}

func TestScoreBytesWithoutSchemaUsesValidation(t *testing.T) {
	s := NewScorer(nil, 0)
	_, _, err := s.ScoreBytes([]byte(`{"retailer":"Target","purchaseDate":"2022-01-01","purchaseTime":"13:01","items":[],"total":"1.00"}`))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)

	_, _, err = s.ScoreBytes([]byte(`not json`))
	assert.Error(t, err)
}

func TestScoreFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		writeFile(t, dir, "target.json", targetJSON),
		writeFile(t, dir, "broken.json", `{"retailer": ""}`),
		writeFile(t, dir, "corner.json", cornerMarketJSON),
		filepath.Join(dir, "missing.json"),
	}

	schema, err := CompileSchema()
	require.NoError(t, err)
	results, err := NewScorer(schema, 2).ScoreFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, results, len(paths))

	assert.Equal(t, paths[0], results[0].Path)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, int64(28), results[0].Points)
	assert.Len(t, results[0].Breakdown, 7)
	assert.Equal(t, receipts.RuleRetailerName, results[0].Breakdown[0].Rule)

	assert.Error(t, results[1].Err)

	assert.NoError(t, results[2].Err)
	assert.Equal(t, int64(109), results[2].Points)

	assert.Error(t, results[3].Err)
}

func TestScoreFilesCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	dir := t.TempDir()
	_, err := NewScorer(nil, 1).ScoreFiles(ctx, []string{writeFile(t, dir, "a.json", targetJSON)})
	assert.ErrorIs(t, err, context.Canceled)
}
