package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const receiptJSON = `{
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

func TestRunScoresFiles(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	if err := os.WriteFile(good, []byte(receiptJSON), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var stdout, stderr bytes.Buffer
	code := run([]string{"-breakdown", good}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (stderr %s)", code, stderr.String())
	}
	out := stdout.String()
	if !strings.Contains(out, good+"\t109") {
		t.Fatalf("expected points line, got %q", out)
	}
	if !strings.Contains(out, "round_dollar_total=50") {
		t.Fatalf("expected breakdown, got %q", out)
	}
}

func TestRunReportsInvalidFiles(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte(`{"retailer":"x"}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var stdout, stderr bytes.Buffer
	if code := run([]string{bad}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit 1, got %d", code)
	}
	if !strings.Contains(stdout.String(), bad+"\tinvalid") {
		t.Fatalf("expected invalid marker, got %q", stdout.String())
	}
}

func TestRunUsageAndSchema(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run(nil, &stdout, &stderr); code != 2 {
		t.Fatalf("expected usage exit 2, got %d", code)
	}
	stdout.Reset()
	if code := run([]string{"-print-schema"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), `"purchaseTime"`) {
		t.Fatalf("expected schema output")
	}
}
