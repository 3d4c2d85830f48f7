package app

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunBuildContextWritesFiles(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ref.bin")
	idxPath := filepath.Join(dir, "idx.bin")

	var out, errBuf bytes.Buffer
	code := RunBuildContext(context.Background(), []string{
		"-contig", "chr1=ACGTACGTACGTACGT",
		"-sa-intv", "4",
		"-out-ref", refPath,
		"-out-index", idxPath,
	}, &out, &errBuf)

	if code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr: %s)", code, errBuf.String())
	}
	if _, err := os.Stat(refPath); err != nil {
		t.Fatalf("expected %s to exist: %v", refPath, err)
	}
	if _, err := os.Stat(idxPath); err != nil {
		t.Fatalf("expected %s to exist: %v", idxPath, err)
	}
}

func TestRunBuildContextRejectsBadContigSpec(t *testing.T) {
	dir := t.TempDir()
	var out, errBuf bytes.Buffer
	code := RunBuildContext(context.Background(), []string{
		"-contig", "chr1WITHOUT-EQUALS",
		"-out-ref", filepath.Join(dir, "r"),
		"-out-index", filepath.Join(dir, "i"),
	}, &out, &errBuf)

	if code == 0 {
		t.Fatalf("expected a non-zero exit code for a malformed -contig spec")
	}
}

func TestRunBuildContextHelp(t *testing.T) {
	var out, errBuf bytes.Buffer
	code := RunBuildContext(context.Background(), []string{"-h"}, &out, &errBuf)
	if code != 0 {
		t.Fatalf("expected -h to exit 0, got %d", code)
	}
	if out.Len() == 0 {
		t.Fatalf("expected usage text on stdout")
	}
}

func TestRunAlignContextEndToEnd(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ref.bin")
	idxPath := filepath.Join(dir, "idx.bin")

	var buildOut, buildErr bytes.Buffer
	code := RunBuildContext(context.Background(), []string{
		"-contig", "chr1=AGGAGGCTGCGATTAAGCGTAAGGATCGGACCCTTTAAAGGGCCCATGATGATCGTAGCA",
		"-sa-intv", "8",
		"-out-ref", refPath,
		"-out-index", idxPath,
	}, &buildOut, &buildErr)
	if code != 0 {
		t.Fatalf("build step failed: %s", buildErr.String())
	}

	var alignOut, alignErr bytes.Buffer
	code = RunAlignContext(context.Background(), []string{
		"-ref", refPath,
		"-index", idxPath,
		"-query", "GCTGCGATTAAGCGTAAGGATCGG",
		"-min-seed-len", "1",
	}, &alignOut, &alignErr)
	if code != 0 {
		t.Fatalf("align step failed: %s", alignErr.String())
	}

	if !strings.Contains(alignOut.String(), "strand\tqStart\trefStart\tlength") {
		t.Fatalf("expected a header row, got: %s", alignOut.String())
	}
	if !strings.Contains(alignOut.String(), "+\t") {
		t.Fatalf("expected at least one forward-strand row, got: %s", alignOut.String())
	}
}

func TestRunAlignContextReadsQueryFile(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ref.bin")
	idxPath := filepath.Join(dir, "idx.bin")
	queryPath := filepath.Join(dir, "query.txt")

	var buildOut, buildErr bytes.Buffer
	code := RunBuildContext(context.Background(), []string{
		"-contig", "chr1=AGGAGGCTGCGATTAAGCGTAAGGATCGGACCCTTTAAAGGGCCCATGATGATCGTAGCA",
		"-sa-intv", "8",
		"-out-ref", refPath,
		"-out-index", idxPath,
	}, &buildOut, &buildErr)
	if code != 0 {
		t.Fatalf("build step failed: %s", buildErr.String())
	}

	if err := os.WriteFile(queryPath, []byte("GCTGCGATTAAGCGTAAGGATCGG\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	var alignOut, alignErr bytes.Buffer
	code = RunAlignContext(context.Background(), []string{
		"-ref", refPath,
		"-index", idxPath,
		"-query-file", queryPath,
		"-min-seed-len", "1",
	}, &alignOut, &alignErr)
	if code != 0 {
		t.Fatalf("align step failed: %s", alignErr.String())
	}
	if !strings.Contains(alignOut.String(), "+\t") {
		t.Fatalf("expected at least one forward-strand row, got: %s", alignOut.String())
	}
}

func TestRunAlignContextRejectsInvalidBase(t *testing.T) {
	dir := t.TempDir()
	refPath := filepath.Join(dir, "ref.bin")
	idxPath := filepath.Join(dir, "idx.bin")

	var buildOut, buildErr bytes.Buffer
	RunBuildContext(context.Background(), []string{
		"-contig", "chr1=ACGTACGTACGTACGT",
		"-out-ref", refPath,
		"-out-index", idxPath,
	}, &buildOut, &buildErr)

	var alignOut, alignErr bytes.Buffer
	code := RunAlignContext(context.Background(), []string{
		"-ref", refPath,
		"-index", idxPath,
		"-query", "ACGZ",
	}, &alignOut, &alignErr)
	if code == 0 {
		t.Fatalf("expected a non-zero exit code for an invalid base")
	}
}
