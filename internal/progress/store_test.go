package progress

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"exam-qa-study/internal/config"
)

// TestFileStoreFormat verifies the on-disk line format and read-back split.
func TestFileStoreFormat(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "solved_problems.txt")
	store := NewFileStore(path)

	if err := store.Append(ctx, 170, "B", "session"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, 171, "D", "session"); err != nil {
		t.Fatalf("append: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "Q170,B\nQ171,D\n" {
		t.Fatalf("unexpected log: %q", data)
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 || entries[0].Token != "Q170" || entries[0].Letter != "B" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if !Has(entries, 171) || Has(entries, 17) {
		t.Fatalf("unexpected membership result")
	}
}

// TestFileStoreSplitsOnFirstComma verifies blank and comma-less lines are skipped.
func TestFileStoreSplitsOnFirstComma(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")
	if err := os.WriteFile(path, []byte("Q1,A\n\nnoise\nQ2,B,extra\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	entries, err := NewFileStore(path).Entries(context.Background())
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %+v", entries)
	}
	if entries[1].Token != "Q2" || entries[1].Letter != "B,extra" {
		t.Fatalf("unexpected split: %+v", entries[1])
	}

	lines, err := NewFileStore(path).Lines()
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 3 {
		t.Fatalf("expected 3 non-empty lines, got %v", lines)
	}
}

// TestFileStoreMissing verifies a missing log is empty.
func TestFileStoreMissing(t *testing.T) {
	entries, err := NewFileStore(filepath.Join(t.TempDir(), "absent.txt")).Entries(context.Background())
	if err != nil || len(entries) != 0 {
		t.Fatalf("expected empty log, got %+v (%v)", entries, err)
	}
}

// TestSQLStore verifies entries round-trip through sqlite in insertion order.
func TestSQLStore(t *testing.T) {
	ctx := context.Background()
	dsn := "file:" + filepath.Join(t.TempDir(), "progress.db")
	store, err := Open(ctx, config.ProgressConfig{Driver: config.DriverSQLite, DSN: dsn})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer store.Close()

	if err := store.Append(ctx, 5, "C", "s1"); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := store.Append(ctx, 3, "A", "s1"); err != nil {
		t.Fatalf("append: %v", err)
	}

	entries, err := store.Entries(ctx)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 || entries[0].Token != "Q5" || entries[1].Letter != "A" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
	if entries[0].SessionID != "s1" || entries[0].AnsweredAt.IsZero() {
		t.Fatalf("expected session and timestamp: %+v", entries[0])
	}
	if got := Solved(entries); got["Q3"] != "A" {
		t.Fatalf("unexpected solved set: %v", got)
	}
}

// TestNormalizeLetter verifies only single letters A-E are accepted.
func TestNormalizeLetter(t *testing.T) {
	for input, want := range map[string]string{"b": "B", " E ": "E", "A": "A"} {
		if got, ok := NormalizeLetter(input); !ok || got != want {
			t.Fatalf("NormalizeLetter(%q) = %q, %v", input, got, ok)
		}
	}
	for _, input := range []string{"", "F", "AB", "1"} {
		if _, ok := NormalizeLetter(input); ok {
			t.Fatalf("expected %q to be rejected", input)
		}
	}
}

// TestOpenUnknownDriver verifies unknown drivers are rejected.
func TestOpenUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), config.ProgressConfig{Driver: "redis"}); err == nil {
		t.Fatalf("expected error")
	}
}

// TestOpenSQLUnsupportedDriver verifies only sqlite and postgres are accepted by the SQL store.
func TestOpenSQLUnsupportedDriver(t *testing.T) {
	if _, err := OpenSQL(context.Background(), "mysql", "root@/db"); err == nil {
		t.Fatalf("expected error")
	}
}
