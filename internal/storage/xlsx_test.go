package storage

import (
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"exam-qa-study/internal/segment"
)

// TestSaveXLSX verifies one row per record in parse order with an empty cell for missing choices.
func TestSaveXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parsed_qa.xlsx")
	if err := SaveXLSX(path, segment.ParseAll(source)); err != nil {
		t.Fatalf("save xlsx: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(XLSXSheet)
	if err != nil {
		t.Fatalf("rows: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("expected header and 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "q_num" || rows[1][0] != "3" || rows[2][0] != "1" || rows[3][0] != "2" {
		t.Fatalf("unexpected id column: %v", rows)
	}
	if rows[1][1] != "회사는 <무엇을> 해야 합니까?" || rows[1][2] != "C" {
		t.Fatalf("unexpected first row: %v", rows[1])
	}
	if len(rows[2]) > 2 && rows[2][2] != "" {
		t.Fatalf("expected empty choice for Q1, got %v", rows[2])
	}
}

// TestFingerprint verifies the fingerprint is stable and sensitive to content.
func TestFingerprint(t *testing.T) {
	a, err := Fingerprint([]byte(source))
	if err != nil {
		t.Fatalf("fingerprint: %v", err)
	}
	b, _ := Fingerprint([]byte(source))
	c, _ := Fingerprint([]byte(source + " "))
	if a != b || a == c || len(a) != 16 {
		t.Fatalf("unexpected fingerprints: %s %s %s", a, b, c)
	}
}
