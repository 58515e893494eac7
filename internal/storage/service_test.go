package storage

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"exam-qa-study/internal/segment"
)

const source = "Q3\n회사는 <무엇을> 해야 합니까?\n정답: C\nAnswer: C\nQ1\nfirst\nQ2\nsecond\nAnswer: B\n"

// TestSaveAndLoadRecords verifies file order, nulls, and unescaped Korean text survive.
func TestSaveAndLoadRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "parsed_qa.json")
	records := segment.ParseAll(source)
	if err := SaveRecords(path, records); err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "회사는 <무엇을> 해야 합니까?") {
		t.Fatalf("expected literal korean text, got:\n%s", text)
	}
	if !strings.Contains(text, `"answer_choice": null`) {
		t.Fatalf("expected null choice, got:\n%s", text)
	}
	if strings.Index(text, `"3"`) > strings.Index(text, `"1"`) {
		t.Fatalf("expected parse order in file, got:\n%s", text)
	}

	export, err := LoadRecords(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(export.Records, records) {
		t.Fatalf("loaded records differ from saved ones")
	}
}

// TestSaveJS verifies the script wrapper format.
func TestSaveJS(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "parsed_qa.json")
	jsPath := filepath.Join(dir, "parsed_qa.js")
	if err := SaveRecords(jsonPath, segment.ParseAll(source)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := SaveJS(jsonPath, jsPath, ""); err != nil {
		t.Fatalf("save js: %v", err)
	}

	data, err := os.ReadFile(jsPath)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	js := string(data)
	if !strings.HasPrefix(js, "/* auto-generated */\nwindow.__QA__ = {\"3\":") {
		t.Fatalf("unexpected js prefix: %q", js[:60])
	}
	if !strings.HasSuffix(js, "};\n") {
		t.Fatalf("unexpected js suffix: %q", js[len(js)-10:])
	}
}

// TestLoadRecordsInvalid verifies malformed JSON is reported.
func TestLoadRecordsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"x": {}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadRecords(path); err == nil {
		t.Fatalf("expected error for non-numeric key")
	}
}
