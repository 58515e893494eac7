package segment

import (
	"bytes"
	"encoding/json"
	"reflect"
	"testing"
)

// TestIDMapOverwriteKeepsPosition verifies overwriting keeps the first insertion slot.
func TestIDMapOverwriteKeepsPosition(t *testing.T) {
	m := NewIDMap[string]()
	m.Set(3, "a")
	m.Set(1, "b")
	m.Set(3, "c")
	if !reflect.DeepEqual(m.IDs(), []int{3, 1}) {
		t.Fatalf("unexpected order: %v", m.IDs())
	}
	if v, _ := m.Get(3); v != "c" {
		t.Fatalf("expected overwritten value, got %q", v)
	}
	if m.MaxID() != 3 {
		t.Fatalf("expected max id 3, got %d", m.MaxID())
	}
}

// TestRecordsJSON verifies key order, null choices, and unescaped text.
func TestRecordsJSON(t *testing.T) {
	records := ParseAll("Q2\n<b>질문</b> & more\nQ1\nfirst\nAnswer: A\n")
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		t.Fatalf("encode: %v", err)
	}
	data := bytes.TrimSpace(buf.Bytes())
	want := `{"2":{"q_num":2,"question":"<b>질문</b> & more","answer_block":"","answer_choice":null},` +
		`"1":{"q_num":1,"question":"first","answer_block":"Answer: A","answer_choice":"A"}}`
	if string(data) != want {
		t.Fatalf("unexpected json:\n%s", data)
	}

	var decoded Records
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(decoded.IDs(), []int{2, 1}) {
		t.Fatalf("unexpected decoded order: %v", decoded.IDs())
	}
}
