package segment

import (
	"errors"
	"testing"
)

const lookupText = "intro\nQ17\nfirst question\nAnswer: A\nwhy A\nQ170\nsecond question\n답안: C\nAnswer: C\nQ171\nlast question without marker\n"

// TestQuestionOnly verifies the question text stops at the answer marker.
func TestQuestionOnly(t *testing.T) {
	got, err := QuestionOnly(lookupText, 17)
	if err != nil {
		t.Fatalf("question only: %v", err)
	}
	if got != "Q17\nfirst question" {
		t.Fatalf("unexpected question: %q", got)
	}

	got, err = QuestionOnly(lookupText, 170)
	if err != nil {
		t.Fatalf("question only: %v", err)
	}
	if got != "Q170\nsecond question" {
		t.Fatalf("unexpected question: %q", got)
	}
}

// TestQuestionOnlyRunsToEnd verifies a question without a marker runs to the end.
func TestQuestionOnlyRunsToEnd(t *testing.T) {
	got, err := QuestionOnly(lookupText, 171)
	if err != nil {
		t.Fatalf("question only: %v", err)
	}
	if got != "Q171\nlast question without marker" {
		t.Fatalf("unexpected question: %q", got)
	}
}

// TestAnswerExplain verifies the answer block ends at the next header.
func TestAnswerExplain(t *testing.T) {
	got, err := AnswerExplain(lookupText, 17)
	if err != nil {
		t.Fatalf("answer explain: %v", err)
	}
	if got != "Answer: A\nwhy A" {
		t.Fatalf("unexpected answer: %q", got)
	}

	got, err = AnswerExplain(lookupText, 170)
	if err != nil {
		t.Fatalf("answer explain: %v", err)
	}
	if got != "답안: C\nAnswer: C" {
		t.Fatalf("unexpected answer: %q", got)
	}
}

// TestLookupNotFound verifies missing headers and markers are reported explicitly.
func TestLookupNotFound(t *testing.T) {
	if _, err := QuestionOnly(lookupText, 1); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := AnswerExplain(lookupText, 99999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := AnswerExplain(lookupText, 171); !errors.Is(err, ErrNoAnswer) {
		t.Fatalf("expected no answer, got %v", err)
	}
}

// TestLookupMatchesParse verifies both paths agree on a well-formed document.
func TestLookupMatchesParse(t *testing.T) {
	records := ParseAll(lookupText)
	for _, id := range []int{17, 170} {
		rec, _ := records.Get(id)
		answer, err := AnswerExplain(lookupText, id)
		if err != nil {
			t.Fatalf("answer explain %d: %v", id, err)
		}
		if answer != rec.AnswerBlock {
			t.Fatalf("Q%d: lookup %q differs from parse %q", id, answer, rec.AnswerBlock)
		}
	}
}
