package metrics

import (
	"sync"
	"testing"
)

// TestRecordAnswerConcurrent verifies counters are safe for concurrent use.
func TestRecordAnswerConcurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			m.IncrementQuestionsShown()
			if i%2 == 0 {
				m.RecordAnswer(GradeCorrect)
			} else {
				m.RecordAnswer(GradeUngraded)
			}
		}(i)
	}
	wg.Wait()

	snap := m.GetSnapshot()
	if snap.QuestionsShown != 50 || snap.AnswersRecorded != 50 {
		t.Fatalf("unexpected snapshot: %+v", snap)
	}
	if snap.AnswersCorrect != 25 || snap.AnswersUngraded != 25 {
		t.Fatalf("unexpected grade split: %+v", snap)
	}
}

// TestGradeAnswer verifies grading against an optional extracted letter.
func TestGradeAnswer(t *testing.T) {
	b := "B"
	if GradeAnswer("B", &b) != GradeCorrect {
		t.Fatalf("expected correct")
	}
	if GradeAnswer("A", &b) != GradeIncorrect {
		t.Fatalf("expected incorrect")
	}
	if GradeAnswer("A", nil) != GradeUngraded {
		t.Fatalf("expected ungraded")
	}
}
