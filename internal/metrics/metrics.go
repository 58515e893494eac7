package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu               sync.RWMutex
	QuestionsShown   int64
	QuestionsMissing int64
	AnswersRecorded  int64
	AnswersCorrect   int64
	AnswersIncorrect int64
	AnswersUngraded  int64
	StartedAt        time.Time
	LastUpdateTime   time.Time
}

// Snapshot - копия счетчиков без мьютекса
type Snapshot struct {
	QuestionsShown   int64     `json:"questions_shown"`
	QuestionsMissing int64     `json:"questions_missing"`
	AnswersRecorded  int64     `json:"answers_recorded"`
	AnswersCorrect   int64     `json:"answers_correct"`
	AnswersIncorrect int64     `json:"answers_incorrect"`
	AnswersUngraded  int64     `json:"answers_ungraded"`
	StartedAt        time.Time `json:"started_at"`
	LastUpdateTime   time.Time `json:"last_update_time"`
}

// Grade - результат сравнения ответа с извлеченной буквой
type Grade string

const (
	GradeCorrect   Grade = "correct"
	GradeIncorrect Grade = "incorrect"
	GradeUngraded  Grade = "ungraded"
)

func NewMetrics() *Metrics {
	now := time.Now()
	return &Metrics{
		StartedAt:      now,
		LastUpdateTime: now,
	}
}

func (m *Metrics) IncrementQuestionsShown() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsShown++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) IncrementQuestionsMissing() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QuestionsMissing++
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) RecordAnswer(grade Grade) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AnswersRecorded++
	switch grade {
	case GradeCorrect:
		m.AnswersCorrect++
	case GradeIncorrect:
		m.AnswersIncorrect++
	default:
		m.AnswersUngraded++
	}
	m.LastUpdateTime = time.Now()
}

func (m *Metrics) GetSnapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		QuestionsShown:   m.QuestionsShown,
		QuestionsMissing: m.QuestionsMissing,
		AnswersRecorded:  m.AnswersRecorded,
		AnswersCorrect:   m.AnswersCorrect,
		AnswersIncorrect: m.AnswersIncorrect,
		AnswersUngraded:  m.AnswersUngraded,
		StartedAt:        m.StartedAt,
		LastUpdateTime:   m.LastUpdateTime,
	}
}

// GradeAnswer сравнивает ответ пользователя с буквой из блока ответа
func GradeAnswer(user string, correct *string) Grade {
	if correct == nil {
		return GradeUngraded
	}
	if user == *correct {
		return GradeCorrect
	}
	return GradeIncorrect
}
