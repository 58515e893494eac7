package study

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"exam-qa-study/internal/metrics"
	"exam-qa-study/internal/progress"
	"exam-qa-study/internal/segment"
)

const divider = "============================================================"

// Options описывает зависимости интерактивной сессии
type Options struct {
	Text          string
	Records       *segment.Records
	Store         progress.Store
	Metrics       *metrics.Metrics
	In            io.Reader
	Out           io.Writer
	StartQuestion int
	NoColor       bool
}

// Session - один проход тренажера. Все состояние передается явно.
type Session struct {
	ID      string
	text    string
	records *segment.Records
	store   progress.Store
	metrics *metrics.Metrics
	scanner *bufio.Scanner
	out     io.Writer
	noColor bool

	current int
	shown   bool
	maxID   int
}

// New создает новую сессию
func New(opts Options) *Session {
	records := opts.Records
	if records == nil {
		records = segment.ParseAll(opts.Text)
	}
	m := opts.Metrics
	if m == nil {
		m = metrics.NewMetrics()
	}
	start := opts.StartQuestion
	if start <= 0 {
		start = 1
	}

	scanner := bufio.NewScanner(opts.In)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &Session{
		ID:      uuid.New().String(),
		text:    opts.Text,
		records: records,
		store:   opts.Store,
		metrics: m,
		scanner: scanner,
		out:     opts.Out,
		noColor: opts.NoColor,
		current: start,
		maxID:   records.MaxID(),
	}
}

// Run запускает цикл: номер - перейти, Enter/next - следующий нерешенный,
// history - журнал, quit - выход. Конец ввода завершает сессию без ошибки.
func (s *Session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, renderTitle("🚀 Тренажер экзамена", s.noColor))
	fmt.Fprintln(s.out, stylize("номер / Enter: следующий / history / quit", s.noColor, colorMuted))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintf(s.out, "\n📝 Q%d (Enter=решать / номер): ", s.current)
		cmd, ok := s.readLine()
		if !ok {
			return nil
		}

		var id int
		switch lower := strings.ToLower(cmd); {
		case isDigits(cmd):
			id, _ = strconv.Atoi(cmd)
		case cmd == "" || lower == "next":
			next, err := s.nextUnsolved(ctx)
			if err != nil {
				return err
			}
			if next == 0 {
				fmt.Fprintln(s.out, "🏁 Вопросы закончились")
				continue
			}
			id = next
		case lower == "quit":
			s.printSummary()
			return nil
		case lower == "history":
			if err := s.showHistory(ctx); err != nil {
				return err
			}
			continue
		default:
			fmt.Fprintln(s.out, "❓ Enter или номер вопроса")
			continue
		}

		if err := s.ask(ctx, id); err != nil {
			return err
		}
	}
}

// ask показывает вопрос, принимает ответ, записывает его и выводит объяснение
func (s *Session) ask(ctx context.Context, id int) error {
	entries, err := s.store.Entries(ctx)
	if err != nil {
		return err
	}
	if progress.Has(entries, id) {
		fmt.Fprintf(s.out, "✅ Q%d уже решен. Дальше!\n", id)
		s.current, s.shown = id, true
		next, err := s.nextUnsolved(ctx)
		if err != nil {
			return err
		}
		if next == 0 {
			fmt.Fprintln(s.out, "🏁 Вопросы закончились")
			return nil
		}
		id = next
	}

	question, err := segment.QuestionOnly(s.text, id)
	if errors.Is(err, segment.ErrNotFound) {
		s.metrics.IncrementQuestionsMissing()
		fmt.Fprintf(s.out, "❌ Вопрос Q%d не найден\n", id)
		s.current, s.shown = id, true
		return nil
	}
	if err != nil {
		return err
	}
	s.metrics.IncrementQuestionsShown()

	fmt.Fprintf(s.out, "\n%s\n", renderTitle(fmt.Sprintf("📄 Q%d", id), s.noColor))
	fmt.Fprintln(s.out, question)
	fmt.Fprintln(s.out, "\n"+divider)

	fmt.Fprint(s.out, "💭 Ответ: ")
	input, ok := s.readLine()
	if !ok {
		return nil
	}
	letter, ok := progress.NormalizeLetter(input)
	if !ok {
		fmt.Fprintln(s.out, "❓ A-E")
		return nil
	}

	if err := s.store.Append(ctx, id, letter, s.ID); err != nil {
		return err
	}

	var correct *string
	if rec, ok := s.records.Get(id); ok {
		correct = rec.AnswerChoice
	}
	grade := metrics.GradeAnswer(letter, correct)
	s.metrics.RecordAnswer(grade)

	fmt.Fprintln(s.out, renderTitle("\n🎯 Ответ и объяснение", s.noColor))
	answer, err := segment.AnswerExplain(s.text, id)
	switch {
	case errors.Is(err, segment.ErrNoAnswer):
		fmt.Fprintln(s.out, "❌ Объяснение не найдено")
	case err != nil:
		return err
	default:
		fmt.Fprintln(s.out, answer)
	}
	fmt.Fprintln(s.out, stylize(gradeMessage(grade, letter, correct), s.noColor, gradeColor(grade)))

	s.current, s.shown = id, true
	return nil
}

// nextUnsolved возвращает следующий нерешенный номер или 0, если их больше нет
func (s *Session) nextUnsolved(ctx context.Context) (int, error) {
	entries, err := s.store.Entries(ctx)
	if err != nil {
		return 0, err
	}
	solved := progress.Solved(entries)

	candidate := s.current
	if s.shown {
		candidate++
	}
	for candidate <= s.maxID {
		if _, done := solved[progress.Token(candidate)]; !done {
			return candidate, nil
		}
		candidate++
	}
	return 0, nil
}

func (s *Session) showHistory(ctx context.Context) error {
	entries, err := s.store.Entries(ctx)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "📝 Записей нет")
		return nil
	}
	fmt.Fprintln(s.out, "\n📊 Решенные вопросы")
	fmt.Fprintln(s.out, strings.Repeat("-", 40))
	for _, e := range entries {
		fmt.Fprintf(s.out, "%s,%s\n", e.Token, e.Letter)
	}
	fmt.Fprintf(s.out, "Всего %d\n", len(entries))
	return nil
}

func (s *Session) printSummary() {
	snap := s.metrics.GetSnapshot()
	fmt.Fprintf(s.out, "\n📈 Показано: %d, ответов: %d (верно %d, неверно %d, без проверки %d)\n",
		snap.QuestionsShown, snap.AnswersRecorded, snap.AnswersCorrect, snap.AnswersIncorrect, snap.AnswersUngraded)
	fmt.Fprintln(s.out, "👋 До встречи!")
}

func (s *Session) readLine() (string, bool) {
	if !s.scanner.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.scanner.Text()), true
}

func gradeMessage(grade metrics.Grade, letter string, correct *string) string {
	switch grade {
	case metrics.GradeCorrect:
		return fmt.Sprintf("✅ Верно! (%s)", letter)
	case metrics.GradeIncorrect:
		return fmt.Sprintf("❌ Неверно. Ваш ответ: %s / правильный: %s", letter, *correct)
	default:
		return fmt.Sprintf("💾 Сохранено (буква ответа не извлечена). Ваш ответ: %s", letter)
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
