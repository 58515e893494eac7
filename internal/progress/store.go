package progress

import (
	"context"
	"fmt"
	"strings"
	"time"

	"exam-qa-study/internal/config"
)

// Entry - одна строка журнала решенных вопросов
type Entry struct {
	Token      string    `json:"token"`
	Letter     string    `json:"letter"`
	SessionID  string    `json:"session_id,omitempty"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Store хранит ответы пользователя
type Store interface {
	Append(ctx context.Context, id int, letter, sessionID string) error
	Entries(ctx context.Context) ([]Entry, error)
	Close() error
}

// Token возвращает токен вопроса в формате журнала
func Token(id int) string {
	return fmt.Sprintf("Q%d", id)
}

// Solved собирает множество решенных вопросов по токенам
func Solved(entries []Entry) map[string]string {
	solved := make(map[string]string, len(entries))
	for _, e := range entries {
		solved[e.Token] = e.Letter
	}
	return solved
}

// Has проверяет, решен ли вопрос
func Has(entries []Entry, id int) bool {
	token := Token(id)
	for _, e := range entries {
		if e.Token == token {
			return true
		}
	}
	return false
}

// NormalizeLetter приводит ответ пользователя к одной заглавной букве A-E
func NormalizeLetter(input string) (string, bool) {
	letter := strings.ToUpper(strings.TrimSpace(input))
	if len(letter) != 1 || letter[0] < 'A' || letter[0] > 'E' {
		return "", false
	}
	return letter, true
}

// Open выбирает хранилище по конфигурации
func Open(ctx context.Context, cfg config.ProgressConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverSQLite, config.DriverPostgres:
		return OpenSQL(ctx, cfg.Driver, cfg.DSN)
	case config.DriverFile, "":
		return NewFileStore(cfg.Path), nil
	default:
		return nil, fmt.Errorf("неизвестный драйвер прогресса: %q", cfg.Driver)
	}
}
