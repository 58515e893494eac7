package progress

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileStore - журнал в текстовом файле, одна строка "Q<id>,<буква>" на ответ.
// Файл открывается заново на каждую операцию.
type FileStore struct {
	path string
}

// NewFileStore создает хранилище поверх файла журнала
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path возвращает путь к журналу
func (s *FileStore) Path() string {
	return s.path
}

// Append дописывает ответ в конец журнала
func (s *FileStore) Append(ctx context.Context, id int, letter, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ошибка создания директории %s: %w", dir, err)
		}
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("ошибка открытия журнала %s: %w", s.path, err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "%s,%s\n", Token(id), letter); err != nil {
		return fmt.Errorf("ошибка записи журнала %s: %w", s.path, err)
	}
	return nil
}

// Entries читает журнал. Каждая непустая строка делится по первой запятой,
// строки без запятой пропускаются. Отсутствующий файл - пустой журнал.
func (s *FileStore) Entries(ctx context.Context) ([]Entry, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия журнала %s: %w", s.path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		token, letter, ok := strings.Cut(line, ",")
		if !ok {
			continue
		}
		entries = append(entries, Entry{Token: token, Letter: letter})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала %s: %w", s.path, err)
	}
	return entries, nil
}

// Lines возвращает непустые строки журнала как есть (для команды history)
func (s *FileStore) Lines() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала %s: %w", s.path, err)
	}
	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}

func (s *FileStore) Close() error {
	return nil
}
