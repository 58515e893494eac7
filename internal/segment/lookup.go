package segment

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound - в тексте нет заголовка запрошенного вопроса
var ErrNotFound = errors.New("вопрос не найден")

// ErrNoAnswer - заголовок найден, но после него нет маркера ответа
var ErrNoAnswer = errors.New("ответ не найден")

// locate возвращает позицию первого заголовка вопроса id
func locate(text string, id int) (int, error) {
	re, ok := headerFor(id)
	if !ok {
		return 0, fmt.Errorf("Q%d: %w", id, ErrNotFound)
	}
	loc := re.FindStringIndex(text)
	if loc == nil {
		return 0, fmt.Errorf("Q%d: %w", id, ErrNotFound)
	}
	return loc[0], nil
}

// QuestionOnly возвращает текст от заголовка вопроса до первого маркера ответа
// (или до конца текста), без полного разбора документа.
func QuestionOnly(text string, id int) (string, error) {
	start, err := locate(text, id)
	if err != nil {
		return "", err
	}
	section := text[start:]
	if loc := answerStartRe.FindStringIndex(section); loc != nil {
		section = section[:loc[0]]
	}
	return strings.TrimSpace(section), nil
}

// AnswerExplain возвращает блок ответа вопроса: от первого маркера ответа
// после заголовка до следующего заголовка любого вопроса (или до конца текста).
func AnswerExplain(text string, id int) (string, error) {
	start, err := locate(text, id)
	if err != nil {
		return "", err
	}
	section := text[start:]
	loc := answerStartRe.FindStringIndex(section)
	if loc == nil {
		return "", fmt.Errorf("Q%d: %w", id, ErrNoAnswer)
	}
	answer := section[loc[0]:]
	if next := headerRe.FindStringIndex(answer); next != nil {
		answer = answer[:next[0]]
	}
	return strings.TrimSpace(answer), nil
}
