package segment

import (
	"strings"
	"unicode/utf8"
)

// ParseSection разбирает один фрагмент вопроса на текст вопроса, блок ответа и букву
func ParseSection(id int, span string) Record {
	question := span
	answerBlock := ""

	if loc := answerStartRe.FindStringIndex(span); loc != nil {
		question = span[:loc[0]]
		answerBlock = strings.TrimSpace(span[loc[0]:])
	}
	question = strings.TrimSpace(stripHeader(id, strings.TrimSpace(question)))

	return Record{
		ID:           id,
		Question:     question,
		AnswerBlock:  answerBlock,
		AnswerChoice: extractChoice(answerBlock),
	}
}

// extractChoice возвращает первую букву после "Answer" внутри блока ответа
func extractChoice(block string) *string {
	if block == "" {
		return nil
	}
	m := answerChoiceRe.FindStringSubmatch(block)
	if m == nil {
		return nil
	}
	choice := m[1]
	return &choice
}

// stripHeader убирает заголовок Q<id> только в самом начале текста
func stripHeader(id int, text string) string {
	rest := strings.TrimLeftFunc(text, isSpace)
	if rest == "" || (rest[0] != 'Q' && rest[0] != 'q') {
		return text
	}

	n := 1
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	digits := rest[1:n]
	if digits == "" || len(digits) > maxIDDigits || atoi(digits) != id {
		return text
	}
	if n < len(rest) {
		if r, _ := utf8.DecodeRuneInString(rest[n:]); isWord(r) {
			return text
		}
	}
	return rest[n:]
}

// atoi для строки, состоящей только из ASCII цифр
func atoi(digits string) int {
	v := 0
	for i := 0; i < len(digits); i++ {
		v = v*10 + int(digits[i]-'0')
	}
	return v
}
