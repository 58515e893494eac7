package segment

import (
	"fmt"
	"regexp"
	"strconv"
	"unicode"
)

// maxIDDigits - заголовок содержит от 1 до 4 цифр
const maxIDDigits = 4

// Unicode-классы символов: \s в RE2 покрывает только ASCII, а \b не считает хангыль буквами.
const (
	space   = `[\s\v\x1c-\x1f\x{85}\p{Z}]`
	wordEnd = `(?:[^\p{L}\p{N}_]|$)`
	nonWord = `(?:^|[^\p{L}\p{N}_])`
)

var (
	// Q1 .. Q9999 в начале строки
	headerRe = regexp.MustCompile(`(?im)^` + space + `*Q(\d{1,4})` + wordEnd)

	// Answer / 답안 / 정답 в начале строки
	answerStartRe = regexp.MustCompile(`(?im)^` + space + `*(?:answer|답안|정답)` + wordEnd)

	// Answer: B, Answer B, answer：C. Буква только заглавная.
	answerChoiceRe = regexp.MustCompile(`(?m)` + nonWord + `(?i:answer)(?:` + space + `+[:：]?` + space + `*|[:：]` + space + `*)([A-E])` + wordEnd)
)

// headerFor строит шаблон заголовка конкретного вопроса.
// Допускаются ведущие нули в пределах четырех цифр (Q007).
func headerFor(id int) (*regexp.Regexp, bool) {
	digits := strconv.Itoa(id)
	if id < 0 || len(digits) > maxIDDigits {
		return nil, false
	}
	pattern := fmt.Sprintf(`(?im)^%s*Q0{0,%d}%s%s`, space, maxIDDigits-len(digits), digits, wordEnd)
	return regexp.MustCompile(pattern), true
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}
