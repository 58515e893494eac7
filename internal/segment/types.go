package segment

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Record представляет один разобранный вопрос
type Record struct {
	ID           int     `json:"q_num"`
	Question     string  `json:"question"`
	AnswerBlock  string  `json:"answer_block"`
	AnswerChoice *string `json:"answer_choice"`
}

// Choice возвращает букву ответа, если она была найдена
func (r Record) Choice() (string, bool) {
	if r.AnswerChoice == nil {
		return "", false
	}
	return *r.AnswerChoice, true
}

// Header - позиция заголовка вопроса в тексте
type Header struct {
	ID    int
	Start int
}

// Span - окно текста между двумя заголовками
type Span struct {
	ID    int
	Start int
	End   int
	Text  string
}

// IDMap хранит значения по номеру вопроса в порядке первой вставки.
// Повторный Set заменяет значение, позиция ключа сохраняется.
type IDMap[V any] struct {
	keys   []int
	values map[int]V
}

// NewIDMap создает пустую карту
func NewIDMap[V any]() *IDMap[V] {
	return &IDMap[V]{values: make(map[int]V)}
}

func (m *IDMap[V]) Set(id int, v V) {
	if m.values == nil {
		m.values = make(map[int]V)
	}
	if _, exists := m.values[id]; !exists {
		m.keys = append(m.keys, id)
	}
	m.values[id] = v
}

func (m *IDMap[V]) Get(id int) (V, bool) {
	v, ok := m.values[id]
	return v, ok
}

func (m *IDMap[V]) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// IDs возвращает ключи в порядке вставки
func (m *IDMap[V]) IDs() []int {
	if m == nil {
		return nil
	}
	out := make([]int, len(m.keys))
	copy(out, m.keys)
	return out
}

// Values возвращает значения в порядке вставки
func (m *IDMap[V]) Values() []V {
	if m == nil {
		return nil
	}
	out := make([]V, 0, len(m.keys))
	for _, id := range m.keys {
		out = append(out, m.values[id])
	}
	return out
}

// MaxID возвращает наибольший номер или 0 для пустой карты
func (m *IDMap[V]) MaxID() int {
	highest := 0
	if m == nil {
		return highest
	}
	for _, id := range m.keys {
		if id > highest {
			highest = id
		}
	}
	return highest
}

// MarshalJSON сериализует карту в объект с десятичными ключами в порядке вставки
func (m *IDMap[V]) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if m != nil {
		for i, id := range m.keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Quote(strconv.Itoa(id)))
			buf.WriteByte(':')

			var value bytes.Buffer
			enc := json.NewEncoder(&value)
			enc.SetEscapeHTML(false)
			if err := enc.Encode(m.values[id]); err != nil {
				return nil, err
			}
			buf.Write(bytes.TrimRight(value.Bytes(), "\n"))
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON читает объект, сохраняя порядок ключей из документа
func (m *IDMap[V]) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("ожидался JSON объект, получен %v", tok)
	}

	m.keys = nil
	m.values = make(map[int]V)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		key, _ := tok.(string)
		id, err := strconv.Atoi(key)
		if err != nil {
			return err
		}
		var v V
		if err := dec.Decode(&v); err != nil {
			return err
		}
		m.Set(id, v)
	}
	_, err = dec.Token()
	return err
}

// Records - результат разбора всего документа
type Records = IDMap[Record]
